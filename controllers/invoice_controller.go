package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mohammedmirzada/order-tracking/pkg/resp"
	"github.com/mohammedmirzada/order-tracking/services"
)

type InvoiceController struct {
	Service   *services.InvoiceService
	Documents *services.DocumentService
	Events    EventPublisher
}

func NewInvoiceController(s *services.InvoiceService, docs *services.DocumentService, events EventPublisher) *InvoiceController {
	return &InvoiceController{Service: s, Documents: docs, Events: publisherOrDiscard(events)}
}

// GET /invoices?page=&limit=&search=
func (ic *InvoiceController) List(c *gin.Context) {
	page, err := ic.Service.FindAll(c.Request.Context(), listQuery(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, page)
}

// GET /invoices/:id
func (ic *InvoiceController) Detail(c *gin.Context) {
	inv, err := ic.Service.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, inv)
}

// POST /invoices
func (ic *InvoiceController) Create(c *gin.Context) {
	var req services.CreateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	inv, err := ic.Service.Create(c.Request.Context(), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	ic.Events.Publish("invoice.created", inv.ID, inv)
	resp.Created(c, inv)
}

// PATCH /invoices/:id
func (ic *InvoiceController) Update(c *gin.Context) {
	var req services.UpdateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	inv, err := ic.Service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	ic.Events.Publish("invoice.updated", inv.ID, inv)
	resp.OK(c, inv)
}

// DELETE /invoices/:id
func (ic *InvoiceController) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := ic.Service.Remove(c.Request.Context(), id); err != nil {
		resp.Error(c, err)
		return
	}
	ic.Events.Publish("invoice.deleted", id, nil)
	resp.NoContent(c)
}

// POST /invoices/:id/documents (multipart, field "file")
func (ic *InvoiceController) UploadDocument(c *gin.Context) {
	// a little slack for the multipart envelope
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, ic.Documents.MaxBytes+1<<20)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			resp.Error(c, fieldError("file", "file is too large"))
			return
		}
		fh = nil
	}

	doc, err := ic.Documents.Attach(c.Request.Context(), c.Param("id"), fh)
	if err != nil {
		resp.Error(c, err)
		return
	}
	ic.Events.Publish("document.created", doc.ID, doc)
	resp.Created(c, doc)
}

// DELETE /invoices/:id/documents/:documentId
func (ic *InvoiceController) DeleteDocument(c *gin.Context) {
	docID := c.Param("documentId")
	if err := ic.Documents.Detach(c.Request.Context(), c.Param("id"), docID); err != nil {
		resp.Error(c, err)
		return
	}
	ic.Events.Publish("document.deleted", docID, nil)
	resp.NoContent(c)
}
