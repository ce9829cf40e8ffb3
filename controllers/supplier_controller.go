package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/mohammedmirzada/order-tracking/pkg/resp"
	"github.com/mohammedmirzada/order-tracking/services"
)

type SupplierController struct {
	Service *services.SupplierService
	Events  EventPublisher
}

func NewSupplierController(s *services.SupplierService, events EventPublisher) *SupplierController {
	return &SupplierController{Service: s, Events: publisherOrDiscard(events)}
}

// GET /suppliers?page=&limit=&search=
func (sc *SupplierController) List(c *gin.Context) {
	page, err := sc.Service.FindAll(c.Request.Context(), listQuery(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, page)
}

// GET /suppliers/:id
func (sc *SupplierController) Detail(c *gin.Context) {
	s, err := sc.Service.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, s)
}

// POST /suppliers
func (sc *SupplierController) Create(c *gin.Context) {
	var req services.CreateSupplierRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := sc.Service.Create(c.Request.Context(), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	sc.Events.Publish("supplier.created", s.ID, s)
	resp.Created(c, s)
}

// PATCH /suppliers/:id
func (sc *SupplierController) Update(c *gin.Context) {
	var req services.UpdateSupplierRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := sc.Service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	sc.Events.Publish("supplier.updated", s.ID, s)
	resp.OK(c, s)
}

// DELETE /suppliers/:id
func (sc *SupplierController) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := sc.Service.Remove(c.Request.Context(), id); err != nil {
		resp.Error(c, err)
		return
	}
	sc.Events.Publish("supplier.deleted", id, nil)
	resp.NoContent(c)
}
