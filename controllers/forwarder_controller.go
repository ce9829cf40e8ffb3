package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/mohammedmirzada/order-tracking/pkg/resp"
	"github.com/mohammedmirzada/order-tracking/services"
)

type ForwarderController struct {
	Service *services.ForwarderService
	Events  EventPublisher
}

func NewForwarderController(s *services.ForwarderService, events EventPublisher) *ForwarderController {
	return &ForwarderController{Service: s, Events: publisherOrDiscard(events)}
}

// GET /forwarders?page=&limit=&search=
func (fc *ForwarderController) List(c *gin.Context) {
	page, err := fc.Service.FindAll(c.Request.Context(), listQuery(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, page)
}

// GET /forwarders/:id
func (fc *ForwarderController) Detail(c *gin.Context) {
	f, err := fc.Service.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, f)
}

// POST /forwarders
func (fc *ForwarderController) Create(c *gin.Context) {
	var req services.CreateForwarderRequest
	if !bindJSON(c, &req) {
		return
	}
	f, err := fc.Service.Create(c.Request.Context(), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	fc.Events.Publish("forwarder.created", f.ID, f)
	resp.Created(c, f)
}

// PATCH /forwarders/:id
func (fc *ForwarderController) Update(c *gin.Context) {
	var req services.UpdateForwarderRequest
	if !bindJSON(c, &req) {
		return
	}
	f, err := fc.Service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	fc.Events.Publish("forwarder.updated", f.ID, f)
	resp.OK(c, f)
}

// DELETE /forwarders/:id
func (fc *ForwarderController) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := fc.Service.Remove(c.Request.Context(), id); err != nil {
		resp.Error(c, err)
		return
	}
	fc.Events.Publish("forwarder.deleted", id, nil)
	resp.NoContent(c)
}
