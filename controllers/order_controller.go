package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/mohammedmirzada/order-tracking/pkg/resp"
	"github.com/mohammedmirzada/order-tracking/services"
)

type OrderController struct {
	Service *services.OrderService
	Events  EventPublisher
}

func NewOrderController(s *services.OrderService, events EventPublisher) *OrderController {
	return &OrderController{Service: s, Events: publisherOrDiscard(events)}
}

// GET /orders?page=&limit=&search=
// search matches refNumber or shipmentName
func (oc *OrderController) List(c *gin.Context) {
	page, err := oc.Service.FindAll(c.Request.Context(), listQuery(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, page)
}

// GET /orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	o, err := oc.Service.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, o)
}

// POST /orders
func (oc *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	o, err := oc.Service.Create(c.Request.Context(), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	oc.Events.Publish("order.created", o.ID, o)
	for _, inv := range o.Invoices {
		oc.Events.Publish("invoice.created", inv.ID, inv)
	}
	resp.Created(c, o)
}

// PATCH /orders/:id
func (oc *OrderController) Update(c *gin.Context) {
	var req services.UpdateOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	o, err := oc.Service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	oc.Events.Publish("order.updated", o.ID, o)
	resp.OK(c, o)
}

// DELETE /orders/:id
func (oc *OrderController) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := oc.Service.Remove(c.Request.Context(), id); err != nil {
		resp.Error(c, err)
		return
	}
	oc.Events.Publish("order.deleted", id, nil)
	resp.NoContent(c)
}
