package entity

type OrderStatus string

const (
	OrderStatusDraft      OrderStatus = "DRAFT"
	OrderStatusPlaced     OrderStatus = "PLACED"
	OrderStatusDispatched OrderStatus = "DISPATCHED"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusInTransit  OrderStatus = "IN_TRANSIT"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCanceled   OrderStatus = "CANCELED"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusDraft,
	OrderStatusPlaced,
	OrderStatusDispatched,
	OrderStatusShipped,
	OrderStatusInTransit,
	OrderStatusDelivered,
	OrderStatusCanceled,
}
