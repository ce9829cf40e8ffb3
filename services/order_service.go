package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mohammedmirzada/order-tracking/entity"
	"github.com/mohammedmirzada/order-tracking/pkg/apperr"
	"github.com/mohammedmirzada/order-tracking/pkg/validation"
	"github.com/mohammedmirzada/order-tracking/repository"
)

type OrderItemRequest struct {
	Sku      *string          `json:"sku"`
	ItemName string           `json:"itemName"`
	Quantity int              `json:"quantity"`
	Price    *decimal.Decimal `json:"price"`
	Total    *decimal.Decimal `json:"total"`
}

func (r *OrderItemRequest) check(v *validation.Checker, prefix string) {
	v.MinLength(prefix+"itemName", strings.TrimSpace(r.ItemName), 1)
	v.MinInt(prefix+"quantity", r.Quantity, 1)
	v.NonNegative(prefix+"price", r.Price)
	v.NonNegative(prefix+"total", r.Total)
}

// OrderInvoiceRequest creates the order's first invoice together with the order.
type OrderInvoiceRequest struct {
	InvoiceNumber string `json:"invoiceNumber"`
	InvoiceDate   string `json:"invoiceDate"`
}

type CreateOrderRequest struct {
	RefNumber             string               `json:"refNumber"`
	SupplierID            string               `json:"supplierId"`
	ForwarderID           string               `json:"forwarderId"`
	Status                *string              `json:"status"`
	OrderDate             *string              `json:"orderDate"`
	DispatchDate          *string              `json:"dispatchDate"`
	EstimatedDeliveryDate *string              `json:"estimatedDeliveryDate"`
	ActualDeliveryDate    *string              `json:"actualDeliveryDate"`
	ShipmentName          *string              `json:"shipmentName"`
	Comments              *string              `json:"comments"`
	Items                 []OrderItemRequest   `json:"items"`
	Invoice               *OrderInvoiceRequest `json:"invoice"`
}

func (r *CreateOrderRequest) Validate() error {
	r.RefNumber = strings.TrimSpace(r.RefNumber)

	v := validation.New()
	v.Required("refNumber", r.RefNumber)
	v.UUID("supplierId", r.SupplierID)
	v.UUID("forwarderId", r.ForwarderID)
	checkStatus(v, r.Status)
	checkOrderDates(v, r.OrderDate, r.DispatchDate, r.EstimatedDeliveryDate, r.ActualDeliveryDate)
	for i := range r.Items {
		r.Items[i].check(v, fmt.Sprintf("items.%d.", i))
	}
	if r.Invoice != nil {
		r.Invoice.InvoiceNumber = strings.TrimSpace(r.Invoice.InvoiceNumber)
		v.Required("invoice.invoiceNumber", r.Invoice.InvoiceNumber)
		v.Date("invoice.invoiceDate", r.Invoice.InvoiceDate)
	}
	return v.Err()
}

type UpdateOrderRequest struct {
	RefNumber             *string `json:"refNumber"`
	SupplierID            *string `json:"supplierId"`
	ForwarderID           *string `json:"forwarderId"`
	Status                *string `json:"status"`
	OrderDate             *string `json:"orderDate"`
	DispatchDate          *string `json:"dispatchDate"`
	EstimatedDeliveryDate *string `json:"estimatedDeliveryDate"`
	ActualDeliveryDate    *string `json:"actualDeliveryDate"`
	ShipmentName          *string `json:"shipmentName"`
	Comments              *string `json:"comments"`
}

func (r *UpdateOrderRequest) Validate() error {
	v := validation.New()
	if r.RefNumber != nil {
		ref := strings.TrimSpace(*r.RefNumber)
		r.RefNumber = &ref
		v.Required("refNumber", ref)
	}
	if r.SupplierID != nil {
		v.UUID("supplierId", *r.SupplierID)
	}
	if r.ForwarderID != nil {
		v.UUID("forwarderId", *r.ForwarderID)
	}
	checkStatus(v, r.Status)
	checkOrderDates(v, r.OrderDate, r.DispatchDate, r.EstimatedDeliveryDate, r.ActualDeliveryDate)
	return v.Err()
}

// fields maps present values onto column names.
func (r *UpdateOrderRequest) fields() map[string]any {
	m := map[string]any{}
	if r.RefNumber != nil {
		m["ref_number"] = *r.RefNumber
	}
	if r.SupplierID != nil {
		m["supplier_id"] = *r.SupplierID
	}
	if r.ForwarderID != nil {
		m["forwarder_id"] = *r.ForwarderID
	}
	if r.Status != nil {
		m["status"] = entity.OrderStatus(*r.Status)
	}
	dates := map[string]*string{
		"order_date":              r.OrderDate,
		"dispatch_date":           r.DispatchDate,
		"estimated_delivery_date": r.EstimatedDeliveryDate,
		"actual_delivery_date":    r.ActualDeliveryDate,
	}
	for col, val := range dates {
		if t := validation.ParseOptionalDate(val); t != nil {
			m[col] = *t
		}
	}
	if r.ShipmentName != nil {
		m["shipment_name"] = *r.ShipmentName
	}
	if r.Comments != nil {
		m["comments"] = *r.Comments
	}
	return m
}

func checkStatus(v *validation.Checker, status *string) {
	if status == nil {
		return
	}
	allowed := make([]string, 0, len(entity.OrderStatuses))
	for _, s := range entity.OrderStatuses {
		allowed = append(allowed, string(s))
	}
	v.OneOf("status", *status, allowed)
}

func checkOrderDates(v *validation.Checker, order, dispatch, estimated, actual *string) {
	for _, d := range []struct {
		field string
		value *string
	}{
		{"orderDate", order},
		{"dispatchDate", dispatch},
		{"estimatedDeliveryDate", estimated},
		{"actualDeliveryDate", actual},
	} {
		if d.value != nil {
			v.Date(d.field, *d.value)
		}
	}
}

type OrderService struct {
	Repo *repository.OrderRepository
}

func NewOrderService(repo *repository.OrderRepository) *OrderService {
	return &OrderService{Repo: repo}
}

func (s *OrderService) FindAll(ctx context.Context, q ListQuery) (*Page[entity.Order], error) {
	p := q.Params()
	data, total, err := s.Repo.List(ctx, p)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return newPage(data, total, p), nil
}

func (s *OrderService) FindOne(ctx context.Context, id string) (*entity.Order, error) {
	o, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, orderError(err)
	}
	return o, nil
}

// Create inserts the order with its items (and optional invoice) atomically,
// then returns it with every relation loaded.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*entity.Order, error) {
	order := &entity.Order{
		RefNumber:             req.RefNumber,
		SupplierID:            req.SupplierID,
		ForwarderID:           req.ForwarderID,
		OrderDate:             validation.ParseOptionalDate(req.OrderDate),
		DispatchDate:          validation.ParseOptionalDate(req.DispatchDate),
		EstimatedDeliveryDate: validation.ParseOptionalDate(req.EstimatedDeliveryDate),
		ActualDeliveryDate:    validation.ParseOptionalDate(req.ActualDeliveryDate),
		ShipmentName:          req.ShipmentName,
		Comments:              req.Comments,
	}
	if req.Status != nil {
		order.Status = entity.OrderStatus(*req.Status)
	}

	items := make([]entity.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, entity.OrderItem{
			Sku:      it.Sku,
			ItemName: strings.TrimSpace(it.ItemName),
			Quantity: it.Quantity,
			Price:    *it.Price,
			Total:    *it.Total,
		})
	}

	var inv *entity.Invoice
	if req.Invoice != nil {
		inv = &entity.Invoice{
			InvoiceNumber: req.Invoice.InvoiceNumber,
			InvoiceDate:   validation.ParseOptionalDate(&req.Invoice.InvoiceDate),
		}
	}

	if err := s.Repo.Create(ctx, order, items, inv); err != nil {
		return nil, orderError(err)
	}
	return s.FindOne(ctx, order.ID)
}

func (s *OrderService) Update(ctx context.Context, id string, req UpdateOrderRequest) (*entity.Order, error) {
	if _, err := s.FindOne(ctx, id); err != nil {
		return nil, err
	}
	if fields := req.fields(); len(fields) > 0 {
		if err := s.Repo.Update(ctx, id, fields); err != nil {
			return nil, orderError(err)
		}
	}
	return s.FindOne(ctx, id)
}

func (s *OrderService) Remove(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return orderError(err)
	}
	return nil
}

func orderError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound("Order not found")
	case errors.Is(err, repository.ErrDuplicate):
		return apperr.Conflict("Order reference or invoice number already exists", err)
	case errors.Is(err, repository.ErrReference):
		return apperr.Conflict("Supplier or forwarder does not exist", err)
	}
	return apperr.Internal(err)
}
