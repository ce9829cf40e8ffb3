package services

import (
	"context"
	"errors"
	"strings"

	"github.com/mohammedmirzada/order-tracking/entity"
	"github.com/mohammedmirzada/order-tracking/pkg/apperr"
	"github.com/mohammedmirzada/order-tracking/pkg/validation"
	"github.com/mohammedmirzada/order-tracking/repository"
)

type CreateInvoiceRequest struct {
	OrderID       string `json:"orderId"`
	InvoiceNumber string `json:"invoiceNumber"`
	InvoiceDate   string `json:"invoiceDate"`
}

func (r *CreateInvoiceRequest) Validate() error {
	r.InvoiceNumber = strings.TrimSpace(r.InvoiceNumber)

	v := validation.New()
	v.UUID("orderId", r.OrderID)
	v.Required("invoiceNumber", r.InvoiceNumber)
	v.Date("invoiceDate", r.InvoiceDate)
	return v.Err()
}

type UpdateInvoiceRequest struct {
	OrderID       *string `json:"orderId"`
	InvoiceNumber *string `json:"invoiceNumber"`
	InvoiceDate   *string `json:"invoiceDate"`
}

func (r *UpdateInvoiceRequest) Validate() error {
	v := validation.New()
	if r.OrderID != nil {
		v.UUID("orderId", *r.OrderID)
	}
	if r.InvoiceNumber != nil {
		n := strings.TrimSpace(*r.InvoiceNumber)
		r.InvoiceNumber = &n
		v.Required("invoiceNumber", n)
	}
	if r.InvoiceDate != nil {
		v.Date("invoiceDate", *r.InvoiceDate)
	}
	return v.Err()
}

func (r *UpdateInvoiceRequest) fields() map[string]any {
	m := map[string]any{}
	if r.OrderID != nil {
		m["order_id"] = *r.OrderID
	}
	if r.InvoiceNumber != nil {
		m["invoice_number"] = *r.InvoiceNumber
	}
	if t := validation.ParseOptionalDate(r.InvoiceDate); t != nil {
		m["invoice_date"] = *t
	}
	return m
}

type InvoiceService struct {
	Repo *repository.InvoiceRepository
}

func NewInvoiceService(repo *repository.InvoiceRepository) *InvoiceService {
	return &InvoiceService{Repo: repo}
}

func (s *InvoiceService) FindAll(ctx context.Context, q ListQuery) (*Page[entity.Invoice], error) {
	p := q.Params()
	data, total, err := s.Repo.List(ctx, p)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return newPage(data, total, p), nil
}

func (s *InvoiceService) FindOne(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, invoiceError(err)
	}
	return inv, nil
}

func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*entity.Invoice, error) {
	inv := &entity.Invoice{
		OrderID:       req.OrderID,
		InvoiceNumber: req.InvoiceNumber,
		InvoiceDate:   validation.ParseOptionalDate(&req.InvoiceDate),
	}
	if err := s.Repo.Create(ctx, inv); err != nil {
		return nil, invoiceError(err)
	}
	return s.FindOne(ctx, inv.ID)
}

func (s *InvoiceService) Update(ctx context.Context, id string, req UpdateInvoiceRequest) (*entity.Invoice, error) {
	exists, err := s.Repo.Exists(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !exists {
		return nil, apperr.NotFound("Invoice not found")
	}
	if fields := req.fields(); len(fields) > 0 {
		if err := s.Repo.Update(ctx, id, fields); err != nil {
			return nil, invoiceError(err)
		}
	}
	return s.FindOne(ctx, id)
}

func (s *InvoiceService) Remove(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return invoiceError(err)
	}
	return nil
}

func invoiceError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound("Invoice not found")
	case errors.Is(err, repository.ErrDuplicate):
		return apperr.Conflict("Invoice number already exists", err)
	case errors.Is(err, repository.ErrReference):
		return apperr.Conflict("Order does not exist", err)
	}
	return apperr.Internal(err)
}
