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

const minPartyNameLength = 2

type CreateSupplierRequest struct {
	Name string `json:"name"`
}

func (r *CreateSupplierRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	v := validation.New()
	v.MinLength("name", r.Name, minPartyNameLength)
	return v.Err()
}

type UpdateSupplierRequest struct {
	Name *string `json:"name"`
}

func (r *UpdateSupplierRequest) Validate() error {
	v := validation.New()
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
		v.MinLength("name", name, minPartyNameLength)
	}
	return v.Err()
}

func (r *UpdateSupplierRequest) fields() map[string]any {
	m := map[string]any{}
	if r.Name != nil {
		m["name"] = *r.Name
	}
	return m
}

type SupplierService struct {
	Repo *repository.SupplierRepository
}

func NewSupplierService(repo *repository.SupplierRepository) *SupplierService {
	return &SupplierService{Repo: repo}
}

func (s *SupplierService) FindAll(ctx context.Context, q ListQuery) (*Page[entity.Supplier], error) {
	p := q.Params()
	data, total, err := s.Repo.List(ctx, p)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return newPage(data, total, p), nil
}

func (s *SupplierService) FindOne(ctx context.Context, id string) (*entity.Supplier, error) {
	sup, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, supplierError(err)
	}
	return sup, nil
}

func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*entity.Supplier, error) {
	sup := &entity.Supplier{Name: req.Name}
	if err := s.Repo.Create(ctx, sup); err != nil {
		return nil, supplierError(err)
	}
	return sup, nil
}

func (s *SupplierService) Update(ctx context.Context, id string, req UpdateSupplierRequest) (*entity.Supplier, error) {
	if _, err := s.FindOne(ctx, id); err != nil {
		return nil, err
	}
	if fields := req.fields(); len(fields) > 0 {
		if err := s.Repo.Update(ctx, id, fields); err != nil {
			return nil, supplierError(err)
		}
	}
	return s.FindOne(ctx, id)
}

func (s *SupplierService) Remove(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return supplierError(err)
	}
	return nil
}

func supplierError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound("Supplier not found")
	case errors.Is(err, repository.ErrDuplicate):
		return apperr.Conflict("Supplier name already exists", err)
	case errors.Is(err, repository.ErrReference):
		return apperr.Conflict("Supplier is still referenced by orders", err)
	}
	return apperr.Internal(err)
}
