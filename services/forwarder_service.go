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

type CreateForwarderRequest struct {
	Name string `json:"name"`
}

func (r *CreateForwarderRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	v := validation.New()
	v.MinLength("name", r.Name, minPartyNameLength)
	return v.Err()
}

type UpdateForwarderRequest struct {
	Name *string `json:"name"`
}

func (r *UpdateForwarderRequest) Validate() error {
	v := validation.New()
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
		v.MinLength("name", name, minPartyNameLength)
	}
	return v.Err()
}

func (r *UpdateForwarderRequest) fields() map[string]any {
	m := map[string]any{}
	if r.Name != nil {
		m["name"] = *r.Name
	}
	return m
}

type ForwarderService struct {
	Repo *repository.ForwarderRepository
}

func NewForwarderService(repo *repository.ForwarderRepository) *ForwarderService {
	return &ForwarderService{Repo: repo}
}

func (s *ForwarderService) FindAll(ctx context.Context, q ListQuery) (*Page[entity.Forwarder], error) {
	p := q.Params()
	data, total, err := s.Repo.List(ctx, p)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return newPage(data, total, p), nil
}

func (s *ForwarderService) FindOne(ctx context.Context, id string) (*entity.Forwarder, error) {
	fwd, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, forwarderError(err)
	}
	return fwd, nil
}

func (s *ForwarderService) Create(ctx context.Context, req CreateForwarderRequest) (*entity.Forwarder, error) {
	fwd := &entity.Forwarder{Name: req.Name}
	if err := s.Repo.Create(ctx, fwd); err != nil {
		return nil, forwarderError(err)
	}
	return fwd, nil
}

func (s *ForwarderService) Update(ctx context.Context, id string, req UpdateForwarderRequest) (*entity.Forwarder, error) {
	if _, err := s.FindOne(ctx, id); err != nil {
		return nil, err
	}
	if fields := req.fields(); len(fields) > 0 {
		if err := s.Repo.Update(ctx, id, fields); err != nil {
			return nil, forwarderError(err)
		}
	}
	return s.FindOne(ctx, id)
}

func (s *ForwarderService) Remove(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return forwarderError(err)
	}
	return nil
}

func forwarderError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound("Forwarder not found")
	case errors.Is(err, repository.ErrDuplicate):
		return apperr.Conflict("Forwarder name already exists", err)
	case errors.Is(err, repository.ErrReference):
		return apperr.Conflict("Forwarder is still referenced by orders", err)
	}
	return apperr.Internal(err)
}
