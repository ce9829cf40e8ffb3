package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/mohammedmirzada/order-tracking/entity"
	"github.com/mohammedmirzada/order-tracking/pkg/apperr"
	"github.com/mohammedmirzada/order-tracking/pkg/validation"
	"github.com/mohammedmirzada/order-tracking/repository"
	"github.com/mohammedmirzada/order-tracking/utils"
)

// DocumentService attaches uploaded files to invoices.
type DocumentService struct {
	Repo     *repository.DocumentRepository
	Invoices *repository.InvoiceRepository
	Dir      string
	MaxBytes int64
}

func NewDocumentService(repo *repository.DocumentRepository, invoices *repository.InvoiceRepository, dir string, maxBytes int64) *DocumentService {
	return &DocumentService{Repo: repo, Invoices: invoices, Dir: dir, MaxBytes: maxBytes}
}

func (s *DocumentService) Attach(ctx context.Context, invoiceID string, fh *multipart.FileHeader) (*entity.InvoiceDocument, error) {
	exists, err := s.Invoices.Exists(ctx, invoiceID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !exists {
		return nil, apperr.NotFound("Invoice not found")
	}

	v := validation.New()
	switch {
	case fh == nil:
		v.Add("file", "file should not be empty")
	case fh.Size > s.MaxBytes:
		v.Add("file", "file must not be larger than %d bytes", s.MaxBytes)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	stored, err := utils.SaveUpload(fh, s.Dir)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("save upload: %w", err))
	}

	doc := &entity.InvoiceDocument{
		InvoiceID:    invoiceID,
		Filename:     stored.Filename,
		OriginalName: fh.Filename,
		Filepath:     stored.Path,
		Mimetype:     fh.Header.Get("Content-Type"),
		Size:         stored.Size,
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		_ = utils.RemoveUpload(stored.Path)
		if errors.Is(err, repository.ErrReference) {
			return nil, apperr.NotFound("Invoice not found")
		}
		return nil, apperr.Internal(err)
	}
	return doc, nil
}

// Detach deletes the row first; a leftover file is only logged.
func (s *DocumentService) Detach(ctx context.Context, invoiceID, documentID string) error {
	doc, err := s.Repo.FindForInvoice(ctx, invoiceID, documentID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("Document not found")
	}
	if err != nil {
		return apperr.Internal(err)
	}

	if err := s.Repo.Delete(ctx, doc.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Document not found")
		}
		return apperr.Internal(err)
	}
	if err := utils.RemoveUpload(doc.Filepath); err != nil {
		log.Printf("remove %s: %v", doc.Filepath, err)
	}
	return nil
}
