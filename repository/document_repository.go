package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mohammedmirzada/order-tracking/entity"
)

// DocumentRepository stores invoice attachments metadata; the bytes live on disk.
type DocumentRepository struct {
	DB *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *entity.InvoiceDocument) error {
	return classify(r.DB.WithContext(ctx).Create(doc).Error)
}

// FindForInvoice only matches a document that belongs to invoiceID.
func (r *DocumentRepository) FindForInvoice(ctx context.Context, invoiceID, id string) (*entity.InvoiceDocument, error) {
	var doc entity.InvoiceDocument
	err := r.DB.WithContext(ctx).
		Where("id = ? AND invoice_id = ?", id, invoiceID).
		First(&doc).Error
	if err != nil {
		return nil, classify(err)
	}
	return &doc, nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&entity.InvoiceDocument{})
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
