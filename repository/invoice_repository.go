package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mohammedmirzada/order-tracking/entity"
)

type InvoiceRepository struct {
	DB *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

func withInvoiceRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Order").Preload("Documents", newestFirst)
}

// GET /invoices
func (r *InvoiceRepository) List(ctx context.Context, p ListParams) ([]entity.Invoice, int64, error) {
	q := r.DB.WithContext(ctx).Model(&entity.Invoice{})
	if p.Search != "" {
		q = q.Where(likeClause("invoice_number"), searchPattern(p.Search))
	}
	out := []entity.Invoice{}
	total, err := paginate(q, p, &out, withInvoiceRelations)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := r.DB.WithContext(ctx).Scopes(withInvoiceRelations).Where("id = ?", id).First(&inv).Error
	if err != nil {
		return nil, classify(err)
	}
	return &inv, nil
}

func (r *InvoiceRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&entity.Invoice{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *entity.Invoice) error {
	return classify(r.DB.WithContext(ctx).Omit(clause.Associations).Create(inv).Error)
}

func (r *InvoiceRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	return classify(r.DB.WithContext(ctx).Model(&entity.Invoice{ID: id}).Updates(fields).Error)
}

func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&entity.Invoice{})
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
