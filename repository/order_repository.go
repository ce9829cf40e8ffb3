package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mohammedmirzada/order-tracking/entity"
)

const itemBatchSize = 100

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

// withOrderRelations loads everything an order response carries.
func withOrderRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Supplier").
		Preload("Forwarder").
		Preload("Items").
		Preload("Invoices", newestFirst).
		Preload("Invoices.Documents", newestFirst)
}

// GET /orders
func (r *OrderRepository) List(ctx context.Context, p ListParams) ([]entity.Order, int64, error) {
	q := r.DB.WithContext(ctx).Model(&entity.Order{})
	if p.Search != "" {
		pattern := searchPattern(p.Search)
		q = q.Where(r.DB.Where(likeClause("ref_number"), pattern).Or(likeClause("shipment_name"), pattern))
	}
	out := []entity.Order{}
	total, err := paginate(q, p, &out, withOrderRelations)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GET /orders/:id
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.WithContext(ctx).
		Scopes(withOrderRelations).
		Where("id = ?", id).
		First(&o).Error
	if err != nil {
		return nil, classify(err)
	}
	return &o, nil
}

// Create writes the order, its items and the optional first invoice in one
// transaction. Nothing is kept when any insert fails.
func (r *OrderRepository) Create(ctx context.Context, o *entity.Order, items []entity.OrderItem, inv *entity.Invoice) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(o).Error; err != nil {
			return err
		}

		if len(items) > 0 {
			for i := range items {
				items[i].OrderID = o.ID
			}
			if err := tx.CreateInBatches(&items, itemBatchSize).Error; err != nil {
				return err
			}
		}

		if inv != nil {
			inv.OrderID = o.ID
			if err := tx.Omit(clause.Associations).Create(inv).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return classify(err)
}

func (r *OrderRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	return classify(r.DB.WithContext(ctx).Model(&entity.Order{ID: id}).Updates(fields).Error)
}

// Delete removes the order; items, invoices and their documents go with it.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&entity.Order{})
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
