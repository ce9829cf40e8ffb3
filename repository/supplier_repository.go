package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mohammedmirzada/order-tracking/entity"
)

type SupplierRepository struct {
	DB *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{DB: db}
}

// List returns one page of suppliers, optionally filtered by name.
func (r *SupplierRepository) List(ctx context.Context, p ListParams) ([]entity.Supplier, int64, error) {
	q := r.DB.WithContext(ctx).Model(&entity.Supplier{})
	if p.Search != "" {
		q = q.Where(likeClause("name"), searchPattern(p.Search))
	}
	out := []entity.Supplier{}
	total, err := paginate(q, p, &out)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *SupplierRepository) FindByID(ctx context.Context, id string) (*entity.Supplier, error) {
	var s entity.Supplier
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, classify(err)
	}
	return &s, nil
}

func (r *SupplierRepository) Create(ctx context.Context, s *entity.Supplier) error {
	return classify(r.DB.WithContext(ctx).Create(s).Error)
}

func (r *SupplierRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	return classify(r.DB.WithContext(ctx).Model(&entity.Supplier{ID: id}).Updates(fields).Error)
}

// Delete fails with ErrReference while an order still points at the row.
func (r *SupplierRepository) Delete(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&entity.Supplier{})
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
