package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mohammedmirzada/order-tracking/entity"
)

type ForwarderRepository struct {
	DB *gorm.DB
}

func NewForwarderRepository(db *gorm.DB) *ForwarderRepository {
	return &ForwarderRepository{DB: db}
}

// List is the forwarder counterpart of SupplierRepository.List.
func (r *ForwarderRepository) List(ctx context.Context, p ListParams) ([]entity.Forwarder, int64, error) {
	q := r.DB.WithContext(ctx).Model(&entity.Forwarder{})
	if p.Search != "" {
		q = q.Where(likeClause("name"), searchPattern(p.Search))
	}
	out := []entity.Forwarder{}
	total, err := paginate(q, p, &out)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *ForwarderRepository) FindByID(ctx context.Context, id string) (*entity.Forwarder, error) {
	var f entity.Forwarder
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		return nil, classify(err)
	}
	return &f, nil
}

func (r *ForwarderRepository) Create(ctx context.Context, f *entity.Forwarder) error {
	return classify(r.DB.WithContext(ctx).Create(f).Error)
}

func (r *ForwarderRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	return classify(r.DB.WithContext(ctx).Model(&entity.Forwarder{ID: id}).Updates(fields).Error)
}

// Delete fails with ErrReference while an order still points at the row.
func (r *ForwarderRepository) Delete(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&entity.Forwarder{})
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
