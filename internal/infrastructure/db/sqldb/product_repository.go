package sqldb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	rec := newProductRecord(p)
	rec.ID = 0
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if isDuplicate(err) {
			return nil, domain.ErrDuplicateTitle
		}
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return rec.toDomain(), nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var rec productRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return rec.toDomain(), nil
}

// List filters on title only, case-insensitively. Folding happens in Go
// because sqlite's LOWER only handles ASCII.
func (r *ProductRepository) List(ctx context.Context, titleFilter string) ([]*domain.Product, error) {
	var recs []productRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, err
	}
	if titleFilter == "" {
		return toProducts(recs), nil
	}
	needle := strings.ToLower(titleFilter)
	matched := recs[:0]
	for _, rec := range recs {
		if strings.Contains(strings.ToLower(rec.Title), needle) {
			matched = append(matched, rec)
		}
	}
	return toProducts(matched), nil
}

func (r *ProductRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*domain.Product, error) {
	var recs []productRecord
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&recs).Error; err != nil {
		return nil, err
	}
	return toProducts(recs), nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	rec := newProductRecord(p)
	res := r.db.WithContext(ctx).
		Model(&productRecord{ID: p.ID}).
		Select("title", "price", "stock", "description", "image_url").
		Updates(rec)
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return nil, domain.ErrDuplicateTitle
		}
		return nil, fmt.Errorf("update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrProductNotFound
	}
	return r.FindByID(ctx, p.ID)
}

// Delete removes the product together with its reviews.
func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&reviewRecord{}).Error; err != nil {
			return fmt.Errorf("delete reviews: %w", err)
		}
		res := tx.Delete(&productRecord{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrProductNotFound
		}
		return nil
	})
}

func toProducts(recs []productRecord) []*domain.Product {
	out := make([]*domain.Product, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].toDomain())
	}
	return out
}
