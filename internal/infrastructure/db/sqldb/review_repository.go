package sqldb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) (*domain.Review, error) {
	rec := &reviewRecord{ProductID: rv.ProductID, AuthorID: rv.AuthorID, Text: rv.Text}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}
	return rec.toDomain(), nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id uint) (*domain.Review, error) {
	var rec reviewRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, err
	}
	return rec.toDomain(), nil
}

type reviewRow struct {
	ID         uint
	ProductID  uint
	AuthorID   uint
	Text       string
	AuthorName string
}

func (r *ReviewRepository) ListByProduct(ctx context.Context, productID uint) ([]domain.Review, error) {
	var rows []reviewRow
	err := r.db.WithContext(ctx).
		Table("reviews").
		Select("reviews.id, reviews.product_id, reviews.author_id, reviews.text, users.name AS author_name").
		Joins("LEFT JOIN users ON users.id = reviews.author_id").
		Where("reviews.product_id = ?", productID).
		Order("reviews.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Review, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Review{
			ID:         row.ID,
			ProductID:  row.ProductID,
			AuthorID:   row.AuthorID,
			AuthorName: row.AuthorName,
			Text:       row.Text,
		})
	}
	return out, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&reviewRecord{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}
