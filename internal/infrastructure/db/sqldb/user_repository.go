package sqldb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create writes the user and its payout account id in a single insert.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	rec := &userRecord{
		Email:           user.Email,
		PasswordHash:    user.PasswordHash,
		Name:            user.Name,
		PayoutAccountID: user.PayoutAccountID,
		Role:            string(user.Role),
	}
	if rec.Role == "" {
		rec.Role = string(domain.RoleMember)
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if isDuplicate(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return rec.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return rec.toDomain(), nil
}

// FindByEmail matches the email exactly as stored.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return rec.toDomain(), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var recs []userRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.User, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].toDomain())
	}
	return out, nil
}
