package ports

import (
	"context"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
)

// ProductRepository defines persistence operations for listings.
type ProductRepository interface {
	// Create returns domain.ErrDuplicateTitle when the title is taken.
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id uint) (*domain.Product, error)
	// List returns every product, or those whose title contains titleFilter
	// ignoring case when titleFilter is non-empty.
	List(ctx context.Context, titleFilter string) ([]*domain.Product, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]*domain.Product, error)
	// Update overwrites the editable fields of an existing product.
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	// Delete removes the product and all of its reviews in one transaction.
	Delete(ctx context.Context, id uint) error
}

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) (*domain.Review, error)
	FindByID(ctx context.Context, id uint) (*domain.Review, error)
	// ListByProduct returns reviews in insertion order with author names resolved.
	ListByProduct(ctx context.Context, productID uint) ([]domain.Review, error)
	Delete(ctx context.Context, id uint) error
}
