package ports

import (
	"context"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
)

// ListingInput holds the editable fields of a listing.
type ListingInput struct {
	Title       string
	Price       string
	Stock       int
	Description string
	ImageURL    string
}

type CatalogService interface {
	ListProducts(ctx context.Context, filter string) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id uint) (*domain.ProductDetail, error)
	CreateListing(ctx context.Context, actor domain.Actor, input ListingInput) (*domain.Product, error)
	EditListing(ctx context.Context, actor domain.Actor, id uint, input ListingInput) (*domain.Product, error)
	DeleteListing(ctx context.Context, actor domain.Actor, id uint) error
}

type ReviewService interface {
	AddReview(ctx context.Context, actor domain.Actor, productID uint, text string) (*domain.Review, error)
	DeleteReview(ctx context.Context, actor domain.Actor, reviewID uint) error
}
