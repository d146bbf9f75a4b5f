package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/ports"
)

// CatalogService manages product listings.
type CatalogService struct {
	products ports.ProductRepository
	users    ports.UserRepository
	reviews  ports.ReviewRepository
	policy   Policy
	now      func() time.Time
	logger   zerolog.Logger
}

func NewCatalogService(products ports.ProductRepository, users ports.UserRepository, reviews ports.ReviewRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{products: products, users: users, reviews: reviews, now: time.Now, logger: logger}
}

// ListProducts returns every listing, or those whose title contains filter
// ignoring case. Descriptions are not searched.
func (s *CatalogService) ListProducts(ctx context.Context, filter string) ([]*domain.Product, error) {
	return s.products.List(ctx, strings.TrimSpace(filter))
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*domain.ProductDetail, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &domain.ProductDetail{Product: *product, Reviews: []domain.Review{}}
	if seller, err := s.users.FindByID(ctx, product.OwnerID); err == nil {
		detail.SellerName = seller.Name
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	reviews, err := s.reviews.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if reviews != nil {
		detail.Reviews = reviews
	}
	return detail, nil
}

func (s *CatalogService) CreateListing(ctx context.Context, actor domain.Actor, input ports.ListingInput) (*domain.Product, error) {
	if err := s.policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if err := validateListing(input); err != nil {
		return nil, err
	}

	created, err := s.products.Create(ctx, &domain.Product{
		OwnerID:     actor.ID,
		Title:       input.Title,
		Price:       strings.TrimSpace(input.Price),
		Stock:       input.Stock,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		DatePosted:  domain.FormatDatePosted(s.now()),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint("product_id", created.ID).Uint("owner_id", actor.ID).Msg("listing created")
	return created, nil
}

// EditListing overwrites the editable fields. The owner and posting date are
// kept.
func (s *CatalogService) EditListing(ctx context.Context, actor domain.Actor, id uint, input ports.ListingInput) (*domain.Product, error) {
	if err := s.policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanModifyProduct(actor, product); err != nil {
		return nil, err
	}
	if err := validateListing(input); err != nil {
		return nil, err
	}

	product.Title = input.Title
	product.Price = strings.TrimSpace(input.Price)
	product.Stock = input.Stock
	product.Description = input.Description
	product.ImageURL = input.ImageURL

	updated, err := s.products.Update(ctx, product)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Uint("product_id", id).Uint("actor_id", actor.ID).Msg("listing edited")
	return updated, nil
}

// DeleteListing removes the product and its reviews.
func (s *CatalogService) DeleteListing(ctx context.Context, actor domain.Actor, id uint) error {
	if err := s.policy.RequireAuthenticated(actor); err != nil {
		return err
	}
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.CanModifyProduct(actor, product); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Uint("product_id", id).Uint("actor_id", actor.ID).Msg("listing deleted")
	return nil
}

func validateListing(input ports.ListingInput) error {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Price) == "" || strings.TrimSpace(input.Description) == "" {
		return fmt.Errorf("title, price and description are required: %w", domain.ErrValidation)
	}
	if !validPrice(input.Price) {
		return fmt.Errorf("price %q must be a non-negative decimal amount: %w", input.Price, domain.ErrValidation)
	}
	return nil
}
