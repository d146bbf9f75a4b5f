package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/ports"
)

type ReviewService struct {
	reviews  ports.ReviewRepository
	products ports.ProductRepository
	policy   Policy
	logger   zerolog.Logger
}

func NewReviewService(reviews ports.ReviewRepository, products ports.ProductRepository, logger zerolog.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, products: products, logger: logger}
}

func (s *ReviewService) AddReview(ctx context.Context, actor domain.Actor, productID uint, text string) (*domain.Review, error) {
	if err := s.policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("review text is required: %w", domain.ErrValidation)
	}

	review, err := s.reviews.Create(ctx, &domain.Review{ProductID: productID, AuthorID: actor.ID, Text: text})
	if err != nil {
		return nil, err
	}
	review.AuthorName = actor.Name
	return review, nil
}

// DeleteReview removes a single review. The product is untouched.
func (s *ReviewService) DeleteReview(ctx context.Context, actor domain.Actor, reviewID uint) error {
	if err := s.policy.RequireAuthenticated(actor); err != nil {
		return err
	}
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if err := s.policy.CanDeleteReview(actor, review); err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}
	s.logger.Info().Uint("review_id", reviewID).Uint("actor_id", actor.ID).Msg("review deleted")
	return nil
}
