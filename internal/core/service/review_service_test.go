package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
)

func TestReviewService_AddReview(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	svc := NewReviewService(f.reviews, f.products, zerolog.Nop())
	p, _ := f.svc.CreateListing(ctx, member(f.seller), listing("Globe", "12"))
	reader := f.users.add("Rae", "rae@example.com", "acct_rae")

	r, err := svc.AddReview(ctx, member(reader), p.ID, "spins nicely")
	if err != nil {
		t.Fatalf("AddReview returned error: %v", err)
	}
	if r.AuthorID != reader.ID || r.ProductID != p.ID || r.AuthorName != "Rae" {
		t.Fatalf("unexpected review: %+v", r)
	}

	if _, err := svc.AddReview(ctx, domain.Actor{}, p.ID, "anon"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.AddReview(ctx, member(reader), 999, "nope"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if _, err := svc.AddReview(ctx, member(reader), p.ID, "   "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestReviewService_DeleteReview_AuthorOrAdmin(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	svc := NewReviewService(f.reviews, f.products, zerolog.Nop())
	p, _ := f.svc.CreateListing(ctx, member(f.seller), listing("Clock", "25"))
	author := f.users.add("Ann", "ann@example.com", "acct_ann")

	first, _ := svc.AddReview(ctx, member(author), p.ID, "ticks")
	second, _ := svc.AddReview(ctx, member(author), p.ID, "tocks")

	if err := svc.DeleteReview(ctx, member(f.seller), first.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-author, got %v", err)
	}
	if err := svc.DeleteReview(ctx, member(author), first.ID); err != nil {
		t.Fatalf("author delete failed: %v", err)
	}
	if err := svc.DeleteReview(ctx, admin, second.ID); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if err := svc.DeleteReview(ctx, admin, second.ID); !errors.Is(err, domain.ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound, got %v", err)
	}

	if _, err := f.products.FindByID(ctx, p.ID); err != nil {
		t.Fatalf("product should survive review deletion: %v", err)
	}
}
