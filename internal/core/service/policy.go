package service

import (
	"fmt"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
)

// Policy is the single authorization check consulted by every mutating
// operation. Ownership rules live here and nowhere else.
type Policy struct{}

func (Policy) RequireAuthenticated(actor domain.Actor) error {
	if !actor.Authenticated() {
		return domain.ErrUnauthenticated
	}
	return nil
}

// RequireAdmin fails unless the actor holds the admin role.
func (p Policy) RequireAdmin(actor domain.Actor) error {
	if err := p.RequireAuthenticated(actor); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return fmt.Errorf("admin role required: %w", domain.ErrForbidden)
	}
	return nil
}

// CanModifyProduct allows the listing owner or an admin.
func (p Policy) CanModifyProduct(actor domain.Actor, product *domain.Product) error {
	if err := p.RequireAuthenticated(actor); err != nil {
		return err
	}
	if actor.IsAdmin() || product.OwnerID == actor.ID {
		return nil
	}
	return fmt.Errorf("product %d is not owned by user %d: %w", product.ID, actor.ID, domain.ErrForbidden)
}

// CanDeleteReview allows the review author or an admin.
func (p Policy) CanDeleteReview(actor domain.Actor, review *domain.Review) error {
	if err := p.RequireAuthenticated(actor); err != nil {
		return err
	}
	if actor.IsAdmin() || review.AuthorID == actor.ID {
		return nil
	}
	return fmt.Errorf("review %d was not written by user %d: %w", review.ID, actor.ID, domain.ErrForbidden)
}

// CanAccessChat allows only the two chat participants.
func (p Policy) CanAccessChat(actor domain.Actor, chat *domain.Chat) error {
	if err := p.RequireAuthenticated(actor); err != nil {
		return err
	}
	if !chat.HasParticipant(actor.ID) {
		return fmt.Errorf("user %d is not in chat %d: %w", actor.ID, chat.ID, domain.ErrForbidden)
	}
	return nil
}
