package ports

import (
	"context"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts the user, payout account id included, as one atomic write.
	// Returns domain.ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
