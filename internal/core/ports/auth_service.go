package ports

import (
	"context"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
)

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// RegisterResult is returned after a successful registration. OnboardingURL is
// where the new seller must go to finish setting up their payout account.
type RegisterResult struct {
	User          *domain.User
	Session       *domain.Session
	OnboardingURL string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)
	Login(ctx context.Context, email, password string) (*domain.Session, *domain.User, error)
	Logout(ctx context.Context, session *domain.Session) error
	CurrentUser(ctx context.Context, actor domain.Actor) (*domain.User, error)
	ListUsers(ctx context.Context, actor domain.Actor) ([]*domain.User, error)
}

// PayoutService opens payout accounts at the payment processor.
type PayoutService interface {
	Onboard(ctx context.Context, email string) (accountID, onboardingURL string, err error)
}
