package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/ports"
)

// PasswordHasher hashes and verifies stored credentials.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(encoded, plain string) (bool, error)
}

// AuthService implements registration, login and logout.
type AuthService struct {
	users      ports.UserRepository
	payout     ports.PayoutService
	hasher     PasswordHasher
	sessions   *SessionCodec
	revoker    ports.SessionRevoker
	adminEmail string
	policy     Policy
	logger     zerolog.Logger
}

type AuthOptions struct {
	// AdminEmail, when set, grants the admin role to the user registering with it.
	AdminEmail string
	// Revoker is optional; without it logout only clears the client cookie.
	Revoker ports.SessionRevoker
}

func NewAuthService(users ports.UserRepository, payout ports.PayoutService, hasher PasswordHasher, sessions *SessionCodec, opts AuthOptions, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		payout:     payout,
		hasher:     hasher,
		sessions:   sessions,
		revoker:    opts.Revoker,
		adminEmail: opts.AdminEmail,
		logger:     logger,
	}
}

// Register creates a user together with its payout account. The payout
// account is opened before anything is written, so a processor failure leaves
// no user row behind.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.RegisterResult, error) {
	if input.Email == "" || input.Password == "" || input.Name == "" {
		return nil, fmt.Errorf("email, password and name are required: %w", domain.ErrValidation)
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	accountID, onboardingURL, err := s.payout.Onboard(ctx, input.Email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", input.Email).Msg("payout onboarding failed")
		return nil, err
	}

	role := domain.RoleMember
	if s.adminEmail != "" && input.Email == s.adminEmail {
		role = domain.RoleAdmin
	}

	user, err := s.users.Create(ctx, &domain.User{
		Email:           input.Email,
		PasswordHash:    hash,
		Name:            input.Name,
		PayoutAccountID: accountID,
		Role:            role,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("payout_account_id", accountID).Msg("user insert failed after payout account was created")
		return nil, err
	}

	session, err := s.sessions.Issue(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return &ports.RegisterResult{User: user, Session: session, OnboardingURL: onboardingURL}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, *domain.User, error) {
	if email == "" || password == "" {
		return nil, nil, fmt.Errorf("email and password are required: %w", domain.ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil, domain.ErrUnknownEmail
	}
	if err != nil {
		return nil, nil, err
	}

	ok, err := s.hasher.Verify(user.PasswordHash, password)
	if err != nil {
		s.logger.Error().Err(err).Uint("user_id", user.ID).Msg("stored password hash unreadable")
		return nil, nil, domain.ErrInvalidCredential
	}
	if !ok {
		return nil, nil, domain.ErrInvalidCredential
	}

	session, err := s.sessions.Issue(user)
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

// Logout is idempotent. A nil session is a no-op.
func (s *AuthService) Logout(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" || s.revoker == nil {
		return nil
	}
	if err := s.revoker.Revoke(ctx, session.ID, session.ExpiresAt); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *AuthService) CurrentUser(ctx context.Context, actor domain.Actor) (*domain.User, error) {
	if err := s.policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, actor.ID)
}

func (s *AuthService) ListUsers(ctx context.Context, actor domain.Actor) ([]*domain.User, error) {
	if err := s.policy.RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}
