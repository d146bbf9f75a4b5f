package domain

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidPrice      = errors.New("price is not a valid amount")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateTitle    = errors.New("a listing with this title already exists")
	ErrUnknownEmail      = errors.New("email not registered")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrUnauthenticated   = errors.New("authentication required")
	ErrForbidden         = errors.New("access forbidden")

	ErrUserNotFound     = errors.New("user not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrChatNotFound     = errors.New("chat not found")
	ErrCheckoutNotFound = errors.New("checkout session not found")

	ErrOwnerMissing     = errors.New("product owner missing")
	ErrSellerNotPayable = errors.New("seller has no payout account")
)
