package handler

import (
	"time"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
	Name     string `json:"name"     form:"name"     validate:"required,max=100"`
}

type loginRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type authResponse struct {
	Token         string       `json:"token,omitempty"`
	ExpiresAt     *time.Time   `json:"expires_at,omitempty"`
	User          *domain.User `json:"user,omitempty"`
	OnboardingURL string       `json:"onboarding_url,omitempty"`
}

// --- Catalog ---

type listingRequest struct {
	Title       string `json:"title"       form:"title"       validate:"required,max=100"`
	Price       string `json:"price"       form:"price"       validate:"required,max=20"`
	Stock       int    `json:"stock"       form:"stock"       validate:"gte=0"`
	Description string `json:"description" form:"description" validate:"required"`
	ImageURL    string `json:"image_url"   form:"image_url"   validate:"max=500"`
}

type searchRequest struct {
	Query string `json:"q" form:"q" query:"q"`
}

type imageResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type reviewRequest struct {
	Text string `json:"text" form:"text" validate:"required"`
}

// --- Messaging ---

type composeRequest struct {
	ReceiverID uint   `json:"receiver_id" form:"receiver_id" validate:"required,gt=0"`
	Body       string `json:"body"        form:"body"        validate:"required"`
}

type appendMessageRequest struct {
	Body string `json:"body" form:"body" validate:"required"`
}

// --- Request → Service input ---

func toListingInput(req listingRequest) ports.ListingInput {
	return ports.ListingInput{
		Title:       req.Title,
		Price:       req.Price,
		Stock:       req.Stock,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
}

func toAuthResponse(session *domain.Session, user *domain.User) authResponse {
	resp := authResponse{User: user}
	if session != nil {
		resp.Token = session.Token
		expires := session.ExpiresAt
		resp.ExpiresAt = &expires
	}
	return resp
}
