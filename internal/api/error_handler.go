package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/api/metrics"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
	Stage string `json:"stage,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain errors
// to status codes and renders {"error": "<message>"}. Unexpected errors are
// logged and reported as a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var pe *domain.PayoutProviderError
	if errors.As(err, &pe) {
		metrics.ObserveProviderError(err)
		log.Warn().
			Err(err).
			Str("stage", string(pe.Stage)).
			Str("operation", pe.Operation).
			Str("path", c.Path()).
			Msg("payment provider failure")
		return http.StatusBadGateway, errorResponse{
			Error: "payment provider unavailable",
			Stage: string(pe.Stage),
		}
	}

	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidPrice):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, errorResponse{Error: domain.ErrDuplicateEmail.Error()}
	case errors.Is(err, domain.ErrDuplicateTitle):
		return http.StatusConflict, errorResponse{Error: domain.ErrDuplicateTitle.Error()}
	case errors.Is(err, domain.ErrUnknownEmail):
		return http.StatusNotFound, errorResponse{Error: domain.ErrUnknownEmail.Error()}
	case errors.Is(err, domain.ErrInvalidCredential):
		return http.StatusUnauthorized, errorResponse{Error: domain.ErrInvalidCredential.Error()}
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, errorResponse{Error: domain.ErrUnauthenticated.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: domain.ErrForbidden.Error()}
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, errorResponse{Error: domain.ErrProductNotFound.Error()}
	case errors.Is(err, domain.ErrReviewNotFound):
		return http.StatusNotFound, errorResponse{Error: domain.ErrReviewNotFound.Error()}
	case errors.Is(err, domain.ErrChatNotFound):
		return http.StatusNotFound, errorResponse{Error: domain.ErrChatNotFound.Error()}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Error: domain.ErrUserNotFound.Error()}
	case errors.Is(err, domain.ErrCheckoutNotFound):
		return http.StatusNotFound, errorResponse{Error: domain.ErrCheckoutNotFound.Error()}
	case errors.Is(err, domain.ErrOwnerMissing):
		return http.StatusConflict, errorResponse{Error: domain.ErrOwnerMissing.Error()}
	case errors.Is(err, domain.ErrSellerNotPayable):
		return http.StatusConflict, errorResponse{Error: domain.ErrSellerNotPayable.Error()}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
