package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/api/metrics"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/api/middleware"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/ports"
)

type AuthHandler struct {
	authService  ports.AuthService
	secureCookie bool
}

// NewAuthHandler builds the auth endpoints. secureCookie marks the session
// cookie Secure and should be on whenever the API is served over TLS.
func NewAuthHandler(authService ports.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

// Register creates a new seller account and opens their payout account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registrationOutcome(err)).Inc()
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues("created").Inc()

	h.setSessionCookie(c, result.Session)
	resp := toAuthResponse(result.Session, result.User)
	resp.OnboardingURL = result.OnboardingURL
	return c.JSON(http.StatusCreated, resp)
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, session)
	return c.JSON(http.StatusOK, toAuthResponse(session, user))
}

// Logout ends the current session. Calling it without a session is not an
// error; the cookie is cleared either way.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), sessionFrom(c)); err != nil {
		return err
	}
	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

func (h *AuthHandler) setSessionCookie(c echo.Context, session *domain.Session) {
	if session == nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func registrationOutcome(err error) string {
	var pe *domain.PayoutProviderError
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return "duplicate"
	case errors.As(err, &pe):
		return "provider_error"
	default:
		return "error"
	}
}
