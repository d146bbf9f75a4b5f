package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/ports"
)

// Context keys set by Auth and OptionalAuth.
const (
	ActorKey   = "actor"
	SessionKey = "session"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session"

// SessionParser decodes a session token into the calling actor.
type SessionParser interface {
	Parse(token string) (domain.Actor, *domain.Session, error)
}

// Auth rejects requests without a valid, unrevoked session. revoker may be nil.
func Auth(parser SessionParser, revoker ports.SessionRevoker) echo.MiddlewareFunc {
	return authenticate(parser, revoker, true)
}

// OptionalAuth resolves the actor when a valid session is presented and lets
// the request through as anonymous otherwise.
func OptionalAuth(parser SessionParser, revoker ports.SessionRevoker) echo.MiddlewareFunc {
	return authenticate(parser, revoker, false)
}

func authenticate(parser SessionParser, revoker ports.SessionRevoker, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := extractToken(c)
			if err != nil {
				if required {
					return err
				}
				return next(c)
			}

			actor, session, err := parser.Parse(token)
			if err == nil {
				err = checkRevoked(c.Request().Context(), revoker, session)
			}
			if err != nil {
				if required {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
				}
				return next(c)
			}

			c.Set(ActorKey, actor)
			c.Set(SessionKey, session)
			return next(c)
		}
	}
}

// extractToken prefers the Authorization header and falls back to the cookie.
func extractToken(c echo.Context) (string, error) {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
		}
		return parts[1], nil
	}

	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return cookie.Value, nil
}

func checkRevoked(ctx context.Context, revoker ports.SessionRevoker, session *domain.Session) error {
	if revoker == nil || session == nil || session.ID == "" {
		return nil
	}
	revoked, err := revoker.IsRevoked(ctx, session.ID)
	if err != nil {
		return err
	}
	if revoked {
		return domain.ErrUnauthenticated
	}
	return nil
}
