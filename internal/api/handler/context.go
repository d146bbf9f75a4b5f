package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/api/middleware"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
)

// actorFrom returns the actor resolved by the auth middleware, or the
// anonymous actor when none ran or no session was presented. Services decide
// whether anonymous is acceptable.
func actorFrom(c echo.Context) domain.Actor {
	actor, _ := c.Get(middleware.ActorKey).(domain.Actor)
	return actor
}

func sessionFrom(c echo.Context) *domain.Session {
	session, _ := c.Get(middleware.SessionKey).(*domain.Session)
	return session
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

// bindAndValidate binds the request body into req and validates it.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}
