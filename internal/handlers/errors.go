package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/anonto42/friendbook/backend/internal/middleware"
	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// httpError maps a service error onto the status it stands for. Unknown
// errors are logged and reported as 500 without detail.
func httpError(c echo.Context, err error) error {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he
	case errors.Is(err, models.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrUnauthorized), errors.Is(err, models.ErrInvalidCredential):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
}

// bindAndValidate decodes the request body into req and checks its tags
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}

func getUserIDFromContext(c echo.Context) string {
	return middleware.UserID(c)
}
