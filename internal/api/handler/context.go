package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fintrack/account-system/internal/api/middleware"
	"github.com/fintrack/account-system/internal/core/domain"
)

// ctxIdentity extracts the identity resolved by the Identity middleware.
// Handlers behind RequireRole can assume it is present; the check here is a
// fast-fail for misrouted handlers.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return id, nil
}
