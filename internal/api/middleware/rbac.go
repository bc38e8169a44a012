package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fintrack/account-system/internal/core/domain"
)

// RequireRole gates a route on the role hierarchy: the resolved identity
// must hold at least min. Higher tiers pass implicitly, so an admin
// satisfies a moderator requirement. Anonymous requests get 401, an
// insufficient tier gets the uniform access-denied error.
func RequireRole(min domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if !id.Role.AtLeast(min) {
				return domain.ErrAccessDenied
			}
			return next(c)
		}
	}
}
