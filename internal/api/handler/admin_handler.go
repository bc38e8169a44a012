package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fintrack/account-system/internal/api/metrics"
	"github.com/fintrack/account-system/internal/core/domain"
	"github.com/fintrack/account-system/internal/core/ports"
)

// AdminHandler exposes the privileged account mutations. Route-level role
// guards keep anonymous and under-privileged callers out; the moderation
// service re-checks everything against live account state.
type AdminHandler struct {
	moderation ports.ModerationService
}

func NewAdminHandler(moderation ports.ModerationService) *AdminHandler {
	return &AdminHandler{moderation: moderation}
}

type createAccountRequest struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8"`
	Role     domain.Role `json:"role" validate:"required,oneof=user moderator admin"`
}

type changeRoleRequest struct {
	Role domain.Role `json:"role" validate:"required,oneof=user moderator admin"`
}

// Create provisions an account with an explicit role.
//
// @Summary      Create an account with a role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAccountRequest  true  "New account"
// @Success      201   {object}  domain.Account
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /admin/accounts [post]
func (h *AdminHandler) Create(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.moderation.Create(c.Request().Context(), actor, req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}

	metrics.ModerationActionsTotal.WithLabelValues(string(domain.AuditCreate)).Inc()
	return c.JSON(http.StatusCreated, account)
}

// Ban moves the target account into the banned state.
//
// @Summary      Ban an account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Target account email"
// @Success      200    {object}  domain.Account
// @Failure      403    {object}  map[string]string
// @Router       /admin/accounts/{email}/ban [post]
func (h *AdminHandler) Ban(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	account, err := h.moderation.Ban(c.Request().Context(), actor, c.Param("email"))
	if err != nil {
		return err
	}

	metrics.ModerationActionsTotal.WithLabelValues(string(domain.AuditBan)).Inc()
	return c.JSON(http.StatusOK, account)
}

// Unban moves the target account back into the active state.
//
// @Summary      Unban an account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Target account email"
// @Success      200    {object}  domain.Account
// @Failure      403    {object}  map[string]string
// @Router       /admin/accounts/{email}/unban [post]
func (h *AdminHandler) Unban(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	account, err := h.moderation.Unban(c.Request().Context(), actor, c.Param("email"))
	if err != nil {
		return err
	}

	metrics.ModerationActionsTotal.WithLabelValues(string(domain.AuditUnban)).Inc()
	return c.JSON(http.StatusOK, account)
}

// ChangeRole assigns a new role to the target account.
//
// @Summary      Change an account's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string             true  "Target account email"
// @Param        body   body      changeRoleRequest  true  "New role"
// @Success      200    {object}  domain.Account
// @Failure      403    {object}  map[string]string
// @Router       /admin/accounts/{email}/role [put]
func (h *AdminHandler) ChangeRole(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.moderation.ChangeRole(c.Request().Context(), actor, c.Param("email"), req.Role)
	if err != nil {
		return err
	}

	metrics.ModerationActionsTotal.WithLabelValues("ROLE_CHANGE").Inc()
	return c.JSON(http.StatusOK, account)
}

// Delete removes the target account.
//
// @Summary      Delete an account
// @Tags         admin
// @Security     BearerAuth
// @Param        email  path  string  true  "Target account email"
// @Success      204
// @Failure      403    {object}  map[string]string
// @Router       /admin/accounts/{email} [delete]
func (h *AdminHandler) Delete(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.moderation.Delete(c.Request().Context(), actor, c.Param("email")); err != nil {
		return err
	}

	metrics.ModerationActionsTotal.WithLabelValues(string(domain.AuditDelete)).Inc()
	return c.NoContent(http.StatusNoContent)
}
