package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fintrack/account-system/internal/core/ports"
)

type AuditHandler struct {
	auditService ports.AuditService
}

func NewAuditHandler(auditService ports.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List returns a page of audit records, most recent first, optionally
// filtered by acting administrator.
//
// @Summary      List audit records
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        actor  query     string  false  "Filter by acting identity"
// @Param        page   query     int     false  "1-based page number"
// @Param        limit  query     int     false  "Page size"
// @Success      200    {object}  ports.AuditPage
// @Failure      403    {object}  map[string]string
// @Router       /admin/audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.auditService.Query(c.Request().Context(), ports.AuditFilter{
		Actor: c.QueryParam("actor"),
	}, page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
