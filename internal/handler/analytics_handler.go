package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ordo/internal/middleware"
	"ordo/internal/service"
)

// AnalyticsHandler serves the chapter analytics rollup.
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Summary godoc
// @Summary Chapter engagement analytics (admin)
// @Description Ledger totals, top meals by attendance, best and worst rated meals, and the trailing 8-week attendance trend.
// @Tags analytics
// @Produce json
// @Success 200 {object} service.Summary
// @Security BearerAuth
// @Router /admin/analytics [get]
func (h *AnalyticsHandler) Summary(c echo.Context) error {
	summary, err := h.analyticsService.Summary(c.Request().Context(), middleware.Principal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}
