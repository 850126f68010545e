package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ordo/internal/middleware"
	"ordo/internal/service"
)

// RecommendationHandler handles member meal suggestion endpoints.
type RecommendationHandler struct {
	recommendationService service.RecommendationService
}

// NewRecommendationHandler creates a new recommendation handler.
func NewRecommendationHandler(recommendationService service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

// CreateRecommendationRequest suggests a dish for future menus.
type CreateRecommendationRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Link        string `json:"link" validate:"omitempty,url"`
}

// Create godoc
// @Summary Suggest a meal
// @Tags recommendations
// @Accept json
// @Produce json
// @Param request body CreateRecommendationRequest true "Suggestion"
// @Success 201 {object} model.Recommendation
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /recommendations [post]
func (h *RecommendationHandler) Create(c echo.Context) error {
	var req CreateRecommendationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rec, err := h.recommendationService.Create(c.Request().Context(), middleware.Principal(c), req.Name, req.Description, req.Link)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, rec)
}

// List godoc
// @Summary List the chapter's meal suggestions (admin)
// @Tags recommendations
// @Produce json
// @Success 200 {array} model.Recommendation
// @Security BearerAuth
// @Router /recommendations [get]
func (h *RecommendationHandler) List(c echo.Context) error {
	recs, err := h.recommendationService.List(c.Request().Context(), middleware.Principal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, recs)
}

// Delete godoc
// @Summary Delete a meal suggestion (admin)
// @Tags recommendations
// @Produce json
// @Param id path int true "Recommendation ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /recommendations/{id} [delete]
func (h *RecommendationHandler) Delete(c echo.Context) error {
	recommendationID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.recommendationService.Delete(c.Request().Context(), middleware.Principal(c), recommendationID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "recommendation deleted"})
}
