package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ordo/internal/middleware"
	"ordo/internal/service"
)

// LatePlateHandler handles late-plate request and review endpoints.
type LatePlateHandler struct {
	latePlateService service.LatePlateService
}

// NewLatePlateHandler creates a new late-plate handler.
func NewLatePlateHandler(latePlateService service.LatePlateService) *LatePlateHandler {
	return &LatePlateHandler{latePlateService: latePlateService}
}

// LatePlateRequest files a late plate for today's instance of a meal.
type LatePlateRequest struct {
	Notes      string `json:"notes"`
	PickupTime string `json:"pickup_time"`
}

// UpdateLatePlateStatusRequest approves or denies a pending request.
type UpdateLatePlateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Request godoc
// @Summary Request a late plate for a meal
// @Tags late-plates
// @Accept json
// @Produce json
// @Param id path int true "Meal ID"
// @Param request body LatePlateRequest true "Notes and optional pickup time (HH:MM)"
// @Success 201 {object} model.LatePlate
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /meals/{id}/late-plates [post]
func (h *LatePlateHandler) Request(c echo.Context) error {
	mealID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req LatePlateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	latePlate, err := h.latePlateService.Request(c.Request().Context(), middleware.Principal(c), mealID, req.Notes, req.PickupTime)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, latePlate)
}

// ListMine godoc
// @Summary List the caller's late-plate requests
// @Tags late-plates
// @Produce json
// @Success 200 {array} model.LatePlate
// @Security BearerAuth
// @Router /my/late-plates [get]
func (h *LatePlateHandler) ListMine(c echo.Context) error {
	latePlates, err := h.latePlateService.ListMine(c.Request().Context(), middleware.Principal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, latePlates)
}

// ListByMeal godoc
// @Summary List a meal's late-plate requests (admin)
// @Tags late-plates
// @Produce json
// @Param id path int true "Meal ID"
// @Success 200 {array} model.LatePlate
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /meals/{id}/late-plates [get]
func (h *LatePlateHandler) ListByMeal(c echo.Context) error {
	mealID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	latePlates, err := h.latePlateService.ListByMeal(c.Request().Context(), middleware.Principal(c), mealID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, latePlates)
}

// UpdateStatus godoc
// @Summary Approve or deny a pending late plate (admin)
// @Tags late-plates
// @Accept json
// @Produce json
// @Param id path int true "Late plate ID"
// @Param request body UpdateLatePlateStatusRequest true "New status: approved or denied"
// @Success 200 {object} model.LatePlate
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /late-plates/{id}/status [put]
func (h *LatePlateHandler) UpdateStatus(c echo.Context) error {
	latePlateID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateLatePlateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	latePlate, err := h.latePlateService.UpdateStatus(c.Request().Context(), middleware.Principal(c), latePlateID, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, latePlate)
}
