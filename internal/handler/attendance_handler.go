package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ordo/internal/middleware"
	"ordo/internal/service"
)

// AttendanceHandler handles attendance toggle, confirmation, and roster
// endpoints.
type AttendanceHandler struct {
	attendanceService service.AttendanceService
}

// NewAttendanceHandler creates a new attendance handler.
func NewAttendanceHandler(attendanceService service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// ConfirmAttendanceRequest resolves a marked attendance after the meal.
type ConfirmAttendanceRequest struct {
	Ate *bool `json:"ate" validate:"required"`
}

// Toggle godoc
// @Summary Toggle the caller's attendance mark for a meal
// @Tags attendance
// @Produce json
// @Param id path int true "Meal ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /meals/{id}/attendance [post]
func (h *AttendanceHandler) Toggle(c echo.Context) error {
	mealID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	attending, err := h.attendanceService.Toggle(c.Request().Context(), middleware.Principal(c), mealID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"attending": attending})
}

// Confirm godoc
// @Summary Confirm whether the caller actually ate, after the meal
// @Tags attendance
// @Accept json
// @Produce json
// @Param id path int true "Meal ID"
// @Param request body ConfirmAttendanceRequest true "Whether the caller ate"
// @Success 200 {object} model.MealAttendance
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /meals/{id}/attendance/confirm [post]
func (h *AttendanceHandler) Confirm(c echo.Context) error {
	mealID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req ConfirmAttendanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	attendance, err := h.attendanceService.Confirm(c.Request().Context(), middleware.Principal(c), mealID, *req.Ate)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, attendance)
}

// Roster godoc
// @Summary List who is attending a meal (admin)
// @Tags attendance
// @Produce json
// @Param id path int true "Meal ID"
// @Success 200 {array} model.MealAttendance
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /meals/{id}/attendance [get]
func (h *AttendanceHandler) Roster(c echo.Context) error {
	mealID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	roster, err := h.attendanceService.Roster(c.Request().Context(), middleware.Principal(c), mealID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, roster)
}
