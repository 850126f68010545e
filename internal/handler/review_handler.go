package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ordo/internal/middleware"
	"ordo/internal/service"
)

// ReviewHandler handles meal review endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReviewRequest rates a meal. Ratings run 1.0 to 5.0 in half-star steps.
type CreateReviewRequest struct {
	Rating  float64 `json:"rating" validate:"required"`
	Comment string  `json:"comment"`
}

// UpdateReviewRequest is a partial review edit.
type UpdateReviewRequest struct {
	Rating  *float64 `json:"rating"`
	Comment *string  `json:"comment"`
}

// SetHiddenRequest toggles moderation visibility.
type SetHiddenRequest struct {
	Hidden *bool `json:"hidden" validate:"required"`
}

// Create godoc
// @Summary Review a meal (also marks the caller as attending)
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Meal ID"
// @Param request body CreateReviewRequest true "Rating and comment"
// @Success 201 {object} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /meals/{id}/reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	mealID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.reviewService.Create(c.Request().Context(), middleware.Principal(c), mealID, req.Rating, req.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, review)
}

// ListByMeal godoc
// @Summary List a meal's reviews
// @Description Hidden reviews are included only for admins.
// @Tags reviews
// @Produce json
// @Param id path int true "Meal ID"
// @Success 200 {array} model.Review
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /meals/{id}/reviews [get]
func (h *ReviewHandler) ListByMeal(c echo.Context) error {
	mealID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	reviews, err := h.reviewService.ListByMeal(c.Request().Context(), middleware.Principal(c), mealID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reviews)
}

// Update godoc
// @Summary Edit your own review
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Review ID"
// @Param request body UpdateReviewRequest true "Fields to change"
// @Success 200 {object} model.Review
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /reviews/{id} [put]
func (h *ReviewHandler) Update(c echo.Context) error {
	reviewID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	review, err := h.reviewService.Update(c.Request().Context(), middleware.Principal(c), reviewID, req.Rating, req.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, review)
}

// Delete godoc
// @Summary Delete a review (owner of the review, or an admin)
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	reviewID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.reviewService.Delete(c.Request().Context(), middleware.Principal(c), reviewID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "review deleted"})
}

// SetHidden godoc
// @Summary Hide or unhide a review (admin)
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Review ID"
// @Param request body SetHiddenRequest true "Hidden flag"
// @Success 200 {object} model.Review
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /reviews/{id}/hidden [put]
func (h *ReviewHandler) SetHidden(c echo.Context) error {
	reviewID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req SetHiddenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.reviewService.SetHidden(c.Request().Context(), middleware.Principal(c), reviewID, *req.Hidden)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, review)
}

// ListByChapter godoc
// @Summary List every review in the chapter, newest first (owner)
// @Tags reviews
// @Produce json
// @Success 200 {array} model.Review
// @Security BearerAuth
// @Router /admin/reviews [get]
func (h *ReviewHandler) ListByChapter(c echo.Context) error {
	reviews, err := h.reviewService.ListByChapter(c.Request().Context(), middleware.Principal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reviews)
}
