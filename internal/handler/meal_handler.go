package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"ordo/internal/middleware"
	"ordo/internal/service"
)

// MealHandler handles the menu and admin meal management endpoints.
type MealHandler struct {
	mealService service.MealService
}

// NewMealHandler creates a new meal handler.
func NewMealHandler(mealService service.MealService) *MealHandler {
	return &MealHandler{mealService: mealService}
}

// Menu godoc
// @Summary List the chapter's meals ordered by date
// @Tags meals
// @Produce json
// @Success 200 {array} model.Meal
// @Security BearerAuth
// @Router /menu [get]
func (h *MealHandler) Menu(c echo.Context) error {
	meals, err := h.mealService.Menu(c.Request().Context(), middleware.Principal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, meals)
}

// Get godoc
// @Summary Get one meal
// @Tags meals
// @Produce json
// @Param id path int true "Meal ID"
// @Success 200 {object} model.Meal
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /meals/{id} [get]
func (h *MealHandler) Get(c echo.Context) error {
	mealID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	meal, err := h.mealService.Get(c.Request().Context(), middleware.Principal(c), mealID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, meal)
}

// Create godoc
// @Summary Create a meal (admin)
// @Description Multipart form: meal_date (ISO 8601), meal_type, dish_name, description, late_plate_hours_before, image.
// @Tags meals
// @Accept mpfd
// @Produce json
// @Success 201 {object} model.Meal
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /meals [post]
func (h *MealHandler) Create(c echo.Context) error {
	input, httpErr := bindMealForm(c)
	if httpErr != nil {
		return httpErr
	}
	if input.MealType == "" || input.DishName == "" || input.MealDate.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "meal_date, meal_type, and dish_name are required")
	}

	meal, err := h.mealService.Create(c.Request().Context(), middleware.Principal(c), *input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, meal)
}

// Update godoc
// @Summary Update a meal (admin)
// @Tags meals
// @Accept mpfd
// @Produce json
// @Param id path int true "Meal ID"
// @Success 200 {object} model.Meal
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /meals/{id} [put]
func (h *MealHandler) Update(c echo.Context) error {
	mealID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	input, httpErr := bindMealForm(c)
	if httpErr != nil {
		return httpErr
	}

	update := service.MealUpdate{
		LatePlateHoursBefore: input.LatePlateHoursBefore,
		Image:                input.Image,
	}
	if !input.MealDate.IsZero() {
		update.MealDate = &input.MealDate
	}
	if input.MealType != "" {
		update.MealType = &input.MealType
	}
	if input.DishName != "" {
		update.DishName = &input.DishName
	}
	if c.FormValue("description") != "" || formHasField(c, "description") {
		update.Description = &input.Description
	}

	meal, err := h.mealService.Update(c.Request().Context(), middleware.Principal(c), mealID, update)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, meal)
}

// Delete godoc
// @Summary Delete a meal and its ledger rows (admin)
// @Tags meals
// @Produce json
// @Param id path int true "Meal ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /meals/{id} [delete]
func (h *MealHandler) Delete(c echo.Context) error {
	mealID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.mealService.Delete(c.Request().Context(), middleware.Principal(c), mealID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "meal deleted"})
}

// bindMealForm reads the shared multipart shape used by meal create and update.
func bindMealForm(c echo.Context) (*service.MealInput, error) {
	input := &service.MealInput{
		MealType:    c.FormValue("meal_type"),
		DishName:    c.FormValue("dish_name"),
		Description: c.FormValue("description"),
	}

	if raw := c.FormValue("meal_date"); raw != "" {
		date, ok := parseMealDate(raw)
		if !ok {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "meal_date must be an ISO 8601 datetime")
		}
		input.MealDate = date
	}

	if raw := c.FormValue("late_plate_hours_before"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours < 0 {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "late_plate_hours_before must be a non-negative integer")
		}
		input.LatePlateHoursBefore = &hours
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "could not read uploaded image")
		}
		input.Image = &service.ImageUpload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Reader:      file,
		}
	}
	return input, nil
}

func formHasField(c echo.Context, name string) bool {
	form, err := c.MultipartForm()
	if err != nil {
		return false
	}
	_, ok := form.Value[name]
	return ok
}
