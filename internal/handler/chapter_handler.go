package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ordo/internal/middleware"
	"ordo/internal/service"
)

// ChapterHandler handles chapter setup and access-code endpoints.
type ChapterHandler struct {
	chapterService service.ChapterService
}

// NewChapterHandler creates a new chapter handler.
func NewChapterHandler(chapterService service.ChapterService) *ChapterHandler {
	return &ChapterHandler{chapterService: chapterService}
}

// CreateChapterRequest names a new chapter.
type CreateChapterRequest struct {
	Name string `json:"name" validate:"required"`
}

// Create godoc
// @Summary Create a chapter (owner)
// @Tags chapters
// @Accept json
// @Produce json
// @Param request body CreateChapterRequest true "Chapter name"
// @Success 201 {object} model.Chapter
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /chapters [post]
func (h *ChapterHandler) Create(c echo.Context) error {
	var req CreateChapterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	chapter, err := h.chapterService.Create(c.Request().Context(), middleware.Principal(c), req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, chapter)
}

// RotateAccessCode godoc
// @Summary Rotate the chapter's access code (owner)
// @Tags chapters
// @Produce json
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /chapters/access-code [put]
func (h *ChapterHandler) RotateAccessCode(c echo.Context) error {
	code, err := h.chapterService.RotateAccessCode(c.Request().Context(), middleware.Principal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"access_code": code})
}

// Get godoc
// @Summary Get the caller's chapter
// @Tags chapters
// @Produce json
// @Success 200 {object} model.Chapter
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /chapter [get]
func (h *ChapterHandler) Get(c echo.Context) error {
	chapter, err := h.chapterService.Get(c.Request().Context(), middleware.Principal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, chapter)
}
