package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"ordo/internal/auth"
	"ordo/internal/handler"
	"ordo/internal/middleware"
	"ordo/internal/repository"
)

// CustomValidator wraps go-playground/validator for echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the given struct.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Handlers bundles every route handler for registration.
type Handlers struct {
	Auth           *handler.AuthHandler
	User           *handler.UserHandler
	Chapter        *handler.ChapterHandler
	Meal           *handler.MealHandler
	Review         *handler.ReviewHandler
	Attendance     *handler.AttendanceHandler
	LatePlate      *handler.LatePlateHandler
	Analytics      *handler.AnalyticsHandler
	Recommendation *handler.RecommendationHandler
}

// Options carries the cross-cutting dependencies the router needs beyond the
// handlers themselves.
type Options struct {
	JWTService *auth.JWTService
	Users      repository.UserRepository

	// UploadDir, when non-empty, is served under /uploads for locally stored
	// meal images.
	UploadDir string
}

// New builds the echo instance with all middleware and routes registered.
func New(h Handlers, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if opts.UploadDir != "" {
		e.Static("/uploads", opts.UploadDir)
	}

	api := e.Group("/api")

	// Public auth routes.
	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/verify-email", h.Auth.VerifyEmail)
	authGroup.POST("/resend-verification", h.Auth.ResendVerification)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/forgot-password", h.Auth.ForgotPassword)
	authGroup.POST("/reset-password", h.Auth.ResetPassword)

	// Everything below requires a session.
	secured := api.Group("", middleware.Authenticate(opts.JWTService, opts.Users))

	secured.GET("/me", h.User.Me)
	secured.PUT("/me", h.User.UpdateMe)
	secured.GET("/chapter", h.Chapter.Get)

	secured.GET("/menu", h.Meal.Menu)
	secured.GET("/meals/:id", h.Meal.Get)

	secured.POST("/meals/:id/reviews", h.Review.Create)
	secured.GET("/meals/:id/reviews", h.Review.ListByMeal)
	secured.PUT("/reviews/:id", h.Review.Update)
	secured.DELETE("/reviews/:id", h.Review.Delete)

	secured.POST("/meals/:id/attendance", h.Attendance.Toggle)
	secured.POST("/meals/:id/attendance/confirm", h.Attendance.Confirm)

	secured.POST("/meals/:id/late-plates", h.LatePlate.Request)
	secured.GET("/my/late-plates", h.LatePlate.ListMine)

	secured.POST("/recommendations", h.Recommendation.Create)

	// Admin routes (admin flag or owner).
	admin := secured.Group("", middleware.RequireAdmin())
	admin.POST("/meals", h.Meal.Create)
	admin.PUT("/meals/:id", h.Meal.Update)
	admin.DELETE("/meals/:id", h.Meal.Delete)
	admin.GET("/meals/:id/attendance", h.Attendance.Roster)
	admin.GET("/meals/:id/late-plates", h.LatePlate.ListByMeal)
	admin.PUT("/late-plates/:id/status", h.LatePlate.UpdateStatus)
	admin.PUT("/reviews/:id/hidden", h.Review.SetHidden)
	admin.GET("/recommendations", h.Recommendation.List)
	admin.DELETE("/recommendations/:id", h.Recommendation.Delete)
	admin.GET("/admin/users", h.User.List)
	admin.GET("/admin/analytics", h.Analytics.Summary)

	// Owner-only routes.
	owner := secured.Group("", middleware.RequireOwner())
	owner.POST("/chapters", h.Chapter.Create)
	owner.PUT("/chapters/access-code", h.Chapter.RotateAccessCode)
	owner.GET("/admin/reviews", h.Review.ListByChapter)
	owner.DELETE("/admin/users/:id", h.User.Delete)
	owner.PUT("/admin/users/:id/admin", h.User.SetAdmin)

	return e
}
