package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"ordo/internal/auth"
	apperrors "ordo/internal/errors"
	"ordo/internal/model"
	"ordo/internal/repository"
)

const principalKey = "principal"

// Authenticate validates the bearer token and loads the referenced user as the
// request principal. Missing, expired, and malformed tokens answer with
// distinct codes; a valid token whose user no longer exists is a 404.
func Authenticate(jwtService *auth.JWTService, users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return reject(c, apperrors.ErrMissingToken)
			}
			raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if raw == "" {
				return reject(c, apperrors.ErrMissingToken)
			}

			claims, err := jwtService.ValidateToken(raw)
			if err != nil {
				return reject(c, err)
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return reject(c, apperrors.ErrUserNotFound)
				}
				return reject(c, err)
			}

			c.Set(principalKey, user)
			return next(c)
		}
	}
}

// RequireAdmin gates a route to users with admin capability (admin or owner).
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := Principal(c)
			if user == nil || !user.HasAdminCapability() {
				return reject(c, apperrors.ErrForbidden)
			}
			return next(c)
		}
	}
}

// RequireOwner gates a route to owners only.
func RequireOwner() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := Principal(c)
			if user == nil || !user.IsOwner {
				return reject(c, apperrors.ErrForbidden)
			}
			return next(c)
		}
	}
}

// Principal returns the authenticated user set by Authenticate, or nil.
func Principal(c echo.Context) *model.User {
	user, _ := c.Get(principalKey).(*model.User)
	return user
}

func reject(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}
