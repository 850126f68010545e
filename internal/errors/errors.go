package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrMissingToken is returned when no bearer token accompanies the request.
	ErrMissingToken = errors.New("token is missing")
	// ErrTokenExpired is returned when the session token is past its expiry.
	ErrTokenExpired = errors.New("token has expired")
	// ErrInvalidToken is returned when the session token fails validation.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrDuplicateEmail is returned when a verified account already uses the email.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidOrExpiredToken is returned for unknown or stale verification and reset tokens.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	// ErrPasswordTooShort is returned when a new password is under 6 characters.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	// ErrAccessCodeRequired is returned when registering without a code while chapters exist.
	ErrAccessCodeRequired = errors.New("access code is required")
	// ErrInvalidAccessCode is returned when no chapter matches the access code.
	ErrInvalidAccessCode = errors.New("invalid access code")

	// ErrForbidden is returned when the caller's role is insufficient.
	ErrForbidden = errors.New("forbidden")
	// ErrCannotDemoteOwner is returned when an owner's admin flag is targeted.
	ErrCannotDemoteOwner = errors.New("cannot demote an owner")
	// ErrCannotDeleteOwner is returned when deleting another owner is attempted.
	ErrCannotDeleteOwner = errors.New("cannot delete an owner")

	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrChapterNotFound is returned when the referenced chapter does not exist.
	ErrChapterNotFound = errors.New("chapter not found")
	// ErrMealNotFound is returned when the referenced meal does not exist or is out of chapter.
	ErrMealNotFound = errors.New("meal not found")
	// ErrReviewNotFound is returned when the referenced review does not exist or is out of chapter.
	ErrReviewNotFound = errors.New("review not found")
	// ErrLatePlateNotFound is returned when the referenced late plate does not exist or is out of chapter.
	ErrLatePlateNotFound = errors.New("late plate not found")
	// ErrRecommendationNotFound is returned when the referenced recommendation does not exist.
	ErrRecommendationNotFound = errors.New("recommendation not found")

	// ErrAlreadyReviewed is returned on a second review for the same meal.
	ErrAlreadyReviewed = errors.New("you have already reviewed this meal")
	// ErrInvalidRating is returned for ratings outside 1.0-5.0 or off the half-star grid.
	ErrInvalidRating = errors.New("rating must be between 1.0 and 5.0 in half star increments")
	// ErrAttendanceResolved is returned when toggling attendance after the row was resolved.
	ErrAttendanceResolved = errors.New("attendance has already been confirmed for this meal")
	// ErrMealNotYetPast is returned when confirming attendance before the meal time.
	ErrMealNotYetPast = errors.New("meal has not happened yet")
	// ErrNotAttending is returned when confirming attendance without a marked row.
	ErrNotAttending = errors.New("you are not marked as attending this meal")
	// ErrMealInPast is returned when requesting a late plate for a past meal.
	ErrMealInPast = errors.New("meal is in the past")
	// ErrDeadlinePassed is returned when the late-plate cutoff has elapsed.
	ErrDeadlinePassed = errors.New("late plate deadline has passed")
	// ErrDuplicateRequest is returned on a second late-plate request for the same meal today.
	ErrDuplicateRequest = errors.New("you have already requested a late plate for this meal today")
	// ErrInvalidTimeFormat is returned for malformed pickup times.
	ErrInvalidTimeFormat = errors.New("pickup time must be 24-hour HH:MM")
	// ErrInvalidStatus is returned for late-plate status values other than approved/denied.
	ErrInvalidStatus = errors.New("status must be approved or denied")

	// ErrImageUploadFailed is returned when the image store rejects an upload.
	ErrImageUploadFailed = errors.New("image upload failed")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors collapse to
// a generic 500 so no internal detail reaches the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrMissingToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "MISSING_TOKEN")
	case errors.Is(err, ErrTokenExpired):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "TOKEN_EXPIRED")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidOrExpiredToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_OR_EXPIRED_TOKEN")
	case errors.Is(err, ErrDuplicateEmail):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_EMAIL")
	case errors.Is(err, ErrAlreadyReviewed):
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_REVIEWED")
	case errors.Is(err, ErrDuplicateRequest):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_REQUEST")
	case errors.Is(err, ErrAttendanceResolved):
		return NewHTTPError(http.StatusConflict, err.Error(), "ATTENDANCE_RESOLVED")
	case errors.Is(err, ErrPasswordTooShort):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PASSWORD_TOO_SHORT")
	case errors.Is(err, ErrAccessCodeRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ACCESS_CODE_REQUIRED")
	case errors.Is(err, ErrInvalidAccessCode):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ACCESS_CODE")
	case errors.Is(err, ErrInvalidRating):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_RATING")
	case errors.Is(err, ErrMealNotYetPast):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MEAL_NOT_YET_PAST")
	case errors.Is(err, ErrNotAttending):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NOT_ATTENDING")
	case errors.Is(err, ErrMealInPast):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MEAL_IN_PAST")
	case errors.Is(err, ErrDeadlinePassed):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DEADLINE_PASSED")
	case errors.Is(err, ErrInvalidTimeFormat):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_TIME_FORMAT")
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrCannotDemoteOwner):
		return NewHTTPError(http.StatusForbidden, err.Error(), "CANNOT_DEMOTE_OWNER")
	case errors.Is(err, ErrCannotDeleteOwner):
		return NewHTTPError(http.StatusForbidden, err.Error(), "CANNOT_DELETE_OWNER")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrChapterNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CHAPTER_NOT_FOUND")
	case errors.Is(err, ErrMealNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "MEAL_NOT_FOUND")
	case errors.Is(err, ErrReviewNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "REVIEW_NOT_FOUND")
	case errors.Is(err, ErrLatePlateNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "LATE_PLATE_NOT_FOUND")
	case errors.Is(err, ErrRecommendationNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "RECOMMENDATION_NOT_FOUND")
	case errors.Is(err, ErrImageUploadFailed):
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "IMAGE_UPLOAD_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
