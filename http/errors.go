package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"eventtickets/entity"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func respondError(c echo.Context, code int, msg string) error {
	return c.JSON(code, errorResponse{Error: msg})
}

func respondValidationFailed(c echo.Context, msg string, details map[string]string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg, Details: details})
}

// respondBookingError answers rejections of the reservation engine. Other
// errors are returned unchanged and end up as 500.
func respondBookingError(c echo.Context, err error) error {
	var validationErr *entity.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return respondValidationFailed(c, "Missing required fields", validationErr.Fields)
	case errors.Is(err, entity.ErrNotFound):
		return respondError(c, http.StatusNotFound, "Event not found")
	case errors.Is(err, entity.ErrInsufficientInventory):
		return respondError(c, http.StatusBadRequest, "Not enough tickets available")
	case errors.Is(err, entity.ErrQuotaExceeded):
		return respondError(c, http.StatusBadRequest, "You have exceeded the maximum tickets per person")
	default:
		return err
	}
}
