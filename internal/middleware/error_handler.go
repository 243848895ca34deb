package middleware

import (
	"errors"
	"net/http"

	"encoreTrips/pkg/logger"

	jsonres "encoreTrips/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo HTTPErrorHandler: it keeps the error envelope
// uniform and makes sure internal errors are logged but not leaked.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
		if jsonErr := c.JSON(httpErr.Code, jsonres.Error("HTTP_ERROR", message, nil)); jsonErr != nil {
			logger.Error("Failed to write error response", "error", jsonErr)
		}
		return
	}

	logger.Error("Unhandled error", "path", c.Path(), "error", err)
	if jsonErr := c.JSON(http.StatusInternalServerError, jsonres.Error(
		"INTERNAL_ERROR", "Internal server error", nil,
	)); jsonErr != nil {
		logger.Error("Failed to write error response", "error", jsonErr)
	}
}
