package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"encoreTrips/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ResponseError struct {
	Message string `json:"message"`
}

type (
	TripHandler struct {
		validate    *validator.Validate
		tripService TripService
	}

	TripService interface {
		GenerateTrips(ctx context.Context, userID uint, limit int) ([]domain.TripSuggestion, error)
		InProgressTrips(ctx context.Context, userID uint) ([]domain.TripSuggestion, error)
		ListTrips(ctx context.Context, userID uint) ([]domain.TripSuggestion, error)
		DeleteTrip(ctx context.Context, userID, tripID uint) error
		SubmitFeedback(ctx context.Context, userID, tripID uint, value string) error
	}

	GenerateQuery struct {
		N int `query:"n"`
	}

	TripFeedbackRequest struct {
		Value string `json:"value" validate:"required,oneof=down up double_up"`
	}
)

func NewTripHandler(svc TripService) *TripHandler {
	return &TripHandler{
		validate:    validator.New(),
		tripService: svc,
	}
}

// POST /api/v1/trips/generate?n=10
func (h *TripHandler) Generate(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q GenerateQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	// the service applies the configured default when no count is given
	trips, err := h.tripService.GenerateTrips(c.Request().Context(), userID, q.N)
	if err != nil {
		if errors.Is(err, domain.ErrNoAirport) {
			return c.JSON(http.StatusUnprocessableEntity, ResponseError{Message: "no airport could be resolved for the user or any event city"})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(trips))
}

// GET /api/v1/trips/in-progress returns and drains trips completed since the
// last poll, so a client can render them as they land.
func (h *TripHandler) InProgress(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	trips, err := h.tripService.InProgressTrips(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(trips))
}

func (h *TripHandler) List(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	trips, err := h.tripService.ListTrips(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(trips))
}

func (h *TripHandler) Delete(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	tripID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid trip id"})
	}

	if err := h.tripService.DeleteTrip(c.Request().Context(), userID, tripID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.JSON(http.StatusNotFound, ResponseError{Message: "trip not found"})
		case errors.Is(err, domain.ErrTripBooked):
			return c.JSON(http.StatusConflict, ResponseError{Message: "booked trips cannot be deleted"})
		default:
			return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
		}
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("trip deleted"))
}

func (h *TripHandler) Feedback(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	tripID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid trip id"})
	}

	var req TripFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.tripService.SubmitFeedback(c.Request().Context(), userID, tripID, req.Value); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: "trip not found"})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("feedback recorded"))
}

func parseIDParam(c echo.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
