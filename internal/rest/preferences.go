package rest

import (
	"context"
	"net/http"

	"encoreTrips/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type (
	PreferenceHandler struct {
		validate          *validator.Validate
		preferenceService PreferenceService
	}

	PreferenceService interface {
		GetPreferences(ctx context.Context, userID uint) (domain.TravelPreferences, error)
		UpdatePreferences(ctx context.Context, prefs *domain.TravelPreferences) error
	}

	UpdatePreferencesRequest struct {
		PrimaryAirport        string   `json:"primary_airport" validate:"omitempty,len=3,alpha"`
		PreferredAirlines     []string `json:"preferred_airlines"`
		PreferredHotelBrands  []string `json:"preferred_hotel_brands"`
		RentalCarPreference   string   `json:"rental_car_preference"`
		PreferredDestinations []string `json:"preferred_destinations"`
	}
)

func NewPreferenceHandler(svc PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{
		validate:          validator.New(),
		preferenceService: svc,
	}
}

// Get lazily infers a primary airport from the user's city interests when no
// row exists yet.
func (h *PreferenceHandler) Get(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	prefs, err := h.preferenceService.GetPreferences(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(prefs))
}

func (h *PreferenceHandler) Update(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req UpdatePreferencesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	prefs := domain.TravelPreferences{
		UserID:                userID,
		PrimaryAirport:        req.PrimaryAirport,
		PreferredAirlines:     datatypes.NewJSONSlice(req.PreferredAirlines),
		PreferredHotelBrands:  datatypes.NewJSONSlice(req.PreferredHotelBrands),
		RentalCarPreference:   req.RentalCarPreference,
		PreferredDestinations: datatypes.NewJSONSlice(req.PreferredDestinations),
	}

	if err := h.preferenceService.UpdatePreferences(c.Request().Context(), &prefs); err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(prefs))
}
