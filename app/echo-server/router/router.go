package router

import (
	"encoreTrips/internal/middleware"
	"encoreTrips/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetTripRoutes(api *echo.Group, handler *rest.TripHandler) {
	trips := api.Group("/trips", middleware.AuthMiddleware())

	trips.POST("/generate", handler.Generate)
	trips.GET("/in-progress", handler.InProgress)
	trips.GET("", handler.List)
	trips.DELETE("/:id", handler.Delete)
	trips.POST("/:id/feedback", handler.Feedback)
}

func SetPreferenceRoutes(api *echo.Group, handler *rest.PreferenceHandler) {
	prefs := api.Group("/preferences", middleware.AuthMiddleware())

	prefs.GET("", handler.Get)
	prefs.PUT("", handler.Update)
}
