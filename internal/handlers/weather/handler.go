package weather

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkovalenko-dev/weather-search-api/internal/location"
	"github.com/mkovalenko-dev/weather-search-api/internal/models"
)

type WeatherServicer interface {
	FetchCurrent(ctx context.Context, target location.Target) (models.WeatherObservation, error)
	FetchForecast(ctx context.Context, target location.Target) ([]models.ForecastDay, error)
}

type Handler struct {
	Service WeatherServicer
}

func NewHandler(svc WeatherServicer) *Handler {
	return &Handler{Service: svc}
}

// GetCurrent
// @Summary Get current weather
// @Description Returns normalized current conditions for a city name or "lat,lng" pair
// @Tags weather
// @Produce json
// @Param location path string true "City name or lat,lng"
// @Success 200 {object} models.WeatherObservation
// @Failure 401
// @Failure 404
// @Failure 500
// @Router /weather/current/{location} [get]
func (h *Handler) GetCurrent(c *gin.Context) {
	target := location.Resolve(c.Param("location"))

	data, err := h.Service.FetchCurrent(c.Request.Context(), target)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrLocationNotFound):
			c.JSON(http.StatusNotFound,
				gin.H{"error": "Location not found. Please check the location name and try again."})
		case errors.Is(err, models.ErrUpstreamAuth):
			c.JSON(http.StatusUnauthorized,
				gin.H{"error": "Invalid API key. Please check your OpenWeatherMap API configuration."})
		default:
			c.JSON(http.StatusInternalServerError,
				gin.H{"error": "Failed to fetch weather data. Please try again later."})
		}
		return
	}

	c.JSON(http.StatusOK, data)
}

// GetForecast
// @Summary Get 5-day forecast
// @Description Returns the forecast bucketed into at most five daily summaries
// @Tags weather
// @Produce json
// @Param location path string true "City name or lat,lng"
// @Success 200 {array} models.ForecastDay
// @Failure 404
// @Failure 500
// @Router /weather/forecast/{location} [get]
func (h *Handler) GetForecast(c *gin.Context) {
	target := location.Resolve(c.Param("location"))

	days, err := h.Service.FetchForecast(c.Request.Context(), target)
	if err != nil {
		if errors.Is(err, models.ErrLocationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found for forecast data."})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch forecast data."})
		return
	}

	c.JSON(http.StatusOK, days)
}
