package weather

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkovalenko-dev/weather-search-api/internal/location"
	"github.com/mkovalenko-dev/weather-search-api/internal/models"
	"github.com/mkovalenko-dev/weather-search-api/internal/services/forecast"
)

// Provider is an upstream weather source addressed either by coordinates or
// by free-text name.
type Provider interface {
	Current(ctx context.Context, target location.Target) (models.WeatherObservation, error)
	Forecast(ctx context.Context, target location.Target) ([]models.ForecastSample, error)
	UVIndex(ctx context.Context, lat, lon float64) (float64, error)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Service orchestrates the upstream calls behind the current and forecast
// endpoints. Each call is bounded by the configured timeout.
type Service struct {
	logger   zerolog.Logger
	provider Provider
	timeout  time.Duration
}

func NewService(logger zerolog.Logger, provider Provider, timeout time.Duration) *Service {
	return &Service{logger: logger, provider: provider, timeout: timeout}
}

// FetchCurrent returns the normalized current conditions for the target.
// The UV index lookup is best-effort: its failure is logged and the index
// stays at zero, it never fails the fetch.
func (s *Service) FetchCurrent(
	ctx context.Context, target location.Target,
) (models.WeatherObservation, error) {
	currentCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	obs, err := s.provider.Current(currentCtx, target)
	if err != nil {
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Msg("current conditions fetch failed")
		return models.WeatherObservation{}, err
	}

	uvCtx, uvCancel := context.WithTimeout(ctx, s.timeout)
	defer uvCancel()

	uv, err := s.provider.UVIndex(uvCtx, obs.Coordinates.Lat, obs.Coordinates.Lng)
	if err != nil {
		s.logger.Warn().
			Ctx(ctx).
			Err(err).
			Str("location", obs.Location).
			Msg("uv index unavailable, defaulting to 0")
		return obs, nil
	}
	obs.UVIndex = int(math.Round(uv))

	return obs, nil
}

// FetchForecast returns up to five daily aggregates for the target.
func (s *Service) FetchForecast(
	ctx context.Context, target location.Target,
) ([]models.ForecastDay, error) {
	forecastCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	samples, err := s.provider.Forecast(forecastCtx, target)
	if err != nil {
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Msg("forecast fetch failed")
		return nil, err
	}

	return forecast.Bucket(samples), nil
}
