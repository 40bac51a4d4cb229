package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/mkovalenko-dev/weather-search-api/internal/location"
	"github.com/mkovalenko-dev/weather-search-api/internal/models"
)

type BreakerConfig struct {
	TimeInterval time.Duration
	TimeTimeOut  time.Duration
	RepeatNumber uint32
}

// BreakerProvider guards the upstream provider with circuit breakers. It
// fails fast while a circuit is open and never retries on behalf of the
// caller. A missing location is not counted as a provider failure. The
// best-effort UV lookup runs on its own circuit: its failures must stay
// invisible to Current and Forecast, which keep serving while the UV
// circuit is open.
type BreakerProvider struct {
	name    string
	cb      *gobreaker.CircuitBreaker
	uvCB    *gobreaker.CircuitBreaker
	wrapped Provider
}

func NewBreakerProvider(name string, cfg BreakerConfig, wrapped Provider) *BreakerProvider {
	return &BreakerProvider{
		name:    name,
		cb:      gobreaker.NewCircuitBreaker(newSettings(name, cfg)),
		uvCB:    gobreaker.NewCircuitBreaker(newSettings(name+"-uv", cfg)),
		wrapped: wrapped,
	}
}

func newSettings(name string, cfg BreakerConfig) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.TimeInterval,
		Timeout:     cfg.TimeTimeOut,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.RepeatNumber
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, models.ErrLocationNotFound)
		},
	}
}

func (b *BreakerProvider) Current(
	ctx context.Context, target location.Target,
) (models.WeatherObservation, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.wrapped.Current(ctx, target)
	})
	if err != nil {
		return models.WeatherObservation{}, b.mapError(err)
	}
	obs, ok := result.(models.WeatherObservation)
	if !ok {
		return models.WeatherObservation{},
			fmt.Errorf("%s returned unexpected result", b.name)
	}
	return obs, nil
}

func (b *BreakerProvider) Forecast(
	ctx context.Context, target location.Target,
) ([]models.ForecastSample, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.wrapped.Forecast(ctx, target)
	})
	if err != nil {
		return nil, b.mapError(err)
	}
	samples, ok := result.([]models.ForecastSample)
	if !ok {
		return nil, fmt.Errorf("%s returned unexpected result", b.name)
	}
	return samples, nil
}

func (b *BreakerProvider) UVIndex(ctx context.Context, lat, lon float64) (float64, error) {
	result, err := b.uvCB.Execute(func() (interface{}, error) {
		return b.wrapped.UVIndex(ctx, lat, lon)
	})
	if err != nil {
		return 0, b.mapError(err)
	}
	value, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("%s returned unexpected result", b.name)
	}
	return value, nil
}

// mapError keeps typed provider errors intact and translates the breaker's
// own open/half-open rejections into the unavailable kind.
func (b *BreakerProvider) mapError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %s circuit open", models.ErrUpstreamUnavailable, b.name)
	}
	return err
}
