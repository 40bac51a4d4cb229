package weather_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mkovalenko-dev/weather-search-api/internal/location"
	"github.com/mkovalenko-dev/weather-search-api/internal/models"
	"github.com/mkovalenko-dev/weather-search-api/internal/services/weather"
)

var breakerCfg = weather.BreakerConfig{
	TimeInterval: 30 * time.Second,
	TimeTimeOut:  15 * time.Second,
	RepeatNumber: 5,
}

const breakerName = "TestProvider"

func TestBreakerProvider_Success(t *testing.T) {
	target := location.Resolve("Kyiv")
	expected := models.WeatherObservation{Location: "Kyiv, UA", Temperature: 20, Condition: "clear"}

	wrapped := &mockProvider{}
	wrapped.On("Current", mock.Anything, target).Return(expected, nil).Once()

	bp := weather.NewBreakerProvider(breakerName, breakerCfg, wrapped)

	obs, err := bp.Current(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, expected, obs)

	wrapped.AssertExpectations(t)
	wrapped.AssertNumberOfCalls(t, "Current", 1)
}

func TestBreakerProvider_PassesTypedErrorsThrough(t *testing.T) {
	target := location.Resolve("Nowhere")

	wrapped := &mockProvider{}
	wrapped.On("Current", mock.Anything, target).
		Return(models.WeatherObservation{}, models.ErrLocationNotFound).Once()

	bp := weather.NewBreakerProvider(breakerName, breakerCfg, wrapped)

	_, err := bp.Current(context.Background(), target)
	require.ErrorIs(t, err, models.ErrLocationNotFound)
}

func TestBreakerProvider_OpensAfterConsecutiveFailures(t *testing.T) {
	target := location.Resolve("Kyiv")

	wrapped := &mockProvider{}
	for i := 0; i < 5; i++ {
		wrapped.On("Current", mock.Anything, target).
			Return(models.WeatherObservation{}, models.ErrUpstreamUnavailable).Once()
	}

	bp := weather.NewBreakerProvider(breakerName, breakerCfg, wrapped)

	for i := 1; i <= 5; i++ {
		_, err := bp.Current(context.Background(), target)
		require.ErrorIs(t, err, models.ErrUpstreamUnavailable, "call #%d should fail", i)
	}

	// The sixth call is rejected by the open circuit without reaching upstream.
	_, err := bp.Current(context.Background(), target)
	require.ErrorIs(t, err, models.ErrUpstreamUnavailable)
	assert.Contains(t, err.Error(), "circuit open")

	wrapped.AssertExpectations(t)
	wrapped.AssertNumberOfCalls(t, "Current", 5)
}

func TestBreakerProvider_NotFoundDoesNotTrip(t *testing.T) {
	target := location.Resolve("Nowhere")

	wrapped := &mockProvider{}
	wrapped.On("Current", mock.Anything, target).
		Return(models.WeatherObservation{}, models.ErrLocationNotFound).Times(10)

	bp := weather.NewBreakerProvider(breakerName, breakerCfg, wrapped)

	for i := 0; i < 10; i++ {
		_, err := bp.Current(context.Background(), target)
		require.ErrorIs(t, err, models.ErrLocationNotFound)
	}

	wrapped.AssertNumberOfCalls(t, "Current", 10)
}

func TestBreakerProvider_UVFailuresDoNotBlockCurrent(t *testing.T) {
	target := location.Resolve("Kyiv")
	expected := models.WeatherObservation{Location: "Kyiv, UA", Temperature: 20, Condition: "clear"}

	wrapped := &mockProvider{}
	wrapped.On("UVIndex", mock.Anything, 50.45, 30.52).
		Return(0.0, models.ErrUpstreamUnavailable).Times(5)
	wrapped.On("Current", mock.Anything, target).Return(expected, nil).Once()

	bp := weather.NewBreakerProvider(breakerName, breakerCfg, wrapped)

	for i := 1; i <= 5; i++ {
		_, err := bp.UVIndex(context.Background(), 50.45, 30.52)
		require.ErrorIs(t, err, models.ErrUpstreamUnavailable, "call #%d should fail", i)
	}

	// The UV circuit is open now; the next UV call is rejected without
	// reaching upstream.
	_, err := bp.UVIndex(context.Background(), 50.45, 30.52)
	require.ErrorIs(t, err, models.ErrUpstreamUnavailable)
	assert.Contains(t, err.Error(), "circuit open")

	// Current still reaches the provider and succeeds.
	obs, err := bp.Current(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, expected, obs)

	wrapped.AssertExpectations(t)
	wrapped.AssertNumberOfCalls(t, "UVIndex", 5)
	wrapped.AssertNumberOfCalls(t, "Current", 1)
}

func TestBreakerProvider_CurrentFailuresDoNotBlockUV(t *testing.T) {
	target := location.Resolve("Kyiv")

	wrapped := &mockProvider{}
	wrapped.On("Current", mock.Anything, target).
		Return(models.WeatherObservation{}, models.ErrUpstreamUnavailable).Times(5)
	wrapped.On("UVIndex", mock.Anything, 50.45, 30.52).Return(6.38, nil).Once()

	bp := weather.NewBreakerProvider(breakerName, breakerCfg, wrapped)

	for i := 0; i < 5; i++ {
		_, err := bp.Current(context.Background(), target)
		require.ErrorIs(t, err, models.ErrUpstreamUnavailable)
	}

	value, err := bp.UVIndex(context.Background(), 50.45, 30.52)
	require.NoError(t, err)
	assert.Equal(t, 6.38, value)

	wrapped.AssertExpectations(t)
}
