package weather_test

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"

	"github.com/mkovalenko-dev/weather-search-api/internal/location"
	"github.com/mkovalenko-dev/weather-search-api/internal/models"
)

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)

	resp, ok := args.Get(0).(*http.Response)
	if !ok {
		return nil, args.Error(1)
	}
	return resp, args.Error(1)
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Current(
	ctx context.Context, target location.Target,
) (models.WeatherObservation, error) {
	args := m.Called(ctx, target)

	obs, ok := args.Get(0).(models.WeatherObservation)
	if !ok {
		return models.WeatherObservation{}, args.Error(1)
	}
	return obs, args.Error(1)
}

func (m *mockProvider) Forecast(
	ctx context.Context, target location.Target,
) ([]models.ForecastSample, error) {
	args := m.Called(ctx, target)

	samples, ok := args.Get(0).([]models.ForecastSample)
	if !ok {
		return nil, args.Error(1)
	}
	return samples, args.Error(1)
}

func (m *mockProvider) UVIndex(ctx context.Context, lat, lon float64) (float64, error) {
	args := m.Called(ctx, lat, lon)
	value, ok := args.Get(0).(float64)
	if !ok {
		return 0, args.Error(1)
	}
	return value, args.Error(1)
}
