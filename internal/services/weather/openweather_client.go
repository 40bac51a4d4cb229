package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkovalenko-dev/weather-search-api/internal/location"
	"github.com/mkovalenko-dev/weather-search-api/internal/models"
)

// defaultVisibilityMeters substitutes an absent (or zero) upstream
// visibility field before the meters-to-km conversion.
const defaultVisibilityMeters = 10000

const clockFormat = "03:04 PM"

type currentResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Visibility int `json:"visibility"`
	Coord      struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
}

type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Main string `json:"main"`
		} `json:"weather"`
	} `json:"list"`
}

type uvResponse struct {
	Value float64 `json:"value"`
}

// ClientOpenWeatherMap talks to the OpenWeatherMap REST API and normalizes
// its responses into canonical units.
type ClientOpenWeatherMap struct {
	APIKey string
	apiURL string
	client HTTPClient
	logger zerolog.Logger
}

func NewClientOpenWeatherMap(apiKey, apiURL string,
	httpClient HTTPClient, logger zerolog.Logger,
) *ClientOpenWeatherMap {
	return &ClientOpenWeatherMap{APIKey: apiKey, apiURL: apiURL, client: httpClient, logger: logger}
}

// Current fetches and normalizes current conditions for the target. The UV
// index is left at zero; the orchestrator fills it in via UVIndex.
func (s *ClientOpenWeatherMap) Current(
	ctx context.Context, target location.Target,
) (models.WeatherObservation, error) {
	requestURL := s.queryURL("/weather", target)

	var raw currentResponse
	if err := s.getJSON(ctx, requestURL, &raw); err != nil {
		return models.WeatherObservation{}, err
	}
	if len(raw.Weather) == 0 {
		return models.WeatherObservation{},
			fmt.Errorf("%w: response carries no weather category", models.ErrUpstreamUnavailable)
	}

	visibility := raw.Visibility
	if visibility == 0 {
		visibility = defaultVisibilityMeters
	}

	obs := models.WeatherObservation{
		Location:    fmt.Sprintf("%s, %s", raw.Name, raw.Sys.Country),
		Temperature: int(math.Round(raw.Main.Temp)),
		Condition:   strings.ToLower(raw.Weather[0].Main),
		Humidity:    raw.Main.Humidity,
		WindSpeed:   int(math.Round(raw.Wind.Speed * 3.6)),
		Visibility:  int(math.Round(float64(visibility) / 1000)),
		Sunrise:     time.Unix(raw.Sys.Sunrise, 0).Format(clockFormat),
		Sunset:      time.Unix(raw.Sys.Sunset, 0).Format(clockFormat),
		Coordinates: models.Coordinates{Lat: raw.Coord.Lat, Lng: raw.Coord.Lon},
	}

	s.logger.Info().
		Ctx(ctx).
		Str("location", obs.Location).
		Int("temperature", obs.Temperature).
		Msg("fetched current conditions")
	return obs, nil
}

// Forecast fetches the raw 3-hour interval samples in upstream delivery
// order; bucketing happens upstairs.
func (s *ClientOpenWeatherMap) Forecast(
	ctx context.Context, target location.Target,
) ([]models.ForecastSample, error) {
	requestURL := s.queryURL("/forecast", target)

	var raw forecastResponse
	if err := s.getJSON(ctx, requestURL, &raw); err != nil {
		return nil, err
	}

	samples := make([]models.ForecastSample, 0, len(raw.List))
	for _, item := range raw.List {
		if len(item.Weather) == 0 {
			continue
		}
		samples = append(samples, models.ForecastSample{
			Timestamp:   time.Unix(item.Dt, 0),
			Temperature: item.Main.Temp,
			Condition:   strings.ToLower(item.Weather[0].Main),
		})
	}

	s.logger.Info().
		Ctx(ctx).
		Int("samples", len(samples)).
		Msg("fetched forecast intervals")
	return samples, nil
}

// UVIndex fetches the UV index for previously resolved coordinates.
func (s *ClientOpenWeatherMap) UVIndex(ctx context.Context, lat, lon float64) (float64, error) {
	requestURL := fmt.Sprintf("%s/uvi?lat=%g&lon=%g&appid=%s", s.apiURL, lat, lon, s.APIKey)

	var raw uvResponse
	if err := s.getJSON(ctx, requestURL, &raw); err != nil {
		return 0, err
	}
	return raw.Value, nil
}

func (s *ClientOpenWeatherMap) queryURL(path string, target location.Target) string {
	if target.Kind == location.KindCoordinates {
		return fmt.Sprintf("%s%s?lat=%g&lon=%g&appid=%s&units=metric",
			s.apiURL, path, target.Lat, target.Lon, s.APIKey)
	}
	return fmt.Sprintf("%s%s?q=%s&appid=%s&units=metric",
		s.apiURL, path, url.QueryEscape(target.Name), s.APIKey)
}

func (s *ClientOpenWeatherMap) getJSON(ctx context.Context, requestURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrUpstreamUnavailable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("url", requestURL).
			Msg("upstream request failed")
		return fmt.Errorf("%w: %v", models.ErrUpstreamUnavailable, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.logger.Error().Err(cerr).Msg("failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		s.logger.Error().
			Str("url", requestURL).
			Str("status", resp.Status).
			Msg("upstream returned non-200 status")
		return statusError(resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		s.logger.Error().
			Err(err).
			Str("url", requestURL).
			Msg("failed to decode upstream response")
		return fmt.Errorf("%w: %v", models.ErrUpstreamUnavailable, err)
	}
	return nil
}

func statusError(code int) error {
	switch code {
	case http.StatusNotFound:
		return models.ErrLocationNotFound
	case http.StatusUnauthorized:
		return models.ErrUpstreamAuth
	default:
		return fmt.Errorf("%w: status %d", models.ErrUpstreamUnavailable, code)
	}
}
