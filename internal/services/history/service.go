package history

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkovalenko-dev/weather-search-api/internal/models"
	"github.com/mkovalenko-dev/weather-search-api/internal/services/metrics"
)

const (
	minTemperature = -100.0
	maxTemperature = 60.0

	dateLayout = "2006-01-02"
)

type repository interface {
	Insert(ctx context.Context, req models.SaveSearchRequest) (int64, error)
	Recent(ctx context.Context) ([]models.WeatherSearchRecord, error)
	Update(ctx context.Context, id int64, req models.UpdateSearchRequest) error
	Delete(ctx context.Context, id int64) error
}

// Service enforces the record contract in front of the repository: location
// and temperature are mandatory, temperature is bounded, and a date range is
// either complete and ordered or absent.
type Service struct {
	repo   repository
	logger zerolog.Logger
	m      *metrics.Metrics
}

func NewService(repo repository, logger zerolog.Logger, m *metrics.Metrics) *Service {
	logger = logger.With().Str("component", "HistoryService").Logger()
	return &Service{repo: repo, logger: logger, m: m}
}

func (s *Service) Save(ctx context.Context, req models.SaveSearchRequest) (int64, error) {
	if err := validateCore(req.Location, req.Temperature); err != nil {
		s.m.HistoryOperationsTotal.WithLabelValues("save", "rejected").Inc()
		return 0, err
	}
	if err := validateDateRange(req.DateRangeStart, req.DateRangeEnd); err != nil {
		s.m.HistoryOperationsTotal.WithLabelValues("save", "rejected").Inc()
		return 0, err
	}

	id, err := s.repo.Insert(ctx, req)
	if err != nil {
		s.m.HistoryOperationsTotal.WithLabelValues("save", "error").Inc()
		return 0, err
	}

	s.m.HistoryOperationsTotal.WithLabelValues("save", "ok").Inc()
	s.logger.Info().Ctx(ctx).Int64("id", id).Str("location", req.Location).Msg("search saved")
	return id, nil
}

func (s *Service) List(ctx context.Context) ([]models.WeatherSearchRecord, error) {
	records, err := s.repo.Recent(ctx)
	if err != nil {
		s.m.HistoryOperationsTotal.WithLabelValues("list", "error").Inc()
		return nil, err
	}

	s.m.HistoryOperationsTotal.WithLabelValues("list", "ok").Inc()
	return records, nil
}

func (s *Service) Update(ctx context.Context, id int64, req models.UpdateSearchRequest) error {
	if err := validateCore(req.Location, req.Temperature); err != nil {
		s.m.HistoryOperationsTotal.WithLabelValues("update", "rejected").Inc()
		return err
	}

	if err := s.repo.Update(ctx, id, req); err != nil {
		s.m.HistoryOperationsTotal.WithLabelValues("update", "error").Inc()
		return err
	}

	s.m.HistoryOperationsTotal.WithLabelValues("update", "ok").Inc()
	s.logger.Info().Ctx(ctx).Int64("id", id).Msg("search updated")
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.m.HistoryOperationsTotal.WithLabelValues("delete", "error").Inc()
		return err
	}

	s.m.HistoryOperationsTotal.WithLabelValues("delete", "ok").Inc()
	s.logger.Info().Ctx(ctx).Int64("id", id).Msg("search deleted")
	return nil
}

func validateCore(location string, temperature *float64) error {
	if strings.TrimSpace(location) == "" || temperature == nil {
		return models.NewValidationError("Location and temperature are required")
	}
	if *temperature < minTemperature || *temperature > maxTemperature {
		return models.NewValidationError("Temperature must be between -100°C and 60°C")
	}
	return nil
}

func validateDateRange(start, end string) error {
	if start == "" && end == "" {
		return nil
	}
	if start == "" || end == "" {
		return models.NewValidationError("Date range must include both start and end dates")
	}

	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return models.NewValidationError("Date range start must use the YYYY-MM-DD format")
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return models.NewValidationError("Date range end must use the YYYY-MM-DD format")
	}

	if startDate.After(endDate) {
		return models.NewValidationError("Start date must be before end date")
	}
	return nil
}
