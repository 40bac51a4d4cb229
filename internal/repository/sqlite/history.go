package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkovalenko-dev/weather-search-api/internal/models"
)

// listCap bounds the history listing to the most recent records. Exports
// bypass it and read the whole table.
const listCap = 100

const recordColumns = `id, location, date_searched, date_range_start, date_range_end,
	temperature, condition, humidity, wind_speed, visibility, uv_index,
	sunrise, sunset, coordinates_lat, coordinates_lng, created_at, updated_at`

// HistoryRepository owns the weather_searches table. Callers always receive
// copies of the stored rows. Ids come from sqlite AUTOINCREMENT and are
// never reused after deletion; the single-writer engine serializes
// operations against the same id.
type HistoryRepository struct {
	DB  *sql.DB
	log zerolog.Logger
}

func NewHistoryRepository(db *sql.DB, logger zerolog.Logger) *HistoryRepository {
	logger = logger.With().Str("component", "HistoryRepository").Logger()
	return &HistoryRepository{DB: db, log: logger}
}

// Insert persists a validated search record, applying the storage defaults
// for absent snapshot fields, and returns the assigned id.
func (r *HistoryRepository) Insert(ctx context.Context, req models.SaveSearchRequest) (int64, error) {
	now := time.Now().UTC()

	var lat, lng any
	if req.Coordinates != nil {
		lat, lng = req.Coordinates.Lat, req.Coordinates.Lng
	}

	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO weather_searches
			(location, date_searched, date_range_start, date_range_end,
			 temperature, condition, humidity, wind_speed, visibility, uv_index,
			 sunrise, sunset, coordinates_lat, coordinates_lng, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.Location, now, nullable(req.DateRangeStart), nullable(req.DateRangeEnd),
		*req.Temperature, defaultCondition(req.Condition), req.Humidity, req.WindSpeed,
		req.Visibility, req.UVIndex, req.Sunrise, req.Sunset, lat, lng, now, now,
	)
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Msg("failed to insert search record")
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Msg("failed to read inserted id")
		return 0, err
	}

	r.log.Info().Ctx(ctx).
		Int64("id", id).
		Str("location", req.Location).
		Msg("search record saved")
	return id, nil
}

// Recent returns up to the 100 most recent records, newest first.
func (r *HistoryRepository) Recent(ctx context.Context) ([]models.WeatherSearchRecord, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+recordColumns+`
		 FROM weather_searches
		 ORDER BY date_searched DESC, id DESC
		 LIMIT ?`, listCap,
	)
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Msg("failed to query search history")
		return nil, err
	}
	defer r.closeRows(ctx, rows)

	records := make([]models.WeatherSearchRecord, 0, listCap)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			r.log.Error().Err(err).Ctx(ctx).Msg("failed to scan search record")
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		r.log.Error().Err(err).Ctx(ctx).Msg("row iteration error")
		return nil, err
	}

	r.log.Info().Ctx(ctx).Int("count", len(records)).Msg("search history retrieved")
	return records, nil
}

// Update mutates the allowed fields of the record and refreshes its update
// timestamp. Date range and coordinates stay untouched.
func (r *HistoryRepository) Update(ctx context.Context, id int64, req models.UpdateSearchRequest) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE weather_searches
		 SET location = ?, temperature = ?, condition = ?, humidity = ?,
		     wind_speed = ?, visibility = ?, uv_index = ?, updated_at = ?
		 WHERE id = ?`,
		req.Location, *req.Temperature, defaultCondition(req.Condition), req.Humidity,
		req.WindSpeed, req.Visibility, req.UVIndex, time.Now().UTC(), id,
	)
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Int64("id", id).Msg("failed to update search record")
		return err
	}

	count, err := res.RowsAffected()
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Int64("id", id).Msg("failed to read rows affected")
		return err
	}
	if count == 0 {
		return models.ErrNotFound
	}

	r.log.Info().Ctx(ctx).Int64("id", id).Msg("search record updated")
	return nil
}

// Delete removes the record permanently.
func (r *HistoryRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM weather_searches WHERE id = ?`, id)
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Int64("id", id).Msg("failed to delete search record")
		return err
	}

	count, err := res.RowsAffected()
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Int64("id", id).Msg("failed to read rows affected")
		return err
	}
	if count == 0 {
		return models.ErrNotFound
	}

	r.log.Info().Ctx(ctx).Int64("id", id).Msg("search record deleted")
	return nil
}

// All returns every stored record in flat table shape, newest first, for the
// export pipeline.
func (r *HistoryRepository) All(ctx context.Context) ([]models.ExportRow, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+recordColumns+`
		 FROM weather_searches
		 ORDER BY date_searched DESC, id DESC`,
	)
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Msg("failed to query records for export")
		return nil, err
	}
	defer r.closeRows(ctx, rows)

	var exportRows []models.ExportRow
	for rows.Next() {
		row, err := scanExportRow(rows)
		if err != nil {
			r.log.Error().Err(err).Ctx(ctx).Msg("failed to scan export row")
			return nil, err
		}
		exportRows = append(exportRows, row)
	}
	if err := rows.Err(); err != nil {
		r.log.Error().Err(err).Ctx(ctx).Msg("row iteration error")
		return nil, err
	}

	return exportRows, nil
}

func (r *HistoryRepository) closeRows(ctx context.Context, rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		r.log.Error().Err(err).Ctx(ctx).Msg("failed to close rows")
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (models.WeatherSearchRecord, error) {
	var (
		record     models.WeatherSearchRecord
		rangeStart sql.NullString
		rangeEnd   sql.NullString
		lat        sql.NullFloat64
		lng        sql.NullFloat64
	)

	err := s.Scan(
		&record.ID, &record.Location, &record.SearchedAt, &rangeStart, &rangeEnd,
		&record.Weather.Temperature, &record.Weather.Condition, &record.Weather.Humidity,
		&record.Weather.WindSpeed, &record.Weather.Visibility, &record.Weather.UVIndex,
		&record.Weather.Sunrise, &record.Weather.Sunset, &lat, &lng,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return models.WeatherSearchRecord{}, err
	}

	if rangeStart.Valid && rangeEnd.Valid {
		record.DateRange = &models.DateRange{Start: rangeStart.String, End: rangeEnd.String}
	}
	if lat.Valid && lng.Valid {
		record.Weather.Coordinates = &models.Coordinates{Lat: lat.Float64, Lng: lng.Float64}
	}
	return record, nil
}

func scanExportRow(s scanner) (models.ExportRow, error) {
	var (
		row          models.ExportRow
		dateSearched time.Time
		rangeStart   sql.NullString
		rangeEnd     sql.NullString
		lat          sql.NullFloat64
		lng          sql.NullFloat64
		createdAt    time.Time
		updatedAt    time.Time
	)

	err := s.Scan(
		&row.ID, &row.Location, &dateSearched, &rangeStart, &rangeEnd,
		&row.Temperature, &row.Condition, &row.Humidity,
		&row.WindSpeed, &row.Visibility, &row.UVIndex,
		&row.Sunrise, &row.Sunset, &lat, &lng,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return models.ExportRow{}, err
	}

	row.DateSearched = dateSearched.UTC().Format(time.RFC3339)
	row.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	row.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)

	if rangeStart.Valid {
		row.DateRangeStart = &rangeStart.String
	}
	if rangeEnd.Valid {
		row.DateRangeEnd = &rangeEnd.String
	}
	if lat.Valid {
		row.CoordinatesLat = &lat.Float64
	}
	if lng.Valid {
		row.CoordinatesLng = &lng.Float64
	}
	return row, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func defaultCondition(condition string) string {
	if condition == "" {
		return "unknown"
	}
	return condition
}
