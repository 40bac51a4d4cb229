package export

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkovalenko-dev/weather-search-api/internal/models"
	"github.com/mkovalenko-dev/weather-search-api/internal/services/metrics"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXML  = "xml"
)

// csvHeader fixes both the column set and the column order of CSV exports.
const csvHeader = "ID,Location,Date Searched,Temperature,Condition,Humidity,Wind Speed,Visibility,UV Index"

type recordSource interface {
	All(ctx context.Context) ([]models.ExportRow, error)
}

// Payload is a fully rendered export document ready to be written to a client.
type Payload struct {
	ContentType string
	Filename    string
	Body        []byte
}

type Service struct {
	source recordSource
	logger zerolog.Logger
	m      *metrics.Metrics
	now    func() time.Time
}

func NewService(source recordSource, logger zerolog.Logger, m *metrics.Metrics) *Service {
	return &Service{source: source, logger: logger, m: m, now: time.Now}
}

// Export renders every stored record in the requested format. The format
// token is case-insensitive and is checked before any rows are read, so an
// unsupported format never touches the database.
func (s *Service) Export(ctx context.Context, format string) (Payload, error) {
	format = strings.ToLower(format)

	switch format {
	case FormatJSON, FormatCSV, FormatXML:
	default:
		return Payload{}, fmt.Errorf("%w: %q", models.ErrUnsupportedFormat, format)
	}

	rows, err := s.source.All(ctx)
	if err != nil {
		s.logger.Error().Err(err).Ctx(ctx).Str("format", format).Msg("failed to read records for export")

		return Payload{}, err
	}

	if len(rows) == 0 {
		return Payload{}, models.ErrNoData
	}

	s.m.ExportRequestsTotal.WithLabelValues(format).Inc()

	exportDate := s.now().UTC().Format(time.RFC3339)

	switch format {
	case FormatCSV:
		return Payload{
			ContentType: "text/csv",
			Filename:    "weather-data.csv",
			Body:        []byte(renderCSV(rows)),
		}, nil
	case FormatXML:
		return Payload{
			ContentType: "application/xml",
			Filename:    "weather-data.xml",
			Body:        []byte(renderXML(rows, exportDate)),
		}, nil
	default:
		body, err := renderJSON(rows, exportDate)
		if err != nil {
			return Payload{}, err
		}

		return Payload{
			ContentType: "application/json",
			Filename:    "weather-data.json",
			Body:        body,
		}, nil
	}
}

func renderJSON(rows []models.ExportRow, exportDate string) ([]byte, error) {
	doc := struct {
		ExportDate   string             `json:"exportDate"`
		TotalRecords int                `json:"totalRecords"`
		Data         []models.ExportRow `json:"data"`
	}{
		ExportDate:   exportDate,
		TotalRecords: len(rows),
		Data:         rows,
	}

	return json.MarshalIndent(doc, "", "  ")
}

// renderCSV quotes only the free-text columns instead of letting an encoder
// decide, so the output is byte-stable regardless of cell contents. There is
// no trailing newline.
func renderCSV(rows []models.ExportRow) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, csvHeader)

	for _, row := range rows {
		lines = append(lines, strings.Join([]string{
			strconv.FormatInt(row.ID, 10),
			quoteCSV(row.Location),
			quoteCSV(row.DateSearched),
			formatNumber(row.Temperature),
			quoteCSV(row.Condition),
			strconv.Itoa(row.Humidity),
			formatNumber(row.WindSpeed),
			formatNumber(row.Visibility),
			strconv.Itoa(row.UVIndex),
		}, ","))
	}

	return strings.Join(lines, "\n")
}

func renderXML(rows []models.ExportRow, exportDate string) string {
	var b strings.Builder

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b, `<weatherData exportDate="%s" totalRecords="%d">`+"\n", exportDate, len(rows))

	for _, row := range rows {
		b.WriteString("  <record>\n")
		fmt.Fprintf(&b, "    <id>%d</id>\n", row.ID)
		fmt.Fprintf(&b, "    <location><![CDATA[%s]]></location>\n", row.Location)
		fmt.Fprintf(&b, "    <dateSearched>%s</dateSearched>\n", row.DateSearched)
		fmt.Fprintf(&b, "    <temperature>%s</temperature>\n", formatNumber(row.Temperature))
		fmt.Fprintf(&b, "    <condition>%s</condition>\n", row.Condition)
		fmt.Fprintf(&b, "    <humidity>%d</humidity>\n", row.Humidity)
		fmt.Fprintf(&b, "    <windSpeed>%s</windSpeed>\n", formatNumber(row.WindSpeed))
		fmt.Fprintf(&b, "    <visibility>%s</visibility>\n", formatNumber(row.Visibility))
		fmt.Fprintf(&b, "    <uvIndex>%d</uvIndex>\n", row.UVIndex)
		b.WriteString("  </record>\n")
	}

	b.WriteString("</weatherData>")

	return b.String()
}

func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
