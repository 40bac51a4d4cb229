package forecast

import (
	"math"
	"sort"
	"time"

	"github.com/mkovalenko-dev/weather-search-api/internal/models"
)

const maxDays = 5

// dateLabel renders a calendar day the way the UI shows it, e.g. "Sat, Jun 7".
const dateLabel = "Mon, Jan 2"

type dayGroup struct {
	label      string
	firstSeen  time.Time
	temps      []float64
	conditions []string
}

// Bucket collapses 3-hour interval samples into at most five daily
// aggregates, ordered by date ascending. High and low are the rounded max
// and min of the day's temperatures. The representative condition is the
// sample at index len/2 of the day's conditions in original delivery order;
// grouping must not reorder samples within a day or the chosen index shifts.
// Fewer than five distinct days in the input yields fewer entries.
func Bucket(samples []models.ForecastSample) []models.ForecastDay {
	groups := make(map[string]*dayGroup)
	ordered := make([]*dayGroup, 0, maxDays)

	for _, sample := range samples {
		label := sample.Timestamp.Format(dateLabel)
		g, ok := groups[label]
		if !ok {
			g = &dayGroup{label: label, firstSeen: sample.Timestamp}
			groups[label] = g
			ordered = append(ordered, g)
		}
		g.temps = append(g.temps, sample.Temperature)
		g.conditions = append(g.conditions, sample.Condition)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].firstSeen.Before(ordered[j].firstSeen)
	})
	if len(ordered) > maxDays {
		ordered = ordered[:maxDays]
	}

	days := make([]models.ForecastDay, 0, len(ordered))
	for _, g := range ordered {
		high, low := g.temps[0], g.temps[0]
		for _, temp := range g.temps[1:] {
			if temp > high {
				high = temp
			}
			if temp < low {
				low = temp
			}
		}
		days = append(days, models.ForecastDay{
			Date:      g.label,
			High:      int(math.Round(high)),
			Low:       int(math.Round(low)),
			Condition: g.conditions[len(g.conditions)/2],
		})
	}

	return days
}
