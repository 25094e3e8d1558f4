// Package seed builds the static starting datasets for the hotel and
// hospital desks. Dates are laid out relative to now so the sample data
// always has arrivals, departures and appointments "today".
package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"opsdesk/pkg/domain"
)

// App identifies one of the two desks.
type App string

// Supported desks and their snapshot keys.
const (
	AppHotel    App = "hotel"
	AppHospital App = "hospital"
)

// SnapshotKey is the persistence key for app.
func (a App) SnapshotKey() string { return string(a) + "-admin-data" }

// Valid reports whether a is a known desk.
func (a App) Valid() bool { return a == AppHotel || a == AppHospital }

// For returns the seed dataset for app. Unknown apps get an empty dataset.
func For(app App, now time.Time) domain.Dataset {
	switch app {
	case AppHotel:
		return Hotel(now)
	case AppHospital:
		return Hospital(now)
	}
	return domain.Dataset{}
}

func money(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func ptr(t time.Time) *time.Time { return &t }

func at(day time.Time, hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func checklist(labels ...string) []domain.ChecklistItem {
	out := make([]domain.ChecklistItem, len(labels))
	for i, l := range labels {
		out[i] = domain.ChecklistItem{Label: l}
	}
	return out
}
