// Package dateutil holds the calendar arithmetic behind the month archive
// navigation and the grouped post headings.
package dateutil

import (
	"fmt"
	"time"

	"github.com/Matt-17/Dropblog/localization"
)

var monthKeys = [...]string{
	"months.january", "months.february", "months.march", "months.april",
	"months.may", "months.june", "months.july", "months.august",
	"months.september", "months.october", "months.november", "months.december",
}

// MonthNames - localized month names indexed 1..12
func MonthNames(loc *localization.Bundle) map[int]string {
	names := make(map[int]string, 12)
	for i, key := range monthKeys {
		names[i+1] = loc.T(key, nil)
	}
	return names
}

// PreviousMonth - the month before year/month, wrapping over year boundaries
func PreviousMonth(year, month int) (int, int) {
	month--
	if month < 1 {
		month = 12
		year--
	}
	return year, month
}

// NextMonth - the month after year/month, wrapping over year boundaries
func NextMonth(year, month int) (int, int) {
	month++
	if month > 12 {
		month = 1
		year++
	}
	return year, month
}

// IsFutureMonth - reports whether year/month lies after the month of now
// The layout suppresses the next-month link for future months
func IsFutureMonth(year, month int, now time.Time) bool {
	return year > now.Year() || (year == now.Year() && month > int(now.Month()))
}

// MonthRange - the half-open interval [start, end) covering the calendar
// month in the given location. A post dated the last instant of a month falls
// inside that month and never inside the next one
func MonthRange(year, month int, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// StartOfDay - midnight of t's calendar day, keeping t's location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatDate - localized long date, e.g. "12. März 2026" for de locales
func FormatDate(t time.Time, loc *localization.Bundle) string {
	month := MonthNames(loc)[int(t.Month())]
	return loc.T("date.long_format", map[string]string{
		"day":   fmt.Sprintf("%d", t.Day()),
		"month": month,
		"year":  fmt.Sprintf("%d", t.Year()),
	})
}
