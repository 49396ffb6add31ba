package dates

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ISOLayout is the canonical, locale-independent form used for storage and comparisons.
const ISOLayout = "2006-01-02"

const msPerDay = int64(24 * time.Hour / time.Millisecond)

func resolveLocation(location *time.Location) *time.Location {
	if location == nil {
		return time.Local
	}
	return location
}

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	location = resolveLocation(location)
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DayRange returns the half-open [midnight, next midnight) interval of value's local day.
func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

// DayBounds returns the inclusive 00:00:00.000 .. 23:59:59.999 bounds of value's local day.
func DayBounds(value time.Time, location *time.Location) (time.Time, time.Time) {
	start, next := DayRange(value, location)
	return start, next.Add(-time.Millisecond)
}

func SameDay(a time.Time, b time.Time, location *time.Location) bool {
	return DateAtLocation(a, location).Equal(DateAtLocation(b, location))
}

// WeekStart returns the Monday of value's week. The time of day is kept.
func WeekStart(value time.Time) time.Time {
	weekday := int(value.Weekday())
	if weekday == int(time.Sunday) {
		return value.AddDate(0, 0, -6)
	}
	return value.AddDate(0, 0, -(weekday - 1))
}

func WeekEnd(value time.Time) time.Time {
	return WeekStart(value).AddDate(0, 0, 6)
}

func MonthStart(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), 1, 0, 0, 0, 0, value.Location())
}

// MonthEnd is day 0 of the following month, which normalizes to the last day of value's month.
func MonthEnd(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month()+1, 0, 0, 0, 0, 0, value.Location())
}

func AddDays(value time.Time, days int) time.Time {
	return value.AddDate(0, 0, days)
}

// DaysBetween is an inclusive day count: ceil(|b-a| / 24h) + 1.
// Fractional days round up, so a span crossing a DST change can be off by one.
func DaysBetween(a time.Time, b time.Time) int {
	deltaMs := b.Sub(a).Milliseconds()
	if deltaMs < 0 {
		deltaMs = -deltaMs
	}
	return int(math.Ceil(float64(deltaMs)/float64(msPerDay))) + 1
}

func FormatISO(value time.Time) string {
	return value.Format(ISOLayout)
}

func ParseISO(raw string, location *time.Location) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	parsed, err := time.ParseInLocation(ISOLayout, value, resolveLocation(location))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q want format %q: %w", value, ISOLayout, err)
	}
	return parsed, nil
}

// NormalizeISO re-formats raw as a canonical ISO date, or reports an error for anything unparseable.
func NormalizeISO(raw string) (string, error) {
	parsed, err := ParseISO(raw, time.UTC)
	if err != nil {
		return "", err
	}
	return FormatISO(parsed), nil
}
