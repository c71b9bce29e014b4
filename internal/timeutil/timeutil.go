package timeutil

import (
	"fmt"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// MonthLayout is the calendar month key format (YYYY-MM).
const MonthLayout = "2006-01"

// gameTimeLayouts are the timestamp shapes seen from the stats API and from
// CSV tables written by earlier tooling.
var gameTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseGameTime parses a game timestamp in any of the known layouts.
// Values without an offset are read as UTC.
func ParseGameTime(value string) (time.Time, error) {
	for _, layout := range gameTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized game time %q", value)
}

// MonthKey truncates t to its calendar month as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// SeasonWindow returns the first and last schedule dates fetched for a season.
func SeasonWindow(season int) (string, string) {
	return fmt.Sprintf("%d-03-01", season), fmt.Sprintf("%d-11-30", season)
}

// ResolveLocation returns the named location, or UTC when name is empty or unknown.
func ResolveLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
