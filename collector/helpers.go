package collector

import (
	"log/slog"
	"strings"
	"time"

	"travmd-form/payload"
)

// DurationUnits lists the unit options of the trip duration select with the form used
// by the w3fix format.
var DurationUnits = []struct {
	Label string
	W3Fix string
}{
	{"Tag(e)", "Tage"},
	{"Woche(n)", "Wochen"},
	{"Monat(e)", "Monate"},
	{"Jahr(e)", "Jahre"},
}

// DurationUnit returns the unit word for format. Under w3fix the parenthesised plural is
// replaced using DurationUnits; units missing from that table are returned unchanged.
func DurationUnit(unit string, format payload.Format) string {
	if format != payload.FormatW3Fix {
		return unit
	}
	for _, u := range DurationUnits {
		if u.Label == unit {
			return u.W3Fix
		}
	}
	if unit != "" {
		slog.Warn("Duration unit has no w3fix form", "unit", unit)
	}
	return unit
}

// Duration joins the number and unit of the trip duration.
func Duration(number, unit string, format payload.Format) string {
	if number == "" && unit == "" {
		return ""
	}
	return number + " " + DurationUnit(unit, format)
}

// ReverseISODate turns "YYYY-MM-DD" into "DD.MM.YYYY" by reversing the dash separated
// parts. It is a plain string operation: impossible dates stay as they are.
func ReverseISODate(value string) string {
	parts := strings.Split(value, "-")
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// MinDepartureDate is the earliest selectable departure date, in the ISO form the date
// input expects.
func MinDepartureDate(now time.Time) string {
	return now.UTC().Format("2006-01-02")
}
