// Package daycount implements the year-fraction conventions used to scale periodic interest.
package daycount

import (
	"fmt"
	"strings"
	"time"
)

// DayCount enum.
type DayCount string

const (
	Act360     DayCount = "ACT/360"
	Act365F    DayCount = "ACT/365F"
	ActActISDA DayCount = "ACT/ACT ISDA"
	// Thirty360 is the 30/360 bond basis (30U/360 without the February adjustment).
	Thirty360 DayCount = "30/360"
	// Thirty360E is the Eurobond basis: both day-of-month values are capped at 30.
	Thirty360E DayCount = "30E/360"
)

var aliases = map[string]DayCount{
	"ACT/360":      Act360,
	"A360":         Act360,
	"ACT/365F":     Act365F,
	"ACT/365":      Act365F,
	"A365F":        Act365F,
	"ACT/ACT":      ActActISDA,
	"ACT/ACT ISDA": ActActISDA,
	"30/360":       Thirty360,
	"30U/360":      Thirty360,
	"30/360 BOND":  Thirty360,
	"30E/360":      Thirty360E,
	"EUROBOND":     Thirty360E,
}

// Parse resolves a day count name, accepting the common market aliases.
func Parse(s string) (DayCount, error) {
	dc, ok := aliases[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unsupported day count %q", s)
	}
	return dc, nil
}

// Fraction computes the year fraction between start and end.
func (dc DayCount) Fraction(start, end time.Time) float64 {
	switch dc {
	case Act360:
		return actualDays(start, end) / 360.0
	case Act365F:
		return actualDays(start, end) / 365.0
	case ActActISDA:
		return actActISDA(start, end)
	case Thirty360:
		d1, d2 := start.Day(), end.Day()
		if d1 == 31 {
			d1 = 30
		}
		if d2 == 31 && d1 >= 30 {
			d2 = 30
		}
		return thirty360(start, end, d1, d2)
	case Thirty360E:
		return thirty360(start, end, min(start.Day(), 30), min(end.Day(), 30))
	default:
		panic(fmt.Sprintf("daycount: unsupported convention %q", string(dc)))
	}
}

// Valid reports whether dc is one of the supported conventions.
func (dc DayCount) Valid() bool {
	switch dc {
	case Act360, Act365F, ActActISDA, Thirty360, Thirty360E:
		return true
	}
	return false
}

func (dc DayCount) String() string { return string(dc) }

func actualDays(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}

func thirty360(start, end time.Time, d1, d2 int) float64 {
	y1, m1 := start.Year(), int(start.Month())
	y2, m2 := end.Year(), int(end.Month())
	return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
}

// actActISDA splits the interval at year boundaries and divides each piece by its year length.
func actActISDA(start, end time.Time) float64 {
	if end.Before(start) {
		return -actActISDA(end, start)
	}
	frac := 0.0
	for start.Year() < end.Year() {
		nextYear := time.Date(start.Year()+1, time.January, 1, 0, 0, 0, 0, start.Location())
		frac += actualDays(start, nextYear) / yearLength(start.Year())
		start = nextYear
	}
	return frac + actualDays(start, end)/yearLength(end.Year())
}

func yearLength(year int) float64 {
	if time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay() == 366 {
		return 366
	}
	return 365
}
