package calendar

import (
	"fmt"
	"strings"
	"time"
)

// BusinessDayConvention is the roll applied when a date falls on a non-business day.
type BusinessDayConvention string

const (
	Unadjusted        BusinessDayConvention = "NONE"
	Following         BusinessDayConvention = "FOLLOWING"
	ModifiedFollowing BusinessDayConvention = "MODIFIED_FOLLOWING"
	Preceding         BusinessDayConvention = "PRECEDING"
	ModifiedPreceding BusinessDayConvention = "MODIFIED_PRECEDING"
)

// ParseBusinessDayConvention accepts the canonical names as well as space or
// hyphen separated and abbreviated forms ("Modified Following", "MF").
func ParseBusinessDayConvention(s string) (BusinessDayConvention, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	switch norm {
	case "NONE", "UNADJUSTED":
		return Unadjusted, nil
	case "FOLLOWING", "F":
		return Following, nil
	case "MODIFIED_FOLLOWING", "MF":
		return ModifiedFollowing, nil
	case "PRECEDING", "P":
		return Preceding, nil
	case "MODIFIED_PRECEDING", "MP":
		return ModifiedPreceding, nil
	}
	return "", fmt.Errorf("unsupported business day convention %q", s)
}

// Adjust rolls t onto a business day of cal.
func (c BusinessDayConvention) Adjust(t time.Time, cal BusinessDayCalendar) time.Time {
	switch c {
	case Following:
		return cal.NextOrSame(t)
	case ModifiedFollowing:
		adj := cal.NextOrSame(t)
		if adj.Month() != t.Month() {
			return cal.PreviousOrSame(t)
		}
		return adj
	case Preceding:
		return cal.PreviousOrSame(t)
	case ModifiedPreceding:
		adj := cal.PreviousOrSame(t)
		if adj.Month() != t.Month() {
			return cal.NextOrSame(t)
		}
		return adj
	default:
		return t
	}
}

// Valid reports whether c is one of the supported conventions.
func (c BusinessDayConvention) Valid() bool {
	switch c {
	case Unadjusted, Following, ModifiedFollowing, Preceding, ModifiedPreceding:
		return true
	}
	return false
}

func (c BusinessDayConvention) String() string { return string(c) }
