package schedule

import (
	"fmt"
	"time"

	"github.com/meenmo/cfschedule/calendar"
)

// UnadjustedScheduleDefinition describes the raw period boundaries of one leg.
type UnadjustedScheduleDefinition struct {
	StartDate time.Time
	EndDate   time.Time
	Step      Tenor
	EOMRule   bool
	Stub      Stub
}

// NewUnadjustedScheduleDefinition validates the date order and the step.
// Whether the stub policy can resolve the range is only known once periods are generated.
func NewUnadjustedScheduleDefinition(start, end time.Time, step Tenor, eomRule bool, stub Stub) (UnadjustedScheduleDefinition, error) {
	if !start.Before(end) {
		return UnadjustedScheduleDefinition{}, &DateOrderError{Start: start, End: end}
	}
	if !step.IsPositive() {
		return UnadjustedScheduleDefinition{}, configErrorf("step %s must be positive", step)
	}
	return UnadjustedScheduleDefinition{StartDate: start, EndDate: end, Step: step, EOMRule: eomRule, Stub: stub}, nil
}

// Ranges generates the unadjusted periods.
func (d UnadjustedScheduleDefinition) Ranges() ([]DateRange, error) {
	return UnadjustedRanges(d.StartDate, d.EndDate, d.Step, d.EOMRule, d.Stub)
}

// Schedule generates the unadjusted schedule with every period seeded with defaults.
func (d UnadjustedScheduleDefinition) Schedule(defaults FieldMap) (Schedule, error) {
	ranges, err := d.Ranges()
	if err != nil {
		return Schedule{}, err
	}
	return OfPeriodsWithFields(ranges, defaults)
}

func (d UnadjustedScheduleDefinition) String() string {
	return fmt.Sprintf("%s to %s every %s (eom=%t, stub=%s)",
		d.StartDate.Format("2006-01-02"), d.EndDate.Format("2006-01-02"), d.Step, d.EOMRule, d.Stub)
}

// AdjustedScheduleDefinition describes how adjusted dates are derived from unadjusted ones.
type AdjustedScheduleDefinition struct {
	Calendar   calendar.BusinessDayCalendar
	Convention calendar.BusinessDayConvention
	// OffsetDays is a signed shift in business days applied after the convention.
	OffsetDays int
	// RelativeToPeriodEnd anchors derived dates on the period end instead of its start.
	RelativeToPeriodEnd bool
}

// NewAdjustedScheduleDefinition requires a calendar.
func NewAdjustedScheduleDefinition(cal calendar.BusinessDayCalendar, conv calendar.BusinessDayConvention, offsetDays int, relativeToPeriodEnd bool) (AdjustedScheduleDefinition, error) {
	d := AdjustedScheduleDefinition{Calendar: cal, Convention: conv, OffsetDays: offsetDays, RelativeToPeriodEnd: relativeToPeriodEnd}
	if err := d.validate(); err != nil {
		return AdjustedScheduleDefinition{}, err
	}
	return d, nil
}

func (d AdjustedScheduleDefinition) validate() error {
	if d.Calendar == nil {
		return configErrorf("adjusted schedule definition has no calendar")
	}
	if !d.Convention.Valid() {
		return configErrorf("unsupported business day convention %q", d.Convention)
	}
	return nil
}

// Adjust applies the business day convention.
func (d AdjustedScheduleDefinition) Adjust(t time.Time) time.Time {
	return d.Convention.Adjust(t, d.Calendar)
}

// Date adjusts t and then shifts it by the offset.
func (d AdjustedScheduleDefinition) Date(t time.Time) time.Time {
	return d.Calendar.Shift(d.Adjust(t), d.OffsetDays)
}

// AnchorKey is the accrual date field the derived date is measured from.
func (d AdjustedScheduleDefinition) AnchorKey() FieldKey[time.Time] {
	if d.RelativeToPeriodEnd {
		return AccrualEndDate
	}
	return AccrualStartDate
}

// ScheduleDates derives one date per range from the unadjusted anchor.
func (d AdjustedScheduleDefinition) ScheduleDates(ranges []DateRange) []time.Time {
	out := make([]time.Time, len(ranges))
	for i, r := range ranges {
		anchor := r.Start
		if d.RelativeToPeriodEnd {
			anchor = r.End
		}
		out[i] = d.Date(anchor)
	}
	return out
}

func (d AdjustedScheduleDefinition) String() string {
	anchor := "start"
	if d.RelativeToPeriodEnd {
		anchor = "end"
	}
	var id calendar.CalendarID
	if d.Calendar != nil {
		id = d.Calendar.ID()
	}
	return fmt.Sprintf("%s/%s%+dbd@%s", id, d.Convention, d.OffsetDays, anchor)
}
