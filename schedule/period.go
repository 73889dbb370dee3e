package schedule

import "time"

// DateRange is the closed interval [Start, End]. Adjacent periods share a boundary date.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange validates that start is strictly before end.
func NewDateRange(start, end time.Time) (DateRange, error) {
	if !start.Before(end) {
		return DateRange{}, &DateOrderError{Start: start, End: end}
	}
	return DateRange{Start: start, End: end}, nil
}

// Days returns the calendar length of the range.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

func (r DateRange) String() string {
	return "[" + r.Start.Format("2006-01-02") + ", " + r.End.Format("2006-01-02") + "]"
}

// SchedulePeriod is one row of a schedule: a fixed date range plus the fields
// computed for it so far.
type SchedulePeriod struct {
	rng    DateRange
	fields FieldMap
}

// NewSchedulePeriod builds a period; fields may be the zero FieldMap.
func NewSchedulePeriod(rng DateRange, fields FieldMap) SchedulePeriod {
	return SchedulePeriod{rng: rng, fields: fields}
}

func (p SchedulePeriod) Range() DateRange { return p.rng }
func (p SchedulePeriod) Start() time.Time { return p.rng.Start }
func (p SchedulePeriod) End() time.Time   { return p.rng.End }
func (p SchedulePeriod) Fields() FieldMap { return p.fields }

// WithValues returns a copy of p with fields added; the date range is unchanged.
func (p SchedulePeriod) WithValues(fields ...Field) SchedulePeriod {
	return SchedulePeriod{rng: p.rng, fields: p.fields.With(fields...)}
}
