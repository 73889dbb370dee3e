package schedule

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrConfiguration covers malformed inputs: empty or overlapping periods,
	// column/row length mismatch, a required field that no stage produced.
	ErrConfiguration = errors.New("schedule configuration error")

	// ErrDateOrder is returned when a start date is not strictly before its end date.
	ErrDateOrder = errors.New("start date must be before end date")

	// ErrUnsupportedStub is returned when the stub policy cannot resolve the date range.
	ErrUnsupportedStub = errors.New("unsupported stub")
)

// MissingFieldError names a required field absent from a period.
type MissingFieldError struct {
	Field  string
	Period DateRange
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field %s missing in period %s", e.Field, e.Period)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrConfiguration
}

// DateOrderError carries the offending dates.
type DateOrderError struct {
	Start time.Time
	End   time.Time
}

func (e *DateOrderError) Error() string {
	return fmt.Sprintf("start date %s must be before end date %s",
		e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"))
}

func (e *DateOrderError) Unwrap() error {
	return ErrDateOrder
}

// StubError explains why the stub policy could not resolve [Start, End].
type StubError struct {
	Stub   Stub
	Start  time.Time
	End    time.Time
	Step   Tenor
	Reason string
}

func (e *StubError) Error() string {
	return fmt.Sprintf("stub %s for %s to %s every %s: %s",
		e.Stub, e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"), e.Step, e.Reason)
}

func (e *StubError) Unwrap() error {
	return ErrUnsupportedStub
}

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
