package schedule

import (
	"slices"
	"time"

	"github.com/meenmo/cfschedule/schedule/config"
	"github.com/meenmo/cfschedule/utils"
)

// UnadjustedDates returns the ascending period boundaries covering exactly
// [start, end]: n+1 dates for n periods, the first equal to start and the last
// equal to end.
//
// End stubs (and NONE) are generated forward from start; start stubs are
// generated backward from end. When eomRule is set and the anchor date is the
// last day of its month, every regular boundary is moved to its month end.
func UnadjustedDates(start, end time.Time, step Tenor, eomRule bool, stub Stub) ([]time.Time, error) {
	if !start.Before(end) {
		return nil, &DateOrderError{Start: start, End: end}
	}
	if !step.IsPositive() {
		return nil, configErrorf("step %s must be positive", step)
	}
	if stub < StubNone || stub > StubLongEnd {
		return nil, configErrorf("unknown stub %s", stub)
	}

	w := walk{start: start, end: end, step: step, stub: stub, maxPeriods: maxPeriods()}
	anchor := end
	if stub.calculatesForward() {
		anchor = start
	}
	w.eom = eomRule && step.Days == 0 && utils.IsLastDayOfMonth(anchor)

	var (
		dates []time.Time
		err   error
	)
	if stub.calculatesForward() {
		dates, err = w.forward()
	} else {
		dates, err = w.backward()
	}
	if err != nil {
		return nil, err
	}
	if err := checkBoundaries(dates, start, end); err != nil {
		return nil, err
	}
	return dates, nil
}

// UnadjustedRanges is UnadjustedDates as consecutive date ranges.
func UnadjustedRanges(start, end time.Time, step Tenor, eomRule bool, stub Stub) ([]DateRange, error) {
	dates, err := UnadjustedDates(start, end, step, eomRule, stub)
	if err != nil {
		return nil, err
	}
	ranges := make([]DateRange, 0, len(dates)-1)
	for i := 1; i < len(dates); i++ {
		ranges = append(ranges, DateRange{Start: dates[i-1], End: dates[i]})
	}
	return ranges, nil
}

func maxPeriods() int {
	if n := config.GetConfig().MaxPeriods; n > 0 {
		return n
	}
	return config.DefaultConfig.MaxPeriods
}

type walk struct {
	start, end time.Time
	step       Tenor
	stub       Stub
	eom        bool
	maxPeriods int
}

// boundary is the k-th regular boundary from anchor; k is negative walking backward.
// Every boundary is computed from the anchor, so month-end clipping never accumulates.
func (w walk) boundary(anchor time.Time, k int) time.Time {
	d := w.step.AddTo(anchor, k)
	if w.eom {
		d = utils.LastDayOfMonth(d)
	}
	return d
}

func (w walk) stubError(reason string) error {
	return &StubError{Stub: w.stub, Start: w.start, End: w.end, Step: w.step, Reason: reason}
}

func (w walk) tooManyPeriods() error {
	return configErrorf("more than %d periods between %s and %s every %s",
		w.maxPeriods, utils.FormatDate(w.start), utils.FormatDate(w.end), w.step)
}

func (w walk) forward() ([]time.Time, error) {
	dates := []time.Time{w.start}
	for k := 1; ; k++ {
		if k > w.maxPeriods {
			return nil, w.tooManyPeriods()
		}
		next := w.boundary(w.start, k)
		if next.Before(w.end) {
			dates = append(dates, next)
			continue
		}
		if next.Equal(w.end) {
			return append(dates, w.end), nil
		}

		// next overshoots end; the residual [last regular boundary, end] is the stub.
		switch w.stub {
		case StubShortEnd:
			return append(dates, w.end), nil
		case StubLongEnd:
			if len(dates) == 1 {
				return nil, w.stubError("range is shorter than one step, no regular period to extend")
			}
			dates[len(dates)-1] = w.end
			return dates, nil
		default:
			return nil, w.stubError("dates do not line up with a whole number of steps")
		}
	}
}

func (w walk) backward() ([]time.Time, error) {
	dates := []time.Time{w.end}
	for k := 1; ; k++ {
		if k > w.maxPeriods {
			return nil, w.tooManyPeriods()
		}
		prev := w.boundary(w.end, -k)
		if prev.After(w.start) {
			dates = append(dates, prev)
			continue
		}
		if prev.Equal(w.start) {
			dates = append(dates, w.start)
			break
		}

		switch w.stub {
		case StubShortStart:
			dates = append(dates, w.start)
		case StubLongStart:
			if len(dates) == 1 {
				return nil, w.stubError("range is shorter than one step, no regular period to extend")
			}
			dates[len(dates)-1] = w.start
		default:
			return nil, w.stubError("dates do not line up with a whole number of steps")
		}
		break
	}
	slices.Reverse(dates)
	return dates, nil
}

// checkBoundaries asserts the contiguity invariant of the generated dates.
func checkBoundaries(dates []time.Time, start, end time.Time) error {
	if len(dates) < 2 || !dates[0].Equal(start) || !dates[len(dates)-1].Equal(end) {
		return configErrorf("generated boundaries do not span %s to %s", utils.FormatDate(start), utils.FormatDate(end))
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i-1].Before(dates[i]) {
			return configErrorf("generated boundaries not ascending at %s", utils.FormatDate(dates[i]))
		}
	}
	return nil
}
