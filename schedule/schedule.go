package schedule

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/meenmo/cfschedule/schedule/config"
)

// Schedule is an immutable, non-empty, ordered sequence of contiguous periods.
type Schedule struct {
	periods []SchedulePeriod
	// workers > 1 makes Map fan rows out over that many goroutines.
	workers int
}

// OfPeriods sorts ranges by start date and wraps each in a period with no fields.
func OfPeriods(ranges []DateRange) (Schedule, error) {
	return OfPeriodsWithFields(ranges, FieldMap{})
}

// OfPeriodsWithFields is OfPeriods with every period seeded with defaults.
func OfPeriodsWithFields(ranges []DateRange, defaults FieldMap) (Schedule, error) {
	if len(ranges) == 0 {
		return Schedule{}, configErrorf("a schedule needs at least one period")
	}
	sorted := slices.Clone(ranges)
	slices.SortStableFunc(sorted, func(a, b DateRange) int { return a.Start.Compare(b.Start) })

	periods := make([]SchedulePeriod, len(sorted))
	for i, r := range sorted {
		if !r.Start.Before(r.End) {
			return Schedule{}, fmt.Errorf("%w: period %d: %w", ErrConfiguration, i, &DateOrderError{Start: r.Start, End: r.End})
		}
		if i > 0 {
			prev := sorted[i-1]
			switch {
			case r.Start.Before(prev.End):
				return Schedule{}, configErrorf("periods %s and %s overlap", prev, r)
			case r.Start.After(prev.End):
				return Schedule{}, configErrorf("gap between periods %s and %s", prev, r)
			}
		}
		periods[i] = SchedulePeriod{rng: r, fields: defaults}
	}
	return Schedule{periods: periods}, nil
}

func (s Schedule) Len() int { return len(s.periods) }

// Period returns the i-th period; it panics when i is out of range.
func (s Schedule) Period(i int) SchedulePeriod { return s.periods[i] }

// Periods returns a copy of the periods.
func (s Schedule) Periods() []SchedulePeriod { return slices.Clone(s.periods) }

// All iterates the periods in order.
func (s Schedule) All() iter.Seq2[int, SchedulePeriod] {
	return slices.All(s.periods)
}

// Ranges returns the date range of every period, in order.
func (s Schedule) Ranges() []DateRange {
	out := make([]DateRange, len(s.periods))
	for i, p := range s.periods {
		out[i] = p.rng
	}
	return out
}

func (s Schedule) Start() time.Time { return s.periods[0].rng.Start }
func (s Schedule) End() time.Time   { return s.periods[len(s.periods)-1].rng.End }

// WithParallelism returns s with Map running on up to workers goroutines.
// workers <= 1 maps sequentially. The output of Map does not depend on it.
func (s Schedule) WithParallelism(workers int) Schedule {
	s.workers = workers
	return s
}

// Map applies fn to every period in isolation and returns the new schedule.
// A failure on any period fails the whole map. fn must not change the period's date range.
func (s Schedule) Map(fn func(SchedulePeriod) (SchedulePeriod, error)) (Schedule, error) {
	out := make([]SchedulePeriod, len(s.periods))
	errs := make([]error, len(s.periods))
	apply := func(i int) error {
		p, err := fn(s.periods[i])
		if err != nil {
			errs[i] = err
			return err
		}
		if !p.rng.Start.Equal(s.periods[i].rng.Start) || !p.rng.End.Equal(s.periods[i].rng.End) {
			errs[i] = configErrorf("period %d: date range changed from %s to %s", i, s.periods[i].rng, p.rng)
			return errs[i]
		}
		out[i] = p
		return nil
	}

	if s.workers > 1 && len(s.periods) > 1 {
		var g errgroup.Group
		g.SetLimit(s.workers)
		for i := range s.periods {
			g.Go(func() error { return apply(i) })
		}
		if g.Wait() != nil {
			// report the lowest failing row, as the sequential path would
			for _, err := range errs {
				if err != nil {
					return Schedule{}, err
				}
			}
		}
	} else {
		for i := range s.periods {
			if err := apply(i); err != nil {
				return Schedule{}, err
			}
		}
	}
	return Schedule{periods: out, workers: s.workers}, nil
}

// MapParallel is Map over the configured number of workers. Schedules shorter
// than the configured threshold are mapped sequentially.
func (s Schedule) MapParallel(fn func(SchedulePeriod) (SchedulePeriod, error)) (Schedule, error) {
	out, err := s.withConfiguredParallelism().Map(fn)
	if err != nil {
		return Schedule{}, err
	}
	return out.WithParallelism(s.workers), nil
}

// withConfiguredParallelism sets the worker count from config, or maps
// sequentially below the configured threshold.
func (s Schedule) withConfiguredParallelism() Schedule {
	cfg := config.GetConfig()
	if len(s.periods) < cfg.ParallelThreshold {
		return s.WithParallelism(1)
	}
	n := cfg.Workers
	if n <= 0 {
		n = config.DefaultConfig.Workers
	}
	return s.WithParallelism(n)
}

// sameRows reports whether s and other have the same date ranges in the same order.
func (s Schedule) sameRows(other Schedule) bool {
	if len(s.periods) != len(other.periods) {
		return false
	}
	for i, p := range s.periods {
		if !p.rng.Start.Equal(other.periods[i].rng.Start) || !p.rng.End.Equal(other.periods[i].rng.End) {
			return false
		}
	}
	return true
}

// Column is one value per period for a single field.
type Column struct {
	name   string
	fields []Field
}

// NewColumn binds values to key positionally.
func NewColumn[T any](key FieldKey[T], values []T) Column {
	fields := make([]Field, len(values))
	for i, v := range values {
		fields[i] = key.Of(v)
	}
	return Column{name: key.Name(), fields: fields}
}

func (c Column) Name() string { return c.name }
func (c Column) Len() int     { return len(c.fields) }

// WithColumn zips the column values onto the periods in order.
func (s Schedule) WithColumn(c Column) (Schedule, error) {
	if len(c.fields) != len(s.periods) {
		return Schedule{}, configErrorf("wrong number of rows in column %s: %d, expected %d", c.name, len(c.fields), len(s.periods))
	}
	out := make([]SchedulePeriod, len(s.periods))
	for i, p := range s.periods {
		out[i] = p.WithValues(c.fields[i])
	}
	return Schedule{periods: out, workers: s.workers}, nil
}

// Values extracts the column for key; a period without the field is a MissingFieldError.
func Values[T any](s Schedule, key FieldKey[T]) ([]T, error) {
	out := make([]T, len(s.periods))
	for i, p := range s.periods {
		v, err := key.Require(p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// String renders the schedule as a table, one row per period and one column per field.
func (s Schedule) String() string {
	var names []string
	seen := map[string]struct{}{}
	for _, p := range s.periods {
		for _, n := range p.fields.Names() {
			if _, ok := seen[n]; !ok {
				seen[n] = struct{}{}
				names = append(names, n)
			}
		}
	}

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "Start\tEnd")
	for _, n := range names {
		fmt.Fprintf(tw, "\t%s", n)
	}
	fmt.Fprintln(tw)
	for _, p := range s.periods {
		fmt.Fprintf(tw, "%s\t%s", p.rng.Start.Format("2006-01-02"), p.rng.End.Format("2006-01-02"))
		for _, n := range names {
			fmt.Fprintf(tw, "\t%s", formatValue(p.fields, n))
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
	return b.String()
}

func formatValue(m FieldMap, name string) string {
	v, ok := m.Value(name)
	if !ok {
		return "-"
	}
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02")
	}
	return fmt.Sprint(v)
}
