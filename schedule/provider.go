package schedule

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// ScheduleProvider yields a fully computed schedule.
type ScheduleProvider interface {
	Schedule() (Schedule, error)
}

// GeneratedScheduleProvider builds the unadjusted schedule of a definition,
// seeds every period with the default fields, and runs the generators in order.
type GeneratedScheduleProvider struct {
	definition UnadjustedScheduleDefinition
	generators []Generator
	defaults   FieldMap
	logger     *slog.Logger
	parallel   bool
}

var _ ScheduleProvider = (*GeneratedScheduleProvider)(nil)

// Option configures a GeneratedScheduleProvider.
type Option func(*GeneratedScheduleProvider)

// WithLogger sets the logger used for build records. The default discards them.
func WithLogger(l *slog.Logger) Option {
	return func(p *GeneratedScheduleProvider) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithParallelMap lets the generators map large schedules concurrently,
// as configured by config.ParallelThreshold and config.Workers.
func WithParallelMap() Option {
	return func(p *GeneratedScheduleProvider) { p.parallel = true }
}

// NewGeneratedScheduleProvider assembles a provider. Every field a generator
// requires must be a default field or be produced by an earlier generator.
func NewGeneratedScheduleProvider(def UnadjustedScheduleDefinition, generators []Generator, defaults FieldMap, opts ...Option) (*GeneratedScheduleProvider, error) {
	if err := ValidatePipeline(generators, defaults); err != nil {
		return nil, fmt.Errorf("NewGeneratedScheduleProvider: %w", err)
	}
	p := &GeneratedScheduleProvider{
		definition: def,
		generators: append([]Generator(nil), generators...),
		defaults:   defaults,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// ValidatePipeline checks the declared dependencies of generators run in order
// over periods carrying the available fields.
func ValidatePipeline(generators []Generator, available FieldMap) error {
	have := make(map[string]struct{}, available.Len())
	for _, n := range available.Names() {
		have[n] = struct{}{}
	}
	for i, g := range generators {
		if g == nil {
			return configErrorf("stage %d is nil", i)
		}
		var missing []string
		for _, k := range g.Requires() {
			if _, ok := have[k.Name()]; !ok {
				missing = append(missing, k.Name())
			}
		}
		if len(missing) > 0 {
			return configErrorf("stage %d (%s) requires %s, provided neither by the default fields nor by an earlier stage",
				i, g.Name(), strings.Join(missing, ", "))
		}
		for _, k := range g.Produces() {
			have[k.Name()] = struct{}{}
		}
	}
	return nil
}

func (p *GeneratedScheduleProvider) Definition() UnadjustedScheduleDefinition { return p.definition }

// Schedule runs the pipeline. Every call rebuilds the schedule from scratch.
func (p *GeneratedScheduleProvider) Schedule() (Schedule, error) {
	log := p.logger.With("build_id", uuid.NewString())

	s, err := p.definition.Schedule(p.defaults)
	if err != nil {
		log.Debug("unadjusted schedule failed", "definition", p.definition.String(), "error", err)
		return Schedule{}, fmt.Errorf("Schedule: %w", err)
	}
	if p.parallel {
		s = s.withConfiguredParallelism()
	}
	log.Debug("unadjusted schedule", "definition", p.definition.String(), "periods", s.Len(), "workers", s.workers)

	for i, g := range p.generators {
		out, err := g.Generate(s)
		if err == nil && !s.sameRows(out) {
			err = configErrorf("stage returned %d periods covering %s, expected the %d input periods covering %s",
				out.Len(), rangeOf(out), s.Len(), rangeOf(s))
		}
		if err != nil {
			log.Debug("stage failed", "stage", g.Name(), "index", i, "error", err)
			return Schedule{}, fmt.Errorf("Schedule: stage %s: %w", g.Name(), err)
		}
		s = out
		log.Debug("stage applied", "stage", g.Name(), "index", i)
	}

	log.Info("schedule generated", "periods", s.Len(), "stages", len(p.generators),
		"start", s.Start().Format("2006-01-02"), "end", s.End().Format("2006-01-02"))
	return s.WithParallelism(0), nil
}

func rangeOf(s Schedule) string {
	if s.Len() == 0 {
		return "nothing"
	}
	return DateRange{Start: s.Start(), End: s.End()}.String()
}
