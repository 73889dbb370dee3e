package fixedleg

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/meenmo/cfschedule/calendar"
	"github.com/meenmo/cfschedule/calendar/pgholidays"
	"github.com/meenmo/cfschedule/instruments/swaps"
	"github.com/meenmo/cfschedule/money"
	"github.com/meenmo/cfschedule/schedule"
)

// LegOutput is the generated cash flow table of one leg.
//
// Amounts are decimal strings in the leg currency, rounded to its minor units,
// negative when the holder pays.
type LegOutput struct {
	Name      string           `json:"name"`
	Currency  string           `json:"currency"`
	Total     string           `json:"total"`
	CashFlows []swaps.CashFlow `json:"cash_flows"`
}

type Output struct {
	Legs  []LegOutput `json:"legs,omitempty"`
	Error string      `json:"error,omitempty"`
}

type options struct {
	inputPath   string
	holidayFile string
	pgDSN       string
	pgCalendars string
	parallel    bool
	verbose     bool
	loadTimeout time.Duration
}

func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fixed", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts options
	fs.StringVar(&opts.inputPath, "input", "", "YAML or JSON leg file path (optional; if set, ignores stdin)")
	fs.StringVar(&opts.holidayFile, "holidays", "", "YAML holiday file registering extra calendars")
	fs.StringVar(&opts.pgDSN, "pg-dsn", "", "Postgres DSN to load holiday calendars from")
	fs.StringVar(&opts.pgCalendars, "pg-calendars", "", "Comma separated calendar ids to load from Postgres")
	fs.BoolVar(&opts.parallel, "parallel", false, "Map long schedules concurrently")
	fs.BoolVar(&opts.verbose, "v", false, "Log schedule builds to stderr")
	fs.DurationVar(&opts.loadTimeout, "pg-timeout", 10*time.Second, "Timeout for loading holidays from Postgres")
	help := fs.Bool("h", false, "Show help")
	fs.BoolVar(help, "help", false, "Show help")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *help {
		usage(stderr)
		fs.PrintDefaults()
		return 0
	}

	path := strings.TrimSpace(opts.inputPath)
	if path == "" {
		if f, ok := stdin.(*os.File); ok {
			if stat, err := f.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
				usage(stderr)
				return 2
			}
		}
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if err := loadCalendars(opts, logger); err != nil {
		return writeError(stdout, err.Error())
	}

	inputBytes, err := readInput(stdin, path)
	if err != nil {
		return writeError(stdout, fmt.Sprintf("failed to read input: %v", err))
	}
	file, err := swaps.ParseLegFile(inputBytes)
	if err != nil {
		return writeError(stdout, fmt.Sprintf("failed to parse leg file: %v", err))
	}

	scheduleOpts := []schedule.Option{schedule.WithLogger(logger)}
	if opts.parallel {
		scheduleOpts = append(scheduleOpts, schedule.WithParallelMap())
	}

	output := Output{Legs: make([]LegOutput, 0, len(file.Legs))}
	for _, spec := range file.Legs {
		leg, err := generate(spec, scheduleOpts)
		if err != nil {
			return writeError(stdout, fmt.Sprintf("leg %s: %v", spec.Name, err))
		}
		output.Legs = append(output.Legs, leg)
	}

	outputBytes, _ := json.Marshal(output)
	fmt.Fprintln(stdout, string(outputBytes))
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  cashflows fixed < legs.yaml")
	fmt.Fprintln(w, "  cashflows fixed -input /path/to/legs.yaml [-holidays holidays.yaml]")
	fmt.Fprintln(w, "  cashflows fixed -input legs.json -pg-dsn postgres://... -pg-calendars KRW,JPN")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Read a leg file, generate the fixed coupon schedule of every leg, output JSON to stdout.")
	fmt.Fprintf(w, "Presets: %s\n", strings.Join(swaps.PresetNames(), ", "))
}

func loadCalendars(opts options, logger *slog.Logger) error {
	if opts.holidayFile != "" {
		cals, err := calendar.LoadHolidayFile(opts.holidayFile)
		if err != nil {
			return err
		}
		logger.Debug("holiday file loaded", "path", opts.holidayFile, "calendars", len(cals))
	}
	if opts.pgDSN == "" {
		if opts.pgCalendars != "" {
			return fmt.Errorf("-pg-calendars requires -pg-dsn")
		}
		return nil
	}

	var ids []calendar.CalendarID
	for _, id := range strings.Split(opts.pgCalendars, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, calendar.CalendarID(strings.ToUpper(id)))
		}
	}
	if len(ids) == 0 {
		return fmt.Errorf("-pg-dsn requires -pg-calendars")
	}

	src, err := pgholidays.Open(opts.pgDSN)
	if err != nil {
		return err
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), opts.loadTimeout)
	defer cancel()
	if err := pgholidays.NewCache(src).Register(ctx, ids...); err != nil {
		return fmt.Errorf("load holidays: %w", err)
	}
	logger.Debug("holidays loaded from postgres", "calendars", len(ids))
	return nil
}

func generate(spec swaps.LegSpec, opts []schedule.Option) (LegOutput, error) {
	leg, err := spec.Leg()
	if err != nil {
		return LegOutput{}, err
	}
	s, err := leg.Schedule(opts...)
	if err != nil {
		return LegOutput{}, err
	}
	flows, err := swaps.CashFlows(s)
	if err != nil {
		return LegOutput{}, err
	}

	total := money.Zero(leg.Convention.Currency)
	for _, f := range flows {
		if total, err = total.Add(money.Of(money.Currency(f.Currency), f.Amount)); err != nil {
			return LegOutput{}, err
		}
	}
	return LegOutput{
		Name:      spec.Name,
		Currency:  total.Currency.String(),
		Total:     total.Rounded().Value.StringFixed(total.Currency.MinorUnits()),
		CashFlows: flows,
	}, nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(stdin)
}

func writeError(stdout io.Writer, msg string) int {
	output := Output{Error: msg}
	outputBytes, _ := json.Marshal(output)
	fmt.Fprintln(stdout, string(outputBytes))
	return 1
}
