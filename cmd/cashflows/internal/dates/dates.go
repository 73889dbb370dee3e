package dates

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/meenmo/cfschedule/schedule"
	"github.com/meenmo/cfschedule/utils"
)

type Output struct {
	Dates   []string `json:"dates,omitempty"`
	Periods int      `json:"periods,omitempty"`
	Error   string   `json:"error,omitempty"`
}

func Run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("dates", flag.ContinueOnError)
	fs.SetOutput(stderr)
	start := fs.String("start", "", "Start date, YYYY-MM-DD")
	end := fs.String("end", "", "End date, YYYY-MM-DD")
	frequency := fs.String("frequency", "6M", "Step between boundaries, e.g. 3M, 1Y, 2W")
	stub := fs.String("stub", "NONE", "NONE, SHORT_START, LONG_START, SHORT_END or LONG_END")
	eom := fs.Bool("eom", false, "Roll boundaries to month end when the anchor date is a month end")
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

	out, err := generate(*start, *end, *frequency, *stub, *eom)
	if err != nil {
		return writeError(stdout, err.Error())
	}
	outputBytes, _ := json.Marshal(out)
	fmt.Fprintln(stdout, string(outputBytes))
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  cashflows dates -start 2014-09-12 -end 2021-09-12 -frequency 6M [-stub SHORT_END] [-eom]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the unadjusted period boundaries as JSON.")
}

func generate(start, end, frequency, stub string, eom bool) (*Output, error) {
	startDate, err := utils.ParseDate(start)
	if err != nil {
		return nil, fmt.Errorf("invalid start: %v", err)
	}
	endDate, err := utils.ParseDate(end)
	if err != nil {
		return nil, fmt.Errorf("invalid end: %v", err)
	}
	step, err := schedule.ParseTenor(frequency)
	if err != nil {
		return nil, fmt.Errorf("invalid frequency: %v", err)
	}
	s, err := schedule.ParseStub(stub)
	if err != nil {
		return nil, fmt.Errorf("invalid stub: %v", err)
	}

	boundaries, err := schedule.UnadjustedDates(startDate, endDate, step, eom, s)
	if err != nil {
		return nil, err
	}
	out := &Output{Periods: len(boundaries) - 1}
	for _, d := range boundaries {
		out.Dates = append(out.Dates, utils.FormatDate(d))
	}
	return out, nil
}

func writeError(stdout io.Writer, msg string) int {
	outputBytes, _ := json.Marshal(Output{Error: msg})
	fmt.Fprintln(stdout, string(outputBytes))
	return 1
}
