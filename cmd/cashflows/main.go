package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/meenmo/cfschedule/cmd/cashflows/internal/dates"
	"github.com/meenmo/cfschedule/cmd/cashflows/internal/fixedleg"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "fixed", "fixed-leg":
		return fixedleg.Run(args[1:], stdin, stdout, stderr)
	case "dates":
		return dates.Run(args[1:], stdout, stderr)
	case "-h", "--help", "help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cashflows <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  fixed  Fixed leg cash flows from a YAML or JSON leg file")
	fmt.Fprintln(w, "  dates  Unadjusted period boundaries")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run `cashflows <command> -h` for command-specific help.")
}
