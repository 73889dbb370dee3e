package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"

	"github.com/meenmo/cfschedule/instruments/swaps"
	"github.com/meenmo/cfschedule/money"
	"github.com/meenmo/cfschedule/schedule"
	"github.com/meenmo/cfschedule/utils"
)

func main() {
	leg := swaps.FixedLeg{
		EffectiveDate: utils.Date(2014, 9, 12),
		MaturityDate:  utils.Date(2021, 9, 12),
		Notional:      decimal.NewFromInt(100_000_000),
		Rate:          decimal.RequireFromString("0.015"),
		Payer:         true,
		Convention:    swaps.WeekendsFixedSemi,
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	s, err := leg.Schedule(schedule.WithLogger(logger))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Print(s)

	flows, err := swaps.CashFlows(s)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	total := money.Zero(leg.Convention.Currency)
	for _, f := range flows {
		if total, err = total.Add(money.Of(total.Currency, f.Amount)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	fmt.Printf("\nPeriods: %d\n", s.Len())
	fmt.Printf("Total: %s\n", total)
}
