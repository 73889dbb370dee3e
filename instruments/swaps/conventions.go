package swaps

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/meenmo/cfschedule/calendar"
	"github.com/meenmo/cfschedule/daycount"
	"github.com/meenmo/cfschedule/money"
	"github.com/meenmo/cfschedule/schedule"
)

// FixedLegConvention groups the market conventions of a fixed-rate leg.
type FixedLegConvention struct {
	Currency              money.Currency
	DayCount              daycount.DayCount
	PayFrequency          schedule.Tenor
	PayDelayDays          int
	BusinessDayAdjustment calendar.BusinessDayConvention
	Calendar              calendar.CalendarID
	// EOM rolls every boundary to month end when the anchor date is a month end.
	EOM  bool
	Stub schedule.Stub
	// PayRelativeToStart measures the pay delay from the accrual start instead of the accrual end.
	PayRelativeToStart bool
}

// Preset leg conventions.
var (
	// USD IRS fixed leg: semiannual, 30/360, USNY, paid two days after the accrual end.
	UsdFixedSemi = FixedLegConvention{
		Currency:              money.USD,
		DayCount:              daycount.Thirty360,
		PayFrequency:          schedule.Months(6),
		PayDelayDays:          2,
		BusinessDayAdjustment: calendar.ModifiedFollowing,
		Calendar:              calendar.USNY,
		Stub:                  schedule.StubShortStart,
	}

	// USD SOFR OIS fixed leg: annual, ACT/360, USNY.
	SofrFixedAnnual = FixedLegConvention{
		Currency:              money.USD,
		DayCount:              daycount.Act360,
		PayFrequency:          schedule.Years(1),
		PayDelayDays:          2,
		BusinessDayAdjustment: calendar.ModifiedFollowing,
		Calendar:              calendar.USNY,
		EOM:                   true,
		Stub:                  schedule.StubShortStart,
	}

	// EUR IRS fixed leg: annual payments, ACT/360, TARGET calendar.
	EurFixedAnnual = FixedLegConvention{
		Currency:              money.EUR,
		DayCount:              daycount.Act360,
		PayFrequency:          schedule.Years(1),
		PayDelayDays:          1,
		BusinessDayAdjustment: calendar.ModifiedFollowing,
		Calendar:              calendar.TARGET,
		EOM:                   true,
		Stub:                  schedule.StubShortStart,
	}

	// EUR IBOR IRS fixed leg: annual payments, 30/360, TARGET calendar.
	Euribor6MFixed = FixedLegConvention{
		Currency:              money.EUR,
		DayCount:              daycount.Thirty360,
		PayFrequency:          schedule.Years(1),
		PayDelayDays:          2,
		BusinessDayAdjustment: calendar.ModifiedFollowing,
		Calendar:              calendar.TARGET,
		EOM:                   true,
		Stub:                  schedule.StubShortStart,
	}

	// EUR OIS fixed leg: annual payments, ACT/360, TARGET calendar.
	EstrFixedAnnual = FixedLegConvention{
		Currency:              money.EUR,
		DayCount:              daycount.Act360,
		PayFrequency:          schedule.Years(1),
		PayDelayDays:          1,
		BusinessDayAdjustment: calendar.ModifiedFollowing,
		Calendar:              calendar.TARGET,
		EOM:                   true,
		Stub:                  schedule.StubShortStart,
	}

	// Weekends-only semiannual 30/360 leg paid two days after the accrual start.
	// Useful where no holiday data is available.
	WeekendsFixedSemi = FixedLegConvention{
		Currency:              money.USD,
		DayCount:              daycount.Thirty360,
		PayFrequency:          schedule.Months(6),
		PayDelayDays:          2,
		BusinessDayAdjustment: calendar.ModifiedFollowing,
		Calendar:              calendar.WeekendsID,
		Stub:                  schedule.StubNone,
		PayRelativeToStart:    true,
	}
)

var presets = map[string]FixedLegConvention{
	"USD-FIXED-SEMI":      UsdFixedSemi,
	"SOFR-FIXED":          SofrFixedAnnual,
	"EUR-FIXED-ANNUAL":    EurFixedAnnual,
	"EURIBOR6M-FIXED":     Euribor6MFixed,
	"ESTR-FIXED":          EstrFixedAnnual,
	"WEEKENDS-FIXED-SEMI": WeekendsFixedSemi,
}

// Preset looks a convention up by name, case-insensitively.
func Preset(name string) (FixedLegConvention, error) {
	c, ok := presets[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return FixedLegConvention{}, fmt.Errorf("unknown leg convention %q (known: %s)", name, strings.Join(PresetNames(), ", "))
	}
	return c, nil
}

// PresetNames lists the preset names, sorted.
func PresetNames() []string {
	return slices.Sorted(maps.Keys(presets))
}

// Validate checks that every convention field is set to a supported value.
func (c FixedLegConvention) Validate() error {
	if _, err := money.ParseCurrency(string(c.Currency)); err != nil {
		return err
	}
	if !c.DayCount.Valid() {
		return fmt.Errorf("unsupported day count %q", c.DayCount)
	}
	if !c.PayFrequency.IsPositive() {
		return fmt.Errorf("pay frequency %s must be positive", c.PayFrequency)
	}
	if _, err := calendar.ParseBusinessDayConvention(string(c.BusinessDayAdjustment)); err != nil {
		return err
	}
	if strings.TrimSpace(string(c.Calendar)) == "" {
		return fmt.Errorf("calendar is required")
	}
	return nil
}
