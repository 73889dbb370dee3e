package swaps

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/meenmo/cfschedule/calendar"
	"github.com/meenmo/cfschedule/daycount"
	"github.com/meenmo/cfschedule/money"
	"github.com/meenmo/cfschedule/schedule"
	"github.com/meenmo/cfschedule/utils"
)

// LegFile is a YAML (or JSON) document describing fixed legs.
//
//	legs:
//	  - name: usd-7y
//	    preset: USD-FIXED-SEMI
//	    effective_date: 2014-09-12
//	    maturity_date: 2021-09-12
//	    notional: 100000000
//	    rate: 0.015
//	    direction: PAY
//
// Convention fields set on a leg override those of its preset.
type LegFile struct {
	Legs []LegSpec `json:"legs" yaml:"legs"`
}

// LegSpec is the textual form of a FixedLeg.
type LegSpec struct {
	Name          string `json:"name" yaml:"name"`
	Preset        string `json:"preset,omitempty" yaml:"preset,omitempty"`
	EffectiveDate string `json:"effective_date,omitempty" yaml:"effective_date,omitempty"`
	MaturityDate  string `json:"maturity_date,omitempty" yaml:"maturity_date,omitempty"`
	// TradeDate with Tenor (and optionally ForwardTenor) replaces the explicit
	// effective and maturity dates.
	TradeDate    string `json:"trade_date,omitempty" yaml:"trade_date,omitempty"`
	SpotLagDays  *int   `json:"spot_lag_days,omitempty" yaml:"spot_lag_days,omitempty"`
	ForwardTenor string `json:"forward_tenor,omitempty" yaml:"forward_tenor,omitempty"`
	Tenor        string `json:"tenor,omitempty" yaml:"tenor,omitempty"`
	Notional     string `json:"notional" yaml:"notional"`
	// Rate is a decimal fraction unless suffixed with "%".
	Rate string `json:"rate" yaml:"rate"`
	// Direction is PAY or REC from the holder's perspective.
	Direction string `json:"direction" yaml:"direction"`

	Currency     string `json:"currency,omitempty" yaml:"currency,omitempty"`
	DayCount     string `json:"day_count,omitempty" yaml:"day_count,omitempty"`
	Frequency    string `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	Calendar     string `json:"calendar,omitempty" yaml:"calendar,omitempty"`
	Convention   string `json:"convention,omitempty" yaml:"convention,omitempty"`
	PayDelayDays *int   `json:"pay_delay_days,omitempty" yaml:"pay_delay_days,omitempty"`
	// PayRelativeTo is "start" or "end" (of the accrual period).
	PayRelativeTo string `json:"pay_relative_to,omitempty" yaml:"pay_relative_to,omitempty"`
	EOM           *bool  `json:"eom,omitempty" yaml:"eom,omitempty"`
	Stub          string `json:"stub,omitempty" yaml:"stub,omitempty"`
}

// ParseLegFile decodes and validates a leg file. JSON input is accepted as YAML.
func ParseLegFile(input []byte) (LegFile, error) {
	var f LegFile
	if err := yaml.Unmarshal(input, &f); err != nil {
		return LegFile{}, fmt.Errorf("decode leg file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return LegFile{}, err
	}
	return f, nil
}

// LoadLegFile reads and parses the leg file at path.
func LoadLegFile(path string) (LegFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LegFile{}, fmt.Errorf("LoadLegFile: %w", err)
	}
	return ParseLegFile(data)
}

func (f LegFile) Validate() error {
	if len(f.Legs) == 0 {
		return errors.New("legs must be non-empty")
	}
	seen := make(map[string]struct{}, len(f.Legs))
	for i, spec := range f.Legs {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			return fmt.Errorf("legs[%d].name is required", i)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("legs[%d].name must be unique (duplicate %q)", i, name)
		}
		seen[name] = struct{}{}
		if _, err := spec.Leg(); err != nil {
			return fmt.Errorf("legs[%d] (%s): %w", i, name, err)
		}
	}
	return nil
}

// Leg resolves the textual leg into a validated FixedLeg.
func (s LegSpec) Leg() (FixedLeg, error) {
	var (
		leg FixedLeg
		err error
	)
	if strings.TrimSpace(s.Preset) != "" {
		if leg.Convention, err = Preset(s.Preset); err != nil {
			return FixedLeg{}, err
		}
	}
	if err := s.applyOverrides(&leg.Convention); err != nil {
		return FixedLeg{}, err
	}

	if strings.TrimSpace(s.TradeDate) != "" {
		if leg.EffectiveDate, leg.MaturityDate, err = s.tradeDates(leg.Convention); err != nil {
			return FixedLeg{}, err
		}
	} else {
		if leg.EffectiveDate, err = utils.ParseDate(strings.TrimSpace(s.EffectiveDate)); err != nil {
			return FixedLeg{}, fmt.Errorf("effective_date: %w", err)
		}
		if leg.MaturityDate, err = utils.ParseDate(strings.TrimSpace(s.MaturityDate)); err != nil {
			return FixedLeg{}, fmt.Errorf("maturity_date: %w", err)
		}
	}
	if leg.Notional, err = decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s.Notional), "_", "")); err != nil {
		return FixedLeg{}, fmt.Errorf("notional: %w", err)
	}
	if leg.Rate, err = parseRate(s.Rate); err != nil {
		return FixedLeg{}, fmt.Errorf("rate: %w", err)
	}

	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s.Direction), "-", "_")) {
	case "PAY", "PAY_FIXED", "PAYER":
		leg.Payer = true
	case "REC", "REC_FIXED", "RECEIVE", "RECEIVER":
		leg.Payer = false
	default:
		return FixedLeg{}, fmt.Errorf("invalid direction %q (use PAY or REC)", s.Direction)
	}

	if err := leg.Validate(); err != nil {
		return FixedLeg{}, err
	}
	return leg, nil
}

func (s LegSpec) tradeDates(c FixedLegConvention) (effective, maturity time.Time, err error) {
	if strings.TrimSpace(s.EffectiveDate) != "" || strings.TrimSpace(s.MaturityDate) != "" {
		return effective, maturity, errors.New("trade_date excludes effective_date and maturity_date")
	}
	tradeDate, err := utils.ParseDate(strings.TrimSpace(s.TradeDate))
	if err != nil {
		return effective, maturity, fmt.Errorf("trade_date: %w", err)
	}
	tenor, err := schedule.ParseTenor(s.Tenor)
	if err != nil {
		return effective, maturity, fmt.Errorf("tenor: %w", err)
	}
	var forward schedule.Tenor
	if strings.TrimSpace(s.ForwardTenor) != "" {
		if forward, err = schedule.ParseTenor(s.ForwardTenor); err != nil {
			return effective, maturity, fmt.Errorf("forward_tenor: %w", err)
		}
	}
	lag := DefaultSpotLagDays
	if s.SpotLagDays != nil {
		lag = *s.SpotLagDays
	}
	cal, err := calendar.Get(c.Calendar)
	if err != nil {
		return effective, maturity, err
	}
	_, effective, _ = SpotEffectiveMaturity(tradeDate, cal, lag, forward, tenor)
	// the accrual schedule adjusts the maturity itself
	return effective, tenor.AddTo(effective, 1), nil
}

func (s LegSpec) applyOverrides(c *FixedLegConvention) error {
	if v := strings.TrimSpace(s.Currency); v != "" {
		ccy, err := money.ParseCurrency(v)
		if err != nil {
			return err
		}
		c.Currency = ccy
	}
	if v := strings.TrimSpace(s.DayCount); v != "" {
		dc, err := daycount.Parse(v)
		if err != nil {
			return err
		}
		c.DayCount = dc
	}
	if v := strings.TrimSpace(s.Frequency); v != "" {
		t, err := schedule.ParseTenor(v)
		if err != nil {
			return err
		}
		c.PayFrequency = t
	}
	if v := strings.TrimSpace(s.Calendar); v != "" {
		c.Calendar = calendar.CalendarID(strings.ToUpper(v))
	}
	if v := strings.TrimSpace(s.Convention); v != "" {
		conv, err := calendar.ParseBusinessDayConvention(v)
		if err != nil {
			return err
		}
		c.BusinessDayAdjustment = conv
	}
	if s.PayDelayDays != nil {
		c.PayDelayDays = *s.PayDelayDays
	}
	switch strings.ToLower(strings.TrimSpace(s.PayRelativeTo)) {
	case "":
	case "start":
		c.PayRelativeToStart = true
	case "end":
		c.PayRelativeToStart = false
	default:
		return fmt.Errorf("pay_relative_to must be start or end, got %q", s.PayRelativeTo)
	}
	if s.EOM != nil {
		c.EOM = *s.EOM
	}
	if strings.TrimSpace(s.Stub) != "" {
		stub, err := schedule.ParseStub(s.Stub)
		if err != nil {
			return err
		}
		c.Stub = stub
	}
	return nil
}

func parseRate(s string) (decimal.Decimal, error) {
	v := strings.TrimSpace(s)
	if pct, ok := strings.CutSuffix(v, "%"); ok {
		r, err := decimal.NewFromString(strings.TrimSpace(pct))
		if err != nil {
			return decimal.Decimal{}, err
		}
		return r.Shift(-2), nil
	}
	return decimal.NewFromString(v)
}
