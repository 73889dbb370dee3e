package schedule

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/meenmo/cfschedule/money"
)

// Generator is one stage of a schedule pipeline. Requires and Produces are
// checked when a provider is assembled, so a pipeline whose stages are out of
// order fails before any schedule is built.
type Generator interface {
	Name() string
	Requires() []Key
	Produces() []Key
	Generate(s Schedule) (Schedule, error)
}

// AccrualDatesGenerator writes the business day adjusted period boundaries.
type AccrualDatesGenerator struct {
	def *AdjustedScheduleDefinition
}

// NewAccrualDatesGenerator adjusts every period with def.
func NewAccrualDatesGenerator(def AdjustedScheduleDefinition) AccrualDatesGenerator {
	return AccrualDatesGenerator{def: &def}
}

// AccrualDatesFromPeriod reads the definition from each period's AccrualSchedule field.
func AccrualDatesFromPeriod() AccrualDatesGenerator {
	return AccrualDatesGenerator{}
}

func (g AccrualDatesGenerator) Name() string { return "accrual dates" }

func (g AccrualDatesGenerator) Requires() []Key {
	if g.def != nil {
		return nil
	}
	return []Key{AccrualSchedule}
}

func (g AccrualDatesGenerator) Produces() []Key {
	return []Key{AccrualStartDate, AccrualEndDate}
}

func (g AccrualDatesGenerator) Generate(s Schedule) (Schedule, error) {
	out, err := s.Map(func(p SchedulePeriod) (SchedulePeriod, error) {
		def, err := definitionFor(p, g.def, AccrualSchedule)
		if err != nil {
			return p, err
		}
		return p.WithValues(
			AccrualStartDate.Of(def.Adjust(p.Start())),
			AccrualEndDate.Of(def.Adjust(p.End())),
		), nil
	})
	if err != nil {
		return Schedule{}, fmt.Errorf("AccrualDatesGenerator: %w", err)
	}
	return out, nil
}

// PaymentDatesGenerator derives the payment date from one of the adjusted accrual dates.
type PaymentDatesGenerator struct {
	def *AdjustedScheduleDefinition
}

// NewPaymentDatesGenerator derives every payment date with def.
func NewPaymentDatesGenerator(def AdjustedScheduleDefinition) PaymentDatesGenerator {
	return PaymentDatesGenerator{def: &def}
}

// PaymentDatesFromPeriod reads the definition from each period's PaymentSchedule field.
func PaymentDatesFromPeriod() PaymentDatesGenerator {
	return PaymentDatesGenerator{}
}

func (g PaymentDatesGenerator) Name() string { return "payment dates" }

func (g PaymentDatesGenerator) Requires() []Key {
	if g.def != nil {
		return []Key{g.def.AnchorKey()}
	}
	// the anchor is only known per period
	return []Key{PaymentSchedule, AccrualStartDate, AccrualEndDate}
}

func (g PaymentDatesGenerator) Produces() []Key {
	return []Key{PaymentDate}
}

func (g PaymentDatesGenerator) Generate(s Schedule) (Schedule, error) {
	out, err := s.Map(func(p SchedulePeriod) (SchedulePeriod, error) {
		def, err := definitionFor(p, g.def, PaymentSchedule)
		if err != nil {
			return p, err
		}
		anchor, err := def.AnchorKey().Require(p)
		if err != nil {
			return p, err
		}
		return p.WithValues(PaymentDate.Of(def.Date(anchor))), nil
	})
	if err != nil {
		return Schedule{}, fmt.Errorf("PaymentDatesGenerator: %w", err)
	}
	return out, nil
}

func definitionFor(p SchedulePeriod, fixed *AdjustedScheduleDefinition, key FieldKey[AdjustedScheduleDefinition]) (AdjustedScheduleDefinition, error) {
	def := AdjustedScheduleDefinition{}
	if fixed != nil {
		def = *fixed
	} else {
		v, err := key.Require(p)
		if err != nil {
			return def, err
		}
		def = v
	}
	if err := def.validate(); err != nil {
		return def, err
	}
	return def, nil
}

// CouponGenerator computes the fixed coupon of each period:
// rate × notional × day count fraction, negated for the payer.
type CouponGenerator struct{}

func (CouponGenerator) Name() string { return "fixed coupon" }

func (CouponGenerator) Requires() []Key {
	return []Key{AccrualStartDate, AccrualEndDate, DayCount, Notional, Rate, Currency, Payer}
}

func (CouponGenerator) Produces() []Key {
	return []Key{CouponAmount, DayCountFraction}
}

func (g CouponGenerator) Generate(s Schedule) (Schedule, error) {
	out, err := s.Map(coupon)
	if err != nil {
		return Schedule{}, fmt.Errorf("CouponGenerator: %w", err)
	}
	return out, nil
}

func coupon(p SchedulePeriod) (SchedulePeriod, error) {
	start, err := AccrualStartDate.Require(p)
	if err != nil {
		return p, err
	}
	end, err := AccrualEndDate.Require(p)
	if err != nil {
		return p, err
	}
	dc, err := DayCount.Require(p)
	if err != nil {
		return p, err
	}
	notional, err := Notional.Require(p)
	if err != nil {
		return p, err
	}
	rate, err := Rate.Require(p)
	if err != nil {
		return p, err
	}
	ccy, err := Currency.Require(p)
	if err != nil {
		return p, err
	}
	payer, err := Payer.Require(p)
	if err != nil {
		return p, err
	}
	if !dc.Valid() {
		return p, configErrorf("unknown day count %q in period %s", dc, p.Range())
	}

	dcf := dc.Fraction(start, end)
	value := rate.Mul(notional).Mul(decimal.NewFromFloat(dcf))
	if payer {
		value = value.Neg()
	}
	return p.WithValues(
		CouponAmount.Of(money.Of(ccy, value)),
		DayCountFraction.Of(dcf),
	), nil
}
