package swaps

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meenmo/cfschedule/calendar"
	"github.com/meenmo/cfschedule/schedule"
)

// FixedLeg describes one fixed-rate leg of a swap.
type FixedLeg struct {
	EffectiveDate time.Time
	MaturityDate  time.Time
	Notional      decimal.Decimal
	// Rate is a decimal fraction: 0.015 means 1.5%.
	Rate decimal.Decimal
	// Payer is true when the holder pays the fixed coupons.
	Payer      bool
	Convention FixedLegConvention
}

func (l FixedLeg) Validate() error {
	if !l.EffectiveDate.Before(l.MaturityDate) {
		return fmt.Errorf("effective date %s must be before maturity date %s",
			l.EffectiveDate.Format("2006-01-02"), l.MaturityDate.Format("2006-01-02"))
	}
	if !l.Notional.IsPositive() {
		return fmt.Errorf("notional must be positive, got %s", l.Notional)
	}
	return l.Convention.Validate()
}

// Definition is the unadjusted schedule definition of the leg.
func (l FixedLeg) Definition() (schedule.UnadjustedScheduleDefinition, error) {
	c := l.Convention
	return schedule.NewUnadjustedScheduleDefinition(l.EffectiveDate, l.MaturityDate, c.PayFrequency, c.EOM, c.Stub)
}

// AccrualSchedule adjusts the period boundaries on the leg calendar.
func (l FixedLeg) AccrualSchedule() (schedule.AdjustedScheduleDefinition, error) {
	cal, err := calendar.Get(l.Convention.Calendar)
	if err != nil {
		return schedule.AdjustedScheduleDefinition{}, err
	}
	return schedule.NewAdjustedScheduleDefinition(cal, l.Convention.BusinessDayAdjustment, 0, false)
}

// PaymentSchedule derives payment dates from the accrual dates with the pay delay.
func (l FixedLeg) PaymentSchedule() (schedule.AdjustedScheduleDefinition, error) {
	cal, err := calendar.Get(l.Convention.Calendar)
	if err != nil {
		return schedule.AdjustedScheduleDefinition{}, err
	}
	return schedule.NewAdjustedScheduleDefinition(cal, l.Convention.BusinessDayAdjustment, l.Convention.PayDelayDays, !l.Convention.PayRelativeToStart)
}

// Fields are the trade-level fields every period of the leg starts with.
func (l FixedLeg) Fields() (schedule.FieldMap, error) {
	accrual, err := l.AccrualSchedule()
	if err != nil {
		return schedule.FieldMap{}, err
	}
	payment, err := l.PaymentSchedule()
	if err != nil {
		return schedule.FieldMap{}, err
	}
	return schedule.NewFieldMap(
		schedule.AccrualSchedule.Of(accrual),
		schedule.PaymentSchedule.Of(payment),
		schedule.Currency.Of(l.Convention.Currency),
		schedule.DayCount.Of(l.Convention.DayCount),
		schedule.Notional.Of(l.Notional),
		schedule.Rate.Of(l.Rate),
		schedule.Payer.Of(l.Payer),
	), nil
}

// Generators is the fixed coupon pipeline. Each stage reads its adjustment
// rules from the period fields.
func Generators() []schedule.Generator {
	return []schedule.Generator{
		schedule.AccrualDatesFromPeriod(),
		schedule.PaymentDatesFromPeriod(),
		schedule.CouponGenerator{},
	}
}

// Provider assembles the schedule provider of the leg.
func (l FixedLeg) Provider(opts ...schedule.Option) (*schedule.GeneratedScheduleProvider, error) {
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("Provider: %w", err)
	}
	def, err := l.Definition()
	if err != nil {
		return nil, fmt.Errorf("Provider: %w", err)
	}
	fields, err := l.Fields()
	if err != nil {
		return nil, fmt.Errorf("Provider: %w", err)
	}
	return schedule.NewGeneratedScheduleProvider(def, Generators(), fields, opts...)
}

// Schedule generates the cash flow schedule of the leg.
func (l FixedLeg) Schedule(opts ...schedule.Option) (schedule.Schedule, error) {
	p, err := l.Provider(opts...)
	if err != nil {
		return schedule.Schedule{}, err
	}
	return p.Schedule()
}

// CashFlow is one row of a generated fixed leg.
type CashFlow struct {
	StartDate        string          `json:"start_date"`
	EndDate          string          `json:"end_date"`
	AccrualStartDate string          `json:"accrual_start_date"`
	AccrualEndDate   string          `json:"accrual_end_date"`
	PaymentDate      string          `json:"payment_date"`
	DayCountFraction float64         `json:"day_count_fraction"`
	Currency         string          `json:"currency"`
	Amount           decimal.Decimal `json:"amount"`
	AmountMinor      int64           `json:"amount_minor"`
}

// CashFlows flattens a generated schedule. Amounts are rounded to the currency's minor units.
func CashFlows(s schedule.Schedule) ([]CashFlow, error) {
	out := make([]CashFlow, 0, s.Len())
	for _, p := range s.All() {
		accStart, err := schedule.AccrualStartDate.Require(p)
		if err != nil {
			return nil, err
		}
		accEnd, err := schedule.AccrualEndDate.Require(p)
		if err != nil {
			return nil, err
		}
		pay, err := schedule.PaymentDate.Require(p)
		if err != nil {
			return nil, err
		}
		dcf, err := schedule.DayCountFraction.Require(p)
		if err != nil {
			return nil, err
		}
		amount, err := schedule.CouponAmount.Require(p)
		if err != nil {
			return nil, err
		}
		amount = amount.Rounded()
		out = append(out, CashFlow{
			StartDate:        p.Start().Format("2006-01-02"),
			EndDate:          p.End().Format("2006-01-02"),
			AccrualStartDate: accStart.Format("2006-01-02"),
			AccrualEndDate:   accEnd.Format("2006-01-02"),
			PaymentDate:      pay.Format("2006-01-02"),
			DayCountFraction: dcf,
			Currency:         amount.Currency.String(),
			Amount:           amount.Value,
			AmountMinor:      amount.Minor(),
		})
	}
	return out, nil
}
