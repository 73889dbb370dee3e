package schedule

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/meenmo/cfschedule/daycount"
	"github.com/meenmo/cfschedule/money"
)

// Fields written by the generators.
var (
	AccrualStartDate = NewFieldKey[time.Time]("Accrual Start Date")
	AccrualEndDate   = NewFieldKey[time.Time]("Accrual End Date")
	PaymentDate      = NewFieldKey[time.Time]("Payment Date")
	DayCountFraction = NewFieldKey[float64]("Day Count Fraction")
	CouponAmount     = NewFieldKey[money.Amount]("Coupon Amount")
)

// Trade-level fields, usually supplied as defaults for every period.
var (
	Currency        = NewFieldKey[money.Currency]("Currency")
	DayCount        = NewFieldKey[daycount.DayCount]("Day Count")
	Notional        = NewFieldKey[decimal.Decimal]("Notional")
	Rate            = NewFieldKey[decimal.Decimal]("Rate")
	Payer           = NewFieldKey[bool]("Payer")
	AccrualSchedule = NewFieldKey[AdjustedScheduleDefinition]("Accrual Schedule")
	PaymentSchedule = NewFieldKey[AdjustedScheduleDefinition]("Payment Schedule")
)
