package swaps

import (
	"time"

	"github.com/meenmo/cfschedule/calendar"
	"github.com/meenmo/cfschedule/schedule"
)

// DefaultSpotLagDays is the usual T+2 settlement of interest rate swaps.
const DefaultSpotLagDays = 2

// SpotEffectiveMaturity computes the leg dates of a swap from its trade date.
//
// Conventions:
// - spot = tradeDate + spotLagBD business days on cal
// - effective = spot (+ forward, adjusted following)
// - maturity = effective (+ tenor, adjusted following)
func SpotEffectiveMaturity(tradeDate time.Time, cal calendar.BusinessDayCalendar, spotLagBD int, forward, tenor schedule.Tenor) (spot, effective, maturity time.Time) {
	spot = cal.Shift(tradeDate, spotLagBD)

	effective = spot
	if forward.IsPositive() {
		effective = calendar.Following.Adjust(forward.AddTo(spot, 1), cal)
	}
	maturity = calendar.Following.Adjust(tenor.AddTo(effective, 1), cal)
	return spot, effective, maturity
}
