package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/meenmo/cfschedule/utils"
)

// Tenor is the step between regular period boundaries, e.g. 6M or 1Y.
type Tenor struct {
	Years  int
	Months int
	Days   int
}

// Months returns a tenor of n months.
func Months(n int) Tenor { return Tenor{Months: n} }

// Years returns a tenor of n years.
func Years(n int) Tenor { return Tenor{Years: n} }

// ParseTenor converts strings like "3M", "1Y6M", "2W" or "30D".
func ParseTenor(s string) (Tenor, error) {
	rest := strings.ToUpper(strings.TrimSpace(s))
	if rest == "" {
		return Tenor{}, fmt.Errorf("parse tenor %q: empty", s)
	}
	var t Tenor
	for rest != "" {
		i := strings.IndexAny(rest, "DWMY")
		if i <= 0 {
			return Tenor{}, fmt.Errorf("parse tenor %q: expected <number><D|W|M|Y>", s)
		}
		n, err := strconv.Atoi(rest[:i])
		if err != nil {
			return Tenor{}, fmt.Errorf("parse tenor %q: %w", s, err)
		}
		switch rest[i] {
		case 'D':
			t.Days += n
		case 'W':
			t.Days += 7 * n
		case 'M':
			t.Months += n
		case 'Y':
			t.Years += n
		}
		rest = rest[i+1:]
	}
	return t, nil
}

// IsPositive reports whether the tenor moves dates forward. Mixed signs are not positive.
func (t Tenor) IsPositive() bool {
	if t.Years < 0 || t.Months < 0 || t.Days < 0 {
		return false
	}
	return t.Years > 0 || t.Months > 0 || t.Days > 0
}

// AddTo returns anchor moved by n steps of t. Months and years use EDATE
// clipping from the anchor, so Jan-31 + 1M is Feb-28 and + 2M is Mar-31.
func (t Tenor) AddTo(anchor time.Time, n int) time.Time {
	out := anchor
	if months := n * (12*t.Years + t.Months); months != 0 {
		out = utils.AddMonth(out, months)
	}
	if t.Days != 0 {
		out = out.AddDate(0, 0, n*t.Days)
	}
	return out
}

func (t Tenor) String() string {
	var b strings.Builder
	if t.Years != 0 {
		fmt.Fprintf(&b, "%dY", t.Years)
	}
	if t.Months != 0 {
		fmt.Fprintf(&b, "%dM", t.Months)
	}
	if t.Days != 0 {
		if t.Days%7 == 0 {
			fmt.Fprintf(&b, "%dW", t.Days/7)
		} else {
			fmt.Fprintf(&b, "%dD", t.Days)
		}
	}
	if b.Len() == 0 {
		return "0D"
	}
	return b.String()
}
