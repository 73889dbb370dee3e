package calendar

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// CalendarID identifies a holiday calendar.
type CalendarID string

const (
	NoHolidaysID CalendarID = "NO_HOLIDAYS"
	WeekendsID   CalendarID = "WEEKENDS"
	TARGET       CalendarID = "TARGET"
	USNY         CalendarID = "USNY"
)

// BusinessDayCalendar answers business day questions for one holiday calendar.
type BusinessDayCalendar interface {
	ID() CalendarID
	IsBusinessDay(t time.Time) bool
	// Shift moves t by days business days; negative values move backward.
	Shift(t time.Time, days int) time.Time
	Next(t time.Time) time.Time
	Previous(t time.Time) time.Time
	NextOrSame(t time.Time) time.Time
	PreviousOrSame(t time.Time) time.Time
}

// holidayRule reports whether t is a holiday by a calendar rule rather than a listed date.
type holidayRule func(t time.Time) bool

// Calendar is the single concrete BusinessDayCalendar. Its variants are the
// constructors below: no holidays, weekends only, weekends plus listed dates,
// the rule-based built-ins, and combinations of those.
type Calendar struct {
	id       CalendarID
	weekends bool
	holidays map[string]struct{}
	rules    []holidayRule
}

var _ BusinessDayCalendar = (*Calendar)(nil)

// NoHolidays treats every day as a business day.
func NoHolidays() *Calendar {
	return &Calendar{id: NoHolidaysID}
}

// Weekends treats Saturday and Sunday as the only non-business days.
func Weekends() *Calendar {
	return &Calendar{id: WeekendsID, weekends: true}
}

// NewHolidayCalendar builds a weekend calendar with an explicit holiday list.
func NewHolidayCalendar(id CalendarID, holidays []time.Time) *Calendar {
	set := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		set[h.Format("2006-01-02")] = struct{}{}
	}
	return &Calendar{id: id, weekends: true, holidays: set}
}

func newRuleCalendar(id CalendarID, rules ...holidayRule) *Calendar {
	return &Calendar{id: id, weekends: true, rules: rules}
}

// Combine returns a calendar whose non-business days are the union of those of cals.
func Combine(cals ...*Calendar) *Calendar {
	if len(cals) == 1 {
		return cals[0]
	}
	ids := make([]string, 0, len(cals))
	out := &Calendar{holidays: make(map[string]struct{})}
	for _, c := range cals {
		ids = append(ids, string(c.id))
		out.weekends = out.weekends || c.weekends
		for h := range c.holidays {
			out.holidays[h] = struct{}{}
		}
		out.rules = append(out.rules, c.rules...)
	}
	out.id = CalendarID(strings.Join(ids, "+"))
	return out
}

// ID returns the calendar identifier.
func (c *Calendar) ID() CalendarID { return c.id }

// Holidays returns the listed holidays, sorted. Rule-based holidays are not included.
func (c *Calendar) Holidays() []time.Time {
	out := make([]time.Time, 0, len(c.holidays))
	for h := range c.holidays {
		t, err := time.Parse("2006-01-02", h)
		if err == nil {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func (c *Calendar) isHoliday(t time.Time) bool {
	if _, ok := c.holidays[t.Format("2006-01-02")]; ok {
		return true
	}
	for _, rule := range c.rules {
		if rule(t) {
			return true
		}
	}
	return false
}

// IsBusinessDay checks weekends and holiday sets.
func (c *Calendar) IsBusinessDay(t time.Time) bool {
	if c.weekends && (t.Weekday() == time.Saturday || t.Weekday() == time.Sunday) {
		return false
	}
	return !c.isHoliday(t)
}

// Shift advances n business days (n can be negative). A zero shift returns t unchanged.
func (c *Calendar) Shift(t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if c.IsBusinessDay(t) {
			n -= step
		}
	}
	return t
}

func (c *Calendar) Next(t time.Time) time.Time     { return c.Shift(t, 1) }
func (c *Calendar) Previous(t time.Time) time.Time { return c.Shift(t, -1) }

func (c *Calendar) NextOrSame(t time.Time) time.Time {
	for !c.IsBusinessDay(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

func (c *Calendar) PreviousOrSame(t time.Time) time.Time {
	for !c.IsBusinessDay(t) {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

func (c *Calendar) String() string { return string(c.id) }

var (
	registryMu sync.RWMutex
	registry   = map[CalendarID]*Calendar{
		NoHolidaysID: NoHolidays(),
		WeekendsID:   Weekends(),
		TARGET:       newRuleCalendar(TARGET, targetHoliday),
		USNY:         newRuleCalendar(USNY, usnyHoliday),
	}
)

// Register makes c available through Get, replacing any calendar with the same id.
func Register(c *Calendar) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[CalendarID(strings.ToUpper(string(c.id)))] = c
}

// Get returns a registered calendar. Ids joined with "+" resolve to the
// combination of their parts, e.g. "USNY+TARGET".
func Get(id CalendarID) (*Calendar, error) {
	key := CalendarID(strings.ToUpper(strings.TrimSpace(string(id))))
	registryMu.RLock()
	c, ok := registry[key]
	registryMu.RUnlock()
	if ok {
		return c, nil
	}
	if parts := strings.Split(string(key), "+"); len(parts) > 1 {
		cals := make([]*Calendar, 0, len(parts))
		for _, p := range parts {
			pc, err := Get(CalendarID(p))
			if err != nil {
				return nil, err
			}
			cals = append(cals, pc)
		}
		return Combine(cals...), nil
	}
	return nil, fmt.Errorf("unknown calendar %q", string(id))
}
