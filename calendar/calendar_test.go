package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/cfschedule/calendar"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestWeekendsAndNoHolidays(t *testing.T) {
	t.Parallel()

	sat := d(2024, 3, 2)
	assert.False(t, calendar.Weekends().IsBusinessDay(sat))
	assert.True(t, calendar.NoHolidays().IsBusinessDay(sat))
	assert.Equal(t, sat, calendar.NoHolidays().NextOrSame(sat))
	assert.Equal(t, d(2024, 3, 4), calendar.Weekends().NextOrSame(sat))
	assert.Equal(t, d(2024, 3, 1), calendar.Weekends().PreviousOrSame(sat))
}

func TestShift(t *testing.T) {
	t.Parallel()

	cal := calendar.Weekends()
	assert.Equal(t, d(2024, 3, 5), cal.Shift(d(2024, 3, 1), 2))
	assert.Equal(t, d(2024, 3, 1), cal.Shift(d(2024, 3, 4), -1))
	assert.Equal(t, d(2024, 3, 2), cal.Shift(d(2024, 3, 2), 0))
	assert.Equal(t, d(2024, 3, 4), cal.Next(d(2024, 3, 1)))
	assert.Equal(t, d(2024, 3, 1), cal.Previous(d(2024, 3, 4)))
}

func TestTargetHolidays(t *testing.T) {
	t.Parallel()

	cal, err := calendar.Get(calendar.TARGET)
	require.NoError(t, err)
	for _, h := range []time.Time{d(2024, 1, 1), d(2024, 3, 29), d(2024, 4, 1), d(2024, 5, 1), d(2024, 12, 25), d(2024, 12, 26), d(2025, 4, 18), d(2025, 4, 21)} {
		assert.False(t, cal.IsBusinessDay(h), h.Format("2006-01-02"))
	}
	assert.True(t, cal.IsBusinessDay(d(2024, 4, 2)))
}

func TestUSNYHolidays(t *testing.T) {
	t.Parallel()

	cal, err := calendar.Get("usny")
	require.NoError(t, err)
	holidays := []time.Time{
		d(2023, 1, 2), // New Year observed on Monday
		d(2024, 1, 15),
		d(2024, 2, 19),
		d(2024, 5, 27),
		d(2024, 6, 19),
		d(2024, 7, 4),
		d(2024, 9, 2),
		d(2024, 10, 14),
		d(2024, 11, 11),
		d(2024, 11, 28),
		d(2024, 12, 25),
	}
	for _, h := range holidays {
		assert.False(t, cal.IsBusinessDay(h), h.Format("2006-01-02"))
	}
	assert.True(t, cal.IsBusinessDay(d(2021, 6, 18)), "Juneteenth not observed before 2022")
	assert.True(t, cal.IsBusinessDay(d(2024, 11, 29)))
}

func TestCombineAndGetJoinedID(t *testing.T) {
	t.Parallel()

	cal, err := calendar.Get("USNY+TARGET")
	require.NoError(t, err)
	assert.Equal(t, calendar.CalendarID("USNY+TARGET"), cal.ID())
	assert.False(t, cal.IsBusinessDay(d(2024, 3, 29)))
	assert.False(t, cal.IsBusinessDay(d(2024, 11, 28)))
	assert.True(t, cal.IsBusinessDay(d(2024, 11, 29)))

	_, err = calendar.Get("USNY+NOPE")
	require.Error(t, err)
}

func TestHolidayCalendar(t *testing.T) {
	t.Parallel()

	cal := calendar.NewHolidayCalendar("TEST_HC", []time.Time{d(2025, 5, 5), d(2025, 1, 1)})
	assert.False(t, cal.IsBusinessDay(d(2025, 5, 5)))
	assert.Equal(t, []time.Time{d(2025, 1, 1), d(2025, 5, 5)}, cal.Holidays())
	assert.Equal(t, d(2025, 5, 6), cal.NextOrSame(d(2025, 5, 3)))
}

func TestBusinessDayConventions(t *testing.T) {
	t.Parallel()

	cal := calendar.Weekends()
	monthEndSat := d(2024, 8, 31)
	monthStartSun := d(2024, 9, 1)

	assert.Equal(t, d(2024, 9, 2), calendar.Following.Adjust(monthEndSat, cal))
	assert.Equal(t, d(2024, 8, 30), calendar.ModifiedFollowing.Adjust(monthEndSat, cal))
	assert.Equal(t, d(2024, 8, 30), calendar.Preceding.Adjust(monthStartSun, cal))
	assert.Equal(t, d(2024, 9, 2), calendar.ModifiedPreceding.Adjust(monthStartSun, cal))
	assert.Equal(t, monthEndSat, calendar.Unadjusted.Adjust(monthEndSat, cal))
	assert.Equal(t, d(2024, 3, 4), calendar.ModifiedFollowing.Adjust(d(2024, 3, 2), cal))
}

func TestParseBusinessDayConvention(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]calendar.BusinessDayConvention{
		"Modified Following": calendar.ModifiedFollowing,
		"mf":                 calendar.ModifiedFollowing,
		"following":          calendar.Following,
		"modified-preceding": calendar.ModifiedPreceding,
		"NONE":               calendar.Unadjusted,
	} {
		got, err := calendar.ParseBusinessDayConvention(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := calendar.ParseBusinessDayConvention("nearest")
	require.Error(t, err)
}

func TestParseHolidayFile(t *testing.T) {
	t.Parallel()

	input := []byte(`
calendars:
  - id: krw_test
    holidays: ["2025-01-01", "2025-01-28"]
  - id: SEVEN_DAY
    weekends: false
    holidays: ["2025-12-25"]
`)
	cals, err := calendar.ParseHolidayFile(input)
	require.NoError(t, err)
	require.Len(t, cals, 2)
	assert.Equal(t, calendar.CalendarID("KRW_TEST"), cals[0].ID())
	assert.False(t, cals[0].IsBusinessDay(d(2025, 1, 28)))
	assert.False(t, cals[0].IsBusinessDay(d(2025, 1, 4)))
	assert.True(t, cals[1].IsBusinessDay(d(2025, 1, 4)))
	assert.False(t, cals[1].IsBusinessDay(d(2025, 12, 25)))
}

func TestParseHolidayFile_Invalid(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"empty":     `calendars: []`,
		"no id":     "calendars:\n  - holidays: [\"2025-01-01\"]\n",
		"bad date":  "calendars:\n  - id: X\n    holidays: [\"01/01/2025\"]\n",
		"duplicate": "calendars:\n  - id: X\n  - id: x\n",
		"joined id": "calendars:\n  - id: A+B\n",
	}
	for name, in := range cases {
		_, err := calendar.ParseHolidayFile([]byte(in))
		assert.Error(t, err, name)
	}
}

func TestBusinessDayConvention_Valid(t *testing.T) {
	t.Parallel()

	for _, c := range []calendar.BusinessDayConvention{
		calendar.Unadjusted, calendar.Following, calendar.ModifiedFollowing,
		calendar.Preceding, calendar.ModifiedPreceding,
	} {
		assert.True(t, c.Valid(), string(c))
	}
	assert.False(t, calendar.BusinessDayConvention("MODFOLLOW").Valid())
	assert.False(t, calendar.BusinessDayConvention("").Valid())
}
