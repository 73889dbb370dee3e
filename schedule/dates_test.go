package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/cfschedule/schedule"
	"github.com/meenmo/cfschedule/utils"
)

func d(y int, m time.Month, day int) time.Time { return utils.Date(y, m, day) }

func TestUnadjustedRanges_WholeSteps(t *testing.T) {
	t.Parallel()

	steps := []schedule.Tenor{schedule.Months(1), schedule.Months(3), schedule.Months(6), schedule.Years(1)}
	for _, step := range steps {
		for n := 1; n <= 12; n++ {
			start := d(2014, 9, 12)
			end := step.AddTo(start, n)

			for _, stub := range []schedule.Stub{schedule.StubNone, schedule.StubShortEnd, schedule.StubLongEnd, schedule.StubShortStart, schedule.StubLongStart} {
				ranges, err := schedule.UnadjustedRanges(start, end, step, false, stub)
				require.NoError(t, err, "%s x%d %s", step, n, stub)
				require.Len(t, ranges, n, "%s x%d %s", step, n, stub)

				assert.Equal(t, start, ranges[0].Start)
				assert.Equal(t, end, ranges[n-1].End)
				for i, r := range ranges {
					assert.Equal(t, step.AddTo(start, i), r.Start, "%s x%d %s period %d", step, n, stub, i)
					assert.Equal(t, step.AddTo(start, i+1), r.End, "%s x%d %s period %d", step, n, stub, i)
				}
			}
		}
	}
}

func TestUnadjustedDates_Stubs(t *testing.T) {
	t.Parallel()

	start, end := d(2020, 1, 15), d(2021, 3, 1)
	cases := []struct {
		stub schedule.Stub
		want []time.Time
	}{
		{schedule.StubShortEnd, []time.Time{start, d(2020, 7, 15), d(2021, 1, 15), end}},
		{schedule.StubLongEnd, []time.Time{start, d(2020, 7, 15), end}},
		{schedule.StubShortStart, []time.Time{start, d(2020, 3, 1), d(2020, 9, 1), end}},
		{schedule.StubLongStart, []time.Time{start, d(2020, 9, 1), end}},
	}
	for _, c := range cases {
		t.Run(c.stub.String(), func(t *testing.T) {
			t.Parallel()

			got, err := schedule.UnadjustedDates(start, end, schedule.Months(6), false, c.stub)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestUnadjustedRanges_StubLengths(t *testing.T) {
	t.Parallel()

	start, end := d(2020, 1, 15), d(2021, 3, 1)
	step := schedule.Months(6)

	short, err := schedule.UnadjustedRanges(start, end, step, false, schedule.StubShortEnd)
	require.NoError(t, err)
	for _, r := range short[:len(short)-1] {
		assert.Equal(t, step.AddTo(r.Start, 1), r.End)
	}
	last := short[len(short)-1]
	assert.True(t, last.End.Before(step.AddTo(last.Start, 1)))
	assert.Equal(t, end, last.End)

	long, err := schedule.UnadjustedRanges(start, end, step, false, schedule.StubLongEnd)
	require.NoError(t, err)
	assert.Len(t, long, len(short)-1)
	final := long[len(long)-1]
	assert.True(t, final.End.After(step.AddTo(final.Start, 1)))
	assert.True(t, final.End.Before(step.AddTo(final.Start, 2)))
}

func TestUnadjustedDates_NoStubOnBrokenRange(t *testing.T) {
	t.Parallel()

	_, err := schedule.UnadjustedDates(d(2020, 1, 15), d(2021, 3, 1), schedule.Months(6), false, schedule.StubNone)
	require.ErrorIs(t, err, schedule.ErrUnsupportedStub)

	var stubErr *schedule.StubError
	require.ErrorAs(t, err, &stubErr)
	assert.Equal(t, schedule.StubNone, stubErr.Stub)
}

func TestUnadjustedDates_RangeShorterThanStep(t *testing.T) {
	t.Parallel()

	start, end := d(2020, 1, 15), d(2020, 3, 1)
	for _, stub := range []schedule.Stub{schedule.StubShortEnd, schedule.StubShortStart} {
		got, err := schedule.UnadjustedDates(start, end, schedule.Months(6), false, stub)
		require.NoError(t, err, stub.String())
		assert.Equal(t, []time.Time{start, end}, got)
	}
	for _, stub := range []schedule.Stub{schedule.StubLongEnd, schedule.StubLongStart, schedule.StubNone} {
		_, err := schedule.UnadjustedDates(start, end, schedule.Months(6), false, stub)
		require.ErrorIs(t, err, schedule.ErrUnsupportedStub, stub.String())
	}
}

func TestUnadjustedDates_EndOfMonth(t *testing.T) {
	t.Parallel()

	start, end := d(2020, 2, 29), d(2021, 2, 28)

	got, err := schedule.UnadjustedDates(start, end, schedule.Months(3), true, schedule.StubNone)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{start, d(2020, 5, 31), d(2020, 8, 31), d(2020, 11, 30), end}, got)
	for _, b := range got {
		assert.True(t, utils.IsLastDayOfMonth(b), utils.FormatDate(b))
	}

	got, err = schedule.UnadjustedDates(start, end, schedule.Months(3), false, schedule.StubNone)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{start, d(2020, 5, 29), d(2020, 8, 29), d(2020, 11, 29), end}, got)
}

func TestUnadjustedDates_EndOfMonthBackward(t *testing.T) {
	t.Parallel()

	start, end := d(2020, 12, 31), d(2021, 6, 30)

	got, err := schedule.UnadjustedDates(start, end, schedule.Months(3), true, schedule.StubShortStart)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{start, d(2021, 3, 31), end}, got)

	got, err = schedule.UnadjustedDates(start, end, schedule.Months(3), false, schedule.StubShortStart)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{start, d(2021, 3, 30), end}, got)
}

func TestUnadjustedDates_EndOfMonthIgnoredForMidMonthAnchor(t *testing.T) {
	t.Parallel()

	got, err := schedule.UnadjustedDates(d(2020, 1, 30), d(2020, 4, 30), schedule.Months(1), true, schedule.StubNone)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{d(2020, 1, 30), d(2020, 2, 29), d(2020, 3, 30), d(2020, 4, 30)}, got)
}

func TestUnadjustedDates_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := schedule.UnadjustedDates(d(2021, 1, 1), d(2021, 1, 1), schedule.Months(6), false, schedule.StubNone)
	require.ErrorIs(t, err, schedule.ErrDateOrder)

	_, err = schedule.UnadjustedDates(d(2022, 1, 1), d(2021, 1, 1), schedule.Months(6), false, schedule.StubNone)
	require.ErrorIs(t, err, schedule.ErrDateOrder)

	_, err = schedule.UnadjustedDates(d(2021, 1, 1), d(2022, 1, 1), schedule.Tenor{}, false, schedule.StubNone)
	require.ErrorIs(t, err, schedule.ErrConfiguration)

	_, err = schedule.UnadjustedDates(d(2021, 1, 1), d(2022, 1, 1), schedule.Months(6), false, schedule.Stub(42))
	require.ErrorIs(t, err, schedule.ErrConfiguration)
}

func TestUnadjustedDates_TooManyPeriods(t *testing.T) {
	t.Parallel()

	_, err := schedule.UnadjustedDates(d(2020, 1, 1), d(2025, 1, 1), schedule.Tenor{Days: 1}, false, schedule.StubShortEnd)
	require.ErrorIs(t, err, schedule.ErrConfiguration)
}

func TestParseTenor(t *testing.T) {
	t.Parallel()

	cases := map[string]schedule.Tenor{
		"6M":   schedule.Months(6),
		"1y":   schedule.Years(1),
		"1Y6M": {Years: 1, Months: 6},
		"2W":   {Days: 14},
		"30D":  {Days: 30},
	}
	for in, want := range cases {
		got, err := schedule.ParseTenor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	assert.Equal(t, "1Y6M", schedule.Tenor{Years: 1, Months: 6}.String())
	assert.Equal(t, "2W", schedule.Tenor{Days: 14}.String())

	for _, bad := range []string{"", "M", "6", "6X", "-"} {
		_, err := schedule.ParseTenor(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseStub(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"short_end", "SHORT-END", "short end"} {
		got, err := schedule.ParseStub(in)
		require.NoError(t, err, in)
		assert.Equal(t, schedule.StubShortEnd, got)
	}
	got, err := schedule.ParseStub("")
	require.NoError(t, err)
	assert.Equal(t, schedule.StubNone, got)

	_, err = schedule.ParseStub("medium")
	require.Error(t, err)
}
