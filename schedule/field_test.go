package schedule_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/cfschedule/schedule"
)

func TestFieldMap_CopyOnWrite(t *testing.T) {
	t.Parallel()

	base := schedule.NewFieldMap(schedule.Rate.Of(decimal.RequireFromString("0.015")))
	next := base.With(schedule.Payer.Of(true))

	assert.Equal(t, 1, base.Len())
	assert.False(t, base.Has(schedule.Payer))
	assert.True(t, next.Has(schedule.Payer))
	assert.True(t, next.Has(schedule.Rate))

	rate, ok := schedule.Rate.Get(next)
	require.True(t, ok)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.015")))

	_, ok = schedule.Notional.Get(next)
	assert.False(t, ok)
}

func TestFieldMap_LaterFieldsWin(t *testing.T) {
	t.Parallel()

	m := schedule.NewFieldMap(schedule.Payer.Of(true), schedule.Payer.Of(false))
	payer, ok := schedule.Payer.Get(m)
	require.True(t, ok)
	assert.False(t, payer)

	merged := m.Merge(schedule.NewFieldMap(schedule.Payer.Of(true), schedule.Notional.Of(decimal.NewFromInt(5))))
	payer, _ = schedule.Payer.Get(merged)
	assert.True(t, payer)
	assert.Equal(t, []string{"Notional", "Payer"}, merged.Names())
}

func TestFieldMap_ZeroValue(t *testing.T) {
	t.Parallel()

	var m schedule.FieldMap
	assert.Zero(t, m.Len())
	assert.Empty(t, m.Names())
	_, ok := schedule.Payer.Get(m)
	assert.False(t, ok)
}

func TestFieldKey_Require(t *testing.T) {
	t.Parallel()

	rng := schedule.DateRange{Start: d(2020, 1, 1), End: d(2020, 7, 1)}
	p := schedule.NewSchedulePeriod(rng, schedule.FieldMap{})

	_, err := schedule.PaymentDate.Require(p)
	require.ErrorIs(t, err, schedule.ErrConfiguration)
	assert.EqualError(t, err, "required field Payment Date missing in period [2020-01-01, 2020-07-01]")

	p = p.WithValues(schedule.PaymentDate.Of(d(2020, 7, 3)))
	got, err := schedule.PaymentDate.Require(p)
	require.NoError(t, err)
	assert.Equal(t, d(2020, 7, 3), got)
}

func TestNewFieldKey_SameNameSameType(t *testing.T) {
	t.Parallel()

	again := schedule.NewFieldKey[bool]("Payer")
	m := schedule.NewFieldMap(again.Of(true))

	payer, ok := schedule.Payer.Get(m)
	require.True(t, ok)
	assert.True(t, payer)
}

func TestNewFieldKey_ConflictingType(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { schedule.NewFieldKey[string]("Payer") })
	assert.Panics(t, func() { schedule.NewFieldKey[int]("") })
}
