package pgholidays_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/cfschedule/calendar"
	"github.com/meenmo/cfschedule/calendar/pgholidays"
)

type fakeLoader struct {
	calls atomic.Int32
	data  map[calendar.CalendarID][]time.Time
	err   error
}

func (f *fakeLoader) Holidays(_ context.Context, id calendar.CalendarID) ([]time.Time, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.data[id], nil
}

func TestCache_LoadsOnce(t *testing.T) {
	t.Parallel()

	loader := &fakeLoader{data: map[calendar.CalendarID][]time.Time{
		"KRW_PG": {time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC)},
	}}
	cache := pgholidays.NewCache(loader)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cal, err := cache.Calendar(context.Background(), "KRW_PG")
			assert.NoError(t, err)
			assert.False(t, cal.IsBusinessDay(time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC)))
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), loader.calls.Load())
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	loader := &fakeLoader{err: errors.New("connection refused")}
	cache := pgholidays.NewCache(loader)

	_, err := cache.Calendar(context.Background(), "X_PG")
	require.Error(t, err)
	_, err = cache.Calendar(context.Background(), "X_PG")
	require.Error(t, err)
	assert.Equal(t, int32(2), loader.calls.Load())
}

func TestCache_Register(t *testing.T) {
	t.Parallel()

	loader := &fakeLoader{data: map[calendar.CalendarID][]time.Time{
		"PG_REGISTERED": {time.Date(2026, 2, 17, 0, 0, 0, 0, time.UTC)},
	}}
	require.NoError(t, pgholidays.NewCache(loader).Register(context.Background(), "PG_REGISTERED"))

	cal, err := calendar.Get("pg_registered")
	require.NoError(t, err)
	assert.False(t, cal.IsBusinessDay(time.Date(2026, 2, 17, 0, 0, 0, 0, time.UTC)))
}
