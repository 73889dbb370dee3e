// Package pgholidays loads holiday calendars from Postgres and memoizes them.
//
// The schedule engine treats calendars as pure lookups, so any I/O has to be
// resolved before a schedule is built. Cache is the caller-side memo for that.
package pgholidays

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/lib/pq"

	"github.com/meenmo/cfschedule/calendar"
)

// DefaultQuery selects the holiday dates of one calendar.
const DefaultQuery = `SELECT holiday_date FROM holidays WHERE calendar_id = $1 ORDER BY holiday_date`

// Loader returns the listed holidays of a calendar.
type Loader interface {
	Holidays(ctx context.Context, id calendar.CalendarID) ([]time.Time, error)
}

// Source reads holidays from a Postgres table.
type Source struct {
	db    *sql.DB
	query string
}

// Open connects to Postgres with a lib/pq DSN.
func Open(dsn string) (*Source, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("pgholidays: open: %w", err)
	}
	return NewSource(db, DefaultQuery), nil
}

// NewSource wraps an existing handle. query must take the calendar id as $1
// and return one date column.
func NewSource(db *sql.DB, query string) *Source {
	if query == "" {
		query = DefaultQuery
	}
	return &Source{db: db, query: query}
}

// Holidays implements Loader.
func (s *Source) Holidays(ctx context.Context, id calendar.CalendarID) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, s.query, string(id))
	if err != nil {
		return nil, fmt.Errorf("pgholidays: query %s: %w", id, err)
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("pgholidays: scan %s: %w", id, err)
		}
		out = append(out, time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgholidays: rows %s: %w", id, err)
	}
	return out, nil
}

// Close releases the database handle.
func (s *Source) Close() error {
	return s.db.Close()
}

// Cache memoizes calendars built from a Loader. Safe for concurrent use.
type Cache struct {
	loader Loader

	mu        sync.Mutex
	calendars map[calendar.CalendarID]*calendar.Calendar
}

// NewCache wraps loader with a per-id memo.
func NewCache(loader Loader) *Cache {
	return &Cache{loader: loader, calendars: make(map[calendar.CalendarID]*calendar.Calendar)}
}

// Calendar returns the calendar for id, loading it on first use. Failed loads are not cached.
func (c *Cache) Calendar(ctx context.Context, id calendar.CalendarID) (*calendar.Calendar, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cal, ok := c.calendars[id]; ok {
		return cal, nil
	}
	holidays, err := c.loader.Holidays(ctx, id)
	if err != nil {
		return nil, err
	}
	cal := calendar.NewHolidayCalendar(id, holidays)
	c.calendars[id] = cal
	return cal, nil
}

// Register loads each id and registers it with the calendar package so that
// calendar.Get can resolve it.
func (c *Cache) Register(ctx context.Context, ids ...calendar.CalendarID) error {
	for _, id := range ids {
		cal, err := c.Calendar(ctx, id)
		if err != nil {
			return err
		}
		calendar.Register(cal)
	}
	return nil
}
