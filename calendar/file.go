package calendar

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// HolidayFile is the YAML document listing additional holiday calendars.
//
//	calendars:
//	  - id: KRW
//	    holidays: ["2025-01-01", "2025-01-28"]
type HolidayFile struct {
	Calendars []HolidayFileEntry `yaml:"calendars"`
}

// HolidayFileEntry describes one calendar. Weekends default to non-business days.
type HolidayFileEntry struct {
	ID       string   `yaml:"id"`
	Weekends *bool    `yaml:"weekends,omitempty"`
	Holidays []string `yaml:"holidays"`
}

// ParseHolidayFile decodes and validates a holiday file without registering it.
func ParseHolidayFile(input []byte) ([]*Calendar, error) {
	var file HolidayFile
	if err := yaml.Unmarshal(input, &file); err != nil {
		return nil, fmt.Errorf("decode holiday file: %w", err)
	}
	if len(file.Calendars) == 0 {
		return nil, errors.New("holiday file: calendars must be non-empty")
	}

	out := make([]*Calendar, 0, len(file.Calendars))
	seen := make(map[string]struct{}, len(file.Calendars))
	for i, entry := range file.Calendars {
		id := strings.ToUpper(strings.TrimSpace(entry.ID))
		if id == "" {
			return nil, fmt.Errorf("holiday file: calendars[%d].id is required", i)
		}
		if strings.Contains(id, "+") {
			return nil, fmt.Errorf("holiday file: calendars[%d].id %q must not contain '+'", i, entry.ID)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("holiday file: duplicate calendar id %q", id)
		}
		seen[id] = struct{}{}

		dates := make([]time.Time, 0, len(entry.Holidays))
		for _, h := range entry.Holidays {
			d, err := time.Parse("2006-01-02", strings.TrimSpace(h))
			if err != nil {
				return nil, fmt.Errorf("holiday file: calendar %s: %w", id, err)
			}
			dates = append(dates, d)
		}
		cal := NewHolidayCalendar(CalendarID(id), dates)
		if entry.Weekends != nil {
			cal.weekends = *entry.Weekends
		}
		out = append(out, cal)
	}
	return out, nil
}

// LoadHolidayFile parses the file at path and registers every calendar in it.
func LoadHolidayFile(path string) ([]*Calendar, error) {
	input, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read holiday file: %w", err)
	}
	cals, err := ParseHolidayFile(input)
	if err != nil {
		return nil, err
	}
	for _, c := range cals {
		Register(c)
	}
	return cals, nil
}
