package calendar

import "time"

// easterSunday returns Western Easter Sunday (anonymous Gregorian algorithm).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func sameDay(t, d time.Time) bool {
	return t.Year() == d.Year() && t.YearDay() == d.YearDay()
}

// targetHoliday covers the TARGET2 closing days: New Year, Good Friday,
// Easter Monday, Labour Day, Christmas and Boxing Day.
func targetHoliday(t time.Time) bool {
	switch {
	case t.Month() == time.January && t.Day() == 1,
		t.Month() == time.May && t.Day() == 1,
		t.Month() == time.December && (t.Day() == 25 || t.Day() == 26):
		return true
	}
	easter := easterSunday(t.Year())
	return sameDay(t, easter.AddDate(0, 0, -2)) || sameDay(t, easter.AddDate(0, 0, 1))
}

// nthWeekday returns the n-th weekday of the month; n < 0 counts from the month end.
func nthWeekday(year int, month time.Month, wd time.Weekday, n int) time.Time {
	if n > 0 {
		first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		offset := (int(wd) - int(first.Weekday()) + 7) % 7
		return first.AddDate(0, 0, offset+7*(n-1))
	}
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	offset := (int(last.Weekday()) - int(wd) + 7) % 7
	return last.AddDate(0, 0, -offset+7*(n+1))
}

// observedSunday moves a Sunday holiday to Monday. Saturday holidays are not observed.
func observedSunday(year int, month time.Month, day int) time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Weekday() == time.Sunday {
		return d.AddDate(0, 0, 1)
	}
	return d
}

// usnyHoliday covers the Federal Reserve bank holidays used for USD payments.
func usnyHoliday(t time.Time) bool {
	y := t.Year()
	days := []time.Time{
		observedSunday(y, time.January, 1),
		nthWeekday(y, time.January, time.Monday, 3),
		nthWeekday(y, time.February, time.Monday, 3),
		nthWeekday(y, time.May, time.Monday, -1),
		observedSunday(y, time.July, 4),
		nthWeekday(y, time.September, time.Monday, 1),
		nthWeekday(y, time.October, time.Monday, 2),
		observedSunday(y, time.November, 11),
		nthWeekday(y, time.November, time.Thursday, 4),
		observedSunday(y, time.December, 25),
	}
	if y >= 2022 {
		days = append(days, observedSunday(y, time.June, 19))
	}
	for _, d := range days {
		if sameDay(t, d) {
			return true
		}
	}
	return false
}
