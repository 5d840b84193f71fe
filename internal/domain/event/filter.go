package event

import (
	"strconv"
	"strings"
	"time"
)

// Bounds for accepted filter years.
const (
	MinFilterYear = 1900
	MaxFilterYear = 9999
)

// FilterStartYear is the oldest year offered in listing filters.
const FilterStartYear = 2020

// DateFilter narrows an event listing to a year, or a month within a year.
// A zero Year disables the filter; Month is ignored without a Year.
type DateFilter struct {
	Year  int
	Month int // 1-12, 0 for the whole year
}

// ParseDateFilter builds a DateFilter from raw query values.
// Values that do not parse or fall out of range are dropped.
func ParseDateFilter(year, month string) DateFilter {
	var f DateFilter
	if y, err := strconv.Atoi(strings.TrimSpace(year)); err == nil && y >= MinFilterYear && y <= MaxFilterYear {
		f.Year = y
	}
	if m, err := strconv.Atoi(strings.TrimSpace(month)); err == nil && m >= 1 && m <= 12 {
		f.Month = m
	}
	return f
}

// Active reports whether the filter restricts anything.
func (f DateFilter) Active() bool {
	return f.Year != 0
}

// Range returns the inclusive first and last day covered by the filter.
// POST: ok is false when no year is set
func (f DateFilter) Range() (from, to time.Time, ok bool) {
	if !f.Active() {
		return time.Time{}, time.Time{}, false
	}
	if f.Month == 0 {
		from = time.Date(f.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to = time.Date(f.Year, time.December, 31, 0, 0, 0, 0, time.UTC)
		return from, to, true
	}
	from = time.Date(f.Year, time.Month(f.Month), 1, 0, 0, 0, 0, time.UTC)
	to = from.AddDate(0, 1, -1)
	return from, to, true
}

// MonthName returns the English month name, or "" when no month is set.
func (f DateFilter) MonthName() string {
	if f.Month < 1 || f.Month > 12 {
		return ""
	}
	return time.Month(f.Month).String()
}

// FilterYears returns the selectable years, newest first, from now back to start.
func FilterYears(now time.Time, start int) []int {
	var years []int
	for y := now.Year(); y >= start; y-- {
		years = append(years, y)
	}
	return years
}
