// Package calendar implements the US business-day calendar used by all
// deadline computations: federal holiday derivation with observed-date
// adjustment, business-day predicates, and business-day arithmetic.
package calendar

import (
	"sync"
	"time"
)

// Holiday names as they appear in the federal holiday set.
const (
	HolidayNewYearsDay     = "New Year's Day"
	HolidayMLKDay          = "Birthday of Martin Luther King, Jr."
	HolidayPresidentsDay   = "Washington's Birthday"
	HolidayMemorialDay     = "Memorial Day"
	HolidayIndependenceDay = "Independence Day"
	HolidayLaborDay        = "Labor Day"
	HolidayColumbusDay     = "Columbus Day"
	HolidayVeteransDay     = "Veterans Day"
	HolidayThanksgiving    = "Thanksgiving Day"
	HolidayChristmas       = "Christmas Day"
)

var (
	holidayCacheMu sync.RWMutex
	holidayCache   = make(map[int]map[time.Time]string)
)

// Normalize truncates t to midnight UTC.  Every date that enters the
// calendar package is normalized so map lookups and comparisons are exact.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Date builds a normalized date from its components.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// FederalHolidays returns the observed US federal holidays for the given
// calendar year, keyed by observed date.  A holiday falling on Saturday is
// observed the preceding Friday; Sunday the following Monday.  Results are
// cached per year.
func FederalHolidays(year int) map[time.Time]string {
	holidayCacheMu.RLock()
	if cached, ok := holidayCache[year]; ok {
		holidayCacheMu.RUnlock()
		return cached
	}
	holidayCacheMu.RUnlock()

	set := computeFederalHolidays(year)

	holidayCacheMu.Lock()
	holidayCache[year] = set
	holidayCacheMu.Unlock()

	return set
}

func computeFederalHolidays(year int) map[time.Time]string {
	set := make(map[time.Time]string, 10)

	add := func(d time.Time, name string) {
		set[observed(d)] = name
	}

	add(Date(year, time.January, 1), HolidayNewYearsDay)
	add(nthWeekday(year, time.January, time.Monday, 3), HolidayMLKDay)
	add(nthWeekday(year, time.February, time.Monday, 3), HolidayPresidentsDay)
	add(lastWeekday(year, time.May, time.Monday), HolidayMemorialDay)
	add(Date(year, time.July, 4), HolidayIndependenceDay)
	add(nthWeekday(year, time.September, time.Monday, 1), HolidayLaborDay)
	add(nthWeekday(year, time.October, time.Monday, 2), HolidayColumbusDay)
	add(Date(year, time.November, 11), HolidayVeteransDay)
	add(nthWeekday(year, time.November, time.Thursday, 4), HolidayThanksgiving)
	add(Date(year, time.December, 25), HolidayChristmas)

	return set
}

// observed shifts Saturday holidays to the preceding Friday and Sunday
// holidays to the following Monday.
func observed(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, -1)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	default:
		return d
	}
}

// nthWeekday returns the nth occurrence (1-based) of the given weekday in
// the given month.
func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	d := Date(year, month, 1)
	offset := (int(weekday) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset+(n-1)*7)
}

// lastWeekday returns the last occurrence of the given weekday in the month.
func lastWeekday(year int, month time.Month, weekday time.Weekday) time.Time {
	d := Date(year, month+1, 1).AddDate(0, 0, -1) // last day of month
	offset := (int(d.Weekday()) - int(weekday) + 7) % 7
	return d.AddDate(0, 0, -offset)
}

// IsHoliday reports whether the date is an observed federal holiday.
// A year-end holiday observed in the adjacent year (Jan 1 on a Saturday is
// observed Dec 31) is found by also consulting the following year's set.
func IsHoliday(t time.Time) bool {
	d := Normalize(t)
	if _, ok := FederalHolidays(d.Year())[d]; ok {
		return true
	}
	if d.Month() == time.December && d.Day() == 31 {
		if _, ok := FederalHolidays(d.Year() + 1)[d]; ok {
			return true
		}
	}
	return false
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsBusinessDay reports whether the date is a weekday that is not an
// observed federal holiday.
func IsBusinessDay(t time.Time) bool {
	return !IsWeekend(t) && !IsHoliday(t)
}

// NextBusinessDay returns the first business day strictly after t.
func NextBusinessDay(t time.Time) time.Time {
	d := Normalize(t).AddDate(0, 0, 1)
	for !IsBusinessDay(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// PreviousBusinessDay returns the first business day strictly before t.
func PreviousBusinessDay(t time.Time) time.Time {
	d := Normalize(t).AddDate(0, 0, -1)
	for !IsBusinessDay(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// AddBusinessDays walks forward one calendar day at a time until n business
// days have been consumed.  AddBusinessDays(d, 0) returns d normalized.
func AddBusinessDays(t time.Time, n int) time.Time {
	d := Normalize(t)
	for remaining := n; remaining > 0; {
		d = d.AddDate(0, 0, 1)
		if IsBusinessDay(d) {
			remaining--
		}
	}
	return d
}

// SubBusinessDays walks backward one calendar day at a time until n business
// days have been consumed.  Not an exact inverse of AddBusinessDays when the
// start date is itself not a business day; callers re-snap computed
// deadlines afterward.
func SubBusinessDays(t time.Time, n int) time.Time {
	d := Normalize(t)
	for remaining := n; remaining > 0; {
		d = d.AddDate(0, 0, -1)
		if IsBusinessDay(d) {
			remaining--
		}
	}
	return d
}

// CountBusinessDays counts business days strictly after start up to and
// including end.  Returns 0 when end is on or before start.
func CountBusinessDays(start, end time.Time) int {
	s := Normalize(start)
	e := Normalize(end)
	if !e.After(s) {
		return 0
	}
	count := 0
	for d := s.AddDate(0, 0, 1); !d.After(e); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(d) {
			count++
		}
	}
	return count
}

// SnapToBusinessDay moves a date backward to the nearest business day;
// dates already on a business day are returned unchanged.
func SnapToBusinessDay(t time.Time) time.Time {
	d := Normalize(t)
	for !IsBusinessDay(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}
