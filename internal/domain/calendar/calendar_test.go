package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFederalHolidays_AllObservedOnWeekdays(t *testing.T) {
	for year := 2020; year <= 2030; year++ {
		for d, name := range FederalHolidays(year) {
			wd := d.Weekday()
			assert.NotEqual(t, time.Saturday, wd, "%s %d observed on Saturday: %s", name, year, d)
			assert.NotEqual(t, time.Sunday, wd, "%s %d observed on Sunday: %s", name, year, d)
		}
	}
}

func TestFederalHolidays_KnownDates(t *testing.T) {
	h2024 := FederalHolidays(2024)

	assert.Equal(t, HolidayNewYearsDay, h2024[Date(2024, time.January, 1)])
	assert.Equal(t, HolidayMLKDay, h2024[Date(2024, time.January, 15)])
	assert.Equal(t, HolidayPresidentsDay, h2024[Date(2024, time.February, 19)])
	assert.Equal(t, HolidayMemorialDay, h2024[Date(2024, time.May, 27)])
	assert.Equal(t, HolidayIndependenceDay, h2024[Date(2024, time.July, 4)])
	assert.Equal(t, HolidayLaborDay, h2024[Date(2024, time.September, 2)])
	assert.Equal(t, HolidayColumbusDay, h2024[Date(2024, time.October, 14)])
	assert.Equal(t, HolidayVeteransDay, h2024[Date(2024, time.November, 11)])
	assert.Equal(t, HolidayThanksgiving, h2024[Date(2024, time.November, 28)])
	assert.Equal(t, HolidayChristmas, h2024[Date(2024, time.December, 25)])

	assert.Len(t, h2024, 10)
}

func TestFederalHolidays_ObservedAdjustment(t *testing.T) {
	// July 4, 2026 is a Saturday: observed Friday July 3.
	h2026 := FederalHolidays(2026)
	assert.Equal(t, HolidayIndependenceDay, h2026[Date(2026, time.July, 3)])
	_, onSaturday := h2026[Date(2026, time.July, 4)]
	assert.False(t, onSaturday)

	// November 11, 2029 is a Sunday: observed Monday November 12.
	h2029 := FederalHolidays(2029)
	assert.Equal(t, HolidayVeteransDay, h2029[Date(2029, time.November, 12)])
}

func TestIsHoliday_YearEndObservance(t *testing.T) {
	// January 1, 2028 is a Saturday, observed Friday December 31, 2027.
	assert.True(t, IsHoliday(Date(2027, time.December, 31)))
	assert.False(t, IsHoliday(Date(2028, time.January, 1)))
}

func TestIsBusinessDay(t *testing.T) {
	assert.True(t, IsBusinessDay(Date(2024, time.June, 10)))   // Monday
	assert.False(t, IsBusinessDay(Date(2024, time.June, 8)))   // Saturday
	assert.False(t, IsBusinessDay(Date(2024, time.June, 9)))   // Sunday
	assert.False(t, IsBusinessDay(Date(2024, time.July, 4)))   // holiday
	assert.True(t, IsBusinessDay(Date(2024, time.July, 5)))    // Friday after
	assert.False(t, IsBusinessDay(Date(2024, time.November, 28))) // Thanksgiving
}

func TestAddBusinessDays(t *testing.T) {
	// Monday + 4 business days = Friday, no holidays intervening.
	got := AddBusinessDays(Date(2024, time.June, 10), 4)
	assert.Equal(t, Date(2024, time.June, 14), got)

	// Friday + 1 business day skips the weekend.
	got = AddBusinessDays(Date(2024, time.June, 7), 1)
	assert.Equal(t, Date(2024, time.June, 10), got)

	// Crossing Thanksgiving: Wednesday Nov 27 + 1 lands on Friday Nov 29.
	got = AddBusinessDays(Date(2024, time.November, 27), 1)
	assert.Equal(t, Date(2024, time.November, 29), got)

	// Zero is the identity.
	assert.Equal(t, Date(2024, time.June, 10), AddBusinessDays(Date(2024, time.June, 10), 0))
}

func TestSubBusinessDays(t *testing.T) {
	// Friday vote date minus 2 business days.
	got := SubBusinessDays(Date(2024, time.September, 20), 2)
	assert.Equal(t, Date(2024, time.September, 18), got)

	// Monday minus 1 business day skips back over the weekend.
	got = SubBusinessDays(Date(2024, time.June, 10), 1)
	assert.Equal(t, Date(2024, time.June, 7), got)
}

func TestCountBusinessDays_InverseOfAdd(t *testing.T) {
	starts := []time.Time{
		Date(2024, time.June, 10),     // Monday
		Date(2024, time.June, 8),      // Saturday
		Date(2024, time.November, 27), // day before Thanksgiving
		Date(2024, time.December, 24), // day before Christmas
	}
	for _, start := range starts {
		for n := 0; n <= 25; n++ {
			end := AddBusinessDays(start, n)
			assert.Equal(t, n, CountBusinessDays(start, end),
				"start=%s n=%d end=%s", start.Format("2006-01-02"), n, end.Format("2006-01-02"))
		}
	}
}

func TestCountBusinessDays_EndNotAfterStart(t *testing.T) {
	d := Date(2024, time.June, 10)
	assert.Equal(t, 0, CountBusinessDays(d, d))
	assert.Equal(t, 0, CountBusinessDays(d, d.AddDate(0, 0, -5)))
}

func TestNextPreviousBusinessDay(t *testing.T) {
	// Next from Wednesday before Thanksgiving is Friday.
	got := NextBusinessDay(Date(2024, time.November, 27))
	assert.Equal(t, Date(2024, time.November, 29), got)

	// Always moves at least one day, even from a business day.
	got = NextBusinessDay(Date(2024, time.June, 10))
	assert.Equal(t, Date(2024, time.June, 11), got)

	got = PreviousBusinessDay(Date(2024, time.November, 29))
	assert.Equal(t, Date(2024, time.November, 27), got)
}

func TestSnapToBusinessDay(t *testing.T) {
	// Saturday snaps back to Friday.
	assert.Equal(t, Date(2024, time.June, 7), SnapToBusinessDay(Date(2024, time.June, 8)))
	// Thanksgiving snaps back to Wednesday.
	assert.Equal(t, Date(2024, time.November, 27), SnapToBusinessDay(Date(2024, time.November, 28)))
	// Business days are unchanged.
	assert.Equal(t, Date(2024, time.June, 10), SnapToBusinessDay(Date(2024, time.June, 10)))
}

func TestNormalize(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	in := time.Date(2024, time.June, 10, 23, 45, 0, 0, loc)
	got := Normalize(in)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, 10, got.Day())
}
