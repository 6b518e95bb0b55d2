package filing

import "time"

// InsiderClass identifies which insiders a blackout period restricts.
type InsiderClass string

const (
	InsidersAll       InsiderClass = "ALL"
	InsidersOfficers  InsiderClass = "OFFICERS_DIRECTORS"
	InsidersSection16 InsiderClass = "SECTION_16"
	InsidersEmployees InsiderClass = "EMPLOYEES_WITH_MNPI"
)

// BlackoutPeriod is a descriptive trading-restriction window.  The start and
// end rules are relative, human-readable descriptions; the engine only
// evaluates concrete date-range containment.
type BlackoutPeriod struct {
	Name            string
	StartRule       string
	EndRule         string
	DefaultDuration time.Duration
	Restricts       InsiderClass
}

// Contains reports whether d falls within [start, end] inclusive.
func (b BlackoutPeriod) Contains(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

// StandardBlackoutPeriods is the static configuration list exposed for
// display.  Concrete windows are resolved by callers from entity events.
var StandardBlackoutPeriods = []BlackoutPeriod{
	{
		Name:            "Quarterly Earnings Blackout",
		StartRule:       "2 weeks before quarter end",
		EndRule:         "2 business days after earnings release",
		DefaultDuration: 30 * 24 * time.Hour,
		Restricts:       InsidersAll,
	},
	{
		Name:            "Business Combination Announcement Blackout",
		StartRule:       "when material negotiations begin",
		EndRule:         "2 business days after public announcement",
		DefaultDuration: 45 * 24 * time.Hour,
		Restricts:       InsidersEmployees,
	},
	{
		Name:            "Proxy Solicitation Blackout",
		StartRule:       "definitive proxy filing",
		EndRule:         "shareholder vote",
		DefaultDuration: 30 * 24 * time.Hour,
		Restricts:       InsidersOfficers,
	},
	{
		Name:            "Pension Fund Blackout",
		StartRule:       "plan administrator notice",
		EndRule:         "3 business days after restriction lifts",
		DefaultDuration: 10 * 24 * time.Hour,
		Restricts:       InsidersSection16,
	},
}
