// Package compliance implements the deadline calculator, the lifecycle
// deadline generator, the alert classifier, and the service that wires them
// to persistence, caching, and alert fan-out.  The engine functions are pure
// over (snapshot, today, static catalogs).
package compliance

import (
	"fmt"
	"time"

	"github.com/turtacn/SPAC-Sentinel/internal/domain/calendar"
	"github.com/turtacn/SPAC-Sentinel/internal/domain/filing"
	"github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

// Urgency classifies how close a deadline is.
type Urgency string

const (
	UrgencyCritical Urgency = "CRITICAL"
	UrgencyHigh     Urgency = "HIGH"
	UrgencyMedium   Urgency = "MEDIUM"
	UrgencyLow      Urgency = "LOW"
)

var urgencyRank = map[Urgency]int{
	UrgencyCritical: 0,
	UrgencyHigh:     1,
	UrgencyMedium:   2,
	UrgencyLow:      3,
}

// Rank returns the sort rank of the urgency; lower sorts first.
func (u Urgency) Rank() int {
	if r, ok := urgencyRank[u]; ok {
		return r
	}
	return len(urgencyRank)
}

// DeadlineCalculation is the result of computing a single deadline.
type DeadlineCalculation struct {
	FilingType filing.FilingType `json:"filing_type"`
	BaseDate   time.Time         `json:"base_date"`
	Deadline   time.Time         `json:"deadline"`

	// BusinessDayArithmetic records whether the day count was applied in
	// business days rather than calendar days.
	BusinessDayArithmetic bool `json:"business_day_arithmetic"`
	DaysAllowed           int  `json:"days_allowed"`

	DaysRemaining         int  `json:"days_remaining"`
	BusinessDaysRemaining int  `json:"business_days_remaining"`
	IsOverdue             bool `json:"is_overdue"`

	Urgency Urgency `json:"urgency"`

	CriticalThreshold time.Time `json:"critical_threshold"`
	HighThreshold     time.Time `json:"high_threshold"`
	MediumThreshold   time.Time `json:"medium_threshold"`

	// RequiresReview marks zero-day deadlines for catch-all filing types,
	// which are likely a rule gap rather than a real same-day obligation.
	RequiresReview bool `json:"requires_review,omitempty"`
}

// CalculateDeadline computes the deadline for one filing.  baseDate is the
// triggering event (or period end for periodic reports); today anchors the
// remaining-day and urgency computation and must be captured once per
// top-level call.  Unknown filing types or filer statuses fail fast.
func CalculateDeadline(filingType filing.FilingType, baseDate time.Time, filerStatus filing.FilerStatus, today time.Time) (DeadlineCalculation, error) {
	def, err := filing.DefinitionFor(filingType)
	if err != nil {
		return DeadlineCalculation{}, err
	}
	tier, err := filing.TierFor(filerStatus)
	if err != nil {
		return DeadlineCalculation{}, err
	}
	if baseDate.IsZero() {
		return DeadlineCalculation{}, errors.New(errors.ErrCodeDeadlineBaseInvalid,
			fmt.Sprintf("base date is required for %s", filingType))
	}

	base := calendar.Normalize(baseDate)
	now := calendar.Normalize(today)

	var (
		deadline       time.Time
		daysAllowed    int
		businessArith  bool
		requiresReview bool
	)

	switch {
	case def.DeadlineKind == filing.DeadlinePeriodic:
		// Periodic day counts come from the filer status tier, calendar days.
		if filingType == filing.Form10K {
			daysAllowed = tier.AnnualDays
		} else {
			daysAllowed = tier.QuarterlyDays
		}
		deadline = base.AddDate(0, 0, daysAllowed)

	case def.BusinessDays:
		daysAllowed = def.DayCount
		businessArith = true
		deadline = calendar.AddBusinessDays(base, daysAllowed)

	case def.DayCount > 0:
		daysAllowed = def.DayCount
		deadline = base.AddDate(0, 0, daysAllowed)

	default:
		// No day count applies: the deadline degenerates to the base date.
		deadline = base
		requiresReview = def.Category == filing.CategoryOther
	}

	// Deadlines never land on a weekend or holiday; move backward so the
	// filing is never late.
	deadline = calendar.SnapToBusinessDay(deadline)

	calc := DeadlineCalculation{
		FilingType:            filingType,
		BaseDate:              base,
		Deadline:              deadline,
		BusinessDayArithmetic: businessArith,
		DaysAllowed:           daysAllowed,
		DaysRemaining:         daysBetween(now, deadline),
		BusinessDaysRemaining: businessDaysBetween(now, deadline),
		IsOverdue:             deadline.Before(now),
		CriticalThreshold:     calendar.SubBusinessDays(deadline, 3),
		HighThreshold:         calendar.SubBusinessDays(deadline, 7),
		MediumThreshold:       calendar.SubBusinessDays(deadline, 14),
		RequiresReview:        requiresReview,
	}
	calc.Urgency = classifyUrgency(now, calc)

	return calc, nil
}

// classifyUrgency resolves the urgency tier from the warning thresholds.
// Ties resolve toward the more urgent tier: a today that equals a threshold
// date is already inside that band.
func classifyUrgency(today time.Time, calc DeadlineCalculation) Urgency {
	switch {
	case calc.IsOverdue || !today.Before(calc.CriticalThreshold):
		return UrgencyCritical
	case !today.Before(calc.HighThreshold):
		return UrgencyHigh
	case !today.Before(calc.MediumThreshold):
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// daysBetween returns the signed calendar-day distance from a to b; both
// must already be normalized.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// businessDaysBetween returns the signed business-day distance from a to b.
func businessDaysBetween(a, b time.Time) int {
	if b.After(a) {
		return calendar.CountBusinessDays(a, b)
	}
	return -calendar.CountBusinessDays(b, a)
}
