package compliance

import (
	"fmt"
	"sort"
	"time"

	"github.com/turtacn/SPAC-Sentinel/internal/domain/calendar"
	"github.com/turtacn/SPAC-Sentinel/internal/domain/filing"
	"github.com/turtacn/SPAC-Sentinel/internal/domain/spac"
	"github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

// FilingDeadlineItem is one entity-scoped deadline in a generated set.
type FilingDeadlineItem struct {
	ID          string                `json:"id"`
	SpacID      string                `json:"spac_id"`
	SpacName    string                `json:"spac_name"`
	Ticker      string                `json:"ticker,omitempty"`
	Category    filing.FilingCategory `json:"category"`
	Description string                `json:"description"`

	// ReferenceDate is the milestone that triggered this deadline, when one
	// exists.
	ReferenceDate *time.Time `json:"reference_date,omitempty"`

	DeadlineCalculation
}

// makeItemID derives the deterministic item id from the entity, the filing
// token, and the deadline timestamp.  Recomputing the same snapshot with the
// same today yields byte-identical ids.
func makeItemID(spacID, token string, deadline time.Time) string {
	return fmt.Sprintf("%s-%s-%d", spacID, token, deadline.Unix())
}

// defaultPeriodicHorizonMonths bounds the rolling periodic-report schedule
// when the caller does not override it.
const defaultPeriodicHorizonMonths = 12

// GenerateDeadlines produces the full deadline set for one entity snapshot
// with the default periodic horizon.
func GenerateDeadlines(snap *spac.Snapshot, today time.Time) ([]FilingDeadlineItem, error) {
	return GenerateDeadlinesWithHorizon(snap, today, defaultPeriodicHorizonMonths)
}

// GenerateDeadlinesWithHorizon produces the full deadline set for one entity
// snapshot, with the periodic-report schedule bounded to horizonMonths.
// The result is sorted by urgency rank, then deadline ascending.  Missing
// milestone dates silently suppress the rules that depend on them.
func GenerateDeadlinesWithHorizon(snap *spac.Snapshot, today time.Time, horizonMonths int) ([]FilingDeadlineItem, error) {
	if snap == nil {
		return nil, errors.NewValidationOp("compliance.generate", "snapshot must not be nil")
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	now := calendar.Normalize(today)

	var items []FilingDeadlineItem

	if snap.CombinationDeadline != nil && !snap.Status.IsTerminal() {
		items = append(items, combinationDeadlineItem(snap, *snap.CombinationDeadline, now))
	}

	if horizonMonths < 1 {
		horizonMonths = defaultPeriodicHorizonMonths
	}

	if snap.IPODate != nil && !snap.Status.IsTerminal() {
		periodic, err := periodicItems(snap, now, horizonMonths)
		if err != nil {
			return nil, err
		}
		items = append(items, periodic...)
	}

	stageSpecific, err := stageItems(snap, now)
	if err != nil {
		return nil, err
	}
	items = append(items, stageSpecific...)

	sortItems(items)
	return items, nil
}

// GenerateDeadlinesForMany concatenates per-entity results and re-applies
// the global sort.  Entities are independent; any snapshot error aborts the
// whole call.
func GenerateDeadlinesForMany(snaps []spac.Snapshot, today time.Time) ([]FilingDeadlineItem, error) {
	return GenerateDeadlinesForManyWithHorizon(snaps, today, defaultPeriodicHorizonMonths)
}

// GenerateDeadlinesForManyWithHorizon is GenerateDeadlinesForMany with an
// explicit periodic horizon.
func GenerateDeadlinesForManyWithHorizon(snaps []spac.Snapshot, today time.Time, horizonMonths int) ([]FilingDeadlineItem, error) {
	var items []FilingDeadlineItem
	for i := range snaps {
		perEntity, err := GenerateDeadlinesWithHorizon(&snaps[i], today, horizonMonths)
		if err != nil {
			return nil, err
		}
		items = append(items, perEntity...)
	}
	sortItems(items)
	return items, nil
}

func sortItems(items []FilingDeadlineItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Urgency != items[j].Urgency {
			return items[i].Urgency.Rank() < items[j].Urgency.Rank()
		}
		return items[i].Deadline.Before(items[j].Deadline)
	})
}

// combinationDeadlineItem renders the outer business combination deadline.
// The date is contractual and taken verbatim, never snapped.  Urgency uses
// wider calendar-day bands than filing deadlines: missing this date means
// liquidation, so it surfaces earlier.
func combinationDeadlineItem(snap *spac.Snapshot, deadline, today time.Time) FilingDeadlineItem {
	d := calendar.Normalize(deadline)
	daysRemaining := daysBetween(today, d)
	overdue := d.Before(today)

	var urgency Urgency
	switch {
	case overdue || daysRemaining <= 7:
		urgency = UrgencyCritical
	case daysRemaining <= 30:
		urgency = UrgencyHigh
	case daysRemaining <= 90:
		urgency = UrgencyMedium
	default:
		urgency = UrgencyLow
	}

	desc := fmt.Sprintf("Business combination deadline; liquidation required if no combination closes by %s",
		d.Format("2006-01-02"))
	if snap.ExtensionCount > 0 {
		desc = fmt.Sprintf("%s (extended %d time(s))", desc, snap.ExtensionCount)
	}

	return FilingDeadlineItem{
		ID:          makeItemID(snap.ID, string(filing.CategoryCombination), d),
		SpacID:      snap.ID,
		SpacName:    snap.Name,
		Ticker:      snap.Ticker,
		Category:    filing.CategoryCombination,
		Description: desc,
		DeadlineCalculation: DeadlineCalculation{
			FilingType:            filing.FormOther,
			BaseDate:              d,
			Deadline:              d,
			DaysRemaining:         daysRemaining,
			BusinessDaysRemaining: businessDaysBetween(today, d),
			IsOverdue:             overdue,
			Urgency:               urgency,
			CriticalThreshold:     d.AddDate(0, 0, -7),
			HighThreshold:         d.AddDate(0, 0, -30),
			MediumThreshold:       d.AddDate(0, 0, -90),
		},
	}
}

// periodicItems generates the rolling schedule of annual and quarterly
// reports anchored to the fiscal year end month, filtered to deadlines after
// today and within the horizon.
func periodicItems(snap *spac.Snapshot, today time.Time, horizonMonths int) ([]FilingDeadlineItem, error) {
	horizon := today.AddDate(0, horizonMonths, 0)
	ipo := calendar.Normalize(*snap.IPODate)

	var items []FilingDeadlineItem

	addPeriod := func(ft filing.FilingType, periodEnd time.Time, desc string) error {
		if periodEnd.Before(ipo) {
			// No report is owed for periods that ended before the IPO.
			return nil
		}
		calc, err := CalculateDeadline(ft, periodEnd, snap.FilerStatus, today)
		if err != nil {
			return err
		}
		if !calc.Deadline.After(today) || calc.Deadline.After(horizon) {
			return nil
		}
		ref := periodEnd
		items = append(items, FilingDeadlineItem{
			ID:                  makeItemID(snap.ID, string(ft), calc.Deadline),
			SpacID:              snap.ID,
			SpacName:            snap.Name,
			Ticker:              snap.Ticker,
			Category:            filing.CategoryPeriodic,
			Description:         desc,
			ReferenceDate:       &ref,
			DeadlineCalculation: calc,
		})
		return nil
	}

	maxYearOffset := 1 + horizonMonths/12
	for yearOffset := -1; yearOffset <= maxYearOffset; yearOffset++ {
		fye := endOfMonth(today.Year()+yearOffset, snap.FiscalYearEndMonth)

		if err := addPeriod(filing.Form10K, fye,
			fmt.Sprintf("Annual report for fiscal year ended %s", fye.Format("2006-01-02"))); err != nil {
			return nil, err
		}

		for q := 1; q <= 3; q++ {
			qEnd := endOfMonthAfter(fye, 3*q)
			if err := addPeriod(filing.Form10Q, qEnd,
				fmt.Sprintf("Quarterly report for period ended %s", qEnd.Format("2006-01-02"))); err != nil {
				return nil, err
			}
		}
	}

	return items, nil
}

// stageItems is the exhaustive dispatch over lifecycle stages.  Each branch
// derives zero or more deadlines from the milestone dates the stage cares
// about; a missing milestone contributes nothing.
func stageItems(snap *spac.Snapshot, today time.Time) ([]FilingDeadlineItem, error) {
	var items []FilingDeadlineItem

	switch snap.Status {
	case spac.StatusPreIPO, spac.StatusSearching, spac.StatusLOISigned:
		// Nothing beyond the combination deadline and periodic schedule.

	case spac.StatusAgreementAnnounced:
		if snap.AgreementDate != nil {
			agreement := calendar.Normalize(*snap.AgreementDate)

			calc, err := CalculateDeadline(filing.Form8K, agreement, snap.FilerStatus, today)
			if err != nil {
				return nil, err
			}
			items = append(items, eventItem(snap, calc, filing.CategoryCurrent,
				"Current report announcing the definitive business combination agreement", agreement))

			// Registration statement target date, roughly two months out.
			s4Target := calendar.SnapToBusinessDay(agreement.AddDate(0, 2, 0))
			items = append(items, manualItem(snap, filing.FormS4, filing.CategoryRegistration,
				"Target date to file the combination registration statement", agreement, s4Target, today))
		}

	case spac.StatusSECReview:
		if snap.SECCommentDate != nil {
			comment := calendar.Normalize(*snap.SECCommentDate)
			due := calendar.AddBusinessDays(comment, 10)
			if snap.SECResponseDueDate != nil {
				due = calendar.SnapToBusinessDay(calendar.Normalize(*snap.SECResponseDueDate))
			}
			items = append(items, manualItem(snap, filing.FormS4, filing.CategoryRegistration,
				"Response to SEC comment letter", comment, due, today))
		}
		if snap.VoteDate != nil {
			vote := calendar.Normalize(*snap.VoteDate)
			preProxy := calendar.SubBusinessDays(vote, 20)
			items = append(items, manualItem(snap, filing.FormPRE14A, filing.CategoryProxy,
				"Preliminary proxy statement ahead of the shareholder vote", vote, preProxy, today))
		}

	case spac.StatusVotePending:
		if snap.VoteDate != nil {
			vote := calendar.Normalize(*snap.VoteDate)

			if snap.ProxyFiledDate == nil {
				// Mailing can happen on any calendar day; no snap.
				mailBy := vote.AddDate(0, 0, -20)
				items = append(items, manualItem(snap, filing.FormDEF14A, filing.CategoryProxy,
					"Definitive proxy statement must be mailed to shareholders", vote, mailBy, today))
			}

			items = append(items, manualItem(snap, filing.FormDEFA14A, filing.CategoryProxy,
				"Supplemental soliciting materials due by the vote date", vote, vote, today))

			redemption := calendar.SubBusinessDays(vote, 2)
			items = append(items, manualItem(snap, filing.FormOther, filing.CategoryOther,
				"Shareholder redemption election deadline", vote, redemption, today))
		}

	case spac.StatusClosing:
		if snap.ClosingDate != nil {
			closing := calendar.Normalize(*snap.ClosingDate)
			calc, err := CalculateDeadline(filing.Form8K, closing, snap.FilerStatus, today)
			if err != nil {
				return nil, err
			}
			items = append(items, eventItem(snap, calc, filing.CategoryCurrent,
				"Super current report with combined-company disclosure after closing", closing))
		}

	case spac.StatusLiquidating:
		if snap.CombinationDeadline != nil {
			deadline := calendar.Normalize(*snap.CombinationDeadline)
			calc, err := CalculateDeadline(filing.Form8K, deadline, snap.FilerStatus, today)
			if err != nil {
				return nil, err
			}
			items = append(items, eventItem(snap, calc, filing.CategoryCurrent,
				"Current report announcing liquidation and trust distribution", deadline))
		}

	case spac.StatusCompleted, spac.StatusLiquidated, spac.StatusTerminated:
		// Terminal stages contribute nothing.

	default:
		return nil, errors.New(errors.ErrCodeSpacStatusInvalid,
			fmt.Sprintf("unhandled lifecycle status %q", snap.Status))
	}

	return items, nil
}

// eventItem wraps a calculator result into an entity-scoped item.
func eventItem(snap *spac.Snapshot, calc DeadlineCalculation, category filing.FilingCategory, desc string, ref time.Time) FilingDeadlineItem {
	return FilingDeadlineItem{
		ID:                  makeItemID(snap.ID, string(calc.FilingType), calc.Deadline),
		SpacID:              snap.ID,
		SpacName:            snap.Name,
		Ticker:              snap.Ticker,
		Category:            category,
		Description:         desc,
		ReferenceDate:       &ref,
		DeadlineCalculation: calc,
	}
}

// manualItem builds an item whose deadline was derived directly by the
// generator (backward offsets, target dates) rather than by the calculator.
func manualItem(snap *spac.Snapshot, ft filing.FilingType, category filing.FilingCategory, desc string, ref, deadline, today time.Time) FilingDeadlineItem {
	calc := DeadlineCalculation{
		FilingType:            ft,
		BaseDate:              ref,
		Deadline:              deadline,
		DaysRemaining:         daysBetween(today, deadline),
		BusinessDaysRemaining: businessDaysBetween(today, deadline),
		IsOverdue:             deadline.Before(today),
		CriticalThreshold:     calendar.SubBusinessDays(deadline, 3),
		HighThreshold:         calendar.SubBusinessDays(deadline, 7),
		MediumThreshold:       calendar.SubBusinessDays(deadline, 14),
	}
	calc.Urgency = classifyUrgency(today, calc)

	return FilingDeadlineItem{
		ID:                  makeItemID(snap.ID, string(ft), deadline),
		SpacID:              snap.ID,
		SpacName:            snap.Name,
		Ticker:              snap.Ticker,
		Category:            category,
		Description:         desc,
		ReferenceDate:       &ref,
		DeadlineCalculation: calc,
	}
}

// endOfMonth returns the last day of the given month, normalized.
func endOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}

// endOfMonthAfter returns the last day of the month `months` after d's month.
func endOfMonthAfter(d time.Time, months int) time.Time {
	return time.Date(d.Year(), d.Month()+time.Month(months)+1, 0, 0, 0, 0, 0, time.UTC)
}
