package compliance

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/SPAC-Sentinel/internal/domain/filing"
)

func deadlineItem(id string, deadline time.Time, urgency Urgency, overdue bool) FilingDeadlineItem {
	return FilingDeadlineItem{
		ID:          id,
		SpacID:      "spac-atlas",
		SpacName:    "Atlas Acquisition Corp",
		Category:    filing.CategoryCurrent,
		Description: "Current report",
		DeadlineCalculation: DeadlineCalculation{
			FilingType:            filing.Form8K,
			Deadline:              deadline,
			Urgency:               urgency,
			IsOverdue:             overdue,
			BusinessDaysRemaining: 2,
		},
	}
}

func TestToAlerts_SeverityMapping(t *testing.T) {
	now := time.Date(2024, time.June, 20, 9, 30, 0, 0, time.UTC)
	items := []FilingDeadlineItem{
		deadlineItem("a", date(2024, time.June, 14), UrgencyCritical, true),
		deadlineItem("b", date(2024, time.June, 24), UrgencyCritical, false),
		deadlineItem("c", date(2024, time.June, 28), UrgencyHigh, false),
		deadlineItem("d", date(2024, time.July, 15), UrgencyMedium, false),
		deadlineItem("e", date(2024, time.August, 1), UrgencyLow, false),
	}

	alerts := ToAlerts(items, now)
	require.Len(t, alerts, 5)

	bySeverity := map[AlertSeverity]int{}
	for _, a := range alerts {
		bySeverity[a.Severity]++
		assert.Equal(t, now, a.GeneratedAt)
	}
	assert.Equal(t, 2, bySeverity[SeverityCritical])
	assert.Equal(t, 1, bySeverity[SeverityWarning])
	assert.Equal(t, 2, bySeverity[SeverityInfo])
}

func TestToAlerts_Messages(t *testing.T) {
	now := time.Date(2024, time.June, 20, 9, 30, 0, 0, time.UTC)

	alerts := ToAlerts([]FilingDeadlineItem{
		deadlineItem("a", date(2024, time.June, 14), UrgencyCritical, true),
		deadlineItem("b", date(2024, time.June, 24), UrgencyCritical, false),
		deadlineItem("c", date(2024, time.June, 28), UrgencyHigh, false),
		deadlineItem("d", date(2024, time.August, 1), UrgencyLow, false),
	}, now)
	require.Len(t, alerts, 4)

	byID := map[string]DeadlineAlert{}
	for _, a := range alerts {
		byID[a.ID] = a
	}

	assert.True(t, strings.HasPrefix(byID["a"].Message, "OVERDUE:"))
	assert.Contains(t, byID["a"].Message, "2024-06-14")
	assert.True(t, strings.HasPrefix(byID["b"].Message, "URGENT:"))
	assert.Contains(t, byID["b"].Message, "business days")
	assert.True(t, strings.HasPrefix(byID["c"].Message, "URGENT:"))
	assert.True(t, strings.HasPrefix(byID["d"].Message, "Upcoming:"))
	assert.Contains(t, byID["d"].Message, "2024-08-01")
}

func TestToAlerts_SortedBySeverityThenDeadline(t *testing.T) {
	now := time.Date(2024, time.June, 20, 9, 30, 0, 0, time.UTC)

	alerts := ToAlerts([]FilingDeadlineItem{
		deadlineItem("late-info", date(2024, time.September, 1), UrgencyLow, false),
		deadlineItem("early-info", date(2024, time.July, 1), UrgencyMedium, false),
		deadlineItem("warn", date(2024, time.June, 28), UrgencyHigh, false),
		deadlineItem("crit", date(2024, time.June, 24), UrgencyCritical, false),
	}, now)

	require.Len(t, alerts, 4)
	assert.Equal(t, "crit", alerts[0].ID)
	assert.Equal(t, "warn", alerts[1].ID)
	assert.Equal(t, "early-info", alerts[2].ID)
	assert.Equal(t, "late-info", alerts[3].ID)
}

func TestToAlerts_Empty(t *testing.T) {
	alerts := ToAlerts(nil, time.Now())
	assert.Empty(t, alerts)
}
