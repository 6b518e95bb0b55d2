package compliance

import (
	"fmt"
	"sort"
	"time"

	"github.com/turtacn/SPAC-Sentinel/internal/domain/filing"
)

// AlertSeverity is the rendered severity of a deadline alert.
type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "CRITICAL"
	SeverityWarning  AlertSeverity = "WARNING"
	SeverityInfo     AlertSeverity = "INFO"
)

var severityRank = map[AlertSeverity]int{
	SeverityCritical: 0,
	SeverityWarning:  1,
	SeverityInfo:     2,
}

// Rank returns the sort rank of the severity; lower sorts first.
func (s AlertSeverity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return len(severityRank)
}

// DeadlineAlert is a deadline rendered as a human-readable alert.
type DeadlineAlert struct {
	ID          string                `json:"id"`
	SpacID      string                `json:"spac_id"`
	SpacName    string                `json:"spac_name"`
	FilingType  filing.FilingType     `json:"filing_type"`
	Category    filing.FilingCategory `json:"category"`
	Severity    AlertSeverity         `json:"severity"`
	Message     string                `json:"message"`
	Deadline    time.Time             `json:"deadline"`
	GeneratedAt time.Time             `json:"generated_at"`
}

// ToAlerts projects each deadline item to exactly one alert: CRITICAL for
// overdue or critical-urgency deadlines, WARNING for high urgency, INFO
// otherwise.  Results are sorted by severity rank, then deadline ascending.
// This is a pure projection; now only stamps GeneratedAt.
func ToAlerts(items []FilingDeadlineItem, now time.Time) []DeadlineAlert {
	alerts := make([]DeadlineAlert, 0, len(items))
	for _, item := range items {
		severity := classifySeverity(item)
		alerts = append(alerts, DeadlineAlert{
			ID:          item.ID,
			SpacID:      item.SpacID,
			SpacName:    item.SpacName,
			FilingType:  item.FilingType,
			Category:    item.Category,
			Severity:    severity,
			Message:     alertMessage(item, severity),
			Deadline:    item.Deadline,
			GeneratedAt: now,
		})
	}

	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].Severity != alerts[j].Severity {
			return alerts[i].Severity.Rank() < alerts[j].Severity.Rank()
		}
		return alerts[i].Deadline.Before(alerts[j].Deadline)
	})

	return alerts
}

func classifySeverity(item FilingDeadlineItem) AlertSeverity {
	switch {
	case item.IsOverdue || item.Urgency == UrgencyCritical:
		return SeverityCritical
	case item.Urgency == UrgencyHigh:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

func alertMessage(item FilingDeadlineItem, severity AlertSeverity) string {
	switch severity {
	case SeverityCritical:
		if item.IsOverdue {
			return fmt.Sprintf("OVERDUE: %s - %s was due %s",
				item.SpacName, item.Description, item.Deadline.Format("2006-01-02"))
		}
		return fmt.Sprintf("URGENT: %s - %s due in %d business days",
			item.SpacName, item.Description, item.BusinessDaysRemaining)
	case SeverityWarning:
		return fmt.Sprintf("URGENT: %s - %s due in %d business days",
			item.SpacName, item.Description, item.BusinessDaysRemaining)
	default:
		return fmt.Sprintf("Upcoming: %s - %s due on %s",
			item.SpacName, item.Description, item.Deadline.Format("2006-01-02"))
	}
}
