// Package spac defines the entity snapshot the compliance engine computes
// over, the lifecycle status enum, and the repository contract fulfilled by
// the persistence layer.  The engine reads snapshots and never writes them.
package spac

import (
	"context"
	"fmt"
	"time"

	"github.com/turtacn/SPAC-Sentinel/internal/domain/filing"
	"github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

// LifecycleStatus is the current stage of a SPAC's lifecycle.
type LifecycleStatus string

const (
	StatusPreIPO             LifecycleStatus = "PRE_IPO"
	StatusSearching          LifecycleStatus = "SEARCHING"
	StatusLOISigned          LifecycleStatus = "LOI_SIGNED"
	StatusAgreementAnnounced LifecycleStatus = "AGREEMENT_ANNOUNCED"
	StatusSECReview          LifecycleStatus = "SEC_REVIEW"
	StatusVotePending        LifecycleStatus = "VOTE_PENDING"
	StatusClosing            LifecycleStatus = "CLOSING"
	StatusCompleted          LifecycleStatus = "COMPLETED"
	StatusLiquidating        LifecycleStatus = "LIQUIDATING"
	StatusLiquidated         LifecycleStatus = "LIQUIDATED"
	StatusTerminated         LifecycleStatus = "TERMINATED"
)

// AllStatuses lists every lifecycle stage in progression order.
var AllStatuses = []LifecycleStatus{
	StatusPreIPO, StatusSearching, StatusLOISigned, StatusAgreementAnnounced,
	StatusSECReview, StatusVotePending, StatusClosing, StatusCompleted,
	StatusLiquidating, StatusLiquidated, StatusTerminated,
}

var statusNames = map[LifecycleStatus]string{
	StatusPreIPO:             "Pre-IPO",
	StatusSearching:          "Searching for Target",
	StatusLOISigned:          "Letter of Intent Signed",
	StatusAgreementAnnounced: "Definitive Agreement Announced",
	StatusSECReview:          "SEC Review",
	StatusVotePending:        "Shareholder Vote Pending",
	StatusClosing:            "Closing",
	StatusCompleted:          "Combination Completed",
	StatusLiquidating:        "Liquidating",
	StatusLiquidated:         "Liquidated",
	StatusTerminated:         "Terminated",
}

// Name returns the display name for a lifecycle status.
func (s LifecycleStatus) Name() (string, error) {
	name, ok := statusNames[s]
	if !ok {
		return "", errors.New(errors.ErrCodeSpacStatusInvalid,
			fmt.Sprintf("unknown lifecycle status: %q", string(s)))
	}
	return name, nil
}

// IsValid reports whether s is a defined status.
func (s LifecycleStatus) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}

// IsTerminal reports whether the lifecycle has ended.  Terminal entities
// contribute no combination or periodic deadlines.
func (s LifecycleStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusLiquidated, StatusTerminated:
		return true
	}
	return false
}

// Snapshot is the point-in-time view of one SPAC supplied by persistence.
// Optional milestone dates are nil until the milestone occurs; a missing
// milestone suppresses the deadlines derived from it.
type Snapshot struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Ticker string          `json:"ticker"`
	Status LifecycleStatus `json:"status"`

	IPODate             *time.Time `json:"ipo_date,omitempty"`
	CombinationDeadline *time.Time `json:"combination_deadline,omitempty"`
	AgreementDate       *time.Time `json:"agreement_date,omitempty"`
	ProxyFiledDate      *time.Time `json:"proxy_filed_date,omitempty"`
	VoteDate            *time.Time `json:"vote_date,omitempty"`
	ClosingDate         *time.Time `json:"closing_date,omitempty"`
	SECCommentDate      *time.Time `json:"sec_comment_date,omitempty"`
	SECResponseDueDate  *time.Time `json:"sec_response_due_date,omitempty"`

	ExtensionCount     int                `json:"extension_count"`
	FiscalYearEndMonth time.Month         `json:"fiscal_year_end_month"`
	FilerStatus        filing.FilerStatus `json:"filer_status"`
}

// Validate checks the snapshot's closed-enum fields.  Milestone dates are
// optional and never validated here.
func (s *Snapshot) Validate() error {
	if s.ID == "" {
		return errors.NewValidationOp("spac.snapshot", "id is required")
	}
	if !s.Status.IsValid() {
		return errors.New(errors.ErrCodeSpacStatusInvalid,
			fmt.Sprintf("spac %s has unknown lifecycle status %q", s.ID, s.Status))
	}
	if !s.FilerStatus.IsValid() {
		return errors.NewValidationOp("spac.snapshot",
			fmt.Sprintf("spac %s has unknown filer status %q", s.ID, s.FilerStatus))
	}
	if s.FiscalYearEndMonth < time.January || s.FiscalYearEndMonth > time.December {
		return errors.NewValidationOp("spac.snapshot",
			fmt.Sprintf("spac %s has invalid fiscal year end month %d", s.ID, s.FiscalYearEndMonth))
	}
	return nil
}

// ListFilter narrows repository listings.
type ListFilter struct {
	Statuses []LifecycleStatus
	Limit    int
	Offset   int
}

// Repository is the persistence contract for SPAC snapshots and checklist
// completion state.  Implementations live in the infrastructure layer.
type Repository interface {
	// GetByID returns one snapshot or a SPAC_001 not-found error.
	GetByID(ctx context.Context, id string) (*Snapshot, error)

	// List returns snapshots matching the filter, ordered by name.
	List(ctx context.Context, filter ListFilter) ([]Snapshot, error)

	// GetChecklistCompletion returns the completed checklist item ids for
	// one SPAC and filing type.  An empty map means nothing is complete.
	GetChecklistCompletion(ctx context.Context, spacID string, filingType filing.FilingType) (map[string]bool, error)
}
