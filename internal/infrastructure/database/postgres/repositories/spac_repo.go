// Package repositories provides the PostgreSQL-backed implementations of the
// domain repository interfaces.
package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/turtacn/SPAC-Sentinel/internal/domain/filing"
	"github.com/turtacn/SPAC-Sentinel/internal/domain/spac"
	"github.com/turtacn/SPAC-Sentinel/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

const spacColumns = `id, name, ticker, status,
	ipo_date, combination_deadline, agreement_date, proxy_filed_date,
	vote_date, closing_date, sec_comment_date, sec_response_due_date,
	extension_count, fiscal_year_end_month, filer_status`

// SpacRepository is the PostgreSQL implementation of spac.Repository.
// Every query is parameterised; context cancellation propagates to pgx.
type SpacRepository struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// NewSpacRepository constructs a ready-to-use SpacRepository.
func NewSpacRepository(pool *pgxpool.Pool, logger logging.Logger) *SpacRepository {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &SpacRepository{pool: pool, logger: logger}
}

// GetByID returns one snapshot or a not-found error.
func (r *SpacRepository) GetByID(ctx context.Context, id string) (*spac.Snapshot, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+spacColumns+` FROM spacs WHERE id = $1`, id)

	snap, err := scanSnapshot(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New(errors.ErrCodeSpacNotFound,
				fmt.Sprintf("spac not found: %s", id))
		}
		r.logger.Error("SpacRepository.GetByID", logging.String("id", id), logging.Err(err))
		return nil, errors.Wrap(err, errors.CodeDBQueryError, "failed to load spac")
	}
	return snap, nil
}

// List returns snapshots matching the filter, ordered by name.
func (r *SpacRepository) List(ctx context.Context, filter spac.ListFilter) ([]spac.Snapshot, error) {
	query := `SELECT ` + spacColumns + ` FROM spacs`
	var args []interface{}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, 0, len(filter.Statuses))
		for _, status := range filter.Statuses {
			args = append(args, string(status))
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		query += ` WHERE status IN (` + strings.Join(placeholders, ", ") + `)`
	}

	query += ` ORDER BY name ASC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("SpacRepository.List", logging.Err(err))
		return nil, errors.Wrap(err, errors.CodeDBQueryError, "failed to list spacs")
	}
	defer rows.Close()

	var out []spac.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeDBQueryError, "failed to scan spac row")
		}
		out = append(out, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeDBQueryError, "failed to iterate spac rows")
	}
	return out, nil
}

// GetChecklistCompletion returns the completed item ids for one spac and
// filing type.
func (r *SpacRepository) GetChecklistCompletion(ctx context.Context, spacID string, filingType filing.FilingType) (map[string]bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT item_id FROM checklist_completions
		WHERE spac_id = $1 AND filing_type = $2`,
		spacID, string(filingType))
	if err != nil {
		r.logger.Error("SpacRepository.GetChecklistCompletion",
			logging.String("spac_id", spacID), logging.Err(err))
		return nil, errors.Wrap(err, errors.CodeDBQueryError, "failed to load checklist completion")
	}
	defer rows.Close()

	completed := make(map[string]bool)
	for rows.Next() {
		var itemID string
		if err := rows.Scan(&itemID); err != nil {
			return nil, errors.Wrap(err, errors.CodeDBQueryError, "failed to scan checklist row")
		}
		completed[itemID] = true
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeDBQueryError, "failed to iterate checklist rows")
	}
	return completed, nil
}

// Upsert inserts or replaces one snapshot.  Used by ingestion and seeding;
// the compliance engine itself never writes.
func (r *SpacRepository) Upsert(ctx context.Context, snap *spac.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO spacs (`+spacColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			ticker = EXCLUDED.ticker,
			status = EXCLUDED.status,
			ipo_date = EXCLUDED.ipo_date,
			combination_deadline = EXCLUDED.combination_deadline,
			agreement_date = EXCLUDED.agreement_date,
			proxy_filed_date = EXCLUDED.proxy_filed_date,
			vote_date = EXCLUDED.vote_date,
			closing_date = EXCLUDED.closing_date,
			sec_comment_date = EXCLUDED.sec_comment_date,
			sec_response_due_date = EXCLUDED.sec_response_due_date,
			extension_count = EXCLUDED.extension_count,
			fiscal_year_end_month = EXCLUDED.fiscal_year_end_month,
			filer_status = EXCLUDED.filer_status`,
		snap.ID, snap.Name, snap.Ticker, string(snap.Status),
		snap.IPODate, snap.CombinationDeadline, snap.AgreementDate, snap.ProxyFiledDate,
		snap.VoteDate, snap.ClosingDate, snap.SECCommentDate, snap.SECResponseDueDate,
		snap.ExtensionCount, int(snap.FiscalYearEndMonth), string(snap.FilerStatus),
	)
	if err != nil {
		r.logger.Error("SpacRepository.Upsert", logging.String("id", snap.ID), logging.Err(err))
		return errors.Wrap(err, errors.CodeDBQueryError, "failed to upsert spac")
	}
	return nil
}

// SetChecklistItem marks one checklist item complete or incomplete.
func (r *SpacRepository) SetChecklistItem(ctx context.Context, spacID string, filingType filing.FilingType, itemID string, completed bool) error {
	var err error
	if completed {
		_, err = r.pool.Exec(ctx, `
			INSERT INTO checklist_completions (spac_id, filing_type, item_id, completed_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (spac_id, filing_type, item_id) DO NOTHING`,
			spacID, string(filingType), itemID, time.Now().UTC())
	} else {
		_, err = r.pool.Exec(ctx, `
			DELETE FROM checklist_completions
			WHERE spac_id = $1 AND filing_type = $2 AND item_id = $3`,
			spacID, string(filingType), itemID)
	}
	if err != nil {
		r.logger.Error("SpacRepository.SetChecklistItem",
			logging.String("spac_id", spacID), logging.String("item_id", itemID), logging.Err(err))
		return errors.Wrap(err, errors.CodeDBQueryError, "failed to update checklist item")
	}
	return nil
}

// scanner abstracts pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSnapshot(s scanner) (*spac.Snapshot, error) {
	var (
		snap    spac.Snapshot
		status  string
		filer   string
		fyMonth int
	)
	err := s.Scan(
		&snap.ID, &snap.Name, &snap.Ticker, &status,
		&snap.IPODate, &snap.CombinationDeadline, &snap.AgreementDate, &snap.ProxyFiledDate,
		&snap.VoteDate, &snap.ClosingDate, &snap.SECCommentDate, &snap.SECResponseDueDate,
		&snap.ExtensionCount, &fyMonth, &filer,
	)
	if err != nil {
		return nil, err
	}
	snap.Status = spac.LifecycleStatus(status)
	snap.FiscalYearEndMonth = time.Month(fyMonth)
	snap.FilerStatus = filing.FilerStatus(filer)
	return &snap, nil
}
