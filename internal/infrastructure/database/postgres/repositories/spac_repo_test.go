//go:build integration

package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/turtacn/SPAC-Sentinel/internal/domain/filing"
	"github.com/turtacn/SPAC-Sentinel/internal/domain/spac"
	"github.com/turtacn/SPAC-Sentinel/internal/infrastructure/database/postgres/repositories"
	"github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

// startPostgres launches a PostgreSQL 16 container and returns a connected pool.
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "sentinel_test",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://test:test@%s:%s/sentinel_test?sslmode=disable", host, port.Port())
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	applySchema(t, pool)
	return pool
}

func applySchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	ddl := `
	CREATE TABLE IF NOT EXISTS spacs (
		id                    TEXT PRIMARY KEY,
		name                  TEXT NOT NULL DEFAULT '',
		ticker                TEXT NOT NULL DEFAULT '',
		status                TEXT NOT NULL,
		ipo_date              TIMESTAMPTZ,
		combination_deadline  TIMESTAMPTZ,
		agreement_date        TIMESTAMPTZ,
		proxy_filed_date      TIMESTAMPTZ,
		vote_date             TIMESTAMPTZ,
		closing_date          TIMESTAMPTZ,
		sec_comment_date      TIMESTAMPTZ,
		sec_response_due_date TIMESTAMPTZ,
		extension_count       INT NOT NULL DEFAULT 0,
		fiscal_year_end_month INT NOT NULL CHECK (fiscal_year_end_month BETWEEN 1 AND 12),
		filer_status          TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS checklist_completions (
		spac_id      TEXT NOT NULL REFERENCES spacs(id) ON DELETE CASCADE,
		filing_type  TEXT NOT NULL,
		item_id      TEXT NOT NULL,
		completed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (spac_id, filing_type, item_id)
	);
	`
	_, err := pool.Exec(ctx, ddl)
	require.NoError(t, err)
}

func newTestSnapshot(suffix string) *spac.Snapshot {
	ipo := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	deadline := ipo.AddDate(2, 0, 0)

	return &spac.Snapshot{
		ID:                  "spac-" + suffix,
		Name:                "Acquisition Corp " + suffix,
		Ticker:              "ACQ" + suffix,
		Status:              spac.StatusSearching,
		IPODate:             &ipo,
		CombinationDeadline: &deadline,
		FiscalYearEndMonth:  time.December,
		FilerStatus:         filing.NonAccelerated,
	}
}

func TestSpacRepository_UpsertAndGetByID(t *testing.T) {
	pool := startPostgres(t)
	repo := repositories.NewSpacRepository(pool, nil)
	ctx := context.Background()

	snap := newTestSnapshot("001")
	require.NoError(t, repo.Upsert(ctx, snap))

	found, err := repo.GetByID(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.Name, found.Name)
	assert.Equal(t, spac.StatusSearching, found.Status)
	assert.Equal(t, filing.NonAccelerated, found.FilerStatus)
	require.NotNil(t, found.IPODate)
	assert.True(t, snap.IPODate.Equal(*found.IPODate))
	assert.Nil(t, found.AgreementDate)
}

func TestSpacRepository_GetByID_NotFound(t *testing.T) {
	pool := startPostgres(t)
	repo := repositories.NewSpacRepository(pool, nil)

	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeSpacNotFound))
}

func TestSpacRepository_Upsert_Replaces(t *testing.T) {
	pool := startPostgres(t)
	repo := repositories.NewSpacRepository(pool, nil)
	ctx := context.Background()

	snap := newTestSnapshot("002")
	require.NoError(t, repo.Upsert(ctx, snap))

	snap.Name = "Renamed Corp"
	snap.Status = spac.StatusAgreementAnnounced
	require.NoError(t, repo.Upsert(ctx, snap))

	found, err := repo.GetByID(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Corp", found.Name)
	assert.Equal(t, spac.StatusAgreementAnnounced, found.Status)
}

func TestSpacRepository_List_FiltersAndOrders(t *testing.T) {
	pool := startPostgres(t)
	repo := repositories.NewSpacRepository(pool, nil)
	ctx := context.Background()

	a := newTestSnapshot("a")
	a.Name = "Beta Corp"
	b := newTestSnapshot("b")
	b.Name = "Alpha Corp"
	c := newTestSnapshot("c")
	c.Name = "Gamma Corp"
	c.Status = spac.StatusCompleted
	for _, s := range []*spac.Snapshot{a, b, c} {
		require.NoError(t, repo.Upsert(ctx, s))
	}

	all, err := repo.List(ctx, spac.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Alpha Corp", all[0].Name)
	assert.Equal(t, "Beta Corp", all[1].Name)

	searching, err := repo.List(ctx, spac.ListFilter{
		Statuses: []spac.LifecycleStatus{spac.StatusSearching},
	})
	require.NoError(t, err)
	assert.Len(t, searching, 2)

	paged, err := repo.List(ctx, spac.ListFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "Beta Corp", paged[0].Name)
}

func TestSpacRepository_ChecklistCompletion(t *testing.T) {
	pool := startPostgres(t)
	repo := repositories.NewSpacRepository(pool, nil)
	ctx := context.Background()

	snap := newTestSnapshot("003")
	require.NoError(t, repo.Upsert(ctx, snap))

	require.NoError(t, repo.SetChecklistItem(ctx, snap.ID, filing.Form10K, "10k-financials", true))
	require.NoError(t, repo.SetChecklistItem(ctx, snap.ID, filing.Form10K, "10k-mdna", true))
	// Marking twice stays idempotent.
	require.NoError(t, repo.SetChecklistItem(ctx, snap.ID, filing.Form10K, "10k-financials", true))

	completed, err := repo.GetChecklistCompletion(ctx, snap.ID, filing.Form10K)
	require.NoError(t, err)
	assert.Len(t, completed, 2)
	assert.True(t, completed["10k-financials"])

	require.NoError(t, repo.SetChecklistItem(ctx, snap.ID, filing.Form10K, "10k-mdna", false))
	completed, err = repo.GetChecklistCompletion(ctx, snap.ID, filing.Form10K)
	require.NoError(t, err)
	assert.Len(t, completed, 1)

	other, err := repo.GetChecklistCompletion(ctx, snap.ID, filing.Form10Q)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSpacRepository_Upsert_RejectsInvalidSnapshot(t *testing.T) {
	pool := startPostgres(t)
	repo := repositories.NewSpacRepository(pool, nil)

	bad := newTestSnapshot("bad")
	bad.Status = "NOT_A_STATUS"
	err := repo.Upsert(context.Background(), bad)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeSpacStatusInvalid))
}
