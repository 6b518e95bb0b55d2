package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/SPAC-Sentinel/internal/application/compliance"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeSnapshotFile(t *testing.T) string {
	t.Helper()
	snapshot := `{
		"id": "atlas-1",
		"name": "Atlas Acquisition Corp",
		"ticker": "ATLS",
		"status": "SEARCHING",
		"ipo_date": "2024-06-15T00:00:00Z",
		"combination_deadline": "2026-06-15T00:00:00Z",
		"extension_count": 0,
		"fiscal_year_end_month": 12,
		"filer_status": "NON_ACCELERATED"
	}`
	path := filepath.Join(t.TempDir(), "atlas.json")
	require.NoError(t, os.WriteFile(path, []byte(snapshot), 0o600))
	return path
}

func TestDeadlinesCommand_JSONOutput(t *testing.T) {
	path := writeSnapshotFile(t)

	out, err := executeCommand(t, "deadlines", "--snapshot", path,
		"--as-of", "2025-02-01", "-o", "json")
	require.NoError(t, err)

	var items []compliance.FilingDeadlineItem
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.NotEmpty(t, items)
	for _, item := range items {
		assert.Equal(t, "atlas-1", item.SpacID)
		assert.False(t, item.Deadline.IsZero())
	}
}

func TestDeadlinesCommand_TableOutput(t *testing.T) {
	path := writeSnapshotFile(t)

	out, err := executeCommand(t, "deadlines", "--snapshot", path,
		"--as-of", "2025-02-01")
	require.NoError(t, err)
	assert.Contains(t, out, "FILING")
	assert.Contains(t, out, "10-K")
}

func TestDeadlinesCommand_RequiresSnapshot(t *testing.T) {
	_, err := executeCommand(t, "deadlines", "--as-of", "2025-02-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot")
}

func TestDeadlinesCommand_InvalidAsOf(t *testing.T) {
	path := writeSnapshotFile(t)

	_, err := executeCommand(t, "deadlines", "--snapshot", path,
		"--as-of", "02/01/2025")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestDeadlinesCommand_RejectsInvalidSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"id":"x","status":"NOT_A_STATUS","fiscal_year_end_month":12,"filer_status":"NON_ACCELERATED"}`),
		0o600))

	_, err := executeCommand(t, "deadlines", "--snapshot", path)
	require.Error(t, err)
}

func TestAlertsCommand_JSONOutput(t *testing.T) {
	path := writeSnapshotFile(t)

	out, err := executeCommand(t, "alerts", "--snapshot", path,
		"--as-of", "2026-06-10", "-o", "json")
	require.NoError(t, err)

	var alerts []compliance.DeadlineAlert
	require.NoError(t, json.Unmarshal([]byte(out), &alerts))
	require.NotEmpty(t, alerts)

	// Five days before the combination deadline the window alert is critical.
	assert.Equal(t, compliance.SeverityCritical, alerts[0].Severity)
}

func TestChecklistCommand_KnownType(t *testing.T) {
	out, err := executeCommand(t, "checklist", "10-K")
	require.NoError(t, err)
	assert.Contains(t, out, "Audited financial statements")
	assert.Contains(t, out, "DEPENDS ON")
}

func TestChecklistCommand_UnknownTypeListsSupported(t *testing.T) {
	_, err := executeCommand(t, "checklist", "NOPE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "supported:")
	assert.Contains(t, err.Error(), "10-K")
}

func TestCalendarCommand_JSONOutput(t *testing.T) {
	out, err := executeCommand(t, "calendar", "--year", "2025", "-o", "json")
	require.NoError(t, err)

	var entries []holidayEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 10)

	assert.Equal(t, "2025-01-01", entries[0].Date)
	for _, e := range entries {
		assert.NotEqual(t, "Saturday", e.Weekday)
		assert.NotEqual(t, "Sunday", e.Weekday)
	}
}

func TestCalendarCommand_YearOutOfRange(t *testing.T) {
	_, err := executeCommand(t, "calendar", "--year", "1492")
	require.Error(t, err)
}

func TestResolveAsOf(t *testing.T) {
	got, err := resolveAsOf(&RootOptions{AsOf: "2025-07-04"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC), got)

	got, err = resolveAsOf(&RootOptions{})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, 0, got.Hour())

	_, err = resolveAsOf(&RootOptions{AsOf: "yesterday"})
	require.Error(t, err)
}

func TestLoadSnapshot_MissingFile(t *testing.T) {
	_, err := loadSnapshot(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
