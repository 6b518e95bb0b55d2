package spac

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/SPAC-Sentinel/internal/domain/filing"
	apperrors "github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

func TestLifecycleStatus_Names(t *testing.T) {
	for _, s := range AllStatuses {
		name, err := s.Name()
		require.NoError(t, err, "status %s", s)
		assert.NotEmpty(t, name)
		assert.True(t, s.IsValid())
	}

	_, err := LifecycleStatus("WARP_DRIVE").Name()
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSpacStatusInvalid))
}

func TestLifecycleStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusLiquidated.IsTerminal())
	assert.True(t, StatusTerminated.IsTerminal())

	assert.False(t, StatusSearching.IsTerminal())
	assert.False(t, StatusVotePending.IsTerminal())
	assert.False(t, StatusLiquidating.IsTerminal(), "a liquidating entity still owes filings")
}

func TestSnapshot_Validate(t *testing.T) {
	valid := Snapshot{
		ID:                 "spac-001",
		Name:               "Atlas Acquisition Corp",
		Status:             StatusSearching,
		FiscalYearEndMonth: time.December,
		FilerStatus:        filing.NonAccelerated,
	}
	require.NoError(t, valid.Validate())

	missing := valid
	missing.ID = ""
	assert.Error(t, missing.Validate())

	badStatus := valid
	badStatus.Status = "NOPE"
	assert.Error(t, badStatus.Validate())

	badFiler := valid
	badFiler.FilerStatus = "NOPE"
	assert.Error(t, badFiler.Validate())

	badMonth := valid
	badMonth.FiscalYearEndMonth = 0
	assert.Error(t, badMonth.Validate())
}
