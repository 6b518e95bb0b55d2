package filing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

func TestDefinitionRegistry_Complete(t *testing.T) {
	assert.Len(t, AllFilingTypes, 16)

	for _, ft := range AllFilingTypes {
		def, err := DefinitionFor(ft)
		require.NoError(t, err, "filing type %s", ft)
		assert.Equal(t, ft, def.Type)
		assert.True(t, def.Category.IsValid(), "filing type %s has invalid category", ft)
		assert.NotEmpty(t, def.Name)
		assert.GreaterOrEqual(t, def.DayCount, 0)

		name, err := ft.Name()
		require.NoError(t, err)
		assert.Equal(t, def.Name, name)
	}
}

func TestDefinitionFor_UnknownType(t *testing.T) {
	_, err := DefinitionFor(FilingType("10-X"))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestDefinitionFor_KnownRules(t *testing.T) {
	def, err := DefinitionFor(Form8K)
	require.NoError(t, err)
	assert.Equal(t, DeadlineEventBased, def.DeadlineKind)
	assert.Equal(t, 4, def.DayCount)
	assert.True(t, def.BusinessDays)

	def, err = DefinitionFor(Form10K)
	require.NoError(t, err)
	assert.Equal(t, DeadlinePeriodic, def.DeadlineKind)
	assert.Zero(t, def.DayCount, "periodic day counts come from the filer tier")

	def, err = DefinitionFor(FormDEF14A)
	require.NoError(t, err)
	assert.Equal(t, 20, def.DayCount)
	assert.False(t, def.BusinessDays, "proxy mailing deadline uses calendar days")

	def, err = DefinitionFor(Form4)
	require.NoError(t, err)
	assert.Equal(t, 2, def.DayCount)
	assert.True(t, def.BusinessDays)
}

func TestDefinitionsByCategory(t *testing.T) {
	periodic := DefinitionsByCategory(CategoryPeriodic)
	require.Len(t, periodic, 2)
	assert.Equal(t, Form10K, periodic[0].Type)
	assert.Equal(t, Form10Q, periodic[1].Type)

	insider := DefinitionsByCategory(CategoryInsider)
	assert.Len(t, insider, 3)
}

func TestTierFor(t *testing.T) {
	cases := []struct {
		status        FilerStatus
		annualDays    int
		quarterlyDays int
	}{
		{LargeAccelerated, 60, 40},
		{Accelerated, 75, 40},
		{NonAccelerated, 90, 45},
		{SmallerReporting, 90, 45},
		{EmergingGrowth, 90, 45},
	}
	for _, tc := range cases {
		tier, err := TierFor(tc.status)
		require.NoError(t, err, "status %s", tc.status)
		assert.Equal(t, tc.annualDays, tier.AnnualDays, "status %s", tc.status)
		assert.Equal(t, tc.quarterlyDays, tier.QuarterlyDays, "status %s", tc.status)
		assert.NotEmpty(t, tier.Name)
		assert.NotEmpty(t, tier.FloatBand)
	}
}

func TestTierFor_UnknownStatus(t *testing.T) {
	_, err := TierFor(FilerStatus("MEGA_FILER"))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.False(t, FilerStatus("MEGA_FILER").IsValid())
}

func TestBlackoutPeriod_Contains(t *testing.T) {
	b := StandardBlackoutPeriods[0]
	start := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.April, 5, 0, 0, 0, 0, time.UTC)

	assert.True(t, b.Contains(start, start, end), "start is inclusive")
	assert.True(t, b.Contains(end, start, end), "end is inclusive")
	assert.True(t, b.Contains(time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC), start, end))
	assert.False(t, b.Contains(start.AddDate(0, 0, -1), start, end))
	assert.False(t, b.Contains(end.AddDate(0, 0, 1), start, end))
}
