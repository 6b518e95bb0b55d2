package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/SPAC-Sentinel/internal/domain/filing"
	apperrors "github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

func TestNewDefaultRegistry(t *testing.T) {
	reg, err := NewDefaultRegistry()
	require.NoError(t, err)

	types := reg.FilingTypes()
	assert.Contains(t, types, filing.Form10K)
	assert.Contains(t, types, filing.Form10Q)
	assert.Contains(t, types, filing.Form8K)
	assert.Contains(t, types, filing.FormS4)
	assert.Contains(t, types, filing.FormDEF14A)

	// Items come back sorted by order.
	tmpl, err := reg.TemplateFor(filing.FormS4)
	require.NoError(t, err)
	for i := 1; i < len(tmpl.Items); i++ {
		assert.LessOrEqual(t, tmpl.Items[i-1].Order, tmpl.Items[i].Order)
	}
}

func TestTemplateFor_Missing(t *testing.T) {
	reg, err := NewDefaultRegistry()
	require.NoError(t, err)

	_, err = reg.TemplateFor(filing.Form13D)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeChecklistTemplateMissing))
}

// Every filing definition that advertises a checklist must resolve to a
// registered template, and no template may exist for a type that does not
// advertise one.
func TestDefaultRegistry_MatchesFilingCatalog(t *testing.T) {
	reg, err := NewDefaultRegistry()
	require.NoError(t, err)

	for _, def := range filing.AllDefinitions() {
		tmpl, err := reg.TemplateFor(def.Type)
		if def.HasChecklist {
			require.NoError(t, err, "filing type %s advertises a checklist", def.Type)
			assert.Equal(t, def.Type, tmpl.FilingType)
			assert.NotEmpty(t, tmpl.Items, "filing type %s", def.Type)
		} else {
			require.Error(t, err, "filing type %s advertises no checklist", def.Type)
			assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeChecklistTemplateMissing))
		}
	}
}

func TestNewRegistry_RejectsCycle(t *testing.T) {
	_, err := NewRegistry([]ChecklistTemplate{{
		FilingType: filing.Form8K,
		Items: []ChecklistItem{
			{ID: "a", Name: "A", Order: 1, DependsOn: []string{"b"}},
			{ID: "b", Name: "B", Order: 2, DependsOn: []string{"a"}},
		},
	}})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeChecklistCycle))
}

func TestNewRegistry_RejectsSelfDependency(t *testing.T) {
	_, err := NewRegistry([]ChecklistTemplate{{
		FilingType: filing.Form8K,
		Items: []ChecklistItem{
			{ID: "a", Name: "A", Order: 1, DependsOn: []string{"a"}},
		},
	}})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeChecklistCycle))
}

func TestNewRegistry_RejectsDanglingDependency(t *testing.T) {
	_, err := NewRegistry([]ChecklistTemplate{{
		FilingType: filing.Form8K,
		Items: []ChecklistItem{
			{ID: "a", Name: "A", Order: 1, DependsOn: []string{"ghost"}},
		},
	}})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeChecklistDanglingDep))
}

func TestNewRegistry_RejectsDuplicateIDs(t *testing.T) {
	_, err := NewRegistry([]ChecklistTemplate{{
		FilingType: filing.Form8K,
		Items: []ChecklistItem{
			{ID: "a", Name: "A", Order: 1},
			{ID: "a", Name: "A again", Order: 2},
		},
	}})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestIsUnlocked(t *testing.T) {
	b := ChecklistItem{ID: "b", DependsOn: []string{"a"}}

	assert.False(t, IsUnlocked(b, map[string]bool{}))
	assert.True(t, IsUnlocked(b, map[string]bool{"a": true}))

	// No dependencies means always unlocked.
	assert.True(t, IsUnlocked(ChecklistItem{ID: "a"}, nil))
}

func TestTemplateProgress(t *testing.T) {
	tmpl := ChecklistTemplate{
		FilingType: filing.Form10Q,
		Items: []ChecklistItem{
			{ID: "a", Required: true, Order: 1},
			{ID: "b", Required: true, Order: 2},
			{ID: "c", Required: false, Order: 3},
		},
	}

	p := TemplateProgress(tmpl, map[string]bool{"a": true, "c": true})
	assert.Equal(t, Progress{Completed: 2, Total: 3, RequiredCompleted: 1, RequiredTotal: 2}, p)

	p = TemplateProgress(tmpl, nil)
	assert.Equal(t, Progress{Completed: 0, Total: 3, RequiredCompleted: 0, RequiredTotal: 2}, p)
}
