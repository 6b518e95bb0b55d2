// Package checklist holds the per-filing-type task templates and their
// dependency graphs.  Templates are immutable; completion state is supplied
// by callers on every query.
package checklist

import (
	"fmt"
	"sort"

	"github.com/turtacn/SPAC-Sentinel/internal/domain/filing"
	"github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

// ChecklistItem is one preparatory task within a template.
type ChecklistItem struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Required  bool     `json:"required"`
	Order     int      `json:"order"`
	DependsOn []string `json:"depends_on,omitempty"`
}

// ChecklistTemplate is the ordered task list for one filing type.
type ChecklistTemplate struct {
	FilingType filing.FilingType `json:"filing_type"`
	Items      []ChecklistItem   `json:"items"`
}

// Progress summarizes completion of a template against a completed-id set.
type Progress struct {
	Completed         int `json:"completed"`
	Total             int `json:"total"`
	RequiredCompleted int `json:"required_completed"`
	RequiredTotal     int `json:"required_total"`
}

// Registry holds validated templates keyed by filing type.
type Registry struct {
	templates map[filing.FilingType]ChecklistTemplate
}

// NewRegistry validates and indexes the given templates.  Validation fails
// on duplicate item ids, dependencies referencing ids outside the template,
// and dependency cycles.  A failed validation means the configuration is
// ill-formed and must not be served.
func NewRegistry(templates []ChecklistTemplate) (*Registry, error) {
	indexed := make(map[filing.FilingType]ChecklistTemplate, len(templates))
	for _, tmpl := range templates {
		if !tmpl.FilingType.IsValid() {
			return nil, errors.NewValidationOp("checklist.load",
				fmt.Sprintf("checklist template references unknown filing type %q", tmpl.FilingType))
		}
		if _, dup := indexed[tmpl.FilingType]; dup {
			return nil, errors.NewValidationOp("checklist.load",
				fmt.Sprintf("duplicate checklist template for %s", tmpl.FilingType))
		}
		if err := validateTemplate(tmpl); err != nil {
			return nil, err
		}

		sorted := make([]ChecklistItem, len(tmpl.Items))
		copy(sorted, tmpl.Items)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
		tmpl.Items = sorted

		indexed[tmpl.FilingType] = tmpl
	}
	return &Registry{templates: indexed}, nil
}

// validateTemplate checks id uniqueness, dependency resolution, and
// acyclicity via Kahn's algorithm.
func validateTemplate(tmpl ChecklistTemplate) error {
	ids := make(map[string]struct{}, len(tmpl.Items))
	for _, item := range tmpl.Items {
		if item.ID == "" {
			return errors.NewValidationOp("checklist.load",
				fmt.Sprintf("%s checklist has an item without an id", tmpl.FilingType))
		}
		if _, dup := ids[item.ID]; dup {
			return errors.NewValidationOp("checklist.load",
				fmt.Sprintf("%s checklist has duplicate item id %q", tmpl.FilingType, item.ID))
		}
		ids[item.ID] = struct{}{}
	}

	inDegree := make(map[string]int, len(tmpl.Items))
	dependents := make(map[string][]string, len(tmpl.Items))
	for _, item := range tmpl.Items {
		inDegree[item.ID] += 0
		for _, dep := range item.DependsOn {
			if _, ok := ids[dep]; !ok {
				return errors.New(errors.ErrCodeChecklistDanglingDep,
					fmt.Sprintf("%s checklist item %q depends on unknown item %q", tmpl.FilingType, item.ID, dep))
			}
			if dep == item.ID {
				return errors.New(errors.ErrCodeChecklistCycle,
					fmt.Sprintf("%s checklist item %q depends on itself", tmpl.FilingType, item.ID))
			}
			inDegree[item.ID]++
			dependents[dep] = append(dependents[dep], item.ID)
		}
	}

	queue := make([]string, 0, len(inDegree))
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, next := range dependents[id] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}
	if visited != len(tmpl.Items) {
		return errors.New(errors.ErrCodeChecklistCycle,
			fmt.Sprintf("%s checklist dependency graph contains a cycle", tmpl.FilingType))
	}
	return nil
}

// TemplateFor returns the template for a filing type.
func (r *Registry) TemplateFor(t filing.FilingType) (ChecklistTemplate, error) {
	tmpl, ok := r.templates[t]
	if !ok {
		return ChecklistTemplate{}, errors.New(errors.ErrCodeChecklistTemplateMissing,
			fmt.Sprintf("no checklist template for filing type %s", t))
	}
	return tmpl, nil
}

// FilingTypes returns the filing types with a registered template, in
// catalog order.
func (r *Registry) FilingTypes() []filing.FilingType {
	var out []filing.FilingType
	for _, t := range filing.AllFilingTypes {
		if _, ok := r.templates[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// IsUnlocked reports whether every dependency of the item is in the
// completed set.  Items without dependencies are always unlocked.
func IsUnlocked(item ChecklistItem, completed map[string]bool) bool {
	for _, dep := range item.DependsOn {
		if !completed[dep] {
			return false
		}
	}
	return true
}

// TemplateProgress counts completion of a template against a completed set.
func TemplateProgress(tmpl ChecklistTemplate, completed map[string]bool) Progress {
	p := Progress{Total: len(tmpl.Items)}
	for _, item := range tmpl.Items {
		if item.Required {
			p.RequiredTotal++
		}
		if completed[item.ID] {
			p.Completed++
			if item.Required {
				p.RequiredCompleted++
			}
		}
	}
	return p
}
