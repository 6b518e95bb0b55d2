package filing

import (
	"fmt"

	"github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

// FilingDefinition is the static rule record for one filing type.
type FilingDefinition struct {
	Type     FilingType
	Category FilingCategory
	Name     string

	// DeadlineKind selects the arithmetic the calculator applies.
	DeadlineKind DeadlineType

	// DayCount is the number of days after the triggering event.  For the
	// two periodic types the day count comes from the filer status tier
	// instead and this field is zero.
	DayCount int

	// BusinessDays selects business-day addition for event-based filings;
	// calendar-day addition otherwise.
	BusinessDays bool

	// RequiredDuringSearch marks filings owed while the entity is still
	// searching for a target.  RequiredForCombination marks filings owed
	// during or after the business combination process.
	RequiredDuringSearch   bool
	RequiredForCombination bool

	// HasChecklist reports whether a preparation checklist template is
	// registered for this filing type, keyed by Type.
	HasChecklist bool

	Guidance string
}

var definitions = map[FilingType]FilingDefinition{
	Form10K: {
		Type:                 Form10K,
		Category:             CategoryPeriodic,
		Name:                 filingTypeNames[Form10K],
		DeadlineKind:         DeadlinePeriodic,
		RequiredDuringSearch: true,
		HasChecklist:         true,
		Guidance:             "Due after fiscal year end; the day count depends on filer status (60/75/90 days).",
	},
	Form10Q: {
		Type:                 Form10Q,
		Category:             CategoryPeriodic,
		Name:                 filingTypeNames[Form10Q],
		DeadlineKind:         DeadlinePeriodic,
		RequiredDuringSearch: true,
		HasChecklist:         true,
		Guidance:             "Due after each of the first three fiscal quarters; the day count depends on filer status (40/45 days).",
	},
	Form8K: {
		Type:                   Form8K,
		Category:               CategoryCurrent,
		Name:                   filingTypeNames[Form8K],
		DeadlineKind:           DeadlineEventBased,
		DayCount:               4,
		BusinessDays:           true,
		RequiredDuringSearch:   true,
		RequiredForCombination: true,
		HasChecklist:           true,
		Guidance:               "Due four business days after the triggering event. A definitive business combination agreement and a completed combination are both triggering events.",
	},
	FormS1: {
		Type:         FormS1,
		Category:     CategoryRegistration,
		Name:         filingTypeNames[FormS1],
		DeadlineKind: DeadlineFixed,
		Guidance:     "IPO registration statement. No statutory deadline; filed when the offering is ready.",
	},
	FormS4: {
		Type:                   FormS4,
		Category:               CategoryRegistration,
		Name:                   filingTypeNames[FormS4],
		DeadlineKind:           DeadlineFixed,
		RequiredForCombination: true,
		HasChecklist:           true,
		Guidance:               "Registration statement for shares issued in the combination. Target filing roughly two months after the agreement announcement.",
	},
	Form425: {
		Type:                   Form425,
		Category:               CategoryCurrent,
		Name:                   filingTypeNames[Form425],
		DeadlineKind:           DeadlineEventBased,
		DayCount:               0,
		RequiredForCombination: true,
		Guidance:               "Communications about the combination are filed on the date of first use.",
	},
	FormDEF14A: {
		Type:                   FormDEF14A,
		Category:               CategoryProxy,
		Name:                   filingTypeNames[FormDEF14A],
		DeadlineKind:           DeadlineEventBased,
		DayCount:               20,
		RequiredForCombination: true,
		HasChecklist:           true,
		Guidance:               "Definitive proxy statement must be mailed at least 20 calendar days before the shareholder vote.",
	},
	FormPRE14A: {
		Type:                   FormPRE14A,
		Category:               CategoryProxy,
		Name:                   filingTypeNames[FormPRE14A],
		DeadlineKind:           DeadlineEventBased,
		DayCount:               20,
		BusinessDays:           true,
		RequiredForCombination: true,
		Guidance:               "Preliminary proxy statement filed well ahead of the vote to allow SEC review; plan 20 business days before the meeting.",
	},
	FormDEFA14A: {
		Type:                   FormDEFA14A,
		Category:               CategoryProxy,
		Name:                   filingTypeNames[FormDEFA14A],
		DeadlineKind:           DeadlineEventBased,
		DayCount:               0,
		RequiredForCombination: true,
		Guidance:               "Additional soliciting materials are filed on the date of first use.",
	},
	Form13D: {
		Type:         Form13D,
		Category:     CategoryBeneficial,
		Name:         filingTypeNames[Form13D],
		DeadlineKind: DeadlineEventBased,
		DayCount:     10,
		Guidance:     "Due within 10 calendar days of crossing 5% beneficial ownership with activist intent.",
	},
	Form13G: {
		Type:         Form13G,
		Category:     CategoryBeneficial,
		Name:         filingTypeNames[Form13G],
		DeadlineKind: DeadlineEventBased,
		DayCount:     45,
		Guidance:     "Passive-investor beneficial ownership report; due within 45 calendar days of year end for qualified institutions.",
	},
	Form3: {
		Type:         Form3,
		Category:     CategoryInsider,
		Name:         filingTypeNames[Form3],
		DeadlineKind: DeadlineEventBased,
		DayCount:     10,
		Guidance:     "Initial ownership statement due within 10 calendar days of becoming an insider.",
	},
	Form4: {
		Type:         Form4,
		Category:     CategoryInsider,
		Name:         filingTypeNames[Form4],
		DeadlineKind: DeadlineEventBased,
		DayCount:     2,
		BusinessDays: true,
		Guidance:     "Insider transactions reported within two business days.",
	},
	Form5: {
		Type:         Form5,
		Category:     CategoryInsider,
		Name:         filingTypeNames[Form5],
		DeadlineKind: DeadlineEventBased,
		DayCount:     45,
		Guidance:     "Annual statement of unreported insider transactions; due within 45 calendar days of fiscal year end.",
	},
	FormSC13E3: {
		Type:                   FormSC13E3,
		Category:               CategoryOther,
		Name:                   filingTypeNames[FormSC13E3],
		DeadlineKind:           DeadlineEventBased,
		DayCount:               0,
		RequiredForCombination: true,
		Guidance:               "Going-private transaction statement; timing is transaction-specific and needs counsel review.",
	},
	FormOther: {
		Type:         FormOther,
		Category:     CategoryOther,
		Name:         filingTypeNames[FormOther],
		DeadlineKind: DeadlineEventBased,
		DayCount:     0,
		Guidance:     "Catch-all for filings without catalog rules; deadlines need human review.",
	},
}

func init() {
	// Registry integrity: one definition per type, non-negative day counts.
	for _, t := range AllFilingTypes {
		def, ok := definitions[t]
		if !ok {
			panic(fmt.Sprintf("filing: missing definition for %s", t))
		}
		if def.DayCount < 0 {
			panic(fmt.Sprintf("filing: negative day count for %s", t))
		}
		if def.Type != t {
			panic(fmt.Sprintf("filing: definition key/type mismatch for %s", t))
		}
	}
	if len(definitions) != len(AllFilingTypes) {
		panic("filing: definition registry and type list disagree")
	}
}

// DefinitionFor looks up the definition for a filing type.  Unknown values
// fail fast; the catalog never substitutes a default.
func DefinitionFor(t FilingType) (FilingDefinition, error) {
	def, ok := definitions[t]
	if !ok {
		return FilingDefinition{}, errors.InvalidParam(fmt.Sprintf("unknown filing type: %q", string(t)))
	}
	return def, nil
}

// AllDefinitions returns every definition in catalog order.
func AllDefinitions() []FilingDefinition {
	out := make([]FilingDefinition, 0, len(AllFilingTypes))
	for _, t := range AllFilingTypes {
		out = append(out, definitions[t])
	}
	return out
}

// DefinitionsByCategory returns the definitions in the given category, in
// catalog order.
func DefinitionsByCategory(c FilingCategory) []FilingDefinition {
	var out []FilingDefinition
	for _, t := range AllFilingTypes {
		if definitions[t].Category == c {
			out = append(out, definitions[t])
		}
	}
	return out
}
