// Package filing defines the static filing rule catalog: filing types,
// categories, deadline kinds, filer status tiers, and blackout periods.
// Everything in this package is process-wide immutable configuration.
package filing

import (
	"fmt"

	"github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

// FilingType identifies an SEC filing form.
type FilingType string

const (
	Form10K     FilingType = "10-K"
	Form10Q     FilingType = "10-Q"
	Form8K      FilingType = "8-K"
	FormS1      FilingType = "S-1"
	FormS4      FilingType = "S-4"
	Form425     FilingType = "425"
	FormDEF14A  FilingType = "DEF 14A"
	FormPRE14A  FilingType = "PRE 14A"
	FormDEFA14A FilingType = "DEFA14A"
	Form13D     FilingType = "SC 13D"
	Form13G     FilingType = "SC 13G"
	Form3       FilingType = "3"
	Form4       FilingType = "4"
	Form5       FilingType = "5"
	FormSC13E3  FilingType = "SC 13E-3"
	FormOther   FilingType = "OTHER"
)

// FilingCategory classifies a FilingType for filtering and reporting.
type FilingCategory string

const (
	CategoryPeriodic     FilingCategory = "PERIODIC"
	CategoryCurrent      FilingCategory = "CURRENT"
	CategoryRegistration FilingCategory = "REGISTRATION"
	CategoryProxy        FilingCategory = "PROXY"
	CategoryBeneficial   FilingCategory = "BENEFICIAL"
	CategoryInsider      FilingCategory = "INSIDER"
	CategoryOther        FilingCategory = "OTHER"

	// CategoryCombination tags deadlines derived from the outer business
	// combination deadline rather than from a filing form.
	CategoryCombination FilingCategory = "BUSINESS_COMBINATION"
)

// DeadlineType describes how a filing's deadline is derived.
type DeadlineType string

const (
	DeadlineFixed      DeadlineType = "FIXED"
	DeadlineEventBased DeadlineType = "EVENT_BASED"
	DeadlinePeriodic   DeadlineType = "PERIODIC"
)

// AllFilingTypes lists every defined FilingType in catalog order.
var AllFilingTypes = []FilingType{
	Form10K, Form10Q, Form8K,
	FormS1, FormS4, Form425,
	FormDEF14A, FormPRE14A, FormDEFA14A,
	Form13D, Form13G,
	Form3, Form4, Form5,
	FormSC13E3, FormOther,
}

var filingTypeNames = map[FilingType]string{
	Form10K:     "Annual Report",
	Form10Q:     "Quarterly Report",
	Form8K:      "Current Report",
	FormS1:      "Registration Statement (IPO)",
	FormS4:      "Registration Statement (Business Combination)",
	Form425:     "Business Combination Communication",
	FormDEF14A:  "Definitive Proxy Statement",
	FormPRE14A:  "Preliminary Proxy Statement",
	FormDEFA14A: "Additional Proxy Soliciting Materials",
	Form13D:     "Beneficial Ownership Report (Active)",
	Form13G:     "Beneficial Ownership Report (Passive)",
	Form3:       "Initial Insider Ownership Statement",
	Form4:       "Insider Transaction Report",
	Form5:       "Annual Insider Transaction Report",
	FormSC13E3:  "Going-Private Transaction Statement",
	FormOther:   "Other Filing",
}

var filingCategoryNames = map[FilingCategory]string{
	CategoryPeriodic:     "Periodic Reports",
	CategoryCurrent:      "Current Reports",
	CategoryRegistration: "Registration Statements",
	CategoryProxy:        "Proxy Materials",
	CategoryBeneficial:   "Beneficial Ownership",
	CategoryInsider:      "Insider Transactions",
	CategoryOther:        "Other",
	CategoryCombination:  "Business Combination",
}

// Name returns the human-readable name of the filing type.  Unknown values
// are an invalid-input error; callers must never receive a silent default.
func (t FilingType) Name() (string, error) {
	name, ok := filingTypeNames[t]
	if !ok {
		return "", errors.InvalidParam(fmt.Sprintf("unknown filing type: %q", string(t)))
	}
	return name, nil
}

// IsValid reports whether t is a defined FilingType.
func (t FilingType) IsValid() bool {
	_, ok := filingTypeNames[t]
	return ok
}

// Name returns the human-readable name of the category.
func (c FilingCategory) Name() (string, error) {
	name, ok := filingCategoryNames[c]
	if !ok {
		return "", errors.InvalidParam(fmt.Sprintf("unknown filing category: %q", string(c)))
	}
	return name, nil
}

// IsValid reports whether c is a defined FilingCategory.
func (c FilingCategory) IsValid() bool {
	_, ok := filingCategoryNames[c]
	return ok
}
