package checklist

import "github.com/turtacn/SPAC-Sentinel/internal/domain/filing"

// DefaultTemplates returns the built-in checklist templates.  A fresh slice
// is returned on every call so callers can not mutate the source data.
func DefaultTemplates() []ChecklistTemplate {
	return []ChecklistTemplate{
		{
			FilingType: filing.Form10K,
			Items: []ChecklistItem{
				{ID: "10k-financials", Name: "Audited financial statements", Category: "financial", Required: true, Order: 1},
				{ID: "10k-mdna", Name: "MD&A drafted", Category: "disclosure", Required: true, Order: 2, DependsOn: []string{"10k-financials"}},
				{ID: "10k-controls", Name: "Internal control assessment", Category: "financial", Required: true, Order: 3, DependsOn: []string{"10k-financials"}},
				{ID: "10k-trust", Name: "Trust account disclosure", Category: "disclosure", Required: true, Order: 4},
				{ID: "10k-certs", Name: "Officer certifications signed", Category: "legal", Required: true, Order: 5, DependsOn: []string{"10k-mdna", "10k-controls"}},
				{ID: "10k-xbrl", Name: "XBRL tagging complete", Category: "filing", Required: false, Order: 6, DependsOn: []string{"10k-financials"}},
			},
		},
		{
			FilingType: filing.Form10Q,
			Items: []ChecklistItem{
				{ID: "10q-financials", Name: "Reviewed interim financial statements", Category: "financial", Required: true, Order: 1},
				{ID: "10q-mdna", Name: "Interim MD&A drafted", Category: "disclosure", Required: true, Order: 2, DependsOn: []string{"10q-financials"}},
				{ID: "10q-trust", Name: "Trust account balance confirmed", Category: "financial", Required: true, Order: 3},
				{ID: "10q-certs", Name: "Officer certifications signed", Category: "legal", Required: true, Order: 4, DependsOn: []string{"10q-mdna"}},
			},
		},
		{
			FilingType: filing.Form8K,
			Items: []ChecklistItem{
				{ID: "8k-event", Name: "Triggering event identified and dated", Category: "legal", Required: true, Order: 1},
				{ID: "8k-item", Name: "Disclosure item number determined", Category: "legal", Required: true, Order: 2, DependsOn: []string{"8k-event"}},
				{ID: "8k-draft", Name: "Disclosure drafted and reviewed", Category: "disclosure", Required: true, Order: 3, DependsOn: []string{"8k-item"}},
				{ID: "8k-exhibits", Name: "Exhibits assembled", Category: "filing", Required: false, Order: 4, DependsOn: []string{"8k-draft"}},
			},
		},
		{
			FilingType: filing.FormS4,
			Items: []ChecklistItem{
				{ID: "s4-target-financials", Name: "Target company audited financials", Category: "financial", Required: true, Order: 1},
				{ID: "s4-proforma", Name: "Pro forma financial statements", Category: "financial", Required: true, Order: 2, DependsOn: []string{"s4-target-financials"}},
				{ID: "s4-business", Name: "Target business description", Category: "disclosure", Required: true, Order: 3},
				{ID: "s4-risks", Name: "Combined risk factors", Category: "disclosure", Required: true, Order: 4, DependsOn: []string{"s4-business"}},
				{ID: "s4-dilution", Name: "Dilution and redemption analysis", Category: "financial", Required: true, Order: 5, DependsOn: []string{"s4-proforma"}},
				{ID: "s4-opinion", Name: "Fairness opinion obtained", Category: "legal", Required: false, Order: 6},
				{ID: "s4-legal", Name: "Legality and tax opinions", Category: "legal", Required: true, Order: 7, DependsOn: []string{"s4-risks", "s4-dilution"}},
			},
		},
		{
			FilingType: filing.FormDEF14A,
			Items: []ChecklistItem{
				{ID: "def14a-sec-comments", Name: "SEC comments on preliminary proxy cleared", Category: "legal", Required: true, Order: 1},
				{ID: "def14a-record-date", Name: "Record date set with transfer agent", Category: "legal", Required: true, Order: 2},
				{ID: "def14a-final", Name: "Definitive proxy finalized", Category: "disclosure", Required: true, Order: 3, DependsOn: []string{"def14a-sec-comments"}},
				{ID: "def14a-mailing", Name: "Printer and mailing vendor engaged", Category: "filing", Required: true, Order: 4, DependsOn: []string{"def14a-final", "def14a-record-date"}},
				{ID: "def14a-solicitor", Name: "Proxy solicitor engaged", Category: "filing", Required: false, Order: 5},
			},
		},
	}
}

// NewDefaultRegistry builds a Registry from the built-in templates.
func NewDefaultRegistry() (*Registry, error) {
	return NewRegistry(DefaultTemplates())
}
