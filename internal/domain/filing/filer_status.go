package filing

import (
	"fmt"

	"github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

// FilerStatus is the SEC filer classification tier.  The tier determines
// how many calendar days the entity has to file its periodic reports.
type FilerStatus string

const (
	LargeAccelerated FilerStatus = "LARGE_ACCELERATED"
	Accelerated      FilerStatus = "ACCELERATED"
	NonAccelerated   FilerStatus = "NON_ACCELERATED"
	SmallerReporting FilerStatus = "SMALLER_REPORTING"
	EmergingGrowth   FilerStatus = "EMERGING_GROWTH"
)

// FilerStatusTier carries the periodic-report day counts and descriptive
// public-float band for one filer status.  The float band is informational
// only; classification happens outside this engine.
type FilerStatusTier struct {
	Status        FilerStatus
	Name          string
	AnnualDays    int // calendar days after fiscal year end for the annual report
	QuarterlyDays int // calendar days after quarter end for the quarterly report
	FloatBand     string
}

// filerStatusTiers is keyed by status; exactly one tier per status.
var filerStatusTiers = map[FilerStatus]FilerStatusTier{
	LargeAccelerated: {
		Status:        LargeAccelerated,
		Name:          "Large Accelerated Filer",
		AnnualDays:    60,
		QuarterlyDays: 40,
		FloatBand:     "public float >= $700M",
	},
	Accelerated: {
		Status:        Accelerated,
		Name:          "Accelerated Filer",
		AnnualDays:    75,
		QuarterlyDays: 40,
		FloatBand:     "public float $75M-$700M",
	},
	NonAccelerated: {
		Status:        NonAccelerated,
		Name:          "Non-Accelerated Filer",
		AnnualDays:    90,
		QuarterlyDays: 45,
		FloatBand:     "public float < $75M",
	},
	SmallerReporting: {
		Status:        SmallerReporting,
		Name:          "Smaller Reporting Company",
		AnnualDays:    90,
		QuarterlyDays: 45,
		FloatBand:     "public float < $250M or revenue < $100M",
	},
	EmergingGrowth: {
		Status:        EmergingGrowth,
		Name:          "Emerging Growth Company",
		AnnualDays:    90,
		QuarterlyDays: 45,
		FloatBand:     "revenue < $1.235B, within 5 years of IPO",
	},
}

// AllFilerStatuses lists every tier in descending float order.
var AllFilerStatuses = []FilerStatus{
	LargeAccelerated, Accelerated, NonAccelerated, SmallerReporting, EmergingGrowth,
}

// TierFor looks up the tier for a filer status.  Unknown values fail fast.
func TierFor(status FilerStatus) (FilerStatusTier, error) {
	tier, ok := filerStatusTiers[status]
	if !ok {
		return FilerStatusTier{}, errors.InvalidParam(fmt.Sprintf("unknown filer status: %q", string(status)))
	}
	return tier, nil
}

// IsValid reports whether s is a defined FilerStatus.
func (s FilerStatus) IsValid() bool {
	_, ok := filerStatusTiers[s]
	return ok
}
