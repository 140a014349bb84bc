// Package pricing computes repair costs for logical report rows from
// sector-scoped pricing configurations. Pricing never fails a batch:
// anything it cannot price is left at nil cost and flagged for manual
// attention.
package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"sewerswarm/core/types"
	"sewerswarm/internal/errors"
)

// Tier is one numeric range of total length mapped to a shift rate.
// Ranges are inclusive at both ends and must not overlap within a
// configuration.
type Tier struct {
	// RangeStart and RangeEnd bound the total length in metres
	RangeStart float64 `json:"range_start"`
	RangeEnd   float64 `json:"range_end"`

	// DayRate is the shift day rate in currency major units
	DayRate decimal.Decimal `json:"day_rate"`

	// RunsPerShift is the number of runs a crew completes per shift
	RunsPerShift int `json:"runs_per_shift"`
}

// Contains reports whether a length falls inside the tier, both ends
// inclusive.
func (t Tier) Contains(length float64) bool {
	return length >= t.RangeStart && length <= t.RangeEnd
}

// SectorConfig is the pricing configuration for one (sector, defect
// category) pair. Read-only from the resolver's perspective.
type SectorConfig struct {
	// Sector is the pricing sector, e.g. "utilities"
	Sector string `json:"sector"`

	// Category is the defect category this configuration prices
	Category types.DefectType `json:"category"`

	// MinQuantity lifts the billed length to a floor, 0 to disable
	MinQuantity float64 `json:"min_quantity,omitempty"`

	// Tiers is the length-range rate table
	Tiers []Tier `json:"tiers"`

	// PatchUnitCost is the per-repair cost for patch-type structural
	// work; zero means patch pricing is not configured
	PatchUnitCost decimal.Decimal `json:"patch_unit_cost,omitempty"`
}

// Validate checks tier sanity. Overlapping tiers are a configuration
// error, not something the resolver arbitrates at lookup time.
func (c *SectorConfig) Validate() error {
	for i, tier := range c.Tiers {
		if tier.RangeEnd < tier.RangeStart {
			return errors.Newf(errors.TypeConfig,
				"sector %s/%s tier %d: range end %.2f before start %.2f",
				c.Sector, c.Category, i, tier.RangeEnd, tier.RangeStart)
		}
		if tier.RunsPerShift <= 0 {
			return errors.Newf(errors.TypeConfig,
				"sector %s/%s tier %d: runs per shift must be positive", c.Sector, c.Category, i)
		}
		for j := i + 1; j < len(c.Tiers); j++ {
			other := c.Tiers[j]
			if tier.RangeStart <= other.RangeEnd && other.RangeStart <= tier.RangeEnd {
				return errors.Newf(errors.TypeConfig,
					"sector %s/%s: tiers [%g,%g] and [%g,%g] overlap",
					c.Sector, c.Category,
					tier.RangeStart, tier.RangeEnd, other.RangeStart, other.RangeEnd)
			}
		}
	}
	return nil
}

// TierFor returns the tier containing the length, or false when the
// length falls outside every range.
func (c *SectorConfig) TierFor(length float64) (Tier, bool) {
	for _, tier := range c.Tiers {
		if tier.Contains(length) {
			return tier, true
		}
	}
	return Tier{}, false
}

// String identifies the configuration in logs
func (c *SectorConfig) String() string {
	return fmt.Sprintf("%s/%s (%d tiers)", c.Sector, c.Category, len(c.Tiers))
}

// ConfigProvider supplies sector configurations. Retrieval failure
// means "no config available", which nils all costs rather than
// failing classification.
type ConfigProvider interface {
	// Config returns the configuration for a sector and category, or
	// nil when none is defined.
	Config(ctx context.Context, sector string, category types.DefectType) (*SectorConfig, error)
}
