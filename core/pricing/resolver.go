// Package pricing - Cost resolution
package pricing

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sewerswarm/core/types"
	"sewerswarm/internal/logging"
)

// Resolver prices logical rows against a sector's configurations.
// It exclusively owns the Cost field of a row; everything else is
// write-once upstream.
type Resolver struct {
	provider ConfigProvider
	sector   string
}

// NewResolver creates a resolver for one pricing sector
func NewResolver(provider ConfigProvider, sector string) *Resolver {
	return &Resolver{provider: provider, sector: sector}
}

// PriceRows fills in costs for a batch of rows in place and returns
// the warnings raised: one per category with no configuration, and one
// listing every row that matched no tier. OBSERVATION rows carry no
// repair and are never priced or flagged.
func (r *Resolver) PriceRows(ctx context.Context, rows []types.LogicalRow) []types.Warning {
	var warnings []types.Warning
	configs := map[types.DefectType]*SectorConfig{}

	for _, category := range []types.DefectType{types.DefectService, types.DefectStructural} {
		if !hasCategory(rows, category) {
			continue
		}
		cfg, err := r.provider.Config(ctx, r.sector, category)
		if err != nil {
			logging.Warn("pricing config unavailable",
				zap.String("sector", r.sector),
				zap.String("category", category.String()),
				zap.Error(err))
			cfg = nil
		}
		if cfg == nil {
			warnings = append(warnings, types.Warning{
				Kind:    types.WarnNoPricingConfig,
				Message: "no pricing configuration for sector " + r.sector + ", category " + category.String(),
			})
		}
		configs[category] = cfg
	}

	var unpriced []string
	for i := range rows {
		row := &rows[i]
		if row.DefectType == types.DefectObservation {
			continue
		}
		cfg := configs[row.DefectType]
		if cfg == nil || !r.priceRow(cfg, row) {
			row.NeedsManualPricing = true
			unpriced = append(unpriced, row.Ref())
		}
	}

	if len(unpriced) > 0 {
		warnings = append(warnings, types.Warning{
			Kind:     types.WarnUnpriced,
			Message:  "rows need manual pricing: " + strings.Join(unpriced, ", "),
			ItemRefs: unpriced,
		})
	}
	return warnings
}

// priceRow computes and assigns one row's cost. Returns false when the
// row cannot be priced from the configuration.
func (r *Resolver) priceRow(cfg *SectorConfig, row *types.LogicalRow) bool {
	// Patch-type structural repairs are priced per repair, not per
	// metre, whenever a unit cost is configured.
	if row.DefectType == types.DefectStructural && isPatchRepair(row.Recommendation) && cfg.PatchUnitCost.IsPositive() {
		count := resolveRepairCount(row)
		cost := cfg.PatchUnitCost.Mul(decimal.NewFromInt(int64(count))).Round(2)
		row.Cost = &cost
		return true
	}

	if row.PipeSize <= 0 || row.TotalLength <= 0 {
		return false
	}

	tier, ok := cfg.TierFor(row.TotalLength)
	if !ok {
		return false
	}

	quantity := row.TotalLength
	if cfg.MinQuantity > 0 && quantity < cfg.MinQuantity {
		quantity = cfg.MinQuantity
	}

	perUnitRate := tier.DayRate.Div(decimal.NewFromInt(int64(tier.RunsPerShift)))
	cost := perUnitRate.Mul(decimal.NewFromFloat(quantity)).Round(2)
	row.Cost = &cost
	return true
}

// resolveRepairCount determines how many patch repairs a row needs:
// the structured count when the classifier set one, then the count
// embedded in the recommendation text, then proximity grouping of the
// defect chainages. A patch row always needs at least one repair.
func resolveRepairCount(row *types.LogicalRow) int {
	if row.RepairCount > 0 {
		return row.RepairCount
	}
	if n := repairCountFromText(row.Recommendation); n > 0 {
		return n
	}
	if n := repairCountFromPositions(row.DefectPositions); n > 0 {
		return n
	}
	return 1
}

func isPatchRepair(recommendation string) bool {
	return strings.Contains(strings.ToLower(recommendation), "patch")
}

func hasCategory(rows []types.LogicalRow, category types.DefectType) bool {
	for _, row := range rows {
		if row.DefectType == category {
			return true
		}
	}
	return false
}
