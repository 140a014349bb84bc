// Package split turns a classified physical section into its logical
// report rows. A section with both a service and a structural verdict
// becomes two rows: the service row keeps the bare item number and the
// structural sibling takes the "a" suffix, in that output order. The
// convention is deliberate and not severity-based.
package split

import (
	"fmt"
	"strings"

	"sewerswarm/core/types"
)

// Rows emits the logical rows for one section. The function is pure
// and idempotent: the same section and verdicts always produce
// byte-identical rows, which makes reprocessing safe.
func Rows(section *types.PhysicalSection, verdicts []types.SectionVerdict) []types.LogicalRow {
	remarks := buildRemarks(section.Observations)

	var service, structural *types.SectionVerdict
	for i := range verdicts {
		switch verdicts[i].Category {
		case types.DefectService:
			service = &verdicts[i]
		case types.DefectStructural:
			structural = &verdicts[i]
		}
	}

	// No gradeable defect in either category: one OBSERVATION row.
	if service == nil && structural == nil {
		v := syntheticVerdict(verdicts)
		return []types.LogicalRow{row(section, v, "", remarks)}
	}

	if service != nil && structural != nil {
		return []types.LogicalRow{
			row(section, *service, "", remarks),
			row(section, *structural, "a", remarks),
		}
	}

	if service != nil {
		return []types.LogicalRow{row(section, *service, "", remarks)}
	}
	return []types.LogicalRow{row(section, *structural, "", remarks)}
}

// syntheticVerdict returns the classifier's OBSERVATION verdict when
// present, or an equivalent one for a section handed over with no
// verdicts at all.
func syntheticVerdict(verdicts []types.SectionVerdict) types.SectionVerdict {
	for _, v := range verdicts {
		if v.Category == types.DefectObservation {
			return v
		}
	}
	return types.SectionVerdict{
		Category:       types.DefectObservation,
		Grade:          0,
		Recommendation: "no action required",
		Adoptable:      true,
	}
}

func row(section *types.PhysicalSection, v types.SectionVerdict, suffix, remarks string) types.LogicalRow {
	return types.LogicalRow{
		ItemNo:          section.ItemNo,
		LetterSuffix:    suffix,
		DefectType:      v.Category,
		SeverityGrade:   v.Grade,
		Recommendation:  v.Recommendation,
		Adoptable:       v.Adoptable,
		RepairCount:     v.RepairCount,
		DefectCode:      v.DefectCode,
		DefectPositions: v.DefectPositions,
		StartNode:       section.StartNode,
		EndNode:         section.EndNode,
		PipeSize:        section.PipeSize,
		PipeMaterial:    section.PipeMaterial,
		TotalLength:     section.TotalLength,
		Remarks:         remarks,
	}
}

// buildRemarks renders every observation, neutral codes included, in
// insertion order. The verdicts ignore neutral codes but the report
// text keeps them.
func buildRemarks(observations []types.Observation) string {
	if len(observations) == 0 {
		return "no defect found"
	}
	parts := make([]string, 0, len(observations))
	for _, obs := range observations {
		part := obs.Code
		if obs.Position != nil {
			part = fmt.Sprintf("%s at %.1fm", part, *obs.Position)
		}
		if obs.Remark != "" {
			part = part + " (" + obs.Remark + ")"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "; ")
}
