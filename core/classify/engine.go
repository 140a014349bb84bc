// Package classify applies the rule table to a section's observations
// and produces per-category verdicts. Classification is a pure function
// of the section and the table; rerunning it on unchanged input yields
// identical verdicts.
package classify

import (
	"fmt"
	"sort"

	"sewerswarm/core/rules"
	"sewerswarm/core/types"
)

// proximityRange is the chainage distance in metres within which two
// structural defects are treated as one patch repair.
const proximityRange = 1.0

// Engine classifies sections against a fixed rule table
type Engine struct {
	table *rules.Table
}

// NewEngine creates a classification engine
func NewEngine(table *rules.Table) *Engine {
	return &Engine{table: table}
}

// RulesVersion returns the version of the underlying rule table
func (e *Engine) RulesVersion() string {
	return e.table.Version()
}

// Classify produces the verdicts for one physical section. A section
// with no gradeable observation yields the single synthetic
// OBSERVATION verdict. When both categories are present the service
// verdict is listed first, matching report row ordering.
func (e *Engine) Classify(section *types.PhysicalSection) []types.SectionVerdict {
	service := section.ObservationsIn(types.CategoryService)
	structural := section.ObservationsIn(types.CategoryStructural)

	if len(service) == 0 && len(structural) == 0 {
		return []types.SectionVerdict{{
			Category:       types.DefectObservation,
			Grade:          0,
			Recommendation: "no action required",
			Adoptable:      true,
		}}
	}

	var verdicts []types.SectionVerdict
	if len(service) > 0 {
		verdicts = append(verdicts, e.verdict(types.DefectService, service))
	}
	if len(structural) > 0 {
		verdicts = append(verdicts, e.verdict(types.DefectStructural, structural))
	}
	return verdicts
}

// verdict classifies one non-empty category partition.
func (e *Engine) verdict(category types.DefectType, partition []types.Observation) types.SectionVerdict {
	governing := governingObservation(partition)
	grade := governing.Grade
	action := e.table.Action(governing.Code, grade)

	v := types.SectionVerdict{
		Category:        category,
		Grade:           grade,
		DefectCode:      governing.Code,
		Adoptable:       grade <= types.AdoptionGradeLimit && !e.hasBannedCode(partition),
		DefectPositions: gradedPositions(partition),
	}

	if action == rules.ActionPatch {
		v.RepairCount = countRepairGroups(v.DefectPositions)
		v.Recommendation = patchRecommendation(v.RepairCount)
	} else {
		v.Recommendation = action.String()
	}
	return v
}

// gradedPositions collects the chainages of graded observations in
// ascending order.
func gradedPositions(partition []types.Observation) []float64 {
	var positions []float64
	for _, obs := range partition {
		if obs.Grade > 0 && obs.Position != nil {
			positions = append(positions, *obs.Position)
		}
	}
	sort.Float64s(positions)
	return positions
}

// governingObservation returns the observation carrying the maximum
// grade; ties go to the earliest chainage, then to input order.
func governingObservation(partition []types.Observation) types.Observation {
	governing := partition[0]
	for _, obs := range partition[1:] {
		if obs.Grade > governing.Grade {
			governing = obs
			continue
		}
		if obs.Grade == governing.Grade && obs.PositionOrder() < governing.PositionOrder() {
			governing = obs
		}
	}
	return governing
}

func (e *Engine) hasBannedCode(partition []types.Observation) bool {
	for _, obs := range partition {
		if e.table.IsBanned(obs.Code) {
			return true
		}
	}
	return false
}

// countRepairGroups counts discrete patch repairs by grouping graded
// defect chainages lying within proximityRange of each other. Defects
// without a chainage cannot be grouped; a partition with nothing
// locatable still needs one repair.
func countRepairGroups(positions []float64) int {
	if len(positions) == 0 {
		return 1
	}
	groups := 1
	last := positions[0]
	for _, pos := range positions[1:] {
		if pos-last > proximityRange {
			groups++
		}
		last = pos
	}
	return groups
}

// patchRecommendation renders the patch action text. The repair count
// leads the sentence so that count extraction from the text and the
// structured RepairCount field always agree.
func patchRecommendation(count int) string {
	if count == 1 {
		return "1 no. patch repair required"
	}
	return fmt.Sprintf("%d no. patch repairs required", count)
}
