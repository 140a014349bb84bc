// Package types - Logical report rows
package types

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// DefectType labels a logical report row
type DefectType string

const (
	// DefectStructural marks a row carrying a structural verdict
	DefectStructural DefectType = "STRUCTURAL"

	// DefectService marks a row carrying a service verdict
	DefectService DefectType = "SERVICE"

	// DefectObservation marks a row for a section with no gradeable
	// defect at all
	DefectObservation DefectType = "OBSERVATION"
)

// String returns the string representation
func (d DefectType) String() string {
	return string(d)
}

// LogicalRow is one report line emitted to downstream consumers. A
// physical section yields one row, or two when both a service and a
// structural verdict are present (the structural sibling takes the "a"
// suffix). All fields are write-once except Cost, which the pricing
// resolver fills in a later pass.
type LogicalRow struct {
	// ItemNo is the base item number inherited from the section
	ItemNo int `json:"item_no"`

	// LetterSuffix is a single lowercase letter, empty unless this row
	// is a split-off category from a multi-category section
	LetterSuffix string `json:"letter_suffix,omitempty"`

	// DefectType is STRUCTURAL, SERVICE or OBSERVATION
	DefectType DefectType `json:"defect_type"`

	// SeverityGrade is the verdict grade 0-5
	SeverityGrade int `json:"severity_grade"`

	// Recommendation is the verdict action text
	Recommendation string `json:"recommendation"`

	// Adoptable is the verdict adoptability flag
	Adoptable bool `json:"adoptable"`

	// RepairCount carries the structural patch count for pricing
	RepairCount int `json:"repair_count,omitempty"`

	// DefectPositions carries the verdict's graded chainages for the
	// pricing proximity-grouping fallback
	DefectPositions []float64 `json:"defect_positions,omitempty"`

	// DefectCode is the governing defect code for the row
	DefectCode string `json:"defect_code,omitempty"`

	// StartNode, EndNode, PipeSize, PipeMaterial, TotalLength describe
	// the underlying physical section for report output and pricing
	StartNode    string  `json:"start_node"`
	EndNode      string  `json:"end_node"`
	PipeSize     int     `json:"pipe_size"`
	PipeMaterial string  `json:"pipe_material"`
	TotalLength  float64 `json:"total_length"`

	// Remarks is the concatenated observation text, neutral codes
	// included
	Remarks string `json:"remarks,omitempty"`

	// Cost is nil until priced, and stays nil when no tier matches or
	// descriptive attributes are missing
	Cost *decimal.Decimal `json:"cost,omitempty"`

	// NeedsManualPricing is set when no tier or config covered the row
	NeedsManualPricing bool `json:"needs_manual_pricing,omitempty"`
}

// Ref returns the item reference as printed on the report, e.g. "7"
// or "7a".
func (r LogicalRow) Ref() string {
	return strconv.Itoa(r.ItemNo) + r.LetterSuffix
}
