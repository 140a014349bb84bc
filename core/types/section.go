// Package types - Physical section and verdict records
package types

// PhysicalSection is one surveyed pipe run between two nodes.
type PhysicalSection struct {
	// SortOrder is the authentic survey ordering; may have gaps where
	// the surveyor deleted sections at source
	SortOrder int `json:"sort_order"`

	// ItemNo is the externally visible base item number. It preserves
	// gaps left by deleted sections and is never compacted.
	ItemNo int `json:"item_no"`

	// StartNode and EndNode are the manhole references
	StartNode string `json:"start_node"`
	EndNode   string `json:"end_node"`

	// PipeSize is the nominal diameter in millimetres, 0 if unrecorded
	PipeSize int `json:"pipe_size"`

	// PipeMaterial is the recorded material code (e.g. "VC", "PVC")
	PipeMaterial string `json:"pipe_material"`

	// TotalLength and SurveyedLength are in metres; 0 means unrecorded
	TotalLength    float64 `json:"total_length"`
	SurveyedLength float64 `json:"surveyed_length"`

	// Observations in insertion order, which matches chainage order
	// when chainages are present
	Observations []Observation `json:"observations,omitempty"`
}

// ObservationsIn returns the observations of the given category in
// their original order.
func (s *PhysicalSection) ObservationsIn(cat Category) []Observation {
	var out []Observation
	for _, obs := range s.Observations {
		if obs.Category == cat {
			out = append(out, obs)
		}
	}
	return out
}

// SectionVerdict is the classification result for one defect category
// within a physical section. At most one verdict exists per category
// per section.
type SectionVerdict struct {
	// Category is STRUCTURAL or SERVICE, or OBSERVATION for the
	// synthetic no-defect verdict
	Category DefectType `json:"category"`

	// Grade is the maximum grade among the category's observations
	Grade int `json:"grade"`

	// DefectCode is the code of the observation that produced the
	// maximum grade (earliest chainage wins a tie)
	DefectCode string `json:"defect_code,omitempty"`

	// Recommendation is the action text derived from the rule table
	Recommendation string `json:"recommendation"`

	// Adoptable is true iff grade is at or below the adoption
	// threshold and no banned code is present in the category
	Adoptable bool `json:"adoptable"`

	// RepairCount is the number of discrete patch repairs for
	// structural patch verdicts, zero otherwise. The recommendation
	// text embeds the same number; pricing trusts this field first.
	RepairCount int `json:"repair_count,omitempty"`

	// DefectPositions lists the chainages of the graded observations
	// behind this verdict, ascending. Pricing uses them for its
	// proximity-grouping fallback.
	DefectPositions []float64 `json:"defect_positions,omitempty"`
}

// AdoptionGradeLimit is the highest grade a water authority will
// accept for adoption in either category.
const AdoptionGradeLimit = 2
