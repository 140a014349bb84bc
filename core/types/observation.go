// Package types defines the validated domain records that flow through
// the classification pipeline. Everything downstream of the normalizer
// operates on these types only.
package types

// Category classifies a defect code under the MSCC5 scheme
type Category string

const (
	// CategoryStructural covers defects affecting pipe integrity
	CategoryStructural Category = "STRUCTURAL"

	// CategoryService covers defects affecting flow or operation
	CategoryService Category = "SERVICE"

	// CategoryNeutral covers construction features and remarks that
	// carry no severity of their own
	CategoryNeutral Category = "NEUTRAL"
)

// String returns the string representation
func (c Category) String() string {
	return string(c)
}

// Observation is one coded defect or neutral remark found during an
// inspection. Created once during normalization, immutable afterward.
type Observation struct {
	// Code is the normalized MSCC5 defect code (upper case, trimmed)
	Code string `json:"code"`

	// Category is derived from the rule table at normalization time
	Category Category `json:"category"`

	// Grade is the MSCC5 severity 0-5; 0 means no grading applicable
	Grade int `json:"grade"`

	// Position is the chainage in metres from the section start,
	// nil when the source record carried no parseable distance
	Position *float64 `json:"position,omitempty"`

	// Percentage is an optional 0-100 value extracted from the remark
	// text (e.g. cross-sectional area loss)
	Percentage *int `json:"percentage,omitempty"`

	// Remark is the raw free text carried through for report output
	Remark string `json:"remark,omitempty"`
}

// PositionOrder returns the position used for tie-break ordering.
// Observations without a chainage sort after all located ones.
func (o Observation) PositionOrder() float64 {
	if o.Position == nil {
		return maxChainage
	}
	return *o.Position
}

// maxChainage is beyond any plausible section length in metres.
const maxChainage = 1 << 20
