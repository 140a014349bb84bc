// Package types - Batch result and warnings
package types

import "fmt"

// WarningKind identifies the category of a batch warning
type WarningKind string

const (
	// WarnSequenceGap flags item numbers skipped due to source deletion
	WarnSequenceGap WarningKind = "sequence_gap"

	// WarnUnpriced flags a row that matched no pricing tier
	WarnUnpriced WarningKind = "unpriced_row"

	// WarnNoPricingConfig flags a sector with no pricing configuration
	WarnNoPricingConfig WarningKind = "no_pricing_config"

	// WarnMalformedRecord flags a raw record degraded to neutral
	WarnMalformedRecord WarningKind = "malformed_record"
)

// Warning is a structured, non-fatal problem surfaced alongside the
// row set. Per-section problems never abort a batch.
type Warning struct {
	// Kind is the warning category
	Kind WarningKind `json:"kind"`

	// Message is the human-readable description
	Message string `json:"message"`

	// ItemRefs lists the affected item references, if any
	ItemRefs []string `json:"item_refs,omitempty"`

	// Skipped lists missing item numbers for sequence gap warnings
	Skipped []int `json:"skipped,omitempty"`
}

// String returns the warning as printed in CLI output
func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Kind, w.Message)
}

// BatchResult is the complete output of processing one upload: the
// full ordered row set plus every warning raised along the way. A
// completed batch never silently drops sections.
type BatchResult struct {
	// UploadID identifies the source upload
	UploadID string `json:"upload_id"`

	// Rows is the ordered list of logical report rows
	Rows []LogicalRow `json:"rows"`

	// Warnings collects gaps, unpriced rows and degraded records
	Warnings []Warning `json:"warnings,omitempty"`

	// RulesVersion records the rule table version used, for audit
	RulesVersion string `json:"rules_version"`
}
