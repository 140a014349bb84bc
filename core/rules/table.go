// Package rules provides the versioned MSCC5 rule table: the static
// mapping from defect code to category, adoption ban and grade-driven
// action. The table is read-only for the duration of a batch.
package rules

import (
	"strings"

	"sewerswarm/core/types"
)

// Action is the canonical repair action for a code at a grade
type Action string

const (
	// ActionReinspect is the default for ungraded or low-grade defects
	// and for every unmapped code
	ActionReinspect Action = "reinspect"

	// ActionClean covers service defects treatable by jetting/desilting
	ActionClean Action = "clean"

	// ActionPatch covers localized structural repair
	ActionPatch Action = "patch"

	// ActionLiner covers full-length structural relining
	ActionLiner Action = "liner"
)

// String returns the string representation
func (a Action) String() string {
	return string(a)
}

// ActionTier maps a minimum grade to an action. Tiers are listed in
// ascending MinGrade order; the highest tier at or below the grade wins.
type ActionTier struct {
	MinGrade int
	Action   Action
}

// Entry is the rule table record for one defect code
type Entry struct {
	// Code is the canonical upper-case MSCC5 code
	Code string

	// Category is STRUCTURAL, SERVICE or NEUTRAL
	Category types.Category

	// Description is the human-readable defect name
	Description string

	// Banned marks codes that block adoption regardless of grade
	Banned bool

	// Tiers is the grade-to-action ladder, ascending by MinGrade
	Tiers []ActionTier
}

// Table is a versioned, immutable rule set
type Table struct {
	version string
	entries map[string]Entry
}

// Version returns the rule set version string for audit logging
func (t *Table) Version() string {
	return t.version
}

// Lookup returns the entry for a code, case-insensitively. Unmapped or
// empty codes return the generic neutral entry.
func (t *Table) Lookup(code string) Entry {
	key := strings.ToUpper(strings.TrimSpace(code))
	if entry, ok := t.entries[key]; ok {
		return entry
	}
	return Entry{
		Code:        key,
		Category:    types.CategoryNeutral,
		Description: "unclassified observation",
	}
}

// Category returns the defect category for a code
func (t *Table) Category(code string) types.Category {
	return t.Lookup(code).Category
}

// IsBanned reports whether a code is on the banned-for-adoption list
func (t *Table) IsBanned(code string) bool {
	return t.Lookup(code).Banned
}

// Action returns the canonical action for a code at a grade. Grade 0
// or absent always yields reinspect, whatever the code.
func (t *Table) Action(code string, grade int) Action {
	if grade <= 0 {
		return ActionReinspect
	}
	entry := t.Lookup(code)
	action := ActionReinspect
	for _, tier := range entry.Tiers {
		if grade >= tier.MinGrade {
			action = tier.Action
		}
	}
	return action
}

// Codes returns the mapped codes in no particular order
func (t *Table) Codes() []string {
	out := make([]string, 0, len(t.entries))
	for code := range t.entries {
		out = append(out, code)
	}
	return out
}
