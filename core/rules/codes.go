// Package rules - MSCC5 code data
package rules

import "sewerswarm/core/types"

// DefaultVersion identifies the shipped rule data set
const DefaultVersion = "MSCC5-2024.1"

// Default returns the shipped MSCC5 rule table.
func Default() *Table {
	return &Table{
		version: DefaultVersion,
		entries: buildEntries(defaultEntries),
	}
}

func buildEntries(list []Entry) map[string]Entry {
	m := make(map[string]Entry, len(list))
	for _, e := range list {
		m[e.Code] = e
	}
	return m
}

// defaultEntries is the MSCC5 code data. Banned codes are the
// fracture/broken/open-joint-large structural class plus active root
// ingress on the service side.
var defaultEntries = []Entry{
	// Structural
	{Code: "FC", Category: types.CategoryStructural, Description: "Fracture - circumferential", Banned: true,
		Tiers: []ActionTier{{MinGrade: 2, Action: ActionPatch}, {MinGrade: 4, Action: ActionLiner}}},
	{Code: "FL", Category: types.CategoryStructural, Description: "Fracture - longitudinal", Banned: true,
		Tiers: []ActionTier{{MinGrade: 2, Action: ActionPatch}, {MinGrade: 4, Action: ActionLiner}}},
	{Code: "B", Category: types.CategoryStructural, Description: "Broken", Banned: true,
		Tiers: []ActionTier{{MinGrade: 1, Action: ActionPatch}, {MinGrade: 3, Action: ActionLiner}}},
	{Code: "CC", Category: types.CategoryStructural, Description: "Crack - circumferential",
		Tiers: []ActionTier{{MinGrade: 3, Action: ActionPatch}, {MinGrade: 5, Action: ActionLiner}}},
	{Code: "CL", Category: types.CategoryStructural, Description: "Crack - longitudinal",
		Tiers: []ActionTier{{MinGrade: 3, Action: ActionPatch}, {MinGrade: 5, Action: ActionLiner}}},
	{Code: "CM", Category: types.CategoryStructural, Description: "Cracks - multiple",
		Tiers: []ActionTier{{MinGrade: 2, Action: ActionPatch}, {MinGrade: 4, Action: ActionLiner}}},
	{Code: "D", Category: types.CategoryStructural, Description: "Deformation",
		Tiers: []ActionTier{{MinGrade: 2, Action: ActionPatch}, {MinGrade: 4, Action: ActionLiner}}},
	{Code: "H", Category: types.CategoryStructural, Description: "Hole",
		Tiers: []ActionTier{{MinGrade: 1, Action: ActionPatch}, {MinGrade: 4, Action: ActionLiner}}},
	{Code: "JDL", Category: types.CategoryStructural, Description: "Joint displaced - large",
		Tiers: []ActionTier{{MinGrade: 2, Action: ActionPatch}, {MinGrade: 4, Action: ActionLiner}}},
	{Code: "JDM", Category: types.CategoryStructural, Description: "Joint displaced - medium",
		Tiers: []ActionTier{{MinGrade: 3, Action: ActionPatch}, {MinGrade: 5, Action: ActionLiner}}},
	{Code: "OJL", Category: types.CategoryStructural, Description: "Open joint - large", Banned: true,
		Tiers: []ActionTier{{MinGrade: 2, Action: ActionPatch}, {MinGrade: 4, Action: ActionLiner}}},
	{Code: "OJM", Category: types.CategoryStructural, Description: "Open joint - medium",
		Tiers: []ActionTier{{MinGrade: 3, Action: ActionPatch}, {MinGrade: 5, Action: ActionLiner}}},
	{Code: "LL", Category: types.CategoryStructural, Description: "Lining defect",
		Tiers: []ActionTier{{MinGrade: 3, Action: ActionPatch}, {MinGrade: 5, Action: ActionLiner}}},
	{Code: "SR", Category: types.CategoryStructural, Description: "Surface damage - roughness increased",
		Tiers: []ActionTier{{MinGrade: 3, Action: ActionPatch}, {MinGrade: 5, Action: ActionLiner}}},

	// Service
	{Code: "WL", Category: types.CategoryService, Description: "Water level",
		Tiers: []ActionTier{{MinGrade: 1, Action: ActionClean}}},
	{Code: "DER", Category: types.CategoryService, Description: "Deposits - coarse",
		Tiers: []ActionTier{{MinGrade: 1, Action: ActionClean}}},
	{Code: "DES", Category: types.CategoryService, Description: "Deposits - fine settled",
		Tiers: []ActionTier{{MinGrade: 1, Action: ActionClean}}},
	{Code: "DEG", Category: types.CategoryService, Description: "Deposits - grease",
		Tiers: []ActionTier{{MinGrade: 1, Action: ActionClean}}},
	{Code: "OB", Category: types.CategoryService, Description: "Obstruction",
		Tiers: []ActionTier{{MinGrade: 1, Action: ActionClean}}},
	{Code: "RF", Category: types.CategoryService, Description: "Roots - fine",
		Tiers: []ActionTier{{MinGrade: 1, Action: ActionClean}}},
	{Code: "RM", Category: types.CategoryService, Description: "Roots - mass", Banned: true,
		Tiers: []ActionTier{{MinGrade: 1, Action: ActionClean}}},
	{Code: "RT", Category: types.CategoryService, Description: "Roots - tap root", Banned: true,
		Tiers: []ActionTier{{MinGrade: 1, Action: ActionClean}}},
	{Code: "I", Category: types.CategoryService, Description: "Infiltration",
		Tiers: []ActionTier{{MinGrade: 2, Action: ActionClean}}},

	// Neutral construction features and remarks
	{Code: "JN", Category: types.CategoryNeutral, Description: "Junction"},
	{Code: "CN", Category: types.CategoryNeutral, Description: "Connection"},
	{Code: "MH", Category: types.CategoryNeutral, Description: "Manhole"},
	{Code: "MC", Category: types.CategoryNeutral, Description: "Material change"},
	{Code: "SC", Category: types.CategoryNeutral, Description: "Shape change"},
	{Code: "SA", Category: types.CategoryNeutral, Description: "Survey abandoned"},
	{Code: "GP", Category: types.CategoryNeutral, Description: "General photograph"},
}
