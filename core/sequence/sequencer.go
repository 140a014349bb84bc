// Package sequence validates item numbering across a batch. Item
// numbers are authentic survey numbers: when the surveyor deleted a
// section at source, the resulting gap is reported, never compacted
// away. Silent renumbering is the failure mode this package exists to
// prevent.
package sequence

import (
	"fmt"

	"sewerswarm/core/types"
)

// AssignItemNos fills in missing item numbers from the authentic sort
// order. Sections that already carry an item number keep it.
func AssignItemNos(sections []types.PhysicalSection) {
	for i := range sections {
		if sections[i].ItemNo == 0 {
			sections[i].ItemNo = sections[i].SortOrder
		}
	}
}

// Check walks sections in survey order and reports every gap in the
// realized item number sequence as a non-fatal warning. The input
// ordering and numbering are left untouched.
func Check(sections []types.PhysicalSection) []types.Warning {
	if len(sections) < 2 {
		return nil
	}

	var skipped []int
	prev := sections[0].ItemNo
	for _, section := range sections[1:] {
		for missing := prev + 1; missing < section.ItemNo; missing++ {
			skipped = append(skipped, missing)
		}
		prev = section.ItemNo
	}

	if len(skipped) == 0 {
		return nil
	}
	return []types.Warning{{
		Kind:    types.WarnSequenceGap,
		Message: fmt.Sprintf("items skipped due to source deletion: %v", skipped),
		Skipped: skipped,
	}}
}
