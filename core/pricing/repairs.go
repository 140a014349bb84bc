// Package pricing - Repair count resolution
package pricing

import (
	"regexp"
	"strconv"
	"strings"
)

// repairProximity is the chainage distance in metres within which two
// defects share one patch repair.
const repairProximity = 1.0

var integerPattern = regexp.MustCompile(`\d+`)

// repairCountFromText extracts the first integer preceding "repair" or
// "patch" in a recommendation. Returns 0 when the text carries no such
// count.
func repairCountFromText(text string) int {
	lower := strings.ToLower(text)

	keyword := -1
	for _, word := range []string{"repair", "patch"} {
		if idx := strings.Index(lower, word); idx >= 0 && (keyword < 0 || idx < keyword) {
			keyword = idx
		}
	}
	if keyword < 0 {
		return 0
	}

	for _, loc := range integerPattern.FindAllStringIndex(lower, -1) {
		if loc[0] >= keyword {
			break
		}
		n, err := strconv.Atoi(lower[loc[0]:loc[1]])
		if err == nil && n > 0 {
			return n
		}
	}
	return 0
}

// repairCountFromPositions groups ascending chainages within
// repairProximity of each other and counts the groups. This is the
// fallback when the recommendation text carries no count; both methods
// produce identical results on well-formed input.
func repairCountFromPositions(positions []float64) int {
	if len(positions) == 0 {
		return 0
	}
	groups := 1
	last := positions[0]
	for _, pos := range positions[1:] {
		if pos-last > repairProximity {
			groups++
		}
		last = pos
	}
	return groups
}
