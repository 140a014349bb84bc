// Package normalize converts raw survey observation records into typed
// observations. All regex-based text extraction lives here; nothing
// downstream parses free text again.
package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"sewerswarm/core/rules"
	"sewerswarm/core/types"
)

// RawRecord is one observation row as yielded by a survey reader,
// before any validation.
type RawRecord struct {
	// Code is the defect code as written in the source, any case
	Code string

	// DistanceText is the chainage text, e.g. "5.2m", possibly empty
	DistanceText string

	// GradeText is the severity text, e.g. "3", possibly empty
	GradeText string

	// FreeText is the surveyor's remark, e.g. "20% cross-sectional loss"
	FreeText string
}

var (
	positionPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*m\b`)
	percentPattern  = regexp.MustCompile(`(\d+)\s*%`)
)

// Record normalizes one raw record. It never fails: unknown codes
// degrade to NEUTRAL grade 0, unparseable distances to a nil position.
func Record(table *rules.Table, raw RawRecord) types.Observation {
	code := strings.ToUpper(strings.TrimSpace(raw.Code))

	obs := types.Observation{
		Code:     code,
		Category: table.Category(code),
		Grade:    parseGrade(raw.GradeText),
		Remark:   strings.TrimSpace(raw.FreeText),
	}
	if pos, ok := parsePosition(raw.DistanceText); ok {
		obs.Position = &pos
	}
	if pct, ok := parsePercentage(raw.FreeText); ok {
		obs.Percentage = &pct
	}
	return obs
}

// Records normalizes a slice of raw records, preserving order.
func Records(table *rules.Table, raws []RawRecord) []types.Observation {
	if len(raws) == 0 {
		return nil
	}
	out := make([]types.Observation, len(raws))
	for i, raw := range raws {
		out[i] = Record(table, raw)
	}
	return out
}

// parseGrade reads an integer grade and clamps it to the MSCC5 0-5
// scale. Anything unparseable means "no grading applicable".
func parseGrade(text string) int {
	grade, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || grade < 0 {
		return 0
	}
	if grade > 5 {
		return 5
	}
	return grade
}

// parsePosition extracts a metres distance like "5.2m". Parse failure
// is not an error; the position is simply unknown.
func parsePosition(text string) (float64, bool) {
	m := positionPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	pos, err := strconv.ParseFloat(m[1], 64)
	if err != nil || pos < 0 {
		return 0, false
	}
	return pos, true
}

// parsePercentage extracts the first percentage in the remark text.
// When a remark contains several, the first one wins; the ambiguity is
// documented rather than resolved.
func parsePercentage(text string) (int, bool) {
	m := percentPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	pct, err := strconv.Atoi(m[1])
	if err != nil || pct < 0 || pct > 100 {
		return 0, false
	}
	return pct, true
}
