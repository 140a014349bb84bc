package split

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"sewerswarm/core/classify"
	"sewerswarm/core/rules"
	"sewerswarm/core/types"
)

func position(p float64) *float64 {
	return &p
}

func classified(t *testing.T, section *types.PhysicalSection) []types.SectionVerdict {
	t.Helper()
	return classify.NewEngine(rules.Default()).Classify(section)
}

func TestSingleVerdictYieldsOneUnsuffixedRow(t *testing.T) {
	section := &types.PhysicalSection{
		ItemNo:    3,
		StartNode: "MH01",
		EndNode:   "MH02",
		Observations: []types.Observation{
			{Code: "WL", Category: types.CategoryService, Grade: 2, Position: position(5.2)},
		},
	}

	rows := Rows(section, classified(t, section))
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.LetterSuffix != "" {
		t.Errorf("Expected no letter suffix, got %q", row.LetterSuffix)
	}
	if row.DefectType != types.DefectService {
		t.Errorf("Expected SERVICE row, got %s", row.DefectType)
	}
	if row.Ref() != "3" {
		t.Errorf("Expected ref 3, got %s", row.Ref())
	}
}

func TestBothCategoriesSplitIntoBaseAndLetteredRow(t *testing.T) {
	section := &types.PhysicalSection{
		ItemNo: 4,
		Observations: []types.Observation{
			{Code: "LL", Category: types.CategoryStructural, Grade: 3, Position: position(18.4)},
			{Code: "WL", Category: types.CategoryService, Grade: 2, Position: position(3.0)},
		},
	}

	rows := Rows(section, classified(t, section))
	if len(rows) != 2 {
		t.Fatalf("Expected exactly 2 rows for a both-category section, got %d", len(rows))
	}

	service := rows[0]
	if service.DefectType != types.DefectService || service.LetterSuffix != "" {
		t.Errorf("Expected unsuffixed SERVICE row first, got %s %q", service.DefectType, service.LetterSuffix)
	}
	if service.Ref() != "4" {
		t.Errorf("Expected service ref 4, got %s", service.Ref())
	}
	if !service.Adoptable || service.SeverityGrade != 2 {
		t.Errorf("Unexpected service row: grade %d adoptable %v", service.SeverityGrade, service.Adoptable)
	}

	structural := rows[1]
	if structural.DefectType != types.DefectStructural || structural.LetterSuffix != "a" {
		t.Errorf("Expected lettered STRUCTURAL row second, got %s %q", structural.DefectType, structural.LetterSuffix)
	}
	if structural.Ref() != "4a" {
		t.Errorf("Expected structural ref 4a, got %s", structural.Ref())
	}
	if structural.Adoptable || structural.SeverityGrade != 3 {
		t.Errorf("Unexpected structural row: grade %d adoptable %v", structural.SeverityGrade, structural.Adoptable)
	}
}

func TestEmptySectionYieldsObservationRow(t *testing.T) {
	section := &types.PhysicalSection{ItemNo: 7}

	rows := Rows(section, classified(t, section))
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.DefectType != types.DefectObservation {
		t.Errorf("Expected OBSERVATION row, got %s", row.DefectType)
	}
	if row.SeverityGrade != 0 || !row.Adoptable {
		t.Errorf("Unexpected observation row: grade %d adoptable %v", row.SeverityGrade, row.Adoptable)
	}
	if row.Recommendation != "no action required" {
		t.Errorf("Expected no action required, got %q", row.Recommendation)
	}
	if row.Remarks != "no defect found" {
		t.Errorf("Expected no defect found remark, got %q", row.Remarks)
	}
}

func TestNoVerdictsAtAllStillYieldsObservationRow(t *testing.T) {
	section := &types.PhysicalSection{ItemNo: 8}

	rows := Rows(section, nil)
	if len(rows) != 1 || rows[0].DefectType != types.DefectObservation {
		t.Fatalf("Expected single OBSERVATION row, got %+v", rows)
	}
}

func TestNeutralCodesKeptInRemarks(t *testing.T) {
	section := &types.PhysicalSection{
		ItemNo: 2,
		Observations: []types.Observation{
			{Code: "JN", Category: types.CategoryNeutral, Position: position(1.0)},
			{Code: "WL", Category: types.CategoryService, Grade: 1, Position: position(6.0), Remark: "standing water"},
		},
	}

	rows := Rows(section, classified(t, section))
	want := "JN at 1.0m; WL at 6.0m (standing water)"
	if rows[0].Remarks != want {
		t.Errorf("Expected remarks %q, got %q", want, rows[0].Remarks)
	}
}

func TestSplitterIsIdempotent(t *testing.T) {
	section := &types.PhysicalSection{
		ItemNo:      11,
		StartNode:   "MH10",
		EndNode:     "MH11",
		PipeSize:    150,
		TotalLength: 41.2,
		Observations: []types.Observation{
			{Code: "DER", Category: types.CategoryService, Grade: 3, Position: position(2.1)},
			{Code: "FC", Category: types.CategoryStructural, Grade: 4, Position: position(30.0)},
		},
	}
	verdicts := classified(t, section)

	first := Rows(section, verdicts)
	second := Rows(section, verdicts)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Splitter not idempotent (-first +second):\n%s", diff)
	}

	// Re-classifying from scratch must also reproduce the same rows.
	third := Rows(section, classified(t, section))
	if diff := cmp.Diff(first, third); diff != "" {
		t.Errorf("Reprocessing produced different rows (-first +third):\n%s", diff)
	}
}
