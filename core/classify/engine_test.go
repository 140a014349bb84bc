package classify

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"sewerswarm/core/rules"
	"sewerswarm/core/types"
)

func position(p float64) *float64 {
	return &p
}

func TestSingleServiceObservation(t *testing.T) {
	engine := NewEngine(rules.Default())
	section := &types.PhysicalSection{
		ItemNo: 1,
		Observations: []types.Observation{
			{Code: "WL", Category: types.CategoryService, Grade: 2, Position: position(5.2)},
		},
	}

	verdicts := engine.Classify(section)
	if len(verdicts) != 1 {
		t.Fatalf("Expected 1 verdict, got %d", len(verdicts))
	}

	v := verdicts[0]
	if v.Category != types.DefectService {
		t.Errorf("Expected SERVICE verdict, got %s", v.Category)
	}
	if v.Grade != 2 {
		t.Errorf("Expected grade 2, got %d", v.Grade)
	}
	if !v.Adoptable {
		t.Error("Expected grade 2 service defect to be adoptable")
	}
	if v.Recommendation != "clean" {
		t.Errorf("Expected recommendation clean, got %q", v.Recommendation)
	}
}

func TestBothCategoriesYieldTwoVerdictsServiceFirst(t *testing.T) {
	engine := NewEngine(rules.Default())
	section := &types.PhysicalSection{
		ItemNo: 4,
		Observations: []types.Observation{
			{Code: "LL", Category: types.CategoryStructural, Grade: 3, Position: position(18.4)},
			{Code: "WL", Category: types.CategoryService, Grade: 2, Position: position(3.0)},
		},
	}

	verdicts := engine.Classify(section)
	if len(verdicts) != 2 {
		t.Fatalf("Expected 2 verdicts, got %d", len(verdicts))
	}

	if verdicts[0].Category != types.DefectService {
		t.Errorf("Expected service verdict first, got %s", verdicts[0].Category)
	}
	if !verdicts[0].Adoptable {
		t.Error("Expected grade 2 service verdict to be adoptable")
	}

	structural := verdicts[1]
	if structural.Category != types.DefectStructural {
		t.Errorf("Expected structural verdict second, got %s", structural.Category)
	}
	if structural.Grade != 3 {
		t.Errorf("Expected structural grade 3, got %d", structural.Grade)
	}
	if structural.Adoptable {
		t.Error("Grade 3 must never be adoptable")
	}
}

func TestEmptySectionYieldsSyntheticObservationVerdict(t *testing.T) {
	engine := NewEngine(rules.Default())
	verdicts := engine.Classify(&types.PhysicalSection{ItemNo: 7})

	if len(verdicts) != 1 {
		t.Fatalf("Expected 1 synthetic verdict, got %d", len(verdicts))
	}
	want := types.SectionVerdict{
		Category:       types.DefectObservation,
		Grade:          0,
		Recommendation: "no action required",
		Adoptable:      true,
	}
	if diff := cmp.Diff(want, verdicts[0]); diff != "" {
		t.Errorf("Synthetic verdict mismatch (-want +got):\n%s", diff)
	}
}

func TestNeutralOnlySectionYieldsSyntheticVerdict(t *testing.T) {
	engine := NewEngine(rules.Default())
	section := &types.PhysicalSection{
		ItemNo: 2,
		Observations: []types.Observation{
			{Code: "JN", Category: types.CategoryNeutral, Position: position(1.0)},
			{Code: "MC", Category: types.CategoryNeutral, Position: position(4.0)},
		},
	}

	verdicts := engine.Classify(section)
	if len(verdicts) != 1 || verdicts[0].Category != types.DefectObservation {
		t.Fatalf("Expected single OBSERVATION verdict, got %+v", verdicts)
	}
}

func TestMaxGradeTieBreaksOnEarliestPosition(t *testing.T) {
	engine := NewEngine(rules.Default())
	section := &types.PhysicalSection{
		ItemNo: 3,
		Observations: []types.Observation{
			{Code: "CC", Category: types.CategoryStructural, Grade: 3, Position: position(12.0)},
			{Code: "D", Category: types.CategoryStructural, Grade: 3, Position: position(4.0)},
		},
	}

	verdicts := engine.Classify(section)
	if len(verdicts) != 1 {
		t.Fatalf("Expected 1 verdict, got %d", len(verdicts))
	}
	if verdicts[0].DefectCode != "D" {
		t.Errorf("Expected earliest-position code D to govern, got %s", verdicts[0].DefectCode)
	}
}

func TestNilPositionSortsAfterLocatedObservations(t *testing.T) {
	engine := NewEngine(rules.Default())
	section := &types.PhysicalSection{
		ItemNo: 3,
		Observations: []types.Observation{
			{Code: "CC", Category: types.CategoryStructural, Grade: 3},
			{Code: "D", Category: types.CategoryStructural, Grade: 3, Position: position(22.0)},
		},
	}

	verdicts := engine.Classify(section)
	if verdicts[0].DefectCode != "D" {
		t.Errorf("Expected located observation to win the tie, got %s", verdicts[0].DefectCode)
	}
}

func TestBannedCodeBlocksAdoptionAtLowGrade(t *testing.T) {
	engine := NewEngine(rules.Default())
	section := &types.PhysicalSection{
		ItemNo: 5,
		Observations: []types.Observation{
			{Code: "CC", Category: types.CategoryStructural, Grade: 2, Position: position(3.0)},
			{Code: "FC", Category: types.CategoryStructural, Grade: 1, Position: position(9.0)},
		},
	}

	verdicts := engine.Classify(section)
	if verdicts[0].Adoptable {
		t.Error("Fracture code in partition must block adoption even at grade <= 2")
	}
}

func TestGradeAboveTwoNeverAdoptable(t *testing.T) {
	engine := NewEngine(rules.Default())
	for grade := 3; grade <= 5; grade++ {
		section := &types.PhysicalSection{
			Observations: []types.Observation{
				{Code: "DER", Category: types.CategoryService, Grade: grade, Position: position(1.0)},
			},
		}
		verdicts := engine.Classify(section)
		if verdicts[0].Adoptable {
			t.Errorf("Grade %d must never be adoptable", grade)
		}
	}
}

func TestPatchVerdictCountsProximityGroups(t *testing.T) {
	engine := NewEngine(rules.Default())
	// Three graded fractures: 5.0 and 5.8 share a patch, 12.0 is its own.
	section := &types.PhysicalSection{
		ItemNo: 6,
		Observations: []types.Observation{
			{Code: "FC", Category: types.CategoryStructural, Grade: 3, Position: position(5.0)},
			{Code: "FC", Category: types.CategoryStructural, Grade: 2, Position: position(5.8)},
			{Code: "FC", Category: types.CategoryStructural, Grade: 2, Position: position(12.0)},
		},
	}

	verdicts := engine.Classify(section)
	v := verdicts[0]
	if v.RepairCount != 2 {
		t.Errorf("Expected 2 repair groups, got %d", v.RepairCount)
	}
	if v.Recommendation != "2 no. patch repairs required" {
		t.Errorf("Unexpected patch recommendation: %q", v.Recommendation)
	}
}

func TestPatchVerdictSingularText(t *testing.T) {
	engine := NewEngine(rules.Default())
	section := &types.PhysicalSection{
		Observations: []types.Observation{
			{Code: "FC", Category: types.CategoryStructural, Grade: 3, Position: position(5.0)},
		},
	}

	verdicts := engine.Classify(section)
	if verdicts[0].Recommendation != "1 no. patch repair required" {
		t.Errorf("Unexpected singular patch recommendation: %q", verdicts[0].Recommendation)
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	engine := NewEngine(rules.Default())
	section := &types.PhysicalSection{
		ItemNo: 9,
		Observations: []types.Observation{
			{Code: "WL", Category: types.CategoryService, Grade: 2, Position: position(5.2)},
			{Code: "FC", Category: types.CategoryStructural, Grade: 4, Position: position(9.1)},
			{Code: "JN", Category: types.CategoryNeutral, Position: position(2.2)},
		},
	}

	first := engine.Classify(section)
	second := engine.Classify(section)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Classification not idempotent (-first +second):\n%s", diff)
	}
}
