package survey

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"sewerswarm/core/rules"
	"sewerswarm/core/types"
)

// writeFixture builds a minimal WinCan-style export.
func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "survey.db3")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening fixture db: %v", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE SECTION (
			SortOrder INTEGER, StartNode TEXT, EndNode TEXT,
			PipeSize INTEGER, PipeMaterial TEXT,
			TotalLength REAL, SurveyedLength REAL)`,
		`CREATE TABLE SECOBS (
			SectionSortOrder INTEGER, Code TEXT,
			Distance TEXT, Grade TEXT, Remarks TEXT)`,
		`INSERT INTO SECTION VALUES (1, 'MH01', 'MH02', 150, 'VC', 30.0, 30.0)`,
		`INSERT INTO SECTION VALUES (2, 'MH02', 'MH03', 150, 'VC', 41.2, 38.0)`,
		`INSERT INTO SECOBS VALUES (1, 'wl', '5.2m', '2', 'standing water 30%')`,
		`INSERT INTO SECOBS VALUES (2, 'FC', '18.4m', '3', NULL)`,
		`INSERT INTO SECOBS VALUES (2, 'JN', '2.0m', NULL, 'house connection')`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("fixture statement failed: %v", err)
		}
	}
	return path
}

func openTestReader(t *testing.T) *Reader {
	t.Helper()
	reader, err := Open(writeFixture(t), DefaultConfig(), rules.Default())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { reader.Close() })
	return reader
}

func TestSectionsReadInSortOrder(t *testing.T) {
	reader := openTestReader(t)

	sections, warnings, err := reader.Sections(context.Background())
	if err != nil {
		t.Fatalf("Sections: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Unexpected warnings: %v", warnings)
	}
	if len(sections) != 2 {
		t.Fatalf("Expected 2 sections, got %d", len(sections))
	}
	if sections[0].SortOrder != 1 || sections[1].SortOrder != 2 {
		t.Errorf("Sections out of order: %d, %d", sections[0].SortOrder, sections[1].SortOrder)
	}
	if sections[0].StartNode != "MH01" || sections[0].PipeSize != 150 {
		t.Errorf("Unexpected section attributes: %+v", sections[0])
	}
}

func TestObservationsAttachedAndNormalized(t *testing.T) {
	reader := openTestReader(t)

	sections, _, err := reader.Sections(context.Background())
	if err != nil {
		t.Fatalf("Sections: %v", err)
	}

	first := sections[0].Observations
	if len(first) != 1 {
		t.Fatalf("Expected 1 observation on section 1, got %d", len(first))
	}
	obs := first[0]
	if obs.Code != "WL" || obs.Category != types.CategoryService || obs.Grade != 2 {
		t.Errorf("Unexpected normalized observation: %+v", obs)
	}
	if obs.Position == nil || *obs.Position != 5.2 {
		t.Errorf("Expected position 5.2, got %v", obs.Position)
	}
	if obs.Percentage == nil || *obs.Percentage != 30 {
		t.Errorf("Expected percentage 30, got %v", obs.Percentage)
	}

	second := sections[1].Observations
	if len(second) != 2 {
		t.Fatalf("Expected 2 observations on section 2, got %d", len(second))
	}
	// NULL grade degrades to 0, NULL remark to empty.
	if second[1].Code != "JN" || second[1].Grade != 0 {
		t.Errorf("Unexpected neutral observation: %+v", second[1])
	}
}
