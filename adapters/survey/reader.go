// Package survey reads WinCan-style SQLite survey exports and yields
// fully populated physical sections. All file-format knowledge stays
// here; the core only ever sees normalized records.
package survey

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"sewerswarm/core/normalize"
	"sewerswarm/core/rules"
	"sewerswarm/core/types"
	"sewerswarm/internal/errors"
	"sewerswarm/internal/logging"
)

// Config names the tables inside the survey database. WinCan exports
// vary between site contractors; the defaults cover the common layout.
type Config struct {
	// SectionTable holds one row per surveyed pipe run
	SectionTable string

	// ObservationTable holds one row per coded observation
	ObservationTable string
}

// DefaultConfig returns the common WinCan export table names
func DefaultConfig() Config {
	return Config{
		SectionTable:     "SECTION",
		ObservationTable: "SECOBS",
	}
}

// Reader reads sections from one survey database
type Reader struct {
	db     *sql.DB
	config Config
	table  *rules.Table
}

// Open opens a survey database
func Open(path string, config Config, table *rules.Table) (*Reader, error) {
	if config.SectionTable == "" || config.ObservationTable == "" {
		config = DefaultConfig()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Parsing("opening survey database", err)
	}
	return &Reader{db: db, config: config, table: table}, nil
}

// Close releases the database handle
func (r *Reader) Close() error {
	return r.db.Close()
}

// Sections returns every surveyed section in authentic sort order,
// observations attached and normalized. Malformed observation rows
// degrade to warnings; only a missing or unreadable table fails.
func (r *Reader) Sections(ctx context.Context) ([]types.PhysicalSection, []types.Warning, error) {
	sections, err := r.readSections(ctx)
	if err != nil {
		return nil, nil, err
	}

	observations, warnings, err := r.readObservations(ctx)
	if err != nil {
		return nil, nil, err
	}

	for i := range sections {
		raws := observations[sections[i].SortOrder]
		sections[i].Observations = normalize.Records(r.table, raws)
	}
	return sections, warnings, nil
}

func (r *Reader) readSections(ctx context.Context) ([]types.PhysicalSection, error) {
	query := fmt.Sprintf(`
		SELECT SortOrder, StartNode, EndNode,
		       COALESCE(PipeSize, 0), COALESCE(PipeMaterial, ''),
		       COALESCE(TotalLength, 0), COALESCE(SurveyedLength, 0)
		FROM %s
		ORDER BY SortOrder`, r.config.SectionTable)

	dbRows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Parsing("reading survey sections", err)
	}
	defer dbRows.Close()

	var sections []types.PhysicalSection
	for dbRows.Next() {
		var s types.PhysicalSection
		var start, end sql.NullString
		if err := dbRows.Scan(&s.SortOrder, &start, &end,
			&s.PipeSize, &s.PipeMaterial, &s.TotalLength, &s.SurveyedLength); err != nil {
			return nil, errors.Parsing("scanning survey section", err)
		}
		s.StartNode = start.String
		s.EndNode = end.String
		sections = append(sections, s)
	}
	if err := dbRows.Err(); err != nil {
		return nil, errors.Parsing("reading survey sections", err)
	}
	return sections, nil
}

// readObservations groups raw observation records by section sort
// order, preserving chainage order within each section.
func (r *Reader) readObservations(ctx context.Context) (map[int][]normalize.RawRecord, []types.Warning, error) {
	query := fmt.Sprintf(`
		SELECT SectionSortOrder, COALESCE(Code, ''),
		       COALESCE(Distance, ''), COALESCE(Grade, ''), COALESCE(Remarks, '')
		FROM %s
		ORDER BY SectionSortOrder, ROWID`, r.config.ObservationTable)

	dbRows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, errors.Parsing("reading survey observations", err)
	}
	defer dbRows.Close()

	grouped := make(map[int][]normalize.RawRecord)
	var warnings []types.Warning
	for dbRows.Next() {
		var sortOrder int
		var raw normalize.RawRecord
		if err := dbRows.Scan(&sortOrder, &raw.Code, &raw.DistanceText, &raw.GradeText, &raw.FreeText); err != nil {
			logging.Warn("skipping malformed observation row", zap.Error(err))
			warnings = append(warnings, types.Warning{
				Kind:    types.WarnMalformedRecord,
				Message: "observation row could not be read: " + err.Error(),
			})
			continue
		}
		grouped[sortOrder] = append(grouped[sortOrder], raw)
	}
	if err := dbRows.Err(); err != nil {
		return nil, nil, errors.Parsing("reading survey observations", err)
	}
	return grouped, warnings, nil
}
