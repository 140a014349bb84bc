// Package storage persists batch results to a report SQLite database.
// A reprocessed upload replaces its previous row set inside one
// transaction, so readers only ever see a complete, consistent batch.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"sewerswarm/core/types"
	"sewerswarm/internal/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS batches (
	upload_id     TEXT PRIMARY KEY,
	rules_version TEXT NOT NULL,
	created_at    TEXT NOT NULL,
	warnings      TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS report_rows (
	upload_id            TEXT NOT NULL,
	item_no              INTEGER NOT NULL,
	letter_suffix        TEXT NOT NULL DEFAULT '',
	defect_type          TEXT NOT NULL,
	severity_grade       INTEGER NOT NULL,
	recommendation       TEXT NOT NULL,
	adoptable            INTEGER NOT NULL,
	repair_count         INTEGER NOT NULL DEFAULT 0,
	defect_code          TEXT NOT NULL DEFAULT '',
	start_node           TEXT NOT NULL DEFAULT '',
	end_node             TEXT NOT NULL DEFAULT '',
	pipe_size            INTEGER NOT NULL DEFAULT 0,
	pipe_material        TEXT NOT NULL DEFAULT '',
	total_length         REAL NOT NULL DEFAULT 0,
	remarks              TEXT NOT NULL DEFAULT '',
	cost                 TEXT,
	needs_manual_pricing INTEGER NOT NULL DEFAULT 0,
	seq                  INTEGER NOT NULL,
	PRIMARY KEY (upload_id, item_no, letter_suffix)
);
`

// Store persists report rows keyed by (uploadID, itemNo, letterSuffix)
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the report database
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Storage("opening report database", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Storage("creating report schema", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveBatch stores a batch result, replacing any previous result for
// the same upload atomically. An empty upload ID gets a fresh one;
// the assigned ID is returned.
func (s *Store) SaveBatch(ctx context.Context, result *types.BatchResult) (string, error) {
	uploadID := result.UploadID
	if uploadID == "" {
		uploadID = uuid.NewString()
	}

	warnings, err := json.Marshal(result.Warnings)
	if err != nil {
		return "", errors.Storage("encoding warnings", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", errors.Storage("opening transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM report_rows WHERE upload_id = ?`, uploadID); err != nil {
		return "", errors.Storage("clearing previous rows", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO batches (upload_id, rules_version, created_at, warnings)
		VALUES (?, ?, ?, ?)`,
		uploadID, result.RulesVersion, time.Now().UTC().Format(time.RFC3339), string(warnings)); err != nil {
		return "", errors.Storage("saving batch record", err)
	}

	for seq, row := range result.Rows {
		var cost any
		if row.Cost != nil {
			cost = row.Cost.StringFixed(2)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO report_rows (
				upload_id, item_no, letter_suffix, defect_type, severity_grade,
				recommendation, adoptable, repair_count, defect_code,
				start_node, end_node, pipe_size, pipe_material, total_length,
				remarks, cost, needs_manual_pricing, seq)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uploadID, row.ItemNo, row.LetterSuffix, row.DefectType.String(), row.SeverityGrade,
			row.Recommendation, boolInt(row.Adoptable), row.RepairCount, row.DefectCode,
			row.StartNode, row.EndNode, row.PipeSize, row.PipeMaterial, row.TotalLength,
			row.Remarks, cost, boolInt(row.NeedsManualPricing), seq); err != nil {
			return "", errors.Storage("saving report row", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", errors.Storage("committing batch", err)
	}
	return uploadID, nil
}

// Rows loads a previously saved batch's rows in their report order.
func (s *Store) Rows(ctx context.Context, uploadID string) ([]types.LogicalRow, error) {
	dbRows, err := s.db.QueryContext(ctx, `
		SELECT item_no, letter_suffix, defect_type, severity_grade,
		       recommendation, adoptable, repair_count, defect_code,
		       start_node, end_node, pipe_size, pipe_material, total_length,
		       remarks, cost, needs_manual_pricing
		FROM report_rows
		WHERE upload_id = ?
		ORDER BY seq`, uploadID)
	if err != nil {
		return nil, errors.Storage("loading report rows", err)
	}
	defer dbRows.Close()

	var rows []types.LogicalRow
	for dbRows.Next() {
		var row types.LogicalRow
		var defectType string
		var adoptable, manual int
		var cost sql.NullString
		if err := dbRows.Scan(&row.ItemNo, &row.LetterSuffix, &defectType, &row.SeverityGrade,
			&row.Recommendation, &adoptable, &row.RepairCount, &row.DefectCode,
			&row.StartNode, &row.EndNode, &row.PipeSize, &row.PipeMaterial, &row.TotalLength,
			&row.Remarks, &cost, &manual); err != nil {
			return nil, errors.Storage("scanning report row", err)
		}
		row.DefectType = types.DefectType(defectType)
		row.Adoptable = adoptable != 0
		row.NeedsManualPricing = manual != 0
		if cost.Valid {
			c, err := decimal.NewFromString(cost.String)
			if err != nil {
				return nil, errors.Storage("decoding stored cost", err)
			}
			row.Cost = &c
		}
		rows = append(rows, row)
	}
	return rows, dbRows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
