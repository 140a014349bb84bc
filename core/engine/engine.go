// Package engine runs the per-upload batch pipeline: normalize,
// classify, split, sequence, price. Reprocessing is a pure function of
// the sections, the rule table and the pricing configuration; callers
// compute a full new result set and swap it in, never mutate in place.
package engine

import (
	"context"
	"runtime"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sewerswarm/core/classify"
	"sewerswarm/core/pricing"
	"sewerswarm/core/rules"
	"sewerswarm/core/sequence"
	"sewerswarm/core/split"
	"sewerswarm/core/types"
	"sewerswarm/internal/errors"
	"sewerswarm/internal/logging"
)

// Config configures the batch engine
type Config struct {
	// Sector selects the pricing configuration set
	Sector string

	// Workers bounds parallel section classification; 0 means one
	// worker per CPU
	Workers int
}

// Batch is one upload's worth of fully populated sections in survey
// order. Sections arrive complete; there is no streaming.
type Batch struct {
	// UploadID identifies the source upload
	UploadID string

	// Sections is ordered by authentic sort order
	Sections []types.PhysicalSection
}

// Engine processes upload batches. The rule table and pricing provider
// are read-only for the duration of a batch.
type Engine struct {
	table      *rules.Table
	classifier *classify.Engine
	provider   pricing.ConfigProvider
	config     Config
}

// New creates a batch engine. A missing rule table is an
// infrastructure failure, not a data-quality issue.
func New(table *rules.Table, provider pricing.ConfigProvider, config Config) (*Engine, error) {
	if table == nil {
		return nil, errors.Rules("rule table failed to load")
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	return &Engine{
		table:      table,
		classifier: classify.NewEngine(table),
		provider:   provider,
		config:     config,
	}, nil
}

// RulesVersion exposes the rule table version for audit logging
func (e *Engine) RulesVersion() string {
	return e.table.Version()
}

// Process runs one batch end to end and returns the full ordered row
// set plus every warning raised. Per-section problems degrade to
// warnings; only an empty batch or a broken collaborator aborts.
func (e *Engine) Process(ctx context.Context, batch Batch) (*types.BatchResult, error) {
	if len(batch.Sections) == 0 {
		return nil, errors.Input("batch contains no sections")
	}

	sections := make([]types.PhysicalSection, len(batch.Sections))
	copy(sections, batch.Sections)
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].SortOrder < sections[j].SortOrder
	})
	sequence.AssignItemNos(sections)

	// Sections are independent of each other: classify and split in
	// parallel, then join before sequencing, which needs the full
	// ordered set.
	perSection := make([][]types.LogicalRow, len(sections))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.Workers)
	for i := range sections {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			section := &sections[i]
			verdicts := e.classifier.Classify(section)
			perSection[i] = split.Rows(section, verdicts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Internal("batch classification interrupted", err)
	}

	var rows []types.LogicalRow
	for _, sectionRows := range perSection {
		rows = append(rows, sectionRows...)
	}

	warnings := sequence.Check(sections)

	if e.provider != nil {
		resolver := pricing.NewResolver(e.provider, e.config.Sector)
		warnings = append(warnings, resolver.PriceRows(ctx, rows)...)
	} else if hasRepairRows(rows) {
		warnings = append(warnings, types.Warning{
			Kind:    types.WarnNoPricingConfig,
			Message: "no pricing provider configured; all costs left unpriced",
		})
	}

	logging.Info("batch processed",
		zap.String("upload", batch.UploadID),
		zap.Int("sections", len(sections)),
		zap.Int("rows", len(rows)),
		zap.Int("warnings", len(warnings)),
		zap.String("rules_version", e.table.Version()))

	return &types.BatchResult{
		UploadID:     batch.UploadID,
		Rows:         rows,
		Warnings:     warnings,
		RulesVersion: e.table.Version(),
	}, nil
}

func hasRepairRows(rows []types.LogicalRow) bool {
	for _, row := range rows {
		if row.DefectType != types.DefectObservation {
			return true
		}
	}
	return false
}
