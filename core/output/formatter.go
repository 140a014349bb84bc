// Package output renders batch results for humans and machines.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"

	"sewerswarm/core/types"
	"sewerswarm/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatTable is a human-readable CLI table
	FormatTable Format = "table"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Options control rendering
type Options struct {
	// ShowCosts includes the cost column
	ShowCosts bool

	// ShowSummary appends the adoptability summary footer
	ShowSummary bool

	// Currency is the symbol printed before costs
	Currency string
}

// Render writes a batch result in the requested format
func Render(w io.Writer, format Format, result *types.BatchResult, opts Options) error {
	switch format {
	case FormatTable:
		return renderTable(w, result, opts)
	case FormatJSON:
		return renderJSON(w, result)
	default:
		return errors.Newf(errors.TypeInput, "unknown output format: %s", format)
	}
}

func renderJSON(w io.Writer, result *types.BatchResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func renderTable(w io.Writer, result *types.BatchResult, opts Options) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := table.Row{"Item", "From", "To", "Size", "Material", "Length", "Type", "Grade", "Adoptable", "Recommendation"}
	if opts.ShowCosts {
		header = append(header, "Cost")
	}
	t.AppendHeader(header)

	for _, row := range result.Rows {
		line := table.Row{
			row.Ref(),
			row.StartNode,
			row.EndNode,
			sizeText(row.PipeSize),
			row.PipeMaterial,
			lengthText(row.TotalLength),
			row.DefectType.String(),
			row.SeverityGrade,
			boolText(row.Adoptable),
			row.Recommendation,
		}
		if opts.ShowCosts {
			line = append(line, costText(&row, opts.Currency))
		}
		t.AppendRow(line)
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Grade", Align: text.AlignRight},
		{Name: "Length", Align: text.AlignRight},
		{Name: "Cost", Align: text.AlignRight},
	})

	if opts.ShowSummary {
		t.AppendFooter(summaryFooter(result, opts))
	}
	t.Render()

	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	fmt.Fprintf(w, "rules version: %s\n", result.RulesVersion)
	return nil
}

// summaryFooter condenses the adoptability summary page of the
// original reports into a single footer row.
func summaryFooter(result *types.BatchResult, opts Options) table.Row {
	var structural, service, adoptable int
	for _, row := range result.Rows {
		switch row.DefectType {
		case types.DefectStructural:
			structural++
		case types.DefectService:
			service++
		}
		if row.Adoptable {
			adoptable++
		}
	}
	summary := fmt.Sprintf("%d structural / %d service / %d of %d adoptable",
		structural, service, adoptable, len(result.Rows))

	footer := table.Row{"", "", "", "", "", "", "", "", "", summary}
	if opts.ShowCosts {
		footer = append(footer, totalCostText(result, opts.Currency))
	}
	return footer
}

func totalCostText(result *types.BatchResult, currency string) string {
	total := decimal.Zero
	priced := false
	for _, row := range result.Rows {
		if row.Cost != nil {
			total = total.Add(*row.Cost)
			priced = true
		}
	}
	if !priced {
		return "-"
	}
	return currency + total.StringFixed(2)
}

func costText(row *types.LogicalRow, currency string) string {
	if row.Cost != nil {
		return currency + row.Cost.StringFixed(2)
	}
	if row.NeedsManualPricing {
		return "configure pricing"
	}
	return "-"
}

func sizeText(size int) string {
	if size <= 0 {
		return "-"
	}
	return fmt.Sprintf("%dmm", size)
}

func lengthText(length float64) string {
	if length <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1fm", length)
}

func boolText(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
