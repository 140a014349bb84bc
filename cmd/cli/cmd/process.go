// Package cmd - process command
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sewerswarm/adapters/pricingcfg"
	"sewerswarm/adapters/storage"
	"sewerswarm/adapters/survey"
	"sewerswarm/core/engine"
	"sewerswarm/core/output"
	"sewerswarm/core/rules"
	"sewerswarm/internal/config"
	"sewerswarm/internal/logging"
)

var (
	processSector string
	processFormat string
	processSave   bool
	processUpload string
)

var processCmd = &cobra.Command{
	Use:   "process <survey.db3>",
	Short: "Classify and price one survey export",
	Long: `Process reads a WinCan SQLite survey export, classifies every
section, splits multi-category sections into lettered items, prices the
resulting rows and renders the report.

Any sequence gaps or unpriceable rows are reported as warnings; the
batch still completes.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVar(&processSector, "sector", "", "pricing sector (default from config)")
	processCmd.Flags().StringVar(&processFormat, "format", "", "output format: table or json (default from config)")
	processCmd.Flags().BoolVar(&processSave, "save", false, "persist the result to the report database")
	processCmd.Flags().StringVar(&processUpload, "upload-id", "", "upload id for persistence (new id when empty)")
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	ctx := cmd.Context()

	sector := processSector
	if sector == "" {
		sector = cfg.Pricing.DefaultSector
	}
	format := output.Format(processFormat)
	if processFormat == "" {
		format = output.Format(cfg.Output.DefaultFormat)
	}

	table := rules.Default()
	reader, err := survey.Open(args[0], survey.Config{
		SectionTable:     cfg.Survey.SectionTable,
		ObservationTable: cfg.Survey.ObservationTable,
	}, table)
	if err != nil {
		return err
	}
	defer reader.Close()

	sections, readWarnings, err := reader.Sections(ctx)
	if err != nil {
		return err
	}

	eng, err := engine.New(table, pricingcfg.NewProvider(cfg.Pricing.ConfigDir), engine.Config{
		Sector: sector,
	})
	if err != nil {
		return err
	}

	result, err := eng.Process(ctx, engine.Batch{
		UploadID: processUpload,
		Sections: sections,
	})
	if err != nil {
		return err
	}
	result.Warnings = append(readWarnings, result.Warnings...)

	if processSave {
		store, err := storage.Open(cfg.Storage.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()
		uploadID, err := store.SaveBatch(ctx, result)
		if err != nil {
			return err
		}
		logging.Info("batch saved", zap.String("upload", uploadID))
		fmt.Fprintf(os.Stderr, "saved as upload %s\n", uploadID)
	}

	return output.Render(os.Stdout, format, result, output.Options{
		ShowCosts:   cfg.Output.ShowCosts,
		ShowSummary: cfg.Output.ShowSummary,
		Currency:    currencySymbol(cfg.Pricing.Currency),
	})
}

func currencySymbol(code string) string {
	switch code {
	case "GBP":
		return "£"
	case "USD":
		return "$"
	case "EUR":
		return "€"
	default:
		return code + " "
	}
}
