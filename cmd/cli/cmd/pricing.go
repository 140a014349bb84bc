// Package cmd - pricing command
package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"sewerswarm/adapters/pricingcfg"
	"sewerswarm/core/types"
	"sewerswarm/internal/config"
)

var pricingCmd = &cobra.Command{
	Use:   "pricing",
	Short: "Inspect sector pricing configurations",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var pricingShowCmd = &cobra.Command{
	Use:   "show <sector>",
	Short: "Show a sector's pricing tiers",
	Args:  cobra.ExactArgs(1),
	RunE:  runPricingShow,
}

var pricingValidateCmd = &cobra.Command{
	Use:   "validate <sector>",
	Short: "Validate a sector's pricing configuration",
	Args:  cobra.ExactArgs(1),
	RunE:  runPricingValidate,
}

func init() {
	pricingCmd.AddCommand(pricingShowCmd)
	pricingCmd.AddCommand(pricingValidateCmd)
}

func runPricingShow(cmd *cobra.Command, args []string) error {
	provider := pricingcfg.NewProvider(config.Get().Pricing.ConfigDir)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Category", "Range (m)", "Day Rate", "Runs/Shift", "Min Qty", "Patch Unit"})

	found := false
	for _, category := range []types.DefectType{types.DefectService, types.DefectStructural} {
		cfg, err := provider.Config(cmd.Context(), args[0], category)
		if err != nil {
			return err
		}
		if cfg == nil {
			continue
		}
		found = true
		for _, tier := range cfg.Tiers {
			t.AppendRow(table.Row{
				category,
				fmt.Sprintf("%g-%g", tier.RangeStart, tier.RangeEnd),
				tier.DayRate.StringFixed(2),
				tier.RunsPerShift,
				cfg.MinQuantity,
				cfg.PatchUnitCost.StringFixed(2),
			})
		}
	}
	if !found {
		fmt.Printf("no pricing configuration for sector %q\n", args[0])
		return nil
	}
	t.Render()
	return nil
}

func runPricingValidate(cmd *cobra.Command, args []string) error {
	provider := pricingcfg.NewProvider(config.Get().Pricing.ConfigDir)

	// Loading a sector validates tier exclusivity as a side effect.
	for _, category := range []types.DefectType{types.DefectService, types.DefectStructural} {
		if _, err := provider.Config(cmd.Context(), args[0], category); err != nil {
			return err
		}
	}
	fmt.Printf("sector %q pricing configuration is valid\n", args[0])
	return nil
}
