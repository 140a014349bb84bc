// Package cmd - rules command
package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"sewerswarm/core/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect the MSCC5 rule table",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var rulesVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the rule table version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(rules.Default().Version())
	},
}

var rulesCodesCmd = &cobra.Command{
	Use:   "codes",
	Short: "List the mapped defect codes",
	Run: func(cmd *cobra.Command, args []string) {
		ruleTable := rules.Default()
		codes := ruleTable.Codes()
		sort.Strings(codes)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Code", "Category", "Description", "Adoption Ban"})
		for _, code := range codes {
			entry := ruleTable.Lookup(code)
			ban := ""
			if entry.Banned {
				ban = "yes"
			}
			t.AppendRow(table.Row{entry.Code, entry.Category, entry.Description, ban})
		}
		t.Render()
	},
}

func init() {
	rulesCmd.AddCommand(rulesVersionCmd)
	rulesCmd.AddCommand(rulesCodesCmd)
}
