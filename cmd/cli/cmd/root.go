// Package cmd provides the CLI commands for sewerswarm.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sewerswarm/internal/config"
	"sewerswarm/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sewerswarm",
	Short: "Classify and price CCTV sewer survey reports",
	Long: `sewerswarm processes CCTV sewer-inspection survey exports.

It classifies per-section defect observations against the WRc MSCC5
standard, derives adoptability and repair recommendations, splits
multi-category sections into lettered report items, and computes
repair costs from sector pricing configurations.

Examples:
  sewerswarm process survey.db3
  sewerswarm process --sector highways --format json survey.db3
  sewerswarm rules codes`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sewerswarm.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(pricingCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("sewerswarm version 0.1.0")
	},
}
