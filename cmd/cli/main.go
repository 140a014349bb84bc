// Package main is the entry point for the sewerswarm CLI.
package main

import (
	"os"

	"sewerswarm/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
