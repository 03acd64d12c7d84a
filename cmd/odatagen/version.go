package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("odatagen %s\n", Version)
		fmt.Printf("  commit: %s\n", GitCommit)
		fmt.Printf("  go:     %s\n", runtime.Version())
	},
}
