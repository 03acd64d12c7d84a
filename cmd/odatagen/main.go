// odatagen generates a typed Go client model from an OData v4 service's CSDL
// metadata: struct declarations for entity and complex types, enum
// declarations, per-binding operations interfaces, and an api-context type
// exposing the service's entity sets and singletons.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information - will be set at build time
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "odatagen",
		Short: "OData v4 client model generator",
		Long: `odatagen converts an OData service's CSDL metadata into Go source
declarations for a statically-typed client model.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprintf("error: %v", err))
		os.Exit(1)
	}
}
