// rancopilot is the offline CLI: one-shot RCA over exported files and
// rule catalog inspection.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "rancopilot",
	Short: "Root-cause analysis for LTE/private-RAN KPI degradations",
	Long: "rancopilot fuses PM counter exports with FM alarms, backhaul telemetry,\n" +
		"and CPE attach logs into a single root-cause assessment, offline.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
