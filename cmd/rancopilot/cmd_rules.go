package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/milewire/RAN-copilot/internal/rules"
)

var rulesFlags struct {
	rulesPath string
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective rule catalog as YAML",
	Long: `Print the rule catalog the analyzers use, with any overlay applied.
Useful for auditing thresholds and severity synonyms before a run.`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().StringVar(&rulesFlags.rulesPath, "rules", "", "YAML rules overlay")
}

func runRules(cmd *cobra.Command, args []string) error {
	catalog := rules.Default()
	if rulesFlags.rulesPath != "" {
		loaded, err := rules.Load(rulesFlags.rulesPath)
		if err != nil {
			return err
		}
		catalog = loaded
	}

	out, err := yaml.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("encoding rule catalog: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}
