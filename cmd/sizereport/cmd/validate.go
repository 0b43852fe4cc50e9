package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/sizereport/internal/tree"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dump...]",
	Short: "Validate configuration and tree dumps",
	Long: `Validate checks the configuration file and, when dump files are given,
verifies that each of them parses into a serialized-object tree.

Checks performed:
  - Configuration syntax and allowed values
  - Dump format detection and decoding
  - Every node has a type and an integer size

Example:
  sizereport validate --config sizereport.yaml page.yaml session.json`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	configFile := GetConfigFile()
	if configFile == "" {
		configFile = "(defaults)"
	}

	fmt.Fprintf(out, "=== Configuration Validation ===\n")
	fmt.Fprintf(out, "Config file: %s\n", configFile)
	fmt.Fprintf(out, "Input format: %s\n", cfg.Input.Format)
	fmt.Fprintf(out, "Walk: %s\n", cfg.Report.Walk)
	fmt.Fprintf(out, "Emit: %s\n\n", cfg.Report.Emit)

	hasErrors := false
	for _, path := range args {
		fmt.Fprintf(out, "--- Dump: %s ---\n", path)

		root, err := tree.Load(path, cfg.Input.Format, cfg.Input.Selector)
		if err != nil {
			fmt.Fprintf(out, "❌ %v\n\n", err)
			hasErrors = true
			continue
		}

		fmt.Fprintf(out, "Nodes: %d\n", root.Count())
		fmt.Fprintf(out, "Types: %d\n", root.TypeCount())
		fmt.Fprintf(out, "✅ Dump is valid\n\n")
	}

	if hasErrors {
		return fmt.Errorf("validation failed for one or more dumps")
	}

	fmt.Fprintln(out, "=== Validation Complete ===")
	return nil
}
