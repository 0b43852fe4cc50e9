package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/sizereport/internal/analyze"
	"github.com/dbsmedya/sizereport/internal/config"
	"github.com/dbsmedya/sizereport/internal/logger"
	"github.com/dbsmedya/sizereport/internal/tree"
)

var (
	inputFormat string
	selector    string
	walk        string
	emit        string
	summary     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <dump>",
	Short: "Report bytes per type for a serialized-object tree dump",
	Long: `Analyze reads a serialized-object tree dump and prints the total number
of bytes written for each concrete type, largest first.

Every node contributes its own size to its type, so a type that appears
in many places of the object graph is reported once with the combined size.

When --emit log is used the report is written to the log at debug level
and skipped entirely unless the log level is debug.

Example:
  sizereport analyze page.yaml
  sizereport analyze session.json --selector pages.0.tree --summary`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&inputFormat, "format", "f", "",
		"Dump format (auto, yaml, json)")
	analyzeCmd.Flags().StringVarP(&selector, "selector", "s", "",
		"gjson path selecting the tree inside a json dump")
	analyzeCmd.Flags().StringVar(&walk, "walk", "",
		"Traversal (recursive, iterative)")
	analyzeCmd.Flags().StringVar(&emit, "emit", "",
		"Report destination (stdout, log)")
	analyzeCmd.Flags().BoolVar(&summary, "summary", false,
		"Print node, type and byte totals after the report")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	strategy, err := analyze.ParseWalk(cfg.Report.Walk)
	if err != nil {
		return err
	}

	path := args[0]
	log = log.WithInput(path)

	root, err := tree.Load(path, cfg.Input.Format, cfg.Input.Selector)
	if err != nil {
		return fmt.Errorf("failed to load dump: %w", err)
	}
	log = log.WithFields(map[string]interface{}{
		"walk": strategy.String(),
		"emit": cfg.Report.Emit,
	})
	log.Debugw("Loaded dump", "nodes", root.Count(), "types", root.TypeCount())

	out := cmd.OutOrStdout()

	var sink analyze.Sink = analyze.WriterSink{W: out}
	if cfg.Report.Emit == config.EmitLog {
		if !log.DebugEnabled() {
			log.Warn("Report is emitted to the log but log level is not debug; skipping")
		}
		sink = log
	}

	if err := analyze.NewTypeSizeReport(sink, analyze.WithWalk(strategy)).Process(root); err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	if cfg.Report.Summary {
		printSummary(out, root)
	}
	return nil
}

// printSummary prints a section with tree totals.
func printSummary(w io.Writer, root *tree.Node) {
	title := "Summary"
	fmt.Fprintln(w)
	fmt.Fprintf(w, "[%s]\n", color.Bold.Sprint(title))
	fmt.Fprintln(w, strings.Repeat("-", len(title)+2))
	fmt.Fprintf(w, "  Nodes:  %s\n", humanize.Comma(int64(root.Count())))
	fmt.Fprintf(w, "  Types:  %s\n", humanize.Comma(int64(root.TypeCount())))
	fmt.Fprintf(w, "  Depth:  %d levels\n", root.Depth())
	fmt.Fprintf(w, "  Total:  %s\n", color.Cyan.Sprint(formatBytes(root.TotalSize())))
}

// formatBytes renders a byte count both human readable and exact.
// Negative totals come from broken instrumentation and are shown as-is.
func formatBytes(n int64) string {
	if n < 0 {
		return humanize.Comma(n) + " bytes"
	}
	return fmt.Sprintf("%s (%s bytes)", humanize.IBytes(uint64(n)), humanize.Comma(n))
}
