// Package main provides the semdiff CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"semdiff/internal/classify"
	"semdiff/internal/config"
	"semdiff/internal/corpus"
	"semdiff/internal/diff"
	"semdiff/internal/explain"
	"semdiff/internal/ignore"
	"semdiff/internal/render"
)

var (
	flagFormat    string
	flagSections  string
	flagExplain   bool
	flagLimit     int
	flagThreshold float64
	flagMeta      bool
	flagConfig    string
)

var rootCmd = &cobra.Command{
	Use:   "semdiff <left> <right>",
	Short: "Semantic-aware diff that understands code structure",
	Long: `semdiff extracts functions, classes, and top-level bindings from two
versions of a source tree and reconciles them into added, removed,
modified, moved, and renamed units with quantitative deltas.`,
	Args:          cobra.ExactArgs(2),
	RunE:          runDiff,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&flagFormat, "format", "text", "Output format (text or json)")
	flags.StringVar(&flagSections, "sections", "added,removed,modified,moved,renamed", "Sections to include")
	flags.BoolVar(&flagExplain, "explain", false, "Include natural language insights")
	flags.IntVar(&flagLimit, "limit", explain.DefaultLimit, "Max number of explanations")
	flags.Float64Var(&flagThreshold, "threshold", diff.DefaultThreshold, "Similarity threshold for rename inference")
	flags.BoolVar(&flagMeta, "meta", false, "Print aggregate metric summary")
	flags.StringVar(&flagConfig, "config", "", "Config file (default "+config.DefaultFile+" if present)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}

func runDiff(cmd *cobra.Command, args []string) error {
	if flagFormat != "text" && flagFormat != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", flagFormat)
	}

	cfgPath := flagConfig
	explicit := cfgPath != ""
	if !explicit {
		cfgPath = config.DefaultFile
	}
	cfg, err := config.Load(cfgPath, explicit)
	if err != nil {
		return err
	}

	threshold := flagThreshold
	if !cmd.Flags().Changed("threshold") && cfg.Threshold != nil {
		threshold = *cfg.Threshold
	}
	limit := flagLimit
	if !cmd.Flags().Changed("limit") && cfg.Limit != nil {
		limit = *cfg.Limit
	}

	collector := corpus.NewCollector(
		corpus.WithClassifier(classify.NewClassifier(cfg.Languages)),
		corpus.WithIgnore(ignore.NewMatcher(append(append([]string{}, ignore.Defaults...), cfg.Ignore...))),
	)

	left, err := collector.Build(args[0])
	if err != nil {
		return err
	}
	right, err := collector.Build(args[1])
	if err != nil {
		return err
	}

	report := diff.Diff(left, right, threshold)

	var explanations []string
	if flagExplain {
		explanations = explain.Texts(explain.Generate(report, limit))
	}

	if flagFormat == "json" {
		payload, err := render.JSON(report, explanations)
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		fmt.Println(string(payload))
		return nil
	}

	out := render.Text(report, render.NormalizeSections(flagSections), explanations)
	if flagMeta {
		out += "\n" + render.Meta(report.Meta)
	}
	fmt.Println(out)
	return nil
}
