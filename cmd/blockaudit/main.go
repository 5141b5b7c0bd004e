package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gubarz/blockaudit/internal/analyzer"
	"github.com/gubarz/blockaudit/internal/config"
	"github.com/gubarz/blockaudit/internal/logging"
	"github.com/gubarz/blockaudit/internal/output"
	"github.com/gubarz/blockaudit/internal/parser"
	"github.com/gubarz/blockaudit/internal/report"
	"github.com/gubarz/blockaudit/internal/ui"
)

var version = "0.1.0"

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the audit interactively",
	Long: `Opens an interactive browser over the audited code blocks.

Type to filter by heading, language or issue type. Ctrl+R toggles
between all flagged blocks and blocks that need refactoring.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

var rootCmd = &cobra.Command{
	Use:   "blockaudit",
	Short: "Audit code samples in a markdown document",
	Long: `Extracts every fenced code block from a markdown document together
with its heading path, runs heuristic checks on the python samples,
and prints a report grouped by section.`,
	Args: cobra.NoArgs,
	RunE: runAudit,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(browseCmd)

	rootCmd.PersistentFlags().StringP("document", "d", "", "Markdown document to audit")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log progress to stderr")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable coloured output")

	rootCmd.Flags().StringP("format", "f", "", "Report format: text, markdown, html, json, yaml, csv")
	rootCmd.Flags().StringP("output", "o", "", "Output mode: print, file, copy")
	rootCmd.Flags().String("out-file", "", "File written by --output file")

	browseCmd.Flags().BoolP("all", "a", false, "Include blocks without issues")
	browseCmd.Flags().BoolP("refactor", "r", false, "Start with only blocks that need refactoring")

	bindFlags()
}

// bindFlags exposes the flags as config keys
func bindFlags() {
	viper.BindPFlag("document", rootCmd.PersistentFlags().Lookup("document"))
	viper.BindPFlag("format", rootCmd.Flags().Lookup("format"))
	viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	viper.BindPFlag("out_file", rootCmd.Flags().Lookup("out-file"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
}

// newLogger builds the stderr logger for cmd
func newLogger(cmd *cobra.Command) zerolog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	log := logging.New(os.Stderr, verbose)
	if file := config.ConfigFile(); file != "" {
		log.Debug().Str("file", file).Msg("using config")
	}
	return log
}

// loadEntries extracts and analyzes the configured document
func loadEntries(log zerolog.Logger) (string, []report.Entry, error) {
	document := config.GetDocument()

	log.Debug().Str("document", document).Msg("extracting code blocks")
	blocks, err := parser.ExtractFile(document)
	if err != nil {
		return document, nil, err
	}
	log.Debug().Int("blocks", len(blocks)).Msg("extracted code blocks")

	a := analyzer.New(config.AnalyzerOptions()).WithLogger(log)
	entries := report.Analyze(blocks, a)
	return document, entries, nil
}

func runAudit(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)

	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		config.SetColor(false)
	}

	format, err := report.ParseFormat(config.GetFormat())
	if err != nil {
		return err
	}
	mode, err := output.ParseMode(config.GetOutput())
	if err != nil {
		return err
	}

	document, entries, err := loadEntries(log)
	if err != nil {
		return err
	}

	r := report.Build(entries)
	r.Document = document
	log.Debug().
		Int("blocks_with_issues", r.BlocksWithIssues).
		Int("issues", r.TotalIssues).
		Msg("analysis complete")

	hl := highlighter(format, mode)

	log.Debug().Str("format", string(format)).Str("output", string(mode)).Msg("writing report")
	return output.NewSink(mode, config.GetOutFile()).Deliver(func(w io.Writer) error {
		return report.CreateReport(w, format, r, hl)
	})
}

// highlighter colours the text report only when it goes to a terminal
func highlighter(format report.Format, mode output.Mode) report.Highlighter {
	if format != report.FormatText || mode != output.ModePrint || !config.GetColor() {
		return report.Plain
	}
	ui.RefreshStyles()
	return ui.Styles()
}

func runBrowse(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)

	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		config.SetColor(false)
	}

	_, entries, err := loadEntries(log)
	if err != nil {
		return err
	}

	if all, _ := cmd.Flags().GetBool("all"); !all {
		flagged := entries[:0]
		for _, entry := range entries {
			if len(entry.Issues) > 0 {
				flagged = append(flagged, entry)
			}
		}
		entries = flagged
	}

	refactorOnly, _ := cmd.Flags().GetBool("refactor")
	return ui.Browse(entries, refactorOnly)
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
