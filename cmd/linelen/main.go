package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gubarz/blockaudit/internal/config"
	"github.com/gubarz/blockaudit/internal/linelen"
	"github.com/gubarz/blockaudit/internal/logging"
)

var version = "0.1.0"

const usage = "Usage: linelen <filepath> [limit]"

var rootCmd = &cobra.Command{
	Use:   "linelen <filepath> [limit]",
	Short: "Find over-long lines inside markdown code blocks",
	Long: `Reports every line inside a fenced code block that is longer than
the limit (default 75 characters, config key line_limit).`,
	Args: cobra.MaximumNArgs(2),
	RunE: runLinelen,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().BoolP("verbose", "v", false, "Log progress to stderr")
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
}

func runLinelen(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), usage)
		return nil
	}

	path := args[0]
	limit := config.GetLineLimit()
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid limit %q: %w", args[1], err)
		}
		limit = n
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	log := logging.New(os.Stderr, verbose)
	log.Debug().Str("path", path).Int("limit", limit).Msg("checking line lengths")

	return linelen.Run(cmd.OutOrStdout(), path, limit)
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
