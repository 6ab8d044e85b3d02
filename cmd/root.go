package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hfwin/handsfree/internal/logging"
	"github.com/hfwin/handsfree/internal/output"
	"github.com/hfwin/handsfree/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "handsfree",
	Short: "Drive Windows desktop applications from the command line",
	Long: `handsfree reads window element trees over UI Automation, resolves
selectors against them, synthesizes mouse and keyboard input, and records
and replays macros, so agents and scripts can drive desktop applications
without hardcoded pixel coordinates.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text, json")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Read the root persistent flags directly so subcommand-local
		// flags with the same names cannot shadow them.
		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		pretty, _ := rootCmd.PersistentFlags().GetBool("pretty")
		output.PrettyOutput = pretty

		level, _ := rootCmd.PersistentFlags().GetString("log-level")
		logFormat, _ := rootCmd.PersistentFlags().GetString("log-format")
		logger, err := logging.New(level, logFormat)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		return nil
	}
}
