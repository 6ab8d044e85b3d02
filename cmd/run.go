package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hfwin/handsfree/internal/browser"
	"github.com/hfwin/handsfree/internal/macro"
	"github.com/hfwin/handsfree/internal/output"
)

var runCmd = &cobra.Command{
	Use:   "run <macro.yaml>",
	Short: "Replay a recorded macro",
	Long: `Load a macro document and execute its steps in order. Each step
re-resolves its selector until it matches or the step's timeout
expires; the run stops at the first failing step and the report names
it. Browser steps lazily start a managed browser session.

Exits non-zero when any step fails, so macros chain cleanly in
scripts.

Examples:
  handsfree run login.yaml
  handsfree run fill-form.yaml --delay 250`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	addAmbiguityFlag(runCmd)
	runCmd.Flags().Int("delay", 0, "Extra milliseconds to wait before every step")
	runCmd.Flags().Bool("headless", false, "Run browser steps without a visible window")
}

func runRun(cmd *cobra.Command, args []string) error {
	steps, err := macro.Load(args[0])
	if err != nil {
		return err
	}

	delayMs, _ := cmd.Flags().GetInt("delay")
	if delayMs > 0 {
		for i := range steps {
			steps[i].DelayBefore += delayMs
		}
	}

	driver, _, err := newDriver(cmd)
	if err != nil {
		return err
	}
	headless, _ := cmd.Flags().GetBool("headless")
	bd := browser.NewDriver(cmd.Context(), browser.Config{
		Headless: headless,
		Logger:   slog.Default(),
	})
	defer bd.Close()

	eng := macro.NewEngine(driver, bd)
	eng.Logger = slog.Default()

	res, runErr := eng.Run(steps)
	if runErr != nil {
		// Print the report, then return the error for a non-zero exit.
		_ = output.Print(res)
		return runErr
	}
	return output.Print(res)
}
