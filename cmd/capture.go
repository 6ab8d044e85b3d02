package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/hfwin/handsfree/internal/macro"
	"github.com/hfwin/handsfree/internal/output"
	"github.com/hfwin/handsfree/internal/platform"
	"github.com/hfwin/handsfree/internal/recorder"
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Record a macro from real interactions",
	Long: `Install global input hooks and record clicks and keystrokes as you
perform the task. Each click is resolved to the element under the
pointer and saved with a durable selector; typing bursts collapse
into single text steps. Press the stop key (default F9) to finish.

Examples:
  handsfree capture --out login.yaml
  handsfree capture --out fill-form.yaml --stop-key f10 --idle-flush 2s`,
	RunE: runCapture,
}

func init() {
	rootCmd.AddCommand(captureCmd)
	captureCmd.Flags().String("out", "", "File to write the recorded macro to (required)")
	captureCmd.Flags().String("stop-key", recorder.DefaultStopKey, "Key that stops the recording")
	captureCmd.Flags().Duration("idle-flush", recorder.DefaultIdleFlush, "Quiet period after which pending text is flushed")
	_ = captureCmd.MarkFlagRequired("out")
}

func runCapture(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	stopKey, _ := cmd.Flags().GetString("stop-key")
	idleFlush, _ := cmd.Flags().GetDuration("idle-flush")

	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	if provider.Hooks == nil {
		return fmt.Errorf("global input hooks not available on this platform")
	}
	if provider.PointReader == nil {
		return fmt.Errorf("hit testing not available on this platform")
	}

	rec := recorder.NewPassive(provider.Hooks, provider.PointReader, recorder.Config{
		StopKey:   stopKey,
		IdleFlush: idleFlush,
		Logger:    slog.Default(),
	})

	// Ctrl+C also ends the recording, keeping whatever was captured.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "recording; press %s to stop\n", rec.StopKey())
	start := time.Now()
	steps, err := rec.Record(ctx)
	if err != nil {
		return err
	}
	if len(steps) == 0 {
		return fmt.Errorf("nothing recorded after %s", elapsedSince(start))
	}

	if err := macro.Save(out, steps); err != nil {
		return err
	}
	return output.Print(RecordResult{
		OK:     true,
		Action: "capture",
		Path:   out,
		Steps:  len(steps),
	})
}
