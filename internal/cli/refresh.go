package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/healthforge/gbdkit/internal/pipeline"
)

var refreshCron string

// refreshCmd represents the refresh command
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-run the prepare cycle, optionally on a schedule",
	Long: `Refresh runs one prepare cycle immediately. With --cron it keeps running
and repeats the cycle on the given schedule until interrupted, so long-lived
consumers always see a current CLEAN artifact. Rewriting the artifact changes
its content identity, which invalidates every memoized table automatically.

Example:
  gbdkit refresh
  gbdkit refresh --cron "0 3 * * *"`,
	Args: cobra.NoArgs,
	RunE: runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)

	refreshCmd.Flags().StringVar(&refreshCron, "cron", "", "cron schedule for repeated refreshes (empty = run once)")
}

func runRefresh(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	runOnce := func() {
		p := pipeline.NewPipeline(cfg)
		report, err := p.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Refresh failed: %v\n", err)
			return
		}
		fmt.Printf("Refreshed %s (%d rows, run %s)\n", report.CleanPath, report.TotalRows, report.RunID)
	}

	runOnce()
	if refreshCron == "" {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(refreshCron, runOnce); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", refreshCron, err)
	}
	c.Start()
	defer c.Stop()

	fmt.Fprintf(os.Stderr, "Refreshing on schedule %q (Ctrl-C to stop)\n", refreshCron)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}
