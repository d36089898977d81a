package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// probeInterval is how often watch mode re-checks backend reachability.
const probeInterval = 30 * time.Second

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Submit locally queued work to the backend",
	Long: `Submit locally queued work to the backend.

Resubmits quiz attempts saved while offline, then reconciles cached
chat history. Safe to run repeatedly: already-synced records are
skipped and individual failures are retried on the next run.

With --watch the command stays running and syncs every time
connectivity returns.`,
	Args: cobra.NoArgs,
	RunE: runSyncCmd,
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete cached chat records past the retention window",
	Args:  cobra.NoArgs,
	RunE:  runCleanup,
}

var syncWatch bool

func init() {
	syncCmd.Flags().BoolVar(&syncWatch, "watch", false, "keep running and sync on every reconnect")
}

func runSyncCmd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if syncWatch {
		fmt.Println("Watching for connectivity; press Ctrl-C to stop.")
		go watchConnectivity(ctx, a.monitor, func() bool {
			return probeConnectivity(ctx, a.cfg.API.BaseURL)
		}, probeInterval)
		return a.syncer.Run(ctx)
	}

	if !a.monitor.IsConnected() {
		return fmt.Errorf("you are offline: queued work will sync once you reconnect")
	}

	before, err := a.store.GetStats()
	if err != nil {
		return fmt.Errorf("read stats: %w", err)
	}

	if err := a.syncer.SyncAll(ctx); err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	after, err := a.store.GetStats()
	if err != nil {
		return fmt.Errorf("read stats: %w", err)
	}

	synced := (before.PendingAttempts - after.PendingAttempts) + (before.PendingMessages - after.PendingMessages)
	remaining := after.PendingAttempts + after.PendingMessages
	fmt.Printf("Synced %d record(s)", synced)
	if remaining > 0 {
		fmt.Printf(", %d still pending", remaining)
	}
	fmt.Println(".")
	return nil
}

func runCleanup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.syncer.CleanupOldData(ctx); err != nil {
		return err
	}

	fmt.Printf("Deleted chat records older than %d days.\n", a.cfg.Sync.RetentionDays)
	return nil
}
