// Package cli provides the command-line interface for tutorsync.
package cli

import (
	"context"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/thinkfirst/tutorsync/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "tutorsync",
	Short: "Offline-tolerant sync client for ThinkFirst tutoring",
	Long: `Offline-tolerant sync client for ThinkFirst tutoring.

Caches chat history and quiz attempts locally, queues quiz submissions
while offline, and reconciles them with the backend once connectivity
returns. Credentials are kept on device so a child can keep working
through network gaps.`,
	SilenceUsage: true,
}

var forceOffline bool

func init() {
	rootCmd.PersistentFlags().BoolVar(&forceOffline, "offline", false, "treat the network as unreachable")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(childLoginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(progressCmd)
}

// Execute runs the CLI with fang enhancements.
func Execute(ctx context.Context) error {
	return fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version.Short()),
		fang.WithCommit(version.Commit),
	)
}
