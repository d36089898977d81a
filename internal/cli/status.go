package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show connectivity, session, and cache state",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	onlineStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	offlineStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	network := offlineStyle.Render("offline")
	if a.monitor.IsConnected() {
		network = onlineStyle.Render("online")
	}
	fmt.Printf("Network:  %s (%s)\n", network, a.cfg.API.BaseURL)

	if creds := a.sessions.Current(); creds != nil {
		who := creds.FullName
		if who == "" {
			who = creds.Email
		}
		fmt.Printf("Session:  %s as %s (%s)\n", a.sessions.State(), who, creds.Role)
	} else {
		fmt.Printf("Session:  %s\n", a.sessions.State())
	}

	stats, err := a.store.GetStats()
	if err != nil {
		return fmt.Errorf("read stats: %w", err)
	}

	fmt.Printf("Cache:    %d messages, %d quiz attempts (%.1f KB)\n",
		stats.ChatMessages, stats.QuizAttempts, float64(stats.CacheSizeBytes)/1024)

	pending := stats.PendingAttempts + stats.PendingMessages
	if pending > 0 {
		fmt.Printf("Pending:  %s\n",
			offlineStyle.Render(fmt.Sprintf("%d record(s) waiting for sync", pending)))
	} else {
		fmt.Println("Pending:  nothing to sync")
	}
	return nil
}
