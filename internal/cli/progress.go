package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show a child's learning progress and badges",
	Long: `Show a child's learning progress and badges.

Progress is a live dashboard read and needs connectivity; when offline
only the locally computed average quiz score is available (see
'tutorsync quiz attempts').`,
	Args: cobra.NoArgs,
	RunE: runProgress,
}

var progressChildID int64

func init() {
	progressCmd.Flags().Int64Var(&progressChildID, "child", 0, "child ID (defaults to the logged-in child)")
}

func runProgress(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	childID, err := a.currentChildID(progressChildID)
	if err != nil {
		return err
	}

	if !a.monitor.IsConnected() {
		return fmt.Errorf("you are offline: progress is fetched live from the backend")
	}

	report, err := a.client.Progress(ctx, childID)
	if err != nil {
		return err
	}

	headerStyle := lipgloss.NewStyle().Bold(true)
	fmt.Println(headerStyle.Render(fmt.Sprintf("Progress for %s", report.ChildUsername)))
	fmt.Printf("  Streak: %d day(s)\n", report.CurrentStreak)
	fmt.Printf("  Quizzes completed: %d (%d questions answered)\n",
		report.TotalQuizzesCompleted, report.TotalQuestionsAnswered)
	fmt.Printf("  Average score: %.1f\n", report.AverageScore)

	for _, subject := range report.SubjectProgress {
		fmt.Printf("  %s: %s, proficiency %d\n",
			subject.SubjectName, subject.CurrentLevel, subject.ProficiencyScore)
	}

	badges, err := a.client.Badges(ctx, childID)
	if err != nil {
		return err
	}
	if len(badges) > 0 {
		fmt.Println()
		fmt.Println(headerStyle.Render("Badges"))
		for _, badge := range badges {
			fmt.Printf("  %s (%d pts, earned %s)\n", badge.BadgeName, badge.Points, badge.EarnedAt)
		}
	}
	return nil
}
