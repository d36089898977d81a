package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/thinkfirst/tutorsync/internal/models"
	"github.com/thinkfirst/tutorsync/internal/repository"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take quizzes and review attempts",
}

var quizShowCmd = &cobra.Command{
	Use:   "show <quiz-id>",
	Short: "Fetch and display a quiz",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuizShow,
}

var quizSubmitCmd = &cobra.Command{
	Use:   "submit <quiz-id>",
	Short: "Submit quiz answers",
	Long: `Submit quiz answers.

Answers are given as question=answer pairs. When offline the attempt is
saved locally and submitted automatically on the next sync; the child
sees an encouraging message either way.

Examples:
  tutorsync quiz submit 42 -a 1=A -a 2=C -a 3=B
  tutorsync quiz submit 42 -a 1=A --time-limit 5m`,
	Args: cobra.ExactArgs(1),
	RunE: runQuizSubmit,
}

var quizAttemptsCmd = &cobra.Command{
	Use:   "attempts",
	Short: "List locally stored quiz attempts",
	Args:  cobra.NoArgs,
	RunE:  runQuizAttempts,
}

var (
	quizChildID   int64
	quizAnswers   []string
	quizTimeSpent int
	quizTimeLimit time.Duration
)

func init() {
	quizCmd.PersistentFlags().Int64Var(&quizChildID, "child", 0, "child ID (defaults to the logged-in child)")
	quizSubmitCmd.Flags().StringArrayVarP(&quizAnswers, "answer", "a", nil, "answer as question=value (repeatable)")
	quizSubmitCmd.Flags().IntVar(&quizTimeSpent, "time-spent", 0, "seconds spent, reported to the backend")
	quizSubmitCmd.Flags().DurationVar(&quizTimeLimit, "time-limit", 0, "auto-submit deadline (e.g. 5m)")
	_ = quizSubmitCmd.MarkFlagRequired("answer")

	quizCmd.AddCommand(quizShowCmd)
	quizCmd.AddCommand(quizSubmitCmd)
	quizCmd.AddCommand(quizAttemptsCmd)
}

func runQuizShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	quizID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid quiz ID: %q", args[0])
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	quiz, err := a.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return err
	}

	titleStyle := lipgloss.NewStyle().Bold(true)
	fmt.Printf("%s (%s, %d questions", titleStyle.Render(quiz.Title), quiz.Difficulty, len(quiz.Questions))
	if quiz.TimeLimit != nil {
		fmt.Printf(", %ds limit", *quiz.TimeLimit)
	}
	fmt.Println(")")
	fmt.Println()

	for i, q := range quiz.Questions {
		fmt.Printf("%d. %s\n", i+1, q.QuestionText)
		for _, opt := range q.Options {
			fmt.Printf("     %s\n", opt)
		}
	}

	fmt.Printf("\nSubmit with: tutorsync quiz submit %d -a <question>=<answer> ...\n", quiz.ID)
	return nil
}

func runQuizSubmit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	quizID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid quiz ID: %q", args[0])
	}

	answers, err := parseAnswers(quizAnswers)
	if err != nil {
		return err
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	childID, err := a.currentChildID(quizChildID)
	if err != nil {
		return err
	}

	var timeSpent *int
	if quizTimeSpent > 0 {
		timeSpent = &quizTimeSpent
	}

	submit := func() (*models.QuizResult, error) {
		return a.quizzes.SubmitQuiz(ctx, quizID, childID, answers, timeSpent)
	}

	var result *models.QuizResult
	if quizTimeLimit > 0 {
		result, err = submitWithDeadline(ctx, quizTimeLimit, submit)
	} else {
		result, err = submit()
	}
	if err != nil {
		return err
	}

	printQuizResult(result)
	return nil
}

// submitWithDeadline guards a timed submission: the timer and the
// manual path share a SubmitGuard so expiry cannot double-submit, and
// whichever path starts first cancels the other.
func submitWithDeadline(ctx context.Context, limit time.Duration, submit func() (*models.QuizResult, error)) (*models.QuizResult, error) {
	var (
		guard  repository.SubmitGuard
		result *models.QuizResult
		err    error
	)

	done := make(chan struct{})
	fire := func() {
		if guard.Do(func() {
			result, err = submit()
			close(done)
		}) {
			return
		}
		// Lost the race; the winning path closes done.
	}

	timer := time.AfterFunc(limit, func() {
		fmt.Println("\nTime is up, submitting your answers.")
		fire()
	})
	defer timer.Stop()

	fire()

	select {
	case <-done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return result, err
}

func runQuizAttempts(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	childID, err := a.currentChildID(quizChildID)
	if err != nil {
		return err
	}

	attempts, err := a.quizzes.Attempts(childID)
	if err != nil {
		return err
	}
	if len(attempts) == 0 {
		fmt.Println("No quiz attempts yet.")
		return nil
	}

	average, err := a.quizzes.AverageScore(childID)
	if err != nil {
		return err
	}

	pendingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	for _, attempt := range attempts {
		at := time.UnixMilli(attempt.Timestamp).Format("2006-01-02 15:04")
		status := fmt.Sprintf("score %d", attempt.Score)
		if !attempt.Synced {
			status = pendingStyle.Render("pending sync")
		}
		fmt.Printf("  quiz %d  %s  %s\n", attempt.QuizID, at, status)
	}
	fmt.Printf("\nAverage score: %.1f\n", average)
	return nil
}

// parseAnswers converts repeated question=answer flags into the
// submission map.
func parseAnswers(raw []string) (map[int64]string, error) {
	answers := make(map[int64]string, len(raw))
	for _, pair := range raw {
		key, value, found := strings.Cut(pair, "=")
		if !found || value == "" {
			return nil, fmt.Errorf("invalid answer %q: expected question=value", pair)
		}
		questionID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid question ID in %q", pair)
		}
		answers[questionID] = value
	}
	return answers, nil
}

func printQuizResult(result *models.QuizResult) {
	if result.Deferred {
		fmt.Println(result.FeedbackMessage)
		return
	}

	passStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	failStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	verdict := failStyle.Render("Keep practicing!")
	if result.Passed {
		verdict = passStyle.Render("Passed!")
	}
	fmt.Printf("%s Score %d (%d/%d correct)\n", verdict, result.Score, result.CorrectAnswers, result.TotalQuestions)
	if result.FeedbackMessage != "" {
		fmt.Println(result.FeedbackMessage)
	}
}
