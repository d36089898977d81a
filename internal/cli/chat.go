package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/thinkfirst/tutorsync/internal/models"
	"github.com/thinkfirst/tutorsync/internal/repository"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask the tutor and browse cached conversation history",
}

var chatSendCmd = &cobra.Command{
	Use:   "send <question>",
	Short: "Send a tutoring question",
	Long: `Send a tutoring question.

Requires connectivity: the tutor never answers from cache, so a
disconnected send fails immediately instead of queueing.

Examples:
  tutorsync chat send "why does ice float?"
  tutorsync chat send --session 12 "can you give me a hint?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChatSend,
}

var chatHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show chat history",
	Long: `Show chat history.

Reads the local cache by default, so it works offline. With --remote
the backend's full history for a session is fetched instead.`,
	Args: cobra.NoArgs,
	RunE: runChatHistory,
}

var chatSessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List a child's chat sessions on the backend",
	Args:  cobra.NoArgs,
	RunE:  runChatSessions,
}

var chatClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete cached chat history for a child",
	Args:  cobra.NoArgs,
	RunE:  runChatClear,
}

var (
	chatChildID    int64
	chatSessionID  int64
	chatNewSession string
	chatRemote     bool
)

func init() {
	chatCmd.PersistentFlags().Int64Var(&chatChildID, "child", 0, "child ID (defaults to the logged-in child)")
	chatSendCmd.Flags().Int64Var(&chatSessionID, "session", 0, "chat session ID")
	chatSendCmd.Flags().StringVar(&chatNewSession, "new-session", "", "open a new session with this title first")
	chatHistoryCmd.Flags().Int64Var(&chatSessionID, "session", 0, "show a single session in conversation order")
	chatHistoryCmd.Flags().BoolVar(&chatRemote, "remote", false, "fetch the session history from the backend")

	chatCmd.AddCommand(chatSendCmd)
	chatCmd.AddCommand(chatHistoryCmd)
	chatCmd.AddCommand(chatSessionsCmd)
	chatCmd.AddCommand(chatClearCmd)
}

func runChatSend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	childID, err := a.currentChildID(chatChildID)
	if err != nil {
		return err
	}

	if chatNewSession != "" {
		if !a.monitor.IsConnected() {
			return fmt.Errorf("you are offline: chat needs a connection")
		}
		sess, err := a.client.CreateSession(ctx, childID, chatNewSession)
		if err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		chatSessionID = sess.ID
		fmt.Printf("Opened session %d\n", sess.ID)
	}

	query := strings.Join(args, " ")
	resp, err := a.chat.SendQuery(ctx, childID, chatSessionID, query)
	if errors.Is(err, repository.ErrOffline) {
		return fmt.Errorf("you are offline: chat needs a connection")
	}
	if err != nil {
		return err
	}

	levelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	fmt.Println(resp.Text())
	fmt.Println(levelStyle.Render(string(resp.ResponseType)))

	if resp.Quiz != nil {
		fmt.Printf("\nA quiz is required before a fuller answer: quiz %d (%d questions)\n",
			resp.Quiz.ID, len(resp.Quiz.Questions))
		fmt.Printf("Take it with: tutorsync quiz show %d\n", resp.Quiz.ID)
	}
	return nil
}

func runChatHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if chatRemote {
		if chatSessionID == 0 {
			return fmt.Errorf("--remote requires --session")
		}
		if !a.monitor.IsConnected() {
			return fmt.Errorf("you are offline: use the cached history instead")
		}
		history, err := a.client.ChatHistory(ctx, chatSessionID)
		if err != nil {
			return err
		}
		roleStyle := lipgloss.NewStyle().Bold(true)
		for _, msg := range history {
			fmt.Printf("%s %s\n", roleStyle.Render(string(msg.Role)+":"), msg.Content)
		}
		return nil
	}

	var messages []models.ChatMessage
	if chatSessionID > 0 {
		messages, err = a.chat.SessionMessages(chatSessionID)
	} else {
		var childID int64
		childID, err = a.currentChildID(chatChildID)
		if err != nil {
			return err
		}
		messages, err = a.chat.Messages(childID)
	}
	if err != nil {
		return err
	}

	if len(messages) == 0 {
		fmt.Println("No cached messages.")
		return nil
	}

	timeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	queryStyle := lipgloss.NewStyle().Bold(true)

	for _, msg := range messages {
		at := time.UnixMilli(msg.Timestamp).Format("2006-01-02 15:04")
		fmt.Printf("%s %s\n", timeStyle.Render(at), queryStyle.Render(msg.Query))
		fmt.Printf("  %s\n\n", msg.Response)
	}
	return nil
}

func runChatSessions(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	childID, err := a.currentChildID(chatChildID)
	if err != nil {
		return err
	}

	if !a.monitor.IsConnected() {
		return fmt.Errorf("you are offline: sessions are listed live from the backend")
	}

	sessions, err := a.client.ChildSessions(ctx, childID)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions yet.")
		return nil
	}

	for _, sess := range sessions {
		title := sess.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("  %d  %s  %d message(s)\n", sess.ID, title, sess.MessageCount)
	}
	return nil
}

func runChatClear(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	childID, err := a.currentChildID(chatChildID)
	if err != nil {
		return err
	}

	if err := a.chat.ClearMessages(childID); err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}

	fmt.Println("Chat history cleared.")
	return nil
}
