package models

// ResponseType is the tutoring response level returned by the backend.
type ResponseType string

const (
	ResponseFullAnswer      ResponseType = "FULL_ANSWER"
	ResponsePartialHint     ResponseType = "PARTIAL_HINT"
	ResponseGuidedQuestions ResponseType = "GUIDED_QUESTIONS"
	ResponseQuizRequired    ResponseType = "QUIZ_REQUIRED"
)

// MessageRole identifies the author of a history message.
type MessageRole string

const (
	RoleUser      MessageRole = "USER"
	RoleAssistant MessageRole = "ASSISTANT"
)

// ChatRequest is the chat query payload.
type ChatRequest struct {
	ChildID   int64  `json:"childId"`
	SessionID int64  `json:"sessionId"`
	Query     string `json:"query"`
}

// ChatResponse is the backend's answer to a chat query. Message and
// Response are alternates; Text returns whichever is set.
type ChatResponse struct {
	Message      string       `json:"message,omitempty"`
	Response     string       `json:"response,omitempty"`
	ResponseType ResponseType `json:"responseType"`
	Quiz         *Quiz        `json:"quiz,omitempty"`
	Hint         string       `json:"hint,omitempty"`
	MessageID    *int64       `json:"messageId,omitempty"`
}

// Text returns the response body, whichever field the backend populated.
func (r *ChatResponse) Text() string {
	if r.Response != "" {
		return r.Response
	}
	return r.Message
}

// ChatSession is a server-side chat session.
type ChatSession struct {
	ID           int64  `json:"id"`
	Title        string `json:"title,omitempty"`
	MessageCount int    `json:"messageCount"`
	Archived     bool   `json:"archived"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// HistoryMessage is a single entry of a session's server-side history.
type HistoryMessage struct {
	ID        int64       `json:"id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt string      `json:"createdAt"`
}
