package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/thinkfirst/tutorsync/internal/db"
	"github.com/thinkfirst/tutorsync/internal/log"
	"github.com/thinkfirst/tutorsync/internal/models"
	"github.com/thinkfirst/tutorsync/internal/netmon"
)

// ChatGateway is the slice of the remote gateway the chat repository needs.
type ChatGateway interface {
	SendQuery(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}

// ChatRepository serves chat queries with offline-aware caching.
// Offline chat send is unsupported: only successful online responses
// are cached, so a disconnected send fails fast with ErrOffline.
type ChatRepository struct {
	gateway ChatGateway
	store   *db.DB
	monitor netmon.Monitor
}

// NewChatRepository wires a chat repository.
func NewChatRepository(gateway ChatGateway, store *db.DB, monitor netmon.Monitor) *ChatRepository {
	return &ChatRepository{
		gateway: gateway,
		store:   store,
		monitor: monitor,
	}
}

// SendQuery sends a tutoring question. Connected: the gateway answer is
// cached as a synced record and returned. Disconnected: ErrOffline, and
// nothing is written. A failed online call likewise writes nothing.
func (r *ChatRepository) SendQuery(ctx context.Context, childID, sessionID int64, query string) (*models.ChatResponse, error) {
	if !r.monitor.IsConnected() {
		return nil, ErrOffline
	}

	resp, err := r.gateway.SendQuery(ctx, models.ChatRequest{
		ChildID:   childID,
		SessionID: sessionID,
		Query:     query,
	})
	if err != nil {
		return nil, fmt.Errorf("send query: %w", err)
	}

	r.cacheMessage(childID, sessionID, query, resp)
	return resp, nil
}

// cacheMessage persists a successful response. Caching is an
// optimization for already-returned data, so failures are logged and
// swallowed.
func (r *ChatRepository) cacheMessage(childID, sessionID int64, query string, resp *models.ChatResponse) {
	msg := models.ChatMessage{
		SessionID:     sessionID,
		ChildID:       childID,
		Query:         query,
		Response:      resp.Text(),
		ResponseLevel: string(resp.ResponseType),
		Timestamp:     time.Now().UnixMilli(),
		Synced:        true,
	}

	if resp.Quiz != nil {
		msg.QuizID = &resp.Quiz.ID
		snapshots := make([]models.QuizQuestionSnapshot, 0, len(resp.Quiz.Questions))
		for _, q := range resp.Quiz.Questions {
			snapshots = append(snapshots, models.QuizQuestionSnapshot{
				ID:           q.ID,
				QuestionText: q.QuestionText,
				Options:      q.Options,
				Explanation:  q.Explanation,
			})
		}
		encoded, err := models.EncodeQuestionSnapshots(snapshots)
		if err != nil {
			log.Errorf("failed to encode quiz snapshot: %v", err)
		} else {
			msg.QuizQuestions = encoded
		}
	}

	if _, err := r.store.InsertMessage(&msg); err != nil {
		log.Errorf("failed to cache chat message: %v", err)
	}
}

// Messages returns a child's cached messages, newest first.
func (r *ChatRepository) Messages(childID int64) ([]models.ChatMessage, error) {
	return r.store.MessagesByChild(childID)
}

// SessionMessages returns a session's cached messages in conversation
// order.
func (r *ChatRepository) SessionMessages(sessionID int64) ([]models.ChatMessage, error) {
	return r.store.MessagesBySession(sessionID)
}

// ClearMessages deletes all cached messages for a child.
func (r *ChatRepository) ClearMessages(childID int64) error {
	return r.store.DeleteMessagesByChild(childID)
}
