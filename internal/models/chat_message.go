// Package models defines the core data structures for TutorSync.
package models

import "encoding/json"

// ChatMessage is a locally cached chat exchange for a child.
// Records written from a live gateway response carry Synced=true; a
// Synced=false record holds the original query and a locally assembled
// placeholder response, never a server-authoritative answer.
type ChatMessage struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID int64 `gorm:"index" json:"session_id"`
	ChildID   int64 `gorm:"index" json:"child_id"`

	Query         string `gorm:"type:text" json:"query"`
	Response      string `gorm:"type:text" json:"response"`
	ResponseLevel string `gorm:"size:32" json:"response_level"`

	// Timestamp is epoch milliseconds of record creation.
	Timestamp int64 `gorm:"index" json:"timestamp"`
	Synced    bool  `gorm:"default:false;index" json:"synced"`

	// Optional quiz attachment from a QUIZ_REQUIRED response.
	QuizID        *int64 `json:"quiz_id,omitempty"`
	QuizQuestions string `gorm:"type:text" json:"quiz_questions,omitempty"` // JSON snapshot
}

// TableName specifies the table name for GORM.
func (ChatMessage) TableName() string {
	return "chat_messages"
}

// QuizQuestionSnapshot is the serialized form of a quiz question cached
// alongside a chat message, so a quiz attached to an answer remains
// viewable offline.
type QuizQuestionSnapshot struct {
	ID           int64    `json:"id"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options,omitempty"`
	Explanation  string   `json:"explanation,omitempty"`
}

// EncodeQuestionSnapshots serializes question snapshots for storage.
func EncodeQuestionSnapshots(questions []QuizQuestionSnapshot) (string, error) {
	if len(questions) == 0 {
		return "", nil
	}
	data, err := json.Marshal(questions)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// QuestionSnapshots deserializes the cached question snapshot, if any.
func (m *ChatMessage) QuestionSnapshots() ([]QuizQuestionSnapshot, error) {
	if m.QuizQuestions == "" {
		return nil, nil
	}
	var questions []QuizQuestionSnapshot
	if err := json.Unmarshal([]byte(m.QuizQuestions), &questions); err != nil {
		return nil, err
	}
	return questions, nil
}
