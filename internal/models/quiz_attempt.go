package models

import "encoding/json"

// QuizAttempt is a locally persisted quiz submission for a child.
// Score=0, Passed=false is the canonical placeholder for an attempt the
// backend has not graded yet; such a record keeps Synced=false until the
// sync service confirms submission.
type QuizAttempt struct {
	ID      int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	QuizID  int64 `gorm:"index" json:"quiz_id"`
	ChildID int64 `gorm:"index" json:"child_id"`

	Score  int  `gorm:"default:0" json:"score"`
	Passed bool `gorm:"default:false" json:"passed"`

	// Answers is the JSON-serialized answer map (question id -> answer).
	Answers string `gorm:"type:text" json:"answers"`

	// ClientKey is a client-generated idempotency key attached to the
	// submission, so a deferred resubmission of the same attempt cannot
	// create a duplicate grading on the backend.
	ClientKey string `gorm:"size:64;index" json:"client_key"`

	// Timestamp is epoch milliseconds of record creation.
	Timestamp int64 `gorm:"index" json:"timestamp"`
	Synced    bool  `gorm:"default:false;index" json:"synced"`
}

// TableName specifies the table name for GORM.
func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// EncodeAnswers serializes an answer map for storage.
func EncodeAnswers(answers map[int64]string) (string, error) {
	data, err := json.Marshal(answers)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeAnswers deserializes the stored answer map.
func (a *QuizAttempt) DecodeAnswers() (map[int64]string, error) {
	if a.Answers == "" {
		return map[int64]string{}, nil
	}
	var answers map[int64]string
	if err := json.Unmarshal([]byte(a.Answers), &answers); err != nil {
		return nil, err
	}
	return answers, nil
}
