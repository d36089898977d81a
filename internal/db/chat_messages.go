package db

import (
	"fmt"

	"github.com/thinkfirst/tutorsync/internal/models"
)

// InsertMessage persists a chat message and returns the assigned id.
// Write failures always surface to the caller.
func (db *DB) InsertMessage(msg *models.ChatMessage) (int64, error) {
	if err := db.Create(msg).Error; err != nil {
		return 0, fmt.Errorf("insert chat message: %w", err)
	}
	return msg.ID, nil
}

// MessagesByChild returns all of a child's messages, newest first.
// Id breaks timestamp ties so same-millisecond inserts read back in a
// stable order.
func (db *DB) MessagesByChild(childID int64) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := db.Where("child_id = ?", childID).
		Order("timestamp DESC, id DESC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("messages by child: %w", err)
	}
	return messages, nil
}

// MessagesBySession returns a session's messages in conversation order.
func (db *DB) MessagesBySession(sessionID int64) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := db.Where("session_id = ?", sessionID).
		Order("timestamp ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("messages by session: %w", err)
	}
	return messages, nil
}

// UnsyncedMessages returns messages not yet reconciled with the backend,
// oldest first so the sync pass preserves creation order.
func (db *DB) UnsyncedMessages() ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := db.Where("synced = ?", false).
		Order("timestamp ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("unsynced messages: %w", err)
	}
	return messages, nil
}

// MarkMessageSynced flips the synced flag. Idempotent: a second call on
// the same id is a no-op.
func (db *DB) MarkMessageSynced(id int64) error {
	err := db.Model(&models.ChatMessage{}).
		Where("id = ?", id).
		Update("synced", true).Error
	if err != nil {
		return fmt.Errorf("mark message synced: %w", err)
	}
	return nil
}

// DeleteMessagesByChild removes all cached messages for a child.
func (db *DB) DeleteMessagesByChild(childID int64) error {
	err := db.Where("child_id = ?", childID).
		Delete(&models.ChatMessage{}).Error
	if err != nil {
		return fmt.Errorf("delete messages by child: %w", err)
	}
	return nil
}

// DeleteMessagesBefore removes messages created before the cutoff
// (epoch millis), independent of sync state.
func (db *DB) DeleteMessagesBefore(cutoff int64) error {
	err := db.Where("timestamp < ?", cutoff).
		Delete(&models.ChatMessage{}).Error
	if err != nil {
		return fmt.Errorf("delete old messages: %w", err)
	}
	return nil
}

// MessageCount returns the number of cached messages for a child.
func (db *DB) MessageCount(childID int64) (int64, error) {
	var count int64
	err := db.Model(&models.ChatMessage{}).
		Where("child_id = ?", childID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return count, nil
}
