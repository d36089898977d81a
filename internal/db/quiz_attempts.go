package db

import (
	"fmt"

	"github.com/thinkfirst/tutorsync/internal/models"
)

// InsertAttempt persists a quiz attempt and returns the assigned id.
// Write failures always surface to the caller.
func (db *DB) InsertAttempt(attempt *models.QuizAttempt) (int64, error) {
	if err := db.Create(attempt).Error; err != nil {
		return 0, fmt.Errorf("insert quiz attempt: %w", err)
	}
	return attempt.ID, nil
}

// AttemptsByChild returns all of a child's attempts, newest first.
// Id breaks timestamp ties so same-millisecond inserts read back in a
// stable order.
func (db *DB) AttemptsByChild(childID int64) ([]models.QuizAttempt, error) {
	var attempts []models.QuizAttempt
	err := db.Where("child_id = ?", childID).
		Order("timestamp DESC, id DESC").
		Find(&attempts).Error
	if err != nil {
		return nil, fmt.Errorf("attempts by child: %w", err)
	}
	return attempts, nil
}

// AttemptsByQuiz returns all attempts against a quiz, newest first.
func (db *DB) AttemptsByQuiz(quizID int64) ([]models.QuizAttempt, error) {
	var attempts []models.QuizAttempt
	err := db.Where("quiz_id = ?", quizID).
		Order("timestamp DESC, id DESC").
		Find(&attempts).Error
	if err != nil {
		return nil, fmt.Errorf("attempts by quiz: %w", err)
	}
	return attempts, nil
}

// UnsyncedAttempts returns attempts awaiting backend grading, oldest
// first so the sync pass preserves submission order.
func (db *DB) UnsyncedAttempts() ([]models.QuizAttempt, error) {
	var attempts []models.QuizAttempt
	err := db.Where("synced = ?", false).
		Order("timestamp ASC, id ASC").
		Find(&attempts).Error
	if err != nil {
		return nil, fmt.Errorf("unsynced attempts: %w", err)
	}
	return attempts, nil
}

// MarkAttemptSynced flips the synced flag. Idempotent.
func (db *DB) MarkAttemptSynced(id int64) error {
	err := db.Model(&models.QuizAttempt{}).
		Where("id = ?", id).
		Update("synced", true).Error
	if err != nil {
		return fmt.Errorf("mark attempt synced: %w", err)
	}
	return nil
}

// DeleteAttemptsByChild removes all cached attempts for a child.
func (db *DB) DeleteAttemptsByChild(childID int64) error {
	err := db.Where("child_id = ?", childID).
		Delete(&models.QuizAttempt{}).Error
	if err != nil {
		return fmt.Errorf("delete attempts by child: %w", err)
	}
	return nil
}

// AttemptCount returns the number of cached attempts for a child.
func (db *DB) AttemptCount(childID int64) (int64, error) {
	var count int64
	err := db.Model(&models.QuizAttempt{}).
		Where("child_id = ?", childID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count attempts: %w", err)
	}
	return count, nil
}

// AverageScore returns the mean score across a child's attempts, or 0
// when the child has none.
func (db *DB) AverageScore(childID int64) (float64, error) {
	var avg *float64
	err := db.Model(&models.QuizAttempt{}).
		Where("child_id = ?", childID).
		Select("AVG(score)").
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("average score: %w", err)
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
