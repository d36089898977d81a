package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/thinkfirst/tutorsync/internal/db"
	"github.com/thinkfirst/tutorsync/internal/log"
	"github.com/thinkfirst/tutorsync/internal/models"
	"github.com/thinkfirst/tutorsync/internal/netmon"
)

// QuizGateway is the slice of the remote gateway the quiz repository
// and the sync service need.
type QuizGateway interface {
	GetQuiz(ctx context.Context, quizID int64) (*models.Quiz, error)
	SubmitQuiz(ctx context.Context, submission models.QuizSubmission) (*models.QuizResult, error)
}

// QuizRepository serves quiz fetch and submission with deferred-submit
// support: every submission attempt leaves a persisted record, so the
// sync service can always retry what the backend has not graded.
type QuizRepository struct {
	gateway QuizGateway
	store   *db.DB
	monitor netmon.Monitor
}

// NewQuizRepository wires a quiz repository.
func NewQuizRepository(gateway QuizGateway, store *db.DB, monitor netmon.Monitor) *QuizRepository {
	return &QuizRepository{
		gateway: gateway,
		store:   store,
		monitor: monitor,
	}
}

// GetQuiz is a direct gateway passthrough; failures surface as-is.
func (r *QuizRepository) GetQuiz(ctx context.Context, quizID int64) (*models.Quiz, error) {
	return r.gateway.GetQuiz(ctx, quizID)
}

// SubmitQuiz submits answers for grading.
//
// Connected and graded: the authoritative result is persisted synced
// and returned. Connected but the call fails: a placeholder record is
// persisted unsynced and the failure is returned; the record exists
// so sync can retry, but the caller is told the operation did not
// complete. Disconnected: the same placeholder is persisted and a
// deferred success is returned.
func (r *QuizRepository) SubmitQuiz(ctx context.Context, quizID, childID int64, answers map[int64]string, timeSpentSeconds *int) (*models.QuizResult, error) {
	clientKey := uuid.New().String()

	if !r.monitor.IsConnected() {
		r.cacheAttempt(quizID, childID, 0, false, answers, clientKey, false)
		result := models.DeferredResult()
		return &result, nil
	}

	result, err := r.gateway.SubmitQuiz(ctx, models.QuizSubmission{
		ChildID:          childID,
		QuizID:           quizID,
		Answers:          answers,
		TimeSpentSeconds: timeSpentSeconds,
		ClientKey:        clientKey,
	})
	if err != nil {
		r.cacheAttempt(quizID, childID, 0, false, answers, clientKey, false)
		return nil, fmt.Errorf("submit quiz: %w", err)
	}

	r.cacheAttempt(quizID, childID, result.Score, result.Passed, answers, clientKey, true)
	return result, nil
}

// cacheAttempt persists an attempt record. The overall operation must
// still return even when the local write fails, so errors are logged
// and swallowed here.
func (r *QuizRepository) cacheAttempt(quizID, childID int64, score int, passed bool, answers map[int64]string, clientKey string, synced bool) {
	encoded, err := models.EncodeAnswers(answers)
	if err != nil {
		log.Errorf("failed to encode answers: %v", err)
		return
	}

	_, err = r.store.InsertAttempt(&models.QuizAttempt{
		QuizID:    quizID,
		ChildID:   childID,
		Score:     score,
		Passed:    passed,
		Answers:   encoded,
		ClientKey: clientKey,
		Timestamp: time.Now().UnixMilli(),
		Synced:    synced,
	})
	if err != nil {
		log.Errorf("failed to cache quiz attempt: %v", err)
	}
}

// Attempts returns a child's cached attempts, newest first.
func (r *QuizRepository) Attempts(childID int64) ([]models.QuizAttempt, error) {
	return r.store.AttemptsByChild(childID)
}

// AverageScore returns the mean score across a child's attempts.
func (r *QuizRepository) AverageScore(childID int64) (float64, error) {
	return r.store.AverageScore(childID)
}

// ClearAttempts deletes all cached attempts for a child.
func (r *QuizRepository) ClearAttempts(childID int64) error {
	return r.store.DeleteAttemptsByChild(childID)
}
