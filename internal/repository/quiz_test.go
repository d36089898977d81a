package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thinkfirst/tutorsync/internal/models"
	"github.com/thinkfirst/tutorsync/internal/netmon"
)

type fakeQuizGateway struct {
	quiz      *models.Quiz
	quizErr   error
	result    *models.QuizResult
	submitErr error

	submits int
	last    models.QuizSubmission
}

func (g *fakeQuizGateway) GetQuiz(ctx context.Context, quizID int64) (*models.Quiz, error) {
	return g.quiz, g.quizErr
}

func (g *fakeQuizGateway) SubmitQuiz(ctx context.Context, submission models.QuizSubmission) (*models.QuizResult, error) {
	g.submits++
	g.last = submission
	return g.result, g.submitErr
}

func TestQuizRepository_GetQuizPassthrough(t *testing.T) {
	store := testStore(t)
	gw := &fakeQuizGateway{quiz: &models.Quiz{ID: 42, PassingScore: 70}}
	repo := NewQuizRepository(gw, store, netmon.New(true))

	quiz, err := repo.GetQuiz(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), quiz.ID)

	gw.quiz, gw.quizErr = nil, errors.New("not found")
	_, err = repo.GetQuiz(context.Background(), 99)
	assert.EqualError(t, err, "not found")
}

func TestQuizRepository_SubmitOffline(t *testing.T) {
	store := testStore(t)
	gw := &fakeQuizGateway{}
	repo := NewQuizRepository(gw, store, netmon.New(false))

	answers := map[int64]string{101: "A"}
	result, err := repo.SubmitQuiz(context.Background(), 42, 1, answers, nil)

	// Deferred submission is a success, not a failure.
	require.NoError(t, err)
	assert.Zero(t, result.Score)
	assert.False(t, result.Passed)
	assert.True(t, result.Deferred)
	// A partial answer map must not pass for the quiz's question count.
	assert.Zero(t, result.TotalQuestions)
	assert.Zero(t, result.CorrectAnswers)
	assert.Equal(t, models.DeferredFeedback, result.FeedbackMessage)
	assert.Zero(t, gw.submits)

	attempts, err := repo.Attempts(1)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.False(t, attempts[0].Synced)
	assert.Zero(t, attempts[0].Score)
	assert.False(t, attempts[0].Passed)
	assert.NotEmpty(t, attempts[0].ClientKey)

	decoded, err := attempts[0].DecodeAnswers()
	require.NoError(t, err)
	assert.Equal(t, answers, decoded)
}

func TestQuizRepository_SubmitOnlineSuccess(t *testing.T) {
	store := testStore(t)
	gw := &fakeQuizGateway{result: &models.QuizResult{Score: 80, Passed: true, TotalQuestions: 1, CorrectAnswers: 1}}
	repo := NewQuizRepository(gw, store, netmon.New(true))

	timeSpent := 95
	result, err := repo.SubmitQuiz(context.Background(), 42, 1, map[int64]string{101: "A"}, &timeSpent)
	require.NoError(t, err)
	assert.Equal(t, 80, result.Score)
	assert.True(t, result.Passed)
	assert.False(t, result.Deferred)

	require.NotNil(t, gw.last.TimeSpentSeconds)
	assert.Equal(t, 95, *gw.last.TimeSpentSeconds)
	assert.NotEmpty(t, gw.last.ClientKey)

	// Exactly one record, authoritative and synced.
	attempts, err := repo.Attempts(1)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.True(t, attempts[0].Synced)
	assert.Equal(t, 80, attempts[0].Score)
	assert.True(t, attempts[0].Passed)
}

func TestQuizRepository_SubmitOnlineFailure(t *testing.T) {
	store := testStore(t)
	gw := &fakeQuizGateway{submitErr: errors.New("backend down")}
	repo := NewQuizRepository(gw, store, netmon.New(true))

	_, err := repo.SubmitQuiz(context.Background(), 42, 1, map[int64]string{101: "A"}, nil)
	require.Error(t, err)

	// The placeholder exists so sync can retry, but the caller was
	// told the operation did not complete.
	attempts, err := repo.Attempts(1)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.False(t, attempts[0].Synced)
	assert.Zero(t, attempts[0].Score)
	assert.False(t, attempts[0].Passed)
}

func TestQuizRepository_AverageScore(t *testing.T) {
	store := testStore(t)
	gw := &fakeQuizGateway{result: &models.QuizResult{Score: 80, Passed: true}}
	repo := NewQuizRepository(gw, store, netmon.New(true))

	_, err := repo.SubmitQuiz(context.Background(), 42, 1, map[int64]string{101: "A"}, nil)
	require.NoError(t, err)

	gw.result = &models.QuizResult{Score: 60, Passed: false}
	_, err = repo.SubmitQuiz(context.Background(), 43, 1, map[int64]string{201: "B"}, nil)
	require.NoError(t, err)

	avg, err := repo.AverageScore(1)
	require.NoError(t, err)
	assert.InDelta(t, 70.0, avg, 0.001)
}
