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

type fakeChatGateway struct {
	resp  *models.ChatResponse
	err   error
	calls int
	last  models.ChatRequest
}

func (g *fakeChatGateway) SendQuery(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	g.calls++
	g.last = req
	return g.resp, g.err
}

func TestChatRepository_SendQueryOffline(t *testing.T) {
	store := testStore(t)
	gw := &fakeChatGateway{}
	repo := NewChatRepository(gw, store, netmon.New(false))

	_, err := repo.SendQuery(context.Background(), 1, 10, "why is the sky blue?")
	require.ErrorIs(t, err, ErrOffline)
	assert.Zero(t, gw.calls, "no gateway call while offline")

	// Offline chat send writes nothing.
	messages, err := repo.Messages(1)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestChatRepository_SendQueryOnline(t *testing.T) {
	store := testStore(t)
	gw := &fakeChatGateway{resp: &models.ChatResponse{
		Response:     "think about what sunlight is made of",
		ResponseType: models.ResponsePartialHint,
	}}
	repo := NewChatRepository(gw, store, netmon.New(true))

	resp, err := repo.SendQuery(context.Background(), 1, 10, "why is the sky blue?")
	require.NoError(t, err)
	assert.Equal(t, models.ResponsePartialHint, resp.ResponseType)
	assert.Equal(t, models.ChatRequest{ChildID: 1, SessionID: 10, Query: "why is the sky blue?"}, gw.last)

	messages, err := repo.Messages(1)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.True(t, messages[0].Synced)
	assert.Equal(t, "why is the sky blue?", messages[0].Query)
	assert.Equal(t, "think about what sunlight is made of", messages[0].Response)
	assert.Equal(t, string(models.ResponsePartialHint), messages[0].ResponseLevel)
	assert.NotZero(t, messages[0].Timestamp)
}

func TestChatRepository_SendQueryFailureWritesNothing(t *testing.T) {
	store := testStore(t)
	gw := &fakeChatGateway{err: errors.New("backend down")}
	repo := NewChatRepository(gw, store, netmon.New(true))

	_, err := repo.SendQuery(context.Background(), 1, 10, "what is gravity?")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrOffline)

	messages, err := repo.Messages(1)
	require.NoError(t, err)
	assert.Empty(t, messages, "failed online attempts are not cached")
}

func TestChatRepository_CachesQuizSnapshot(t *testing.T) {
	store := testStore(t)
	gw := &fakeChatGateway{resp: &models.ChatResponse{
		Message:      "let's check what you already know",
		ResponseType: models.ResponseQuizRequired,
		Quiz: &models.Quiz{
			ID: 42,
			Questions: []models.Question{
				{ID: 101, QuestionText: "What is 2+2?", Options: []string{"3", "4"}},
			},
		},
	}}
	repo := NewChatRepository(gw, store, netmon.New(true))

	_, err := repo.SendQuery(context.Background(), 1, 10, "teach me addition")
	require.NoError(t, err)

	messages, err := repo.SessionMessages(10)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.NotNil(t, messages[0].QuizID)
	assert.Equal(t, int64(42), *messages[0].QuizID)

	snapshots, err := messages[0].QuestionSnapshots()
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, "What is 2+2?", snapshots[0].QuestionText)
}

func TestChatRepository_ClearMessages(t *testing.T) {
	store := testStore(t)
	gw := &fakeChatGateway{resp: &models.ChatResponse{Message: "ok", ResponseType: models.ResponseFullAnswer}}
	repo := NewChatRepository(gw, store, netmon.New(true))

	_, err := repo.SendQuery(context.Background(), 1, 10, "q1")
	require.NoError(t, err)
	_, err = repo.SendQuery(context.Background(), 2, 11, "q2")
	require.NoError(t, err)

	require.NoError(t, repo.ClearMessages(1))

	messages, err := repo.Messages(1)
	require.NoError(t, err)
	assert.Empty(t, messages)

	others, err := repo.Messages(2)
	require.NoError(t, err)
	assert.Len(t, others, 1)
}
