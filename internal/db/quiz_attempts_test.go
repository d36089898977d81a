package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thinkfirst/tutorsync/internal/models"
)

func insertAttempt(t *testing.T, db *DB, childID, quizID, ts int64, score int, synced bool) int64 {
	t.Helper()
	answers, err := models.EncodeAnswers(map[int64]string{101: "A"})
	require.NoError(t, err)

	id, err := db.InsertAttempt(&models.QuizAttempt{
		ChildID:   childID,
		QuizID:    quizID,
		Score:     score,
		Passed:    score >= 70,
		Answers:   answers,
		Timestamp: ts,
		Synced:    synced,
	})
	require.NoError(t, err)
	return id
}

func TestInsertAttempt_RoundTrip(t *testing.T) {
	db := testDB(t)

	answers := map[int64]string{101: "A", 102: "B"}
	encoded, err := models.EncodeAnswers(answers)
	require.NoError(t, err)

	_, err = db.InsertAttempt(&models.QuizAttempt{
		ChildID:   1,
		QuizID:    42,
		Answers:   encoded,
		Timestamp: 1000,
	})
	require.NoError(t, err)

	attempts, err := db.AttemptsByChild(1)
	require.NoError(t, err)
	require.Len(t, attempts, 1)

	decoded, err := attempts[0].DecodeAnswers()
	require.NoError(t, err)
	assert.Equal(t, answers, decoded)
}

func TestAttemptsByChild_NewestFirst(t *testing.T) {
	db := testDB(t)

	insertAttempt(t, db, 1, 42, 1000, 80, true)
	insertAttempt(t, db, 1, 43, 3000, 60, true)
	insertAttempt(t, db, 2, 42, 2000, 90, true)

	attempts, err := db.AttemptsByChild(1)
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, int64(3000), attempts[0].Timestamp)
	assert.Equal(t, int64(1000), attempts[1].Timestamp)
}

func TestAttemptsByQuiz(t *testing.T) {
	db := testDB(t)

	insertAttempt(t, db, 1, 42, 1000, 80, true)
	insertAttempt(t, db, 2, 42, 2000, 90, true)
	insertAttempt(t, db, 1, 43, 3000, 60, true)

	attempts, err := db.AttemptsByQuiz(42)
	require.NoError(t, err)
	assert.Len(t, attempts, 2)
}

func TestMarkAttemptSynced_Idempotent(t *testing.T) {
	db := testDB(t)

	id := insertAttempt(t, db, 1, 42, 1000, 0, false)

	require.NoError(t, db.MarkAttemptSynced(id))

	after, err := db.AttemptsByChild(1)
	require.NoError(t, err)
	require.Len(t, after, 1)
	first := after[0]

	require.NoError(t, db.MarkAttemptSynced(id))

	again, err := db.AttemptsByChild(1)
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, first, again[0])
}

func TestUnsyncedAttempts_OldestFirst(t *testing.T) {
	db := testDB(t)

	insertAttempt(t, db, 1, 42, 3000, 0, false)
	insertAttempt(t, db, 1, 43, 1000, 0, false)
	insertAttempt(t, db, 1, 44, 2000, 85, true)

	unsynced, err := db.UnsyncedAttempts()
	require.NoError(t, err)
	require.Len(t, unsynced, 2)
	assert.Equal(t, int64(43), unsynced[0].QuizID)
	assert.Equal(t, int64(42), unsynced[1].QuizID)
}

func TestUnsyncedAttempts_SameTimestampOrderedByID(t *testing.T) {
	db := testDB(t)

	// Same-millisecond submissions must still drain in insert order.
	first := insertAttempt(t, db, 1, 42, 1000, 0, false)
	second := insertAttempt(t, db, 1, 43, 1000, 0, false)
	third := insertAttempt(t, db, 1, 44, 1000, 0, false)

	unsynced, err := db.UnsyncedAttempts()
	require.NoError(t, err)
	require.Len(t, unsynced, 3)
	assert.Equal(t, first, unsynced[0].ID)
	assert.Equal(t, second, unsynced[1].ID)
	assert.Equal(t, third, unsynced[2].ID)
}

func TestAverageScore(t *testing.T) {
	db := testDB(t)

	avg, err := db.AverageScore(1)
	require.NoError(t, err)
	assert.Zero(t, avg)

	insertAttempt(t, db, 1, 42, 1000, 80, true)
	insertAttempt(t, db, 1, 43, 2000, 60, true)
	insertAttempt(t, db, 2, 42, 3000, 100, true)

	avg, err = db.AverageScore(1)
	require.NoError(t, err)
	assert.InDelta(t, 70.0, avg, 0.001)
}

func TestDeleteAttemptsByChild(t *testing.T) {
	db := testDB(t)

	insertAttempt(t, db, 1, 42, 1000, 80, true)
	insertAttempt(t, db, 2, 42, 2000, 90, true)

	require.NoError(t, db.DeleteAttemptsByChild(1))

	count, err := db.AttemptCount(1)
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = db.AttemptCount(2)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
