package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thinkfirst/tutorsync/internal/models"
)

// stubAuthorizer hands out a fixed token and counts refreshes.
type stubAuthorizer struct {
	token      string
	refreshed  string
	refreshErr error
	refreshes  atomic.Int32
}

func (s *stubAuthorizer) Token(ctx context.Context) (string, error) {
	return s.token, nil
}

func (s *stubAuthorizer) Refresh(ctx context.Context, stale string) (string, error) {
	s.refreshes.Add(1)
	if s.refreshErr != nil {
		return "", s.refreshErr
	}
	return s.refreshed, nil
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(models.Quiz{ID: 42})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.SetAuthorizer(&stubAuthorizer{token: "tok-1"})

	quiz, err := client.GetQuiz(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), quiz.ID)
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestClient_AuthPathsBypassToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(models.AuthResponse{Token: "fresh", UserID: 1})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.SetAuthorizer(&stubAuthorizer{token: "tok-1"})

	_, err := client.Login(context.Background(), models.LoginRequest{Username: "u", Password: "p"})
	require.NoError(t, err)
	assert.Empty(t, gotAuth, "auth endpoints must not carry a bearer token")
}

func TestClient_RefreshRetryOnce(t *testing.T) {
	var calls atomic.Int32
	var retryAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		retryAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(models.Quiz{ID: 7})
	}))
	defer srv.Close()

	auth := &stubAuthorizer{token: "stale", refreshed: "fresh"}
	client := NewClient(srv.URL)
	client.SetAuthorizer(auth)

	quiz, err := client.GetQuiz(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), quiz.ID)
	assert.EqualValues(t, 1, auth.refreshes.Load())
	assert.EqualValues(t, 2, calls.Load())
	assert.Equal(t, "Bearer fresh", retryAuth)
}

func TestClient_SecondUnauthorizedNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	auth := &stubAuthorizer{token: "stale", refreshed: "still-bad"}
	client := NewClient(srv.URL)
	client.SetAuthorizer(auth)

	_, err := client.GetQuiz(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.EqualValues(t, 1, auth.refreshes.Load(), "only one refresh per request")
	assert.EqualValues(t, 2, calls.Load(), "original request retried exactly once")
}

func TestClient_RefreshFailurePropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	wantErr := &RemoteError{Status: http.StatusUnauthorized, Message: "session expired"}
	client := NewClient(srv.URL)
	client.SetAuthorizer(&stubAuthorizer{token: "stale", refreshErr: wantErr})

	_, err := client.GetQuiz(context.Background(), 7)
	assert.ErrorIs(t, err, wantErr)
}

func TestClient_RemoteErrorCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"quiz already submitted"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	_, err := client.SubmitQuiz(context.Background(), models.QuizSubmission{QuizID: 1, ChildID: 1})
	require.Error(t, err)

	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusUnprocessableEntity, re.Status)
	assert.Equal(t, "quiz already submitted", re.Message)
	assert.False(t, re.Unauthorized())
}

func TestClient_SubmitQuizEncodesAnswers(t *testing.T) {
	var got models.QuizSubmission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(models.QuizResult{Score: 80, Passed: true})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	result, err := client.SubmitQuiz(context.Background(), models.QuizSubmission{
		ChildID: 1,
		QuizID:  42,
		Answers: map[int64]string{101: "A"},
	})
	require.NoError(t, err)
	assert.Equal(t, 80, result.Score)
	assert.True(t, result.Passed)
	assert.Equal(t, map[int64]string{101: "A"}, got.Answers)
}
