package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/thinkfirst/tutorsync/internal/models"
)

// GetQuiz fetches a quiz definition.
func (c *Client) GetQuiz(ctx context.Context, quizID int64) (*models.Quiz, error) {
	var resp models.Quiz
	path := fmt.Sprintf("quiz/%d", quizID)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubmitQuiz submits answers for grading. Grading is opaque to the
// client; the result is taken as authoritative.
func (c *Client) SubmitQuiz(ctx context.Context, submission models.QuizSubmission) (*models.QuizResult, error) {
	var resp models.QuizResult
	if err := c.doRequest(ctx, http.MethodPost, "quiz/submit", submission, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
