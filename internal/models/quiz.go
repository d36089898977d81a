package models

// QuizType classifies how a quiz is used in a learning path.
type QuizType string

const (
	QuizPrerequisite QuizType = "PREREQUISITE"
	QuizVerification QuizType = "VERIFICATION"
	QuizChallenge    QuizType = "CHALLENGE"
	QuizDiagnostic   QuizType = "DIAGNOSTIC"
)

// QuestionType classifies the answer format of a question.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionShortAnswer    QuestionType = "SHORT_ANSWER"
	QuestionTrueFalse      QuestionType = "TRUE_FALSE"
	QuestionFillBlank      QuestionType = "FILL_BLANK"
)

// DifficultyLevel is the backend's difficulty grading.
type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "BEGINNER"
	DifficultyIntermediate DifficultyLevel = "INTERMEDIATE"
	DifficultyAdvanced     DifficultyLevel = "ADVANCED"
	DifficultyExpert       DifficultyLevel = "EXPERT"
)

// Quiz is a quiz definition fetched from the backend.
type Quiz struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title,omitempty"`
	Description  string          `json:"description,omitempty"`
	Questions    []Question      `json:"questions"`
	PassingScore int             `json:"passingScore"`
	TimeLimit    *int            `json:"timeLimit,omitempty"` // seconds
	Type         QuizType        `json:"type"`
	Difficulty   DifficultyLevel `json:"difficulty"`
}

// Question is a single quiz question.
type Question struct {
	ID                 int64        `json:"id"`
	QuestionText       string       `json:"questionText"`
	Type               QuestionType `json:"type"`
	Options            []string     `json:"options,omitempty"`
	CorrectOptionIndex *int         `json:"correctOptionIndex,omitempty"`
	Explanation        string       `json:"explanation,omitempty"`
}

// QuizSubmission is the quiz grading payload.
type QuizSubmission struct {
	ChildID          int64            `json:"childId"`
	QuizID           int64            `json:"quizId"`
	Answers          map[int64]string `json:"answers"`
	TimeSpentSeconds *int             `json:"timeSpentSeconds,omitempty"`
	ClientKey        string           `json:"clientKey,omitempty"`
}

// QuizResult is the backend's grading of a submission, or a locally
// synthesized placeholder while the submission is deferred.
type QuizResult struct {
	AttemptID       int64            `json:"attemptId,omitempty"`
	Score           int              `json:"score"`
	Passed          bool             `json:"passed"`
	FeedbackMessage string           `json:"feedbackMessage"`
	QuestionResults []QuestionResult `json:"questionResults"`
	TotalQuestions  int              `json:"totalQuestions"`
	CorrectAnswers  int              `json:"correctAnswers"`
	Deferred        bool             `json:"-"` // set locally, never from the wire
}

// QuestionResult is the per-question grading detail.
type QuestionResult struct {
	QuestionID    int64  `json:"questionId"`
	QuestionText  string `json:"questionText"`
	UserAnswer    string `json:"userAnswer,omitempty"`
	CorrectAnswer string `json:"correctAnswer"`
	Correct       bool   `json:"correct"`
	Explanation   string `json:"explanation,omitempty"`
}

// DeferredFeedback is the feedback message attached to a placeholder
// result for an attempt saved while offline.
const DeferredFeedback = "Quiz saved offline. It will be submitted when you're back online."

// DeferredResult builds the canonical placeholder result for a submission
// that could not be graded yet. Counts stay zero: the answer map may be
// partial, so it cannot stand in for the quiz's question count, and the
// feedback message carries the meaning instead.
func DeferredResult() QuizResult {
	return QuizResult{
		Score:           0,
		Passed:          false,
		TotalQuestions:  0,
		CorrectAnswers:  0,
		QuestionResults: []QuestionResult{},
		FeedbackMessage: DeferredFeedback,
		Deferred:        true,
	}
}
