package models

// ProgressReport is the dashboard progress summary for a child.
type ProgressReport struct {
	ChildID                int64                      `json:"childId"`
	ChildUsername          string                     `json:"childUsername"`
	CurrentStreak          int                        `json:"currentStreak"`
	TotalQuizzesCompleted  int                        `json:"totalQuizzesCompleted"`
	TotalQuestionsAnswered int                        `json:"totalQuestionsAnswered"`
	AverageScore           float64                    `json:"averageScore"`
	SubjectProgress        map[string]SubjectProgress `json:"subjectProgress,omitempty"`
}

// SubjectProgress is per-subject proficiency detail.
type SubjectProgress struct {
	SubjectName      string `json:"subjectName"`
	ProficiencyScore int    `json:"proficiencyScore"`
	CurrentLevel     string `json:"currentLevel"`
	QuizzesCompleted int    `json:"quizzesCompleted"`
	AverageScore     int    `json:"averageScore"`
}

// Badge is an earned achievement badge.
type Badge struct {
	ID          int64  `json:"id"`
	BadgeName   string `json:"badgeName"`
	Description string `json:"description,omitempty"`
	IconURL     string `json:"iconUrl,omitempty"`
	Points      int    `json:"points"`
	EarnedAt    string `json:"earnedAt"`
}
