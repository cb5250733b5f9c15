package models

import "time"

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Role      string    `json:"role"` // admin, user
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Feedback is a user rating of one translation result.
type Feedback struct {
	ID         int64     `json:"id"`
	Rating     int       `json:"rating"` // 1..5
	Comment    string    `json:"comment,omitempty"`
	SourceLang string    `json:"source_language"`
	TargetLang string    `json:"target_language"`
	Domain     string    `json:"domain"`
	CreatedAt  time.Time `json:"created_at"`
}

// UsageStats aggregates translation activity for the dashboard.
type UsageStats struct {
	TotalJobs       int     `json:"total_jobs"`
	CompletedJobs   int     `json:"completed_jobs"`
	FailedJobs      int     `json:"failed_jobs"`
	FeedbackCount   int     `json:"feedback_count"`
	AverageRating   float64 `json:"average_rating"`
	CharsTranslated int64   `json:"characters_translated"`
}
