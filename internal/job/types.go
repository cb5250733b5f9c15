package job

import (
	"context"
	"encoding/json"
	"time"
)

// JobType represents the kind of job
type JobType string

const (
	JobTranslateDocument JobType = "translate_document"
	JobTranslateSubtitle JobType = "translate_subtitle"
)

// JobStatus represents the current state of a job
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusCancelled JobStatus = "cancelled"
)

// Job represents a queued translation task
type Job struct {
	ID          string          `json:"id"`
	Type        JobType         `json:"type"`
	Status      JobStatus       `json:"status"`
	Params      json.RawMessage `json:"params"`
	Progress    float64         `json:"progress"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
	CharCount   int             `json:"char_count"`
	CreatedAt   time.Time       `json:"created_at"`
	StartedAt   *time.Time      `json:"started_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// TranslateDocumentParams are parameters for a document translation job.
// Text arrives already extracted as UTF-8.
type TranslateDocumentParams struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_language"`
	TargetLang string `json:"target_language"`
	Domain     string `json:"domain"`
	Region     string `json:"region"`
}

// TranslateSubtitleParams are parameters for a subtitle translation job
type TranslateSubtitleParams struct {
	Content     string `json:"content"` // raw SRT text
	SourceLang  string `json:"source_language"`
	TargetLang  string `json:"target_language"`
	Domain      string `json:"domain"`
	Region      string `json:"region"`
	UseContext  bool   `json:"use_context"`
	ContextSize int    `json:"context_size"`
}

// JobHandler processes a job. Implementations are provided by the
// translate/subtitle packages.
type JobHandler func(ctx context.Context, job *Job, updateProgress func(float64)) error
