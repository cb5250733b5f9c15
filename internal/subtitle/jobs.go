package subtitle

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/indic-translate/backend/internal/job"
)

// JobResult is the stored outcome of a subtitle translation job.
type JobResult struct {
	Content string `json:"content"` // translated SRT text
	Stats   *Stats `json:"stats"`
}

// NewJobHandler binds subtitle translation to the job queue.
func NewJobHandler(t *Translator, queue *job.JobQueue) job.JobHandler {
	return func(ctx context.Context, j *job.Job, updateProgress func(float64)) error {
		var params job.TranslateSubtitleParams
		if err := json.Unmarshal(j.Params, &params); err != nil {
			return fmt.Errorf("unmarshal params: %w", err)
		}

		doc, err := Parse(params.Content)
		if err != nil {
			return fmt.Errorf("parse subtitle: %w", err)
		}

		log.Printf("[subtitle] job %s: %d entries %s -> %s", j.ID, len(doc.Entries), params.SourceLang, params.TargetLang)
		updateProgress(0.1)

		var out *Document
		var stats *Stats
		if params.UseContext {
			out, stats, err = t.TranslateWithContext(ctx, doc, params.Domain, params.Region, params.SourceLang, params.TargetLang, params.ContextSize)
		} else {
			out, stats, err = t.TranslateDocument(ctx, doc, params.Domain, params.Region, params.SourceLang, params.TargetLang)
		}
		if err != nil {
			return fmt.Errorf("translate subtitle: %w", err)
		}

		result := JobResult{Content: out.Serialize(), Stats: stats}
		if err := queue.SetResult(j.ID, result, len(params.Content)); err != nil {
			return fmt.Errorf("store result: %w", err)
		}

		updateProgress(1.0)
		return nil
	}
}
