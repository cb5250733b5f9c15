package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/indic-translate/backend/internal/job"
)

// NewDocumentJobHandler binds document translation to the job queue.
func NewDocumentJobHandler(o *Orchestrator, queue *job.JobQueue) job.JobHandler {
	return func(ctx context.Context, j *job.Job, updateProgress func(float64)) error {
		var params job.TranslateDocumentParams
		if err := json.Unmarshal(j.Params, &params); err != nil {
			return fmt.Errorf("unmarshal params: %w", err)
		}

		log.Printf("[translate] document job %s: %s -> %s domain=%s region=%s chars=%d",
			j.ID, params.SourceLang, params.TargetLang, params.Domain, params.Region, len(params.Text))
		updateProgress(0.1)

		result, err := o.TranslateDocument(ctx, params.Text, params.Domain, params.Region, params.SourceLang, params.TargetLang)
		if err != nil {
			return fmt.Errorf("translate document: %w", err)
		}

		if err := queue.SetResult(j.ID, result, result.CharCount); err != nil {
			return fmt.Errorf("store result: %w", err)
		}

		updateProgress(1.0)
		return nil
	}
}
