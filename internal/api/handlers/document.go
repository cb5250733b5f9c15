package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/indic-translate/backend/internal/db"
	"github.com/indic-translate/backend/internal/job"
	"github.com/indic-translate/backend/internal/lang"
)

type DocumentHandler struct {
	queue    *job.JobQueue
	database *db.Database
}

func NewDocumentHandler(queue *job.JobQueue, database *db.Database) *DocumentHandler {
	return &DocumentHandler{queue: queue, database: database}
}

// Translate queues an extracted-text document for translation and returns
// the job record. Progress and results are fetched through the jobs API.
func (h *DocumentHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var params job.TranslateDocumentParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(params.Text) == "" {
		jsonError(w, "document text must not be empty", http.StatusBadRequest)
		return
	}
	if params.SourceLang == "" {
		params.SourceLang = lang.Auto
	}
	if !lang.IsSupported(params.TargetLang) {
		jsonError(w, "unsupported target language", http.StatusBadRequest)
		return
	}
	if params.SourceLang != lang.Auto && !lang.IsSupported(params.SourceLang) {
		jsonError(w, "unsupported source language", http.StatusBadRequest)
		return
	}
	if params.Domain == "" {
		params.Domain = h.database.GetSetting("default_domain", "")
	}
	if params.Region == "" {
		params.Region = h.database.GetSetting("default_region", "")
	}

	j, err := h.queue.Enqueue(job.JobTranslateDocument, params)
	if err != nil {
		jsonError(w, "failed to queue job: "+err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, j, http.StatusAccepted)
}
