package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/indic-translate/backend/internal/db"
	"github.com/indic-translate/backend/internal/db/models"
	"github.com/indic-translate/backend/internal/lang"
)

type FeedbackHandler struct {
	database *db.Database
}

func NewFeedbackHandler(database *db.Database) *FeedbackHandler {
	return &FeedbackHandler{database: database}
}

// Submit stores a rating for a translation result
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var f models.Feedback
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if f.Rating < 1 || f.Rating > 5 {
		jsonError(w, "rating must be between 1 and 5", http.StatusBadRequest)
		return
	}
	if f.SourceLang != "" && !lang.IsSupported(f.SourceLang) {
		jsonError(w, "unsupported source language", http.StatusBadRequest)
		return
	}
	if f.TargetLang != "" && !lang.IsSupported(f.TargetLang) {
		jsonError(w, "unsupported target language", http.StatusBadRequest)
		return
	}

	if err := h.database.SaveFeedback(&f); err != nil {
		jsonError(w, "failed to save feedback", http.StatusInternalServerError)
		return
	}

	jsonResponse(w, f, http.StatusCreated)
}

// Stats returns aggregate job and feedback counters for the dashboard
func (h *FeedbackHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.database.GetUsageStats()
	if err != nil {
		jsonError(w, "failed to load stats", http.StatusInternalServerError)
		return
	}
	jsonResponse(w, stats, http.StatusOK)
}
