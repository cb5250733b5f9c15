package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/indic-translate/backend/internal/db"
	"github.com/indic-translate/backend/internal/glossary"
	"github.com/indic-translate/backend/internal/lang"
	"github.com/indic-translate/backend/internal/region"
	"github.com/indic-translate/backend/internal/translate"
)

type TranslateHandler struct {
	orch       *translate.Orchestrator
	glossaries *glossary.FileSource
	database   *db.Database
}

func NewTranslateHandler(orch *translate.Orchestrator, glossaries *glossary.FileSource, database *db.Database) *TranslateHandler {
	return &TranslateHandler{orch: orch, glossaries: glossaries, database: database}
}

type translateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_language"`
	TargetLang string `json:"target_language"`
	Domain     string `json:"domain"`
	Region     string `json:"region"`
}

// applyDefaults fills in admin-configured defaults for omitted fields.
func (h *TranslateHandler) applyDefaults(req *translateRequest) {
	if req.SourceLang == "" {
		req.SourceLang = lang.Auto
	}
	if req.Domain == "" {
		req.Domain = h.database.GetSetting("default_domain", "")
	}
	if req.Region == "" {
		req.Region = h.database.GetSetting("default_region", "")
	}
}

// Translate handles single-text translation
func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	h.applyDefaults(&req)

	result, err := h.orch.TranslateText(r.Context(), req.Text, req.Domain, req.Region, req.SourceLang, req.TargetLang)
	if err != nil {
		writeTranslateError(w, err)
		return
	}

	jsonResponse(w, result, http.StatusOK)
}

type batchTranslateRequest struct {
	Texts      []string `json:"texts"`
	SourceLang string   `json:"source_language"`
	TargetLang string   `json:"target_language"`
	Domain     string   `json:"domain"`
	Region     string   `json:"region"`
}

// TranslateBatch translates each text independently. A failed item keeps
// its untranslated text rather than failing the batch.
func (h *TranslateHandler) TranslateBatch(w http.ResponseWriter, r *http.Request) {
	var req batchTranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Texts) == 0 {
		jsonError(w, "texts must not be empty", http.StatusBadRequest)
		return
	}
	single := translateRequest{
		SourceLang: req.SourceLang,
		TargetLang: req.TargetLang,
		Domain:     req.Domain,
		Region:     req.Region,
	}
	h.applyDefaults(&single)

	if err := translate.ValidateLangs(single.SourceLang, single.TargetLang); err != nil {
		writeTranslateError(w, err)
		return
	}

	results := make([]*translate.TextResult, 0, len(req.Texts))
	for _, text := range req.Texts {
		result, err := h.orch.TranslateText(r.Context(), text, single.Domain, single.Region, single.SourceLang, single.TargetLang)
		if err != nil {
			if r.Context().Err() != nil {
				writeTranslateError(w, err)
				return
			}
			result = &translate.TextResult{Original: text, Translated: text, DetectedLang: single.SourceLang}
		}
		results = append(results, result)
	}

	jsonResponse(w, map[string]interface{}{"results": results}, http.StatusOK)
}

type detectRequest struct {
	Text string `json:"text"`
}

// Detect reports the detected language of the submitted text
func (h *TranslateHandler) Detect(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		jsonError(w, "text must not be empty", http.StatusBadRequest)
		return
	}

	d := h.orch.Detect(r.Context(), req.Text)
	jsonResponse(w, d, http.StatusOK)
}

// Languages lists the supported language codes with display names
func (h *TranslateHandler) Languages(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, map[string]interface{}{"languages": lang.All()}, http.StatusOK)
}

// Regions lists the regions with adaptation rules
func (h *TranslateHandler) Regions(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, map[string]interface{}{"regions": region.Names()}, http.StatusOK)
}

// Domains lists the glossary domains available on disk
func (h *TranslateHandler) Domains(w http.ResponseWriter, r *http.Request) {
	domains, err := h.glossaries.Domains()
	if err != nil {
		jsonError(w, "failed to list glossary domains", http.StatusInternalServerError)
		return
	}
	if domains == nil {
		domains = []string{}
	}
	jsonResponse(w, map[string]interface{}{"domains": domains}, http.StatusOK)
}

// writeTranslateError maps translation errors onto HTTP statuses.
func writeTranslateError(w http.ResponseWriter, err error) {
	switch {
	case translate.IsValidation(err):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		jsonError(w, "request cancelled", http.StatusServiceUnavailable)
	default:
		jsonError(w, "translation failed: "+err.Error(), http.StatusInternalServerError)
	}
}
