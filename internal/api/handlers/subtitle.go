package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/indic-translate/backend/internal/db"
	"github.com/indic-translate/backend/internal/job"
	"github.com/indic-translate/backend/internal/lang"
	"github.com/indic-translate/backend/internal/subtitle"
)

// maxSubtitleUpload caps subtitle uploads at 10 MiB.
const maxSubtitleUpload = 10 << 20

type SubtitleHandler struct {
	translator *subtitle.Translator
	queue      *job.JobQueue
	database   *db.Database
}

func NewSubtitleHandler(translator *subtitle.Translator, queue *job.JobQueue, database *db.Database) *SubtitleHandler {
	return &SubtitleHandler{translator: translator, queue: queue, database: database}
}

// Translate accepts a multipart SRT upload and returns the translated file.
// With async=true the file is queued instead and the job record is returned.
func (h *SubtitleHandler) Translate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSubtitleUpload)
	if err := r.ParseMultipartForm(maxSubtitleUpload); err != nil {
		jsonError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "missing subtitle file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, "failed to read subtitle file", http.StatusBadRequest)
		return
	}

	params := job.TranslateSubtitleParams{
		Content:    string(content),
		SourceLang: r.FormValue("source_language"),
		TargetLang: r.FormValue("target_language"),
		Domain:     r.FormValue("domain"),
		Region:     r.FormValue("region"),
		UseContext: r.FormValue("use_context") == "true",
	}
	if params.SourceLang == "" {
		params.SourceLang = lang.Auto
	}
	if params.Domain == "" {
		params.Domain = h.database.GetSetting("default_domain", "")
	}
	if params.Region == "" {
		params.Region = h.database.GetSetting("default_region", "")
	}
	if v := r.FormValue("context_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			jsonError(w, "invalid context_size", http.StatusBadRequest)
			return
		}
		params.ContextSize = n
	}

	if r.FormValue("async") == "true" {
		j, err := h.queue.Enqueue(job.JobTranslateSubtitle, params)
		if err != nil {
			jsonError(w, "failed to queue job: "+err.Error(), http.StatusInternalServerError)
			return
		}
		jsonResponse(w, j, http.StatusAccepted)
		return
	}

	translated, stats, err := h.translateSync(r, params)
	if err != nil {
		writeTranslateError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/x-subrip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.srt"`, uuid.New().String()))
	w.Header().Set("X-Subtitle-Entries", strconv.Itoa(stats.Entries))
	w.Header().Set("X-Subtitle-Fallbacks", strconv.Itoa(stats.Individual+stats.Original))
	w.Write([]byte(translated))
}

func (h *SubtitleHandler) translateSync(r *http.Request, params job.TranslateSubtitleParams) (string, *subtitle.Stats, error) {
	ctx := r.Context()
	if !params.UseContext {
		return h.translator.TranslateRaw(ctx, params.Content, params.Domain, params.Region, params.SourceLang, params.TargetLang)
	}

	doc, err := subtitle.Parse(params.Content)
	if err != nil {
		return "", nil, err
	}
	out, stats, err := h.translator.TranslateWithContext(ctx, doc, params.Domain, params.Region, params.SourceLang, params.TargetLang, params.ContextSize)
	if err != nil {
		return "", nil, err
	}
	return out.Serialize(), stats, nil
}
