package subtitle

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/indic-translate/backend/internal/lang"
	"github.com/indic-translate/backend/internal/translate"
)

// DefaultBatchSize is how many entries share one batched provider call.
const DefaultBatchSize = 20

// FallbackLevel records which strategy ultimately produced an entry's
// text. The cascade is ordered: batch call, then one call per entry, then
// keeping the untranslated text.
type FallbackLevel int

const (
	LevelBatch FallbackLevel = iota
	LevelIndividual
	LevelOriginal
)

func (l FallbackLevel) String() string {
	switch l {
	case LevelBatch:
		return "batch"
	case LevelIndividual:
		return "individual"
	default:
		return "original"
	}
}

// Stats summarizes how a document's entries were translated.
type Stats struct {
	Entries    int `json:"entries"`
	Batch      int `json:"batch"`
	Individual int `json:"individual"`
	Original   int `json:"original"`
}

func (s *Stats) record(level FallbackLevel) {
	switch level {
	case LevelBatch:
		s.Batch++
	case LevelIndividual:
		s.Individual++
	default:
		s.Original++
	}
}

// Translator translates caption documents entry by entry, preserving
// every index and timestamp.
type Translator struct {
	orch      *translate.Orchestrator
	batchSize int
}

func NewTranslator(orch *translate.Orchestrator, batchSize int) *Translator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Translator{orch: orch, batchSize: batchSize}
}

// TranslateRaw parses raw SRT content, translates it, and reserializes.
func (t *Translator) TranslateRaw(ctx context.Context, raw, domain, region, sourceLang, targetLang string) (string, *Stats, error) {
	doc, err := Parse(raw)
	if err != nil {
		return "", nil, err
	}

	out, stats, err := t.TranslateDocument(ctx, doc, domain, region, sourceLang, targetLang)
	if err != nil {
		return "", nil, err
	}
	return out.Serialize(), stats, nil
}

// TranslateDocument translates a parsed document in fixed-size batches.
// A failed batch call degrades to one call per entry; a failed entry call
// keeps the entry's untranslated text. Only cancellation or an
// unsupported language aborts the document.
func (t *Translator) TranslateDocument(ctx context.Context, doc *Document, domain, region, sourceLang, targetLang string) (*Document, *Stats, error) {
	if err := translate.ValidateLangs(sourceLang, targetLang); err != nil {
		return nil, nil, err
	}

	sourceLang = t.resolveSource(ctx, doc, sourceLang)

	out := &Document{Entries: make([]Entry, len(doc.Entries))}
	stats := &Stats{Entries: len(doc.Entries)}
	totalBatches := (len(doc.Entries) + t.batchSize - 1) / t.batchSize

	for start := 0; start < len(doc.Entries); start += t.batchSize {
		end := start + t.batchSize
		if end > len(doc.Entries) {
			end = len(doc.Entries)
		}
		batch := doc.Entries[start:end]
		batchNum := start/t.batchSize + 1

		// Transform each entry's flattened text before translation.
		texts := make([]string, len(batch))
		for i, e := range batch {
			texts[i], _, _ = t.orch.Pipeline().Apply(e.FlatText(), domain, region)
		}

		translated, levels, err := t.translateBatch(ctx, texts, sourceLang, targetLang)
		if err != nil {
			return nil, nil, err
		}

		for i, e := range batch {
			out.Entries[start+i] = Entry{
				Index: e.Index,
				Start: e.Start,
				End:   e.End,
				Lines: []string{translated[i]},
			}
			stats.record(levels[i])
		}

		log.Printf("[subtitle] translated batch %d/%d (%d entries)", batchNum, totalBatches, len(batch))
	}

	log.Printf("[subtitle] document done: %d entries (batch=%d individual=%d original=%d)",
		stats.Entries, stats.Batch, stats.Individual, stats.Original)
	return out, stats, nil
}

// translateBatch runs the fallback cascade for one batch of texts and
// reports the level that produced each result.
func (t *Translator) translateBatch(ctx context.Context, texts []string, sourceLang, targetLang string) ([]string, []FallbackLevel, error) {
	levels := make([]FallbackLevel, len(texts))

	batchCtx, cancel := context.WithTimeout(ctx, t.orch.CallTimeout())
	translated, err := t.orch.Provider().TranslateBatch(batchCtx, texts, sourceLang, targetLang)
	cancel()

	if err == nil && len(translated) == len(texts) {
		for i := range levels {
			levels[i] = LevelBatch
		}
		return translated, levels, nil
	}
	if ctx.Err() != nil {
		return nil, nil, ctx.Err()
	}
	log.Printf("[subtitle] batch call failed, falling back to per-entry calls: %v", err)

	// Individual fallback: one call per entry, keeping the untranslated
	// text for entries whose call also fails.
	results := make([]string, len(texts))
	for i, text := range texts {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			case <-time.After(t.orch.RequestDelay()):
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, t.orch.CallTimeout())
		out, err := t.orch.Provider().Translate(callCtx, text, sourceLang, targetLang)
		cancel()

		if err != nil || strings.TrimSpace(out) == "" {
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			log.Printf("[subtitle] entry call failed, keeping original text: %v", err)
			results[i] = text
			levels[i] = LevelOriginal
			continue
		}
		results[i] = out
		levels[i] = LevelIndividual
	}

	return results, levels, nil
}

// resolveSource detects the source language from a prefix of the document
// text when the caller asked for auto-detection.
func (t *Translator) resolveSource(ctx context.Context, doc *Document, sourceLang string) string {
	if sourceLang != lang.Auto {
		return sourceLang
	}

	var sb strings.Builder
	for _, e := range doc.Entries {
		sb.WriteString(e.FlatText())
		sb.WriteByte(' ')
		if sb.Len() >= 500 {
			break
		}
	}

	detected := t.orch.Detect(ctx, strings.TrimSpace(sb.String()))
	log.Printf("[subtitle] detected source language: %s (confidence %.2f)", detected.Language, detected.Confidence)
	if detected.Language == "unknown" {
		return lang.Auto
	}
	return detected.Language
}
