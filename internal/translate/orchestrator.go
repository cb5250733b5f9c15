package translate

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/indic-translate/backend/internal/lang"
)

const (
	// DefaultChunkSize is the largest text sent in one provider call.
	DefaultChunkSize = 4500
	// DefaultRequestDelay is the pause between successive chunk calls.
	// Backpressure for the provider's rate limits, not a tuning knob.
	DefaultRequestDelay = 100 * time.Millisecond
	// DefaultCallTimeout bounds each individual provider call.
	DefaultCallTimeout = 30 * time.Second
	// detectPrefixLen is how much of a document feeds language detection.
	detectPrefixLen = 500
)

// Orchestrator runs the end-to-end translation flow for plain text and
// whole documents. Chunk calls are issued sequentially with a fixed delay
// so the provider is never hit in bursts.
type Orchestrator struct {
	provider    Provider
	pipeline    *Pipeline
	chunkSize   int
	delay       time.Duration
	callTimeout time.Duration
}

func NewOrchestrator(provider Provider, pipeline *Pipeline, chunkSize int, delay, callTimeout time.Duration) *Orchestrator {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if delay <= 0 {
		delay = DefaultRequestDelay
	}
	if callTimeout <= 0 {
		callTimeout = DefaultCallTimeout
	}
	return &Orchestrator{
		provider:    provider,
		pipeline:    pipeline,
		chunkSize:   chunkSize,
		delay:       delay,
		callTimeout: callTimeout,
	}
}

// Pipeline exposes the transform pipeline for collaborators that apply
// transforms themselves (the subtitle translator).
func (o *Orchestrator) Pipeline() *Pipeline { return o.pipeline }

// Provider exposes the translation provider.
func (o *Orchestrator) Provider() Provider { return o.provider }

// CallTimeout is the per-call deadline applied to provider requests.
func (o *Orchestrator) CallTimeout() time.Duration { return o.callTimeout }

// RequestDelay is the pause inserted between successive provider calls.
func (o *Orchestrator) RequestDelay() time.Duration { return o.delay }

// TextResult is the outcome of a plain-text translation.
type TextResult struct {
	Original        string `json:"original"`
	Translated      string `json:"translated"`
	DetectedLang    string `json:"detected_language"`
	GlossaryApplied bool   `json:"glossary_applied"`
	RegionApplied   bool   `json:"region_adapted"`
}

// DocumentResult is the outcome of a whole-document translation.
type DocumentResult struct {
	OriginalText    string `json:"original_text"`
	TranslatedText  string `json:"translated_text"`
	DetectedLang    string `json:"detected_language"`
	TargetLang      string `json:"target_language"`
	CharCount       int    `json:"character_count"`
	GlossaryApplied bool   `json:"glossary_applied"`
	RegionApplied   bool   `json:"region_adapted"`
}

// ValidateLangs checks the source/target pair against the supported set.
// sourceLang may be "auto".
func ValidateLangs(sourceLang, targetLang string) error {
	if !lang.IsSupported(targetLang) {
		return Validationf("unsupported target language: %q", targetLang)
	}
	if sourceLang != lang.Auto && !lang.IsSupported(sourceLang) {
		return Validationf("unsupported source language: %q", sourceLang)
	}
	return nil
}

// TranslateText translates plain text, applying glossary and regional
// transforms first. Individual chunk failures fall back to the chunk's
// untranslated text; only cancellation or bad input fail the call.
func (o *Orchestrator) TranslateText(ctx context.Context, text, domain, regionName, sourceLang, targetLang string) (*TextResult, error) {
	if err := ValidateLangs(sourceLang, targetLang); err != nil {
		return nil, err
	}

	detected := sourceLang
	if sourceLang == lang.Auto {
		detected = o.Detect(ctx, text).Language
	}

	transformed, glossaryApplied, regionApplied := o.pipeline.Apply(text, domain, regionName)

	translated, err := o.translateChunked(ctx, transformed, detected, targetLang)
	if err != nil {
		return nil, err
	}

	return &TextResult{
		Original:        text,
		Translated:      translated,
		DetectedLang:    detected,
		GlossaryApplied: glossaryApplied,
		RegionApplied:   regionApplied,
	}, nil
}

// TranslateDocument translates already-extracted document text. Empty
// extraction output is a validation failure. Language detection runs on a
// bounded prefix, and translation is skipped entirely when the detected
// source equals the target.
func (o *Orchestrator) TranslateDocument(ctx context.Context, extractedText, domain, regionName, sourceLang, targetLang string) (*DocumentResult, error) {
	if strings.TrimSpace(extractedText) == "" {
		return nil, Validationf("no text extracted from document")
	}
	if err := ValidateLangs(sourceLang, targetLang); err != nil {
		return nil, err
	}

	detected := sourceLang
	if sourceLang == lang.Auto {
		prefix := extractedText
		if len(prefix) > detectPrefixLen {
			prefix = prefix[:detectPrefixLen]
		}
		detected = o.Detect(ctx, prefix).Language
		log.Printf("[translate] detected document language: %s", detected)
	}

	transformed, glossaryApplied, regionApplied := o.pipeline.Apply(extractedText, domain, regionName)

	translated := transformed
	if detected != targetLang {
		var err error
		translated, err = o.translateChunked(ctx, transformed, detected, targetLang)
		if err != nil {
			return nil, err
		}
	} else {
		log.Printf("[translate] source equals target (%s), skipping provider", targetLang)
	}

	return &DocumentResult{
		OriginalText:    extractedText,
		TranslatedText:  translated,
		DetectedLang:    detected,
		TargetLang:      targetLang,
		CharCount:       len(extractedText),
		GlossaryApplied: glossaryApplied,
		RegionApplied:   regionApplied,
	}, nil
}

// translateChunked issues one provider call for short text, or one call
// per segment for long text with the configured inter-call delay. A chunk
// whose call fails keeps its untranslated text; chunk order is preserved.
func (o *Orchestrator) translateChunked(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	if len(text) <= o.chunkSize {
		out, err := o.callTranslate(ctx, text, sourceLang, targetLang)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			log.Printf("[translate] call failed, keeping original text: %v", err)
			return text, nil
		}
		return out, nil
	}

	chunks := Segment(text, o.chunkSize)
	log.Printf("[translate] text length %d exceeds chunk size, split into %d chunks", len(text), len(chunks))

	translated := make([]string, len(chunks))
	for i, chunk := range chunks {
		if i > 0 {
			if err := o.pause(ctx); err != nil {
				return "", err
			}
		}

		out, err := o.callTranslate(ctx, chunk, sourceLang, targetLang)
		if err != nil {
			if ctx.Err() != nil {
				// Cancellation discards everything translated so far.
				return "", ctx.Err()
			}
			log.Printf("[translate] chunk %d/%d failed, keeping original: %v", i+1, len(chunks), err)
			out = chunk
		}
		translated[i] = out
	}

	return strings.Join(translated, " "), nil
}

// callTranslate wraps one provider call with the per-call timeout. An
// empty provider result counts as a failure so the caller falls back.
func (o *Orchestrator) callTranslate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.callTimeout)
	defer cancel()

	out, err := o.provider.Translate(callCtx, text, sourceLang, targetLang)
	if err != nil {
		return "", providerErr("translate", err)
	}
	if strings.TrimSpace(out) == "" {
		return "", providerErr("translate", errEmptyResult)
	}
	return out, nil
}

// Detect identifies the language of text. Provider failures fall back to
// a heuristic: pure 7-bit-clean text is assumed English at low confidence.
func (o *Orchestrator) Detect(ctx context.Context, text string) Detection {
	callCtx, cancel := context.WithTimeout(ctx, o.callTimeout)
	defer cancel()

	if d, err := o.provider.Detect(callCtx, text); err == nil && d.Language != "" {
		return d
	}

	if isASCII(text) {
		log.Printf("[translate] detection failed, ASCII-only text assumed English")
		return Detection{Language: "en", Confidence: 0.5}
	}

	log.Printf("[translate] language detection failed for non-ASCII text")
	return Detection{Language: "unknown", Confidence: 0}
}

func (o *Orchestrator) pause(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(o.delay):
		return nil
	}
}

func isASCII(text string) bool {
	for _, r := range text {
		if r > 127 {
			return false
		}
	}
	return true
}
