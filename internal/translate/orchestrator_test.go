package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/indic-translate/backend/internal/glossary"
)

// stubProvider uppercases text and can be told to fail specific calls.
type stubProvider struct {
	calls      int
	failOn     map[int]bool // fail the nth Translate call (1-based)
	failDetect bool
	detectLang string
}

func (p *stubProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.calls++
	if p.failOn[p.calls] {
		return "", errors.New("simulated provider failure")
	}
	return strings.ToUpper(text), nil
}

func (p *stubProvider) TranslateBatch(ctx context.Context, texts []string, sourceLang, targetLang string) ([]string, error) {
	out := make([]string, len(texts))
	for i, t := range texts {
		translated, err := p.Translate(ctx, t, sourceLang, targetLang)
		if err != nil {
			return nil, fmt.Errorf("batch item %d: %w", i, err)
		}
		out[i] = translated
	}
	return out, nil
}

func (p *stubProvider) Detect(ctx context.Context, text string) (Detection, error) {
	if p.failDetect {
		return Detection{}, errors.New("detect unavailable")
	}
	lang := p.detectLang
	if lang == "" {
		lang = "en"
	}
	return Detection{Language: lang, Confidence: 0.95}, nil
}

func (p *stubProvider) Name() string { return "stub" }

func newTestOrchestrator(p Provider, chunkSize int) *Orchestrator {
	return NewOrchestrator(p, newTestPipeline(), chunkSize, time.Millisecond, time.Second)
}

func TestTranslateText_SingleCall(t *testing.T) {
	t.Parallel()

	stub := &stubProvider{}
	o := newTestOrchestrator(stub, 100)

	res, err := o.TranslateText(context.Background(), "I bought a car", "automotive", "default", "en", "hi")
	if err != nil {
		t.Fatalf("TranslateText failed: %v", err)
	}

	if res.Translated != "I BOUGHT A AUTOMOBILE" {
		t.Errorf("expected transformed then translated text, got %q", res.Translated)
	}
	if !res.GlossaryApplied {
		t.Error("expected glossaryApplied")
	}
	if res.RegionApplied {
		t.Error("regionApplied should be false for default region")
	}
	if stub.calls != 1 {
		t.Errorf("expected 1 provider call, got %d", stub.calls)
	}
}

func TestTranslateText_UnsupportedLanguage(t *testing.T) {
	t.Parallel()

	o := newTestOrchestrator(&stubProvider{}, 100)

	_, err := o.TranslateText(context.Background(), "hello", "general", "default", "en", "xx")
	if !IsValidation(err) {
		t.Errorf("expected ValidationError for unsupported target, got %v", err)
	}

	_, err = o.TranslateText(context.Background(), "hello", "general", "default", "zz", "hi")
	if !IsValidation(err) {
		t.Errorf("expected ValidationError for unsupported source, got %v", err)
	}
}

func TestTranslateText_ChunkFallback(t *testing.T) {
	t.Parallel()

	// Chunk limit 15 splits the text into two chunks; the first call fails.
	stub := &stubProvider{failOn: map[int]bool{1: true}}
	o := newTestOrchestrator(stub, 15)

	res, err := o.TranslateText(context.Background(), "Hello world. This is a test.", "none", "default", "en", "hi")
	if err != nil {
		t.Fatalf("TranslateText failed: %v", err)
	}

	want := "Hello world. THIS IS A TEST."
	if res.Translated != want {
		t.Errorf("expected failed chunk to keep original text:\n  want %q\n  got  %q", want, res.Translated)
	}
}

func TestTranslateText_AutoDetect(t *testing.T) {
	t.Parallel()

	stub := &stubProvider{detectLang: "ta"}
	o := newTestOrchestrator(stub, 100)

	res, err := o.TranslateText(context.Background(), "வணக்கம்", "none", "default", "auto", "en")
	if err != nil {
		t.Fatalf("TranslateText failed: %v", err)
	}
	if res.DetectedLang != "ta" {
		t.Errorf("expected detected language ta, got %q", res.DetectedLang)
	}
}

func TestDetect_ASCIIHeuristicFallback(t *testing.T) {
	t.Parallel()

	o := newTestOrchestrator(&stubProvider{failDetect: true}, 100)

	d := o.Detect(context.Background(), "plain ascii text")
	if d.Language != "en" || d.Confidence != 0.5 {
		t.Errorf("expected en/0.5 heuristic, got %s/%.2f", d.Language, d.Confidence)
	}

	d = o.Detect(context.Background(), "हिन्दी पाठ")
	if d.Language != "unknown" || d.Confidence != 0 {
		t.Errorf("expected unknown/0 for non-ASCII, got %s/%.2f", d.Language, d.Confidence)
	}
}

func TestTranslateDocument_EmptyText(t *testing.T) {
	t.Parallel()

	o := newTestOrchestrator(&stubProvider{}, 100)

	_, err := o.TranslateDocument(context.Background(), "   ", "general", "default", "en", "hi")
	if !IsValidation(err) {
		t.Errorf("expected ValidationError for empty extraction, got %v", err)
	}
}

func TestTranslateDocument_SkipsWhenSourceEqualsTarget(t *testing.T) {
	t.Parallel()

	stub := &stubProvider{detectLang: "hi"}
	o := newTestOrchestrator(stub, 100)

	res, err := o.TranslateDocument(context.Background(), "नमस्ते", "none", "default", "auto", "hi")
	if err != nil {
		t.Fatalf("TranslateDocument failed: %v", err)
	}
	if res.TranslatedText != "नमस्ते" {
		t.Errorf("expected untouched text when source equals target, got %q", res.TranslatedText)
	}
	if stub.calls != 0 {
		t.Errorf("expected no translate calls, got %d", stub.calls)
	}
}

func TestTranslateDocument_CharCount(t *testing.T) {
	t.Parallel()

	o := newTestOrchestrator(&stubProvider{}, 100)

	res, err := o.TranslateDocument(context.Background(), "hello there", "none", "default", "en", "hi")
	if err != nil {
		t.Fatalf("TranslateDocument failed: %v", err)
	}
	if res.CharCount != len("hello there") {
		t.Errorf("expected char count %d, got %d", len("hello there"), res.CharCount)
	}
}

func TestTranslateText_CancellationAbortsWholeCall(t *testing.T) {
	t.Parallel()

	stub := &stubProvider{}
	o := newTestOrchestrator(stub, 15)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.TranslateText(ctx, "Hello world. This is a test.", "none", "default", "en", "hi")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

type mapSourceEmpty struct{}

func (mapSourceEmpty) Load(domain string) (glossary.Glossary, error) {
	return nil, fmt.Errorf("domain %q: %w", domain, glossary.ErrNotFound)
}

func TestTranslateText_MissingGlossaryNotAnError(t *testing.T) {
	t.Parallel()

	o := NewOrchestrator(&stubProvider{}, NewPipeline(glossary.NewCache(mapSourceEmpty{}, time.Minute)), 100, time.Millisecond, time.Second)

	res, err := o.TranslateText(context.Background(), "hello", "ghost-domain", "default", "en", "hi")
	if err != nil {
		t.Fatalf("missing glossary domain must not fail the call: %v", err)
	}
	if res.GlossaryApplied {
		t.Error("glossaryApplied must be false when the domain has no glossary")
	}
}
