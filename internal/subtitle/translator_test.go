package subtitle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/indic-translate/backend/internal/glossary"
	"github.com/indic-translate/backend/internal/translate"
)

// stubProvider uppercases text; batch and individual failures are
// switchable to exercise the fallback cascade.
type stubProvider struct {
	batchCalls      int
	singleCalls     int
	failBatch       bool
	failSingleTexts map[string]bool
}

func (p *stubProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.singleCalls++
	if p.failSingleTexts[text] {
		return "", errors.New("simulated failure")
	}
	return strings.ToUpper(text), nil
}

func (p *stubProvider) TranslateBatch(ctx context.Context, texts []string, sourceLang, targetLang string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.batchCalls++
	if p.failBatch {
		return nil, errors.New("simulated batch failure")
	}
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = strings.ToUpper(t)
	}
	return out, nil
}

func (p *stubProvider) Detect(ctx context.Context, text string) (translate.Detection, error) {
	return translate.Detection{Language: "en", Confidence: 0.95}, nil
}

func (p *stubProvider) Name() string { return "stub" }

type emptySource struct{}

func (emptySource) Load(domain string) (glossary.Glossary, error) {
	return nil, fmt.Errorf("domain %q: %w", domain, glossary.ErrNotFound)
}

func newTestTranslator(p translate.Provider, batchSize int) *Translator {
	pipeline := translate.NewPipeline(glossary.NewCache(emptySource{}, time.Minute))
	orch := translate.NewOrchestrator(p, pipeline, 4500, time.Millisecond, time.Second)
	return NewTranslator(orch, batchSize)
}

func TestTranslateRaw_UppercaseStub(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(&stubProvider{}, 20)

	out, stats, err := tr.TranslateRaw(context.Background(), sampleSRT, "general", "default", "en", "hi")
	if err != nil {
		t.Fatalf("TranslateRaw failed: %v", err)
	}

	want := "1\n00:00:01,000 --> 00:00:02,000\nHELLO\n\n2\n00:00:02,500 --> 00:00:03,000\nWORLD\n\n"
	if out != want {
		t.Errorf("structure not preserved:\n  want %q\n  got  %q", want, out)
	}
	if stats.Batch != 2 || stats.Individual != 0 || stats.Original != 0 {
		t.Errorf("expected all entries via batch, got %+v", stats)
	}
}

func TestTranslateDocument_BatchCascade(t *testing.T) {
	t.Parallel()

	stub := &stubProvider{failBatch: true}
	tr := newTestTranslator(stub, 20)

	doc, _ := Parse(sampleSRT)
	out, stats, err := tr.TranslateDocument(context.Background(), doc, "general", "default", "en", "hi")
	if err != nil {
		t.Fatalf("TranslateDocument failed: %v", err)
	}

	// Individual calls must produce the same texts a working batch would.
	if out.Entries[0].FlatText() != "HELLO" || out.Entries[1].FlatText() != "WORLD" {
		t.Errorf("individual fallback produced wrong texts: %+v", out.Entries)
	}
	if stats.Individual != 2 || stats.Batch != 0 {
		t.Errorf("expected individual fallback, got %+v", stats)
	}
	if stub.singleCalls != 2 {
		t.Errorf("expected 2 individual calls, got %d", stub.singleCalls)
	}
}

func TestTranslateDocument_EntryFallbackKeepsOriginal(t *testing.T) {
	t.Parallel()

	stub := &stubProvider{
		failBatch:       true,
		failSingleTexts: map[string]bool{"Hello": true},
	}
	tr := newTestTranslator(stub, 20)

	doc, _ := Parse(sampleSRT)
	out, stats, err := tr.TranslateDocument(context.Background(), doc, "general", "default", "en", "hi")
	if err != nil {
		t.Fatalf("TranslateDocument failed: %v", err)
	}

	if out.Entries[0].FlatText() != "Hello" {
		t.Errorf("failed entry must keep original text, got %q", out.Entries[0].FlatText())
	}
	if out.Entries[1].FlatText() != "WORLD" {
		t.Errorf("other entries must still translate, got %q", out.Entries[1].FlatText())
	}
	if stats.Original != 1 || stats.Individual != 1 {
		t.Errorf("expected mixed outcome, got %+v", stats)
	}
}

func TestTranslateDocument_TimingPreservedOnFallback(t *testing.T) {
	t.Parallel()

	stub := &stubProvider{failBatch: true, failSingleTexts: map[string]bool{"Hello": true, "World": true}}
	tr := newTestTranslator(stub, 20)

	doc, _ := Parse(sampleSRT)
	out, _, err := tr.TranslateDocument(context.Background(), doc, "general", "default", "en", "hi")
	if err != nil {
		t.Fatalf("TranslateDocument failed: %v", err)
	}

	for i := range doc.Entries {
		if out.Entries[i].Index != doc.Entries[i].Index ||
			out.Entries[i].Start != doc.Entries[i].Start ||
			out.Entries[i].End != doc.Entries[i].End {
			t.Errorf("entry %d timing changed: %+v vs %+v", i, out.Entries[i], doc.Entries[i])
		}
	}
}

func TestTranslateDocument_BatchSizeSplitsCalls(t *testing.T) {
	t.Parallel()

	stub := &stubProvider{}
	tr := newTestTranslator(stub, 1)

	doc, _ := Parse(sampleSRT)
	if _, _, err := tr.TranslateDocument(context.Background(), doc, "general", "default", "en", "hi"); err != nil {
		t.Fatalf("TranslateDocument failed: %v", err)
	}
	if stub.batchCalls != 2 {
		t.Errorf("expected 2 batch calls with batch size 1, got %d", stub.batchCalls)
	}
}

func TestTranslateDocument_UnsupportedLanguage(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(&stubProvider{}, 20)
	doc, _ := Parse(sampleSRT)

	_, _, err := tr.TranslateDocument(context.Background(), doc, "general", "default", "en", "xx")
	if !translate.IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestTranslateDocument_Cancellation(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(&stubProvider{}, 20)
	doc, _ := Parse(sampleSRT)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := tr.TranslateDocument(ctx, doc, "general", "default", "en", "hi")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestTranslateWithContext_SpanRecovery(t *testing.T) {
	t.Parallel()

	// The stub uppercases, so word counts survive translation and span
	// recovery is exact.
	tr := newTestTranslator(&stubProvider{}, 20)

	raw := "1\n00:00:01,000 --> 00:00:02,000\none two\n\n" +
		"2\n00:00:02,500 --> 00:00:03,000\nthree four five\n\n" +
		"3\n00:00:03,500 --> 00:00:04,000\nsix\n\n"
	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	out, _, err := tr.TranslateWithContext(context.Background(), doc, "general", "default", "en", "hi", 1)
	if err != nil {
		t.Fatalf("TranslateWithContext failed: %v", err)
	}

	wants := []string{"ONE TWO", "THREE FOUR FIVE", "SIX"}
	for i, want := range wants {
		if got := out.Entries[i].FlatText(); got != want {
			t.Errorf("entry %d: expected %q, got %q", i, want, got)
		}
	}
}

func TestTranslateWithContext_FailureKeepsOriginal(t *testing.T) {
	t.Parallel()

	stub := &stubProvider{failSingleTexts: map[string]bool{"one two three four five": true}}
	tr := newTestTranslator(stub, 20)

	raw := "1\n00:00:01,000 --> 00:00:02,000\none two\n\n" +
		"2\n00:00:02,500 --> 00:00:03,000\nthree four five\n\n" +
		"3\n00:00:03,500 --> 00:00:04,000\nsix\n\n"
	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	out, stats, err := tr.TranslateWithContext(context.Background(), doc, "general", "default", "en", "hi", 1)
	if err != nil {
		t.Fatalf("TranslateWithContext failed: %v", err)
	}
	if out.Entries[0].FlatText() != "one two" {
		t.Errorf("failed window must keep the target's original text, got %q", out.Entries[0].FlatText())
	}
	if out.Entries[1].FlatText() != "THREE FOUR FIVE" {
		t.Errorf("later entries must still translate, got %q", out.Entries[1].FlatText())
	}
	if stats.Original != 1 {
		t.Errorf("expected one original-level outcome, got %+v", stats)
	}
}
