package subtitle

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/indic-translate/backend/internal/translate"
)

// DefaultContextWindow is how many neighboring entries surround the
// target entry in context-aware translation.
const DefaultContextWindow = 2

// TranslateWithContext translates each entry together with its k
// preceding and k following entries, then recovers the target entry's
// span from the jointly translated text by word counting: skip as many
// words as the preceding context had, take as many as the target had.
//
// Word counts are not translation-invariant across languages, so the
// recovered span can drift for language pairs that segment words
// differently. Kept as-is for parity with the plain per-entry path.
func (t *Translator) TranslateWithContext(ctx context.Context, doc *Document, domain, region, sourceLang, targetLang string, window int) (*Document, *Stats, error) {
	if err := translate.ValidateLangs(sourceLang, targetLang); err != nil {
		return nil, nil, err
	}
	if window <= 0 {
		window = DefaultContextWindow
	}

	sourceLang = t.resolveSource(ctx, doc, sourceLang)

	out := &Document{Entries: make([]Entry, len(doc.Entries))}
	stats := &Stats{Entries: len(doc.Entries)}

	for i, e := range doc.Entries {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			case <-time.After(t.orch.RequestDelay()):
			}
		}

		var before, after []string
		for j := max(0, i-window); j < i; j++ {
			before = append(before, doc.Entries[j].FlatText())
		}
		for j := i + 1; j < len(doc.Entries) && j <= i+window; j++ {
			after = append(after, doc.Entries[j].FlatText())
		}

		target := e.FlatText()
		joined := strings.Join(append(append(append([]string{}, before...), target), after...), " ")
		transformed, _, _ := t.orch.Pipeline().Apply(joined, domain, region)

		callCtx, cancel := context.WithTimeout(ctx, t.orch.CallTimeout())
		translated, err := t.orch.Provider().Translate(callCtx, transformed, sourceLang, targetLang)
		cancel()

		text := target
		level := LevelOriginal
		if err == nil && strings.TrimSpace(translated) != "" {
			text = recoverSpan(translated, countWords(strings.Join(before, " ")), countWords(target))
			level = LevelIndividual
		} else if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		} else {
			log.Printf("[subtitle] context window call failed for entry %d, keeping original: %v", e.Index, err)
		}

		out.Entries[i] = Entry{Index: e.Index, Start: e.Start, End: e.End, Lines: []string{text}}
		stats.record(level)
	}

	return out, stats, nil
}

// recoverSpan picks targetWords words out of translated, skipping the
// words attributed to the preceding context.
func recoverSpan(translated string, skipWords, targetWords int) string {
	words := strings.Fields(translated)
	if skipWords >= len(words) {
		return translated
	}
	end := skipWords + targetWords
	if end > len(words) {
		end = len(words)
	}
	return strings.Join(words[skipWords:end], " ")
}

func countWords(s string) int {
	return len(strings.Fields(s))
}
