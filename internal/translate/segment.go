package translate

import (
	"strings"
	"unicode"
)

// sentenceEnd reports whether r ends a sentence. The Devanagari danda
// (full stop) is included alongside Latin punctuation.
func sentenceEnd(r rune) bool {
	switch r {
	case '.', '!', '?', ';', '।':
		return true
	}
	return false
}

// Segment splits text into chunks of at most maxChunkSize characters,
// breaking at sentence boundaries where possible and at word boundaries
// inside oversized sentences. A single word longer than maxChunkSize is
// returned whole. Chunk order follows input order, and joining the chunks
// with single spaces reproduces the input up to whitespace normalization.
// Empty or whitespace-only input yields no chunks.
func Segment(text string, maxChunkSize int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			chunks = append(chunks, s)
		}
		current.Reset()
	}

	for _, sentence := range splitSentences(text) {
		switch {
		case len(sentence) > maxChunkSize:
			flush()
			chunks = append(chunks, splitWords(sentence, maxChunkSize)...)
		case current.Len()+len(sentence)+1 <= maxChunkSize:
			current.WriteString(sentence)
			current.WriteByte(' ')
		default:
			flush()
			current.WriteString(sentence)
			current.WriteByte(' ')
		}
	}
	flush()

	return chunks
}

// splitSentences splits on sentence-ending punctuation followed by
// whitespace, keeping the punctuation with its sentence.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	runes := []rune(text)

	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])
		if sentenceEnd(runes[i]) && (i+1 == len(runes) || unicode.IsSpace(runes[i+1])) {
			// Swallow the following whitespace run.
			for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
				i++
			}
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// splitWords breaks an oversized sentence into word groups of at most
// maxChunkSize characters.
func splitWords(sentence string, maxChunkSize int) []string {
	var groups []string
	var current strings.Builder

	for _, word := range strings.Fields(sentence) {
		if current.Len() > 0 && current.Len()+len(word)+1 > maxChunkSize {
			groups = append(groups, strings.TrimSpace(current.String()))
			current.Reset()
		}
		current.WriteString(word)
		current.WriteByte(' ')
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		groups = append(groups, s)
	}

	return groups
}
