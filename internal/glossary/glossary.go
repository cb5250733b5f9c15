// Package glossary loads domain-specific term mappings and applies them
// to text before translation. Mappings are cached with a TTL so repeated
// requests for the same domain do not re-read the backing store.
package glossary

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Term is a single source-term ⇒ replacement pair.
type Term struct {
	Source      string
	Replacement string
}

// Glossary is an ordered list of term replacements for one domain.
// Order matters: terms are applied first to last, so an earlier term wins
// when two terms overlap in the text.
type Glossary []Term

// Apply replaces every exact, case-sensitive occurrence of each term in
// order and returns the result.
func (g Glossary) Apply(text string) string {
	for _, t := range g {
		text = strings.ReplaceAll(text, t.Source, t.Replacement)
	}
	return text
}

// parseGlossary decodes a JSON object of term ⇒ replacement pairs,
// preserving the key order of the document. A plain map would lose order,
// so the object is walked token by token.
func parseGlossary(data []byte) (Glossary, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode glossary: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("decode glossary: expected JSON object, got %v", tok)
	}

	var g Glossary
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode glossary key: %w", err)
		}
		key := keyTok.(string)

		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode glossary value for %q: %w", key, err)
		}
		g = append(g, Term{Source: key, Replacement: value})
	}

	return g, nil
}
