// Package translate drives the translation pipeline: glossary and
// regional transforms, chunking for size-limited provider calls, and the
// fallback policy that keeps one bad chunk from failing a document.
package translate

import "context"

// Detection is the outcome of language detection.
type Detection struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// Provider is the external machine-translation backend.
type Provider interface {
	// Translate translates a single text.
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
	// TranslateBatch translates texts preserving length and order.
	TranslateBatch(ctx context.Context, texts []string, sourceLang, targetLang string) ([]string, error)
	// Detect identifies the language of text.
	Detect(ctx context.Context, text string) (Detection, error)
	// Name returns the provider name for logging.
	Name() string
}
