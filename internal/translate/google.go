package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultGoogleEndpoint = "https://translate.googleapis.com/translate_a/single"

// GoogleTranslator calls the public Google Translate web endpoint. No API
// key is required, which is why sequential calls with a delay matter: the
// endpoint rate-limits aggressively.
type GoogleTranslator struct {
	endpoint   string
	httpClient *http.Client
}

func NewGoogleTranslator(endpoint string) *GoogleTranslator {
	if endpoint == "" {
		endpoint = defaultGoogleEndpoint
	}
	return &GoogleTranslator{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 1 * time.Minute,
		},
	}
}

func (g *GoogleTranslator) Name() string {
	return "google"
}

func (g *GoogleTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	result, _, err := g.call(ctx, text, sourceLang, targetLang)
	return result, err
}

// TranslateBatch translates texts one at a time; the web endpoint has no
// batch form. Length and order of the result match the input.
func (g *GoogleTranslator) TranslateBatch(ctx context.Context, texts []string, sourceLang, targetLang string) ([]string, error) {
	results := make([]string, len(texts))
	for i, text := range texts {
		out, err := g.Translate(ctx, text, sourceLang, targetLang)
		if err != nil {
			return nil, fmt.Errorf("batch item %d: %w", i, err)
		}
		results[i] = out
	}
	return results, nil
}

func (g *GoogleTranslator) Detect(ctx context.Context, text string) (Detection, error) {
	_, detected, err := g.call(ctx, text, "auto", "en")
	if err != nil {
		return Detection{}, err
	}
	if detected == "" {
		return Detection{}, fmt.Errorf("no language in response")
	}
	return Detection{Language: detected, Confidence: 0.95}, nil
}

// call performs one request and returns the translated text plus the
// source language the endpoint reported.
func (g *GoogleTranslator) call(ctx context.Context, text, sourceLang, targetLang string) (string, string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", sourceLang)
	params.Set("tl", targetLang)
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, "GET", g.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", "", err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("translate API error (status %d): %s", resp.StatusCode, string(body))
	}

	return parseGoogleResponse(body)
}

// parseGoogleResponse unpacks the endpoint's nested-array payload:
// [[["translated","original",...],...],...,"src",...]. Sentence fragments
// in the first element are concatenated; the third element names the
// detected source language.
func parseGoogleResponse(body []byte) (string, string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", "", fmt.Errorf("parse response: %w", err)
	}
	if len(payload) == 0 {
		return "", "", fmt.Errorf("empty response")
	}

	var sentences [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &sentences); err != nil {
		return "", "", fmt.Errorf("parse sentences: %w", err)
	}

	var sb strings.Builder
	for _, sentence := range sentences {
		if len(sentence) == 0 {
			continue
		}
		var fragment string
		if err := json.Unmarshal(sentence[0], &fragment); err != nil {
			continue
		}
		sb.WriteString(fragment)
	}

	var detected string
	if len(payload) > 2 {
		// Ignore failure: older payload shapes put other types here.
		json.Unmarshal(payload[2], &detected)
	}

	return sb.String(), detected, nil
}
