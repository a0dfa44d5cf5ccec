package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/deusflow/ainexus/internal/logger"
)

const googleTranslateURL = "https://translate.googleapis.com/translate_a/single"

// GoogleTranslator uses the free public Google Translate endpoint.
type GoogleTranslator struct {
	BaseURL string
	client  *http.Client
}

func NewGoogleTranslator() *GoogleTranslator {
	return &GoogleTranslator{
		BaseURL: googleTranslateURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *GoogleTranslator) Name() string { return "google" }

func (g *GoogleTranslator) Translate(ctx context.Context, text, targetLocale string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", "auto")
	params.Set("tl", targetLocale)
	params.Set("dt", "t") // return translations
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP error: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Debug("failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google translate returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("error reading response: %w", err)
	}

	translation, err := parseGoogleTranslateResponse(body)
	if err != nil {
		return "", fmt.Errorf("error parsing response: %w", err)
	}
	return translation, nil
}

// parseGoogleTranslateResponse joins the translated segments of a gtx reply,
// which looks like [[["translated","source",...],...],...].
func parseGoogleTranslateResponse(body []byte) (string, error) {
	var response []interface{}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	if len(response) == 0 {
		return "", errors.New("empty response from Google Translate")
	}

	segments, ok := response[0].([]interface{})
	if !ok {
		return "", errors.New("unexpected response format")
	}

	var result strings.Builder
	for _, segment := range segments {
		if parts, ok := segment.([]interface{}); ok && len(parts) > 0 {
			if translated, ok := parts[0].(string); ok {
				result.WriteString(translated)
			}
		}
	}
	return result.String(), nil
}
