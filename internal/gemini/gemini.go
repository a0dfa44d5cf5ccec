package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/deusflow/ainexus/internal/logger"
	"github.com/deusflow/ainexus/internal/translate"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultModel = "gemini-1.5-flash"

// Client is a translate.Translator backed by Gemini.
type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{client: client, model: model}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		if err := c.client.Close(); err != nil {
			logger.Debug("failed to close Gemini client", "error", err)
		}
	}
}

func (c *Client) Name() string { return "gemini" }

func (c *Client) Translate(ctx context.Context, text, targetLocale string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.2)

	resp, err := model.GenerateContent(ctx, genai.Text(translate.TranslationPrompt(text, targetLocale)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return responseText(resp)
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}
	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini (finish reason %v)", cand.FinishReason)
	}

	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", fmt.Errorf("gemini returned no text parts")
	}
	return out, nil
}
