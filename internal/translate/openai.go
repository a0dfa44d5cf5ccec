package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// OpenAITranslator asks a chat model for a translation.
type OpenAITranslator struct {
	client *openai.Client
	model  string
}

// NewOpenAITranslator creates the provider. baseURL may be empty for the public API.
func NewOpenAITranslator(apiKey, model, baseURL string) *OpenAITranslator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAITranslator{client: openai.NewClientWithConfig(cfg), model: model}
}

func (o *OpenAITranslator) Name() string { return "openai" }

func (o *OpenAITranslator) Translate(ctx context.Context, text, targetLocale string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: TranslationPrompt(text, targetLocale),
			},
		},
		MaxCompletionTokens: 1200,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// TranslationPrompt is shared by the LLM providers.
func TranslationPrompt(text, targetLocale string) string {
	return fmt.Sprintf(`Translate the following AI product news text into %s.
Keep product, company and model names in their original form.
Translate only the text itself, without quotes, notes or additional comments.

Text to translate:
%s`, LanguageName(targetLocale), text)
}

// LanguageName renders a locale tag as an English language name, e.g. "Chinese (China)".
func LanguageName(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return locale
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return locale
}
