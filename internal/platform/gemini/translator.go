// Package gemini implements the translation capability using Google's
// Gemini API. It is an alternative to the LibreTranslate backend, selected
// through configuration.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wortwise/wortwise-api/internal/domain"
	"github.com/wortwise/wortwise-api/internal/enrichment"
	"google.golang.org/genai"
)

// ErrInvalidConfig indicates the translator was configured incorrectly.
var ErrInvalidConfig = errors.New("invalid gemini configuration")

// Translator implements enrichment.Translator on top of the Gemini API.
type Translator struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

var _ enrichment.Translator = (*Translator)(nil)

// NewTranslator creates a Gemini-backed translator.
//
// Returns an error if the API key or model name is empty, or if the
// underlying client cannot be created.
func NewTranslator(ctx context.Context, logger *slog.Logger, apiKey, modelName string) (*Translator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", ErrInvalidConfig)
	}
	if modelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", ErrInvalidConfig, err)
	}

	return &Translator{
		logger: logger.With(slog.String("component", "gemini_translator")),
		client: client,
		model:  modelName,
	}, nil
}

// Translate implements enrichment.Translator.
func (t *Translator) Translate(ctx context.Context, word string, from, to domain.Language) (string, error) {
	if word == "" {
		return "", errors.New("word cannot be empty")
	}

	prompt := buildPrompt(word, from, to)

	t.logger.DebugContext(ctx, "making Gemini translation call",
		slog.String("from", string(from)),
		slog.String("to", string(to)))

	resp, err := t.client.Models.GenerateContent(ctx, t.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini call: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("gemini call: empty response")
	}

	// The prompt asks for the bare translation, but models occasionally
	// wrap it in quotes or trailing punctuation.
	text = strings.Trim(text, "\"'.")
	if text == "" {
		return "", errors.New("gemini call: empty translation")
	}

	return text, nil
}

func buildPrompt(word string, from, to domain.Language) string {
	return fmt.Sprintf(
		"Translate the %s word %q into %s. Respond with only the single most common translation, no explanation.",
		from.DisplayName(), word, to.DisplayName())
}
