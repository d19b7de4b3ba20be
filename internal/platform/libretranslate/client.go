// Package libretranslate implements the translation capability against a
// LibreTranslate instance.
package libretranslate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/wortwise/wortwise-api/internal/domain"
	"github.com/wortwise/wortwise-api/internal/enrichment"
	"github.com/wortwise/wortwise-api/internal/redact"
)

const (
	requestTimeout = 5 * time.Second
	maxRedirects   = 5
)

// Client translates words through a LibreTranslate server.
type Client struct {
	http    *resty.Client
	baseURL string
	apiKey  string
	logger  *slog.Logger
}

// Ensure Client implements the translation capability
var _ enrichment.Translator = (*Client)(nil)

// translateResponse is LibreTranslate's answer shape.
type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// NewClient creates a LibreTranslate client against the given base URL.
// apiKey may be empty for unauthenticated instances. If logger is nil, a
// default logger will be used.
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := resty.New().
		SetTimeout(requestTimeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects))

	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  logger.With(slog.String("component", "libretranslate_client")),
	}
}

// Translate implements enrichment.Translator. Failures are returned as-is
// for the orchestrator to classify; the client itself never retries.
func (c *Client) Translate(ctx context.Context, word string, from, to domain.Language) (string, error) {
	log := c.logger.With(
		slog.String("from", string(from)),
		slog.String("to", string(to)))

	form := map[string]string{
		"q":      word,
		"source": string(from),
		"target": string(to),
		"format": "text",
	}
	if c.apiKey != "" {
		form["api_key"] = c.apiKey
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(form).
		Post(c.baseURL + "/translate")
	if err != nil {
		log.Warn("translate request failed", slog.String("error", redact.Error(err)))
		return "", fmt.Errorf("translate request: %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		log.Warn("translate request rejected", slog.Int("status", res.StatusCode()))
		return "", fmt.Errorf("translate request: status %d", res.StatusCode())
	}

	var body translateResponse
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		log.Warn("translate response undecodable", slog.String("error", err.Error()))
		return "", fmt.Errorf("translate response: %w", err)
	}
	if body.TranslatedText == "" {
		return "", fmt.Errorf("translate response: empty translation")
	}

	log.Debug("translation succeeded")
	return body.TranslatedText, nil
}
