// Package dictionaryapi implements the lexical-lookup capability against
// the free dictionary API (dictionaryapi.dev). The API serves English
// entries only.
package dictionaryapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/wortwise/wortwise-api/internal/enrichment"
	"github.com/wortwise/wortwise-api/internal/redact"
)

// Outbound call policy. Failures are converted into a domain error and
// never retried; a missing lexical record just means an unenriched card.
const (
	requestTimeout = 5 * time.Second
	maxRedirects   = 5
)

// Client looks up English words on the free dictionary API.
type Client struct {
	http    *resty.Client
	baseURL string
	logger  *slog.Logger
}

// Ensure Client implements the lexical-lookup capability
var _ enrichment.LexicalLookup = (*Client)(nil)

// NewClient creates a dictionary API client against the given base URL
// (e.g. "https://api.dictionaryapi.dev"). If logger is nil, a default
// logger will be used.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := resty.New().
		SetTimeout(requestTimeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects))

	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		logger:  logger.With(slog.String("component", "dictionaryapi_client")),
	}
}

// Lookup implements enrichment.LexicalLookup. It fetches all dictionary
// entries for the given English word. Transport failures, non-200 answers
// and undecodable bodies all map to enrichment.ErrLookupFailed.
func (c *Client) Lookup(ctx context.Context, englishWord string) ([]enrichment.DictionaryEntry, error) {
	log := c.logger.With(slog.String("word", englishWord))

	res, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("%s/api/v2/entries/en/%s", c.baseURL, url.PathEscape(englishWord)))
	if err != nil {
		log.Warn("dictionary request failed", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("%w: %v", enrichment.ErrLookupFailed, err)
	}
	if res.StatusCode() != http.StatusOK {
		log.Warn("dictionary request rejected", slog.Int("status", res.StatusCode()))
		return nil, fmt.Errorf("%w: status %d", enrichment.ErrLookupFailed, res.StatusCode())
	}

	var entries []enrichment.DictionaryEntry
	if err := json.Unmarshal(res.Body(), &entries); err != nil {
		log.Warn("dictionary response undecodable", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: decode: %v", enrichment.ErrLookupFailed, err)
	}

	log.Debug("dictionary lookup succeeded", slog.Int("entries", len(entries)))
	return entries, nil
}
