package enrichment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wortwise/wortwise-api/internal/domain"
)

// Result is what external data collection produces for one word: the
// translation into the deck's other language, plus the normalized lexical
// record when the dictionary lookup succeeded. Info is nil when the lookup
// failed or returned nothing; the card is then created with
// translation-only data.
type Result struct {
	Translation string
	Info        *Info
}

// Fetcher coordinates the translation and lexical-lookup capabilities for
// one word. The dictionary accepts English input only, so when the source
// language is already English both calls run concurrently; otherwise the
// lookup has to wait for the translated form.
type Fetcher struct {
	translator Translator
	lookup     LexicalLookup
	logger     *slog.Logger
}

// NewFetcher creates a Fetcher from the two capabilities.
func NewFetcher(translator Translator, lookup LexicalLookup, logger *slog.Logger) *Fetcher {
	if translator == nil {
		panic("translator cannot be nil")
	}
	if lookup == nil {
		panic("lookup cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Fetcher{
		translator: translator,
		lookup:     lookup,
		logger:     logger.With(slog.String("component", "enrichment_fetcher")),
	}
}

// Fetch collects the external data for word. A translation failure fails
// the whole operation with ErrNoTranslation naming the word; a lookup
// failure is tolerated and only logged. Exactly one of from/to must be
// English, which the validation layer guarantees before cards are created.
func (f *Fetcher) Fetch(ctx context.Context, word string, from, to domain.Language) (Result, error) {
	if from.IsEnglish() {
		return f.fetchFromEnglish(ctx, word, from, to)
	}
	return f.fetchToEnglish(ctx, word, from, to)
}

// fetchFromEnglish issues the translation and the lookup concurrently; the
// word is already English so the dictionary can take it directly.
func (f *Fetcher) fetchFromEnglish(ctx context.Context, word string, from, to domain.Language) (Result, error) {
	type lookupResult struct {
		entries []DictionaryEntry
		err     error
	}

	lookupCh := make(chan lookupResult, 1)
	go func() {
		entries, err := f.lookup.Lookup(ctx, word)
		lookupCh <- lookupResult{entries: entries, err: err}
	}()

	translation, err := f.translator.Translate(ctx, word, from, to)
	if err != nil {
		// Drain the lookup so the goroutine never blocks on send; its
		// result is unused because the operation already failed.
		<-lookupCh
		f.logger.Warn("translation failed",
			slog.String("word", word),
			slog.String("error", err.Error()))
		return Result{}, fmt.Errorf("%w: %s", ErrNoTranslation, word)
	}

	lr := <-lookupCh
	return Result{
		Translation: translation,
		Info:        f.buildInfo(word, lr.entries, lr.err),
	}, nil
}

// fetchToEnglish translates first and looks up the translated, now-English
// word only on success.
func (f *Fetcher) fetchToEnglish(ctx context.Context, word string, from, to domain.Language) (Result, error) {
	translation, err := f.translator.Translate(ctx, word, from, to)
	if err != nil {
		f.logger.Warn("translation failed",
			slog.String("word", word),
			slog.String("error", err.Error()))
		return Result{}, fmt.Errorf("%w: %s", ErrNoTranslation, word)
	}

	entries, lookupErr := f.lookup.Lookup(ctx, translation)
	return Result{
		Translation: translation,
		Info:        f.buildInfo(translation, entries, lookupErr),
	}, nil
}

// buildInfo turns a lookup result into the normalized record, tolerating
// failures: on error or an empty response the enrichment fields are simply
// left unset downstream.
func (f *Fetcher) buildInfo(word string, entries []DictionaryEntry, err error) *Info {
	if err != nil {
		f.logger.Warn("lexical lookup failed, creating card without enrichment",
			slog.String("word", word),
			slog.String("error", err.Error()))
		return nil
	}
	if len(entries) == 0 {
		return nil
	}

	DeduplicateMeanings(entries)
	info := Extract(entries)
	return &info
}
