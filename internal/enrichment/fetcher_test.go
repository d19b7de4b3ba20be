package enrichment

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wortwise/wortwise-api/internal/domain"
)

type fakeTranslator struct {
	translation string
	err         error
	calls       atomic.Int32
	lastWord    string
}

func (f *fakeTranslator) Translate(_ context.Context, word string, _, _ domain.Language) (string, error) {
	f.calls.Add(1)
	f.lastWord = word
	return f.translation, f.err
}

type fakeLookup struct {
	entries  []DictionaryEntry
	err      error
	calls    atomic.Int32
	lastWord string
}

func (f *fakeLookup) Lookup(_ context.Context, word string) ([]DictionaryEntry, error) {
	f.calls.Add(1)
	f.lastWord = word
	return f.entries, f.err
}

func someEntries() []DictionaryEntry {
	return []DictionaryEntry{
		{
			Word:     "house",
			Phonetic: "/haʊs/",
			Meanings: []Meaning{
				{
					PartOfSpeech: "noun",
					Synonyms:     []string{"dwelling"},
					Definitions:  []Definition{{Definition: "a building for living in"}},
				},
			},
		},
	}
}

func TestFetchFromEnglish(t *testing.T) {
	t.Parallel()

	t.Run("looks up the original English word", func(t *testing.T) {
		translator := &fakeTranslator{translation: "Haus"}
		lookup := &fakeLookup{entries: someEntries()}
		fetcher := NewFetcher(translator, lookup, nil)

		result, err := fetcher.Fetch(context.Background(), "house", domain.LanguageEnglish, domain.LanguageGerman)

		require.NoError(t, err)
		assert.Equal(t, "Haus", result.Translation)
		assert.Equal(t, "house", lookup.lastWord)
		require.NotNil(t, result.Info)
		assert.Equal(t, "/haʊs/", result.Info.Phonetic)
		assert.Equal(t, []string{"dwelling"}, result.Info.Synonyms)
	})

	t.Run("translation failure fails the operation", func(t *testing.T) {
		translator := &fakeTranslator{err: errors.New("upstream down")}
		lookup := &fakeLookup{entries: someEntries()}
		fetcher := NewFetcher(translator, lookup, nil)

		_, err := fetcher.Fetch(context.Background(), "house", domain.LanguageEnglish, domain.LanguageGerman)

		require.ErrorIs(t, err, ErrNoTranslation)
		assert.Contains(t, err.Error(), "house")
	})

	t.Run("lookup failure is tolerated", func(t *testing.T) {
		translator := &fakeTranslator{translation: "Haus"}
		lookup := &fakeLookup{err: ErrLookupFailed}
		fetcher := NewFetcher(translator, lookup, nil)

		result, err := fetcher.Fetch(context.Background(), "house", domain.LanguageEnglish, domain.LanguageGerman)

		require.NoError(t, err)
		assert.Equal(t, "Haus", result.Translation)
		assert.Nil(t, result.Info)
	})
}

func TestFetchToEnglish(t *testing.T) {
	t.Parallel()

	t.Run("looks up the translated word", func(t *testing.T) {
		translator := &fakeTranslator{translation: "house"}
		lookup := &fakeLookup{entries: someEntries()}
		fetcher := NewFetcher(translator, lookup, nil)

		result, err := fetcher.Fetch(context.Background(), "Haus", domain.LanguageGerman, domain.LanguageEnglish)

		require.NoError(t, err)
		assert.Equal(t, "house", result.Translation)
		assert.Equal(t, "house", lookup.lastWord,
			"dictionary only accepts English, so the translated form must be looked up")
		require.NotNil(t, result.Info)
	})

	t.Run("translation failure skips the lookup entirely", func(t *testing.T) {
		translator := &fakeTranslator{err: errors.New("upstream down")}
		lookup := &fakeLookup{entries: someEntries()}
		fetcher := NewFetcher(translator, lookup, nil)

		_, err := fetcher.Fetch(context.Background(), "Haus", domain.LanguageGerman, domain.LanguageEnglish)

		require.ErrorIs(t, err, ErrNoTranslation)
		assert.Equal(t, int32(0), lookup.calls.Load())
	})

	t.Run("lookup failure is tolerated", func(t *testing.T) {
		translator := &fakeTranslator{translation: "house"}
		lookup := &fakeLookup{err: ErrLookupFailed}
		fetcher := NewFetcher(translator, lookup, nil)

		result, err := fetcher.Fetch(context.Background(), "Haus", domain.LanguageGerman, domain.LanguageEnglish)

		require.NoError(t, err)
		assert.Equal(t, "house", result.Translation)
		assert.Nil(t, result.Info)
	})
}

func TestFetchEmptyLookupResponse(t *testing.T) {
	t.Parallel()

	translator := &fakeTranslator{translation: "Haus"}
	lookup := &fakeLookup{entries: nil}
	fetcher := NewFetcher(translator, lookup, nil)

	result, err := fetcher.Fetch(context.Background(), "house", domain.LanguageEnglish, domain.LanguageGerman)

	require.NoError(t, err)
	assert.Nil(t, result.Info)
}

func TestFetchDeduplicatesAcrossEntries(t *testing.T) {
	t.Parallel()

	translator := &fakeTranslator{translation: "Haus"}
	lookup := &fakeLookup{entries: []DictionaryEntry{
		{Meanings: []Meaning{{Synonyms: []string{"dwelling", "home"}}}},
		{Meanings: []Meaning{{Synonyms: []string{"home", "residence"}}}},
	}}
	fetcher := NewFetcher(translator, lookup, nil)

	result, err := fetcher.Fetch(context.Background(), "house", domain.LanguageEnglish, domain.LanguageGerman)

	require.NoError(t, err)
	require.NotNil(t, result.Info)
	assert.Equal(t, []string{"dwelling", "home", "residence"}, result.Info.Synonyms)
}
