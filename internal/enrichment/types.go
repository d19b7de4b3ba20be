// Package enrichment merges heterogeneous external lexical data into the
// canonical card record: it orchestrates the translation and dictionary
// lookups for a word and aggregates the responses into a single normalized
// Info value.
package enrichment

import (
	"context"
	"errors"

	"github.com/wortwise/wortwise-api/internal/domain"
)

// Capability errors.
var (
	// ErrNoTranslation is returned when the translation capability failed or
	// produced no usable translation. Fatal to card creation.
	ErrNoTranslation = errors.New("no translation found")

	// ErrLookupFailed is returned by lexical-lookup clients on transport or
	// decode failure. Tolerated by the orchestrator: the card is created
	// without enrichment fields.
	ErrLookupFailed = errors.New("lexical lookup failed")
)

// Translator translates a single word or phrase between two languages.
type Translator interface {
	Translate(ctx context.Context, word string, from, to domain.Language) (string, error)
}

// LexicalLookup fetches dictionary entries for an English word. The backing
// dictionary accepts English input only, which is why the orchestrator's
// call order depends on which side of the language pair is English.
type LexicalLookup interface {
	Lookup(ctx context.Context, englishWord string) ([]DictionaryEntry, error)
}

// DictionaryEntry is one dictionary record for a word, in the shape the
// free dictionary API returns. A lookup may return several independent
// entries for the same word.
type DictionaryEntry struct {
	Word      string     `json:"word"`
	Phonetic  string     `json:"phonetic,omitempty"`
	Phonetics []Phonetic `json:"phonetics"`
	Meanings  []Meaning  `json:"meanings"`
}

// Phonetic is one phonetic variant of an entry; Audio may be empty.
type Phonetic struct {
	Text  string `json:"text,omitempty"`
	Audio string `json:"audio,omitempty"`
}

// Meaning groups an entry's senses by part of speech.
type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
	Synonyms     []string     `json:"synonyms"`
	Antonyms     []string     `json:"antonyms"`
}

// Definition is a single sense with an optional example sentence.
type Definition struct {
	Definition string `json:"definition"`
	Example    string `json:"example,omitempty"`
}

// Info is the normalized enrichment record attached to a card. Slices keep
// the source order; Phonetic and AudioLink always come from the same
// phonetic variant when an audio-bearing one exists.
type Info struct {
	Phonetic    string
	AudioLink   string
	Definitions []string
	Examples    []string
	Synonyms    []string
	Antonyms    []string
}
