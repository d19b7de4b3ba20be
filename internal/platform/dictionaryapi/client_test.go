package dictionaryapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wortwise/wortwise-api/internal/enrichment"
)

const helloResponse = `[
  {
    "word": "hello",
    "phonetic": "həˈləʊ",
    "phonetics": [
      {"text": "həˈləʊ", "audio": "https://audio.example/hello.mp3"},
      {"text": "hɛˈləʊ"}
    ],
    "meanings": [
      {
        "partOfSpeech": "exclamation",
        "synonyms": ["hi", "hey"],
        "antonyms": ["goodbye"],
        "definitions": [
          {
            "definition": "used as a greeting",
            "example": "hello there, Katie!"
          }
        ]
      }
    ]
  }
]`

func TestLookup(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/entries/en/hello", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(helloResponse))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	entries, err := client.Lookup(context.Background(), "hello")

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "hello", entries[0].Word)
	assert.Equal(t, "həˈləʊ", entries[0].Phonetic)
	require.Len(t, entries[0].Phonetics, 2)
	assert.Equal(t, "https://audio.example/hello.mp3", entries[0].Phonetics[0].Audio)
	require.Len(t, entries[0].Meanings, 1)
	assert.Equal(t, []string{"hi", "hey"}, entries[0].Meanings[0].Synonyms)
	assert.Equal(t, "used as a greeting", entries[0].Meanings[0].Definitions[0].Definition)
	assert.Equal(t, "hello there, Katie!", entries[0].Meanings[0].Definitions[0].Example)
}

func TestLookupUnknownWord(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"title":"No Definitions Found"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.Lookup(context.Background(), "xyzzy")

	assert.ErrorIs(t, err, enrichment.ErrLookupFailed)
}

func TestLookupUndecodableBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.Lookup(context.Background(), "hello")

	assert.ErrorIs(t, err, enrichment.ErrLookupFailed)
}

func TestLookupServerUnreachable(t *testing.T) {
	t.Parallel()

	// Point at a closed port.
	client := NewClient("http://127.0.0.1:1", nil)
	_, err := client.Lookup(context.Background(), "hello")

	assert.ErrorIs(t, err, enrichment.ErrLookupFailed)
}
