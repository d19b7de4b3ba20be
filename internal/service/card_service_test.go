package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wortwise/wortwise-api/internal/domain"
	"github.com/wortwise/wortwise-api/internal/enrichment"
	"github.com/wortwise/wortwise-api/internal/store"
)

func newTestDeck(t *testing.T, decks *fakeDeckStore, creatorID uuid.UUID, rate int) *domain.Deck {
	t.Helper()
	deck, err := domain.NewDeck(creatorID, "Vocabulary", rate, domain.LanguageEnglish, domain.LanguageGerman)
	require.NoError(t, err)
	require.NoError(t, decks.Create(context.Background(), deck))
	return deck
}

func newCardService(cards *fakeCardStore, decks *fakeDeckStore, fetcher *fakeFetcher) *CardService {
	return NewCardService(&fakeTxRunner{}, cards, decks, fetcher, nil)
}

func TestCardService_CreateCard(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("creates enriched card", func(t *testing.T) {
		t.Parallel()
		cards := newFakeCardStore()
		decks := newFakeDeckStore()
		deck := newTestDeck(t, decks, userID, 10)
		fetcher := &fakeFetcher{result: enrichment.Result{
			Translation: "Haus",
			Info: &enrichment.Info{
				Phonetic:    "/haʊs/",
				AudioLink:   "https://example.org/house.mp3",
				Definitions: []string{"a building for living in"},
				Synonyms:    []string{"dwelling"},
			},
		}}

		svc := newCardService(cards, decks, fetcher)
		card, err := svc.CreateCard(context.Background(), userID, deck.ID, "house")
		require.NoError(t, err)

		assert.Equal(t, "house", card.Word)
		assert.Equal(t, "Haus", card.Translation)
		assert.Equal(t, "/haʊs/", card.Phonetic)
		assert.Equal(t, []string{"dwelling"}, card.Synonyms)
		assert.Equal(t, 0, card.Stage)
		assert.Nil(t, card.Expires)

		stored, err := cards.GetByID(context.Background(), card.ID)
		require.NoError(t, err)
		assert.Equal(t, "Haus", stored.Translation)
	})

	t.Run("creates translation-only card when lookup produced nothing", func(t *testing.T) {
		t.Parallel()
		cards := newFakeCardStore()
		decks := newFakeDeckStore()
		deck := newTestDeck(t, decks, userID, 10)
		fetcher := &fakeFetcher{result: enrichment.Result{Translation: "Haus"}}

		svc := newCardService(cards, decks, fetcher)
		card, err := svc.CreateCard(context.Background(), userID, deck.ID, "house")
		require.NoError(t, err)
		assert.Empty(t, card.Phonetic)
		assert.Empty(t, card.Definitions)
	})

	t.Run("translation failure is fatal", func(t *testing.T) {
		t.Parallel()
		cards := newFakeCardStore()
		decks := newFakeDeckStore()
		deck := newTestDeck(t, decks, userID, 10)
		fetcher := &fakeFetcher{err: enrichment.ErrNoTranslation}

		svc := newCardService(cards, decks, fetcher)
		_, err := svc.CreateCard(context.Background(), userID, deck.ID, "house")
		assert.ErrorIs(t, err, enrichment.ErrNoTranslation)
		assert.Empty(t, cards.cards)
	})

	t.Run("duplicate word conflicts", func(t *testing.T) {
		t.Parallel()
		cards := newFakeCardStore()
		decks := newFakeDeckStore()
		deck := newTestDeck(t, decks, userID, 10)
		fetcher := &fakeFetcher{result: enrichment.Result{Translation: "Haus"}}

		svc := newCardService(cards, decks, fetcher)
		_, err := svc.CreateCard(context.Background(), userID, deck.ID, "house")
		require.NoError(t, err)

		_, err = svc.CreateCard(context.Background(), userID, deck.ID, "house")
		assert.ErrorIs(t, err, store.ErrWordExists)
	})

	t.Run("foreign deck is rejected before fetching", func(t *testing.T) {
		t.Parallel()
		cards := newFakeCardStore()
		decks := newFakeDeckStore()
		deck := newTestDeck(t, decks, uuid.New(), 10)
		fetcher := &fakeFetcher{result: enrichment.Result{Translation: "Haus"}}

		svc := newCardService(cards, decks, fetcher)
		_, err := svc.CreateCard(context.Background(), userID, deck.ID, "house")
		assert.ErrorIs(t, err, ErrNotDeckOwner)
		assert.Zero(t, fetcher.calls)
	})
}

func TestCardService_ReviewCard(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)
	today := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	setup := func(t *testing.T) (*CardService, *fakeCardStore, *fakeDeckStore, *domain.Deck, *domain.Card) {
		t.Helper()
		cards := newFakeCardStore()
		decks := newFakeDeckStore()
		deck := newTestDeck(t, decks, userID, 10)
		card, err := domain.NewCard(deck.ID, "house", "Haus")
		require.NoError(t, err)
		require.NoError(t, cards.Create(context.Background(), card))

		svc := newCardService(cards, decks, &fakeFetcher{})
		svc.timeFunc = func() time.Time { return now }
		return svc, cards, decks, deck, card
	}

	t.Run("good review advances stage and schedules expiry", func(t *testing.T) {
		t.Parallel()
		svc, cards, decks, deck, card := setup(t)

		reviewed, err := svc.ReviewCard(context.Background(), userID, deck.ID, card.ID, domain.ReviewOutcomeGood)
		require.NoError(t, err)
		assert.Equal(t, 1, reviewed.Stage)
		require.NotNil(t, reviewed.Expires)
		// stage 1 -> due in 2 days, truncated to midnight
		assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), *reviewed.Expires)

		stored, err := cards.GetByID(context.Background(), card.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.Stage)

		updatedDeck, err := decks.GetByID(context.Background(), deck.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, updatedDeck.NumCardsLearned)
		require.NotNil(t, updatedDeck.LastTimeLearned)
		assert.Equal(t, today, *updatedDeck.LastTimeLearned)
	})

	t.Run("second review same day increments the counter", func(t *testing.T) {
		t.Parallel()
		svc, cards, decks, deck, card := setup(t)
		second, err := domain.NewCard(deck.ID, "tree", "Baum")
		require.NoError(t, err)
		require.NoError(t, cards.Create(context.Background(), second))

		_, err = svc.ReviewCard(context.Background(), userID, deck.ID, card.ID, domain.ReviewOutcomeGood)
		require.NoError(t, err)
		_, err = svc.ReviewCard(context.Background(), userID, deck.ID, second.ID, domain.ReviewOutcomeEasy)
		require.NoError(t, err)

		updatedDeck, err := decks.GetByID(context.Background(), deck.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, updatedDeck.NumCardsLearned)
	})

	t.Run("review on a new day overwrites the counter", func(t *testing.T) {
		t.Parallel()
		svc, _, decks, deck, card := setup(t)
		yesterday := today.AddDate(0, 0, -1)
		stored := decks.decks[deck.ID]
		stored.NumCardsLearned = 7
		stored.LastTimeLearned = &yesterday

		_, err := svc.ReviewCard(context.Background(), userID, deck.ID, card.ID, domain.ReviewOutcomeHard)
		require.NoError(t, err)

		updatedDeck, err := decks.GetByID(context.Background(), deck.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, updatedDeck.NumCardsLearned)
		assert.Equal(t, today, *updatedDeck.LastTimeLearned)
	})

	t.Run("invalid outcome", func(t *testing.T) {
		t.Parallel()
		svc, _, _, deck, card := setup(t)
		_, err := svc.ReviewCard(context.Background(), userID, deck.ID, card.ID, "again")
		assert.ErrorIs(t, err, domain.ErrInvalidReviewOutcome)
	})

	t.Run("card from another deck conflicts", func(t *testing.T) {
		t.Parallel()
		svc, cards, decks, deck, _ := setup(t)
		other, err := domain.NewDeck(userID, "Other", 5, domain.LanguageEnglish, domain.LanguageSpanish)
		require.NoError(t, err)
		require.NoError(t, decks.Create(context.Background(), other))
		strayCard, err := domain.NewCard(other.ID, "tree", "árbol")
		require.NoError(t, err)
		require.NoError(t, cards.Create(context.Background(), strayCard))

		_, err = svc.ReviewCard(context.Background(), userID, deck.ID, strayCard.ID, domain.ReviewOutcomeGood)
		assert.ErrorIs(t, err, ErrCardNotInDeck)
	})
}

func TestCardService_CardsToLearn(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)

	t.Run("new cards precede due cards", func(t *testing.T) {
		t.Parallel()
		cards := newFakeCardStore()
		decks := newFakeDeckStore()
		deck := newTestDeck(t, decks, userID, 10)
		svc := newCardService(cards, decks, &fakeFetcher{})
		svc.timeFunc = func() time.Time { return now }

		// 5 new cards created in order
		var newIDs []uuid.UUID
		for i, word := range []string{"one", "two", "three", "four", "five"} {
			card, err := domain.NewCard(deck.ID, word, word)
			require.NoError(t, err)
			card.CreatedAt = now.Add(time.Duration(i) * time.Minute)
			require.NoError(t, cards.Create(context.Background(), card))
			newIDs = append(newIDs, card.ID)
		}
		// 2 overdue cards, the second more overdue
		overdueLight, err := domain.NewCard(deck.ID, "six", "six")
		require.NoError(t, err)
		lightExpiry := now.AddDate(0, 0, -1)
		overdueLight.Expires = &lightExpiry
		require.NoError(t, cards.Create(context.Background(), overdueLight))

		overdueHeavy, err := domain.NewCard(deck.ID, "seven", "seven")
		require.NoError(t, err)
		heavyExpiry := now.AddDate(0, 0, -5)
		overdueHeavy.Expires = &heavyExpiry
		require.NoError(t, cards.Create(context.Background(), overdueHeavy))

		got, err := svc.CardsToLearn(context.Background(), userID, deck.ID)
		require.NoError(t, err)
		require.Len(t, got, 7)
		for i, id := range newIDs {
			assert.Equal(t, id, got[i].ID)
		}
		assert.Equal(t, overdueHeavy.ID, got[5].ID, "most overdue first")
		assert.Equal(t, overdueLight.ID, got[6].ID)
	})

	t.Run("budget caps new cards", func(t *testing.T) {
		t.Parallel()
		cards := newFakeCardStore()
		decks := newFakeDeckStore()
		deck := newTestDeck(t, decks, userID, 10)
		stored := decks.decks[deck.ID]
		today := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
		stored.LastTimeLearned = &today
		stored.NumCardsLearned = 8

		svc := newCardService(cards, decks, &fakeFetcher{})
		svc.timeFunc = func() time.Time { return now }

		for i, word := range []string{"one", "two", "three", "four"} {
			card, err := domain.NewCard(deck.ID, word, word)
			require.NoError(t, err)
			card.CreatedAt = now.Add(time.Duration(i) * time.Minute)
			require.NoError(t, cards.Create(context.Background(), card))
		}

		got, err := svc.CardsToLearn(context.Background(), userID, deck.ID)
		require.NoError(t, err)
		assert.Len(t, got, 2, "10 rate - 8 learned = 2 admitted")
	})

	t.Run("exhausted budget admits no new cards", func(t *testing.T) {
		t.Parallel()
		cards := newFakeCardStore()
		decks := newFakeDeckStore()
		deck := newTestDeck(t, decks, userID, 3)
		stored := decks.decks[deck.ID]
		today := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
		stored.LastTimeLearned = &today
		stored.NumCardsLearned = 12

		svc := newCardService(cards, decks, &fakeFetcher{})
		svc.timeFunc = func() time.Time { return now }

		card, err := domain.NewCard(deck.ID, "one", "one")
		require.NoError(t, err)
		require.NoError(t, cards.Create(context.Background(), card))

		got, err := svc.CardsToLearn(context.Background(), userID, deck.ID)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestCopyCards(t *testing.T) {
	t.Parallel()

	deckID := uuid.New()
	targetID := uuid.New()

	src, err := domain.NewCard(deckID, "house", "Haus")
	require.NoError(t, err)
	src.Stage = 5
	expiry := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	src.Expires = &expiry
	src.Phonetic = "/haʊs/"
	src.Synonyms = []string{"dwelling"}

	t.Run("swap exchanges word and translation", func(t *testing.T) {
		t.Parallel()
		copies, err := CopyCards([]*domain.Card{src}, targetID, true)
		require.NoError(t, err)
		require.Len(t, copies, 1)

		dup := copies[0]
		assert.Equal(t, "Haus", dup.Word)
		assert.Equal(t, "house", dup.Translation)
		assert.Equal(t, targetID, dup.DeckID)
		assert.Equal(t, 0, dup.Stage, "stage reset regardless of source")
		assert.Nil(t, dup.Expires)
	})

	t.Run("plain copy keeps orientation and resets scheduling", func(t *testing.T) {
		t.Parallel()
		copies, err := CopyCards([]*domain.Card{src}, targetID, false)
		require.NoError(t, err)
		require.Len(t, copies, 1)

		dup := copies[0]
		assert.Equal(t, "house", dup.Word)
		assert.Equal(t, "Haus", dup.Translation)
		assert.Equal(t, 0, dup.Stage)
		assert.Nil(t, dup.Expires)
		assert.Equal(t, "/haʊs/", dup.Phonetic)
		assert.NotEqual(t, src.ID, dup.ID)
	})
}
