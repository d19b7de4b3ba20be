package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/wortwise/wortwise-api/internal/domain"
	"github.com/wortwise/wortwise-api/internal/domain/srs"
	"github.com/wortwise/wortwise-api/internal/enrichment"
	"github.com/wortwise/wortwise-api/internal/platform/logger"
	"github.com/wortwise/wortwise-api/internal/store"
)

// EnrichmentFetcher collects the translation and lexical data for a word.
type EnrichmentFetcher interface {
	Fetch(ctx context.Context, word string, from, to domain.Language) (enrichment.Result, error)
}

// CardService owns the card lifecycle: creation with enrichment, review
// scheduling, daily admission and deletion.
type CardService struct {
	txRunner store.TxRunner
	cards    store.CardStore
	decks    store.DeckStore
	fetcher  EnrichmentFetcher
	timeFunc func() time.Time // Injectable for testing
	logger   *slog.Logger
}

// NewCardService creates a new CardService.
func NewCardService(
	txRunner store.TxRunner,
	cards store.CardStore,
	decks store.DeckStore,
	fetcher EnrichmentFetcher,
	logger *slog.Logger,
) *CardService {
	if txRunner == nil {
		panic("txRunner cannot be nil")
	}
	if cards == nil {
		panic("cards cannot be nil")
	}
	if decks == nil {
		panic("decks cannot be nil")
	}
	if fetcher == nil {
		panic("fetcher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CardService{
		txRunner: txRunner,
		cards:    cards,
		decks:    decks,
		fetcher:  fetcher,
		timeFunc: time.Now,
		logger:   logger.With(slog.String("component", "card_service")),
	}
}

// CreateCard enriches the word through the external capabilities and saves
// the resulting card to the deck.
//
// Returns enrichment.ErrNoTranslation when no translation could be
// obtained, store.ErrWordExists when the deck already contains the word,
// and ErrNotDeckOwner when the deck belongs to someone else. A failed
// lexical lookup is tolerated: the card is created with translation-only
// data.
func (s *CardService) CreateCard(
	ctx context.Context,
	userID, deckID uuid.UUID,
	word string,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := s.ownedDeck(ctx, s.decks, userID, deckID)
	if err != nil {
		return nil, err
	}

	result, err := s.fetcher.Fetch(ctx, word, deck.FromLang, deck.ToLang)
	if err != nil {
		return nil, err
	}

	card, err := domain.NewCard(deckID, word, result.Translation)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if result.Info != nil {
		card.Phonetic = result.Info.Phonetic
		card.AudioLink = result.Info.AudioLink
		card.Definitions = result.Info.Definitions
		card.Examples = result.Info.Examples
		card.Synonyms = result.Info.Synonyms
		card.Antonyms = result.Info.Antonyms
	}

	if err := s.cards.Create(ctx, card); err != nil {
		return nil, err
	}

	log.Debug("card created",
		slog.String("card_id", card.ID.String()),
		slog.String("deck_id", deckID.String()),
		slog.Bool("enriched", result.Info != nil))
	return card, nil
}

// ListCards returns all cards of the deck, oldest first.
func (s *CardService) ListCards(
	ctx context.Context,
	userID, deckID uuid.UUID,
) ([]*domain.Card, error) {
	if _, err := s.ownedDeck(ctx, s.decks, userID, deckID); err != nil {
		return nil, err
	}
	return s.cards.FindByDeck(ctx, deckID)
}

// GetCard returns a single card after checking deck ownership and that the
// card belongs to the deck from the request path.
func (s *CardService) GetCard(
	ctx context.Context,
	userID, deckID, cardID uuid.UUID,
) (*domain.Card, error) {
	if _, err := s.ownedDeck(ctx, s.decks, userID, deckID); err != nil {
		return nil, err
	}

	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card.DeckID != deckID {
		return nil, ErrCardNotInDeck
	}
	return card, nil
}

// DeleteCard removes a card after the same checks as GetCard.
func (s *CardService) DeleteCard(
	ctx context.Context,
	userID, deckID, cardID uuid.UUID,
) error {
	if _, err := s.GetCard(ctx, userID, deckID, cardID); err != nil {
		return err
	}
	return s.cards.Delete(ctx, cardID)
}

// ReviewCard processes a review outcome for a card: it computes the card's
// next stage and expiry, persists them, and advances the deck's daily
// learned counter. The card update and the counter update happen in one
// transaction so a failed review never leaves the deck counter ahead of
// the card state.
func (s *CardService) ReviewCard(
	ctx context.Context,
	userID, deckID, cardID uuid.UUID,
	outcome domain.ReviewOutcome,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !outcome.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidReviewOutcome, outcome)
	}

	now := s.timeFunc()
	var reviewed *domain.Card
	err := s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		cards := s.cards.WithTx(tx)
		decks := s.decks.WithTx(tx)

		deck, err := s.ownedDeck(ctx, decks, userID, deckID)
		if err != nil {
			return err
		}

		card, err := cards.GetByID(ctx, cardID)
		if err != nil {
			return err
		}
		if card.DeckID != deck.ID {
			return ErrCardNotInDeck
		}

		newStage := srs.NextStage(card.Stage, outcome)
		expires := srs.ExpiryFor(newStage, now)

		if err := cards.UpdateReview(ctx, card.ID, newStage, expires); err != nil {
			return err
		}
		if err := decks.RecordReview(ctx, deck.ID, srs.StartOfDay(now)); err != nil {
			return err
		}

		card.Stage = newStage
		card.Expires = &expires
		reviewed = card
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug("card reviewed",
		slog.String("card_id", cardID.String()),
		slog.String("outcome", string(outcome)),
		slog.Int("new_stage", reviewed.Stage))
	return reviewed, nil
}

// CardsToLearn returns the deck's cards for today's session: new cards
// (oldest first, capped by the remaining daily budget) followed by due
// cards (most overdue first, unlimited). The two store queries run
// concurrently.
func (s *CardService) CardsToLearn(
	ctx context.Context,
	userID, deckID uuid.UUID,
) ([]*domain.Card, error) {
	deck, err := s.ownedDeck(ctx, s.decks, userID, deckID)
	if err != nil {
		return nil, err
	}

	now := s.timeFunc()
	budget := srs.RemainingNewCardBudget(deck.LearningRate, deck.NumCardsLearned, deck.LastTimeLearned, now)

	type dueResult struct {
		cards []*domain.Card
		err   error
	}
	dueCh := make(chan dueResult, 1)
	go func() {
		cards, err := s.cards.FindDueCards(ctx, deckID, now)
		dueCh <- dueResult{cards: cards, err: err}
	}()

	newCards, newErr := s.cards.FindNewCards(ctx, deckID, budget)
	due := <-dueCh
	if newErr != nil {
		return nil, newErr
	}
	if due.err != nil {
		return nil, due.err
	}

	return append(newCards, due.cards...), nil
}

// ownedDeck loads a deck and verifies the user owns it.
func (s *CardService) ownedDeck(
	ctx context.Context,
	decks store.DeckStore,
	userID, deckID uuid.UUID,
) (*domain.Deck, error) {
	deck, err := decks.GetByID(ctx, deckID)
	if err != nil {
		return nil, err
	}
	if deck.CreatorID != userID {
		return nil, ErrNotDeckOwner
	}
	return deck, nil
}

// CopyCards duplicates cards into the target deck with the scheduling state
// reset: stage 0, no expiry. With swap set, each copy's word and
// translation are exchanged. The copies are returned, not persisted.
func CopyCards(cards []*domain.Card, targetDeckID uuid.UUID, swap bool) ([]*domain.Card, error) {
	copies := make([]*domain.Card, 0, len(cards))
	for _, src := range cards {
		word, translation := src.Word, src.Translation
		if swap {
			word, translation = translation, word
		}

		dup, err := domain.NewCard(targetDeckID, word, translation)
		if err != nil {
			return nil, err
		}
		dup.Phonetic = src.Phonetic
		dup.AudioLink = src.AudioLink
		dup.Definitions = src.Definitions
		dup.Examples = src.Examples
		dup.Synonyms = src.Synonyms
		dup.Antonyms = src.Antonyms
		copies = append(copies, dup)
	}
	return copies, nil
}
