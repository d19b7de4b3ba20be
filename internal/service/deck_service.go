package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/wortwise/wortwise-api/internal/domain"
	"github.com/wortwise/wortwise-api/internal/domain/srs"
	"github.com/wortwise/wortwise-api/internal/platform/logger"
	"github.com/wortwise/wortwise-api/internal/store"
)

// DeckOverview is a deck together with its session counts: how many cards
// are due, how many are new, and how many new cards today's remaining
// budget still admits.
type DeckOverview struct {
	Deck          *domain.Deck `json:"deck"`
	NewCards      int          `json:"new_cards"`
	DueCards      int          `json:"due_cards"`
	NewCardsToday int          `json:"new_cards_today"`
}

// DeckService owns deck CRUD, import, swap and statistics.
type DeckService struct {
	txRunner store.TxRunner
	decks    store.DeckStore
	cards    store.CardStore
	timeFunc func() time.Time // Injectable for testing
	logger   *slog.Logger
}

// NewDeckService creates a new DeckService.
func NewDeckService(
	txRunner store.TxRunner,
	decks store.DeckStore,
	cards store.CardStore,
	logger *slog.Logger,
) *DeckService {
	if txRunner == nil {
		panic("txRunner cannot be nil")
	}
	if decks == nil {
		panic("decks cannot be nil")
	}
	if cards == nil {
		panic("cards cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DeckService{
		txRunner: txRunner,
		decks:    decks,
		cards:    cards,
		timeFunc: time.Now,
		logger:   logger.With(slog.String("component", "deck_service")),
	}
}

// CreateDeck creates a new deck for the user.
// Returns store.ErrDeckNameExists when the user already owns a deck with
// the same name.
func (s *DeckService) CreateDeck(
	ctx context.Context,
	userID uuid.UUID,
	name string,
	learningRate int,
	fromLang, toLang domain.Language,
) (*domain.Deck, error) {
	deck, err := domain.NewDeck(userID, name, learningRate, fromLang, toLang)
	if err != nil {
		return nil, err
	}

	if err := s.decks.Create(ctx, deck); err != nil {
		return nil, err
	}
	return deck, nil
}

// ListDecks returns all of the user's decks with their session counts.
func (s *DeckService) ListDecks(ctx context.Context, userID uuid.UUID) ([]*DeckOverview, error) {
	decks, err := s.decks.FindByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.timeFunc()
	overviews := make([]*DeckOverview, 0, len(decks))
	for _, deck := range decks {
		overview, err := s.overview(ctx, deck, now)
		if err != nil {
			return nil, err
		}
		overviews = append(overviews, overview)
	}
	return overviews, nil
}

// GetDeck returns one deck with session counts after an ownership check.
func (s *DeckService) GetDeck(ctx context.Context, userID, deckID uuid.UUID) (*DeckOverview, error) {
	deck, err := s.ownedDeck(ctx, s.decks, userID, deckID)
	if err != nil {
		return nil, err
	}
	return s.overview(ctx, deck, s.timeFunc())
}

// UpdateDeck changes the deck's name, learning rate and language pair.
// Scheduling state (counter, last-learned day) is never touched here.
func (s *DeckService) UpdateDeck(
	ctx context.Context,
	userID, deckID uuid.UUID,
	name string,
	learningRate int,
	fromLang, toLang domain.Language,
) (*domain.Deck, error) {
	deck, err := s.ownedDeck(ctx, s.decks, userID, deckID)
	if err != nil {
		return nil, err
	}

	deck.Name = name
	deck.LearningRate = learningRate
	deck.FromLang = fromLang
	deck.ToLang = toLang
	if err := deck.Validate(); err != nil {
		return nil, err
	}

	if err := s.decks.Update(ctx, deck); err != nil {
		return nil, err
	}
	return deck, nil
}

// DeleteDeck removes a deck and all its cards in one transaction.
func (s *DeckService) DeleteDeck(ctx context.Context, userID, deckID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.ownedDeck(ctx, s.decks, userID, deckID); err != nil {
		return err
	}

	err := s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.cards.WithTx(tx).DeleteByDecks(ctx, []uuid.UUID{deckID}); err != nil {
			return err
		}
		return s.decks.WithTx(tx).Delete(ctx, deckID)
	})
	if err != nil {
		return err
	}

	log.Info("deck deleted", slog.String("deck_id", deckID.String()))
	return nil
}

// ImportDeck copies another user's deck, with all its cards, into the
// user's collection. The copies start unscheduled: stage 0, no expiry, the
// deck's learning counters zeroed.
//
// Returns ErrOwnDeckImport when the user already owns the source deck and
// store.ErrDeckNameExists when a deck of that name already exists for the
// user.
func (s *DeckService) ImportDeck(ctx context.Context, userID, sourceDeckID uuid.UUID) (*domain.Deck, error) {
	source, err := s.decks.GetByID(ctx, sourceDeckID)
	if err != nil {
		return nil, err
	}
	if source.CreatorID == userID {
		return nil, ErrOwnDeckImport
	}

	return s.copyDeck(ctx, source, userID, source.Name, source.FromLang, source.ToLang, false)
}

// SwapDeck creates a reversed copy of the user's own deck: languages
// exchanged, every card's word and translation swapped, scheduling state
// reset. The copy is named "<name>-Reversed".
func (s *DeckService) SwapDeck(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error) {
	source, err := s.ownedDeck(ctx, s.decks, userID, deckID)
	if err != nil {
		return nil, err
	}

	return s.copyDeck(ctx, source, userID, source.Name+"-Reversed", source.ToLang, source.FromLang, true)
}

// DeckStats returns the number of the deck's cards in each stage.
func (s *DeckService) DeckStats(ctx context.Context, userID, deckID uuid.UUID) (map[int]int, error) {
	if _, err := s.ownedDeck(ctx, s.decks, userID, deckID); err != nil {
		return nil, err
	}
	return s.decks.StageCounts(ctx, deckID)
}

// copyDeck creates the target deck and duplicates the source's cards into
// it within one transaction, so a failed copy leaves nothing behind.
func (s *DeckService) copyDeck(
	ctx context.Context,
	source *domain.Deck,
	userID uuid.UUID,
	name string,
	fromLang, toLang domain.Language,
	swap bool,
) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	target, err := domain.NewDeck(userID, name, source.LearningRate, fromLang, toLang)
	if err != nil {
		return nil, err
	}

	sourceCards, err := s.cards.FindByDeck(ctx, source.ID)
	if err != nil {
		return nil, err
	}

	copies, err := CopyCards(sourceCards, target.ID, swap)
	if err != nil {
		return nil, err
	}

	err = s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.decks.WithTx(tx).Create(ctx, target); err != nil {
			return err
		}
		if len(copies) == 0 {
			return nil
		}
		return s.cards.WithTx(tx).CreateMultiple(ctx, copies)
	})
	if err != nil {
		return nil, err
	}

	log.Info("deck copied",
		slog.String("source_deck_id", source.ID.String()),
		slog.String("new_deck_id", target.ID.String()),
		slog.Int("cards", len(copies)),
		slog.Bool("swapped", swap))
	return target, nil
}

func (s *DeckService) overview(ctx context.Context, deck *domain.Deck, now time.Time) (*DeckOverview, error) {
	newCount, err := s.cards.CountNew(ctx, deck.ID)
	if err != nil {
		return nil, err
	}
	dueCount, err := s.cards.CountDue(ctx, deck.ID, now)
	if err != nil {
		return nil, err
	}

	budget := srs.RemainingNewCardBudget(deck.LearningRate, deck.NumCardsLearned, deck.LastTimeLearned, now)
	newToday := newCount
	if budget < newToday {
		newToday = budget
	}

	return &DeckOverview{
		Deck:          deck,
		NewCards:      newCount,
		DueCards:      dueCount,
		NewCardsToday: newToday,
	}, nil
}

// ownedDeck loads a deck and verifies the user owns it.
func (s *DeckService) ownedDeck(
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
