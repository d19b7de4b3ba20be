package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/wortwise/wortwise-api/internal/domain"
)

// CardStore defines the interface for card data persistence.
type CardStore interface {
	// Create saves a new card to the store.
	// Returns ErrWordExists if the deck already contains the card's word.
	Create(ctx context.Context, card *domain.Card) error

	// CreateMultiple saves multiple cards to the store in one statement.
	// Used by deck copy/import; run it within a transaction via WithTx and
	// RunInTransaction so a partial copy never survives a failure.
	CreateMultiple(ctx context.Context, cards []*domain.Card) error

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// FindByDeck retrieves all cards of a deck, ordered by creation time
	// ascending.
	FindByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error)

	// FindNewCards retrieves up to limit cards of the deck that have never
	// completed a review cycle (expires IS NULL), oldest first. A limit of
	// zero returns an empty slice without querying.
	FindNewCards(ctx context.Context, deckID uuid.UUID, limit int) ([]*domain.Card, error)

	// FindDueCards retrieves the deck's cards whose expiry lies strictly
	// before the given moment, most overdue first. No limit applies.
	FindDueCards(ctx context.Context, deckID uuid.UUID, before time.Time) ([]*domain.Card, error)

	// CountNew returns the number of never-reviewed cards in the deck.
	CountNew(ctx context.Context, deckID uuid.UUID) (int, error)

	// CountDue returns the number of cards due strictly before the given
	// moment.
	CountDue(ctx context.Context, deckID uuid.UUID, before time.Time) (int, error)

	// UpdateReview persists the result of a completed review: the card's
	// new stage together with its new expiry. This is the only operation
	// that mutates stored scheduling state.
	// Returns ErrCardNotFound if the card does not exist.
	UpdateReview(ctx context.Context, id uuid.UUID, stage int, expires time.Time) error

	// Delete removes a card from the store by its ID.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByDecks removes all cards belonging to any of the given decks.
	// Deleting for an empty ID set is a no-op.
	DeleteByDecks(ctx context.Context, deckIDs []uuid.UUID) error

	// WithTx returns a CardStore bound to the given transaction.
	WithTx(tx *sql.Tx) CardStore
}
