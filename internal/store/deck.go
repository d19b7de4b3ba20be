package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/wortwise/wortwise-api/internal/domain"
)

// DeckStore defines the interface for deck data persistence.
type DeckStore interface {
	// Create saves a new deck to the store.
	// Returns ErrDeckNameExists if the creator already owns a deck with the
	// same name.
	Create(ctx context.Context, deck *domain.Deck) error

	// GetByID retrieves a deck by its unique ID.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// FindByCreator retrieves all decks owned by the given user, ordered by
	// creation time ascending.
	FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Deck, error)

	// Update modifies a deck's name, learning rate and language pair.
	// Returns ErrDeckNotFound if the deck does not exist and
	// ErrDeckNameExists on a name collision with another deck of the same
	// creator.
	Update(ctx context.Context, deck *domain.Deck) error

	// RecordReview advances the deck's learned-today counter for the given
	// calendar day (a date-only value). When the stored last-learned day
	// equals day the counter is incremented, otherwise it is overwritten
	// with 1 and the day recorded. The whole read-modify-write happens in a
	// single UPDATE so concurrent reviews of one deck cannot lose counts.
	// Returns ErrDeckNotFound if the deck does not exist.
	RecordReview(ctx context.Context, id uuid.UUID, day time.Time) error

	// StageCounts returns the number of the deck's cards per stage.
	// Stages with no cards are absent from the map.
	StageCounts(ctx context.Context, id uuid.UUID) (map[int]int, error)

	// Delete removes a deck from the store by its ID.
	// Returns ErrDeckNotFound if the deck does not exist. The deck's cards
	// are removed by the service layer within the same transaction.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByCreator removes all decks owned by the given user and
	// returns the IDs of the removed decks.
	DeleteByCreator(ctx context.Context, creatorID uuid.UUID) ([]uuid.UUID, error)

	// WithTx returns a DeckStore bound to the given transaction.
	WithTx(tx *sql.Tx) DeckStore
}
