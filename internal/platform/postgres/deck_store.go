package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/wortwise/wortwise-api/internal/domain"
	"github.com/wortwise/wortwise-api/internal/platform/logger"
	"github.com/wortwise/wortwise-api/internal/store"
)

// deckUniqueNameConstraint is the unique index guarding one deck name per creator.
const deckUniqueNameConstraint = "decks_creator_id_name_key"

// DeckStore implements the store.DeckStore interface using a PostgreSQL
// database as the storage backend.
type DeckStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewDeckStore creates a new PostgreSQL implementation of the DeckStore
// interface. If logger is nil, a default logger will be used.
func NewDeckStore(db store.DBTX, logger *slog.Logger) *DeckStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// Ensure DeckStore implements store.DeckStore interface
var _ store.DeckStore = (*DeckStore)(nil)

const deckColumns = `id, creator_id, name, learning_rate, from_lang, to_lang,
	num_cards_learned, last_time_learned, created_at, updated_at`

// Create implements store.DeckStore.Create
func (s *DeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		log.Warn("deck validation failed during create",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO decks (` + deckColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		deck.ID,
		deck.CreatorID,
		deck.Name,
		deck.LearningRate,
		deck.FromLang,
		deck.ToLang,
		deck.NumCardsLearned,
		deck.LastTimeLearned,
		deck.CreatedAt,
		deck.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err, deckUniqueNameConstraint) {
			log.Warn("duplicate deck name during creation",
				slog.String("deck_name", deck.Name),
				slog.String("creator_id", deck.CreatorID.String()))
			return store.ErrDeckNameExists
		}
		log.Error("failed to create deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return MapError(err)
	}

	log.Info("deck created successfully",
		slog.String("deck_id", deck.ID.String()),
		slog.String("creator_id", deck.CreatorID.String()))
	return nil
}

// GetByID implements store.DeckStore.GetByID
func (s *DeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + deckColumns + ` FROM decks WHERE id = $1`

	deck, err := scanDeck(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("deck not found", slog.String("deck_id", id.String()))
			return nil, store.ErrDeckNotFound
		}
		log.Error("failed to get deck by ID",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, MapError(err)
	}

	return deck, nil
}

// FindByCreator implements store.DeckStore.FindByCreator
func (s *DeckStore) FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + deckColumns + ` FROM decks WHERE creator_id = $1 ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, creatorID)
	if err != nil {
		log.Error("failed to list decks",
			slog.String("error", err.Error()),
			slog.String("creator_id", creatorID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var decks []*domain.Deck
	for rows.Next() {
		deck, err := scanDeck(rows)
		if err != nil {
			return nil, MapError(err)
		}
		decks = append(decks, deck)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return decks, nil
}

// Update implements store.DeckStore.Update
func (s *DeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		log.Warn("deck validation failed during update",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE decks
		SET name = $1, learning_rate = $2, from_lang = $3, to_lang = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		deck.Name,
		deck.LearningRate,
		deck.FromLang,
		deck.ToLang,
		touchUpdatedAt(),
		deck.ID,
	)
	if err != nil {
		if IsUniqueViolation(err, deckUniqueNameConstraint) {
			return store.ErrDeckNameExists
		}
		log.Error("failed to update deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rowsAffected == 0 {
		log.Debug("deck not found for update", slog.String("deck_id", deck.ID.String()))
		return store.ErrDeckNotFound
	}

	log.Info("deck updated successfully", slog.String("deck_id", deck.ID.String()))
	return nil
}

// RecordReview implements store.DeckStore.RecordReview
//
// The rollover decision and the write happen in one UPDATE: when the
// stored last-learned day equals the given day the counter increments,
// otherwise it restarts at 1. Concurrent reviews therefore serialize on
// the row instead of racing a read-modify-write in application code.
func (s *DeckStore) RecordReview(ctx context.Context, id uuid.UUID, day time.Time) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE decks
		SET num_cards_learned = CASE
				WHEN last_time_learned = $2 THEN num_cards_learned + 1
				ELSE 1
			END,
			last_time_learned = $2,
			updated_at = $3
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, id, day, touchUpdatedAt())
	if err != nil {
		log.Error("failed to record review",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rowsAffected == 0 {
		return store.ErrDeckNotFound
	}

	log.Debug("review recorded", slog.String("deck_id", id.String()))
	return nil
}

// StageCounts implements store.DeckStore.StageCounts
func (s *DeckStore) StageCounts(ctx context.Context, id uuid.UUID) (map[int]int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT stage, COUNT(*)
		FROM cards
		WHERE deck_id = $1
		GROUP BY stage
	`
	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		log.Error("failed to count cards per stage",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[int]int)
	for rows.Next() {
		var stage, count int
		if err := rows.Scan(&stage, &count); err != nil {
			return nil, MapError(err)
		}
		counts[stage] = count
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return counts, nil
}

// Delete implements store.DeckStore.Delete
func (s *DeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM decks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rowsAffected == 0 {
		return store.ErrDeckNotFound
	}

	log.Info("deck deleted successfully", slog.String("deck_id", id.String()))
	return nil
}

// DeleteByCreator implements store.DeckStore.DeleteByCreator
func (s *DeckStore) DeleteByCreator(ctx context.Context, creatorID uuid.UUID) ([]uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`DELETE FROM decks WHERE creator_id = $1 RETURNING id`, creatorID)
	if err != nil {
		log.Error("failed to delete decks for creator",
			slog.String("error", err.Error()),
			slog.String("creator_id", creatorID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, MapError(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	log.Info("decks deleted for creator",
		slog.String("creator_id", creatorID.String()),
		slog.Int("count", len(ids)))
	return ids, nil
}

// WithTx implements store.DeckStore.WithTx
func (s *DeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &DeckStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeck(row rowScanner) (*domain.Deck, error) {
	var deck domain.Deck
	var lastLearned sql.NullTime
	err := row.Scan(
		&deck.ID,
		&deck.CreatorID,
		&deck.Name,
		&deck.LearningRate,
		&deck.FromLang,
		&deck.ToLang,
		&deck.NumCardsLearned,
		&lastLearned,
		&deck.CreatedAt,
		&deck.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lastLearned.Valid {
		t := lastLearned.Time
		deck.LastTimeLearned = &t
	}
	return &deck, nil
}
