package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wortwise/wortwise-api/internal/domain"
	"github.com/wortwise/wortwise-api/internal/platform/logger"
	"github.com/wortwise/wortwise-api/internal/store"
)

// cardUniqueWordConstraint is the unique index guarding one word per deck.
const cardUniqueWordConstraint = "cards_deck_id_word_key"

// CardStore implements the store.CardStore interface using a PostgreSQL
// database as the storage backend. The four enrichment lists are stored as
// JSONB columns.
type CardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCardStore creates a new PostgreSQL implementation of the CardStore
// interface. If logger is nil, a default logger will be used.
func NewCardStore(db store.DBTX, logger *slog.Logger) *CardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure CardStore implements store.CardStore interface
var _ store.CardStore = (*CardStore)(nil)

const cardColumns = `id, deck_id, word, translation, phonetic, audio_link,
	definitions, examples, synonyms, antonyms, stage, expires, created_at`

// Create implements store.CardStore.Create
func (s *CardStore) Create(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during create",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	args, err := cardInsertArgs(card)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO cards (` + cardColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if IsUniqueViolation(err, cardUniqueWordConstraint) {
			log.Warn("duplicate word during card creation",
				slog.String("deck_id", card.DeckID.String()),
				slog.String("word", card.Word))
			return store.ErrWordExists
		}
		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return MapError(err)
	}

	log.Info("card created successfully",
		slog.String("card_id", card.ID.String()),
		slog.String("deck_id", card.DeckID.String()))
	return nil
}

// CreateMultiple implements store.CardStore.CreateMultiple
// All cards go into one multi-row INSERT so a deck copy is all-or-nothing
// when run inside a transaction.
func (s *CardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(cards) == 0 {
		return nil
	}

	const fieldsPerCard = 13
	placeholders := make([]string, 0, len(cards))
	args := make([]any, 0, len(cards)*fieldsPerCard)
	for i, card := range cards {
		if err := card.Validate(); err != nil {
			return fmt.Errorf("%w: card %d: %v", store.ErrInvalidEntity, i, err)
		}
		cardArgs, err := cardInsertArgs(card)
		if err != nil {
			return fmt.Errorf("%w: card %d: %v", store.ErrInvalidEntity, i, err)
		}

		base := i * fieldsPerCard
		nums := make([]string, fieldsPerCard)
		for j := range nums {
			nums[j] = fmt.Sprintf("$%d", base+j+1)
		}
		placeholders = append(placeholders, "("+strings.Join(nums, ", ")+")")
		args = append(args, cardArgs...)
	}

	query := `INSERT INTO cards (` + cardColumns + `) VALUES ` + strings.Join(placeholders, ", ")
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if IsUniqueViolation(err, cardUniqueWordConstraint) {
			return store.ErrWordExists
		}
		log.Error("failed to create cards",
			slog.String("error", err.Error()),
			slog.Int("count", len(cards)))
		return MapError(err)
	}

	log.Info("cards created successfully", slog.Int("count", len(cards)))
	return nil
}

// GetByID implements store.CardStore.GetByID
func (s *CardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1`

	card, err := scanCard(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found", slog.String("card_id", id.String()))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card by ID",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return nil, MapError(err)
	}

	return card, nil
}

// FindByDeck implements store.CardStore.FindByDeck
func (s *CardStore) FindByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE deck_id = $1 ORDER BY created_at ASC`
	return s.queryCards(ctx, query, deckID)
}

// FindNewCards implements store.CardStore.FindNewCards
func (s *CardStore) FindNewCards(ctx context.Context, deckID uuid.UUID, limit int) ([]*domain.Card, error) {
	if limit <= 0 {
		return nil, nil
	}

	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE deck_id = $1 AND expires IS NULL
		ORDER BY created_at ASC
		LIMIT $2
	`
	return s.queryCards(ctx, query, deckID, limit)
}

// FindDueCards implements store.CardStore.FindDueCards
func (s *CardStore) FindDueCards(ctx context.Context, deckID uuid.UUID, before time.Time) ([]*domain.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE deck_id = $1 AND expires < $2
		ORDER BY expires ASC
	`
	return s.queryCards(ctx, query, deckID, before)
}

// CountNew implements store.CardStore.CountNew
func (s *CardStore) CountNew(ctx context.Context, deckID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cards WHERE deck_id = $1 AND expires IS NULL`, deckID).
		Scan(&count)
	if err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

// CountDue implements store.CardStore.CountDue
func (s *CardStore) CountDue(ctx context.Context, deckID uuid.UUID, before time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cards WHERE deck_id = $1 AND expires < $2`, deckID, before).
		Scan(&count)
	if err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

// UpdateReview implements store.CardStore.UpdateReview
func (s *CardStore) UpdateReview(ctx context.Context, id uuid.UUID, stage int, expires time.Time) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`UPDATE cards SET stage = $1, expires = $2 WHERE id = $3`,
		stage, expires, id)
	if err != nil {
		log.Error("failed to update card review state",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rowsAffected == 0 {
		log.Debug("card not found for review update", slog.String("card_id", id.String()))
		return store.ErrCardNotFound
	}

	log.Debug("card review state updated",
		slog.String("card_id", id.String()),
		slog.Int("stage", stage))
	return nil
}

// Delete implements store.CardStore.Delete
func (s *CardStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rowsAffected == 0 {
		return store.ErrCardNotFound
	}

	log.Info("card deleted successfully", slog.String("card_id", id.String()))
	return nil
}

// DeleteByDecks implements store.CardStore.DeleteByDecks
func (s *CardStore) DeleteByDecks(ctx context.Context, deckIDs []uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(deckIDs) == 0 {
		return nil
	}

	placeholders := make([]string, len(deckIDs))
	args := make([]any, len(deckIDs))
	for i, id := range deckIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := `DELETE FROM cards WHERE deck_id IN (` + strings.Join(placeholders, ", ") + `)`
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to delete cards for decks",
			slog.String("error", err.Error()),
			slog.Int("deck_count", len(deckIDs)))
		return MapError(err)
	}

	log.Info("cards deleted for decks", slog.Int("deck_count", len(deckIDs)))
	return nil
}

// WithTx implements store.CardStore.WithTx
func (s *CardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &CardStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *CardStore) queryCards(ctx context.Context, query string, args ...any) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query cards", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var cards []*domain.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, MapError(err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return cards, nil
}

func cardInsertArgs(card *domain.Card) ([]any, error) {
	definitions, err := marshalList(card.Definitions)
	if err != nil {
		return nil, err
	}
	examples, err := marshalList(card.Examples)
	if err != nil {
		return nil, err
	}
	synonyms, err := marshalList(card.Synonyms)
	if err != nil {
		return nil, err
	}
	antonyms, err := marshalList(card.Antonyms)
	if err != nil {
		return nil, err
	}

	return []any{
		card.ID,
		card.DeckID,
		card.Word,
		card.Translation,
		card.Phonetic,
		card.AudioLink,
		definitions,
		examples,
		synonyms,
		antonyms,
		card.Stage,
		card.Expires,
		card.CreatedAt,
	}, nil
}

func scanCard(row rowScanner) (*domain.Card, error) {
	var card domain.Card
	var definitions, examples, synonyms, antonyms []byte
	var expires sql.NullTime

	err := row.Scan(
		&card.ID,
		&card.DeckID,
		&card.Word,
		&card.Translation,
		&card.Phonetic,
		&card.AudioLink,
		&definitions,
		&examples,
		&synonyms,
		&antonyms,
		&card.Stage,
		&expires,
		&card.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if card.Definitions, err = unmarshalList(definitions); err != nil {
		return nil, err
	}
	if card.Examples, err = unmarshalList(examples); err != nil {
		return nil, err
	}
	if card.Synonyms, err = unmarshalList(synonyms); err != nil {
		return nil, err
	}
	if card.Antonyms, err = unmarshalList(antonyms); err != nil {
		return nil, err
	}
	if expires.Valid {
		t := expires.Time
		card.Expires = &t
	}

	return &card, nil
}

// marshalList stores nil and empty slices as the JSON empty array so reads
// never have to distinguish NULL from [].
func marshalList(list []string) ([]byte, error) {
	if list == nil {
		list = []string{}
	}
	return json.Marshal(list)
}

func unmarshalList(data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}
