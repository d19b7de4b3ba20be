package service

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/wortwise/wortwise-api/internal/domain"
	"github.com/wortwise/wortwise-api/internal/enrichment"
	"github.com/wortwise/wortwise-api/internal/store"
)

// fakeTxRunner runs the function directly, without a real transaction.
type fakeTxRunner struct {
	calls int
}

func (r *fakeTxRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	r.calls++
	return fn(ctx, nil)
}

// fakeFetcher returns canned enrichment results.
type fakeFetcher struct {
	result enrichment.Result
	err    error
	calls  int
}

func (f *fakeFetcher) Fetch(ctx context.Context, word string, from, to domain.Language) (enrichment.Result, error) {
	f.calls++
	if f.err != nil {
		return enrichment.Result{}, f.err
	}
	return f.result, nil
}

// fakeCardStore keeps cards in memory with the same query semantics as the
// SQL implementation.
type fakeCardStore struct {
	cards map[uuid.UUID]*domain.Card
}

func newFakeCardStore() *fakeCardStore {
	return &fakeCardStore{cards: make(map[uuid.UUID]*domain.Card)}
}

var _ store.CardStore = (*fakeCardStore)(nil)

func (s *fakeCardStore) Create(ctx context.Context, card *domain.Card) error {
	for _, existing := range s.cards {
		if existing.DeckID == card.DeckID && existing.Word == card.Word {
			return store.ErrWordExists
		}
	}
	clone := *card
	s.cards[card.ID] = &clone
	return nil
}

func (s *fakeCardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	for _, card := range cards {
		if err := s.Create(ctx, card); err != nil {
			return err
		}
	}
	return nil
}

func (s *fakeCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	card, ok := s.cards[id]
	if !ok {
		return nil, store.ErrCardNotFound
	}
	clone := *card
	return &clone, nil
}

func (s *fakeCardStore) FindByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	var out []*domain.Card
	for _, card := range s.cards {
		if card.DeckID == deckID {
			clone := *card
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeCardStore) FindNewCards(ctx context.Context, deckID uuid.UUID, limit int) ([]*domain.Card, error) {
	if limit <= 0 {
		return nil, nil
	}
	all, _ := s.FindByDeck(ctx, deckID)
	var out []*domain.Card
	for _, card := range all {
		if card.Expires == nil {
			out = append(out, card)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeCardStore) FindDueCards(ctx context.Context, deckID uuid.UUID, before time.Time) ([]*domain.Card, error) {
	all, _ := s.FindByDeck(ctx, deckID)
	var out []*domain.Card
	for _, card := range all {
		if card.Expires != nil && card.Expires.Before(before) {
			out = append(out, card)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Expires.Before(*out[j].Expires) })
	return out, nil
}

func (s *fakeCardStore) CountNew(ctx context.Context, deckID uuid.UUID) (int, error) {
	n := 0
	for _, card := range s.cards {
		if card.DeckID == deckID && card.Expires == nil {
			n++
		}
	}
	return n, nil
}

func (s *fakeCardStore) CountDue(ctx context.Context, deckID uuid.UUID, before time.Time) (int, error) {
	n := 0
	for _, card := range s.cards {
		if card.DeckID == deckID && card.Expires != nil && card.Expires.Before(before) {
			n++
		}
	}
	return n, nil
}

func (s *fakeCardStore) UpdateReview(ctx context.Context, id uuid.UUID, stage int, expires time.Time) error {
	card, ok := s.cards[id]
	if !ok {
		return store.ErrCardNotFound
	}
	card.Stage = stage
	card.Expires = &expires
	return nil
}

func (s *fakeCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.cards[id]; !ok {
		return store.ErrCardNotFound
	}
	delete(s.cards, id)
	return nil
}

func (s *fakeCardStore) DeleteByDecks(ctx context.Context, deckIDs []uuid.UUID) error {
	ids := make(map[uuid.UUID]bool, len(deckIDs))
	for _, id := range deckIDs {
		ids[id] = true
	}
	for cardID, card := range s.cards {
		if ids[card.DeckID] {
			delete(s.cards, cardID)
		}
	}
	return nil
}

func (s *fakeCardStore) WithTx(tx *sql.Tx) store.CardStore { return s }

// fakeDeckStore keeps decks in memory, mirroring the atomic counter
// rollover of the SQL implementation.
type fakeDeckStore struct {
	decks map[uuid.UUID]*domain.Deck
}

func newFakeDeckStore() *fakeDeckStore {
	return &fakeDeckStore{decks: make(map[uuid.UUID]*domain.Deck)}
}

var _ store.DeckStore = (*fakeDeckStore)(nil)

func (s *fakeDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	for _, existing := range s.decks {
		if existing.CreatorID == deck.CreatorID && existing.Name == deck.Name {
			return store.ErrDeckNameExists
		}
	}
	clone := *deck
	s.decks[deck.ID] = &clone
	return nil
}

func (s *fakeDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	deck, ok := s.decks[id]
	if !ok {
		return nil, store.ErrDeckNotFound
	}
	clone := *deck
	return &clone, nil
}

func (s *fakeDeckStore) FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Deck, error) {
	var out []*domain.Deck
	for _, deck := range s.decks {
		if deck.CreatorID == creatorID {
			clone := *deck
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeDeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	stored, ok := s.decks[deck.ID]
	if !ok {
		return store.ErrDeckNotFound
	}
	for _, other := range s.decks {
		if other.ID != deck.ID && other.CreatorID == deck.CreatorID && other.Name == deck.Name {
			return store.ErrDeckNameExists
		}
	}
	stored.Name = deck.Name
	stored.LearningRate = deck.LearningRate
	stored.FromLang = deck.FromLang
	stored.ToLang = deck.ToLang
	return nil
}

func (s *fakeDeckStore) RecordReview(ctx context.Context, id uuid.UUID, day time.Time) error {
	deck, ok := s.decks[id]
	if !ok {
		return store.ErrDeckNotFound
	}
	if deck.LastTimeLearned != nil && deck.LastTimeLearned.Equal(day) {
		deck.NumCardsLearned++
	} else {
		deck.NumCardsLearned = 1
		d := day
		deck.LastTimeLearned = &d
	}
	return nil
}

func (s *fakeDeckStore) StageCounts(ctx context.Context, id uuid.UUID) (map[int]int, error) {
	return nil, nil
}

func (s *fakeDeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.decks[id]; !ok {
		return store.ErrDeckNotFound
	}
	delete(s.decks, id)
	return nil
}

func (s *fakeDeckStore) DeleteByCreator(ctx context.Context, creatorID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id, deck := range s.decks {
		if deck.CreatorID == creatorID {
			ids = append(ids, id)
			delete(s.decks, id)
		}
	}
	return ids, nil
}

func (s *fakeDeckStore) WithTx(tx *sql.Tx) store.DeckStore { return s }

// fakeUserStore keeps users in memory.
type fakeUserStore struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*domain.User)}
}

var _ store.UserStore = (*fakeUserStore)(nil)

func (s *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *fakeUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *fakeUserStore) WithTx(tx *sql.Tx) store.UserStore { return s }
