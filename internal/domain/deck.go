package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Deck-specific validation errors
var (
	// ErrDeckIDEmpty is returned when a deck ID is empty or nil.
	ErrDeckIDEmpty = errors.New("deck ID cannot be empty")

	// ErrDeckCreatorEmpty is returned when a deck's creator ID is empty or nil.
	ErrDeckCreatorEmpty = errors.New("deck creator ID cannot be empty")

	// ErrDeckNameEmpty is returned when a deck's name is empty.
	ErrDeckNameEmpty = errors.New("deck name cannot be empty")

	// ErrDeckLearningRate is returned when a deck's learning rate is not positive.
	ErrDeckLearningRate = errors.New("deck learning rate must be positive")
)

// Deck is a named collection of word-pair cards between a source and a
// target language, owned by exactly one user.
//
// NumCardsLearned counts the cards learned on LastTimeLearned's calendar
// day. LastTimeLearned is nil if the deck has never been learned; it always
// holds a date-only value (midnight). Both fields are mutated only through
// the review flow, never directly by the user.
type Deck struct {
	ID              uuid.UUID  `json:"id"`
	CreatorID       uuid.UUID  `json:"creator_id"`
	Name            string     `json:"name"`
	LearningRate    int        `json:"learning_rate"`
	FromLang        Language   `json:"from_lang"`
	ToLang          Language   `json:"to_lang"`
	NumCardsLearned int        `json:"num_cards_learned"`
	LastTimeLearned *time.Time `json:"last_time_learned,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewDeck creates a new Deck owned by creatorID. It generates a new UUID,
// sets the timestamps, and leaves the learning counters at their zero
// values (never learned). Returns an error if validation fails.
func NewDeck(creatorID uuid.UUID, name string, learningRate int, fromLang, toLang Language) (*Deck, error) {
	now := time.Now().UTC()
	deck := &Deck{
		ID:           uuid.New(),
		CreatorID:    creatorID,
		Name:         name,
		LearningRate: learningRate,
		FromLang:     fromLang,
		ToLang:       toLang,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks if the Deck has valid data.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDeckIDEmpty
	}

	if d.CreatorID == uuid.Nil {
		return ErrDeckCreatorEmpty
	}

	if d.Name == "" {
		return ErrDeckNameEmpty
	}

	if d.LearningRate <= 0 {
		return ErrDeckLearningRate
	}

	if !ValidLanguagePair(d.FromLang, d.ToLang) {
		return ErrInvalidLanguagePair
	}

	return nil
}
