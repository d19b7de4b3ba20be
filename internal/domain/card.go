package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardDeckIDEmpty is returned when a card's deck ID is empty or nil.
	ErrCardDeckIDEmpty = errors.New("card deck ID cannot be empty")

	// ErrCardWordEmpty is returned when a card's word is empty.
	ErrCardWordEmpty = errors.New("card word cannot be empty")

	// ErrCardTranslationEmpty is returned when a card's translation is empty.
	ErrCardTranslationEmpty = errors.New("card translation cannot be empty")

	// ErrCardStageRange is returned when a card's stage is outside [0,8].
	ErrCardStageRange = errors.New("card stage must be between 0 and 8")
)

// ReviewOutcome represents the result of a card review.
type ReviewOutcome string

// Possible review outcome values.
const (
	ReviewOutcomeHard ReviewOutcome = "hard"
	ReviewOutcomeGood ReviewOutcome = "good"
	ReviewOutcomeEasy ReviewOutcome = "easy"
)

// IsValid reports whether the outcome is one of hard, good or easy.
func (o ReviewOutcome) IsValid() bool {
	switch o {
	case ReviewOutcomeHard, ReviewOutcomeGood, ReviewOutcomeEasy:
		return true
	}
	return false
}

// Card is a word-pair flashcard owned by exactly one deck.
//
// Stage is the card's Leitner box in [0,8]; Expires is the calendar day
// (date-only, midnight) on or after which the card is due again. Expires is
// nil if and only if the card has never completed a review cycle, which is
// what marks it as "new". CreatedAt orders new-card admission, oldest first.
type Card struct {
	ID          uuid.UUID  `json:"id"`
	DeckID      uuid.UUID  `json:"deck_id"`
	Word        string     `json:"word"`
	Translation string     `json:"translation"`
	Phonetic    string     `json:"phonetic,omitempty"`
	AudioLink   string     `json:"audio_link,omitempty"`
	Definitions []string   `json:"definitions"`
	Examples    []string   `json:"examples"`
	Synonyms    []string   `json:"synonyms"`
	Antonyms    []string   `json:"antonyms"`
	Stage       int        `json:"stage"`
	Expires     *time.Time `json:"expires,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewCard creates a new Card in the given deck. The card starts at stage 0
// with no expiry, i.e. as a new card. Returns an error if validation fails.
func NewCard(deckID uuid.UUID, word, translation string) (*Card, error) {
	card := &Card{
		ID:          uuid.New(),
		DeckID:      deckID,
		Word:        word,
		Translation: translation,
		CreatedAt:   time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.DeckID == uuid.Nil {
		return ErrCardDeckIDEmpty
	}

	if c.Word == "" {
		return ErrCardWordEmpty
	}

	if c.Translation == "" {
		return ErrCardTranslationEmpty
	}

	if c.Stage < 0 || c.Stage > 8 {
		return ErrCardStageRange
	}

	return nil
}

// IsNew reports whether the card has never completed a review cycle.
func (c *Card) IsNew() bool {
	return c.Expires == nil
}
