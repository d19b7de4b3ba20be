package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/wortwise/wortwise-api/internal/domain"
	"github.com/wortwise/wortwise-api/internal/service"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// CreateDeckRequest defines the payload for creating a deck.
type CreateDeckRequest struct {
	Name         string `json:"name"          validate:"required,min=1,max=100"`
	LearningRate int    `json:"learning_rate" validate:"required,gt=0"`
	FromLang     string `json:"from_lang"     validate:"required,len=2"`
	ToLang       string `json:"to_lang"       validate:"required,len=2"`
}

// UpdateDeckRequest defines the payload for updating a deck.
type UpdateDeckRequest struct {
	Name         string `json:"name"          validate:"required,min=1,max=100"`
	LearningRate int    `json:"learning_rate" validate:"required,gt=0"`
	FromLang     string `json:"from_lang"     validate:"required,len=2"`
	ToLang       string `json:"to_lang"       validate:"required,len=2"`
}

// ImportDeckRequest defines the payload for importing another user's deck.
type ImportDeckRequest struct {
	DeckID uuid.UUID `json:"deck_id" validate:"required"`
}

// DeckResponse represents a deck in API responses.
type DeckResponse struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	LearningRate    int        `json:"learning_rate"`
	FromLang        string     `json:"from_lang"`
	ToLang          string     `json:"to_lang"`
	NumCardsLearned int        `json:"num_cards_learned"`
	LastTimeLearned *time.Time `json:"last_time_learned,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// DeckOverviewResponse is a deck with its session counts.
type DeckOverviewResponse struct {
	DeckResponse
	NewCards      int `json:"new_cards"`
	DueCards      int `json:"due_cards"`
	NewCardsToday int `json:"new_cards_today"`
}

// DeckStatsResponse maps each stage to its card count.
type DeckStatsResponse struct {
	Stages map[int]int `json:"stages"`
}

// CreateCardRequest defines the payload for creating a card.
type CreateCardRequest struct {
	Word string `json:"word" validate:"required,min=1,max=100"`
}

// ReviewCardRequest defines the payload for reviewing a card.
type ReviewCardRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=hard good easy"`
}

// CardResponse represents a card in API responses.
type CardResponse struct {
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

// newDeckResponse converts a domain deck to its response shape.
func newDeckResponse(deck *domain.Deck) DeckResponse {
	return DeckResponse{
		ID:              deck.ID,
		Name:            deck.Name,
		LearningRate:    deck.LearningRate,
		FromLang:        string(deck.FromLang),
		ToLang:          string(deck.ToLang),
		NumCardsLearned: deck.NumCardsLearned,
		LastTimeLearned: deck.LastTimeLearned,
		CreatedAt:       deck.CreatedAt,
	}
}

// newDeckOverviewResponse converts a service overview to its response shape.
func newDeckOverviewResponse(overview *service.DeckOverview) DeckOverviewResponse {
	return DeckOverviewResponse{
		DeckResponse:  newDeckResponse(overview.Deck),
		NewCards:      overview.NewCards,
		DueCards:      overview.DueCards,
		NewCardsToday: overview.NewCardsToday,
	}
}

// newCardResponse converts a domain card to its response shape.
func newCardResponse(card *domain.Card) CardResponse {
	return CardResponse{
		ID:          card.ID,
		DeckID:      card.DeckID,
		Word:        card.Word,
		Translation: card.Translation,
		Phonetic:    card.Phonetic,
		AudioLink:   card.AudioLink,
		Definitions: card.Definitions,
		Examples:    card.Examples,
		Synonyms:    card.Synonyms,
		Antonyms:    card.Antonyms,
		Stage:       card.Stage,
		Expires:     card.Expires,
		CreatedAt:   card.CreatedAt,
	}
}

// newCardResponses converts a card slice, never returning nil so the JSON
// is always an array.
func newCardResponses(cards []*domain.Card) []CardResponse {
	out := make([]CardResponse, 0, len(cards))
	for _, card := range cards {
		out = append(out, newCardResponse(card))
	}
	return out
}
