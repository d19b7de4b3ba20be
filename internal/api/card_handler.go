// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/wortwise/wortwise-api/internal/api/shared"
	"github.com/wortwise/wortwise-api/internal/domain"
	"github.com/wortwise/wortwise-api/internal/platform/logger"
	"github.com/wortwise/wortwise-api/internal/service"
)

// CardHandler handles card-related HTTP requests.
type CardHandler struct {
	cardService *service.CardService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardService *service.CardService, logger *slog.Logger) *CardHandler {
	if cardService == nil {
		panic("cardService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CardHandler{
		cardService: cardService,
		validator:   validator.New(),
		logger:      logger.With(slog.String("component", "card_handler")),
	}
}

// Create handles POST /decks/{deckID}/cards. The word is enriched through
// the external capabilities before the card is stored.
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "deckID", h.logger)
	if !ok {
		return
	}

	var req CreateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	card, err := h.cardService.CreateCard(r.Context(), userID, deckID, req.Word)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("card created via API",
		slog.String("card_id", card.ID.String()),
		slog.String("deck_id", deckID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, newCardResponse(card))
}

// List handles GET /decks/{deckID}/cards.
func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "deckID", h.logger)
	if !ok {
		return
	}

	cards, err := h.cardService.ListCards(r.Context(), userID, deckID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newCardResponses(cards))
}

// Get handles GET /decks/{deckID}/cards/{cardID}.
func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "deckID", h.logger)
	if !ok {
		return
	}
	cardID, err := getPathUUID(r, "cardID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	card, err := h.cardService.GetCard(r.Context(), userID, deckID, cardID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newCardResponse(card))
}

// Delete handles DELETE /decks/{deckID}/cards/{cardID}.
func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "deckID", h.logger)
	if !ok {
		return
	}
	cardID, err := getPathUUID(r, "cardID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.cardService.DeleteCard(r.Context(), userID, deckID, cardID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Review handles POST /decks/{deckID}/cards/{cardID}/review. It advances
// the card through the spaced-repetition schedule and records the deck's
// daily counter.
func (h *CardHandler) Review(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "deckID", h.logger)
	if !ok {
		return
	}
	cardID, err := getPathUUID(r, "cardID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req ReviewCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	card, err := h.cardService.ReviewCard(r.Context(), userID, deckID, cardID,
		domain.ReviewOutcome(req.Outcome))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("card reviewed via API",
		slog.String("card_id", cardID.String()),
		slog.String("outcome", req.Outcome),
		slog.Int("stage", card.Stage))
	shared.RespondWithJSON(w, r, http.StatusOK, newCardResponse(card))
}

// ToLearn handles GET /decks/{deckID}/cards/learn. It returns today's
// session: admitted new cards followed by due cards.
func (h *CardHandler) ToLearn(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "deckID", h.logger)
	if !ok {
		return
	}

	cards, err := h.cardService.CardsToLearn(r.Context(), userID, deckID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newCardResponses(cards))
}
