package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/wortwise/wortwise-api/internal/api/shared"
	"github.com/wortwise/wortwise-api/internal/domain"
	"github.com/wortwise/wortwise-api/internal/service"
)

// DeckHandler handles deck-related HTTP requests.
type DeckHandler struct {
	deckService *service.DeckService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(deckService *service.DeckService, logger *slog.Logger) *DeckHandler {
	if deckService == nil {
		panic("deckService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DeckHandler{
		deckService: deckService,
		validator:   validator.New(),
		logger:      logger.With(slog.String("component", "deck_handler")),
	}
}

// Create handles POST /decks.
func (h *DeckHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateDeckRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	fromLang, toLang, err := parseLanguagePair(req.FromLang, req.ToLang)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	deck, err := h.deckService.CreateDeck(r.Context(), userID, req.Name, req.LearningRate, fromLang, toLang)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newDeckResponse(deck))
}

// List handles GET /decks.
func (h *DeckHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	overviews, err := h.deckService.ListDecks(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	out := make([]DeckOverviewResponse, 0, len(overviews))
	for _, overview := range overviews {
		out = append(out, newDeckOverviewResponse(overview))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// Get handles GET /decks/{deckID}.
func (h *DeckHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "deckID", h.logger)
	if !ok {
		return
	}

	overview, err := h.deckService.GetDeck(r.Context(), userID, deckID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newDeckOverviewResponse(overview))
}

// Update handles PUT /decks/{deckID}.
func (h *DeckHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "deckID", h.logger)
	if !ok {
		return
	}

	var req UpdateDeckRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	fromLang, toLang, err := parseLanguagePair(req.FromLang, req.ToLang)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	deck, err := h.deckService.UpdateDeck(r.Context(), userID, deckID, req.Name, req.LearningRate, fromLang, toLang)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newDeckResponse(deck))
}

// Delete handles DELETE /decks/{deckID}.
func (h *DeckHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "deckID", h.logger)
	if !ok {
		return
	}

	if err := h.deckService.DeleteDeck(r.Context(), userID, deckID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Import handles POST /decks/import.
func (h *DeckHandler) Import(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	var req ImportDeckRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	deck, err := h.deckService.ImportDeck(r.Context(), userID, req.DeckID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newDeckResponse(deck))
}

// Swap handles POST /decks/{deckID}/swap.
func (h *DeckHandler) Swap(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "deckID", h.logger)
	if !ok {
		return
	}

	deck, err := h.deckService.SwapDeck(r.Context(), userID, deckID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newDeckResponse(deck))
}

// Stats handles GET /decks/{deckID}/stats.
func (h *DeckHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "deckID", h.logger)
	if !ok {
		return
	}

	stages, err := h.deckService.DeckStats(r.Context(), userID, deckID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if stages == nil {
		stages = map[int]int{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeckStatsResponse{Stages: stages})
}

// parseLanguagePair validates a from/to code pair from a request body.
func parseLanguagePair(from, to string) (domain.Language, domain.Language, error) {
	fromLang := domain.Language(from)
	toLang := domain.Language(to)
	if !fromLang.IsValid() || !toLang.IsValid() {
		return "", "", fmt.Errorf("%w: unsupported language code", domain.ErrValidation)
	}
	if !domain.ValidLanguagePair(fromLang, toLang) {
		return "", "", domain.ErrInvalidLanguagePair
	}
	return fromLang, toLang, nil
}
