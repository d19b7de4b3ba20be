package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wortwise/wortwise-api/internal/api"
	apimiddleware "github.com/wortwise/wortwise-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userService,
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		app.logger,
	)
	deckHandler := api.NewDeckHandler(app.deckService, app.logger)
	cardHandler := api.NewCardHandler(app.cardService, app.logger)

	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Public authentication endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Everything else requires a valid access token
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/users/me", authHandler.Me)
			r.Delete("/users/me", authHandler.DeleteMe)

			r.Post("/decks", deckHandler.Create)
			r.Get("/decks", deckHandler.List)
			r.Post("/decks/import", deckHandler.Import)
			r.Get("/decks/{deckID}", deckHandler.Get)
			r.Put("/decks/{deckID}", deckHandler.Update)
			r.Delete("/decks/{deckID}", deckHandler.Delete)
			r.Post("/decks/{deckID}/swap", deckHandler.Swap)
			r.Get("/decks/{deckID}/stats", deckHandler.Stats)

			r.Post("/decks/{deckID}/cards", cardHandler.Create)
			r.Get("/decks/{deckID}/cards", cardHandler.List)
			r.Get("/decks/{deckID}/cards/learn", cardHandler.ToLearn)
			r.Get("/decks/{deckID}/cards/{cardID}", cardHandler.Get)
			r.Delete("/decks/{deckID}/cards/{cardID}", cardHandler.Delete)
			r.Post("/decks/{deckID}/cards/{cardID}/review", cardHandler.Review)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
