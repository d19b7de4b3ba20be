package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/wortwise/wortwise-api/internal/domain"
	"github.com/wortwise/wortwise-api/internal/platform/logger"
	"github.com/wortwise/wortwise-api/internal/service/auth"
	"github.com/wortwise/wortwise-api/internal/store"
)

// UserService owns account registration and removal. Login and token
// refresh live in the API layer, which talks to the user store and the JWT
// service directly.
type UserService struct {
	txRunner store.TxRunner
	users    store.UserStore
	decks    store.DeckStore
	cards    store.CardStore
	hasher   auth.PasswordHasher
	logger   *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	txRunner store.TxRunner,
	users store.UserStore,
	decks store.DeckStore,
	cards store.CardStore,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) *UserService {
	if txRunner == nil {
		panic("txRunner cannot be nil")
	}
	if users == nil {
		panic("users cannot be nil")
	}
	if decks == nil {
		panic("decks cannot be nil")
	}
	if cards == nil {
		panic("cards cannot be nil")
	}
	if hasher == nil {
		panic("hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserService{
		txRunner: txRunner,
		users:    users,
		decks:    decks,
		cards:    cards,
		hasher:   hasher,
		logger:   logger.With(slog.String("component", "user_service")),
	}
}

// Register creates a new account from an email and a plaintext password.
// Returns domain.ErrInvalidPassword for too-short passwords and
// store.ErrEmailExists when the email is already taken.
func (s *UserService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(password) < domain.MinPasswordLength {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPassword, domain.ErrPasswordTooShort)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(email, hashed)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

// GetUser returns the account with the given ID.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// DeleteUser removes the account and cascades to its decks and their
// cards, all in one transaction.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		deckIDs, err := s.decks.WithTx(tx).DeleteByCreator(ctx, id)
		if err != nil {
			return err
		}
		if err := s.cards.WithTx(tx).DeleteByDecks(ctx, deckIDs); err != nil {
			return err
		}
		return s.users.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	log.Info("user deleted", slog.String("user_id", id.String()))
	return nil
}
