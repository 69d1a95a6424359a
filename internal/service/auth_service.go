package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/workspace-service/internal/auth"
	"github.com/spec-kit/workspace-service/internal/domain"
	"github.com/spec-kit/workspace-service/internal/repository"
	apperrors "github.com/spec-kit/workspace-service/pkg/util"
)

// AuthService coordinates registration and login flows: credential
// validation, the user-directory lookup, token issuance and session
// caching. Token verification itself never passes through here; that is the
// gate's job.
type AuthService struct {
	users      repository.UserRepository
	issuer     *auth.Issuer
	sessions   *auth.SessionStore
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(users repository.UserRepository, issuer *auth.Issuer, sessions *auth.SessionStore, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		issuer:     issuer,
		sessions:   sessions,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new member and opens a session for them.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, domain.TokenPair, error) {
	cleanUsername, cleanPassword, err := auth.ValidateCredential(username, password)
	if err != nil {
		return nil, domain.TokenPair{}, apperrors.NewValidationError(err.Error(), nil)
	}

	exists, err := s.users.Exists(ctx, cleanUsername)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}
	if exists {
		return nil, domain.TokenPair{}, apperrors.NewConflict("username already registered", nil)
	}

	hash, err := auth.HashPassword(cleanPassword, s.bcryptCost)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}

	user := &domain.User{Username: cleanUsername, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, domain.TokenPair{}, err
	}

	pair, err := s.openSession(user.ID)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}
	return user, pair, nil
}

// Login authenticates a member by credential and opens a session. Lookup
// failure and digest mismatch are indistinguishable to the client.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, domain.TokenPair, error) {
	cleanUsername, cleanPassword, err := auth.ValidateCredential(username, password)
	if err != nil {
		return nil, domain.TokenPair{}, apperrors.NewValidationError(err.Error(), nil)
	}

	user, err := s.users.GetByUsername(ctx, cleanUsername)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.TokenPair{}, apperrors.NewForbidden("invalid credentials")
		}
		return nil, domain.TokenPair{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, cleanPassword); err != nil {
		return nil, domain.TokenPair{}, apperrors.NewForbidden("invalid credentials")
	}

	pair, err := s.openSession(user.ID)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}
	return user, pair, nil
}

// GetUser loads a member by id for authenticated introspection.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) openSession(userID int64) (domain.TokenPair, error) {
	pair, err := s.issuer.Issue(userID)
	if err != nil {
		return domain.TokenPair{}, err
	}
	s.sessions.Put(userID, pair)
	return pair, nil
}
