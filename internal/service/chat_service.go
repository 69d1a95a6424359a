package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/workspace-service/internal/auth"
	"github.com/spec-kit/workspace-service/internal/domain"
	"github.com/spec-kit/workspace-service/internal/repository"
	apperrors "github.com/spec-kit/workspace-service/pkg/util"
)

// ChatService persists chat messages for the shared workspace room.
type ChatService struct {
	messages     repository.MessageRepository
	users        repository.UserRepository
	historyLimit int
}

// NewChatService builds the service.
func NewChatService(messages repository.MessageRepository, users repository.UserRepository, historyLimit int) *ChatService {
	if historyLimit <= 0 {
		historyLimit = 50
	}
	return &ChatService{messages: messages, users: users, historyLimit: historyLimit}
}

// Post stores a user message. The body passes the same character stripping
// as credentials do, since it is rendered to other members.
func (s *ChatService) Post(ctx context.Context, userID int64, body string) (*domain.Message, error) {
	body = strings.TrimSpace(auth.Sanitize(body))
	if body == "" {
		return nil, apperrors.NewValidationError("message body required", nil)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewForbidden("unknown user")
		}
		return nil, err
	}

	message := &domain.Message{
		ID:       uuid.NewString(),
		UserID:   &userID,
		Username: user.Username,
		Kind:     domain.MessageKindUser,
		Body:     body,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// PostSystem stores a system notice emitted by workspace events.
func (s *ChatService) PostSystem(ctx context.Context, body string) (*domain.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("message body required", nil)
	}

	message := &domain.Message{
		ID:       uuid.NewString(),
		Username: "system",
		Kind:     domain.MessageKindSystem,
		Body:     body,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// History returns the most recent messages, oldest first.
func (s *ChatService) History(ctx context.Context) ([]domain.Message, error) {
	return s.messages.ListRecent(ctx, s.historyLimit)
}
