package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/workspace-service/internal/domain"
	"github.com/spec-kit/workspace-service/internal/events"
	"github.com/spec-kit/workspace-service/internal/repository"
	apperrors "github.com/spec-kit/workspace-service/pkg/util"
)

// TodoService implements todo operations for the owning user.
type TodoService struct {
	todos      repository.TodoRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewTodoService builds the service.
func NewTodoService(todos repository.TodoRepository, users repository.UserRepository, dispatcher events.Dispatcher) *TodoService {
	return &TodoService{todos: todos, users: users, dispatcher: dispatcher}
}

// List returns the user's todos, newest first.
func (s *TodoService) List(ctx context.Context, userID int64) ([]domain.Todo, error) {
	return s.todos.ListByUser(ctx, userID)
}

// Create adds a todo and announces it to the workspace.
func (s *TodoService) Create(ctx context.Context, userID int64, title string) (*domain.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}

	todo := &domain.Todo{UserID: userID, Title: title}
	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, err
	}

	s.publish(ctx, userID, events.EventTodoCreated, events.TodoCreatedPayload{
		TodoID: todo.ID,
		Title:  todo.Title,
	})
	return todo, nil
}

// SetDone toggles completion and announces completion to the workspace.
func (s *TodoService) SetDone(ctx context.Context, userID, id int64, done bool) error {
	if err := s.todos.SetDone(ctx, userID, id, done); err != nil {
		return apperrors.MapError(err)
	}
	if done {
		s.publish(ctx, userID, events.EventTodoCompleted, events.TodoCompletedPayload{
			TodoID: id,
			Done:   done,
		})
	}
	return nil
}

// Delete removes a todo owned by the user.
func (s *TodoService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.todos.Delete(ctx, userID, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *TodoService) publish(ctx context.Context, userID int64, eventType events.EventType, payload interface{}) {
	username := ""
	if user, err := s.users.GetByID(ctx, userID); err == nil {
		username = user.Username
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Username:  username,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
