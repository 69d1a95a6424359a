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

// NoteService implements note operations for the owning user.
type NoteService struct {
	notes      repository.NoteRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewNoteService builds the service.
func NewNoteService(notes repository.NoteRepository, users repository.UserRepository, dispatcher events.Dispatcher) *NoteService {
	return &NoteService{notes: notes, users: users, dispatcher: dispatcher}
}

// List returns the user's notes, most recently edited first.
func (s *NoteService) List(ctx context.Context, userID int64) ([]domain.Note, error) {
	return s.notes.ListByUser(ctx, userID)
}

// Create adds a note and announces it to the workspace.
func (s *NoteService) Create(ctx context.Context, userID int64, title, body string) (*domain.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}

	note := &domain.Note{UserID: userID, Title: title, Body: body}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}

	s.publish(ctx, userID, events.EventNoteCreated, events.NoteCreatedPayload{
		NoteID: note.ID,
		Title:  note.Title,
	})
	return note, nil
}

// Update rewrites a note owned by the user.
func (s *NoteService) Update(ctx context.Context, userID, id int64, title, body string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return apperrors.NewValidationError("title required", nil)
	}

	note := &domain.Note{ID: id, UserID: userID, Title: title, Body: body}
	if err := s.notes.Update(ctx, note); err != nil {
		return apperrors.MapError(err)
	}

	s.publish(ctx, userID, events.EventNoteUpdated, events.NoteUpdatedPayload{
		NoteID: id,
		Title:  title,
	})
	return nil
}

// Delete removes a note owned by the user.
func (s *NoteService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.notes.Delete(ctx, userID, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *NoteService) publish(ctx context.Context, userID int64, eventType events.EventType, payload interface{}) {
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
