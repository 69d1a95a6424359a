package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/workspace-service/internal/domain"
	"github.com/spec-kit/workspace-service/internal/events"
	apperrors "github.com/spec-kit/workspace-service/pkg/util"
)

type capturedEvents struct {
	mu     sync.Mutex
	events []events.Event
}

func (c *capturedEvents) record(_ context.Context, event events.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func newTestTodoService(t *testing.T) (*TodoService, *capturedEvents, int64) {
	t.Helper()
	users := newFakeUserRepo()
	user := &domain.User{Username: "alice", PasswordHash: "hash"}
	require.NoError(t, users.Create(context.Background(), user))

	dispatcher := events.NewInMemoryDispatcher()
	captured := &capturedEvents{}
	dispatcher.Subscribe(events.EventTodoCreated, captured.record)
	dispatcher.Subscribe(events.EventTodoCompleted, captured.record)

	return NewTodoService(newFakeTodoRepo(), users, dispatcher), captured, user.ID
}

func TestTodoCreatePublishesEvent(t *testing.T) {
	svc, captured, userID := newTestTodoService(t)

	todo, err := svc.Create(context.Background(), userID, "  write report  ")
	require.NoError(t, err)
	assert.Equal(t, "write report", todo.Title)

	require.Len(t, captured.events, 1)
	event := captured.events[0]
	assert.Equal(t, events.EventTodoCreated, event.Type)
	assert.Equal(t, "alice", event.Username)
	payload, ok := event.Payload.(events.TodoCreatedPayload)
	require.True(t, ok)
	assert.Equal(t, todo.ID, payload.TodoID)
}

func TestTodoCreateRequiresTitle(t *testing.T) {
	svc, captured, userID := newTestTodoService(t)

	_, err := svc.Create(context.Background(), userID, "   ")
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 400, de.HTTPStatus)
	assert.Empty(t, captured.events)
}

func TestTodoSetDoneAnnouncesOnlyCompletion(t *testing.T) {
	svc, captured, userID := newTestTodoService(t)

	todo, err := svc.Create(context.Background(), userID, "task")
	require.NoError(t, err)

	require.NoError(t, svc.SetDone(context.Background(), userID, todo.ID, true))
	require.NoError(t, svc.SetDone(context.Background(), userID, todo.ID, false))

	// create + complete; un-completing is silent.
	assert.Len(t, captured.events, 2)
	assert.Equal(t, events.EventTodoCompleted, captured.events[1].Type)
}

func TestTodoOwnershipEnforced(t *testing.T) {
	svc, _, userID := newTestTodoService(t)

	todo, err := svc.Create(context.Background(), userID, "mine")
	require.NoError(t, err)

	// Another user cannot touch it.
	err = svc.SetDone(context.Background(), userID+1, todo.ID, true)
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 404, de.HTTPStatus)

	err = svc.Delete(context.Background(), userID+1, todo.ID)
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 404, de.HTTPStatus)

	todos, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, todos, 1)
}
