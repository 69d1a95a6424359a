package worker

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/workspace-service/internal/api/ws"
	"github.com/spec-kit/workspace-service/internal/events"
	"github.com/spec-kit/workspace-service/internal/service"
)

// StartChatAnnouncer pushes workspace activity into the chat room as system
// notices.
func StartChatAnnouncer(dispatcher events.Dispatcher, chat *service.ChatService, hub *ws.Hub, logger *zap.Logger) {
	announce := func(ctx context.Context, event events.Event) error {
		body := noticeFor(event)
		if body == "" {
			return nil
		}
		message, err := chat.PostSystem(ctx, body)
		if err != nil {
			logger.Warn("chat notice dropped", zap.String("event", string(event.Type)), zap.Error(err))
			return err
		}
		hub.Publish(ctx, ws.MessageEnvelope(message))
		return nil
	}

	dispatcher.Subscribe(events.EventTodoCreated, announce)
	dispatcher.Subscribe(events.EventTodoCompleted, announce)
	dispatcher.Subscribe(events.EventNoteCreated, announce)
	dispatcher.Subscribe(events.EventNoteUpdated, announce)
}

func noticeFor(event events.Event) string {
	who := event.Username
	if who == "" {
		who = "someone"
	}

	switch payload := event.Payload.(type) {
	case events.TodoCreatedPayload:
		return fmt.Sprintf("%s added a todo: %s", who, payload.Title)
	case events.TodoCompletedPayload:
		return fmt.Sprintf("%s completed a todo", who)
	case events.NoteCreatedPayload:
		return fmt.Sprintf("%s created a note: %s", who, payload.Title)
	case events.NoteUpdatedPayload:
		return fmt.Sprintf("%s updated a note: %s", who, payload.Title)
	default:
		return ""
	}
}
