package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTodoCreated   EventType = "todo_created"
	EventTodoCompleted EventType = "todo_completed"
	EventNoteCreated   EventType = "note_created"
	EventNoteUpdated   EventType = "note_updated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    int64       `json:"user_id"`
	Username  string      `json:"username"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TodoCreatedPayload payload.
type TodoCreatedPayload struct {
	TodoID int64  `json:"todo_id"`
	Title  string `json:"title"`
}

// TodoCompletedPayload payload.
type TodoCompletedPayload struct {
	TodoID int64 `json:"todo_id"`
	Done   bool  `json:"done"`
}

// NoteCreatedPayload payload.
type NoteCreatedPayload struct {
	NoteID int64  `json:"note_id"`
	Title  string `json:"title"`
}

// NoteUpdatedPayload payload.
type NoteUpdatedPayload struct {
	NoteID int64  `json:"note_id"`
	Title  string `json:"title"`
}
