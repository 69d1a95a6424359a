package domain

import "time"

// MessageKind differentiates user chat messages from system notices.
type MessageKind string

const (
	MessageKindUser   MessageKind = "USER"
	MessageKindSystem MessageKind = "SYSTEM"
)

// Message is a single chat message in the shared workspace room.
type Message struct {
	ID        string
	UserID    *int64
	Username  string
	Kind      MessageKind
	Body      string
	CreatedAt time.Time
}
