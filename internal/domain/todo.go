package domain

import "time"

// Todo is a single task item owned by a user.
type Todo struct {
	ID        int64
	UserID    int64
	Title     string
	Done      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
