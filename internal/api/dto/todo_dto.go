package dto

import "time"

// CreateTodoRequest payload for a new todo.
type CreateTodoRequest struct {
	Title string `json:"title"`
}

// UpdateTodoRequest payload for toggling completion.
type UpdateTodoRequest struct {
	Done bool `json:"done"`
}

// TodoResponse is the public view of a todo.
type TodoResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
