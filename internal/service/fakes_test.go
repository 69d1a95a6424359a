package service

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/workspace-service/internal/domain"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) Exists(ctx context.Context, username string) (bool, error) {
	if _, err := r.GetByUsername(ctx, username); err != nil {
		return false, nil
	}
	return true, nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []domain.Message
}

func (r *fakeMessageRepo) Create(_ context.Context, message *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	message.CreatedAt = time.Now()
	r.messages = append(r.messages, *message)
	return nil
}

func (r *fakeMessageRepo) ListRecent(_ context.Context, limit int) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	start := 0
	if len(r.messages) > limit {
		start = len(r.messages) - limit
	}
	out := make([]domain.Message, len(r.messages[start:]))
	copy(out, r.messages[start:])
	return out, nil
}

type fakeTodoRepo struct {
	mu     sync.Mutex
	nextID int64
	todos  map[int64]*domain.Todo
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{todos: make(map[int64]*domain.Todo)}
}

func (r *fakeTodoRepo) Create(_ context.Context, todo *domain.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	todo.ID = r.nextID
	todo.CreatedAt = time.Now()
	todo.UpdatedAt = todo.CreatedAt
	copied := *todo
	r.todos[todo.ID] = &copied
	return nil
}

func (r *fakeTodoRepo) ListByUser(_ context.Context, userID int64) ([]domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Todo, 0)
	for _, todo := range r.todos {
		if todo.UserID == userID {
			out = append(out, *todo)
		}
	}
	return out, nil
}

func (r *fakeTodoRepo) SetDone(_ context.Context, userID, id int64, done bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	todo, ok := r.todos[id]
	if !ok || todo.UserID != userID {
		return pgx.ErrNoRows
	}
	todo.Done = done
	todo.UpdatedAt = time.Now()
	return nil
}

func (r *fakeTodoRepo) Delete(_ context.Context, userID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	todo, ok := r.todos[id]
	if !ok || todo.UserID != userID {
		return pgx.ErrNoRows
	}
	delete(r.todos, id)
	return nil
}
