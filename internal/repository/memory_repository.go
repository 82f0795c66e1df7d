package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Tomlord1122/todo-web/internal/domain"
)

// MemoryTodoRepository keeps todos in process memory. It backs
// DB_DRIVER=memory and the tests; nothing survives a restart.
type MemoryTodoRepository struct {
	mu    sync.Mutex
	todos []domain.Todo
	last  time.Time
	fail  error
	now   func() time.Time
}

func NewMemoryTodoRepository() *MemoryTodoRepository {
	return &MemoryTodoRepository{now: time.Now}
}

// SetFailure makes every following call fail with err until it is reset
// with nil. Used to simulate an unreachable store.
func (r *MemoryTodoRepository) SetFailure(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = err
}

func (r *MemoryTodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	if err := ctx.Err(); err != nil {
		return wrapErr("create", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return wrapErr("create", r.fail)
	}

	// creation timestamps are kept strictly increasing so sequential
	// inserts list in the order they were made
	ts := r.now().UTC()
	if !ts.After(r.last) {
		ts = r.last.Add(time.Microsecond)
	}
	r.last = ts

	if todo.ID == "" {
		todo.ID = uuid.NewString()
	}
	todo.CreatedAt = ts
	r.todos = append(r.todos, *todo)
	return nil
}

func (r *MemoryTodoRepository) ListByCreatedDesc(ctx context.Context) ([]domain.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapErr("list", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return nil, wrapErr("list", r.fail)
	}

	out := slices.Clone(r.todos)
	slices.SortStableFunc(out, func(a, b domain.Todo) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}
