package repository

import (
	"context"

	"github.com/Tomlord1122/todo-web/internal/domain"

	"gorm.io/gorm"
)

// TodoRepository defines the interface for todo data operations.
// There is deliberately no update or delete.
type TodoRepository interface {
	// Create inserts todo and fills in its ID and CreatedAt.
	Create(ctx context.Context, todo *domain.Todo) error
	// ListByCreatedDesc returns every todo, most recently created first.
	ListByCreatedDesc(ctx context.Context) ([]domain.Todo, error)
}

// gormTodoRepository implements TodoRepository using GORM
type gormTodoRepository struct {
	db *gorm.DB
}

// NewGormTodoRepository creates a new GORM todo repository
func NewGormTodoRepository(db *gorm.DB) TodoRepository {
	return &gormTodoRepository{db: db}
}

// Create adds a new todo to the database. The insert runs in GORM's default
// transaction, so either the row is committed or nothing is.
func (r *gormTodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	result := r.db.WithContext(ctx).Create(todo)
	return wrapErr("create", result.Error)
}

func (r *gormTodoRepository) ListByCreatedDesc(ctx context.Context) ([]domain.Todo, error) {
	var todos []domain.Todo
	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&todos)
	if result.Error != nil {
		return nil, wrapErr("list", result.Error)
	}
	return todos, nil
}
