package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Tomlord1122/todo-web/internal/cache"
	"github.com/Tomlord1122/todo-web/internal/domain"
	"github.com/Tomlord1122/todo-web/internal/repository"
)

// ListPath is the page whose cached rendering goes stale when a todo is created.
const ListPath = "/"

// FailedToCreate is the message reported when a submission could not be stored.
const FailedToCreate = "Failed to create todo"

// ErrEmptyTitle is returned by CreateTodo for a blank or whitespace-only title.
var ErrEmptyTitle = errors.New("title cannot be empty")

// CreateTodoRequest holds the data needed to create a new todo
type CreateTodoRequest struct {
	Title string `json:"title"`
}

// TodoResponse is the standard representation of a Todo returned by the service.
type TodoResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"`
}

// SubmitResult is the outcome of a form submission. Failures are reported
// in Error rather than returned, so a caller can always render it.
type SubmitResult struct {
	Todo    *TodoResponse
	Skipped bool
	Error   string
}

// OK reports whether the submission left no error to show.
func (r SubmitResult) OK() bool { return r.Error == "" }

// TodoService defines the operations for managing todos.
type TodoService interface {
	// ListTodos returns every todo, most recently created first.
	ListTodos(ctx context.Context) ([]TodoResponse, error)

	// CreateTodo stores a new todo and revalidates the list view.
	CreateTodo(ctx context.Context, req CreateTodoRequest) (*TodoResponse, error)

	// SubmitNewTodo handles a raw form value. Blank input is silently
	// ignored and store failures come back inside the result.
	SubmitNewTodo(ctx context.Context, rawTitle string) SubmitResult
}

type todoService struct {
	repo        repository.TodoRepository
	revalidator cache.Revalidator
}

// NewTodoService creates a TodoService. A nil revalidator is replaced by cache.Nop.
func NewTodoService(repo repository.TodoRepository, revalidator cache.Revalidator) TodoService {
	if revalidator == nil {
		revalidator = cache.Nop{}
	}
	return &todoService{
		repo:        repo,
		revalidator: revalidator,
	}
}

func (s *todoService) ListTodos(ctx context.Context) ([]TodoResponse, error) {
	todos, err := s.repo.ListByCreatedDesc(ctx)
	if err != nil {
		log.Printf("Error fetching todos from repository: %v", err)
		return nil, fmt.Errorf("failed to retrieve todo items: %w", err)
	}

	responses := make([]TodoResponse, 0, len(todos))
	for _, todo := range todos {
		responses = append(responses, toResponse(todo))
	}
	return responses, nil
}

func (s *todoService) CreateTodo(ctx context.Context, req CreateTodoRequest) (*TodoResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	newTodo := &domain.Todo{
		Title:     title,
		Completed: false,
	}
	if err := s.repo.Create(ctx, newTodo); err != nil {
		log.Printf("Error creating todo in repository: %v", err)
		return nil, fmt.Errorf("failed to create todo item: %w", err)
	}

	s.revalidator.Revalidate(ctx, ListPath)

	response := toResponse(*newTodo)
	return &response, nil
}

func (s *todoService) SubmitNewTodo(ctx context.Context, rawTitle string) SubmitResult {
	todo, err := s.CreateTodo(ctx, CreateTodoRequest{Title: rawTitle})
	switch {
	case errors.Is(err, ErrEmptyTitle):
		return SubmitResult{Skipped: true}
	case err != nil:
		return SubmitResult{Error: FailedToCreate}
	}
	return SubmitResult{Todo: todo}
}

func toResponse(todo domain.Todo) TodoResponse {
	return TodoResponse{
		ID:        todo.ID,
		Title:     todo.Title,
		Completed: todo.Completed,
		CreatedAt: todo.CreatedAt.Format(time.RFC3339Nano),
	}
}
