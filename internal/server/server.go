package server

import (
	"net/http"
	"time"

	"github.com/Tomlord1122/todo-web/internal/cache"
	"github.com/Tomlord1122/todo-web/internal/database"
	"github.com/Tomlord1122/todo-web/internal/service"
)

type Server struct {
	todoService service.TodoService
	db          database.Service
	views       *cache.ViewCache
}

// NewServer wires the handlers into an *http.Server listening on addr.
// views must be the same cache the service revalidates.
func NewServer(addr string, todoService service.TodoService, dbService database.Service, views *cache.ViewCache) *http.Server {
	if views == nil {
		views = cache.NewViewCache(0)
	}
	appServer := &Server{
		todoService: todoService,
		db:          dbService,
		views:       views,
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
