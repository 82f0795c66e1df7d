package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tomlord1122/todo-web/internal/cache"
	"github.com/Tomlord1122/todo-web/internal/config"
	"github.com/Tomlord1122/todo-web/internal/database"
	"github.com/Tomlord1122/todo-web/internal/repository"
	"github.com/Tomlord1122/todo-web/internal/server"
	"github.com/Tomlord1122/todo-web/internal/service"
)

const shutdownGrace = 5 * time.Second

// serve runs srv until ctx is canceled, then drains in-flight requests and
// closes the pool.
func serve(ctx context.Context, srv *http.Server, dbService database.Service) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		_ = dbService.Close()
		return err
	case <-ctx.Done():
	}

	log.Println("Interrupt received, draining requests")
	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	shutdownErr := srv.Shutdown(drainCtx)
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		shutdownErr = errors.Join(shutdownErr, err)
	}
	if err := dbService.Close(); err != nil {
		shutdownErr = errors.Join(shutdownErr, fmt.Errorf("close store: %w", err))
	}
	return shutdownErr
}

// openStore picks the repository for the configured driver.
func openStore(cfg config.DB) (database.Service, repository.TodoRepository, error) {
	if cfg.Driver == config.DriverMemory {
		log.Println("Using in-memory store; todos are lost on restart.")
		return database.NewMemory(), repository.NewMemoryTodoRepository(), nil
	}

	dbService, err := database.New(cfg)
	if err != nil {
		return nil, nil, err
	}

	log.Println("Running database auto-migration...")
	if err := database.Migrate(dbService.GetDB()); err != nil {
		_ = dbService.Close()
		return nil, nil, err
	}
	log.Println("Database auto-migration complete.")

	return dbService, repository.NewGormTodoRepository(dbService.GetDB()), nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	dbService, todoRepo, err := openStore(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	views := cache.NewViewCache(cfg.ViewCacheTTL)
	todoService := service.NewTodoService(todoRepo, views)
	webServer := server.NewServer(cfg.Addr(), todoService, dbService, views)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	// restore default signal handling once draining starts
	context.AfterFunc(ctx, stop)

	if err := serve(ctx, webServer, dbService); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
	log.Println("Server stopped.")
}
