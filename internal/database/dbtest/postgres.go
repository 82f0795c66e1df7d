// Package dbtest starts throwaway Postgres containers for integration tests.
package dbtest

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/Tomlord1122/todo-web/internal/config"
)

const (
	image    = "postgres:16-alpine"
	dbName   = "database"
	username = "user"
	password = "password"
)

// StartPostgres runs a Postgres container and returns a config pointing at
// it together with a function that terminates the container.
func StartPostgres(ctx context.Context) (config.DB, func() error, error) {
	container, err := tcpostgres.Run(ctx, image,
		tcpostgres.WithDatabase(dbName),
		tcpostgres.WithUsername(username),
		tcpostgres.WithPassword(password),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		return config.DB{}, nil, fmt.Errorf("start postgres container: %w", err)
	}
	teardown := func() error {
		return testcontainers.TerminateContainer(container)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = teardown()
		return config.DB{}, nil, fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = teardown()
		return config.DB{}, nil, fmt.Errorf("container port: %w", err)
	}

	cfg := config.DB{
		Driver:   config.DriverPostgres,
		Host:     host,
		Port:     port.Port(),
		Username: username,
		Password: password,
		Database: dbName,
		LogLevel: "silent",
	}
	return cfg, teardown, nil
}
