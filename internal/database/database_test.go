package database

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/Tomlord1122/todo-web/internal/config"
)

func TestNewRejectsMemoryDriver(t *testing.T) {
	_, err := New(config.DB{Driver: config.DriverMemory})
	assert.Error(t, err)
}

func TestDialectorForMySQL(t *testing.T) {
	d, name, err := dialectorFor(config.DB{
		Driver:   config.DriverMySQL,
		Host:     "localhost",
		Port:     "3306",
		Username: "u",
		Password: "p",
		Database: "todos",
	})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())
	assert.Equal(t, "todos", name)
}

func TestDialectorForBadMySQLDSN(t *testing.T) {
	_, _, err := dialectorFor(config.DB{Driver: config.DriverMySQL, DSN: "not a dsn"})
	assert.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, logLevel("silent"))
	assert.Equal(t, logger.Info, logLevel("info"))
	assert.Equal(t, logger.Warn, logLevel(""))
}

func TestMemoryService(t *testing.T) {
	s := NewMemory()
	assert.Equal(t, map[string]string{"status": "up", "driver": "memory"}, s.Health())
	assert.Nil(t, s.GetDB())
	assert.NoError(t, s.Close())
}

func TestHealthReports(t *testing.T) {
	ok := up("postgres", sql.DBStats{MaxOpenConnections: 100, OpenConnections: 3, InUse: 1, Idle: 2})
	assert.Equal(t, "up", ok["status"])
	assert.Equal(t, "postgres", ok["driver"])
	assert.Equal(t, "3", ok["open_connections"])
	assert.NotContains(t, ok, "message")

	busy := up("postgres", sql.DBStats{MaxOpenConnections: 2, InUse: 2, WaitCount: 5, WaitDuration: time.Second})
	assert.Equal(t, "connection pool exhausted", busy["message"])
	assert.Equal(t, "1s", busy["wait_duration"])

	bad := down("mysql", errors.New("dial tcp: refused"))
	assert.Equal(t, "down", bad["status"])
	assert.Equal(t, "dial tcp: refused", bad["error"])
}
