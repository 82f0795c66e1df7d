package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Tomlord1122/todo-web/internal/config"
	"github.com/Tomlord1122/todo-web/internal/domain"
)

// Service wraps the connection pool shared by the repositories.
type Service interface {
	Health() map[string]string
	Close() error
	GetDB() *gorm.DB
}

type service struct {
	db     *gorm.DB
	name   string
	driver string
}

// New opens a GORM connection for cfg.Driver. The memory driver has no SQL
// connection and is rejected here; callers wire the in-memory repository
// directly.
func New(cfg config.DB) (Service, error) {
	dialector, name, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logLevel(cfg.LogLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &service{db: db, name: name, driver: dialector.Name()}, nil
}

func dialectorFor(cfg config.DB) (gorm.Dialector, string, error) {
	switch cfg.Driver {
	case config.DriverPostgres, "":
		// "pgx" is registered by the pgx/v5 stdlib import above
		return postgres.New(postgres.Config{
			DriverName: "pgx",
			DSN:        cfg.PostgresDSN(),
		}), cfg.Database, nil
	case config.DriverMySQL:
		dsnCfg, err := mysqldriver.ParseDSN(cfg.MySQLDSN())
		if err != nil {
			return nil, "", fmt.Errorf("parse mysql dsn: %w", err)
		}
		// created_at must scan into time.Time
		dsnCfg.ParseTime = true
		return mysql.New(mysql.Config{
			DSNConfig: dsnCfg,
			DSN:       dsnCfg.FormatDSN(),
		}), dsnCfg.DBName, nil
	default:
		return nil, "", fmt.Errorf("driver %q has no SQL connection", cfg.Driver)
	}
}

func logLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Migrate creates or updates the todos table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Todo{})
}

func (s *service) GetDB() *gorm.DB {
	return s.db
}

// Health pings the pool. A healthy report carries the pool counters so
// /health can show whether requests are queueing for connections.
func (s *service) Health() map[string]string {
	sqlDB, err := s.db.DB()
	if err != nil {
		return down(s.driver, fmt.Errorf("underlying sql.DB: %w", err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return down(s.driver, err)
	}

	return up(s.driver, sqlDB.Stats())
}

func down(driver string, err error) map[string]string {
	log.Printf("%s health check failed: %v", driver, err)
	return map[string]string{
		"status": "down",
		"driver": driver,
		"error":  err.Error(),
	}
}

func up(driver string, st sql.DBStats) map[string]string {
	report := map[string]string{
		"status":           "up",
		"driver":           driver,
		"open_connections": strconv.Itoa(st.OpenConnections),
		"in_use":           strconv.Itoa(st.InUse),
		"idle":             strconv.Itoa(st.Idle),
		"wait_count":       strconv.FormatInt(st.WaitCount, 10),
		"wait_duration":    st.WaitDuration.String(),
	}
	if st.MaxOpenConnections > 0 && st.WaitCount > 0 && st.InUse >= st.MaxOpenConnections {
		report["message"] = "connection pool exhausted"
	}
	return report
}

func (s *service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB for closing: %v", err)
		return err
	}
	log.Printf("Closing connection pool for database: %s", s.name)
	return sqlDB.Close()
}

// memoryService stands in for a pool when DB_DRIVER=memory.
type memoryService struct{}

// NewMemory returns a Service with no SQL connection behind it.
func NewMemory() Service { return memoryService{} }

func (memoryService) Health() map[string]string {
	return map[string]string{"status": "up", "driver": config.DriverMemory}
}

func (memoryService) Close() error { return nil }

func (memoryService) GetDB() *gorm.DB { return nil }
