// Package store persists normalized price observations into the
// relational schema through find-or-create semantics: entities are
// looked up by natural key and inserted only when absent, never updated.
package store

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"facuatrack/internal/config"
	"facuatrack/internal/logger"
	"facuatrack/internal/models"
)

// Connection errors. Both are fatal for a run; they are distinguished so
// the operator knows whether to fix credentials or the host.
var (
	ErrInvalidCredentials = errors.New("invalid database credentials")
	ErrHostUnreachable    = errors.New("database host unreachable")
)

// invalidPassword is the Postgres SQLSTATE for authentication failure.
const invalidPassword = "28P01"

// Open connects to Postgres and returns a gorm handle. Connection
// failure is classified before being returned.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormLog,
	})
	if err != nil {
		return nil, classifyConnError(err)
	}

	return db, nil
}

// classifyConnError maps a connection failure onto the startup error
// taxonomy: bad password vs unreachable host vs anything else.
func classifyConnError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == invalidPassword {
		return fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrHostUnreachable, err)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return fmt.Errorf("%w: %v", ErrHostUnreachable, err)
	}

	return fmt.Errorf("failed to connect to database: %w", err)
}

// Migrate creates the schema. Invoked out-of-band, once, before a full
// pipeline run.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}

// Reset drops and recreates the schema. Tables are dropped leaf-first
// so foreign keys never dangle.
func Reset(db *gorm.DB) error {
	all := models.All()
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}

	return Migrate(db)
}

// Store coordinates entity resolution and price persistence on a single
// shared connection.
type Store struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewStore creates a store on an open database handle.
func NewStore(db *gorm.DB, baseLog *logger.Logger) *Store {
	return &Store{
		db:  db,
		log: baseLog.With("component", "store"),
	}
}

// DB exposes the underlying handle, mainly for tests.
func (s *Store) DB() *gorm.DB { return s.db }
