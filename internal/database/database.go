package database

import (
	"database/sql"
	"embed"
	"fmt"
	"net/url"

	"darts-tournament/internal/config"
	"darts-tournament/internal/constants"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

func New(cfg *config.Config, logger zerolog.Logger) (*sql.DB, error) {
	return Open(cfg.DBPath, logger)
}

// Open connects to the SQLite file at path, checks its settings and
// migrates it. Write transactions take the database lock up front
// (_txlock=immediate) so two writers never deadlock upgrading a read lock.
func Open(path string, logger zerolog.Logger) (*sql.DB, error) {
	logger.Info().Str("path", path).Msg("connecting to database")

	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to database")
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(constants.DBMaxOpenConns)
	db.SetMaxIdleConns(constants.DBMaxIdleConns)
	db.SetConnMaxLifetime(constants.DBConnMaxLifetime)
	db.SetConnMaxIdleTime(constants.DBMaxIdleTime)

	if err := checkSettings(db, logger); err != nil {
		logger.Error().Err(err).Msg("failed to prepare SQLite")
		db.Close()
		return nil, fmt.Errorf("failed to prepare SQLite: %w", err)
	}
	if err := runMigrations(db, logger); err != nil {
		logger.Error().Err(err).Msg("failed to run migrations")
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info().Msg("database connection established")
	return db, nil
}

// connPragmas are applied by the driver to every pooled connection. Each
// throw is one short immediate transaction; WAL with NORMAL sync makes that
// commit a single append, fsynced at checkpoint.
var connPragmas = []struct {
	key   string
	value string
}{
	{"_txlock", "immediate"},
	{"_busy_timeout", "5000"},
	{"_foreign_keys", "on"},
	{"_journal_mode", "WAL"},
	{"_synchronous", "NORMAL"},
	{"_cache_size", "-8000"},
}

func dsn(path string) string {
	q := url.Values{}
	for _, p := range connPragmas {
		q.Set(p.key, p.value)
	}
	return "file:" + path + "?" + q.Encode()
}

func runMigrations(db *sql.DB, logger zerolog.Logger) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	logger.Info().Int64("schema_version", version).Msg("migrations completed successfully")
	return nil
}

// checkSettings truncates any WAL left by the previous run and logs the
// journal settings the driver applied.
func checkSettings(db *sql.DB, logger zerolog.Logger) error {
	if _, err := db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("failed to checkpoint WAL: %w", err)
	}

	var (
		mode        string
		synchronous int
		foreignKeys int
	)
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		return fmt.Errorf("failed to read journal_mode: %w", err)
	}
	if err := db.QueryRow("PRAGMA synchronous").Scan(&synchronous); err != nil {
		return fmt.Errorf("failed to read synchronous: %w", err)
	}
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys); err != nil {
		return fmt.Errorf("failed to read foreign_keys: %w", err)
	}

	event := logger.Info()
	if mode != "wal" {
		event = logger.Warn()
	}
	event.
		Str("journal_mode", mode).
		Int("synchronous", synchronous).
		Bool("foreign_keys", foreignKeys == 1).
		Msg("SQLite settings applied")
	return nil
}
