package db

import (
	"database/sql"
	"fmt"

	"routescout/internal/logger"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite store holding the operator's fleet, bases, per-base
// exclude lists and the airport reference cache.
type DB struct {
	sql *sql.DB
}

// Open opens (or creates) the database at path and runs migrations.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	d := &DB{sql: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	logger.Success("DB", fmt.Sprintf("Opened %s", path))
	return d, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate() error {
	version := 0
	d.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := d.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS config (
				key   TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);

			CREATE TABLE IF NOT EXISTS planes (
				id            INTEGER PRIMARY KEY AUTOINCREMENT,
				model_id      INTEGER NOT NULL DEFAULT 0,
				name_fragment TEXT NOT NULL DEFAULT ''
			);

			CREATE TABLE IF NOT EXISTS bases (
				iata       TEXT PRIMARY KEY,
				airport_id INTEGER NOT NULL
			);

			CREATE TABLE IF NOT EXISTS base_excludes (
				iata       TEXT NOT NULL REFERENCES bases(iata) ON DELETE CASCADE,
				airport_id INTEGER NOT NULL,
				PRIMARY KEY (iata, airport_id)
			);

			CREATE TABLE IF NOT EXISTS airports (
				ordinal      INTEGER PRIMARY KEY,
				id           INTEGER NOT NULL,
				iata         TEXT NOT NULL,
				name         TEXT NOT NULL,
				city         TEXT NOT NULL,
				size         INTEGER NOT NULL,
				country_code TEXT NOT NULL DEFAULT ''
			);
			CREATE INDEX IF NOT EXISTS idx_airports_id ON airports(id);

			INSERT OR IGNORE INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
		logger.Info("DB", "Applied migration v1")
	}
	return nil
}

// GetConfig reads a config value; returns fallback when the key is unset.
func (d *DB) GetConfig(key, fallback string) string {
	var value string
	err := d.sql.QueryRow("SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err != nil {
		return fallback
	}
	return value
}

// SetConfig writes a config value.
func (d *DB) SetConfig(key, value string) error {
	_, err := d.sql.Exec(`
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
