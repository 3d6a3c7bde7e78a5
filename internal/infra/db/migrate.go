package db

import (
	"database/sql"
	"fmt"
)

var postgresSchema = []string{
	`
CREATE TABLE IF NOT EXISTS entities (
    id   BIGSERIAL PRIMARY KEY,
    name VARCHAR(500) NOT NULL UNIQUE
)`,
	`
CREATE TABLE IF NOT EXISTS organization_types (
    id                BIGSERIAL PRIMARY KEY,
    organization_type VARCHAR(30) NOT NULL,
    entity_id         BIGINT NOT NULL REFERENCES entities(id) ON DELETE RESTRICT,
    UNIQUE (organization_type, entity_id)
)`,
	`
CREATE TABLE IF NOT EXISTS data_breaches (
    id        BIGSERIAL PRIMARY KEY,
    entity_id BIGINT NOT NULL REFERENCES entities(id) ON DELETE RESTRICT,
    year      INTEGER NOT NULL CHECK (year BETWEEN 1970 AND 32767),
    records   BIGINT NOT NULL CHECK (records >= 1),
    method    VARCHAR(30) NOT NULL
)`,
	`
CREATE TABLE IF NOT EXISTS sources (
    id             BIGSERIAL PRIMARY KEY,
    url            VARCHAR(200) NOT NULL,
    data_breach_id BIGINT NOT NULL REFERENCES data_breaches(id) ON DELETE RESTRICT
)`,
}

var sqliteSchema = []string{
	`
CREATE TABLE IF NOT EXISTS entities (
    id   INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
)`,
	`
CREATE TABLE IF NOT EXISTS organization_types (
    id                INTEGER PRIMARY KEY AUTOINCREMENT,
    organization_type TEXT NOT NULL,
    entity_id         INTEGER NOT NULL REFERENCES entities(id) ON DELETE RESTRICT,
    UNIQUE (organization_type, entity_id)
)`,
	`
CREATE TABLE IF NOT EXISTS data_breaches (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    entity_id INTEGER NOT NULL REFERENCES entities(id) ON DELETE RESTRICT,
    year      INTEGER NOT NULL CHECK (year BETWEEN 1970 AND 32767),
    records   INTEGER NOT NULL CHECK (records >= 1),
    method    TEXT NOT NULL
)`,
	`
CREATE TABLE IF NOT EXISTS sources (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    url            TEXT NOT NULL,
    data_breach_id INTEGER NOT NULL REFERENCES data_breaches(id) ON DELETE RESTRICT
)`,
}

// Foreign key lookups; both dialects accept the same statements.
var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_organization_types_entity_id ON organization_types(entity_id)`,
	`CREATE INDEX IF NOT EXISTS idx_data_breaches_entity_id ON data_breaches(entity_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sources_data_breach_id ON sources(data_breach_id)`,
}

// MigrateUp creates the registry tables for the given driver. It is idempotent.
func MigrateUp(db *sql.DB, driver string) error {
	var schema []string
	switch driver {
	case DriverPostgres:
		schema = postgresSchema
	case DriverSQLite:
		schema = sqliteSchema
	default:
		return fmt.Errorf("migrate: unsupported driver %q", driver)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}
	return nil
}
