// Package persistence selects the repository implementation that matches the database driver.
package persistence

import (
	"fmt"

	"databreach-registry/internal/infra/adapter/persistence/postgres"
	"databreach-registry/internal/infra/adapter/persistence/sqlite"
	"databreach-registry/internal/infra/db"
)

// NewFactory returns the repository constructor for driver.
func NewFactory(driver string) (db.RepositoryFactory, error) {
	switch driver {
	case db.DriverPostgres:
		return postgres.NewRepositories, nil
	case db.DriverSQLite:
		return sqlite.NewRepositories, nil
	default:
		return nil, fmt.Errorf("no repositories for driver %q", driver)
	}
}
