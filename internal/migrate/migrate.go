// Package migrate handles SQL database migration for the kiosk's snapshot database
package migrate

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var migrations []dbMigration

type dbMigration struct {
	Version uint
	Queries []string
}

// applied checks whether the migration has already run successfully
func (mig *dbMigration) applied(db *sqlx.DB) (bool, error) {
	var success bool
	err := db.Get(&success, `SELECT success FROM Migrations WHERE version = ?`, mig.Version)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return success, err
}

// Execute runs the current DB migration on the given database. All queries of a migration run inside one
// transaction, a failing migration leaves the schema as it was.
func (mig *dbMigration) Execute(db *sqlx.DB, logger *logrus.Entry) error {
	done, err := mig.applied(db)
	if err != nil {
		logger.WithError(err).Error("Failed to fetch version information")
		return errors.Wrap(err, "Execute: cannot read migration state")
	}
	if done {
		return nil
	}
	logger.Infof("Executing DB migration #%d", mig.Version)
	tx, err := db.Beginx()
	if err != nil {
		return errors.Wrap(err, "Execute: cannot start transaction")
	}
	for i, query := range mig.Queries {
		logger.Debugf("Query %d of %d...", (i + 1), len(mig.Queries))
		if _, err := tx.Exec(query); err != nil {
			logger.WithError(err).Errorf("Query #%d failed", (i + 1))
			tx.Rollback()
			db.Exec(`REPLACE INTO Migrations(version, success) VALUES(?, 0)`, mig.Version)
			return errors.Wrapf(err, "Execute: migration #%d failed", mig.Version)
		}
	}
	if _, err := tx.Exec(`REPLACE INTO Migrations(version, success) VALUES(?, 1)`, mig.Version); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "Execute: cannot store migration state")
	}
	return errors.Wrap(tx.Commit(), "Execute: commit failed")
}

// ExecuteMigrationsOnDb executes the database migrations on the given database instance
func ExecuteMigrationsOnDb(db *sqlx.DB, logger *logrus.Entry) error {
	// Create the migrations table if it does not exist, yet
	query := `CREATE TABLE IF NOT EXISTS Migrations (
                version   INTEGER NOT NULL,
                success   INTEGER NOT NULL DEFAULT 0,
                PRIMARY KEY(version)
            )`
	if _, err := db.Exec(query); err != nil {
		logger.WithError(err).Error("Failed to create migrations table")
		return err
	}
	for _, mig := range migrations {
		if err := mig.Execute(db, logger); err != nil {
			logger.WithError(err).Errorf("Failed to execute migration #%d", mig.Version)
			return err
		}
	}
	return nil
}

// CurrentVersion returns the highest migration version successfully applied to the database
func CurrentVersion(db *sqlx.DB) (uint, error) {
	var version sql.NullInt64
	if err := db.Get(&version, `SELECT MAX(version) FROM Migrations WHERE success = 1`); err != nil {
		return 0, errors.Wrap(err, "CurrentVersion: query failed")
	}
	return uint(version.Int64), nil
}

// For now, the migrations are part of the package...
func init() {
	migrations = []dbMigration{
		{
			Version: 1,
			Queries: []string{
				`CREATE TABLE "UserGroups" (
                    id INTEGER NOT NULL PRIMARY KEY,
                    name VARCHAR(128) NOT NULL DEFAULT '',
                    position INTEGER NOT NULL DEFAULT 0
                );`,
				`CREATE TABLE "Users" (
                    id INTEGER NOT NULL PRIMARY KEY,
                    groupId INTEGER NOT NULL DEFAULT 0,
                    firstName VARCHAR(128) NOT NULL DEFAULT '',
                    lastName VARCHAR(128) NOT NULL DEFAULT '',
                    nickname VARCHAR(128) NOT NULL DEFAULT '',
                    phone VARCHAR(32) NOT NULL DEFAULT '',
                    position INTEGER NOT NULL DEFAULT 0
                );`,
				`CREATE INDEX idx_users_group ON Users (groupId ASC, position ASC);`,
			},
		},
		{
			Version: 2,
			Queries: []string{
				`CREATE TABLE "Quotes" (
                    id INTEGER NOT NULL PRIMARY KEY,
                    text TEXT NOT NULL DEFAULT '',
                    who VARCHAR(150),
                    displayDate VARCHAR(32) NOT NULL DEFAULT '',
                    position INTEGER NOT NULL DEFAULT 0
                );`,
				`CREATE INDEX idx_quotes_position ON Quotes (position ASC);`,
			},
		},
	}
}
