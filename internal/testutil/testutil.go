// Package testutil contains helpers shared by the kiosk's tests
package testutil

import (
	"io/ioutil"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // Just needed for the sqlite driver
	"github.com/sirupsen/logrus"

	"github.com/teknologkoren/strequekiosk/internal/migrate"
)

// Logger returns a logger entry that discards everything
func Logger() *logrus.Entry {
	l := logrus.New()
	l.Out = ioutil.Discard
	return logrus.NewEntry(l)
}

// OpenDB opens a fresh in-memory database with all migrations applied
func OpenDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every connection would get its own in-memory database
	db.SetMaxOpenConns(1)
	if err := migrate.ExecuteMigrationsOnDb(db, Logger()); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}
