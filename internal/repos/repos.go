// Package repos contains the repository interfaces needed by the kiosk
// It exists to prevent circular dependencies between the services and the repo implementations
package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/teknologkoren/strequekiosk/internal/models"
)

// RosterRepo stores the snapshot of the user list as it is shown on the tally page
type RosterRepo interface {
	// Replace throws away the current snapshot and stores the given groups with their users in the given order
	Replace(groups []models.Group) error
	// Groups returns all groups, each with its users, in page order
	Groups() ([]models.Group, error)
	// CountUsers returns the number of users in the snapshot
	CountUsers() (uint, error)
}

// QuoteRepo stores the snapshot of the quote list
type QuoteRepo interface {
	// Replace throws away the current snapshot and stores the given quotes in the given order
	Replace(quotes []models.Quote) error
	// All returns all quotes in list order
	All() ([]models.Quote, error)
}

// -- Helpers for SQLX repos -------------------------------------------------------------------------------------------

// DoRollback rolls back a transaction and catches any error resulting from it while appending the original error
func DoRollback(tx *sqlx.Tx, originalError error) error {
	if err := tx.Rollback(); err != nil {
		return fmt.Errorf("doRollback: Transaction rollback failed: %v; Recent error: %v", err, originalError)
	}
	return originalError
}
