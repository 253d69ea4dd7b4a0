// Package sqlite provides a quote repository that keeps the quote list snapshot inside a SQLite database
package sqlite

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/teknologkoren/strequekiosk/internal/log"
	"github.com/teknologkoren/strequekiosk/internal/models"
	"github.com/teknologkoren/strequekiosk/internal/repos"
)

// QuoteRepo implements repos.QuoteRepo on top of SQLite
type QuoteRepo struct {
	logger *logrus.Entry
	db     *sqlx.DB
}

// New creates a new QuoteRepo
func New(db *sqlx.DB, logger *logrus.Entry) repos.QuoteRepo {
	return &QuoteRepo{logger, db}
}

// Replace throws away the current snapshot and stores the given quotes in the given order
func (r *QuoteRepo) Replace(quotes []models.Quote) error {
	r.logger.WithField(log.FldCount, len(quotes)).Debug("Replacing quote snapshot")
	tx, err := r.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "Replace: cannot start transaction")
	}
	if _, err := tx.Exec(`DELETE FROM Quotes`); err != nil {
		return repos.DoRollback(tx, errors.Wrap(err, "Replace: cannot clear quotes"))
	}
	for pos, q := range quotes {
		_, err := tx.Exec(
			`INSERT INTO Quotes(id, text, who, displayDate, position) VALUES(?, ?, ?, ?, ?)`,
			q.ID, q.Text, q.Who, q.When, pos,
		)
		if err != nil {
			return repos.DoRollback(tx, errors.Wrapf(err, "Replace: cannot insert quote %d", q.ID))
		}
	}
	return errors.Wrap(tx.Commit(), "Replace: commit failed")
}

// All returns all quotes in list order
func (r *QuoteRepo) All() ([]models.Quote, error) {
	ret := []models.Quote{}
	query := `SELECT id, text, who, displayDate, position FROM Quotes ORDER BY position`
	if err := r.db.Select(&ret, query); err != nil {
		return nil, errors.Wrap(err, "All: cannot load quotes")
	}
	return ret, nil
}
