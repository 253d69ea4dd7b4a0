// Package sqlite provides a roster repository that keeps the user list snapshot inside a SQLite database
package sqlite

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/teknologkoren/strequekiosk/internal/log"
	"github.com/teknologkoren/strequekiosk/internal/models"
	"github.com/teknologkoren/strequekiosk/internal/repos"
)

const (
	userFields = `id, groupId, firstName, lastName, nickname, phone, position`
)

// RosterRepo implements repos.RosterRepo on top of SQLite
type RosterRepo struct {
	logger *logrus.Entry
	db     *sqlx.DB
}

// New creates a new RosterRepo
func New(db *sqlx.DB, logger *logrus.Entry) repos.RosterRepo {
	return &RosterRepo{logger, db}
}

// Replace throws away the current snapshot and stores the given groups with their users in the given order
func (r *RosterRepo) Replace(groups []models.Group) error {
	r.logger.WithField(log.FldCount, len(groups)).Debug("Replacing roster snapshot")
	tx, err := r.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "Replace: cannot start transaction")
	}
	if _, err := tx.Exec(`DELETE FROM Users`); err != nil {
		return repos.DoRollback(tx, errors.Wrap(err, "Replace: cannot clear users"))
	}
	if _, err := tx.Exec(`DELETE FROM UserGroups`); err != nil {
		return repos.DoRollback(tx, errors.Wrap(err, "Replace: cannot clear groups"))
	}
	for gPos, g := range groups {
		if _, err := tx.Exec(`INSERT INTO UserGroups(id, name, position) VALUES(?, ?, ?)`, g.ID, g.Name, gPos); err != nil {
			return repos.DoRollback(tx, errors.Wrapf(err, "Replace: cannot insert group %d", g.ID))
		}
		for uPos, u := range g.Users {
			_, err := tx.Exec(
				`INSERT INTO Users(`+userFields+`) VALUES(?, ?, ?, ?, ?, ?, ?)`,
				u.ID, g.ID, u.FirstName, u.LastName, u.Nickname, u.Phone, uPos,
			)
			if err != nil {
				return repos.DoRollback(tx, errors.Wrapf(err, "Replace: cannot insert user %d", u.ID))
			}
		}
	}
	return errors.Wrap(tx.Commit(), "Replace: commit failed")
}

// Groups returns all groups, each with its users, in page order
func (r *RosterRepo) Groups() ([]models.Group, error) {
	// Both queries need to see the same snapshot
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, errors.Wrap(err, "Groups: cannot start transaction")
	}
	groups := []models.Group{}
	if err := tx.Select(&groups, `SELECT id, name, position FROM UserGroups ORDER BY position`); err != nil {
		return nil, repos.DoRollback(tx, errors.Wrap(err, "Groups: cannot load groups"))
	}
	var users []models.User
	query := `SELECT ` + userFields + ` FROM Users ORDER BY groupId, position`
	if err := tx.Select(&users, query); err != nil {
		return nil, repos.DoRollback(tx, errors.Wrap(err, "Groups: cannot load users"))
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "Groups: commit failed")
	}
	idx := make(map[uint]int, len(groups))
	for i := range groups {
		groups[i].Users = []models.User{}
		idx[groups[i].ID] = i
	}
	for _, u := range users {
		if i, ok := idx[u.GroupID]; ok {
			groups[i].Users = append(groups[i].Users, u)
		}
	}
	return groups, nil
}

// CountUsers returns the number of users in the snapshot
func (r *RosterRepo) CountUsers() (uint, error) {
	var num uint
	if err := r.db.Get(&num, `SELECT COUNT(*) FROM Users`); err != nil {
		return 0, errors.Wrap(err, "CountUsers: query failed")
	}
	return num, nil
}
