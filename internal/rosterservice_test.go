package internal

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	"github.com/teknologkoren/strequekiosk/internal/models"
	quoterepo "github.com/teknologkoren/strequekiosk/internal/repos/quote/sqlite"
	rosterrepo "github.com/teknologkoren/strequekiosk/internal/repos/roster/sqlite"
	"github.com/teknologkoren/strequekiosk/internal/testutil"
)

// brokenRoster fails every operation
type brokenRoster struct{}

func (brokenRoster) Replace(groups []models.Group) error { return errors.New("disk full") }
func (brokenRoster) Groups() ([]models.Group, error) { return nil, errors.New("disk full") }
func (brokenRoster) CountUsers() (uint, error) { return 0, errors.New("disk full") }

func newRosterService(t *testing.T) (RosterService, func()) {
	logger := testutil.Logger()
	db := testutil.OpenDB(t)
	return NewRosterService(rosterrepo.New(db, logger), quoterepo.New(db, logger), logger), func() { db.Close() }
}

func TestReplaceGroupsRequiresUserIDs(t *testing.T) {
	s, done := newRosterService(t)
	defer done()
	err := s.ReplaceGroups(context.Background(), []models.Group{{ID: 1, Users: []models.User{{FirstName: "Anna"}}}})
	require.Error(t, err)
	assert.Equal(t, ErrCodeRequiredFieldMissing, err.(*HTTPError).ErrorCode())
}

func TestFilterUsersOnEmptySnapshot(t *testing.T) {
	s, done := newRosterService(t)
	defer done()
	res, err := s.FilterUsers(context.Background(), "anna")
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestFilterUsersHidesEmptyGroups(t *testing.T) {
	s, done := newRosterService(t)
	defer done()
	ctx := context.Background()
	require.NoError(t, s.ReplaceGroups(ctx, []models.Group{
		{ID: 1, Name: "Alt", Users: []models.User{{ID: 3, FirstName: "Karin", LastName: "Ek"}}},
		{ID: 2, Name: "Tenor"},
	}))
	res, err := s.FilterUsers(ctx, "")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.True(t, res[0].Shown)
	assert.False(t, res[1].Shown, "a group without members has nothing to show")
}

func TestRosterStorageFailure(t *testing.T) {
	logger := testutil.Logger()
	db := testutil.OpenDB(t)
	defer db.Close()
	s := NewRosterService(brokenRoster{}, quoterepo.New(db, logger), logger)

	err := s.ReplaceGroups(context.Background(), []models.Group{{ID: 1}})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, err.(*HTTPError).Status())
	assert.Equal(t, ErrCodeRepoError, err.(*HTTPError).ErrorCode())

	_, err = s.FilterUsers(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, ErrCodeRepoError, err.(*HTTPError).ErrorCode())
}

func TestReplaceQuotesRequiresIDs(t *testing.T) {
	s, done := newRosterService(t)
	defer done()
	err := s.ReplaceQuotes(context.Background(), []models.Quote{{Text: "Skål"}})
	require.Error(t, err)
	assert.Equal(t, ErrCodeRequiredFieldMissing, err.(*HTTPError).ErrorCode())
}
