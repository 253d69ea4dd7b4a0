package sqlite

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teknologkoren/strequekiosk/internal/models"
	"github.com/teknologkoren/strequekiosk/internal/testutil"
)

func TestReplaceAndLoadGroups(t *testing.T) {
	db := testutil.OpenDB(t)
	defer db.Close()
	repo := New(db, testutil.Logger())

	groups, err := repo.Groups()
	require.NoError(t, err)
	assert.Empty(t, groups)

	in := []models.Group{
		{ID: 7, Name: "Sopran", Users: []models.User{
			{ID: 3, FirstName: "Björn", LastName: "Berg", Phone: "+46701234567"},
			{ID: 1, FirstName: "Anna", LastName: "Svensson", Nickname: "Annan"},
		}},
		{ID: 2, Name: "Bas"},
	}
	require.NoError(t, repo.Replace(in))

	groups, err = repo.Groups()
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, uint(7), groups[0].ID)
	assert.Equal(t, "Sopran", groups[0].Name)
	require.Len(t, groups[0].Users, 2)
	// Order inside the group is kept, not sorted by ID
	assert.Equal(t, uint(3), groups[0].Users[0].ID)
	assert.Equal(t, uint(7), groups[0].Users[0].GroupID)
	assert.Equal(t, "+46701234567", groups[0].Users[0].Phone)
	assert.Equal(t, "Annan", groups[0].Users[1].Nickname)
	assert.Equal(t, uint(2), groups[1].ID)
	assert.Empty(t, groups[1].Users)

	num, err := repo.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, uint(2), num)

	// Replacing drops the previous snapshot entirely
	require.NoError(t, repo.Replace([]models.Group{{ID: 9, Name: "Alt"}}))
	groups, err = repo.Groups()
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, uint(9), groups[0].ID)
	num, err = repo.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, uint(0), num)
}

func TestReplaceRollsBackOnDuplicateUser(t *testing.T) {
	db := testutil.OpenDB(t)
	defer db.Close()
	repo := New(db, testutil.Logger())
	require.NoError(t, repo.Replace([]models.Group{{ID: 1, Users: []models.User{{ID: 1, FirstName: "Anna"}}}}))

	err := repo.Replace([]models.Group{{ID: 1, Users: []models.User{{ID: 5}, {ID: 5}}}})
	require.Error(t, err)

	groups, err := repo.Groups()
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Users, 1)
	assert.Equal(t, "Anna", groups[0].Users[0].FirstName)
}

// userIDs lists the user IDs per group ID
func userIDs(groups []models.Group) map[uint][]uint {
	ret := make(map[uint][]uint, len(groups))
	for _, g := range groups {
		ids := []uint{}
		for _, u := range g.Users {
			ids = append(ids, u.ID)
		}
		ret[g.ID] = ids
	}
	return ret
}

func TestGroupsDuringReplaceSeeOneSnapshot(t *testing.T) {
	db := testutil.OpenDB(t)
	defer db.Close()
	repo := New(db, testutil.Logger())

	a := []models.Group{{ID: 1, Users: []models.User{{ID: 10}, {ID: 11}}}}
	b := []models.Group{{ID: 2, Users: []models.User{{ID: 20}}}}
	require.NoError(t, repo.Replace(a))
	want := []map[uint][]uint{userIDs(a), userIDs(b)}

	var wg sync.WaitGroup
	done := make(chan struct{})
	defer func() {
		close(done)
		wg.Wait()
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
			}
			next := a
			if i%2 == 0 {
				next = b
			}
			if err := repo.Replace(next); err != nil {
				t.Errorf("Replace failed: %v", err)
				return
			}
		}
	}()

	for i := 0; i < 200; i++ {
		groups, err := repo.Groups()
		require.NoError(t, err)
		assert.Contains(t, want, userIDs(groups))
	}
}
