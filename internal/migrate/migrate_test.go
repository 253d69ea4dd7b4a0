package migrate

import (
	"io/ioutil"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsAreRepeatable(t *testing.T) {
	l := logrus.New()
	l.Out = ioutil.Discard
	logger := logrus.NewEntry(l)

	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	require.NoError(t, ExecuteMigrationsOnDb(db, logger))
	version, err := CurrentVersion(db)
	require.NoError(t, err)
	assert.Equal(t, migrations[len(migrations)-1].Version, version)

	// A second run must not try to create the tables again
	require.NoError(t, ExecuteMigrationsOnDb(db, logger))

	for _, table := range []string{"UserGroups", "Users", "Quotes"} {
		var num int
		require.NoError(t, db.Get(&num, `SELECT COUNT(*) FROM `+table))
		assert.Equal(t, 0, num, table)
	}
}
