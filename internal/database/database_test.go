package database_test

import (
	"testing"

	"github.com/mkrogh/pokernight/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	// The migrations should have created all tables.
	for _, table := range []string{"players", "sessions", "results", "metrics"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "expected table %s to exist", table)
		assert.Equal(t, table, name)
	}
}

func TestInitDBIsIdempotent(t *testing.T) {
	tmp := t.TempDir() + "/pokernight.db"

	db, teardown, err := database.InitDB(tmp, "", "", "../../migrations")
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO players (id, name) VALUES ('p1', 'Alice')`)
	require.NoError(t, err)
	teardown()

	// Re-opening the same file must not fail or wipe data.
	db, teardown, err = database.InitDB(tmp, "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM players").Scan(&count))
	assert.Equal(t, 1, count)
}
