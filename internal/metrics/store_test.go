package metrics

import (
	"testing"

	"github.com/mkrogh/pokernight/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (MetricsStore, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return New(db), teardown
}

func TestIncrementAndGetAll(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	metrics, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, metrics)

	store.Increment("sessions_recorded")
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"sessions_recorded": 1}, metrics)

	store.Increment("sessions_recorded")
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"sessions_recorded": 2}, metrics)

	store.Increment("summaries_sent")
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"sessions_recorded": 2,
		"summaries_sent":    1,
	}, metrics)
}
