package ledger_test

import (
	"database/sql"
	"testing"

	"github.com/mkrogh/pokernight/internal/database"
	"github.com/mkrogh/pokernight/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (ledger.LedgerStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := ledger.New(db)
	teardown := func() {
		dbTeardown()
	}

	return store, db, teardown
}

func fptr(v float64) *float64 {
	return &v
}

func TestAddAndGetPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.AddPlayer("player1", "Alice", "ME"))
	require.NoError(t, store.AddPlayer("player2", "Bob", ""))

	assert.True(t, store.IsKnownPlayer("player1"))
	assert.False(t, store.IsKnownPlayer("player3"))

	players, err := store.GetAllPlayers()
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Alice", players[0].Name)
	assert.Equal(t, ledger.DescriptionMe, players[0].Description)
}

func TestAddBuyInCreatesResultLazily(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	err := store.AddBuyIn(ledger.BuyIn{
		SessionID: "session1",
		PlayerID:  "player1",
		Amount:    50,
		DateTime:  "2026-08-14T19:30:00Z",
	})
	require.NoError(t, err)

	// The session row is materialized by the first buy-in.
	sessions, err := store.GetAllSessions()
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "session1", sessions[0].ID)
	assert.Equal(t, "2026-08-14", sessions[0].Date)
	assert.Equal(t, ledger.StatusNew, sessions[0].ProcessingStatus)

	results, err := store.GetResultsForSession("session1")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "player1", results[0].PlayerID)
	assert.Equal(t, 0, results[0].SeatNumber)
	assert.Equal(t, []float64{50}, results[0].BuyIns)
	assert.Equal(t, []string{"2026-08-14T19:30:00Z"}, results[0].BuyInTimestamps)
	assert.Nil(t, results[0].Result)
	assert.Nil(t, results[0].CashOut)
}

func TestAddBuyInAppendsAndUpgradesSeat(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.AddBuyIn(ledger.BuyIn{SessionID: "s1", PlayerID: "p1", Amount: 50, DateTime: "2026-08-14T19:30:00Z"}))
	require.NoError(t, store.AddBuyIn(ledger.BuyIn{SessionID: "s1", PlayerID: "p1", Amount: 25, SeatNumber: 3, DateTime: "2026-08-14T21:00:00Z"}))

	results, err := store.GetResultsForSession("s1")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, []float64{50, 25}, results[0].BuyIns)
	// A seat number supplied later fills in the default 0.
	assert.Equal(t, 3, results[0].SeatNumber)

	// A third buy-in must not overwrite an assigned seat.
	require.NoError(t, store.AddBuyIn(ledger.BuyIn{SessionID: "s1", PlayerID: "p1", Amount: 10, SeatNumber: 7, DateTime: "2026-08-14T22:00:00Z"}))
	results, err = store.GetResultsForSession("s1")
	require.NoError(t, err)
	assert.Equal(t, 3, results[0].SeatNumber)
	assert.Equal(t, []float64{50, 25, 10}, results[0].BuyIns)
}

func TestUpdateSessionResultsPreservesBuyIns(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.AddBuyIn(ledger.BuyIn{SessionID: "s1", PlayerID: "p1", Amount: 100, DateTime: "2026-08-14T19:00:00Z"}))
	require.NoError(t, store.AddBuyIn(ledger.BuyIn{SessionID: "s1", PlayerID: "p2", Amount: 50, DateTime: "2026-08-14T19:05:00Z"}))

	err := store.UpdateSessionResults("s1", []ledger.SessionResultUpdate{
		{PlayerID: "p1", SeatNumber: 1, CashOut: fptr(250)},
		{PlayerID: "p3", SeatNumber: 4, Result: fptr(-20)},
	})
	require.NoError(t, err)

	results, err := store.GetResultsForSession("s1")
	require.NoError(t, err)
	require.Len(t, results, 2)

	byPlayer := make(map[string]ledger.Result)
	for _, r := range results {
		byPlayer[r.PlayerID] = r
	}

	// p1 kept its buy-ins and gained a cash-out.
	require.Contains(t, byPlayer, "p1")
	assert.Equal(t, []float64{100}, byPlayer["p1"].BuyIns)
	require.NotNil(t, byPlayer["p1"].CashOut)
	assert.Equal(t, 250.0, *byPlayer["p1"].CashOut)

	// p3 is new and starts without buy-ins.
	require.Contains(t, byPlayer, "p3")
	assert.Empty(t, byPlayer["p3"].BuyIns)
	require.NotNil(t, byPlayer["p3"].Result)
	assert.Equal(t, -20.0, *byPlayer["p3"].Result)

	// p2 was omitted and is gone.
	assert.NotContains(t, byPlayer, "p2")
}

func TestRemoveSessionCascades(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.AddSession(ledger.Session{ID: "s1", Date: "2026-08-14"}))
	require.NoError(t, store.AddSession(ledger.Session{ID: "s2", Date: "2026-08-21"}))
	require.NoError(t, store.AddBuyIn(ledger.BuyIn{SessionID: "s1", PlayerID: "p1", Amount: 50}))
	require.NoError(t, store.AddBuyIn(ledger.BuyIn{SessionID: "s2", PlayerID: "p1", Amount: 75}))

	require.NoError(t, store.RemoveSession("s1"))

	sessions, err := store.GetAllSessions()
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "s2", sessions[0].ID)

	results, err := store.GetResultsForSession("s1")
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = store.GetResultsForSession("s2")
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestRemovePlayerKeepsResults(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.AddPlayer("p1", "Alice", ""))
	require.NoError(t, store.AddBuyIn(ledger.BuyIn{SessionID: "s1", PlayerID: "p1", Amount: 50}))

	require.NoError(t, store.RemovePlayer("p1"))

	assert.False(t, store.IsKnownPlayer("p1"))
	results, err := store.GetResultsForSession("s1")
	require.NoError(t, err)
	// The orphaned result record survives; readers display "Unknown".
	assert.Len(t, results, 1)
}

func TestProcessingStatusTransitions(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.AddSession(ledger.Session{ID: "s1", Date: "2026-08-14"}))
	require.NoError(t, store.AddSession(ledger.Session{ID: "s2", Date: "2026-08-21"}))

	pending, err := store.GetSessionsForProcessing()
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	require.NoError(t, store.UpdateProcessingStatus("s1", ledger.StatusCompleted))

	pending, err = store.GetSessionsForProcessing()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "s2", pending[0].ID)
}

func TestExportImportRoundTrip(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.AddPlayer("p1", "Alice", "ME"))
	require.NoError(t, store.AddSession(ledger.Session{ID: "s1", Date: "2026-08-14", Location: "Garage", Game: "NLHE", Stakes: "1/2"}))
	require.NoError(t, store.AddBuyIn(ledger.BuyIn{SessionID: "s1", PlayerID: "p1", Amount: 50, DateTime: "2026-08-14T19:00:00Z"}))
	require.NoError(t, store.UpdateSessionResults("s1", []ledger.SessionResultUpdate{
		{PlayerID: "p1", SeatNumber: 1, CashOut: fptr(120)},
	}))

	doc, err := store.Export()
	require.NoError(t, err)
	assert.Equal(t, ledger.SnapshotVersion, doc.Version)
	require.Len(t, doc.Results, 1)
	assert.Equal(t, []float64{50}, doc.Results[0].BuyIns)

	// Import into a fresh store and compare the raw collections.
	other, _, teardown2 := setupTestDB(t)
	defer teardown2()
	require.NoError(t, other.Import(doc))

	doc2, err := other.Export()
	require.NoError(t, err)
	assert.Equal(t, doc, doc2)
}

func TestSnapshotIsDetachedFromStore(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.AddBuyIn(ledger.BuyIn{SessionID: "s1", PlayerID: "p1", Amount: 50}))

	snap, err := store.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Results, 1)

	// Mutating the store afterwards must not be visible in the snapshot.
	require.NoError(t, store.AddBuyIn(ledger.BuyIn{SessionID: "s1", PlayerID: "p1", Amount: 25}))
	assert.Equal(t, []float64{50}, snap.Results[0].BuyIns)
}
