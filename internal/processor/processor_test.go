package processor_test

import (
	"testing"

	"github.com/mkrogh/pokernight/internal/ledger"
	"github.com/mkrogh/pokernight/internal/metrics"
	"github.com/mkrogh/pokernight/internal/notifier"
	"github.com/mkrogh/pokernight/internal/processor"
	"github.com/mkrogh/pokernight/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 {
	return &v
}

func setup(snap *ledger.Snapshot) (*processor.Processor, *ledger.MockStore, *notifier.MockNotifier, *pubsub.MockPubSubClient, *metrics.MockMetrics) {
	store := ledger.NewMock()
	store.SnapshotFunc = func() (*ledger.Snapshot, error) {
		return snap, nil
	}
	store.GetSessionsForProcessingFunc = func() ([]ledger.Session, error) {
		var pending []ledger.Session
		for _, s := range snap.Sessions {
			if s.ProcessingStatus != ledger.StatusCompleted {
				pending = append(pending, s)
			}
		}
		return pending, nil
	}

	mockNotifier := notifier.NewMock()
	mockPubsub := pubsub.NewMock("TEST")
	mockMetrics := metrics.NewMock()
	proc := processor.New(store, mockNotifier, mockMetrics, mockPubsub)
	return proc, store, mockNotifier, mockPubsub, mockMetrics
}

func TestProcessSettledSessionRunsToCompletion(t *testing.T) {
	snap := &ledger.Snapshot{
		Players: []ledger.Player{
			{ID: "me", Name: "Marius", Description: "ME"},
			{ID: "p1", Name: "Alice"},
		},
		Sessions: []ledger.Session{
			{ID: "s1", Date: "2026-08-14", ProcessingStatus: ledger.StatusNew},
		},
		Results: []ledger.Result{
			{SessionID: "s1", PlayerID: "p1", CashOut: fptr(150), BuyIns: []float64{50}},
			{SessionID: "s1", PlayerID: "me", CashOut: fptr(0), BuyIns: []float64{100}},
		},
	}
	proc, store, mockNotifier, mockPubsub, mockMetrics := setup(snap)

	proc.ProcessSessions(false)

	// NEW → SETTLED → SUMMARY_SENT → COMPLETED
	require.Len(t, store.UpdateProcessingStatusCalls, 3)
	assert.Equal(t, ledger.StatusSettled, store.UpdateProcessingStatusCalls[0].Status)
	assert.Equal(t, ledger.StatusSummarySent, store.UpdateProcessingStatusCalls[1].Status)
	assert.Equal(t, ledger.StatusCompleted, store.UpdateProcessingStatusCalls[2].Status)

	require.Len(t, mockNotifier.SendSessionSummaryCalls, 1)
	call := mockNotifier.SendSessionSummaryCalls[0]
	assert.Equal(t, "s1", call.Session.ID)
	// Winner first, then me (who is also the loser here).
	require.Len(t, call.Rows, 2)
	assert.Equal(t, "p1", call.Rows[0].ID)
	assert.Equal(t, 100.0, call.Rows[0].Amount)
	assert.Equal(t, "me", call.Rows[1].ID)

	require.Len(t, mockPubsub.SendMessageCalls, 2)
	assert.Equal(t, string(pubsub.EventSessionSummary), mockPubsub.SendMessageCalls[0].Topic)
	assert.Equal(t, string(pubsub.EventLeaderboardRefresh), mockPubsub.SendMessageCalls[1].Topic)

	assert.Equal(t, 1, mockMetrics.SessionsProcessedCount)
	assert.Len(t, mockMetrics.ProcessingObservations, 1)
}

func TestUnsettledSessionStaysNew(t *testing.T) {
	snap := &ledger.Snapshot{
		Sessions: []ledger.Session{
			{ID: "s1", Date: "2026-08-14", ProcessingStatus: ledger.StatusNew},
		},
		Results: []ledger.Result{
			{SessionID: "s1", PlayerID: "p1", BuyIns: []float64{50}}, // no cash-out yet
		},
	}
	proc, store, mockNotifier, _, _ := setup(snap)

	proc.ProcessSessions(false)

	assert.Empty(t, store.UpdateProcessingStatusCalls)
	assert.Empty(t, mockNotifier.SendSessionSummaryCalls)
}

func TestSessionWithoutResultsStaysNew(t *testing.T) {
	snap := &ledger.Snapshot{
		Sessions: []ledger.Session{
			{ID: "s1", Date: "2026-08-14", ProcessingStatus: ledger.StatusNew},
		},
	}
	proc, store, _, _, _ := setup(snap)

	proc.ProcessSessions(false)

	assert.Empty(t, store.UpdateProcessingStatusCalls)
}

func TestDryRunDoesNotTouchStoreOrPubsub(t *testing.T) {
	snap := &ledger.Snapshot{
		Sessions: []ledger.Session{
			{ID: "s1", Date: "2026-08-14", ProcessingStatus: ledger.StatusNew},
		},
		Results: []ledger.Result{
			{SessionID: "s1", PlayerID: "p1", Result: fptr(40)},
		},
	}
	proc, store, mockNotifier, mockPubsub, _ := setup(snap)

	proc.ProcessSessions(true)

	assert.Empty(t, store.UpdateProcessingStatusCalls)
	assert.Empty(t, mockPubsub.SendMessageCalls)
	// The summary is still formatted and handed to the notifier in dry-run mode.
	require.Len(t, mockNotifier.SendSessionSummaryCalls, 1)
	assert.True(t, mockNotifier.SendSessionSummaryCalls[0].DryRun)
}

func TestPublishStandings(t *testing.T) {
	snap := &ledger.Snapshot{
		Players: []ledger.Player{
			{ID: "p1", Name: "Alice"},
			{ID: "p2", Name: "Bob"},
		},
		Sessions: []ledger.Session{{ID: "s1", ProcessingStatus: ledger.StatusCompleted}},
		Results: []ledger.Result{
			{SessionID: "s1", PlayerID: "p1", Result: fptr(60)},
			{SessionID: "s1", PlayerID: "p2", Result: fptr(-60)},
		},
	}
	proc, _, mockNotifier, _, _ := setup(snap)

	require.NoError(t, proc.PublishStandings(false))
	require.Len(t, mockNotifier.SendStandingsCalls, 1)
	standings := mockNotifier.SendStandingsCalls[0]
	require.Len(t, standings, 2)
	assert.Equal(t, "Alice", standings[0].Name)
	assert.Equal(t, 60.0, standings[0].Total)
	assert.Equal(t, "Bob", standings[1].Name)
}
