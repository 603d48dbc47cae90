package processor

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/mkrogh/pokernight/internal/ledger"
	"github.com/mkrogh/pokernight/internal/metrics"
	"github.com/mkrogh/pokernight/internal/pubsub"
	"github.com/mkrogh/pokernight/internal/results"
)

// New creates a new Processor.
func New(store Store, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		store:    store,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
	}
}

// ProcessSessions fetches sessions that need processing and advances them
// through the state machine. All derivations run against one snapshot taken
// at the start of the run.
func (p *Processor) ProcessSessions(dryRun bool) {
	log.Info("Starting session processing...")
	sessions, err := p.store.GetSessionsForProcessing()
	if err != nil {
		log.Error("Failed to get sessions for processing", "error", err)
		return
	}

	if len(sessions) == 0 {
		log.Info("No sessions to process.")
		return
	}

	snap, err := p.store.Snapshot()
	if err != nil {
		log.Error("Failed to take ledger snapshot", "error", err)
		return
	}
	calc := results.New(snap)

	log.Info("Found sessions to process", "count", len(sessions))
	for _, session := range sessions {
		startTime := time.Now()
		p.processSession(session, snap, calc, dryRun)
		p.metrics.ObserveProcessingDuration(time.Since(startTime).Seconds())
	}
	log.Info("Session processing finished.")
}

func (p *Processor) processSession(session ledger.Session, snap *ledger.Snapshot, calc *results.Calculator, dryRun bool) {
	log.Info("Processing session", "sessionID", session.ID, "initial_status", session.ProcessingStatus)
	for {
		currentState := session.ProcessingStatus
		log.Debug("Evaluating session state", "sessionID", session.ID, "status", currentState)

		switch currentState {
		case ledger.StatusNew:
			if !isSettled(snap, session.ID) {
				log.Debug("Session is not settled yet. Waiting for results.", "sessionID", session.ID)
				return
			}
			log.Info("Session is settled. Advancing.", "sessionID", session.ID)
			p.updateStatus(&session, ledger.StatusSettled, dryRun)

		case ledger.StatusSettled:
			log.Info("Sending session summary.", "sessionID", session.ID)
			if err := p.notifier.SendSessionSummary(session, p.summaryRows(calc, session.ID), dryRun); err != nil {
				log.Error("Failed to send session summary", "error", err, "sessionID", session.ID)
			}
			if !dryRun {
				p.pubsub.SendMessage(pubsub.EventSessionSummary, pubsub.SessionEvent{
					SessionID: session.ID,
					Date:      session.Date,
					Location:  session.Location,
				})
			}
			p.updateStatus(&session, ledger.StatusSummarySent, dryRun)

		case ledger.StatusSummarySent:
			log.Info("Session summary sent. Triggering leaderboard refresh.", "sessionID", session.ID)
			if !dryRun {
				p.pubsub.SendMessage(pubsub.EventLeaderboardRefresh, pubsub.SessionEvent{SessionID: session.ID})
			}
			p.metrics.IncSessionsProcessed()
			p.updateStatus(&session, ledger.StatusCompleted, dryRun)

		case ledger.StatusCompleted:
			log.Debug("Session is complete. No further processing needed.", "sessionID", session.ID)
			return

		default:
			log.Warn("Unknown processing status", "status", currentState, "sessionID", session.ID)
			return
		}

		// If the status hasn't changed, we're done with this session for now.
		if session.ProcessingStatus == currentState {
			log.Debug("Session state did not change. Finished processing for now.", "sessionID", session.ID, "status", currentState)
			break
		}
	}
	log.Info("Finished processing session", "sessionID", session.ID, "final_status", session.ProcessingStatus)
}

// PublishStandings sends the current leaderboard to the notification channel.
func (p *Processor) PublishStandings(dryRun bool) error {
	snap, err := p.store.Snapshot()
	if err != nil {
		return err
	}
	return p.notifier.SendStandings(results.New(snap).Standings(), dryRun)
}

// isSettled reports whether a session has at least one result record and all
// of its records can produce a derived figure.
func isSettled(snap *ledger.Snapshot, sessionID string) bool {
	found := false
	for i := range snap.Results {
		r := &snap.Results[i]
		if r.SessionID != sessionID {
			continue
		}
		found = true
		if r.Result == nil && r.CashOut == nil {
			return false
		}
	}
	return found
}

func (p *Processor) summaryRows(calc *results.Calculator, sessionID string) []results.PlayerRow {
	for _, row := range calc.SessionRows() {
		if row.ID == sessionID {
			return row.Players
		}
	}
	return nil
}

func (p *Processor) updateStatus(session *ledger.Session, newStatus ledger.ProcessingStatus, dryRun bool) {
	if dryRun {
		log.Info("[Dry Run] Would update session status", "sessionID", session.ID, "from", session.ProcessingStatus, "to", newStatus)
		session.ProcessingStatus = newStatus // Update in-memory for the loop
		return
	}

	err := p.store.UpdateProcessingStatus(session.ID, newStatus)
	if err != nil {
		log.Error("Failed to update processing status", "error", err, "sessionID", session.ID)
	} else {
		log.Debug("Successfully updated status", "sessionID", session.ID, "from", session.ProcessingStatus, "to", newStatus)
		session.ProcessingStatus = newStatus // Keep the in-memory object in sync
	}
}
