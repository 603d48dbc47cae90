package processor

import (
	"github.com/mkrogh/pokernight/internal/ledger"
	"github.com/mkrogh/pokernight/internal/notifier"
)

// Store defines the database operations required by the processor.
type Store interface {
	GetSessionsForProcessing() ([]ledger.Session, error)
	UpdateProcessingStatus(sessionID string, status ledger.ProcessingStatus) error
	Snapshot() (*ledger.Snapshot, error)
}

// Notifier defines the notification operations required by the processor.
// This is now an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
