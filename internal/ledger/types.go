package ledger

import (
	"database/sql"
	"sync"
)

// store handles all database operations for the ledger.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// DescriptionMe marks the player record representing the application's primary
// user. The player-management layer is expected to keep it unique; the
// derivation layer just takes the first match.
const DescriptionMe = "ME"

// SnapshotVersion is the version tag written into exported snapshot documents.
const SnapshotVersion = 1

// ProcessingStatus tracks how far a session has moved through the
// post-session pipeline (summary notification, leaderboard refresh).
type ProcessingStatus string

const (
	StatusNew         ProcessingStatus = "NEW"
	StatusSettled     ProcessingStatus = "SETTLED"
	StatusSummarySent ProcessingStatus = "SUMMARY_SENT"
	StatusCompleted   ProcessingStatus = "COMPLETED"
)

// Player is a member of the home game.
type Player struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Session is one instance of a poker game event.
type Session struct {
	ID               string           `json:"id"`
	Date             string           `json:"date"` // YYYY-MM-DD
	Location         string           `json:"location"`
	Game             string           `json:"game"`
	Stakes           string           `json:"stakes"`
	ProcessingStatus ProcessingStatus `json:"processingStatus,omitempty"`
}

// Result is the single record for a (session, player) pair. Buy-in amounts are
// embedded directly in the record, with a parallel slice of ISO 8601
// timestamps. Result takes precedence over CashOut when both are set.
type Result struct {
	SessionID       string    `json:"sessionId"`
	PlayerID        string    `json:"playerId"`
	SeatNumber      int       `json:"seatNumber"`
	Result          *float64  `json:"result,omitempty"`
	CashOut         *float64  `json:"cashOut,omitempty"`
	BuyIns          []float64 `json:"buyIns"`
	BuyInTimestamps []string  `json:"buyInsTimeStamp"`
}

// BuyIn is the payload for appending a buy-in or rebuy event. SeatNumber is
// only used when the buy-in lazily creates the result record (or when the
// existing record still has the default seat 0).
type BuyIn struct {
	SessionID  string  `json:"sessionId"`
	PlayerID   string  `json:"playerId"`
	Amount     float64 `json:"amount"`
	SeatNumber int     `json:"seatNumber"`
	DateTime   string  `json:"dateTime"` // ISO 8601, defaults to now
}

// SessionResultUpdate is one entry of a bulk result/cash-out submission for a
// session. Embedded buy-ins of an existing record survive the update.
type SessionResultUpdate struct {
	PlayerID   string   `json:"playerId"`
	SeatNumber int      `json:"seatNumber"`
	Result     *float64 `json:"result,omitempty"`
	CashOut    *float64 `json:"cashOut,omitempty"`
}

// Snapshot is an immutable view of the raw entity collections, in insertion
// order. Derivations treat it as read-only; a new snapshot is taken per read.
type Snapshot struct {
	Players  []Player
	Sessions []Session
	Results  []Result
}

// SnapshotDocument is the versioned JSON form of the raw collections used for
// bulk export/import. Nothing derived is ever part of it.
type SnapshotDocument struct {
	Version  int       `json:"version"`
	Players  []Player  `json:"players"`
	Sessions []Session `json:"sessions"`
	Results  []Result  `json:"results"`
}
