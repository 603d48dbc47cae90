package results

import (
	"sync"

	"github.com/mkrogh/pokernight/internal/ledger"
)

// PlayerRow is one display entry of a session row.
type PlayerRow struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// SessionRow is a session plus the ordered winner/me/loser subset of its
// derived player results.
type SessionRow struct {
	ID       string      `json:"id"`
	Date     string      `json:"date"`
	Location string      `json:"location"`
	Game     string      `json:"game"`
	Stakes   string      `json:"stakes"`
	Players  []PlayerRow `json:"players"`
}

// Calculator derives profit/loss figures from a single ledger snapshot. All
// methods are pure reads of the snapshot; the aggregate maps are computed once
// per Calculator and shared between callers, so a Calculator must only ever be
// paired with the snapshot it was created for. Concurrent reads are safe.
type Calculator struct {
	snap *ledger.Snapshot

	buyInsOnce sync.Once
	buyIns     map[string]map[string]float64

	winningsOnce sync.Once
	winnings     map[string]float64

	rowsOnce sync.Once
	rows     []SessionRow
}

// New creates a Calculator over the given snapshot.
func New(snap *ledger.Snapshot) *Calculator {
	return &Calculator{snap: snap}
}
