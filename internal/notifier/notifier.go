package notifier

import (
	"github.com/mkrogh/pokernight/internal/ledger"
	"github.com/mkrogh/pokernight/internal/results"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For settled sessions
	SendSessionSummary(session ledger.Session, rows []results.PlayerRow, dryRun bool) error
	// For the running leaderboard
	SendStandings(standings []results.Standing, dryRun bool) error

	// For formatting responses for slash commands
	FormatStandingsResponse(standings []results.Standing) (any, error)
	FormatPlayerWinningsResponse(standing *results.Standing, query string) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
}
