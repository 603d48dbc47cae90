package notifier

import (
	"sync"

	"github.com/mkrogh/pokernight/internal/ledger"
	"github.com/mkrogh/pokernight/internal/results"
)

var _ Notifier = (*MockNotifier)(nil)

// MockNotifier is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type MockNotifier struct {
	mu sync.Mutex

	// Spies for method calls
	SendSessionSummaryFunc           func(session ledger.Session, rows []results.PlayerRow, dryRun bool) error
	SendStandingsFunc                func(standings []results.Standing, dryRun bool) error
	FormatStandingsResponseFunc      func(standings []results.Standing) (any, error)
	FormatPlayerWinningsResponseFunc func(standing *results.Standing, query string) (any, error)
	FormatPlayerNotFoundResponseFunc func(query string) (any, error)

	// Call records
	SendSessionSummaryCalls []SessionSummaryCall
	SendStandingsCalls      [][]results.Standing
}

// SessionSummaryCall holds the arguments for a call to SendSessionSummary.
type SessionSummaryCall struct {
	Session ledger.Session
	Rows    []results.PlayerRow
	DryRun  bool
}

// NewMock creates a new mock instance.
func NewMock() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) SendSessionSummary(session ledger.Session, rows []results.PlayerRow, dryRun bool) error {
	m.mu.Lock()
	m.SendSessionSummaryCalls = append(m.SendSessionSummaryCalls, SessionSummaryCall{Session: session, Rows: rows, DryRun: dryRun})
	m.mu.Unlock()
	if m.SendSessionSummaryFunc != nil {
		return m.SendSessionSummaryFunc(session, rows, dryRun)
	}
	return nil
}

func (m *MockNotifier) SendStandings(standings []results.Standing, dryRun bool) error {
	m.mu.Lock()
	m.SendStandingsCalls = append(m.SendStandingsCalls, standings)
	m.mu.Unlock()
	if m.SendStandingsFunc != nil {
		return m.SendStandingsFunc(standings, dryRun)
	}
	return nil
}

func (m *MockNotifier) FormatStandingsResponse(standings []results.Standing) (any, error) {
	if m.FormatStandingsResponseFunc != nil {
		return m.FormatStandingsResponseFunc(standings)
	}
	return nil, nil
}

func (m *MockNotifier) FormatPlayerWinningsResponse(standing *results.Standing, query string) (any, error) {
	if m.FormatPlayerWinningsResponseFunc != nil {
		return m.FormatPlayerWinningsResponseFunc(standing, query)
	}
	return nil, nil
}

func (m *MockNotifier) FormatPlayerNotFoundResponse(query string) (any, error) {
	if m.FormatPlayerNotFoundResponseFunc != nil {
		return m.FormatPlayerNotFoundResponseFunc(query)
	}
	return nil, nil
}
