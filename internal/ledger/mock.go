package ledger

import (
	"sync"
)

// MockStore is a mock implementation of the LedgerStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	AddPlayerFunc                func(id, name, description string) error
	GetAllPlayersFunc            func() ([]Player, error)
	IsKnownPlayerFunc            func(playerID string) bool
	RemovePlayerFunc             func(playerID string) error
	AddSessionFunc               func(session Session) error
	AddSessionWithResultsFunc    func(session Session, results []SessionResultUpdate) error
	UpdateSessionFunc            func(session Session) error
	RemoveSessionFunc            func(sessionID string) error
	GetAllSessionsFunc           func() ([]Session, error)
	GetSessionsForProcessingFunc func() ([]Session, error)
	UpdateProcessingStatusFunc   func(sessionID string, status ProcessingStatus) error
	AddBuyInFunc                 func(buyIn BuyIn) error
	UpdateSessionResultsFunc     func(sessionID string, updates []SessionResultUpdate) error
	GetResultsForSessionFunc     func(sessionID string) ([]Result, error)
	SnapshotFunc                 func() (*Snapshot, error)
	ExportFunc                   func() (*SnapshotDocument, error)
	ImportFunc                   func(doc *SnapshotDocument) error
	ClearFunc                    func()
	ClearSessionFunc             func(sessionID string)

	// Call records
	AddPlayerCalls []struct {
		ID, Name, Description string
	}
	AddBuyInCalls              []BuyIn
	AddSessionCalls            []Session
	UpdateSessionCalls         []Session
	RemoveSessionCalls         []string
	UpdateProcessingStatusCalls []struct {
		SessionID string
		Status    ProcessingStatus
	}
	UpdateSessionResultsCalls []struct {
		SessionID string
		Updates   []SessionResultUpdate
	}
	ImportCalls []*SnapshotDocument
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) AddPlayer(id, name, description string) error {
	m.mu.Lock()
	m.AddPlayerCalls = append(m.AddPlayerCalls, struct {
		ID, Name, Description string
	}{id, name, description})
	m.mu.Unlock()
	if m.AddPlayerFunc != nil {
		return m.AddPlayerFunc(id, name, description)
	}
	return nil
}

func (m *MockStore) GetAllPlayers() ([]Player, error) {
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) IsKnownPlayer(playerID string) bool {
	if m.IsKnownPlayerFunc != nil {
		return m.IsKnownPlayerFunc(playerID)
	}
	return false
}

func (m *MockStore) RemovePlayer(playerID string) error {
	if m.RemovePlayerFunc != nil {
		return m.RemovePlayerFunc(playerID)
	}
	return nil
}

func (m *MockStore) AddSession(session Session) error {
	m.mu.Lock()
	m.AddSessionCalls = append(m.AddSessionCalls, session)
	m.mu.Unlock()
	if m.AddSessionFunc != nil {
		return m.AddSessionFunc(session)
	}
	return nil
}

func (m *MockStore) AddSessionWithResults(session Session, results []SessionResultUpdate) error {
	if m.AddSessionWithResultsFunc != nil {
		return m.AddSessionWithResultsFunc(session, results)
	}
	return nil
}

func (m *MockStore) UpdateSession(session Session) error {
	m.mu.Lock()
	m.UpdateSessionCalls = append(m.UpdateSessionCalls, session)
	m.mu.Unlock()
	if m.UpdateSessionFunc != nil {
		return m.UpdateSessionFunc(session)
	}
	return nil
}

func (m *MockStore) RemoveSession(sessionID string) error {
	m.mu.Lock()
	m.RemoveSessionCalls = append(m.RemoveSessionCalls, sessionID)
	m.mu.Unlock()
	if m.RemoveSessionFunc != nil {
		return m.RemoveSessionFunc(sessionID)
	}
	return nil
}

func (m *MockStore) GetAllSessions() ([]Session, error) {
	if m.GetAllSessionsFunc != nil {
		return m.GetAllSessionsFunc()
	}
	return nil, nil
}

func (m *MockStore) GetSessionsForProcessing() ([]Session, error) {
	if m.GetSessionsForProcessingFunc != nil {
		return m.GetSessionsForProcessingFunc()
	}
	return nil, nil
}

func (m *MockStore) UpdateProcessingStatus(sessionID string, status ProcessingStatus) error {
	m.mu.Lock()
	m.UpdateProcessingStatusCalls = append(m.UpdateProcessingStatusCalls, struct {
		SessionID string
		Status    ProcessingStatus
	}{sessionID, status})
	m.mu.Unlock()
	if m.UpdateProcessingStatusFunc != nil {
		return m.UpdateProcessingStatusFunc(sessionID, status)
	}
	return nil
}

func (m *MockStore) AddBuyIn(buyIn BuyIn) error {
	m.mu.Lock()
	m.AddBuyInCalls = append(m.AddBuyInCalls, buyIn)
	m.mu.Unlock()
	if m.AddBuyInFunc != nil {
		return m.AddBuyInFunc(buyIn)
	}
	return nil
}

func (m *MockStore) UpdateSessionResults(sessionID string, updates []SessionResultUpdate) error {
	m.mu.Lock()
	m.UpdateSessionResultsCalls = append(m.UpdateSessionResultsCalls, struct {
		SessionID string
		Updates   []SessionResultUpdate
	}{sessionID, updates})
	m.mu.Unlock()
	if m.UpdateSessionResultsFunc != nil {
		return m.UpdateSessionResultsFunc(sessionID, updates)
	}
	return nil
}

func (m *MockStore) GetResultsForSession(sessionID string) ([]Result, error) {
	if m.GetResultsForSessionFunc != nil {
		return m.GetResultsForSessionFunc(sessionID)
	}
	return nil, nil
}

func (m *MockStore) Snapshot() (*Snapshot, error) {
	if m.SnapshotFunc != nil {
		return m.SnapshotFunc()
	}
	return &Snapshot{}, nil
}

func (m *MockStore) Export() (*SnapshotDocument, error) {
	if m.ExportFunc != nil {
		return m.ExportFunc()
	}
	return &SnapshotDocument{Version: SnapshotVersion}, nil
}

func (m *MockStore) Import(doc *SnapshotDocument) error {
	m.mu.Lock()
	m.ImportCalls = append(m.ImportCalls, doc)
	m.mu.Unlock()
	if m.ImportFunc != nil {
		return m.ImportFunc(doc)
	}
	return nil
}

func (m *MockStore) Clear() {
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}

func (m *MockStore) ClearSession(sessionID string) {
	if m.ClearSessionFunc != nil {
		m.ClearSessionFunc(sessionID)
	}
}
