package ledger

// LedgerStore defines the interface for interacting with the game ledger.
type LedgerStore interface {
	AddPlayer(id, name, description string) error
	GetAllPlayers() ([]Player, error)
	IsKnownPlayer(playerID string) bool
	RemovePlayer(playerID string) error

	AddSession(session Session) error
	AddSessionWithResults(session Session, results []SessionResultUpdate) error
	UpdateSession(session Session) error
	RemoveSession(sessionID string) error
	GetAllSessions() ([]Session, error)
	GetSessionsForProcessing() ([]Session, error)
	UpdateProcessingStatus(sessionID string, status ProcessingStatus) error

	AddBuyIn(buyIn BuyIn) error
	UpdateSessionResults(sessionID string, updates []SessionResultUpdate) error
	GetResultsForSession(sessionID string) ([]Result, error)

	Snapshot() (*Snapshot, error)
	Export() (*SnapshotDocument, error)
	Import(doc *SnapshotDocument) error
	Clear()
	ClearSession(sessionID string)
}
