package metrics

import "sync"

var _ Metrics = (*MockMetrics)(nil)

// MockMetrics is a mock implementation of the Metrics interface for testing.
// It records call counts instead of publishing to Prometheus.
type MockMetrics struct {
	mu sync.Mutex

	SessionsRecordedCount   int
	BuyInsRecordedCount     int
	SessionsProcessedCount  int
	ProcessingObservations  []float64
	SlackNotifSentCount     int
	SlackNotifFailedCount   int
	StartupTime             float64
}

// NewMock creates a new mock instance.
func NewMock() *MockMetrics {
	return &MockMetrics{}
}

func (m *MockMetrics) IncSessionsRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionsRecordedCount++
}

func (m *MockMetrics) IncBuyInsRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BuyInsRecordedCount++
}

func (m *MockMetrics) IncSessionsProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionsProcessedCount++
}

func (m *MockMetrics) ObserveProcessingDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProcessingObservations = append(m.ProcessingObservations, duration)
}

func (m *MockMetrics) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SlackNotifSentCount++
}

func (m *MockMetrics) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SlackNotifFailedCount++
}

func (m *MockMetrics) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTime = duration
}

var _ MetricsStore = (*MockMetricsStore)(nil)

// MockMetricsStore is an in-memory implementation of MetricsStore for testing.
type MockMetricsStore struct {
	mu       sync.Mutex
	Counters map[string]int
}

// NewMockStore creates a new mock counter store.
func NewMockStore() *MockMetricsStore {
	return &MockMetricsStore{Counters: make(map[string]int)}
}

func (m *MockMetricsStore) Increment(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Counters[key]++
}

func (m *MockMetricsStore) GetAll() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.Counters))
	for k, v := range m.Counters {
		out[k] = v
	}
	return out, nil
}
