package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncSessionsRecorded()
	IncBuyInsRecorded()
	IncSessionsProcessed()
	ObserveProcessingDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}

// MetricsStore persists lifetime counters in the database, surviving restarts.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
