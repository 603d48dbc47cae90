package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventSessionSummary     EventType = "session-summary"
	EventLeaderboardRefresh EventType = "leaderboard-refresh"
)

// SessionEvent is the payload published for session lifecycle events.
type SessionEvent struct {
	SessionID string `msgpack:"session_id"`
	Date      string `msgpack:"date"`
	Location  string `msgpack:"location"`
}
