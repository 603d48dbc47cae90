package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mkrogh/pokernight/internal/ledger"
	"github.com/mkrogh/pokernight/internal/pubsub"
	"github.com/mkrogh/pokernight/internal/results"
	"github.com/mkrogh/pokernight/internal/seats"
	"github.com/slack-go/slack"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("sessionID")
		if sessionID != "" {
			log.Info("Received request to clear a specific session", "sessionID", sessionID)
			s.Store.ClearSession(sessionID)
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Cleared session %s from store!", sessionID)
			log.Info("Successfully cleared session from store", "sessionID", sessionID)
		} else {
			log.Info("Received request to clear entire store")
			s.Store.Clear()
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "Store cleared!")
			log.Info("Store cleared successfully")
		}
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.GetAllPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(players); err != nil {
			log.Error("Failed to write response", "error", err)
		}
	}
}

func (s *Server) AddPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var player ledger.Player
		if err := json.NewDecoder(r.Body).Decode(&player); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if player.Name == "" {
			http.Error(w, "Player name is required", http.StatusBadRequest)
			return
		}
		if player.ID == "" {
			player.ID = uuid.NewString()
		}

		if err := s.Store.AddPlayer(player.ID, player.Name, player.Description); err != nil {
			http.Error(w, "Failed to add player", http.StatusInternalServerError)
			log.Error("Failed to add player", "error", err, "playerID", player.ID)
			return
		}
		log.Info("Added player", "playerID", player.ID, "name", player.Name)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(player); err != nil {
			log.Error("Failed to write response", "error", err)
		}
	}
}

func (s *Server) RemovePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		if playerID == "" {
			http.Error(w, "playerID is required", http.StatusBadRequest)
			return
		}
		if err := s.Store.RemovePlayer(playerID); err != nil {
			http.Error(w, "Failed to remove player", http.StatusInternalServerError)
			log.Error("Failed to remove player", "error", err, "playerID", playerID)
			return
		}
		log.Info("Removed player", "playerID", playerID)
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	}
}

func (s *Server) ListSessionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions, err := s.Store.GetAllSessions()
		if err != nil {
			http.Error(w, "Failed to get sessions", http.StatusInternalServerError)
			log.Error("Failed to get sessions from store", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(sessions); err != nil {
			log.Error("Failed to encode sessions to JSON", "error", err)
		}
	}
}

// addSessionRequest carries a new session plus optional result records for
// sessions that are entered after the fact.
type addSessionRequest struct {
	ledger.Session
	Results []ledger.SessionResultUpdate `json:"results,omitempty"`
}

func (s *Server) AddSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.Date == "" {
			http.Error(w, "Session date is required", http.StatusBadRequest)
			return
		}
		if req.ID == "" {
			req.ID = uuid.NewString()
		}
		if req.ProcessingStatus == "" {
			req.ProcessingStatus = ledger.StatusNew
		}

		var err error
		if len(req.Results) > 0 {
			err = s.Store.AddSessionWithResults(req.Session, req.Results)
		} else {
			err = s.Store.AddSession(req.Session)
		}
		if err != nil {
			http.Error(w, "Failed to add session", http.StatusInternalServerError)
			log.Error("Failed to add session", "error", err, "sessionID", req.ID)
			return
		}

		s.Metrics.IncSessionsRecorded()
		s.MetricsStore.Increment("sessions_recorded")
		log.Info("Added session", "sessionID", req.ID, "date", req.Date)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(req.Session); err != nil {
			log.Error("Failed to write response", "error", err)
		}
	}
}

func (s *Server) UpdateSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var session ledger.Session
		if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if session.ID == "" {
			http.Error(w, "Session ID is required", http.StatusBadRequest)
			return
		}
		if err := s.Store.UpdateSession(session); err != nil {
			http.Error(w, "Failed to update session", http.StatusInternalServerError)
			log.Error("Failed to update session", "error", err, "sessionID", session.ID)
			return
		}
		log.Info("Updated session", "sessionID", session.ID)
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	}
}

func (s *Server) RemoveSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("sessionID")
		if sessionID == "" {
			http.Error(w, "sessionID is required", http.StatusBadRequest)
			return
		}
		if err := s.Store.RemoveSession(sessionID); err != nil {
			http.Error(w, "Failed to remove session", http.StatusInternalServerError)
			log.Error("Failed to remove session", "error", err, "sessionID", sessionID)
			return
		}
		log.Info("Removed session", "sessionID", sessionID)
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	}
}

func (s *Server) AddBuyInHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buyIn ledger.BuyIn
		if err := json.NewDecoder(r.Body).Decode(&buyIn); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if buyIn.SessionID == "" || buyIn.PlayerID == "" {
			http.Error(w, "sessionId and playerId are required", http.StatusBadRequest)
			return
		}
		if buyIn.DateTime == "" {
			buyIn.DateTime = time.Now().UTC().Format(time.RFC3339)
		}

		if err := s.Store.AddBuyIn(buyIn); err != nil {
			http.Error(w, "Failed to add buy-in", http.StatusInternalServerError)
			log.Error("Failed to add buy-in", "error", err, "sessionID", buyIn.SessionID, "playerID", buyIn.PlayerID)
			return
		}

		s.Metrics.IncBuyInsRecorded()
		s.MetricsStore.Increment("buy_ins_recorded")
		log.Info("Added buy-in", "sessionID", buyIn.SessionID, "playerID", buyIn.PlayerID, "amount", buyIn.Amount)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, "OK")
	}
}

// seatSuggestion is the response for the seat suggestion endpoint.
type seatSuggestion struct {
	SessionID    string `json:"sessionId"`
	NextSeat     int    `json:"nextSeat"`
	SkippedSeats []int  `json:"skippedSeats"`
}

// SeatSuggestionHandler derives the next free seat and any holes in the
// seating from the seats already assigned in a session.
func (s *Server) SeatSuggestionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("sessionID")
		if sessionID == "" {
			http.Error(w, "sessionID is required", http.StatusBadRequest)
			return
		}
		records, err := s.Store.GetResultsForSession(sessionID)
		if err != nil {
			http.Error(w, "Failed to get session results", http.StatusInternalServerError)
			log.Error("Failed to get results for session", "error", err, "sessionID", sessionID)
			return
		}

		assigned := make([]int, 0, len(records))
		for _, record := range records {
			assigned = append(assigned, record.SeatNumber)
		}
		tracker := seats.NewTracker()
		tracker.Initialize(assigned)

		suggestion := seatSuggestion{
			SessionID:    sessionID,
			NextSeat:     tracker.NextSeat(),
			SkippedSeats: tracker.SkippedSeats(),
		}
		if suggestion.SkippedSeats == nil {
			suggestion.SkippedSeats = []int{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(suggestion); err != nil {
			log.Error("Failed to encode seat suggestion to JSON", "error", err)
		}
	}
}

// updateResultsRequest is a bulk result submission for one session.
type updateResultsRequest struct {
	SessionID string                       `json:"sessionId"`
	Results   []ledger.SessionResultUpdate `json:"results"`
}

func (s *Server) UpdateResultsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateResultsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.SessionID == "" {
			http.Error(w, "sessionId is required", http.StatusBadRequest)
			return
		}
		if err := s.Store.UpdateSessionResults(req.SessionID, req.Results); err != nil {
			http.Error(w, "Failed to update results", http.StatusInternalServerError)
			log.Error("Failed to update session results", "error", err, "sessionID", req.SessionID)
			return
		}
		log.Info("Updated session results", "sessionID", req.SessionID, "count", len(req.Results))
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	}
}

// SessionReportHandler serves the derived per-session rows (largest winner,
// the primary user, largest loser).
func (s *Server) SessionReportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		calc, err := s.calculator()
		if err != nil {
			http.Error(w, "Failed to read ledger", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(calc.SessionRows()); err != nil {
			log.Error("Failed to encode session rows to JSON", "error", err)
		}
	}
}

// WinningsReportHandler serves cross-session totals per player, sorted.
func (s *Server) WinningsReportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		calc, err := s.calculator()
		if err != nil {
			http.Error(w, "Failed to read ledger", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(calc.Standings()); err != nil {
			log.Error("Failed to encode standings to JSON", "error", err)
		}
	}
}

// BuyInsReportHandler serves total buy-ins keyed by session then player.
func (s *Server) BuyInsReportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		calc, err := s.calculator()
		if err != nil {
			http.Error(w, "Failed to read ledger", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(calc.TotalBuyInsByPlayerAndSession()); err != nil {
			log.Error("Failed to encode buy-in totals to JSON", "error", err)
		}
	}
}

func (s *Server) calculator() (*results.Calculator, error) {
	snap, err := s.Store.Snapshot()
	if err != nil {
		log.Error("Failed to take ledger snapshot", "error", err)
		return nil, err
	}
	return results.New(snap), nil
}

func (s *Server) ProcessSessionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Starting session processing...")
		isDryRun := isDryRunFromContext(r)

		s.Processor.ProcessSessions(isDryRun)

		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Session processing completed.")
		log.Info("Session processing finished.")
	}
}

func (s *Server) ExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := s.Store.Export()
		if err != nil {
			http.Error(w, "Failed to export ledger", http.StatusInternalServerError)
			log.Error("Failed to export ledger", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(doc); err != nil {
			log.Error("Failed to encode export document to JSON", "error", err)
		}
	}
}

func (s *Server) ImportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc ledger.SnapshotDocument
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if doc.Version != ledger.SnapshotVersion {
			http.Error(w, fmt.Sprintf("Unsupported snapshot version %d", doc.Version), http.StatusBadRequest)
			return
		}
		if err := s.Store.Import(&doc); err != nil {
			http.Error(w, "Failed to import snapshot", http.StatusInternalServerError)
			log.Error("Failed to import snapshot", "error", err)
			return
		}
		log.Info("Imported snapshot", "players", len(doc.Players), "sessions", len(doc.Sessions), "results", len(doc.Results))
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	}
}

func (s *Server) CountersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := s.MetricsStore.GetAll()
		if err != nil {
			http.Error(w, "Failed to get counters", http.StatusInternalServerError)
			log.Error("Failed to get lifetime counters", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(counters); err != nil {
			log.Error("Failed to encode counters to JSON", "error", err)
		}
	}
}

// LeaderboardRefreshHandler receives the leaderboard-refresh push message and
// publishes fresh standings to the notification channel.
func (s *Server) LeaderboardRefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawData, err := decodePushMessage(r)
		if err != nil {
			log.Error("Failed to decode push message", "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)
		event := pubsub.SessionEvent{}
		s.pubsub.ProcessMessage(rawData, &event)
		log.Info("Received leaderboard refresh", "sessionID", event.SessionID)
		if err := s.Processor.PublishStandings(isDryRun); err != nil {
			log.Error("Failed to publish standings", "error", err)
			http.Error(w, "Failed to publish standings", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// decodePushMessage unwraps a pubsub push delivery: the JSON envelope holds a
// base64-encoded MessagePack payload.
func decodePushMessage(r *http.Request) ([]byte, error) {
	var pushMsg struct {
		Subscription string `json:"subscription"`
		Message      struct {
			Data string `json:"data"` // base64-encoded message payload
		} `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&pushMsg); err != nil {
		return nil, fmt.Errorf("invalid JSON envelope: %w", err)
	}
	rawData, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 data: %w", err)
	}
	return rawData, nil
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// StandingsCommandHandler returns a handler for the /standings Slack command.
func (s *Server) StandingsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		calc, err := s.calculator()
		if err != nil {
			http.Error(w, "Failed to read ledger", http.StatusInternalServerError)
			return
		}

		msg, err := s.Notifier.FormatStandingsResponse(calc.Standings())
		if err != nil {
			http.Error(w, "Failed to format standings", http.StatusInternalServerError)
			log.Error("Failed to format standings", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}

// PlayerWinningsCommandHandler returns a handler for the /winnings Slack command.
func (s *Server) PlayerWinningsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		playerName := r.FormValue("text")
		if playerName == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}

		log.Info("Received player winnings command", "player", playerName)

		calc, err := s.calculator()
		if err != nil {
			http.Error(w, "Failed to read ledger", http.StatusInternalServerError)
			return
		}

		standing := findStanding(calc.Standings(), playerName)
		var msg any
		if standing == nil {
			log.Warn("Could not find player", "player", playerName)
			msg, err = s.Notifier.FormatPlayerNotFoundResponse(playerName)
		} else {
			msg, err = s.Notifier.FormatPlayerWinningsResponse(standing, playerName)
		}

		if err != nil {
			http.Error(w, "Failed to format player winnings", http.StatusInternalServerError)
			log.Error("Failed to format player winnings", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}

// findStanding matches a player by name, case-insensitively.
func findStanding(standings []results.Standing, name string) *results.Standing {
	for i := range standings {
		if strings.EqualFold(standings[i].Name, name) {
			return &standings[i]
		}
	}
	return nil
}
