package ledger

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a new LedgerStore backed by the given database.
func New(db *sql.DB) LedgerStore {
	return &store{
		db: db,
	}
}

func (s *store) AddPlayer(id, name, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO players (id, name, description) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, description = excluded.description;
	`, id, name, description)
	return err
}

func (s *store) GetAllPlayers() ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, description FROM players ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *store) IsKnownPlayer(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists int
	err := s.db.QueryRow("SELECT 1 FROM players WHERE id = ?", playerID).Scan(&exists)
	return err == nil
}

// RemovePlayer deletes the player record only. Result records referencing the
// player are kept; readers fall back to the "Unknown" display name.
func (s *store) RemovePlayer(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM players WHERE id = ?", playerID)
	return err
}

func (s *store) AddSession(session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insertSession(s.db, session)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (s *store) insertSession(ex execer, session Session) error {
	status := session.ProcessingStatus
	if status == "" {
		status = StatusNew
	}
	_, err := ex.Exec(`
		INSERT INTO sessions (id, date, location, game, stakes, processing_status)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			location = excluded.location,
			game = excluded.game,
			stakes = excluded.stakes;
	`, session.ID, session.Date, session.Location, session.Game, session.Stakes, status)
	return err
}

// AddSessionWithResults creates a session together with its initial result
// records. The embedded buy-in arrays start empty.
func (s *store) AddSessionWithResults(session Session, results []SessionResultUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if err := s.insertSession(tx, session); err != nil {
		tx.Rollback()
		return err
	}
	for _, r := range results {
		if err := insertResult(tx, Result{
			SessionID:       session.ID,
			PlayerID:        r.PlayerID,
			SeatNumber:      r.SeatNumber,
			Result:          r.Result,
			CashOut:         r.CashOut,
			BuyIns:          []float64{},
			BuyInTimestamps: []string{},
		}); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *store) UpdateSession(session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		UPDATE sessions SET date = ?, location = ?, game = ?, stakes = ? WHERE id = ?
	`, session.Date, session.Location, session.Game, session.Stakes, session.ID)
	return err
}

// RemoveSession deletes a session and cascades to its result records.
func (s *store) RemoveSession(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM results WHERE session_id = ?", sessionID); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec("DELETE FROM sessions WHERE id = ?", sessionID); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *store) GetAllSessions() ([]Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.querySessions("SELECT id, date, location, game, stakes, processing_status FROM sessions ORDER BY rowid")
}

// GetSessionsForProcessing retrieves all sessions that are not yet in a
// completed state.
func (s *store) GetSessionsForProcessing() ([]Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.querySessions(
		"SELECT id, date, location, game, stakes, processing_status FROM sessions WHERE processing_status != ? ORDER BY rowid",
		StatusCompleted,
	)
}

func (s *store) querySessions(query string, args ...any) ([]Session, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.Date, &sess.Location, &sess.Game, &sess.Stakes, &sess.ProcessingStatus); err != nil {
			log.Error("Failed to scan session row", "error", err)
			continue
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// UpdateProcessingStatus transitions a session to a new pipeline state.
func (s *store) UpdateProcessingStatus(sessionID string, status ProcessingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE sessions SET processing_status = ? WHERE id = ?", status, sessionID)
	return err
}

// AddBuyIn appends a buy-in event. The result record for the (session, player)
// pair is created lazily on the first buy-in, with the seat number defaulting
// to 0 when unspecified. The session row itself is materialized if missing.
func (s *store) AddBuyIn(buyIn BuyIn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	timestamp := buyIn.DateTime
	if timestamp == "" {
		timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	// Sessions are materialized lazily on the first buy-in.
	if _, err := tx.Exec(`
		INSERT INTO sessions (id, date, processing_status) VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING;
	`, buyIn.SessionID, timestamp[:min(len(timestamp), 10)], StatusNew); err != nil {
		tx.Rollback()
		return err
	}

	var buyInsJSON, timestampsJSON string
	var seatNumber int
	err = tx.QueryRow(`
		SELECT buy_ins_json, buy_in_timestamps_json, seat_number FROM results
		WHERE session_id = ? AND player_id = ?
	`, buyIn.SessionID, buyIn.PlayerID).Scan(&buyInsJSON, &timestampsJSON, &seatNumber)

	switch {
	case err == sql.ErrNoRows:
		if err := insertResult(tx, Result{
			SessionID:       buyIn.SessionID,
			PlayerID:        buyIn.PlayerID,
			SeatNumber:      buyIn.SeatNumber,
			BuyIns:          []float64{buyIn.Amount},
			BuyInTimestamps: []string{timestamp},
		}); err != nil {
			tx.Rollback()
			return err
		}
	case err != nil:
		tx.Rollback()
		return err
	default:
		amounts, timestamps := decodeBuyIns(buyInsJSON, timestampsJSON)
		amounts = append(amounts, buyIn.Amount)
		timestamps = append(timestamps, timestamp)
		if buyIn.SeatNumber != 0 && seatNumber == 0 {
			seatNumber = buyIn.SeatNumber
		}
		amountsJSON, tsJSON, err := encodeBuyIns(amounts, timestamps)
		if err != nil {
			tx.Rollback()
			return err
		}
		if _, err := tx.Exec(`
			UPDATE results SET buy_ins_json = ?, buy_in_timestamps_json = ?, seat_number = ?
			WHERE session_id = ? AND player_id = ?
		`, amountsJSON, tsJSON, seatNumber, buyIn.SessionID, buyIn.PlayerID); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// UpdateSessionResults replaces the result set of a session with the supplied
// entries. Embedded buy-ins of players that were already present survive the
// update; players omitted from the update are dropped.
func (s *store) UpdateSessionResults(sessionID string, updates []SessionResultUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	existing := make(map[string]Result)
	rows, err := tx.Query(`
		SELECT session_id, player_id, seat_number, result, cash_out, buy_ins_json, buy_in_timestamps_json
		FROM results WHERE session_id = ? ORDER BY rowid
	`, sessionID)
	if err != nil {
		tx.Rollback()
		return err
	}
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			log.Error("Failed to scan result row", "error", err)
			continue
		}
		existing[result.PlayerID] = *result
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		tx.Rollback()
		return err
	}
	rows.Close()

	if _, err := tx.Exec("DELETE FROM results WHERE session_id = ?", sessionID); err != nil {
		tx.Rollback()
		return err
	}
	for _, update := range updates {
		result := Result{
			SessionID:       sessionID,
			PlayerID:        update.PlayerID,
			SeatNumber:      update.SeatNumber,
			Result:          update.Result,
			CashOut:         update.CashOut,
			BuyIns:          []float64{},
			BuyInTimestamps: []string{},
		}
		if prev, ok := existing[update.PlayerID]; ok {
			result.BuyIns = prev.BuyIns
			result.BuyInTimestamps = prev.BuyInTimestamps
		}
		if err := insertResult(tx, result); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *store) GetResultsForSession(sessionID string) ([]Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryResults(`
		SELECT session_id, player_id, seat_number, result, cash_out, buy_ins_json, buy_in_timestamps_json
		FROM results WHERE session_id = ? ORDER BY rowid
	`, sessionID)
}

func (s *store) queryResults(query string, args ...any) ([]Result, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			log.Error("Failed to scan result row", "error", err)
			continue
		}
		results = append(results, *result)
	}
	return results, rows.Err()
}

// Snapshot reads all collections into an immutable in-memory view, preserving
// insertion order. Every derivation runs against such a view.
func (s *store) Snapshot() (*Snapshot, error) {
	players, err := s.GetAllPlayers()
	if err != nil {
		return nil, err
	}
	sessions, err := s.GetAllSessions()
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	results, err := s.queryResults(`
		SELECT session_id, player_id, seat_number, result, cash_out, buy_ins_json, buy_in_timestamps_json
		FROM results ORDER BY rowid
	`)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Players:  players,
		Sessions: sessions,
		Results:  results,
	}, nil
}

// Export produces the versioned document of the raw collections.
func (s *store) Export() (*SnapshotDocument, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return &SnapshotDocument{
		Version:  SnapshotVersion,
		Players:  snap.Players,
		Sessions: snap.Sessions,
		Results:  snap.Results,
	}, nil
}

// Import replaces all collections with the document's contents, verbatim and
// in document order. Absent optional fields are tolerated.
func (s *store) Import(doc *SnapshotDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, table := range []string{"results", "sessions", "players"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			tx.Rollback()
			return err
		}
	}
	for _, p := range doc.Players {
		if _, err := tx.Exec("INSERT INTO players (id, name, description) VALUES (?, ?, ?)", p.ID, p.Name, p.Description); err != nil {
			tx.Rollback()
			return err
		}
	}
	for _, sess := range doc.Sessions {
		if err := s.insertSession(tx, sess); err != nil {
			tx.Rollback()
			return err
		}
	}
	for _, r := range doc.Results {
		if err := insertResult(tx, r); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"results", "sessions", "players"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
		}
	}
}

func (s *store) ClearSession(sessionID string) {
	if err := s.RemoveSession(sessionID); err != nil {
		log.Error("Failed to clear session", "sessionID", sessionID, "error", err)
	}
}

// insertResult writes a single result row, normalizing nil buy-in arrays.
func insertResult(ex execer, r Result) error {
	amountsJSON, tsJSON, err := encodeBuyIns(r.BuyIns, r.BuyInTimestamps)
	if err != nil {
		return err
	}
	_, err = ex.Exec(`
		INSERT INTO results (session_id, player_id, seat_number, result, cash_out, buy_ins_json, buy_in_timestamps_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id, player_id) DO UPDATE SET
			seat_number = excluded.seat_number,
			result = excluded.result,
			cash_out = excluded.cash_out,
			buy_ins_json = excluded.buy_ins_json,
			buy_in_timestamps_json = excluded.buy_in_timestamps_json;
	`, r.SessionID, r.PlayerID, r.SeatNumber, r.Result, r.CashOut, amountsJSON, tsJSON)
	return err
}

// scanResult is a helper to scan a single result row.
func scanResult(scanner interface{ Scan(...any) error }) (*Result, error) {
	var result Result
	var resultVal, cashOut sql.NullFloat64
	var buyInsJSON, timestampsJSON string

	err := scanner.Scan(&result.SessionID, &result.PlayerID, &result.SeatNumber, &resultVal, &cashOut, &buyInsJSON, &timestampsJSON)
	if err != nil {
		return nil, err
	}
	if resultVal.Valid {
		v := resultVal.Float64
		result.Result = &v
	}
	if cashOut.Valid {
		v := cashOut.Float64
		result.CashOut = &v
	}
	result.BuyIns, result.BuyInTimestamps = decodeBuyIns(buyInsJSON, timestampsJSON)
	return &result, nil
}

func encodeBuyIns(amounts []float64, timestamps []string) (string, string, error) {
	if amounts == nil {
		amounts = []float64{}
	}
	if timestamps == nil {
		timestamps = []string{}
	}
	amountsJSON, err := json.Marshal(amounts)
	if err != nil {
		return "", "", err
	}
	tsJSON, err := json.Marshal(timestamps)
	if err != nil {
		return "", "", err
	}
	return string(amountsJSON), string(tsJSON), nil
}

func decodeBuyIns(amountsJSON, timestampsJSON string) ([]float64, []string) {
	amounts := []float64{}
	timestamps := []string{}
	if amountsJSON != "" {
		if err := json.Unmarshal([]byte(amountsJSON), &amounts); err != nil {
			log.Error("Failed to decode buy-in amounts", "error", err)
		}
	}
	if timestampsJSON != "" {
		if err := json.Unmarshal([]byte(timestampsJSON), &timestamps); err != nil {
			log.Error("Failed to decode buy-in timestamps", "error", err)
		}
	}
	return amounts, timestamps
}
