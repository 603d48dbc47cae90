package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

type seedPlayer struct {
	ID          string
	Name        string
	Description string
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")

	dummyPlayers := []seedPlayer{
		{ID: "player-1", Name: "Seeder Player A", Description: "ME"},
		{ID: "player-2", Name: "Seeder Player B"},
		{ID: "player-3", Name: "Seeder Player C"},
		{ID: "player-4", Name: "Seeder Player D"},
	}

	for _, p := range dummyPlayers {
		_, err := db.Exec("INSERT OR IGNORE INTO players (id, name, description) VALUES (?, ?, ?)", p.ID, p.Name, p.Description)
		if err != nil {
			log.Fatalf("Failed to insert dummy player %s: %s", p.Name, err)
		}
	}
	log.Info("Ensured dummy players exist.")

	const batchSize = 100 // Insert 100 sessions at a time
	const numSessions = 5000

	log.Info("Preparing to insert dummy sessions...", "total", numSessions, "batch_size", batchSize)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	sessionValues := make([]string, 0, batchSize)
	sessionArgs := make([]interface{}, 0, batchSize*6)
	resultValues := make([]string, 0, batchSize*len(dummyPlayers))
	resultArgs := make([]interface{}, 0, batchSize*len(dummyPlayers)*7)

	for i := 0; i < numSessions; i++ {
		sessionID := uuid.NewString()
		sessionTime := time.Now().Add(-time.Duration(rand.Intn(365*24)) * time.Hour)

		sessionValues = append(sessionValues, "(?, ?, ?, ?, ?, ?)")
		sessionArgs = append(sessionArgs,
			sessionID,
			sessionTime.Format("2006-01-02"),
			"Seeded Garage",
			"NLHE",
			"1/2",
			"COMPLETED",
		)

		// Zero-sum session: the first player collects what the rest lose.
		pot := 0.0
		for seat, p := range dummyPlayers {
			buyIn := float64(50 + rand.Intn(3)*25)
			buyInsBlob, _ := json.Marshal([]float64{buyIn})
			timestampsBlob, _ := json.Marshal([]string{sessionTime.Format(time.RFC3339)})

			var cashOut float64
			if seat == 0 {
				cashOut = 0 // patched below once the pot is known
			} else {
				cashOut = buyIn * float64(rand.Intn(3))
			}
			pot += buyIn - cashOut

			resultValues = append(resultValues, "(?, ?, ?, ?, ?, ?, ?)")
			resultArgs = append(resultArgs,
				sessionID,
				p.ID,
				seat+1,
				nil, // result: derived from cash-out and buy-ins
				cashOut,
				string(buyInsBlob),
				string(timestampsBlob),
			)
		}
		// Hand the remaining pot to the first player's cash-out slot.
		if pot < 0 {
			pot = 0
		}
		resultArgs[len(resultArgs)-len(dummyPlayers)*7+4] = pot

		if (i+1)%batchSize == 0 || (i+1) == numSessions {
			sessionStmt := fmt.Sprintf(`
				INSERT INTO sessions (id, date, location, game, stakes, processing_status)
				VALUES %s;`, strings.Join(sessionValues, ","))
			if _, err := tx.Exec(sessionStmt, sessionArgs...); err != nil {
				tx.Rollback()
				log.Fatalf("Failed to execute session batch insert: %s", err)
			}

			resultStmt := fmt.Sprintf(`
				INSERT INTO results (session_id, player_id, seat_number, result, cash_out, buy_ins_json, buy_in_timestamps_json)
				VALUES %s;`, strings.Join(resultValues, ","))
			if _, err := tx.Exec(resultStmt, resultArgs...); err != nil {
				tx.Rollback()
				log.Fatalf("Failed to execute result batch insert: %s", err)
			}

			// Reset for the next batch
			sessionValues = make([]string, 0, batchSize)
			sessionArgs = make([]interface{}, 0, batchSize*6)
			resultValues = make([]string, 0, batchSize*len(dummyPlayers))
			resultArgs = make([]interface{}, 0, batchSize*len(dummyPlayers)*7)
			log.Info("Inserted batch", "completed", i+1, "total", numSessions)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all dummy sessions.", "duration", duration)
}
