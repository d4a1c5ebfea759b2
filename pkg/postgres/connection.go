package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

const (
	dialAttempts = 30
	dialInterval = 2 * time.Second
)

// Connect establishes a connection to PostgreSQL with retries.
func Connect(databaseURL string) (*sql.DB, error) {
	var db *sql.DB
	var err error

	for i := 0; i < dialAttempts; i++ {
		db, err = sql.Open("postgres", databaseURL)
		if err != nil {
			log.Printf("Failed to open database: %v, retrying in %s...", err, dialInterval)
			time.Sleep(dialInterval)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = db.PingContext(ctx)
		cancel()
		if err == nil {
			log.Println("Connected to PostgreSQL")
			return db, nil
		}

		log.Printf("Failed to ping database: %v, retrying in %s...", err, dialInterval)
		time.Sleep(dialInterval)
	}

	return nil, fmt.Errorf("could not connect to database after %d attempts: %w", dialAttempts, err)
}
