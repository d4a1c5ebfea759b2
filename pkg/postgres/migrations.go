package postgres

import (
	"database/sql"
	"log"
)

// RunMigrations executes database migrations.
func RunMigrations(db *sql.DB, service string) error {
	migrations := getServiceMigrations(service)
	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}
	log.Printf("Migrations completed for service: %s", service)
	return nil
}

func getServiceMigrations(service string) []string {
	genres := `CREATE TABLE IF NOT EXISTS music_genres (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL UNIQUE
	)`

	switch service {
	case "concerts":
		return []string{
			genres,
			`CREATE TABLE IF NOT EXISTS locations (
				id SERIAL PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				address VARCHAR(512),
				geo_location VARCHAR(100)
			)`,
			`CREATE TABLE IF NOT EXISTS concerts (
				id SERIAL PRIMARY KEY,
				title VARCHAR(255) NOT NULL,
				datetime TIMESTAMP NOT NULL,
				tickets_available INTEGER NOT NULL DEFAULT 0,
				purchase_url VARCHAR(512),
				location_id INTEGER REFERENCES locations(id),
				image_url VARCHAR(512)
			)`,
			`CREATE TABLE IF NOT EXISTS concerts_genres (
				concert_id INTEGER NOT NULL REFERENCES concerts(id) ON DELETE CASCADE,
				genre_id INTEGER NOT NULL REFERENCES music_genres(id),
				PRIMARY KEY (concert_id, genre_id)
			)`,
		}
	case "fanout":
		return []string{
			genres,
			`CREATE TABLE IF NOT EXISTS users (
				id SERIAL PRIMARY KEY,
				email VARCHAR(255) NOT NULL UNIQUE,
				name VARCHAR(255) NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT NOW()
			)`,
			`CREATE TABLE IF NOT EXISTS users_genres (
				user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				genre_id INTEGER NOT NULL REFERENCES music_genres(id),
				PRIMARY KEY (user_id, genre_id)
			)`,
		}
	default:
		return []string{genres}
	}
}
