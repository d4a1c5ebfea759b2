package postgres

import (
	"database/sql"
	"log"
)

// DefaultGenres is the catalog seeded on service startup. Matching is
// done by exact name, so producers and the catalog must agree on these.
var DefaultGenres = []string{
	"Pop", "Pop Rock", "Pop Punk", "Pop Soul", "Pop Indie",
	"Rock", "Hard Rock", "Soft Rock", "Classic Rock", "Alternative Rock",
	"Indie Rock", "Punk Rock", "Grunge",
	"Metal", "Heavy Metal", "Thrash Metal", "Black Metal", "Death Metal",
	"Doom Metal", "Symphonic Metal", "Power Metal", "Nu Metal",
	"Funk", "Funk Rock", "Funk Soul", "Soul", "Neo Soul",
	"R&B", "Contemporary R&B",
	"Hip Hop", "Rap", "Trap", "Drill", "Boom Bap", "Lo-Fi Hip Hop",
	"Jazz", "Smooth Jazz", "Jazz Fusion", "Bebop", "Swing",
	"Blues", "Delta Blues", "Electric Blues",
	"Country", "Bluegrass", "Country Pop",
	"Folk", "Indie Folk", "Acoustic", "Singer-Songwriter",
	"Classical", "Baroque", "Romantic", "Opera", "Orchestral", "Choral",
	"Electronic", "EDM", "House", "Deep House", "Progressive House",
	"Tech House", "Electro House", "Trance", "Psytrance",
	"Dubstep", "Brostep", "Drum and Bass", "Jungle",
	"Techno", "Minimal Techno", "Hard Techno",
	"Chillout", "Chillstep", "Ambient", "Downtempo",
	"Synthwave", "Retrowave", "Vaporwave", "Future Bass", "Future Funk",
	"Reggae", "Reggae Fusion", "Ska", "Dub", "Dancehall",
	"Latin", "Reggaeton", "Bachata", "Salsa", "Merengue", "Cumbia",
	"Flamenco", "Fado", "Samba", "Bossa Nova", "MPB",
	"K-Pop", "J-Pop", "J-Rock", "C-Pop", "Mandopop", "Cantopop",
	"Afrobeat", "Afrobeats", "Amapiano", "Highlife", "Makossa",
	"Zouk", "Zumba",
	"Gospel", "Christian Rock", "Christian Pop", "Worship",
	"World Music", "Meditation Music", "New Age",
	"Soundtrack", "Film Score", "Game Soundtrack",
	"Experimental", "Avant-Garde", "Industrial", "Noise",
	"Post-Rock", "Post-Punk", "Shoegaze", "Dream Pop", "Gothic Rock",
	"Emo", "Screamo",
	"Alternative Metal", "Melodic Metalcore", "Metalcore", "Post-Hardcore",
	"Punk", "Garage Rock", "Garage Punk",
	"Indie Pop", "Electropop", "Hyperpop",
	"Disco", "Eurodance", "Italo Disco",
	"Funk Carioca", "Pagode", "Kuduro", "Semba", "Tango", "Chanson",
	"Opera Rock", "Progressive Rock", "Progressive Metal",
	"Math Rock", "Mathcore",
	"Chiptune", "8-bit", "Breakbeat", "UK Garage", "Grime", "IDM", "Glitch",
	"Space Rock", "Drone", "Folk Rock", "Celtic", "Irish Folk", "Medieval",
	"Barbershop", "A Cappella", "Musical Theatre", "Broadway",
	"Lounge", "Easy Listening", "Trip-Hop", "Electro Swing", "Swing Revival",
	"Blue-Eyed Soul", "Neo-Classical", "Minimalism",
	"Glam Rock", "Glam Metal", "Stoner Rock", "Stoner Metal",
}

// GenreIDByName returns the genre id, or sql.ErrNoRows if unknown.
func GenreIDByName(db *sql.DB, name string) (int, error) {
	var id int
	err := db.QueryRow("SELECT id FROM music_genres WHERE name = $1", name).Scan(&id)
	return id, err
}

// EnsureGenre finds or inserts a genre by name and returns its id.
func EnsureGenre(db *sql.DB, name string) (int, error) {
	id, err := GenreIDByName(db, name)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}
	err = db.QueryRow(
		`INSERT INTO music_genres (name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`,
		name,
	).Scan(&id)
	return id, err
}

// SeedGenres inserts every name in genres that is not already present.
// Safe to run on every startup.
func SeedGenres(db *sql.DB, genres []string) error {
	for _, name := range genres {
		if _, err := EnsureGenre(db, name); err != nil {
			return err
		}
	}
	log.Printf("Genre catalog seeded: %d genres", len(genres))
	return nil
}
