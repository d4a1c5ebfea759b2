package recommend

import (
	"context"
	"database/sql"
	"log"

	"github.com/Alexmarques11/Backstage/pkg/models"

	"github.com/lib/pq"
)

// DefaultLimit caps how many concerts a single recommendation carries.
const DefaultLimit = 5

// Matcher finds concerts whose genres intersect a user's preferences.
type Matcher struct {
	DB *sql.DB
}

// NewMatcher creates a new Matcher.
func NewMatcher(db *sql.DB) *Matcher {
	return &Matcher{DB: db}
}

// ConcertsByGenres returns up to limit concerts sharing at least one of
// the given genres (OR semantics), each annotated with its full genre
// set. An empty genre list short-circuits without touching the database.
func (m *Matcher) ConcertsByGenres(ctx context.Context, genres []string, limit int) ([]models.Concert, error) {
	if len(genres) == 0 {
		log.Println("[Recommend] No genres provided, skipping concert lookup")
		return []models.Concert{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := m.DB.QueryContext(ctx,
		`SELECT DISTINCT c.id, c.title, c.datetime, c.tickets_available, c.purchase_url, c.image_url,
		        l.name AS location_name, l.address
		 FROM concerts c
		 LEFT JOIN locations l ON c.location_id = l.id
		 INNER JOIN concerts_genres cg ON c.id = cg.concert_id
		 INNER JOIN music_genres mg ON cg.genre_id = mg.id
		 WHERE mg.name = ANY($1)
		 ORDER BY c.datetime
		 LIMIT $2`,
		pq.Array(genres), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var concerts []models.Concert
	var ids []int
	for rows.Next() {
		var c models.Concert
		var purchaseURL, imageURL, venue, address sql.NullString
		if err := rows.Scan(&c.ID, &c.Title, &c.Datetime, &c.TicketsAvailable,
			&purchaseURL, &imageURL, &venue, &address); err != nil {
			return nil, err
		}
		c.PurchaseURL = purchaseURL.String
		if imageURL.Valid {
			c.ImageURL = &imageURL.String
		}
		c.VenueName = venue.String
		c.Address = address.String
		concerts = append(concerts, c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(concerts) == 0 {
		log.Printf("[Recommend] No concerts found for genres %v", genres)
		return []models.Concert{}, nil
	}

	genresByConcert, err := m.genresForConcerts(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range concerts {
		concerts[i].Genres = genresByConcert[concerts[i].ID]
	}

	log.Printf("[Recommend] Found %d matching concerts for genres %v", len(concerts), genres)
	return concerts, nil
}

// genresForConcerts returns the full genre set of each concert, not just
// the genres that were searched for.
func (m *Matcher) genresForConcerts(ctx context.Context, concertIDs []int) (map[int][]string, error) {
	rows, err := m.DB.QueryContext(ctx,
		`SELECT cg.concert_id, mg.name
		 FROM music_genres mg
		 INNER JOIN concerts_genres cg ON mg.id = cg.genre_id
		 WHERE cg.concert_id = ANY($1)`,
		pq.Array(concertIDs),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byConcert := make(map[int][]string)
	for rows.Next() {
		var concertID int
		var name string
		if err := rows.Scan(&concertID, &name); err != nil {
			return nil, err
		}
		byConcert[concertID] = append(byConcert[concertID], name)
	}
	return byConcert, rows.Err()
}
