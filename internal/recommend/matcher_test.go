package recommend

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func TestConcertsByGenresEmptySetSkipsQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	matcher := NewMatcher(db)

	concerts, err := matcher.ConcertsByGenres(context.Background(), nil, 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(concerts) != 0 {
		t.Errorf("expected empty result, got %d concerts", len(concerts))
	}

	// No expectations were registered: any query would have failed the mock.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no query should have been issued: %v", err)
	}
}

func TestConcertsByGenresMatchesAndEnriches(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	matcher := NewMatcher(db)

	showTime := time.Date(2025, 7, 18, 21, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT DISTINCT c.id, c.title, c.datetime").
		WithArgs(pq.Array([]string{"Rock", "Jazz"}), 5).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "datetime", "tickets_available", "purchase_url", "image_url", "location_name", "address",
		}).
			AddRow(1, "Rock Fest", showTime, 100, "https://t.example/1", nil, "Arena", "Lisboa, Portugal").
			AddRow(2, "Indie Night", showTime.Add(24*time.Hour), 50, "https://t.example/2", "https://img/2.jpg", "Club", "Porto, Portugal"))

	mock.ExpectQuery("SELECT cg.concert_id, mg.name").
		WithArgs(pq.Array([]int{1, 2})).
		WillReturnRows(sqlmock.NewRows([]string{"concert_id", "name"}).
			AddRow(1, "Rock").
			AddRow(1, "Metal").
			AddRow(2, "Rock"))

	concerts, err := matcher.ConcertsByGenres(context.Background(), []string{"Rock", "Jazz"}, 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(concerts) != 2 {
		t.Fatalf("expected 2 concerts, got %d", len(concerts))
	}

	// The full genre set is attached, not just the requested genres
	if len(concerts[0].Genres) != 2 || concerts[0].Genres[1] != "Metal" {
		t.Errorf("concert 1 genres: expected [Rock Metal], got %v", concerts[0].Genres)
	}
	if concerts[0].ImageURL != nil {
		t.Error("concert 1 image should be nil")
	}
	if concerts[1].ImageURL == nil || *concerts[1].ImageURL != "https://img/2.jpg" {
		t.Errorf("concert 2 image: got %v", concerts[1].ImageURL)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestConcertsByGenresNoMatches(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	matcher := NewMatcher(db)

	mock.ExpectQuery("SELECT DISTINCT c.id, c.title, c.datetime").
		WithArgs(pq.Array([]string{"Polka"}), 5).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "datetime", "tickets_available", "purchase_url", "image_url", "location_name", "address",
		}))

	concerts, err := matcher.ConcertsByGenres(context.Background(), []string{"Polka"}, 5)
	if err != nil {
		t.Fatalf("expected no error on zero matches, got %v", err)
	}
	if len(concerts) != 0 {
		t.Errorf("expected empty result, got %d", len(concerts))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestConcertsByGenresDefaultLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	matcher := NewMatcher(db)

	mock.ExpectQuery("SELECT DISTINCT c.id, c.title, c.datetime").
		WithArgs(pq.Array([]string{"Rock"}), DefaultLimit).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "datetime", "tickets_available", "purchase_url", "image_url", "location_name", "address",
		}))

	if _, err := matcher.ConcertsByGenres(context.Background(), []string{"Rock"}, 0); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}
