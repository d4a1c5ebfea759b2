package postgres

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestGenreIDByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id FROM music_genres").
		WithArgs("Rock").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))

	id, err := GenreIDByName(db, "Rock")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id != 4 {
		t.Errorf("expected id 4, got %d", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestEnsureGenreInsertsWhenMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id FROM music_genres").
		WithArgs("Fado").
		WillReturnError(sql.ErrNoRows)

	mock.ExpectQuery("INSERT INTO music_genres").
		WithArgs("Fado").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	id, err := EnsureGenre(db, "Fado")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id != 11 {
		t.Errorf("expected id 11, got %d", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestSeedGenresSkipsExisting(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	// "Rock" already present, "Fado" gets inserted
	mock.ExpectQuery("SELECT id FROM music_genres").
		WithArgs("Rock").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))

	mock.ExpectQuery("SELECT id FROM music_genres").
		WithArgs("Fado").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO music_genres").
		WithArgs("Fado").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	if err := SeedGenres(db, []string{"Rock", "Fado"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestDefaultGenresHasNoDuplicates(t *testing.T) {
	seen := make(map[string]bool, len(DefaultGenres))
	for _, name := range DefaultGenres {
		if seen[name] {
			t.Errorf("duplicate genre in catalog: %q", name)
		}
		seen[name] = true
	}
	if len(DefaultGenres) == 0 {
		t.Fatal("default genre catalog is empty")
	}
}
