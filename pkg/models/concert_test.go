package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestConcertSummary(t *testing.T) {
	img := "https://cdn.example.com/show.jpg"
	concert := Concert{
		ID:          12,
		Title:       "Summer Rock Fest",
		Datetime:    time.Date(2025, 7, 18, 21, 30, 0, 0, time.UTC),
		PurchaseURL: "https://tickets.example.com/12",
		ImageURL:    &img,
		VenueName:   "Altice Arena",
		Address:     "Lisboa, Lisboa, Portugal",
		Genres:      []string{"Rock", "Metal"},
	}

	s := concert.Summary()

	if s.Titulo != "Summer Rock Fest" {
		t.Errorf("Titulo: got %q", s.Titulo)
	}
	if s.Data != "2025-07-18" {
		t.Errorf("Data: expected 2025-07-18, got %q", s.Data)
	}
	if s.Hora != "21:30:00" {
		t.Errorf("Hora: expected 21:30:00, got %q", s.Hora)
	}
	if s.Cidade != "Lisboa" {
		t.Errorf("Cidade: expected Lisboa, got %q", s.Cidade)
	}
	if s.Pais != "Portugal" {
		t.Errorf("Pais: expected Portugal, got %q", s.Pais)
	}
	if s.Imagem == nil || *s.Imagem != img {
		t.Errorf("Imagem: expected %q, got %v", img, s.Imagem)
	}
}

func TestConcertSummaryEmptyAddress(t *testing.T) {
	concert := Concert{Title: "No Venue", Datetime: time.Now()}

	s := concert.Summary()

	if s.Cidade != "" || s.Pais != "" {
		t.Errorf("expected empty cidade/pais, got %q/%q", s.Cidade, s.Pais)
	}
	if s.Generos == nil {
		t.Error("Generos should marshal as [] not null")
	}
}

func TestRecommendationMessageJSON(t *testing.T) {
	msg := RecommendationMessage{
		UserID: 5,
		Email:  "fan@example.com",
		Concerts: []ConcertSummary{{
			Titulo:  "Jazz Night",
			Data:    "2025-09-01",
			Hora:    "20:00:00",
			Venue:   "Blue Note",
			Generos: []string{"Jazz"},
		}},
		Timestamp: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var decoded RecommendationMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if decoded.UserID != msg.UserID {
		t.Errorf("UserID: expected %d, got %d", msg.UserID, decoded.UserID)
	}
	if len(decoded.Concerts) != 1 || decoded.Concerts[0].Titulo != "Jazz Night" {
		t.Errorf("unexpected concerts: %+v", decoded.Concerts)
	}
	if decoded.Concerts[0].Imagem != nil {
		t.Error("Imagem should round-trip as null")
	}
}
