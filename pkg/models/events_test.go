package models

import (
	"encoding/json"
	"testing"
)

func TestEventTypeConstants(t *testing.T) {
	tests := []struct {
		name     string
		et       EventType
		expected string
	}{
		{"user created", EventUserCreated, "user.created"},
		{"publication created", EventPublicationCreated, "publication.created"},
		{"ticket purchased", EventTicketPurchased, "ticket.purchased"},
		{"event reminder", EventEventReminder, "event.reminder"},
		{"listing sold", EventListingSold, "listing.sold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if string(tt.et) != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, string(tt.et))
			}
		})
	}
}

func TestUserCreatedPayloadUserIDField(t *testing.T) {
	body := []byte(`{"userId":42,"email":"rock@example.com","name":"Rock Fan","genres":["Rock","Jazz"]}`)

	var p UserCreatedPayload
	if err := json.Unmarshal(body, &p); err != nil {
		t.Fatalf("failed to unmarshal payload: %v", err)
	}

	if p.UserID != 42 {
		t.Errorf("UserID: expected 42, got %d", p.UserID)
	}
	if p.Email != "rock@example.com" {
		t.Errorf("Email: expected rock@example.com, got %q", p.Email)
	}
	if len(p.Genres) != 2 || p.Genres[0] != "Rock" {
		t.Errorf("unexpected genres: %v", p.Genres)
	}
}

func TestUserCreatedPayloadLegacyIDField(t *testing.T) {
	body := []byte(`{"id":7,"email":"legacy@example.com","name":"Legacy","genres":[]}`)

	var p UserCreatedPayload
	if err := json.Unmarshal(body, &p); err != nil {
		t.Fatalf("failed to unmarshal payload: %v", err)
	}

	if p.UserID != 7 {
		t.Errorf("UserID: expected 7 from legacy id field, got %d", p.UserID)
	}
	if len(p.Genres) != 0 {
		t.Errorf("expected empty genres, got %v", p.Genres)
	}
}

func TestDomainEventJSON(t *testing.T) {
	raw := []byte(`{"type":"publication.created","data":{"concertId":3},"timestamp":"2025-06-01T10:00:00Z","service":"publications"}`)

	var event DomainEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		t.Fatalf("failed to unmarshal DomainEvent: %v", err)
	}

	if event.Type != EventPublicationCreated {
		t.Errorf("Type: expected %q, got %q", EventPublicationCreated, event.Type)
	}
	if event.Service != "publications" {
		t.Errorf("Service: expected publications, got %q", event.Service)
	}

	var pub Publication
	if err := json.Unmarshal(event.Data, &pub); err != nil {
		t.Fatalf("failed to unmarshal embedded publication: %v", err)
	}
	if pub.ConcertID != 3 {
		t.Errorf("ConcertID: expected 3, got %d", pub.ConcertID)
	}
}
