package models

import (
	"encoding/json"
	"time"
)

// EventType represents the type of domain event.
type EventType string

const (
	EventUserCreated        EventType = "user.created"
	EventPublicationCreated EventType = "publication.created"
	EventTicketPurchased    EventType = "ticket.purchased"
	EventEventReminder      EventType = "event.reminder"
	EventListingSold        EventType = "listing.sold"
)

// Exchange and queue names used across the pipeline.
const (
	UsersExchange    = "users"
	ConcertsExchange = "concerts"

	UserCreatedQueue     = "events.user.created"
	RecommendationsQueue = "notifications.concerts.recommended"
	PublicationQueue     = "publication_created"
	NotificationQueue    = "notification_request"

	RecommendedRoutingKey = "concerts.recommended"
)

// DomainEvent is the envelope some producers wrap their payloads in.
// The payload is kept raw so each consumer decodes its own shape.
type DomainEvent struct {
	Type      EventType       `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	Service   string          `json:"service,omitempty"`
}

// UserCreatedPayload is the user.created message body. Older producers
// send the user ID as "id" instead of "userId", so both are accepted.
type UserCreatedPayload struct {
	UserID int
	Email  string
	Name   string
	Genres []string
}

func (p *UserCreatedPayload) UnmarshalJSON(b []byte) error {
	var raw struct {
		UserID *int     `json:"userId"`
		ID     *int     `json:"id"`
		Email  string   `json:"email"`
		Name   string   `json:"name"`
		Genres []string `json:"genres"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.UserID != nil {
		p.UserID = *raw.UserID
	} else if raw.ID != nil {
		p.UserID = *raw.ID
	}
	p.Email = raw.Email
	p.Name = raw.Name
	p.Genres = raw.Genres
	return nil
}

// Publication is the publication.created message body.
type Publication struct {
	ConcertID   int      `json:"concertId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genres      []string `json:"genres"`
	Location    string   `json:"location"`
	Date        string   `json:"date"`
	ImageURL    *string  `json:"image_url"`
}
