package models

import "time"

// Notification types accepted by the create endpoint.
var ValidNotificationTypes = []string{"event", "system", "ticket_purchase", "event_reminder"}

// Types assigned by the materializer.
const (
	TypeConcertRecommendations = "concert_recommendations"
	TypeNewPublication         = "new_publication"
)

// NotificationMessage is the notification_request queue payload.
type NotificationMessage struct {
	UserID    int             `json:"userId"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Data      PublicationData `json:"data"`
	CreatedAt time.Time       `json:"createdAt"`
}

// PublicationData carries the publication details inside a notification request.
type PublicationData struct {
	ConcertID          int      `json:"concertId"`
	ConcertTitle       string   `json:"concertTitle"`
	ConcertDescription string   `json:"concertDescription"`
	Genres             []string `json:"genres"`
	Location           string   `json:"location"`
	Date               string   `json:"date"`
	ImageURL           *string  `json:"image_url"`
}

// Notification is the materialized record stored in the cache.
type Notification struct {
	ID          string         `json:"id"`
	UserID      int            `json:"user_id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	RelatedID   *int           `json:"related_id"`
	RelatedType string         `json:"related_type,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	IsRead      bool           `json:"is_read"`
	CreatedAt   time.Time      `json:"created_at"`
}
