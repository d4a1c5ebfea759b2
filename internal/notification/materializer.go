package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Alexmarques11/Backstage/pkg/models"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Materializer turns broker messages into stored notifications.
type Materializer struct {
	Store *Store
}

// NewMaterializer creates a materializer over the given store.
func NewMaterializer(store *Store) *Materializer {
	return &Materializer{Store: store}
}

// HandleRecommendation materializes a concerts.recommended message into
// a single notification carrying the whole concert list as metadata.
func (m *Materializer) HandleRecommendation(ctx context.Context, delivery amqp.Delivery) error {
	var msg models.RecommendationMessage
	if err := json.Unmarshal(delivery.Body, &msg); err != nil {
		log.Printf("[Notifications] Failed to unmarshal recommendation: %v correlation_id=%s", err, delivery.CorrelationId)
		return err
	}

	log.Printf("[Notifications] Recommendations received: user_id=%d concerts=%d correlation_id=%s",
		msg.UserID, len(msg.Concerts), delivery.CorrelationId)

	createdAt := msg.Timestamp
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	n := models.Notification{
		ID:          uuid.New().String(),
		UserID:      msg.UserID,
		Type:        models.TypeConcertRecommendations,
		Title:       "New Concert Recommendations!",
		Message:     fmt.Sprintf("We found %d concerts that might interest you based on your favorite music genres.", len(msg.Concerts)),
		RelatedType: "concerts",
		Metadata: map[string]any{
			"concerts": msg.Concerts,
			"total":    len(msg.Concerts),
		},
		CreatedAt: createdAt,
	}
	m.Store.Append(n)

	log.Printf("[Notifications] Notification created: id=%s user_id=%d correlation_id=%s",
		n.ID, n.UserID, delivery.CorrelationId)
	return nil
}

// HandleNotificationRequest materializes a notification_request message
// from the publication fan-out.
func (m *Materializer) HandleNotificationRequest(ctx context.Context, delivery amqp.Delivery) error {
	var msg models.NotificationMessage
	if err := json.Unmarshal(delivery.Body, &msg); err != nil {
		log.Printf("[Notifications] Failed to unmarshal notification request: %v correlation_id=%s", err, delivery.CorrelationId)
		return err
	}

	log.Printf("[Notifications] Notification request received: user_id=%d type=%s correlation_id=%s",
		msg.UserID, msg.Type, delivery.CorrelationId)

	notificationType := msg.Type
	if notificationType == "" {
		notificationType = models.TypeNewPublication
	}
	createdAt := msg.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	var relatedID *int
	if msg.Data.ConcertID != 0 {
		id := msg.Data.ConcertID
		relatedID = &id
	}

	n := models.Notification{
		ID:          uuid.New().String(),
		UserID:      msg.UserID,
		Type:        notificationType,
		Title:       msg.Title,
		Message:     msg.Message,
		RelatedID:   relatedID,
		RelatedType: "concert",
		Metadata: map[string]any{
			"concertTitle": msg.Data.ConcertTitle,
			"genres":       msg.Data.Genres,
			"location":     msg.Data.Location,
			"date":         msg.Data.Date,
			"image_url":    msg.Data.ImageURL,
		},
		CreatedAt: createdAt,
	}
	m.Store.Append(n)

	log.Printf("[Notifications] Notification created: id=%s user_id=%d concert=%q correlation_id=%s",
		n.ID, n.UserID, msg.Data.ConcertTitle, delivery.CorrelationId)
	return nil
}
