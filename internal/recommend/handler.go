package recommend

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"time"

	"github.com/Alexmarques11/Backstage/pkg/middleware"
	"github.com/Alexmarques11/Backstage/pkg/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher defines the interface for publishing to a topic exchange.
type Publisher interface {
	Publish(exchange, routingKey string, body []byte, correlationID string) error
}

// Handler turns user.created events into concert recommendations.
type Handler struct {
	Matcher   *Matcher
	Publisher Publisher
	Limit     int
}

// NewHandler creates a new user-event handler.
func NewHandler(db *sql.DB, pub Publisher) *Handler {
	return &Handler{Matcher: NewMatcher(db), Publisher: pub, Limit: DefaultLimit}
}

// HandleUserCreated matches the new user's genres against the catalog
// and publishes one concerts.recommended message carrying the full match
// list. Empty genres and zero matches end the flow without publishing.
// A publish failure propagates so the source message is retried.
func (h *Handler) HandleUserCreated(ctx context.Context, delivery amqp.Delivery) error {
	var payload models.UserCreatedPayload
	if err := json.Unmarshal(delivery.Body, &payload); err != nil {
		log.Printf("[Recommend] Failed to unmarshal user.created: %v correlation_id=%s", err, delivery.CorrelationId)
		return err
	}

	log.Printf("[Recommend] New user: id=%d email=%s genres=%v correlation_id=%s",
		payload.UserID, payload.Email, payload.Genres, delivery.CorrelationId)

	if len(payload.Genres) == 0 {
		log.Printf("[Recommend] User %d has no music genres defined, no recommendations sent", payload.UserID)
		return nil
	}

	concerts, err := h.Matcher.ConcertsByGenres(ctx, payload.Genres, h.Limit)
	if err != nil {
		return err
	}
	if len(concerts) == 0 {
		log.Printf("[Recommend] No concerts found for user %d's genres", payload.UserID)
		return nil
	}

	summaries := make([]models.ConcertSummary, 0, len(concerts))
	for _, c := range concerts {
		summaries = append(summaries, c.Summary())
	}

	msg := models.RecommendationMessage{
		UserID:    payload.UserID,
		Email:     payload.Email,
		Concerts:  summaries,
		Timestamp: time.Now().UTC(),
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	correlationID := middleware.Ensure(delivery.CorrelationId)

	if err := h.Publisher.Publish(models.ConcertsExchange, models.RecommendedRoutingKey, body, correlationID); err != nil {
		log.Printf("[Recommend] Failed to publish recommendations for user %d: %v correlation_id=%s",
			payload.UserID, err, correlationID)
		return err
	}

	log.Printf("[Recommend] Sent %d concert recommendations to user %d correlation_id=%s",
		len(concerts), payload.UserID, correlationID)
	return nil
}
