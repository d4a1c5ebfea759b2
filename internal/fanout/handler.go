// Package fanout notifies users about new publications matching their
// genre preferences: one notification_request message per matched user.
package fanout

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Alexmarques11/Backstage/pkg/middleware"
	"github.com/Alexmarques11/Backstage/pkg/models"

	"github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"
)

// QueuePublisher defines the interface for direct-queue sends.
type QueuePublisher interface {
	SendToQueue(queue string, body []byte, correlationID string) error
}

// Handler processes publication.created events.
type Handler struct {
	DB        *sql.DB
	Publisher QueuePublisher
}

// NewHandler creates a new publication-event handler.
func NewHandler(db *sql.DB, pub QueuePublisher) *Handler {
	return &Handler{DB: db, Publisher: pub}
}

type matchedUser struct {
	ID    int
	Name  string
	Email string
}

// HandlePublicationCreated finds every user whose preference genres
// intersect the publication's and sends each one a notification request.
// A failed send for one user is logged and skipped; the remaining users
// still get theirs. This is looser than the user.created path on purpose.
func (h *Handler) HandlePublicationCreated(ctx context.Context, delivery amqp.Delivery) error {
	pub, err := decodePublication(delivery.Body)
	if err != nil {
		log.Printf("[Fanout] Failed to unmarshal publication.created: %v correlation_id=%s", err, delivery.CorrelationId)
		return err
	}

	log.Printf("[Fanout] Publication created: concert_id=%d title=%q genres=%v correlation_id=%s",
		pub.ConcertID, pub.Title, pub.Genres, delivery.CorrelationId)

	if len(pub.Genres) == 0 {
		log.Println("[Fanout] No genres provided for publication, skipping notification")
		return nil
	}

	users, err := h.usersByGenres(ctx, pub.Genres)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		log.Println("[Fanout] No users found with matching genre preferences")
		return nil
	}
	log.Printf("[Fanout] Found %d users with matching genres", len(users))

	correlationID := middleware.Ensure(delivery.CorrelationId)

	sent := 0
	for _, user := range users {
		msg := models.NotificationMessage{
			UserID:  user.ID,
			Type:    models.TypeNewPublication,
			Title:   "New Publication",
			Message: fmt.Sprintf("A new publication %q has been created with genres you like!", pub.Title),
			Data: models.PublicationData{
				ConcertID:          pub.ConcertID,
				ConcertTitle:       pub.Title,
				ConcertDescription: pub.Description,
				Genres:             pub.Genres,
				Location:           pub.Location,
				Date:               pub.Date,
				ImageURL:           pub.ImageURL,
			},
			CreatedAt: time.Now().UTC(),
		}

		body, err := json.Marshal(msg)
		if err != nil {
			log.Printf("[Fanout] Failed to marshal notification for user %d: %v", user.ID, err)
			continue
		}
		if err := h.Publisher.SendToQueue(models.NotificationQueue, body, correlationID); err != nil {
			log.Printf("[Fanout] Failed to send notification for user %d (%s): %v", user.ID, user.Email, err)
			continue
		}
		log.Printf("[Fanout] Notification sent for user %d (%s)", user.ID, user.Email)
		sent++
	}

	log.Printf("[Fanout] Processed publication %d, sent %d of %d notifications", pub.ConcertID, sent, len(users))
	return nil
}

// decodePublication accepts either a bare publication payload or a
// DomainEvent envelope wrapping one.
func decodePublication(body []byte) (models.Publication, error) {
	var event models.DomainEvent
	if err := json.Unmarshal(body, &event); err == nil && event.Type != "" && len(event.Data) > 0 {
		var pub models.Publication
		err := json.Unmarshal(event.Data, &pub)
		return pub, err
	}

	var pub models.Publication
	err := json.Unmarshal(body, &pub)
	return pub, err
}

func (h *Handler) usersByGenres(ctx context.Context, genres []string) ([]matchedUser, error) {
	rows, err := h.DB.QueryContext(ctx,
		`SELECT DISTINCT u.id, u.name, u.email
		 FROM users u
		 JOIN users_genres ug ON u.id = ug.user_id
		 JOIN music_genres mg ON ug.genre_id = mg.id
		 WHERE mg.name = ANY($1)`,
		pq.Array(genres),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []matchedUser
	for rows.Next() {
		var u matchedUser
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
