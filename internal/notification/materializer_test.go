package notification

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Alexmarques11/Backstage/pkg/models"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleRecommendationMaterializesOneNotification(t *testing.T) {
	store := newTestStore(t)
	mat := NewMaterializer(store)

	msg := models.RecommendationMessage{
		UserID: 9,
		Email:  "fan@example.com",
		Concerts: []models.ConcertSummary{
			{Titulo: "Rock Fest", Data: "2025-07-18", Hora: "21:00:00", Generos: []string{"Rock"}},
			{Titulo: "Indie Night", Data: "2025-07-19", Hora: "20:00:00", Generos: []string{"Rock"}},
			{Titulo: "Metal Eve", Data: "2025-07-20", Hora: "22:00:00", Generos: []string{"Rock", "Metal"}},
		},
		Timestamp: time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC),
	}
	body, _ := json.Marshal(msg)

	err := mat.HandleRecommendation(context.Background(), amqp.Delivery{Body: body, CorrelationId: "corr-r1"})
	require.NoError(t, err)

	list := store.ListForUser(9, false)
	require.Len(t, list, 1, "one recommendation message materializes exactly one notification")

	n := list[0]
	assert.Equal(t, models.TypeConcertRecommendations, n.Type)
	assert.Equal(t, "New Concert Recommendations!", n.Title)
	assert.False(t, n.IsRead)
	assert.Equal(t, msg.Timestamp, n.CreatedAt, "created_at comes from the message timestamp")
	assert.Equal(t, 3, n.Metadata["total"], "all matched concerts are carried in metadata")

	concerts, ok := n.Metadata["concerts"].([]models.ConcertSummary)
	require.True(t, ok)
	assert.Len(t, concerts, 3)
}

func TestHandleRecommendationMissingTimestamp(t *testing.T) {
	store := newTestStore(t)
	mat := NewMaterializer(store)

	body := []byte(`{"userId":9,"email":"fan@example.com","concerts":[]}`)
	before := time.Now().UTC()

	err := mat.HandleRecommendation(context.Background(), amqp.Delivery{Body: body})
	require.NoError(t, err)

	list := store.ListForUser(9, false)
	require.Len(t, list, 1)
	assert.False(t, list[0].CreatedAt.Before(before), "wall clock is used when the message has no timestamp")
}

func TestHandleRecommendationInvalidJSON(t *testing.T) {
	mat := NewMaterializer(newTestStore(t))

	err := mat.HandleRecommendation(context.Background(), amqp.Delivery{Body: []byte("{bad")})
	assert.Error(t, err)
}

func TestHandleNotificationRequest(t *testing.T) {
	store := newTestStore(t)
	mat := NewMaterializer(store)

	msg := models.NotificationMessage{
		UserID:  4,
		Type:    models.TypeNewPublication,
		Title:   "New Publication",
		Message: `A new publication "Arena Tour" has been created with genres you like!`,
		Data: models.PublicationData{
			ConcertID:    3,
			ConcertTitle: "Arena Tour",
			Genres:       []string{"Rock"},
			Location:     "Lisboa",
			Date:         "2025-10-01",
		},
		CreatedAt: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
	}
	body, _ := json.Marshal(msg)

	err := mat.HandleNotificationRequest(context.Background(), amqp.Delivery{Body: body, CorrelationId: "corr-p1"})
	require.NoError(t, err)

	list := store.ListForUser(4, false)
	require.Len(t, list, 1)

	n := list[0]
	assert.Equal(t, models.TypeNewPublication, n.Type)
	require.NotNil(t, n.RelatedID)
	assert.Equal(t, 3, *n.RelatedID)
	assert.Equal(t, "concert", n.RelatedType)
	assert.Equal(t, "Arena Tour", n.Metadata["concertTitle"])
	assert.Equal(t, msg.CreatedAt, n.CreatedAt)
}

func TestHandleNotificationRequestDefaultsType(t *testing.T) {
	store := newTestStore(t)
	mat := NewMaterializer(store)

	body := []byte(`{"userId":4,"title":"Hi","message":"there","data":{}}`)
	err := mat.HandleNotificationRequest(context.Background(), amqp.Delivery{Body: body})
	require.NoError(t, err)

	list := store.ListForUser(4, false)
	require.Len(t, list, 1)
	assert.Equal(t, models.TypeNewPublication, list[0].Type)
	assert.Nil(t, list[0].RelatedID, "zero concert id means no related id")
}
