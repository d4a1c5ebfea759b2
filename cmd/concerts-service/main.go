package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alexmarques11/Backstage/internal/recommend"
	"github.com/Alexmarques11/Backstage/pkg/config"
	"github.com/Alexmarques11/Backstage/pkg/models"
	"github.com/Alexmarques11/Backstage/pkg/postgres"
	"github.com/Alexmarques11/Backstage/pkg/rabbitmq"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[Concerts] Starting concerts-service...")

	cfg := config.LoadForService("CONCERTS")

	// Connect to PostgreSQL
	db, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[Concerts] Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := postgres.RunMigrations(db, "concerts"); err != nil {
		log.Fatalf("[Concerts] Failed to run migrations: %v", err)
	}
	if err := postgres.SeedGenres(db, postgres.DefaultGenres); err != nil {
		log.Fatalf("[Concerts] Failed to seed genre catalog: %v", err)
	}

	// Connect to RabbitMQ
	rmqConn, err := rabbitmq.Connect(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("[Concerts] Failed to connect to RabbitMQ: %v", err)
	}
	defer rmqConn.Close()

	// Create publisher
	publisher, err := rabbitmq.NewPublisher(rmqConn)
	if err != nil {
		log.Fatalf("[Concerts] Failed to create publisher: %v", err)
	}
	defer publisher.Close()

	// Consume user.created and publish recommendations
	handler := recommend.NewHandler(db, publisher)

	consumerCfg := rabbitmq.ConsumerConfig{
		QueueName:    models.UserCreatedQueue,
		DLQName:      "dlq." + models.UserCreatedQueue,
		Exchange:     models.UsersExchange,
		RoutingKeys:  []string{string(models.EventUserCreated)},
		ConsumerName: "concerts-recommender",
		Retry: rabbitmq.RetryPolicy{
			MaxAttempts: cfg.ConsumerMaxAttempts,
			RetryDelay:  cfg.ConsumerRetryDelay,
		},
		HandlerTimeout: cfg.HandlerTimeout,
	}

	if err := rabbitmq.SetupConsumer(rmqConn, consumerCfg, handler.HandleUserCreated); err != nil {
		log.Fatalf("[Concerts] Failed to setup consumer: %v", err)
	}

	log.Println("[Concerts] Consumer is running. Waiting for messages...")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[Concerts] Shutting down...")
}
