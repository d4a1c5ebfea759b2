package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alexmarques11/Backstage/internal/fanout"
	"github.com/Alexmarques11/Backstage/pkg/config"
	"github.com/Alexmarques11/Backstage/pkg/models"
	"github.com/Alexmarques11/Backstage/pkg/postgres"
	"github.com/Alexmarques11/Backstage/pkg/rabbitmq"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[Fanout] Starting fanout-service...")

	cfg := config.LoadForService("FANOUT")

	// Connect to PostgreSQL
	db, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[Fanout] Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := postgres.RunMigrations(db, "fanout"); err != nil {
		log.Fatalf("[Fanout] Failed to run migrations: %v", err)
	}
	if err := postgres.SeedGenres(db, postgres.DefaultGenres); err != nil {
		log.Fatalf("[Fanout] Failed to seed genre catalog: %v", err)
	}

	// Connect to RabbitMQ
	rmqConn, err := rabbitmq.Connect(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("[Fanout] Failed to connect to RabbitMQ: %v", err)
	}
	defer rmqConn.Close()

	// Create publisher
	publisher, err := rabbitmq.NewPublisher(rmqConn)
	if err != nil {
		log.Fatalf("[Fanout] Failed to create publisher: %v", err)
	}
	defer publisher.Close()

	// Consume publication_created and fan out notification requests
	handler := fanout.NewHandler(db, publisher)

	consumerCfg := rabbitmq.ConsumerConfig{
		QueueName:    models.PublicationQueue,
		DLQName:      "dlq." + models.PublicationQueue,
		ConsumerName: "publication-fanout",
		Retry: rabbitmq.RetryPolicy{
			MaxAttempts: cfg.ConsumerMaxAttempts,
			RetryDelay:  cfg.ConsumerRetryDelay,
		},
		HandlerTimeout: cfg.HandlerTimeout,
	}

	if err := rabbitmq.SetupConsumer(rmqConn, consumerCfg, handler.HandlePublicationCreated); err != nil {
		log.Fatalf("[Fanout] Failed to setup consumer: %v", err)
	}

	log.Println("[Fanout] Consumer is running. Waiting for messages...")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[Fanout] Shutting down...")
}
