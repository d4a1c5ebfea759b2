package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alexmarques11/Backstage/internal/notification"
	"github.com/Alexmarques11/Backstage/pkg/cache"
	"github.com/Alexmarques11/Backstage/pkg/config"
	"github.com/Alexmarques11/Backstage/pkg/models"
	"github.com/Alexmarques11/Backstage/pkg/rabbitmq"

	_ "github.com/Alexmarques11/Backstage/docs"
)

// @title           Backstage Notification API
// @version         1.0
// @description     Notification service materializing broker messages into a TTL cache, with a REST API for listing and managing per-user notifications.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[Notifications] Starting notification-service...")

	cfg := config.Load()

	// Notification cache (30-day TTL, hourly sweep by default)
	notificationCache := cache.New(cfg.CacheTTL, cfg.CacheSweepInterval)
	defer notificationCache.Close()
	store := notification.NewStore(notificationCache)

	// Connect to RabbitMQ
	rmqConn, err := rabbitmq.Connect(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("[Notifications] Failed to connect to RabbitMQ: %v", err)
	}
	defer rmqConn.Close()

	materializer := notification.NewMaterializer(store)

	retry := rabbitmq.RetryPolicy{
		MaxAttempts: cfg.ConsumerMaxAttempts,
		RetryDelay:  cfg.ConsumerRetryDelay,
	}

	// Concert recommendations from the concerts exchange
	recommendationsCfg := rabbitmq.ConsumerConfig{
		QueueName:      models.RecommendationsQueue,
		DLQName:        "dlq." + models.RecommendationsQueue,
		Exchange:       models.ConcertsExchange,
		RoutingKeys:    []string{models.RecommendedRoutingKey},
		ConsumerName:   "recommendations-consumer",
		Retry:          retry,
		HandlerTimeout: cfg.HandlerTimeout,
	}
	if err := rabbitmq.SetupConsumer(rmqConn, recommendationsCfg, materializer.HandleRecommendation); err != nil {
		log.Fatalf("[Notifications] Failed to setup recommendations consumer: %v", err)
	}

	// Publication notification requests from the direct queue
	requestsCfg := rabbitmq.ConsumerConfig{
		QueueName:      models.NotificationQueue,
		DLQName:        "dlq." + models.NotificationQueue,
		ConsumerName:   "notification-request-consumer",
		Retry:          retry,
		HandlerTimeout: cfg.HandlerTimeout,
	}
	if err := rabbitmq.SetupConsumer(rmqConn, requestsCfg, materializer.HandleNotificationRequest); err != nil {
		log.Fatalf("[Notifications] Failed to setup notification-request consumer: %v", err)
	}

	// HTTP API with graceful shutdown
	router := notification.NewRouter(notification.NewHandler(store))
	srv := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: router,
	}

	go func() {
		log.Printf("[Notifications] Listening on port %s", cfg.APIPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[Notifications] Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[Notifications] Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[Notifications] Server forced to shutdown: %v", err)
	}
	log.Println("[Notifications] Server exited gracefully")
}
