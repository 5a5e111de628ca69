package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shoprates/ratings-review-api/config"
	"github.com/shoprates/ratings-review-api/internal/application"
	pginfra "github.com/shoprates/ratings-review-api/internal/infrastructure/postgres"
	"github.com/shoprates/ratings-review-api/pkg/events"
	"github.com/shoprates/ratings-review-api/pkg/helpers"
)

// Consumes ReviewCreated events and refreshes the affected product's
// search document so listings and search stay in step with new reviews.
func main() {
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-indexer", cfg.Env)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQReviewQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if len(cfg.ESAddrs()) == 0 {
		log.Fatal("Elasticsearch not configured")
	}

	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		log.Fatalf("elasticsearch: %v", err)
	}

	products := application.NewProductService(
		pginfra.NewProductRepository(pool),
		pginfra.NewReviewRepository(pool),
		es,
		cfg.ESProductsIndex,
		logger,
	)

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	if _, err := ch.QueueDeclare(cfg.RabbitMQReviewQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQReviewQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var evt events.ReviewCreated
			if err := json.Unmarshal(msg.Body, &evt); err != nil {
				logger.WithError(err).Warn("bad message, dropping")
				_ = msg.Nack(false, false)
				continue
			}
			if evt.ProductID == "" {
				logger.Warn("event missing product_id, dropping")
				_ = msg.Nack(false, false)
				continue
			}

			c, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := products.Index(c, evt.ProductID)
			cancel()
			if err != nil {
				logger.WithError(err).WithField("product_id", evt.ProductID).Warn("index failed, requeueing")
				_ = msg.Nack(false, true)
				continue
			}
			logger.WithField("product_id", evt.ProductID).Debug("product reindexed")
			_ = msg.Ack(false)
		}
		close(done)
	}()

	logger.Infof("indexer worker listening on queue=%s", cfg.RabbitMQReviewQueue)
	<-stop
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
