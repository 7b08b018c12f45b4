// The consumer binary persists accepted telemetry events. It is the only
// writer on the ingestion path and can be scaled horizontally within one
// consumer group.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"iotstream/cmd"
	"iotstream/internal/adapters/out/kafka"
	"iotstream/internal/adapters/out/postgres/readingrepo"

	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config := cmd.LoadConfig()

	db, err := gorm.Open(gorm_postgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err = db.AutoMigrate(&readingrepo.ReadingDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	consumer := kafka.NewConsumer(
		config.KafkaBrokers,
		config.KafkaTelemetryTopic,
		config.KafkaConsumerGroup,
		readingrepo.NewGormReadingRepository(db),
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = consumer.Run(ctx); err != nil {
		logger.Error("Consumer stopped with error", "error", err)
	}
	if err = consumer.Close(); err != nil {
		logger.Error("Consumer close failed", "error", err)
	}
}
