package queries_test

import (
	"context"
	"time"

	"iotstream/internal/adapters/out/postgres/readingrepo"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newTestDatabase starts a disposable postgres container and returns a
// migrated connection. Callers terminate the container in TearDownSuite.
func newTestDatabase(ctx context.Context) (*postgres.PostgresContainer, *gorm.DB, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, nil, err
	}

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return container, nil, err
	}

	if err = db.AutoMigrate(&readingrepo.ReadingDTO{}); err != nil {
		return container, nil, err
	}

	return container, db, nil
}

// seedReading inserts one reading row with an explicit timestamp.
func seedReading(db *gorm.DB, deviceID string, value float64, unit string, timestamp time.Time) error {
	dto := readingrepo.ReadingDTO{
		DeviceID:     deviceID,
		ReadingValue: value,
		ReadingType:  "temperature",
		Unit:         unit,
		Timestamp:    timestamp,
	}
	return db.Create(&dto).Error
}
