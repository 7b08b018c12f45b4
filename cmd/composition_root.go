package cmd

import (
	"log/slog"
	"time"

	httpadapter "iotstream/internal/adapters/in/http"
	"iotstream/internal/adapters/out/devicegw"
	"iotstream/internal/adapters/out/kafka"
	"iotstream/internal/adapters/out/postgres/readingrepo"
	"iotstream/internal/core/application/usecases/commands"
	"iotstream/internal/core/application/usecases/queries"
	"iotstream/internal/jobs"
	"iotstream/internal/pkg/ratelimit"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// deviceFetchLatency approximates one device round-trip in the simulated
// gateway.
const deviceFetchLatency = 100 * time.Millisecond

// CompositionRoot wires adapters and use cases together. All shared,
// stateful components (producer, job manager, rate limiter) are created once
// here and handed out by reference.
type CompositionRoot struct {
	config Config
	gormDB *gorm.DB
	logger *slog.Logger

	producer   *kafka.Producer
	jobManager *jobs.Manager
	limiter    *ratelimit.Limiter
}

// NewCompositionRoot builds the object graph for the API process.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	gateway := devicegw.NewSimulatedGateway(deviceFetchLatency)

	return &CompositionRoot{
		config: config,
		gormDB: gormDB,
		logger: logger,
		producer: kafka.NewProducer(config.KafkaBrokers, logger),
		jobManager: jobs.NewManager(
			jobs.NewRegistry(), gateway, deviceFetchLatency, logger),
		limiter: ratelimit.NewLimiter(
			redis.NewClient(&redis.Options{
				Addr:     config.RedisAddr,
				Password: config.RedisPassword,
			}),
			config.RateLimitMaxRequests,
			time.Duration(config.RateLimitWindowSecs)*time.Second,
			logger,
		),
	}
}

// Producer returns the shared broker producer.
func (c *CompositionRoot) Producer() *kafka.Producer {
	return c.producer
}

// JobManager returns the shared polling-job manager.
func (c *CompositionRoot) JobManager() *jobs.Manager {
	return c.jobManager
}

// RateLimiter returns the shared request limiter.
func (c *CompositionRoot) RateLimiter() *ratelimit.Limiter {
	return c.limiter
}

// CreateReadingRepository creates the persistence adapter for readings.
func (c *CompositionRoot) CreateReadingRepository() *readingrepo.GormReadingRepository {
	return readingrepo.NewGormReadingRepository(c.gormDB)
}

// CreateDeviceGaugeJob creates the cron job refreshing the devices gauge.
func (c *CompositionRoot) CreateDeviceGaugeJob() *jobs.DeviceGaugeJob {
	return jobs.NewDeviceGaugeJob(c.CreateGetDevicesQueryHandler(), c.logger)
}

// CreateHTTPServer assembles the inbound HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	keys := make(map[string]httpadapter.Role, len(c.config.APIKeys))
	for key, roleName := range c.config.APIKeys {
		keys[key] = httpadapter.ParseRole(roleName)
	}

	return httpadapter.NewServer(
		c.CreateIngestReadingCommandHandler(),
		c.CreateUpdateReadingCommandHandler(),
		c.CreateDeleteReadingCommandHandler(),
		c.CreateGetReadingsQueryHandler(),
		c.CreateGetReadingByIDQueryHandler(),
		c.CreateGetLatestReadingQueryHandler(),
		c.CreateGetRollingAverageQueryHandler(),
		c.CreateGetDevicesQueryHandler(),
		c.jobManager,
		httpadapter.NewAPIKeyAuth(keys),
	)
}

func (c *CompositionRoot) CreateIngestReadingCommandHandler() commands.IngestReadingCommandHandler {
	return commands.NewIngestReadingCommandHandler(c.producer, c.config.KafkaTelemetryTopic)
}

func (c *CompositionRoot) CreateUpdateReadingCommandHandler() commands.UpdateReadingCommandHandler {
	return commands.NewUpdateReadingCommandHandler(c.CreateReadingRepository())
}

func (c *CompositionRoot) CreateDeleteReadingCommandHandler() commands.DeleteReadingCommandHandler {
	return commands.NewDeleteReadingCommandHandler(c.CreateReadingRepository())
}

func (c *CompositionRoot) CreateGetReadingsQueryHandler() queries.GetReadingsQueryHandler {
	return queries.NewGetReadingsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetReadingByIDQueryHandler() queries.GetReadingByIDQueryHandler {
	return queries.NewGetReadingByIDQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLatestReadingQueryHandler() queries.GetLatestReadingQueryHandler {
	return queries.NewGetLatestReadingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRollingAverageQueryHandler() queries.GetRollingAverageQueryHandler {
	return queries.NewGetRollingAverageQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDevicesQueryHandler() queries.GetDevicesQueryHandler {
	return queries.NewGetDevicesQueryHandler(c.gormDB)
}
