package queries_test

import (
	"context"
	"testing"
	"time"

	"iotstream/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type GetDevicesQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetDevicesQueryHandler
	average   queries.GetRollingAverageQueryHandler
}

func (suite *GetDevicesQueryHandlerTestSuite) SetupSuite() {
	container, db, err := newTestDatabase(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db

	suite.handler = queries.NewGetDevicesQueryHandler(db)
	suite.average = queries.NewGetRollingAverageQueryHandler(db)
}

func (suite *GetDevicesQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetDevicesQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE sensor_readings RESTART IDENTITY").Error
	suite.Require().NoError(err)
}

func (suite *GetDevicesQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetDevicesQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetDevicesQueryHandlerTestSuite) TestHandle_GroupsByDeviceOrderedByID() {
	base := time.Now().UTC().Truncate(time.Second)
	suite.Require().NoError(seedReading(suite.db, "thermo-1", 20.0, "C", base.Add(-time.Minute)))
	suite.Require().NoError(seedReading(suite.db, "thermo-1", 21.0, "C", base))
	suite.Require().NoError(seedReading(suite.db, "hygro-1", 55.0, "%", base.Add(-time.Hour)))

	query := queries.NewGetDevicesQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Equal("hygro-1", result[0].DeviceID)
	suite.Equal(int64(1), result[0].ReadingCount)

	suite.Equal("thermo-1", result[1].DeviceID)
	suite.Equal(int64(2), result[1].ReadingCount)
	suite.WithinDuration(base, result[1].LastSeen, time.Second)
}

func (suite *GetDevicesQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetDevicesQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetDevicesQuery constructor")
}

func (suite *GetDevicesQueryHandlerTestSuite) TestRollingAverage_AveragesOnlyWindowedReadings() {
	now := time.Now().UTC()
	suite.Require().NoError(seedReading(suite.db, "thermo-1", 20.0, "C", now.Add(-time.Minute)))
	suite.Require().NoError(seedReading(suite.db, "thermo-1", 22.0, "C", now.Add(-2*time.Minute)))
	// Outside the 15 minute window, must not contribute.
	suite.Require().NoError(seedReading(suite.db, "thermo-1", 100.0, "C", now.Add(-time.Hour)))
	// Other device, must not contribute.
	suite.Require().NoError(seedReading(suite.db, "hygro-1", 55.0, "%", now))

	query, err := queries.NewGetRollingAverageQuery("thermo-1", 15)
	suite.Require().NoError(err)

	result, err := suite.average.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal("thermo-1", result.DeviceID)
	suite.Equal(15, result.WindowMinutes)
	suite.Equal(int64(2), result.SampleCount)
	suite.InDelta(21.0, result.Average, 0.0001)
}

func (suite *GetDevicesQueryHandlerTestSuite) TestRollingAverage_NoSamples_ReturnsZeroes() {
	query, err := queries.NewGetRollingAverageQuery("ghost-device", 15)
	suite.Require().NoError(err)

	result, err := suite.average.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Zero(result.SampleCount)
	suite.Zero(result.Average)
}

func TestGetDevicesQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetDevicesQueryHandlerTestSuite))
}
