// Package http provides the inbound HTTP adapter: route registration,
// request DTOs, API-key auth and the middleware stack.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"iotstream/internal/core/application/usecases/commands"
	"iotstream/internal/core/application/usecases/queries"
	"iotstream/internal/core/ports"
	"iotstream/internal/jobs"
	"iotstream/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wires HTTP requests to application use cases. It coordinates
// between the echo handlers, the command and query handlers, and the
// polling-job manager.
type Server struct {
	// Command handlers
	ingestReadingHandler commands.IngestReadingCommandHandler
	updateReadingHandler commands.UpdateReadingCommandHandler
	deleteReadingHandler commands.DeleteReadingCommandHandler

	// Query handlers
	getReadingsHandler       queries.GetReadingsQueryHandler
	getReadingByIDHandler    queries.GetReadingByIDQueryHandler
	getLatestReadingHandler  queries.GetLatestReadingQueryHandler
	getRollingAverageHandler queries.GetRollingAverageQueryHandler
	getDevicesHandler        queries.GetDevicesQueryHandler

	jobManager *jobs.Manager
	auth       *APIKeyAuth
}

// NewServer creates an HTTP server with the required command and query
// handlers and the polling-job manager.
func NewServer(
	ingestReadingHandler commands.IngestReadingCommandHandler,
	updateReadingHandler commands.UpdateReadingCommandHandler,
	deleteReadingHandler commands.DeleteReadingCommandHandler,
	getReadingsHandler queries.GetReadingsQueryHandler,
	getReadingByIDHandler queries.GetReadingByIDQueryHandler,
	getLatestReadingHandler queries.GetLatestReadingQueryHandler,
	getRollingAverageHandler queries.GetRollingAverageQueryHandler,
	getDevicesHandler queries.GetDevicesQueryHandler,
	jobManager *jobs.Manager,
	auth *APIKeyAuth,
) *Server {
	return &Server{
		ingestReadingHandler:     ingestReadingHandler,
		updateReadingHandler:     updateReadingHandler,
		deleteReadingHandler:     deleteReadingHandler,
		getReadingsHandler:       getReadingsHandler,
		getReadingByIDHandler:    getReadingByIDHandler,
		getLatestReadingHandler:  getLatestReadingHandler,
		getRollingAverageHandler: getRollingAverageHandler,
		getDevicesHandler:        getDevicesHandler,
		jobManager:               jobManager,
		auth:                     auth,
	}
}

// RegisterRoutes attaches all endpoints to e. Probe and metrics endpoints
// live at the root and bypass auth; everything else is under /telemetry and
// requires an API key.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/ready", s.Ready)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	g := e.Group("/telemetry")

	g.POST("/ingest", s.IngestReading, s.auth.Require(RoleWrite))

	g.GET("/readings", s.GetReadings, s.auth.Require(RoleRead))
	g.GET("/readings/:id", s.GetReadingByID, s.auth.Require(RoleRead))
	g.PATCH("/readings/:id", s.UpdateReading, s.auth.Require(RoleWrite))
	g.DELETE("/readings/:id", s.DeleteReading, s.auth.Require(RoleAdmin))

	g.GET("/devices", s.GetDevices, s.auth.Require(RoleRead))
	g.GET("/devices/:device_id/latest", s.GetLatestReading, s.auth.Require(RoleRead))
	g.GET("/devices/:device_id/average", s.GetRollingAverage, s.auth.Require(RoleRead))

	// Polling jobs spawn background work; the whole surface is admin-only.
	g.POST("/poll", s.CreatePollingJob, s.auth.Require(RoleAdmin))
	g.GET("/poll", s.ListPollingJobs, s.auth.Require(RoleAdmin))
	g.GET("/poll/:job_id", s.GetPollingJob, s.auth.Require(RoleAdmin))
	g.DELETE("/poll/:job_id", s.DeletePollingJob, s.auth.Require(RoleAdmin))
	g.POST("/delete-all-polling-jobs", s.DeleteAllPollingJobs, s.auth.Require(RoleAdmin))
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// Ready handles GET /ready - readiness probe.
func (s *Server) Ready(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

// IngestReading handles POST /telemetry/ingest - accepts one reading into
// the stream. Responds 202: the reading is on the broker, not yet queryable.
func (s *Server) IngestReading(c echo.Context) error {
	var req IngestRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewIngestReadingCommand(
		req.DeviceID, req.ReadingValue, req.ReadingType, req.Unit, req.BatteryLevel, req.RawData)
	if err != nil {
		return badRequest(c, "Invalid reading: "+err.Error())
	}

	eventID, err := s.ingestReadingHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return internalError(c, "Failed to accept reading")
	}

	return c.JSON(http.StatusAccepted, IngestResponse{Status: "accepted", EventID: eventID})
}

// GetReadings handles GET /telemetry/readings - paged reading history,
// newest first, optionally filtered by device_id.
func (s *Server) GetReadings(c echo.Context) error {
	skip, err := intQueryParam(c, "skip", 0)
	if err != nil {
		return badRequest(c, "Invalid skip parameter")
	}
	limit, err := intQueryParam(c, "limit", 0)
	if err != nil {
		return badRequest(c, "Invalid limit parameter")
	}

	query, err := queries.NewGetReadingsQuery(skip, limit, c.QueryParam("device_id"))
	if err != nil {
		return badRequest(c, "Invalid page: "+err.Error())
	}

	readings, err := s.getReadingsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return internalError(c, "Failed to retrieve readings")
	}

	response := make([]ReadingResponse, len(readings))
	for i, reading := range readings {
		response[i] = toReadingResponse(reading)
	}
	return c.JSON(http.StatusOK, response)
}

// GetReadingByID handles GET /telemetry/readings/:id.
func (s *Server) GetReadingByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid reading id")
	}

	query, err := queries.NewGetReadingByIDQuery(id)
	if err != nil {
		return badRequest(c, "Invalid reading id")
	}

	reading, err := s.getReadingByIDHandler.Handle(c.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(c, "Reading not found")
		}
		return internalError(c, "Failed to retrieve reading")
	}

	return c.JSON(http.StatusOK, toReadingResponse(*reading))
}

// UpdateReading handles PATCH /telemetry/readings/:id - partial update.
func (s *Server) UpdateReading(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid reading id")
	}

	var req UpdateReadingRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewUpdateReadingCommand(id, patchFromRequest(req))
	if err != nil {
		return badRequest(c, "Invalid update: "+err.Error())
	}

	updated, err := s.updateReadingHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(c, "Reading not found")
		}
		return internalError(c, "Failed to update reading")
	}

	return c.JSON(http.StatusOK, ReadingResponse{
		ID:           updated.ID,
		DeviceID:     updated.DeviceID,
		ReadingValue: updated.ReadingValue,
		ReadingType:  updated.ReadingType,
		Unit:         updated.Unit,
		BatteryLevel: updated.BatteryLevel,
		RawData:      updated.RawData,
		Timestamp:    updated.Timestamp,
	})
}

// DeleteReading handles DELETE /telemetry/readings/:id.
func (s *Server) DeleteReading(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid reading id")
	}

	cmd, err := commands.NewDeleteReadingCommand(id)
	if err != nil {
		return badRequest(c, "Invalid reading id")
	}

	if err = s.deleteReadingHandler.Handle(c.Request().Context(), cmd); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(c, "Reading not found")
		}
		return internalError(c, "Failed to delete reading")
	}

	return c.NoContent(http.StatusNoContent)
}

// GetDevices handles GET /telemetry/devices - known device overview.
func (s *Server) GetDevices(c echo.Context) error {
	devices, err := s.getDevicesHandler.Handle(c.Request().Context(), queries.NewGetDevicesQuery())
	if err != nil {
		return internalError(c, "Failed to retrieve devices")
	}

	response := make([]DeviceResponse, len(devices))
	for i, device := range devices {
		response[i] = DeviceResponse{
			DeviceID:     device.DeviceID,
			ReadingCount: device.ReadingCount,
			LastSeen:     device.LastSeen,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// GetLatestReading handles GET /telemetry/devices/:device_id/latest.
func (s *Server) GetLatestReading(c echo.Context) error {
	query, err := queries.NewGetLatestReadingQuery(c.Param("device_id"), c.QueryParam("unit"))
	if err != nil {
		return badRequest(c, "Invalid device id")
	}

	reading, err := s.getLatestReadingHandler.Handle(c.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(c, "No readings for device")
		}
		return internalError(c, "Failed to retrieve latest reading")
	}

	return c.JSON(http.StatusOK, toReadingResponse(*reading))
}

// GetRollingAverage handles GET /telemetry/devices/:device_id/average.
func (s *Server) GetRollingAverage(c echo.Context) error {
	windowMinutes, err := intQueryParam(c, "window_minutes", 15)
	if err != nil {
		return badRequest(c, "Invalid window_minutes parameter")
	}

	query, err := queries.NewGetRollingAverageQuery(c.Param("device_id"), windowMinutes)
	if err != nil {
		return badRequest(c, "Invalid window: "+err.Error())
	}

	average, err := s.getRollingAverageHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return internalError(c, "Failed to compute average")
	}

	return c.JSON(http.StatusOK, RollingAverageResponse{
		DeviceID:      average.DeviceID,
		WindowMinutes: average.WindowMinutes,
		Average:       average.Average,
		SampleCount:   average.SampleCount,
	})
}

// CreatePollingJob handles POST /telemetry/poll - registers a recurring
// polling job and starts its scheduler loop.
func (s *Server) CreatePollingJob(c echo.Context) error {
	var req CreatePollRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	job, err := s.jobManager.Create(req.DeviceIDs, req.IntervalSeconds)
	if err != nil {
		return badRequest(c, "Invalid polling job: "+err.Error())
	}

	return c.JSON(http.StatusCreated, toPollJobResponse(job))
}

// ListPollingJobs handles GET /telemetry/poll.
func (s *Server) ListPollingJobs(c echo.Context) error {
	jobsSnapshot := s.jobManager.List()

	response := make([]PollJobResponse, len(jobsSnapshot))
	for i, job := range jobsSnapshot {
		response[i] = toPollJobResponse(job)
	}
	return c.JSON(http.StatusOK, response)
}

// GetPollingJob handles GET /telemetry/poll/:job_id.
func (s *Server) GetPollingJob(c echo.Context) error {
	job, err := s.jobManager.Get(c.Param("job_id"))
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(c, "Polling job not found")
		}
		return internalError(c, "Failed to retrieve polling job")
	}

	return c.JSON(http.StatusOK, toPollJobResponse(job))
}

// DeletePollingJob handles DELETE /telemetry/poll/:job_id - stops the job's
// scheduler loop and removes it.
func (s *Server) DeletePollingJob(c echo.Context) error {
	if err := s.jobManager.Delete(c.Param("job_id")); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(c, "Polling job not found")
		}
		return internalError(c, "Failed to delete polling job")
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteAllPollingJobs handles POST /telemetry/delete-all-polling-jobs.
func (s *Server) DeleteAllPollingJobs(c echo.Context) error {
	deleted := s.jobManager.DeleteAll()
	return c.JSON(http.StatusOK, DeleteAllJobsResponse{Deleted: deleted})
}

func patchFromRequest(req UpdateReadingRequest) ports.ReadingPatch {
	return ports.ReadingPatch{
		DeviceID:     req.DeviceID,
		ReadingValue: req.ReadingValue,
		ReadingType:  req.ReadingType,
		Unit:         req.Unit,
		BatteryLevel: req.BatteryLevel,
		RawData:      req.RawData,
	}
}

func intQueryParam(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Code: http.StatusBadRequest, Message: message})
}

func notFound(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{Code: http.StatusNotFound, Message: message})
}

func internalError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: http.StatusInternalServerError, Message: message})
}
