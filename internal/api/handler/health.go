package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Counter reports the number of stored records for one resource.
type Counter interface {
	Count(ctx context.Context, ownerID string) (int64, error)
}

// HealthHandler handles GET /health — liveness probe reporting uptime and
// per-resource record counts.
type HealthHandler struct {
	started  time.Time
	env      string
	counters map[string]Counter // keyed by plural resource name
}

func NewHealthHandler(env string, counters map[string]Counter) *HealthHandler {
	return &HealthHandler{started: time.Now(), env: env, counters: counters}
}

// Liveness confirms the process is alive.
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	records := make(map[string]int64, len(h.counters))
	var total int64
	for name, counter := range h.counters {
		n, err := counter.Count(c.Request().Context(), "")
		if err != nil {
			n = -1
		} else {
			total += n
		}
		records[name] = n
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":       "ok",
		"environment":  h.env,
		"uptime":       time.Since(h.started).Round(time.Second).String(),
		"records":      records,
		"totalRecords": total,
	})
}

// ReadinessHandler handles GET /health/ready — readiness probe checking
// MongoDB and Redis connectivity. Either dependency may be nil when the
// deployment runs without it (memory driver, cache disabled).
type ReadinessHandler struct {
	mongo *mongo.Database
	redis *redis.Client
}

func NewReadinessHandler(db *mongo.Database, rdb *redis.Client) *ReadinessHandler {
	return &ReadinessHandler{mongo: db, redis: rdb}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness declares the service ready once all configured dependencies
// respond.
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  readinessResponse
// @Failure      503  {object}  readinessResponse
// @Router       /health/ready [get]
func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	if h.mongo != nil {
		if err := h.mongo.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
			deps["mongodb"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
		} else {
			deps["mongodb"] = dependencyStatus{Status: "ok"}
		}
	}

	if h.redis != nil {
		if _, err := h.redis.Ping(ctx).Result(); err != nil {
			deps["redis"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
		} else {
			deps["redis"] = dependencyStatus{Status: "ok"}
		}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
