package health

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Checker defines the interface for checking one dependency.
type Checker interface {
	Ping(ctx context.Context) error
}

// RedisChecker adapts redis.Client to the Checker interface.
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a new Redis health checker.
func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

// Ping checks Redis connectivity.
func (r *RedisChecker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// PostgresChecker adapts pgxpool.Pool to the Checker interface.
type PostgresChecker struct {
	pool *pgxpool.Pool
}

// NewPostgresChecker creates a new PostgreSQL health checker.
func NewPostgresChecker(pool *pgxpool.Pool) *PostgresChecker {
	return &PostgresChecker{pool: pool}
}

// Ping checks PostgreSQL connectivity.
func (p *PostgresChecker) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// ErrProbeFailed reports a boolean probe that answered unhealthy.
var ErrProbeFailed = errors.New("probe failed")

// ProbeChecker adapts a boolean health probe, such as the analytics
// client's health endpoint, to the Checker interface.
type ProbeChecker struct {
	probe func(ctx context.Context) bool
}

// NewProbeChecker creates a checker from a boolean probe.
func NewProbeChecker(probe func(ctx context.Context) bool) *ProbeChecker {
	return &ProbeChecker{probe: probe}
}

// Ping runs the probe.
func (p *ProbeChecker) Ping(ctx context.Context) error {
	if !p.probe(ctx) {
		return ErrProbeFailed
	}

	return nil
}

// Handler reports the service status and that of its dependencies.
type Handler struct {
	deps []dependency
}

type dependency struct {
	name    string
	checker Checker
}

// NewHandler creates an empty health handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Add registers a named dependency to include in health reports.
func (h *Handler) Add(name string, checker Checker) {
	h.deps = append(h.deps, dependency{name: name, checker: checker})
}

// Response is the response for the health check endpoint.
type Response struct {
	Body struct {
		Status       string            `json:"status"`
		Dependencies map[string]string `json:"dependencies,omitempty"`
	}
}

// Check pings every registered dependency. The service reports ok only
// when all of them answer.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = "ok"

	if len(h.deps) > 0 {
		resp.Body.Dependencies = make(map[string]string, len(h.deps))
	}

	for _, dep := range h.deps {
		if err := dep.checker.Ping(ctx); err != nil {
			resp.Body.Dependencies[dep.name] = "unhealthy"
			resp.Body.Status = "degraded"
		} else {
			resp.Body.Dependencies[dep.name] = "healthy"
		}
	}

	return resp, nil
}

// RegisterRoutes registers the health check route.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Get(api, "/health", h.Check)
}
