package container

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"

	"github.com/Priya00300/url-shortener-devops/internal/analytics"
	"github.com/Priya00300/url-shortener-devops/internal/handlers"
	"github.com/Priya00300/url-shortener-devops/internal/health"
	"github.com/Priya00300/url-shortener-devops/internal/ingest"
	"github.com/Priya00300/url-shortener-devops/internal/messaging"
	"github.com/Priya00300/url-shortener-devops/internal/middleware"
	"github.com/Priya00300/url-shortener-devops/internal/shortener"
)

// HTTPPackage provides the shortener service's router and API. Invoking
// the API wires the domain services and registers every route.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)

		repo, err := do.Invoke[shortener.Repository](i)
		if err != nil {
			return nil, err
		}

		dispatcher, err := do.Invoke[*analytics.Dispatcher](i)
		if err != nil {
			return nil, err
		}

		space, err := shortener.NewCodeSpace()
		if err != nil {
			return nil, err
		}

		allocator := shortener.NewAllocator(space, repo, logger)
		service := shortener.NewService(allocator, repo, logger)
		resolver := shortener.NewResolver(repo, dispatcher.Dispatch, logger)

		statsClient := do.MustInvoke[*analytics.Client](i)

		baseURL := options.BaseURL
		if baseURL == "" {
			baseURL = fmt.Sprintf("http://localhost:%d", options.Port)
		}

		api := humachi.New(router, huma.DefaultConfig("URL Shortener", "1.0.0"))
		api.UseMiddleware(middleware.RequestMeta(api))

		handlers.RegisterRoutes(api, handlers.NewLinkHandler(service, resolver, statsClient, baseURL, logger))

		checks, err := newHealthHandler(i, options)
		if err != nil {
			return nil, err
		}
		checks.Add("analytics", health.NewProbeChecker(statsClient.Healthy))
		health.RegisterRoutes(api, checks)

		router.Handle("/metrics", promhttp.Handler())

		return api, nil
	})
}

// IngestHTTPPackage provides the analytics service's router and API:
// click ingestion, statistics, and health.
func IngestHTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)

		group, err := do.Invoke[*messaging.PublisherGroup](i)
		if err != nil {
			return nil, err
		}

		clicks, err := do.Invoke[ingest.ClickStore](i)
		if err != nil {
			return nil, err
		}

		publish := messaging.NewPublishFunc[analytics.ClickEvent](group.Publisher(), analytics.TopicClickRecorded)

		api := humachi.New(router, huma.DefaultConfig("Click Analytics", "1.0.0"))
		ingest.RegisterRoutes(api, ingest.NewHandler(publish, clicks, logger))

		checks, err := newHealthHandler(i, options)
		if err != nil {
			return nil, err
		}
		health.RegisterRoutes(api, checks)

		router.Handle("/metrics", promhttp.Handler())

		return api, nil
	})
}

// newHealthHandler builds the health checks every service shares: redis
// always, postgres only when a database is configured.
func newHealthHandler(i *do.Injector, options *Options) (*health.Handler, error) {
	h := health.NewHandler()
	h.Add("redis", health.NewRedisChecker(do.MustInvoke[*redis.Client](i)))

	if options.DatabaseURL != "" {
		pool, err := do.Invoke[*pgxpool.Pool](i)
		if err != nil {
			return nil, err
		}

		h.Add("postgres", health.NewPostgresChecker(pool))
	}

	return h, nil
}
