package container

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"

	"github.com/Priya00300/url-shortener-devops/internal/analytics"
	"github.com/Priya00300/url-shortener-devops/internal/ingest"
	"github.com/Priya00300/url-shortener-devops/internal/messaging"
	"github.com/Priya00300/url-shortener-devops/internal/shortener"
	"github.com/Priya00300/url-shortener-devops/internal/store"
)

type Options struct {
	Port         int    `default:"8888"                  help:"Port to listen on"                                        short:"p"`
	RedisAddr    string `default:"localhost:6379"        help:"Redis server address"                                     short:"r"`
	DatabaseURL  string `default:""                      help:"PostgreSQL connection string (empty runs in-memory)"`
	BaseURL      string `default:""                      help:"Public base URL for short links (defaults to localhost)"`
	AnalyticsURL string `default:"http://localhost:8889" help:"Analytics service base URL"`
	CacheTTL     int    `default:"300"                   help:"Link cache TTL in seconds (0 disables the Redis cache)"`
	LogFormat    string `default:"console"               help:"Log format (console or json)"`
}

// connectTimeout bounds infrastructure dial and schema calls at startup.
const connectTimeout = 10 * time.Second

// clickConsumerGroup is the Redis stream consumer group shared by all
// click consumer instances.
const clickConsumerGroup = "analytics"

func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		options := do.MustInvoke[*Options](i)

		if options.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		options := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{
			Addr: options.RedisAddr,
		}), nil
	})
}

func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		options := do.MustInvoke[*Options](i)

		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		pool, err := pgxpool.New(ctx, options.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}

		if err = pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("pinging postgres: %w", err)
		}

		return pool, nil
	})
}

// RepositoryPackage provides the link repository: postgres when a
// database is configured, in-memory otherwise, wrapped in the Redis
// look-aside cache unless caching is disabled.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (shortener.Repository, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		var repo shortener.Repository

		if options.DatabaseURL == "" {
			logger.Warn("no database configured, links are stored in memory")

			repo = store.NewMemoryStore()
		} else {
			pool, err := do.Invoke[*pgxpool.Pool](i)
			if err != nil {
				return nil, err
			}

			pg := store.NewPostgresStore(pool)

			ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
			defer cancel()

			if err = pg.EnsureSchema(ctx); err != nil {
				return nil, fmt.Errorf("ensuring link schema: %w", err)
			}

			repo = pg
		}

		if options.CacheTTL > 0 {
			client := do.MustInvoke[*redis.Client](i)
			repo = store.NewRedisCacheRepository(repo, client, time.Duration(options.CacheTTL)*time.Second)
		}

		return repo, nil
	})
}

// DispatcherPackage provides the analytics client and the click event
// dispatcher that delivers through it.
func DispatcherPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*analytics.Client, error) {
		options := do.MustInvoke[*Options](i)

		return analytics.NewClient(options.AnalyticsURL), nil
	})

	do.Provide(injector, func(i *do.Injector) (*analytics.Dispatcher, error) {
		client := do.MustInvoke[*analytics.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)

		return analytics.NewDispatcher(client, logger, analytics.Config{}), nil
	})
}

// ClickStorePackage provides the click event store backing ingestion and
// statistics. Without a database, events are logged and discarded.
func ClickStorePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (ingest.ClickStore, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		if options.DatabaseURL == "" {
			logger.Warn("no database configured, click events are logged and discarded")

			return store.NewNoopClickStore(logger), nil
		}

		pool, err := do.Invoke[*pgxpool.Pool](i)
		if err != nil {
			return nil, err
		}

		clicks := store.NewClickEventStore(pool, do.MustInvoke[*redis.Client](i))

		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		if err = clicks.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensuring click schema: %w", err)
		}

		return clicks, nil
	})
}

// PublisherGroupPackage provides the Redis stream publisher the
// analytics service writes accepted click events to.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: client,
		}, messaging.NewZapLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("creating redis stream publisher: %w", err)
		}

		return messaging.NewPublisherGroup(publisher), nil
	})
}

// ConsumerGroupPackage provides the consumer group that drains the click
// event stream into the click store.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        client,
			ConsumerGroup: clickConsumerGroup,
		}, messaging.NewZapLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("creating redis stream subscriber: %w", err)
		}

		clicks, err := do.Invoke[ingest.ClickStore](i)
		if err != nil {
			return nil, err
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(
			subscriber,
			analytics.TopicClickRecorded,
			ingest.NewClickEventHandler(clicks, logger),
			logger,
		))

		return group, nil
	})
}
