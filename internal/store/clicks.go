package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Priya00300/url-shortener-devops/internal/analytics"
	"github.com/Priya00300/url-shortener-devops/internal/ingest"
)

// dailyCounterTTL keeps the per-day click counters around for the default
// stats window.
const dailyCounterTTL = 14 * 24 * time.Hour

// ClickEventStore persists click events in PostgreSQL and keeps per-day
// counters in Redis for the daily stats breakdown.
type ClickEventStore struct {
	pool   *pgxpool.Pool
	client *redis.Client
}

// NewClickEventStore creates the PostgreSQL and Redis backed click store.
func NewClickEventStore(pool *pgxpool.Pool, client *redis.Client) *ClickEventStore {
	return &ClickEventStore{pool: pool, client: client}
}

// EnsureSchema creates the click_events table when it does not exist yet.
func (s *ClickEventStore) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS click_events (
			event_id        UUID PRIMARY KEY,
			code            TEXT NOT NULL,
			occurred_at     TIMESTAMPTZ NOT NULL,
			user_agent      TEXT NOT NULL DEFAULT '',
			referer         TEXT NOT NULL DEFAULT '',
			client_ip       TEXT NOT NULL DEFAULT '',
			country_hint    TEXT NOT NULL DEFAULT '',
			accept_language TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS click_events_code_idx
			ON click_events (code, occurred_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}

// RecordClick inserts the event and bumps its per-day counter. Inserting
// the same event ID twice is a no-op, so redelivered messages do not
// inflate the counters.
func (s *ClickEventStore) RecordClick(ctx context.Context, event *analytics.ClickEvent) error {
	query := `
		INSERT INTO click_events (event_id, code, occurred_at, user_agent, referer, client_ip, country_hint, accept_language)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (event_id) DO NOTHING
	`

	tag, err := s.pool.Exec(ctx, query,
		event.EventID,
		event.Code,
		event.OccurredAt,
		event.UserAgent,
		event.Referer,
		event.ClientIP,
		event.CountryHint,
		event.AcceptLanguage,
	)
	if err != nil {
		return err
	}

	// Redelivered duplicate: the counters were bumped the first time.
	if tag.RowsAffected() == 0 {
		return nil
	}

	day := event.OccurredAt.UTC().Format("2006-01-02")
	key := s.dailyKey(event.Code, day)

	pipe := s.client.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, dailyCounterTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("incrementing daily counter for %s: %w", event.Code, err)
	}

	return nil
}

// Stats aggregates totals from PostgreSQL and the daily breakdown from
// the Redis counters. Days without recorded clicks are omitted from the
// breakdown.
func (s *ClickEventStore) Stats(ctx context.Context, code string, days int) (*analytics.LinkStats, error) {
	query := `
		SELECT COUNT(*), MAX(occurred_at)
		FROM click_events
		WHERE code = $1
	`

	stats := &analytics.LinkStats{Code: code}

	var last *time.Time

	if err := s.pool.QueryRow(ctx, query, code).Scan(&stats.TotalClicks, &last); err != nil {
		return nil, err
	}

	stats.LastClickAt = last

	daily, err := s.dailyBreakdown(ctx, code, days)
	if err != nil {
		return nil, err
	}

	stats.Daily = daily

	return stats, nil
}

func (s *ClickEventStore) dailyBreakdown(ctx context.Context, code string, days int) ([]analytics.DailyClicks, error) {
	if days <= 0 {
		return nil, nil
	}

	now := time.Now().UTC()
	dates := make([]string, 0, days)
	keys := make([]string, 0, days)

	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		dates = append(dates, day)
		keys = append(keys, s.dailyKey(code, day))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	daily := make([]analytics.DailyClicks, 0, len(values))

	for i, value := range values {
		str, ok := value.(string)
		if !ok {
			continue
		}

		clicks, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			continue
		}

		daily = append(daily, analytics.DailyClicks{Date: dates[i], Clicks: clicks})
	}

	return daily, nil
}

func (s *ClickEventStore) dailyKey(code, day string) string {
	return fmt.Sprintf("clicks:%s:%s", code, day)
}

// Compile-time check.
var _ ingest.ClickStore = (*ClickEventStore)(nil)
