package store

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Priya00300/url-shortener-devops/internal/shortener"
)

// RedisCacheRepository wraps a Repository with Redis caching for reads.
// The underlying repository stays authoritative for uniqueness and
// liveness; the cache only shortcuts lookups on the redirect hot path.
type RedisCacheRepository struct {
	store  shortener.Repository
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCacheRepository creates a Redis-cached repository decorator.
func NewRedisCacheRepository(
	store shortener.Repository, client *redis.Client, ttl time.Duration,
) *RedisCacheRepository {
	return &RedisCacheRepository{
		store:  store,
		client: client,
		prefix: "link:",
		ttl:    ttl,
	}
}

// Insert stores the link in the underlying repository and, on success,
// writes it through to the cache.
func (r *RedisCacheRepository) Insert(ctx context.Context, link *shortener.ShortLink) error {
	if err := r.store.Insert(ctx, link); err != nil {
		return err
	}

	r.cacheLink(ctx, link)

	return nil
}

// FindByCode returns the cached link when present and falls back to the
// underlying repository on a miss. Expiry is not evaluated here; callers
// apply the liveness predicate to whatever copy they get.
func (r *RedisCacheRepository) FindByCode(ctx context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	if link, err := r.getFromCache(ctx, code); err == nil {
		return link, nil
	}

	link, err := r.store.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	r.cacheLink(ctx, link)

	return link, nil
}

// Exists answers true from the cache when the code is cached; absence
// always defers to the underlying repository.
func (r *RedisCacheRepository) Exists(ctx context.Context, code shortener.Code) (bool, error) {
	cached, err := r.client.Exists(ctx, r.key(code)).Result()
	if err == nil && cached > 0 {
		return true, nil
	}

	return r.store.Exists(ctx, code)
}

// IncrementClickCount delegates to the underlying repository. The cached
// copy keeps its stale count until the entry expires.
func (r *RedisCacheRepository) IncrementClickCount(ctx context.Context, code shortener.Code) error {
	return r.store.IncrementClickCount(ctx, code)
}

// Deactivate flips the link off in the underlying repository and drops
// the cached copy so redirects see the change immediately.
func (r *RedisCacheRepository) Deactivate(ctx context.Context, code shortener.Code) error {
	if err := r.store.Deactivate(ctx, code); err != nil {
		return err
	}

	r.client.Del(ctx, r.key(code))

	return nil
}

func (r *RedisCacheRepository) key(code shortener.Code) string {
	return r.prefix + string(code)
}

func (r *RedisCacheRepository) getFromCache(ctx context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	result, err := r.client.HGetAll(ctx, r.key(code)).Result()
	if err != nil {
		return nil, err
	}

	// Incomplete hashes count as misses.
	if result["code"] == "" || result["target_url"] == "" {
		return nil, shortener.ErrNotFound
	}

	link := &shortener.ShortLink{
		Code:      shortener.Code(result["code"]),
		TargetURL: result["target_url"],
	}

	link.CustomAlias, _ = strconv.ParseBool(result["custom_alias"])
	link.Active, _ = strconv.ParseBool(result["active"])
	link.ClickCount, _ = strconv.ParseInt(result["click_count"], 10, 64)

	if nanos, err := strconv.ParseInt(result["created_at"], 10, 64); err == nil {
		link.CreatedAt = time.Unix(0, nanos)
	}

	if ts := result["expires_at"]; ts != "" {
		if nanos, err := strconv.ParseInt(ts, 10, 64); err == nil {
			expires := time.Unix(0, nanos)
			link.ExpiresAt = &expires
		}
	}

	return link, nil
}

func (r *RedisCacheRepository) cacheLink(ctx context.Context, link *shortener.ShortLink) {
	pipe := r.client.Pipeline()
	key := r.key(link.Code)

	fields := map[string]interface{}{
		"code":         string(link.Code),
		"target_url":   link.TargetURL,
		"custom_alias": strconv.FormatBool(link.CustomAlias),
		"created_at":   link.CreatedAt.UnixNano(),
		"active":       strconv.FormatBool(link.Active),
		"click_count":  link.ClickCount,
	}
	if link.ExpiresAt != nil {
		fields["expires_at"] = link.ExpiresAt.UnixNano()
	}

	pipe.HSet(ctx, key, fields)

	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}

	_, _ = pipe.Exec(ctx)
}

// Shutdown is a no-op for RedisCacheRepository (client managed externally).
func (r *RedisCacheRepository) Shutdown() error {
	return nil
}

// Compile-time check.
var _ shortener.Repository = (*RedisCacheRepository)(nil)
