package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Priya00300/url-shortener-devops/internal/shortener"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint errors.
const uniqueViolation = "23505"

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
// The primary key on code is the single uniqueness constraint shared by
// generated codes and custom aliases.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed link store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the short_links table when it does not exist yet.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS short_links (
			code         TEXT PRIMARY KEY,
			target_url   TEXT NOT NULL,
			custom_alias BOOLEAN NOT NULL DEFAULT FALSE,
			created_at   TIMESTAMPTZ NOT NULL,
			expires_at   TIMESTAMPTZ,
			active       BOOLEAN NOT NULL DEFAULT TRUE,
			click_count  BIGINT NOT NULL DEFAULT 0
		)
	`

	_, err := p.pool.Exec(ctx, query)

	return err
}

func (p *PostgresStore) Insert(ctx context.Context, link *shortener.ShortLink) error {
	query := `
		INSERT INTO short_links (code, target_url, custom_alias, created_at, expires_at, active, click_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := p.pool.Exec(ctx, query,
		string(link.Code),
		link.TargetURL,
		link.CustomAlias,
		link.CreatedAt,
		link.ExpiresAt,
		link.Active,
		link.ClickCount,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return &shortener.UniqueViolationError{Code: link.Code}
		}

		return err
	}

	return nil
}

func (p *PostgresStore) FindByCode(ctx context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	query := `
		SELECT code, target_url, custom_alias, created_at, expires_at, active, click_count
		FROM short_links
		WHERE code = $1
	`

	var link shortener.ShortLink

	err := p.pool.QueryRow(ctx, query, string(code)).Scan(
		&link.Code,
		&link.TargetURL,
		&link.CustomAlias,
		&link.CreatedAt,
		&link.ExpiresAt,
		&link.Active,
		&link.ClickCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return &link, nil
}

func (p *PostgresStore) Exists(ctx context.Context, code shortener.Code) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM short_links WHERE code = $1)`

	var exists bool

	if err := p.pool.QueryRow(ctx, query, string(code)).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (p *PostgresStore) IncrementClickCount(ctx context.Context, code shortener.Code) error {
	query := `UPDATE short_links SET click_count = click_count + 1 WHERE code = $1`

	tag, err := p.pool.Exec(ctx, query, string(code))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return shortener.ErrNotFound
	}

	return nil
}

func (p *PostgresStore) Deactivate(ctx context.Context, code shortener.Code) error {
	query := `UPDATE short_links SET active = FALSE WHERE code = $1`

	tag, err := p.pool.Exec(ctx, query, string(code))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return shortener.ErrNotFound
	}

	return nil
}

// Compile-time check.
var _ shortener.Repository = (*PostgresStore)(nil)
