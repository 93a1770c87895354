package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresKV stores blobs in parcel.kv_store (see migrate/migrations).
type PostgresKV struct {
	pool *pgxpool.Pool
}

func NewPostgresKV(p *pgxpool.Pool) *PostgresKV {
	return &PostgresKV{pool: p}
}

func (p *PostgresKV) Get(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := p.pool.QueryRow(ctx,
		`SELECT payload FROM parcel.kv_store WHERE key = $1`, key,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", key, err)
	}
	return payload, nil
}

func (p *PostgresKV) Put(ctx context.Context, key string, payload []byte) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO parcel.kv_store (key, payload, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE
		     SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`,
		key, payload,
	)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}
