package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aseptimu/link-shortener/internal/app/service"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Database struct {
	dbpool  *pgxpool.Pool
	timeout time.Duration
	logger  *zap.SugaredLogger
}

func NewDB(ctx context.Context, dsn string, timeout time.Duration, logger *zap.SugaredLogger) (*Database, error) {
	dbpool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	return &Database{dbpool: dbpool, timeout: timeout, logger: logger}, nil
}

func (db *Database) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, db.timeout)
	defer cancel()
	if err := db.dbpool.Ping(ctx); err != nil {
		return unavailable(err)
	}
	return nil
}

const GetURLQuery = "SELECT url FROM short_urls WHERE key = $1"

func (db *Database) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, db.timeout)
	defer cancel()

	var url string
	err := db.dbpool.QueryRow(ctx, GetURLQuery, key).Scan(&url)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", service.ErrURLNotFound
	}
	if err != nil {
		db.logger.Errorw("failed to query url", "key", key, "err", err)
		return "", unavailable(err)
	}
	return url, nil
}

const SetURLQuery = `INSERT INTO short_urls (key, url)
         VALUES ($1, $2)
         ON CONFLICT (key) DO UPDATE SET url = EXCLUDED.url`

func (db *Database) Set(ctx context.Context, key, url string) error {
	ctx, cancel := context.WithTimeout(ctx, db.timeout)
	defer cancel()

	db.logger.Debugw("Attempting to upsert URL", "key", key, "url", url)
	if _, err := db.dbpool.Exec(ctx, SetURLQuery, key, url); err != nil {
		db.logger.Errorw("Failed to upsert URL", "key", key, "err", err)
		return unavailable(err)
	}
	return nil
}

const SetURLIfAbsentQuery = `INSERT INTO short_urls (key, url)
         VALUES ($1, $2)
         ON CONFLICT (key) DO NOTHING`

func (db *Database) SetIfAbsent(ctx context.Context, key, url string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, db.timeout)
	defer cancel()

	cmdTag, err := db.dbpool.Exec(ctx, SetURLIfAbsentQuery, key, url)
	if err != nil {
		db.logger.Errorw("Failed to insert URL", "key", key, "err", err)
		return false, unavailable(err)
	}
	return cmdTag.RowsAffected() == 1, nil
}

func (db *Database) Close() error {
	db.dbpool.Close()
	return nil
}
