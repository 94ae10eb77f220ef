package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver

	"resume-matcher/internal/shared/telemetry"
)

// ErrNoDatabaseURL is returned by Connect when no URL is configured.
var ErrNoDatabaseURL = errors.New("DATABASE_URL is empty")

// Options controls the document store's connection pool and how hard
// Connect tries before giving up.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
	// ConnectAttempts is the number of open+ping tries; values below 1 mean 1.
	ConnectAttempts int
	RetryDelay      time.Duration
}

var openDB = sql.Open

// DefaultServerOptions returns defaults for the API process. Postgres often
// starts alongside it, so Connect retries for a few seconds.
func DefaultServerOptions() Options {
	return Options{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxIdleTime: 2 * time.Minute,
		ConnMaxLifetime: time.Hour,
		PingTimeout:     5 * time.Second,
		ConnectAttempts: 3,
		RetryDelay:      2 * time.Second,
	}
}

// DefaultMigrateOptions returns defaults for short-lived CLI migrations.
func DefaultMigrateOptions() Options {
	return Options{
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		PingTimeout:     5 * time.Second,
		ConnectAttempts: 1,
	}
}

type envOverride struct {
	key   string
	apply func(*Options, string) error
}

var envOverrides = []envOverride{
	{"DB_MAX_OPEN_CONNS", func(o *Options, v string) (err error) { o.MaxOpenConns, err = strconv.Atoi(v); return }},
	{"DB_MAX_IDLE_CONNS", func(o *Options, v string) (err error) { o.MaxIdleConns, err = strconv.Atoi(v); return }},
	{"DB_CONN_MAX_LIFETIME", func(o *Options, v string) (err error) { o.ConnMaxLifetime, err = time.ParseDuration(v); return }},
	{"DB_CONN_MAX_IDLE_TIME", func(o *Options, v string) (err error) { o.ConnMaxIdleTime, err = time.ParseDuration(v); return }},
	{"DB_PING_TIMEOUT", func(o *Options, v string) (err error) { o.PingTimeout, err = time.ParseDuration(v); return }},
	{"DB_CONNECT_ATTEMPTS", func(o *Options, v string) (err error) { o.ConnectAttempts, err = strconv.Atoi(v); return }},
	{"DB_RETRY_DELAY", func(o *Options, v string) (err error) { o.RetryDelay, err = time.ParseDuration(v); return }},
}

// OptionsFromEnv overrides defaults with DB_* env vars if present. Invalid
// values are logged and leave the default in place.
func OptionsFromEnv(defaults Options) Options {
	opts := defaults
	for _, o := range envOverrides {
		raw := strings.TrimSpace(os.Getenv(o.key))
		if raw == "" {
			continue
		}
		next := opts
		if err := o.apply(&next, raw); err != nil {
			log.Printf("db env %s=%q ignored: %v", o.key, raw, err)
			continue
		}
		opts = next
	}
	return opts
}

// Connect opens a *sql.DB for databaseURL and verifies connectivity, retrying
// up to opts.ConnectAttempts times. The returned *sql.DB should be shared.
func Connect(ctx context.Context, databaseURL string, opts Options) (*sql.DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, ErrNoDatabaseURL
	}
	attempts := max(opts.ConnectAttempts, 1)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := connectOnce(ctx, databaseURL, opts)
		if err == nil {
			telemetry.Info("db.connected", withAttempt(PoolStats(db), attempt))
			return db, nil
		}
		lastErr = err
		if attempt == attempts {
			break
		}
		telemetry.Warn("db.connect_retry", map[string]any{"attempt": attempt, "error": err})
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w (last error: %v)", ctx.Err(), lastErr)
		case <-time.After(opts.RetryDelay):
		}
	}
	return nil, lastErr
}

func connectOnce(ctx context.Context, databaseURL string, opts Options) (*sql.DB, error) {
	db, err := openDB("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	applyOptions(db, opts)

	pingTimeout := opts.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func applyOptions(db *sql.DB, opts Options) {
	db.SetMaxOpenConns(positiveOr(opts.MaxOpenConns, 10))
	db.SetMaxIdleConns(positiveOr(opts.MaxIdleConns, 5))
	db.SetConnMaxLifetime(positiveOr(opts.ConnMaxLifetime, time.Hour))
	if opts.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}
}

func positiveOr[T int | time.Duration](v, def T) T {
	if v > 0 {
		return v
	}
	return def
}

// PoolStats summarizes the pool for logs and the health endpoint.
func PoolStats(db *sql.DB) map[string]any {
	stats := db.Stats()
	return map[string]any{
		"open":     stats.OpenConnections,
		"in_use":   stats.InUse,
		"idle":     stats.Idle,
		"wait":     stats.WaitCount,
		"max_open": stats.MaxOpenConnections,
	}
}

func withAttempt(fields map[string]any, attempt int) map[string]any {
	fields["attempt"] = attempt
	return fields
}
