package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type Config struct {
	Host         string
	Port         string
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	Retries      int
	RetryDelay   time.Duration
}

func (c Config) dsn() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}
	return dsn.String()
}

// NewPostgresDB opens the pool and waits for the server to accept
// connections, retrying up to cfg.Retries times.
func NewPostgresDB(ctx context.Context, cfg Config, logger *zap.Logger) (*sql.DB, error) {
	maxRetries := cfg.Retries
	if maxRetries <= 0 {
		maxRetries = 1
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}

	db, err := sql.Open("postgres", cfg.dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 25
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)
	db.SetConnMaxLifetime(5 * time.Minute)

	for i := 1; i <= maxRetries; i++ {
		logger.Info("connecting to database", zap.String("host", cfg.Host), zap.Int("attempt", i), zap.Int("max_attempts", maxRetries))

		if err = db.PingContext(ctx); err == nil {
			logger.Info("database connected")
			return db, nil
		}

		if i == maxRetries {
			break
		}

		logger.Warn("database not ready yet", zap.Duration("retry_in", delay), zap.Error(err))
		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	db.Close()
	return nil, fmt.Errorf("connect database after %d attempts: %w", maxRetries, err)
}
