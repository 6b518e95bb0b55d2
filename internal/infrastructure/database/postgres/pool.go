// Package postgres manages the PostgreSQL connection pool and schema
// migrations for the platform.
package postgres

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/turtacn/SPAC-Sentinel/internal/config"
	"github.com/turtacn/SPAC-Sentinel/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

// Pool wraps a pgx connection pool with lifecycle management.
type Pool struct {
	pool   *pgxpool.Pool
	cfg    config.DatabaseConfig
	logger logging.Logger
	once   sync.Once
}

// NewPool establishes a connection pool and verifies connectivity.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, log logging.Logger) (*Pool, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}

	poolCfg, err := pgxpool.ParseConfig(BuildDSN(cfg))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDBConnectionError, "failed to parse database configuration")
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = int32(cfg.MinConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	if cfg.ConnMaxIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.ConnMaxIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDBConnectionError, "failed to create connection pool")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, errors.CodeDBConnectionError, "database connection failed")
	}

	log.Info("connected to PostgreSQL",
		logging.String("host", cfg.Host),
		logging.Int("port", cfg.Port),
		logging.String("database", cfg.DBName),
	)

	return &Pool{pool: pool, cfg: cfg, logger: log}, nil
}

// Pool returns the underlying pgx pool for repository construction.
func (p *Pool) Pool() *pgxpool.Pool {
	return p.pool
}

// HealthCheck verifies connectivity and warns on pool saturation.
func (p *Pool) HealthCheck(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return errors.Wrap(err, errors.CodeDBConnectionError, "database health check failed")
	}

	stat := p.pool.Stat()
	if stat.MaxConns() > 0 {
		usage := float64(stat.AcquiredConns()) / float64(stat.MaxConns())
		if usage > 0.8 {
			p.logger.Warn("high database connection pool usage",
				logging.Int("acquired", int(stat.AcquiredConns())),
				logging.Int("max", int(stat.MaxConns())),
			)
		}
	}
	return nil
}

// Close releases the pool.  Safe to call more than once.
func (p *Pool) Close() {
	p.once.Do(func() {
		p.pool.Close()
		p.logger.Info("closed PostgreSQL connection pool")
	})
}

// BuildDSN constructs the PostgreSQL connection URL from configuration.
func BuildDSN(cfg config.DatabaseConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   cfg.DBName,
	}

	q := u.Query()
	if cfg.SSLMode != "" {
		q.Set("sslmode", cfg.SSLMode)
	} else {
		q.Set("sslmode", "disable")
	}
	u.RawQuery = q.Encode()
	return u.String()
}
