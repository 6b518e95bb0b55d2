package config

import "time"

// Default configuration values applied when a field is absent from both the
// config file and the environment.
const (
	DefaultServerPort            = 8080
	DefaultServerMode            = "release"
	DefaultServerReadTimeout     = 15 * time.Second
	DefaultServerWriteTimeout    = 15 * time.Second
	DefaultServerShutdownTimeout = 30 * time.Second
	DefaultServerRateLimitRPS    = 50.0
	DefaultServerRateLimitBurst  = 100

	DefaultDatabasePort            = 5432
	DefaultDatabaseSSLMode         = "disable"
	DefaultDatabaseMaxConns        = 20
	DefaultDatabaseMinConns        = 2
	DefaultDatabaseConnMaxLifetime = time.Hour
	DefaultDatabaseConnMaxIdleTime = 30 * time.Minute
	DefaultDatabaseMigrationPath   = "file://migrations"

	DefaultRedisAddr         = "localhost:6379"
	DefaultRedisPoolSize     = 10
	DefaultRedisMinIdleConns = 2
	DefaultRedisDialTimeout  = 5 * time.Second
	DefaultRedisReadTimeout  = 3 * time.Second
	DefaultRedisWriteTimeout = 3 * time.Second
	DefaultRedisDefaultTTL   = 15 * time.Minute
	DefaultRedisKeyPrefix    = "spac"

	DefaultKafkaGroupID         = "spac-sentinel"
	DefaultKafkaAutoOffsetReset = "earliest"
	DefaultKafkaProducerRetries = 3
	DefaultKafkaBatchSize       = 100
	DefaultKafkaBatchTimeout    = time.Second
	DefaultKafkaWriteTimeout    = 10 * time.Second

	DefaultEdgarBaseURL      = "https://www.sec.gov"
	DefaultEdgarTimeout      = 10 * time.Second
	DefaultEdgarMaxRetries   = 3
	DefaultEdgarRetryBackoff = 2 * time.Second

	DefaultEngineDeadlineCacheTTL      = 10 * time.Minute
	DefaultEnginePeriodicHorizonMonths = 15

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogOutput = "stdout"
)

// ApplyDefaults fills every zero-valued field of cfg with its default.
// Explicitly configured values are never overwritten.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultServerWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}
	if cfg.Server.RateLimitRPS == 0 {
		cfg.Server.RateLimitRPS = DefaultServerRateLimitRPS
	}
	if cfg.Server.RateLimitBurst == 0 {
		cfg.Server.RateLimitBurst = DefaultServerRateLimitBurst
	}

	if cfg.Database.Port == 0 {
		cfg.Database.Port = DefaultDatabasePort
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = DefaultDatabaseSSLMode
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = DefaultDatabaseMaxConns
	}
	if cfg.Database.MinConns == 0 {
		cfg.Database.MinConns = DefaultDatabaseMinConns
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = DefaultDatabaseConnMaxLifetime
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = DefaultDatabaseConnMaxIdleTime
	}
	if cfg.Database.MigrationPath == "" {
		cfg.Database.MigrationPath = DefaultDatabaseMigrationPath
	}

	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = DefaultRedisPoolSize
	}
	if cfg.Redis.MinIdleConns == 0 {
		cfg.Redis.MinIdleConns = DefaultRedisMinIdleConns
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = DefaultRedisDialTimeout
	}
	if cfg.Redis.ReadTimeout == 0 {
		cfg.Redis.ReadTimeout = DefaultRedisReadTimeout
	}
	if cfg.Redis.WriteTimeout == 0 {
		cfg.Redis.WriteTimeout = DefaultRedisWriteTimeout
	}
	if cfg.Redis.DefaultTTL == 0 {
		cfg.Redis.DefaultTTL = DefaultRedisDefaultTTL
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}

	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = DefaultKafkaGroupID
	}
	if cfg.Kafka.AutoOffsetReset == "" {
		cfg.Kafka.AutoOffsetReset = DefaultKafkaAutoOffsetReset
	}
	if cfg.Kafka.ProducerRetries == 0 {
		cfg.Kafka.ProducerRetries = DefaultKafkaProducerRetries
	}
	if cfg.Kafka.BatchSize == 0 {
		cfg.Kafka.BatchSize = DefaultKafkaBatchSize
	}
	if cfg.Kafka.BatchTimeout == 0 {
		cfg.Kafka.BatchTimeout = DefaultKafkaBatchTimeout
	}
	if cfg.Kafka.WriteTimeout == 0 {
		cfg.Kafka.WriteTimeout = DefaultKafkaWriteTimeout
	}

	if cfg.Edgar.BaseURL == "" {
		cfg.Edgar.BaseURL = DefaultEdgarBaseURL
	}
	if cfg.Edgar.Timeout == 0 {
		cfg.Edgar.Timeout = DefaultEdgarTimeout
	}
	if cfg.Edgar.MaxRetries == 0 {
		cfg.Edgar.MaxRetries = DefaultEdgarMaxRetries
	}
	if cfg.Edgar.RetryBackoff == 0 {
		cfg.Edgar.RetryBackoff = DefaultEdgarRetryBackoff
	}

	if cfg.Engine.DeadlineCacheTTL == 0 {
		cfg.Engine.DeadlineCacheTTL = DefaultEngineDeadlineCacheTTL
	}
	if cfg.Engine.PeriodicHorizonMonths == 0 {
		cfg.Engine.PeriodicHorizonMonths = DefaultEnginePeriodicHorizonMonths
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = DefaultLogOutput
	}
}
