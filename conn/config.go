package conn

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/xerrors"
)

// Config defines the connection settings.
type Config struct {
	// Driver is the database/sql driver name, e.g. "sqlite3" or "duckdb".
	Driver string `envconfig:"DRIVER" default:"sqlite3"`
	// DSN is handed to the driver unchanged.
	DSN string `envconfig:"DSN" default:":memory:"`
	// MaxOpenConns sets the maximum number of open connections to the database.
	MaxOpenConns int `envconfig:"MAX_OPEN_CONNS"`
	// MaxIdleConns sets the maximum number of connections in the idle connection pool.
	MaxIdleConns int `envconfig:"MAX_IDLE_CONNS"`
	// ConnMaxLifetime sets the maximum amount of time a connection may be reused.
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME"`
	// LogSQL logs every statement.
	LogSQL bool `envconfig:"LOG_SQL"`
	// LogArgs adds redacted arguments to statement logs.
	LogArgs bool `envconfig:"LOG_ARGS"`
	// SlowQuery logs statements slower than the threshold at warn level.
	SlowQuery time.Duration `envconfig:"SLOW_QUERY"`
}

// LoadConfig reads Config from environment variables named PREFIX_DRIVER,
// PREFIX_DSN and so on.
func LoadConfig(prefix string) (Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return Config{}, xerrors.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
