package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const envPrefix = "SPAC"

// Load reads configuration from the given file path (optional), overlays
// environment variables with the SPAC_ prefix, applies defaults, and
// validates the result.  Nested keys map to environment variables by
// replacing "." with "_": server.port becomes SPAC_SERVER_PORT.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Watch re-reads the config file whenever it changes and invokes onChange
// with the freshly loaded configuration.  Invalid updates are dropped; the
// previously loaded configuration stays in effect.
func Watch(path string, onChange func(*Config)) error {
	if path == "" {
		return fmt.Errorf("config: watch requires a config file path")
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: reading %s: %w", path, err)
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		var cfg Config
		if err := v.Unmarshal(&cfg); err != nil {
			return
		}
		ApplyDefaults(&cfg)
		if err := cfg.Validate(); err != nil {
			return
		}
		onChange(&cfg)
	})
	v.WatchConfig()

	return nil
}
