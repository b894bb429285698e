package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the runtime settings of the tracker.
type Config struct {
	DBPath   string
	Backend  string
	Addr     string
	Tick     time.Duration
	LogFile  string
	LogLevel slog.Level
}

// Remote reports whether a remote backend URL is configured.
func (c Config) Remote() bool {
	return c.Backend != ""
}

// New returns a viper instance with defaults, the optional config file
// location and TIMETRACKER_* environment bindings applied.
func New() (*viper.Viper, error) {
	v := viper.New()

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("finding home directory: %w", err)
	}

	v.SetDefault("db", filepath.Join(home, ".timetracker", "timetracker.db"))
	v.SetDefault("backend", "")
	v.SetDefault("addr", "127.0.0.1:8742")
	v.SetDefault("tick", time.Second)
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "info")

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	v.SetConfigName("timetracker")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(configHome, "timetracker"))

	v.SetEnvPrefix("TIMETRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v, nil
}

// BindFlags lets command-line flags override file and env values.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, flag := range map[string]string{
		"db":      "db",
		"backend": "backend",
		"addr":    "addr",
	} {
		if f := flags.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("binding flag %s: %w", flag, err)
			}
		}
	}
	return nil
}

// Load reads the config file (if present) and decodes all settings.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("log_level"))); err != nil {
		return Config{}, fmt.Errorf("invalid log_level %q: %w", v.GetString("log_level"), err)
	}

	tick := v.GetDuration("tick")
	if tick <= 0 {
		return Config{}, fmt.Errorf("tick must be positive, got %s", tick)
	}

	return Config{
		DBPath:   v.GetString("db"),
		Backend:  v.GetString("backend"),
		Addr:     v.GetString("addr"),
		Tick:     tick,
		LogFile:  v.GetString("log_file"),
		LogLevel: level,
	}, nil
}
