package config

import "time"

// Config holds server configuration values.
//
// Every field comes from defaults, a config file, or environment variables
// (in that order of increasing precedence); no command-line flag sets them.
// The port is always supplied positionally per the CLI contract and is
// folded into Addr by the caller.
type Config struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	AcceptBacklog   int           `mapstructure:"accept_backlog" yaml:"accept_backlog"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel        string        `mapstructure:"log_level" yaml:"log_level"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:            ":0",
		AcceptBacklog:   128,
		ShutdownTimeout: 5 * time.Second,
		LogLevel:        "info",
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.AcceptBacklog != 0 {
		c.AcceptBacklog = other.AcceptBacklog
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
}
