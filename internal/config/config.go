package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`

	// Piston execution service.
	ExecBaseURL string        `mapstructure:"exec_base_url" yaml:"exec_base_url"`
	ExecTimeout time.Duration `mapstructure:"exec_timeout" yaml:"exec_timeout"`

	// Optional self-ping of the public endpoint. Disabled when the URL is empty.
	KeepAliveURL      string        `mapstructure:"keepalive_url" yaml:"keepalive_url"`
	KeepAliveInterval time.Duration `mapstructure:"keepalive_interval" yaml:"keepalive_interval"`

	// Directory with the built frontend. Served as an SPA when set.
	StaticDir string `mapstructure:"static_dir" yaml:"static_dir"`

	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":5000",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		ExecBaseURL:       "https://emkc.org",
		ExecTimeout:       30 * time.Second,
		KeepAliveInterval: 30 * time.Second,
		CORSOrigins:       []string{"*"},
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.ExecBaseURL != "" {
		c.ExecBaseURL = other.ExecBaseURL
	}
	if other.ExecTimeout != 0 {
		c.ExecTimeout = other.ExecTimeout
	}
	if other.KeepAliveURL != "" {
		c.KeepAliveURL = other.KeepAliveURL
	}
	if other.KeepAliveInterval != 0 {
		c.KeepAliveInterval = other.KeepAliveInterval
	}
	if other.StaticDir != "" {
		c.StaticDir = other.StaticDir
	}
	if len(other.CORSOrigins) != 0 {
		c.CORSOrigins = other.CORSOrigins
	}
}
