package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/urfave/cli"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	// BindAddress is the address the server listens on (e.g. "0.0.0.0:8080")
	BindAddress string `yaml:"bind_address" envconfig:"BIND_ADDRESS"`
	// SerialPort is the path to the module's serial port (e.g. "/dev/ttyUSB0")
	SerialPort string `yaml:"serial_port" envconfig:"SERIAL_PORT"`
	// BaudRate is the line speed the module is expected at (e.g. 9600)
	BaudRate int `yaml:"baud_rate" envconfig:"BAUD_RATE"`
	// LogLevel sets the logging level (e.g. "debug", "info", "warn", "error")
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`
	// PollInterval is how often the daemon polls for notifications
	PollInterval time.Duration `yaml:"poll_interval" envconfig:"POLL_INTERVAL"`
	// ResetOnRestart clears the connection state when the module restarts
	ResetOnRestart bool `yaml:"reset_on_restart" envconfig:"RESET_ON_RESTART"`
}

// ConfigOption is a function that modifies a Config
type ConfigOption func(*Config) error

// LoadConfig creates a new config by applying the given options in order
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	config := &Config{}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", c.PollInterval)
	}
	return nil
}

// WithDefaults applies default configuration values
func WithDefaults() ConfigOption {
	return func(c *Config) error {
		c.BindAddress = "0.0.0.0:8080"
		c.SerialPort = "/dev/ttyUSB0"
		c.BaudRate = 9600
		c.LogLevel = "info"
		c.PollInterval = 50 * time.Millisecond
		return nil
	}
}

// WithFile loads configuration from a YAML file. An empty path is skipped.
func WithFile(path string) ConfigOption {
	return func(c *Config) error {
		if path == "" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse config file %s: %w", path, err)
		}
		return nil
	}
}

// WithEnv loads configuration from environment variables. Each setting
// is read from HM1X_<NAME>, falling back to the bare <NAME>.
func WithEnv() ConfigOption {
	return func(c *Config) error {
		if err := envconfig.Process("HM1X", c); err != nil {
			return fmt.Errorf("read environment: %w", err)
		}
		return nil
	}
}

// WithFlags loads configuration from command-line flags that were set
func WithFlags(ctx *cli.Context) ConfigOption {
	return func(c *Config) error {
		if ctx.IsSet("bind-address") {
			c.BindAddress = ctx.String("bind-address")
		}
		if ctx.IsSet("serial-port") {
			c.SerialPort = ctx.String("serial-port")
		}
		if ctx.IsSet("baud-rate") {
			c.BaudRate = ctx.Int("baud-rate")
		}
		if ctx.IsSet("log-level") {
			c.LogLevel = ctx.String("log-level")
		}
		if ctx.IsSet("poll-interval") {
			c.PollInterval = ctx.Duration("poll-interval")
		}
		if ctx.IsSet("reset-on-restart") {
			c.ResetOnRestart = ctx.Bool("reset-on-restart")
		}
		return nil
	}
}
