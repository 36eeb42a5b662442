package hm1x

import (
	"log/slog"
	"time"
)

// Default timing, in the module's own terms.
const (
	DefaultCommandTimeout  = 1000 * time.Millisecond
	DefaultResponseTimeout = 100 * time.Millisecond
	DefaultPollDelay       = 10 * time.Millisecond
	DefaultTick            = time.Millisecond
	DefaultInitRetryDelay  = 500 * time.Millisecond
	DefaultResetSettle     = 5 * time.Second
	DefaultBaudRate        = 9600
	DefaultEventBuffer     = 16
)

// Config holds the driver settings. Zero values are replaced by defaults.
type Config struct {
	// Dialer opens the byte channel. Required.
	Dialer Dialer
	// BaudRate is the rate the module is expected at, and the rate
	// forced during recovery.
	BaudRate int
	// CommandTimeout bounds commands with a known acknowledgement.
	CommandTimeout time.Duration
	// ResponseTimeout is the collection window for short queries.
	ResponseTimeout time.Duration
	// PollDelay paces byte reads in Poll.
	PollDelay time.Duration
	// Tick is the interval between availability checks while waiting.
	Tick time.Duration
	// InitRetryDelay separates the two liveness probes during setup.
	InitRetryDelay time.Duration
	// ResetSettle is how long the module needs after a reset.
	ResetSettle time.Duration
	// EventBuffer is the capacity of the Events channel.
	EventBuffer int
	// ResetOnRestart clears the connection state when the module reports
	// a restart.
	ResetOnRestart bool
	// SkipConnectionCheck makes New return without probing the module.
	SkipConnectionCheck bool
	// Clock is the time source; tests substitute a fake.
	Clock Clock
	// Logger receives debug traces of the protocol exchange.
	Logger *slog.Logger
}

func (c *Config) validate() error {
	if c.Dialer == nil {
		return ErrNoDialer
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.BaudRate == 0 {
		c.BaudRate = DefaultBaudRate
	}
	if c.CommandTimeout == 0 {
		c.CommandTimeout = DefaultCommandTimeout
	}
	if c.ResponseTimeout == 0 {
		c.ResponseTimeout = DefaultResponseTimeout
	}
	if c.PollDelay == 0 {
		c.PollDelay = DefaultPollDelay
	}
	if c.Tick == 0 {
		c.Tick = DefaultTick
	}
	if c.InitRetryDelay == 0 {
		c.InitRetryDelay = DefaultInitRetryDelay
	}
	if c.ResetSettle == 0 {
		c.ResetSettle = DefaultResetSettle
	}
	if c.EventBuffer == 0 {
		c.EventBuffer = DefaultEventBuffer
	}
	if c.Clock == nil {
		c.Clock = SystemClock{}
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
}

// ConfigBuilder assembles a Config step by step.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder returns a builder with an empty Config.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

func (b *ConfigBuilder) WithDialer(d Dialer) *ConfigBuilder {
	b.config.Dialer = d
	return b
}

func (b *ConfigBuilder) WithBaudRate(baud int) *ConfigBuilder {
	b.config.BaudRate = baud
	return b
}

func (b *ConfigBuilder) WithCommandTimeout(d time.Duration) *ConfigBuilder {
	b.config.CommandTimeout = d
	return b
}

func (b *ConfigBuilder) WithResponseTimeout(d time.Duration) *ConfigBuilder {
	b.config.ResponseTimeout = d
	return b
}

func (b *ConfigBuilder) WithPollDelay(d time.Duration) *ConfigBuilder {
	b.config.PollDelay = d
	return b
}

func (b *ConfigBuilder) WithTick(d time.Duration) *ConfigBuilder {
	b.config.Tick = d
	return b
}

func (b *ConfigBuilder) WithInitRetryDelay(d time.Duration) *ConfigBuilder {
	b.config.InitRetryDelay = d
	return b
}

func (b *ConfigBuilder) WithResetSettle(d time.Duration) *ConfigBuilder {
	b.config.ResetSettle = d
	return b
}

func (b *ConfigBuilder) WithEventBuffer(n int) *ConfigBuilder {
	b.config.EventBuffer = n
	return b
}

// WithResetOnRestart clears connection state on a module restart notice
// instead of ignoring it.
func (b *ConfigBuilder) WithResetOnRestart(enabled bool) *ConfigBuilder {
	b.config.ResetOnRestart = enabled
	return b
}

func (b *ConfigBuilder) WithSkipConnectionCheck(skip bool) *ConfigBuilder {
	b.config.SkipConnectionCheck = skip
	return b
}

func (b *ConfigBuilder) WithClock(c Clock) *ConfigBuilder {
	b.config.Clock = c
	return b
}

func (b *ConfigBuilder) WithLogger(l *slog.Logger) *ConfigBuilder {
	b.config.Logger = l
	return b
}

// Build validates the configuration and fills in defaults.
func (b *ConfigBuilder) Build() (Config, error) {
	c := b.config
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	c.setDefaults()
	return c, nil
}

// Clock is the elapsed-time source used by every wait in the driver.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time        { return time.Now() }
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }
