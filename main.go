package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"
	"go.bug.st/serial"
	"i4.energy/across/btgw/hm1x"
)

func main() {
	app := newApp(&application{})
	if err := app.Run(os.Args); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

// application carries the loaded configuration and logger into the
// command actions.
type application struct {
	config *Config
	logger *slog.Logger
}

func newApp(a *application) *cli.App {
	app := cli.NewApp()
	app.Name = "hm1x"
	app.Usage = "control an HM-1x dual-mode Bluetooth module"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config", Usage: "YAML configuration file"},
		cli.StringFlag{Name: "serial-port", Value: "/dev/ttyUSB0", Usage: "Serial port the module is attached to"},
		cli.IntFlag{Name: "baud-rate", Value: 9600, Usage: "Baud rate the module is expected at"},
		cli.StringFlag{Name: "log-level", Value: "info", Usage: "Log level (debug, info, warn, error)"},
		cli.StringFlag{Name: "bind-address", Value: "0.0.0.0:8080", Usage: "Bind address for the HTTP server"},
		cli.DurationFlag{Name: "poll-interval", Usage: "Notification poll interval for serve"},
		cli.BoolFlag{Name: "reset-on-restart", Usage: "Clear connection state when the module restarts"},
	}
	app.Before = a.load
	app.Commands = []cli.Command{
		{
			Name:   "probe",
			Usage:  "check the module answers (drops a connected peer)",
			Action: a.probe,
		},
		{
			Name:   "info",
			Usage:  "print version, names, addresses and roles",
			Action: a.info,
		},
		{
			Name:      "set-name",
			Usage:     "set the advertised name of a radio",
			ArgsUsage: "<edr|ble> <name>",
			Action:    a.setName,
		},
		{
			Name:      "force-baud",
			Usage:     "find the module at any rate and move it to <rate>",
			ArgsUsage: "<rate>",
			Action:    a.forceBaud,
		},
		{
			Name:   "factory-reset",
			Usage:  "restore factory defaults",
			Action: a.factoryReset,
		},
		{
			Name:   "serve",
			Usage:  "poll the module and expose it over HTTP",
			Action: a.serve,
		},
	}
	return app
}

// load builds the configuration and logger before any command runs.
func (a *application) load(c *cli.Context) error {
	config, err := LoadConfig(WithDefaults(), WithFile(c.String("config")), WithEnv(), WithFlags(c))
	if err != nil {
		return err
	}
	a.config = config
	a.logger = newLogger(config.LogLevel)
	return nil
}

func newLogger(level string) *slog.Logger {
	logLevel := slog.LevelInfo
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// openDriver dials the configured serial port. skipCheck leaves the
// module untouched until the caller issues a command.
func (a *application) openDriver(ctx context.Context, skipCheck bool) (*hm1x.Driver, error) {
	config, err := hm1x.NewConfigBuilder().
		WithDialer(hm1x.SerialDialer{
			PortName: a.config.SerialPort,
			Mode: &serial.Mode{
				BaudRate: a.config.BaudRate,
				DataBits: 8,
				Parity:   serial.NoParity,
				StopBits: serial.OneStopBit,
			},
		}).
		WithBaudRate(a.config.BaudRate).
		WithResetOnRestart(a.config.ResetOnRestart).
		WithSkipConnectionCheck(skipCheck).
		WithLogger(a.logger.With("component", "driver")).
		Build()
	if err != nil {
		return nil, err
	}
	return hm1x.New(ctx, config)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
