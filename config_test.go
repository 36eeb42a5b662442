package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/urfave/cli"
)

// flagContext parses args against the application's global flags.
func flagContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	app := newApp(&application{})
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range app.Flags {
		f.Apply(set)
	}
	if err := set.Parse(args); err != nil {
		t.Fatalf("unexpected error parsing flags: %v", err)
	}
	return cli.NewContext(app, set, nil)
}

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		config, err := LoadConfig(WithDefaults())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if config.SerialPort != "/dev/ttyUSB0" {
			t.Errorf("unexpected serial port %q", config.SerialPort)
		}
		if config.BaudRate != 9600 {
			t.Errorf("unexpected baud rate %d", config.BaudRate)
		}
		if config.PollInterval != 50*time.Millisecond {
			t.Errorf("unexpected poll interval %v", config.PollInterval)
		}
	})

	t.Run("File overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hm1x.yaml")
		content := "serial_port: /dev/ttyS3\nbaud_rate: 115200\npoll_interval: 100ms\nreset_on_restart: true\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		config, err := LoadConfig(WithDefaults(), WithFile(path))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if config.SerialPort != "/dev/ttyS3" {
			t.Errorf("unexpected serial port %q", config.SerialPort)
		}
		if config.BaudRate != 115200 {
			t.Errorf("unexpected baud rate %d", config.BaudRate)
		}
		if config.PollInterval != 100*time.Millisecond {
			t.Errorf("unexpected poll interval %v", config.PollInterval)
		}
		if !config.ResetOnRestart {
			t.Error("expected ResetOnRestart from file")
		}
		if config.BindAddress != "0.0.0.0:8080" {
			t.Errorf("default bind address should survive, got %q", config.BindAddress)
		}
	})

	t.Run("Missing file is an error", func(t *testing.T) {
		if _, err := LoadConfig(WithFile(filepath.Join(t.TempDir(), "absent.yaml"))); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("Empty file path is skipped", func(t *testing.T) {
		if _, err := LoadConfig(WithDefaults(), WithFile("")); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("Environment overrides defaults", func(t *testing.T) {
		t.Setenv("HM1X_SERIAL_PORT", "/dev/ttyACM0")
		t.Setenv("LOG_LEVEL", "debug")

		config, err := LoadConfig(WithDefaults(), WithEnv())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if config.SerialPort != "/dev/ttyACM0" {
			t.Errorf("unexpected serial port %q", config.SerialPort)
		}
		if config.LogLevel != "debug" {
			t.Errorf("unexpected log level %q", config.LogLevel)
		}
		if config.BaudRate != 9600 {
			t.Errorf("unset variables must keep earlier values, got %d", config.BaudRate)
		}
	})

	t.Run("Malformed environment value is an error", func(t *testing.T) {
		t.Setenv("HM1X_BAUD_RATE", "fast")

		if _, err := LoadConfig(WithDefaults(), WithEnv()); err == nil {
			t.Error("expected error for malformed baud rate")
		}
	})

	t.Run("Non-positive poll interval is rejected", func(t *testing.T) {
		t.Run("From the environment", func(t *testing.T) {
			t.Setenv("HM1X_POLL_INTERVAL", "0s")

			if _, err := LoadConfig(WithDefaults(), WithEnv()); err == nil {
				t.Error("expected error for zero poll interval")
			}
		})

		t.Run("From a file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "hm1x.yaml")
			if err := os.WriteFile(path, []byte("poll_interval: 0s\n"), 0o600); err != nil {
				t.Fatal(err)
			}

			if _, err := LoadConfig(WithDefaults(), WithFile(path)); err == nil {
				t.Error("expected error for zero poll interval")
			}
		})

		t.Run("From a flag", func(t *testing.T) {
			ctx := flagContext(t, "--poll-interval", "-1s")

			if _, err := LoadConfig(WithDefaults(), WithFlags(ctx)); err == nil {
				t.Error("expected error for negative poll interval")
			}
		})
	})

	t.Run("Only flags that were set override", func(t *testing.T) {
		t.Setenv("HM1X_LOG_LEVEL", "warn")
		ctx := flagContext(t, "--serial-port", "/dev/ttyAMA0", "--baud-rate", "38400")

		config, err := LoadConfig(WithDefaults(), WithEnv(), WithFlags(ctx))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if config.SerialPort != "/dev/ttyAMA0" {
			t.Errorf("unexpected serial port %q", config.SerialPort)
		}
		if config.BaudRate != 38400 {
			t.Errorf("unexpected baud rate %d", config.BaudRate)
		}
		if config.LogLevel != "warn" {
			t.Errorf("flag default must not override env, got %q", config.LogLevel)
		}
	})
}
