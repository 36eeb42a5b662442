package hm1x_test

import (
	"context"
	"testing"
	"time"

	"i4.energy/across/btgw/hm1x"
)

func TestConfig(t *testing.T) {
	t.Run("ErrNoDialer when no dialer provided", func(t *testing.T) {
		_, err := hm1x.NewConfigBuilder().Build()

		if err != hm1x.ErrNoDialer {
			t.Errorf("expected ErrNoDialer, got: %v", err)
		}
	})

	t.Run("Defaults are filled in", func(t *testing.T) {
		config, err := hm1x.NewConfigBuilder().
			WithDialer(hm1x.DialerFunc(func(context.Context) (hm1x.Channel, error) { return nil, nil })).
			Build()
		if err != nil {
			t.Fatalf("unexpected error from Build(): %v", err)
		}

		if config.CommandTimeout != time.Second {
			t.Errorf("expected command timeout 1s, got %v", config.CommandTimeout)
		}
		if config.ResponseTimeout != 100*time.Millisecond {
			t.Errorf("expected response timeout 100ms, got %v", config.ResponseTimeout)
		}
		if config.PollDelay != 10*time.Millisecond {
			t.Errorf("expected poll delay 10ms, got %v", config.PollDelay)
		}
		if config.BaudRate != 9600 {
			t.Errorf("expected baud 9600, got %d", config.BaudRate)
		}
		if config.Clock == nil || config.Logger == nil {
			t.Error("expected clock and logger defaults")
		}
	})

	t.Run("Explicit values are kept", func(t *testing.T) {
		config, err := hm1x.NewConfigBuilder().
			WithDialer(hm1x.DialerFunc(func(context.Context) (hm1x.Channel, error) { return nil, nil })).
			WithCommandTimeout(2 * time.Second).
			WithBaudRate(115200).
			WithResetOnRestart(true).
			Build()
		if err != nil {
			t.Fatalf("unexpected error from Build(): %v", err)
		}

		if config.CommandTimeout != 2*time.Second {
			t.Errorf("expected command timeout 2s, got %v", config.CommandTimeout)
		}
		if config.BaudRate != 115200 {
			t.Errorf("expected baud 115200, got %d", config.BaudRate)
		}
		if !config.ResetOnRestart {
			t.Error("expected ResetOnRestart to be kept")
		}
	})
}
