package hm1x

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"i4.energy/across/btgw/at"
)

// Driver controls an HM-1x dual-mode (EDR + BLE) Bluetooth module over a
// byte channel using the module's AT command set.
//
// A Driver is single-owner: it has no background goroutine and no
// locking. Command methods, Poll and the stream methods must not be
// called concurrently; callers that share a Driver serialize access
// themselves.
type Driver struct {
	// channel is the link to the module
	channel Channel
	// config contains the driver settings with defaults applied
	config Config
	clock  Clock
	logger *slog.Logger
	// closed indicates the driver has been shut down
	closed bool

	// polling switches the stream facade to the residue buffer
	polling bool
	state   State
	// residue holds polled bytes that were not notifications
	residue bytes.Buffer
	// events receives classified notifications; full buffers drop
	events chan at.Event
}

// New opens the channel through config.Dialer and brings the module up.
//
// Setup probes the module (twice, InitRetryDelay apart) and disables
// notifications. If that fails, New makes a single recovery attempt:
// it forces the module to config.BaudRate, resets it, waits ResetSettle
// and runs setup again. The channel is closed when New fails.
func New(ctx context.Context, config Config) (*Driver, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	config.setDefaults()

	channel, err := config.Dialer.Dial(ctx)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, ErrNotInitialized
	}

	d := newDriver(channel, config)
	if config.SkipConnectionCheck {
		return d, nil
	}

	initErr := d.init(ctx)
	if initErr == nil {
		return d, nil
	}
	d.logger.Warn("Module not responding, forcing baud rate", "baud", config.BaudRate, "error", initErr)

	if err := d.recoverBaud(ctx); err != nil {
		d.closeChannel()
		return nil, fmt.Errorf("initialize module: %w", errors.Join(initErr, err))
	}
	return d, nil
}

func newDriver(channel Channel, config Config) *Driver {
	return &Driver{
		channel: channel,
		config:  config,
		clock:   config.Clock,
		logger:  config.Logger,
		events:  make(chan at.Event, config.EventBuffer),
	}
}

// init checks the module is alive and puts it in a quiet state. A bare
// "AT" may only drop a peer link without answering, hence the retry.
func (d *Driver) init(ctx context.Context) error {
	if _, err := d.TestOrDisconnect(ctx); err != nil {
		if err := d.wait(ctx, d.config.InitRetryDelay); err != nil {
			return err
		}
		if _, err := d.TestOrDisconnect(ctx); err != nil {
			return fmt.Errorf("module not responding: %w", err)
		}
	}
	if err := d.Notify(ctx, false, false); err != nil {
		return fmt.Errorf("disable notifications: %w", err)
	}
	return nil
}

// recoverBaud forces the module to the configured baud rate and re-runs
// setup once.
func (d *Driver) recoverBaud(ctx context.Context) error {
	if err := d.ForceBaud(ctx, d.config.BaudRate); err != nil {
		return fmt.Errorf("force baud %d: %w", d.config.BaudRate, err)
	}
	if err := d.Reset(ctx); err != nil {
		d.logger.Debug("Reset not acknowledged", "error", err)
	}
	if err := d.setChannelBaud(d.config.BaudRate); err != nil {
		return err
	}
	if err := d.wait(ctx, d.config.ResetSettle); err != nil {
		return err
	}
	return d.init(ctx)
}

// Events returns a read-only channel of classified notifications seen by
// Poll and by the liveness probe. The channel is buffered and events are
// dropped when it is full.
func (d *Driver) Events() <-chan at.Event {
	return d.events
}

// Close releases the channel if it implements io.Closer. After Close the
// Driver cannot be reused.
func (d *Driver) Close() error {
	if d.closed {
		return ErrAlreadyClosed
	}
	d.closed = true
	return d.closeChannel()
}

func (d *Driver) closeChannel() error {
	if c, ok := d.channel.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// State returns a copy of the current connection state.
func (d *Driver) State() State {
	return d.state
}

// Connected reports whether either radio has a peer.
func (d *Driver) Connected() bool {
	return d.state.EDRConnected || d.state.BLEConnected
}

func (d *Driver) ConnectedEDR() bool { return d.state.EDRConnected }
func (d *Driver) ConnectedBLE() bool { return d.state.BLEConnected }

// EDRAddress is the peer address from the last EDR notification.
func (d *Driver) EDRAddress() string { return d.state.EDRAddress }

// BLEAddress is the peer address from the last BLE notification.
func (d *Driver) BLEAddress() string { return d.state.BLEAddress }

// apply folds a classified notification into the connection state and
// publishes it on the events channel.
func (d *Driver) apply(event at.Event) {
	if event.Kind == at.KindRestarted && d.config.ResetOnRestart {
		d.state = State{}
	} else {
		d.state = d.state.Apply(event)
	}
	d.logger.Debug("Notification", "kind", event.Kind, "address", event.Address)

	select {
	case d.events <- event:
	default:
		d.logger.Debug("Event buffer full, dropping notification", "kind", event.Kind)
	}
}

func (d *Driver) setChannelBaud(baud int) error {
	setter, ok := d.channel.(BaudSetter)
	if !ok {
		return fmt.Errorf("set channel baud: %w", ErrNotSupported)
	}
	if err := setter.SetBaud(baud); err != nil {
		return fmt.Errorf("set channel baud %d: %w", baud, err)
	}
	return nil
}

// wait sleeps for dur on the driver clock unless ctx is already done.
func (d *Driver) wait(ctx context.Context, dur time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.clock.Sleep(dur)
	return nil
}
