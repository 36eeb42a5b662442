package hm1x

import (
	"context"
	"fmt"
	"time"

	"i4.energy/across/btgw/at"
)

// The module has no end-of-response marker, so replies are gathered in
// one of two ways: by waiting for as many bytes as a known
// acknowledgement holds, or by waiting out a fixed window and taking
// whatever arrived.

// send frames cmd and writes it to the channel.
func (d *Driver) send(cmd at.Command) error {
	if d.closed {
		return ErrAlreadyClosed
	}
	frame := at.Frame(cmd)
	d.logger.Debug("Send", "frame", string(frame))
	if _, err := d.channel.Write(frame); err != nil {
		return fmt.Errorf("write command %q: %w", frame, err)
	}
	return nil
}

// sendAndAwaitExact transmits cmd and waits until at least len(expected)
// bytes are available, then reads exactly that many and compares them
// with expected.
func (d *Driver) sendAndAwaitExact(ctx context.Context, cmd at.Command, expected string, timeout time.Duration) error {
	start := d.clock.Now()
	if err := d.send(cmd); err != nil {
		return err
	}

	for {
		n, err := d.available()
		if err != nil {
			return err
		}
		if n >= len(expected) {
			break
		}
		if d.clock.Now().Sub(start) > timeout {
			return fmt.Errorf("%s: %w", cmd, ErrTimeout)
		}
		if err := d.wait(ctx, d.config.Tick); err != nil {
			return fmt.Errorf("%s: %w", cmd, err)
		}
	}

	reply, err := d.readN(len(expected))
	if err != nil {
		return err
	}
	d.logger.Debug("Receive", "reply", string(reply))
	if string(reply) != expected {
		return fmt.Errorf("%s: got %q, want %q: %w", cmd, reply, expected, ErrUnexpectedResponse)
	}
	return nil
}

// sendAndCollectForDuration transmits cmd, waits the whole timeout and
// returns everything that arrived. Too short a timeout truncates the
// reply.
func (d *Driver) sendAndCollectForDuration(ctx context.Context, cmd at.Command, timeout time.Duration) ([]byte, error) {
	start := d.clock.Now()
	if err := d.send(cmd); err != nil {
		return nil, err
	}

	for d.clock.Now().Sub(start) < timeout {
		if err := d.wait(ctx, d.config.Tick); err != nil {
			return nil, fmt.Errorf("%s: %w", cmd, err)
		}
	}

	reply, err := d.drain()
	if err != nil {
		return nil, err
	}
	d.logger.Debug("Receive", "reply", string(reply))
	return reply, nil
}

func (d *Driver) available() (int, error) {
	n, err := d.channel.Available()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrReadError, err)
	}
	return n, nil
}

func (d *Driver) readByte() (byte, error) {
	b, err := d.channel.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrReadError, err)
	}
	return b, nil
}

func (d *Driver) readN(n int) ([]byte, error) {
	buf := make([]byte, 0, n)
	for range n {
		b, err := d.readByte()
		if err != nil {
			return buf, err
		}
		buf = append(buf, b)
	}
	return buf, nil
}

// drain reads until the channel reports nothing available.
func (d *Driver) drain() ([]byte, error) {
	var buf []byte
	for {
		n, err := d.available()
		if err != nil {
			return buf, err
		}
		if n == 0 {
			return buf, nil
		}
		chunk, err := d.readN(n)
		buf = append(buf, chunk...)
		if err != nil {
			return buf, err
		}
	}
}
