package hm1x

import (
	"context"
	"fmt"
	"io"

	"i4.energy/across/btgw/at"
)

// PollResult describes what a Poll call found on the channel.
type PollResult int

const (
	// PollNothing means no bytes were available.
	PollNothing PollResult = iota
	// PollHandled means the bytes were a notification and the connection
	// state was updated.
	PollHandled
	// PollUnhandled means the bytes were appended to the residue buffer.
	PollUnhandled
)

func (r PollResult) String() string {
	switch r {
	case PollNothing:
		return "nothing"
	case PollHandled:
		return "handled"
	case PollUnhandled:
		return "unhandled"
	default:
		return fmt.Sprintf("PollResult(%d)", int(r))
	}
}

// SetupPoll enables connect/disconnect notifications (with peer address)
// and switches the stream methods to the residue buffer fed by Poll.
func (d *Driver) SetupPoll(ctx context.Context) error {
	if err := d.Notify(ctx, true, true); err != nil {
		return err
	}
	d.polling = true
	return nil
}

// Polling reports whether SetupPoll has succeeded.
func (d *Driver) Polling() bool {
	return d.polling
}

// Poll drains the channel, pacing reads by PollDelay, and classifies the
// bytes as one run. A notification updates the connection state. Anything
// else is kept for Read in arrival order once SetupPoll has succeeded;
// before that Read bypasses the residue, so unclassified runs are dropped.
// Poll is meant to be called repeatedly from the caller's own loop.
func (d *Driver) Poll(ctx context.Context) (PollResult, error) {
	var run []byte
	// keep what was read before a failure so the stream stays in order
	fail := func(err error) (PollResult, error) {
		d.keep(run)
		return PollNothing, err
	}
	for {
		n, err := d.available()
		if err != nil {
			return fail(err)
		}
		if n == 0 {
			break
		}
		b, err := d.readByte()
		if err != nil {
			return fail(err)
		}
		run = append(run, b)
		if err := d.wait(ctx, d.config.PollDelay); err != nil {
			return fail(err)
		}
	}

	if len(run) == 0 {
		return PollNothing, nil
	}
	if event, ok := at.Classify(run); ok {
		d.apply(event)
		return PollHandled, nil
	}
	d.keep(run)
	return PollUnhandled, nil
}

func (d *Driver) keep(run []byte) {
	if len(run) == 0 {
		return
	}
	if !d.polling {
		d.logger.Debug("Dropping unclassified data outside polling mode", "length", len(run))
		return
	}
	d.residue.Write(run)
}

// Available returns the number of bytes Read can return: the residue
// buffer when polling, otherwise the channel's count.
func (d *Driver) Available() (int, error) {
	if d.polling {
		return d.residue.Len(), nil
	}
	return d.available()
}

// ReadByte returns the next byte of the stream. When polling and the
// residue buffer is empty it returns io.EOF.
func (d *Driver) ReadByte() (byte, error) {
	if d.polling {
		return d.residue.ReadByte()
	}
	return d.readByte()
}

// Read reads up to len(p) bytes that are already available. It returns
// io.EOF when nothing is.
func (d *Driver) Read(p []byte) (int, error) {
	if d.polling {
		return d.residue.Read(p)
	}
	n, err := d.available()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	buf, err := d.readN(min(n, len(p)))
	return copy(p, buf), err
}

// Write sends p straight to the channel in either mode.
func (d *Driver) Write(p []byte) (int, error) {
	if d.closed {
		return 0, ErrAlreadyClosed
	}
	return d.channel.Write(p)
}

func (d *Driver) WriteByte(c byte) error {
	_, err := d.Write([]byte{c})
	return err
}

func (d *Driver) WriteString(s string) (int, error) {
	return d.Write([]byte(s))
}

var (
	_ io.Reader       = (*Driver)(nil)
	_ io.ByteReader   = (*Driver)(nil)
	_ io.Writer       = (*Driver)(nil)
	_ io.ByteWriter   = (*Driver)(nil)
	_ io.StringWriter = (*Driver)(nil)
)
