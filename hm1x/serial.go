package hm1x

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smallnest/ringbuffer"
	"go.bug.st/serial"
)

const (
	// DefaultRxBufferSize is the receive FIFO of a serial channel.
	DefaultRxBufferSize = 256
	// DefaultSerialReadTimeout bounds each port read made while checking
	// for new bytes.
	DefaultSerialReadTimeout = time.Millisecond
)

// SerialDialer opens the module over a serial port using go.bug.st/serial.
type SerialDialer struct {
	// PortName is the device path, e.g. /dev/ttyUSB0.
	PortName string
	// Mode is the line configuration. Nil means DefaultBaudRate 8N1.
	Mode *serial.Mode
	// BufferSize is the receive FIFO size. Zero means DefaultRxBufferSize.
	BufferSize int
	// ReadTimeout bounds each port read. Zero means
	// DefaultSerialReadTimeout.
	ReadTimeout time.Duration
}

// Dial opens the port and returns a Channel that also implements
// BaudSetter and io.Closer.
func (d SerialDialer) Dial(ctx context.Context) (Channel, error) {
	if ctx == nil {
		return nil, errors.New("hm1x: context is nil")
	}
	if d.PortName == "" {
		return nil, errors.New("hm1x: serial port name is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode := serial.Mode{
		BaudRate: DefaultBaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	if d.Mode != nil {
		mode = *d.Mode
	}
	timeout := d.ReadTimeout
	if timeout == 0 {
		timeout = DefaultSerialReadTimeout
	}

	port, err := serial.Open(d.PortName, &mode)
	if err != nil {
		return nil, fmt.Errorf("hm1x: open %s: %w", d.PortName, err)
	}
	if err := port.SetReadTimeout(timeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("hm1x: set read timeout on %s: %w", d.PortName, err)
	}
	return newSerialChannel(port, mode, d.BufferSize), nil
}

// serialChannel adapts a blocking serial.Port to the non-blocking
// Channel contract. Every Available call moves whatever the port has
// into a ring buffer; ReadByte serves from it.
type serialChannel struct {
	port    serial.Port
	mode    serial.Mode
	rx      *ringbuffer.RingBuffer
	scratch []byte
}

func newSerialChannel(port serial.Port, mode serial.Mode, size int) *serialChannel {
	if size <= 0 {
		size = DefaultRxBufferSize
	}
	return &serialChannel{
		port:    port,
		mode:    mode,
		rx:      ringbuffer.New(size),
		scratch: make([]byte, size),
	}
}

func (c *serialChannel) Available() (int, error) {
	if err := c.fill(); err != nil {
		return c.rx.Length(), err
	}
	return c.rx.Length(), nil
}

func (c *serialChannel) fill() error {
	free := c.rx.Free()
	if free == 0 {
		return nil
	}
	n, err := c.port.Read(c.scratch[:free])
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	if _, err := c.rx.Write(c.scratch[:n]); err != nil {
		return fmt.Errorf("%w: %w", ErrRxOverflow, err)
	}
	return nil
}

func (c *serialChannel) ReadByte() (byte, error) {
	if c.rx.IsEmpty() {
		if err := c.fill(); err != nil {
			return 0, err
		}
	}
	return c.rx.ReadByte()
}

func (c *serialChannel) Write(p []byte) (int, error) {
	return c.port.Write(p)
}

// SetBaud reconfigures the port. Bytes received at the old rate are
// discarded.
func (c *serialChannel) SetBaud(baud int) error {
	mode := c.mode
	mode.BaudRate = baud
	if err := c.port.SetMode(&mode); err != nil {
		return err
	}
	c.mode = mode
	c.rx.Reset()
	return c.port.ResetInputBuffer()
}

func (c *serialChannel) Close() error {
	return c.port.Close()
}

var _ BaudChannel = (*serialChannel)(nil)
