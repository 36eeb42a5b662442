package hm1x

import (
	"context"
	"errors"
	"fmt"

	"tinygo.org/x/drivers"
)

// I2C addresses of the Qwiic bridge.
const (
	I2CAddressDefault = 0x1B
	I2CAddressJumped  = 0x1C

	i2cAddressMin = 0x08
	i2cAddressMax = 0x77
)

// Bridge register commands.
const (
	i2cCmdAvailable byte = iota
	i2cCmdRead
	i2cCmdWrite
	i2cCmdSetBaud
	i2cCmdSetAddress
)

// i2cMaxPayload keeps each write inside a 32-byte bus transaction.
const i2cMaxPayload = 31

// I2CChannel talks to the module through the Qwiic bridge, which buffers
// the module's UART and exposes it as bridge commands.
type I2CChannel struct {
	bus     drivers.I2C
	address uint16
}

// NewI2CChannel returns a channel for the bridge at address on bus.
func NewI2CChannel(bus drivers.I2C, address uint8) *I2CChannel {
	return &I2CChannel{bus: bus, address: uint16(address)}
}

// Address returns the bridge address in use.
func (c *I2CChannel) Address() uint8 {
	return uint8(c.address)
}

func (c *I2CChannel) Available() (int, error) {
	r := make([]byte, 1)
	if err := c.bus.Tx(c.address, []byte{i2cCmdAvailable}, r); err != nil {
		return 0, err
	}
	return int(r[0]), nil
}

func (c *I2CChannel) ReadByte() (byte, error) {
	r := make([]byte, 1)
	if err := c.bus.Tx(c.address, []byte{i2cCmdRead, 1}, r); err != nil {
		return 0, err
	}
	return r[0], nil
}

func (c *I2CChannel) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		chunk := p[:min(len(p), i2cMaxPayload)]
		w := append([]byte{i2cCmdWrite}, chunk...)
		if err := c.bus.Tx(c.address, w, nil); err != nil {
			return written, err
		}
		written += len(chunk)
		p = p[len(chunk):]
	}
	return written, nil
}

// SetBaud sets the bridge's UART to baud.
func (c *I2CChannel) SetBaud(baud int) error {
	code, err := baudCode(baud)
	if err != nil {
		return err
	}
	return c.bus.Tx(c.address, []byte{i2cCmdSetBaud, code}, nil)
}

// SetAddress moves the bridge to a new 7-bit address and keeps using it.
func (c *I2CChannel) SetAddress(address uint8) error {
	if address < i2cAddressMin || address > i2cAddressMax {
		return fmt.Errorf("i2c address %#x: %w", address, ErrNotSupported)
	}
	if err := c.bus.Tx(c.address, []byte{i2cCmdSetAddress, address}, nil); err != nil {
		return err
	}
	c.address = uint16(address)
	return nil
}

var _ BaudChannel = (*I2CChannel)(nil)

// I2CDialer opens the module through a Qwiic bridge on Bus.
type I2CDialer struct {
	Bus drivers.I2C
	// Address is the bridge address. Zero means I2CAddressDefault.
	Address uint8
}

func (d I2CDialer) Dial(ctx context.Context) (Channel, error) {
	if ctx == nil {
		return nil, errors.New("hm1x: context is nil")
	}
	if d.Bus == nil {
		return nil, errors.New("hm1x: i2c bus is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	address := d.Address
	if address == 0 {
		address = I2CAddressDefault
	}
	return NewI2CChannel(d.Bus, address), nil
}
