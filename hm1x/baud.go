package hm1x

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"i4.energy/across/btgw/at"
)

// bauds lists every line speed the module supports with its AT+BAUD code.
// The code doubles as the I2C bridge's baud index.
var bauds = []struct {
	rate int
	code byte
}{
	{4800, 1},
	{9600, 2},
	{19200, 3},
	{38400, 4},
	{57600, 5},
	{115200, 6},
	{230400, 7},
}

// BaudRates returns the supported rates in ascending order.
func BaudRates() []int {
	rates := make([]int, len(bauds))
	for i, b := range bauds {
		rates[i] = b.rate
	}
	return rates
}

func baudCode(rate int) (byte, error) {
	for _, b := range bauds {
		if b.rate == rate {
			return b.code, nil
		}
	}
	return 0, fmt.Errorf("%d: %w", rate, ErrBaudUnsupported)
}

func baudRate(code byte) (int, error) {
	for _, b := range bauds {
		if b.code == code {
			return b.rate, nil
		}
	}
	return 0, fmt.Errorf("code %d: %w", code, ErrBaudUnsupported)
}

// Baud queries the module's configured line speed.
func (d *Driver) Baud(ctx context.Context) (int, error) {
	v, err := d.get(ctx, at.Get(at.CmdBaud), d.config.ResponseTimeout)
	if err != nil {
		return 0, err
	}
	code, err := strconv.ParseUint(v, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("baud %q: %w", v, ErrUnexpectedResponse)
	}
	return baudRate(byte(code))
}

// SetBaud changes the module's line speed. The channel keeps its own
// rate; the new rate applies once the module restarts.
func (d *Driver) SetBaud(ctx context.Context, rate int) error {
	code, err := baudCode(rate)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}
	return d.set(ctx, at.CmdBaud, strconv.Itoa(int(code)))
}

// ForceBaud recovers a module running at an unknown rate: it switches
// the channel to each supported rate in turn and asks the module to move
// to rate, stopping at the first acknowledgement. The channel must
// implement BaudSetter.
func (d *Driver) ForceBaud(ctx context.Context, rate int) error {
	if _, err := baudCode(rate); err != nil {
		return err
	}
	setter, ok := d.channel.(BaudSetter)
	if !ok {
		return fmt.Errorf("force baud: %w", ErrNotSupported)
	}

	var errs []error
	for _, b := range bauds {
		if err := setter.SetBaud(b.rate); err != nil {
			return fmt.Errorf("set channel baud %d: %w", b.rate, err)
		}
		err := d.SetBaud(ctx, rate)
		if err == nil {
			d.logger.Info("Module answered", "channel_baud", b.rate, "baud", rate)
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		errs = append(errs, fmt.Errorf("at %d: %w", b.rate, err))
	}
	return errors.Join(errs...)
}
