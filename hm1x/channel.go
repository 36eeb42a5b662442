package hm1x

import "context"

//go:generate go tool mockgen -source=channel.go -destination=mock_channel.go -package=hm1x

// Channel is a transport-agnostic byte link to the module.
//
// Implementations never block waiting for data: Available reports how
// many received bytes can be read right now, and ReadByte returns one of
// them. Serial ports, I2C bridges and in-memory fakes all satisfy it.
type Channel interface {
	// Available returns the number of bytes that can be read without
	// waiting.
	Available() (int, error)
	// ReadByte returns the next received byte.
	ReadByte() (byte, error)
	// Write transmits p as-is.
	Write(p []byte) (int, error)
}

// BaudSetter is implemented by channels that can change their own line
// speed. The baud recovery procedure requires it.
type BaudSetter interface {
	SetBaud(baud int) error
}

// BaudChannel is a Channel that can change its line speed.
type BaudChannel interface {
	Channel
	BaudSetter
}

// Dialer opens a Channel to the module.
//
// Dialer abstracts how the link is created (serial port, I2C bridge or a
// test double) and is used during Driver construction only.
type Dialer interface {
	// Dial creates and returns a ready Channel. It should respect
	// cancellation of ctx.
	Dial(ctx context.Context) (Channel, error)
}

// DialerFunc adapts a function to the Dialer interface.
type DialerFunc func(ctx context.Context) (Channel, error)

// Dial calls f(ctx).
func (f DialerFunc) Dial(ctx context.Context) (Channel, error) {
	return f(ctx)
}
