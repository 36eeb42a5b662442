package hm1x_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"go.uber.org/mock/gomock"
	"i4.energy/across/btgw/hm1x"
)

func TestBaudRates(t *testing.T) {
	want := []int{4800, 9600, 19200, 38400, 57600, 115200, 230400}
	if got := hm1x.BaudRates(); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestBaud(t *testing.T) {
	t.Run("Code is decoded", func(t *testing.T) {
		ch := hm1x.NewFakeChannel().Reply("AT+BAUD?", "OK+Get:4")
		d, _ := newTestDriver(t, ch)

		got, err := d.Baud(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 38400 {
			t.Errorf("expected 38400, got %d", got)
		}
	})

	t.Run("Unknown code is ErrBaudUnsupported", func(t *testing.T) {
		ch := hm1x.NewFakeChannel().Reply("AT+BAUD?", "OK+Get:9")
		d, _ := newTestDriver(t, ch)

		if _, err := d.Baud(context.Background()); !errors.Is(err, hm1x.ErrBaudUnsupported) {
			t.Errorf("expected ErrBaudUnsupported, got: %v", err)
		}
	})

	t.Run("SetBaud sends the code", func(t *testing.T) {
		ch := hm1x.NewFakeChannel().Reply("AT+BAUD6", "OK+Set:6")
		d, _ := newTestDriver(t, ch)

		if err := d.SetBaud(context.Background(), 115200); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if ch.Baud() != hm1x.DefaultBaudRate {
			t.Errorf("SetBaud must not touch the channel rate, got %d", ch.Baud())
		}
	})

	t.Run("SetBaud rejects unknown rates locally", func(t *testing.T) {
		ch := hm1x.NewFakeChannel()
		d, _ := newTestDriver(t, ch)

		if err := d.SetBaud(context.Background(), 14400); !errors.Is(err, hm1x.ErrUnexpectedResponse) {
			t.Errorf("expected ErrUnexpectedResponse, got: %v", err)
		}
		if got := ch.Written(); len(got) != 0 {
			t.Errorf("expected nothing written, got %q", got)
		}
	})
}

func TestForceBaud(t *testing.T) {
	t.Run("Stops at the first rate that answers", func(t *testing.T) {
		ch := hm1x.NewFakeChannel().ReplyAt(57600, "AT+BAUD2", "OK+Set:2")
		d, _ := newTestDriver(t, ch)

		if err := d.ForceBaud(context.Background(), 9600); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ch.Baud() != 57600 {
			t.Errorf("expected channel left at 57600, got %d", ch.Baud())
		}
		if got := len(ch.Written()); got != 5 {
			t.Errorf("expected 5 attempts, got %d", got)
		}
	})

	t.Run("All rates failing joins the errors", func(t *testing.T) {
		ch := hm1x.NewFakeChannel()
		d, _ := newTestDriver(t, ch)

		err := d.ForceBaud(context.Background(), 9600)
		if !errors.Is(err, hm1x.ErrTimeout) {
			t.Errorf("expected ErrTimeout, got: %v", err)
		}
		if got := len(ch.Written()); got != len(hm1x.BaudRates()) {
			t.Errorf("expected every rate to be tried, got %d attempts", got)
		}
	})

	t.Run("Unsupported target rate", func(t *testing.T) {
		d, _ := newTestDriver(t, hm1x.NewFakeChannel())

		if err := d.ForceBaud(context.Background(), 300); !errors.Is(err, hm1x.ErrBaudUnsupported) {
			t.Errorf("expected ErrBaudUnsupported, got: %v", err)
		}
	})

	t.Run("ErrNotSupported without BaudSetter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		d, _ := newTestDriver(t, hm1x.NewMockChannel(ctrl))

		if err := d.ForceBaud(context.Background(), 9600); !errors.Is(err, hm1x.ErrNotSupported) {
			t.Errorf("expected ErrNotSupported, got: %v", err)
		}
	})

	t.Run("Channel baud error aborts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		setErr := errors.New("ioctl failed")
		mockChannel := hm1x.NewMockBaudChannel(ctrl)
		mockChannel.EXPECT().SetBaud(4800).Return(setErr)
		d, _ := newTestDriver(t, mockChannel)

		if err := d.ForceBaud(context.Background(), 9600); !errors.Is(err, setErr) {
			t.Errorf("expected channel error, got: %v", err)
		}
	})
}
