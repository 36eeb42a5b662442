package hm1x

import (
	"io"
	"sync"
	"time"
)

// FakeChannel is an in-memory module for tests. Replies are scripted
// per command frame and become readable as soon as the frame is written.
type FakeChannel struct {
	mu      sync.Mutex
	rx      []byte
	written []string
	script  []scriptedReply
	baud    int
	closed  bool
}

type scriptedReply struct {
	frame string
	// baud limits the reply to one channel rate; zero matches any
	baud  int
	reply string
}

// NewFakeChannel returns an empty FakeChannel running at DefaultBaudRate.
func NewFakeChannel() *FakeChannel {
	return &FakeChannel{baud: DefaultBaudRate}
}

// Reply queues reply for the next write of frame. Replies for the same
// frame are used in the order they were queued.
func (f *FakeChannel) Reply(frame, reply string) *FakeChannel {
	return f.ReplyAt(0, frame, reply)
}

// ReplyAt is like Reply but only answers while the channel runs at baud.
func (f *FakeChannel) ReplyAt(baud int, frame, reply string) *FakeChannel {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.script = append(f.script, scriptedReply{frame: frame, baud: baud, reply: reply})
	return f
}

// SendData makes data readable, as if the module sent it unprompted.
func (f *FakeChannel) SendData(data string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rx = append(f.rx, data...)
}

// Written returns every frame written so far.
func (f *FakeChannel) Written() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.written...)
}

// Baud returns the channel's current rate.
func (f *FakeChannel) Baud() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.baud
}

// Closed reports whether Close was called.
func (f *FakeChannel) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *FakeChannel) Available() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rx), nil
}

func (f *FakeChannel) ReadByte() (byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.rx) == 0 {
		return 0, io.EOF
	}
	b := f.rx[0]
	f.rx = f.rx[1:]
	return b, nil
}

func (f *FakeChannel) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return 0, io.ErrClosedPipe
	}
	frame := string(p)
	f.written = append(f.written, frame)
	for i, s := range f.script {
		if s.frame == frame && (s.baud == 0 || s.baud == f.baud) {
			f.rx = append(f.rx, s.reply...)
			f.script = append(f.script[:i], f.script[i+1:]...)
			break
		}
	}
	return len(p), nil
}

func (f *FakeChannel) SetBaud(baud int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.baud = baud
	return nil
}

func (f *FakeChannel) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// FakeClock is a Clock whose Sleep only advances Now.
type FakeClock struct {
	mu    sync.Mutex
	now   time.Time
	slept time.Duration
}

// NewFakeClock returns a FakeClock starting at an arbitrary fixed time.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	c.slept += d
}

// Slept returns the total time passed to Sleep.
func (c *FakeClock) Slept() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slept
}
