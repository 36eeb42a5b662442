package hm1x_test

import "i4.energy/across/btgw/hm1x"

type MockSequenceBuilder struct {
	channel *hm1x.MockChannel
	calls   []any
}

func NewMockSequence(channel *hm1x.MockChannel) *MockSequenceBuilder {
	return &MockSequenceBuilder{
		channel: channel,
		calls:   []any{},
	}
}

// Exact expects frame to be written and answered with reply, read back
// byte by byte once all of it is available.
func (b *MockSequenceBuilder) Exact(frame, reply string) *MockSequenceBuilder {
	b.calls = append(b.calls,
		b.channel.EXPECT().Write([]byte(frame)).Return(len(frame), nil),
		b.channel.EXPECT().Available().Return(len(reply), nil),
	)
	b.readBytes(reply)
	return b
}

// Collect expects frame to be written and reply to be drained after the
// collection window.
func (b *MockSequenceBuilder) Collect(frame, reply string) *MockSequenceBuilder {
	b.calls = append(b.calls,
		b.channel.EXPECT().Write([]byte(frame)).Return(len(frame), nil),
	)
	if reply != "" {
		b.calls = append(b.calls, b.channel.EXPECT().Available().Return(len(reply), nil))
		b.readBytes(reply)
	}
	b.calls = append(b.calls, b.channel.EXPECT().Available().Return(0, nil))
	return b
}

func (b *MockSequenceBuilder) readBytes(reply string) {
	for i := range len(reply) {
		b.calls = append(b.calls, b.channel.EXPECT().ReadByte().Return(reply[i], nil))
	}
}

func (b *MockSequenceBuilder) AT() *MockSequenceBuilder {
	return b.Collect("AT", "OK")
}

func (b *MockSequenceBuilder) NoReply() *MockSequenceBuilder {
	return b.Collect("AT", "")
}

func (b *MockSequenceBuilder) NotificationsOff() *MockSequenceBuilder {
	return b.Exact("AT+NOTP0", "OK+Set:0").Exact("AT+NOTI0", "OK+Set:0")
}

func (b *MockSequenceBuilder) NotificationsOn() *MockSequenceBuilder {
	return b.Exact("AT+NOTP1", "OK+Set:1").Exact("AT+NOTI1", "OK+Set:1")
}

func (b *MockSequenceBuilder) Build() []any {
	return b.calls
}

func initMockCalls(channel *hm1x.MockChannel) []any {
	return NewMockSequence(channel).
		AT().
		NotificationsOff().
		Build()
}
