package at

import (
	"bytes"
	"fmt"
)

// MinNotificationLen is the shortest run the classifier will inspect.
const MinNotificationLen = 7

const (
	addressOffset = 8
	addressLen    = 12
)

// Kind identifies an unsolicited notification.
type Kind int

const (
	KindUnknown Kind = iota
	KindRestarted
	KindEDRConnected
	KindBLEConnected
	KindEDRDisconnected
	KindBLEDisconnected
)

func (k Kind) String() string {
	switch k {
	case KindRestarted:
		return "restarted"
	case KindEDRConnected:
		return "edr-connected"
	case KindBLEConnected:
		return "ble-connected"
	case KindEDRDisconnected:
		return "edr-disconnected"
	case KindBLEDisconnected:
		return "ble-disconnected"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is a classified notification. Address is empty for KindRestarted.
type Event struct {
	Kind    Kind
	Address string
}

// notifications is checked in order; the first matching prefix wins.
var notifications = []struct {
	prefix string
	kind   Kind
}{
	{NotifyRestart, KindRestarted},
	{NotifyEDRConnect, KindEDRConnected},
	{NotifyBLEConnect, KindBLEConnected},
	{NotifyEDRDisconnect, KindEDRDisconnected},
	{NotifyBLEDisconnect, KindBLEDisconnected},
}

// Classify identifies a notification at the start of run. It reports
// false for runs shorter than MinNotificationLen and for runs that do not
// begin with a known notification prefix; such runs are ordinary data.
func Classify(run []byte) (Event, bool) {
	if len(run) < MinNotificationLen {
		return Event{}, false
	}
	for _, n := range notifications {
		if !bytes.HasPrefix(run, []byte(n.prefix)) {
			continue
		}
		if n.kind == KindRestarted {
			return Event{Kind: n.kind}, true
		}
		return Event{Kind: n.kind, Address: address(run)}, true
	}
	return Event{}, false
}

// address cuts the peer address from its fixed offset, clamped to the
// run so short disconnect notices still classify.
func address(run []byte) string {
	if len(run) <= addressOffset {
		return ""
	}
	end := min(addressOffset+addressLen, len(run))
	return string(run[addressOffset:end])
}

// Value strips marker (GetReply or SetReply) from a collected reply. It
// reports false when the reply does not carry the marker.
func Value(reply []byte, marker string) (string, bool) {
	if !bytes.HasPrefix(reply, []byte(marker)) {
		return "", false
	}
	return string(reply[len(marker):]), true
}
