package hm1x

import "i4.energy/across/btgw/at"

// State is the connection state derived from module notifications.
type State struct {
	EDRConnected bool   `json:"edr_connected"`
	BLEConnected bool   `json:"ble_connected"`
	EDRAddress   string `json:"edr_address"`
	BLEAddress   string `json:"ble_address"`
}

// Apply returns the state after event. Applying the same event twice
// yields the same state as applying it once. A restart notice leaves the
// state untouched.
func (s State) Apply(event at.Event) State {
	switch event.Kind {
	case at.KindEDRConnected:
		s.EDRConnected = true
		s.EDRAddress = event.Address
	case at.KindEDRDisconnected:
		s.EDRConnected = false
		s.EDRAddress = event.Address
	case at.KindBLEConnected:
		s.BLEConnected = true
		s.BLEAddress = event.Address
	case at.KindBLEDisconnected:
		s.BLEConnected = false
		s.BLEAddress = event.Address
	}
	return s
}
