package hm1x

import (
	"context"
	"fmt"
	"time"

	"i4.energy/across/btgw/at"
)

// Radio selects one of the module's two radios.
type Radio int

const (
	// EDR is the classic Bluetooth (SPP) radio.
	EDR Radio = iota
	// BLE is the Bluetooth Low Energy radio.
	BLE
)

func (r Radio) String() string {
	switch r {
	case EDR:
		return "edr"
	case BLE:
		return "ble"
	default:
		return fmt.Sprintf("Radio(%d)", int(r))
	}
}

// ParseRadio accepts "edr" or "ble".
func ParseRadio(s string) (Radio, error) {
	switch s {
	case "edr", "EDR":
		return EDR, nil
	case "ble", "BLE":
		return BLE, nil
	}
	return 0, fmt.Errorf("radio %q: %w", s, ErrUnexpectedResponse)
}

// radioCommands holds the per-radio command tokens.
type radioCommands struct {
	name        string
	address     string
	lastAddress string
	clearLast   string
	clearBond   string
	role        string
	pin         string
}

var radios = map[Radio]radioCommands{
	EDR: {
		name:        at.CmdEDRName,
		address:     at.CmdEDRAddress,
		lastAddress: at.CmdLastEDR,
		clearLast:   at.CmdClearLastEDR,
		clearBond:   at.CmdClearBondEDR,
		role:        at.CmdEDRRole,
		pin:         at.CmdEDRPin,
	},
	BLE: {
		name:        at.CmdBLEName,
		address:     at.CmdBLEAddress,
		lastAddress: at.CmdLastBLE,
		clearLast:   at.CmdClearLastBLE,
		clearBond:   at.CmdClearBondBLE,
		role:        at.CmdBLERole,
		pin:         at.CmdBLEPin,
	},
}

func commandsFor(r Radio) (radioCommands, error) {
	cmds, ok := radios[r]
	if !ok {
		return radioCommands{}, fmt.Errorf("%s: %w", r, ErrUnexpectedResponse)
	}
	return cmds, nil
}

// Feature is a module switch set with a single 0/1 argument.
type Feature int

const (
	// FeatureHighSpeedSPP favors SPP throughput over BLE.
	FeatureHighSpeedSPP Feature = iota
	// FeatureDualMode allows EDR and BLE links at the same time.
	FeatureDualMode
	// FeatureRemoteControl lets a connected peer send AT commands.
	FeatureRemoteControl
	// FeatureAtoB routes data between an EDR and a BLE peer.
	FeatureAtoB
	FeatureAuthentication
	FeatureIBeacon
	FeatureSafeMode
	// FeatureBLEAddressDisabled stops the module using its BLE MAC
	// address. Android centrals will not find it.
	FeatureBLEAddressDisabled
	// FeatureSystemKey enables the system key on PIO0.
	FeatureSystemKey
	// FeatureUpdateConnParams lets a BLE peripheral request new
	// connection parameters.
	FeatureUpdateConnParams
	// FeatureNotifyInfo turns connect/disconnect notifications on.
	FeatureNotifyInfo
	// FeatureNotifyAddress includes the peer address in notifications.
	FeatureNotifyAddress
)

type toggle struct {
	name string
	// inverted commands send "0" to enable
	inverted bool
}

var features = map[Feature]toggle{
	FeatureHighSpeedSPP:       {name: at.CmdHighSpeed},
	FeatureDualMode:           {name: at.CmdDualMode, inverted: true},
	FeatureRemoteControl:      {name: at.CmdWorkMode},
	FeatureAtoB:               {name: at.CmdAtoB},
	FeatureAuthentication:     {name: at.CmdAuth},
	FeatureIBeacon:            {name: at.CmdIBeacon},
	FeatureSafeMode:           {name: at.CmdSafeMode},
	FeatureBLEAddressDisabled: {name: at.CmdBLEMac},
	FeatureSystemKey:          {name: at.CmdSystemKey},
	FeatureUpdateConnParams:   {name: at.CmdUpdateConnParam},
	FeatureNotifyInfo:         {name: at.CmdNotifyInfo},
	FeatureNotifyAddress:      {name: at.CmdNotifyMode},
}

// SetFeature switches a module feature on or off.
func (d *Driver) SetFeature(ctx context.Context, f Feature, on bool) error {
	t, ok := features[f]
	if !ok {
		return fmt.Errorf("feature %d: %w", int(f), ErrUnexpectedResponse)
	}
	return d.set(ctx, t.name, flag(on != t.inverted))
}

func flag(on bool) string {
	if on {
		return "1"
	}
	return "0"
}

// action runs a parameterless command acknowledged with "OK+<name>".
func (d *Driver) action(ctx context.Context, name string) error {
	return d.sendAndAwaitExact(ctx, at.Command{Name: name}, at.Ack(name), d.config.CommandTimeout)
}

// set sends name+value and expects "OK+Set:<value>".
func (d *Driver) set(ctx context.Context, name, value string) error {
	return d.sendAndAwaitExact(ctx, at.Set(name, value), at.SetAck(value), d.config.CommandTimeout)
}

// get collects the reply to cmd for timeout and returns the text after
// "OK+Get:".
func (d *Driver) get(ctx context.Context, cmd at.Command, timeout time.Duration) (string, error) {
	reply, err := d.sendAndCollectForDuration(ctx, cmd, timeout)
	if err != nil {
		return "", err
	}
	if len(reply) == 0 {
		return "", fmt.Errorf("%s: %w", cmd, ErrTimeout)
	}
	v, ok := at.Value(reply, at.GetReply)
	if !ok {
		return "", fmt.Errorf("%s: got %q: %w", cmd, reply, ErrUnexpectedResponse)
	}
	return v, nil
}

// invalid reports a parameter rejected before anything is sent.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrUnexpectedResponse)
}
