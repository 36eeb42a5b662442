package hm1x

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"i4.energy/across/btgw/at"
)

const (
	// MaxNameLen is the longest name either radio accepts.
	MaxNameLen = 28
	// MaxPINLen is the longest pairing code either radio accepts.
	MaxPINLen = 6
	// MaxClassOfDevice is the largest settable class of device.
	MaxClassOfDevice = 0xFFFFFE
	// MaxIBeaconVersion is the largest iBeacon major or minor value.
	MaxIBeaconVersion = 0xFFFE

	disconnectReplyLen = 20
	addressLen         = 12
	uuidPartLen        = 8
)

// ProbeResult tells which reply answered a liveness probe.
type ProbeResult int

const (
	// ProbeOK is a plain "OK".
	ProbeOK ProbeResult = iota
	// ProbeDisconnected is a disconnect notice: the probe dropped a peer.
	ProbeDisconnected
	// ProbeOther is any other non-empty reply.
	ProbeOther
)

func (r ProbeResult) String() string {
	switch r {
	case ProbeOK:
		return "ok"
	case ProbeDisconnected:
		return "disconnected"
	default:
		return "other"
	}
}

// TestOrDisconnect sends the bare "AT" probe. The module answers "OK",
// or, when a peer is connected, drops the link and reports a disconnect.
// Any non-empty reply counts as success; the result says which case
// fired. A recognized notification also updates the connection state.
func (d *Driver) TestOrDisconnect(ctx context.Context) (ProbeResult, error) {
	reply, err := d.sendAndCollectForDuration(ctx, at.Command{}, d.config.CommandTimeout)
	if err != nil {
		return ProbeOther, err
	}

	switch {
	case len(reply) == 0:
		return ProbeOther, fmt.Errorf("%s: %w", at.Prefix, ErrTimeout)
	case string(reply) == at.OK:
		return ProbeOK, nil
	}
	if event, ok := at.Classify(reply); ok {
		d.apply(event)
		if event.Kind == at.KindEDRDisconnected || event.Kind == at.KindBLEDisconnected {
			return ProbeDisconnected, nil
		}
	}
	if len(reply) == disconnectReplyLen {
		return ProbeDisconnected, nil
	}
	d.logger.Debug("Unrecognized probe reply", "reply", string(reply))
	return ProbeOther, nil
}

// Test checks the module answers.
func (d *Driver) Test(ctx context.Context) error {
	_, err := d.TestOrDisconnect(ctx)
	return err
}

// Disconnect drops a connected peer.
func (d *Driver) Disconnect(ctx context.Context) error {
	_, err := d.TestOrDisconnect(ctx)
	return err
}

// FactoryReset restores the module's factory defaults.
func (d *Driver) FactoryReset(ctx context.Context) error {
	return d.action(ctx, at.CmdFactoryDefaults)
}

// Reset restarts the module.
func (d *Driver) Reset(ctx context.Context) error {
	return d.action(ctx, at.CmdReset)
}

// Version returns the firmware version string.
func (d *Driver) Version(ctx context.Context) (string, error) {
	return d.get(ctx, at.Get(at.CmdVersion), d.config.CommandTimeout)
}

// Notify configures connect/disconnect notifications and whether they
// carry the peer address. Both settings are always sent.
func (d *Driver) Notify(ctx context.Context, enabled, withAddress bool) error {
	return errors.Join(
		d.SetFeature(ctx, FeatureNotifyAddress, withAddress),
		d.SetFeature(ctx, FeatureNotifyInfo, enabled),
	)
}

// Name returns the advertised name of radio r.
func (d *Driver) Name(ctx context.Context, r Radio) (string, error) {
	cmds, err := commandsFor(r)
	if err != nil {
		return "", err
	}
	return d.get(ctx, at.Get(cmds.name), d.config.ResponseTimeout)
}

// SetName sets the advertised name of radio r, at most MaxNameLen
// characters.
func (d *Driver) SetName(ctx context.Context, r Radio, name string) error {
	cmds, err := commandsFor(r)
	if err != nil {
		return err
	}
	if name == "" || len(name) > MaxNameLen {
		return invalid("name length %d", len(name))
	}
	return d.set(ctx, cmds.name, name)
}

// Address returns the module's own address on radio r.
func (d *Driver) Address(ctx context.Context, r Radio) (string, error) {
	cmds, err := commandsFor(r)
	if err != nil {
		return "", err
	}
	return d.get(ctx, at.Get(cmds.address), d.config.ResponseTimeout)
}

// SetAddress sets the module's address on radio r. addr is 12 hex digits.
func (d *Driver) SetAddress(ctx context.Context, r Radio, addr string) error {
	cmds, err := commandsFor(r)
	if err != nil {
		return err
	}
	if !isHex(addr, addressLen) {
		return invalid("address %q", addr)
	}
	return d.set(ctx, cmds.address, strings.ToUpper(addr))
}

// LastAddress returns the address of the last peer connected on radio r.
func (d *Driver) LastAddress(ctx context.Context, r Radio) (string, error) {
	cmds, err := commandsFor(r)
	if err != nil {
		return "", err
	}
	return d.get(ctx, at.Get(cmds.lastAddress), d.config.ResponseTimeout)
}

// ClearLastAddress forgets the last connected peer on radio r.
func (d *Driver) ClearLastAddress(ctx context.Context, r Radio) error {
	cmds, err := commandsFor(r)
	if err != nil {
		return err
	}
	return d.action(ctx, cmds.clearLast)
}

// ClearBond removes bonding information on radio r.
func (d *Driver) ClearBond(ctx context.Context, r Radio) error {
	cmds, err := commandsFor(r)
	if err != nil {
		return err
	}
	return d.action(ctx, cmds.clearBond)
}

// Role is a radio's link role. For EDR the module calls these slave and
// master.
type Role int

const (
	RolePeripheral Role = iota
	RoleCentral
)

func (r Role) String() string {
	switch r {
	case RolePeripheral:
		return "peripheral"
	case RoleCentral:
		return "central"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Role returns the link role of radio r.
func (d *Driver) Role(ctx context.Context, r Radio) (Role, error) {
	cmds, err := commandsFor(r)
	if err != nil {
		return 0, err
	}
	v, err := d.get(ctx, at.Get(cmds.role), d.config.ResponseTimeout)
	if err != nil {
		return 0, err
	}
	switch v {
	case "0":
		return RolePeripheral, nil
	case "1":
		return RoleCentral, nil
	}
	return 0, fmt.Errorf("role %q: %w", v, ErrUnexpectedResponse)
}

// SetRole sets the link role of radio r.
func (d *Driver) SetRole(ctx context.Context, r Radio, role Role) error {
	cmds, err := commandsFor(r)
	if err != nil {
		return err
	}
	if role != RolePeripheral && role != RoleCentral {
		return invalid("role %d", int(role))
	}
	return d.set(ctx, cmds.role, strconv.Itoa(int(role)))
}

// PIN returns the pairing code of radio r.
func (d *Driver) PIN(ctx context.Context, r Radio) (string, error) {
	cmds, err := commandsFor(r)
	if err != nil {
		return "", err
	}
	return d.get(ctx, at.Get(cmds.pin), d.config.ResponseTimeout)
}

// SetPIN sets the numeric pairing code of radio r, at most MaxPINLen
// digits.
func (d *Driver) SetPIN(ctx context.Context, r Radio, pin string) error {
	cmds, err := commandsFor(r)
	if err != nil {
		return err
	}
	if pin == "" || len(pin) > MaxPINLen || strings.Trim(pin, "0123456789") != "" {
		return invalid("pin %q", pin)
	}
	return d.set(ctx, cmds.pin, pin)
}

// SetClassOfDevice sets the EDR class of device.
func (d *Driver) SetClassOfDevice(ctx context.Context, cod uint32) error {
	if cod > MaxClassOfDevice {
		return invalid("class of device %#x", cod)
	}
	return d.set(ctx, at.CmdClassOfDevice, fmt.Sprintf("%06X", cod))
}

// IBeaconUUID reads the iBeacon UUID, which the module stores in four
// 8-digit parts.
func (d *Driver) IBeaconUUID(ctx context.Context) (uuid.UUID, error) {
	var sb strings.Builder
	for pos := range 4 {
		part, err := d.get(ctx, at.Get(at.CmdIBeaconUUID+strconv.Itoa(pos)), d.config.ResponseTimeout)
		if err != nil {
			return uuid.Nil, err
		}
		sb.WriteString(part)
	}
	u, err := uuid.Parse(sb.String())
	if err != nil {
		return uuid.Nil, fmt.Errorf("ibeacon uuid %q: %w", sb.String(), ErrUnexpectedResponse)
	}
	return u, nil
}

// SetIBeaconUUID writes the iBeacon UUID part by part.
func (d *Driver) SetIBeaconUUID(ctx context.Context, u uuid.UUID) error {
	digits := strings.ToUpper(hex.EncodeToString(u[:]))
	for pos := range 4 {
		if err := d.SetIBeaconUUIDPart(ctx, pos, digits[pos*uuidPartLen:(pos+1)*uuidPartLen]); err != nil {
			return err
		}
	}
	return nil
}

// SetIBeaconUUIDPart writes one 8-digit part (0-3) of the iBeacon UUID.
func (d *Driver) SetIBeaconUUIDPart(ctx context.Context, pos int, part string) error {
	if pos < 0 || pos > 3 {
		return invalid("uuid position %d", pos)
	}
	if !isHex(part, uuidPartLen) {
		return invalid("uuid part %q", part)
	}
	return d.set(ctx, at.CmdIBeaconUUID+strconv.Itoa(pos), part)
}

func (d *Driver) IBeaconMajor(ctx context.Context) (uint16, error) {
	return d.getHex16(ctx, at.CmdIBeaconMajor)
}

func (d *Driver) SetIBeaconMajor(ctx context.Context, major uint16) error {
	return d.setVersion(ctx, at.CmdIBeaconMajor, major)
}

func (d *Driver) IBeaconMinor(ctx context.Context) (uint16, error) {
	return d.getHex16(ctx, at.CmdIBeaconMinor)
}

func (d *Driver) SetIBeaconMinor(ctx context.Context, minor uint16) error {
	return d.setVersion(ctx, at.CmdIBeaconMinor, minor)
}

func (d *Driver) setVersion(ctx context.Context, name string, v uint16) error {
	if v > MaxIBeaconVersion {
		return invalid("%s %#x", name, v)
	}
	return d.set(ctx, name, fmt.Sprintf("%04X", v))
}

func (d *Driver) getHex16(ctx context.Context, name string) (uint16, error) {
	v, err := d.get(ctx, at.Get(name), d.config.ResponseTimeout)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(v, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", name, v, ErrUnexpectedResponse)
	}
	return uint16(n), nil
}

// IBeaconPower returns the measured power advertised at one metre.
func (d *Driver) IBeaconPower(ctx context.Context) (uint8, error) {
	v, err := d.get(ctx, at.Get(at.CmdIBeaconPower), d.config.ResponseTimeout)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(v, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("power %q: %w", v, ErrUnexpectedResponse)
	}
	return uint8(n), nil
}

func (d *Driver) SetIBeaconPower(ctx context.Context, power uint8) error {
	return d.set(ctx, at.CmdIBeaconPower, fmt.Sprintf("%02X", power))
}

// MTUSize is the BLE payload size the module negotiates.
type MTUSize int

const (
	MTU60 MTUSize = iota
	MTU120
)

func (d *Driver) SetMTUSize(ctx context.Context, size MTUSize) error {
	if size != MTU60 && size != MTU120 {
		return invalid("mtu size %d", int(size))
	}
	return d.set(ctx, at.CmdMTUSize, strconv.Itoa(int(size)))
}

// AdvertType is how the EDR radio can be found.
type AdvertType int

const (
	AdvertDiscoverable AdvertType = iota
	AdvertConnectableOnly
)

func (d *Driver) AdvertType(ctx context.Context) (AdvertType, error) {
	v, err := d.get(ctx, at.Get(at.CmdAdvertType), d.config.ResponseTimeout)
	if err != nil {
		return 0, err
	}
	switch v {
	case "0":
		return AdvertDiscoverable, nil
	case "1":
		return AdvertConnectableOnly, nil
	}
	return 0, fmt.Errorf("advert type %q: %w", v, ErrUnexpectedResponse)
}

func (d *Driver) SetAdvertType(ctx context.Context, t AdvertType) error {
	if t != AdvertDiscoverable && t != AdvertConnectableOnly {
		return invalid("advert type %d", int(t))
	}
	return d.set(ctx, at.CmdAdvertType, strconv.Itoa(int(t)))
}

// LEDMode is the behavior of the system LED on PIO1 while disconnected.
type LEDMode int

const (
	LEDBlinkDisconnected LEDMode = iota
	LEDHighDisconnected
)

func (d *Driver) SetLEDMode(ctx context.Context, mode LEDMode) error {
	if mode != LEDBlinkDisconnected && mode != LEDHighDisconnected {
		return invalid("led mode %d", int(mode))
	}
	return d.set(ctx, at.CmdSystemLED, strconv.Itoa(int(mode)))
}

// ReadPIO reads digital pin 2 or 3.
func (d *Driver) ReadPIO(ctx context.Context, pin int) (bool, error) {
	if err := checkPIO(pin); err != nil {
		return false, err
	}
	v, err := d.get(ctx, at.Get(at.CmdPIO+strconv.Itoa(pin)), d.config.ResponseTimeout)
	if err != nil {
		return false, err
	}
	switch v {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, fmt.Errorf("pio%d %q: %w", pin, v, ErrUnexpectedResponse)
}

// WritePIO drives digital pin 2 or 3.
func (d *Driver) WritePIO(ctx context.Context, pin int, high bool) error {
	if err := checkPIO(pin); err != nil {
		return err
	}
	v := flag(high)
	cmd := at.Set(at.CmdPIO, strconv.Itoa(pin)+v)
	return d.sendAndAwaitExact(ctx, cmd, at.SetAck(v), d.config.CommandTimeout)
}

func checkPIO(pin int) error {
	if pin != 2 && pin != 3 {
		return invalid("pio pin %d", pin)
	}
	return nil
}

func isHex(s string, n int) bool {
	if len(s) != n {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// The string variants below return "" on any failure. Use the
// error-returning methods to learn why.

func (d *Driver) EDRName(ctx context.Context) string {
	name, _ := d.Name(ctx, EDR)
	return name
}

func (d *Driver) BLEName(ctx context.Context) string {
	name, _ := d.Name(ctx, BLE)
	return name
}

func (d *Driver) EDRModuleAddress(ctx context.Context) string {
	addr, _ := d.Address(ctx, EDR)
	return addr
}

func (d *Driver) BLEModuleAddress(ctx context.Context) string {
	addr, _ := d.Address(ctx, BLE)
	return addr
}

func (d *Driver) IBeaconUUIDString(ctx context.Context) string {
	u, err := d.IBeaconUUID(ctx)
	if err != nil {
		return ""
	}
	return u.String()
}
