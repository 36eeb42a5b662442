package at

const (
	// Framing
	Prefix = "AT"
	Plus   = "+"
	Query  = "?"

	// Acknowledgements
	OK       = "OK"
	GetReply = "OK+Get:"
	SetReply = "OK+Set:"

	// Notifications
	NotifyRestart       = "OK+INIT"
	NotifyEDRConnect    = "OK+CONE:"
	NotifyBLEConnect    = "OK+CONB:"
	NotifyEDRDisconnect = "OK+LSTE"
	NotifyBLEDisconnect = "OK+LSTB"
)

// Command tokens understood by the HM-1x firmware.
const (
	CmdReset           = "RESET"
	CmdFactoryDefaults = "RENEW"
	CmdVersion         = "VERR"
	CmdNotifyInfo      = "NOTI"
	CmdNotifyMode      = "NOTP"
	CmdEDRName         = "NAME"
	CmdBLEName         = "NAMB"
	CmdEDRAddress      = "ADDE"
	CmdBLEAddress      = "ADDB"
	CmdLastEDR         = "RADE"
	CmdLastBLE         = "RADB"
	CmdClearBondEDR    = "BONDE"
	CmdClearBondBLE    = "BONDB"
	CmdClearLastEDR    = "CLEAE"
	CmdClearLastBLE    = "CLEAB"
	CmdEDRRole         = "ROLE"
	CmdBLERole         = "ROLB"
	CmdHighSpeed       = "HIGH"
	CmdDualMode        = "DUAL"
	CmdWorkMode        = "MODE"
	CmdAtoB            = "ATOB"
	CmdAuth            = "AUTH"
	CmdEDRPin          = "PINE"
	CmdBLEPin          = "PINB"
	CmdClassOfDevice   = "COFD"
	CmdUpdateConnParam = "COUP"
	CmdIBeacon         = "IBEA"
	CmdIBeaconUUID     = "IBE"
	CmdIBeaconMajor    = "MAJO"
	CmdIBeaconMinor    = "MINO"
	CmdIBeaconPower    = "MEAS"
	CmdMTUSize         = "MTUS"
	CmdAdvertType      = "SCAN"
	CmdSafeMode        = "SAFE"
	CmdBLEMac          = "ONEM"
	CmdSystemKey       = "PIO0"
	CmdSystemLED       = "PIO1"
	CmdPIO             = "PIO"
	CmdBaud            = "BAUD"
)

// Command is a single request to the module. A Command with an empty
// Name is the bare liveness probe.
type Command struct {
	Name string
	Args string
}

// Frame renders cmd as it goes on the wire. There is no terminator and
// no escaping: "AT" for the probe, otherwise "AT+" + Name + Args.
func Frame(cmd Command) []byte {
	if cmd.Name == "" {
		return []byte(Prefix)
	}
	frame := make([]byte, 0, len(Prefix)+len(Plus)+len(cmd.Name)+len(cmd.Args))
	frame = append(frame, Prefix...)
	frame = append(frame, Plus...)
	frame = append(frame, cmd.Name...)
	frame = append(frame, cmd.Args...)
	return frame
}

// String returns the framed command as text.
func (c Command) String() string {
	return string(Frame(c))
}

// Get builds the query form of a command, e.g. "NAME?".
func Get(name string) Command {
	return Command{Name: name, Args: Query}
}

// Set builds a command carrying value as its argument.
func Set(name, value string) Command {
	return Command{Name: name, Args: value}
}

// Ack is the acknowledgement for a parameterless action, e.g. "OK+RESET".
func Ack(name string) string {
	return OK + Plus + name
}

// SetAck is the acknowledgement for a Set command, e.g. "OK+Set:1".
func SetAck(value string) string {
	return SetReply + value
}
