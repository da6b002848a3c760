// Package evt provides accessors over HCI event parameters, as they arrive
// from the controller, without copying.
package evt

import "encoding/binary"

// Event codes [Vol 2, Part E, 7.7]
const (
	DisconnectionCompleteCode = 0x05
	CommandCompleteCode       = 0x0E
	CommandStatusCode         = 0x0F
	HardwareErrorCode         = 0x10
	LEMetaCode                = 0x3E
)

// LE subevent codes [Vol 2, Part E, 7.7.65]
const (
	LEConnectionCompleteSubCode         = 0x01
	LEAdvertisingReportSubCode          = 0x02
	LEConnectionUpdateCompleteSubCode   = 0x03
	LEDataLengthChangeSubCode           = 0x07
	LEEnhancedConnectionCompleteSubCode = 0x0A
)

// CommandComplete implements Command Complete Event (0x0E) [Vol 2, Part E, 7.7.14]
type CommandComplete []byte

func (e CommandComplete) NumHCICommandPackets() uint8 { return e[0] }
func (e CommandComplete) CommandOpcode() uint16       { return binary.LittleEndian.Uint16(e[1:]) }
func (e CommandComplete) ReturnParameters() []byte    { return e[3:] }

// CommandStatus implements Command Status Event (0x0F) [Vol 2, Part E, 7.7.15]
type CommandStatus []byte

func (e CommandStatus) Status() uint8               { return e[0] }
func (e CommandStatus) NumHCICommandPackets() uint8 { return e[1] }
func (e CommandStatus) CommandOpcode() uint16       { return binary.LittleEndian.Uint16(e[2:]) }

// DisconnectionComplete implements Disconnection Complete Event (0x05) [Vol 2, Part E, 7.7.5]
type DisconnectionComplete []byte

func (e DisconnectionComplete) Status() uint8            { return e[0] }
func (e DisconnectionComplete) ConnectionHandle() uint16 { return binary.LittleEndian.Uint16(e[1:]) }
func (e DisconnectionComplete) Reason() uint8            { return e[3] }

// LEConnectionComplete implements LE Connection Complete Event (0x3E|0x01) [Vol 2, Part E, 7.7.65.1]
type LEConnectionComplete []byte

func (e LEConnectionComplete) SubeventCode() uint8      { return e[0] }
func (e LEConnectionComplete) Status() uint8            { return e[1] }
func (e LEConnectionComplete) ConnectionHandle() uint16 { return binary.LittleEndian.Uint16(e[2:]) }
func (e LEConnectionComplete) Role() uint8              { return e[4] }
func (e LEConnectionComplete) PeerAddressType() uint8   { return e[5] }
func (e LEConnectionComplete) PeerAddress() [6]byte {
	b := [6]byte{}
	copy(b[:], e[6:])
	return b
}
func (e LEConnectionComplete) ConnInterval() uint16       { return binary.LittleEndian.Uint16(e[12:]) }
func (e LEConnectionComplete) ConnLatency() uint16        { return binary.LittleEndian.Uint16(e[14:]) }
func (e LEConnectionComplete) SupervisionTimeout() uint16 { return binary.LittleEndian.Uint16(e[16:]) }

// LEConnectionUpdateComplete implements LE Connection Update Complete Event (0x3E|0x03) [Vol 2, Part E, 7.7.65.3]
type LEConnectionUpdateComplete []byte

func (e LEConnectionUpdateComplete) Status() uint8              { return e[1] }
func (e LEConnectionUpdateComplete) ConnectionHandle() uint16   { return binary.LittleEndian.Uint16(e[2:]) }
func (e LEConnectionUpdateComplete) ConnInterval() uint16       { return binary.LittleEndian.Uint16(e[4:]) }
func (e LEConnectionUpdateComplete) ConnLatency() uint16        { return binary.LittleEndian.Uint16(e[6:]) }
func (e LEConnectionUpdateComplete) SupervisionTimeout() uint16 { return binary.LittleEndian.Uint16(e[8:]) }

// LEAdvertisingReport implements LE Advertising Report Event (0x3E|0x02) [Vol 2, Part E, 7.7.65.2]
//
// Reports are laid out field by field: all event types, then all address
// types, all addresses, all data lengths, all data, and all RSSI values.
type LEAdvertisingReport []byte

func (e LEAdvertisingReport) SubeventCode() uint8     { return e[0] }
func (e LEAdvertisingReport) NumReports() uint8       { return e[1] }
func (e LEAdvertisingReport) EventType(i int) uint8   { return e[2+i] }
func (e LEAdvertisingReport) AddressType(i int) uint8 { return e[2+int(e.NumReports())*1+i] }
func (e LEAdvertisingReport) Address(i int) [6]byte {
	e = e[2+int(e.NumReports())*2:]
	b := [6]byte{}
	copy(b[:], e[6*i:])
	return b
}

func (e LEAdvertisingReport) LengthData(i int) uint8 { return e[2+int(e.NumReports())*8+i] }

func (e LEAdvertisingReport) Data(i int) []byte {
	l := 0
	for j := 0; j < i; j++ {
		l += int(e.LengthData(j))
	}
	b := e[2+int(e.NumReports())*9+l:]
	return b[:e.LengthData(i)]
}

func (e LEAdvertisingReport) RSSI(i int) int8 {
	l := 0
	for j := 0; j < int(e.NumReports()); j++ {
		l += int(e.LengthData(j))
	}
	return int8(e[2+int(e.NumReports())*9+l+i])
}

// Valid reports whether e is long enough to hold all of its reports.
func (e LEAdvertisingReport) Valid() bool {
	if len(e) < 2 {
		return false
	}
	n := int(e.NumReports())
	if len(e) < 2+n*9 {
		return false
	}
	l := 0
	for j := 0; j < n; j++ {
		l += int(e.LengthData(j))
	}
	return len(e) >= 2+n*10+l
}
