package gap

import (
	"github.com/pkg/errors"

	ble "github.com/currantlabs/blegap"
)

// Advertising types [Vol 2, Part E, 7.8.5]
const (
	AdvInd           = 0x00 // Connectable undirected (ADV_IND)
	AdvDirectIndHigh = 0x01 // Connectable high duty cycle directed (ADV_DIRECT_IND)
	AdvScanInd       = 0x02 // Scannable undirected (ADV_SCAN_IND)
	AdvNonconnInd    = 0x03 // Non connectable undirected (ADV_NONCONN_IND)
	AdvDirectIndLow  = 0x04 // Connectable low duty cycle directed (ADV_DIRECT_IND)
)

// Advertising filter policies [Vol 2, Part E, 7.8.5]
const (
	FilterScanAnyConAny   = 0x00 // Scan and connection requests from any device.
	FilterScanWlstConAny  = 0x01 // Scan requests from the white list, connection requests from any.
	FilterScanAnyConWlst  = 0x02 // Scan requests from any, connection requests from the white list.
	FilterScanWlstConWlst = 0x03 // Scan and connection requests from the white list only.
)

// Own address types
const (
	AddrPublic    = 0x00
	AddrRandom    = 0x01
	AddrRPAPublic = 0x02 // Resolvable private address, public fallback.
	AddrRPARandom = 0x03 // Resolvable private address, random fallback.
)

// Scan types
const (
	ScanPassive = 0x00
	ScanActive  = 0x01
)

// Advertising channels
const (
	Channel37   = 0x01
	Channel38   = 0x02
	Channel39   = 0x04
	ChannelsAll = Channel37 | Channel38 | Channel39
)

// Legal parameter ranges.
const (
	AdvIntervalMin        = 0x0020 // N * 0.625 msec
	AdvIntervalMax        = 0x4000
	ScanIntervalMin       = 0x0004 // N * 0.625 msec
	ScanIntervalMax       = 0x4000
	ScanWindowMin         = 0x0004 // N * 0.625 msec
	ScanWindowMax         = 0x4000
	ConnIntervalMin       = 0x0006 // N * 1.25 msec
	ConnIntervalMax       = 0x0C80
	ConnLatencyMax        = 0x01F3
	SupervisionTimeoutMin = 0x000A // N * 10 msec
	SupervisionTimeoutMax = 0x0C80
	DataLengthMin         = 0x001B // octets
	DataLengthMax         = 0x00FB
)

func inRange(v, lo, hi uint16) bool { return v >= lo && v <= hi }

// AdvParams configures advertising.
type AdvParams struct {
	IntervalMin  uint16
	IntervalMax  uint16
	Type         uint8
	OwnAddrType  uint8
	PeerAddrType uint8
	PeerAddr     ble.Addr // directed advertising only
	ChannelMap   uint8
	FilterPolicy uint8
}

// DefaultAdvParams are the parameters used when none are given.
var DefaultAdvParams = AdvParams{
	IntervalMin:  0x0020,
	IntervalMax:  0x0020,
	Type:         AdvInd,
	OwnAddrType:  AddrPublic,
	ChannelMap:   ChannelsAll,
	FilterPolicy: FilterScanAnyConAny,
}

// Validate reports the first parameter outside its legal range.
func (p AdvParams) Validate() error {
	switch {
	case !inRange(p.IntervalMin, AdvIntervalMin, AdvIntervalMax),
		!inRange(p.IntervalMax, AdvIntervalMin, AdvIntervalMax),
		p.IntervalMin > p.IntervalMax:
		return errors.Wrapf(ErrAdvInterval, "min 0x%04X, max 0x%04X", p.IntervalMin, p.IntervalMax)
	case p.Type > AdvDirectIndLow:
		return errors.Wrapf(ErrAdvType, "0x%02X", p.Type)
	case p.FilterPolicy > FilterScanWlstConWlst:
		return errors.Wrapf(ErrFilterPolicy, "0x%02X", p.FilterPolicy)
	case p.OwnAddrType > AddrRPARandom:
		return errors.Wrapf(ErrOwnAddrType, "0x%02X", p.OwnAddrType)
	case p.ChannelMap == 0 || p.ChannelMap > ChannelsAll:
		return errors.Wrapf(ErrChannelMap, "0x%02X", p.ChannelMap)
	}
	return nil
}

// ScanParams configures scanning.
type ScanParams struct {
	Type         uint8
	Interval     uint16
	Window       uint16
	OwnAddrType  uint8
	FilterPolicy uint8
}

// Validate reports the first parameter outside its legal range.
func (p ScanParams) Validate() error {
	switch {
	case !inRange(p.Interval, ScanIntervalMin, ScanIntervalMax):
		return errors.Wrapf(ErrScanInterval, "0x%04X", p.Interval)
	case !inRange(p.Window, ScanWindowMin, ScanWindowMax), p.Window > p.Interval:
		return errors.Wrapf(ErrScanWindow, "0x%04X (interval 0x%04X)", p.Window, p.Interval)
	case p.Type != ScanActive && p.Type != ScanPassive:
		return errors.Wrapf(ErrScanType, "0x%02X", p.Type)
	case p.OwnAddrType > AddrRPARandom:
		return errors.Wrapf(ErrOwnAddrType, "0x%02X", p.OwnAddrType)
	case p.FilterPolicy > 0x03:
		return errors.Wrapf(ErrFilterPolicy, "0x%02X", p.FilterPolicy)
	}
	return nil
}

// ConnParams are the connection parameters requested for a peer.
type ConnParams struct {
	Addr        ble.Addr
	IntervalMin uint16
	IntervalMax uint16
	Latency     uint16
	Timeout     uint16
}

// Normalize lowers an IntervalMin above IntervalMax to IntervalMax,
// then reports the first parameter outside its legal range.
func (p *ConnParams) Normalize() error {
	if p.IntervalMin > p.IntervalMax {
		p.IntervalMin = p.IntervalMax
	}
	switch {
	case !inRange(p.IntervalMin, ConnIntervalMin, ConnIntervalMax),
		!inRange(p.IntervalMax, ConnIntervalMin, ConnIntervalMax):
		return errors.Wrapf(ErrConnInterval, "min 0x%04X, max 0x%04X", p.IntervalMin, p.IntervalMax)
	case p.Latency > ConnLatencyMax:
		return errors.Wrapf(ErrConnLatency, "0x%04X", p.Latency)
	case !inRange(p.Timeout, SupervisionTimeoutMin, SupervisionTimeoutMax):
		return errors.Wrapf(ErrSupervisionTimeout, "0x%04X", p.Timeout)
	}
	return nil
}

// ClampDataLength limits a requested LE data length to what controllers accept.
func ClampDataLength(n uint16) uint16 {
	switch {
	case n < DataLengthMin:
		return DataLengthMin
	case n > DataLengthMax:
		return DataLengthMax
	}
	return n
}
