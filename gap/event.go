package gap

import (
	"fmt"

	ble "github.com/currantlabs/blegap"
)

// EventKind identifies the kind of an Event.
type EventKind int

// Event kinds
const (
	EvtAdvDataSetComplete EventKind = iota
	EvtScanRspSetComplete
	EvtScanParamSetComplete
	EvtScanResult
)

func (k EventKind) String() string {
	switch k {
	case EvtAdvDataSetComplete:
		return "adv data set complete"
	case EvtScanRspSetComplete:
		return "scan rsp set complete"
	case EvtScanParamSetComplete:
		return "scan param set complete"
	case EvtScanResult:
		return "scan result"
	}
	return fmt.Sprintf("event %d", int(k))
}

// An Event is delivered to the application Handler.
type Event interface {
	Kind() EventKind
}

// AdvDataSetComplete reports the completion of advertising data setup.
type AdvDataSetComplete struct{ Status Status }

// ScanRspSetComplete reports the completion of scan response data setup.
type ScanRspSetComplete struct{ Status Status }

// ScanParamSetComplete reports the completion of scan parameters setup.
type ScanParamSetComplete struct{ Status Status }

// ScanResult carries an InquiryResult or an InquiryComplete.
type ScanResult struct{ Result Result }

// Kind ...
func (AdvDataSetComplete) Kind() EventKind   { return EvtAdvDataSetComplete }
func (ScanRspSetComplete) Kind() EventKind   { return EvtScanRspSetComplete }
func (ScanParamSetComplete) Kind() EventKind { return EvtScanParamSetComplete }
func (ScanResult) Kind() EventKind           { return EvtScanResult }

// A Result is either an InquiryResult or an InquiryComplete.
type Result interface {
	isResult()
}

// Device types
const (
	DevTypeBREDR = 0x01
	DevTypeBLE   = 0x02
	DevTypeDumo  = 0x03
)

// InquiryResult describes one device seen while scanning.
type InquiryResult struct {
	Addr     ble.Addr
	DevType  uint8
	RSSI     int8
	AddrType uint8
	Flag     byte // AD flags of the advertisement, 0 if absent
}

// InquiryComplete ends a scan.
type InquiryComplete struct {
	NumResponses int
}

func (InquiryResult) isResult()   {}
func (InquiryComplete) isResult() {}

// A Handler handles events on behalf of the application.
type Handler interface {
	Handle(e Event)
}

// HandlerFunc is an adapter to allow the use of ordinary functions as Handlers.
type HandlerFunc func(e Event)

// Handle calls f(e).
func (f HandlerFunc) Handle(e Event) { f(e) }
