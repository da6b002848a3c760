package gap

import (
	"fmt"

	ble "github.com/currantlabs/blegap"
	"github.com/currantlabs/blegap/adv"
)

// Action identifies the kind of a Request.
type Action int

// Actions
const (
	ActConfigAdvData Action = iota
	ActSetScanParams
	ActStartScan
	ActStopScan
	ActStartAdv
	ActStopAdv
	ActUpdateConnParams
	ActSetPktDataLen
	ActSetRandAddr
	ActConfigLocalPrivacy
	ActSetDevName
)

var actionName = []string{
	ActConfigAdvData:      "config adv data",
	ActSetScanParams:      "set scan params",
	ActStartScan:          "start scan",
	ActStopScan:           "stop scan",
	ActStartAdv:           "start adv",
	ActStopAdv:            "stop adv",
	ActUpdateConnParams:   "update conn params",
	ActSetPktDataLen:      "set pkt data len",
	ActSetRandAddr:        "set rand addr",
	ActConfigLocalPrivacy: "config local privacy",
	ActSetDevName:         "set dev name",
}

func (a Action) String() string {
	if a >= 0 && int(a) < len(actionName) {
		return actionName[a]
	}
	return fmt.Sprintf("action %d", int(a))
}

// A Request is one GAP operation. It is consumed once by a Dispatcher and
// not retained.
type Request interface {
	Action() Action
}

// ConfigAdvData sets the advertising data, or the scan response data when
// Content.ScanResponse is set.
type ConfigAdvData struct{ Content adv.Content }

// SetScanParams sets the scanning parameters.
type SetScanParams struct{ Params ScanParams }

// StartScan scans for Duration seconds.
type StartScan struct{ Duration uint32 }

// StopScan stops scanning.
type StopScan struct{}

// StartAdv starts advertising with Params.
type StartAdv struct{ Params AdvParams }

// StopAdv stops advertising.
type StopAdv struct{}

// UpdateConnParams requests new connection parameters for a peer.
type UpdateConnParams struct{ Params ConnParams }

// SetPktDataLen sets the maximum transmit payload for a peer.
type SetPktDataLen struct {
	Addr   ble.Addr
	Length uint16
}

// SetRandAddr sets the local random address.
type SetRandAddr struct{ Addr ble.Addr }

// ConfigLocalPrivacy turns local privacy on or off.
type ConfigLocalPrivacy struct{ Enable bool }

// SetDevName sets the name used when advertising data includes it.
type SetDevName struct{ Name string }

// Action ...
func (ConfigAdvData) Action() Action      { return ActConfigAdvData }
func (SetScanParams) Action() Action      { return ActSetScanParams }
func (StartScan) Action() Action          { return ActStartScan }
func (StopScan) Action() Action           { return ActStopScan }
func (StartAdv) Action() Action           { return ActStartAdv }
func (StopAdv) Action() Action            { return ActStopAdv }
func (UpdateConnParams) Action() Action   { return ActUpdateConnParams }
func (SetPktDataLen) Action() Action      { return ActSetPktDataLen }
func (SetRandAddr) Action() Action        { return ActSetRandAddr }
func (ConfigLocalPrivacy) Action() Action { return ActConfigLocalPrivacy }
func (SetDevName) Action() Action         { return ActSetDevName }
