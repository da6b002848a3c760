package gap

import (
	"time"

	ble "github.com/currantlabs/blegap"
	"github.com/currantlabs/blegap/adv"
)

// A Controller carries GAP operations to the radio.
//
// Completion functions are called from the controller's own context,
// at most once per call. A Controller must not keep the Record past the
// call beyond what it needs for transmission; it receives a copy.
type Controller interface {
	SetAdvertisingConfig(m adv.Mask, r adv.Record, done func(Status))
	SetScanResponse(m adv.Mask, r adv.Record, done func(Status))
	SetScanParameters(p ScanParams, done func(Status))

	// Observe starts or stops scanning. A started scan reports each device
	// to onResult and ends with an InquiryComplete once d has elapsed.
	Observe(enable bool, d time.Duration, onResult func(Result))

	SetAdvertisingParameters(p AdvParams)
	Broadcast(enable bool)

	UpdateConnectionParameters(a ble.Addr, min, max, latency, timeout uint16)
	SetDataLength(a ble.Addr, txLength uint16)
	SetRandomAddress(a ble.Addr)
	ConfigureLocalPrivacy(enable bool)
	SetDeviceName(name string)
}
