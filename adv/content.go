package adv

import ble "github.com/currantlabs/blegap"

// UUIDSlotLen is the stride of Content.ServiceUUIDs.
const UUIDSlotLen = 16

// Content describes what an application wants to put in an advertising
// or scan response payload. It is read-only to the Builder.
type Content struct {
	// ScanResponse selects the scan response slot instead of the
	// advertising data slot.
	ScanResponse bool

	IncludeName    bool
	IncludeTxPower bool

	// Preferred slave connection interval range. Both bounds must be
	// non-zero and MinInterval <= MaxInterval for the range to be used.
	MinInterval uint16
	MaxInterval uint16

	Appearance uint16 // 0 means absent
	Flags      byte   // 0 means absent

	// ManufacturerData starts with the little-endian company identifier.
	ManufacturerData []byte

	// ServiceData starts with the little-endian 16-bit service UUID.
	ServiceData []byte

	// ServiceUUIDs holds 128-bit little-endian UUID slots packed back to
	// back. Each slot is advertised in its shortest form, see PackUUIDs.
	ServiceUUIDs []byte
}

// PackUUIDs lays out uu as 128-bit slots suitable for Content.ServiceUUIDs.
func PackUUIDs(uu ...ble.UUID) []byte {
	b := make([]byte, 0, len(uu)*UUIDSlotLen)
	for _, u := range uu {
		b = append(b, ble.Expand(u)...)
	}
	return b
}
