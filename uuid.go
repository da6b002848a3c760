package ble

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// A UUID is a BLE UUID, stored little-endian as it goes over the air.
// Its length is 2, 4, or 16 bytes.
type UUID []byte

// BaseUUID is the Bluetooth Base UUID (00000000-0000-1000-8000-00805F9B34FB).
// 16-bit and 32-bit UUIDs are aliases for values within it.
var BaseUUID = MustParse("00000000-0000-1000-8000-00805F9B34FB")

// UUID16 converts a uint16 (such as 0x1800) to a UUID.
func UUID16(i uint16) UUID {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, i)
	return UUID(b)
}

// UUID32 converts a uint32 (such as 0xDEADBEEF) to a UUID.
func UUID32(i uint32) UUID {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, i)
	return UUID(b)
}

// ErrInvalidUUID is returned when a UUID isn't 2, 4 or 16 bytes long.
var ErrInvalidUUID = errors.New("invalid UUID")

// Parse parses a UUID written most significant byte first, such as "1800",
// "DEADBEEF" or "34DA3AD1-7110-41A1-B1EF-4430F509CDE7".
func Parse(s string) (UUID, error) {
	b, err := hex.DecodeString(strings.Replace(s, "-", "", -1))
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidUUID, "%q", s)
	}
	switch len(b) {
	case 2, 4, 16:
		return UUID(Reverse(b)), nil
	}
	return nil, errors.Wrapf(ErrInvalidUUID, "%q has %d bytes", s, len(b))
}

// MustParse is like Parse, but panics in case of error.
func MustParse(s string) UUID {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

// Len returns the length of the UUID, in bytes.
func (u UUID) Len() int {
	return len(u)
}

// String hex-encodes a UUID.
func (u UUID) String() string {
	return fmt.Sprintf("%x", Reverse(u))
}

// Equal returns a boolean reporting whether v represent the same UUID as u.
func (u UUID) Equal(v UUID) bool {
	return bytes.Equal(u, v)
}

// Expand returns the 128-bit form of u.
// 16-bit and 32-bit UUIDs are placed into the Base UUID.
func Expand(u UUID) UUID {
	switch u.Len() {
	case 2, 4:
		b := make([]byte, 16)
		copy(b, BaseUUID)
		copy(b[12:], u)
		return UUID(b)
	}
	b := make([]byte, len(u))
	copy(b, u)
	return UUID(b)
}

// Reduce returns the shortest form of a 128-bit UUID.
// A UUID outside the Base UUID range is returned as is.
func Reduce(u UUID) UUID {
	if u.Len() != 16 || !bytes.Equal(u[:12], BaseUUID[:12]) {
		return u
	}
	if u[14] == 0 && u[15] == 0 {
		return UUID(u[12:14])
	}
	return UUID(u[12:16])
}

// Reverse returns a reversed copy of b.
func Reverse(b []byte) []byte {
	r := make([]byte, len(b))
	for i, c := range b {
		r[len(b)-1-i] = c
	}
	return r
}

// Name returns the name of an assigned service UUID, or "" if unknown.
func Name(u UUID) string {
	return serviceNames[Reduce(u).String()]
}

var serviceNames = map[string]string{
	"1800": "Generic Access",
	"1801": "Generic Attribute",
	"1802": "Immediate Alert",
	"1803": "Link Loss",
	"1804": "Tx Power",
	"1805": "Current Time",
	"180a": "Device Information",
	"180d": "Heart Rate",
	"180f": "Battery Service",
	"1812": "Human Interface Device",
	"1813": "Scan Parameters",
	"181a": "Environmental Sensing",
	"181c": "User Data",
	"1826": "Fitness Machine",
	"fe59": "Nordic DFU",
}
