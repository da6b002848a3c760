package ble

import (
	"net"
	"strings"

	"github.com/pkg/errors"
)

// Addr is a Bluetooth device address in over-the-air byte order
// (least significant octet first).
type Addr [6]byte

// ErrInvalidAddr is returned when an address can't be parsed.
var ErrInvalidAddr = errors.New("invalid device address")

// NewAddr parses a colon-separated address such as "c0:ff:ee:00:00:01".
func NewAddr(s string) (Addr, error) {
	var a Addr
	b, err := net.ParseMAC(strings.ToLower(s))
	if err != nil || len(b) != 6 {
		return a, errors.Wrapf(ErrInvalidAddr, "%q", s)
	}
	for i := range a {
		a[i] = b[5-i]
	}
	return a, nil
}

// MustAddr is like NewAddr, but panics in case of error.
func MustAddr(s string) Addr {
	a, err := NewAddr(s)
	if err != nil {
		panic(err)
	}
	return a
}

// IsZero reports whether a is the all-zero address.
func (a Addr) IsZero() bool {
	return a == Addr{}
}

func (a Addr) String() string {
	return net.HardwareAddr([]byte{a[5], a[4], a[3], a[2], a[1], a[0]}).String()
}
