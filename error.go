package ble

import "github.com/pkg/errors"

// ErrEIRPacketTooLong is the error returned when an AdvertisingPacket
// or ScanResponsePacket is too long.
var ErrEIRPacketTooLong = errors.New("max packet length is 31")

// ErrNotImplemented is returned by backends that can't carry an operation.
var ErrNotImplemented = errors.New("not implemented")
