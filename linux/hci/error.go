package hci

import (
	"fmt"

	"github.com/pkg/errors"
)

// Transport errors.
var (
	ErrClosed  = errors.New("hci: closed")
	ErrTimeout = errors.New("hci: command timed out")
)

// ErrCommand is a non-zero status returned by the controller [Vol 2, Part D, 2].
type ErrCommand byte

// Status codes this package refers to.
const (
	ErrUnknownCommand ErrCommand = 0x01
	ErrConnID         ErrCommand = 0x02
	ErrHardware       ErrCommand = 0x03
	ErrDisallowed     ErrCommand = 0x0C
	ErrUnsupported    ErrCommand = 0x11
	ErrInvalidParams  ErrCommand = 0x12
)

var errCommandName = map[ErrCommand]string{
	ErrUnknownCommand: "unknown HCI command",
	ErrConnID:         "unknown connection identifier",
	ErrHardware:       "hardware failure",
	0x04:              "page timeout",
	0x05:              "authentication failure",
	0x07:              "memory capacity exceeded",
	0x08:              "connection timeout",
	0x09:              "connection limit exceeded",
	ErrDisallowed:     "command disallowed",
	0x0D:              "connection rejected due to limited resources",
	ErrUnsupported:    "unsupported feature or parameter value",
	ErrInvalidParams:  "invalid HCI command parameters",
	0x13:              "remote user terminated connection",
	0x1A:              "unsupported remote feature",
	0x1F:              "unspecified error",
	0x3A:              "controller busy",
	0x3B:              "unacceptable connection parameters",
}

func (e ErrCommand) Error() string {
	if s, ok := errCommandName[e]; ok {
		return "hci: " + s
	}
	return fmt.Sprintf("hci: status 0x%02X", byte(e))
}

// Status returns the controller status carried by err: 0x00 for nil, the
// status for an ErrCommand, and unspecified error for anything else.
func Status(err error) uint8 {
	if err == nil {
		return 0x00
	}
	if e, ok := errors.Cause(err).(ErrCommand); ok {
		return uint8(e)
	}
	return 0x1F
}
