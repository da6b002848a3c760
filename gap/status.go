package gap

import "fmt"

// Status is a controller completion code, as defined for HCI [Vol 2, Part D].
// It is passed to the application verbatim.
type Status uint8

// Status codes seen in completions.
const (
	StatusSuccess           Status = 0x00
	StatusUnknownCommand    Status = 0x01
	StatusUnknownConnID     Status = 0x02
	StatusHardwareFailure   Status = 0x03
	StatusCommandDisallowed Status = 0x0C
	StatusUnsupported       Status = 0x11
	StatusInvalidParams     Status = 0x12
	StatusUnspecified       Status = 0x1F
)

var statusName = map[Status]string{
	StatusSuccess:           "success",
	StatusUnknownCommand:    "unknown HCI command",
	StatusUnknownConnID:     "unknown connection identifier",
	StatusHardwareFailure:   "hardware failure",
	StatusCommandDisallowed: "command disallowed",
	StatusUnsupported:       "unsupported feature or parameter value",
	StatusInvalidParams:     "invalid HCI command parameters",
	StatusUnspecified:       "unspecified error",
}

func (s Status) String() string {
	if n, ok := statusName[s]; ok {
		return n
	}
	return fmt.Sprintf("status 0x%02X", uint8(s))
}
