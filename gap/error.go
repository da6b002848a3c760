package gap

import (
	"fmt"

	"github.com/pkg/errors"
)

// Validation errors.
var (
	ErrAdvInterval        = errors.New("invalid advertising interval")
	ErrAdvType            = errors.New("invalid advertising type")
	ErrFilterPolicy       = errors.New("invalid filter policy")
	ErrOwnAddrType        = errors.New("invalid own address type")
	ErrChannelMap         = errors.New("invalid channel map")
	ErrScanInterval       = errors.New("invalid scan interval")
	ErrScanWindow         = errors.New("invalid scan window")
	ErrScanType           = errors.New("invalid scan type")
	ErrScanDuration       = errors.New("invalid scan duration")
	ErrConnInterval       = errors.New("invalid connection interval")
	ErrConnLatency        = errors.New("invalid connection latency")
	ErrSupervisionTimeout = errors.New("invalid supervision timeout")
	ErrRandAddr           = errors.New("invalid random address")
	ErrNoHandler          = errors.New("no event handler")
)

// Dispatch and delivery errors.
var (
	ErrUnknownAction  = errors.New("unknown action")
	ErrQueueFull      = errors.New("task queue full")
	ErrTaskClosed     = errors.New("task closed")
	ErrInvalidProfile = errors.New("invalid profile id")
)

// A ValidationError reports a request dropped because of its parameters.
// The controller is never called for such a request.
type ValidationError struct {
	Action Action
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("gap: %s: %s", e.Action, e.Err)
}

// Cause returns the underlying sentinel, for errors.Cause.
func (e *ValidationError) Cause() error { return errors.Cause(e.Err) }
