package hci

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/currantlabs/blegap/linux/hci/evt"
)

// A Handler handles the parameters of an HCI event.
type Handler interface {
	Handle(b []byte) error
}

// HandlerFunc is an adapter to allow the use of ordinary functions as Handlers.
type HandlerFunc func(b []byte) error

// Handle calls f(b).
func (f HandlerFunc) Handle(b []byte) error { return f(b) }

// route identifies an event, or an LE subevent when meta is set.
type route struct {
	meta bool
	code int
}

// evtHub routes incoming events to the installed handlers.
type evtHub struct {
	mu     sync.RWMutex
	routes map[route]Handler
}

func newEvtHub() *evtHub {
	h := &evtHub{routes: map[route]Handler{}}
	h.SetEventHandler(evt.LEMetaCode, HandlerFunc(h.handleLEMeta))
	return h
}

func (h *evtHub) swap(r route, f Handler) Handler {
	h.mu.Lock()
	defer h.mu.Unlock()
	old := h.routes[r]
	if f == nil {
		delete(h.routes, r)
	} else {
		h.routes[r] = f
	}
	return old
}

func (h *evtHub) lookup(r route) Handler {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.routes[r]
}

// SetEventHandler installs f for event code c and returns the previous one.
// A nil f removes the handler.
func (h *evtHub) SetEventHandler(c int, f Handler) Handler {
	return h.swap(route{code: c}, f)
}

// SetSubeventHandler installs f for LE subevent code c and returns the previous one.
func (h *evtHub) SetSubeventHandler(c int, f Handler) Handler {
	return h.swap(route{meta: true, code: c}, f)
}

// handle dispatches an event packet without its packet type indicator.
func (h *evtHub) handle(b []byte) error {
	if len(b) < 2 || int(b[1]) != len(b)-2 {
		return errors.Errorf("hci: malformed event packet [ % X ]", b)
	}
	if f := h.lookup(route{code: int(b[0])}); f != nil {
		return f.Handle(b[2:])
	}
	logger.Debug("unhandled event", "code", evtName(int(b[0])))
	return nil
}

func (h *evtHub) handleLEMeta(b []byte) error {
	if len(b) == 0 {
		return errors.New("hci: empty LE meta event")
	}
	if f := h.lookup(route{meta: true, code: int(b[0])}); f != nil {
		return f.Handle(b)
	}
	logger.Debug("unhandled LE subevent", "subcode", b[0])
	return nil
}

func evtName(c int) string {
	switch c {
	case evt.DisconnectionCompleteCode:
		return "Disconnection Complete"
	case evt.HardwareErrorCode:
		return "Hardware Error"
	}
	return fmt.Sprintf("0x%02X", c)
}
