package hci

import (
	"io"
	"time"
)

// An Option is a configuration function, which configures the device.
type Option func(*HCI) error

// OptDeviceID sets HCI device ID.
func OptDeviceID(id int) Option {
	return func(h *HCI) error {
		h.id = id
		return nil
	}
}

// OptTransport runs the HCI over rwc instead of opening a socket.
// Packets on rwc carry the HCI packet type indicator.
func OptTransport(rwc io.ReadWriteCloser) Option {
	return func(h *HCI) error {
		h.skt = rwc
		return nil
	}
}

// OptCommandTimeout bounds how long Send waits for a command to complete.
func OptCommandTimeout(d time.Duration) Option {
	return func(h *HCI) error {
		h.cmdTmo = d
		return nil
	}
}

// OptEventMask sets the LE event mask written at Init.
func OptEventMask(m uint64) Option {
	return func(h *HCI) error {
		h.leEventMask = m
		return nil
	}
}
