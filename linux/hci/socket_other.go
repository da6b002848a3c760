//go:build !linux
// +build !linux

package hci

import (
	"io"

	ble "github.com/currantlabs/blegap"
)

func openSocket(id int) (io.ReadWriteCloser, error) { return nil, ble.ErrNotImplemented }
