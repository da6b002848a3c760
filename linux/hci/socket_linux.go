package hci

import (
	"io"

	"github.com/currantlabs/blegap/linux/hci/socket"
)

func openSocket(id int) (io.ReadWriteCloser, error) { return socket.NewSocket(id) }
