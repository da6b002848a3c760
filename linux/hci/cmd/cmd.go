//go:generate go run ../../tools/codegen -in cmd.json -out cmd_gen.go

package cmd

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Command ...
type Command interface {
	OpCode() int
	Len() int
	Marshal([]byte) error
}

// CommandRP ...
type CommandRP interface {
	Unmarshal(b []byte) error
}

// Sender ...
type Sender interface {
	// Send sends a HCI Command and returns unserialized return parameter.
	Send(Command, CommandRP) error
}

// Send ...
func Send(s Sender, c Command, r CommandRP) error {
	return s.Send(c, r)
}

func marshal(c Command, b []byte) error {
	buf := bytes.NewBuffer(b)
	buf.Reset()
	if buf.Cap() < c.Len() {
		return io.ErrShortBuffer
	}
	return binary.Write(buf, binary.LittleEndian, c)
}

func unmarshal(c CommandRP, b []byte) error {
	buf := bytes.NewBuffer(b)
	return binary.Read(buf, binary.LittleEndian, c)
}

// SetData copies an encoded advertising payload into the command.
func (c *LESetAdvertisingData) SetData(b []byte) {
	c.AdvertisingData = [31]byte{}
	c.AdvertisingDataLength = uint8(copy(c.AdvertisingData[:], b))
}

// SetData copies an encoded scan response payload into the command.
func (c *LESetScanResponseData) SetData(b []byte) {
	c.ScanResponseData = [31]byte{}
	c.ScanResponseDataLength = uint8(copy(c.ScanResponseData[:], b))
}

// SetName stores s, truncated to 248 octets and zero padded.
func (c *WriteLocalName) SetName(s string) {
	c.LocalName = [248]byte{}
	copy(c.LocalName[:], s)
}
