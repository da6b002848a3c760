// Package hci talks to a Bluetooth controller over the Host Controller Interface.
package hci

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/mgutz/logxi/v1"
	"github.com/pkg/errors"

	ble "github.com/currantlabs/blegap"
	"github.com/currantlabs/blegap/linux/hci/cmd"
	"github.com/currantlabs/blegap/linux/hci/evt"
)

var logger = log.New("hci")

// HCI Packet types
const (
	pktTypeCommand uint8 = 0x01
	pktTypeACLData uint8 = 0x02
	pktTypeSCOData uint8 = 0x03
	pktTypeEvent   uint8 = 0x04
	pktTypeVendor  uint8 = 0xFF
)

// Room for the largest command: header plus 255 octets of parameters.
const cmdBufSize = 4 + 255

// Default LE event mask: connection complete, advertising report,
// connection update complete, read remote features, LTK request and
// data length change.
const defaultLEEventMask = 0x000000000000005F

type pkt struct {
	cmd  cmd.Command
	done chan []byte
}

// HCI is a command sender and event source over an HCI transport.
type HCI struct {
	*evtHub

	skt io.ReadWriteCloser
	id  int

	// Host to Controller command flow control [Vol 2, Part E, 4.4]
	chCmdBufs chan []byte
	muSent    sync.Mutex
	sent      map[int]*pkt

	chEvt chan []byte

	cmdTmo      time.Duration
	leEventMask uint64

	// Device information or status.
	addr    ble.Addr
	txPwrLv int8

	muErr sync.Mutex
	err   error
	done  chan struct{}
	once  sync.Once
}

// NewHCI returns a hci device.
func NewHCI(opts ...Option) (*HCI, error) {
	h := &HCI{
		evtHub: newEvtHub(),
		id:     -1,

		chCmdBufs: make(chan []byte, 1),
		sent:      make(map[int]*pkt),

		chEvt: make(chan []byte, 64),

		cmdTmo:      2 * time.Second,
		leEventMask: defaultLEEventMask,

		done: make(chan struct{}),
	}
	for _, opt := range opts {
		if err := opt(h); err != nil {
			return nil, errors.Wrap(err, "can't apply option")
		}
	}
	return h, nil
}

// Init opens the transport, unless one was given, and reads the controller
// information needed by the host.
func (h *HCI) Init() error {
	h.SetEventHandler(evt.CommandCompleteCode, HandlerFunc(h.handleCommandComplete))
	h.SetEventHandler(evt.CommandStatusCode, HandlerFunc(h.handleCommandStatus))

	if h.skt == nil {
		skt, err := openSocket(h.id)
		if err != nil {
			return errors.Wrap(err, "can't open hci socket")
		}
		h.skt = skt
	}

	h.chCmdBufs <- make([]byte, cmdBufSize)

	go h.asyncLoop()
	go h.sktLoop()
	return h.init()
}

func (h *HCI) init() error {
	ReadBDADDRRP := cmd.ReadBDADDRRP{}
	if err := h.Send(&cmd.ReadBDADDR{}, &ReadBDADDRRP); err != nil {
		return errors.Wrap(err, "can't read address")
	}
	h.addr = ble.Addr(ReadBDADDRRP.BDADDR)

	LEReadAdvertisingChannelTxPowerRP := cmd.LEReadAdvertisingChannelTxPowerRP{}
	if err := h.Send(&cmd.LEReadAdvertisingChannelTxPower{}, &LEReadAdvertisingChannelTxPowerRP); err != nil {
		return errors.Wrap(err, "can't read tx power")
	}
	h.txPwrLv = int8(LEReadAdvertisingChannelTxPowerRP.TransmitPowerLevel)

	LESetEventMaskRP := cmd.LESetEventMaskRP{}
	if err := h.Send(&cmd.LESetEventMask{LEEventMask: h.leEventMask}, &LESetEventMaskRP); err != nil {
		return errors.Wrap(err, "can't set LE event mask")
	}
	logger.Info("initialized", "addr", h.addr, "txPower", h.txPwrLv)
	return nil
}

// Addr returns the public address of the controller.
func (h *HCI) Addr() ble.Addr { return h.addr }

// TxPower returns the advertising channel transmit power in dBm.
func (h *HCI) TxPower() int8 { return h.txPwrLv }

// Close closes the transport.
func (h *HCI) Close() error {
	return h.stop(nil)
}

// Error returns the error which stopped the HCI, if any.
func (h *HCI) Error() error {
	h.muErr.Lock()
	defer h.muErr.Unlock()
	return h.err
}

// Send sends c and unmarshals its return parameters into r. For commands
// acknowledged with Command Status, r should be nil and a non-zero status
// is returned as an ErrCommand.
func (h *HCI) Send(c cmd.Command, r cmd.CommandRP) error {
	b, err := h.send(c)
	if err != nil {
		return err
	}
	if r != nil {
		return errors.Wrapf(r.Unmarshal(b), "can't unmarshal %s", c)
	}
	if len(b) > 0 && b[0] != 0x00 {
		return ErrCommand(b[0])
	}
	return nil
}

func (h *HCI) send(c cmd.Command) ([]byte, error) {
	select {
	case <-h.done:
		return nil, h.closedErr()
	default:
	}
	var b []byte
	select {
	case <-h.done:
		return nil, h.closedErr()
	case b = <-h.chCmdBufs:
	}

	p := &pkt{c, make(chan []byte, 1)}
	b[0] = pktTypeCommand // HCI header
	b[1] = byte(c.OpCode())
	b[2] = byte(c.OpCode() >> 8)
	b[3] = byte(c.Len())
	if err := c.Marshal(b[4:]); err != nil {
		h.chCmdBufs <- b
		return nil, errors.Wrapf(err, "can't marshal %s", c)
	}

	h.muSent.Lock()
	h.sent[c.OpCode()] = p
	h.muSent.Unlock()

	if n, err := h.skt.Write(b[:4+c.Len()]); err != nil {
		return nil, h.stop(errors.Wrapf(err, "can't send %s", c))
	} else if n != 4+c.Len() {
		return nil, h.stop(fmt.Errorf("hci: failed to send whole cmd pkt to hci socket"))
	}

	select {
	case <-h.done:
		return nil, h.closedErr()
	case rp := <-p.done:
		return rp, nil
	case <-time.After(h.cmdTmo):
		h.muSent.Lock()
		delete(h.sent, c.OpCode())
		h.muSent.Unlock()
		// Restore the credit the lost completion would have returned.
		select {
		case h.chCmdBufs <- make([]byte, cmdBufSize):
		default:
		}
		return nil, errors.Wrapf(ErrTimeout, "%s", c)
	}
}

func (h *HCI) closedErr() error {
	if err := h.Error(); err != nil {
		return err
	}
	return ErrClosed
}

func (h *HCI) asyncLoop() {
	for {
		select {
		case <-h.done:
			return
		case b := <-h.chEvt:
			if err := h.evtHub.handle(b); err != nil {
				logger.Error("event", "err", err)
			}
		}
	}
}

func (h *HCI) sktLoop() {
	b := make([]byte, 4096)
	for {
		n, err := h.skt.Read(b)
		if n == 0 || err != nil {
			if err == nil {
				err = io.EOF
			}
			h.stop(errors.Wrap(err, "skt"))
			return
		}
		p := make([]byte, n)
		copy(p, b)
		if err := h.handlePkt(p); err != nil {
			logger.Warn("skt", "err", err)
		}
	}
}

func (h *HCI) stop(err error) error {
	h.once.Do(func() {
		h.muErr.Lock()
		h.err = err
		h.muErr.Unlock()
		close(h.done)
		if h.skt != nil {
			if cerr := h.skt.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}
	})
	return err
}

func (h *HCI) handlePkt(b []byte) error {
	// Strip the HCI header, and pass down the rest of the packet.
	t, b := b[0], b[1:]
	switch t {
	case pktTypeCommand:
		return fmt.Errorf("hci: unmanaged cmd: [ % X ]", b)
	case pktTypeACLData:
		return fmt.Errorf("hci: unsupported acl packet: [ % X ]", b)
	case pktTypeSCOData:
		return fmt.Errorf("hci: unsupported sco packet: [ % X ]", b)
	case pktTypeEvent:
		return h.handleEvt(b)
	case pktTypeVendor:
		return fmt.Errorf("hci: unsupported vendor packet: [ % X ]", b)
	default:
		return fmt.Errorf("hci: invalid packet: 0x%02X [ % X ]", t, b)
	}
}

func (h *HCI) handleEvt(b []byte) error {
	if len(b) < 2 {
		return fmt.Errorf("hci: short event packet: [ % X ]", b)
	}
	code := int(b[0])
	if code == evt.CommandCompleteCode || code == evt.CommandStatusCode {
		return h.evtHub.handle(b)
	}
	select {
	case h.chEvt <- b:
	default:
		logger.Warn("event queue full, dropped", "code", fmt.Sprintf("0x%02X", code))
	}
	return nil
}

func (h *HCI) complete(n uint8, op uint16, rp []byte) error {
	for i := 0; i < int(n); i++ {
		select {
		case h.chCmdBufs <- make([]byte, cmdBufSize):
		default:
		}
	}

	// NOP command, used for flow control purpose [Vol 2, Part E, 4.4]
	if op == 0x0000 {
		return nil
	}
	h.muSent.Lock()
	p, found := h.sent[int(op)]
	delete(h.sent, int(op))
	h.muSent.Unlock()
	if !found {
		return fmt.Errorf("hci: can't find the cmd for opcode 0x%04X", op)
	}
	p.done <- rp
	return nil
}

func (h *HCI) handleCommandComplete(b []byte) error {
	e := evt.CommandComplete(b)
	if len(e) < 3 {
		return fmt.Errorf("hci: short command complete: [ % X ]", b)
	}
	return h.complete(e.NumHCICommandPackets(), e.CommandOpcode(), e.ReturnParameters())
}

func (h *HCI) handleCommandStatus(b []byte) error {
	e := evt.CommandStatus(b)
	if len(e) < 4 {
		return fmt.Errorf("hci: short command status: [ % X ]", b)
	}
	return h.complete(e.NumHCICommandPackets(), e.CommandOpcode(), []byte{e.Status()})
}
