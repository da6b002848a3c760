// Package linux carries GAP operations to a controller over HCI.
package linux

import (
	"io"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/mgutz/logxi/v1"
	"github.com/pkg/errors"

	ble "github.com/currantlabs/blegap"
	"github.com/currantlabs/blegap/adv"
	"github.com/currantlabs/blegap/gap"
	"github.com/currantlabs/blegap/linux/hci"
	"github.com/currantlabs/blegap/linux/hci/cmd"
	"github.com/currantlabs/blegap/linux/hci/evt"
)

var logger = log.New("linux")

var _ gap.Controller = (*Device)(nil)

// ErrNotConnected is returned for an operation on a peer without a link.
var ErrNotConnected = errors.New("not connected")

// A Transport sends HCI commands and reports HCI events.
type Transport interface {
	cmd.Sender
	SetEventHandler(c int, f hci.Handler) hci.Handler
	SetSubeventHandler(c int, f hci.Handler) hci.Handler

	// TxPower returns the advertising channel transmit power in dBm.
	TxPower() int8
}

// Device implements gap.Controller over a Transport.
type Device struct {
	t      Transport
	states *states

	// Options
	name      string
	filterDup bool
	dedupSize int
	queueSize int

	// Owned by the states loop.
	advertising bool

	// muScan is held while results or the end of a scan are handed to
	// onResult, so nothing follows InquiryComplete. Take it before mu.
	muScan sync.Mutex

	mu       sync.Mutex
	scanning bool
	scanGen  int
	onResult func(gap.Result)
	found    int
	seen     *lru.Cache

	muConns sync.Mutex
	conns   map[ble.Addr]uint16
}

// Open initializes HCI device id (-1 for the first available one) and
// returns a Device on top of it.
func Open(id int, opts ...Option) (*Device, error) {
	h, err := hci.NewHCI(hci.OptDeviceID(id))
	if err != nil {
		return nil, errors.Wrap(err, "can't create hci")
	}
	if err := h.Init(); err != nil {
		h.Close()
		return nil, errors.Wrap(err, "can't init hci")
	}
	return NewDevice(h, opts...)
}

// NewDevice returns a Device sending commands over t.
func NewDevice(t Transport, opts ...Option) (*Device, error) {
	d := &Device{
		t:         t,
		dedupSize: 256,
		queueSize: 32,
		conns:     make(map[ble.Addr]uint16),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, errors.Wrap(err, "can't apply option")
		}
	}
	seen, err := lru.New(d.dedupSize)
	if err != nil {
		return nil, errors.Wrap(err, "can't create dedup cache")
	}
	d.seen = seen
	d.states = newStates(d.queueSize)

	t.SetSubeventHandler(evt.LEAdvertisingReportSubCode, hci.HandlerFunc(d.handleAdvertisingReport))
	t.SetSubeventHandler(evt.LEConnectionCompleteSubCode, hci.HandlerFunc(d.handleLEConnectionComplete))
	t.SetSubeventHandler(evt.LEConnectionUpdateCompleteSubCode, hci.HandlerFunc(d.handleLEConnectionUpdateComplete))
	t.SetEventHandler(evt.DisconnectionCompleteCode, hci.HandlerFunc(d.handleDisconnectionComplete))

	go d.states.loop()
	return d, nil
}

// Close stops the Device, and closes the Transport if it's an io.Closer.
// Pending operations are dropped.
func (d *Device) Close() error {
	d.states.close()
	if c, ok := d.t.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func status(err error, s uint8) gap.Status {
	if err != nil {
		return gap.Status(hci.Status(err))
	}
	return gap.Status(s)
}

func check(err error, s uint8) error {
	if err == nil && s != 0x00 {
		return hci.ErrCommand(s)
	}
	return err
}

func (d *Device) encode(m adv.Mask, r *adv.Record) (adv.Packet, error) {
	return adv.Encode(m, r, adv.EncodeOptions{Name: d.name, TxPower: d.t.TxPower()})
}

// SetAdvertisingConfig encodes r and loads it as advertising data.
func (d *Device) SetAdvertisingConfig(m adv.Mask, r adv.Record, done func(gap.Status)) {
	d.states.post("adv data", func() error {
		b, err := d.encode(m, &r)
		if err != nil {
			done(gap.StatusInvalidParams)
			return err
		}
		c := cmd.LESetAdvertisingData{}
		c.SetData(b)
		rp := cmd.LESetAdvertisingDataRP{}
		err = d.t.Send(&c, &rp)
		done(status(err, rp.Status))
		return check(err, rp.Status)
	})
}

// SetScanResponse encodes r and loads it as scan response data.
func (d *Device) SetScanResponse(m adv.Mask, r adv.Record, done func(gap.Status)) {
	d.states.post("scan rsp", func() error {
		b, err := d.encode(m, &r)
		if err != nil {
			done(gap.StatusInvalidParams)
			return err
		}
		c := cmd.LESetScanResponseData{}
		c.SetData(b)
		rp := cmd.LESetScanResponseDataRP{}
		err = d.t.Send(&c, &rp)
		done(status(err, rp.Status))
		return check(err, rp.Status)
	})
}

// SetScanParameters ...
func (d *Device) SetScanParameters(p gap.ScanParams, done func(gap.Status)) {
	d.states.post("scan params", func() error {
		rp := cmd.LESetScanParametersRP{}
		err := d.t.Send(&cmd.LESetScanParameters{
			LEScanType:           p.Type,
			LEScanInterval:       p.Interval,
			LEScanWindow:         p.Window,
			OwnAddressType:       p.OwnAddrType,
			ScanningFilterPolicy: p.FilterPolicy,
		}, &rp)
		done(status(err, rp.Status))
		return check(err, rp.Status)
	})
}

// Observe starts scanning for dur, or stops the current scan.
// Each scan ends with an InquiryComplete, whether it timed out or was stopped.
func (d *Device) Observe(enable bool, dur time.Duration, onResult func(gap.Result)) {
	if !enable {
		d.states.post("stop scan", func() error {
			d.mu.Lock()
			gen := d.scanGen
			d.mu.Unlock()
			return d.stopScan(gen)
		})
		return
	}
	d.states.post("scan", func() error {
		d.mu.Lock()
		prev := d.scanGen
		d.mu.Unlock()
		if err := d.stopScan(prev); err != nil {
			logger.Warn("scan: can't stop previous scan", "err", err)
		}

		d.mu.Lock()
		d.scanGen++
		gen := d.scanGen
		d.scanning = true
		d.onResult = onResult
		d.found = 0
		d.seen.Purge()
		d.mu.Unlock()

		var fd uint8
		if d.filterDup {
			fd = 1
		}
		rp := cmd.LESetScanEnableRP{}
		if err := check(d.t.Send(&cmd.LESetScanEnable{LEScanEnable: 1, FilterDuplicates: fd}, &rp), rp.Status); err != nil {
			d.endScan(gen)
			return err
		}
		if dur > 0 {
			time.AfterFunc(dur, func() {
				d.states.post("scan timeout", func() error { return d.stopScan(gen) })
			})
		}
		return nil
	})
}

// stopScan disables scan gen, if it's still running, and reports its end.
func (d *Device) stopScan(gen int) error {
	d.mu.Lock()
	running := d.scanning && gen == d.scanGen
	d.mu.Unlock()
	if !running {
		return nil
	}
	rp := cmd.LESetScanEnableRP{}
	err := check(d.t.Send(&cmd.LESetScanEnable{LEScanEnable: 0}, &rp), rp.Status)
	d.endScan(gen)
	return err
}

func (d *Device) endScan(gen int) {
	d.muScan.Lock()
	defer d.muScan.Unlock()
	d.mu.Lock()
	if !d.scanning || gen != d.scanGen {
		d.mu.Unlock()
		return
	}
	f, n := d.onResult, d.found
	d.scanning = false
	d.onResult = nil
	d.mu.Unlock()
	if f != nil {
		f(gap.InquiryComplete{NumResponses: n})
	}
}

// SetAdvertisingParameters ...
func (d *Device) SetAdvertisingParameters(p gap.AdvParams) {
	d.states.post("adv params", func() error {
		// Parameters can't change while advertising.
		wasAdvertising := d.advertising
		if wasAdvertising {
			if err := d.enableAdvertising(false); err != nil {
				return err
			}
		}
		rp := cmd.LESetAdvertisingParametersRP{}
		err := check(d.t.Send(&cmd.LESetAdvertisingParameters{
			AdvertisingIntervalMin:  p.IntervalMin,
			AdvertisingIntervalMax:  p.IntervalMax,
			AdvertisingType:         p.Type,
			OwnAddressType:          p.OwnAddrType,
			DirectAddressType:       p.PeerAddrType,
			DirectAddress:           p.PeerAddr,
			AdvertisingChannelMap:   p.ChannelMap,
			AdvertisingFilterPolicy: p.FilterPolicy,
		}, &rp), rp.Status)
		if wasAdvertising {
			if err := d.enableAdvertising(true); err != nil {
				return err
			}
		}
		return err
	})
}

// Broadcast starts or stops advertising.
func (d *Device) Broadcast(enable bool) {
	name := "stop adv"
	if enable {
		name = "adv"
	}
	d.states.post(name, func() error {
		if d.advertising == enable {
			return nil
		}
		return d.enableAdvertising(enable)
	})
}

func (d *Device) enableAdvertising(enable bool) error {
	c := cmd.LESetAdvertiseEnable{}
	if enable {
		c.AdvertisingEnable = 1
	}
	rp := cmd.LESetAdvertiseEnableRP{}
	if err := check(d.t.Send(&c, &rp), rp.Status); err != nil {
		return err
	}
	d.advertising = enable
	return nil
}

// UpdateConnectionParameters requests new parameters for the link to a.
func (d *Device) UpdateConnectionParameters(a ble.Addr, min, max, latency, timeout uint16) {
	d.states.post("conn params", func() error {
		h, ok := d.handle(a)
		if !ok {
			return errors.Wrapf(ErrNotConnected, "%s", a)
		}
		return d.t.Send(&cmd.LEConnectionUpdate{
			ConnectionHandle:   h,
			ConnIntervalMin:    min,
			ConnIntervalMax:    max,
			ConnLatency:        latency,
			SupervisionTimeout: timeout,
		}, nil)
	})
}

// txTime returns the time, in microseconds, to send n octets on the 1M PHY.
func txTime(n uint16) uint16 { return (n + 14) * 8 }

// SetDataLength sets the maximum transmit payload on the link to a.
func (d *Device) SetDataLength(a ble.Addr, n uint16) {
	d.states.post("data len", func() error {
		h, ok := d.handle(a)
		if !ok {
			return errors.Wrapf(ErrNotConnected, "%s", a)
		}
		rp := cmd.LESetDataLengthRP{}
		return check(d.t.Send(&cmd.LESetDataLength{
			ConnectionHandle: h,
			TxOctets:         n,
			TxTime:           txTime(n),
		}, &rp), rp.Status)
	})
}

// SetRandomAddress ...
func (d *Device) SetRandomAddress(a ble.Addr) {
	d.states.post("rand addr", func() error {
		rp := cmd.LESetRandomAddressRP{}
		return check(d.t.Send(&cmd.LESetRandomAddress{RandomAddress: a}, &rp), rp.Status)
	})
}

// ConfigureLocalPrivacy turns address resolution in the controller on or off.
func (d *Device) ConfigureLocalPrivacy(enable bool) {
	d.states.post("privacy", func() error {
		c := cmd.LESetAddressResolutionEnable{}
		if enable {
			c.AddressResolutionEnable = 1
		}
		rp := cmd.LESetAddressResolutionEnableRP{}
		return check(d.t.Send(&c, &rp), rp.Status)
	})
}

// SetDeviceName sets the local name. Advertising data built afterwards
// carries the new name.
func (d *Device) SetDeviceName(name string) {
	d.states.post("name", func() error {
		d.name = name
		c := cmd.WriteLocalName{}
		c.SetName(name)
		rp := cmd.WriteLocalNameRP{}
		return check(d.t.Send(&c, &rp), rp.Status)
	})
}
