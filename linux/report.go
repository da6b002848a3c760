package linux

import (
	"fmt"

	ble "github.com/currantlabs/blegap"
	"github.com/currantlabs/blegap/adv"
	"github.com/currantlabs/blegap/gap"
	"github.com/currantlabs/blegap/linux/hci/evt"
)

func (d *Device) handleAdvertisingReport(b []byte) error {
	e := evt.LEAdvertisingReport(b)
	if !e.Valid() {
		return fmt.Errorf("linux: malformed advertising report: [ % X ]", b)
	}

	d.muScan.Lock()
	defer d.muScan.Unlock()
	d.mu.Lock()
	if !d.scanning || d.onResult == nil {
		d.mu.Unlock()
		return nil
	}
	f := d.onResult
	var rr []gap.InquiryResult
	for i := 0; i < int(e.NumReports()); i++ {
		a := ble.Addr(e.Address(i))
		if d.filterDup {
			if seen, _ := d.seen.ContainsOrAdd(a, nil); seen {
				continue
			}
		}
		flag, _ := adv.Packet(e.Data(i)).Flags()
		rr = append(rr, gap.InquiryResult{
			Addr:     a,
			DevType:  gap.DevTypeBLE,
			RSSI:     e.RSSI(i),
			AddrType: e.AddressType(i),
			Flag:     flag,
		})
	}
	d.found += len(rr)
	d.mu.Unlock()

	for _, r := range rr {
		f(r)
	}
	return nil
}

func (d *Device) handle(a ble.Addr) (uint16, bool) {
	d.muConns.Lock()
	defer d.muConns.Unlock()
	h, ok := d.conns[a]
	return h, ok
}

func (d *Device) handleLEConnectionComplete(b []byte) error {
	e := evt.LEConnectionComplete(b)
	if len(e) < 18 {
		return fmt.Errorf("linux: malformed connection complete: [ % X ]", b)
	}
	if e.Status() != 0x00 {
		logger.Info("connection failed", "status", fmt.Sprintf("0x%02X", e.Status()))
		return nil
	}
	a := ble.Addr(e.PeerAddress())
	d.muConns.Lock()
	d.conns[a] = e.ConnectionHandle()
	d.muConns.Unlock()
	logger.Info("connected", "addr", a, "handle", e.ConnectionHandle(), "interval", e.ConnInterval())
	return nil
}

func (d *Device) handleLEConnectionUpdateComplete(b []byte) error {
	e := evt.LEConnectionUpdateComplete(b)
	if len(e) < 10 {
		return fmt.Errorf("linux: malformed connection update: [ % X ]", b)
	}
	logger.Info("connection updated", "handle", e.ConnectionHandle(), "status", e.Status(),
		"interval", e.ConnInterval(), "latency", e.ConnLatency(), "timeout", e.SupervisionTimeout())
	return nil
}

func (d *Device) handleDisconnectionComplete(b []byte) error {
	e := evt.DisconnectionComplete(b)
	if len(e) < 4 {
		return fmt.Errorf("linux: malformed disconnection complete: [ % X ]", b)
	}
	if e.Status() != 0x00 {
		return nil
	}
	d.muConns.Lock()
	defer d.muConns.Unlock()
	for a, h := range d.conns {
		if h == e.ConnectionHandle() {
			delete(d.conns, a)
			logger.Info("disconnected", "addr", a, "reason", fmt.Sprintf("0x%02X", e.Reason()))
			return nil
		}
	}
	return fmt.Errorf("linux: disconnecting an invalid handle %04X", e.ConnectionHandle())
}
