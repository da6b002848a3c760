// Package bluez carries the advertising subset of GAP operations to a
// controller owned by BlueZ, over D-Bus.
package bluez

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/prop"
	"github.com/mgutz/logxi/v1"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

	ble "github.com/currantlabs/blegap"
	"github.com/currantlabs/blegap/adv"
	"github.com/currantlabs/blegap/gap"
)

var logger = log.New("bluez")

var _ gap.Controller = (*Advertiser)(nil)

const (
	advertisementIface = "org.bluez.LEAdvertisement1"
	adapterIface       = "org.bluez.Adapter1"
	managerIface       = "org.bluez.LEAdvertisingManager1"
)

// An Adapter is the BlueZ adapter object. dbus.BusObject implements it.
type Adapter interface {
	Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// An Exporter publishes the properties of an advertisement object.
type Exporter interface {
	Export(path dbus.ObjectPath, props prop.Map) error
}

type slot struct {
	mask adv.Mask
	rec  adv.Record
}

// Advertiser implements gap.Controller on top of BlueZ. BlueZ decides
// how the advertisement is split between advertising data and scan
// response, so both slots feed one advertisement object.
//
// Scanning and connection operations are not available through the
// advertising API; they complete with StatusUnsupported.
type Advertiser struct {
	mu sync.Mutex

	adapter Adapter
	exp     Exporter
	path    dbus.ObjectPath

	name       string
	params     gap.AdvParams
	advData    slot
	scanRsp    slot
	registered bool
}

// Open connects to the system bus and returns an Advertiser on adapter id,
// such as "hci0".
func Open(id string) (*Advertiser, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, errors.Wrap(err, "can't connect to system bus")
	}
	obj := conn.Object("org.bluez", dbus.ObjectPath("/org/bluez/"+id))
	if _, err := obj.GetProperty(adapterIface + ".Address"); err != nil {
		return nil, errors.Wrapf(err, "can't find adapter %s", id)
	}
	return NewAdvertiser(obj, busExporter{conn}, dbus.ObjectPath("/org/currantlabs/blegap/advertisement0")), nil
}

// NewAdvertiser returns an Advertiser registering the object at path with adapter.
func NewAdvertiser(adapter Adapter, exp Exporter, path dbus.ObjectPath) *Advertiser {
	return &Advertiser{
		adapter: adapter,
		exp:     exp,
		path:    path,
		params:  gap.DefaultAdvParams,
	}
}

type busExporter struct{ conn *dbus.Conn }

func (e busExporter) Export(path dbus.ObjectPath, props prop.Map) error {
	if _, err := prop.Export(e.conn, path, props); err != nil {
		return errors.Wrap(err, "can't export properties")
	}
	return e.conn.Export(release{}, path, advertisementIface)
}

// release implements the Release method BlueZ calls when it drops the
// advertisement.
type release struct{}

func (release) Release() *dbus.Error {
	logger.Info("advertisement released")
	return nil
}

// status maps a BlueZ error to the closest HCI status.
func status(err error) gap.Status {
	if err == nil {
		return gap.StatusSuccess
	}
	if e, ok := errors.Cause(err).(dbus.Error); ok {
		switch e.Name {
		case "org.bluez.Error.InvalidArguments", "org.bluez.Error.InvalidLength":
			return gap.StatusInvalidParams
		case "org.bluez.Error.AlreadyExists", "org.bluez.Error.NotPermitted", "org.bluez.Error.InProgress":
			return gap.StatusCommandDisallowed
		case "org.bluez.Error.NotSupported":
			return gap.StatusUnsupported
		}
	}
	return gap.StatusUnspecified
}

// SetAdvertisingConfig ...
func (a *Advertiser) SetAdvertisingConfig(m adv.Mask, r adv.Record, done func(gap.Status)) {
	a.mu.Lock()
	a.advData = slot{m, r}
	err := a.refresh()
	a.mu.Unlock()
	done(status(err))
}

// SetScanResponse ...
func (a *Advertiser) SetScanResponse(m adv.Mask, r adv.Record, done func(gap.Status)) {
	a.mu.Lock()
	a.scanRsp = slot{m, r}
	err := a.refresh()
	a.mu.Unlock()
	done(status(err))
}

// SetScanParameters is not supported.
func (a *Advertiser) SetScanParameters(p gap.ScanParams, done func(gap.Status)) {
	logger.Warn("scan parameters not supported")
	done(gap.StatusUnsupported)
}

// Observe is not supported. A requested scan ends immediately with no results.
func (a *Advertiser) Observe(enable bool, d time.Duration, onResult func(gap.Result)) {
	logger.Warn("scanning not supported")
	if enable && onResult != nil {
		onResult(gap.InquiryComplete{})
	}
}

// SetAdvertisingParameters sets the type and interval of the advertisement.
func (a *Advertiser) SetAdvertisingParameters(p gap.AdvParams) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.params = p
	if err := a.refresh(); err != nil {
		logger.Error("adv params", "err", err)
	}
}

// Broadcast registers or unregisters the advertisement.
func (a *Advertiser) Broadcast(enable bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var err error
	if enable {
		err = a.register()
	} else {
		err = a.unregister()
	}
	if err != nil {
		logger.Error("broadcast", "enable", enable, "err", err)
	}
}

// refresh re-registers a live advertisement. BlueZ reads the properties only
// at registration.
func (a *Advertiser) refresh() error {
	if !a.registered {
		return nil
	}
	if err := a.unregister(); err != nil {
		return err
	}
	return a.register()
}

func (a *Advertiser) register() error {
	if a.registered {
		return nil
	}
	props, err := a.properties()
	if err != nil {
		return err
	}
	if err := a.exp.Export(a.path, props); err != nil {
		return err
	}
	if err := a.adapter.Call(managerIface+".RegisterAdvertisement", 0, a.path, map[string]interface{}{}).Err; err != nil {
		return errors.Wrap(err, "can't register advertisement")
	}
	a.registered = true
	logger.Info("advertising", "path", a.path)
	return nil
}

func (a *Advertiser) unregister() error {
	if !a.registered {
		return nil
	}
	a.registered = false
	if err := a.adapter.Call(managerIface+".UnregisterAdvertisement", 0, a.path).Err; err != nil {
		return errors.Wrap(err, "can't unregister advertisement")
	}
	return nil
}

func unsupported(op string) {
	logger.Warn("not supported", "op", op)
}

// UpdateConnectionParameters is not supported.
func (a *Advertiser) UpdateConnectionParameters(ble.Addr, uint16, uint16, uint16, uint16) {
	unsupported("conn params")
}

// SetDataLength is not supported.
func (a *Advertiser) SetDataLength(ble.Addr, uint16) { unsupported("data len") }

// SetRandomAddress is not supported.
func (a *Advertiser) SetRandomAddress(ble.Addr) { unsupported("rand addr") }

// ConfigureLocalPrivacy is not supported.
func (a *Advertiser) ConfigureLocalPrivacy(bool) { unsupported("privacy") }

// SetDeviceName sets the adapter alias, which is the name BlueZ advertises.
func (a *Advertiser) SetDeviceName(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.name = name
	call := a.adapter.Call("org.freedesktop.DBus.Properties.Set", 0, adapterIface, "Alias", dbus.MakeVariant(name))
	if call.Err != nil {
		logger.Error("set alias", "err", call.Err)
		return
	}
	if err := a.refresh(); err != nil {
		logger.Error("set alias", "err", err)
	}
}

// properties merges both slots into LEAdvertisement1 properties.
func (a *Advertiser) properties() (prop.Map, error) {
	typ := "broadcast"
	switch a.params.Type {
	case gap.AdvInd, gap.AdvDirectIndHigh, gap.AdvDirectIndLow:
		typ = "peripheral"
	}
	p := map[string]*prop.Prop{
		"Type": {Value: typ},
		// N * 0.625 msec, in msec.
		"MinInterval": {Value: uint32(a.params.IntervalMin) * 5 / 8},
		"MaxInterval": {Value: uint32(a.params.IntervalMax) * 5 / 8},
	}

	var uuids []string
	manu := map[uint16]interface{}{}
	svcData := map[string]interface{}{}
	var txPower bool
	for _, s := range []slot{a.advData, a.scanRsp} {
		m, r := s.mask, s.rec
		if m.Has(adv.BitFlags) {
			p["Discoverable"] = &prop.Prop{Value: r.Flags&(adv.FlagGeneralDiscoverable|adv.FlagLimitedDiscoverable) != 0}
		}
		if m.Has(adv.BitDevName) && a.name != "" {
			p["LocalName"] = &prop.Prop{Value: a.name}
		}
		if m.Has(adv.BitTxPower) {
			txPower = true
		}
		if m.Has(adv.BitAppearance) {
			p["Appearance"] = &prop.Prop{Value: r.Appearance}
		}
		if m.Has(adv.BitService) && r.Service16 != nil {
			for _, u := range r.Service16.UUIDs() {
				uuids = append(uuids, uuidString(ble.UUID16(u)))
			}
		}
		if m.Has(adv.BitService32) && r.Service32 != nil {
			for _, u := range r.Service32.UUIDs() {
				uuids = append(uuids, uuidString(ble.UUID32(u)))
			}
		}
		if m.Has(adv.BitService128) && r.Service128 != nil {
			uuids = append(uuids, uuidString(ble.UUID(r.Service128.UUID)))
		}
		if m.Has(adv.BitManu) && r.Manufacturer != nil {
			d := r.Manufacturer.Data
			if len(d) < 2 {
				return nil, errors.Errorf("manufacturer data too short: [% X]", d)
			}
			manu[binary.LittleEndian.Uint16(d)] = d[2:]
		}
		if m.Has(adv.BitProprietary) && r.ServiceData != nil {
			d := r.ServiceData.Data
			if len(d) < 2 {
				return nil, errors.Errorf("service data too short: [% X]", d)
			}
			svcData[uuidString(ble.UUID(d[:2]))] = d[2:]
		}
	}
	if len(uuids) > 0 {
		p["ServiceUUIDs"] = &prop.Prop{Value: uuids}
	}
	if len(manu) > 0 {
		p["ManufacturerData"] = &prop.Prop{Value: manu}
	}
	if len(svcData) > 0 {
		p["ServiceData"] = &prop.Prop{Value: svcData}
	}
	if txPower {
		p["Includes"] = &prop.Prop{Value: []string{"tx-power"}}
	}
	return prop.Map{advertisementIface: p}, nil
}

// uuidString formats u the way BlueZ parses it: short UUIDs in hex,
// 128-bit UUIDs in the dashed form.
func uuidString(u ble.UUID) string {
	if u.Len() != 16 {
		return u.String()
	}
	id, err := uuid.FromBytes(ble.Reverse(u))
	if err != nil {
		return u.String()
	}
	return id.String()
}
