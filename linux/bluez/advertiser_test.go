package bluez

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/prop"

	ble "github.com/currantlabs/blegap"
	"github.com/currantlabs/blegap/adv"
	"github.com/currantlabs/blegap/gap"
)

type fakeAdapter struct {
	calls []string
	err   map[string]error
}

func (f *fakeAdapter) Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call {
	f.calls = append(f.calls, method)
	return &dbus.Call{Err: f.err[method]}
}

type fakeExporter struct {
	props prop.Map
	n     int
}

func (f *fakeExporter) Export(path dbus.ObjectPath, props prop.Map) error {
	f.props = props
	f.n++
	return nil
}

func (f *fakeExporter) value(name string) interface{} {
	p, ok := f.props[advertisementIface][name]
	if !ok {
		return nil
	}
	return p.Value
}

func newAdvertiser() (*Advertiser, *fakeAdapter, *fakeExporter) {
	ad := &fakeAdapter{err: map[string]error{}}
	ex := &fakeExporter{}
	return NewAdvertiser(ad, ex, "/test/adv0"), ad, ex
}

const (
	register   = managerIface + ".RegisterAdvertisement"
	unregister = managerIface + ".UnregisterAdvertisement"
)

func TestAdvertiserProperties(t *testing.T) {
	a, ad, ex := newAdvertiser()
	a.SetDeviceName("gopher")

	var advData, scanRsp adv.Record
	b := adv.NewBuilder(nil)
	m := b.Build(&adv.Content{
		Flags:            adv.FlagGeneralDiscoverable | adv.FlagLEOnly,
		IncludeTxPower:   true,
		ManufacturerData: []byte{0x4C, 0x00, 0x01, 0x02},
		ServiceUUIDs:     adv.PackUUIDs(ble.UUID16(0x180D), ble.MustParse("6e400001b5a3f393e0a9e50e24dcca9e")),
	}, &advData)
	var st []gap.Status
	a.SetAdvertisingConfig(m, advData.Copy(), func(s gap.Status) { st = append(st, s) })
	m = b.Build(&adv.Content{IncludeName: true, ServiceData: []byte{0x0F, 0x18, 0x64}}, &scanRsp)
	a.SetScanResponse(m, scanRsp.Copy(), func(s gap.Status) { st = append(st, s) })

	if ex.n != 0 {
		t.Fatal("exported before broadcast")
	}
	a.Broadcast(true)
	if ex.n != 1 {
		t.Fatalf("exported %d times", ex.n)
	}

	want := map[string]interface{}{
		"Type":             "peripheral",
		"MinInterval":      uint32(20),
		"MaxInterval":      uint32(20),
		"Discoverable":     true,
		"LocalName":        "gopher",
		"Includes":         []string{"tx-power"},
		"ServiceUUIDs":     []string{"180d", "6e400001-b5a3-f393-e0a9-e50e24dcca9e"},
		"ManufacturerData": map[uint16]interface{}{0x004C: []byte{0x01, 0x02}},
		"ServiceData":      map[string]interface{}{"180f": []byte{0x64}},
	}
	for k, v := range want {
		if got := ex.value(k); !reflect.DeepEqual(got, v) {
			t.Errorf("%s = %#v, want %#v", k, got, v)
		}
	}
	if !reflect.DeepEqual(st, []gap.Status{gap.StatusSuccess, gap.StatusSuccess}) {
		t.Errorf("status = %v", st)
	}
	wantCalls := []string{"org.freedesktop.DBus.Properties.Set", register}
	if !reflect.DeepEqual(ad.calls, wantCalls) {
		t.Errorf("calls = %q, want %q", ad.calls, wantCalls)
	}
}

func TestAdvertiserRefresh(t *testing.T) {
	a, ad, ex := newAdvertiser()
	a.Broadcast(true)
	a.Broadcast(true)
	p := gap.DefaultAdvParams
	p.Type = gap.AdvNonconnInd
	a.SetAdvertisingParameters(p)
	if got := ex.value("Type"); got != "broadcast" {
		t.Errorf("Type = %v", got)
	}
	a.Broadcast(false)
	a.Broadcast(false)

	want := []string{register, unregister, register, unregister}
	if !reflect.DeepEqual(ad.calls, want) {
		t.Errorf("calls = %q, want %q", ad.calls, want)
	}
}

func TestAdvertiserErrors(t *testing.T) {
	a, ad, _ := newAdvertiser()
	a.Broadcast(true)
	ad.err[unregister] = dbus.Error{Name: "org.bluez.Error.InvalidArguments"}

	var st gap.Status
	a.SetAdvertisingConfig(0, adv.Record{}, func(s gap.Status) { st = s })
	if st != gap.StatusInvalidParams {
		t.Errorf("status = %s", st)
	}

	delete(ad.err, unregister)
	a.Broadcast(true)
	ad.err[register] = fmt.Errorf("boom")
	a.SetScanResponse(0, adv.Record{}, func(s gap.Status) { st = s })
	if st != gap.StatusUnspecified {
		t.Errorf("status = %s", st)
	}
}

func TestAdvertiserUnsupported(t *testing.T) {
	a, ad, _ := newAdvertiser()
	var st gap.Status
	a.SetScanParameters(gap.ScanParams{}, func(s gap.Status) { st = s })
	if st != gap.StatusUnsupported {
		t.Errorf("status = %s", st)
	}
	var rr []gap.Result
	a.Observe(true, 0, func(r gap.Result) { rr = append(rr, r) })
	if !reflect.DeepEqual(rr, []gap.Result{gap.InquiryComplete{}}) {
		t.Errorf("results = %v", rr)
	}
	a.UpdateConnectionParameters(ble.Addr{}, 6, 6, 0, 10)
	a.SetDataLength(ble.Addr{}, 27)
	a.SetRandomAddress(ble.Addr{})
	a.ConfigureLocalPrivacy(true)
	if len(ad.calls) != 0 {
		t.Errorf("calls = %q", ad.calls)
	}
}
