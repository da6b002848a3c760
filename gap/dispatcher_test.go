package gap

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/pkg/errors"

	ble "github.com/currantlabs/blegap"
	"github.com/currantlabs/blegap/adv"
)

type fakeController struct {
	calls []string

	mask   adv.Mask
	record adv.Record
	done   func(Status)
	result func(Result)
}

func (c *fakeController) log(format string, a ...interface{}) {
	c.calls = append(c.calls, fmt.Sprintf(format, a...))
}

func (c *fakeController) SetAdvertisingConfig(m adv.Mask, r adv.Record, done func(Status)) {
	c.log("adv data %s", m)
	c.mask, c.record, c.done = m, r, done
}

func (c *fakeController) SetScanResponse(m adv.Mask, r adv.Record, done func(Status)) {
	c.log("scan rsp %s", m)
	c.mask, c.record, c.done = m, r, done
}

func (c *fakeController) SetScanParameters(p ScanParams, done func(Status)) {
	c.log("scan params %d/%d", p.Interval, p.Window)
	c.done = done
}

func (c *fakeController) Observe(enable bool, d time.Duration, onResult func(Result)) {
	c.log("observe %t %s", enable, d)
	c.result = onResult
}

func (c *fakeController) SetAdvertisingParameters(p AdvParams) {
	c.log("adv params %d/%d", p.IntervalMin, p.IntervalMax)
}

func (c *fakeController) Broadcast(enable bool) { c.log("broadcast %t", enable) }

func (c *fakeController) UpdateConnectionParameters(a ble.Addr, min, max, latency, timeout uint16) {
	c.log("conn params %s %d %d %d %d", a, min, max, latency, timeout)
}

func (c *fakeController) SetDataLength(a ble.Addr, n uint16) { c.log("data len %s 0x%02X", a, n) }
func (c *fakeController) SetRandomAddress(a ble.Addr)        { c.log("rand addr %s", a) }
func (c *fakeController) ConfigureLocalPrivacy(enable bool)  { c.log("privacy %t", enable) }
func (c *fakeController) SetDeviceName(name string)          { c.log("name %s", name) }

type recorder struct{ events []Event }

func (r *recorder) Handle(e Event) { r.events = append(r.events, e) }

func newDispatcher(t *testing.T, opts ...Option) (*Dispatcher, *fakeController, *recorder) {
	c := &fakeController{}
	r := &recorder{}
	d, err := NewDispatcher(c, append(opts, OptHandler(r))...)
	if err != nil {
		t.Fatalf("NewDispatcher: %v", err)
	}
	return d, c, r
}

var peer = ble.MustAddr("11:22:33:44:55:66")

func TestDispatcherRejects(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"adv interval min>max", StartAdv{AdvParams{IntervalMin: 100, IntervalMax: 50, ChannelMap: ChannelsAll}}, ErrAdvInterval},
		{"adv interval low", StartAdv{AdvParams{IntervalMin: 0x10, IntervalMax: 0x40, ChannelMap: ChannelsAll}}, ErrAdvInterval},
		{"adv interval high", StartAdv{AdvParams{IntervalMin: 0x20, IntervalMax: 0x4001, ChannelMap: ChannelsAll}}, ErrAdvInterval},
		{"adv type", StartAdv{AdvParams{IntervalMin: 0x20, IntervalMax: 0x20, Type: 5, ChannelMap: ChannelsAll}}, ErrAdvType},
		{"adv filter", StartAdv{AdvParams{IntervalMin: 0x20, IntervalMax: 0x20, FilterPolicy: 4, ChannelMap: ChannelsAll}}, ErrFilterPolicy},
		{"adv channels", StartAdv{AdvParams{IntervalMin: 0x20, IntervalMax: 0x20}}, ErrChannelMap},
		{"scan type", SetScanParams{ScanParams{Type: 2, Interval: 0x10, Window: 0x10}}, ErrScanType},
		{"scan interval", SetScanParams{ScanParams{Interval: 0x0003, Window: 0x0004}}, ErrScanInterval},
		{"scan window", SetScanParams{ScanParams{Interval: 0x0010, Window: 0x4001}}, ErrScanWindow},
		{"scan window>interval", SetScanParams{ScanParams{Interval: 0x0010, Window: 0x0020}}, ErrScanWindow},
		{"scan own addr", SetScanParams{ScanParams{Interval: 0x10, Window: 0x10, OwnAddrType: 4}}, ErrOwnAddrType},
		{"scan duration", StartScan{0}, ErrScanDuration},
		{"rand addr", SetRandAddr{}, ErrRandAddr},
		{"conn interval", UpdateConnParams{ConnParams{Addr: peer, IntervalMin: 6, IntervalMax: 0x0C81, Timeout: 0x0A}}, ErrConnInterval},
		{"conn latency", UpdateConnParams{ConnParams{Addr: peer, IntervalMin: 6, IntervalMax: 6, Latency: 0x01F4, Timeout: 0x0A}}, ErrConnLatency},
		{"conn timeout", UpdateConnParams{ConnParams{Addr: peer, IntervalMin: 6, IntervalMax: 6, Timeout: 0x09}}, ErrSupervisionTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, c, r := newDispatcher(t)
			err := d.Handle(tt.req)
			if errors.Cause(err) != tt.want {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			ve, ok := err.(*ValidationError)
			if !ok || ve.Action != tt.req.Action() {
				t.Errorf("err = %#v, want *ValidationError for %s", err, tt.req.Action())
			}
			if len(c.calls) != 0 {
				t.Errorf("controller called: %q", c.calls)
			}
			if len(r.events) != 0 {
				t.Errorf("events emitted: %v", r.events)
			}
		})
	}
}

func TestDispatcherForwards(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want []string
	}{
		{"scan params", SetScanParams{ScanParams{Type: ScanPassive, Interval: 0x0010, Window: 0x0008}}, []string{"scan params 16/8"}},
		{"start scan", StartScan{5}, []string{"observe true 5s"}},
		{"stop scan", StopScan{}, []string{"observe false 0s"}},
		{"start adv", StartAdv{DefaultAdvParams}, []string{"adv params 32/32", "broadcast true"}},
		{"stop adv", StopAdv{}, []string{"broadcast false"}},
		{"conn params", UpdateConnParams{ConnParams{Addr: peer, IntervalMin: 0x20, IntervalMax: 0x10, Latency: 4, Timeout: 0x64}},
			[]string{"conn params 11:22:33:44:55:66 16 16 4 100"}},
		{"data len low", SetPktDataLen{peer, 0}, []string{"data len 11:22:33:44:55:66 0x1B"}},
		{"data len high", SetPktDataLen{peer, 0xFFFF}, []string{"data len 11:22:33:44:55:66 0xFB"}},
		{"data len", SetPktDataLen{peer, 0x40}, []string{"data len 11:22:33:44:55:66 0x40"}},
		{"rand addr", SetRandAddr{ble.MustAddr("C0:00:00:00:00:01")}, []string{"rand addr c0:00:00:00:00:01"}},
		{"privacy", ConfigLocalPrivacy{true}, []string{"privacy true"}},
		{"name", SetDevName{"gopher"}, []string{"name gopher"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, c, _ := newDispatcher(t)
			if err := d.Handle(tt.req); err != nil {
				t.Fatalf("Handle: %v", err)
			}
			if !reflect.DeepEqual(c.calls, tt.want) {
				t.Errorf("calls = %q, want %q", c.calls, tt.want)
			}
		})
	}
}

type bogus struct{}

func (bogus) Action() Action { return Action(99) }

func TestDispatcherUnknownAction(t *testing.T) {
	d, c, _ := newDispatcher(t)
	if err := d.Handle(bogus{}); errors.Cause(err) != ErrUnknownAction {
		t.Fatalf("err = %v, want %v", err, ErrUnknownAction)
	}
	if len(c.calls) != 0 {
		t.Errorf("controller called: %q", c.calls)
	}
}

func TestConfigureAdvertisingData(t *testing.T) {
	d, c, r := newDispatcher(t)
	content := adv.Content{
		ManufacturerData: []byte{0xAA, 0xBB},
		ServiceUUIDs:     adv.PackUUIDs(ble.UUID16(0x1234), ble.UUID32(0xDEADBEEF)),
	}
	if err := d.ConfigureAdvertisingData(content, false); err != nil {
		t.Fatal(err)
	}
	want := adv.BitManu | adv.BitService | adv.BitService32
	if c.mask != want {
		t.Errorf("mask = %s, want %s", c.mask, want)
	}
	if got := c.record.Service16.UUIDs(); !reflect.DeepEqual(got, []uint16{0x1234}) {
		t.Errorf("service16 = %#x", got)
	}

	// The controller's record is a copy; mutating it leaves the slot intact.
	c.record.Manufacturer.Data[0] = 0
	if d.advData.Manufacturer.Data[0] != 0xAA {
		t.Errorf("slot shares buffers with the controller")
	}

	c.done(StatusSuccess)
	if len(r.events) != 1 || r.events[0] != (AdvDataSetComplete{Status: StatusSuccess}) {
		t.Errorf("events = %v", r.events)
	}
}

func TestConfigureSlotsIndependent(t *testing.T) {
	pool := adv.NewPool(0)
	d, c, r := newDispatcher(t, OptPool(pool))

	d.ConfigureAdvertisingData(adv.Content{ManufacturerData: []byte{1}}, false)
	d.ConfigureAdvertisingData(adv.Content{ManufacturerData: []byte{2, 3}}, true)
	if c.calls[1] != "scan rsp MANU" {
		t.Errorf("calls = %q", c.calls)
	}
	c.done(StatusCommandDisallowed)
	if len(r.events) != 1 || r.events[0] != (ScanRspSetComplete{Status: StatusCommandDisallowed}) {
		t.Errorf("events = %v", r.events)
	}

	// Rebuilding the scan response leaves the advertising data alone.
	d.ConfigureAdvertisingData(adv.Content{}, true)
	if d.advData.Manufacturer == nil || d.advData.Manufacturer.Data[0] != 1 {
		t.Errorf("advertising data touched by scan response rebuild")
	}
	if n := pool.Outstanding(); n != 1 {
		t.Errorf("outstanding = %d, want 1", n)
	}
	d.Close()
	if n := pool.Outstanding(); n != 0 {
		t.Errorf("outstanding after Close = %d, want 0", n)
	}
}

func TestScanResults(t *testing.T) {
	d, c, r := newDispatcher(t)
	d.SetScanParameters(ScanParams{Type: ScanActive, Interval: 0x10, Window: 0x10})
	c.done(StatusSuccess)
	d.StartScanning(1)
	res := InquiryResult{Addr: peer, DevType: DevTypeBLE, RSSI: -60, AddrType: AddrRandom, Flag: 0x06}
	c.result(res)
	c.result(InquiryComplete{NumResponses: 1})

	want := []Event{
		ScanParamSetComplete{Status: StatusSuccess},
		ScanResult{Result: res},
		ScanResult{Result: InquiryComplete{NumResponses: 1}},
	}
	if !reflect.DeepEqual(r.events, want) {
		t.Errorf("events = %v, want %v", r.events, want)
	}
}

func TestHandleCallbackDrops(t *testing.T) {
	d, _, r := newDispatcher(t)
	d.HandleCallback(Msg{Sig: SigAPICallback, PID: PIDGapBLE, Act: 42})
	d.HandleCallback(Msg{Sig: SigAPICallback, PID: PIDGapBLE, Act: int(EvtScanResult), Arg: AdvDataSetComplete{}})
	d.HandleCallback(Msg{Sig: SigAPICallback, PID: PIDNum, Act: int(EvtAdvDataSetComplete), Arg: AdvDataSetComplete{}})
	if len(r.events) != 0 {
		t.Errorf("events = %v", r.events)
	}
}

func TestRegisterCallback(t *testing.T) {
	d, err := NewDispatcher(&fakeController{})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.RegisterCallback(nil); err != ErrNoHandler {
		t.Errorf("err = %v, want %v", err, ErrNoHandler)
	}
	// No handler: events are dropped, not fatal.
	d.deliver(AdvDataSetComplete{})

	var got []Event
	d.RegisterCallback(HandlerFunc(func(e Event) { got = append(got, e) }))
	d.deliver(AdvDataSetComplete{Status: StatusUnsupported})
	if len(got) != 1 {
		t.Errorf("got %v", got)
	}
}

type failing struct{ n int }

func (f *failing) Transfer(Msg) error { f.n++; return ErrQueueFull }

func TestDeliveryFailure(t *testing.T) {
	tx := &failing{}
	d, c, r := newDispatcher(t, OptTransferer(tx))
	d.SetScanParameters(ScanParams{Interval: 0x10, Window: 0x10})
	c.done(StatusSuccess)
	if tx.n != 1 || len(r.events) != 0 {
		t.Errorf("transfers = %d, events = %v", tx.n, r.events)
	}
}

func TestDispatcherOverTask(t *testing.T) {
	task := NewTask(8)
	d, c, r := newDispatcher(t, OptTask(task))

	if err := d.Post(StartScan{Duration: 2}); err != nil {
		t.Fatal(err)
	}
	if err := d.Post(SetRandAddr{}); err != nil {
		t.Fatal(err)
	}
	task.Close()
	task.Loop()

	if !reflect.DeepEqual(c.calls, []string{"observe true 2s"}) {
		t.Errorf("calls = %q", c.calls)
	}
	if len(r.events) != 0 {
		t.Errorf("events = %v", r.events)
	}
}

func TestNilOptions(t *testing.T) {
	for name, opt := range map[string]Option{
		"task":       OptTask(nil),
		"transferer": OptTransferer(nil),
	} {
		if _, err := NewDispatcher(&fakeController{}, opt); err == nil {
			t.Errorf("%s: nil accepted", name)
		}
	}
}
