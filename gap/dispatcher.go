package gap

import (
	"time"

	"github.com/mgutz/logxi/v1"
	"github.com/pkg/errors"

	ble "github.com/currantlabs/blegap"
	"github.com/currantlabs/blegap/adv"
)

var logger = log.New("gap")

// Dispatcher validates GAP requests and forwards them to a Controller.
// Completions come back as Events, handed to a Transferer and delivered
// to the registered Handler on the consumer side.
//
// The advertising data and scan response records are owned by the
// Dispatcher. Requests for the same record must be serialized by the
// caller; requests for different records don't interfere.
type Dispatcher struct {
	ctrl     Controller
	builder  *adv.Builder
	tx       Transferer
	profiles *Profiles

	advData adv.Record
	scanRsp adv.Record
}

// NewDispatcher returns a Dispatcher forwarding to c.
func NewDispatcher(c Controller, opts ...Option) (*Dispatcher, error) {
	if c == nil {
		return nil, errors.New("nil controller")
	}
	d := &Dispatcher{
		ctrl:     c,
		builder:  adv.NewBuilder(nil),
		profiles: NewProfiles(),
	}
	d.tx = direct{d}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, errors.Wrap(err, "can't apply option")
		}
	}
	return d, nil
}

// direct delivers on the producer's context.
type direct struct{ d *Dispatcher }

func (t direct) Transfer(m Msg) error {
	switch m.Sig {
	case SigAPICall:
		t.d.HandleCall(m)
	case SigAPICallback:
		t.d.HandleCallback(m)
	}
	return nil
}

// RegisterCallback sets the application handler for GAP events.
func (d *Dispatcher) RegisterCallback(h Handler) error {
	if h == nil {
		return ErrNoHandler
	}
	return d.profiles.Set(PIDGapBLE, h)
}

// Handle runs r on the caller's context.
func (d *Dispatcher) Handle(r Request) error {
	switch r := r.(type) {
	case ConfigAdvData:
		return d.ConfigureAdvertisingData(r.Content, r.Content.ScanResponse)
	case SetScanParams:
		return d.SetScanParameters(r.Params)
	case StartScan:
		return d.StartScanning(r.Duration)
	case StopScan:
		return d.StopScanning()
	case StartAdv:
		return d.StartAdvertising(r.Params)
	case StopAdv:
		return d.StopAdvertising()
	case UpdateConnParams:
		return d.UpdateConnectionParameters(r.Params)
	case SetPktDataLen:
		return d.SetPacketDataLength(r.Addr, r.Length)
	case SetRandAddr:
		return d.SetRandomAddress(r.Addr)
	case ConfigLocalPrivacy:
		return d.ConfigureLocalPrivacy(r.Enable)
	case SetDevName:
		return d.SetDeviceName(r.Name)
	}
	logger.Warn("unhandled request", "request", r)
	return errors.Wrapf(ErrUnknownAction, "%T", r)
}

// Post hands r to the Transferer, to be run by HandleCall on the
// consumer's context.
func (d *Dispatcher) Post(r Request) error {
	if r == nil {
		return errors.Wrap(ErrUnknownAction, "nil request")
	}
	return d.tx.Transfer(Msg{Sig: SigAPICall, PID: PIDGapBLE, Act: int(r.Action()), Arg: r})
}

// HandleCall runs a Request posted with Post.
func (d *Dispatcher) HandleCall(m Msg) {
	r, ok := m.Arg.(Request)
	if !ok {
		logger.Warn("unhandled call", "act", m.Act)
		return
	}
	// Failures are logged where they happen.
	_ = d.Handle(r)
}

// HandleCallback delivers an Event to the registered Handler.
func (d *Dispatcher) HandleCallback(m Msg) {
	switch EventKind(m.Act) {
	case EvtAdvDataSetComplete, EvtScanRspSetComplete, EvtScanParamSetComplete, EvtScanResult:
	default:
		logger.Warn("unhandled event", "act", m.Act)
		return
	}
	e, ok := m.Arg.(Event)
	if !ok || int(e.Kind()) != m.Act {
		logger.Warn("malformed event", "act", EventKind(m.Act))
		return
	}
	h, err := d.profiles.Get(m.PID)
	if err != nil || h == nil {
		logger.Warn("event dropped", "event", e.Kind(), "pid", m.PID, "err", err)
		return
	}
	h.Handle(e)
}

func (d *Dispatcher) deliver(e Event) {
	m := Msg{Sig: SigAPICallback, PID: PIDGapBLE, Act: int(e.Kind()), Arg: e}
	if err := d.tx.Transfer(m); err != nil {
		logger.Error("event lost", "event", e.Kind(), "err", err)
	}
}

func (d *Dispatcher) invalid(a Action, err error) error {
	logger.Error("request dropped", "action", a, "err", err)
	return &ValidationError{Action: a, Err: err}
}

// ConfigureAdvertisingData rebuilds the advertising data record, or the
// scan response record if scanRsp is set, and sends it to the controller.
func (d *Dispatcher) ConfigureAdvertisingData(c adv.Content, scanRsp bool) error {
	c.ScanResponse = scanRsp
	if scanRsp {
		m := d.builder.Build(&c, &d.scanRsp)
		d.ctrl.SetScanResponse(m, d.scanRsp.Copy(), func(s Status) {
			d.deliver(ScanRspSetComplete{Status: s})
		})
		return nil
	}
	m := d.builder.Build(&c, &d.advData)
	d.ctrl.SetAdvertisingConfig(m, d.advData.Copy(), func(s Status) {
		d.deliver(AdvDataSetComplete{Status: s})
	})
	return nil
}

// SetScanParameters ...
func (d *Dispatcher) SetScanParameters(p ScanParams) error {
	if err := p.Validate(); err != nil {
		return d.invalid(ActSetScanParams, err)
	}
	d.ctrl.SetScanParameters(p, func(s Status) {
		d.deliver(ScanParamSetComplete{Status: s})
	})
	return nil
}

// StartScanning scans for the given number of seconds. Each device seen,
// and the end of the scan, is delivered as a ScanResult.
func (d *Dispatcher) StartScanning(seconds uint32) error {
	if seconds == 0 {
		return d.invalid(ActStartScan, errors.Wrap(ErrScanDuration, "zero"))
	}
	d.ctrl.Observe(true, time.Duration(seconds)*time.Second, func(r Result) {
		d.deliver(ScanResult{Result: r})
	})
	return nil
}

// StopScanning ...
func (d *Dispatcher) StopScanning() error {
	d.ctrl.Observe(false, 0, nil)
	return nil
}

// StartAdvertising sets the advertising parameters and enables advertising.
func (d *Dispatcher) StartAdvertising(p AdvParams) error {
	if err := p.Validate(); err != nil {
		return d.invalid(ActStartAdv, err)
	}
	d.ctrl.SetAdvertisingParameters(p)
	d.ctrl.Broadcast(true)
	return nil
}

// StopAdvertising ...
func (d *Dispatcher) StopAdvertising() error {
	d.ctrl.Broadcast(false)
	return nil
}

// UpdateConnectionParameters requests new connection parameters for p.Addr.
// An IntervalMin above IntervalMax is lowered to IntervalMax.
func (d *Dispatcher) UpdateConnectionParameters(p ConnParams) error {
	if err := p.Normalize(); err != nil {
		return d.invalid(ActUpdateConnParams, err)
	}
	d.ctrl.UpdateConnectionParameters(p.Addr, p.IntervalMin, p.IntervalMax, p.Latency, p.Timeout)
	return nil
}

// SetPacketDataLength sets the transmit payload length for a peer, clamped
// to what controllers accept.
func (d *Dispatcher) SetPacketDataLength(a ble.Addr, n uint16) error {
	if c := ClampDataLength(n); c != n {
		logger.Debug("data length clamped", "req", n, "len", c)
		n = c
	}
	d.ctrl.SetDataLength(a, n)
	return nil
}

// SetRandomAddress ...
func (d *Dispatcher) SetRandomAddress(a ble.Addr) error {
	if a.IsZero() {
		return d.invalid(ActSetRandAddr, errors.Wrap(ErrRandAddr, "zero"))
	}
	d.ctrl.SetRandomAddress(a)
	return nil
}

// ConfigureLocalPrivacy ...
func (d *Dispatcher) ConfigureLocalPrivacy(enable bool) error {
	d.ctrl.ConfigureLocalPrivacy(enable)
	return nil
}

// SetDeviceName sets the name used when advertising data includes it.
func (d *Dispatcher) SetDeviceName(name string) error {
	d.ctrl.SetDeviceName(name)
	return nil
}

// Close releases both advertising records.
func (d *Dispatcher) Close() error {
	d.builder.Release(&d.advData)
	d.builder.Release(&d.scanRsp)
	return nil
}
