package gap

import (
	"github.com/pkg/errors"

	"github.com/currantlabs/blegap/adv"
)

// An Option is a configuration function, which configures the dispatcher.
type Option func(*Dispatcher) error

// OptPool sets the pool advertising records are allocated from.
func OptPool(p *adv.Pool) Option {
	return func(d *Dispatcher) error {
		d.builder = adv.NewBuilder(p)
		return nil
	}
}

// OptTransferer sets where completion events are handed to. By default
// events are delivered synchronously on the controller's context.
func OptTransferer(t Transferer) Option {
	return func(d *Dispatcher) error {
		if t == nil {
			return errors.New("nil transferer")
		}
		d.tx = t
		return nil
	}
}

// OptTask delivers requests posted with Post and completion events through
// t, and registers the dispatcher as t's GAP profile handler.
func OptTask(t *Task) Option {
	return func(d *Dispatcher) error {
		if t == nil {
			return errors.New("nil task")
		}
		d.tx = t
		return t.Register(PIDGapBLE, d)
	}
}

// OptProfiles sets the application callback table.
func OptProfiles(p *Profiles) Option {
	return func(d *Dispatcher) error {
		d.profiles = p
		return nil
	}
}

// OptHandler registers h as the GAP event handler.
func OptHandler(h Handler) Option {
	return func(d *Dispatcher) error {
		return d.RegisterCallback(h)
	}
}
