package gap

import (
	"sync"

	"github.com/pkg/errors"
)

// Sig tells a consumer whether a Msg carries a request or a completion.
type Sig int

// Signals
const (
	SigAPICall Sig = iota
	SigAPICallback
)

// PID identifies the profile a Msg belongs to.
type PID int

// Profile IDs
const (
	PIDGapBLE PID = iota
	PIDNum
)

// Msg is the unit handed across contexts.
type Msg struct {
	Sig Sig
	PID PID
	Act int
	Arg interface{}
}

// A Transferer hands a Msg to the consumer context. It must not block.
type Transferer interface {
	Transfer(m Msg) error
}

// A MsgHandler consumes the Msgs of one profile.
type MsgHandler interface {
	HandleCall(m Msg)
	HandleCallback(m Msg)
}

// Task is a single-consumer FIFO. Producers call Transfer from any
// goroutine; Loop runs the registered handlers one Msg at a time.
type Task struct {
	sync.RWMutex

	q        chan Msg
	handlers [PIDNum]MsgHandler
	closed   bool
	done     chan struct{}
}

// NewTask returns a Task holding up to size pending Msgs.
func NewTask(size int) *Task {
	return &Task{
		q:    make(chan Msg, size),
		done: make(chan struct{}),
	}
}

// Register sets the handler of profile pid.
func (t *Task) Register(pid PID, h MsgHandler) error {
	if pid < 0 || pid >= PIDNum {
		return errors.Wrapf(ErrInvalidProfile, "%d", pid)
	}
	t.Lock()
	t.handlers[pid] = h
	t.Unlock()
	return nil
}

// Transfer enqueues m without blocking.
func (t *Task) Transfer(m Msg) error {
	t.RLock()
	defer t.RUnlock()
	if t.closed {
		return ErrTaskClosed
	}
	select {
	case t.q <- m:
		return nil
	default:
		return errors.Wrapf(ErrQueueFull, "%d pending", len(t.q))
	}
}

// Loop handles Msgs in arrival order until the Task is closed and drained.
func (t *Task) Loop() {
	defer close(t.done)
	for m := range t.q {
		t.handle(m)
	}
}

func (t *Task) handle(m Msg) {
	if m.PID < 0 || m.PID >= PIDNum {
		logger.Warn("task: invalid profile", "pid", m.PID, "act", m.Act)
		return
	}
	t.RLock()
	h := t.handlers[m.PID]
	t.RUnlock()
	if h == nil {
		logger.Warn("task: no handler", "pid", m.PID, "act", m.Act)
		return
	}
	switch m.Sig {
	case SigAPICall:
		h.HandleCall(m)
	case SigAPICallback:
		h.HandleCallback(m)
	default:
		logger.Warn("task: unhandled signal", "sig", m.Sig)
	}
}

// Close stops accepting Msgs. Pending Msgs are still handled by Loop.
func (t *Task) Close() error {
	t.Lock()
	defer t.Unlock()
	if t.closed {
		return ErrTaskClosed
	}
	t.closed = true
	close(t.q)
	return nil
}

// Done is closed when Loop returns.
func (t *Task) Done() <-chan struct{} { return t.done }
