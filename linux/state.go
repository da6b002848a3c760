package linux

import "sync"

type op struct {
	name string
	fn   func() error
}

// states runs controller operations one at a time, in the order they were
// posted, on its own goroutine. Posting never blocks, so an operation, or a
// callback it runs, may post more.
type states struct {
	mu   sync.Mutex
	q    []op
	size int // backlog beyond this is logged
	wake chan struct{}

	done chan struct{}
	once sync.Once
}

func newStates(size int) *states {
	return &states{
		q:    make([]op, 0, size),
		size: size,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

func (s *states) loop() {
	for {
		o, ok := s.next()
		if !ok {
			select {
			case <-s.done:
				return
			case <-s.wake:
			}
			continue
		}
		select {
		case <-s.done:
			return
		default:
		}
		s.handle(o)
	}
}

func (s *states) next() (op, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.q) == 0 {
		return op{}, false
	}
	o := s.q[0]
	s.q[0] = op{}
	s.q = s.q[1:]
	return o, true
}

func (s *states) handle(o op) {
	logger.Debug(o.name + " +")
	defer logger.Debug(o.name + " -")
	if err := o.fn(); err != nil {
		logger.Error(o.name, "err", err)
	}
}

// post queues fn.
func (s *states) post(name string, fn func() error) {
	select {
	case <-s.done:
		logger.Warn("closed, dropped", "op", name)
		return
	default:
	}
	s.mu.Lock()
	s.q = append(s.q, op{name: name, fn: fn})
	if n := len(s.q); n > s.size {
		logger.Warn("backlog", "op", name, "queued", n)
	}
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// flush waits until everything posted so far has run.
func (s *states) flush() {
	done := make(chan struct{})
	s.post("flush", func() error {
		close(done)
		return nil
	})
	select {
	case <-done:
	case <-s.done:
	}
}

func (s *states) close() {
	s.once.Do(func() { close(s.done) })
}
