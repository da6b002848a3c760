package adv

import (
	"sync"

	"github.com/mgutz/logxi/v1"
)

var logger = log.New("adv")

// A Pool hands out the buffers that back the sub-records of a Record.
// A Pool created with a non-zero budget refuses requests that would exceed
// it, which is how a Builder observes allocation failure.
// A Pool is safe for concurrent use; the advertising and scan response
// slots may share one.
type Pool struct {
	mu     sync.Mutex
	budget int
	used   int
	out    map[*byte]int
}

// NewPool returns a pool limited to budget bytes. Zero means unbounded.
func NewPool(budget int) *Pool {
	return &Pool{
		budget: budget,
		out:    make(map[*byte]int),
	}
}

// Get returns a zeroed buffer of n bytes, or nil if the pool is exhausted.
func (p *Pool) Get(n int) []byte {
	if n <= 0 {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.budget != 0 && p.used+n > p.budget {
		return nil
	}
	b := make([]byte, n)
	p.out[&b[0]] = n
	p.used += n
	return b
}

// Put returns b to the pool. Putting a buffer that isn't outstanding is
// logged and otherwise ignored.
func (p *Pool) Put(b []byte) {
	if cap(b) == 0 {
		return
	}
	b = b[:1]
	p.mu.Lock()
	defer p.mu.Unlock()
	n, ok := p.out[&b[0]]
	if !ok {
		logger.Warn("put of a buffer not owned by the pool", "len", cap(b))
		return
	}
	delete(p.out, &b[0])
	p.used -= n
}

// Outstanding returns the number of bytes handed out and not yet returned.
func (p *Pool) Outstanding() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.used
}

// Buffers returns the number of buffers handed out and not yet returned.
func (p *Pool) Buffers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.out)
}
