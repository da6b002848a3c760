package gap

import (
	"sync"

	"github.com/pkg/errors"
)

// Profiles is the application callback table, one Handler per profile.
type Profiles struct {
	mu sync.RWMutex
	h  [PIDNum]Handler
}

// NewProfiles returns an empty table.
func NewProfiles() *Profiles { return &Profiles{} }

// Set installs h for pid. A nil h clears the entry.
func (p *Profiles) Set(pid PID, h Handler) error {
	if pid < 0 || pid >= PIDNum {
		return errors.Wrapf(ErrInvalidProfile, "%d", pid)
	}
	p.mu.Lock()
	p.h[pid] = h
	p.mu.Unlock()
	return nil
}

// Get returns the Handler of pid, which may be nil.
func (p *Profiles) Get(pid PID) (Handler, error) {
	if pid < 0 || pid >= PIDNum {
		return nil, errors.Wrapf(ErrInvalidProfile, "%d", pid)
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.h[pid], nil
}
