package adv

import "encoding/binary"

// Manufacturer holds manufacturer specific data.
type Manufacturer struct {
	Data []byte
}

// ServiceData holds the single service data element of a Record.
type ServiceData struct {
	Type byte // AD type, ServiceData16
	Data []byte
}

// Service16 is a list of 16-bit service UUIDs.
type Service16 struct {
	Complete bool

	n int
	b []byte
}

// Len returns the number of UUIDs in the list.
func (s *Service16) Len() int { return s.n }

// UUIDs returns the list.
func (s *Service16) UUIDs() []uint16 {
	u := make([]uint16, s.n)
	for i := range u {
		u[i] = binary.LittleEndian.Uint16(s.b[2*i:])
	}
	return u
}

// Bytes returns the list in over-the-air layout.
func (s *Service16) Bytes() []byte { return s.b[:2*s.n] }

func (s *Service16) add(u []byte) bool {
	if 2*s.n+2 > len(s.b) {
		return false
	}
	copy(s.b[2*s.n:], u)
	s.n++
	return true
}

// Service32 is a list of 32-bit service UUIDs.
type Service32 struct {
	Complete bool

	n int
	b []byte
}

// Len returns the number of UUIDs in the list.
func (s *Service32) Len() int { return s.n }

// UUIDs returns the list.
func (s *Service32) UUIDs() []uint32 {
	u := make([]uint32, s.n)
	for i := range u {
		u[i] = binary.LittleEndian.Uint32(s.b[4*i:])
	}
	return u
}

// Bytes returns the list in over-the-air layout.
func (s *Service32) Bytes() []byte { return s.b[:4*s.n] }

func (s *Service32) add(u []byte) bool {
	if 4*s.n+4 > len(s.b) {
		return false
	}
	copy(s.b[4*s.n:], u)
	s.n++
	return true
}

// Service128 holds one 128-bit service UUID.
// Only one 128-bit UUID fits a Record.
type Service128 struct {
	Complete bool
	UUID     []byte
}

// IntRange is the preferred slave connection interval range, in 1.25 msec units.
type IntRange struct {
	Low  uint16
	High uint16
}

// A Record is the structured, pre-serialization form of an advertising or
// scan response payload. Each sub-record is nil when absent; the Mask
// returned alongside it by Builder.Build tells which fields are in use.
type Record struct {
	Flags      byte
	IntRange   IntRange
	Appearance uint16

	Manufacturer *Manufacturer
	ServiceData  *ServiceData
	Service16    *Service16
	Service32    *Service32
	Service128   *Service128
}

// Release returns every pooled buffer of r to p and zeroes r.
// Releasing an empty record is a no-op.
func (r *Record) Release(p *Pool) {
	if r == nil {
		return
	}
	if r.Manufacturer != nil {
		p.Put(r.Manufacturer.Data)
	}
	if r.ServiceData != nil {
		p.Put(r.ServiceData.Data)
	}
	if r.Service16 != nil {
		p.Put(r.Service16.b)
	}
	if r.Service32 != nil {
		p.Put(r.Service32.b)
	}
	if r.Service128 != nil {
		p.Put(r.Service128.UUID)
	}
	*r = Record{}
}

// Copy returns a deep copy of r whose buffers are not pooled.
// Transmitters receive copies; the slot keeps its own buffers.
func (r Record) Copy() Record {
	c := r
	if r.Manufacturer != nil {
		c.Manufacturer = &Manufacturer{Data: clone(r.Manufacturer.Data)}
	}
	if r.ServiceData != nil {
		c.ServiceData = &ServiceData{Type: r.ServiceData.Type, Data: clone(r.ServiceData.Data)}
	}
	if r.Service16 != nil {
		c.Service16 = &Service16{Complete: r.Service16.Complete, n: r.Service16.n, b: clone(r.Service16.b)}
	}
	if r.Service32 != nil {
		c.Service32 = &Service32{Complete: r.Service32.Complete, n: r.Service32.n, b: clone(r.Service32.b)}
	}
	if r.Service128 != nil {
		c.Service128 = &Service128{Complete: r.Service128.Complete, UUID: clone(r.Service128.UUID)}
	}
	return c
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
