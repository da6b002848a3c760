package adv

import ble "github.com/currantlabs/blegap"

// A Builder turns Content into a Record and its Mask.
// It owns every buffer it puts into a Record and takes them back on the
// next Build of the same Record.
type Builder struct {
	pool *Pool
}

// NewBuilder returns a Builder allocating from p.
// A nil p means an unbounded pool.
func NewBuilder(p *Pool) *Builder {
	if p == nil {
		p = NewPool(0)
	}
	return &Builder{pool: p}
}

// Pool returns the pool backing the records built by b.
func (b *Builder) Pool() *Pool { return b.pool }

// Release returns the buffers of r to the pool.
func (b *Builder) Release(r *Record) { r.Release(b.pool) }

// Build releases whatever r held, fills it from c and returns the mask of
// populated fields. A field whose buffer can't be allocated is left out,
// along with its bit; the rest of the record is still built.
func (b *Builder) Build(c *Content, r *Record) Mask {
	r.Release(b.pool)

	var m Mask
	if c.Flags != 0 {
		m |= BitFlags
		r.Flags = c.Flags
	}
	if c.IncludeName {
		m |= BitDevName
	}
	if c.IncludeTxPower {
		// The level is only known to the transmitter, which fills it in
		// when the record is serialized.
		m |= BitTxPower
	}
	if c.MinInterval > 0 && c.MaxInterval > 0 && c.MinInterval <= c.MaxInterval {
		m |= BitIntRange
		r.IntRange = IntRange{Low: c.MinInterval, High: c.MaxInterval}
	}
	if c.Appearance != 0 {
		m |= BitAppearance
		r.Appearance = c.Appearance
	}

	if len(c.ManufacturerData) > 0 {
		if d := b.pool.Get(len(c.ManufacturerData)); d != nil {
			copy(d, c.ManufacturerData)
			r.Manufacturer = &Manufacturer{Data: d}
			m |= BitManu
		} else {
			logger.Debug("no buffer for manufacturer data", "len", len(c.ManufacturerData))
		}
	}

	if len(c.ServiceData) > 0 {
		if d := b.pool.Get(len(c.ServiceData)); d != nil {
			copy(d, c.ServiceData)
			r.ServiceData = &ServiceData{Type: ServiceData16, Data: d}
			m |= BitProprietary
		} else {
			logger.Debug("no buffer for service data", "len", len(c.ServiceData))
		}
	}

	return m | b.buildServices(c.ServiceUUIDs, r)
}

// buildServices sorts the UUID slots into the 16, 32 and 128-bit lists.
// The 16 and 32-bit lists are sized for the worst case of every slot
// having that width. Only the first 128-bit UUID is kept.
func (b *Builder) buildServices(slots []byte, r *Record) Mask {
	var m Mask
	n := len(slots) / UUIDSlotLen
	var tried16, tried32, tried128 bool
	for i := 0; i < n; i++ {
		u := ble.Reduce(ble.UUID(slots[i*UUIDSlotLen : (i+1)*UUIDSlotLen]))
		switch u.Len() {
		case 2:
			if !tried16 {
				tried16 = true
				if buf := b.pool.Get(2 * n); buf != nil {
					r.Service16 = &Service16{b: buf}
				}
			}
			if r.Service16 != nil && r.Service16.add(u) {
				m |= BitService
			}
		case 4:
			if !tried32 {
				tried32 = true
				if buf := b.pool.Get(4 * n); buf != nil {
					r.Service32 = &Service32{b: buf}
				}
			}
			if r.Service32 != nil && r.Service32.add(u) {
				m |= BitService32
			}
		case 16:
			if tried128 {
				logger.Debug("dropping extra 128-bit service UUID", "uuid", u)
				continue
			}
			tried128 = true
			if buf := b.pool.Get(16); buf != nil {
				copy(buf, u)
				r.Service128 = &Service128{Complete: true, UUID: buf}
				m |= BitService128
			}
		}
	}
	return m
}
