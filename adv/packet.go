package adv

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/pkg/errors"

	ble "github.com/currantlabs/blegap"
)

// Packet is an utility to craft or inspect advertising packets.
// Refer to Supplement to Bluetooth Core Specification | CSSv6, Part A
type Packet []byte

// Field returns the field data (excluding the initial length and typ byte).
// It returns nil, if the specified field is not found.
func (p Packet) Field(typ byte) []byte {
	b := p
	for len(b) > 0 {
		if len(b) < 2 {
			return nil
		}
		l, t := b[0], b[1]
		if l == 0 || len(b) < int(1+l) {
			return nil
		}
		if t == typ {
			return b[2 : 1+l]
		}
		b = b[1+l:]
	}
	return nil
}

// Flags returns the value of the flags field.
func (p Packet) Flags() (byte, bool) {
	b := p.Field(Flags)
	if len(b) < 1 {
		return 0, false
	}
	return b[0], true
}

// Len ...
func (p Packet) Len() int {
	return len(p)
}

// AppendField appends a BLE advertising packet field.
// It refuses to grow the packet beyond MaxEIRPacketLength.
func (p Packet) AppendField(typ byte, b []byte) (Packet, error) {
	// A field consists of len, typ, b.
	// Len is 1 byte for typ plus len(b).
	if p.Len()+2+len(b) > MaxEIRPacketLength {
		return p, errors.Wrapf(ble.ErrEIRPacketTooLong, "field 0x%02X", typ)
	}
	p = append(p, byte(len(b)+1), typ)
	return append(p, b...), nil
}

// EncodeOptions carries what a Record leaves to the transmitter.
type EncodeOptions struct {
	Name    string // used when BitDevName is set
	TxPower int8   // used when BitTxPower is set
}

// Encode serializes the fields of r selected by m. The name goes last so
// that it can be shortened to whatever room is left.
func Encode(m Mask, r *Record, o EncodeOptions) (Packet, error) {
	p := Packet(make([]byte, 0, MaxEIRPacketLength))
	var err error
	add := func(typ byte, b []byte) {
		if err == nil {
			p, err = p.AppendField(typ, b)
		}
	}
	if m.Has(BitFlags) {
		add(Flags, []byte{r.Flags})
	}
	if m.Has(BitTxPower) {
		add(TxPower, []byte{byte(o.TxPower)})
	}
	if m.Has(BitService) && r.Service16 != nil {
		add(listType(r.Service16.Complete, AllUUID16, SomeUUID16), r.Service16.Bytes())
	}
	if m.Has(BitService32) && r.Service32 != nil {
		add(listType(r.Service32.Complete, AllUUID32, SomeUUID32), r.Service32.Bytes())
	}
	if m.Has(BitService128) && r.Service128 != nil {
		add(listType(r.Service128.Complete, AllUUID128, SomeUUID128), r.Service128.UUID)
	}
	if m.Has(BitAppearance) {
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, r.Appearance)
		add(Appearance, b)
	}
	if m.Has(BitIntRange) {
		b := make([]byte, 4)
		binary.LittleEndian.PutUint16(b, r.IntRange.Low)
		binary.LittleEndian.PutUint16(b[2:], r.IntRange.High)
		add(SlaveConnInt, b)
	}
	if m.Has(BitProprietary) && r.ServiceData != nil {
		add(r.ServiceData.Type, r.ServiceData.Data)
	}
	if m.Has(BitManu) && r.Manufacturer != nil {
		add(ManufacturerData, r.Manufacturer.Data)
	}
	if err != nil {
		return nil, err
	}
	if m.Has(BitDevName) && o.Name != "" {
		typ, n := byte(CompleteName), o.Name
		if room := MaxEIRPacketLength - p.Len() - 2; room < len(n) {
			// Cut on a rune boundary; the field is UTF-8.
			for room > 0 && !utf8.RuneStart(n[room]) {
				room--
			}
			if room < 1 {
				return nil, errors.Wrap(ble.ErrEIRPacketTooLong, "no room for name")
			}
			typ, n = ShortName, n[:room]
		}
		return p.AppendField(typ, []byte(n))
	}
	return p, nil
}

func listType(complete bool, all, some byte) byte {
	if complete {
		return all
	}
	return some
}
