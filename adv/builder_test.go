package adv

import (
	"bytes"
	"reflect"
	"testing"

	ble "github.com/currantlabs/blegap"
)

func TestBuildEndToEnd(t *testing.T) {
	c := &Content{
		ManufacturerData: []byte{0xAA, 0xBB},
		ServiceUUIDs:     PackUUIDs(ble.UUID16(0x1234), ble.UUID32(0xDEADBEEF)),
	}
	var r Record
	m := NewBuilder(nil).Build(c, &r)

	if want := BitManu | BitService | BitService32; m != want {
		t.Fatalf("mask = %s, want %s", m, want)
	}
	if got := r.Service16.UUIDs(); !reflect.DeepEqual(got, []uint16{0x1234}) {
		t.Errorf("16-bit list = %X, want [1234]", got)
	}
	if got := r.Service32.UUIDs(); !reflect.DeepEqual(got, []uint32{0xDEADBEEF}) {
		t.Errorf("32-bit list = %X, want [DEADBEEF]", got)
	}
	if !bytes.Equal(r.Manufacturer.Data, []byte{0xAA, 0xBB}) {
		t.Errorf("manufacturer data = % X, want AA BB", r.Manufacturer.Data)
	}
	if r.Service128 != nil || r.ServiceData != nil {
		t.Errorf("unexpected sub-records: %+v", r)
	}
}

func TestBuildMaskMatchesFields(t *testing.T) {
	u128 := ble.MustParse("34DA3AD1-7110-41A1-B1EF-4430F509CDE7")
	tests := []struct {
		name string
		c    Content
		want Mask
	}{
		{"empty", Content{}, 0},
		{"flags", Content{Flags: FlagGeneralDiscoverable}, BitFlags},
		{"name and tx power", Content{IncludeName: true, IncludeTxPower: true}, BitDevName | BitTxPower},
		{"interval", Content{MinInterval: 0x20, MaxInterval: 0x40}, BitIntRange},
		{"interval equal bounds", Content{MinInterval: 0x20, MaxInterval: 0x20}, BitIntRange},
		{"interval inverted", Content{MinInterval: 100, MaxInterval: 50}, 0},
		{"interval missing max", Content{MinInterval: 100}, 0},
		{"appearance", Content{Appearance: 0x0340}, BitAppearance},
		{"service data", Content{ServiceData: []byte{0x0D, 0x18, 0x01}}, BitProprietary},
		{"128-bit", Content{ServiceUUIDs: PackUUIDs(u128)}, BitService128},
		{"everything", Content{
			Flags:            0x06,
			IncludeName:      true,
			IncludeTxPower:   true,
			MinInterval:      6,
			MaxInterval:      12,
			Appearance:       1,
			ManufacturerData: []byte{1},
			ServiceData:      []byte{2},
			ServiceUUIDs:     PackUUIDs(ble.UUID16(0x180F), ble.UUID32(0x12345678), u128),
		}, BitFlags | BitDevName | BitTxPower | BitIntRange | BitAppearance | BitManu |
			BitProprietary | BitService | BitService32 | BitService128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Record
			m := NewBuilder(nil).Build(&tt.c, &r)
			if m != tt.want {
				t.Fatalf("mask = %s, want %s", m, tt.want)
			}
			present := map[Mask]bool{
				BitFlags:       r.Flags != 0,
				BitIntRange:    r.IntRange != IntRange{},
				BitAppearance:  r.Appearance != 0,
				BitManu:        r.Manufacturer != nil,
				BitProprietary: r.ServiceData != nil,
				BitService:     r.Service16 != nil,
				BitService32:   r.Service32 != nil,
				BitService128:  r.Service128 != nil,
			}
			for bit, ok := range present {
				if m.Has(bit) != ok {
					t.Errorf("%s: bit set = %v, field present = %v", bit, m.Has(bit), ok)
				}
			}
		})
	}
}

func TestBuildManufacturerEmpty(t *testing.T) {
	p := NewPool(0)
	var r Record
	m := NewBuilder(p).Build(&Content{ManufacturerData: []byte{}}, &r)
	if m.Has(BitManu) || r.Manufacturer != nil {
		t.Errorf("mask = %s, manufacturer = %v", m, r.Manufacturer)
	}
	if p.Buffers() != 0 {
		t.Errorf("buffers outstanding = %d, want 0", p.Buffers())
	}
}

func TestBuildService128SingleSlot(t *testing.T) {
	first := ble.MustParse("34DA3AD1-7110-41A1-B1EF-4430F509CDE7")
	second := ble.MustParse("0000FE59-0000-1000-8000-00805F9B34FC")
	c := &Content{ServiceUUIDs: PackUUIDs(
		ble.UUID16(0x1800), first, ble.UUID16(0x1801), ble.UUID32(0xCAFEF00D), second,
	)}
	var r Record
	m := NewBuilder(nil).Build(c, &r)
	if !m.Has(BitService | BitService32 | BitService128) {
		t.Fatalf("mask = %s", m)
	}
	if got := r.Service16.UUIDs(); !reflect.DeepEqual(got, []uint16{0x1800, 0x1801}) {
		t.Errorf("16-bit list = %X", got)
	}
	if got := r.Service32.UUIDs(); !reflect.DeepEqual(got, []uint32{0xCAFEF00D}) {
		t.Errorf("32-bit list = %X", got)
	}
	if !bytes.Equal(r.Service128.UUID, first) || !r.Service128.Complete {
		t.Errorf("128-bit = %+v, want %s complete", r.Service128, first)
	}
	if r.Service16.Complete || r.Service32.Complete {
		t.Errorf("16/32-bit lists should be incomplete")
	}
}

func TestBuildIgnoresPartialSlot(t *testing.T) {
	slots := append(PackUUIDs(ble.UUID16(0x1800)), 0x01, 0x02, 0x03)
	var r Record
	m := NewBuilder(nil).Build(&Content{ServiceUUIDs: slots}, &r)
	if m != BitService || r.Service16.Len() != 1 {
		t.Errorf("mask = %s, len = %d", m, r.Service16.Len())
	}
}

func TestBuildReleasesPrevious(t *testing.T) {
	p := NewPool(0)
	b := NewBuilder(p)
	var r Record
	b.Build(&Content{
		ManufacturerData: []byte{1, 2, 3},
		ServiceData:      []byte{4, 5},
		ServiceUUIDs:     PackUUIDs(ble.UUID16(1), ble.UUID32(0x10000), ble.MustParse("34DA3AD1-7110-41A1-B1EF-4430F509CDE7")),
	}, &r)
	if p.Buffers() != 5 {
		t.Fatalf("buffers after first build = %d, want 5", p.Buffers())
	}

	b.Build(&Content{ManufacturerData: []byte{9}}, &r)
	if p.Buffers() != 1 || p.Outstanding() != 1 {
		t.Errorf("after second build: %d buffers, %d bytes; want 1, 1", p.Buffers(), p.Outstanding())
	}
	if r.ServiceData != nil || r.Service16 != nil || r.Service32 != nil || r.Service128 != nil {
		t.Errorf("stale sub-records survived rebuild: %+v", r)
	}

	b.Release(&r)
	b.Release(&r)
	if p.Buffers() != 0 || p.Outstanding() != 0 {
		t.Errorf("after release: %d buffers, %d bytes", p.Buffers(), p.Outstanding())
	}
}

func TestBuildDegradesOnExhaustion(t *testing.T) {
	// Room for the manufacturer data only.
	p := NewPool(2)
	var r Record
	m := NewBuilder(p).Build(&Content{
		Flags:            FlagLEOnly,
		ManufacturerData: []byte{0xAA, 0xBB},
		ServiceData:      []byte{0x01},
		ServiceUUIDs:     PackUUIDs(ble.UUID16(0x1234)),
	}, &r)
	if want := BitFlags | BitManu; m != want {
		t.Errorf("mask = %s, want %s", m, want)
	}
	if r.ServiceData != nil || r.Service16 != nil {
		t.Errorf("half-built sub-records attached: %+v", r)
	}
}

func TestBuildSlotsIndependent(t *testing.T) {
	p := NewPool(0)
	b := NewBuilder(p)
	var ad, sr Record
	b.Build(&Content{ManufacturerData: []byte{1, 2}}, &ad)
	b.Build(&Content{ManufacturerData: []byte{3}, ScanResponse: true}, &sr)
	b.Build(&Content{}, &sr)
	if ad.Manufacturer == nil || !bytes.Equal(ad.Manufacturer.Data, []byte{1, 2}) {
		t.Errorf("advertising record disturbed: %+v", ad.Manufacturer)
	}
	if p.Outstanding() != 2 {
		t.Errorf("outstanding = %d, want 2", p.Outstanding())
	}
}

func TestRecordCopyIsDeep(t *testing.T) {
	var r Record
	NewBuilder(nil).Build(&Content{
		ManufacturerData: []byte{1},
		ServiceUUIDs:     PackUUIDs(ble.UUID16(0x1800)),
	}, &r)
	c := r.Copy()
	c.Manufacturer.Data[0] = 0xFF
	c.Service16.b[0] = 0xFF
	if r.Manufacturer.Data[0] != 1 || r.Service16.UUIDs()[0] != 0x1800 {
		t.Errorf("copy shares buffers with the original")
	}
}
