package evt

import (
	"bytes"
	"testing"
)

func TestLEAdvertisingReport(t *testing.T) {
	e := LEAdvertisingReport{
		LEAdvertisingReportSubCode, 2,
		0x00, 0x04,          // event types
		0x00, 0x01,          // address types
		1, 2, 3, 4, 5, 6,    // address 0
		7, 8, 9, 10, 11, 12, // address 1
		3, 1,                // data lengths
		0x02, 0x01, 0x06,    // data 0
		0xAA,                // data 1
		0xC4, 0xB0,          // rssi
	}
	if !e.Valid() {
		t.Fatal("report not valid")
	}
	if e.NumReports() != 2 || e.EventType(1) != 0x04 || e.AddressType(1) != 0x01 {
		t.Errorf("header %v", e[:6])
	}
	if a := e.Address(1); a != [6]byte{7, 8, 9, 10, 11, 12} {
		t.Errorf("address = % X", a)
	}
	if !bytes.Equal(e.Data(0), []byte{0x02, 0x01, 0x06}) || !bytes.Equal(e.Data(1), []byte{0xAA}) {
		t.Errorf("data = [% X] [% X]", e.Data(0), e.Data(1))
	}
	if e.RSSI(0) != -60 || e.RSSI(1) != -80 {
		t.Errorf("rssi = %d, %d", e.RSSI(0), e.RSSI(1))
	}
	if e[:len(e)-1].Valid() {
		t.Error("truncated report valid")
	}
}

func TestCommandComplete(t *testing.T) {
	e := CommandComplete{0x01, 0x08, 0x20, 0x00}
	if e.NumHCICommandPackets() != 1 || e.CommandOpcode() != 0x2008 || !bytes.Equal(e.ReturnParameters(), []byte{0x00}) {
		t.Errorf("%v", e)
	}
	s := CommandStatus{0x0C, 0x01, 0x13, 0x20}
	if s.Status() != 0x0C || s.CommandOpcode() != 0x2013 {
		t.Errorf("%v", s)
	}
}
