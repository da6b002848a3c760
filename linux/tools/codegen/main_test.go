package main

import (
	"strings"
	"testing"
)

const testTable = `{"Commands": [
  {"Name": "LE Set Data Length", "Spec": "Vol 2, Part E, 7.8.33", "OGF": "0x08", "OCF": "0x0022",
   "Param": [{"Name": "ConnectionHandle", "Type": "uint16"}, {"Name": "TxOctets", "Type": "uint16"}, {"Name": "TxTime", "Type": "uint16"}],
   "Return": [{"Name": "Status", "Type": "uint8"}, {"Name": "ConnectionHandle", "Type": "uint16"}]},
  {"Name": "Read BD_ADDR", "Spec": "Vol 2, Part E, 7.4.6", "OGF": "0x04", "OCF": "0x0009", "Param": [],
   "Return": [{"Name": "Status", "Type": "uint8"}, {"Name": "BDADDR", "Type": "[6]byte"}]},
  {"Name": "LE Connection Update", "Spec": "Vol 2, Part E, 7.8.18", "OGF": "0x08", "OCF": "0x0013",
   "Param": [{"Name": "ConnectionHandle", "Type": "uint16"}]}
]}`

func TestGenerate(t *testing.T) {
	src, err := generate([]byte(testTable), "cmd")
	if err != nil {
		t.Fatalf("generate: %s", err)
	}
	s := string(src)
	for _, want := range []string{
		"package cmd\n",
		"// LESetDataLength implements LE Set Data Length (0x08|0x0022) [Vol 2, Part E, 7.8.33]",
		"func (c *LESetDataLength) OpCode() int { return 0x08<<10 | 0x0022 }",
		"func (c *LESetDataLength) Len() int { return 6 }",
		"type LESetDataLengthRP struct {",
		"type ReadBDADDR struct{}",
		"func (c *ReadBDADDR) Len() int { return 0 }",
		"\tBDADDR [6]byte\n",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %q", want)
		}
	}
	if strings.Contains(s, "LEConnectionUpdateRP") {
		t.Errorf("unexpected return parameters for LE Connection Update")
	}
}

func TestSize(t *testing.T) {
	n, err := size([]field{{"A", "uint8"}, {"B", "[31]byte"}, {"C", "uint64"}})
	if err != nil || n != 40 {
		t.Errorf("size = %d, %v, want 40", n, err)
	}
	if _, err := size([]field{{"A", "int32"}}); err == nil {
		t.Errorf("size accepted an unsupported type")
	}
}

func TestGenerateBadTable(t *testing.T) {
	if _, err := generate([]byte("{"), "cmd"); err == nil {
		t.Errorf("generate accepted a malformed table")
	}
	bad := `{"Commands": [{"Name": "X", "OGF": "0x08", "OCF": "0x0001", "Param": [{"Name": "A", "Type": "bool"}]}]}`
	if _, err := generate([]byte(bad), "cmd"); err == nil {
		t.Errorf("generate accepted an unsupported field type")
	}
}
