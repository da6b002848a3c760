package adv

// MaxEIRPacketLength is the maximum allowed AdvertisingPacket
// and ScanResponsePacket length.
const MaxEIRPacketLength = 31

// Advertising data field types [CSSv6, Part A, 1].
const (
	Flags             = 0x01 // Flags
	SomeUUID16        = 0x02 // Incomplete List of 16-bit Service Class UUIDs
	AllUUID16         = 0x03 // Complete List of 16-bit Service Class UUIDs
	SomeUUID32        = 0x04 // Incomplete List of 32-bit Service Class UUIDs
	AllUUID32         = 0x05 // Complete List of 32-bit Service Class UUIDs
	SomeUUID128       = 0x06 // Incomplete List of 128-bit Service Class UUIDs
	AllUUID128        = 0x07 // Complete List of 128-bit Service Class UUIDs
	ShortName         = 0x08 // Shortened Local Name
	CompleteName      = 0x09 // Complete Local Name
	TxPower           = 0x0A // Tx Power Level
	ClassOfDevice     = 0x0D // Class of Device
	SimplePairingC192 = 0x0E // Simple Pairing Hash C-192
	SimplePairingR192 = 0x0F // Simple Pairing Randomizer R-192
	SecManagerTK      = 0x10 // Security Manager TK Value
	SecManagerOOB     = 0x11 // Security Manager Out of Band Flags
	SlaveConnInt      = 0x12 // Slave Connection Interval Range
	ServiceSol16      = 0x14 // List of 16-bit Service Solicitation UUIDs
	ServiceSol128     = 0x15 // List of 128-bit Service Solicitation UUIDs
	ServiceData16     = 0x16 // Service Data - 16-bit UUID
	PubTargetAddr     = 0x17 // Public Target Address
	RandTargetAddr    = 0x18 // Random Target Address
	Appearance        = 0x19 // Appearance
	AdvInterval       = 0x1A // Advertising Interval
	LEDeviceAddr      = 0x1B // LE Bluetooth Device Address
	LERole            = 0x1C // LE Role
	ServiceSol32      = 0x1F // List of 32-bit Service Solicitation UUIDs
	ServiceData32     = 0x20 // Service Data - 32-bit UUID
	ServiceData128    = 0x21 // Service Data - 128-bit UUID
	ManufacturerData  = 0xFF // Manufacturer Specific Data
)

// Advertising flags
const (
	FlagLimitedDiscoverable = 0x01 // LE Limited Discoverable Mode
	FlagGeneralDiscoverable = 0x02 // LE General Discoverable Mode
	FlagLEOnly              = 0x04 // BR/EDR Not Supported. Bit 37 of LMP Feature Mask Definitions (Page 0)
	FlagBothController      = 0x08 // Simultaneous LE and BR/EDR to Same Device Capable (Controller).
	FlagBothHost            = 0x10 // Simultaneous LE and BR/EDR to Same Device Capable (Host).
)

// A Mask records which AD structures of a Record are populated.
type Mask uint32

// Mask bits. The layout follows the classic host stack AD bit assignment,
// so masks can be handed to controllers that expect it.
const (
	BitDevName       Mask = 1 << 0
	BitFlags         Mask = 1 << 1
	BitManu          Mask = 1 << 2
	BitTxPower       Mask = 1 << 3
	BitService32     Mask = 1 << 4
	BitIntRange      Mask = 1 << 5
	BitService       Mask = 1 << 6
	BitServiceSol    Mask = 1 << 7
	BitServiceData   Mask = 1 << 8
	BitSignData      Mask = 1 << 9
	BitService128Sol Mask = 1 << 10
	BitAppearance    Mask = 1 << 11
	BitPublicAddr    Mask = 1 << 12
	BitRandomAddr    Mask = 1 << 13
	BitService32Sol  Mask = 1 << 14
	BitProprietary   Mask = 1 << 15
	BitService128    Mask = 1 << 16
)

var maskNames = []struct {
	bit  Mask
	name string
}{
	{BitDevName, "DEV_NAME"},
	{BitFlags, "FLAGS"},
	{BitManu, "MANU"},
	{BitTxPower, "TX_PWR"},
	{BitService32, "SERVICE_32"},
	{BitIntRange, "INT_RANGE"},
	{BitService, "SERVICE"},
	{BitServiceSol, "SERVICE_SOL"},
	{BitServiceData, "SERVICE_DATA"},
	{BitSignData, "SIGN_DATA"},
	{BitService128Sol, "SERVICE_128SOL"},
	{BitAppearance, "APPEARANCE"},
	{BitPublicAddr, "PUBLIC_ADDR"},
	{BitRandomAddr, "RANDOM_ADDR"},
	{BitService32Sol, "SERVICE_32SOL"},
	{BitProprietary, "PROPRIETARY"},
	{BitService128, "SERVICE_128"},
}

// Has reports whether all bits of b are set in m.
func (m Mask) Has(b Mask) bool { return m&b == b }

func (m Mask) String() string {
	s := ""
	for _, n := range maskNames {
		if m&n.bit == 0 {
			continue
		}
		if s != "" {
			s += "|"
		}
		s += n.name
	}
	if s == "" {
		return "0"
	}
	return s
}
