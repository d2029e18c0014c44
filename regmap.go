package spinor

// Register map of the SPI engine controller (word-addressed, 32-bit
// registers; only the low bits are semantically significant for byte
// fields). Shared by the Driver and by package sem, which implements the
// controller side of this same map.
const (
	RegCMD    uint32 = 0x00
	RegADDR   uint32 = 0x04
	RegLEN    uint32 = 0x08
	RegDIN    uint32 = 0x0C
	RegDOUT   uint32 = 0x10
	RegCTRL   uint32 = 0x14
	RegSTATUS uint32 = 0x18
)

const (
	CtrlCSEn  uint32 = 1 << 0
	CtrlStart uint32 = 1 << 1
)

const (
	StatusBusy    uint32 = 1 << 0
	StatusRxAvail uint32 = 1 << 1
	StatusTxSpace uint32 = 1 << 2
)

// Command byte values, matching the engine's dispatch table.
const (
	CmdWREN byte = 0x06
	CmdRDSR byte = 0x05
	CmdRead byte = 0x03
	CmdPP   byte = 0x02
	CmdSE   byte = 0x20
)
