package spinor

// IO is the register-level capability the Driver consumes. It abstracts
// over whatever sits between the driver and the SPI engine controller — in
// this module that is always an in-process sem.Engine, which implements it
// directly — but the interface itself says nothing about that; a real MMIO
// backend would satisfy it identically.
type IO interface {
	// Read returns the 32-bit register value at offset.
	Read(offset uint32) uint32
	// Write stores value at the register offset.
	Write(offset uint32, value uint32)
}

// Ticker advances simulated time by n ticks. It is optional: real hardware
// has no notion of a simulated tick, so an IO backend that does not
// implement Ticker is valid and the Driver must keep functioning, busy
// spinning on STATUS until its budget is exhausted instead of advancing
// time explicitly.
type Ticker interface {
	Tick(n uint32)
}

// tick advances time by n if io implements Ticker, and is a no-op otherwise.
func tick(io IO, n uint32) {
	if t, ok := io.(Ticker); ok {
		t.Tick(n)
	}
}
