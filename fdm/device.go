// Package fdm implements the flash device model: a behavioral model of one
// SPI NOR flash chip. It owns the byte array, the WIP/WEL status bits, and
// a simulated busy countdown, and exposes in-process operations that mirror
// the commands a real NOR part accepts over SPI.
package fdm

import "github.com/gentam/spinor"

// StatusRegister mirrors the flash device's status byte: bit 0 is
// write-in-progress, bit 1 is the write enable latch. All other bits are
// reserved zero.
type StatusRegister byte

const (
	statusWIP byte = 1 << 0
	statusWEL byte = 1 << 1
)

func (sr StatusRegister) WIP() bool { return byte(sr)&statusWIP != 0 }
func (sr StatusRegister) WEL() bool { return byte(sr)&statusWEL != 0 }

func (sr StatusRegister) String() string {
	if !sr.WIP() && !sr.WEL() {
		return "IDLE"
	}
	s := ""
	if sr.WEL() {
		s += "WEL"
	}
	if sr.WIP() {
		if s != "" {
			s += ","
		}
		s += "WIP"
	}
	return s
}

// Config fixes the geometry and simulated timing of one flash device.
type Config struct {
	MemBytes       uint32
	PageSize       uint32
	SectorSize     uint32
	ProgBusyTicks  uint32
	EraseBusyTicks uint32
}

func (c Config) validate() error {
	if c.MemBytes == 0 || c.PageSize == 0 || c.SectorSize == 0 {
		return spinor.EInval
	}
	return nil
}

// Device is a behavioral model of one SPI NOR flash chip. Bytes start
// erased (0xFF) and can only be cleared (1→0) by PageProgram; only
// SectorErase restores them to 0xFF.
type Device struct {
	cfg Config

	mem       []byte
	status    StatusRegister
	busyTicks uint32
}

// NewDevice allocates a device of the given geometry, initialized to the
// erased state (every byte 0xFF, status clear).
func NewDevice(cfg Config) (*Device, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	mem := make([]byte, cfg.MemBytes)
	for i := range mem {
		mem[i] = 0xFF
	}
	return &Device{cfg: cfg, mem: mem}, nil
}

// Tick advances simulated time by n, decrementing the busy countdown and
// clearing WIP once it reaches zero. (status.WIP == 1) always agrees with
// (busyTicks > 0) after Tick returns.
func (d *Device) Tick(n uint32) {
	if n > d.busyTicks {
		n = d.busyTicks
	}
	d.busyTicks -= n
	if d.busyTicks == 0 {
		d.status &^= StatusRegister(statusWIP)
	}
}

// WriteEnable sets WEL unconditionally, simulating the classic WREN
// command's side effect.
func (d *Device) WriteEnable() {
	d.status |= StatusRegister(statusWEL)
}

// armBusy clears WEL, loads the busy countdown, and sets WIP — unless
// ticks is zero, in which case WIP never becomes visible, preserving
// (status.WIP == 1) ⇔ (busyTicks > 0) at every observation point.
func (d *Device) armBusy(ticks uint32) {
	d.status &^= StatusRegister(statusWEL)
	d.busyTicks = ticks
	if ticks == 0 {
		d.status &^= StatusRegister(statusWIP)
	} else {
		d.status |= StatusRegister(statusWIP)
	}
}

// ReadStatus returns the current status register (RDSR).
func (d *Device) ReadStatus() StatusRegister {
	return d.status
}

// Read copies up to len(buf) bytes starting at addr into buf and returns
// the count actually copied. It is clamped to the device's capacity and
// does not consult WIP — reads are always permitted in this model.
func (d *Device) Read(addr uint32, buf []byte) int {
	if addr >= d.cfg.MemBytes {
		return 0
	}
	avail := d.cfg.MemBytes - addr
	n := uint32(len(buf))
	if n > avail {
		n = avail
	}
	copy(buf[:n], d.mem[addr:addr+n])
	return int(n)
}

// PageProgram applies mem[i] &= data[i] for the clamped region starting at
// addr, and returns the number of bytes actually programmed. It fails
// silently (returns 0, no state change) if WIP is set, WEL is clear, or
// addr is out of bounds — callers that need a distinguishable reason
// should check ReadStatus() first.
func (d *Device) PageProgram(addr uint32, data []byte) int {
	if d.status.WIP() || !d.status.WEL() || addr >= d.cfg.MemBytes {
		return 0
	}

	pageRem := d.cfg.PageSize - addr%d.cfg.PageSize
	n := uint32(len(data))
	if n > pageRem {
		n = pageRem
	}
	if avail := d.cfg.MemBytes - addr; n > avail {
		n = avail
	}

	for i := uint32(0); i < n; i++ {
		d.mem[addr+i] &= data[i]
	}

	d.armBusy(d.cfg.ProgBusyTicks)
	return int(n)
}

// SectorErase fills the sector containing addr with 0xFF. Unlike
// PageProgram it reports a distinguishable reason for failure.
func (d *Device) SectorErase(addr uint32) error {
	if d.status.WIP() {
		return spinor.EBusy
	}
	if !d.status.WEL() {
		return spinor.EInval
	}
	if addr >= d.cfg.MemBytes {
		return spinor.EOOB
	}

	base := (addr / d.cfg.SectorSize) * d.cfg.SectorSize
	end := base + d.cfg.SectorSize
	if end > d.cfg.MemBytes {
		end = d.cfg.MemBytes
	}
	for i := base; i < end; i++ {
		d.mem[i] = 0xFF
	}

	d.armBusy(d.cfg.EraseBusyTicks)
	return nil
}
