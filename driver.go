package spinor

import "periph.io/x/conn/v3/physic"

// Config mirrors the flash device geometry the Driver needs for bounds
// checks and page chunking. It carries no behavior of its own — it is the
// driver's copy of facts the flash device model owns authoritatively.
type Config struct {
	MemSize    uint32
	PageSize   uint32
	SectorSize uint32

	// Clock is purely informational: the nominal bus rate the simulated
	// tick budget stands in for. It never drives real timing.
	Clock physic.Frequency
}

func (c Config) validate() error {
	if c.MemSize == 0 || c.PageSize == 0 || c.SectorSize == 0 {
		return EInval
	}
	return nil
}

// Driver turns logical read/program/erase requests into register
// transactions against an IO backend. It borrows the backend; it does not
// own it, and it never outlives a single caller at a time.
type Driver struct {
	cfg Config
	io  IO
}

// NewDriver validates cfg and wraps io. io must not be nil.
func NewDriver(cfg Config, io IO) (*Driver, error) {
	if io == nil {
		return nil, EInval
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Driver{cfg: cfg, io: io}, nil
}

func (d *Driver) dispatch(cmd byte, addr, length uint32) {
	d.io.Write(RegCMD, uint32(cmd))
	d.io.Write(RegADDR, addr&0xFFFFFF)
	d.io.Write(RegLEN, length)
	d.io.Write(RegCTRL, CtrlCSEn|CtrlStart)
}

func (d *Driver) status() uint32 {
	return d.io.Read(RegSTATUS)
}

// Wren issues a WRITE ENABLE command, arming the WEL latch for the next
// program or erase dispatch.
func (d *Driver) Wren() error {
	d.dispatch(CmdWREN, 0, 0)
	return nil
}

// Rdsr reads the flash status register through the engine and stores it
// in *status.
func (d *Driver) Rdsr(status *byte) error {
	if status == nil {
		return EInval
	}
	d.dispatch(CmdRDSR, 0, 1)
	*status = byte(d.io.Read(RegDOUT))
	return nil
}

// WaitBusy polls STATUS.BUSY until it clears, advancing simulated time one
// tick at a time (a no-op if the IO backend does not implement Ticker).
// It returns ETime if WIP has not cleared after maxTicks iterations.
func (d *Driver) WaitBusy(maxTicks uint32) error {
	for i := uint32(0); i < maxTicks; i++ {
		if d.status()&StatusBusy == 0 {
			return nil
		}
		tick(d.io, 1)
	}
	if d.status()&StatusBusy == 0 {
		return nil
	}
	return ETime
}

// Read fills buf with len(buf) bytes starting at addr.
func (d *Driver) Read(addr uint32, buf []byte) error {
	if buf == nil || len(buf) == 0 {
		return EInval
	}
	length := uint32(len(buf))
	if uint64(addr)+uint64(length) > uint64(d.cfg.MemSize) {
		return EOOB
	}

	d.dispatch(CmdRead, addr, length)

	budget := length*8 + 1024
	for i := uint32(0); i < length; {
		if d.status()&StatusRxAvail != 0 {
			buf[i] = byte(d.io.Read(RegDOUT))
			i++
			continue
		}
		if budget == 0 {
			return EIO
		}
		budget--
		tick(d.io, 1)
	}
	return nil
}

// Program writes data to addr, chunking at page boundaries and re-issuing
// WREN before every chunk (the device clears WEL on every page program, so
// WREN must never be hoisted outside this loop).
func (d *Driver) Program(addr uint32, data []byte) error {
	if data == nil || len(data) == 0 {
		return EInval
	}
	length := uint32(len(data))
	if uint64(addr)+uint64(length) > uint64(d.cfg.MemSize) {
		return EOOB
	}

	remaining := length
	off := uint32(0)
	for remaining > 0 {
		pageRem := d.cfg.PageSize - addr%d.cfg.PageSize
		chunk := min(remaining, pageRem)

		if err := d.Wren(); err != nil {
			return err
		}

		budget := chunk*8 + 1024
		for i := uint32(0); i < chunk; {
			if d.status()&StatusTxSpace != 0 {
				d.io.Write(RegDIN, uint32(data[off+i]))
				i++
				continue
			}
			if budget == 0 {
				return EIO
			}
			budget--
			tick(d.io, 1)
		}

		d.dispatch(CmdPP, addr, chunk)

		if err := d.WaitBusy(100000); err != nil {
			return err
		}

		addr += chunk
		off += chunk
		remaining -= chunk
	}
	return nil
}

// SectorErase erases the sector containing addr.
func (d *Driver) SectorErase(addr uint32) error {
	if addr >= d.cfg.MemSize {
		return EOOB
	}
	if err := d.Wren(); err != nil {
		return err
	}
	d.dispatch(CmdSE, addr, 0)
	return d.WaitBusy(1000000)
}
