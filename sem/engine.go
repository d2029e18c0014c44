// Package sem implements the SPI engine model: a memory-mapped register
// controller with two byte FIFOs that dispatches one flash device
// operation per START pulse. It owns the FIFOs and nothing else — all
// storage semantics are delegated to the fdm.Device it was constructed
// with.
package sem

import (
	"github.com/gentam/spinor"
	"github.com/gentam/spinor/fdm"
)

// ppStageMax is the controller's internal staging bound for PAGE PROGRAM
// dispatch: at most this many bytes are popped from TX and handed to the
// flash device model in one PP, regardless of LEN.
const ppStageMax = 256

// fifoCap is the TX/RX FIFO capacity. DIN writes and RX fills beyond this
// are dropped silently, matching fifo_cap=1024 as wired up in the reference
// simulator's sim_main.
const fifoCap = 1024

// Engine is the controller sitting between a Driver and a flash device
// model. It implements spinor.IO and spinor.Ticker directly, so a
// *spinor.Driver can be pointed straight at an *Engine.
type Engine struct {
	dev *fdm.Device

	cmd    byte
	addr   uint32
	length uint32
	ctrl   uint32

	tx []byte // host -> flash (PP data)
	rx []byte // flash -> host (READ/RDSR data)
}

// NewEngine wraps dev. The engine borrows dev; it does not own it.
func NewEngine(dev *fdm.Device) *Engine {
	return &Engine{dev: dev}
}

// Read implements spinor.IO, the read side of the register map described
// in package spinor's regmap.go.
func (e *Engine) Read(offset uint32) uint32 {
	switch offset {
	case spinor.RegCMD:
		return uint32(e.cmd)
	case spinor.RegADDR:
		return e.addr
	case spinor.RegLEN:
		return e.length
	case spinor.RegDOUT:
		return uint32(e.popRX())
	case spinor.RegCTRL:
		return e.ctrl
	case spinor.RegSTATUS:
		return e.statusValue()
	default:
		return 0
	}
}

// Write implements spinor.IO, the write side of the register map. Writing
// CTRL with the START bit set dispatches exactly one command synchronously
// and clears START before returning.
func (e *Engine) Write(offset uint32, value uint32) {
	switch offset {
	case spinor.RegCMD:
		e.cmd = byte(value)
	case spinor.RegADDR:
		e.addr = value & 0xFFFFFF
	case spinor.RegLEN:
		e.length = value
	case spinor.RegDIN:
		if len(e.tx) < fifoCap {
			e.tx = append(e.tx, byte(value))
		}
	case spinor.RegCTRL:
		if value&spinor.CtrlStart != 0 {
			e.execute()
			e.ctrl = value &^ spinor.CtrlStart
		} else {
			e.ctrl = value
		}
	case spinor.RegSTATUS:
		// read-only
	}
}

// Tick forwards n ticks to the underlying device.
func (e *Engine) Tick(n uint32) {
	e.dev.Tick(n)
}

func (e *Engine) statusValue() uint32 {
	var s uint32
	if e.dev.ReadStatus().WIP() {
		s |= spinor.StatusBusy
	}
	if len(e.rx) > 0 {
		s |= spinor.StatusRxAvail
	}
	if len(e.tx) < fifoCap {
		s |= spinor.StatusTxSpace
	}
	return s
}

func (e *Engine) popRX() byte {
	if len(e.rx) == 0 {
		return 0
	}
	b := e.rx[0]
	e.rx = e.rx[1:]
	return b
}

func (e *Engine) execute() {
	switch e.cmd {
	case spinor.CmdWREN:
		e.dev.WriteEnable()
	case spinor.CmdRDSR:
		for i := uint32(0); i < e.length && len(e.rx) < fifoCap; i++ {
			e.rx = append(e.rx, byte(e.dev.ReadStatus()))
		}
	case spinor.CmdRead:
		buf := make([]byte, e.length)
		n := e.dev.Read(e.addr, buf)
		for i := 0; i < n && len(e.rx) < fifoCap; i++ {
			e.rx = append(e.rx, buf[i])
		}
	case spinor.CmdPP:
		n := e.length
		if n > ppStageMax {
			n = ppStageMax
		}
		if uint32(len(e.tx)) < n {
			n = uint32(len(e.tx))
		}
		data := e.tx[:n]
		e.tx = e.tx[n:]
		e.dev.PageProgram(e.addr, data)
	case spinor.CmdSE:
		e.dev.SectorErase(e.addr)
	default:
		// no-op
	}
}
