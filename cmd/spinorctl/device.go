package main

import (
	"flag"
	"log"

	"github.com/gentam/spinor"
	"github.com/gentam/spinor/fdm"
	"github.com/gentam/spinor/sem"
	"periph.io/x/conn/v3/physic"
)

// geometry is the flash geometry shared by every subcommand, registered as
// flags so a single invocation can point the tool at a different simulated
// part. Defaults match a small 4KB NOR flash (4KB device, 256B page, 4KB
// sector) — large enough to exercise page chunking, small enough to stay
// fast.
type geometry struct {
	memBytes   uint
	pageSize   uint
	sectorSize uint
	progTicks  uint
	eraseTicks uint
	clockHz    uint
}

func bindGeometry(fs *flag.FlagSet) *geometry {
	g := &geometry{}
	fs.UintVar(&g.memBytes, "mem", 4096, "simulated flash capacity in bytes")
	fs.UintVar(&g.pageSize, "page", 256, "page program granularity in bytes")
	fs.UintVar(&g.sectorSize, "sector", 4096, "sector erase granularity in bytes")
	fs.UintVar(&g.progTicks, "prog-ticks", 4, "simulated page program latency, in ticks")
	fs.UintVar(&g.eraseTicks, "erase-ticks", 64, "simulated sector erase latency, in ticks")
	fs.UintVar(&g.clockHz, "clock", 30_000_000, "nominal simulated bus clock, in Hz, for logging only")
	return g
}

// openStack builds an in-process fdm.Device + sem.Engine + spinor.Driver
// from g. There is no real transport to open here — the in-process
// Engine/Device pair is the only backend this tool drives.
func (g *geometry) openStack() (*spinor.Driver, *sem.Engine) {
	dev, err := fdm.NewDevice(fdm.Config{
		MemBytes:       uint32(g.memBytes),
		PageSize:       uint32(g.pageSize),
		SectorSize:     uint32(g.sectorSize),
		ProgBusyTicks:  uint32(g.progTicks),
		EraseBusyTicks: uint32(g.eraseTicks),
	})
	if err != nil {
		fatalf("failed to build flash device model: %v", err)
	}

	eng := sem.NewEngine(dev)

	cfg := spinor.Config{
		MemSize:    uint32(g.memBytes),
		PageSize:   uint32(g.pageSize),
		SectorSize: uint32(g.sectorSize),
		Clock:      physic.Frequency(g.clockHz) * physic.Hertz,
	}
	log.Printf("simulated link clock: %s", cfg.Clock)

	drv, err := spinor.NewDriver(cfg, eng)
	if err != nil {
		fatalf("failed to build driver: %v", err)
	}
	return drv, eng
}
