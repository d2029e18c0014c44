package main

import (
	"flag"
	"fmt"
)

func eraseCmd(args []string) {
	fs := flag.NewFlagSet("erase", flag.ExitOnError)
	g := bindGeometry(fs)
	var addr uint
	fs.UintVar(&addr, "addr", 0, "address inside the sector to erase")
	fs.Parse(args)

	drv, _ := g.openStack()

	if err := drv.SectorErase(uint32(addr)); err != nil {
		fatalf("erase failed: %v", err)
	}
	fmt.Printf("erased sector containing 0x%X\n", addr)
}
