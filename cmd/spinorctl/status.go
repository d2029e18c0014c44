package main

import (
	"flag"
	"fmt"
)

func statusCmd(args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	g := bindGeometry(fs)
	fs.Parse(args)

	drv, _ := g.openStack()

	var sr byte
	if err := drv.Rdsr(&sr); err != nil {
		fatalf("rdsr failed: %v", err)
	}
	fmt.Printf("status: %08b (WIP=%d WEL=%d)\n", sr, sr&0x01, (sr>>1)&0x01)
}
