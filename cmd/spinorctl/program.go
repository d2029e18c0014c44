package main

import (
	"flag"
	"fmt"
	"os"
)

func programCmd(args []string) {
	fs := flag.NewFlagSet("program", flag.ExitOnError)
	g := bindGeometry(fs)
	var (
		addr     uint
		filename string
	)
	fs.UintVar(&addr, "addr", 0, "start address")
	fs.StringVar(&filename, "f", "", "input file")
	fs.Parse(args)

	if filename == "" {
		fatalUsage("input file is required (-f)")
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		fatalf("failed to read file: %v", err)
	}

	drv, _ := g.openStack()

	if err := drv.Program(uint32(addr), data); err != nil {
		fatalf("program failed: %v", err)
	}
	fmt.Printf("programmed %d bytes at 0x%X\n", len(data), addr)
}
