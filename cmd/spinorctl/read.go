package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
)

func readCmd(args []string) {
	fs := flag.NewFlagSet("read", flag.ExitOnError)
	g := bindGeometry(fs)
	var (
		addr    uint
		nread   uint
		outFile string
	)
	fs.UintVar(&addr, "addr", 0, "start address")
	fs.UintVar(&nread, "n", 256, "number of bytes to read")
	fs.StringVar(&outFile, "o", "", "output file (default: hexdump)")
	fs.Parse(args)

	drv, _ := g.openStack()

	buf := make([]byte, nread)
	if err := drv.Read(uint32(addr), buf); err != nil {
		fatalf("read failed: %v", err)
	}

	if outFile == "" {
		fmt.Println(hex.Dump(buf))
		return
	}
	if err := os.WriteFile(outFile, buf, 0644); err != nil {
		fmt.Fprintln(os.Stderr, "write file failed:", err)
	}
}
