package fdm

import (
	"testing"

	"github.com/gentam/spinor"
)

func newTestDevice(t *testing.T) *Device {
	t.Helper()
	dev, err := NewDevice(Config{
		MemBytes:       4096,
		PageSize:       256,
		SectorSize:     4096,
		ProgBusyTicks:  4,
		EraseBusyTicks: 64,
	})
	if err != nil {
		t.Fatalf("NewDevice: %v", err)
	}
	return dev
}

func TestNewDeviceRejectsZeroGeometry(t *testing.T) {
	cases := []Config{
		{MemBytes: 0, PageSize: 256, SectorSize: 4096},
		{MemBytes: 4096, PageSize: 0, SectorSize: 4096},
		{MemBytes: 4096, PageSize: 256, SectorSize: 0},
	}
	for _, cfg := range cases {
		if _, err := NewDevice(cfg); err == nil {
			t.Errorf("NewDevice(%+v): expected error, got nil", cfg)
		}
	}
}

func TestErasedDefault(t *testing.T) {
	dev := newTestDevice(t)
	buf := make([]byte, 4096)
	if n := dev.Read(0, buf); n != 4096 {
		t.Fatalf("Read returned %d, want 4096", n)
	}
	for i, b := range buf {
		if b != 0xFF {
			t.Fatalf("byte %d = %#x, want 0xFF", i, b)
		}
	}
}

func TestRdsrAfterReset(t *testing.T) {
	dev := newTestDevice(t)
	sr := dev.ReadStatus()
	if sr.WIP() || sr.WEL() {
		t.Fatalf("fresh device status = %v, want WIP=0 WEL=0", sr)
	}
}

func TestWrenVisible(t *testing.T) {
	dev := newTestDevice(t)
	dev.WriteEnable()
	if !dev.ReadStatus().WEL() {
		t.Fatal("WEL not set after WriteEnable")
	}
}

func TestPageProgramRequiresWEL(t *testing.T) {
	dev := newTestDevice(t)
	if n := dev.PageProgram(0x20, []byte{0x12, 0x34}); n != 0 {
		t.Fatalf("PageProgram without WREN returned %d, want 0", n)
	}
	buf := make([]byte, 2)
	dev.Read(0x20, buf)
	if buf[0] != 0xFF || buf[1] != 0xFF {
		t.Fatalf("memory changed without WEL: %v", buf)
	}
}

func TestPageProgramRequiresNotBusy(t *testing.T) {
	dev := newTestDevice(t)
	dev.WriteEnable()
	dev.PageProgram(0, []byte{0x00})
	if !dev.ReadStatus().WIP() {
		t.Fatal("expected WIP set after PageProgram")
	}
	// re-arm WEL so that only the busy state can block the second program.
	dev.WriteEnable()
	if n := dev.PageProgram(1, []byte{0x00}); n != 0 {
		t.Fatalf("PageProgram while busy returned %d, want 0", n)
	}
}

func TestPageProgramClearsWELSetsWIP(t *testing.T) {
	dev := newTestDevice(t)
	dev.WriteEnable()
	dev.PageProgram(0, []byte{0xAA})
	sr := dev.ReadStatus()
	if sr.WEL() {
		t.Fatal("WEL should clear after PageProgram")
	}
	if !sr.WIP() {
		t.Fatal("WIP should set after PageProgram")
	}
	dev.Tick(4)
	if dev.ReadStatus().WIP() {
		t.Fatal("WIP should clear once busy ticks drain")
	}
}

func TestAndMonotonicity(t *testing.T) {
	dev := newTestDevice(t)
	dev.WriteEnable()
	dev.PageProgram(0x100, []byte{0xAA})
	dev.Tick(100)
	dev.WriteEnable()
	dev.PageProgram(0x100, []byte{0x55})
	dev.Tick(100)

	buf := make([]byte, 1)
	dev.Read(0x100, buf)
	if buf[0] != 0x00 {
		t.Fatalf("0xAA & 0x55 = %#x, want 0x00", buf[0])
	}
}

func TestPageProgramTruncatesAtPageBoundary(t *testing.T) {
	dev := newTestDevice(t)
	dev.WriteEnable()
	n := dev.PageProgram(0xFE, []byte{0xAA, 0xBB, 0xCC, 0xDD})
	if n != 2 {
		t.Fatalf("PageProgram at 0xFE len=4 programmed %d bytes, want 2", n)
	}
	dev.Tick(100)

	buf := make([]byte, 4)
	dev.Read(0xFE, buf)
	want := []byte{0xAA, 0xBB, 0xFF, 0xFF}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("byte %d = %#x, want %#x", i, buf[i], want[i])
		}
	}
}

func TestPageProgramTruncatesAtDeviceEnd(t *testing.T) {
	dev := newTestDevice(t)
	dev.WriteEnable()
	n := dev.PageProgram(4094, []byte{0x00, 0x00, 0x00, 0x00})
	if n != 2 {
		t.Fatalf("PageProgram at device end programmed %d bytes, want 2", n)
	}
}

func TestSectorEraseIdempotence(t *testing.T) {
	dev := newTestDevice(t)
	dev.WriteEnable()
	dev.PageProgram(0x200, []byte{0x00, 0x11, 0x22})
	dev.Tick(100)

	dev.WriteEnable()
	if err := dev.SectorErase(0x200); err != nil {
		t.Fatalf("SectorErase: %v", err)
	}
	dev.Tick(1000)

	buf := make([]byte, 3)
	dev.Read(0x200, buf)
	for i, b := range buf {
		if b != 0xFF {
			t.Fatalf("byte %d = %#x, want 0xFF after erase", i, b)
		}
	}
}

func TestSectorEraseErrors(t *testing.T) {
	dev := newTestDevice(t)

	if err := dev.SectorErase(0); err != spinor.EInval {
		t.Fatalf("SectorErase without WREN = %v, want EInval", err)
	}

	dev.WriteEnable()
	if err := dev.SectorErase(1 << 20); err != spinor.EOOB {
		t.Fatalf("SectorErase out of bounds = %v, want EOOB", err)
	}

	dev.WriteEnable()
	dev.PageProgram(0, []byte{0x00})
	if err := dev.SectorErase(0); err != spinor.EBusy {
		t.Fatalf("SectorErase while busy = %v, want EBusy", err)
	}
}

func TestReadClampsAtDeviceEnd(t *testing.T) {
	dev := newTestDevice(t)
	buf := make([]byte, 16)
	if n := dev.Read(4090, buf); n != 6 {
		t.Fatalf("Read near device end returned %d, want 6", n)
	}
	if n := dev.Read(4096, buf); n != 0 {
		t.Fatalf("Read at/past device end returned %d, want 0", n)
	}
}
