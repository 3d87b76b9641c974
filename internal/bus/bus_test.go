package bus

import "testing"

// stubMapper is a minimal cartridge.Mapper for bus-only tests.
type stubMapper struct {
	prg [0x8000]uint8
}

func (m *stubMapper) Load([]uint8, bool) error { return nil }
func (m *stubMapper) PRGRead(addr uint16) uint8 {
	return m.prg[addr-0x8000]
}
func (m *stubMapper) CHRRead(uint16) uint8 { return 0 }

func TestRAMReadAfterWriteMirrors(t *testing.T) {
	b := New(&stubMapper{})
	b.Write(0x0042, 0x7a)

	for k := uint16(0); k < 4; k++ {
		addr := 0x0042 + k*0x0800
		if got := b.Read(addr); got != 0x7a {
			t.Errorf("Read(%#04x) = %#02x, want 0x7a (mirror %d)", addr, got, k)
		}
	}
}

func TestDeviceStubsReadZero(t *testing.T) {
	b := New(&stubMapper{})
	for _, addr := range []uint16{0x2000, 0x2008, 0x3fff, 0x4000, 0x4017, 0x4018, 0x401f} {
		if got := b.Read(addr); got != 0 {
			t.Errorf("Read(%#04x) = %#02x, want 0", addr, got)
		}
	}
}

func TestCartridgeRAMReadWrite(t *testing.T) {
	b := New(&stubMapper{})
	b.Write(0x6123, 0x55)
	if got := b.Read(0x6123); got != 0x55 {
		t.Errorf("Read(0x6123) = %#02x, want 0x55", got)
	}
}

func TestROMReadDelegatesToMapper(t *testing.T) {
	m := &stubMapper{}
	m.prg[0] = 0x99
	b := New(m)
	if got := b.Read(0x8000); got != 0x99 {
		t.Errorf("Read(0x8000) = %#02x, want 0x99", got)
	}
}

func TestWriteToROMPanics(t *testing.T) {
	b := New(&stubMapper{})
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic writing to ROM region")
		}
	}()
	b.Write(0x8000, 0x01)
}
