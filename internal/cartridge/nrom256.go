package cartridge

import "fmt"

// NROM256 is the 32 KiB-PRG NROM variant ("mapper 0, 2 PRG banks").
// The full window is mapped directly, no mirroring.
type NROM256 struct {
	prg [2 * prgBankSize]uint8
	chr [chrBankSize]uint8
}

func (m *NROM256) Load(raw []uint8, hasTrainer bool) error {
	offset := 0
	if hasTrainer {
		offset = trainerSize
	}
	want := offset + 2*prgBankSize + chrBankSize
	if len(raw) != want {
		return fmt.Errorf("NROM256: expected %d bytes, got %d", want, len(raw))
	}
	copy(m.prg[:], raw[offset:offset+2*prgBankSize])
	copy(m.chr[:], raw[offset+2*prgBankSize:offset+2*prgBankSize+chrBankSize])
	return nil
}

func (m *NROM256) PRGRead(addr uint16) uint8 {
	return m.prg[addr-0x8000]
}

func (m *NROM256) CHRRead(addr uint16) uint8 {
	return m.chr[addr]
}
