// Package bus implements the system bus address decoder for the NES
// console: work RAM, the memory-mapped device stubs, cartridge RAM,
// and cartridge ROM behind the mapper abstraction.
package bus

import (
	"fmt"

	"gones/internal/cartridge"
)

const (
	ramSize   = 0x0800 // 2 KiB internal work RAM
	ramMirror = 0x2000 // mirrored across the first 8 KiB
	cartRAMLo = 0x6000
	cartRAMHi = 0x8000 // exclusive
	romLo     = 0x8000
	ppuRegLo  = 0x2000
	ppuRegHi  = 0x4000
	apuIOLo   = 0x4000
	apuIOHi   = 0x4020
)

// Bus connects the CPU to work RAM, device-register stubs, cartridge
// RAM, and the cartridge's mapper. It implements cpu.Memory and
// nothing else — the CPU never knows it is talking to a Bus rather
// than a mock.
type Bus struct {
	ram     [ramSize]uint8
	cartRAM [cartRAMHi - cartRAMLo]uint8
	mapper  cartridge.Mapper
}

// New creates a bus wired to the given mapper. Work RAM and cartridge
// RAM are zeroed.
func New(mapper cartridge.Mapper) *Bus {
	return &Bus{mapper: mapper}
}

// Read decodes addr per the NES memory map and returns the byte at
// that location. PPU/APU/IO register ranges are stubs that read as
// zero; they are external collaborators this core does not implement.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr < ramMirror:
		return b.ram[addr%ramSize]
	case addr >= ppuRegLo && addr < ppuRegHi:
		return 0 // PPU register stub
	case addr >= apuIOLo && addr < apuIOHi:
		return 0 // APU/IO register stub
	case addr >= cartRAMLo && addr < cartRAMHi:
		return b.cartRAM[addr-cartRAMLo]
	case addr < romLo:
		panic(fmt.Sprintf("bus: read from unmapped address $%04X", addr))
	default: // addr >= romLo
		return b.mapper.PRGRead(addr)
	}
}

// Write decodes addr and stores value. Writes into the ROM window are
// a fatal error: the cartridge loaded here exposes no writable
// mapper registers.
func (b *Bus) Write(addr uint16, value uint8) {
	switch {
	case addr < ramMirror:
		b.ram[addr%ramSize] = value
	case addr >= ppuRegLo && addr < ppuRegHi:
		// PPU register stub, write discarded
	case addr >= apuIOLo && addr < apuIOHi:
		// APU/IO register stub, write discarded
	case addr >= cartRAMLo && addr < cartRAMHi:
		b.cartRAM[addr-cartRAMLo] = value
	case addr < romLo:
		panic(fmt.Sprintf("bus: write to unmapped address $%04X", addr))
	default: // addr >= romLo
		panic(fmt.Sprintf("bus: program attempted to write ROM at $%04X", addr))
	}
}
