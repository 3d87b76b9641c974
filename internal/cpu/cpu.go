// Package cpu implements an instruction-accurate interpreter for the
// documented MOS 6502 instruction set.
package cpu

import "fmt"

// AddressingMode is the closed set of operand-resolution strategies
// the 6502 supports.
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
)

const (
	stackBase = 0x0100

	nFlagMask      = 0x80
	vFlagMask      = 0x40
	unusedFlagMask = 0x20
	bFlagMask      = 0x10
	dFlagMask      = 0x08
	iFlagMask      = 0x04
	zFlagMask      = 0x02
	cFlagMask      = 0x01

	zeroPageMask = 0x00ff
	pageMask     = 0xff00

	resetVector = 0xfffc
	irqVector   = 0xfffe
)

// Memory is the capability the CPU depends on. Production code wires
// in a *bus.Bus; tests can substitute any recording mock.
type Memory interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// Instruction names one opcode's mnemonic and addressing mode.
type Instruction struct {
	Name string
	Mode AddressingMode
}

// CPU holds the architectural register file and a reference to the
// bus it reads and writes through. It never touches memory directly.
type CPU struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16

	// Status flags, packed on demand into/out of P.
	N, V, B, D, I, Z, C bool

	mem     Memory
	opcodes [256]*Instruction
	debug   bool
}

// New constructs a CPU wired to mem. Call Reset to load PC from the
// reset vector before running.
func New(mem Memory) *CPU {
	c := &CPU{mem: mem}
	c.initOpcodes()
	return c
}

// Reset sets the register file to its power-up state and loads PC
// from the reset vector (0xFFFC/0xFFFD, little-endian).
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xff
	c.N, c.V, c.B, c.D, c.Z, c.C = false, false, false, false, false, false
	c.I = true

	low := uint16(c.mem.Read(resetVector))
	high := uint16(c.mem.Read(resetVector + 1))
	c.PC = (high << 8) | low
}

// SetDebug enables or disables per-instruction trace output.
func (c *CPU) SetDebug(enabled bool) {
	c.debug = enabled
}

// Step fetches, decodes, and executes exactly one instruction. It
// panics with a diagnostic if the opcode byte has no documented
// meaning — the core implements only the official instruction set.
func (c *CPU) Step() {
	pc := c.PC
	opcode := c.fetch()
	instr := c.opcodes[opcode]
	if instr == nil {
		panic(fmt.Sprintf("cpu: unimplemented opcode $%02X at $%04X", opcode, pc))
	}

	if c.debug {
		fmt.Printf("%04X  %02X %-3s  A:%02X X:%02X Y:%02X P:%02X\n", pc, opcode, instr.Name, c.A, c.X, c.Y, c.StatusByte())
	}

	addr := c.resolveAddress(instr.Mode)
	c.execute(opcode, addr)
}

// fetch reads the byte at PC and post-increments PC.
func (c *CPU) fetch() uint8 {
	v := c.mem.Read(c.PC)
	c.PC++
	return v
}

// resolveAddress computes the effective address for mode, advancing
// PC past the instruction's operand bytes as it goes. Implied and
// Accumulator modes need no address and return 0.
func (c *CPU) resolveAddress(mode AddressingMode) uint16 {
	switch mode {
	case Implied, Accumulator:
		return 0

	case Immediate:
		addr := c.PC
		c.PC++
		return addr

	case ZeroPage:
		return uint16(c.fetch())

	case ZeroPageX:
		base := c.fetch()
		return uint16(base+c.X) & zeroPageMask

	case ZeroPageY:
		base := c.fetch()
		return uint16(base+c.Y) & zeroPageMask

	case Relative:
		offset := int8(c.fetch())
		return uint16(int32(c.PC) + int32(offset))

	case Absolute:
		low := uint16(c.fetch())
		high := uint16(c.fetch())
		return (high << 8) | low

	case AbsoluteX:
		low := uint16(c.fetch())
		high := uint16(c.fetch())
		return ((high << 8) | low) + uint16(c.X)

	case AbsoluteY:
		low := uint16(c.fetch())
		high := uint16(c.fetch())
		return ((high << 8) | low) + uint16(c.Y)

	case Indirect:
		low := uint16(c.fetch())
		high := uint16(c.fetch())
		ptr := (high << 8) | low
		// The 6502's page-boundary bug: when the low byte of ptr is
		// 0xFF, the high byte of the target is fetched from the start
		// of the same page instead of crossing into the next one.
		if ptr&zeroPageMask == zeroPageMask {
			lo := uint16(c.mem.Read(ptr))
			hi := uint16(c.mem.Read(ptr & pageMask))
			return (hi << 8) | lo
		}
		lo := uint16(c.mem.Read(ptr))
		hi := uint16(c.mem.Read(ptr + 1))
		return (hi << 8) | lo

	case IndexedIndirect:
		base := c.fetch()
		ptr := uint16(base+c.X) & zeroPageMask
		low := uint16(c.mem.Read(ptr))
		high := uint16(c.mem.Read((ptr + 1) & zeroPageMask))
		return (high << 8) | low

	case IndirectIndexed:
		ptr := uint16(c.fetch())
		low := uint16(c.mem.Read(ptr))
		high := uint16(c.mem.Read((ptr + 1) & zeroPageMask))
		return ((high << 8) | low) + uint16(c.Y)

	default:
		return 0
	}
}

func (c *CPU) push(v uint8) {
	c.mem.Write(stackBase+uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.mem.Read(stackBase + uint16(c.SP))
}

func (c *CPU) pushWord(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v & 0xff))
}

func (c *CPU) popWord() uint16 {
	low := uint16(c.pop())
	high := uint16(c.pop())
	return (high << 8) | low
}

func (c *CPU) setZN(v uint8) {
	c.Z = v == 0
	c.N = v&nFlagMask != 0
}

// StatusByte packs the flags into the 6502 P register layout: N V 1 B
// D I Z C, MSB first. The unused bit always reads 1.
func (c *CPU) StatusByte() uint8 {
	var p uint8
	if c.N {
		p |= nFlagMask
	}
	if c.V {
		p |= vFlagMask
	}
	p |= unusedFlagMask
	if c.B {
		p |= bFlagMask
	}
	if c.D {
		p |= dFlagMask
	}
	if c.I {
		p |= iFlagMask
	}
	if c.Z {
		p |= zFlagMask
	}
	if c.C {
		p |= cFlagMask
	}
	return p
}

// SetStatusByte unpacks p into the individual flags.
func (c *CPU) SetStatusByte(p uint8) {
	c.N = p&nFlagMask != 0
	c.V = p&vFlagMask != 0
	c.B = p&bFlagMask != 0
	c.D = p&dFlagMask != 0
	c.I = p&iFlagMask != 0
	c.Z = p&zFlagMask != 0
	c.C = p&cFlagMask != 0
}
