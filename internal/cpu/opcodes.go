package cpu

// execute dispatches opcode against the already-resolved effective
// address addr. Every documented 6502 opcode is reached from here;
// initOpcodes below is the only place opcodes are registered, so an
// opcode handled here but missing there is never reached (Step panics
// on it first), and one registered there but missing here has its
// operand resolved and then panics in the default case. Keeping the two in lockstep is why both exist in the
// same package rather than a single combined table of function
// pointers: readers can check addressing-mode intent against semantic
// intent independently.
func (c *CPU) execute(opcode uint8, addr uint16) {
	switch opcode {
	// Load/Store
	case 0xA9, 0xA5, 0xB5, 0xAD, 0xBD, 0xB9, 0xA1, 0xB1:
		c.lda(addr)
	case 0xA2, 0xA6, 0xB6, 0xAE, 0xBE:
		c.ldx(addr)
	case 0xA0, 0xA4, 0xB4, 0xAC, 0xBC:
		c.ldy(addr)
	case 0x85, 0x95, 0x8D, 0x9D, 0x99, 0x81, 0x91:
		c.sta(addr)
	case 0x86, 0x96, 0x8E:
		c.stx(addr)
	case 0x84, 0x94, 0x8C:
		c.sty(addr)

	// Arithmetic
	case 0x69, 0x65, 0x75, 0x6D, 0x7D, 0x79, 0x61, 0x71:
		c.adc(addr)
	case 0xE9, 0xE5, 0xF5, 0xED, 0xFD, 0xF9, 0xE1, 0xF1:
		c.sbc(addr)

	// Logical
	case 0x29, 0x25, 0x35, 0x2D, 0x3D, 0x39, 0x21, 0x31:
		c.and(addr)
	case 0x09, 0x05, 0x15, 0x0D, 0x1D, 0x19, 0x01, 0x11:
		c.ora(addr)
	case 0x49, 0x45, 0x55, 0x4D, 0x5D, 0x59, 0x41, 0x51:
		c.eor(addr)

	// Shift / rotate
	case 0x0A:
		c.aslAcc()
	case 0x06, 0x16, 0x0E, 0x1E:
		c.asl(addr)
	case 0x4A:
		c.lsrAcc()
	case 0x46, 0x56, 0x4E, 0x5E:
		c.lsr(addr)
	case 0x2A:
		c.rolAcc()
	case 0x26, 0x36, 0x2E, 0x3E:
		c.rol(addr)
	case 0x6A:
		c.rorAcc()
	case 0x66, 0x76, 0x6E, 0x7E:
		c.ror(addr)

	// Compare
	case 0xC9, 0xC5, 0xD5, 0xCD, 0xDD, 0xD9, 0xC1, 0xD1:
		c.cmp(addr)
	case 0xE0, 0xE4, 0xEC:
		c.cpx(addr)
	case 0xC0, 0xC4, 0xCC:
		c.cpy(addr)

	// Increment / decrement
	case 0xE6, 0xF6, 0xEE, 0xFE:
		c.inc(addr)
	case 0xC6, 0xD6, 0xCE, 0xDE:
		c.dec(addr)
	case 0xE8:
		c.inx()
	case 0xCA:
		c.dex()
	case 0xC8:
		c.iny()
	case 0x88:
		c.dey()

	// Transfer
	case 0xAA:
		c.tax()
	case 0x8A:
		c.txa()
	case 0xA8:
		c.tay()
	case 0x98:
		c.tya()
	case 0xBA:
		c.tsx()
	case 0x9A:
		c.txs()

	// Stack
	case 0x48:
		c.pha()
	case 0x68:
		c.pla()
	case 0x08:
		c.php()
	case 0x28:
		c.plp()

	// Flags
	case 0x18:
		c.C = false
	case 0x38:
		c.C = true
	case 0x58:
		c.I = false
	case 0x78:
		c.I = true
	case 0xB8:
		c.V = false
	case 0xD8:
		c.D = false
	case 0xF8:
		c.D = true

	// Control flow
	case 0x4C, 0x6C:
		c.PC = addr
	case 0x20:
		c.jsr(addr)
	case 0x60:
		c.rts()
	case 0x40:
		c.rti()

	// Branches
	case 0x90:
		c.branch(!c.C, addr)
	case 0xB0:
		c.branch(c.C, addr)
	case 0xD0:
		c.branch(!c.Z, addr)
	case 0xF0:
		c.branch(c.Z, addr)
	case 0x10:
		c.branch(!c.N, addr)
	case 0x30:
		c.branch(c.N, addr)
	case 0x50:
		c.branch(!c.V, addr)
	case 0x70:
		c.branch(c.V, addr)

	// Misc
	case 0x24, 0x2C:
		c.bit(addr)
	case 0x00:
		c.brk()
	case 0xEA:
		// NOP

	default:
		panic(unimplementedOpcode(opcode))
	}
}

func unimplementedOpcode(opcode uint8) string {
	return "cpu: opcode dispatch reached an unregistered instruction $" + hexByte(opcode)
}

func hexByte(b uint8) string {
	const digits = "0123456789ABCDEF"
	return string([]byte{digits[b>>4], digits[b&0x0f]})
}

// --- Load / store ---

func (c *CPU) lda(addr uint16) {
	c.A = c.mem.Read(addr)
	c.setZN(c.A)
}

func (c *CPU) ldx(addr uint16) {
	c.X = c.mem.Read(addr)
	c.setZN(c.X)
}

func (c *CPU) ldy(addr uint16) {
	c.Y = c.mem.Read(addr)
	c.setZN(c.Y)
}

func (c *CPU) sta(addr uint16) { c.mem.Write(addr, c.A) }
func (c *CPU) stx(addr uint16) { c.mem.Write(addr, c.X) }
func (c *CPU) sty(addr uint16) { c.mem.Write(addr, c.Y) }

// --- Arithmetic ---

func (c *CPU) adc(addr uint16) {
	m := c.mem.Read(addr)
	carry := uint16(0)
	if c.C {
		carry = 1
	}
	sum := uint16(c.A) + uint16(m) + carry
	result := uint8(sum)

	c.V = (^(c.A ^ m) & (c.A ^ result) & nFlagMask) != 0
	c.C = sum > 0xff
	c.A = result
	c.setZN(c.A)
}

func (c *CPU) sbc(addr uint16) {
	m := c.mem.Read(addr) ^ 0xff
	carry := uint16(0)
	if c.C {
		carry = 1
	}
	sum := uint16(c.A) + uint16(m) + carry
	result := uint8(sum)

	c.V = (^(c.A ^ m) & (c.A ^ result) & nFlagMask) != 0
	c.C = sum > 0xff
	c.A = result
	c.setZN(c.A)
}

// --- Logical ---

func (c *CPU) and(addr uint16) {
	c.A &= c.mem.Read(addr)
	c.setZN(c.A)
}

func (c *CPU) ora(addr uint16) {
	c.A |= c.mem.Read(addr)
	c.setZN(c.A)
}

func (c *CPU) eor(addr uint16) {
	c.A ^= c.mem.Read(addr)
	c.setZN(c.A)
}

// --- Shift / rotate ---

func (c *CPU) aslAcc() {
	c.C = c.A&nFlagMask != 0
	c.A <<= 1
	c.setZN(c.A)
}

func (c *CPU) asl(addr uint16) {
	v := c.mem.Read(addr)
	c.C = v&nFlagMask != 0
	v <<= 1
	c.mem.Write(addr, v)
	c.setZN(v)
}

func (c *CPU) lsrAcc() {
	c.C = c.A&cFlagMask != 0
	c.A >>= 1
	c.setZN(c.A)
}

func (c *CPU) lsr(addr uint16) {
	v := c.mem.Read(addr)
	c.C = v&cFlagMask != 0
	v >>= 1
	c.mem.Write(addr, v)
	c.setZN(v)
}

func (c *CPU) rolAcc() {
	carryIn := c.C
	c.C = c.A&nFlagMask != 0
	c.A <<= 1
	if carryIn {
		c.A |= cFlagMask
	}
	c.setZN(c.A)
}

func (c *CPU) rol(addr uint16) {
	carryIn := c.C
	v := c.mem.Read(addr)
	c.C = v&nFlagMask != 0
	v <<= 1
	if carryIn {
		v |= cFlagMask
	}
	c.mem.Write(addr, v)
	c.setZN(v)
}

func (c *CPU) rorAcc() {
	carryIn := c.C
	c.C = c.A&cFlagMask != 0
	c.A >>= 1
	if carryIn {
		c.A |= nFlagMask
	}
	c.setZN(c.A)
}

func (c *CPU) ror(addr uint16) {
	carryIn := c.C
	v := c.mem.Read(addr)
	c.C = v&cFlagMask != 0
	v >>= 1
	if carryIn {
		v |= nFlagMask
	}
	c.mem.Write(addr, v)
	c.setZN(v)
}

// --- Compare ---

func (c *CPU) compare(reg, m uint8) {
	c.C = reg >= m
	c.setZN(reg - m)
}

func (c *CPU) cmp(addr uint16) { c.compare(c.A, c.mem.Read(addr)) }
func (c *CPU) cpx(addr uint16) { c.compare(c.X, c.mem.Read(addr)) }
func (c *CPU) cpy(addr uint16) { c.compare(c.Y, c.mem.Read(addr)) }

// --- Increment / decrement ---

func (c *CPU) inc(addr uint16) {
	v := c.mem.Read(addr) + 1
	c.mem.Write(addr, v)
	c.setZN(v)
}

func (c *CPU) dec(addr uint16) {
	v := c.mem.Read(addr) - 1
	c.mem.Write(addr, v)
	c.setZN(v)
}

func (c *CPU) inx() { c.X++; c.setZN(c.X) }
func (c *CPU) dex() { c.X--; c.setZN(c.X) }
func (c *CPU) iny() { c.Y++; c.setZN(c.Y) }
func (c *CPU) dey() { c.Y--; c.setZN(c.Y) }

// --- Transfer ---

func (c *CPU) tax() { c.X = c.A; c.setZN(c.X) }
func (c *CPU) txa() { c.A = c.X; c.setZN(c.A) }
func (c *CPU) tay() { c.Y = c.A; c.setZN(c.Y) }
func (c *CPU) tya() { c.A = c.Y; c.setZN(c.A) }
func (c *CPU) tsx() { c.X = c.SP; c.setZN(c.X) }
func (c *CPU) txs() { c.SP = c.X }

// --- Stack ---

func (c *CPU) pha() { c.push(c.A) }
func (c *CPU) pla() { c.A = c.pop(); c.setZN(c.A) }
func (c *CPU) php() { c.push(c.StatusByte() | bFlagMask) }
func (c *CPU) plp() { c.SetStatusByte(c.pop()) }

// --- Control flow ---

// jsr pushes the address of the last byte of the JSR instruction
// (PC-1, since PC already points past the 2-byte operand) and jumps.
func (c *CPU) jsr(addr uint16) {
	c.pushWord(c.PC - 1)
	c.PC = addr
}

// rts pops the return address and resumes one byte past it.
func (c *CPU) rts() {
	c.PC = c.popWord() + 1
}

func (c *CPU) rti() {
	c.SetStatusByte(c.pop())
	c.PC = c.popWord()
}

// branch jumps to addr when taken is true; addr was already computed
// by resolveAddress's Relative case as PC + sign-extend(offset).
func (c *CPU) branch(taken bool, addr uint16) {
	if taken {
		c.PC = addr
	}
}

func (c *CPU) bit(addr uint16) {
	v := c.mem.Read(addr)
	c.N = v&nFlagMask != 0
	c.V = v&vFlagMask != 0
	c.Z = c.A&v == 0
}

// brk pushes the BRK opcode's address plus 2 (fetch consumed the
// opcode; the increment here skips the padding byte), then status with
// B set, then loads PC from the IRQ/BRK vector.
func (c *CPU) brk() {
	c.PC++
	c.pushWord(c.PC)
	c.push(c.StatusByte() | bFlagMask)
	c.I = true
	low := uint16(c.mem.Read(irqVector))
	high := uint16(c.mem.Read(irqVector + 1))
	c.PC = (high << 8) | low
}

// initOpcodes fills the opcode table with every documented 6502
// instruction across its canonical addressing modes.
func (c *CPU) initOpcodes() {
	set := func(op uint8, name string, mode AddressingMode) {
		c.opcodes[op] = &Instruction{Name: name, Mode: mode}
	}

	set(0xA9, "LDA", Immediate)
	set(0xA5, "LDA", ZeroPage)
	set(0xB5, "LDA", ZeroPageX)
	set(0xAD, "LDA", Absolute)
	set(0xBD, "LDA", AbsoluteX)
	set(0xB9, "LDA", AbsoluteY)
	set(0xA1, "LDA", IndexedIndirect)
	set(0xB1, "LDA", IndirectIndexed)

	set(0xA2, "LDX", Immediate)
	set(0xA6, "LDX", ZeroPage)
	set(0xB6, "LDX", ZeroPageY)
	set(0xAE, "LDX", Absolute)
	set(0xBE, "LDX", AbsoluteY)

	set(0xA0, "LDY", Immediate)
	set(0xA4, "LDY", ZeroPage)
	set(0xB4, "LDY", ZeroPageX)
	set(0xAC, "LDY", Absolute)
	set(0xBC, "LDY", AbsoluteX)

	set(0x85, "STA", ZeroPage)
	set(0x95, "STA", ZeroPageX)
	set(0x8D, "STA", Absolute)
	set(0x9D, "STA", AbsoluteX)
	set(0x99, "STA", AbsoluteY)
	set(0x81, "STA", IndexedIndirect)
	set(0x91, "STA", IndirectIndexed)

	set(0x86, "STX", ZeroPage)
	set(0x96, "STX", ZeroPageY)
	set(0x8E, "STX", Absolute)

	set(0x84, "STY", ZeroPage)
	set(0x94, "STY", ZeroPageX)
	set(0x8C, "STY", Absolute)

	set(0x69, "ADC", Immediate)
	set(0x65, "ADC", ZeroPage)
	set(0x75, "ADC", ZeroPageX)
	set(0x6D, "ADC", Absolute)
	set(0x7D, "ADC", AbsoluteX)
	set(0x79, "ADC", AbsoluteY)
	set(0x61, "ADC", IndexedIndirect)
	set(0x71, "ADC", IndirectIndexed)

	set(0xE9, "SBC", Immediate)
	set(0xE5, "SBC", ZeroPage)
	set(0xF5, "SBC", ZeroPageX)
	set(0xED, "SBC", Absolute)
	set(0xFD, "SBC", AbsoluteX)
	set(0xF9, "SBC", AbsoluteY)
	set(0xE1, "SBC", IndexedIndirect)
	set(0xF1, "SBC", IndirectIndexed)

	set(0x29, "AND", Immediate)
	set(0x25, "AND", ZeroPage)
	set(0x35, "AND", ZeroPageX)
	set(0x2D, "AND", Absolute)
	set(0x3D, "AND", AbsoluteX)
	set(0x39, "AND", AbsoluteY)
	set(0x21, "AND", IndexedIndirect)
	set(0x31, "AND", IndirectIndexed)

	set(0x09, "ORA", Immediate)
	set(0x05, "ORA", ZeroPage)
	set(0x15, "ORA", ZeroPageX)
	set(0x0D, "ORA", Absolute)
	set(0x1D, "ORA", AbsoluteX)
	set(0x19, "ORA", AbsoluteY)
	set(0x01, "ORA", IndexedIndirect)
	set(0x11, "ORA", IndirectIndexed)

	set(0x49, "EOR", Immediate)
	set(0x45, "EOR", ZeroPage)
	set(0x55, "EOR", ZeroPageX)
	set(0x4D, "EOR", Absolute)
	set(0x5D, "EOR", AbsoluteX)
	set(0x59, "EOR", AbsoluteY)
	set(0x41, "EOR", IndexedIndirect)
	set(0x51, "EOR", IndirectIndexed)

	set(0x0A, "ASL", Accumulator)
	set(0x06, "ASL", ZeroPage)
	set(0x16, "ASL", ZeroPageX)
	set(0x0E, "ASL", Absolute)
	set(0x1E, "ASL", AbsoluteX)

	set(0x4A, "LSR", Accumulator)
	set(0x46, "LSR", ZeroPage)
	set(0x56, "LSR", ZeroPageX)
	set(0x4E, "LSR", Absolute)
	set(0x5E, "LSR", AbsoluteX)

	set(0x2A, "ROL", Accumulator)
	set(0x26, "ROL", ZeroPage)
	set(0x36, "ROL", ZeroPageX)
	set(0x2E, "ROL", Absolute)
	set(0x3E, "ROL", AbsoluteX)

	set(0x6A, "ROR", Accumulator)
	set(0x66, "ROR", ZeroPage)
	set(0x76, "ROR", ZeroPageX)
	set(0x6E, "ROR", Absolute)
	set(0x7E, "ROR", AbsoluteX)

	set(0xC9, "CMP", Immediate)
	set(0xC5, "CMP", ZeroPage)
	set(0xD5, "CMP", ZeroPageX)
	set(0xCD, "CMP", Absolute)
	set(0xDD, "CMP", AbsoluteX)
	set(0xD9, "CMP", AbsoluteY)
	set(0xC1, "CMP", IndexedIndirect)
	set(0xD1, "CMP", IndirectIndexed)

	set(0xE0, "CPX", Immediate)
	set(0xE4, "CPX", ZeroPage)
	set(0xEC, "CPX", Absolute)

	set(0xC0, "CPY", Immediate)
	set(0xC4, "CPY", ZeroPage)
	set(0xCC, "CPY", Absolute)

	set(0xE6, "INC", ZeroPage)
	set(0xF6, "INC", ZeroPageX)
	set(0xEE, "INC", Absolute)
	set(0xFE, "INC", AbsoluteX)

	set(0xC6, "DEC", ZeroPage)
	set(0xD6, "DEC", ZeroPageX)
	set(0xCE, "DEC", Absolute)
	set(0xDE, "DEC", AbsoluteX)

	set(0xE8, "INX", Implied)
	set(0xCA, "DEX", Implied)
	set(0xC8, "INY", Implied)
	set(0x88, "DEY", Implied)

	set(0xAA, "TAX", Implied)
	set(0x8A, "TXA", Implied)
	set(0xA8, "TAY", Implied)
	set(0x98, "TYA", Implied)
	set(0xBA, "TSX", Implied)
	set(0x9A, "TXS", Implied)

	set(0x48, "PHA", Implied)
	set(0x68, "PLA", Implied)
	set(0x08, "PHP", Implied)
	set(0x28, "PLP", Implied)

	set(0x18, "CLC", Implied)
	set(0x38, "SEC", Implied)
	set(0x58, "CLI", Implied)
	set(0x78, "SEI", Implied)
	set(0xB8, "CLV", Implied)
	set(0xD8, "CLD", Implied)
	set(0xF8, "SED", Implied)

	set(0x4C, "JMP", Absolute)
	set(0x6C, "JMP", Indirect)
	set(0x20, "JSR", Absolute)
	set(0x60, "RTS", Implied)
	set(0x40, "RTI", Implied)

	set(0x90, "BCC", Relative)
	set(0xB0, "BCS", Relative)
	set(0xD0, "BNE", Relative)
	set(0xF0, "BEQ", Relative)
	set(0x10, "BPL", Relative)
	set(0x30, "BMI", Relative)
	set(0x50, "BVC", Relative)
	set(0x70, "BVS", Relative)

	set(0x24, "BIT", ZeroPage)
	set(0x2C, "BIT", Absolute)
	set(0x00, "BRK", Implied)
	set(0xEA, "NOP", Implied)
}
