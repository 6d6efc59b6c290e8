package cpu

import (
	"github.com/ashgrovelabs/nescore/pkg/bus"
	"github.com/ashgrovelabs/nescore/pkg/logger"
)

// CPU represents the 6502 processor, decimal mode disabled per the target
// hardware.
type CPU struct {
	A  uint8  // Accumulator
	X  uint8  // X register
	Y  uint8  // Y register
	SP uint8  // Stack pointer (implicit high byte $01)
	PC uint16 // Program counter
	P  uint8  // Status register

	Memory *bus.Bus

	Cycles int

	NMI bool
	IRQ bool
}

// Status flag bits
const (
	FlagCarry     = 1 << 0 // C
	FlagZero      = 1 << 1 // Z
	FlagInterrupt = 1 << 2 // I
	FlagDecimal   = 1 << 3 // D
	FlagBreak     = 1 << 4 // B
	FlagUnused    = 1 << 5 // -
	FlagOverflow  = 1 << 6 // V
	FlagNegative  = 1 << 7 // N
)

// New creates a new CPU instance wired to the given bus.
func New(mem *bus.Bus) *CPU {
	return &CPU{
		Memory: mem,
		SP:     0xFD,
		P:      FlagUnused | FlagInterrupt,
	}
}

// Reset resets the CPU to power-up state and loads PC from the reset vector.
func (c *CPU) Reset() {
	c.A = 0
	c.X = 0
	c.Y = 0
	c.SP = 0xFD
	c.P = FlagUnused | FlagInterrupt
	c.PC = c.read16(0xFFFC)
	c.Cycles = 0
	c.NMI = false
	c.IRQ = false
}

// Step executes one instruction (or services one pending interrupt, or one
// OAM DMA stall) and returns the number of cycles it took.
func (c *CPU) Step() int {
	if c.Memory.DMAPending() {
		cycles := c.Memory.ServiceOAMDMA(c.Cycles)
		c.Cycles += cycles
		return cycles
	}

	if c.NMI {
		logger.LogCPU("NMI serviced at PC=$%04X", c.PC)
		c.handleNMI()
		c.NMI = false
		c.Cycles += 7
		return 7
	}

	if c.IRQ && !c.getFlag(FlagInterrupt) {
		logger.LogCPU("IRQ serviced at PC=$%04X", c.PC)
		c.handleIRQ()
		c.Cycles += 7
		return 7
	}

	opcode := c.read(c.PC)
	c.PC++

	cycles := c.executeInstruction(opcode)
	c.Cycles += cycles

	return cycles
}

// handleNMI services a Non-Maskable Interrupt. NMI is edge-triggered: the
// caller clears c.NMI after this returns, so a given rising edge is
// serviced exactly once.
func (c *CPU) handleNMI() {
	c.push16(c.PC)
	c.push((c.P | FlagUnused) &^ FlagBreak)
	c.setFlag(FlagInterrupt, true)
	c.PC = c.read16(0xFFFA)
}

// handleIRQ services a level-triggered Interrupt Request.
func (c *CPU) handleIRQ() {
	c.push16(c.PC)
	c.push((c.P | FlagUnused) &^ FlagBreak)
	c.setFlag(FlagInterrupt, true)
	c.PC = c.read16(0xFFFE)
}

func (c *CPU) getFlag(flag uint8) bool {
	return c.P&flag != 0
}

func (c *CPU) setFlag(flag uint8, value bool) {
	if value {
		c.P |= flag
	} else {
		c.P &^= flag
	}
}

func (c *CPU) read(addr uint16) uint8 {
	return c.Memory.Read(addr)
}

func (c *CPU) write(addr uint16, value uint8) {
	c.Memory.Write(addr, value)
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.read(addr))
	hi := uint16(c.read(addr + 1))
	return hi<<8 | lo
}

func (c *CPU) push(value uint8) {
	c.write(0x100|uint16(c.SP), value)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.read(0x100 | uint16(c.SP))
}

func (c *CPU) push16(value uint16) {
	c.push(uint8(value >> 8))
	c.push(uint8(value & 0xFF))
}

func (c *CPU) pop16() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return hi<<8 | lo
}

// TriggerNMI raises the NMI line. The bus/PPU calls this on the VBlank
// rising edge; it must re-arm it only on a fresh edge.
func (c *CPU) TriggerNMI() {
	c.NMI = true
}

// TriggerIRQ asserts the level-triggered IRQ line.
func (c *CPU) TriggerIRQ() {
	c.IRQ = true
}

// ClearIRQ deasserts the IRQ line, used when the interrupt source
// acknowledges (e.g. a mapper IRQ being cleared).
func (c *CPU) ClearIRQ() {
	c.IRQ = false
}

// GetFlag returns the state of a flag; exported for tests.
func (c *CPU) GetFlag(flag uint8) bool {
	return c.getFlag(flag)
}

// SetFlag sets a flag; exported for tests.
func (c *CPU) SetFlag(flag uint8, value bool) {
	c.setFlag(flag, value)
}
