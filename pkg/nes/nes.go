package nes

import (
	"github.com/ashgrovelabs/nescore/pkg/apu"
	"github.com/ashgrovelabs/nescore/pkg/bus"
	"github.com/ashgrovelabs/nescore/pkg/cartridge"
	"github.com/ashgrovelabs/nescore/pkg/cpu"
	"github.com/ashgrovelabs/nescore/pkg/input"
	"github.com/ashgrovelabs/nescore/pkg/ppu"
)

// NES represents the Nintendo Entertainment System
type NES struct {
	CPU         *cpu.CPU
	PPU         *ppu.PPU
	APU         *apu.APU
	Memory      *bus.Bus
	Cartridge   *cartridge.Cartridge
	Controllers [2]*input.Controller

	Cycles uint64
	Frame  uint64
}

// NewNES creates a new NES instance
func NewNES() *NES {
	nes := &NES{}

	// Initialize components
	nes.Memory = bus.New()
	nes.CPU = cpu.New(nes.Memory)
	nes.PPU = ppu.New(nes.Memory)
	nes.APU = apu.New()
	nes.Controllers[0] = input.New()
	nes.Controllers[1] = input.New()

	// Connect components to memory
	nes.Memory.SetPPU(nes.PPU)
	nes.Memory.SetAPU(nes.APU)
	nes.Memory.SetController(0, nes.Controllers[0])
	nes.Memory.SetController(1, nes.Controllers[1])
	nes.APU.SetMemory(nes.Memory)

	return nes
}

// LoadCartridge loads a cartridge into the NES
func (n *NES) LoadCartridge(cart *cartridge.Cartridge) {
	n.Cartridge = cart
	n.Memory.SetMapper(cart.Mapper)
	n.PPU.SetCartridge(cart)
}

// LoadSave restores battery-backed PRG RAM saved by Save for the currently
// loaded cartridge.
func (n *NES) LoadSave(data []uint8) {
	if n.Cartridge != nil {
		n.Cartridge.LoadPRGRAM(data)
	}
}

// Save returns a snapshot of the currently loaded cartridge's battery-backed
// PRG RAM, or nil if it has none to persist.
func (n *NES) Save() []uint8 {
	if n.Cartridge == nil {
		return nil
	}
	return n.Cartridge.SavePRGRAM()
}

// Reset resets the NES to initial state
func (n *NES) Reset() {
	n.CPU.Reset()
	n.PPU.Reset()
	n.APU.Reset()
	if n.Cartridge != nil {
		n.Cartridge.Reset()
	}
	n.Cycles = 0
	n.Frame = 0
}

// Step executes one CPU instruction's worth of cycles, stepping the PPU and
// APU in lockstep and servicing any NMI/IRQ the PPU or mapper raised.
func (n *NES) Step() {
	cpuCycles := n.CPU.Step()

	// PPU runs 3 times faster than CPU
	for i := 0; i < cpuCycles*3; i++ {
		n.PPU.Step()

		// Check if PPU requested NMI
		if n.PPU.NMIRequested {
			n.CPU.TriggerNMI()
			n.PPU.NMIRequested = false
		}
	}

	// Check if the mapper (e.g. MMC3's scanline counter) wants an IRQ
	if n.Cartridge != nil && n.Cartridge.IRQAsserted() {
		n.CPU.TriggerIRQ()
		n.Cartridge.AcknowledgeIRQ()
	}

	// APU runs at CPU speed
	for i := 0; i < cpuCycles; i++ {
		n.APU.Step()
	}

	n.Cycles += uint64(cpuCycles)
}

// StepFrame executes until frame is complete
func (n *NES) StepFrame() {
	stepCount := 0
	maxSteps := 50000 // Proper limit for normal NES frame processing

	for !n.PPU.FrameComplete {
		n.Step()
		stepCount++

		// Safety check to prevent infinite loops during game freezes
		if stepCount > maxSteps {
			n.PPU.FrameComplete = true
			break
		}
	}

	n.PPU.FrameComplete = false
	// Frame counter is managed by PPU, don't increment here
	n.Frame = n.PPU.Frame
}

// GetController returns the controller for the given port (0 or 1).
func (n *NES) GetController(port int) *input.Controller {
	if port < 0 || port > 1 {
		return nil
	}
	return n.Controllers[port]
}

// GetFramebuffer returns the current framebuffer from PPU
func (n *NES) GetFramebuffer() []uint8 {
	return n.PPU.GetFramebuffer()
}

// GetFrame returns the current frame number
func (n *NES) GetFrame() uint64 {
	return n.Frame
}

// GetFramebufferRaw returns the raw framebuffer as 32-bit integers
func (n *NES) GetFramebufferRaw() []uint32 {
	return n.PPU.FrameBuffer[:]
}

// DrainAudioSamples returns and clears the APU's buffered audio samples.
func (n *NES) DrainAudioSamples() []float32 {
	return n.APU.DrainSamples()
}
