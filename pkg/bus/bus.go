package bus

import (
	"github.com/ashgrovelabs/nescore/pkg/logger"
)

// PPUPort is the subset of the PPU the bus drives register reads/writes through.
type PPUPort interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, value uint8)
}

// APUPort is the subset of the APU the bus drives register reads/writes through.
type APUPort interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, value uint8)
}

// MapperPort is the subset of the cartridge mapper the bus routes PRG accesses through.
type MapperPort interface {
	ReadPRG(addr uint16) uint8
	WritePRG(addr uint16, value uint8)
}

// ControllerPort is a single NES controller's strobe/shift-register interface.
type ControllerPort interface {
	Read() uint8
	Write(value uint8)
}

// Bus is the CPU's view of the NES address space. It owns internal RAM and
// the OAM DMA state machine, and routes everything else to the PPU, APU,
// cartridge mapper and controllers it's wired to.
type Bus struct {
	RAM [2048]uint8

	// HighMem backs $6000-$FFFF when no cartridge is attached, so the bus
	// and CPU can be exercised in isolation by tests.
	HighMem [0xA000]uint8

	PPU         PPUPort
	APU         APUPort
	Mapper      MapperPort
	Controllers [2]ControllerPort

	dmaPending bool
	dmaPage    uint8
}

// New creates a new Bus instance.
func New() *Bus {
	return &Bus{}
}

// SetMapper sets the cartridge mapper reference.
func (b *Bus) SetMapper(m MapperPort) {
	b.Mapper = m
}

// SetPPU sets the PPU reference.
func (b *Bus) SetPPU(ppu PPUPort) {
	b.PPU = ppu
}

// SetAPU sets the APU reference.
func (b *Bus) SetAPU(apu APUPort) {
	b.APU = apu
}

// SetController sets the controller reference for the given port (0 or 1).
func (b *Bus) SetController(index int, c ControllerPort) {
	if index < 0 || index > 1 {
		return
	}
	b.Controllers[index] = c
}

// Read reads a byte from the given CPU address.
func (b *Bus) Read(addr uint16) uint8 {
	if addr < 0x2000 {
		return b.RAM[addr&0x7FF]
	}

	if addr >= 0x6000 {
		if b.Mapper != nil {
			return b.Mapper.ReadPRG(addr)
		}
		index := addr - 0x6000
		if index >= uint16(len(b.HighMem)) {
			return 0
		}
		return b.HighMem[index]
	}

	if addr < 0x4000 {
		if b.PPU != nil {
			return b.PPU.ReadRegister(0x2000 + (addr & 0x7))
		}
		return 0
	}

	if addr == 0x4016 {
		if b.Controllers[0] != nil {
			return b.Controllers[0].Read()
		}
		return 0
	}

	if addr == 0x4017 {
		if b.Controllers[1] != nil {
			return b.Controllers[1].Read()
		}
		return 0
	}

	if addr < 0x4020 {
		if b.APU != nil {
			return b.APU.ReadRegister(addr)
		}
		return 0
	}

	return 0
}

// Write writes a byte to the given CPU address.
func (b *Bus) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x2000:
		b.RAM[addr&0x7FF] = value

	case addr < 0x4000:
		if b.PPU != nil {
			b.PPU.WriteRegister(0x2000+(addr&0x7), value)
		}

	case addr == 0x4014:
		b.dmaPending = true
		b.dmaPage = value

	case addr == 0x4016:
		// Strobes both controllers; bit 0 of the written value is the
		// strobe line shared by both ports.
		for _, c := range b.Controllers {
			if c != nil {
				c.Write(value)
			}
		}

	case addr < 0x4020:
		if b.APU != nil {
			b.APU.WriteRegister(addr, value)
		}

	case addr >= 0x6000:
		if b.Mapper != nil {
			b.Mapper.WritePRG(addr, value)
		} else {
			index := addr - 0x6000
			if index < uint16(len(b.HighMem)) {
				b.HighMem[index] = value
			}
		}

	default:
		// $4020-$5FFF: unmapped on mappers 0-4.
	}
}

// DMAPending reports whether a write to $4014 is waiting to be serviced.
func (b *Bus) DMAPending() bool {
	return b.dmaPending
}

// ServiceOAMDMA performs the 256-byte transfer from dmaPage<<8 into PPU OAM
// and returns the CPU stall this costs: 513 cycles, or 514 if the CPU's
// running cycle count was odd when the stall begins (§4.2/§9: modeled as a
// single lump-sum stall, not 256 individual CPU steps).
func (b *Bus) ServiceOAMDMA(cpuCyclesSoFar int) int {
	baseAddr := uint16(b.dmaPage) << 8
	for i := 0; i < 256; i++ {
		value := b.Read(baseAddr + uint16(i))
		if b.PPU != nil {
			b.PPU.WriteRegister(0x2004, value)
		}
	}
	b.dmaPending = false

	logger.LogCPU("OAM DMA from page $%02X complete", b.dmaPage)

	if cpuCyclesSoFar%2 != 0 {
		return 514
	}
	return 513
}
