package cartridge

import (
	"errors"
	"fmt"
	"io"

	"github.com/ashgrovelabs/nescore/pkg/cartridge/mapper"
)

// Cartridge represents a NES cartridge loaded from an iNES image.
type Cartridge struct {
	// ROM data
	PRGROM []uint8 // Program ROM
	CHRROM []uint8 // Character ROM

	// RAM data
	PRGRAM []uint8 // Program RAM (SRAM)
	CHRRAM []uint8 // Character RAM

	// Header information
	Header iNESHeader

	// Mapper
	Mapper mapper.Mapper

	// Battery reports whether PRGRAM should be persisted across sessions.
	Battery bool
}

// iNESHeader represents the iNES file header
type iNESHeader struct {
	Magic      [4]uint8 // "NES\x1A"
	PRGROMSize uint8    // Size of PRG ROM in 16KB units
	CHRROMSize uint8    // Size of CHR ROM in 8KB units
	Flags6     uint8    // Mapper, mirroring, battery, trainer
	Flags7     uint8    // Mapper, VS/Playchoice, NES 2.0
	Flags8     uint8    // PRG-RAM size (rarely used)
	Flags9     uint8    // TV system (rarely used)
	Flags10    uint8    // TV system, PRG-RAM presence (unofficial)
	Padding    [5]uint8 // Unused padding (should be zero)
}

// Typed load errors, so callers can distinguish "not a ROM" from "a ROM this
// module doesn't support yet" without parsing error strings.
var (
	ErrInvalidHeader       = errors.New("cartridge: invalid iNES header")
	ErrInvalidRomSize      = errors.New("cartridge: PRG ROM size declared in header is zero")
	ErrTrainerNotSupported = errors.New("cartridge: 512-byte trainer present, not supported")
)

// UnsupportedMapperError reports an iNES mapper number this module has no
// implementation for.
type UnsupportedMapperError = mapper.UnsupportedMapperError

// LoadFromReader loads a cartridge from an iNES file.
func LoadFromReader(reader io.Reader) (*Cartridge, error) {
	cart := &Cartridge{}

	if err := cart.readHeader(reader); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(cart.Header.Magic[:]) != "NES\x1A" {
		return nil, ErrInvalidHeader
	}

	if cart.Header.PRGROMSize == 0 {
		return nil, ErrInvalidRomSize
	}

	if cart.Header.Flags6&0x04 != 0 {
		return nil, ErrTrainerNotSupported
	}

	prgSize := int(cart.Header.PRGROMSize) * 16384
	cart.PRGROM = make([]uint8, prgSize)
	if _, err := io.ReadFull(reader, cart.PRGROM); err != nil {
		return nil, fmt.Errorf("failed to read PRG ROM: %w", err)
	}

	chrSize := int(cart.Header.CHRROMSize) * 8192
	if chrSize > 0 {
		cart.CHRROM = make([]uint8, chrSize)
		if _, err := io.ReadFull(reader, cart.CHRROM); err != nil {
			return nil, fmt.Errorf("failed to read CHR ROM: %w", err)
		}
	} else {
		// No CHR ROM declared: the board uses CHR RAM. 8 KiB covers the
		// overwhelming majority of boards; NES 2.0 headers that declare a
		// larger CHR RAM size via byte 11 are not modeled here (the
		// distilled format this module targets is iNES 1.0).
		cart.CHRRAM = make([]uint8, 8192)
	}

	// PRG RAM size: NES 2.0 byte 10 (Flags10 in this struct, reused from the
	// unofficial iNES extension) encodes it as a shift count in its low
	// nibble; it is used only when flags 7 carry the NES 2.0 marker and the
	// nibble is non-zero. Absent that, battery-backed boards default to
	// 8 KiB, the common SRAM size, rather than a single hardcoded capacity.
	cart.Battery = cart.Header.Flags6&0x02 != 0
	if cart.Battery {
		prgRAMSize := 8192
		if shift := cart.Header.Flags10 & 0x0F; cart.Header.Flags7&0x0C == 0x08 && shift != 0 {
			prgRAMSize = 64 << shift
		}
		cart.PRGRAM = make([]uint8, prgRAMSize)
	}

	mapperNumber := (cart.Header.Flags6 >> 4) | (cart.Header.Flags7 & 0xF0)

	mapperData := &mapper.CartridgeData{
		PRGROM:    cart.PRGROM,
		CHRROM:    cart.CHRROM,
		PRGRAM:    cart.PRGRAM,
		CHRRAM:    cart.CHRRAM,
		Mirroring: headerMirroring(cart.Header.Flags6),
		Battery:   cart.Battery,
	}

	var err error
	cart.Mapper, err = mapper.NewMapper(mapperNumber, mapperData)
	if err != nil {
		return nil, err
	}

	return cart, nil
}

func headerMirroring(flags6 uint8) mapper.Mirroring {
	switch {
	case flags6&0x08 != 0:
		return mapper.MirroringFourScreen
	case flags6&0x01 != 0:
		return mapper.MirroringVertical
	default:
		return mapper.MirroringHorizontal
	}
}

// readHeader reads the iNES header
func (c *Cartridge) readHeader(reader io.Reader) error {
	headerBytes := make([]uint8, 16)
	_, err := io.ReadFull(reader, headerBytes)
	if err != nil {
		return err
	}

	copy(c.Header.Magic[:], headerBytes[0:4])
	c.Header.PRGROMSize = headerBytes[4]
	c.Header.CHRROMSize = headerBytes[5]
	c.Header.Flags6 = headerBytes[6]
	c.Header.Flags7 = headerBytes[7]
	c.Header.Flags8 = headerBytes[8]
	c.Header.Flags9 = headerBytes[9]
	c.Header.Flags10 = headerBytes[10]
	copy(c.Header.Padding[:], headerBytes[11:16])

	return nil
}

// ReadPRG reads from PRG space
func (c *Cartridge) ReadPRG(addr uint16) uint8 {
	if c.Mapper != nil {
		return c.Mapper.ReadPRG(addr)
	}
	return 0
}

// WritePRG writes to PRG space
func (c *Cartridge) WritePRG(addr uint16, value uint8) {
	if c.Mapper != nil {
		c.Mapper.WritePRG(addr, value)
	}
}

// ReadCHR reads from CHR space
func (c *Cartridge) ReadCHR(addr uint16) uint8 {
	if c.Mapper != nil {
		return c.Mapper.ReadCHR(addr)
	}
	return 0
}

// WriteCHR writes to CHR space
func (c *Cartridge) WriteCHR(addr uint16, value uint8) {
	if c.Mapper != nil {
		c.Mapper.WriteCHR(addr, value)
	}
}

// NotifyScanline forwards the once-per-scanline tick to the mapper.
func (c *Cartridge) NotifyScanline() {
	if c.Mapper != nil {
		c.Mapper.NotifyScanline()
	}
}

// IRQAsserted returns whether the mapper wants the CPU's IRQ line held low.
func (c *Cartridge) IRQAsserted() bool {
	if c.Mapper != nil {
		return c.Mapper.IRQAsserted()
	}
	return false
}

// AcknowledgeIRQ clears the mapper's pending IRQ.
func (c *Cartridge) AcknowledgeIRQ() {
	if c.Mapper != nil {
		c.Mapper.AcknowledgeIRQ()
	}
}

// Reset restores the mapper to its power-up register state.
func (c *Cartridge) Reset() {
	if c.Mapper != nil {
		c.Mapper.Reset()
	}
}

// Mirroring returns the nametable mirroring currently in effect, asking the
// mapper directly rather than falling back to a static header value — MMC1
// and MMC3 both switch it at runtime, and the mapper is the only place that
// tracks the current setting.
func (c *Cartridge) Mirroring() mapper.Mirroring {
	if c.Mapper != nil {
		return c.Mapper.Mirroring()
	}
	return mapper.MirroringHorizontal
}

// LoadPRGRAM restores battery-backed save data saved by SavePRGRAM.
func (c *Cartridge) LoadPRGRAM(data []uint8) {
	if c.Mapper != nil {
		c.Mapper.LoadPRGRAM(data)
	}
}

// SavePRGRAM returns a snapshot of PRG RAM for battery-backed persistence,
// or nil if the cartridge has none.
func (c *Cartridge) SavePRGRAM() []uint8 {
	if !c.Battery || c.Mapper == nil {
		return nil
	}
	return c.Mapper.SavePRGRAM()
}
