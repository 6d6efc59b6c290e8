package ppu

import (
	"github.com/ashgrovelabs/nescore/pkg/bus"
	"github.com/ashgrovelabs/nescore/pkg/cartridge/mapper"
	"github.com/ashgrovelabs/nescore/pkg/logger"
)

// PPU represents the Picture Processing Unit
type PPU struct {
	// Registers
	PPUCTRL   uint8 // $2000
	PPUMASK   uint8 // $2001
	PPUSTATUS uint8 // $2002
	OAMADDR   uint8 // $2003
	OAMDATA   uint8 // $2004
	PPUSCROLL uint8 // $2005
	PPUADDR   uint8 // $2006
	PPUDATA   uint8 // $2007

	// Internal registers
	v uint16 // VRAM address
	t uint16 // Temporary VRAM address
	x uint8  // Fine X scroll
	w uint8  // Write toggle

	// Nametable RAM: 2 KiB of physical storage behind the PPU's 4 KiB of
	// logical nametable address space, mirrored per Cartridge.Mirroring().
	// CHR data and palette RAM live elsewhere (cartridge mapper and
	// PaletteManager respectively), so this is all the PPU needs to own.
	VRAM [0x800]uint8

	// OAM (Object Attribute Memory)
	OAM [256]uint8

	// Frame buffer (256x240)
	FrameBuffer [256 * 240]uint32

	// Timing
	Cycle         int
	Scanline      int
	Frame         uint64
	FrameComplete bool

	// NMI
	NMIRequested bool

	// evenFrame toggles every completed frame; on odd frames, with
	// rendering enabled, the pre-render scanline's last dot is skipped.
	evenFrame bool

	// vblankSuppressed records that $2002 was read in the three-dot window
	// (dots 0-2 of scanline 241) around the PPU setting VBlank at dot 1; a
	// read at dot 0 thereby prevents VBlank/NMI from latching at all for
	// the rest of the frame.
	vblankSuppressed bool

	// Rendering
	PaletteManager *PaletteManager
	bg             background
	sprites        sprites

	// PPU read buffer for $2007 reads
	readBuffer uint8

	// Memory interface
	Memory *bus.Bus

	// Cartridge is the mapper-shaped view of CHR storage and mirroring; it
	// matches mapper.Mapper's CHR/mirroring surface so any cartridge can be
	// attached without the PPU needing its own adapter type.
	Cartridge CartridgePort
}

// CartridgePort is the subset of a cartridge the PPU drives CHR accesses
// and mirroring queries through.
type CartridgePort interface {
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, value uint8)
	NotifyScanline()
	Mirroring() mapper.Mirroring
}

// PPUCTRL flags
const (
	PPUCTRLNameTable   = 0x03 // Base nametable address
	PPUCTRLIncrement   = 0x04 // VRAM address increment
	PPUCTRLSpriteTable = 0x08 // Sprite pattern table address
	PPUCTRLBGTable     = 0x10 // Background pattern table address
	PPUCTRLSpriteSize  = 0x20 // Sprite size
	PPUCTRLMasterSlave = 0x40 // PPU master/slave select
	PPUCTRLNMIEnable   = 0x80 // Generate NMI at VBlank
)

// PPUMASK flags
const (
	PPUMASKGreyscale      = 0x01 // Greyscale
	PPUMASKBGLeft         = 0x02 // Show background in leftmost 8 pixels
	PPUMASKSpriteLeft     = 0x04 // Show sprites in leftmost 8 pixels
	PPUMASKBGShow         = 0x08 // Show background
	PPUMASKSpriteShow     = 0x10 // Show sprites
	PPUMASKRedEmphasize   = 0x20 // Emphasize red
	PPUMASKGreenEmphasize = 0x40 // Emphasize green
	PPUMASKBlueEmphasize  = 0x80 // Emphasize blue
)

// PPUSTATUS flags
const (
	PPUSTATUSOverflow   = 0x20 // Sprite overflow
	PPUSTATUSSprite0Hit = 0x40 // Sprite 0 hit
	PPUSTATUSVBlank     = 0x80 // VBlank flag
)

// New creates a new PPU instance
func New(mem *bus.Bus) *PPU {
	return &PPU{
		Memory:         mem,
		Cycle:          0,
		Scanline:       0,
		PaletteManager: NewPaletteManager(),
	}
}

// Reset resets the PPU to initial state
func (p *PPU) Reset() {
	p.PPUCTRL = 0
	p.PPUMASK = 0
	p.PPUSTATUS = 0
	p.OAMADDR = 0
	p.v = 0
	p.t = 0
	p.x = 0
	p.w = 0
	p.Cycle = 0
	p.Scanline = 0
	p.FrameComplete = false
	p.evenFrame = true
	p.vblankSuppressed = false
	p.bg.reset()
	p.sprites.reset()
}

// SetCartridge sets the cartridge reference
func (p *PPU) SetCartridge(cart CartridgePort) {
	p.Cartridge = cart
}

// Step executes one PPU dot.
func (p *PPU) Step() {
	// Update emphasis for palette manager
	p.PaletteManager.SetEmphasis(p.PPUMASK & 0xE0)

	renderingEnabled := p.PPUMASK&(PPUMASKBGShow|PPUMASKSpriteShow) != 0
	prerenderOrVisible := p.Scanline == -1 || (p.Scanline >= 0 && p.Scanline < 240)

	if renderingEnabled && prerenderOrVisible {
		if (p.Cycle >= 1 && p.Cycle <= 256) || (p.Cycle >= 321 && p.Cycle <= 336) {
			p.bg.updateShifters()
			p.fetchBackgroundByte(p.Cycle)
		}

		if p.Cycle == 256 {
			p.incrementY()
		}
		if p.Cycle == 257 {
			p.v = (p.v & 0xFBE0) | (p.t & 0x041F)
		}
		if p.Scanline == -1 && p.Cycle >= 280 && p.Cycle <= 304 {
			p.v = (p.v & 0x841F) | (p.t & 0x7BE0)
		}

		if p.Cycle == 257 {
			p.evaluateAndFetch(p.Scanline + 1)
			if p.sprites.overflow {
				p.PPUSTATUS |= PPUSTATUSOverflow
			}
		}
	}

	if p.Scanline >= 0 && p.Scanline < 240 && p.Cycle >= 1 && p.Cycle <= 256 {
		p.renderPixel(p.Cycle-1, p.Scanline)
	}

	// Mappers that derive IRQs from rendering activity (MMC3) advance their
	// counter once per visible scanline, at the conventional dot-260
	// transition from the background-fetch region into the sprite-fetch
	// region, regardless of whether rendering is actually enabled — this
	// lets games arm the IRQ ahead of turning rendering on.
	if p.Cartridge != nil && p.Scanline >= 0 && p.Scanline < 240 && p.Cycle == 260 {
		p.Cartridge.NotifyScanline()
	}

	// NTSC jitter fix: the pre-render scanline's last dot is skipped on
	// odd frames while rendering is enabled, shortening that scanline to
	// 340 dots instead of 341.
	if p.Scanline == -1 && p.Cycle == 339 && renderingEnabled && !p.evenFrame {
		p.Cycle = 340
	}

	p.Cycle++
	if p.Cycle >= 341 {
		p.Cycle = 0
		p.Scanline++

		if p.Scanline >= 261 {
			p.Scanline = -1 // Pre-render scanline
			p.FrameComplete = true
			p.Frame++
			p.evenFrame = !p.evenFrame

			p.PPUSTATUS &^= PPUSTATUSVBlank
			p.PPUSTATUS &^= PPUSTATUSSprite0Hit
			p.PPUSTATUS &^= PPUSTATUSOverflow
			p.vblankSuppressed = false
		}
	}

	// VBlank is set as the PPU reaches dot 1 of scanline 241
	if p.Scanline == 241 && p.Cycle == 1 && !p.vblankSuppressed {
		p.PPUSTATUS |= PPUSTATUSVBlank
		if p.PPUCTRL&PPUCTRLNMIEnable != 0 {
			p.NMIRequested = true
		}
	}
}

// renderPixel composes the background and sprite pipelines into the
// framebuffer pixel at (x, y), per the priority table: background wins
// unless a sprite pixel is opaque and either the background pixel is
// transparent or the sprite has front priority.
func (p *PPU) renderPixel(x, y int) {
	index := y*256 + x
	if index < 0 || index >= len(p.FrameBuffer) {
		return
	}

	bgShow := p.PPUMASK&PPUMASKBGShow != 0
	spriteShow := p.PPUMASK&PPUMASKSpriteShow != 0
	if !bgShow && !spriteShow {
		p.FrameBuffer[index] = p.PaletteManager.GetBackgroundColor(0, 0)
		return
	}

	bgPalette, bgPixel := p.bg.getPixel(p.x)
	if !bgShow {
		bgPixel = 0
	}

	spritePalette, spritePixel, behindBG, isSpriteZero := p.sprites.getPixel(x)
	if !spriteShow {
		spritePixel = 0
	}

	bgClipped := x < 8 && p.PPUMASK&PPUMASKBGLeft == 0
	spriteClipped := x < 8 && p.PPUMASK&PPUMASKSpriteLeft == 0

	effectiveBG := bgPixel
	if bgClipped {
		effectiveBG = 0
	}
	effectiveSprite := spritePixel
	if spriteClipped {
		effectiveSprite = 0
	}

	var color uint32
	switch {
	case effectiveBG == 0 && effectiveSprite == 0:
		color = p.PaletteManager.GetBackgroundColor(0, 0)
	case effectiveBG == 0:
		color = p.PaletteManager.GetSpriteColor(spritePalette, effectiveSprite)
	case effectiveSprite == 0:
		color = p.PaletteManager.GetBackgroundColor(bgPalette, effectiveBG)
	case !behindBG:
		color = p.PaletteManager.GetSpriteColor(spritePalette, effectiveSprite)
	default:
		color = p.PaletteManager.GetBackgroundColor(bgPalette, effectiveBG)
	}
	p.FrameBuffer[index] = color

	if isSpriteZero && bgPixel != 0 && spritePixel != 0 && x != 255 && bgShow && spriteShow {
		if !bgClipped && !spriteClipped {
			p.PPUSTATUS |= PPUSTATUSSprite0Hit
		}
	}
}

// ReadRegister reads from PPU register
func (p *PPU) ReadRegister(addr uint16) uint8 {
	switch addr {
	case 0x2002: // PPUSTATUS
		value := p.PPUSTATUS
		// VBlank suppression quirk: reading $2002 in the 3-dot window
		// around the PPU setting VBlank at scanline 241 dot 1 hides the
		// flag from this read; a read at dot 0, before the flag is set,
		// also prevents it (and the NMI it would have scheduled) from
		// latching at all for the rest of the frame.
		if p.Scanline == 241 && p.Cycle >= 0 && p.Cycle <= 2 {
			p.vblankSuppressed = true
			value &^= PPUSTATUSVBlank
		}
		logger.LogPPU("Read PPUSTATUS: $%02X", value)
		p.PPUSTATUS &^= PPUSTATUSVBlank // Clear VBlank flag
		p.w = 0                         // Reset write toggle
		return value
	case 0x2004: // OAMDATA
		renderingEnabled := p.PPUMASK&(PPUMASKBGShow|PPUMASKSpriteShow) != 0
		if renderingEnabled && (p.Scanline == -1 || (p.Scanline >= 0 && p.Scanline < 240)) {
			return 0xFF
		}
		return p.OAM[p.OAMADDR]
	case 0x2007: // PPUDATA
		var value uint8

		if p.v >= 0x3F00 {
			// Palette reads are immediate (no buffering)
			value = p.readVRAM(p.v)
			// Update buffer with underlying nametable data
			p.readBuffer = p.readVRAM(p.v - 0x1000)
		} else {
			// Non-palette reads use buffered system
			value = p.readBuffer
			p.readBuffer = p.readVRAM(p.v)
		}

		// Debug: Log $2007 reads for CHR area
		if p.v < 0x2000 && p.v <= 0x000F {
			logger.LogPPU("$2007 Read CHR: vramAddr=$%04X, value=$%02X, buffer=$%02X", p.v, value, p.readBuffer)
		}

		if p.PPUCTRL&PPUCTRLIncrement != 0 {
			p.v += 32
		} else {
			p.v += 1
		}
		return value
	}
	return 0
}

// WriteRegister writes to PPU register
func (p *PPU) WriteRegister(addr uint16, value uint8) {
	switch addr {
	case 0x2000: // PPUCTRL
		oldValue := p.PPUCTRL
		p.PPUCTRL = value
		p.t = (p.t & 0xF3FF) | ((uint16(value) & 0x03) << 10)
		// NMI-output rising edge while VBlank is already set schedules an
		// NMI immediately rather than waiting for the next VBlank.
		if oldValue&PPUCTRLNMIEnable == 0 && value&PPUCTRLNMIEnable != 0 && p.PPUSTATUS&PPUSTATUSVBlank != 0 {
			p.NMIRequested = true
		}
		logger.LogPPU("Write PPUCTRL: $%02X -> $%02X (NMI=%v, BG_table=$%04X, Sprite_table=$%04X)",
			oldValue, value, (value&PPUCTRLNMIEnable) != 0,
			uint16(0x1000)*uint16((value&PPUCTRLBGTable)>>4),
			uint16(0x1000)*uint16((value&PPUCTRLSpriteTable)>>3))
	case 0x2001: // PPUMASK
		oldValue := p.PPUMASK
		logger.LogPPU("Write PPUMASK: $%02X -> $%02X (BGShow=%v, SpriteShow=%v, Greyscale=%v)",
			oldValue, value, (value&PPUMASKBGShow) != 0, (value&PPUMASKSpriteShow) != 0, (value&PPUMASKGreyscale) != 0)
		p.PPUMASK = value
	case 0x2003: // OAMADDR
		p.OAMADDR = value
	case 0x2004: // OAMDATA
		p.OAM[p.OAMADDR] = value
		p.OAMADDR++
	case 0x2005: // PPUSCROLL
		logger.LogPPU("Write PPUSCROLL: value=$%02X, w=%d, scanline=%d", value, p.w, p.Scanline)
		if p.w == 0 {
			p.t = (p.t & 0xFFE0) | (uint16(value) >> 3)
			p.x = value & 0x07
			p.w = 1
			logger.LogPPU("PPUSCROLL X: value=$%02X, x=%d, t=$%04X, scanline=%d", value, p.x, p.t, p.Scanline)
		} else {
			p.t = (p.t & 0x8FFF) | ((uint16(value) & 0x07) << 12)
			p.t = (p.t & 0xFC1F) | ((uint16(value) & 0xF8) << 2)
			p.w = 0
			logger.LogPPU("PPUSCROLL Y: value=$%02X, t=$%04X, scanline=%d", value, p.t, p.Scanline)
		}
	case 0x2006: // PPUADDR
		logger.LogPPU("PPU Write $2006: value=$%02X, w=%d", value, p.w)
		if p.w == 0 {
			p.t = (p.t & 0x80FF) | ((uint16(value) & 0x3F) << 8)
			p.w = 1
			logger.LogPPU("Write PPUADDR (high): $%02X, t=$%04X", value, p.t)
			// Debug: Check if will point to CHR area
			if (p.t & 0xFF00) < 0x2000 {
				logger.LogPPU("PPUADDR high set for CHR area: $%04X", p.t)
			}
		} else {
			p.t = (p.t & 0xFF00) | uint16(value)
			p.v = p.t
			p.w = 0
			logger.LogPPU("Write PPUADDR (low): $%02X, v=$%04X", value, p.v)
			// Debug: Check if pointing to CHR area
			if p.v < 0x2000 {
				logger.LogPPU("PPUADDR set to CHR area: $%04X", p.v)
			}
		}
	case 0x2007: // PPUDATA
		logger.LogPPU("PPU Write $2007: vramAddr=$%04X, value=$%02X", p.v, value)
		// Debug: Enhanced logging for CHR area writes
		if p.v < 0x2000 && p.v <= 0x000F {
			logger.LogPPU("$2007 Write CHR: vramAddr=$%04X, value=$%02X", p.v, value)
		}
		p.writeVRAM(p.v, value)
		if p.PPUCTRL&PPUCTRLIncrement != 0 {
			p.v += 32
		} else {
			p.v += 1
		}
	}
}

// readVRAM reads from VRAM
func (p *PPU) readVRAM(addr uint16) uint8 {
	addr = addr % 0x4000

	if addr < 0x2000 {
		// Pattern table
		if p.Cartridge != nil {
			return p.Cartridge.ReadCHR(addr)
		}
		return 0
	} else if addr < 0x3F00 {
		// Nametable with mirroring
		return p.readNameTable(addr)
	} else if addr < 0x4000 {
		// Palette
		return p.PaletteManager.ReadPalette(uint8(addr & 0x1F))
	}

	return 0
}

// writeVRAM writes to VRAM
func (p *PPU) writeVRAM(addr uint16, value uint8) {
	addr = addr % 0x4000

	if addr < 0x2000 {
		// Pattern table (CHR)
		if p.Cartridge != nil {
			p.Cartridge.WriteCHR(addr, value)
		}
	} else if addr < 0x3F00 {
		// Nametable with mirroring
		p.writeNameTable(addr, value)
	} else if addr < 0x4000 {
		// Palette
		paletteAddr := uint8(addr & 0x1F)
		p.PaletteManager.WritePalette(paletteAddr, value)
	}
}

// GetFramebuffer returns the current framebuffer as RGBA bytes
func (p *PPU) GetFramebuffer() []uint8 {
	// Convert 32-bit framebuffer to RGBA bytes
	rgba := make([]uint8, 256*240*4)

	for i, pixel := range p.FrameBuffer {
		// Extract RGB components from 32-bit pixel (0xAARRGGBB format)
		r := uint8((pixel >> 16) & 0xFF) // Extract R correctly
		g := uint8((pixel >> 8) & 0xFF)  // Extract G correctly
		b := uint8(pixel & 0xFF)         // Extract B correctly
		a := uint8((pixel >> 24) & 0xFF) // Use alpha from pixel

		// Use RGBA order to match test pattern format
		rgba[i*4+0] = r
		rgba[i*4+1] = g
		rgba[i*4+2] = b
		rgba[i*4+3] = a

		// Debug logging for first few pixels (disabled for performance)
		// if i < 8 {
		//	logger.LogPPU("Framebuffer[%d]: pixel=%08X -> RGBA(%02X,%02X,%02X,%02X)",
		//		i, pixel, r, g, b, a)
		// }
	}

	return rgba
}

// readNameTable reads from nametable with mirroring
func (p *PPU) readNameTable(addr uint16) uint8 {
	// Mirror the address based on cartridge mirroring mode
	mirroredAddr := p.mirrorNameTableAddress(addr)
	return p.VRAM[mirroredAddr]
}

// writeNameTable writes to nametable with mirroring
func (p *PPU) writeNameTable(addr uint16, value uint8) {
	// Mirror the address based on cartridge mirroring mode
	mirroredAddr := p.mirrorNameTableAddress(addr)
	p.VRAM[mirroredAddr] = value
}

// mirrorNameTableAddress applies nametable mirroring
func (p *PPU) mirrorNameTableAddress(addr uint16) uint16 {
	// Nametable addresses are $2000-$2FFF (4KB range)
	// Remove the base offset to get 0-$FFF range
	offset := addr - 0x2000

	mirroring := mapper.MirroringHorizontal
	if p.Cartridge != nil {
		mirroring = p.Cartridge.Mirroring()
	}

	switch mirroring {
	case mapper.MirroringVertical:
		return p.applyVerticalMirroring(offset)
	case mapper.MirroringSingleScreenA:
		return offset & 0x3FF
	case mapper.MirroringSingleScreenB:
		return (offset & 0x3FF) + 0x400
	case mapper.MirroringFourScreen:
		// Four-screen carts supply their own extra 2 KiB of nametable RAM on
		// the cartridge; this module's fixed 2 KiB VRAM can't back that, so
		// fall back to horizontal mirroring rather than indexing out of range.
		return p.applyHorizontalMirroring(offset)
	default:
		return p.applyHorizontalMirroring(offset)
	}
}

// applyHorizontalMirroring applies horizontal mirroring
func (p *PPU) applyHorizontalMirroring(offset uint16) uint16 {
	// Horizontal mirroring: $2000=$2400 (nametable A), $2800=$2C00 (nametable B).
	return ((offset >> 1) & 0x400) | (offset & 0x3FF)
}

// applyVerticalMirroring applies vertical mirroring
func (p *PPU) applyVerticalMirroring(offset uint16) uint16 {
	// Vertical mirroring: $2000=$2800, $2400=$2C00
	return offset & 0x7FF // Map $2000-$2FFF to $2000-$27FF
}

