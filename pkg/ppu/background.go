package ppu

// background holds the shift-register pipeline that produces one background
// pixel per dot. The pattern shifters are 16 bits wide so the upcoming
// tile's bits can be preloaded into the low byte while the current tile's
// bits are still shifting out of the high byte; the attribute shifters only
// ever need 8 bits of lookahead since they hold the same 2-bit palette
// selection for an entire tile.
type background struct {
	shifterPatternLo uint16
	shifterPatternHi uint16
	shifterAttrLo    uint16
	shifterAttrHi    uint16

	nextTileID   uint8
	nextTileAttr uint8
	nextPatternLo uint8
	nextPatternHi uint8
}

func (bg *background) reset() {
	*bg = background{}
}

// updateShifters advances the pipeline by one dot.
func (bg *background) updateShifters() {
	bg.shifterPatternLo <<= 1
	bg.shifterPatternHi <<= 1
	bg.shifterAttrLo <<= 1
	bg.shifterAttrHi <<= 1
}

// loadShifters deposits the tile fetched over the preceding 8 dots into the
// low byte of each shifter, to be shifted into view over the next 8 dots.
func (bg *background) loadShifters() {
	bg.shifterPatternLo = (bg.shifterPatternLo & 0xFF00) | uint16(bg.nextPatternLo)
	bg.shifterPatternHi = (bg.shifterPatternHi & 0xFF00) | uint16(bg.nextPatternHi)

	var attrLo, attrHi uint16
	if bg.nextTileAttr&0x01 != 0 {
		attrLo = 0xFF
	}
	if bg.nextTileAttr&0x02 != 0 {
		attrHi = 0xFF
	}
	bg.shifterAttrLo = (bg.shifterAttrLo & 0xFF00) | attrLo
	bg.shifterAttrHi = (bg.shifterAttrHi & 0xFF00) | attrHi
}

// getPixel returns the (palette, colorIndex) pair for fine-X offset x
// (0-7), read off the top of the 16-bit shifters.
func (bg *background) getPixel(x uint8) (palette uint8, colorIndex uint8) {
	mux := uint16(0x8000) >> x

	var lo, hi uint8
	if bg.shifterPatternLo&mux != 0 {
		lo = 1
	}
	if bg.shifterPatternHi&mux != 0 {
		hi = 1
	}
	colorIndex = (hi << 1) | lo

	var paletteLo, paletteHi uint8
	if bg.shifterAttrLo&mux != 0 {
		paletteLo = 1
	}
	if bg.shifterAttrHi&mux != 0 {
		paletteHi = 1
	}
	palette = (paletteHi << 1) | paletteLo
	return palette, colorIndex
}

// fetchBackgroundByte runs the two-dots-per-byte nametable/attribute/pattern
// fetch sequence described for dots 1-256 and 321-336: a nametable byte at
// %8==1, an attribute byte at %8==3, the pattern table low byte at %8==5,
// the high byte at %8==7, and the fetched tile is loaded into the shifters
// at the %8==0 boundary that starts the next tile.
func (p *PPU) fetchBackgroundByte(cycle int) {
	switch cycle % 8 {
	case 1:
		addr := uint16(0x2000) | (p.v & 0x0FFF)
		p.bg.nextTileID = p.readVRAM(addr)
	case 3:
		addr := uint16(0x23C0) | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
		attr := p.readVRAM(addr)
		shift := ((p.v >> 4) & 0x04) | (p.v & 0x02)
		p.bg.nextTileAttr = (attr >> shift) & 0x03
	case 5:
		base := uint16(0)
		if p.PPUCTRL&PPUCTRLBGTable != 0 {
			base = 0x1000
		}
		addr := base | (uint16(p.bg.nextTileID) * 16) | ((p.v >> 12) & 0x07)
		p.bg.nextPatternLo = p.readVRAM(addr)
	case 7:
		base := uint16(0)
		if p.PPUCTRL&PPUCTRLBGTable != 0 {
			base = 0x1000
		}
		addr := base | (uint16(p.bg.nextTileID) * 16) | ((p.v >> 12) & 0x07) | 0x08
		p.bg.nextPatternHi = p.readVRAM(addr)
	case 0:
		p.bg.loadShifters()
		p.incrementCoarseX()
	}
}

// incrementCoarseX advances v's coarse-X component, wrapping into the
// horizontal nametable bit at the tile-row boundary.
func (p *PPU) incrementCoarseX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

// incrementY advances v's fine-Y and, on overflow, coarse-Y, wrapping into
// the vertical nametable bit at row 29 (the last row of the 30-row
// nametable) rather than at the 5-bit field's natural 31 wraparound.
func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	coarseY := (p.v & 0x03E0) >> 5
	switch coarseY {
	case 29:
		coarseY = 0
		p.v ^= 0x0800
	case 31:
		coarseY = 0
	default:
		coarseY++
	}
	p.v = (p.v &^ 0x03E0) | (coarseY << 5)
}
