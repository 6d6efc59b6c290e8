package cpu

// opcodeEntry describes one of the 256 possible opcode bytes: its
// addressing mode, base cycle cost, and the handler that executes it.
// Handlers return the number of cycles to add on top of the base cost
// (page-cross penalties on reads, taken/crossed branch penalties).
type opcodeEntry struct {
	name   string
	mode   AddressingMode
	cycles int
	exec   func(c *CPU, mode AddressingMode) int
}

// opcodeTable is the full 256-entry opcode dispatch table: an
// array-of-function-pointers indexed by opcode byte, covering every
// official instruction and the commonly-tested illegal opcodes.
var opcodeTable = [256]opcodeEntry{
	0x00: {"BRK", AddrImplied, 7, execBRK},
	0x01: {"ORA", AddrIndexedIndirect, 6, execORA},
	0x02: {"JAM", AddrImplied, 2, execJAM},
	0x03: {"SLO", AddrIndexedIndirect, 8, execSLO},
	0x04: {"NOP", AddrZeroPage, 3, execNOPRead},
	0x05: {"ORA", AddrZeroPage, 3, execORA},
	0x06: {"ASL", AddrZeroPage, 5, execASL},
	0x07: {"SLO", AddrZeroPage, 5, execSLO},
	0x08: {"PHP", AddrImplied, 3, execPHP},
	0x09: {"ORA", AddrImmediate, 2, execORA},
	0x0A: {"ASL", AddrAccumulator, 2, execASL},
	0x0B: {"ANC", AddrImmediate, 2, execANC},
	0x0C: {"NOP", AddrAbsolute, 4, execNOPRead},
	0x0D: {"ORA", AddrAbsolute, 4, execORA},
	0x0E: {"ASL", AddrAbsolute, 6, execASL},
	0x0F: {"SLO", AddrAbsolute, 6, execSLO},

	0x10: {"BPL", AddrRelative, 2, execBPL},
	0x11: {"ORA", AddrIndirectIndexed, 5, execORA},
	0x12: {"JAM", AddrImplied, 2, execJAM},
	0x13: {"SLO", AddrIndirectIndexed, 8, execSLO},
	0x14: {"NOP", AddrZeroPageX, 4, execNOPRead},
	0x15: {"ORA", AddrZeroPageX, 4, execORA},
	0x16: {"ASL", AddrZeroPageX, 6, execASL},
	0x17: {"SLO", AddrZeroPageX, 6, execSLO},
	0x18: {"CLC", AddrImplied, 2, execCLC},
	0x19: {"ORA", AddrAbsoluteY, 4, execORA},
	0x1A: {"NOP", AddrImplied, 2, execNOP},
	0x1B: {"SLO", AddrAbsoluteY, 7, execSLO},
	0x1C: {"NOP", AddrAbsoluteX, 4, execNOPRead},
	0x1D: {"ORA", AddrAbsoluteX, 4, execORA},
	0x1E: {"ASL", AddrAbsoluteX, 7, execASL},
	0x1F: {"SLO", AddrAbsoluteX, 7, execSLO},

	0x20: {"JSR", AddrAbsolute, 6, execJSR},
	0x21: {"AND", AddrIndexedIndirect, 6, execAND},
	0x22: {"JAM", AddrImplied, 2, execJAM},
	0x23: {"RLA", AddrIndexedIndirect, 8, execRLA},
	0x24: {"BIT", AddrZeroPage, 3, execBIT},
	0x25: {"AND", AddrZeroPage, 3, execAND},
	0x26: {"ROL", AddrZeroPage, 5, execROL},
	0x27: {"RLA", AddrZeroPage, 5, execRLA},
	0x28: {"PLP", AddrImplied, 4, execPLP},
	0x29: {"AND", AddrImmediate, 2, execAND},
	0x2A: {"ROL", AddrAccumulator, 2, execROL},
	0x2B: {"ANC", AddrImmediate, 2, execANC},
	0x2C: {"BIT", AddrAbsolute, 4, execBIT},
	0x2D: {"AND", AddrAbsolute, 4, execAND},
	0x2E: {"ROL", AddrAbsolute, 6, execROL},
	0x2F: {"RLA", AddrAbsolute, 6, execRLA},

	0x30: {"BMI", AddrRelative, 2, execBMI},
	0x31: {"AND", AddrIndirectIndexed, 5, execAND},
	0x32: {"JAM", AddrImplied, 2, execJAM},
	0x33: {"RLA", AddrIndirectIndexed, 8, execRLA},
	0x34: {"NOP", AddrZeroPageX, 4, execNOPRead},
	0x35: {"AND", AddrZeroPageX, 4, execAND},
	0x36: {"ROL", AddrZeroPageX, 6, execROL},
	0x37: {"RLA", AddrZeroPageX, 6, execRLA},
	0x38: {"SEC", AddrImplied, 2, execSEC},
	0x39: {"AND", AddrAbsoluteY, 4, execAND},
	0x3A: {"NOP", AddrImplied, 2, execNOP},
	0x3B: {"RLA", AddrAbsoluteY, 7, execRLA},
	0x3C: {"NOP", AddrAbsoluteX, 4, execNOPRead},
	0x3D: {"AND", AddrAbsoluteX, 4, execAND},
	0x3E: {"ROL", AddrAbsoluteX, 7, execROL},
	0x3F: {"RLA", AddrAbsoluteX, 7, execRLA},

	0x40: {"RTI", AddrImplied, 6, execRTI},
	0x41: {"EOR", AddrIndexedIndirect, 6, execEOR},
	0x42: {"JAM", AddrImplied, 2, execJAM},
	0x43: {"SRE", AddrIndexedIndirect, 8, execSRE},
	0x44: {"NOP", AddrZeroPage, 3, execNOPRead},
	0x45: {"EOR", AddrZeroPage, 3, execEOR},
	0x46: {"LSR", AddrZeroPage, 5, execLSR},
	0x47: {"SRE", AddrZeroPage, 5, execSRE},
	0x48: {"PHA", AddrImplied, 3, execPHA},
	0x49: {"EOR", AddrImmediate, 2, execEOR},
	0x4A: {"LSR", AddrAccumulator, 2, execLSR},
	0x4B: {"ALR", AddrImmediate, 2, execALR},
	0x4C: {"JMP", AddrAbsolute, 3, execJMP},
	0x4D: {"EOR", AddrAbsolute, 4, execEOR},
	0x4E: {"LSR", AddrAbsolute, 6, execLSR},
	0x4F: {"SRE", AddrAbsolute, 6, execSRE},

	0x50: {"BVC", AddrRelative, 2, execBVC},
	0x51: {"EOR", AddrIndirectIndexed, 5, execEOR},
	0x52: {"JAM", AddrImplied, 2, execJAM},
	0x53: {"SRE", AddrIndirectIndexed, 8, execSRE},
	0x54: {"NOP", AddrZeroPageX, 4, execNOPRead},
	0x55: {"EOR", AddrZeroPageX, 4, execEOR},
	0x56: {"LSR", AddrZeroPageX, 6, execLSR},
	0x57: {"SRE", AddrZeroPageX, 6, execSRE},
	0x58: {"CLI", AddrImplied, 2, execCLI},
	0x59: {"EOR", AddrAbsoluteY, 4, execEOR},
	0x5A: {"NOP", AddrImplied, 2, execNOP},
	0x5B: {"SRE", AddrAbsoluteY, 7, execSRE},
	0x5C: {"NOP", AddrAbsoluteX, 4, execNOPRead},
	0x5D: {"EOR", AddrAbsoluteX, 4, execEOR},
	0x5E: {"LSR", AddrAbsoluteX, 7, execLSR},
	0x5F: {"SRE", AddrAbsoluteX, 7, execSRE},

	0x60: {"RTS", AddrImplied, 6, execRTS},
	0x61: {"ADC", AddrIndexedIndirect, 6, execADC},
	0x62: {"JAM", AddrImplied, 2, execJAM},
	0x63: {"RRA", AddrIndexedIndirect, 8, execRRA},
	0x64: {"NOP", AddrZeroPage, 3, execNOPRead},
	0x65: {"ADC", AddrZeroPage, 3, execADC},
	0x66: {"ROR", AddrZeroPage, 5, execROR},
	0x67: {"RRA", AddrZeroPage, 5, execRRA},
	0x68: {"PLA", AddrImplied, 4, execPLA},
	0x69: {"ADC", AddrImmediate, 2, execADC},
	0x6A: {"ROR", AddrAccumulator, 2, execROR},
	0x6B: {"ARR", AddrImmediate, 2, execARR},
	0x6C: {"JMP", AddrIndirect, 5, execJMP},
	0x6D: {"ADC", AddrAbsolute, 4, execADC},
	0x6E: {"ROR", AddrAbsolute, 6, execROR},
	0x6F: {"RRA", AddrAbsolute, 6, execRRA},

	0x70: {"BVS", AddrRelative, 2, execBVS},
	0x71: {"ADC", AddrIndirectIndexed, 5, execADC},
	0x72: {"JAM", AddrImplied, 2, execJAM},
	0x73: {"RRA", AddrIndirectIndexed, 8, execRRA},
	0x74: {"NOP", AddrZeroPageX, 4, execNOPRead},
	0x75: {"ADC", AddrZeroPageX, 4, execADC},
	0x76: {"ROR", AddrZeroPageX, 6, execROR},
	0x77: {"RRA", AddrZeroPageX, 6, execRRA},
	0x78: {"SEI", AddrImplied, 2, execSEI},
	0x79: {"ADC", AddrAbsoluteY, 4, execADC},
	0x7A: {"NOP", AddrImplied, 2, execNOP},
	0x7B: {"RRA", AddrAbsoluteY, 7, execRRA},
	0x7C: {"NOP", AddrAbsoluteX, 4, execNOPRead},
	0x7D: {"ADC", AddrAbsoluteX, 4, execADC},
	0x7E: {"ROR", AddrAbsoluteX, 7, execROR},
	0x7F: {"RRA", AddrAbsoluteX, 7, execRRA},

	0x80: {"NOP", AddrImmediate, 2, execNOPRead},
	0x81: {"STA", AddrIndexedIndirect, 6, execSTA},
	0x82: {"NOP", AddrImmediate, 2, execNOPRead},
	0x83: {"SAX", AddrIndexedIndirect, 6, execSAX},
	0x84: {"STY", AddrZeroPage, 3, execSTY},
	0x85: {"STA", AddrZeroPage, 3, execSTA},
	0x86: {"STX", AddrZeroPage, 3, execSTX},
	0x87: {"SAX", AddrZeroPage, 3, execSAX},
	0x88: {"DEY", AddrImplied, 2, execDEY},
	0x89: {"NOP", AddrImmediate, 2, execNOPRead},
	0x8A: {"TXA", AddrImplied, 2, execTXA},
	0x8B: {"ANE", AddrImmediate, 2, execANE},
	0x8C: {"STY", AddrAbsolute, 4, execSTY},
	0x8D: {"STA", AddrAbsolute, 4, execSTA},
	0x8E: {"STX", AddrAbsolute, 4, execSTX},
	0x8F: {"SAX", AddrAbsolute, 4, execSAX},

	0x90: {"BCC", AddrRelative, 2, execBCC},
	0x91: {"STA", AddrIndirectIndexed, 6, execSTA},
	0x92: {"JAM", AddrImplied, 2, execJAM},
	0x93: {"SHA", AddrIndirectIndexed, 6, execSHA},
	0x94: {"STY", AddrZeroPageX, 4, execSTY},
	0x95: {"STA", AddrZeroPageX, 4, execSTA},
	0x96: {"STX", AddrZeroPageY, 4, execSTX},
	0x97: {"SAX", AddrZeroPageY, 4, execSAX},
	0x98: {"TYA", AddrImplied, 2, execTYA},
	0x99: {"STA", AddrAbsoluteY, 5, execSTA},
	0x9A: {"TXS", AddrImplied, 2, execTXS},
	0x9B: {"TAS", AddrAbsoluteY, 5, execTAS},
	0x9C: {"SHY", AddrAbsoluteX, 5, execSHY},
	0x9D: {"STA", AddrAbsoluteX, 5, execSTA},
	0x9E: {"SHX", AddrAbsoluteY, 5, execSHX},
	0x9F: {"SHA", AddrAbsoluteY, 5, execSHA},

	0xA0: {"LDY", AddrImmediate, 2, execLDY},
	0xA1: {"LDA", AddrIndexedIndirect, 6, execLDA},
	0xA2: {"LDX", AddrImmediate, 2, execLDX},
	0xA3: {"LAX", AddrIndexedIndirect, 6, execLAX},
	0xA4: {"LDY", AddrZeroPage, 3, execLDY},
	0xA5: {"LDA", AddrZeroPage, 3, execLDA},
	0xA6: {"LDX", AddrZeroPage, 3, execLDX},
	0xA7: {"LAX", AddrZeroPage, 3, execLAX},
	0xA8: {"TAY", AddrImplied, 2, execTAY},
	0xA9: {"LDA", AddrImmediate, 2, execLDA},
	0xAA: {"TAX", AddrImplied, 2, execTAX},
	0xAB: {"LXA", AddrImmediate, 2, execLXA},
	0xAC: {"LDY", AddrAbsolute, 4, execLDY},
	0xAD: {"LDA", AddrAbsolute, 4, execLDA},
	0xAE: {"LDX", AddrAbsolute, 4, execLDX},
	0xAF: {"LAX", AddrAbsolute, 4, execLAX},

	0xB0: {"BCS", AddrRelative, 2, execBCS},
	0xB1: {"LDA", AddrIndirectIndexed, 5, execLDA},
	0xB2: {"JAM", AddrImplied, 2, execJAM},
	0xB3: {"LAX", AddrIndirectIndexed, 5, execLAX},
	0xB4: {"LDY", AddrZeroPageX, 4, execLDY},
	0xB5: {"LDA", AddrZeroPageX, 4, execLDA},
	0xB6: {"LDX", AddrZeroPageY, 4, execLDX},
	0xB7: {"LAX", AddrZeroPageY, 4, execLAX},
	0xB8: {"CLV", AddrImplied, 2, execCLV},
	0xB9: {"LDA", AddrAbsoluteY, 4, execLDA},
	0xBA: {"TSX", AddrImplied, 2, execTSX},
	0xBB: {"LAS", AddrAbsoluteY, 4, execLAS},
	0xBC: {"LDY", AddrAbsoluteX, 4, execLDY},
	0xBD: {"LDA", AddrAbsoluteX, 4, execLDA},
	0xBE: {"LDX", AddrAbsoluteY, 4, execLDX},
	0xBF: {"LAX", AddrAbsoluteY, 4, execLAX},

	0xC0: {"CPY", AddrImmediate, 2, execCPY},
	0xC1: {"CMP", AddrIndexedIndirect, 6, execCMP},
	0xC2: {"NOP", AddrImmediate, 2, execNOPRead},
	0xC3: {"DCP", AddrIndexedIndirect, 8, execDCP},
	0xC4: {"CPY", AddrZeroPage, 3, execCPY},
	0xC5: {"CMP", AddrZeroPage, 3, execCMP},
	0xC6: {"DEC", AddrZeroPage, 5, execDEC},
	0xC7: {"DCP", AddrZeroPage, 5, execDCP},
	0xC8: {"INY", AddrImplied, 2, execINY},
	0xC9: {"CMP", AddrImmediate, 2, execCMP},
	0xCA: {"DEX", AddrImplied, 2, execDEX},
	0xCB: {"AXS", AddrImmediate, 2, execAXS},
	0xCC: {"CPY", AddrAbsolute, 4, execCPY},
	0xCD: {"CMP", AddrAbsolute, 4, execCMP},
	0xCE: {"DEC", AddrAbsolute, 6, execDEC},
	0xCF: {"DCP", AddrAbsolute, 6, execDCP},

	0xD0: {"BNE", AddrRelative, 2, execBNE},
	0xD1: {"CMP", AddrIndirectIndexed, 5, execCMP},
	0xD2: {"JAM", AddrImplied, 2, execJAM},
	0xD3: {"DCP", AddrIndirectIndexed, 8, execDCP},
	0xD4: {"NOP", AddrZeroPageX, 4, execNOPRead},
	0xD5: {"CMP", AddrZeroPageX, 4, execCMP},
	0xD6: {"DEC", AddrZeroPageX, 6, execDEC},
	0xD7: {"DCP", AddrZeroPageX, 6, execDCP},
	0xD8: {"CLD", AddrImplied, 2, execCLD},
	0xD9: {"CMP", AddrAbsoluteY, 4, execCMP},
	0xDA: {"NOP", AddrImplied, 2, execNOP},
	0xDB: {"DCP", AddrAbsoluteY, 7, execDCP},
	0xDC: {"NOP", AddrAbsoluteX, 4, execNOPRead},
	0xDD: {"CMP", AddrAbsoluteX, 4, execCMP},
	0xDE: {"DEC", AddrAbsoluteX, 7, execDEC},
	0xDF: {"DCP", AddrAbsoluteX, 7, execDCP},

	0xE0: {"CPX", AddrImmediate, 2, execCPX},
	0xE1: {"SBC", AddrIndexedIndirect, 6, execSBC},
	0xE2: {"NOP", AddrImmediate, 2, execNOPRead},
	0xE3: {"ISB", AddrIndexedIndirect, 8, execISB},
	0xE4: {"CPX", AddrZeroPage, 3, execCPX},
	0xE5: {"SBC", AddrZeroPage, 3, execSBC},
	0xE6: {"INC", AddrZeroPage, 5, execINC},
	0xE7: {"ISB", AddrZeroPage, 5, execISB},
	0xE8: {"INX", AddrImplied, 2, execINX},
	0xE9: {"SBC", AddrImmediate, 2, execSBC},
	0xEA: {"NOP", AddrImplied, 2, execNOP},
	0xEB: {"SBC", AddrImmediate, 2, execSBC},
	0xEC: {"CPX", AddrAbsolute, 4, execCPX},
	0xED: {"SBC", AddrAbsolute, 4, execSBC},
	0xEE: {"INC", AddrAbsolute, 6, execINC},
	0xEF: {"ISB", AddrAbsolute, 6, execISB},

	0xF0: {"BEQ", AddrRelative, 2, execBEQ},
	0xF1: {"SBC", AddrIndirectIndexed, 5, execSBC},
	0xF2: {"JAM", AddrImplied, 2, execJAM},
	0xF3: {"ISB", AddrIndirectIndexed, 8, execISB},
	0xF4: {"NOP", AddrZeroPageX, 4, execNOPRead},
	0xF5: {"SBC", AddrZeroPageX, 4, execSBC},
	0xF6: {"INC", AddrZeroPageX, 6, execINC},
	0xF7: {"ISB", AddrZeroPageX, 6, execISB},
	0xF8: {"SED", AddrImplied, 2, execSED},
	0xF9: {"SBC", AddrAbsoluteY, 4, execSBC},
	0xFA: {"NOP", AddrImplied, 2, execNOP},
	0xFB: {"ISB", AddrAbsoluteY, 7, execISB},
	0xFC: {"NOP", AddrAbsoluteX, 4, execNOPRead},
	0xFD: {"SBC", AddrAbsoluteX, 4, execSBC},
	0xFE: {"INC", AddrAbsoluteX, 7, execINC},
	0xFF: {"ISB", AddrAbsoluteX, 7, execISB},
}

// executeInstruction dispatches a fetched opcode byte through the table,
// returning the total cycles the instruction took (base cost plus whatever
// the handler reports for page-crossing or branch timing).
func (c *CPU) executeInstruction(opcode uint8) int {
	entry := opcodeTable[opcode]
	extra := entry.exec(c, entry.mode)
	return entry.cycles + extra
}
