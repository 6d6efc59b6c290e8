package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ashgrovelabs/nescore/pkg/cartridge"
	"github.com/ashgrovelabs/nescore/pkg/cartridge/mapper"
	"github.com/ashgrovelabs/nescore/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: romdump <rom_file>")
		os.Exit(1)
	}

	if err := logger.Initialize(logger.LogLevelInfo, ""); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	romFile := os.Args[1]

	file, err := os.Open(romFile)
	if err != nil {
		log.Fatalf("Failed to open ROM file: %v", err)
	}
	defer file.Close()

	cart, err := cartridge.LoadFromReader(file)
	if err != nil {
		log.Fatalf("Failed to load ROM: %v", err)
	}

	logger.LogInfo("=== ROM Analysis ===")
	logger.LogInfo("File: %s", romFile)
	logger.LogInfo("Magic: %s (0x%02X%02X%02X%02X)",
		string(cart.Header.Magic[:]), cart.Header.Magic[0], cart.Header.Magic[1], cart.Header.Magic[2], cart.Header.Magic[3])
	logger.LogInfo("PRG ROM Size: %d units (%d KB)", cart.Header.PRGROMSize, int(cart.Header.PRGROMSize)*16)
	logger.LogInfo("CHR ROM Size: %d units (%d KB)", cart.Header.CHRROMSize, int(cart.Header.CHRROMSize)*8)
	logger.LogInfo("Flags6: 0x%02X, Flags7: 0x%02X, Flags8: 0x%02X, Flags9: 0x%02X, Flags10: 0x%02X",
		cart.Header.Flags6, cart.Header.Flags7, cart.Header.Flags8, cart.Header.Flags9, cart.Header.Flags10)

	mapperNumber := (cart.Header.Flags6 >> 4) | (cart.Header.Flags7 & 0xF0)
	logger.LogInfo("Mapper Number: %d", mapperNumber)
	logger.LogInfo("Trainer Present: %v", cart.Header.Flags6&0x04 != 0)
	logger.LogInfo("Battery Backed: %v", cart.Battery)

	switch {
	case cart.Header.Flags6&0x08 != 0:
		logger.LogInfo("Mirroring: Four Screen")
	case cart.Header.Flags6&0x01 != 0:
		logger.LogInfo("Mirroring: Vertical")
	default:
		logger.LogInfo("Mirroring: Horizontal")
	}

	logger.LogInfo("PRG ROM: %d bytes (0x%04X)", len(cart.PRGROM), len(cart.PRGROM))
	if len(cart.CHRROM) > 0 {
		logger.LogInfo("CHR ROM: %d bytes (0x%04X)", len(cart.CHRROM), len(cart.CHRROM))
	}
	if len(cart.CHRRAM) > 0 {
		logger.LogInfo("CHR RAM: %d bytes (0x%04X)", len(cart.CHRRAM), len(cart.CHRRAM))
	}
	if len(cart.PRGRAM) > 0 {
		logger.LogInfo("PRG RAM: %d bytes (0x%04X)", len(cart.PRGRAM), len(cart.PRGRAM))
	}

	if mapperNumber == 4 {
		if mapper4, ok := cart.Mapper.(*mapper.Mapper4); ok {
			logger.LogInfo("=== MMC3 (Mapper 4) Bank State ===")
			banks := mapper4.GetBankRegisters()
			logger.LogInfo("Bank Registers: [R0=%d, R1=%d, R2=%d, R3=%d, R4=%d, R5=%d, R6=%d, R7=%d]",
				banks[0], banks[1], banks[2], banks[3], banks[4], banks[5], banks[6], banks[7])
			logger.LogInfo("Mirroring Mode: %d (0=Vertical, 1=Horizontal)", mapper4.GetMirroringMode())
			counter, reload, enabled, pending := mapper4.GetIRQState()
			logger.LogInfo("IRQ: Counter=%d, Reload=%d, Enabled=%v, Pending=%v", counter, reload, enabled, pending)

			prgBankCount := len(cart.PRGROM) / 8192
			logger.LogInfo("PRG Banks (8KB each): %d", prgBankCount)
			if len(cart.CHRROM) > 0 {
				logger.LogInfo("CHR Banks (1KB each): %d", len(cart.CHRROM)/1024)
			} else {
				logger.LogInfo("CHR RAM Banks (1KB each): %d", len(cart.CHRRAM)/1024)
			}
		}
	}
}
