package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ashgrovelabs/nescore/pkg/cartridge"
	"github.com/ashgrovelabs/nescore/pkg/cartridge/mapper"
	"github.com/ashgrovelabs/nescore/pkg/logger"
	"github.com/ashgrovelabs/nescore/pkg/nes"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: headlessdebug <rom_file> [frames]")
		os.Exit(1)
	}

	romFile := os.Args[1]
	maxFrames := 10
	if len(os.Args) >= 3 {
		fmt.Sscanf(os.Args[2], "%d", &maxFrames)
	}

	if err := logger.Initialize(logger.LogLevelDebug, ""); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	file, err := os.Open(romFile)
	if err != nil {
		log.Fatalf("Failed to open ROM file: %v", err)
	}
	defer file.Close()

	cart, err := cartridge.LoadFromReader(file)
	if err != nil {
		log.Fatalf("Failed to load ROM: %v", err)
	}

	mapperNumber := (cart.Header.Flags6 >> 4) | (cart.Header.Flags7 & 0xF0)
	logger.LogInfo("=== Headless Debug Mode ===")
	logger.LogInfo("ROM: %s", romFile)
	logger.LogInfo("Mapper: %d", mapperNumber)
	logger.LogInfo("Max frames to run: %d", maxFrames)

	nesSystem := nes.NewNES()
	nesSystem.LoadCartridge(cart)
	nesSystem.Reset()

	logger.LogInfo("=== Initial State ===")
	logger.LogInfo("Frame: %d, Cycles: %d", nesSystem.GetFrame(), nesSystem.Cycles)

	if mapperNumber == 4 {
		printMapper4State(cart.Mapper, 0)
	}

	logger.LogInfo("=== Starting Emulation ===")
	startTime := time.Now()

	for i := 0; i < maxFrames; i++ {
		frameStart := time.Now()

		nesSystem.StepFrame()

		frameTime := time.Since(frameStart)
		logger.LogInfo("Frame %d completed in %v (total cycles: %d)",
			nesSystem.GetFrame(), frameTime, nesSystem.Cycles)

		if i == 0 {
			printPPUState(nesSystem)
		}

		if mapperNumber == 4 && (i+1)%3 == 0 {
			printMapper4State(cart.Mapper, nesSystem.GetFrame())
		}

		framebuffer := nesSystem.GetFramebuffer()
		nonZeroPixels := 0
		for _, b := range framebuffer {
			if b != 0 {
				nonZeroPixels++
			}
		}
		logger.LogInfo("  Non-zero pixels in framebuffer: %d", nonZeroPixels)

		if i == maxFrames-1 {
			saveFramebuffer(framebuffer, fmt.Sprintf("debug_frame_%d.raw", nesSystem.GetFrame()))
		}
	}

	totalTime := time.Since(startTime)
	logger.LogInfo("=== Final Results ===")
	logger.LogInfo("Completed %d frames in %v (avg %v/frame)",
		nesSystem.GetFrame(), totalTime, totalTime/time.Duration(maxFrames))

	if mapperNumber == 4 {
		logger.LogInfo("=== Final Mapper 4 State ===")
		printMapper4State(cart.Mapper, nesSystem.GetFrame())
	}
}

func printMapper4State(m mapper.Mapper, frame uint64) {
	mapper4, ok := m.(*mapper.Mapper4)
	if !ok {
		return
	}
	logger.LogInfo("--- Mapper 4 State (Frame %d) ---", frame)
	banks := mapper4.GetBankRegisters()
	logger.LogInfo("  Bank Registers: [R0=%d, R1=%d, R2=%d, R3=%d, R4=%d, R5=%d, R6=%d, R7=%d]",
		banks[0], banks[1], banks[2], banks[3], banks[4], banks[5], banks[6], banks[7])
	logger.LogInfo("  Mirroring Mode: %d (0=Vertical, 1=Horizontal)", mapper4.GetMirroringMode())
	counter, reload, enabled, pending := mapper4.GetIRQState()
	logger.LogInfo("  IRQ: Counter=%d, Reload=%d, Enabled=%v, Pending=%v", counter, reload, enabled, pending)
}

func printPPUState(nesSystem *nes.NES) {
	logger.LogInfo("  PPU State:")
	logger.LogInfo("    Frame: %d, Scanline: %d, Cycle: %d",
		nesSystem.PPU.Frame, nesSystem.PPU.Scanline, nesSystem.PPU.Cycle)
	logger.LogInfo("    PPUCTRL: 0x%02X, PPUMASK: 0x%02X, PPUSTATUS: 0x%02X",
		nesSystem.PPU.PPUCTRL, nesSystem.PPU.PPUMASK, nesSystem.PPU.PPUSTATUS)

	bgEnabled := nesSystem.PPU.PPUMASK&0x08 != 0
	spriteEnabled := nesSystem.PPU.PPUMASK&0x10 != 0
	logger.LogInfo("    Rendering: BG=%v, Sprites=%v", bgEnabled, spriteEnabled)

	nmiEnabled := nesSystem.PPU.PPUCTRL&0x80 != 0
	logger.LogInfo("    NMI Enabled: %v, NMI Requested: %v", nmiEnabled, nesSystem.PPU.NMIRequested)
}

func saveFramebuffer(framebuffer []uint8, filename string) {
	file, err := os.Create(filename)
	if err != nil {
		logger.LogError("Error creating framebuffer file: %v", err)
		return
	}
	defer file.Close()

	if _, err := file.Write(framebuffer); err != nil {
		logger.LogError("Error writing framebuffer: %v", err)
		return
	}
	logger.LogInfo("  Framebuffer saved to %s (%d bytes)", filename, len(framebuffer))
}
