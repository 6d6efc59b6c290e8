package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ashgrovelabs/nescore/pkg/cartridge"
	"github.com/ashgrovelabs/nescore/pkg/gui"
	"github.com/ashgrovelabs/nescore/pkg/logger"
	"github.com/ashgrovelabs/nescore/pkg/nes"
)

func main() {
	// Define command line flags
	var (
		logLevel   = flag.String("log-level", "info", "Log level (off, error, warn, info, debug, trace)")
		logFile    = flag.String("log-file", "", "Log file path (empty for stdout)")
		cpuLog     = flag.Bool("cpu-log", false, "Enable CPU instruction logging")
		ppuLog     = flag.Bool("ppu-log", false, "Enable PPU logging")
		apuLog     = flag.Bool("apu-log", false, "Enable APU logging")
		mapperLog  = flag.Bool("mapper-log", false, "Enable mapper logging")
		headless   = flag.Bool("headless", false, "Run in headless mode for testing")
		testFrames = flag.Int("test-frames", 600, "Number of frames to run in headless mode")
		savePath   = flag.String("sav", "", "Battery save file path (defaults to <rom>.sav for battery-backed carts)")
	)

	flag.Usage = func() {
		fmt.Printf("Usage: %s [options] <rom_file>\n\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println("\nControls:")
		fmt.Println("  Player 1: Z/X (A/B), A/S (Select/Start), arrow keys (D-pad)")
		fmt.Println("  Player 2: numpad 1/3 (A/B), 5/Enter (Select/Start), numpad 8/2/4/6 (D-pad)")
		fmt.Println("  ESC - Quit")
	}

	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	romFile := flag.Arg(0)

	level := logger.GetLogLevelFromString(*logLevel)
	if err := logger.Initialize(level, *logFile); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	logger.SetCPULogging(*cpuLog)
	logger.SetPPULogging(*ppuLog)
	logger.SetAPULogging(*apuLog)
	logger.SetMapperLogging(*mapperLog)

	logger.LogInfo("nescore starting...")

	if _, err := os.Stat(romFile); os.IsNotExist(err) {
		log.Fatalf("ROM file not found: %s", romFile)
	}

	file, err := os.Open(romFile)
	if err != nil {
		log.Fatalf("Failed to open ROM file: %v", err)
	}
	cart, err := cartridge.LoadFromReader(file)
	file.Close()
	if err != nil {
		log.Fatalf("Failed to load ROM: %v", err)
	}

	mapperNumber := (cart.Header.Flags6 >> 4) | (cart.Header.Flags7 & 0xF0)
	logger.LogInfo("Loaded ROM: %s", filepath.Base(romFile))
	logger.LogInfo("Mapper: %d", mapperNumber)
	logger.LogInfo("PRG ROM: %d KB", len(cart.PRGROM)/1024)
	if len(cart.CHRROM) > 0 {
		logger.LogInfo("CHR ROM: %d KB", len(cart.CHRROM)/1024)
	} else {
		logger.LogInfo("CHR RAM: %d KB", len(cart.CHRRAM)/1024)
	}

	if *savePath == "" && cart.Battery {
		*savePath = romFile + ".sav"
	}
	if *savePath != "" && cart.Battery {
		if data, err := os.ReadFile(*savePath); err == nil {
			cart.LoadPRGRAM(data)
			logger.LogInfo("Loaded battery save: %s", *savePath)
		}
	}

	nesSystem := nes.NewNES()
	nesSystem.LoadCartridge(cart)
	nesSystem.Reset()

	if *headless {
		runHeadless(nesSystem, *testFrames)
	} else {
		nesGUI, err := gui.NewNESGUI(nesSystem)
		if err != nil {
			log.Fatalf("Failed to create GUI: %v", err)
		}
		defer nesGUI.Destroy()

		logger.LogInfo("Starting emulator...")
		nesGUI.Run()
		logger.LogInfo("Emulator stopped")
	}

	if *savePath != "" && cart.Battery {
		if data := nesSystem.Save(); data != nil {
			if err := os.WriteFile(*savePath, data, 0644); err != nil {
				logger.LogError("Failed to write battery save: %v", err)
			} else {
				logger.LogInfo("Battery save written: %s", *savePath)
			}
		}
	}
}

func runHeadless(nesSystem *nes.NES, maxFrames int) {
	logger.LogInfo("Starting headless mode for %d frames", maxFrames)

	startTime := time.Now()
	for frame := 0; frame < maxFrames; frame++ {
		nesSystem.StepFrame()
	}
	elapsed := time.Since(startTime)
	logger.LogInfo("Headless execution completed in %v", elapsed)

	analyzeFrameBuffer(nesSystem.GetFramebufferRaw(), maxFrames-1)
}

func analyzeFrameBuffer(frameBuffer []uint32, frame int) {
	pixelCounts := make(map[uint32]int)
	totalPixels := len(frameBuffer)

	for _, pixel := range frameBuffer {
		pixelCounts[pixel]++
	}

	logger.LogInfo("Frame %d analysis:", frame)
	logger.LogInfo("  Total pixels: %d", totalPixels)
	logger.LogInfo("  Unique colors: %d", len(pixelCounts))

	for color, count := range pixelCounts {
		percentage := float64(count) / float64(totalPixels) * 100
		if percentage > 1.0 {
			logger.LogInfo("  Color 0x%08X: %d pixels (%.1f%%)", color, count, percentage)
		}
	}
}
