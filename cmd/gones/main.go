// Package main implements the gones executable: a CPU/bus/cartridge
// core driven either by an Ebitengine window showing live register
// state, or headlessly for scripted runs.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gones/internal/app"
	"gones/internal/version"
)

func main() {
	var (
		romFile    = flag.String("rom", "", "Path to iNES ROM file")
		configFile = flag.String("config", "", "Path to configuration file")
		debug      = flag.Bool("debug", false, "Enable CPU instruction tracing")
		nogui      = flag.Bool("nogui", false, "Run without a window")
		showHelp   = flag.Bool("help", false, "Show help message")
		showVer    = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showHelp {
		printUsage()
		os.Exit(0)
	}
	if *showVer {
		version.PrintBuildInfo()
		os.Exit(0)
	}

	configPath := *configFile
	if configPath == "" {
		configPath = app.GetDefaultConfigPath()
	}

	application, err := app.NewApplicationWithMode(configPath, *nogui)
	if err != nil {
		log.Fatalf("failed to create application: %v", err)
	}
	defer func() {
		if err := application.Cleanup(); err != nil {
			log.Printf("cleanup error: %v", err)
		}
	}()

	if *debug {
		application.GetConfig().Debug.CPUTracing = true
		application.ApplyDebugSettings()
	}

	if *romFile != "" {
		fmt.Printf("loading ROM: %s\n", *romFile)
		if err := application.LoadROM(*romFile); err != nil {
			log.Fatalf("failed to load ROM: %v", err)
		}
		application.ApplyDebugSettings()
	} else if *nogui {
		log.Fatal("ROM file required for headless mode")
	}

	if err := application.Run(); err != nil {
		log.Fatalf("run failed: %v", err)
	}

	fmt.Printf("ran %d instructions over %v\n", application.GetStepCount(), application.GetUptime())
}

func printUsage() {
	fmt.Println("gones - a documented-opcode 6502 / NES bus emulator core")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  gones [options]                    # Start with a register-state window, no ROM")
	fmt.Println("  gones -rom <file> [options]        # Start with a ROM loaded")
	fmt.Println("  gones -nogui -rom <file> [options] # Run headless")
	fmt.Println()
	fmt.Println("OPTIONS:")
	flag.PrintDefaults()
}
