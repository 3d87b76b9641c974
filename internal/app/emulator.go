package app

import (
	"fmt"
	"time"

	"gones/internal/bus"
	"gones/internal/cartridge"
	"gones/internal/cpu"
	"gones/internal/graphics"
)

// Emulator owns the loaded cartridge and the CPU/bus pair wired to
// it. It has no notion of frames or a PPU — there is no video to
// produce beyond the register visualization the driver paints from
// RegisterSnapshot.
type Emulator struct {
	config *Config

	cart *cartridge.Cartridge
	bus  *bus.Bus
	cpu  *cpu.CPU

	loaded bool
}

// NewEmulator constructs an Emulator with no cartridge loaded yet.
func NewEmulator(config *Config) *Emulator {
	return &Emulator{config: config}
}

// LoadROM reads an iNES image from path, wires it through a fresh bus
// and CPU, and resets the CPU so PC points at the reset vector.
func (e *Emulator) LoadROM(path string) error {
	cart, err := cartridge.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load cartridge: %w", err)
	}

	e.cart = cart
	e.bus = bus.New(cart.Mapper)
	e.cpu = cpu.New(e.bus)
	e.cpu.Reset()
	e.cpu.SetDebug(e.config.Debug.CPUTracing)
	e.loaded = true
	return nil
}

// ApplyDebugSettings re-reads e.config.Debug into the running CPU.
// Safe to call before or after LoadROM.
func (e *Emulator) ApplyDebugSettings() {
	if e.cpu != nil {
		e.cpu.SetDebug(e.config.Debug.CPUTracing)
	}
}

// Step executes exactly one CPU instruction. Runtime-fatal conditions
// in the core (an unimplemented opcode, a write to ROM) surface here
// as a panic recovered into a returned error naming the failure.
func (e *Emulator) Step() (err error) {
	if !e.loaded {
		return fmt.Errorf("no ROM loaded")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("emulator: %v", r)
		}
	}()
	e.cpu.Step()
	return nil
}

// RegisterSnapshot captures the current CPU register file for the
// graphics driver to visualize.
func (e *Emulator) RegisterSnapshot() graphics.RegisterSnapshot {
	if e.cpu == nil {
		return graphics.RegisterSnapshot{}
	}
	return graphics.RegisterSnapshot{
		PC: e.cpu.PC,
		A:  e.cpu.A,
		X:  e.cpu.X,
		Y:  e.cpu.Y,
		SP: e.cpu.SP,
		P:  e.cpu.StatusByte(),
	}
}

// IsLoaded reports whether a ROM has been loaded.
func (e *Emulator) IsLoaded() bool { return e.loaded }

// Application ties a Config, an Emulator, and a graphics.Window
// together — the object cmd/gones/main.go drives.
type Application struct {
	config   *Config
	emulator *Emulator
	backend  graphics.Backend
	window   graphics.Window

	startTime time.Time
	stepCount uint64
}

// NewApplicationWithMode constructs an Application, loading config
// from configPath (writing defaults if absent) and selecting the
// headless backend when nogui is true.
func NewApplicationWithMode(configPath string, nogui bool) (*Application, error) {
	config := NewConfig()
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if nogui {
		config.Video.Backend = "headless"
	}

	backend, err := graphics.CreateBackend(graphics.BackendType(config.Video.Backend))
	if err != nil {
		return nil, fmt.Errorf("failed to create graphics backend: %w", err)
	}

	return &Application{
		config:    config,
		emulator:  NewEmulator(config),
		backend:   backend,
		startTime: time.Now(),
	}, nil
}

// GetConfig returns the application's configuration.
func (a *Application) GetConfig() *Config { return a.config }

// LoadROM loads a cartridge image into the emulator.
func (a *Application) LoadROM(path string) error {
	return a.emulator.LoadROM(path)
}

// ApplyDebugSettings re-applies config.Debug to the running emulator.
func (a *Application) ApplyDebugSettings() {
	a.emulator.ApplyDebugSettings()
}

// Run starts the graphics backend, opens a window, and drives the
// emulator from its update callback (GUI mode) or steps it directly
// in a tight loop (headless mode). The window's own event loop paces
// GUI execution; there is no bare for{} spinning the CPU as fast as
// possible when a window is attached.
func (a *Application) Run() error {
	cfg := graphics.Config{
		WindowTitle:  "gones",
		WindowWidth:  a.config.Window.Width,
		WindowHeight: a.config.Window.Height,
		Fullscreen:   a.config.Window.Fullscreen,
		VSync:        a.config.Video.VSync,
		Headless:     a.backend.IsHeadless(),
	}
	if err := a.backend.Initialize(cfg); err != nil {
		return fmt.Errorf("failed to initialize graphics backend: %w", err)
	}

	window, err := a.backend.CreateWindow(cfg.WindowTitle, cfg.WindowWidth, cfg.WindowHeight)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	a.window = window

	if ebitengineWindow, ok := graphics.AsEbitengineWindow(window); ok {
		ebitengineWindow.SetEmulatorUpdateFunc(a.update)
		return ebitengineWindow.Run()
	}

	// The headless window never closes itself, and there is no
	// outer clock driving it: bound the run to a fixed instruction
	// count so -nogui terminates instead of spinning forever.
	for i := 0; i < headlessStepLimit && !window.ShouldClose(); i++ {
		if err := a.update(); err != nil {
			return err
		}
	}
	return nil
}

// headlessStepLimit bounds how many instructions a headless run
// executes, since nothing else paces it.
const headlessStepLimit = 1_000_000

// update steps the emulator once (if a ROM is loaded) and pushes the
// resulting register snapshot to the window.
func (a *Application) update() error {
	if a.emulator.IsLoaded() {
		if err := a.emulator.Step(); err != nil {
			return err
		}
		a.stepCount++
	}
	return a.window.RenderRegisters(a.emulator.RegisterSnapshot())
}

// Cleanup releases backend and window resources.
func (a *Application) Cleanup() error {
	if a.window != nil {
		if err := a.window.Cleanup(); err != nil {
			return err
		}
	}
	if a.backend != nil {
		return a.backend.Cleanup()
	}
	return nil
}

// GetStepCount returns the number of CPU instructions executed.
func (a *Application) GetStepCount() uint64 { return a.stepCount }

// GetUptime returns the time since the application started running.
func (a *Application) GetUptime() time.Duration { return time.Since(a.startTime) }
