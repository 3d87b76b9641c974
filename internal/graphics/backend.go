// Package graphics provides an abstraction layer for displaying live
// CPU register state in a window, with an Ebitengine-backed
// implementation and a headless one for CI / scripted runs.
package graphics

// RegisterSnapshot is the state a Window renders one frame of. It
// carries no NES video output of its own — there is no PPU here, so
// the window visualizes the CPU's register file instead of a frame
// buffer.
type RegisterSnapshot struct {
	PC      uint16
	A, X, Y uint8
	SP      uint8
	P       uint8
}

// Backend constructs windows for one rendering implementation.
type Backend interface {
	Initialize(config Config) error
	CreateWindow(title string, width, height int) (Window, error)
	Cleanup() error
	IsHeadless() bool
	GetName() string
}

// Window displays register state and reports a single quit signal.
// There is no controller input surface: this core drives no game
// logic, only a debug visualization.
type Window interface {
	SetTitle(title string)
	GetSize() (width, height int)
	ShouldClose() bool
	RenderRegisters(snap RegisterSnapshot) error
	Cleanup() error
}

// Config configures a Backend and the window it creates.
type Config struct {
	WindowTitle  string
	WindowWidth  int
	WindowHeight int
	Fullscreen   bool
	VSync        bool
	Headless     bool
}

// BackendType names a concrete Backend implementation.
type BackendType string

const (
	BackendEbitengine BackendType = "ebitengine"
	BackendHeadless   BackendType = "headless"
)

// CreateBackend constructs a Backend of the given type, defaulting to
// Ebitengine for GUI mode.
func CreateBackend(backendType BackendType) (Backend, error) {
	switch backendType {
	case BackendHeadless:
		return NewHeadlessBackend(), nil
	default:
		return NewEbitengineBackend(), nil
	}
}

// AsEbitengineWindow tries to cast a Window to *EbitengineWindow.
func AsEbitengineWindow(window Window) (*EbitengineWindow, bool) {
	w, ok := window.(*EbitengineWindow)
	return w, ok
}
