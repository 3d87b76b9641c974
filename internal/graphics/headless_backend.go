package graphics

import "fmt"

// HeadlessBackend implements Backend with no actual window; it is
// used for -nogui runs and scripted testing.
type HeadlessBackend struct {
	initialized bool
	config      Config
}

// HeadlessWindow implements Window with no rendering surface. It
// counts frames and keeps the last snapshot; it logs nothing.
type HeadlessWindow struct {
	title      string
	width      int
	height     int
	running    bool
	frameCount int
	trace      bool
	lastSnap   RegisterSnapshot
}

func NewHeadlessBackend() Backend {
	return &HeadlessBackend{}
}

func (b *HeadlessBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("headless backend already initialized")
	}
	b.config = config
	b.initialized = true
	return nil
}

func (b *HeadlessBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}
	return &HeadlessWindow{
		title:   title,
		width:   width,
		height:  height,
		running: true,
		trace:   b.config.Headless,
	}, nil
}

func (b *HeadlessBackend) Cleanup() error {
	b.initialized = false
	return nil
}

func (b *HeadlessBackend) IsHeadless() bool { return true }
func (b *HeadlessBackend) GetName() string  { return "Headless" }

func (w *HeadlessWindow) SetTitle(title string)          { w.title = title }
func (w *HeadlessWindow) GetSize() (width, height int)   { return w.width, w.height }
func (w *HeadlessWindow) ShouldClose() bool              { return !w.running }

// RenderRegisters just records the snapshot; there is nothing to
// paint without a window.
func (w *HeadlessWindow) RenderRegisters(snap RegisterSnapshot) error {
	w.frameCount++
	w.lastSnap = snap
	return nil
}

func (w *HeadlessWindow) Cleanup() error {
	w.running = false
	return nil
}

// GetFrameCount returns the number of RenderRegisters calls observed.
func (w *HeadlessWindow) GetFrameCount() int { return w.frameCount }

// LastSnapshot returns the most recently recorded register state.
func (w *HeadlessWindow) LastSnapshot() RegisterSnapshot { return w.lastSnap }
