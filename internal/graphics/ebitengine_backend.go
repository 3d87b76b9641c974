package graphics

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	regCanvasWidth  = 256
	regCanvasHeight = 240
	barCount        = 4 // A, X, Y, SP
	barWidth        = 40
	barGap          = 16
	flagBoxSize     = 20
)

// EbitengineBackend implements Backend using Ebitengine.
type EbitengineBackend struct {
	initialized bool
	config      Config
	game        *EbitengineGame
}

// EbitengineWindow implements Window for Ebitengine.
type EbitengineWindow struct {
	backend *EbitengineBackend
	title   string
	width   int
	height  int
	game    *EbitengineGame
	running bool

	emulatorUpdateFunc func() error
}

// EbitengineGame implements ebiten.Game, redrawing the latest register
// snapshot every frame and pacing the wired emulator update callback.
type EbitengineGame struct {
	window       *EbitengineWindow
	snap         RegisterSnapshot
	canvas       *ebiten.Image
	imageBuffer  *image.RGBA
	windowWidth  int
	windowHeight int
	drawCount    int
}

// NewEbitengineBackend creates a new Ebitengine graphics backend.
func NewEbitengineBackend() Backend {
	return &EbitengineBackend{}
}

func (b *EbitengineBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("Ebitengine backend already initialized")
	}
	b.config = config
	b.initialized = true
	return nil
}

func (b *EbitengineBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}
	if b.config.Headless {
		return nil, fmt.Errorf("cannot create window in headless mode")
	}

	game := &EbitengineGame{
		canvas:       ebiten.NewImage(regCanvasWidth, regCanvasHeight),
		imageBuffer:  image.NewRGBA(image.Rect(0, 0, regCanvasWidth, regCanvasHeight)),
		windowWidth:  width,
		windowHeight: height,
	}

	window := &EbitengineWindow{
		backend: b,
		title:   title,
		width:   width,
		height:  height,
		game:    game,
		running: true,
	}
	game.window = window
	b.game = game

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(b.config.VSync)
	if b.config.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return window, nil
}

func (b *EbitengineBackend) Cleanup() error {
	b.initialized = false
	return nil
}

func (b *EbitengineBackend) IsHeadless() bool { return b.config.Headless }
func (b *EbitengineBackend) GetName() string  { return "Ebitengine" }

// EbitengineWindow implementation

func (w *EbitengineWindow) SetTitle(title string) {
	w.title = title
	ebiten.SetWindowTitle(title)
}

func (w *EbitengineWindow) GetSize() (width, height int) { return w.width, w.height }
func (w *EbitengineWindow) ShouldClose() bool            { return !w.running }

// RenderRegisters stores snap for the next Draw call; actual pixel
// composition happens in EbitengineGame.Draw so it runs on Ebitengine's
// render goroutine.
func (w *EbitengineWindow) RenderRegisters(snap RegisterSnapshot) error {
	if w.game == nil {
		return fmt.Errorf("game not initialized")
	}
	w.game.snap = snap
	return nil
}

func (w *EbitengineWindow) Cleanup() error {
	w.running = false
	return nil
}

// Run starts the Ebitengine game loop.
func (w *EbitengineWindow) Run() error {
	if w.game == nil {
		return fmt.Errorf("game not initialized")
	}
	return ebiten.RunGame(w.game)
}

func (w *EbitengineWindow) SetEmulatorUpdateFunc(updateFunc func() error) {
	w.emulatorUpdateFunc = updateFunc
}

// EbitengineGame implementation

func (g *EbitengineGame) Update() error {
	if g.window == nil {
		return nil
	}
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		g.window.running = false
		return ebiten.Termination
	}
	if g.window.emulatorUpdateFunc != nil {
		if err := g.window.emulatorUpdateFunc(); err != nil {
			log.Printf("[Ebitengine] emulator update error: %v", err)
			return err
		}
	}
	return nil
}

// Draw paints the register bars and flag squares into the canvas and
// blits it centered and scaled into screen.
func (g *EbitengineGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0, G: 0, B: 0, A: 255})
	g.paintCanvas()
	g.canvas.ReplacePixels(g.imageBuffer.Pix)

	op := &ebiten.DrawImageOptions{}
	scaleX := float64(g.windowWidth) / regCanvasWidth
	scaleY := float64(g.windowHeight) / regCanvasHeight
	scale := scaleX
	if scaleY < scaleX {
		scale = scaleY
	}
	offsetX := (float64(g.windowWidth) - regCanvasWidth*scale) / 2
	offsetY := (float64(g.windowHeight) - regCanvasHeight*scale) / 2
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offsetX, offsetY)
	screen.DrawImage(g.canvas, op)

	g.drawCount++
}

// paintCanvas draws A/X/Y/SP as colored vertical bars and P as eight
// lit/unlit squares, directly into imageBuffer.
func (g *EbitengineGame) paintCanvas() {
	bg := color.RGBA{R: 20, G: 20, B: 28, A: 255}
	for y := 0; y < regCanvasHeight; y++ {
		for x := 0; x < regCanvasWidth; x++ {
			g.imageBuffer.SetRGBA(x, y, bg)
		}
	}

	values := [barCount]uint8{g.snap.A, g.snap.X, g.snap.Y, g.snap.SP}
	colors := [barCount]color.RGBA{
		{R: 220, G: 80, B: 80, A: 255},
		{R: 80, G: 220, B: 100, A: 255},
		{R: 90, G: 140, B: 230, A: 255},
		{R: 230, G: 200, B: 60, A: 255},
	}
	baseline := regCanvasHeight - 20
	for i, v := range values {
		barHeight := int(v) * (baseline - 20) / 255
		x0 := 12 + i*(barWidth+barGap)
		fillRect(g.imageBuffer, x0, baseline-barHeight, barWidth, barHeight, colors[i])
	}

	lit := color.RGBA{R: 240, G: 240, B: 120, A: 255}
	unlit := color.RGBA{R: 60, G: 60, B: 60, A: 255}
	for bit := 0; bit < 8; bit++ {
		on := g.snap.P&(1<<uint(7-bit)) != 0
		c := unlit
		if on {
			c = lit
		}
		x0 := 12 + bit*(flagBoxSize+4)
		fillRect(g.imageBuffer, x0, 8, flagBoxSize, flagBoxSize, c)
	}
}

func fillRect(img *image.RGBA, x0, y0, w, h int, c color.RGBA) {
	for y := y0; y < y0+h; y++ {
		if y < 0 || y >= img.Rect.Dy() {
			continue
		}
		for x := x0; x < x0+w; x++ {
			if x < 0 || x >= img.Rect.Dx() {
				continue
			}
			img.SetRGBA(x, y, c)
		}
	}
}

func (g *EbitengineGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	g.windowWidth = outsideWidth
	g.windowHeight = outsideHeight
	return outsideWidth, outsideHeight
}
