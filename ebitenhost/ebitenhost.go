// Package ebitenhost is a windowed solar.Engine backed by ebiten. It draws
// the scene top-down (the x,z plane) around the camera, turns digit keys and
// clicks into selections, and owns the process frame loop.
package ebitenhost

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/DakotaStorm/solar"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"
)

// Options configures the window.
type Options struct {
	Title  string
	Width  int
	Height int
	// Zoom multiplies the automatic framing scale.
	Zoom float64
	// Bodies are the ids bound to digit keys 1-9, in order.
	Bodies []string
	// ScreenshotDir is where Screenshot writes PNGs. Defaults to "screenshots".
	ScreenshotDir string
	Logger        zerolog.Logger
}

type meshInfo struct {
	kind   solar.GeometryKind
	radius float64
	inner  float64
	fill   colorful.Color
	glow   bool
}

// Engine implements solar.Engine, solar.FrameHost and solar.Screenshotter.
type Engine struct {
	// OnSelect receives body ids picked with the keyboard or mouse. It runs
	// on the frame goroutine.
	OnSelect func(id string)

	opts    Options
	meshes  []meshInfo
	pending func()
	frame   solar.Frame
	zoom    float64
	shots   []string
	parents map[solar.NodeID]solar.NodeID

	// last drawn positions of body meshes, for click picking
	drawn []drawnBody
}

type drawnBody struct {
	id     string
	x, y   float64
	radius float64
}

var digitKeys = [...]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// New creates an engine. Zero option fields take defaults.
func New(opts Options) *Engine {
	if opts.Width <= 0 {
		opts.Width = 1280
	}
	if opts.Height <= 0 {
		opts.Height = 720
	}
	if opts.Zoom <= 0 {
		opts.Zoom = 1
	}
	if opts.Title == "" {
		opts.Title = "solar"
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = "screenshots"
	}
	return &Engine{
		opts:    opts,
		zoom:    opts.Zoom,
		parents: make(map[solar.NodeID]solar.NodeID),
	}
}

// CreateMesh records the shape and colour; textures are not loaded.
func (e *Engine) CreateMesh(g solar.GeometryDescriptor, m solar.MaterialDescriptor) solar.MeshHandle {
	e.meshes = append(e.meshes, meshInfo{
		kind:   g.Kind,
		radius: g.Radius,
		inner:  g.InnerRadius,
		fill:   parseColor(m.Color),
		glow:   m.Emissive,
	})
	return solar.MeshHandle(len(e.meshes))
}

// SetParent tracks the mirrored tree. Drawing uses the world matrices that
// arrive with each frame.
func (e *Engine) SetParent(node, parent solar.NodeID) {
	e.parents[node] = parent
}

// Parent returns the parent last set for node.
func (e *Engine) Parent(node solar.NodeID) (solar.NodeID, bool) {
	p, ok := e.parents[node]
	return p, ok
}

// SetLocalTransform is a no-op; see SetParent.
func (e *Engine) SetLocalTransform(solar.NodeID, mgl64.Vec3, mgl64.Vec3) {}

// RenderFrame copies the snapshot for the next Draw.
func (e *Engine) RenderFrame(f *solar.Frame) {
	meshes := append(e.frame.Meshes[:0], f.Meshes...)
	e.frame = *f
	e.frame.Meshes = meshes
}

// RequestNextFrame runs fn at the start of the next ebiten Update.
func (e *Engine) RequestNextFrame(fn func()) {
	e.pending = fn
}

// Screenshot queues a PNG capture at the end of the next Draw.
func (e *Engine) Screenshot(label string) {
	e.shots = append(e.shots, label)
}

// Run opens the window and blocks until it is closed or Escape is pressed.
func (e *Engine) Run() error {
	ebiten.SetWindowTitle(e.opts.Title)
	ebiten.SetWindowSize(e.opts.Width, e.opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	err := ebiten.RunGame(&game{e: e})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type game struct {
	e *Engine
}

func (g *game) Update() error {
	e := g.e
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	e.handleInput()
	e.runPending()
	return nil
}

// runPending runs the scheduled frame callback once.
func (e *Engine) runPending() {
	if fn := e.pending; fn != nil {
		e.pending = nil
		fn()
	}
}

func (e *Engine) handleInput() {
	for i, k := range digitKeys {
		if i < len(e.opts.Bodies) && inpututil.IsKeyJustPressed(k) {
			e.selectBody(e.opts.Bodies[i])
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		e.zoom *= zoomStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		e.zoom /= zoomStep
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if id, ok := pick(e.drawn, float64(x), float64(y)); ok {
			e.selectBody(id)
		}
	}
}

func (e *Engine) selectBody(id string) {
	if e.OnSelect != nil {
		e.OnSelect(id)
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	e := g.e
	screen.Fill(color.Black)
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()

	center := e.frame.CameraPosition
	target, ok := e.targetPosition()
	if !ok {
		target = center
	}
	ppu := viewScale(center, target, h, e.zoom)

	e.drawn = e.drawn[:0]
	for _, m := range e.frame.Meshes {
		if m.Mesh == 0 || int(m.Mesh) > len(e.meshes) {
			continue
		}
		info := e.meshes[m.Mesh-1]
		pos := m.World.Col(3).Vec3()
		x, y := project(pos, center, ppu, w, h)
		r := math.Max(info.radius*ppu, minDiskRadius)

		switch info.kind {
		case solar.GeometryRing:
			vector.StrokeCircle(screen, float32(x), float32(y), float32(info.inner*ppu), 1, info.fill, true)
			vector.StrokeCircle(screen, float32(x), float32(y), float32(info.radius*ppu), 1, info.fill, true)
		default:
			if info.glow {
				halo := info.fill.BlendLab(colorful.Color{}, 0.6)
				vector.DrawFilledCircle(screen, float32(x), float32(y), float32(r*1.15), halo, true)
			}
			vector.DrawFilledCircle(screen, float32(x), float32(y), float32(r), info.fill, true)
			if m.Kind == solar.NodeKindBody {
				e.drawn = append(e.drawn, drawnBody{id: m.Name, x: x, y: y, radius: math.Max(r, pickSlop)})
			}
		}
	}

	// Camera marker.
	vector.StrokeLine(screen, float32(w/2-4), float32(h/2), float32(w/2+4), float32(h/2), 1, color.White, false)
	vector.StrokeLine(screen, float32(w/2), float32(h/2-4), float32(w/2), float32(h/2+4), 1, color.White, false)

	ebitenutil.DebugPrint(screen, e.hud())
	e.flushScreenshots(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.e.opts.Width, g.e.opts.Height
}

func (e *Engine) targetPosition() (mgl64.Vec3, bool) {
	for _, m := range e.frame.Meshes {
		if m.Kind == solar.NodeKindBody && m.Name == e.frame.Target {
			return m.World.Col(3).Vec3(), true
		}
	}
	return mgl64.Vec3{}, false
}

func (e *Engine) hud() string {
	f := &e.frame
	return fmt.Sprintf("FPS %.1f  TPS %.1f\nframe %d  target %s  %s/%s  zoom %.2f\ncamera (%.1f, %.1f, %.1f)\n[1-%d] select  [+/-] zoom  [esc] quit",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		f.Number, f.Target, f.Strategy, f.State, e.zoom,
		f.CameraPosition.X(), f.CameraPosition.Y(), f.CameraPosition.Z(),
		min(len(e.opts.Bodies), len(digitKeys)))
}

const (
	zoomStep      = 1.25
	minDiskRadius = 1.5
	pickSlop      = 6
	// framing is how many camera-to-target distances fit in half the
	// screen height.
	framing = 3
)

// viewScale returns pixels per world unit so the camera-to-target distance
// spans 1/framing of half the screen height.
func viewScale(camera, target mgl64.Vec3, screenH int, zoom float64) float64 {
	d := math.Hypot(target.X()-camera.X(), target.Z()-camera.Z())
	if d < 1 {
		d = 1
	}
	return zoom * float64(screenH) / 2 / (framing * d)
}

// project maps a world position to screen pixels, looking down -Y with the
// camera at the screen centre.
func project(p, center mgl64.Vec3, ppu float64, w, h int) (x, y float64) {
	x = float64(w)/2 + (p.X()-center.X())*ppu
	y = float64(h)/2 + (p.Z()-center.Z())*ppu
	return x, y
}

// pick returns the topmost body whose disk contains (x, y).
func pick(bodies []drawnBody, x, y float64) (string, bool) {
	for i := len(bodies) - 1; i >= 0; i-- {
		b := bodies[i]
		if math.Hypot(x-b.x, y-b.y) <= b.radius {
			return b.id, true
		}
	}
	return "", false
}

// parseColor falls back to white for empty or malformed hex colours.
func parseColor(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return c
}
