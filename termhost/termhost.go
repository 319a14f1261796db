// Package termhost is a terminal solar.Engine built on bubbletea. It draws a
// log-scaled top-down map of the scene and turns key presses into
// selections.
package termhost

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/DakotaStorm/solar"
)

// Options configures the terminal host.
type Options struct {
	// Bodies are the ids bound to keys 1-9, in order.
	Bodies []string
	// FrameRate is how often the frame callback runs. Defaults to 30.
	FrameRate float64
	// ProgramOptions are passed to tea.NewProgram after WithAltScreen.
	ProgramOptions []tea.ProgramOption
}

type meshInfo struct {
	kind   solar.GeometryKind
	radius float64
	color  string
}

// Engine implements solar.Engine and solar.FrameHost.
type Engine struct {
	// OnSelect receives body ids picked with the keyboard. It runs on the
	// program goroutine, which is also the frame goroutine.
	OnSelect func(id string)

	opts    Options
	meshes  []meshInfo
	pending func()
	frame   solar.Frame
	zoom    int
	width   int
	height  int
}

// Discrete zoom levels.
var zoomLevels = []float64{0.5, 0.75, 1.0, 1.5, 2.0, 3.0, 5.0}

const defaultZoom = 2

// New creates a terminal engine.
func New(opts Options) *Engine {
	if opts.FrameRate <= 0 {
		opts.FrameRate = 30
	}
	return &Engine{opts: opts, zoom: defaultZoom, width: 80, height: 24}
}

// CreateMesh records the shape and colour.
func (e *Engine) CreateMesh(g solar.GeometryDescriptor, m solar.MaterialDescriptor) solar.MeshHandle {
	e.meshes = append(e.meshes, meshInfo{kind: g.Kind, radius: g.Radius, color: m.Color})
	return solar.MeshHandle(len(e.meshes))
}

// SetParent is a no-op; the map is drawn from world matrices.
func (e *Engine) SetParent(solar.NodeID, solar.NodeID) {}

// SetLocalTransform is a no-op; the map is drawn from world matrices.
func (e *Engine) SetLocalTransform(solar.NodeID, mgl64.Vec3, mgl64.Vec3) {}

// RenderFrame copies the snapshot for the next View.
func (e *Engine) RenderFrame(f *solar.Frame) {
	meshes := append(e.frame.Meshes[:0], f.Meshes...)
	e.frame = *f
	e.frame.Meshes = meshes
}

// RequestNextFrame runs fn on the next tick.
func (e *Engine) RequestNextFrame(fn func()) {
	e.pending = fn
}

// Run starts the program and blocks until the user quits.
func (e *Engine) Run() error {
	opts := append([]tea.ProgramOption{tea.WithAltScreen()}, e.opts.ProgramOptions...)
	_, err := tea.NewProgram(model{e: e}, opts...).Run()
	return err
}

func (e *Engine) runPending() {
	if fn := e.pending; fn != nil {
		e.pending = nil
		fn()
	}
}

func (e *Engine) scale() float64 {
	if e.zoom < 0 || e.zoom >= len(zoomLevels) {
		return 1
	}
	return zoomLevels[e.zoom]
}

// --- bubbletea model ---

type tickMsg time.Time

type model struct {
	e *Engine
}

func (m model) tick() tea.Cmd {
	d := time.Duration(float64(time.Second) / m.e.opts.FrameRate)
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Init() tea.Cmd {
	return m.tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	e := m.e
	switch msg := msg.(type) {
	case tickMsg:
		e.runPending()
		return m, m.tick()
	case tea.WindowSizeMsg:
		e.width, e.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch k := msg.String(); k {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "+", "=":
			if e.zoom < len(zoomLevels)-1 {
				e.zoom++
			}
		case "-":
			if e.zoom > 0 {
				e.zoom--
			}
		case "0":
			e.zoom = defaultZoom
		default:
			if id, ok := bodyForKey(k, e.opts.Bodies); ok && e.OnSelect != nil {
				e.OnSelect(id)
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	return m.e.view()
}

// bodyForKey maps "1".."9" to bodies[0..8].
func bodyForKey(k string, bodies []string) (string, bool) {
	if len(k) != 1 || k[0] < '1' || k[0] > '9' {
		return "", false
	}
	i := int(k[0] - '1')
	if i >= len(bodies) {
		return "", false
	}
	return bodies[i], true
}

// --- rendering ---

var (
	hudStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	focusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	cameraStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27")).Bold(true)
	orbitStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

type cell struct {
	r     rune
	style *lipgloss.Style
	color string
}

// labelRows staggers labels above and below bodies that share a row.
var labelRows = [...]int{-1, 1, -2, 2}

// logUnit is the world distance mapped to one log decade's offset.
const logUnit = 1000

// logRadius compresses a world distance: log10(r/logUnit + 1).
func logRadius(r float64) float64 {
	return math.Log10(r/logUnit + 1)
}

// project maps a world position to canvas cells around the origin, keeping
// direction and log-scaling distance. Terminal cells are about twice as tall
// as wide, so y is halved.
func project(p mgl64.Vec3, cx, cy int, displayScale float64) (int, int) {
	r := math.Hypot(p.X(), p.Z())
	if r == 0 {
		return cx, cy
	}
	d := logRadius(r) * displayScale
	x := cx + int(math.Round(p.X()/r*d))
	y := cy + int(math.Round(p.Z()/r*d*0.5))
	return x, y
}

func (e *Engine) view() string {
	w := e.width
	h := e.height - 3
	if w < 40 || h < 8 {
		return "Terminal too small for the solar map"
	}

	grid := make([][]cell, h)
	for y := range grid {
		grid[y] = make([]cell, w)
		for x := range grid[y] {
			grid[y][x] = cell{r: ' '}
		}
	}
	cx, cy := w/2, h/2

	// Fit the outermost body in half the canvas width at zoom 1.
	maxR := 0.0
	for _, m := range e.frame.Meshes {
		if m.Kind == solar.NodeKindBody {
			maxR = math.Max(maxR, logRadius(translation(m.World).Len()))
		}
	}
	if maxR == 0 {
		maxR = 1
	}
	displayScale := float64(min(cx, cy*2)) * 0.9 / maxR * e.scale()

	put := func(x, y int, c cell) bool {
		if x < 0 || x >= w || y < 0 || y >= h {
			return false
		}
		grid[y][x] = c
		return true
	}

	// Orbit guides for every body.
	for _, m := range e.frame.Meshes {
		if m.Kind != solar.NodeKindBody {
			continue
		}
		p := translation(m.World)
		r := logRadius(math.Hypot(p.X(), p.Z())) * displayScale
		drawCircle(grid, cx, cy, r)
	}

	type label struct {
		x, y  int
		text  string
		focus bool
	}
	var labels []label
	for _, m := range e.frame.Meshes {
		if m.Kind != solar.NodeKindBody || m.Mesh == 0 || int(m.Mesh) > len(e.meshes) {
			continue
		}
		info := e.meshes[m.Mesh-1]
		x, y := project(translation(m.World), cx, cy, displayScale)
		focus := m.Name == e.frame.Target
		c := cell{r: glyph(info.radius), color: info.color}
		if focus {
			c.style = &focusStyle
		}
		if put(x, y, c) {
			labels = append(labels, label{x: x, y: y + labelRows[len(labels)%len(labelRows)], text: m.Name, focus: focus})
		}
	}
	for _, l := range labels {
		if l.y < 0 || l.y >= h {
			continue
		}
		for i, r := range l.text {
			if l.x+i >= w {
				break
			}
			if c := grid[l.y][l.x+i].r; c != ' ' && c != '·' {
				break
			}
			c := cell{r: r, style: &hudStyle}
			if l.focus {
				c.style = &focusStyle
			}
			grid[l.y][l.x+i] = c
		}
	}
	cam := e.frame.CameraPosition
	if x, y := project(cam, cx, cy, displayScale); x >= 0 && x < w && y >= 0 && y < h {
		grid[y][x] = cell{r: '+', style: &cameraStyle}
	}

	var b strings.Builder
	for y, row := range grid {
		for _, c := range row {
			b.WriteString(c.render())
		}
		if y < len(grid)-1 {
			b.WriteByte('\n')
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, b.String(), e.hud())
}

func (c cell) render() string {
	switch {
	case c.style != nil:
		return c.style.Render(string(c.r))
	case c.color != "":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c.color)).Render(string(c.r))
	case c.r == '·':
		return orbitStyle.Render(string(c.r))
	default:
		return string(c.r)
	}
}

func (e *Engine) hud() string {
	f := &e.frame
	line1 := fmt.Sprintf("target %s  %s/%s  frame %d  zoom %.2fx",
		f.Target, f.Strategy, f.State, f.Number, e.scale())
	line2 := fmt.Sprintf("camera (%.1f, %.1f, %.1f)", f.CameraPosition.X(), f.CameraPosition.Y(), f.CameraPosition.Z())
	line3 := fmt.Sprintf("[1-%d] select  [+/-/0] zoom  [q] quit", min(len(e.opts.Bodies), 9))
	return hudStyle.Render(strings.Join([]string{line1, line2, line3}, "\n"))
}

// glyph picks a body symbol by size.
func glyph(radius float64) rune {
	switch {
	case radius >= 500:
		return '☉'
	case radius >= 30:
		return 'O'
	case radius >= 8:
		return 'o'
	default:
		return '•'
	}
}

func drawCircle(grid [][]cell, cx, cy int, r float64) {
	if r < 1 {
		return
	}
	h := len(grid)
	w := len(grid[0])
	steps := int(2 * math.Pi * r)
	steps = max(8, min(steps, 360))
	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		x := cx + int(r*math.Cos(theta))
		y := cy - int(r*math.Sin(theta)*0.5)
		if x >= 0 && x < w && y >= 0 && y < h && grid[y][x].r == ' ' {
			grid[y][x] = cell{r: '·'}
		}
	}
}

func translation(m mgl64.Mat4) mgl64.Vec3 {
	return m.Col(3).Vec3()
}
