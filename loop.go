package solar

import "time"

// maxFrameDelta caps a single measured frame so a stalled host does not
// fling every body half a turn.
const maxFrameDelta = 0.25

// LoopOptions configures a RenderLoop. Zero values take the scene config.
type LoopOptions struct {
	FrameRate float64
	// ScaleByDelta overrides the config's scale_by_delta when non-nil.
	ScaleByDelta *bool
	// Now is the clock used when delta scaling is on. Defaults to time.Now.
	Now func() time.Time
	// Gate holds the loop until assets are ready. Defaults to a new gate.
	Gate *Gate
}

// RenderLoop drives a scene from the engine's frame callback. Each frame it
// updates the scene, asks the engine to render it and re-schedules itself.
type RenderLoop struct {
	scene        *Scene
	engine       Engine
	opts         LoopOptions
	scaleByDelta bool
	last         time.Time
}

// NewRenderLoop creates a loop for scene on engine.
func NewRenderLoop(scene *Scene, engine Engine, opts LoopOptions) *RenderLoop {
	cfg := scene.Config()
	if opts.FrameRate <= 0 {
		opts.FrameRate = cfg.FrameRate
	}
	scaleByDelta := cfg.ScaleByDelta
	if opts.ScaleByDelta != nil {
		scaleByDelta = *opts.ScaleByDelta
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Gate == nil {
		opts.Gate = NewGate()
	}
	return &RenderLoop{scene: scene, engine: engine, opts: opts, scaleByDelta: scaleByDelta}
}

// Gate returns the loop's readiness gate.
func (l *RenderLoop) Gate() *Gate { return l.opts.Gate }

// RunForever waits for the gate, binds the scene to the engine if needed and
// schedules the first frame. If the engine owns the frame loop (FrameHost)
// it then blocks until the host tears down; otherwise it returns and the
// engine keeps calling back. There is no stop operation.
func (l *RenderLoop) RunForever() error {
	l.opts.Gate.Wait()
	if l.scene.Engine() != l.engine {
		l.scene.Bind(l.engine)
	}
	l.scene.log.Debug().
		Float64("frame_rate", l.opts.FrameRate).
		Bool("scale_by_delta", l.scaleByDelta).
		Msg("render loop starting")
	l.engine.RequestNextFrame(l.Frame)
	if host, ok := l.engine.(FrameHost); ok {
		return host.Run()
	}
	return nil
}

// Frame runs one frame: scene update (targeter, then orbit animator), render,
// re-schedule.
func (l *RenderLoop) Frame() {
	seconds, ticks := l.step()
	l.scene.Update(seconds, ticks)
	l.scene.Render()
	l.engine.RequestNextFrame(l.Frame)
}

// step returns this frame's advance in seconds and in rotation ticks.
// Frame-coupled by default: one tick and 1/FrameRate seconds per frame.
func (l *RenderLoop) step() (seconds, ticks float64) {
	nominal := 1 / l.opts.FrameRate
	if !l.scaleByDelta {
		return nominal, 1
	}
	now := l.opts.Now()
	if l.last.IsZero() {
		l.last = now
		return nominal, 1
	}
	elapsed := now.Sub(l.last).Seconds()
	l.last = now
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > maxFrameDelta {
		elapsed = maxFrameDelta
	}
	return elapsed, elapsed * l.opts.FrameRate
}
