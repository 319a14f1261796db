package solar

import (
	"time"

	"github.com/rs/zerolog"
)

// debugStats accumulates per-frame timings while debug mode is on.
type debugStats struct {
	updateTime time.Duration
	renderTime time.Duration
	meshCount  int
}

// debugLogEvery is how many frames pass between debug stat lines.
const debugLogEvery = 120

// SetDebugMode enables or disables debug mode. When enabled, update and
// render timings are logged every debugLogEvery frames and hierarchy depth
// warnings are emitted on attach.
//
// The depth check is package-wide: the last Scene to call SetDebugMode sets
// it, and its logger, for every hierarchy in the process.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	debugLogger = s.log
}

// globalDebug mirrors the most recently set Scene debug flag so hierarchy
// operations (which lack a Scene pointer) can check it cheaply.
var (
	globalDebug bool
	debugLogger = zerolog.Nop()
)

func (s *Scene) debugUpdate(d time.Duration) {
	s.stats.updateTime += d
}

func (s *Scene) debugRender(d time.Duration) {
	s.stats.renderTime += d
	s.stats.meshCount = len(s.frame.Meshes)
	if s.frames%debugLogEvery != 0 {
		return
	}
	s.log.Debug().
		Uint64("frame", s.frames).
		Dur("update_avg", s.stats.updateTime/debugLogEvery).
		Dur("render_avg", s.stats.renderTime/debugLogEvery).
		Int("meshes", s.stats.meshCount).
		Int("nodes", s.h.Len()).
		Str("target", s.targeter.Target()).
		Stringer("state", s.targeter.State()).
		Msg("frame stats")
	s.stats = debugStats{}
}

// debugMaxTreeDepth is the depth past which attach logs a warning.
const debugMaxTreeDepth = 16

func debugCheckTreeDepth(h *Hierarchy, id NodeID) {
	if d := h.Depth(id); d > debugMaxTreeDepth {
		debugLogger.Warn().
			Int("depth", d).
			Int("threshold", debugMaxTreeDepth).
			Str("node", h.Name(id)).
			Msg("hierarchy depth exceeds threshold")
	}
}
