package solar

import (
	"fmt"
	"strings"
)

// NodeKind distinguishes what a hierarchy node carries.
type NodeKind uint8

const (
	NodeKindPivot       NodeKind = iota // transform-only anchor
	NodeKindBody                        // star or planet mesh
	NodeKindSatellite                   // satellite mesh (moon)
	NodeKindRing                        // ring mesh around a body
	NodeKindCameraPivot                 // camera rig pivot
	NodeKindCamera                      // the camera itself
)

func (k NodeKind) String() string {
	switch k {
	case NodeKindPivot:
		return "pivot"
	case NodeKindBody:
		return "body"
	case NodeKindSatellite:
		return "satellite"
	case NodeKindRing:
		return "ring"
	case NodeKindCameraPivot:
		return "camera-pivot"
	case NodeKindCamera:
		return "camera"
	default:
		return "unknown"
	}
}

// Strategy selects how the camera reaches a selected body.
type Strategy uint8

const (
	// StrategyReparent attaches the camera rig under the selected body.
	StrategyReparent Strategy = iota
	// StrategyTween eases the camera across the scene to a framing position.
	StrategyTween
)

func (s Strategy) String() string {
	switch s {
	case StrategyReparent:
		return "reparent"
	case StrategyTween:
		return "tween"
	default:
		return "unknown"
	}
}

// ParseStrategy parses "reparent" or "tween" (case-insensitive).
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reparent", "":
		return StrategyReparent, nil
	case "tween":
		return StrategyTween, nil
	default:
		return 0, fmt.Errorf("unknown camera strategy %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// TargetState is the camera target controller state.
type TargetState uint8

const (
	StateIdle      TargetState = iota // no target engaged or transition finished
	StateSelecting                    // a selection handler is running
	StateActive                       // target engaged
)

func (s TargetState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelecting:
		return "selecting"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// DefaultTarget is the body the camera frames at startup.
const DefaultTarget = "sun"
