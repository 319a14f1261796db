package solar

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

//go:embed solar.toml
var defaultTablesTOML []byte

// TweenTarget is a tuned world-space camera framing position on the XZ plane.
// It is curated per body and need not match the body's own distance.
type TweenTarget struct {
	X, Z float64
}

// Vec3 returns the target as a world position with Y = 0.
func (t TweenTarget) Vec3() mgl64.Vec3 { return mgl64.Vec3{t.X, 0, t.Z} }

// Tables are the per-body tuning tables: the bodies themselves, the Reparent
// lookout offsets and the Tween targets. Read once at startup.
type Tables struct {
	Bodies       []Body
	Lookouts     map[string]mgl64.Vec3
	TweenTargets map[string]TweenTarget
}

// Lookout returns the camera's local offset for framing id under the
// Reparent strategy.
func (t *Tables) Lookout(id string) (mgl64.Vec3, error) {
	v, ok := t.Lookouts[id]
	if !ok {
		return mgl64.Vec3{}, &NotFoundError{ID: id, Table: "lookouts"}
	}
	return v, nil
}

// TweenTarget returns the camera's world framing position for id under the
// Tween strategy.
func (t *Tables) TweenTarget(id string) (TweenTarget, error) {
	v, ok := t.TweenTargets[id]
	if !ok {
		return TweenTarget{}, &NotFoundError{ID: id, Table: "tween targets"}
	}
	return v, nil
}

// --- TOML layout ---

type tablesFile struct {
	Bodies []bodyEntry `toml:"body"`
}

type appearanceEntry struct {
	Texture   string `toml:"texture"`
	NormalMap string `toml:"normal_map"`
	Color     string `toml:"color"`
	Emissive  bool   `toml:"emissive"`
}

type bodyEntry struct {
	ID           string    `toml:"id"`
	Radius       float64   `toml:"radius"`
	Distance     float64   `toml:"distance"`
	RotationRate float64   `toml:"rotation_rate"`
	Tumble       float64   `toml:"tumble"`
	Tilt         float64   `toml:"tilt"`
	Lookout      []float64 `toml:"lookout"`
	TweenTarget  []float64 `toml:"tween_target"`
	appearanceEntry
	Satellites []satelliteEntry `toml:"satellite"`
	Rings      []ringEntry      `toml:"ring"`
}

type satelliteEntry struct {
	ID         string  `toml:"id"`
	Radius     float64 `toml:"radius"`
	Distance   float64 `toml:"distance"`
	OrbitRate  float64 `toml:"orbit_rate"`
	Precession float64 `toml:"precession"`
	SpinRate   float64 `toml:"spin_rate"`
	appearanceEntry
}

type ringEntry struct {
	Inner float64 `toml:"inner"`
	Outer float64 `toml:"outer"`
	Tilt  float64 `toml:"tilt"`
	appearanceEntry
}

// DefaultTables parses the embedded solar system table.
func DefaultTables() (*Tables, error) {
	return ParseTables(defaultTablesTOML)
}

// LoadTables reads a TOML table from path.
func LoadTables(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tables: %w", err)
	}
	t, err := ParseTables(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParseTables decodes a TOML body table. Unknown keys are an error.
func ParseTables(data []byte) (*Tables, error) {
	var f tablesFile
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("parse tables: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("parse tables: unknown keys %s", strings.Join(keys, ", "))
	}
	if len(f.Bodies) == 0 {
		return nil, errors.New("parse tables: no bodies")
	}

	t := &Tables{
		Bodies:       make([]Body, 0, len(f.Bodies)),
		Lookouts:     make(map[string]mgl64.Vec3, len(f.Bodies)),
		TweenTargets: make(map[string]TweenTarget, len(f.Bodies)),
	}
	for _, e := range f.Bodies {
		b, err := e.body()
		if err != nil {
			return nil, fmt.Errorf("parse tables: %w", err)
		}
		t.Bodies = append(t.Bodies, b)

		switch len(e.Lookout) {
		case 0:
		case 3:
			t.Lookouts[e.ID] = mgl64.Vec3{e.Lookout[0], e.Lookout[1], e.Lookout[2]}
		default:
			return nil, fmt.Errorf("parse tables: body %q: lookout needs 3 values, got %d", e.ID, len(e.Lookout))
		}
		switch len(e.TweenTarget) {
		case 0:
		case 2:
			t.TweenTargets[e.ID] = TweenTarget{X: e.TweenTarget[0], Z: e.TweenTarget[1]}
		default:
			return nil, fmt.Errorf("parse tables: body %q: tween_target needs 2 values, got %d", e.ID, len(e.TweenTarget))
		}
	}
	return t, nil
}

func (e bodyEntry) body() (Body, error) {
	app, err := e.appearance(e.ID)
	if err != nil {
		return Body{}, err
	}
	b := Body{
		ID:           e.ID,
		Radius:       e.Radius,
		Distance:     e.Distance,
		RotationRate: e.RotationRate,
		Tumble:       e.Tumble,
		Tilt:         e.Tilt,
		Appearance:   app,
	}
	for _, s := range e.Satellites {
		sapp, err := s.appearance(s.ID)
		if err != nil {
			return Body{}, err
		}
		b.Satellites = append(b.Satellites, Satellite{
			ID:         s.ID,
			Radius:     s.Radius,
			Distance:   s.Distance,
			OrbitRate:  s.OrbitRate,
			Precession: s.Precession,
			SpinRate:   s.SpinRate,
			Appearance: sapp,
		})
	}
	for i, r := range e.Rings {
		rapp, err := r.appearance(fmt.Sprintf("%s ring %d", e.ID, i))
		if err != nil {
			return Body{}, err
		}
		b.Rings = append(b.Rings, Ring{Inner: r.Inner, Outer: r.Outer, Tilt: r.Tilt, Appearance: rapp})
	}
	return b, nil
}

func (a appearanceEntry) appearance(owner string) (Appearance, error) {
	if a.Color != "" {
		if _, err := colorful.Hex(a.Color); err != nil {
			return Appearance{}, fmt.Errorf("%s: color %q: %w", owner, a.Color, err)
		}
	}
	return Appearance{
		Texture:   a.Texture,
		NormalMap: a.NormalMap,
		Color:     a.Color,
		Emissive:  a.Emissive,
	}, nil
}
