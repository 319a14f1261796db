package solar

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestDefaultTables(t *testing.T) {
	tables, err := DefaultTables()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"sun", "mercury", "venus", "earth", "mars", "jupiter", "saturn", "uranus", "neptune"}
	if len(tables.Bodies) != len(want) {
		t.Fatalf("bodies = %d, want %d", len(tables.Bodies), len(want))
	}
	for i, id := range want {
		if tables.Bodies[i].ID != id {
			t.Errorf("body %d = %q, want %q", i, tables.Bodies[i].ID, id)
		}
		if _, err := tables.Lookout(id); err != nil {
			t.Errorf("lookout %s: %v", id, err)
		}
		if _, err := tables.TweenTarget(id); err != nil {
			t.Errorf("tween target %s: %v", id, err)
		}
	}
}

func TestDefaultTablesValues(t *testing.T) {
	tables, err := DefaultTables()
	if err != nil {
		t.Fatal(err)
	}
	lookouts := map[string]mgl64.Vec3{
		"sun":     {2000, 0, -5},
		"earth":   {18, 0, -5},
		"jupiter": {204, 0, -10},
		"neptune": {70, 0, -15},
	}
	for id, want := range lookouts {
		got, _ := tables.Lookout(id)
		if got != want {
			t.Errorf("lookout %s = %v, want %v", id, got, want)
		}
	}
	targets := map[string]TweenTarget{
		"sun":    {2000, -5},
		"earth":  {10618, -5},
		"mars":   {16210, -2},
		"saturn": {102170, -10},
	}
	for id, want := range targets {
		got, _ := tables.TweenTarget(id)
		if got != want {
			t.Errorf("tween target %s = %v, want %v", id, got, want)
		}
	}

	var earth, saturn Body
	for _, b := range tables.Bodies {
		switch b.ID {
		case "earth":
			earth = b
		case "saturn":
			saturn = b
		}
	}
	if len(earth.Satellites) != 1 || earth.Satellites[0].ID != "moon" || earth.Satellites[0].Distance != 27 {
		t.Errorf("earth satellites = %+v", earth.Satellites)
	}
	if len(saturn.Rings) != 2 || saturn.Rings[0].Inner != 95 || saturn.Rings[1].Outer != 125 {
		t.Errorf("saturn rings = %+v", saturn.Rings)
	}
}

func TestTablesNotFound(t *testing.T) {
	tables, err := DefaultTables()
	if err != nil {
		t.Fatal(err)
	}
	_, err = tables.Lookout("pluto")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Lookout(pluto) = %v", err)
	}
	_, err = tables.TweenTarget("pluto")
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.ID != "pluto" || nf.Table != "tween targets" {
		t.Errorf("TweenTarget(pluto) = %v", err)
	}
}

func TestTweenTargetVec3(t *testing.T) {
	if got := (TweenTarget{X: 4108, Z: -2}).Vec3(); got != (mgl64.Vec3{4108, 0, -2}) {
		t.Errorf("Vec3 = %v", got)
	}
}

func TestParseTablesErrors(t *testing.T) {
	cases := []struct {
		name, src, want string
	}{
		{"empty", ``, "no bodies"},
		{"syntax", `[[body]`, "parse tables"},
		{"unknown key", "[[body]]\nid = \"sun\"\nradius = 1.0\nmass = 2.0\n", "mass"},
		{"lookout arity", "[[body]]\nid = \"sun\"\nradius = 1.0\nlookout = [1.0, 2.0]\n", "lookout needs 3"},
		{"tween arity", "[[body]]\nid = \"sun\"\nradius = 1.0\ntween_target = [1.0]\n", "tween_target needs 2"},
		{"bad color", "[[body]]\nid = \"sun\"\nradius = 1.0\ncolor = \"yellow\"\n", "color"},
	}
	for _, tc := range cases {
		_, err := ParseTables([]byte(tc.src))
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: error %q does not mention %q", tc.name, err, tc.want)
		}
	}
}

func TestLoadTablesMissingFile(t *testing.T) {
	if _, err := LoadTables("does/not/exist.toml"); err == nil {
		t.Error("expected error")
	}
}
