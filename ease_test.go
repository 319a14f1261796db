package solar

import (
	"slices"
	"testing"
)

func TestEasingLookup(t *testing.T) {
	if _, err := Easing(DefaultEasing); err != nil {
		t.Fatalf("default easing: %v", err)
	}
	if _, err := Easing("back.out"); err == nil {
		t.Error("overshooting easing should not be listed")
	}
	ids := EasingIDs()
	if !slices.IsSorted(ids) || !slices.Contains(ids, "linear") {
		t.Errorf("EasingIDs = %v", ids)
	}
}

func TestEasingsStayInRange(t *testing.T) {
	// Every listed curve starts at 0, ends at 1 and never leaves [0, 1].
	for _, id := range EasingIDs() {
		fn, _ := Easing(id)
		if v := fn(0, 0, 1, 1); v != 0 {
			t.Errorf("%s(0) = %v", id, v)
		}
		if v := fn(1, 0, 1, 1); v < 0.999 || v > 1.001 {
			t.Errorf("%s(1) = %v", id, v)
		}
		for i := 1; i < 100; i++ {
			v := fn(float32(i)/100, 0, 1, 1)
			if v < -1e-6 || v > 1+1e-6 {
				t.Errorf("%s(%v) = %v out of range", id, float32(i)/100, v)
				break
			}
		}
	}
}
