package geometry

import (
	"testing"

	"github.com/loannaflip/dynamd/internal/model"
)

func TestApplyFloorsWidthHeight(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: -5, H: 0}
	bounds := Bounds{X: 0, Y: 0, W: 1920, H: 1080}
	out, changed := Apply(r, model.SizeHints{}, bounds, false, false)
	if out.W != 1 || out.H != 1 {
		t.Fatalf("expected w,h floored to 1, got %+v", out)
	}
	if !changed {
		t.Fatal("expected changed=true")
	}
}

func TestApplyTiledClampsToWorkArea(t *testing.T) {
	r := Rect{X: 2000, Y: 2000, W: 200, H: 200}
	bounds := Bounds{X: 0, Y: 0, W: 1920, H: 1080}
	out, _ := Apply(r, model.SizeHints{}, bounds, false, false)
	if out.X != bounds.W-200 || out.Y != bounds.H-200 {
		t.Fatalf("expected clamp into work area, got %+v", out)
	}
}

func TestApplyIncrementQuantization(t *testing.T) {
	hints := model.SizeHints{BaseW: 10, BaseH: 10, IncW: 8, IncH: 8, MinW: 10, MinH: 10}
	r := Rect{X: 0, Y: 0, W: 57, H: 61}
	bounds := Bounds{X: 0, Y: 0, W: 1920, H: 1080}
	out, _ := Apply(r, hints, bounds, false, true)
	if (out.W-hints.BaseW)%hints.IncW != 0 {
		t.Fatalf("expected width quantized to increment, got %d", out.W)
	}
	if (out.H-hints.BaseH)%hints.IncH != 0 {
		t.Fatalf("expected height quantized to increment, got %d", out.H)
	}
}

func TestApplyMinMaxClamp(t *testing.T) {
	hints := model.SizeHints{MinW: 100, MinH: 100, MaxW: 300, MaxH: 300}
	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	bounds := Bounds{X: 0, Y: 0, W: 1920, H: 1080}
	out, _ := Apply(r, hints, bounds, false, true)
	if out.W != 100 || out.H != 100 {
		t.Fatalf("expected clamp up to min, got %+v", out)
	}

	r2 := Rect{X: 0, Y: 0, W: 5000, H: 5000}
	out2, _ := Apply(r2, hints, bounds, false, true)
	if out2.W != 300 || out2.H != 300 {
		t.Fatalf("expected clamp down to max, got %+v", out2)
	}
}

func TestApplyNonFloatingSkipsHints(t *testing.T) {
	hints := model.SizeHints{MinW: 500, MinH: 500}
	r := Rect{X: 0, Y: 0, W: 50, H: 50}
	bounds := Bounds{X: 0, Y: 0, W: 1920, H: 1080}
	out, _ := Apply(r, hints, bounds, false, false)
	if out.W != 50 || out.H != 50 {
		t.Fatalf("tiled non-floating geometry should not be hint-clamped, got %+v", out)
	}
}

func TestIsFixed(t *testing.T) {
	fixed := model.SizeHints{MaxW: 100, MaxH: 100, MinW: 100, MinH: 100}
	if !fixed.IsFixed() {
		t.Fatal("expected IsFixed true when max==min on both axes")
	}
	notFixed := model.SizeHints{MaxW: 200, MaxH: 100, MinW: 100, MinH: 100}
	if notFixed.IsFixed() {
		t.Fatal("expected IsFixed false when axes differ")
	}
}
