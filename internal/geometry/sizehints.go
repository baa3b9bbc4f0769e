// Package geometry implements the size-hint and monitor-clamping engine
// from spec.md §4.5, a direct translation of dynamd.c's applysizehints.
package geometry

import "github.com/loannaflip/dynamd/internal/model"

// Rect is a candidate window rectangle.
type Rect struct {
	X, Y, W, H int
}

// Bounds is the rectangle geometry is clamped into: either the whole
// screen (interactive move/resize) or the monitor's work area (tiled
// placement).
type Bounds struct {
	X, Y, W, H int
}

// Apply mirrors applysizehints(c, x, y, w, h, interactive) -> changed?.
// floatingLike is true when the client is floating or the active layout is
// the floating sentinel (dynamd.c: `!lt[sellt]->arrange || c->isfloating`);
// only then does ICCCM aspect/increment quantization apply.
func Apply(r Rect, hints model.SizeHints, bounds Bounds, interactive, floatingLike bool) (Rect, bool) {
	out := r

	// baseline: width/height floor at 1 (dynamd.c's unconditional clamp).
	if out.W < 1 {
		out.W = 1
	}
	if out.H < 1 {
		out.H = 1
	}

	if interactive {
		if out.X > bounds.W {
			out.X = bounds.W - out.W
		}
		if out.Y > bounds.H {
			out.Y = bounds.H - out.H
		}
		if out.X+out.W < 0 {
			out.X = 0
		}
		if out.Y+out.H < 0 {
			out.Y = 0
		}
	} else {
		if out.X >= bounds.X+bounds.W {
			out.X = bounds.X + bounds.W - out.W
		}
		if out.Y >= bounds.Y+bounds.H {
			out.Y = bounds.Y + bounds.H - out.H
		}
		if out.X+out.W <= bounds.X {
			out.X = bounds.X
		}
		if out.Y+out.H <= bounds.Y {
			out.Y = bounds.Y
		}
	}

	if out.H < 1 {
		out.H = 1
	}
	if out.W < 1 {
		out.W = 1
	}

	if floatingLike {
		baseIsMin := hints.BaseW == hints.MinW && hints.BaseH == hints.MinH
		if !baseIsMin {
			out.W -= hints.BaseW
			out.H -= hints.BaseH
		}

		// aspect ratio clamp (ICCCM §4.1.2.3).
		if hints.MinAspect > 0 && hints.MaxAspect > 0 {
			fw, fh := float64(out.W), float64(out.H)
			if fh > 0 && fw/fh < hints.MinAspect {
				out.W = int(float64(out.H) * hints.MinAspect)
			} else if fh > 0 && fw/fh > hints.MaxAspect {
				out.H = int(float64(out.W) / hints.MaxAspect)
			}
		}

		if baseIsMin {
			out.W -= hints.BaseW
			out.H -= hints.BaseH
		}

		if hints.IncW != 0 {
			out.W -= out.W % hints.IncW
		}
		if hints.IncH != 0 {
			out.H -= out.H % hints.IncH
		}

		out.W += hints.BaseW
		out.H += hints.BaseH

		if hints.MinW > 0 && out.W < hints.MinW {
			out.W = hints.MinW
		}
		if hints.MinH > 0 && out.H < hints.MinH {
			out.H = hints.MinH
		}
		if hints.MaxW > 0 && out.W > hints.MaxW {
			out.W = hints.MaxW
		}
		if hints.MaxH > 0 && out.H > hints.MaxH {
			out.H = hints.MaxH
		}
	}

	if out.W < 1 {
		out.W = 1
	}
	if out.H < 1 {
		out.H = 1
	}

	changed := out.X != r.X || out.Y != r.Y || out.W != r.W || out.H != r.H
	return out, changed
}

// TiledBounds converts a monitor's work area plus its configured outer
// gaps into the Bounds tiled placement is clamped to. It uses outerH and
// outerV as given; the caller passes zero for the "outer gaps vanish at 1
// visible client" rule (model.Monitor.OuterGapsEffective, spec.md §4.3).
func TiledBounds(m *model.Monitor, outerH, outerV int) Bounds {
	return Bounds{
		X: m.WX + outerH,
		Y: m.WY + outerV,
		W: m.WW - 2*outerH,
		H: m.WH - 2*outerV,
	}
}
