// Package layout implements the twelve tiling arrangement algorithms of
// spec.md §4.3, each translated directly from the corresponding function
// in original_source/src/dynamd.c. Every Arrange function has the pure
// signature (work area, client count, parameters) -> per-client
// rectangles; the caller (wm.arrange) is responsible for pushing the
// resulting rectangles through geometry.Apply and the server adapter.
package layout

import (
	"math"

	"github.com/loannaflip/dynamd/internal/geometry"
	"github.com/loannaflip/dynamd/internal/model"
)

// Tile is the minimal per-client input a layout needs: its stable id (so
// the caller can map the returned Placement back to a model.Client) plus
// nothing else — arrange functions are geometry-only and never touch
// client flags.
type Tile struct {
	ID model.ClientID
}

// Placement is one tile's computed rectangle, pre-size-hint-clamp.
type Placement struct {
	ID   model.ClientID
	Rect geometry.Rect
}

// Params bundles the monitor-level knobs every arrange function reads.
type Params struct {
	Area    geometry.Bounds // work area minus outer gaps (geometry.TiledBounds)
	NMaster int
	MFact   float64
	GapIH   int // inner horizontal gap between adjacent tiles
	GapIV   int // inner vertical gap between adjacent tiles
}

// Arrange is the common shape of all twelve layouts plus the "floating"
// sentinel (represented by a nil Arrange in the layout table, per
// spec.md §3's Layout type).
type Arrange func(tiles []Tile, p Params) []Placement

// distribute implements the "getfacts" helper (spec.md §4.3): split
// extent across n slots so the first `extent % n` slots get one extra
// pixel, conserving the total extent exactly. Early indices win ties.
func distribute(extent, n int) (base, extra int) {
	if n <= 0 {
		return 0, 0
	}
	base = extent / n
	extra = extent % n
	return
}

func clampMFact(f float64) float64 {
	if f < 0.05 {
		return 0.05
	}
	if f > 0.95 {
		return 0.95
	}
	return f
}

func clampNMaster(n, total int) int {
	if n < 0 {
		return 0
	}
	if n > total {
		return total
	}
	return n
}

// Tile: master column left, stack column right (dynamd.c's tile()).
func Tile(tiles []Tile, p Params) []Placement {
	n := len(tiles)
	if n == 0 {
		return nil
	}
	nmaster := clampNMaster(p.NMaster, n)
	out := make([]Placement, 0, n)

	mw := p.Area.W
	if n > nmaster {
		mw = int(float64(p.Area.W) * clampMFact(p.MFact))
		if nmaster == 0 {
			mw = 0
		}
	}
	masterGapIV := 0
	if n > nmaster {
		masterGapIV = p.GapIV
	}

	my, ty := 0, 0
	for i, t := range tiles {
		if i < nmaster {
			h, extra := distribute(p.Area.H-my, nmaster-i)
			hh := h
			if 0 < extra {
				hh++
			}
			if i == nmaster-1 {
				hh = p.Area.H - my
			}
			out = append(out, Placement{ID: t.ID, Rect: geometry.Rect{
				X: p.Area.X, Y: p.Area.Y + my,
				W: mw - masterGapIV, H: hh,
			}})
			my += hh + p.GapIH
		} else {
			h, extra := distribute(p.Area.H-ty, n-i)
			hh := h
			if 0 < extra {
				hh++
			}
			if i == n-1 {
				hh = p.Area.H - ty
			}
			out = append(out, Placement{ID: t.ID, Rect: geometry.Rect{
				X: p.Area.X + mw, Y: p.Area.Y + ty,
				W: p.Area.W - mw, H: hh,
			}})
			ty += hh + p.GapIH
		}
	}
	return out
}

// Deck: like Tile, but every stack tile shares the same rectangle — a
// pile the user cycles through by focus (dynamd.c's deck()).
func Deck(tiles []Tile, p Params) []Placement {
	n := len(tiles)
	if n == 0 {
		return nil
	}
	nmaster := clampNMaster(p.NMaster, n)
	out := make([]Placement, 0, n)

	mw := p.Area.W
	if n > nmaster && nmaster > 0 {
		mw = int(float64(p.Area.W) * clampMFact(p.MFact))
	} else if nmaster == 0 {
		mw = 0
	}
	masterGapIV := 0
	if n > nmaster {
		masterGapIV = p.GapIV
	}

	my := 0
	for i, t := range tiles {
		if i < nmaster {
			h, extra := distribute(p.Area.H-my, nmaster-i)
			hh := h
			if 0 < extra {
				hh++
			}
			if i == nmaster-1 {
				hh = p.Area.H - my
			}
			out = append(out, Placement{ID: t.ID, Rect: geometry.Rect{
				X: p.Area.X, Y: p.Area.Y + my, W: mw - masterGapIV, H: hh,
			}})
			my += hh + p.GapIH
		} else {
			out = append(out, Placement{ID: t.ID, Rect: geometry.Rect{
				X: p.Area.X + mw, Y: p.Area.Y, W: p.Area.W - mw, H: p.Area.H,
			}})
		}
	}
	return out
}

// Monocle: every visible client fills the work area (dynamd.c's
// monocle()); the bar symbol becomes "[M n]", handled by the bar package.
func Monocle(tiles []Tile, p Params) []Placement {
	out := make([]Placement, 0, len(tiles))
	for _, t := range tiles {
		out = append(out, Placement{ID: t.ID, Rect: geometry.Rect{
			X: p.Area.X, Y: p.Area.Y, W: p.Area.W, H: p.Area.H,
		}})
	}
	return out
}

// BStack: master row on top, stack row below (dynamd.c's bstack()).
func BStack(tiles []Tile, p Params) []Placement {
	n := len(tiles)
	if n == 0 {
		return nil
	}
	nmaster := clampNMaster(p.NMaster, n)
	out := make([]Placement, 0, n)

	mh := p.Area.H
	if n > nmaster && nmaster > 0 {
		mh = int(float64(p.Area.H) * clampMFact(p.MFact))
	} else if nmaster == 0 {
		mh = 0
	}

	mx, tx := 0, 0
	for i, t := range tiles {
		if i < nmaster {
			w, extra := distribute(p.Area.W-mx, nmaster-i)
			ww := w
			if 0 < extra {
				ww++
			}
			if i == nmaster-1 {
				ww = p.Area.W - mx
			}
			out = append(out, Placement{ID: t.ID, Rect: geometry.Rect{
				X: p.Area.X + mx, Y: p.Area.Y, W: ww, H: mh - p.GapIH,
			}})
			mx += ww + p.GapIV
		} else {
			w, extra := distribute(p.Area.W-tx, n-i)
			ww := w
			if 0 < extra {
				ww++
			}
			if i == n-1 {
				ww = p.Area.W - tx
			}
			out = append(out, Placement{ID: t.ID, Rect: geometry.Rect{
				X: p.Area.X + tx, Y: p.Area.Y + mh, W: ww, H: p.Area.H - mh,
			}})
			tx += ww + p.GapIV
		}
	}
	return out
}

// BStackHoriz: master row on top, stack *column* below — the stack area
// is split into horizontal bands rather than side-by-side columns
// (dynamd.c's bstackhoriz()).
func BStackHoriz(tiles []Tile, p Params) []Placement {
	n := len(tiles)
	if n == 0 {
		return nil
	}
	nmaster := clampNMaster(p.NMaster, n)
	out := make([]Placement, 0, n)

	mh := p.Area.H
	if n > nmaster && nmaster > 0 {
		mh = int(float64(p.Area.H) * clampMFact(p.MFact))
	} else if nmaster == 0 {
		mh = 0
	}

	mx, ty := 0, 0
	for i, t := range tiles {
		if i < nmaster {
			w, extra := distribute(p.Area.W-mx, nmaster-i)
			ww := w
			if 0 < extra {
				ww++
			}
			if i == nmaster-1 {
				ww = p.Area.W - mx
			}
			out = append(out, Placement{ID: t.ID, Rect: geometry.Rect{
				X: p.Area.X + mx, Y: p.Area.Y, W: ww, H: mh - p.GapIH,
			}})
			mx += ww + p.GapIV
		} else {
			h, extra := distribute(p.Area.H-mh-ty, n-i)
			hh := h
			if 0 < extra {
				hh++
			}
			if i == n-1 {
				hh = p.Area.H - mh - ty
			}
			out = append(out, Placement{ID: t.ID, Rect: geometry.Rect{
				X: p.Area.X, Y: p.Area.Y + mh + ty, W: p.Area.W, H: hh,
			}})
			ty += hh + p.GapIH
		}
	}
	return out
}

// CenteredMaster: vertical master column centered in the work area; the
// stack splits left/right of it by odd/even index (dynamd.c's
// centeredmaster()).
func CenteredMaster(tiles []Tile, p Params) []Placement {
	n := len(tiles)
	if n == 0 {
		return nil
	}
	nmaster := clampNMaster(p.NMaster, n)
	out := make([]Placement, 0, n)

	mw := p.Area.W
	lw, rw := 0, 0
	if n > nmaster {
		mw = int(float64(p.Area.W) * clampMFact(p.MFact))
		rest := n - nmaster
		left := rest / 2
		right := rest - left
		if left > 0 {
			lw = (p.Area.W - mw) / 2
		}
		if right > 0 {
			rw = p.Area.W - mw - lw
		} else {
			lw = p.Area.W - mw
		}
	}
	mx := p.Area.X + lw

	my, ly, ry := 0, 0, 0
	leftIdx, rightIdx := 0, 0
	leftN, rightN := 0, 0
	for i := nmaster; i < n; i++ {
		if (i-nmaster)%2 == 1 {
			leftN++
		} else {
			rightN++
		}
	}
	for i, t := range tiles {
		switch {
		case i < nmaster:
			h, extra := distribute(p.Area.H-my, nmaster-i)
			hh := h
			if 0 < extra {
				hh++
			}
			if i == nmaster-1 {
				hh = p.Area.H - my
			}
			out = append(out, Placement{ID: t.ID, Rect: geometry.Rect{
				X: mx, Y: p.Area.Y + my, W: mw, H: hh,
			}})
			my += hh + p.GapIH
		case (i-nmaster)%2 == 1:
			h, extra := distribute(p.Area.H-ly, leftN-leftIdx)
			hh := h
			if 0 < extra {
				hh++
			}
			if leftIdx == leftN-1 {
				hh = p.Area.H - ly
			}
			out = append(out, Placement{ID: t.ID, Rect: geometry.Rect{
				X: p.Area.X, Y: p.Area.Y + ly, W: lw, H: hh,
			}})
			ly += hh + p.GapIH
			leftIdx++
		default:
			h, extra := distribute(p.Area.H-ry, rightN-rightIdx)
			hh := h
			if 0 < extra {
				hh++
			}
			if rightIdx == rightN-1 {
				hh = p.Area.H - ry
			}
			out = append(out, Placement{ID: t.ID, Rect: geometry.Rect{
				X: mx + mw, Y: p.Area.Y + ry, W: rw, H: hh,
			}})
			ry += hh + p.GapIH
			rightIdx++
		}
	}
	return out
}

// CenteredFloatingMaster: the master is a floating rect centered over the
// work area (sized by mfact but never touching the edges); the stack
// tiles horizontally beneath/around it (dynamd.c's
// centeredfloatingmaster()).
func CenteredFloatingMaster(tiles []Tile, p Params) []Placement {
	n := len(tiles)
	if n == 0 {
		return nil
	}
	nmaster := clampNMaster(p.NMaster, n)
	out := make([]Placement, 0, n)

	mw := int(float64(p.Area.W) * clampMFact(p.MFact))
	mh := int(float64(p.Area.H) * clampMFact(p.MFact))
	mx := p.Area.X + (p.Area.W-mw)/2
	my := p.Area.Y + (p.Area.H-mh)/2

	masterPlaced := 0
	for i, t := range tiles {
		if i < nmaster {
			h, extra := distribute(mh, nmaster-masterPlaced)
			hh := h
			if 0 < extra {
				hh++
			}
			out = append(out, Placement{ID: t.ID, Rect: geometry.Rect{
				X: mx, Y: my, W: mw, H: hh,
			}})
			my += hh
			masterPlaced++
			continue
		}
		break
	}

	stackCount := n - nmaster
	if stackCount > 0 {
		tx := p.Area.X
		for i := nmaster; i < n; i++ {
			w, extra := distribute(p.Area.W-tx+p.Area.X, stackCount-(i-nmaster))
			ww := w
			if 0 < extra {
				ww++
			}
			if i == n-1 {
				ww = p.Area.X + p.Area.W - tx
			}
			out = append(out, Placement{ID: tiles[i].ID, Rect: geometry.Rect{
				X: tx, Y: p.Area.Y, W: ww, H: p.Area.H,
			}})
			tx += ww + p.GapIV
		}
	}
	return out
}

// Dwindle and Spiral share the fibonacci subdivision in dynamd.c's
// fibonacci(): repeatedly halve the remaining rectangle between the
// current tile and the rest, alternating the split axis. They differ
// only in which corner the subdivision spirals toward.
func fibonacci(tiles []Tile, p Params, spiral bool) []Placement {
	n := len(tiles)
	if n == 0 {
		return nil
	}
	out := make([]Placement, 0, n)
	area := geometry.Bounds{X: p.Area.X, Y: p.Area.Y, W: p.Area.W, H: p.Area.H}

	for i, t := range tiles {
		last := i == n-1
		if last {
			out = append(out, Placement{ID: t.ID, Rect: geometry.Rect{X: area.X, Y: area.Y, W: area.W, H: area.H}})
			break
		}
		horizontalSplit := i%2 == 0
		if horizontalSplit {
			half := area.W / 2
			if spiral && i%4 >= 2 {
				out = append(out, Placement{ID: t.ID, Rect: geometry.Rect{X: area.X + half + p.GapIV, Y: area.Y, W: area.W - half - p.GapIV, H: area.H}})
				area.W = half
			} else {
				out = append(out, Placement{ID: t.ID, Rect: geometry.Rect{X: area.X, Y: area.Y, W: half, H: area.H}})
				area.X += half + p.GapIV
				area.W -= half + p.GapIV
			}
		} else {
			half := area.H / 2
			if spiral && i%4 >= 2 {
				out = append(out, Placement{ID: t.ID, Rect: geometry.Rect{X: area.X, Y: area.Y + half + p.GapIH, W: area.W, H: area.H - half - p.GapIH}})
				area.H = half
			} else {
				out = append(out, Placement{ID: t.ID, Rect: geometry.Rect{X: area.X, Y: area.Y, W: area.W, H: half}})
				area.Y += half + p.GapIH
				area.H -= half + p.GapIH
			}
		}
	}
	return out
}

// Dwindle: fibonacci subdivision that always peels from the top-left.
func Dwindle(tiles []Tile, p Params) []Placement { return fibonacci(tiles, p, false) }

// Spiral: fibonacci subdivision that alternates corner every two tiles,
// producing the namesake spiral rather than a single dwindling corner.
func Spiral(tiles []Tile, p Params) []Placement { return fibonacci(tiles, p, true) }

// Grid: ceil(sqrt(n)) columns, or one fewer when that many columns still
// hold all n clients; balanced rows (dynamd.c's grid()).
func Grid(tiles []Tile, p Params) []Placement {
	n := len(tiles)
	if n == 0 {
		return nil
	}
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	for cols > 1 && (cols-1)*cols >= n {
		cols--
	}
	rows := int(math.Ceil(float64(n) / float64(cols)))

	out := make([]Placement, 0, n)
	colW, _ := distribute(p.Area.W, cols)
	for col := 0; col < cols; col++ {
		rowsInCol := rows
		if col == cols-1 && n%rows != 0 {
			rowsInCol = n - col*rows
		}
		if rowsInCol <= 0 {
			continue
		}
		rowH, extra := distribute(p.Area.H, rowsInCol)
		y := 0
		for row := 0; row < rowsInCol; row++ {
			idx := col*rows + row
			if idx >= n {
				break
			}
			hh := rowH
			if row < extra {
				hh++
			}
			out = append(out, Placement{ID: tiles[idx].ID, Rect: geometry.Rect{
				X: p.Area.X + col*colW, Y: p.Area.Y + y, W: colW - p.GapIV, H: hh - p.GapIH,
			}})
			y += hh
		}
	}
	return out
}

// HorizGrid: a top row of ceil(n/2) clients, a bottom row with the rest
// (dynamd.c's horizgrid()).
func HorizGrid(tiles []Tile, p Params) []Placement {
	n := len(tiles)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return Monocle(tiles, p)
	}
	top := (n + 1) / 2
	bottom := n - top

	topH, _ := distribute(p.Area.H, 2)
	out := make([]Placement, 0, n)

	tx := 0
	for i := 0; i < top; i++ {
		w, extra := distribute(p.Area.W-tx, top-i)
		ww := w
		if 0 < extra {
			ww++
		}
		if i == top-1 {
			ww = p.Area.W - tx
		}
		out = append(out, Placement{ID: tiles[i].ID, Rect: geometry.Rect{
			X: p.Area.X + tx, Y: p.Area.Y, W: ww, H: topH - p.GapIH,
		}})
		tx += ww + p.GapIV
	}

	bx := 0
	for i := 0; i < bottom; i++ {
		w, extra := distribute(p.Area.W-bx, bottom-i)
		ww := w
		if 0 < extra {
			ww++
		}
		if i == bottom-1 {
			ww = p.Area.W - bx
		}
		out = append(out, Placement{ID: tiles[top+i].ID, Rect: geometry.Rect{
			X: p.Area.X + bx, Y: p.Area.Y + topH, W: ww, H: p.Area.H - topH,
		}})
		bx += ww + p.GapIV
	}
	return out
}

// GaplessGrid: a grid layout with no outer gap, special-cased to 2
// columns when n==5 (dynamd.c's gaplessgrid()).
func GaplessGrid(tiles []Tile, p Params) []Placement {
	n := len(tiles)
	if n == 0 {
		return nil
	}
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	if n == 5 {
		cols = 2
	}
	rows := int(math.Ceil(float64(n) / float64(cols)))

	out := make([]Placement, 0, n)
	colW, _ := distribute(p.Area.W, cols)
	cx := 0
	for col := 0; col < cols; col++ {
		remaining := n - col*rows
		rowsInCol := rows
		if remaining < rows {
			rowsInCol = remaining
		}
		if rowsInCol <= 0 {
			break
		}
		rowH, _ := distribute(p.Area.H, rowsInCol)
		cy := 0
		for row := 0; row < rowsInCol; row++ {
			idx := col*rows + row
			if idx >= n {
				break
			}
			h := rowH
			if row == rowsInCol-1 {
				h = p.Area.H - cy
			}
			w := colW
			if col == cols-1 {
				w = p.Area.W - cx
			}
			out = append(out, Placement{ID: tiles[idx].ID, Rect: geometry.Rect{
				X: p.Area.X + cx, Y: p.Area.Y + cy, W: w, H: h,
			}})
			cy += h
		}
		cx += colW
	}
	return out
}

// ByName exposes the twelve algorithms (plus the nil "floating"
// sentinel) for the static layout table in config, matching dynamd.c's
// `layouts[]` symbol/function pairing in original_source/src/config.h.
var ByName = map[string]Arrange{
	"centeredmaster":         CenteredMaster,
	"monocle":                Monocle,
	"tile":                   Tile,
	"deck":                   Deck,
	"dwindle":                Dwindle,
	"spiral":                 Spiral,
	"grid":                   Grid,
	"horizgrid":              HorizGrid,
	"gaplessgrid":            GaplessGrid,
	"bstack":                 BStack,
	"bstackhoriz":            BStackHoriz,
	"centeredfloatingmaster": CenteredFloatingMaster,
	"floating":               nil,
}
