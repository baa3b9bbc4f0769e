package wm

import (
	"github.com/loannaflip/dynamd/internal/bar"
	"github.com/loannaflip/dynamd/internal/geometry"
	"github.com/loannaflip/dynamd/internal/layout"
	"github.com/loannaflip/dynamd/internal/model"
	"github.com/loannaflip/dynamd/internal/xserver"
)

func monocleSymbolFor(n int) string { return bar.MonocleSymbol(n) }

// activeArrange resolves a monitor's current layout-table slot to the
// Arrange function it names, or nil for the floating sentinel
// (spec.md §3's Layout type, config.h's layouts[] array).
func (w *WM) activeArrange(mon *model.Monitor) (layout.Arrange, string) {
	idx := mon.LT[mon.SelLT]
	if idx < 0 || idx >= len(w.Cfg.Layouts) {
		return nil, "[?]"
	}
	entry := w.Cfg.Layouts[idx]
	return layout.ByName[entry.Name], entry.Symbol
}

// isMonocle reports whether mon's current layout is monocle, the one the
// tab bar (spec.md §4.9) keys off of.
func (w *WM) isMonocle(mon *model.Monitor) bool {
	idx := mon.LT[mon.SelLT]
	if idx < 0 || idx >= len(w.Cfg.Layouts) {
		return false
	}
	return w.Cfg.Layouts[idx].Name == "monocle"
}

// Arrange recomputes and applies tiled geometry for every visible client
// on mon (spec.md §4.3's arrange(monitor)): resolve the active layout,
// run its pure Arrange function over the work area, push each result
// through the size-hint engine, and configure the window on the server.
// Floating and fullscreen clients are left untouched here — they carry
// their own geometry and are only ever moved by mouse/fullscreen/manage.
func (w *WM) Arrange(mon *model.Monitor) {
	if mon == nil {
		return
	}
	g := w.graph

	arrangeFn, symbol := w.activeArrange(mon)
	visible := g.VisibleCount(mon)
	outerH, outerV := mon.OuterGapsEffective(visible)
	bounds := geometry.TiledBounds(mon, outerH, outerV)
	if idx := mon.LT[mon.SelLT]; idx >= 0 && idx < len(w.Cfg.Layouts) && w.Cfg.Layouts[idx].Name == "gaplessgrid" {
		bounds = geometry.TiledBounds(mon, 0, 0)
	}

	if arrangeFn != nil {
		tiled := g.VisibleTiled(mon)
		tiles := make([]layout.Tile, len(tiled))
		for i, id := range tiled {
			tiles[i] = layout.Tile{ID: id}
		}
		placements := arrangeFn(tiles, layout.Params{
			Area:    bounds,
			NMaster: mon.NMaster,
			MFact:   mon.MFact,
			GapIH:   mon.GapInnerH,
			GapIV:   mon.GapInnerV,
		})
		for _, p := range placements {
			c := g.Client(p.ID)
			if c == nil {
				continue
			}
			// dynamd.c's resizeclient configures every client at
			// w-2*bw, h-2*bw: window plus border together fill exactly
			// the cell the layout computed.
			w.applyGeometry(c, geometry.Rect{
				X: p.Rect.X, Y: p.Rect.Y,
				W: p.Rect.W - 2*c.BorderWidth, H: p.Rect.H - 2*c.BorderWidth,
			}, mon, false)
		}
	}

	w.lastSymbol(mon, symbol)
	w.Restack(mon)
	w.RepaintBars()
}

// applyGeometry runs a candidate rectangle through the size-hint engine
// and, if it changed, pushes the result to the server and updates c's
// stored geometry (dynamd.c's resize -> resizeclient pairing).
func (w *WM) applyGeometry(c *model.Client, r geometry.Rect, mon *model.Monitor, interactive bool) {
	floatingLike := c.IsFloating
	bounds := geometry.Bounds{X: mon.WX, Y: mon.WY, W: mon.WW, H: mon.WH}
	if interactive {
		bounds = geometry.Bounds{X: mon.MX, Y: mon.MY, W: mon.MW, H: mon.MH}
	}
	out, changed := geometry.Apply(r, c.Hints, bounds, interactive, floatingLike)
	if !changed && c.X == out.X && c.Y == out.Y && c.W == out.W && c.H == out.H {
		return
	}
	c.OldX, c.OldY, c.OldW, c.OldH = c.X, c.Y, c.W, c.H
	c.X, c.Y, c.W, c.H = out.X, out.Y, out.W, out.H
	_ = w.Conn.Configure(xserver.WindowID(c.Win), xserver.Geometry{
		X: c.X, Y: c.Y, W: c.W, H: c.H, Border: c.BorderWidth,
	})
}

// lastSymbol stashes the last-drawn layout symbol on mon for the bar to
// read; monocle folds in the visible-client count into "[M n]"
// (bar.MonocleSymbol, spec.md §4.3).
func (w *WM) lastSymbol(mon *model.Monitor, symbol string) {
	if w.isMonocle(mon) {
		mon.LayoutSymbol = monocleSymbolFor(w.graph.VisibleCount(mon))
		return
	}
	mon.LayoutSymbol = symbol
}
