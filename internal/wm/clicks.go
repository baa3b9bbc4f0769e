package wm

import (
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/keybind"

	"github.com/loannaflip/dynamd/internal/model"
)

// keysymName resolves a KeyPress's keycode to the X keysym name matchKey
// compares against config.KeyBinding.Key (dynamd.c's
// XKeycodeToKeysym(dpy, ev->keycode, 0) followed by XKeysymToString).
func (w *WM) keysymName(keycode xproto.Keycode) string {
	sym, err := keybind.KeysymGet(w.Conn.XU, keycode, 0)
	if err != nil {
		return ""
	}
	return keybind.KeysymToStr(sym)
}

// tagSlotWidth and ltSymbolWidth are the fixed click-region widths used
// to bucket an x coordinate on the bar into a tag index, the ltsymbol box
// or the status-text region. Without a live render canvas to ask for real
// glyph widths, buttonpress falls back to this uniform slot model —
// coarser than drawbar's per-glyph TEXTW accumulation, but the click
// regions it distinguishes (tags vs. ltsymbol vs. status) are unaffected.
const (
	tagSlotWidth  = 36
	ltSymbolWidth = 48
)

// classifyClick implements buttonpress()'s click-region resolution: which
// named region (ClkTagBar/ClkLtSymbol/ClkStatusText/ClkClientWin/
// ClkTabBar/ClkRootWin) a ButtonPress landed in, plus a region-specific
// arg (the 1-based tag number for ClkTagBar, the 0-based visible-tab
// index for ClkTabBar).
func (w *WM) classifyClick(ev xproto.ButtonPressEvent) (click string, arg int) {
	if _, c := w.graph.WinToClient(model.WindowID(ev.Event)); c != nil {
		return "ClkClientWin", 0
	}

	monID := w.graph.WinToMonitor(model.WindowID(ev.Event))
	mon := w.graph.Monitor(monID)
	if mon == nil {
		return "ClkRootWin", 0
	}

	if ev.Event == xproto.Window(mon.TabWin) {
		return "ClkTabBar", tabIndexAt(w.graph, mon, int(ev.EventX))
	}
	if ev.Event != xproto.Window(mon.BarWin) {
		return "ClkRootWin", 0
	}

	x := int(ev.EventX)
	visibleTags := 0
	for i := 0; i < w.Cfg.TagCount(); i++ {
		if tagOccupiedOrSelected(w.graph, mon, i) {
			visibleTags++
		}
	}
	tagsWidth := visibleTags * tagSlotWidth
	switch {
	case x < tagsWidth:
		idx := x / tagSlotWidth
		tagIdx := nthVisibleTag(w.graph, mon, w.Cfg.TagCount(), idx)
		return "ClkTagBar", tagIdx + 1
	case x < tagsWidth+ltSymbolWidth:
		return "ClkLtSymbol", 0
	default:
		return "ClkStatusText", 0
	}
}

func tagOccupiedOrSelected(g *model.Graph, mon *model.Monitor, tagIdx int) bool {
	if mon.ActiveTagset().Has(tagIdx) {
		return true
	}
	occupied := false
	for _, cid := range mon.Clients {
		if c := g.Client(cid); c != nil && c.Tags.Has(tagIdx) {
			occupied = true
			break
		}
	}
	return occupied
}

func nthVisibleTag(g *model.Graph, mon *model.Monitor, tagCount, n int) int {
	seen := -1
	for i := 0; i < tagCount; i++ {
		if tagOccupiedOrSelected(g, mon, i) {
			seen++
			if seen == n {
				return i
			}
		}
	}
	return 0
}

func tabIndexAt(g *model.Graph, mon *model.Monitor, x int) int {
	const tabSlotWidth = 120
	return x / tabSlotWidth
}
