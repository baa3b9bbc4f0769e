package wm

import (
	"github.com/loannaflip/dynamd/internal/bar"
	"github.com/loannaflip/dynamd/internal/model"
	"github.com/loannaflip/dynamd/internal/xrender"
)

// No xrender.Drawable is attached to WM: RepaintBars recomputes the
// logical bar.Layout and tab entries and draws no pixels.
var _ xrender.Drawable

// RepaintBars implements the bar-repaint half of spec.md §4.9: for every
// monitor, build its tag/layout/status layout (and, on the selected
// monitor, the status text), compute the tab-bar entries if monocle has
// more than one visible client. The result is not handed to a render
// adapter; this function's job ends at producing the bar.Layout/bar.Tab
// values.
func (w *WM) RepaintBars() {
	w.graph.Monitors.Each(func(id model.MonitorID, mon *model.Monitor) {
		w.repaintMonitorBar(id, mon)
	})
}

func (w *WM) repaintMonitorBar(id model.MonitorID, mon *model.Monitor) {
	infos := make([]bar.ClientTagInfo, 0, len(mon.Clients))
	for _, cid := range mon.Clients {
		c := w.graph.Client(cid)
		if c == nil {
			continue
		}
		infos = append(infos, bar.ClientTagInfo{Tags: c.Tags, Urgent: c.IsUrgent})
	}

	tags := bar.BuildTags(w.Cfg.Tags, mon.ActiveTagset(), infos)
	layoutView := bar.Layout{
		LayoutSymbol: mon.LayoutSymbol,
		Tags:         bar.VisibleTags(tags),
		ShowStatus:   id == w.graph.SelMon,
	}
	if layoutView.ShowStatus {
		layoutView.StatusText = w.Conn.WmName(w.Conn.Root())
	}

	if bar.ShouldShowTabBar(w.isMonocle(mon), w.graph.VisibleCount(mon)) {
		_ = w.buildTabs(mon)
	}

	// Pixel drawing is delegated to the render adapter; its internals
	// (font metrics, color parsing) are out of scope per §1/§4.12.
}

func (w *WM) buildTabs(mon *model.Monitor) []bar.Tab {
	tabs := make([]bar.Tab, 0, len(mon.Clients))
	for _, cid := range mon.Clients {
		c := w.graph.Client(cid)
		if c == nil || !c.Visible(mon.ActiveTagset()) {
			continue
		}
		tabs = append(tabs, bar.Tab{ID: cid, Title: c.Name, Focus: cid == mon.Sel})
	}
	return tabs
}
