// This file implements spec.md §4.6/§4.7/§4.10's action table: the
// key/button binding Action strings resolved to concrete behavior,
// translated from dynamd.c's static function-pointer dispatch
// (keys[]/buttons[] calling directly into togglefullscreen, movemouse,
// view, and so on).
package wm

import (
	"context"

	"github.com/loannaflip/dynamd/internal/autostart"
	"github.com/loannaflip/dynamd/internal/focus"
	"github.com/loannaflip/dynamd/internal/fullscreen"
	"github.com/loannaflip/dynamd/internal/model"
	"github.com/loannaflip/dynamd/internal/tagctl"
	"github.com/loannaflip/dynamd/internal/xserver"

	log "github.com/sirupsen/logrus"
)

// ActionArgs is the union of argument shapes config.KeyBinding/ButtonBinding
// carry (dynamd.c's Arg union of int/float/void*).
type ActionArgs struct {
	I int
	F float64
	V []string
}

// RunAction resolves name against the action table and runs it against the
// currently selected monitor/client, mirroring dynamd.c's binding->func(&binding->arg).
func (w *WM) RunAction(name string, args ActionArgs) {
	mon := w.SelMon()
	if mon == nil {
		return
	}
	fn, ok := actionTable[name]
	if !ok {
		log.WithField("action", name).Warn("dynamd: unbound action name")
		return
	}
	fn(w, mon, args)
}

type actionFunc func(w *WM, mon *model.Monitor, args ActionArgs)

var actionTable = map[string]actionFunc{
	"spawn":          actionSpawn,
	"focusstack":     actionFocusStack,
	"movestack":      actionMoveStack,
	"setmfact":       actionSetMFact,
	"gaps":           actionGaps,
	"focusmon":       actionFocusMon,
	"tagmon":         actionTagMon,
	"zoom":           actionZoom,
	"togglefullscr":  actionToggleFullscreen,
	"killclient":     actionKillClient,
	"togglebar":      actionToggleBar,
	"togglegaps":     actionToggleGaps,
	"togglefloating": actionToggleFloating,
	"shiftview":      actionShiftView,
	"organizetags":   actionOrganizeTags,
	"cyclelayout":    actionCycleLayout,
	"view":           actionView,
	"setlayout":      actionSetLayout,
	"movemouse":      actionMoveMouse,
	"resizemouse":    actionResizeMouse,
	"tag":            actionTag,
	"toggletag":      actionToggleTag,
	"toggleview":     actionToggleView,
	"focuswin":       actionFocusWin,
}

func actionSpawn(w *WM, mon *model.Monitor, args ActionArgs) {
	if len(args.V) == 0 {
		return
	}
	_ = autostart.Spawn(context.Background(), w.reaper, args.V)
}

func actionFocusStack(w *WM, mon *model.Monitor, args ActionArgs) {
	dir := args.I
	if dir == 0 {
		dir = 1
	}
	next := focus.FocusStack(w.graph, mon, dir)
	if c := w.graph.Client(next); c != nil {
		w.focusCtl.Focus(w.graph, mon, c, next)
		w.Restack(mon)
	}
}

// actionMoveStack implements movestack(dir): swaps the selected tiled
// client's position in the client list with its neighbor, re-arranging in
// place (dynamd.c's movestack walks nexttiled-chained neighbors).
func actionMoveStack(w *WM, mon *model.Monitor, args ActionArgs) {
	dir := args.I
	if dir == 0 || mon.Sel.IsZero() {
		return
	}
	tiled := w.graph.VisibleTiled(mon)
	idx := -1
	for i, id := range tiled {
		if id == mon.Sel {
			idx = i
			break
		}
	}
	if idx == -1 || len(tiled) < 2 {
		return
	}
	n := len(tiled)
	other := ((idx+dir)%n + n) % n
	swapClientOrder(mon, tiled[idx], tiled[other])
	w.Arrange(mon)
}

func swapClientOrder(mon *model.Monitor, a, b model.ClientID) {
	ia, ib := -1, -1
	for i, id := range mon.Clients {
		if id == a {
			ia = i
		}
		if id == b {
			ib = i
		}
	}
	if ia >= 0 && ib >= 0 {
		mon.Clients[ia], mon.Clients[ib] = mon.Clients[ib], mon.Clients[ia]
	}
}

func actionSetMFact(w *WM, mon *model.Monitor, args ActionArgs) {
	tagctl.SetMFact(mon, args.F)
	w.Arrange(mon)
}

// actionGaps implements the "gaps" binding (incrgaps in the original):
// args.I nudges all four gap values by the same amount, floored at 0.
func actionGaps(w *WM, mon *model.Monitor, args ActionArgs) {
	delta := args.I
	adjust := func(v int) int {
		v += delta
		if v < 0 {
			v = 0
		}
		return v
	}
	mon.GapInnerH = adjust(mon.GapInnerH)
	mon.GapInnerV = adjust(mon.GapInnerV)
	mon.GapOuterH = adjust(mon.GapOuterH)
	mon.GapOuterV = adjust(mon.GapOuterV)
	w.Arrange(mon)
}

func actionFocusMon(w *WM, mon *model.Monitor, args ActionArgs) {
	dir := args.I
	if dir == 0 {
		dir = 1
	}
	nextID := w.graph.NextMonitor(w.graph.SelMon, dir)
	next := w.graph.Monitor(nextID)
	if next == nil || next == mon {
		return
	}
	w.graph.SelMon = nextID
	w.focusCtl.Focus(w.graph, next, w.graph.Client(next.Sel), next.Sel)
	w.RepaintBars()
}

func actionTagMon(w *WM, mon *model.Monitor, args ActionArgs) {
	if mon.Sel.IsZero() {
		return
	}
	dir := args.I
	if dir == 0 {
		dir = 1
	}
	destID := w.graph.NextMonitor(monitorSelf(w.graph, mon), dir)
	dest := w.graph.Monitor(destID)
	w.SendMon(mon.Sel, dest)
}

// actionZoom implements dwm's zoom(): promote the selected client to
// master (the front of the client list), or demote the current master if
// the selection already is the master.
func actionZoom(w *WM, mon *model.Monitor, args ActionArgs) {
	if mon.Sel.IsZero() {
		return
	}
	c := w.graph.Client(mon.Sel)
	if c == nil || c.IsFloating {
		return
	}
	tiled := w.graph.VisibleTiled(mon)
	if len(tiled) == 0 {
		return
	}
	target := mon.Sel
	if tiled[0] == mon.Sel && len(tiled) > 1 {
		target = tiled[1]
	}
	mon.Detach(target)
	mon.Clients = append([]model.ClientID{target}, mon.Clients...)
	w.Arrange(mon)
	w.focusCtl.Focus(w.graph, mon, w.graph.Client(target), target)
}

func actionToggleFullscreen(w *WM, mon *model.Monitor, args ActionArgs) {
	if mon.Sel.IsZero() {
		return
	}
	c := w.graph.Client(mon.Sel)
	if c == nil {
		return
	}
	rect, changed := fullscreen.Toggle(c, mon)
	if !changed {
		return
	}
	_ = w.Conn.Configure(xserver.WindowID(c.Win), xserver.Geometry{
		X: rect.X, Y: rect.Y, W: rect.W, H: rect.H, Border: c.BorderWidth,
	})
	_ = w.Conn.SetFullscreenState(xserver.WindowID(c.Win), c.IsFullscreen)
	if c.IsFullscreen {
		_ = w.Conn.Raise(xserver.WindowID(c.Win))
	} else {
		w.Arrange(mon)
	}
}

// actionKillClient implements killclient(): ask cooperatively via
// WM_DELETE_WINDOW if the client advertises it, else force with
// XKillClient, mirroring dynamd.c's sendevent-or-grab-and-kill branch.
func actionKillClient(w *WM, mon *model.Monitor, args ActionArgs) {
	if mon.Sel.IsZero() {
		return
	}
	c := w.graph.Client(mon.Sel)
	if c == nil {
		return
	}
	win := xserver.WindowID(c.Win)
	if w.Conn.WMProtocolsSupports(win, "WM_DELETE_WINDOW") {
		_ = w.Conn.SendDeleteWindow(win)
		return
	}
	guard := w.Conn.Install()
	_ = w.Conn.KillClient(win)
	guard.Release()
}

func actionToggleBar(w *WM, mon *model.Monitor, args ActionArgs) {
	mon.ShowBar = !mon.ShowBar
	mon.Pertag.ShowBar[mon.CurTag] = mon.ShowBar
	w.Arrange(mon)
}

func actionToggleGaps(w *WM, mon *model.Monitor, args ActionArgs) {
	mon.GapsEnabled = !mon.GapsEnabled
	w.Arrange(mon)
}

func actionToggleFloating(w *WM, mon *model.Monitor, args ActionArgs) {
	if mon.Sel.IsZero() {
		return
	}
	c := w.graph.Client(mon.Sel)
	if c == nil || c.IsFullscreen {
		return
	}
	c.IsFloating = !c.IsFloating || c.IsFixed
	if c.IsFloating {
		c.X, c.Y, c.W, c.H = c.OldX, c.OldY, c.OldW, c.OldH
	}
	w.Arrange(mon)
}

func actionShiftView(w *WM, mon *model.Monitor, args ActionArgs) {
	if tagctl.ShiftView(mon, args.I, w.Cfg.TagCount()) {
		w.postViewChange(mon)
	}
}

func actionOrganizeTags(w *WM, mon *model.Monitor, args ActionArgs) {
	tagctl.OrganizeTags(w.graph, w.Cfg.TagCount())
	w.graph.Monitors.Each(func(_ model.MonitorID, m *model.Monitor) { w.Arrange(m) })
}

func actionCycleLayout(w *WM, mon *model.Monitor, args ActionArgs) {
	dir := args.I
	if dir == 0 {
		dir = 1
	}
	tagctl.CycleLayout(mon, dir, len(w.Cfg.Layouts))
	w.Arrange(mon)
}

// actionView implements the `view` binding. args.I < 0 is the "view all
// tags" sentinel the bare Mod4+0 key uses; args.I == 0 with no other
// selector resolves to "swap back to the previous view" (view(0)).
func actionView(w *WM, mon *model.Monitor, args ActionArgs) {
	var mask model.Tags
	switch {
	case args.I < 0:
		mask = tagctl.AllTags
	case args.I > 0:
		mask = 1 << uint(args.I-1)
	default:
		mask = 0
	}
	if tagctl.View(mon, mask) {
		w.postViewChange(mon)
	}
}

func actionSetLayout(w *WM, mon *model.Monitor, args ActionArgs) {
	tagctl.SetLayout(mon, args.I)
	w.Arrange(mon)
}

func actionMoveMouse(w *WM, mon *model.Monitor, args ActionArgs) {
	w.driveMouse(mon, moveDrag)
}

func actionResizeMouse(w *WM, mon *model.Monitor, args ActionArgs) {
	w.driveMouse(mon, resizeDrag)
}

func actionTag(w *WM, mon *model.Monitor, args ActionArgs) {
	if mon.Sel.IsZero() || args.I <= 0 {
		return
	}
	c := w.graph.Client(mon.Sel)
	if c == nil {
		return
	}
	if tagctl.Tag(c, 1<<uint(args.I-1), w.Cfg.TagCount()) {
		w.Arrange(mon)
	}
}

func actionToggleTag(w *WM, mon *model.Monitor, args ActionArgs) {
	if mon.Sel.IsZero() || args.I <= 0 {
		return
	}
	c := w.graph.Client(mon.Sel)
	if c == nil {
		return
	}
	if tagctl.ToggleTag(c, 1<<uint(args.I-1), w.Cfg.TagCount()) {
		w.Arrange(mon)
	}
}

func actionToggleView(w *WM, mon *model.Monitor, args ActionArgs) {
	var mask model.Tags
	if args.I > 0 {
		mask = 1 << uint(args.I-1)
	}
	if tagctl.ToggleView(mon, mask, w.Cfg.TagCount()) {
		w.postViewChange(mon)
	}
}

// actionFocusWin implements ClkTabBar's "focuswin": args.I is the index,
// in visible client-list order, of the tab classifyClick resolved the
// click to (render.go's buildTabs uses the same order).
func actionFocusWin(w *WM, mon *model.Monitor, args ActionArgs) {
	i := 0
	for _, cid := range mon.Clients {
		c := w.graph.Client(cid)
		if c == nil || !c.Visible(mon.ActiveTagset()) {
			continue
		}
		if i == args.I {
			w.focusCtl.Focus(w.graph, mon, c, cid)
			w.Restack(mon)
			return
		}
		i++
	}
}

func (w *WM) postViewChange(mon *model.Monitor) {
	w.Arrange(mon)
	w.focusCtl.Focus(w.graph, mon, w.graph.Client(mon.Sel), mon.Sel)
}

// monitorSelf resolves a *model.Monitor back to its graph Id for the sendmon
// direction lookup (tagmon needs the current Id to ask the graph for the
// next one).
func monitorSelf(g *model.Graph, m *model.Monitor) model.MonitorID {
	return g.IDOfMonitor(m)
}
