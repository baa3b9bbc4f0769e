package wm

import (
	"github.com/jezek/xgbutil/icccm"
	log "github.com/sirupsen/logrus"

	"github.com/loannaflip/dynamd/internal/geometry"
	"github.com/loannaflip/dynamd/internal/model"
	"github.com/loannaflip/dynamd/internal/rules"
	"github.com/loannaflip/dynamd/internal/xserver"
)

// Manage implements spec.md §4.2's manage(window, attrs): allocate a
// client, copy its geometry, resolve tags/floating via transient
// inheritance or the rule table, clamp it into the monitor's work area,
// attach it to both lists, register it with the server, and attempt a
// terminal swallow before arranging and focusing.
func (w *WM) Manage(win xserver.WindowID, isNewScan bool) {
	if _, existing := w.graph.WinToClient(model.WindowID(win)); existing != nil {
		return
	}

	geo, err := w.Conn.GetGeometry(win)
	if err != nil {
		return
	}

	mon := w.SelMon()
	if mon == nil {
		return
	}

	c := &model.Client{
		Win:         model.WindowID(win),
		X:           geo.X,
		Y:           geo.Y,
		W:           geo.W,
		H:           geo.H,
		BorderWidth: w.Cfg.BorderWidth,
		OldBW:       geo.Border,
		Monitor:     w.graph.SelMon,
		IsNew:       isNewScan,
	}
	c.Name = w.Conn.WmName(win)
	c.Pid = windowPid(w.Conn, win)

	if hints, err := w.Conn.SizeHints(win); err == nil && hints != nil {
		applyNormalHints(c, hints)
	}
	c.IsFixed = c.Hints.IsFixed()

	transient, isTransient := w.Conn.TransientFor(win)
	if isTransient {
		if _, tc := w.graph.WinToClient(model.WindowID(transient)); tc != nil {
			c.Tags = tc.Tags
			c.Monitor = tc.Monitor
			mon = w.graph.Monitor(c.Monitor)
			c.IsFloating = true
		}
	}

	if !isTransient {
		class, instance := w.Conn.WmClass(win)
		outcome := rules.Apply(rules.WindowInfo{Class: class, Instance: instance, Title: c.Name},
			w.Cfg.Rules, w.Cfg.TagCount(), mon.ActiveTagset())
		c.Tags = outcome.Tags
		c.IsFloating = outcome.IsFloating
		c.IsTerminal = outcome.IsTerminal
		c.NoSwallow = outcome.NoSwallow
		if outcome.MonitorNum >= 0 {
			if m2 := w.monitorByNum(outcome.MonitorNum); m2 != nil {
				mon = m2
				c.Monitor = w.graph.IDOfMonitor(m2)
			}
		}
	}
	c.ClampTags(w.Cfg.TagCount(), mon.ActiveTagset())

	if w.Conn.IsDialog(win) {
		c.IsFloating = true
	}
	if !c.IsFloating {
		c.IsFloating = c.IsFixed
	}

	rect := geometry.Rect{X: c.X, Y: c.Y, W: c.W, H: c.H}
	bounds := geometry.Bounds{X: mon.WX, Y: mon.WY, W: mon.WW, H: mon.WH}
	clamped, _ := geometry.Apply(rect, c.Hints, bounds, false, true)
	c.X, c.Y, c.W, c.H = clamped.X, clamped.Y, clamped.W, clamped.H

	_ = w.Conn.SetBorderWidth(win, c.BorderWidth)
	_ = w.Conn.Configure(win, xserver.Geometry{X: c.X, Y: c.Y, W: c.W, H: c.H, Border: c.BorderWidth})

	id := w.graph.Manage(c)
	w.grabButtons(win, false)
	_ = w.Conn.Map(win)

	focusID, focusClient := id, c
	if swallowedID, ok := w.tryTerminalSwallow(id, c); ok {
		focusID = swallowedID
		focusClient = w.graph.Client(swallowedID)
	}

	w.updateClientList()
	w.Arrange(mon)
	w.focusCtl.Focus(w.graph, mon, focusClient, focusID)

	log.WithFields(log.Fields{"win": win, "tags": c.Tags, "floating": c.IsFloating}).Info("dynamd: managed window")
}

// tryTerminalSwallow implements §4.8's termforwin + swallow pairing: find
// a terminal client whose pid is an ancestor of c's pid and, if one
// exists and isn't disqualified, replace it visually with c. c's own slot
// (id) is torn down on success since the terminal's slot now carries its
// window; callers must redirect focus/arrange bookkeeping to the returned
// surviving id instead of id.
func (w *WM) tryTerminalSwallow(id model.ClientID, c *model.Client) (model.ClientID, bool) {
	var candidates []rules.Candidate
	w.graph.Clients.Each(func(cid model.ClientID, cc *model.Client) {
		if cid == id {
			return
		}
		candidates = append(candidates, rules.Candidate{
			ID: cid, Pid: cc.Pid, IsTerminal: cc.IsTerminal, Swallowing: cc.Swallowing,
		})
	})

	termID, found := rules.TermForWin(w.procInfo, c.Pid, c.IsTerminal, candidates)
	if !found {
		return id, false
	}
	term := w.graph.Client(termID)
	if term == nil || !rules.ShouldSwallow(c.NoSwallow, c.IsTerminal) {
		return id, false
	}

	_ = w.Conn.Unmap(xserver.WindowID(term.Win))
	rules.Swallow(term, c)
	w.swallowIdx.Track(c.Win, termID)
	w.graph.Unmanage(id)

	return termID, true
}

// Unmanage implements spec.md §4.2's unmanage(client, destroyed). A
// currently-swallowing client unswallows instead of being torn down; a
// window some other client is swallowing just clears that link. Otherwise
// the client is detached from both lists and (if not destroyed by the
// server itself) its border width is restored under a soft error guard
// before the slot is freed.
func (w *WM) Unmanage(id model.ClientID, destroyed bool) {
	c := w.graph.Client(id)
	if c == nil {
		return
	}

	if c.Swallowing != nil {
		w.unswallow(id, c)
		return
	}
	if swallowerID, ok := w.swallowIdx.SwallowingClient(c.Win); ok {
		if swallower := w.graph.Client(swallowerID); swallower != nil {
			swallower.Swallowing = nil
			swallower.Role = model.RolePlain
		}
		w.swallowIdx.Untrack(c.Win)
		return
	}

	mon := w.graph.Monitor(c.Monitor)
	if !destroyed {
		guard := w.Conn.Install()
		_ = w.Conn.SetBorderWidth(xserver.WindowID(c.Win), c.OldBW)
		_ = w.Conn.Unmap(xserver.WindowID(c.Win))
		guard.Release()
	}
	w.graph.Unmanage(id)
	w.updateClientList()

	if mon != nil {
		w.Arrange(mon)
		w.focusCtl.Focus(w.graph, mon, nil, model.ClientID{})
	}
}

// unswallow implements §4.8's unswallow(): restore the hidden terminal's
// original window handle, unmap the concealing window, map and resize the
// terminal's real window back to normal, and focus it.
func (w *WM) unswallow(id model.ClientID, term *model.Client) {
	concealed := term.Win
	restored, ok := rules.Unswallow(term)
	if !ok {
		return
	}
	w.swallowIdx.Untrack(concealed)
	_ = w.Conn.Map(xserver.WindowID(restored))
	_ = w.Conn.Configure(xserver.WindowID(restored), xserver.Geometry{
		X: term.X, Y: term.Y, W: term.W, H: term.H, Border: term.BorderWidth,
	})

	mon := w.graph.Monitor(term.Monitor)
	if mon != nil {
		w.Arrange(mon)
		w.focusCtl.Focus(w.graph, mon, term, id)
	}
}

// SendMon implements spec.md §4.2's sendmon(client, m): detach from the
// current monitor, reassign tags to the destination's active tagset,
// attach to the destination, and refocus/rearrange both ends.
func (w *WM) SendMon(id model.ClientID, dest *model.Monitor) {
	c := w.graph.Client(id)
	if c == nil || dest == nil {
		return
	}
	src := w.graph.Monitor(c.Monitor)
	if src == dest {
		return
	}

	if src != nil {
		src.Detach(id)
		src.DetachStack(id, func(other model.ClientID) bool {
			oc := w.graph.Client(other)
			return oc != nil && oc.Visible(src.ActiveTagset())
		})
	}

	c.Monitor = w.graph.IDOfMonitor(dest)
	c.Tags = dest.ActiveTagset()
	dest.Attach(id)
	dest.AttachStack(id)

	if src != nil {
		w.Arrange(src)
		w.focusCtl.Focus(w.graph, src, nil, model.ClientID{})
	}
	w.Arrange(dest)
	w.focusCtl.Focus(w.graph, dest, c, id)
}

func (w *WM) monitorByNum(num int) *model.Monitor {
	var found *model.Monitor
	w.graph.Monitors.Each(func(_ model.MonitorID, m *model.Monitor) {
		if found == nil && m.Num == num {
			found = m
		}
	})
	return found
}

func (w *WM) updateClientList() {
	var wins []xserver.WindowID
	w.graph.Clients.Each(func(_ model.ClientID, c *model.Client) {
		wins = append(wins, xserver.WindowID(c.Win))
	})
	_ = w.Conn.UpdateClientList(wins)
}

// applyNormalHints translates an ICCCM WM_NORMAL_HINTS reply into
// model.SizeHints (dynamd.c's updatesizehints). Unset fields default to
// their zero value, which geometry.Apply already treats as "no
// constraint" on that axis.
func applyNormalHints(c *model.Client, hints *icccm.NormalHints) {
	c.Hints = model.SizeHints{
		BaseW: hints.BaseWidth, BaseH: hints.BaseHeight,
		IncW: hints.WidthInc, IncH: hints.HeightInc,
		MinW: hints.MinWidth, MinH: hints.MinHeight,
		MaxW: hints.MaxWidth, MaxH: hints.MaxHeight,
	}
	if hints.MinAspect.Num != 0 && hints.MinAspect.Den != 0 {
		c.Hints.MinAspect = float64(hints.MinAspect.Num) / float64(hints.MinAspect.Den)
	}
	if hints.MaxAspect.Num != 0 && hints.MaxAspect.Den != 0 {
		c.Hints.MaxAspect = float64(hints.MaxAspect.Num) / float64(hints.MaxAspect.Den)
	}
}

func windowPid(conn *xserver.Conn, win xserver.WindowID) int {
	pid, err := conn.Pid(win)
	if err != nil {
		return 0
	}
	return pid
}
