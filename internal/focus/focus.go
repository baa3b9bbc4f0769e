// Package focus implements the focus/stacking controller of spec.md §4.4:
// focus, restack and unfocus, translated from dynamd.c's functions of the
// same names. It depends only on model plus a small Server interface it
// declares itself (the consumer-defines-the-interface idiom), so the
// controller's decision logic is unit-testable against a fake.
package focus

import "github.com/loannaflip/dynamd/internal/model"

// Server is the slice of the server adapter the controller needs. A real
// implementation is xserver.Conn; tests substitute a recording fake.
type Server interface {
	SetBorder(win model.WindowID, selected bool)
	GrabButtons(win model.WindowID, focused bool)
	SetInputFocus(win model.WindowID)
	SendTakeFocus(win model.WindowID)
	SetActiveWindow(win model.WindowID)
	ClearActiveWindow()
	SetInputFocusRoot()
	RepaintBars()
}

// Controller holds no state of its own; it operates directly on a
// *model.Graph, mirroring dynamd.c's reliance on the global `mons`/`selmon`.
type Controller struct {
	Srv Server
}

func New(srv Server) *Controller {
	return &Controller{Srv: srv}
}

// Focus implements dynamd.c's focus(c): if c is nil or not visible, falls
// back to the first visible client in the selected monitor's stack order.
// The previous selection (if different) is unfocused first; the new
// selection moves to the front of the stack and receives input focus
// unless NeverFocus is set, in which case only the synthetic
// WM_TAKE_FOCUS client message is sent.
func (ctl *Controller) Focus(g *model.Graph, mon *model.Monitor, c *model.Client, cid model.ClientID) {
	if c == nil || !c.Visible(mon.ActiveTagset()) {
		cid, c = model.ClientID{}, nil
		for _, id := range mon.Stack {
			cand := g.Client(id)
			if cand != nil && cand.Visible(mon.ActiveTagset()) {
				cid, c = id, cand
				break
			}
		}
	}

	if !mon.Sel.IsZero() && mon.Sel != cid {
		if prev := g.Client(mon.Sel); prev != nil {
			ctl.Srv.SetBorder(prev.Win, false)
		}
	}

	if c != nil {
		mon.Stack = moveToFront(mon.Stack, cid)
		mon.Sel = cid
		ctl.Srv.SetBorder(c.Win, true)
		ctl.Srv.GrabButtons(c.Win, true)
		if !c.NeverFocus {
			ctl.Srv.SetInputFocus(c.Win)
		}
		ctl.Srv.SendTakeFocus(c.Win)
		ctl.Srv.SetActiveWindow(c.Win)
	} else {
		mon.Sel = model.ClientID{}
		ctl.Srv.ClearActiveWindow()
	}
	ctl.Srv.RepaintBars()
}

func moveToFront(ids []model.ClientID, id model.ClientID) []model.ClientID {
	if len(ids) == 0 || ids[0] == id {
		return ids
	}
	out := make([]model.ClientID, 0, len(ids))
	out = append(out, id)
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}

// Unfocus implements dynamd.c's unfocus(c, setfocus): clears the border
// and (if setfocus) resets X input focus to root and clears
// _NET_ACTIVE_WINDOW.
func (ctl *Controller) Unfocus(c *model.Client, setRoot bool) {
	if c == nil {
		return
	}
	ctl.Srv.GrabButtons(c.Win, false)
	ctl.Srv.SetBorder(c.Win, false)
	if setRoot {
		ctl.Srv.SetInputFocusRoot()
		ctl.Srv.ClearActiveWindow()
	}
}

// StackOrder computes the z-order restack(monitor) must apply: raise holds
// only the selected client, and only when it is floating or the active
// layout is floating; lowerInStackOrder holds the non-floating visible
// clients in focus-stack order (empty under the floating layout) — "lower
// each non-floating visible client just below the bar window" (spec.md §4.4).
func StackOrder(g *model.Graph, mon *model.Monitor, layoutIsFloating bool) (raise []model.ClientID, lowerInStackOrder []model.ClientID) {
	if sel := g.Client(mon.Sel); sel != nil && (sel.IsFloating || layoutIsFloating) {
		raise = append(raise, mon.Sel)
	}
	for _, id := range mon.Stack {
		c := g.Client(id)
		if c == nil || !c.Visible(mon.ActiveTagset()) {
			continue
		}
		if c.IsFloating || layoutIsFloating {
			continue
		}
		lowerInStackOrder = append(lowerInStackOrder, id)
	}
	return raise, lowerInStackOrder
}

// FocusStack implements focusstack(dir): moves selection to the next (+1)
// or previous (-1) visible client in client-list order, wrapping.
func FocusStack(g *model.Graph, mon *model.Monitor, dir int) model.ClientID {
	if mon.Sel.IsZero() || len(mon.Clients) == 0 {
		return model.ClientID{}
	}
	idx := -1
	for i, id := range mon.Clients {
		if id == mon.Sel {
			idx = i
			break
		}
	}
	if idx == -1 {
		return model.ClientID{}
	}
	n := len(mon.Clients)
	for step := 1; step <= n; step++ {
		next := ((idx+dir*step)%n + n) % n
		id := mon.Clients[next]
		if c := g.Client(id); c != nil && c.Visible(mon.ActiveTagset()) {
			return id
		}
	}
	return mon.Sel
}
