// This file implements the interactive halves of spec.md §4.10's
// movemouse/resizemouse: grab the pointer, drain the event stream
// ourselves until button release, and apply internal/mouse's pure
// geometry math to each motion sample.
package wm

import (
	"github.com/jezek/xgb/xproto"

	"github.com/loannaflip/dynamd/internal/fullscreen"
	"github.com/loannaflip/dynamd/internal/model"
	"github.com/loannaflip/dynamd/internal/mouse"
	"github.com/loannaflip/dynamd/internal/xserver"
)

type dragKind int

const (
	moveDrag dragKind = iota
	resizeDrag
)

// driveMouse implements movemouse(dir) resp. resizemouse(): refuse for a
// fullscreen client, grab the pointer for the duration, track motion
// against the starting offset, snap/promote-to-floating as the drift
// exceeds the configured threshold, and on release send the client to
// whichever monitor's rectangle now contains its centroid.
func (w *WM) driveMouse(mon *model.Monitor, kind dragKind) {
	if mon.Sel.IsZero() {
		return
	}
	c := w.graph.Client(mon.Sel)
	if c == nil || fullscreen.Refused(c) {
		return
	}

	startX, startY, err := w.Conn.QueryPointer()
	if err != nil {
		return
	}
	if err := w.Conn.GrabPointer(0); err != nil {
		return
	}
	defer w.Conn.UngrabPointer()

	origX, origY, origW, origH := c.X, c.Y, c.W, c.H
	wasFloating := c.IsFloating
	var lastMs int64

	for {
		ev, err := w.Conn.NextEvent(drainCtx)
		if err != nil {
			return
		}
		switch ev.Kind {
		case xserver.KindMotionNotify:
			mev := ev.Raw.(xproto.MotionNotifyEvent)
			nowMs := int64(mev.Time)
			if !mouse.ThrottleMotion(lastMs, nowMs) {
				continue
			}
			lastMs = nowMs

			dx := int(mev.RootX) - startX
			dy := int(mev.RootY) - startY

			if !c.IsFloating {
				if mouse.ShouldFloat(dx, dy, w.Cfg.SnapDistance) {
					c.IsFloating = true
				} else {
					continue
				}
			}

			var nx, ny, nw, nh int
			if kind == moveDrag {
				nx, ny, nw, nh = origX+dx, origY+dy, origW, origH
				nx, ny = mouse.SnapMove(nx, ny, nw, nh, mon.WX, mon.WY, mon.WW, mon.WH, w.Cfg.SnapDistance)
			} else {
				nx, ny = origX, origY
				nw, nh = mouse.ClampResize(origW+dx, origH+dy)
			}
			w.applyGeometry(c, rectOf(nx, ny, nw, nh), mon, true)

		case xserver.KindButtonRelease:
			goto released
		case xserver.KindConfigureRequest:
			w.onConfigureRequest(ev.Raw.(xproto.ConfigureRequestEvent))
		case xserver.KindExpose, xserver.KindMapRequest:
			// Redispatched at arm's length: movemouse/resizemouse in the
			// original only special-cases Configure/Expose/MapRequest,
			// passing everything else straight to the normal handler.
			w.dispatch(ev)
		}
	}

released:
	if !wasFloating && c.IsFloating {
		// Promotion already applied; nothing further to restore.
	}
	mons := monitorRects(w.graph)
	if idx := mouse.CentroidMonitor(c.X, c.Y, c.W, c.H, mons); idx >= 0 {
		if dest := w.monitorByNum(idx); dest != nil && dest != mon {
			w.SendMon(mon.Sel, dest)
			return
		}
	}
	w.Arrange(mon)
}

func rectOf(x, y, w, h int) geometryRect { return geometryRect{X: x, Y: y, W: w, H: h} }

func monitorRects(g *model.Graph) []mouse.MonitorRect {
	var out []mouse.MonitorRect
	g.Monitors.Each(func(_ model.MonitorID, m *model.Monitor) {
		out = append(out, mouse.MonitorRect{Index: m.Num, X: m.MX, Y: m.MY, W: m.MW, H: m.MH})
	})
	return out
}
