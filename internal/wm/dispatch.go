// This file implements spec.md §4.1's event dispatcher: a dense table of
// handlers indexed by event kind, translated from dynamd.c's handler[]
// array indexed by X event type.
package wm

import (
	"context"

	"github.com/jezek/xgb/xproto"
	log "github.com/sirupsen/logrus"

	"github.com/loannaflip/dynamd/internal/fullscreen"
	"github.com/loannaflip/dynamd/internal/model"
	"github.com/loannaflip/dynamd/internal/xserver"
)

// Run is the dispatcher's main loop (spec.md §4.1, §5): block on the next
// event, dispatch it to the handler for its kind, repeat until Stop is
// called or ctx is cancelled. Unknown kinds are ignored. On exit every
// managed client is unmanaged in reverse (cleanup); bar windows are not
// destroyed here.
func (w *WM) Run(ctx context.Context) error {
	w.setRunning(true)
	for w.isRunning() {
		ev, err := w.Conn.NextEvent(ctx)
		if err != nil {
			w.setRunning(false)
			break
		}
		w.dispatch(ev)
	}
	w.cleanup()
	return nil
}

func (w *WM) dispatch(ev xserver.Event) {
	switch ev.Kind {
	case xserver.KindMapRequest:
		w.onMapRequest(ev.Raw.(xproto.MapRequestEvent))
	case xserver.KindConfigureRequest:
		w.onConfigureRequest(ev.Raw.(xproto.ConfigureRequestEvent))
	case xserver.KindConfigureNotify:
		w.onConfigureNotify(ev.Raw.(xproto.ConfigureNotifyEvent))
	case xserver.KindDestroyNotify:
		w.onDestroyNotify(ev.Raw.(xproto.DestroyNotifyEvent))
	case xserver.KindUnmapNotify:
		w.onUnmapNotify(ev.Raw.(xproto.UnmapNotifyEvent))
	case xserver.KindPropertyNotify:
		w.onPropertyNotify(ev.Raw.(xproto.PropertyNotifyEvent))
	case xserver.KindClientMessage:
		w.onClientMessage(ev.Raw.(xproto.ClientMessageEvent))
	case xserver.KindEnterNotify:
		w.onEnterNotify(ev.Raw.(xproto.EnterNotifyEvent))
	case xserver.KindKeyPress:
		w.onKeyPress(ev.Raw.(xproto.KeyPressEvent))
	case xserver.KindButtonPress:
		w.onButtonPress(ev.Raw.(xproto.ButtonPressEvent))
	case xserver.KindMotionNotify:
		// Only meaningful mid-drag; the mouse driver installs its own
		// private loop for move/resize (§4.10) and drains these directly.
	default:
		log.WithField("kind", ev.Kind).Debug("dynamd: ignoring unhandled event kind")
	}
}

// onMapRequest implements §4.1: manage the window unless it's
// override-redirect or already managed.
func (w *WM) onMapRequest(ev xproto.MapRequestEvent) {
	attrs, err := xproto.GetWindowAttributes(w.Conn.XU.Conn(), ev.Window).Reply()
	if err == nil && attrs.OverrideRedirect {
		return
	}
	if _, c := w.graph.WinToClient(model.WindowID(ev.Window)); c != nil {
		return
	}
	w.Manage(xserver.WindowID(ev.Window), false)
}

// onConfigureRequest implements §4.1: a floating (or floating-layout)
// client's requested geometry is honored subject to size hints; a tiled
// client is told its current geometry instead (it cannot reposition
// itself).
func (w *WM) onConfigureRequest(ev xproto.ConfigureRequestEvent) {
	_, c := w.graph.WinToClient(model.WindowID(ev.Window))
	if c == nil {
		_ = w.Conn.Configure(ev.Window, xserver.Geometry{
			X: int(ev.X), Y: int(ev.Y), W: int(ev.Width), H: int(ev.Height), Border: int(ev.BorderWidth),
		})
		return
	}

	mon := w.graph.Monitor(c.Monitor)
	arrangeFn, _ := w.activeArrange(mon)
	if c.IsFloating || arrangeFn == nil {
		if ev.ValueMask&xproto.ConfigWindowX != 0 {
			c.X = int(ev.X)
		}
		if ev.ValueMask&xproto.ConfigWindowY != 0 {
			c.Y = int(ev.Y)
		}
		if ev.ValueMask&xproto.ConfigWindowWidth != 0 {
			c.W = int(ev.Width)
		}
		if ev.ValueMask&xproto.ConfigWindowHeight != 0 {
			c.H = int(ev.Height)
		}
		_ = w.Conn.Configure(ev.Window, xserver.Geometry{X: c.X, Y: c.Y, W: c.W, H: c.H, Border: c.BorderWidth})
		return
	}
	_ = w.Conn.Configure(ev.Window, xserver.Geometry{X: c.X, Y: c.Y, W: c.W, H: c.H, Border: c.BorderWidth})
}

// onConfigureNotify implements §4.1: on root, re-run geometry discovery
// and resize fullscreen clients back to their (possibly new) monitor.
func (w *WM) onConfigureNotify(ev xproto.ConfigureNotifyEvent) {
	if ev.Window != w.Conn.Root() {
		return
	}
	w.updateGeometry()
	w.graph.Clients.Each(func(_ model.ClientID, c *model.Client) {
		if !c.IsFullscreen {
			return
		}
		mon := w.graph.Monitor(c.Monitor)
		if mon == nil {
			return
		}
		c.X, c.Y, c.W, c.H = mon.MX, mon.MY, mon.MW, mon.MH
		_ = w.Conn.Configure(xserver.WindowID(c.Win), xserver.Geometry{X: c.X, Y: c.Y, W: c.W, H: c.H})
	})
	w.RepaintBars()
}

func (w *WM) onDestroyNotify(ev xproto.DestroyNotifyEvent) {
	if id, c := w.graph.WinToClient(model.WindowID(ev.Window)); c != nil {
		w.Unmanage(id, true)
	}
}

func (w *WM) onUnmapNotify(ev xproto.UnmapNotifyEvent) {
	id, c := w.graph.WinToClient(model.WindowID(ev.Window))
	if c == nil {
		return
	}
	if ev.FromConfigure {
		// Synthetic unmap (client set WithdrawnState itself): leave it
		// managed, matching dynamd.c's send_event guard in unmapnotify.
		return
	}
	w.Unmanage(id, false)
}

// onPropertyNotify implements §4.1's property-change table.
func (w *WM) onPropertyNotify(ev xproto.PropertyNotifyEvent) {
	if ev.Window == w.Conn.Root() {
		w.RepaintBars()
		return
	}
	_, c := w.graph.WinToClient(model.WindowID(ev.Window))
	if c == nil {
		return
	}
	name, err := w.Conn.AtomName(ev.Atom)
	if err != nil {
		return
	}
	switch name {
	case "WM_NAME", "_NET_WM_NAME":
		c.Name = w.Conn.WmName(xserver.WindowID(c.Win))
		w.RepaintBars()
	case "WM_HINTS":
		if hints, err := w.Conn.WmHints(xserver.WindowID(c.Win)); err == nil && hints != nil {
			c.IsUrgent = hints.Flags&icccmUrgencyHintMask != 0
			c.NeverFocus = hints.Input != nil && !*hints.Input
		}
		w.RepaintBars()
	case "WM_NORMAL_HINTS":
		if hints, err := w.Conn.SizeHints(xserver.WindowID(c.Win)); err == nil && hints != nil {
			applyNormalHints(c, hints)
			c.IsFixed = c.Hints.IsFixed()
		}
	case "_NET_WM_WINDOW_TYPE":
		if w.Conn.IsDialog(xserver.WindowID(c.Win)) {
			c.IsFloating = true
			if mon := w.graph.Monitor(c.Monitor); mon != nil {
				w.Arrange(mon)
			}
		}
	}
}

// icccmUrgencyHintMask mirrors XUrgencyHint (1<<8) from the ICCCM WM_HINTS
// flags word.
const icccmUrgencyHintMask = 1 << 8

// onClientMessage implements §4.1: _NET_WM_STATE fullscreen add/toggle/
// remove, and _NET_ACTIVE_WINDOW urgency marking for a non-focused client.
func (w *WM) onClientMessage(ev xproto.ClientMessageEvent) {
	_, c := w.graph.WinToClient(model.WindowID(ev.Window))
	if c == nil {
		return
	}
	typeAtom, err := w.Conn.AtomName(ev.Type)
	if err != nil {
		return
	}
	data := ev.Data.Data32

	switch typeAtom {
	case "_NET_WM_STATE":
		if len(data) < 2 {
			return
		}
		fsAtom, err := w.Conn.Atom("_NET_WM_STATE_FULLSCREEN")
		if err != nil || xproto.Atom(data[1]) != fsAtom && xproto.Atom(data[2]) != fsAtom {
			return
		}
		target := fullscreen.TargetState(fullscreen.Op(data[0]), c.IsFullscreen)
		mon := w.graph.Monitor(c.Monitor)
		if mon == nil {
			return
		}
		rect, changed := fullscreen.Set(c, mon, target)
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
	case "_NET_ACTIVE_WINDOW":
		mon := w.graph.Monitor(c.Monitor)
		if mon != nil && mon.Sel != firstClientID(w.graph, mon, c) && !c.IsUrgent {
			c.IsUrgent = true
			w.RepaintBars()
		}
	}
}

func firstClientID(g *model.Graph, mon *model.Monitor, c *model.Client) model.ClientID {
	var found model.ClientID
	for _, id := range mon.Clients {
		if cc := g.Client(id); cc == c {
			found = id
			break
		}
	}
	return found
}

// onEnterNotify implements §4.1's focus-follows-mouse: focus the client
// under the pointer, ignoring inferior crossings and the spurious events
// restack() generates.
func (w *WM) onEnterNotify(ev xproto.EnterNotifyEvent) {
	if w.suppressEnter {
		w.suppressEnter = false
		return
	}
	if ev.Mode != xproto.NotifyModeNormal || ev.Detail == xproto.NotifyDetailInferior {
		return
	}
	id, c := w.graph.WinToClient(model.WindowID(ev.Event))
	if c == nil {
		return
	}
	mon := w.graph.Monitor(c.Monitor)
	if mon == nil {
		return
	}
	w.graph.SelMon = c.Monitor
	w.focusCtl.Focus(w.graph, mon, c, id)
}

// onKeyPress implements §4.1: clean the modifier mask and dispatch to the
// matching action.
func (w *WM) onKeyPress(ev xproto.KeyPressEvent) {
	keyName := w.keysymName(ev.Detail)
	cleaned := xserver.CleanMask(ev.State, w.numLockMask)
	binding, ok := w.matchKey(cleaned, keyName)
	if !ok {
		return
	}
	w.RunAction(binding.Action, ActionArgs{I: binding.ArgI, F: binding.ArgF, V: binding.ArgV})
}

// onButtonPress implements §4.1: route clicks on the bar/tags/status or a
// client window to the matching bound action, tagged by click region.
func (w *WM) onButtonPress(ev xproto.ButtonPressEvent) {
	cleaned := xserver.CleanMask(ev.State, w.numLockMask)
	buttonName := buttonName(ev.Detail)
	click, arg := w.classifyClick(ev)
	binding, ok := w.matchButton(click, cleaned, buttonName)
	if !ok {
		return
	}
	if binding.ArgI != 0 {
		arg = binding.ArgI
	}
	w.RunAction(binding.Action, ActionArgs{I: arg})
}

func buttonName(detail xproto.Button) string {
	switch detail {
	case 1:
		return "Button1"
	case 2:
		return "Button2"
	case 3:
		return "Button3"
	default:
		return ""
	}
}
