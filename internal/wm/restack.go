package wm

import (
	"github.com/loannaflip/dynamd/internal/focus"
	"github.com/loannaflip/dynamd/internal/model"
	"github.com/loannaflip/dynamd/internal/xserver"
)

// Restack implements the raise half of spec.md §4.4's restack(monitor):
// raise the selected client if it's floating (or the layout is floating),
// then re-send every visible non-floating client its geometry in
// focus-stack order. It does not repaint the bar or tab bar, and it does
// not lower tiled clients below the bar window or chain them by sibling,
// so their z-order among themselves is left as the server has it. A
// restack triggers spurious EnterNotify events as
// the pointer crosses freshly-reordered windows; suppressEnter is set so
// the dispatcher's EnterNotify handler drops them (§4.4's "drain spurious
// EnterNotify events generated by restacking").
func (w *WM) Restack(mon *model.Monitor) {
	if mon == nil {
		return
	}
	arrangeFn, _ := w.activeArrange(mon)
	raise, lower := focus.StackOrder(w.graph, mon, arrangeFn == nil)

	for _, id := range raise {
		if c := w.graph.Client(id); c != nil {
			_ = w.Conn.Raise(xserver.WindowID(c.Win))
		}
	}

	// Re-send each tiled client its geometry in focus-stack order. Unlike
	// dynamd.c's restack, no stack mode or wc.sibling is set here.
	for _, id := range lower {
		c := w.graph.Client(id)
		if c == nil {
			continue
		}
		_ = w.Conn.Configure(xserver.WindowID(c.Win), xserver.Geometry{
			X: c.X, Y: c.Y, W: c.W, H: c.H, Border: c.BorderWidth,
		})
	}

	w.suppressEnter = true
}
