// Package fullscreen implements the fullscreen state machine of spec.md
// §4.7: normal<->fullscreen transitions and the _NET_WM_STATE_FULLSCREEN
// ClientMessage op-code mapping, translated from dynamd.c's
// setfullscreen/togglefullscreen.
package fullscreen

import (
	"github.com/loannaflip/dynamd/internal/geometry"
	"github.com/loannaflip/dynamd/internal/model"
)

// Op is the _NET_WM_STATE ClientMessage action code (spec.md §4.7 / §6):
// 0 removes the state, 1 adds it, 2 toggles it.
type Op int

const (
	OpRemove Op = 0
	OpAdd    Op = 1
	OpToggle Op = 2
)

// TargetState resolves a ClientMessage op code against the client's
// current fullscreen flag to the state it should end up in.
func TargetState(op Op, current bool) bool {
	switch op {
	case OpAdd:
		return true
	case OpRemove:
		return false
	case OpToggle:
		return !current
	default:
		return current
	}
}

// Set applies fullscreen transitions to c, mirroring dynamd.c's
// setfullscreen(c, fullscreen). On entry it snapshots isfloating/bw/x/y/w/h
// into c.OldState/OldBW/OldX/OldY/OldW/OldH (testable property 8: this
// makes the transition an involution for non-floating, non-fixed-border
// clients) and forces the client to the monitor's screen rectangle with no
// border. On exit it restores exactly what was snapshotted. target is a
// no-op (changed=false) if c is already in that state.
func Set(c *model.Client, mon *model.Monitor, target bool) (rect geometry.Rect, changed bool) {
	if target == c.IsFullscreen {
		return geometry.Rect{X: c.X, Y: c.Y, W: c.W, H: c.H}, false
	}

	if target {
		c.OldState = c.IsFloating
		c.OldBW = c.BorderWidth
		c.OldX, c.OldY, c.OldW, c.OldH = c.X, c.Y, c.W, c.H

		c.BorderWidth = 0
		c.IsFloating = true
		c.IsFullscreen = true
		c.X, c.Y, c.W, c.H = mon.MX, mon.MY, mon.MW, mon.MH
		return geometry.Rect{X: c.X, Y: c.Y, W: c.W, H: c.H}, true
	}

	c.IsFloating = c.OldState
	c.BorderWidth = c.OldBW
	c.X, c.Y, c.W, c.H = c.OldX, c.OldY, c.OldW, c.OldH
	c.IsFullscreen = false
	return geometry.Rect{X: c.X, Y: c.Y, W: c.W, H: c.H}, true
}

// Toggle flips c's current fullscreen state (the `togglefullscr` key
// binding, which carries no op code).
func Toggle(c *model.Client, mon *model.Monitor) (geometry.Rect, bool) {
	return Set(c, mon, !c.IsFullscreen)
}

// Refused reports whether a mouse move/resize must be refused because c is
// fullscreen (spec.md §4.7: "Mouse move/resize are refused for fullscreen
// clients").
func Refused(c *model.Client) bool {
	return c.IsFullscreen
}
