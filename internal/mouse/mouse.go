// Package mouse implements the decision logic behind spec.md §4.10's move
// and resize mouse actions, translated from dynamd.c's movemouse/
// resizemouse. The interactive X event loop itself (grab pointer, process
// only Configure/Expose/Map/Motion/ButtonRelease, redispatch everything
// else) lives in the wm package's driver since it needs a live connection;
// this package holds the pure geometry/threshold math so it stays
// unit-testable without one.
package mouse

// DefaultSnapDistance is the edge-snap threshold in pixels (config's
// SnapDistance, default 32 per spec.md §4.10).
const DefaultSnapDistance = 32

// MotionHz is the throttle rate motion events are coalesced to.
const MotionHz = 60

// MotionIntervalMillis is the minimum gap between processed motion events.
const MotionIntervalMillis = 1000 / MotionHz

// ThrottleMotion reports whether a motion event arriving at nowMs should
// be processed, given the last processed event was at lastMs. dwm derives
// this from event timestamps rather than wall-clock reads so it stays
// deterministic under replay.
func ThrottleMotion(lastMs, nowMs int64) bool {
	return nowMs-lastMs >= MotionIntervalMillis
}

// SnapMove snaps a candidate top-left corner to the monitor's work-area
// edges when within snap pixels of them (movemouse's nx/ny snapping
// against wx/wy/wx+ww/wy+wh).
func SnapMove(x, y, w, h int, wx, wy, ww, wh, snap int) (int, int) {
	if abs(x-wx) < snap {
		x = wx
	} else if abs((wx+ww)-(x+w)) < snap {
		x = wx + ww - w
	}
	if abs(y-wy) < snap {
		y = wy
	} else if abs((wy+wh)-(y+h)) < snap {
		y = wy + wh - h
	}
	return x, y
}

// ShouldFloat reports whether a tiled, non-floating client being dragged
// has drifted far enough from its tiled position to be promoted to
// floating (movemouse/resizemouse's "> snap" drift check).
func ShouldFloat(driftX, driftY, snap int) bool {
	return abs(driftX) > snap || abs(driftY) > snap
}

// ClampResize floors the candidate width/height at 1 pixel
// (resizemouse's release-time clamp).
func ClampResize(w, h int) (int, int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// MonitorRect is the minimal monitor geometry CentroidMonitor needs.
type MonitorRect struct {
	Index          int
	X, Y, W, H int
}

// CentroidMonitor returns the index of the monitor whose screen rectangle
// contains the centroid of (x,y,w,h), or -1 if none does — resizemouse/
// movemouse's release-time "has the window crossed onto another monitor"
// check that triggers sendmon.
func CentroidMonitor(x, y, w, h int, mons []MonitorRect) int {
	cx, cy := x+w/2, y+h/2
	for _, m := range mons {
		if cx >= m.X && cx < m.X+m.W && cy >= m.Y && cy < m.Y+m.H {
			return m.Index
		}
	}
	return -1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
