package model

import "github.com/loannaflip/dynamd/internal/arena"

// WindowID is the server-side handle for a top-level window. It is an
// opaque uint32 here (an X11 XID) so that model stays free of any xgb
// import; xserver translates between xproto.Window and WindowID at the
// boundary.
type WindowID uint32

// MonitorID and ClientID are arena.Id aliases, named the way store/client.go
// and store/manager.go name their own domain handles.
type (
	MonitorID = arena.Id
	ClientID  = arena.Id
)

// SizeHints mirrors the ICCCM WM_NORMAL_HINTS fields dynamd.c's Client
// struct keeps inline (basew/baseh, incw/inch, minw/minh, maxw/maxh,
// mina/maxa), consumed by the geometry package's ApplySizeHints.
type SizeHints struct {
	BaseW, BaseH int
	IncW, IncH   int
	MinW, MinH   int
	MaxW, MaxH   int
	MinAspect    float64
	MaxAspect    float64
}

// IsFixed reports whether the hints pin the window to a single size on
// both axes (dynamd.c: isfixed = maxw && maxh && maxw==minw && maxh==minh).
func (h SizeHints) IsFixed() bool {
	return h.MaxW != 0 && h.MaxH != 0 && h.MaxW == h.MinW && h.MaxH == h.MinH
}

// SwallowedSnapshot is the state a swallowing terminal client stashes away
// for its hidden original window, per the Design Notes' "Swallow state"
// note: rather than overloading a single Client record with two windows
// (terminal's real window vs. the one currently displayed in its slot),
// the snapshot is a small separate value and the client's Role flags which
// shape applies.
type SwallowedSnapshot struct {
	Window      WindowID
	OldState    bool // isfloating at the moment of swallowing
	OldBW       int
	X, Y, W, H  int
}

// Role distinguishes a plain managed client from one currently standing in
// for a terminal it swallowed (spec.md §4.8, §9 "Swallow state").
type Role int

const (
	RolePlain Role = iota
	RoleSwallower
)

// Client is a managed top-level window (spec.md §3).
type Client struct {
	Win  WindowID
	Name string

	X, Y, W, H             int
	OldX, OldY, OldW, OldH int
	BorderWidth, OldBW     int

	Hints SizeHints

	IsFixed      bool
	IsFloating   bool
	IsUrgent     bool
	NeverFocus   bool
	IsFullscreen bool
	OldState     bool // isfloating saved across a fullscreen toggle
	IsTerminal   bool
	NoSwallow    bool

	Tags Tags

	Monitor MonitorID
	Pid     int

	Role       Role
	Swallowing *SwallowedSnapshot // non-nil iff Role == RoleSwallower

	IsNew bool // scan()-discovered vs MapRequest-managed, set transiently by manage()
}

// Visible reports invariant 4: a client is visible iff its tags intersect
// the monitor's active tagset.
func (c *Client) Visible(monitorTagset Tags) bool {
	return c.Tags.Intersects(monitorTagset)
}

// ClampTags forces c.Tags to carry at least one bit below n, falling back
// to fallback (typically the owning monitor's active tagset) if the result
// would otherwise be zero — invariant 2 must never be violated.
func (c *Client) ClampTags(n int, fallback Tags) {
	c.Tags &= Mask(n)
	if c.Tags == 0 {
		c.Tags = fallback & Mask(n)
	}
	if c.Tags == 0 {
		c.Tags = 1
	}
}
