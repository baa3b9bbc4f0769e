package model

import "github.com/loannaflip/dynamd/internal/arena"

// Graph is the whole in-memory client/monitor model: two arenas plus the
// tag count they were sized for. It replaces dynamd.c's global `mons`
// linked list and `Client*` pointer web with the arena+index
// representation from the Design Notes (§9).
type Graph struct {
	Monitors *arena.Table[*Monitor]
	Clients  *arena.Table[*Client]

	TagCount int
	SelMon   MonitorID
}

// NewGraph allocates an empty graph sized for tagCount real tags.
func NewGraph(tagCount int) *Graph {
	return &Graph{
		Monitors: arena.NewTable[*Monitor](),
		Clients:  arena.NewTable[*Client](),
		TagCount: tagCount,
	}
}

// Monitor resolves id, or nil if it no longer refers to a live monitor.
func (g *Graph) Monitor(id MonitorID) *Monitor {
	m, ok := g.Monitors.Get(id)
	if !ok {
		return nil
	}
	return m
}

// Client resolves id, or nil if it no longer refers to a live client.
func (g *Graph) Client(id ClientID) *Client {
	c, ok := g.Clients.Get(id)
	if !ok {
		return nil
	}
	return c
}

// AddMonitor inserts m and returns its fresh Id.
func (g *Graph) AddMonitor(m *Monitor) MonitorID {
	return g.Monitors.Insert(m)
}

// IDOfMonitor reverse-resolves a live *Monitor pointer back to its Id, for
// callers (like sendmon/rule's monitor-number reassignment) that only
// hold the pointer. Returns the zero Id if m is not a current member of
// the graph.
func (g *Graph) IDOfMonitor(m *Monitor) MonitorID {
	var found MonitorID
	g.Monitors.Each(func(id MonitorID, cand *Monitor) {
		if found.IsZero() && cand == m {
			found = id
		}
	})
	return found
}

// Manage inserts c, attaches it to c.Monitor's client list and focus
// stack (front of both, per spec.md §4.2's manage()), and returns its Id.
func (g *Graph) Manage(c *Client) ClientID {
	id := g.Clients.Insert(c)
	if mon := g.Monitor(c.Monitor); mon != nil {
		mon.Attach(id)
		mon.AttachStack(id)
	}
	return id
}

// Unmanage detaches id from its owning monitor's lists and removes it from
// the client arena (dynamd.c's unmanage, minus the swallow special cases
// which the rules package handles before calling this).
func (g *Graph) Unmanage(id ClientID) {
	c := g.Client(id)
	if c == nil {
		return
	}
	if mon := g.Monitor(c.Monitor); mon != nil {
		mon.Detach(id)
		mon.DetachStack(id, func(other ClientID) bool {
			oc := g.Client(other)
			m := g.Monitor(c.Monitor)
			return oc != nil && m != nil && oc.Visible(m.ActiveTagset())
		})
	}
	g.Clients.Delete(id)
}

// WinToClient scans every monitor's client list for win (dynamd.c's
// wintoclient: a flat linear scan, preserved here rather than optimized
// into an index, since nothing in the spec requires better than O(n) and
// dynamd.c itself does not index by window).
func (g *Graph) WinToClient(win WindowID) (ClientID, *Client) {
	var found ClientID
	var foundC *Client
	g.Clients.Each(func(id ClientID, c *Client) {
		if foundC == nil && c.Win == win {
			found, foundC = id, c
		}
	})
	return found, foundC
}

// WinToMonitor resolves a bar/tab-bar window, or a managed client's
// window, to its owning monitor (dynamd.c's wintomon minus the
// pointer-position fallback, which lives in the xserver-facing caller).
func (g *Graph) WinToMonitor(win WindowID) MonitorID {
	var found MonitorID
	g.Monitors.Each(func(id MonitorID, m *Monitor) {
		if !found.IsZero() {
			return
		}
		if m.BarWin == win || m.TabWin == win {
			found = id
		}
	})
	if !found.IsZero() {
		return found
	}
	if cid, _ := g.WinToClient(win); !cid.IsZero() {
		if c := g.Client(cid); c != nil {
			return c.Monitor
		}
	}
	return g.SelMon
}

// NextMonitor returns the monitor adjacent to id in insertion order,
// wrapping, in the given direction — dirtomon's +1/-1 semantics.
func (g *Graph) NextMonitor(id MonitorID, dir int) MonitorID {
	var order []MonitorID
	g.Monitors.Each(func(mid MonitorID, _ *Monitor) { order = append(order, mid) })
	if len(order) == 0 {
		return MonitorID{}
	}
	cur := -1
	for i, mid := range order {
		if mid == id {
			cur = i
			break
		}
	}
	if cur == -1 {
		return order[0]
	}
	next := ((cur+dir)%len(order) + len(order)) % len(order)
	return order[next]
}

// VisibleCount counts clients on m visible under its active tagset, used
// by the "outer gaps collapse at n==1" rule and by updatebarpos's tab-bar
// visibility check.
func (g *Graph) VisibleCount(m *Monitor) int {
	n := 0
	for _, id := range m.Clients {
		c := g.Client(id)
		if c != nil && c.Visible(m.ActiveTagset()) {
			n++
		}
	}
	return n
}

// VisibleTiled returns the visible, non-floating, non-fullscreen clients
// on m in client-list order — the slice every layout function arranges
// (dynamd.c's nexttiled-chained iteration).
func (g *Graph) VisibleTiled(m *Monitor) []ClientID {
	var out []ClientID
	for _, id := range m.Clients {
		c := g.Client(id)
		if c == nil || !c.Visible(m.ActiveTagset()) {
			continue
		}
		if c.IsFloating || c.IsFullscreen {
			continue
		}
		out = append(out, id)
	}
	return out
}
