package model

import "testing"

func newTestGraph(t *testing.T) (*Graph, MonitorID) {
	t.Helper()
	g := NewGraph(9)
	mon := &Monitor{
		MX: 0, MY: 0, MW: 1920, MH: 1080,
		WX: 0, WY: 0, WW: 1920, WH: 1080,
		TagSet:  [2]Tags{1, 1},
		MFact:   0.56,
		NMaster: 1,
	}
	mid := g.AddMonitor(mon)
	g.SelMon = mid
	return g, mid
}

func TestManageUnmanageInvariants(t *testing.T) {
	g, mid := newTestGraph(t)

	c1 := &Client{Win: 1, Tags: 1, Monitor: mid}
	id1 := g.Manage(c1)

	c2 := &Client{Win: 2, Tags: 1, Monitor: mid}
	id2 := g.Manage(c2)

	mon := g.Monitor(mid)
	if len(mon.Clients) != 2 || len(mon.Stack) != 2 {
		t.Fatalf("expected 2 clients in both lists, got clients=%d stack=%d", len(mon.Clients), len(mon.Stack))
	}
	// manage() prepends, so the most recently managed client is at the front.
	if mon.Clients[0] != id2 || mon.Stack[0] != id2 {
		t.Fatalf("expected id2 at front of both lists after manage")
	}
	// Graph.Manage only attaches; selecting the new client is focus.Focus's
	// job, so the first client managed on an empty monitor stays selected.
	if mon.Sel != id1 {
		t.Fatalf("expected first client to stay selected, got %v want %v", mon.Sel, id1)
	}

	g.Unmanage(id2)
	if g.Clients.Live(id2) {
		t.Fatal("id2 should no longer be live after Unmanage")
	}
	mon = g.Monitor(mid)
	if len(mon.Clients) != 1 || mon.Clients[0] != id1 {
		t.Fatalf("expected only id1 left in client list")
	}
	if mon.Sel != id1 {
		t.Fatalf("expected id1 still selected after Unmanage, got %v", mon.Sel)
	}
}

func TestWinToClientAndMonitor(t *testing.T) {
	g, mid := newTestGraph(t)
	c := &Client{Win: 42, Tags: 1, Monitor: mid}
	id := g.Manage(c)

	found, fc := g.WinToClient(42)
	if found != id || fc.Win != 42 {
		t.Fatalf("WinToClient failed to find managed window")
	}

	if _, missing := g.WinToClient(999); missing != nil {
		t.Fatalf("expected no match for unmanaged window")
	}

	if g.WinToMonitor(42) != mid {
		t.Fatalf("WinToMonitor should resolve via owning client")
	}
}

func TestVisibleTiledExcludesFloatingAndFullscreen(t *testing.T) {
	g, mid := newTestGraph(t)
	tiled := g.Manage(&Client{Win: 1, Tags: 1, Monitor: mid})
	g.Manage(&Client{Win: 2, Tags: 1, Monitor: mid, IsFloating: true})
	g.Manage(&Client{Win: 3, Tags: 1, Monitor: mid, IsFullscreen: true})
	g.Manage(&Client{Win: 4, Tags: 2, Monitor: mid}) // not visible (wrong tag)

	mon := g.Monitor(mid)
	vis := g.VisibleTiled(mon)
	if len(vis) != 1 || vis[0] != tiled {
		t.Fatalf("expected exactly the one plain tiled client, got %v", vis)
	}
}

func TestOuterGapsCollapseAtOneVisible(t *testing.T) {
	g, mid := newTestGraph(t)
	mon := g.Monitor(mid)
	mon.GapsEnabled = true
	mon.GapOuterH, mon.GapOuterV = 10, 10

	g.Manage(&Client{Win: 1, Tags: 1, Monitor: mid})
	if oh, ov := mon.OuterGapsEffective(g.VisibleCount(mon)); oh != 0 || ov != 0 {
		t.Fatalf("expected outer gaps to collapse with 1 visible client, got %d,%d", oh, ov)
	}

	g.Manage(&Client{Win: 2, Tags: 1, Monitor: mid})
	if oh, ov := mon.OuterGapsEffective(g.VisibleCount(mon)); oh != 10 || ov != 10 {
		t.Fatalf("expected outer gaps restored with 2 visible clients, got %d,%d", oh, ov)
	}
}
