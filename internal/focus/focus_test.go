package focus

import (
	"testing"

	"github.com/loannaflip/dynamd/internal/model"
)

type recordingServer struct {
	borders     map[model.WindowID]bool
	focusedWin  model.WindowID
	activeWin   model.WindowID
	rootFocused bool
	repaints    int
}

func newRecordingServer() *recordingServer {
	return &recordingServer{borders: make(map[model.WindowID]bool)}
}

func (s *recordingServer) SetBorder(win model.WindowID, selected bool) { s.borders[win] = selected }
func (s *recordingServer) GrabButtons(model.WindowID, bool)            {}
func (s *recordingServer) SetInputFocus(win model.WindowID)            { s.focusedWin = win }
func (s *recordingServer) SendTakeFocus(model.WindowID)                {}
func (s *recordingServer) SetActiveWindow(win model.WindowID)          { s.activeWin = win }
func (s *recordingServer) ClearActiveWindow()                          { s.activeWin = 0 }
func (s *recordingServer) SetInputFocusRoot()                          { s.rootFocused = true }
func (s *recordingServer) RepaintBars()                                { s.repaints++ }

func setupGraph(t *testing.T) (*model.Graph, model.MonitorID) {
	t.Helper()
	g := model.NewGraph(9)
	mid := g.AddMonitor(&model.Monitor{TagSet: [2]model.Tags{1, 1}})
	return g, mid
}

func TestFocusFallsBackToFirstVisibleInStack(t *testing.T) {
	g, mid := setupGraph(t)
	mon := g.Monitor(mid)
	id1 := g.Manage(&model.Client{Win: 1, Tags: 1, Monitor: mid})
	_ = id1

	srv := newRecordingServer()
	ctl := New(srv)

	// Passing nil should select the front of the stack.
	ctl.Focus(g, mon, nil, model.ClientID{})
	if mon.Sel.IsZero() {
		t.Fatal("expected a fallback selection")
	}
	if !srv.borders[1] {
		t.Fatal("expected selected border set on the fallback client")
	}
	if srv.activeWin != 1 {
		t.Fatalf("expected active window set to 1, got %d", srv.activeWin)
	}
}

func TestFocusMovesSelectionToFrontOfStack(t *testing.T) {
	g, mid := setupGraph(t)
	mon := g.Monitor(mid)
	id1 := g.Manage(&model.Client{Win: 1, Tags: 1, Monitor: mid})
	id2 := g.Manage(&model.Client{Win: 2, Tags: 1, Monitor: mid})

	srv := newRecordingServer()
	ctl := New(srv)

	c1 := g.Client(id1)
	ctl.Focus(g, mon, c1, id1)
	if mon.Stack[0] != id1 {
		t.Fatalf("expected id1 moved to front of stack, got %v", mon.Stack)
	}
	if srv.borders[1] != true {
		t.Fatal("expected id1 selected")
	}

	_ = id2
}

func TestUnfocusClearsBorderAndOptionallyRoot(t *testing.T) {
	srv := newRecordingServer()
	ctl := New(srv)
	c := &model.Client{Win: 7}
	srv.borders[7] = true

	ctl.Unfocus(c, true)
	if srv.borders[7] {
		t.Fatal("expected border cleared")
	}
	if !srv.rootFocused {
		t.Fatal("expected root input focus requested")
	}
}

func TestStackOrderRaisesFloatingSelection(t *testing.T) {
	g, mid := setupGraph(t)
	mon := g.Monitor(mid)
	floatID := g.Manage(&model.Client{Win: 1, Tags: 1, Monitor: mid, IsFloating: true})
	tiledID := g.Manage(&model.Client{Win: 2, Tags: 1, Monitor: mid})
	mon.Sel = floatID

	raise, lower := StackOrder(g, mon, false)
	if len(raise) != 1 || raise[0] != floatID {
		t.Fatalf("expected the floating selection to be raised, got %v", raise)
	}
	if len(lower) != 1 || lower[0] != tiledID {
		t.Fatalf("expected the tiled client in the lower set, got %v", lower)
	}
}

func TestFocusStackWrapsAndSkipsInvisible(t *testing.T) {
	g, mid := setupGraph(t)
	mon := g.Monitor(mid)
	id1 := g.Manage(&model.Client{Win: 1, Tags: 1, Monitor: mid})
	_ = g.Manage(&model.Client{Win: 2, Tags: 2, Monitor: mid}) // different tag, invisible
	id3 := g.Manage(&model.Client{Win: 3, Tags: 1, Monitor: mid})

	mon.Sel = id3
	next := FocusStack(g, mon, 1)
	if next != id1 {
		t.Fatalf("expected wrap-around to skip the invisible client and land on id1, got %v", next)
	}
}
