// Package wm is the top-level orchestrator: it owns the *xserver.Conn,
// the *model.Graph and the config, and wires the focus/layout/tagctl/
// fullscreen/rules packages together behind the event dispatcher of
// spec.md §4.1. This is the one package allowed to know about all the
// others — every package below it is deliberately X11-free or
// server-interface-abstracted so it can be unit tested without a display;
// wm is the seam where the real xserver.Conn gets plugged in.
package wm

import (
	"sync"

	"github.com/loannaflip/dynamd/internal/autostart"
	"github.com/loannaflip/dynamd/internal/config"
	"github.com/loannaflip/dynamd/internal/focus"
	"github.com/loannaflip/dynamd/internal/model"
	"github.com/loannaflip/dynamd/internal/rules"
	"github.com/loannaflip/dynamd/internal/xserver"
)

// WM is the process-wide context the Design Notes' "Global state" section
// asks for: the display/root handles, selected monitor, and controllers,
// held as one explicit value rather than package-level globals.
type WM struct {
	Conn *xserver.Conn
	Cfg  *config.Config
	Wm   string // advertised _NET_SUPPORTING_WM_CHECK name, "dynamd"

	graph *model.Graph

	focusCtl   *focus.Controller
	swallowIdx *rules.SwallowIndex
	procInfo   rules.ProcessInfo

	reaper       *autostart.Reaper
	autostartPid []int

	numLockMask   uint16
	lastMotion    int64
	suppressEnter bool

	runMu   sync.Mutex
	running bool
}

// New allocates a WM bound to an already-open connection and config. It
// does not yet touch the X server beyond what Conn.Open already did;
// Setup performs the ICCCM/EWMH handshake and initial monitor/scan work.
func New(conn *xserver.Conn, cfg *config.Config) *WM {
	w := &WM{
		Conn:       conn,
		Cfg:        cfg,
		Wm:         "dynamd",
		graph:      model.NewGraph(cfg.TagCount()),
		swallowIdx: rules.NewSwallowIndex(),
		procInfo:   ProcFS{},
		reaper:     autostart.NewReaper(),
	}
	w.focusCtl = focus.New(&serverAdapter{w: w})
	return w
}

// Graph exposes the model for tests and the dispatcher's handlers.
func (w *WM) Graph() *model.Graph { return w.graph }

// SelMon returns the currently selected monitor, or nil if none exists
// yet (only possible before Setup's first Screens() call succeeds).
func (w *WM) SelMon() *model.Monitor {
	return w.graph.Monitor(w.graph.SelMon)
}

// Stop requests the dispatcher's main loop (Run) to return after
// finishing the in-flight handler, mirroring dynamd.c's `running = 0`.
// Safe to call from a signal handler goroutine while Run is blocked in
// NextEvent on another goroutine.
func (w *WM) Stop() {
	w.runMu.Lock()
	w.running = false
	w.runMu.Unlock()
}

func (w *WM) setRunning(v bool) {
	w.runMu.Lock()
	w.running = v
	w.runMu.Unlock()
}

func (w *WM) isRunning() bool {
	w.runMu.Lock()
	defer w.runMu.Unlock()
	return w.running
}
