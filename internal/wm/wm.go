package wm

import (
	"github.com/jezek/xgb/xproto"

	"github.com/loannaflip/dynamd/internal/autostart"
	"github.com/loannaflip/dynamd/internal/config"
	"github.com/loannaflip/dynamd/internal/model"
	"github.com/loannaflip/dynamd/internal/xserver"

	log "github.com/sirupsen/logrus"
)

// barHeight is the fixed top-bar height in pixels. dynamd.c derives this
// from the loaded font's ascent+descent (drw_fontset_create's bh); without
// a render canvas wired in at Setup time (SPEC_FULL.md §4.12 leaves font
// metrics to the render adapter alone) a fixed value stands in, matching
// the default MonoLisa:size=15 font's typical line height closely enough
// for layout purposes. It is a constant and is not recomputed from the
// real font.
const barHeight = 30

// Setup performs the ICCCM/EWMH handshake dynamd.c's setup() does: claim
// SubstructureRedirect, install the root event mask, advertise EWMH
// support, discover the NumLock modifier, grab the configured keys, run
// the initial monitor geometry discovery, launch autostart, and start the
// event pump.
func (w *WM) Setup() error {
	if err := w.Conn.CheckOtherWM(); err != nil {
		return err
	}
	if err := w.Conn.SetRootEventMask(); err != nil {
		return err
	}
	if err := w.Conn.AdvertiseEWMH(w.Wm); err != nil {
		return err
	}
	w.numLockMask = w.Conn.NumLockMask()
	w.updateGeometry()
	w.GrabKeys()
	w.autostartPid = autostart.Launch(w.reaper, w.Cfg.Autostart)
	w.Conn.Run()
	return nil
}

// updateGeometry implements spec.md §4.1's updategeom: query the physical
// screen layout and reconcile it against the graph's existing monitors —
// adding new ones, removing ones that vanished (migrating their clients to
// the first surviving monitor, exactly as dynamd.c's updategeom does when
// a monitor is unplugged), and resizing the rest.
func (w *WM) updateGeometry() {
	screens, err := w.Conn.Screens()
	if err != nil || len(screens) == 0 {
		return
	}

	existing := map[int]*model.Monitor{}
	w.graph.Monitors.Each(func(_ model.MonitorID, m *model.Monitor) { existing[m.Num] = m })

	seen := map[int]bool{}
	var firstID model.MonitorID
	first := true

	for _, s := range screens {
		seen[s.Num] = true
		mon := existing[s.Num]
		if mon == nil {
			mon = w.newMonitor(s.Num)
			id := w.graph.AddMonitor(mon)
			if first {
				firstID = id
				first = false
				w.graph.SelMon = id
			}
		} else if first {
			firstID = w.graph.IDOfMonitor(mon)
			first = false
		}
		w.applyScreen(mon, s)
	}

	// Detach and reassign monitors whose screen disappeared, mirroring
	// dynamd.c's cleanupmon migration of orphaned clients onto mons (the
	// first surviving monitor in list order).
	var vanished []model.MonitorID
	w.graph.Monitors.Each(func(id model.MonitorID, m *model.Monitor) {
		if !seen[m.Num] {
			vanished = append(vanished, id)
		}
	})
	for _, id := range vanished {
		m := w.graph.Monitor(id)
		if m == nil {
			continue
		}
		dest := w.graph.Monitor(firstID)
		for _, cid := range append([]model.ClientID(nil), m.Clients...) {
			if dest != nil {
				w.SendMon(cid, dest)
			}
		}
		w.graph.Monitors.Delete(id)
	}

	if w.graph.Monitor(w.graph.SelMon) == nil {
		w.graph.SelMon = firstID
	}
}

func (w *WM) newMonitor(num int) *model.Monitor {
	return &model.Monitor{
		Num:         num,
		ShowBar:     true,
		TopBar:      true,
		ShowTab:     true,
		TopTab:      true,
		MFact:       w.Cfg.MFact,
		NMaster:     w.Cfg.NMaster,
		GapInnerH:   w.Cfg.GapInnerH,
		GapInnerV:   w.Cfg.GapInnerV,
		GapOuterH:   w.Cfg.GapOuterH,
		GapOuterV:   w.Cfg.GapOuterV,
		GapsEnabled: true,
		TagSet:      [2]model.Tags{1, 1},
		Pertag: model.NewPerTagState(w.Cfg.TagCount(), w.Cfg.NMaster, w.Cfg.MFact,
			0, [2]int{0, 1}, true),
		CurTag: 0,
	}
}

func (w *WM) applyScreen(mon *model.Monitor, s xserver.ScreenInfo) {
	mon.MX, mon.MY, mon.MW, mon.MH = s.X, s.Y, s.Width, s.Height
	mon.WX, mon.WY, mon.WW, mon.WH = s.X, s.Y, s.Width, s.Height
	if mon.ShowBar {
		if mon.TopBar {
			mon.BarY = mon.WY
			mon.WY += barHeight
		} else {
			mon.BarY = mon.WY + mon.WH - barHeight
		}
		mon.WH -= barHeight
	}
}

// Scan implements dynamd.c's scan(): walk root's existing top-level
// windows (XQueryTree) and Manage every one that is mapped (or iconic)
// and not override-redirect, transient windows last so their owners are
// already managed when TransientFor resolution runs.
func (w *WM) Scan() {
	tree, err := xproto.QueryTree(w.Conn.XU.Conn(), w.Conn.Root()).Reply()
	if err != nil {
		return
	}

	var normal, transient []xproto.Window
	for _, win := range tree.Children {
		attrs, err := xproto.GetWindowAttributes(w.Conn.XU.Conn(), win).Reply()
		if err != nil || attrs.OverrideRedirect {
			continue
		}
		if attrs.MapState != xproto.MapStateViewable {
			continue
		}
		if _, isTransient := w.Conn.TransientFor(win); isTransient {
			transient = append(transient, win)
		} else {
			normal = append(normal, win)
		}
	}
	for _, win := range normal {
		w.Manage(xserver.WindowID(win), true)
	}
	for _, win := range transient {
		w.Manage(xserver.WindowID(win), true)
	}
}

// cleanup implements dynamd.c's cleanup(): unmanage every client in
// reverse client-arena order and stop the SIGCHLD reaper. The display is
// closed by the caller (cmd/dynamd defers Conn.Close). Called once Run's
// event loop returns.
func (w *WM) cleanup() {
	var all []model.ClientID
	w.graph.Clients.Each(func(id model.ClientID, _ *model.Client) { all = append(all, id) })
	for i := len(all) - 1; i >= 0; i-- {
		w.Unmanage(all[i], false)
	}
	w.reaper.Stop()
	log.Info("dynamd: shutting down")
}
