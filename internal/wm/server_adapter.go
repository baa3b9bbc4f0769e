package wm

import (
	"strconv"
	"strings"

	"github.com/loannaflip/dynamd/internal/model"
	"github.com/loannaflip/dynamd/internal/xserver"
)

// serverAdapter satisfies focus.Server by delegating to the real
// xserver.Conn, translating the config's hex color strings into X pixel
// values the way dynamd.c's scheme[SchemeSel][ColBorder] lookup does.
type serverAdapter struct {
	w *WM
}

func hexPixel(hex string) uint32 {
	hex = strings.TrimPrefix(hex, "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0
	}
	return uint32(v)
}

func (s *serverAdapter) SetBorder(win model.WindowID, selected bool) {
	scheme := s.w.Cfg.Colors["norm"]
	if selected {
		scheme = s.w.Cfg.Colors["sel"]
	}
	_ = s.w.Conn.SetBorderColor(xserver.WindowID(win), hexPixel(scheme.Border))
}

func (s *serverAdapter) GrabButtons(win model.WindowID, focused bool) {
	s.w.grabButtons(xserver.WindowID(win), focused)
}

func (s *serverAdapter) SetInputFocus(win model.WindowID) {
	_ = s.w.Conn.SetInputFocus(xserver.WindowID(win))
}

func (s *serverAdapter) SendTakeFocus(win model.WindowID) {
	_ = s.w.Conn.SendTakeFocus(xserver.WindowID(win))
}

func (s *serverAdapter) SetActiveWindow(win model.WindowID) {
	_ = s.w.Conn.SetActiveWindow(xserver.WindowID(win))
}

func (s *serverAdapter) ClearActiveWindow() {
	_ = s.w.Conn.ClearActiveWindow()
}

func (s *serverAdapter) SetInputFocusRoot() {
	_ = s.w.Conn.SetInputFocusRoot()
}

func (s *serverAdapter) RepaintBars() {
	s.w.RepaintBars()
}

// grabButtons mirrors dynamd.c's grabbuttons(c, focused): ungrab
// everything on win, then, if not focused, grab every ClkClientWin button
// binding with its modifier. If focused, nothing is grabbed again, so
// clicks pass straight through to the already-focused client.
func (w *WM) grabButtons(win xserver.WindowID, focused bool) {
	_ = w.Conn.UngrabAllButtons(win)
	if focused {
		return
	}
	for _, b := range w.Cfg.Buttons {
		if b.Click != "ClkClientWin" {
			continue
		}
		_ = w.Conn.GrabButton(win, b.Button, modMaskFromName(b.Mod), true)
	}
}
