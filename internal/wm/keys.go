package wm

import (
	"strings"

	"github.com/jezek/xgb/xproto"
	"github.com/loannaflip/dynamd/internal/config"
)

// modMaskFromName translates a config binding's "Mod4", "Mod4+Shift"
// style modifier string into the xproto modifier bitmask, the Go
// translation of config.h's MODKEY/ShiftMask macro combinations.
func modMaskFromName(spec string) uint16 {
	if spec == "" {
		return 0
	}
	var mask uint16
	for _, part := range strings.Split(spec, "+") {
		switch strings.TrimSpace(part) {
		case "Shift":
			mask |= xproto.ModMaskShift
		case "Control", "Ctrl":
			mask |= xproto.ModMaskControl
		case "Mod1", "Alt":
			mask |= xproto.ModMask1
		case "Mod4", "Super":
			mask |= xproto.ModMask4
		case "Mod5":
			mask |= xproto.ModMask5
		}
	}
	return mask
}

// GrabKeys implements dynamd.c's grabkeys(): ungrab every key on root,
// then grab each configured binding across the NumLock/CapsLock modifier
// cross product (xserver.Conn.GrabKey already cleans the mask the way
// CLEANMASK does at match time; grabbing is done for the raw mask plus
// NumLock/CapsLock added in, matching the original's habit of grabbing
// every physically equivalent combination rather than cleaning at grab
// time).
func (w *WM) GrabKeys() {
	_ = w.Conn.UngrabAllKeys()
	for _, k := range w.Cfg.Keys {
		mods := modMaskFromName(k.Mod)
		for _, extra := range []uint16{0, xproto.ModMaskLock, w.numLockMask, xproto.ModMaskLock | w.numLockMask} {
			_ = w.Conn.GrabKey(k.Key, mods|extra)
		}
	}
}

// matchKey finds the first configured binding whose (cleaned mod, key)
// pair matches an incoming KeyPress, mirroring the dense linear scan
// dynamd.c's keypress() performs against its static keys[] table.
func (w *WM) matchKey(cleanedState uint16, keyName string) (config.KeyBinding, bool) {
	for _, k := range w.Cfg.Keys {
		if modMaskFromName(k.Mod) == cleanedState && strings.EqualFold(k.Key, keyName) {
			return k, true
		}
	}
	return config.KeyBinding{}, false
}

// matchButton is matchKey's ButtonPress counterpart, scoped to one click
// region (ClkLtSymbol/ClkTagBar/ClkStatusText/ClkClientWin/ClkTabBar per
// spec.md §4.9's click-region tags).
func (w *WM) matchButton(click string, cleanedState uint16, buttonName string) (config.ButtonBinding, bool) {
	for _, b := range w.Cfg.Buttons {
		if b.Click == click && modMaskFromName(b.Mod) == cleanedState && strings.EqualFold(b.Button, buttonName) {
			return b, true
		}
	}
	return config.ButtonBinding{}, false
}
