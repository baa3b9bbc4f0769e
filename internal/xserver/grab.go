package xserver

import (
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/keybind"
	"github.com/jezek/xgbutil/mousebind"
)

// CleanMask strips the modifier bits that must be ignored when matching a
// binding against an incoming event: NumLock (queried at runtime via
// updatenumlockmask) and CapsLock (LockMask). Of the rest it keeps only
// Shift, Control and Mod1-Mod5. It mirrors dynamd.c's CLEANMASK macro.
func CleanMask(state, numLockMask uint16) uint16 {
	const lockMask = xproto.ModMaskLock
	return state &^ (uint16(numLockMask) | lockMask) &
		(xproto.ModMaskShift | xproto.ModMaskControl | xproto.ModMask1 |
			xproto.ModMask2 | xproto.ModMask3 | xproto.ModMask4 | xproto.ModMask5)
}

// NumLockMask queries the current NumLock modifier mapping
// (updatenumlockmask walks XModifierKeymap for XK_Num_Lock).
func (c *Conn) NumLockMask() uint16 {
	mask, err := keybind.ModMapGet(c.XU)
	if err != nil || mask == nil {
		return 0
	}
	numLock := keybind.KeysymToKeycode(c.XU, keybind.StrToKeysym("Num_Lock"))
	for modIndex := 0; modIndex < 8; modIndex++ {
		for _, kc := range mask.Keycodes[modIndex] {
			if kc == numLock && kc != 0 {
				return 1 << uint(modIndex)
			}
		}
	}
	return 0
}

// GrabKey / UngrabAllKeys mirror grabkeys(): ungrab everything on the root
// window, then grab each configured binding across the NumLock/CapsLock
// modifier-combination cross product (updatenumlockmask's "modifiers"
// array in the original).
func (c *Conn) UngrabAllKeys() error {
	return keybind.UngrabAll(c.XU, c.root)
}

func (c *Conn) GrabKey(keysymName string, mods uint16) error {
	return keybind.GrabKeybind(c.XU, c.root, keybind.ParseString(c.XU, modString(mods)+"-"+keysymName), false, nil)
}

// GrabButton / UngrabAllButtons mirror buttonpress()'s grabbuttons, called
// per-client on focus change so only the selected client's buttons are
// live without a modifier.
func (c *Conn) UngrabAllButtons(win WindowID) error {
	return mousebind.UngrabAll(c.XU, win)
}

func (c *Conn) GrabButton(win WindowID, button string, mods uint16, sync bool) error {
	return mousebind.GrabButton(c.XU, win, modString(mods)+"-"+button, sync, nil)
}

// WarpPointer moves the pointer to (x, y) relative to root
// (resizemouse's final XWarpPointer to the client's new bottom-right
// corner).
func (c *Conn) WarpPointer(x, y int) error {
	return xproto.WarpPointerChecked(c.XU.Conn(), 0, c.root, 0, 0, 0, 0,
		int16(x), int16(y)).Check()
}

// QueryPointer returns the current pointer position relative to root
// (movemouse/resizemouse's initial XQueryPointer call).
func (c *Conn) QueryPointer() (x, y int, err error) {
	reply, err := xproto.QueryPointer(c.XU.Conn(), c.root).Reply()
	if err != nil {
		return 0, 0, err
	}
	return int(reply.RootX), int(reply.RootY), nil
}

// GrabPointer starts an exclusive pointer grab for the duration of a drag
// (movemouse/resizemouse's XGrabPointer call, confined to the given
// cursor shape).
func (c *Conn) GrabPointer(cursor uint32) error {
	_, err := xproto.GrabPointer(c.XU.Conn(), false, c.root,
		xproto.EventMaskButtonRelease|xproto.EventMaskPointerMotion,
		xproto.GrabModeAsync, xproto.GrabModeAsync, 0, xproto.Cursor(cursor),
		xproto.TimeCurrentTime).Reply()
	return err
}

func (c *Conn) UngrabPointer() error {
	return xproto.UngrabPointerChecked(c.XU.Conn(), xproto.TimeCurrentTime).Check()
}

func modString(mods uint16) string {
	s := ""
	if mods&xproto.ModMaskShift != 0 {
		s += "Shift-"
	}
	if mods&xproto.ModMaskControl != 0 {
		s += "Control-"
	}
	if mods&xproto.ModMask1 != 0 {
		s += "Mod1-"
	}
	if mods&xproto.ModMask4 != 0 {
		s += "Mod4-"
	}
	if s == "" {
		return "None"
	}
	return s[:len(s)-1]
}
