package xserver

import (
	"testing"

	"github.com/jezek/xgb/xproto"
)

func TestCleanMaskStripsLockAndNumLock(t *testing.T) {
	numLock := uint16(1 << 4)
	state := uint16(xproto.ModMaskShift) | uint16(xproto.ModMaskLock) | numLock
	got := CleanMask(state, numLock)
	if got != uint16(xproto.ModMaskShift) {
		t.Fatalf("expected only Shift to survive, got %b", got)
	}
}

func TestCleanMaskPreservesMod4(t *testing.T) {
	state := uint16(xproto.ModMask4) | uint16(xproto.ModMaskShift)
	got := CleanMask(state, 0)
	want := uint16(xproto.ModMask4) | uint16(xproto.ModMaskShift)
	if got != want {
		t.Fatalf("expected %b, got %b", want, got)
	}
}

func TestModStringCombinesModifiers(t *testing.T) {
	s := modString(uint16(xproto.ModMask4) | uint16(xproto.ModMaskShift))
	if s != "Shift-Mod4" {
		t.Fatalf("got %q", s)
	}
}

func TestModStringNoneWhenEmpty(t *testing.T) {
	if modString(0) != "None" {
		t.Fatalf("expected None, got %q", modString(0))
	}
}
