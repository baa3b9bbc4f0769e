// Package model holds the in-memory graph of monitors, clients, tags and
// per-tag sticky state (spec.md §3). It is deliberately free of any X11
// import: the server/render adapters live in xserver/xrender and talk to
// this package only through plain Go values, which is what lets the bulk of
// dynamd's behavior be unit tested without a live display.
package model

import "math/bits"

// MaxTags mirrors dynamd.c's NumTags compile-time assertion: the tag-name
// table in config.h carries at most 25 entries because Tags is stored in an
// unsigned int bitmask on the C side. Go doesn't need the bitmask to fit a
// machine word quite as tightly, but the contract is kept identical.
const MaxTags = 25

// Tags is a bitmask over 0..N-1 tag indices. A client always carries a
// nonzero Tags value (invariant 2); a Monitor's active view is a Tags value
// too (the "tagset").
type Tags uint32

// Mask returns the bitmask of the low n tag bits, i.e. TAGMASK in dynamd.c.
func Mask(n int) Tags {
	if n <= 0 {
		return 0
	}
	if n >= 32 {
		return ^Tags(0)
	}
	return Tags(1)<<uint(n) - 1
}

// Has reports whether t includes tag index i.
func (t Tags) Has(i int) bool {
	return t&(1<<uint(i)) != 0
}

// LowestSet returns the index of the lowest set bit, or -1 if t is zero.
func (t Tags) LowestSet() int {
	if t == 0 {
		return -1
	}
	return bits.TrailingZeros32(uint32(t))
}

// Intersects reports whether t and other share any bit (spec's visibility
// test, invariant 4: client.tags & monitor.tagset[seltags] != 0).
func (t Tags) Intersects(other Tags) bool {
	return t&other != 0
}

// ShiftView performs the circular bit-rotation shiftview(delta) requires,
// over the low n bits only.
func (t Tags) ShiftView(delta, n int) Tags {
	if n <= 0 {
		return t
	}
	m := Mask(n)
	t &= m
	delta = ((delta % n) + n) % n
	rotated := (t << uint(delta)) | (t >> uint(n-delta))
	return rotated & m
}
