// Package tagctl implements the per-tag sticky-state and view-switching
// operations of spec.md §4.6: view, tag, toggletag, toggleview,
// organizetags and shiftview, translated from dynamd.c's functions of the
// same names. Like the focus package, it mutates a *model.Monitor/*model.Graph
// directly and leaves refocus/rearrange side effects to its caller (the wm
// package), so the bitmask algebra stays unit-testable without a live
// display.
package tagctl

import "github.com/loannaflip/dynamd/internal/model"

// AllTags is the sentinel view() uses for "show every tag at once" —
// dynamd.c passes ~0 for the "view all" key binding.
const AllTags = ^model.Tags(0)

func restorePertag(mon *model.Monitor) {
	ct := mon.CurTag
	mon.NMaster = mon.Pertag.NMaster[ct]
	mon.MFact = mon.Pertag.MFact[ct]
	mon.SelLT = mon.Pertag.SelLT[ct]
	mon.LT = mon.Pertag.LT[ct]
	mon.ShowBar = mon.Pertag.ShowBar[ct]
}

func savePertag(mon *model.Monitor) {
	ct := mon.CurTag
	mon.Pertag.NMaster[ct] = mon.NMaster
	mon.Pertag.MFact[ct] = mon.MFact
	mon.Pertag.SelLT[ct] = mon.SelLT
	mon.Pertag.LT[ct] = mon.LT
	mon.Pertag.ShowBar[ct] = mon.ShowBar
}

// View implements dynamd.c's view(mask): switch the monitor's active
// tagset. mask == 0 means "swap back to the previous view"; mask ==
// AllTags means "show every tag". Returns false (no-op) when mask already
// equals the current active tagset, per spec.md §4.6.
func View(mon *model.Monitor, mask model.Tags) bool {
	if mask == mon.TagSet[mon.SelTags] {
		return false
	}

	savePertag(mon)

	mon.SelTags ^= 1
	if mask != 0 {
		mon.TagSet[mon.SelTags] = mask
	}

	switch {
	case mask == 0:
		mon.CurTag, mon.PrevTag = mon.PrevTag, mon.CurTag
	case mask == AllTags:
		mon.PrevTag = mon.CurTag
		mon.CurTag = 0
	default:
		mon.PrevTag = mon.CurTag
		mon.CurTag = 1 + mask.LowestSet()
	}

	restorePertag(mon)
	return true
}

// Tag implements dynamd.c's tag(mask): replace the selected client's tag
// bitmask wholesale. Returns false if mask has no bits below tagCount (a
// client must always carry invariant 2's "at least one bit" guarantee, so
// the caller must not apply a zero result).
func Tag(c *model.Client, mask model.Tags, tagCount int) bool {
	m := mask & model.Mask(tagCount)
	if m == 0 {
		return false
	}
	c.Tags = m
	return true
}

// ToggleTag implements dynamd.c's toggletag(mask): XOR mask into the
// selected client's tags, rejecting a result that would leave the client
// with zero tags (invariant 2).
func ToggleTag(c *model.Client, mask model.Tags, tagCount int) bool {
	newTags := c.Tags ^ (mask & model.Mask(tagCount))
	if newTags == 0 {
		return false
	}
	c.Tags = newTags
	return true
}

// ToggleView implements dynamd.c's toggleview(mask): XOR mask into the
// active tagset, rejecting a zero result, and re-syncing curtag/pertag
// exactly as view() does when the result doesn't contain the tag
// currently recorded as curtag.
func ToggleView(mon *model.Monitor, mask model.Tags, tagCount int) bool {
	newSet := mon.TagSet[mon.SelTags] ^ (mask & model.Mask(tagCount))
	if newSet == 0 {
		return false
	}

	savePertag(mon)
	mon.TagSet[mon.SelTags] = newSet

	switch {
	case newSet == AllTags:
		mon.PrevTag = mon.CurTag
		mon.CurTag = 0
	case mon.CurTag == 0 || newSet&(1<<uint(mon.CurTag-1)) == 0:
		mon.PrevTag = mon.CurTag
		mon.CurTag = 1 + newSet.LowestSet()
	}

	restorePertag(mon)
	return true
}

// ShiftView implements dynamd.c's shiftview(delta): circular bit-rotate
// the active tagset by delta positions over the low tagCount bits, then
// apply it via View exactly like a normal view() call.
func ShiftView(mon *model.Monitor, delta, tagCount int) bool {
	next := mon.ActiveTagset().ShiftView(delta, tagCount)
	return View(mon, next)
}

// SetMFact implements dynamd.c's setmfact(delta): nudges mfact by delta,
// always relative to the current value (a delta of 1 or more is not read
// as an absolute mfact), clamped to [0.05, 0.95] as layout.clampMFact already enforces
// for the tiling math itself, and persisted into the current tag's sticky
// slot.
func SetMFact(mon *model.Monitor, delta float64) {
	f := mon.MFact + delta
	if f < 0.05 {
		f = 0.05
	}
	if f > 0.95 {
		f = 0.95
	}
	mon.MFact = f
	mon.Pertag.MFact[mon.CurTag] = f
}

// SetNMaster implements dynamd.c's incnmaster(delta): adjusts nmaster,
// floored at 0 (invariant 5), persisted into the current tag's sticky
// slot.
func SetNMaster(mon *model.Monitor, delta int) {
	n := mon.NMaster + delta
	if n < 0 {
		n = 0
	}
	mon.NMaster = n
	mon.Pertag.NMaster[mon.CurTag] = n
}

// SetLayout implements dynamd.c's setlayout(idx): installs idx into the
// monitor's currently-selected layout slot (lt[sellt]) and persists it.
// idx < 0 means "keep the current layout, just repaint" (a bare toggle of
// the bar's layout-symbol click with no argument).
func SetLayout(mon *model.Monitor, idx int) {
	if idx >= 0 {
		mon.LT[mon.SelLT] = idx
		mon.Pertag.LT[mon.CurTag][mon.SelLT] = idx
	}
}

// ToggleLayout implements the "cycle the two layout-table slots" half of
// setlayout: flips sellt and persists it, so the two most recently used
// layouts can be toggled between with one binding.
func ToggleLayout(mon *model.Monitor) {
	mon.SelLT ^= 1
	mon.Pertag.SelLT[mon.CurTag] = mon.SelLT
}

// CycleLayout implements dynamd.c's cyclelayout(dir), resolved against
// §9's open question: rather than relying on a trailing {NULL,NULL}
// sentinel entry to detect the table boundary, the caller passes
// tableLen explicitly and CycleLayout wraps within it.
func CycleLayout(mon *model.Monitor, dir, tableLen int) {
	if tableLen <= 0 {
		return
	}
	cur := mon.LT[mon.SelLT]
	next := ((cur+dir)%tableLen + tableLen) % tableLen
	SetLayout(mon, next)
}

// OrganizeTags implements dynamd.c's organizetags(): compacts the set of
// tags actually occupied by at least one client down to the low tag
// indices in order, preserving per-client relative tag order (testable
// property 6). Both monitors' tagset slots are remapped identically so no
// currently-active view silently changes to a different tag's content.
func OrganizeTags(g *model.Graph, tagCount int) {
	used := make([]bool, tagCount)
	g.Clients.Each(func(_ model.ClientID, c *model.Client) {
		for i := 0; i < tagCount; i++ {
			if c.Tags.Has(i) {
				used[i] = true
			}
		}
	})

	mapping := make([]int, tagCount)
	next := 0
	for i := 0; i < tagCount; i++ {
		if used[i] {
			mapping[i] = next
			next++
		} else {
			mapping[i] = -1
		}
	}

	remap := func(t model.Tags) model.Tags {
		var out model.Tags
		for i := 0; i < tagCount; i++ {
			if t.Has(i) && mapping[i] >= 0 {
				out |= 1 << uint(mapping[i])
			}
		}
		return out
	}

	g.Clients.Each(func(id model.ClientID, c *model.Client) {
		c.Tags = remap(c.Tags)
	})
	g.Monitors.Each(func(id model.MonitorID, m *model.Monitor) {
		m.TagSet[0] = remap(m.TagSet[0])
		m.TagSet[1] = remap(m.TagSet[1])
	})
}
