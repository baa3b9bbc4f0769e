package model

// PerTagState is the Pertag record from spec.md §4.6 and §9 ("Per-tag
// sticky state... re-express as a fixed-length array indexed by tag
// number; no dynamic allocation"). Index 0 is the reserved "all tags"
// slot; indices 1..N back tags 0..N-1 (dynamd.c is 1-indexed here because
// 0 means "the view-all pseudo-tag").
type PerTagState struct {
	NMaster []int
	MFact   []float64
	SelLT   []int
	LT      [][2]int
	ShowBar []bool
}

// NewPerTagState allocates the fixed-length arrays for n real tags (plus
// the reserved slot 0), seeding every slot with the monitor's starting
// values exactly as dynamd.c's createmon seeds pertag from the monitor
// defaults.
func NewPerTagState(n int, nmaster int, mfact float64, selLT int, lt [2]int, showbar bool) PerTagState {
	pt := PerTagState{
		NMaster: make([]int, n+1),
		MFact:   make([]float64, n+1),
		SelLT:   make([]int, n+1),
		LT:      make([][2]int, n+1),
		ShowBar: make([]bool, n+1),
	}
	for i := 0; i <= n; i++ {
		pt.NMaster[i] = nmaster
		pt.MFact[i] = mfact
		pt.SelLT[i] = selLT
		pt.LT[i] = lt
		pt.ShowBar[i] = showbar
	}
	return pt
}

// Monitor is a physical or virtual screen region (spec.md §3).
type Monitor struct {
	Num int

	MX, MY, MW, MH int // screen rectangle
	WX, WY, WW, WH int // work area (screen minus bar/tab bar)

	GapInnerH, GapInnerV, GapOuterH, GapOuterV int
	GapsEnabled                                bool

	ShowBar, TopBar   bool
	ShowTab, TopTab   bool
	BarWin, TabWin    WindowID
	BarY, TabY        int

	SelLT        int
	LT           [2]int // indices into the static layout table
	LayoutSymbol string // last-drawn bar symbol for the active layout (spec.md §4.9)

	TagSet  [2]Tags
	SelTags int

	MFact   float64
	NMaster int

	Clients []ClientID // insertion order, front-inserted on manage
	Stack   []ClientID // MRU focus order, front = most recently focused
	Sel     ClientID

	Pertag    PerTagState
	CurTag    int
	PrevTag   int
}

// ActiveTagset returns the monitor's currently viewed tagset.
func (m *Monitor) ActiveTagset() Tags {
	return m.TagSet[m.SelTags]
}

// OuterGapsEffective applies the rule from §4.3's getfacts note: outer
// gaps collapse to zero when exactly one client is visible on the
// monitor (dynamd.c's getgaps does this per-monitor, per visible count).
func (m *Monitor) OuterGapsEffective(visibleCount int) (oh, ov int) {
	if !m.GapsEnabled || visibleCount <= 1 {
		return 0, 0
	}
	return m.GapOuterH, m.GapOuterV
}

func removeID(ids []ClientID, id ClientID) []ClientID {
	out := ids[:0:0]
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}

func prependID(ids []ClientID, id ClientID) []ClientID {
	out := make([]ClientID, 0, len(ids)+1)
	out = append(out, id)
	return append(out, ids...)
}

// Attach prepends id to the monitor's client list (dynamd.c's attach:
// insertion at the head of mon->clients).
func (m *Monitor) Attach(id ClientID) {
	m.Clients = prependID(m.Clients, id)
}

// Detach removes id from the monitor's client list (dynamd.c's detach).
func (m *Monitor) Detach(id ClientID) {
	m.Clients = removeID(m.Clients, id)
}

// AttachStack prepends id to the monitor's focus stack (dynamd.c's
// attachstack).
func (m *Monitor) AttachStack(id ClientID) {
	m.Stack = prependID(m.Stack, id)
	if m.Sel.IsZero() {
		m.Sel = id
	}
}

// DetachStack removes id from the focus stack. If id was selected, Sel is
// recomputed as the first remaining stack entry visible on the given
// tagset, mirroring dynamd.c's detachstack re-selection loop.
func (m *Monitor) DetachStack(id ClientID, visible func(ClientID) bool) {
	m.Stack = removeID(m.Stack, id)
	if m.Sel != id {
		return
	}
	m.Sel = ClientID{}
	for _, c := range m.Stack {
		if visible(c) {
			m.Sel = c
			break
		}
	}
}
