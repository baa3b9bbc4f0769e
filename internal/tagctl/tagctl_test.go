package tagctl

import (
	"testing"

	"github.com/loannaflip/dynamd/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMon(tagCount int) *model.Monitor {
	return &model.Monitor{
		TagSet:  [2]model.Tags{1, 1},
		SelTags: 0,
		MFact:   0.56,
		NMaster: 1,
		Pertag:  model.NewPerTagState(tagCount, 1, 0.56, 0, [2]int{0, 0}, true),
		CurTag:  1,
		PrevTag: 1,
	}
}

func TestViewNoopWhenMaskMatchesCurrent(t *testing.T) {
	mon := newMon(9)
	changed := View(mon, 1)
	assert.False(t, changed)
}

func TestViewSwitchesTagAndStickyState(t *testing.T) {
	mon := newMon(9)
	mon.NMaster = 3
	mon.Pertag.NMaster[1] = 3

	changed := View(mon, 1<<1)
	require.True(t, changed)
	assert.EqualValues(t, 1<<1, mon.ActiveTagset())
	assert.Equal(t, 2, mon.CurTag)
	// tag 2's sticky nmaster was seeded at the default (1), not tag 1's 3.
	assert.Equal(t, 1, mon.NMaster)
}

func TestViewAllTagsSetsCurTagZero(t *testing.T) {
	mon := newMon(9)
	View(mon, AllTags)
	assert.Equal(t, 0, mon.CurTag)
	assert.Equal(t, AllTags, mon.ActiveTagset())
}

func TestViewZeroSwapsPrevAndCurrent(t *testing.T) {
	mon := newMon(9)
	View(mon, 1<<2) // curtag=1 -> 3, prevtag=1
	require.Equal(t, 3, mon.CurTag)
	require.Equal(t, 1, mon.PrevTag)

	View(mon, 0) // swap back
	assert.Equal(t, 1, mon.CurTag)
	assert.Equal(t, 3, mon.PrevTag)
}

func TestTagRejectsZeroMask(t *testing.T) {
	c := &model.Client{Tags: 1}
	ok := Tag(c, 0, 9)
	assert.False(t, ok)
	assert.EqualValues(t, 1, c.Tags)
}

func TestTagReplacesBitmask(t *testing.T) {
	c := &model.Client{Tags: 1}
	ok := Tag(c, 1<<3, 9)
	require.True(t, ok)
	assert.EqualValues(t, 1<<3, c.Tags)
}

func TestToggleTagRejectsEmptyResult(t *testing.T) {
	c := &model.Client{Tags: 1 << 2}
	ok := ToggleTag(c, 1<<2, 9)
	assert.False(t, ok, "must never leave a client with zero tags")
	assert.EqualValues(t, 1<<2, c.Tags)
}

func TestToggleTagAddsBit(t *testing.T) {
	c := &model.Client{Tags: 1}
	ok := ToggleTag(c, 1<<4, 9)
	require.True(t, ok)
	assert.EqualValues(t, 1|1<<4, c.Tags)
}

func TestToggleViewRejectsEmptyResult(t *testing.T) {
	mon := newMon(9)
	ok := ToggleView(mon, 1, 9)
	assert.False(t, ok)
}

func TestShiftViewRotatesAndApplies(t *testing.T) {
	mon := newMon(9)
	changed := ShiftView(mon, 1, 9)
	require.True(t, changed)
	assert.EqualValues(t, 1<<1, mon.ActiveTagset())
}

func TestSetMFactClamps(t *testing.T) {
	mon := newMon(9)
	SetMFact(mon, -1.0)
	assert.Equal(t, 0.05, mon.MFact)
	SetMFact(mon, 10.0)
	assert.Equal(t, 0.95, mon.MFact)
}

func TestSetNMasterFloorsAtZero(t *testing.T) {
	mon := newMon(9)
	SetNMaster(mon, -10)
	assert.Equal(t, 0, mon.NMaster)
}

func TestCycleLayoutWraps(t *testing.T) {
	mon := newMon(9)
	mon.LT[0] = 0
	CycleLayout(mon, -1, 13)
	assert.Equal(t, 12, mon.LT[0])
	CycleLayout(mon, 1, 13)
	assert.Equal(t, 0, mon.LT[0])
}

func TestOrganizeTagsCompactsAndPreservesOrder(t *testing.T) {
	g := model.NewGraph(9)
	mid := g.AddMonitor(newMon(9))
	mon := g.Monitor(mid)
	mon.TagSet = [2]model.Tags{1 << 2, 1 << 2}

	id1 := g.Manage(&model.Client{Win: 1, Tags: 1 << 2, Monitor: mid})
	id2 := g.Manage(&model.Client{Win: 2, Tags: 1 << 4, Monitor: mid})
	id3 := g.Manage(&model.Client{Win: 3, Tags: (1 << 2) | (1 << 4), Monitor: mid})

	tagctlOrganize(t, g)

	c1, c2, c3 := g.Client(id1), g.Client(id2), g.Client(id3)
	require.NotNil(t, c1)
	require.NotNil(t, c2)
	require.NotNil(t, c3)

	// Occupied tags 2 and 4 compact down to 0 and 1, in first-seen order.
	assert.EqualValues(t, 1<<0, c1.Tags)
	assert.EqualValues(t, 1<<1, c2.Tags)
	assert.EqualValues(t, (1<<0)|(1<<1), c3.Tags)
	assert.EqualValues(t, 1<<0, mon.TagSet[0])
}

func tagctlOrganize(t *testing.T, g *model.Graph) {
	t.Helper()
	OrganizeTags(g, 9)
}
