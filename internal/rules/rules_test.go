package rules

import (
	"testing"

	"github.com/loannaflip/dynamd/internal/model"
)

func TestApplyMatchesSubstringAndMerges(t *testing.T) {
	table := []Rule{
		{Class: "Alacritty", IsTerminal: true, Monitor: -1},
		{Title: "Event Tester", NoSwallow: true, Monitor: -1},
	}
	out := Apply(WindowInfo{Class: "Alacritty", Title: "zsh"}, table, 9, model.Tags(1))
	if !out.IsTerminal {
		t.Fatal("expected class match to mark terminal")
	}
	if out.NoSwallow {
		t.Fatal("did not expect the title rule to match")
	}
}

func TestApplyInheritsCurrentTagsetWhenNoRuleTagsSet(t *testing.T) {
	table := []Rule{{Class: "Alacritty", IsTerminal: true}}
	out := Apply(WindowInfo{Class: "Alacritty"}, table, 9, model.Tags(1<<3))
	if out.Tags != model.Tags(1<<3) {
		t.Fatalf("expected inherited tagset, got %#x", out.Tags)
	}
}

func TestApplyOrMergesTagsAcrossRules(t *testing.T) {
	table := []Rule{
		{Class: "Foo", Tags: 1 << 0, Monitor: -1},
		{Class: "Foo", Tags: 1 << 2, Monitor: -1},
	}
	out := Apply(WindowInfo{Class: "Foo"}, table, 9, 0)
	if out.Tags != (1<<0 | 1<<2) {
		t.Fatalf("expected OR-merged tags, got %#x", out.Tags)
	}
}

type fakeProcTree map[int]int

func (f fakeProcTree) Parent(pid int) (int, bool) {
	p, ok := f[pid]
	return p, ok
}

func TestIsDescendantWalksAncestry(t *testing.T) {
	tree := fakeProcTree{300: 200, 200: 100, 100: 1}
	if !IsDescendant(tree, 100, 300) {
		t.Fatal("300 should be a descendant of 100 via 200")
	}
	if IsDescendant(tree, 999, 300) {
		t.Fatal("300 is not a descendant of 999")
	}
}

func TestIsDescendantStopsOnProcReadFailure(t *testing.T) {
	tree := fakeProcTree{300: 200} // 200's parent is unreadable
	if IsDescendant(tree, 1, 300) {
		t.Fatal("a /proc read failure mid-chain must not be treated as a match")
	}
}

func TestTermForWinRejectsTerminalChildAndZeroPid(t *testing.T) {
	tree := fakeProcTree{}
	if _, ok := TermForWin(tree, 0, false, nil); ok {
		t.Fatal("zero pid child must never match")
	}
	if _, ok := TermForWin(tree, 5, true, nil); ok {
		t.Fatal("a terminal child must never match")
	}
}

func TestTermForWinSkipsAlreadySwallowingCandidates(t *testing.T) {
	tree := fakeProcTree{50: 10}
	cands := []Candidate{
		{ID: model.ClientID{}, Pid: 10, IsTerminal: true, Swallowing: &model.SwallowedSnapshot{}},
	}
	if _, ok := TermForWin(tree, 50, false, cands); ok {
		t.Fatal("a terminal already swallowing must not be picked again")
	}
}

func TestShouldSwallowPreservesDeadBranchBehavior(t *testing.T) {
	if ShouldSwallow(true, false) {
		t.Fatal("noswallow child must block swallow")
	}
	if ShouldSwallow(false, true) {
		t.Fatal("terminal child must block swallow")
	}
	if !ShouldSwallow(false, false) {
		t.Fatal("plain child should be swallowed")
	}
}

func TestSwallowAndUnswallowRoundTrip(t *testing.T) {
	term := &model.Client{Win: 10, IsFloating: false, BorderWidth: 2, X: 5, Y: 5, W: 100, H: 100}
	child := &model.Client{Win: 20}

	Swallow(term, child)
	if term.Win != 20 {
		t.Fatalf("expected terminal window swapped to child's, got %d", term.Win)
	}
	if term.Role != model.RoleSwallower {
		t.Fatal("expected terminal marked as swallower")
	}
	if term.Swallowing == nil || term.Swallowing.Window != 10 {
		t.Fatal("expected snapshot to retain the original window")
	}

	win, ok := Unswallow(term)
	if !ok || win != 10 {
		t.Fatalf("expected unswallow to restore original window 10, got %d ok=%v", win, ok)
	}
	if term.Win != 10 || term.BorderWidth != 2 || term.X != 5 || term.W != 100 {
		t.Fatalf("expected full geometry/state restore, got %+v", term)
	}
	if term.Role != model.RolePlain || term.Swallowing != nil {
		t.Fatal("expected swallower state cleared after unswallow")
	}
}

func TestSwallowIndexDirectLookup(t *testing.T) {
	idx := NewSwallowIndex()
	id := model.ClientID{}
	idx.Track(10, id)
	got, ok := idx.SwallowingClient(10)
	if !ok || got != id {
		t.Fatal("expected direct lookup to find the swallower")
	}
	idx.Untrack(10)
	if _, ok := idx.SwallowingClient(10); ok {
		t.Fatal("expected untrack to remove the mapping")
	}
}
