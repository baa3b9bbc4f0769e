package bar

import (
	"testing"

	"github.com/loannaflip/dynamd/internal/model"
)

func TestBuildTagsMarksOccupiedAndUrgent(t *testing.T) {
	names := []string{"1", "2", "3"}
	clients := []ClientTagInfo{
		{Tags: model.Tags(1 << 1), Urgent: true},
	}
	tags := BuildTags(names, model.Tags(1), clients)
	if !tags[0].Selected {
		t.Fatal("tag 0 should be selected (active tagset)")
	}
	if !tags[1].Occupied || !tags[1].Urgent {
		t.Fatal("tag 1 should be occupied and urgent")
	}
	if tags[2].Occupied || tags[2].Selected {
		t.Fatal("tag 2 should be vacant")
	}
}

func TestVisibleTagsOmitsVacant(t *testing.T) {
	tags := []TagLabel{
		{Index: 0, Selected: true},
		{Index: 1, Occupied: false, Selected: false},
		{Index: 2, Occupied: true},
	}
	vis := VisibleTags(tags)
	if len(vis) != 2 {
		t.Fatalf("expected 2 visible tags, got %d", len(vis))
	}
}

func TestMonocleSymbol(t *testing.T) {
	if MonocleSymbol(3) != "[M 3]" {
		t.Fatalf("got %q", MonocleSymbol(3))
	}
}

func TestShouldShowTabBar(t *testing.T) {
	if ShouldShowTabBar(true, 1) {
		t.Fatal("tab bar must not show with only 1 visible client")
	}
	if !ShouldShowTabBar(true, 2) {
		t.Fatal("tab bar should show with >1 visible clients under monocle")
	}
	if ShouldShowTabBar(false, 3) {
		t.Fatal("tab bar only applies under monocle")
	}
}

func TestFitTabsTruncatesWidestFirst(t *testing.T) {
	tabs := []Tab{{Title: "short"}, {Title: "averyveryverylongtitle"}}
	measure := func(s string) int { return len(s) }
	out := FitTabs(tabs, 15, measure)
	total := 0
	for _, tb := range out {
		total += measure(tb.Title)
	}
	if total > 15 {
		t.Fatalf("expected total width <= 15, got %d", total)
	}
	if len(out[0].Title) != len("short") {
		t.Fatalf("the shorter title should be untouched, got %q", out[0].Title)
	}
}
