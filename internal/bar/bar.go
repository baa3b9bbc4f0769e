// Package bar decides what the top bar and per-monitor tab bar display,
// delegating actual pixels to the render adapter (spec.md §4.9, §2 item 1).
// Translated from dynamd.c's drawbar/drawbars/drawtab/drawtabs.
package bar

import "github.com/loannaflip/dynamd/internal/model"

// TagLabel is one tag's bar entry.
type TagLabel struct {
	Index     int
	Text      string
	Occupied  bool // at least one client (visible or not) carries this tag
	Selected  bool // part of the monitor's active tagset
	Urgent    bool
	HasClient bool
}

// Layout describes what the top bar should render for one monitor.
type Layout struct {
	LayoutSymbol string
	Tags         []TagLabel
	StatusText   string // only populated for the selected monitor
	ShowStatus   bool
}

// ClientTagInfo is the minimal per-client view BuildTags needs.
type ClientTagInfo struct {
	Tags     model.Tags
	Urgent   bool
}

// BuildTags computes each tag's occupied/selected/urgent state. A tag is
// "vacant" (omitted from the bar, per spec.md §4.9) when it has no client
// and is not in the active set — callers filter on !Occupied && !Selected.
func BuildTags(names []string, tagset model.Tags, clients []ClientTagInfo) []TagLabel {
	out := make([]TagLabel, len(names))
	for i, name := range names {
		label := TagLabel{Index: i, Text: name, Selected: tagset.Has(i)}
		for _, c := range clients {
			if c.Tags.Has(i) {
				label.Occupied = true
				label.HasClient = true
				if c.Urgent {
					label.Urgent = true
				}
			}
		}
		out[i] = label
	}
	return out
}

// VisibleTags filters to the tags the bar should actually draw: occupied
// or currently selected (vacant, non-selected tags are omitted).
func VisibleTags(tags []TagLabel) []TagLabel {
	var out []TagLabel
	for _, t := range tags {
		if t.Occupied || t.Selected {
			out = append(out, t)
		}
	}
	return out
}

// MonocleSymbol renders the "[M n]" form spec.md §4.3 calls for when the
// active layout is monocle.
func MonocleSymbol(n int) string {
	if n <= 0 {
		return "[M]"
	}
	digits := []byte{'[', 'M', ' '}
	digits = append(digits, []byte(itoa(n))...)
	digits = append(digits, ']')
	return string(digits)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Tab is a single tab-bar entry.
type Tab struct {
	ID    model.ClientID
	Title string
	Focus bool
}

// ShouldShowTabBar implements updatebarpos's condition: the tab bar only
// exists when the active layout is monocle and more than one client is
// visible (spec.md §4.9).
func ShouldShowTabBar(layoutIsMonocle bool, visibleCount int) bool {
	return layoutIsMonocle && visibleCount > 1
}

// FitTabs truncates titles, widest-first, until the total width (as
// measured by measure) fits maxWidth — drawtabs's "truncating from the
// widest downward until total width fits" rule.
func FitTabs(tabs []Tab, maxWidth int, measure func(string) int) []Tab {
	widths := make([]int, len(tabs))
	total := 0
	for i, tb := range tabs {
		widths[i] = measure(tb.Title)
		total += widths[i]
	}
	for total > maxWidth {
		widest := -1
		for i, w := range widths {
			if len(tabs[i].Title) == 0 {
				continue
			}
			if widest == -1 || w > widths[widest] {
				widest = i
			}
		}
		if widest == -1 {
			break
		}
		tabs[widest].Title = tabs[widest].Title[:len(tabs[widest].Title)-1]
		newW := measure(tabs[widest].Title)
		total -= widths[widest] - newW
		widths[widest] = newW
	}
	return tabs
}
