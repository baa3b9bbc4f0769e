// Package rules implements the rule-matching and terminal-swallow engine
// of spec.md §4.8, grounded directly in dynamd.c's applyrules, termforwin,
// swallow, unswallow and swallowingclient.
package rules

import (
	"strings"

	"github.com/loannaflip/dynamd/internal/model"
)

// Rule mirrors the (class, instance, title, tags, isfloating, isterminal,
// noswallow, monitor) tuple from spec.md §3, sourced from config.h's
// static `rules[]` table.
type Rule struct {
	Class      string // empty means "match any" (NULL pattern in dynamd.c)
	Instance   string
	Title      string
	Tags       model.Tags
	IsFloating bool
	IsTerminal bool
	NoSwallow  bool
	Monitor    int // -1 means "no monitor reassignment"
}

func matches(pattern, value string) bool {
	return pattern == "" || strings.Contains(value, pattern)
}

// WindowInfo is the queried identity of a window at manage-time (class,
// instance, title come from WM_CLASS/WM_NAME; dynamd.c reads these via
// XGetClassHint/gettextprop before calling applyrules).
type WindowInfo struct {
	Class, Instance, Title string
}

// Outcome is what applying the rule table decided for a new client.
type Outcome struct {
	Tags       model.Tags
	IsFloating bool
	IsTerminal bool
	NoSwallow  bool
	MonitorNum int // -1 if no rule requested a specific monitor
}

// Apply walks rules in order, OR-merging tags and latching the boolean
// flags and monitor override from every matching rule — applyrules's
// "clear isfloating and tags [...] for each rule [...] apply [...] OR-merge
// tags" contract. currentTagset is the owning monitor's active tagset,
// used as the inheritance fallback when no rule supplies any tag bit.
func Apply(info WindowInfo, table []Rule, tagCount int, currentTagset model.Tags) Outcome {
	out := Outcome{MonitorNum: -1}
	for _, r := range table {
		if !matches(r.Class, info.Class) || !matches(r.Instance, info.Instance) || !matches(r.Title, info.Title) {
			continue
		}
		out.Tags |= r.Tags
		if r.IsFloating {
			out.IsFloating = true
		}
		if r.IsTerminal {
			out.IsTerminal = true
		}
		if r.NoSwallow {
			out.NoSwallow = true
		}
		if r.Monitor >= 0 {
			out.MonitorNum = r.Monitor
		}
	}
	out.Tags &= model.Mask(tagCount)
	if out.Tags == 0 {
		out.Tags = currentTagset & model.Mask(tagCount)
	}
	return out
}

// ProcessInfo abstracts the /proc/<pid>/stat ancestry lookup dynamd.c's
// getparentprocess performs, so the engine stays unit-testable without a
// real /proc filesystem. The real implementation is wm.ProcFS, which
// reads /proc directly and reports a failure as ok=false; IsDescendant
// then treats the chain as having no ancestor.
type ProcessInfo interface {
	Parent(pid int) (parent int, ok bool)
}

// IsDescendant walks the parent chain from child looking for ancestor,
// mirroring dynamd.c's isdescprocess. A /proc read failure anywhere along
// the chain (Parent returns ok=false) terminates the walk as "not a
// descendant" rather than erroring.
func IsDescendant(pi ProcessInfo, ancestor, child int) bool {
	for child != ancestor && child != 0 {
		parent, ok := pi.Parent(child)
		if !ok {
			return false
		}
		child = parent
	}
	return child == ancestor
}

// Candidate is the minimal view of a managed client the swallow engine
// needs to find a terminal to swallow into, or a terminal that's already
// hiding a window.
type Candidate struct {
	ID         model.ClientID
	Pid        int
	IsTerminal bool
	Swallowing *model.SwallowedSnapshot
}

// TermForWin finds the terminal candidate a newly-managed window with the
// given pid should be swallowed into (dynamd.c's termforwin): it must not
// itself be a terminal, must have a nonzero pid, and must not already be
// swallowing something.
func TermForWin(pi ProcessInfo, childPid int, isTerminal bool, candidates []Candidate) (model.ClientID, bool) {
	if childPid == 0 || isTerminal {
		return model.ClientID{}, false
	}
	for _, c := range candidates {
		if !c.IsTerminal || c.Swallowing != nil || c.Pid == 0 {
			continue
		}
		if IsDescendant(pi, c.Pid, childPid) {
			return c.ID, true
		}
	}
	return model.ClientID{}, false
}

// ShouldSwallow reports whether a found terminal should actually swallow
// the child. Per spec.md §9's preserved-as-is open question, dynamd.c's
// swallow() contains a dead `&& !1 &&` conjunct; the observable behavior
// it preserves is exactly: skip swallow only when the child itself is
// noswallow or isterminal. That is reproduced here verbatim rather than
// "fixed", per the Design Notes instruction not to guess at the original
// intent.
func ShouldSwallow(childNoSwallow, childIsTerminal bool) bool {
	return !(childNoSwallow || childIsTerminal)
}

// Swallow produces the terminal's post-swallow state: its window handle
// becomes the child's, and its SwallowedSnapshot preserves what the
// terminal needs to restore itself on Unswallow (dynamd.c's swallow()).
func Swallow(term *model.Client, child *model.Client) {
	if !ShouldSwallow(child.NoSwallow, child.IsTerminal) {
		return
	}
	term.Swallowing = &model.SwallowedSnapshot{
		Window:   term.Win,
		OldState: term.IsFloating,
		OldBW:    term.BorderWidth,
		X:        term.X, Y: term.Y, W: term.W, H: term.H,
	}
	term.Role = model.RoleSwallower
	term.Win = child.Win
}

// Unswallow restores a swallowing terminal's original window and geometry
// from its snapshot (dynamd.c's unswallow()), returning the window the
// caller must now map/resize/focus.
func Unswallow(term *model.Client) (restoredWindow model.WindowID, ok bool) {
	if term.Swallowing == nil {
		return 0, false
	}
	snap := term.Swallowing
	term.Win = snap.Window
	term.IsFloating = snap.OldState
	term.BorderWidth = snap.OldBW
	term.X, term.Y, term.W, term.H = snap.X, snap.Y, snap.W, snap.H
	term.Role = model.RolePlain
	term.IsFullscreen = false
	term.Swallowing = nil
	return snap.Window, true
}

// SwallowIndex is the "separate index for the concealed terminal" the
// Design Notes (§9) suggest in place of swallowingclient's linear scan: a
// direct map from a swallowed (now-hidden) window to the client hiding it.
type SwallowIndex struct {
	byHiddenWindow map[model.WindowID]model.ClientID
}

// NewSwallowIndex returns an empty index.
func NewSwallowIndex() *SwallowIndex {
	return &SwallowIndex{byHiddenWindow: make(map[model.WindowID]model.ClientID)}
}

// Track records that id is now swallowing hiddenWindow.
func (s *SwallowIndex) Track(hiddenWindow model.WindowID, id model.ClientID) {
	s.byHiddenWindow[hiddenWindow] = id
}

// Untrack removes hiddenWindow's entry, e.g. on Unswallow.
func (s *SwallowIndex) Untrack(hiddenWindow model.WindowID) {
	delete(s.byHiddenWindow, hiddenWindow)
}

// SwallowingClient resolves hiddenWindow to the client currently
// concealing it, mirroring dynamd.c's swallowingclient(w) but in O(1).
func (s *SwallowIndex) SwallowingClient(hiddenWindow model.WindowID) (model.ClientID, bool) {
	id, ok := s.byHiddenWindow[hiddenWindow]
	return id, ok
}
