package layout

import (
	"testing"

	"github.com/loannaflip/dynamd/internal/geometry"
	"github.com/loannaflip/dynamd/internal/model"
)

func makeTiles(n int) []Tile {
	g := model.NewGraph(9)
	mon := g.AddMonitor(&model.Monitor{TagSet: [2]model.Tags{1, 1}})
	tiles := make([]Tile, n)
	for i := 0; i < n; i++ {
		id := g.Manage(&model.Client{Win: model.WindowID(i + 1), Tags: 1, Monitor: mon})
		tiles[i] = Tile{ID: id}
	}
	return tiles
}

func withinBounds(t *testing.T, r geometry.Rect, b geometry.Bounds) {
	t.Helper()
	if r.X < b.X || r.Y < b.Y || r.X+r.W > b.X+b.W || r.Y+r.H > b.Y+b.H {
		t.Errorf("rect %+v escapes bounds %+v", r, b)
	}
}

func overlaps(a, b geometry.Rect) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X && a.Y < b.Y+b.H && a.Y+a.H > b.Y
}

func assertNonOverlapping(t *testing.T, placements []Placement) {
	t.Helper()
	for i := 0; i < len(placements); i++ {
		for j := i + 1; j < len(placements); j++ {
			if overlaps(placements[i].Rect, placements[j].Rect) {
				t.Errorf("placements overlap: %+v and %+v", placements[i], placements[j])
			}
		}
	}
}

func TestTileNonOverlappingWithinBounds(t *testing.T) {
	area := geometry.Bounds{X: 0, Y: 0, W: 1920, H: 1080}
	p := Params{Area: area, NMaster: 1, MFact: 0.56}
	for _, n := range []int{1, 2, 3, 5} {
		placements := Tile(makeTiles(n), p)
		if len(placements) != n {
			t.Fatalf("Tile(n=%d): expected %d placements, got %d", n, n, len(placements))
		}
		assertNonOverlapping(t, placements)
		for _, pl := range placements {
			withinBounds(t, pl.Rect, area)
		}
	}
}

func TestTileSingleClientFillsMasterWidth(t *testing.T) {
	area := geometry.Bounds{X: 0, Y: 0, W: 1920, H: 1080}
	p := Params{Area: area, NMaster: 1, MFact: 0.56}
	placements := Tile(makeTiles(1), p)
	if placements[0].Rect.W != area.W {
		t.Fatalf("single tiled client should span the full work width, got %d", placements[0].Rect.W)
	}
}

func TestBStackNonOverlapping(t *testing.T) {
	area := geometry.Bounds{X: 0, Y: 0, W: 1600, H: 900}
	p := Params{Area: area, NMaster: 1, MFact: 0.5}
	for _, n := range []int{1, 2, 4} {
		placements := BStack(makeTiles(n), p)
		assertNonOverlapping(t, placements)
		for _, pl := range placements {
			withinBounds(t, pl.Rect, area)
		}
	}
}

func TestMonocleFillsArea(t *testing.T) {
	area := geometry.Bounds{X: 0, Y: 0, W: 800, H: 600}
	p := Params{Area: area}
	placements := Monocle(makeTiles(3), p)
	for _, pl := range placements {
		if pl.Rect != (geometry.Rect{X: area.X, Y: area.Y, W: area.W, H: area.H}) {
			t.Fatalf("monocle should fill the whole area for every client, got %+v", pl.Rect)
		}
	}
}

func TestGridNonOverlapping(t *testing.T) {
	area := geometry.Bounds{X: 0, Y: 0, W: 1000, H: 1000}
	p := Params{Area: area}
	for _, n := range []int{4, 5, 7, 9} {
		placements := Grid(makeTiles(n), p)
		if len(placements) != n {
			t.Fatalf("Grid(n=%d): expected %d placements, got %d", n, n, len(placements))
		}
		assertNonOverlapping(t, placements)
	}
}

func TestFibonacciConservesAreaRoughly(t *testing.T) {
	area := geometry.Bounds{X: 0, Y: 0, W: 1200, H: 800}
	p := Params{Area: area}
	for _, arrange := range []Arrange{Dwindle, Spiral} {
		placements := arrange(makeTiles(4), p)
		assertNonOverlapping(t, placements)
		for _, pl := range placements {
			withinBounds(t, pl.Rect, area)
		}
	}
}

func TestDistributeConservesExtent(t *testing.T) {
	base, extra := distribute(100, 3)
	total := base*3 + extra
	if total != 100 {
		t.Fatalf("distribute should conserve total extent exactly, got %d", total)
	}
}

func TestByNameFloatingIsNilSentinel(t *testing.T) {
	if ByName["floating"] != nil {
		t.Fatal("the floating layout entry must be the nil sentinel")
	}
	if ByName["tile"] == nil {
		t.Fatal("tile must be registered")
	}
}
