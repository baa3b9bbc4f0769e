package model

import "testing"

func TestMaskAndLowestSet(t *testing.T) {
	if Mask(9) != 0x1FF {
		t.Fatalf("Mask(9) = %#x, want 0x1FF", Mask(9))
	}
	if Mask(0) != 0 {
		t.Fatalf("Mask(0) should be 0")
	}
	if got := Tags(0b0101_0000).LowestSet(); got != 4 {
		t.Fatalf("LowestSet = %d, want 4", got)
	}
	if got := Tags(0).LowestSet(); got != -1 {
		t.Fatalf("LowestSet(0) = %d, want -1", got)
	}
}

func TestShiftView(t *testing.T) {
	// 9 tags, bit 0 set, shift by 1 -> bit 1 set.
	got := Tags(1).ShiftView(1, 9)
	if got != Tags(1<<1) {
		t.Fatalf("ShiftView(+1) = %#x, want %#x", got, Tags(1<<1))
	}
	// shifting the top bit should wrap around to bit 0.
	top := Tags(1 << 8)
	got = top.ShiftView(1, 9)
	if got != Tags(1) {
		t.Fatalf("ShiftView wrap = %#x, want 0x1", got)
	}
	// negative delta shifts backward.
	got = Tags(1).ShiftView(-1, 9)
	if got != top {
		t.Fatalf("ShiftView(-1) = %#x, want %#x", got, top)
	}
}

func TestIntersects(t *testing.T) {
	if !Tags(0b0110).Intersects(Tags(0b0100)) {
		t.Fatal("expected intersection")
	}
	if Tags(0b0001).Intersects(Tags(0b0010)) {
		t.Fatal("expected no intersection")
	}
}
