package schedule

import (
	"sort"
	"testing"
)

func TestSlotsNineToFive(t *testing.T) {
	got := Slots(9, 17, 30)
	if len(got) != 17 {
		t.Fatalf("expected 17 slots, got %d: %v", len(got), got)
	}
	if got[0] != "09:00" {
		t.Errorf("first slot = %q, want 09:00", got[0])
	}
	if got[len(got)-1] != "17:00" {
		t.Errorf("last slot = %q, want 17:00", got[len(got)-1])
	}
	for _, s := range got {
		if s > "17:00" {
			t.Errorf("slot %q beyond end hour", s)
		}
	}
}

func TestSlotsCountFormula(t *testing.T) {
	for _, interval := range []int{10, 15, 20, 30, 60} {
		for start := 0; start <= 23; start += 5 {
			for end := start; end <= 23; end += 3 {
				got := Slots(start, end, interval)
				want := (end-start)*60/interval + 1
				if len(got) != want {
					t.Fatalf("Slots(%d,%d,%d): %d slots, want %d", start, end, interval, len(got), want)
				}
			}
		}
	}
}

func TestSlotsStrictlyIncreasing(t *testing.T) {
	got := Slots(8, 18, 15)
	if !sort.StringsAreSorted(got) {
		t.Fatalf("slots not in order: %v", got)
	}
	seen := map[string]bool{}
	for _, s := range got {
		if seen[s] {
			t.Fatalf("duplicate slot %q", s)
		}
		seen[s] = true
	}
}

func TestSlotsZeroWidthWindow(t *testing.T) {
	got := Slots(10, 10, 30)
	if len(got) != 1 || got[0] != "10:00" {
		t.Fatalf("expected [10:00], got %v", got)
	}
}

func TestSlotsZeroPadding(t *testing.T) {
	got := Slots(7, 9, 30)
	if got[0] != "07:00" || got[1] != "07:30" {
		t.Fatalf("expected zero-padded labels, got %v", got[:2])
	}
}

func TestSlotsDefaultInterval(t *testing.T) {
	// non-positive interval falls back to the default width
	if got, want := Slots(9, 10, 0), Slots(9, 10, DefaultInterval); len(got) != len(want) {
		t.Fatalf("fallback interval: got %v want %v", got, want)
	}
}
