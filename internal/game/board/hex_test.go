package board

import "testing"

func TestHexDistance(t *testing.T) {
	cases := []struct {
		name string
		a, b Hex
		want int
	}{
		{"same hex", Hex{0, 0, 0}, Hex{0, 0, 0}, 0},
		{"direct neighbor", Hex{0, 0, 0}, Hex{1, -1, 0}, 1},
		{"two rings out", Hex{0, 0, 0}, Hex{2, -2, 0}, 2},
		{"across the board", Hex{-2, 1, 1}, Hex{2, -1, -1}, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Distance(tc.b); got != tc.want {
				t.Errorf("Distance(%v,%v) = %d, want %d", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestHexNeighborsAreMutuallyAdjacent(t *testing.T) {
	h := Hex{1, -1, 0}
	for _, n := range h.Neighbors() {
		if !h.IsDirectlyAdjacent(n) {
			t.Errorf("neighbor %v of %v is not distance 1", n, h)
		}
	}
}

func TestSpiralRangeRadius2Has19Hexes(t *testing.T) {
	hexes := Hex{}.SpiralRange(2)
	if len(hexes) != 19 {
		t.Fatalf("SpiralRange(2) returned %d hexes, want 19", len(hexes))
	}
	seen := make(map[string]bool)
	for _, h := range hexes {
		if h.Q+h.R+h.S != 0 {
			t.Errorf("hex %v violates q+r+s=0", h)
		}
		seen[h.Key()] = true
	}
	if len(seen) != 19 {
		t.Errorf("SpiralRange(2) has duplicates: %d unique of %d", len(seen), len(hexes))
	}
}

func TestNewHexPanicsOnInvalidCoordinate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for q+r+s != 0")
		}
	}()
	NewHex(1, 1, 1)
}
