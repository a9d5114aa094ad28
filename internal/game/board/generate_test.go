package board

import (
	"testing"

	"github.com/lukev/catan_server/internal/models"
)

func TestGenerateNoSixOrEightAdjacency(t *testing.T) {
	for _, seed := range []uint64{0, 1, 42, 12345, 999999} {
		b, _ := Generate(seed)
		for _, tile := range b.TileList() {
			if tile.Number != 6 && tile.Number != 8 {
				continue
			}
			for _, nb := range tile.Hex.Neighbors() {
				if other, ok := b.TileAt(nb); ok {
					if other.Number == 6 || other.Number == 8 {
						t.Fatalf("seed %d: hex %v (number %d) is adjacent to %v (number %d)", seed, tile.Hex, tile.Number, other.Hex, other.Number)
					}
				}
			}
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, seedA := Generate(7)
	b, seedB := Generate(7)
	if seedA != seedB {
		t.Fatalf("seeds diverged: %d vs %d", seedA, seedB)
	}
	for key, tileA := range a.Tiles {
		tileB, ok := b.Tiles[key]
		if !ok || tileA.Terrain != tileB.Terrain || tileA.Number != tileB.Number {
			t.Fatalf("generation for seed 7 is not deterministic at %s", key)
		}
	}
}

func TestGenerateTerrainCounts(t *testing.T) {
	b, _ := Generate(123)
	counts := make(map[models.TerrainType]int)
	for _, tile := range b.TileList() {
		counts[tile.Terrain]++
	}
	for terrain, want := range models.TerrainCounts {
		if counts[terrain] != want {
			t.Errorf("terrain %v count = %d, want %d", terrain, counts[terrain], want)
		}
	}
}

func TestGenerateDesertHasNoTokenAndHoldsRobber(t *testing.T) {
	b, _ := Generate(55)
	for _, tile := range b.TileList() {
		if tile.Terrain == models.TerrainDesert {
			if tile.Number != 0 {
				t.Errorf("desert hex %v has number %d, want 0", tile.Hex, tile.Number)
			}
			if !tile.Hex.Equals(b.RobberHex) {
				t.Errorf("robber at %v, want desert hex %v", b.RobberHex, tile.Hex)
			}
		}
	}
}

func TestGeneratePortsFixedCountAndTypes(t *testing.T) {
	b, _ := Generate(8)
	if len(b.Ports) != 9 {
		t.Fatalf("got %d ports, want 9", len(b.Ports))
	}
	counts := make(map[PortType]int)
	for _, p := range b.Ports {
		counts[p.Type]++
	}
	if counts[PortGeneric] != 4 {
		t.Errorf("generic ports = %d, want 4", counts[PortGeneric])
	}
	for _, r := range models.ResourceTypes {
		if counts[PortType(r)] != 1 {
			t.Errorf("port type %v count = %d, want 1", r, counts[PortType(r)])
		}
	}
}

func TestFixedPortEdgesStableAcrossSeeds(t *testing.T) {
	a, _ := Generate(1)
	b, _ := Generate(2)
	edgesA := make(map[string]bool)
	for _, p := range a.Ports {
		edgesA[p.Edge.Key()] = true
	}
	for _, p := range b.Ports {
		if !edgesA[p.Edge.Key()] {
			t.Fatalf("port edge %v present for seed 2 but not seed 1; port positions must be seed-independent", p.Edge)
		}
	}
}
