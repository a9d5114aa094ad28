package board

import (
	"github.com/lukev/catan_server/internal/models"
	"github.com/lukev/catan_server/internal/rng"
)

const maxResampleAttempts = 1000
const maxRepairPasses = 100

// Generate builds a full board deterministically from a seed, returning
// the board and the advanced seed so the caller's state can keep drawing
// from the same cursor.
func Generate(seed uint64) (*Board, uint64) {
	cursor := rng.Cursor(seed)
	tables := GetTables()
	hexes := tables.AllHexes

	var terrains []models.TerrainType
	var numbers []int
	for attempt := 0; attempt < maxResampleAttempts; attempt++ {
		terrains, cursor = shuffledTerrains(cursor)
		numbers, cursor = shuffledNumbers(cursor)
		if noAdjacentSixOrEight(hexes, terrains, numbers) {
			break
		}
	}
	if !noAdjacentSixOrEight(hexes, terrains, numbers) {
		terrains, numbers, cursor = repairAdjacency(hexes, terrains, numbers, cursor)
	}

	b := &Board{
		Tiles:     make(map[string]Tile, len(hexes)),
		Buildings: make(map[string]models.Building),
		Roads:     make(map[string]models.Road),
	}

	numberIdx := 0
	for i, h := range hexes {
		terrain := terrains[i]
		var number int
		if terrain != models.TerrainDesert {
			number = numbers[numberIdx]
			numberIdx++
		} else {
			b.RobberHex = h
		}
		b.Tiles[h.Key()] = Tile{Hex: h, Terrain: terrain, Number: number}
	}

	portEdges := FixedPortEdges()
	pool := portTypePool()
	var shuffledPool []PortType
	shuffledPool, cursor = shufflePortTypes(cursor, pool)
	for i, e := range portEdges {
		b.Ports = append(b.Ports, Port{Edge: e, Type: shuffledPool[i]})
	}

	return b, uint64(cursor)
}

func shuffledTerrains(cursor rng.Cursor) ([]models.TerrainType, rng.Cursor) {
	terrains := make([]models.TerrainType, 0, 19)
	for t, count := range models.TerrainCounts {
		for i := 0; i < count; i++ {
			terrains = append(terrains, t)
		}
	}
	sortTerrainsStable(terrains)
	next := rng.Shuffle(cursor, len(terrains), func(i, j int) {
		terrains[i], terrains[j] = terrains[j], terrains[i]
	})
	return terrains, next
}

// sortTerrainsStable orders the pre-shuffle pool deterministically (map
// iteration order is not stable in Go) so the same seed always starts from
// the same unshuffled pool.
func sortTerrainsStable(terrains []models.TerrainType) {
	order := []models.TerrainType{
		models.TerrainForest, models.TerrainPasture, models.TerrainFields,
		models.TerrainHills, models.TerrainMountains, models.TerrainDesert,
	}
	i := 0
	for _, t := range order {
		for j := range terrains {
			if terrains[j] == t {
				terrains[j], terrains[i] = terrains[i], terrains[j]
				i++
			}
		}
	}
}

func shuffledNumbers(cursor rng.Cursor) ([]int, rng.Cursor) {
	numbers := append([]int(nil), models.NumberTokens...)
	next := rng.Shuffle(cursor, len(numbers), func(i, j int) {
		numbers[i], numbers[j] = numbers[j], numbers[i]
	})
	return numbers, next
}

func shufflePortTypes(cursor rng.Cursor, pool []PortType) ([]PortType, rng.Cursor) {
	out := append([]PortType(nil), pool...)
	next := rng.Shuffle(cursor, len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out, next
}

func noAdjacentSixOrEight(hexes []Hex, terrains []models.TerrainType, numbers []int) bool {
	numberAt := numbersByHex(hexes, terrains, numbers)
	for i, h := range hexes {
		n := numberAt[h.Key()]
		if n != 6 && n != 8 {
			continue
		}
		for _, nb := range h.Neighbors() {
			if nn, ok := numberAt[nb.Key()]; ok && (nn == 6 || nn == 8) {
				_ = i
				return false
			}
		}
	}
	return true
}

func numbersByHex(hexes []Hex, terrains []models.TerrainType, numbers []int) map[string]int {
	out := make(map[string]int, len(hexes))
	idx := 0
	for i, h := range hexes {
		if terrains[i] == models.TerrainDesert {
			continue
		}
		out[h.Key()] = numbers[idx]
		idx++
	}
	return out
}

// repairAdjacency swaps offending 6/8 tokens with a uniformly-chosen
// non-6/8 token elsewhere on the board until the constraint holds or the
// pass budget is exhausted.
func repairAdjacency(hexes []Hex, terrains []models.TerrainType, numbers []int, cursor rng.Cursor) ([]models.TerrainType, []int, rng.Cursor) {
	for pass := 0; pass < maxRepairPasses; pass++ {
		if noAdjacentSixOrEight(hexes, terrains, numbers) {
			break
		}
		numberAt := numbersByHex(hexes, terrains, numbers)
		for i, h := range hexes {
			if terrains[i] == models.TerrainDesert {
				continue
			}
			n := numberAt[h.Key()]
			if n != 6 && n != 8 {
				continue
			}
			violates := false
			for _, nb := range h.Neighbors() {
				if nn, ok := numberAt[nb.Key()]; ok && (nn == 6 || nn == 8) {
					violates = true
					break
				}
			}
			if !violates {
				continue
			}
			// find a non-6/8 index to swap with, chosen uniformly among
			// the remaining non-desert tiles.
			candidates := make([]int, 0, len(numbers))
			numIdx := indexOfNumberSlot(hexes, terrains, i)
			for j, nv := range numbers {
				if j == numIdx || nv == 6 || nv == 8 {
					continue
				}
				candidates = append(candidates, j)
			}
			if len(candidates) == 0 {
				continue
			}
			var pick int
			pick, cursor = cursor.Intn(len(candidates))
			swapWith := candidates[pick]
			numbers[numIdx], numbers[swapWith] = numbers[swapWith], numbers[numIdx]
			numberAt = numbersByHex(hexes, terrains, numbers)
		}
	}
	return terrains, numbers, cursor
}

// indexOfNumberSlot maps a hex index (into the terrains/hexes slices) to
// its position in the numbers slice (which only covers non-desert hexes).
func indexOfNumberSlot(hexes []Hex, terrains []models.TerrainType, hexIndex int) int {
	slot := 0
	for i := 0; i < hexIndex; i++ {
		if terrains[i] != models.TerrainDesert {
			slot++
		}
	}
	return slot
}
