package game

import (
	"testing"

	"github.com/lukev/catan_server/internal/game/board"
	"github.com/lukev/catan_server/internal/models"
)

// findEdgeChain searches the board's coordinate tables for a simple path
// of exactly n edges (n+1 distinct vertices), used to build a concrete
// "straight chain" of roads for longest-road tests without hand-deriving
// cube coordinates.
func findEdgeChain(t *testing.T, n int) []board.Edge {
	t.Helper()
	tables := board.GetTables()

	var best []board.Edge
	visited := map[string]bool{}

	var dfs func(v board.Vertex, path []board.Edge) bool
	dfs = func(v board.Vertex, path []board.Edge) bool {
		if len(path) == n {
			best = append([]board.Edge{}, path...)
			return true
		}
		for _, e := range tables.VertexAdjacentEdges[v.Key()] {
			ends := e.Vertices()
			next := ends[0]
			if ends[0].Equals(v) {
				next = ends[1]
			}
			if visited[next.Key()] {
				continue
			}
			visited[next.Key()] = true
			if dfs(next, append(path, e)) {
				return true
			}
			visited[next.Key()] = false
		}
		return false
	}

	for _, v := range tables.AllVertices {
		visited = map[string]bool{v.Key(): true}
		if dfs(v, nil) {
			return best
		}
	}
	t.Fatalf("no chain of length %d found on the board", n)
	return nil
}

// Scenario 3: longest road with enemy interruption (spec §8).
func TestLongestRoadEnemyInterruption(t *testing.T) {
	gs := threePlayerGame(t, 0)
	gs.TurnState.Phase = PhaseMain

	chain := findEdgeChain(t, 6)
	for _, e := range chain {
		gs.Board.Roads[e.Key()] = models.Road{OwnerID: "p1"}
	}
	recomputeLongestRoad(gs)

	p1 := gs.GetPlayer("p1")
	if p1.LongestRoadLength != 6 {
		t.Fatalf("p1 longest road = %d, want 6", p1.LongestRoadLength)
	}
	if !p1.HasLongestRoad {
		t.Fatal("p1 should hold the longest-road bonus with a 6-road chain")
	}

	// Split the chain at its middle vertex with an enemy settlement. The
	// vertex shared by edges chain[2] and chain[3] sits after 3 edges
	// from the start, leaving two 3-edge pieces.
	midVertex := sharedVertex(chain[2], chain[3])
	gs.Board.Buildings[midVertex.Key()] = models.Building{Kind: models.BuildingSettlement, OwnerID: "p2"}

	recomputeLongestRoad(gs)
	if p1.LongestRoadLength != 3 {
		t.Fatalf("p1 longest road after interruption = %d, want 3", p1.LongestRoadLength)
	}
	if p1.HasLongestRoad {
		t.Error("p1 should lose the longest-road bonus once split below the 5-road threshold")
	}
	for _, p := range gs.Players {
		if p.HasLongestRoad {
			t.Errorf("nobody should hold longest road: %s unexpectedly does", p.ID)
		}
	}
}

func sharedVertex(a, b board.Edge) board.Vertex {
	av := a.Vertices()
	bv := b.Vertices()
	for _, x := range av {
		for _, y := range bv {
			if x.Equals(y) {
				return x
			}
		}
	}
	panic("edges do not share a vertex")
}

func TestLargestArmyTransfer(t *testing.T) {
	gs := threePlayerGame(t, 0)
	p1, p2 := gs.Players[0], gs.Players[1]

	p1.KnightsPlayed = 3
	recomputeLargestArmy(gs)
	if !p1.HasLargestArmy {
		t.Fatal("p1 should hold largest army at 3 knights")
	}

	p2.KnightsPlayed = 3
	recomputeLargestArmy(gs)
	if !p1.HasLargestArmy {
		t.Error("a tie should not transfer largest army away from the current holder")
	}

	p2.KnightsPlayed = 4
	recomputeLargestArmy(gs)
	if p1.HasLargestArmy {
		t.Error("p1 should lose largest army once surpassed")
	}
	if !p2.HasLargestArmy {
		t.Error("p2 should gain largest army as the unique surpasser")
	}
}
