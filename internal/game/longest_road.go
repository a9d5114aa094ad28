package game

import "github.com/lukev/catan_server/internal/game/board"

// longestRoadLength computes the longest simple edge-path through a
// player's roads: DFS from each endpoint of each owned edge with an
// edge-disjoint visited set, halting at any vertex owned by another
// player.
func longestRoadLength(gs *GameState, playerID string) int {
	t := board.GetTables()
	owned := make(map[string]board.Edge)
	for _, e := range t.AllEdges {
		if r, ok := gs.Board.RoadAt(e); ok && r.OwnerID == playerID {
			owned[e.Key()] = e
		}
	}
	if len(owned) == 0 {
		return 0
	}

	best := 0
	for _, e := range owned {
		ends := e.Vertices()
		for _, start := range ends {
			visited := map[string]bool{e.Key(): true}
			length := 1 + dfsLongest(gs, playerID, start, owned, visited)
			if length > best {
				best = length
			}
		}
	}
	return best
}

func dfsLongest(gs *GameState, playerID string, at board.Vertex, owned map[string]board.Edge, visited map[string]bool) int {
	if bld, ok := gs.Board.BuildingAt(at); ok && bld.OwnerID != playerID {
		return 0
	}

	t := board.GetTables()
	best := 0
	for _, e := range t.VertexAdjacentEdges[at.Key()] {
		if visited[e.Key()] {
			continue
		}
		if _, ok := owned[e.Key()]; !ok {
			continue
		}
		ends := e.Vertices()
		next := ends[0]
		if ends[0].Equals(at) {
			next = ends[1]
		}

		visited[e.Key()] = true
		got := 1 + dfsLongest(gs, playerID, next, owned, visited)
		delete(visited, e.Key())
		if got > best {
			best = got
		}
	}
	return best
}

// recomputeLongestRoad recalculates every player's road length and updates
// the longest-road holder per the transfer rule: a tie never transfers
// the bonus, and a drop below the new max only transfers it to a unique
// surpasser.
func recomputeLongestRoad(gs *GameState) {
	var holder *Player
	maxLen := 0
	for _, p := range gs.Players {
		p.LongestRoadLength = longestRoadLength(gs, p.ID)
		if p.HasLongestRoad {
			holder = p
		}
		if p.LongestRoadLength > maxLen {
			maxLen = p.LongestRoadLength
		}
	}

	if maxLen < 5 {
		if holder != nil {
			holder.HasLongestRoad = false
		}
		return
	}

	var atMax []*Player
	for _, p := range gs.Players {
		if p.LongestRoadLength == maxLen {
			atMax = append(atMax, p)
		}
	}

	if holder == nil {
		if len(atMax) == 1 {
			atMax[0].HasLongestRoad = true
		}
		return
	}

	if holder.LongestRoadLength == maxLen {
		return
	}

	holder.HasLongestRoad = false
	if len(atMax) == 1 {
		atMax[0].HasLongestRoad = true
	}
}

// recomputeLargestArmy applies the symmetric rule to knights played,
// threshold 3.
func recomputeLargestArmy(gs *GameState) {
	var holder *Player
	maxKnights := 0
	for _, p := range gs.Players {
		if p.HasLargestArmy {
			holder = p
		}
		if p.KnightsPlayed > maxKnights {
			maxKnights = p.KnightsPlayed
		}
	}

	if maxKnights < 3 {
		if holder != nil {
			holder.HasLargestArmy = false
		}
		return
	}

	var atMax []*Player
	for _, p := range gs.Players {
		if p.KnightsPlayed == maxKnights {
			atMax = append(atMax, p)
		}
	}

	if holder == nil {
		if len(atMax) == 1 {
			atMax[0].HasLargestArmy = true
		}
		return
	}

	if holder.KnightsPlayed == maxKnights {
		return
	}

	holder.HasLargestArmy = false
	if len(atMax) == 1 {
		atMax[0].HasLargestArmy = true
	}
}
