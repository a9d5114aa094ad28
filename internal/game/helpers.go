package game

import (
	"github.com/lukev/catan_server/internal/game/board"
	"github.com/lukev/catan_server/internal/models"
)

// settlementDistanceOK reports whether v has no building at any of its
// 2-3 adjacent vertices.
func settlementDistanceOK(gs *GameState, v board.Vertex) bool {
	return !gs.Board.AdjacentVertexHasBuilding(v)
}

// playerOwnsVertex reports whether playerID owns the building at v.
func playerOwnsVertex(gs *GameState, v board.Vertex, playerID string) bool {
	b, ok := gs.Board.BuildingAt(v)
	return ok && b.OwnerID == playerID
}

// playerTouchesVertexWithRoad reports whether the player owns a road
// touching v.
func playerTouchesVertexWithRoad(gs *GameState, v board.Vertex, playerID string) bool {
	t := board.GetTables()
	for _, e := range t.VertexAdjacentEdges[v.Key()] {
		if r, ok := gs.Board.RoadAt(e); ok && r.OwnerID == playerID {
			return true
		}
	}
	return false
}

// edgeConnectedToPlayer reports whether e is connected to playerID's
// existing road/building network: one of e's two endpoint vertices is
// either a building owned by the player, or touches another road owned by
// the player, provided that endpoint isn't an enemy-owned building (which
// blocks connectivity from passing through it).
func edgeConnectedToPlayer(gs *GameState, e board.Edge, playerID string) bool {
	ends := e.Vertices()
	for _, v := range ends {
		if bld, ok := gs.Board.BuildingAt(v); ok {
			if bld.OwnerID == playerID {
				return true
			}
			// enemy building at this endpoint blocks using it as a
			// pass-through from a road on the far side.
			continue
		}
		if playerTouchesVertexWithRoad(gs, v, playerID) {
			return true
		}
	}
	return false
}

// vertexResourceYields returns the resources a newly-placed settlement at v
// would earn from setup (one of each non-desert adjacent terrain).
func vertexResourceYields(gs *GameState, v board.Vertex) models.Resources {
	var r models.Resources
	for _, h := range gs.Board.VertexHexes(v) {
		tile, ok := gs.Board.TileAt(h)
		if !ok {
			continue
		}
		res, isResource := tile.Terrain.Resource()
		if !isResource {
			continue
		}
		r.Add(res, 1)
	}
	return r
}

// updatePortAccess grants the player access to any port touching v.
func updatePortAccess(gs *GameState, p *Player, v board.Vertex) {
	for _, port := range gs.Board.PortsAt(v) {
		p.PortAccess[port.Type] = true
	}
}

// bestBankRate returns the player's best effective bank-trade rate for a
// resource: 2 with a matching 2:1 port, else 3 with any generic port, else
// 4.
func bestBankRate(p *Player, resource models.ResourceType) int {
	if p.PortAccess[board.PortType(resource)] {
		return 2
	}
	if p.PortAccess[board.PortGeneric] {
		return 3
	}
	return 4
}

// deductAndBank moves resources from a player to the bank.
func deductAndBank(gs *GameState, p *Player, cost models.Resources) {
	p.Resources = p.Resources.Minus(cost)
	gs.Bank = gs.Bank.Plus(cost)
}

// grantFromBank moves resources from the bank to a player. Caller must
// have already checked bank sufficiency.
func grantFromBank(gs *GameState, p *Player, amount models.Resources) {
	gs.Bank = gs.Bank.Minus(amount)
	p.Resources = p.Resources.Plus(amount)
}

// resetTurnFlags clears the per-turn dev-card/dice bookkeeping, run on
// END_TURN.
func resetTurnFlags(ts *TurnState) {
	ts.DiceRoll = 0
	ts.DevCardPlayedThisTurn = false
	ts.DevCardBoughtThisTurn = false
	ts.RoadBuildingRoadsLeft = 0
	ts.MustStealFrom = nil
}
