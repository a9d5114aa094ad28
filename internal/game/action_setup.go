package game

import (
	"github.com/lukev/catan_server/internal/game/board"
	"github.com/lukev/catan_server/internal/models"
)

// PlaceSettlementAction places a settlement, during either SETUP or MAIN.
// The phase gate in dispatch.go already confirmed it's legal to attempt one
// right now; Validate below still branches on phase for the differing
// rule set (no road-connectivity or cost requirement during SETUP).
type PlaceSettlementAction struct {
	BaseAction
	Vertex board.Vertex
}

func (a *PlaceSettlementAction) Validate(gs *GameState) error {
	v := board.Canonicalize(a.Vertex)
	if _, ok := gs.Board.BuildingAt(v); ok {
		return reject("Vertex is already occupied")
	}
	if !settlementDistanceOK(gs, v) {
		return reject("Too close to another settlement (distance rule)")
	}

	p := gs.GetPlayer(a.PlayerID)
	if p.SettlementsRemaining <= 0 {
		return reject("No settlements left to place")
	}

	if gs.TurnState.Phase == PhaseMain {
		if !playerTouchesVertexWithRoad(gs, v, a.PlayerID) {
			return reject("Settlement must touch one of your roads")
		}
		if !p.Resources.HasAtLeast(models.SettlementCost) {
			return reject("Not enough resources for a settlement")
		}
	}
	return nil
}

func (a *PlaceSettlementAction) Execute(gs *GameState) error {
	v := board.Canonicalize(a.Vertex)
	p := gs.GetPlayer(a.PlayerID)

	gs.Board.Buildings[v.Key()] = models.Building{Kind: models.BuildingSettlement, OwnerID: a.PlayerID}
	p.SettlementsRemaining--
	updatePortAccess(gs, p, v)

	if gs.TurnState.Phase == PhaseSetup {
		gs.TurnState.LastSettlementVertex = &v
		gs.TurnState.SetupSubPhase = SetupPlaceRoad
		recomputeLongestRoad(gs)
		return nil
	}

	deductAndBank(gs, p, models.SettlementCost)
	recomputeLongestRoad(gs)
	gs.Log("%s built a settlement", p.DisplayName)
	return nil
}

// PlaceRoadAction places a road, during either SETUP or MAIN.
type PlaceRoadAction struct {
	BaseAction
	Edge board.Edge
}

func (a *PlaceRoadAction) Validate(gs *GameState) error {
	if _, ok := gs.Board.RoadAt(a.Edge); ok {
		return reject("Edge is already occupied")
	}

	p := gs.GetPlayer(a.PlayerID)
	if p.RoadsRemaining <= 0 {
		return reject("No roads left to place")
	}

	if gs.TurnState.Phase == PhaseSetup {
		last := gs.TurnState.LastSettlementVertex
		if last == nil {
			return reject("No settlement placed yet this step")
		}
		ends := a.Edge.Vertices()
		if !ends[0].Equals(*last) && !ends[1].Equals(*last) {
			return reject("Road must touch the settlement you just placed")
		}
		return nil
	}

	if !edgeConnectedToPlayer(gs, a.Edge, a.PlayerID) {
		return reject("Road must connect to your road network or a building you own")
	}
	if gs.TurnState.RoadBuildingRoadsLeft == 0 && !p.Resources.HasAtLeast(models.RoadCost) {
		return reject("Not enough resources for a road")
	}
	return nil
}

func (a *PlaceRoadAction) Execute(gs *GameState) error {
	p := gs.GetPlayer(a.PlayerID)
	gs.Board.Roads[a.Edge.Key()] = models.Road{OwnerID: a.PlayerID}
	p.RoadsRemaining--

	free := gs.TurnState.Phase == PhaseMain && gs.TurnState.RoadBuildingRoadsLeft > 0
	if free {
		gs.TurnState.RoadBuildingRoadsLeft--
	} else if gs.TurnState.Phase == PhaseMain {
		deductAndBank(gs, p, models.RoadCost)
	}

	recomputeLongestRoad(gs)

	if gs.TurnState.Phase == PhaseSetup {
		advanceSetup(gs)
		return nil
	}

	gs.Log("%s built a road", p.DisplayName)
	return nil
}

// advanceSetup moves to the next setup step, or into MAIN once the snake
// order is exhausted. The second placement round also grants starting
// resources from the just-placed settlement's adjacent terrain.
func advanceSetup(gs *GameState) {
	ts := &gs.TurnState
	isSecondRound := ts.SetupStep >= len(ts.SetupOrder)/2

	if isSecondRound && ts.LastSettlementVertex != nil {
		p := gs.CurrentPlayer()
		yield := vertexResourceYields(gs, *ts.LastSettlementVertex)
		grantFromBank(gs, p, yield)
	}

	ts.SetupStep++
	ts.LastSettlementVertex = nil

	if ts.SetupStep >= len(ts.SetupOrder) {
		ts.Phase = PhaseMain
		ts.SetupSubPhase = ""
		ts.MainSubPhase = MainRollDice
		ts.CurrentPlayerIndex = ts.SetupOrder[0]
		return
	}

	ts.SetupSubPhase = SetupPlaceSettlement
	ts.CurrentPlayerIndex = ts.SetupOrder[ts.SetupStep]
}
