package game

import (
	"testing"

	"github.com/lukev/catan_server/internal/game/board"
	"github.com/lukev/catan_server/internal/models"
)

// Boundary case: Road Building with only one road piece remaining places
// exactly one free road and clears the counter instead of granting two.
func TestRoadBuildingSinglePieceRemaining(t *testing.T) {
	gs := threePlayerGame(t, 0)
	gs.TurnState.Phase = PhaseMain
	gs.TurnState.MainSubPhase = MainTradeBuildPlay
	gs.TurnState.CurrentPlayerIndex = 0
	gs.TurnState.TurnNumber = 2

	p := gs.Players[0]
	anchor := board.NewVertex(board.Hex{Q: 0, R: 0, S: 0}, board.VertexN)
	gs.Board.Buildings[anchor.Key()] = models.Building{Kind: models.BuildingSettlement, OwnerID: p.ID}
	p.RoadsRemaining = 1
	p.DevCards = append(p.DevCards, models.DevCard{Type: models.DevRoadBuilding, TurnAcquired: 1})

	play := &PlayRoadBuildingAction{BaseAction: BaseAction{Type: ActionPlayRoadBuilding, PlayerID: p.ID}}
	if err := Dispatch(gs, play); err != nil {
		t.Fatalf("play road building: %v", err)
	}
	if gs.TurnState.RoadBuildingRoadsLeft != 1 {
		t.Fatalf("RoadBuildingRoadsLeft = %d, want 1 (capped by RoadsRemaining)", gs.TurnState.RoadBuildingRoadsLeft)
	}

	edge := board.NewEdgeFromDirection(anchor.Hex, board.DirNE)
	before := p.Resources
	place := &PlaceRoadAction{BaseAction: BaseAction{Type: ActionPlaceRoad, PlayerID: p.ID}, Edge: edge}
	if err := Dispatch(gs, place); err != nil {
		t.Fatalf("place free road: %v", err)
	}
	if p.Resources != before {
		t.Errorf("free road charged resources: %+v -> %+v", before, p.Resources)
	}
	if gs.TurnState.RoadBuildingRoadsLeft != 0 {
		t.Errorf("RoadBuildingRoadsLeft = %d, want 0 after placing the only available piece", gs.TurnState.RoadBuildingRoadsLeft)
	}
	if p.RoadsRemaining != 0 {
		t.Errorf("RoadsRemaining = %d, want 0", p.RoadsRemaining)
	}

	edge2 := board.NewEdgeFromDirection(anchor.Hex, board.DirNW)
	second := &PlaceRoadAction{BaseAction: BaseAction{Type: ActionPlaceRoad, PlayerID: p.ID}, Edge: edge2}
	if err := Dispatch(gs, second); err == nil {
		t.Error("expected rejection: no road pieces left to place")
	}
}

// Property 2: total resources held by players plus the bank always equals
// the fixed supply (19 of each resource, tracked here as bank+players
// conservation after a production round).
func TestResourceSupplyConservation(t *testing.T) {
	gs := threePlayerGame(t, 0)
	gs.TurnState.Phase = PhaseMain

	before := gs.Bank
	for _, p := range gs.Players {
		before = before.Plus(p.Resources)
	}

	var wheatHex board.Hex
	for _, tile := range gs.Board.TileList() {
		if res, ok := tile.Terrain.Resource(); ok && res == models.ResourceWheat && !tile.Hex.Equals(gs.Board.RobberHex) {
			wheatHex = tile.Hex
			break
		}
	}
	verts := board.HexVertices(wheatHex)
	gs.Board.Buildings[verts[0].Key()] = models.Building{Kind: models.BuildingSettlement, OwnerID: "p1"}

	tile, _ := gs.Board.TileAt(wheatHex)
	produceResources(gs, tile.Number)

	after := gs.Bank
	for _, p := range gs.Players {
		after = after.Plus(p.Resources)
	}
	if before != after {
		t.Errorf("total supply changed across production: %+v -> %+v", before, after)
	}
}

// Proposing then cancelling a trade restores resource holdings exactly,
// since CONFIRM_TRADE is the only step that moves resources.
func TestTradeProposeCancelRoundTrip(t *testing.T) {
	gs := threePlayerGame(t, 0)
	gs.TurnState.Phase = PhaseMain
	gs.TurnState.MainSubPhase = MainTradeBuildPlay
	gs.TurnState.CurrentPlayerIndex = 0

	p1 := gs.Players[0]
	p1.Resources = models.Resources{Wood: 2, Brick: 1}
	before := p1.Resources

	propose := &ProposeTradeAction{
		BaseAction: BaseAction{Type: ActionProposeTrade, PlayerID: p1.ID},
		Offering:   models.Resources{Wood: 1},
		Requesting: models.Resources{Sheep: 1},
	}
	if err := Dispatch(gs, propose); err != nil {
		t.Fatalf("propose trade: %v", err)
	}
	if p1.Resources != before {
		t.Errorf("proposing a trade moved resources: %+v -> %+v", before, p1.Resources)
	}
	if len(gs.TradeOffers) != 1 {
		t.Fatalf("expected one open trade offer, got %d", len(gs.TradeOffers))
	}
	offerID := gs.TradeOffers[0].ID

	cancel := &CancelTradeAction{
		BaseAction: BaseAction{Type: ActionCancelTrade, PlayerID: p1.ID},
		TradeID:    offerID,
	}
	if err := Dispatch(gs, cancel); err != nil {
		t.Fatalf("cancel trade: %v", err)
	}
	if p1.Resources != before {
		t.Errorf("cancelling a trade changed resources: %+v -> %+v", before, p1.Resources)
	}
	if gs.TradeOffers[0].Status != TradeCancelled {
		t.Errorf("offer status = %s, want CANCELLED", gs.TradeOffers[0].Status)
	}

	confirmAfterCancel := &ConfirmTradeAction{
		BaseAction:   BaseAction{Type: ActionConfirmTrade, PlayerID: p1.ID},
		TradeID:      offerID,
		WithPlayerID: gs.Players[1].ID,
	}
	if err := Dispatch(gs, confirmAfterCancel); err == nil {
		t.Error("expected rejection: cannot confirm a cancelled trade")
	}
}
