package game

import (
	"testing"

	"github.com/lukev/catan_server/internal/game/board"
	"github.com/lukev/catan_server/internal/models"
)

func threePlayerGame(t *testing.T, seed uint64) *GameState {
	t.Helper()
	gs, err := NewGameState("room1", [][2]string{
		{"p1", "Alice"}, {"p2", "Bob"}, {"p3", "Carol"},
	}, seed)
	if err != nil {
		t.Fatalf("NewGameState: %v", err)
	}
	return gs
}

// Scenario 1: setup settlement distance rule (spec §8).
func TestSetupSettlementDistanceRule(t *testing.T) {
	gs := threePlayerGame(t, 0)

	p1 := gs.Players[gs.TurnState.SetupOrder[0]].ID
	settle := &PlaceSettlementAction{
		BaseAction: BaseAction{Type: ActionPlaceSettlement, PlayerID: p1},
		Vertex:     board.NewVertex(board.Hex{Q: 0, R: 0, S: 0}, board.VertexN),
	}
	if err := Dispatch(gs, settle); err != nil {
		t.Fatalf("first settlement rejected: %v", err)
	}

	road := &PlaceRoadAction{
		BaseAction: BaseAction{Type: ActionPlaceRoad, PlayerID: p1},
		Edge:       board.NewEdgeFromDirection(board.Hex{Q: 0, R: 0, S: 0}, board.DirNE),
	}
	if err := Dispatch(gs, road); err != nil {
		t.Fatalf("first road rejected: %v", err)
	}

	p2 := gs.Players[gs.TurnState.SetupOrder[1]].ID
	tooClose := &PlaceSettlementAction{
		BaseAction: BaseAction{Type: ActionPlaceSettlement, PlayerID: p2},
		Vertex:     board.NewVertex(board.Hex{Q: 1, R: -1, S: 0}, board.VertexS),
	}
	err := Dispatch(gs, tooClose)
	if err == nil {
		t.Fatal("expected rejection for a vertex adjacent to an existing settlement")
	}
	rej, ok := err.(*RejectionError)
	if !ok {
		t.Fatalf("expected *RejectionError, got %T: %v", err, err)
	}
	if !contains(rej.Reason, "distance rule") {
		t.Errorf("reason %q does not mention the distance rule", rej.Reason)
	}

	farEnough := &PlaceSettlementAction{
		BaseAction: BaseAction{Type: ActionPlaceSettlement, PlayerID: p2},
		Vertex:     board.NewVertex(board.Hex{Q: 1, R: 0, S: -1}, board.VertexN),
	}
	if err := Dispatch(gs, farEnough); err != nil {
		t.Fatalf("expected a two-edges-away settlement to be accepted, got: %v", err)
	}
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && indexOf(s, substr) >= 0
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

// Scenario 2: seven-roll discard math (spec §8).
func TestSevenRollDiscardMath(t *testing.T) {
	gs := threePlayerGame(t, 0)
	gs.TurnState.Phase = PhaseMain
	gs.TurnState.MainSubPhase = MainTradeBuildPlay
	gs.TurnState.CurrentPlayerIndex = 0

	p := gs.Players[0]
	p.Resources = models.Resources{Wood: 3, Brick: 3, Sheep: 2, Wheat: 0, Ore: 0}
	if p.Resources.Total() != 8 {
		t.Fatalf("setup error: expected 8 cards, got %d", p.Resources.Total())
	}

	gs.TurnState.MainSubPhase = MainRollDice
	handleSevenRoll(gs)
	if want := gs.TurnState.PendingDiscards[p.ID]; want != 4 {
		t.Fatalf("pendingDiscards[%s] = %d, want 4", p.ID, want)
	}
	if gs.TurnState.MainSubPhase != MainDiscard {
		t.Fatalf("subphase = %s, want DISCARD", gs.TurnState.MainSubPhase)
	}

	badDiscard := &DiscardResourcesAction{
		BaseAction: BaseAction{Type: ActionDiscardResources, PlayerID: p.ID},
		Resources:  models.Resources{Wood: 3},
	}
	if err := Dispatch(gs, badDiscard); err == nil {
		t.Fatal("expected rejection for discarding the wrong count")
	}

	goodDiscard := &DiscardResourcesAction{
		BaseAction: BaseAction{Type: ActionDiscardResources, PlayerID: p.ID},
		Resources:  models.Resources{Wood: 3, Brick: 1},
	}
	if err := Dispatch(gs, goodDiscard); err != nil {
		t.Fatalf("expected a valid 4-card discard to be accepted: %v", err)
	}
	if gs.TurnState.MainSubPhase != MainMoveRobber {
		t.Fatalf("subphase after last discard = %s, want MOVE_ROBBER", gs.TurnState.MainSubPhase)
	}
}

// Scenario 4: Monopoly (spec §8).
func TestMonopoly(t *testing.T) {
	gs := threePlayerGame(t, 0)
	gs.TurnState.Phase = PhaseMain
	gs.TurnState.MainSubPhase = MainTradeBuildPlay
	gs.TurnState.CurrentPlayerIndex = 0
	gs.TurnState.TurnNumber = 2

	actor := gs.Players[0]
	others := []int{2, 3, 0}
	for i, p := range gs.Players[1:] {
		p.Resources.Wheat = others[i]
	}
	actor.DevCards = append(actor.DevCards, models.DevCard{Type: models.DevMonopoly, TurnAcquired: 1})
	bankBefore := gs.Bank

	action := &PlayMonopolyAction{
		BaseAction: BaseAction{Type: ActionPlayMonopoly, PlayerID: actor.ID},
		Resource:   models.ResourceWheat,
	}
	if err := Dispatch(gs, action); err != nil {
		t.Fatalf("monopoly rejected: %v", err)
	}

	if actor.Resources.Wheat != 5 {
		t.Errorf("actor wheat = %d, want 5", actor.Resources.Wheat)
	}
	for _, p := range gs.Players[1:] {
		if p.Resources.Wheat != 0 {
			t.Errorf("player %s wheat = %d, want 0", p.ID, p.Resources.Wheat)
		}
	}
	if gs.Bank != bankBefore {
		t.Errorf("bank changed: %+v -> %+v", bankBefore, gs.Bank)
	}
	last := gs.EventLog[len(gs.EventLog)-1]
	if !contains(last, "collected 5") {
		t.Errorf("log entry %q does not record the collected amount", last)
	}
}

// Scenario 5: bank-scarcity production (spec §8).
func TestBankScarcityProduction(t *testing.T) {
	gs := threePlayerGame(t, 0)
	gs.TurnState.Phase = PhaseMain
	gs.Bank.Wheat = 1

	var wheatHex board.Hex
	found := false
	for _, tile := range gs.Board.TileList() {
		if res, ok := tile.Terrain.Resource(); ok && res == models.ResourceWheat && !tile.Hex.Equals(gs.Board.RobberHex) {
			wheatHex = tile.Hex
			found = true
			break
		}
	}
	if !found {
		t.Fatal("no wheat hex found on generated board")
	}

	verts := board.HexVertices(wheatHex)
	gs.Board.Buildings[verts[0].Key()] = models.Building{Kind: models.BuildingCity, OwnerID: "p1"}
	gs.Board.Buildings[verts[2].Key()] = models.Building{Kind: models.BuildingCity, OwnerID: "p2"}
	gs.Board.Buildings[verts[4].Key()] = models.Building{Kind: models.BuildingSettlement, OwnerID: "p3"}

	tile, _ := gs.Board.TileAt(wheatHex)
	produceResources(gs, tile.Number)

	p1 := gs.GetPlayer("p1")
	p2 := gs.GetPlayer("p2")
	p3 := gs.GetPlayer("p3")
	if p1.Resources.Wheat != 0 || p2.Resources.Wheat != 0 || p3.Resources.Wheat != 0 {
		t.Errorf("expected no wheat distributed when claims exceed bank supply, got p1=%d p2=%d p3=%d",
			p1.Resources.Wheat, p2.Resources.Wheat, p3.Resources.Wheat)
	}
	if gs.Bank.Wheat != 1 {
		t.Errorf("bank wheat changed from 1 to %d", gs.Bank.Wheat)
	}
}

// Boundary case: exactly enough of a resource means everyone claiming it
// is paid; one short and nobody is.
func TestBankScarcityExactSupply(t *testing.T) {
	gs := threePlayerGame(t, 0)
	gs.TurnState.Phase = PhaseMain
	gs.Bank.Wheat = 2

	var wheatHex board.Hex
	for _, tile := range gs.Board.TileList() {
		if res, ok := tile.Terrain.Resource(); ok && res == models.ResourceWheat && !tile.Hex.Equals(gs.Board.RobberHex) {
			wheatHex = tile.Hex
			break
		}
	}
	verts := board.HexVertices(wheatHex)
	gs.Board.Buildings[verts[0].Key()] = models.Building{Kind: models.BuildingSettlement, OwnerID: "p1"}
	gs.Board.Buildings[verts[2].Key()] = models.Building{Kind: models.BuildingSettlement, OwnerID: "p2"}

	tile, _ := gs.Board.TileAt(wheatHex)
	produceResources(gs, tile.Number)

	p1 := gs.GetPlayer("p1")
	p2 := gs.GetPlayer("p2")
	if p1.Resources.Wheat != 1 || p2.Resources.Wheat != 1 {
		t.Errorf("expected exact-supply production to pay every claimant, got p1=%d p2=%d", p1.Resources.Wheat, p2.Resources.Wheat)
	}
}

// Boundary case: a dev card played on the turn it was bought is rejected.
func TestDevCardCannotBePlayedSameTurn(t *testing.T) {
	gs := threePlayerGame(t, 0)
	gs.TurnState.Phase = PhaseMain
	gs.TurnState.MainSubPhase = MainTradeBuildPlay
	gs.TurnState.CurrentPlayerIndex = 0
	gs.TurnState.TurnNumber = 3

	actor := gs.Players[0]
	actor.DevCards = append(actor.DevCards, models.DevCard{Type: models.DevMonopoly, TurnAcquired: 3})

	action := &PlayMonopolyAction{
		BaseAction: BaseAction{Type: ActionPlayMonopoly, PlayerID: actor.ID},
		Resource:   models.ResourceWheat,
	}
	if err := Dispatch(gs, action); err == nil {
		t.Fatal("expected rejection for playing a dev card the turn it was bought")
	}
}

// Dispatch purity: an invalid action leaves no observable trace.
func TestDispatchRejectionIsSideEffectFree(t *testing.T) {
	gs := threePlayerGame(t, 0)
	before := snapshotResources(gs)

	bogus := &PlaceSettlementAction{
		BaseAction: BaseAction{Type: ActionPlaceSettlement, PlayerID: "nobody"},
		Vertex:     board.NewVertex(board.Hex{Q: 0, R: 0, S: 0}, board.VertexN),
	}
	if err := Dispatch(gs, bogus); err == nil {
		t.Fatal("expected rejection for an out-of-turn player")
	}

	after := snapshotResources(gs)
	if before != after {
		t.Errorf("rejected action mutated player resources: %+v -> %+v", before, after)
	}
	if len(gs.Board.Buildings) != 0 {
		t.Errorf("rejected action left a building on the board")
	}
}

func snapshotResources(gs *GameState) models.Resources {
	var total models.Resources
	for _, p := range gs.Players {
		total = total.Plus(p.Resources)
	}
	return total
}
