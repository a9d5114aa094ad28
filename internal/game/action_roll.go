package game

import (
	"github.com/lukev/catan_server/internal/game/board"
	"github.com/lukev/catan_server/internal/models"
)

// RollDiceAction rolls two six-sided dice and either triggers production
// or the seven-roll discard/robber flow.
type RollDiceAction struct {
	BaseAction
}

func (a *RollDiceAction) Validate(gs *GameState) error {
	return nil
}

func (a *RollDiceAction) Execute(gs *GameState) error {
	d1 := gs.intn(6) + 1
	d2 := gs.intn(6) + 1
	total := d1 + d2
	gs.TurnState.DiceRoll = total
	gs.Log("%s rolled %d", gs.CurrentPlayer().DisplayName, total)

	if total == 7 {
		return handleSevenRoll(gs)
	}
	produceResources(gs, total)
	gs.TurnState.MainSubPhase = MainTradeBuildPlay
	return nil
}

// produceResources implements the bank-scarcity production rule: claims
// are tallied per resource across every matching hex before any bank debit
// happens, so a resource that would over-claim the bank pays nobody.
func produceResources(gs *GameState, diceTotal int) {
	claims := make(map[string]models.Resources) // playerID -> claimed bundle
	totals := models.Resources{}

	robberHex := gs.Board.RobberHex
	for _, tile := range gs.Board.TileList() {
		if tile.Number != diceTotal || tile.Hex.Equals(robberHex) {
			continue
		}
		res, ok := tile.Terrain.Resource()
		if !ok {
			continue
		}
		for _, v := range board.HexVertices(tile.Hex) {
			bld, ok := gs.Board.BuildingAt(v)
			if !ok {
				continue
			}
			amount := 1
			if bld.Kind == models.BuildingCity {
				amount = 2
			}
			c := claims[bld.OwnerID]
			c.Add(res, amount)
			claims[bld.OwnerID] = c
			totals.Add(res, amount)
		}
	}

	for _, resType := range models.ResourceTypes {
		if totals.Get(resType) > gs.Bank.Get(resType) {
			for id, c := range claims {
				c.Set(resType, 0)
				claims[id] = c
			}
		}
	}

	for _, id := range playerIDsInOrder(gs) {
		amount := claims[id]
		if amount.IsZero() {
			continue
		}
		p := gs.GetPlayer(id)
		grantFromBank(gs, p, amount)
	}
}

func playerIDsInOrder(gs *GameState) []string {
	ids := make([]string, 0, len(gs.Players))
	for _, p := range gs.Players {
		ids = append(ids, p.ID)
	}
	return ids
}

// handleSevenRoll computes pendingDiscards for every player holding more
// than 7 cards and transitions to DISCARD, or straight to MOVE_ROBBER if
// nobody owes one.
func handleSevenRoll(gs *GameState) error {
	ts := &gs.TurnState
	ts.PendingDiscards = make(map[string]int)
	for _, p := range gs.Players {
		total := p.Resources.Total()
		if total > 7 {
			ts.PendingDiscards[p.ID] = total / 2
		}
	}
	if len(ts.PendingDiscards) == 0 {
		ts.MainSubPhase = MainMoveRobber
	} else {
		ts.MainSubPhase = MainDiscard
	}
	return nil
}
