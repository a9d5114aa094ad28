package game

import (
	"github.com/lukev/catan_server/internal/game/board"
	"github.com/lukev/catan_server/internal/models"
)

// DiscardResourcesAction discards an exact required count in response to a
// seven roll.
type DiscardResourcesAction struct {
	BaseAction
	Resources models.Resources
}

func (a *DiscardResourcesAction) Validate(gs *GameState) error {
	required := gs.TurnState.PendingDiscards[a.PlayerID]
	total := a.Resources.Total()
	if total < 0 || a.Resources.Wood < 0 || a.Resources.Brick < 0 || a.Resources.Sheep < 0 ||
		a.Resources.Wheat < 0 || a.Resources.Ore < 0 {
		return reject("Discard amounts must be non-negative")
	}
	if total != required {
		return reject("Discard count does not match the required amount")
	}
	p := gs.GetPlayer(a.PlayerID)
	if !p.Resources.HasAtLeast(a.Resources) {
		return reject("You don't hold that many of those resources")
	}
	return nil
}

func (a *DiscardResourcesAction) Execute(gs *GameState) error {
	p := gs.GetPlayer(a.PlayerID)
	deductAndBank(gs, p, a.Resources)
	delete(gs.TurnState.PendingDiscards, a.PlayerID)

	if len(gs.TurnState.PendingDiscards) == 0 {
		gs.TurnState.MainSubPhase = MainMoveRobber
	}
	gs.Log("%s discarded %d cards", p.DisplayName, a.Resources.Total())
	return nil
}

// MoveRobberAction relocates the robber and computes steal candidates.
type MoveRobberAction struct {
	BaseAction
	Hex board.Hex
}

func (a *MoveRobberAction) Validate(gs *GameState) error {
	if a.Hex.Equals(gs.Board.RobberHex) {
		return reject("Robber must move to a different hex")
	}
	if !board.GetTables().IsOnBoard(a.Hex) {
		return reject("Robber must move to a hex on the board")
	}
	return nil
}

func (a *MoveRobberAction) Execute(gs *GameState) error {
	gs.Board.RobberHex = a.Hex
	resolveRobberDestination(gs)
	return nil
}

// resolveRobberDestination computes steal candidates at the robber's new
// hex and advances the subphase accordingly: no candidates skips straight
// through, one candidate auto-steals, multiple awaits a STEAL choice.
func resolveRobberDestination(gs *GameState) {
	candidates := stealCandidates(gs)
	gs.TurnState.MustStealFrom = candidates

	switch len(candidates) {
	case 0:
		finishRobberTurn(gs)
	case 1:
		performSteal(gs, candidates[0])
		finishRobberTurn(gs)
	default:
		gs.TurnState.MainSubPhase = MainSteal
	}
}

func stealCandidates(gs *GameState) []string {
	mover := gs.CurrentPlayer().ID
	seen := make(map[string]bool)
	var out []string
	for _, v := range board.HexVertices(gs.Board.RobberHex) {
		bld, ok := gs.Board.BuildingAt(v)
		if !ok || bld.OwnerID == mover || seen[bld.OwnerID] {
			continue
		}
		target := gs.GetPlayer(bld.OwnerID)
		if target == nil || target.Resources.Total() == 0 {
			continue
		}
		seen[bld.OwnerID] = true
		out = append(out, bld.OwnerID)
	}
	return out
}

// performSteal draws one card uniformly at random from the target's
// multiset of cards (not one of the 5 types) and transfers it.
func performSteal(gs *GameState, targetID string) {
	mover := gs.CurrentPlayer()
	target := gs.GetPlayer(targetID)

	deck := make([]models.ResourceType, 0, target.Resources.Total())
	for _, t := range models.ResourceTypes {
		for i := 0; i < target.Resources.Get(t); i++ {
			deck = append(deck, t)
		}
	}
	if len(deck) == 0 {
		return
	}
	idx := gs.intn(len(deck))
	stolen := deck[idx]

	target.Resources.Add(stolen, -1)
	mover.Resources.Add(stolen, 1)
	gs.Log("%s stole a card from %s", mover.DisplayName, target.DisplayName)
}

// finishRobberTurn returns the subphase either to ROLL_DICE (a pre-roll
// knight play) or onward to TRADE_BUILD_PLAY, symmetrically whether or
// not a steal actually happened.
func finishRobberTurn(gs *GameState) {
	gs.TurnState.MustStealFrom = nil
	if gs.TurnState.DiceRoll == 0 {
		gs.TurnState.MainSubPhase = MainRollDice
		return
	}
	gs.TurnState.MainSubPhase = MainTradeBuildPlay
}

// StealAction resolves a MOVE_ROBBER that left multiple steal candidates.
type StealAction struct {
	BaseAction
	TargetPlayerID string
}

func (a *StealAction) Validate(gs *GameState) error {
	for _, c := range gs.TurnState.MustStealFrom {
		if c == a.TargetPlayerID {
			return nil
		}
	}
	return reject("That player is not a valid steal target")
}

func (a *StealAction) Execute(gs *GameState) error {
	performSteal(gs, a.TargetPlayerID)
	finishRobberTurn(gs)
	return nil
}
