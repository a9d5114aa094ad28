package game

import (
	"github.com/lukev/catan_server/internal/game/board"
	"github.com/lukev/catan_server/internal/models"
)

// findPlayableCard locates the first card of the given type in a player's
// hand that is currently playable, returning its index and true, or false
// if there is none.
func findPlayableCard(gs *GameState, p *Player, t models.DevCardType) (int, bool) {
	for i, c := range p.DevCards {
		if c.Type == t && c.IsPlayable(gs.TurnState.TurnNumber, gs.TurnState.DevCardPlayedThisTurn) {
			return i, true
		}
	}
	return 0, false
}

func removeDevCard(p *Player, idx int) {
	p.DevCards = append(p.DevCards[:idx], p.DevCards[idx+1:]...)
}

// PlayKnightAction plays a knight card: +1 knight counter, then the robber
// move+steal flow using the action's chosen destination hex.
type PlayKnightAction struct {
	BaseAction
	RobberHex board.Hex
}

func (a *PlayKnightAction) Validate(gs *GameState) error {
	p := gs.GetPlayer(a.PlayerID)
	if _, ok := findPlayableCard(gs, p, models.DevKnight); !ok {
		return reject("No playable knight card")
	}
	if a.RobberHex.Equals(gs.Board.RobberHex) {
		return reject("Robber must move to a different hex")
	}
	if !board.GetTables().IsOnBoard(a.RobberHex) {
		return reject("Robber must move to a hex on the board")
	}
	return nil
}

func (a *PlayKnightAction) Execute(gs *GameState) error {
	p := gs.GetPlayer(a.PlayerID)
	idx, _ := findPlayableCard(gs, p, models.DevKnight)
	removeDevCard(p, idx)
	p.KnightsPlayed++
	gs.TurnState.DevCardPlayedThisTurn = true
	recomputeLargestArmy(gs)

	gs.Board.RobberHex = a.RobberHex
	resolveRobberDestination(gs)

	gs.Log("%s played a knight", p.DisplayName)
	return nil
}

// PlayRoadBuildingAction grants up to two free roads.
type PlayRoadBuildingAction struct {
	BaseAction
}

func (a *PlayRoadBuildingAction) Validate(gs *GameState) error {
	p := gs.GetPlayer(a.PlayerID)
	if _, ok := findPlayableCard(gs, p, models.DevRoadBuilding); !ok {
		return reject("No playable road-building card")
	}
	return nil
}

func (a *PlayRoadBuildingAction) Execute(gs *GameState) error {
	p := gs.GetPlayer(a.PlayerID)
	idx, _ := findPlayableCard(gs, p, models.DevRoadBuilding)
	removeDevCard(p, idx)
	gs.TurnState.DevCardPlayedThisTurn = true

	left := 2
	if p.RoadsRemaining < left {
		left = p.RoadsRemaining
	}
	gs.TurnState.RoadBuildingRoadsLeft = left

	gs.Log("%s played road building", p.DisplayName)
	return nil
}

// PlayYearOfPlentyAction grants two chosen resources from the bank.
type PlayYearOfPlentyAction struct {
	BaseAction
	Resources [2]models.ResourceType
}

func (a *PlayYearOfPlentyAction) Validate(gs *GameState) error {
	p := gs.GetPlayer(a.PlayerID)
	if _, ok := findPlayableCard(gs, p, models.DevYearOfPlenty); !ok {
		return reject("No playable year-of-plenty card")
	}
	want := models.Resources{}
	want.Add(a.Resources[0], 1)
	want.Add(a.Resources[1], 1)
	if !gs.Bank.HasAtLeast(want) {
		return reject("Bank doesn't have enough of that resource")
	}
	return nil
}

func (a *PlayYearOfPlentyAction) Execute(gs *GameState) error {
	p := gs.GetPlayer(a.PlayerID)
	idx, _ := findPlayableCard(gs, p, models.DevYearOfPlenty)
	removeDevCard(p, idx)
	gs.TurnState.DevCardPlayedThisTurn = true

	want := models.Resources{}
	want.Add(a.Resources[0], 1)
	want.Add(a.Resources[1], 1)
	grantFromBank(gs, p, want)

	gs.Log("%s played year of plenty", p.DisplayName)
	return nil
}

// PlayMonopolyAction collects every other player's holding of one resource.
type PlayMonopolyAction struct {
	BaseAction
	Resource models.ResourceType
}

func (a *PlayMonopolyAction) Validate(gs *GameState) error {
	p := gs.GetPlayer(a.PlayerID)
	if _, ok := findPlayableCard(gs, p, models.DevMonopoly); !ok {
		return reject("No playable monopoly card")
	}
	return nil
}

func (a *PlayMonopolyAction) Execute(gs *GameState) error {
	p := gs.GetPlayer(a.PlayerID)
	idx, _ := findPlayableCard(gs, p, models.DevMonopoly)
	removeDevCard(p, idx)
	gs.TurnState.DevCardPlayedThisTurn = true

	collected := 0
	for _, other := range gs.Players {
		if other.ID == a.PlayerID {
			continue
		}
		n := other.Resources.Get(a.Resource)
		if n == 0 {
			continue
		}
		other.Resources.Add(a.Resource, -n)
		p.Resources.Add(a.Resource, n)
		collected += n
	}

	gs.Log("%s played monopoly on %s: collected %d", p.DisplayName, a.Resource, collected)
	return nil
}
