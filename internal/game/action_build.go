package game

import (
	"github.com/lukev/catan_server/internal/game/board"
	"github.com/lukev/catan_server/internal/models"
)

// PlaceCityAction upgrades an owned settlement to a city.
type PlaceCityAction struct {
	BaseAction
	Vertex board.Vertex
}

func (a *PlaceCityAction) Validate(gs *GameState) error {
	v := board.Canonicalize(a.Vertex)
	bld, ok := gs.Board.BuildingAt(v)
	if !ok || bld.OwnerID != a.PlayerID || bld.Kind != models.BuildingSettlement {
		return reject("You must own a settlement there to upgrade it")
	}
	p := gs.GetPlayer(a.PlayerID)
	if p.CitiesRemaining <= 0 {
		return reject("No cities left to place")
	}
	if !p.Resources.HasAtLeast(models.CityCost) {
		return reject("Not enough resources for a city")
	}
	return nil
}

func (a *PlaceCityAction) Execute(gs *GameState) error {
	v := board.Canonicalize(a.Vertex)
	p := gs.GetPlayer(a.PlayerID)

	gs.Board.Buildings[v.Key()] = models.Building{Kind: models.BuildingCity, OwnerID: a.PlayerID}
	p.SettlementsRemaining++
	p.CitiesRemaining--
	deductAndBank(gs, p, models.CityCost)

	gs.Log("%s upgraded a settlement to a city", p.DisplayName)
	return nil
}

// BuyDevCardAction draws the top card of the shuffled development deck.
type BuyDevCardAction struct {
	BaseAction
}

func (a *BuyDevCardAction) Validate(gs *GameState) error {
	if len(gs.DevDeck) == 0 {
		return reject("The development card deck is empty")
	}
	p := gs.GetPlayer(a.PlayerID)
	if !p.Resources.HasAtLeast(models.DevCardCost) {
		return reject("Not enough resources for a development card")
	}
	return nil
}

func (a *BuyDevCardAction) Execute(gs *GameState) error {
	p := gs.GetPlayer(a.PlayerID)
	cardType := gs.DevDeck[0]
	gs.DevDeck = gs.DevDeck[1:]

	p.DevCards = append(p.DevCards, models.DevCard{
		Type:         cardType,
		TurnAcquired: gs.TurnState.TurnNumber,
	})
	deductAndBank(gs, p, models.DevCardCost)
	gs.TurnState.DevCardBoughtThisTurn = true

	gs.Log("%s bought a development card", p.DisplayName)
	return nil
}
