package game

import (
	"fmt"

	"github.com/lukev/catan_server/internal/models"
)

// findOpenTrade locates an open trade offer by id.
func findOpenTrade(gs *GameState, id string) (*TradeOffer, error) {
	for _, t := range gs.TradeOffers {
		if t.ID == id {
			if t.Status != TradeOpen {
				return nil, reject("Trade offer is no longer open")
			}
			return t, nil
		}
	}
	return nil, reject("Trade offer not found")
}

// ProposeTradeAction opens a player-to-player trade offer.
type ProposeTradeAction struct {
	BaseAction
	Offering   models.Resources
	Requesting models.Resources
}

func (a *ProposeTradeAction) Validate(gs *GameState) error {
	if a.Offering.IsZero() || a.Requesting.IsZero() {
		return reject("Trade bundles must be non-empty")
	}
	p := gs.GetPlayer(a.PlayerID)
	if !p.Resources.HasAtLeast(a.Offering) {
		return reject("You don't hold the resources you're offering")
	}
	return nil
}

func (a *ProposeTradeAction) Execute(gs *GameState) error {
	gs.nextTradeSeq++
	status := make(map[string]TradeStatus)
	for _, p := range gs.Players {
		if p.ID == a.PlayerID {
			continue
		}
		status[p.ID] = TradePending
	}
	offer := &TradeOffer{
		ID:              fmt.Sprintf("%s-trade-%d", gs.GameID, gs.nextTradeSeq),
		ProposerID:      a.PlayerID,
		Offering:        a.Offering,
		Requesting:      a.Requesting,
		ResponderStatus: status,
		Status:          TradeOpen,
	}
	gs.TradeOffers = append(gs.TradeOffers, offer)
	gs.Log("%s proposed a trade", gs.GetPlayer(a.PlayerID).DisplayName)
	return nil
}

// RespondToTradeAction lets any non-proposer accept or reject an open
// offer. It does not itself move resources; CONFIRM_TRADE does.
type RespondToTradeAction struct {
	BaseAction
	TradeID string
	Accept  bool
}

func (a *RespondToTradeAction) Validate(gs *GameState) error {
	t, err := findOpenTrade(gs, a.TradeID)
	if err != nil {
		return err
	}
	if t.ProposerID == a.PlayerID {
		return reject("The proposer cannot respond to their own offer")
	}
	if _, ok := t.ResponderStatus[a.PlayerID]; !ok {
		return reject("You are not a responder on that offer")
	}
	return nil
}

func (a *RespondToTradeAction) Execute(gs *GameState) error {
	t, _ := findOpenTrade(gs, a.TradeID)
	if a.Accept {
		t.ResponderStatus[a.PlayerID] = TradeAccepted
	} else {
		t.ResponderStatus[a.PlayerID] = TradeRejected
	}
	return nil
}

// ConfirmTradeAction is issued by the proposer to execute the swap with one
// specific accepting counterparty.
type ConfirmTradeAction struct {
	BaseAction
	TradeID      string
	WithPlayerID string
}

func (a *ConfirmTradeAction) Validate(gs *GameState) error {
	t, err := findOpenTrade(gs, a.TradeID)
	if err != nil {
		return err
	}
	if t.ProposerID != a.PlayerID {
		return reject("Only the proposer can confirm this offer")
	}
	if t.ResponderStatus[a.WithPlayerID] != TradeAccepted {
		return reject("That player has not accepted the offer")
	}
	proposer := gs.GetPlayer(a.PlayerID)
	counterparty := gs.GetPlayer(a.WithPlayerID)
	if !proposer.Resources.HasAtLeast(t.Offering) {
		return reject("You no longer hold the resources you offered")
	}
	if !counterparty.Resources.HasAtLeast(t.Requesting) {
		return reject("The other player no longer holds the requested resources")
	}
	return nil
}

func (a *ConfirmTradeAction) Execute(gs *GameState) error {
	t, _ := findOpenTrade(gs, a.TradeID)
	proposer := gs.GetPlayer(a.PlayerID)
	counterparty := gs.GetPlayer(a.WithPlayerID)

	proposer.Resources = proposer.Resources.Minus(t.Offering).Plus(t.Requesting)
	counterparty.Resources = counterparty.Resources.Minus(t.Requesting).Plus(t.Offering)
	t.Status = TradeExecuted

	gs.Log("%s traded with %s", proposer.DisplayName, counterparty.DisplayName)
	return nil
}

// CancelTradeAction withdraws an open offer; proposing then cancelling
// restores nothing because no resources moved at propose time.
type CancelTradeAction struct {
	BaseAction
	TradeID string
}

func (a *CancelTradeAction) Validate(gs *GameState) error {
	t, err := findOpenTrade(gs, a.TradeID)
	if err != nil {
		return err
	}
	if t.ProposerID != a.PlayerID {
		return reject("Only the proposer can cancel this offer")
	}
	return nil
}

func (a *CancelTradeAction) Execute(gs *GameState) error {
	t, _ := findOpenTrade(gs, a.TradeID)
	t.Status = TradeCancelled
	return nil
}

// BankTradeAction trades with the bank at the player's best effective rate
// for the given resource (2 with a matching port, 3 with a generic port,
// else 4).
type BankTradeAction struct {
	BaseAction
	Giving    models.ResourceType
	Receiving models.ResourceType
}

func (a *BankTradeAction) Validate(gs *GameState) error {
	if a.Giving == a.Receiving {
		return reject("Cannot trade a resource for itself")
	}
	p := gs.GetPlayer(a.PlayerID)
	rate := bestBankRate(p, a.Giving)
	if p.Resources.Get(a.Giving) < rate {
		return reject("Not enough resources for that bank trade")
	}
	if gs.Bank.Get(a.Receiving) < 1 {
		return reject("Bank doesn't have enough of that resource")
	}
	return nil
}

func (a *BankTradeAction) Execute(gs *GameState) error {
	p := gs.GetPlayer(a.PlayerID)
	rate := bestBankRate(p, a.Giving)

	p.Resources.Add(a.Giving, -rate)
	gs.Bank.Add(a.Giving, rate)
	p.Resources.Add(a.Receiving, 1)
	gs.Bank.Add(a.Receiving, -1)

	gs.Log("%s traded %d %s for 1 %s with the bank", p.DisplayName, rate, a.Giving, a.Receiving)
	return nil
}
