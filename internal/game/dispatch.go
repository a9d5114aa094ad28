package game

// Dispatch is the pure rule-engine entry point: it validates action against
// the current phase/turn/subphase gate and the action's own semantic
// rules, then executes it. On any rejection, gs is left untouched. This is
// the one function the session host's Manager calls per inbound action.
func Dispatch(gs *GameState, action Action) error {
	if err := validatePhaseGate(gs, action); err != nil {
		return err
	}
	if err := action.Validate(gs); err != nil {
		return err
	}
	if err := action.Execute(gs); err != nil {
		return err
	}
	if gs.TurnState.Phase == PhaseMain {
		checkVictory(gs)
	}
	return nil
}

// validatePhaseGate implements spec's phase-level validation outline:
// which player may act and in which subphase, before any action-specific
// rule runs.
func validatePhaseGate(gs *GameState, action Action) error {
	switch gs.TurnState.Phase {
	case PhaseGameOver:
		return reject("The game is over")
	case PhaseSetup:
		return validateSetupGate(gs, action)
	case PhaseMain:
		return validateMainGate(gs, action)
	default:
		return reject("Unknown game phase")
	}
}

func validateSetupGate(gs *GameState, action Action) error {
	ts := &gs.TurnState
	expectedIdx := ts.SetupOrder[ts.SetupStep]
	expectedPlayer := gs.Players[expectedIdx]

	switch action.GetType() {
	case ActionPlaceSettlement:
		if ts.SetupSubPhase != SetupPlaceSettlement {
			return reject("Not the settlement-placement step of setup")
		}
	case ActionPlaceRoad:
		if ts.SetupSubPhase != SetupPlaceRoad {
			return reject("Not the road-placement step of setup")
		}
	default:
		return reject("Only settlement and road placement are allowed during setup")
	}

	if action.GetPlayerID() != expectedPlayer.ID {
		return reject("Not your turn")
	}
	return nil
}

// mainSubphaseRequirement names the subphase a given action type requires
// when it's the current player's ordinary turn action. Actions with more
// nuanced gating (discard, trade response, knight) are special-cased in
// validateMainGate below.
var mainSubphaseRequirement = map[ActionType]MainSubPhase{
	ActionRollDice:         MainRollDice,
	ActionMoveRobber:       MainMoveRobber,
	ActionSteal:            MainSteal,
	ActionPlaceSettlement:  MainTradeBuildPlay,
	ActionPlaceRoad:        MainTradeBuildPlay,
	ActionPlaceCity:        MainTradeBuildPlay,
	ActionBuyDevCard:       MainTradeBuildPlay,
	ActionPlayRoadBuilding: MainTradeBuildPlay,
	ActionPlayYearOfPlenty: MainTradeBuildPlay,
	ActionPlayMonopoly:     MainTradeBuildPlay,
	ActionProposeTrade:     MainTradeBuildPlay,
	ActionConfirmTrade:     MainTradeBuildPlay,
	ActionCancelTrade:      MainTradeBuildPlay,
	ActionBankTrade:        MainTradeBuildPlay,
	ActionEndTurn:          MainTradeBuildPlay,
}

func validateMainGate(gs *GameState, action Action) error {
	ts := &gs.TurnState

	switch action.GetType() {
	case ActionDiscardResources:
		if ts.MainSubPhase != MainDiscard {
			return reject("No discard is pending")
		}
		if _, ok := ts.PendingDiscards[action.GetPlayerID()]; !ok {
			return reject("You have no pending discard")
		}
		return nil
	case ActionRespondToTrade:
		if action.GetPlayerID() == gs.CurrentPlayer().ID && len(gs.Players) > 1 {
			// the proposer responds via CONFIRM_TRADE/CANCEL_TRADE, not
			// RESPOND_TO_TRADE; this is still allowed to be any non-
			// proposer, checked fully in the action's own Validate.
		}
		return nil
	case ActionPlayKnight:
		if action.GetPlayerID() != gs.CurrentPlayer().ID {
			return reject("Not your turn")
		}
		if ts.MainSubPhase != MainRollDice && ts.MainSubPhase != MainTradeBuildPlay {
			return reject("Knight may only be played before rolling or during trade/build/play")
		}
		return nil
	}

	required, ok := mainSubphaseRequirement[action.GetType()]
	if !ok {
		return reject("Unknown action type")
	}
	if action.GetPlayerID() != gs.CurrentPlayer().ID {
		return reject("Not your turn")
	}
	if ts.MainSubPhase != required {
		return reject("Action not allowed in the current subphase")
	}
	return nil
}
