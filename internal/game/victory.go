package game

// checkVictory runs after every MAIN-phase transition. It is evaluated
// only for the current player: others cannot win on someone else's turn
// even if their public score would reach 10, since hidden VP cards make
// that comparison meaningless off-turn.
func checkVictory(gs *GameState) {
	if gs.TurnState.Phase != PhaseMain {
		return
	}
	p := gs.CurrentPlayer()
	score := p.TotalVP()
	if score < 10 {
		return
	}
	winner := p.ID
	gs.Winner = &winner
	gs.TurnState.Phase = PhaseGameOver
	gs.Log("%s wins with %d victory points", p.DisplayName, score)
}
