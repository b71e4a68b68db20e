package agents

import "github.com/lox/holdem-engine/internal/game"

// CallAgent checks or calls whenever possible and folds only when
// facing a bet it cannot check or call. It never bets, raises, or
// goes all-in voluntarily. Grounded on the always-call half of
// internal/bot/foldbot.go's valid-action scan, generalized from
// always-fold to always-call.
type CallAgent struct{}

// DecideAction implements game.Agent.
func (CallAgent) DecideAction(_ game.GameView, valid []game.ValidAction, _, _, _ int) game.PlayerAction {
	for _, v := range valid {
		if v.Type == game.Check {
			return game.PlayerAction{Type: game.Check}
		}
	}
	for _, v := range valid {
		if v.Type == game.Call {
			return game.PlayerAction{Type: game.Call}
		}
	}
	return game.PlayerAction{Type: game.Fold}
}
