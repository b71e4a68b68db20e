// Package agents provides minimal reference Agent implementations used
// by the game package's scenario tests and the cmd/holdem demo. Richer
// agent archetypes are an explicit out-of-scope "external collaborator"
// (spec.md §1); these four exist only to drive the engine end to end.
package agents

import "github.com/lox/holdem-engine/internal/game"

// FoldAgent checks when it can and folds otherwise. Grounded on
// internal/bot/foldbot.go's FoldBot.
type FoldAgent struct{}

// DecideAction implements game.Agent.
func (FoldAgent) DecideAction(_ game.GameView, valid []game.ValidAction, _, _, _ int) game.PlayerAction {
	for _, v := range valid {
		if v.Type == game.Check {
			return game.PlayerAction{Type: game.Check}
		}
	}
	return game.PlayerAction{Type: game.Fold}
}
