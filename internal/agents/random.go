package agents

import (
	"math/rand"

	"github.com/lox/holdem-engine/internal/game"
)

// RandomAgent picks a uniformly random legal action, and a uniformly
// random legal amount for BET/RAISE. Grounded on internal/bot/randbot.go's
// RandBot, adapted to this engine's raise-by ValidAction.Min/Max
// convention (randbot.go's MinAmount/MaxAmount are raise-to amounts).
type RandomAgent struct {
	RNG *rand.Rand
}

// NewRandomAgent constructs a RandomAgent driven by rng. rng must not
// be nil: the agent never falls back to a package-global source.
func NewRandomAgent(rng *rand.Rand) *RandomAgent {
	if rng == nil {
		panic("agents: NewRandomAgent requires a non-nil rng")
	}
	return &RandomAgent{RNG: rng}
}

// DecideAction implements game.Agent.
func (r *RandomAgent) DecideAction(_ game.GameView, valid []game.ValidAction, _, _, _ int) game.PlayerAction {
	if len(valid) == 0 {
		return game.PlayerAction{Type: game.Fold}
	}
	choice := valid[r.RNG.Intn(len(valid))]

	amount := choice.Min
	if (choice.Type == game.Bet || choice.Type == game.Raise) && choice.Max > choice.Min {
		amount = choice.Min + r.RNG.Intn(choice.Max-choice.Min+1)
	}
	return game.PlayerAction{Type: choice.Type, Amount: amount}
}
