package agents

import (
	"math/rand"

	"github.com/lox/holdem-engine/internal/evaluator"
	"github.com/lox/holdem-engine/internal/game"
)

// EquitySamples is the default Monte Carlo trial count EquityAgent
// runs before each decision.
const EquitySamples = 500

// EquityAgent estimates its win probability against every other live
// player via evaluator.EstimateEquity before acting: it folds when
// that estimate falls short of the pot odds it is being offered, bets
// or raises the minimum when it clears a value threshold, and
// otherwise checks or calls. Grounded on internal/bot/bot.go's
// evaluateHandStrengthWithThinking (the EstimateEquity call) and
// makeDecisionBasedOnFactorsWithThinking's equity-vs-pot-odds
// comparison, reduced to that single check — the opponent modeling,
// board-texture reads, and position adjustments the rest of that file
// layers on top are bespoke AI-strength features, out of scope per
// spec.md §1's "agent archetypes" exclusion.
type EquityAgent struct {
	PlayerID string
	RNG      *rand.Rand
	Samples  int // Monte Carlo trials per decision; EquitySamples if zero
}

// NewEquityAgent constructs an EquityAgent for the player seated under
// playerID, driven by rng. rng must not be nil.
func NewEquityAgent(playerID string, rng *rand.Rand) *EquityAgent {
	if rng == nil {
		panic("agents: NewEquityAgent requires a non-nil rng")
	}
	return &EquityAgent{PlayerID: playerID, RNG: rng, Samples: EquitySamples}
}

// DecideAction implements game.Agent.
func (e *EquityAgent) DecideAction(view game.GameView, valid []game.ValidAction, minRaiseIncrement, callAmount, minBetAmount int) game.PlayerAction {
	self, opponents := e.findSelf(view)
	if self == nil || len(self.Holding) != 2 || opponents == 0 {
		return checkOrFold(valid)
	}

	samples := e.Samples
	if samples <= 0 {
		samples = EquitySamples
	}
	result, err := evaluator.EstimateEquity(self.Holding, view.Community, opponents, samples, e.RNG)
	if err != nil {
		return checkOrFold(valid)
	}
	equity := result.Win + result.Tie

	if callAmount == 0 {
		if equity > 0.55 {
			if action, ok := raiseOrBet(valid, minRaiseIncrement, minBetAmount); ok {
				return action
			}
		}
		return checkOrFold(valid)
	}

	potOdds := float64(callAmount) / float64(view.Pot+callAmount)
	if equity < potOdds {
		return game.PlayerAction{Type: game.Fold}
	}
	if equity > 0.7 {
		if action, ok := raiseOrBet(valid, minRaiseIncrement, minBetAmount); ok {
			return action
		}
	}
	for _, v := range valid {
		if v.Type == game.Call {
			return game.PlayerAction{Type: game.Call}
		}
	}
	return game.PlayerAction{Type: game.Fold}
}

// findSelf locates this agent's own seat within view and counts the
// opponents still contesting the pot (every other player not folded).
func (e *EquityAgent) findSelf(view game.GameView) (*game.PlayerView, int) {
	var self *game.PlayerView
	opponents := 0
	for i, p := range view.Players {
		if p.ID == e.PlayerID {
			self = &view.Players[i]
			continue
		}
		if p.State != game.Folded {
			opponents++
		}
	}
	return self, opponents
}

// raiseOrBet picks the minimum legal RAISE, or failing that the
// minimum legal BET, from valid. EquityAgent never sizes beyond the
// minimum — bet sizing by equity is a richer-bot feature out of scope
// here.
func raiseOrBet(valid []game.ValidAction, minRaiseIncrement, minBetAmount int) (game.PlayerAction, bool) {
	for _, v := range valid {
		if v.Type == game.Raise {
			return game.PlayerAction{Type: game.Raise, Amount: minRaiseIncrement}, true
		}
	}
	for _, v := range valid {
		if v.Type == game.Bet {
			return game.PlayerAction{Type: game.Bet, Amount: minBetAmount}, true
		}
	}
	return game.PlayerAction{}, false
}

// checkOrFold is the conservative default when equity can't be
// estimated (missing hole cards, an empty opponent count) or it falls
// through every threshold above: check if free, fold otherwise.
func checkOrFold(valid []game.ValidAction) game.PlayerAction {
	for _, v := range valid {
		if v.Type == game.Check {
			return game.PlayerAction{Type: game.Check}
		}
	}
	return game.PlayerAction{Type: game.Fold}
}
