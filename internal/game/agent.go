package game

// Agent is the boundary contract a pluggable player implements. The
// engine calls DecideAction synchronously and treats it as an atomic
// black box; it never inspects or depends on how the decision was
// made.
type Agent interface {
	// DecideAction is asked for a decision whenever it is this
	// player's turn. minRaiseIncrement is the raise-by increment a
	// minimum RAISE would use; callAmount is the chips required to
	// call; minBetAmount is the big blind (the minimum legal BET).
	DecideAction(view GameView, valid []ValidAction, minRaiseIncrement, callAmount, minBetAmount int) PlayerAction
}

// EventObserver is the optional second half of the player contract.
// Implementations that don't need it simply don't implement this
// interface; the engine only calls OnEvent when the concrete Agent
// also satisfies EventObserver.
type EventObserver interface {
	OnEvent(evt Event, view GameView)
}

// callOnEvent invokes p's OnEvent hook if it implements EventObserver,
// absorbing and logging any panic exactly like a subscribed handler.
func (g *Game) callOnEvent(p *Player, evt Event) {
	obs, ok := p.Agent.(EventObserver)
	if !ok {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			g.logger.Warnf("game: player %s OnEvent hook panicked: %v", p.ID, r)
		}
	}()
	obs.OnEvent(evt, g.View())
}
