package game

import "fmt"

// ValidActions enumerates the actions the given player may legally
// take against the game's current betting state.
func ValidActions(gs *GameState, p *Player) []ValidAction {
	var actions []ValidAction
	actions = append(actions, ValidAction{Type: Fold})

	toCall := gs.CurrentBet - p.State.CurrentBet

	if toCall == 0 {
		actions = append(actions, ValidAction{Type: Check})
	}
	if toCall > 0 && p.State.Stack > 0 {
		actions = append(actions, ValidAction{Type: Call})
	}
	if gs.CurrentBet == 0 && p.State.Stack >= gs.MinBet {
		actions = append(actions, ValidAction{Type: Bet, Min: gs.MinBet, Max: p.State.Stack})
	}
	if gs.CurrentBet > 0 && p.State.Stack >= toCall+gs.LastRaiseSize {
		actions = append(actions, ValidAction{Type: Raise, Min: toCall + gs.LastRaiseSize, Max: p.State.Stack})
	}
	if p.State.Stack > 0 {
		actions = append(actions, ValidAction{Type: AllInAction})
	}
	return actions
}

// isValid reports whether action is present in valid.
func isValid(valid []ValidAction, t ActionType) bool {
	for _, v := range valid {
		if v.Type == t {
			return true
		}
	}
	return false
}

// ApplyAction validates and applies a player action against gs,
// mutating gs and p. It never partially mutates state on a rejected
// action: validation happens before any mutation.
func ApplyAction(gs *GameState, p *Player, action PlayerAction) error {
	valid := ValidActions(gs, p)
	if !isValid(valid, action.Type) {
		return fmt.Errorf("game: action %s is not valid for player %s", action.Type, p.ID)
	}

	switch action.Type {
	case Fold:
		p.State.State = Folded
		p.State.ActedThisStreet = true
		return nil

	case Check:
		p.State.ActedThisStreet = true
		return nil

	case Call:
		amount := gs.CurrentBet - p.State.CurrentBet
		if amount > p.State.Stack {
			amount = p.State.Stack
		}
		commitChips(gs, p, amount)
		p.State.ActedThisStreet = true
		return nil

	case Bet:
		if gs.CurrentBet != 0 {
			return fmt.Errorf("game: BET illegal when current_bet != 0")
		}
		amount := action.Amount
		if amount != p.State.Stack && amount < gs.MinBet {
			return fmt.Errorf("game: BET amount %d below min_bet %d", amount, gs.MinBet)
		}
		if amount > p.State.Stack {
			return fmt.Errorf("game: BET amount %d exceeds stack %d", amount, p.State.Stack)
		}
		commitChips(gs, p, amount)
		gs.CurrentBet = amount
		gs.LastRaiseSize = amount
		reopenRound(gs, p)
		return nil

	case Raise, AllInAction:
		amount := action.Amount
		if action.Type == AllInAction {
			amount = p.State.Stack
		}
		return applyRaise(gs, p, amount)

	default:
		return fmt.Errorf("game: unknown action type %v", action.Type)
	}
}

// applyRaise implements §4.3's RAISE decomposition and reopen rule.
// amount is the raise-by increment: total chips the actor adds from
// their stack this action (covering both the call portion and the
// raise portion).
func applyRaise(gs *GameState, p *Player, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("game: raise amount must be positive")
	}
	if amount > p.State.Stack {
		return fmt.Errorf("game: raise amount %d exceeds stack %d", amount, p.State.Stack)
	}

	isAllIn := amount == p.State.Stack

	newTableBet := p.State.CurrentBet + amount
	raiseSize := newTableBet - gs.CurrentBet

	if raiseSize <= 0 {
		if !isAllIn {
			return fmt.Errorf("game: raise_size %d does not strictly increase current_bet", raiseSize)
		}
		// All-in for less than the outstanding call: a short call, not
		// a raise at all. current_bet and last_raise_size are
		// untouched and the round does not reopen.
		commitChips(gs, p, amount)
		p.State.ActedThisStreet = true
		return nil
	}
	if raiseSize < gs.LastRaiseSize && !isAllIn {
		return fmt.Errorf("game: raise_size %d below last_raise_size %d and not all-in", raiseSize, gs.LastRaiseSize)
	}

	commitChips(gs, p, amount)
	gs.CurrentBet = newTableBet

	if raiseSize >= gs.LastRaiseSize {
		// Legal (full) raise: reopens the round for every other ACTIVE
		// player and becomes the new minimum raise increment.
		gs.LastRaiseSize = raiseSize
		reopenRound(gs, p)
	}
	// else: a short all-in raise. Chips and current_bet already
	// advanced above; acted flags and last_raise_size are untouched —
	// this is the non-reopening path §4.3 requires.

	p.State.ActedThisStreet = true
	return nil
}

// commitChips moves amount chips from the player's stack into their
// current/total contributed counters and the pot, flipping them to
// ALL_IN if it exhausts their stack.
func commitChips(gs *GameState, p *Player, amount int) {
	p.State.Stack -= amount
	p.State.CurrentBet += amount
	p.State.TotalContributed += amount
	gs.Pot += amount
	if p.State.Stack == 0 {
		p.State.State = AllIn
	}
}

// reopenRound clears acted_this_street for every other ACTIVE player,
// and marks the actor as having acted.
func reopenRound(gs *GameState, actor *Player) {
	for _, pl := range gs.Players {
		if pl == nil || pl == actor {
			continue
		}
		if pl.State.State == Active {
			pl.State.ActedThisStreet = false
		}
	}
	actor.State.ActedThisStreet = true
}

// IsBettingRoundComplete implements §4.3's round-complete predicate.
func IsBettingRoundComplete(gs *GameState) bool {
	inHand := 0
	activeCount := 0
	for _, p := range gs.Players {
		if p == nil {
			continue
		}
		if p.InHand() {
			inHand++
		}
		if p.State.State == Active {
			activeCount++
		}
	}
	if inHand <= 1 {
		return true
	}
	if activeCount == 0 {
		return true
	}
	for _, p := range gs.Players {
		if p == nil || p.State.State != Active {
			continue
		}
		if !p.State.ActedThisStreet || p.State.CurrentBet != gs.CurrentBet {
			return false
		}
	}
	return true
}
