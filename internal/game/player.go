package game

import "github.com/lox/holdem-engine/internal/deck"

// StateType is a player's participation state within the current hand.
type StateType int

const (
	Active StateType = iota
	Folded
	AllIn
)

func (s StateType) String() string {
	switch s {
	case Active:
		return "ACTIVE"
	case Folded:
		return "FOLDED"
	case AllIn:
		return "ALL_IN"
	default:
		return "UNKNOWN"
	}
}

// PlayerState is the per-hand mutable record for a seated player.
type PlayerState struct {
	Seat             int // -1 if not seated
	Stack            int
	Holding          []deck.Card
	CurrentBet       int // contributed to the current street
	TotalContributed int // contributed this hand
	ActedThisStreet  bool
	State            StateType
}

// Player is a seated identity plus its per-hand state and behavioral
// hooks. Agent/Observer are pluggable: an embedder supplies whatever
// implements DecideAction (and, optionally, OnEvent).
type Player struct {
	ID    string
	Name  string
	State PlayerState
	Agent Agent
}

// InHand reports whether the player is still contesting the pot (not
// folded). All-in players are still "in hand" for showdown purposes.
func (p *Player) InHand() bool {
	return p.State.State != Folded
}

// CanAct reports whether the player may still voluntarily act this
// street (seated, not folded, not all-in, has chips).
func (p *Player) CanAct() bool {
	return p.State.State == Active && p.State.Stack > 0
}

// resetForHand clears all per-hand mutable fields, leaving Stack and
// Seat untouched.
func (p *Player) resetForHand() {
	p.State.Holding = nil
	p.State.CurrentBet = 0
	p.State.TotalContributed = 0
	p.State.ActedThisStreet = false
	if p.State.Stack > 0 {
		p.State.State = Active
	} else {
		p.State.State = Folded
	}
}

// resetForStreet clears per-street betting bookkeeping at the start of
// a new street.
func (p *Player) resetForStreet() {
	p.State.CurrentBet = 0
	p.State.ActedThisStreet = false
}
