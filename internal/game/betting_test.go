package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestPlayer(id string, seat, stack int) *Player {
	return &Player{
		ID:   id,
		Name: id,
		State: PlayerState{
			Seat:  seat,
			Stack: stack,
			State: Active,
		},
	}
}

func TestValidActionsNoBetFacing(t *testing.T) {
	gs := &GameState{Players: []*Player{}, MinBet: 20}
	p := newTestPlayer("p1", 0, 1000)
	gs.Players = append(gs.Players, p)

	valid := ValidActions(gs, p)
	require.True(t, isValid(valid, Fold))
	require.True(t, isValid(valid, Check))
	require.False(t, isValid(valid, Call))
	require.True(t, isValid(valid, Bet))
	require.False(t, isValid(valid, Raise))
}

func TestApplyActionCallCapsAtStack(t *testing.T) {
	gs := &GameState{CurrentBet: 500, MinBet: 20, LastRaiseSize: 20}
	p := newTestPlayer("p1", 0, 100)
	gs.Players = []*Player{p}

	require.NoError(t, ApplyAction(gs, p, PlayerAction{Type: Call}))
	require.Equal(t, 0, p.State.Stack)
	require.Equal(t, AllIn, p.State.State)
	require.Equal(t, 100, p.State.CurrentBet)
	require.Equal(t, 100, gs.Pot)
}

func TestApplyActionBetRejectsBelowMinBet(t *testing.T) {
	gs := &GameState{MinBet: 20}
	p := newTestPlayer("p1", 0, 1000)
	gs.Players = []*Player{p}

	err := ApplyAction(gs, p, PlayerAction{Type: Bet, Amount: 10})
	require.Error(t, err)
	require.Equal(t, 1000, p.State.Stack)
}

func TestApplyActionAllInBelowCallIsShortCallNotError(t *testing.T) {
	// An all-in for fewer chips than the outstanding call is a valid
	// short call, not a rejected raise: current_bet and last_raise_size
	// must not move, and the round must not reopen.
	raiser := newTestPlayer("raiser", 0, 1000)
	shortStack := newTestPlayer("short", 1, 15)
	other := newTestPlayer("other", 2, 1000)
	gs := &GameState{
		Players:       []*Player{raiser, shortStack, other},
		CurrentBet:    100,
		LastRaiseSize: 100,
	}
	raiser.State.CurrentBet = 100
	raiser.State.ActedThisStreet = true
	other.State.CurrentBet = 100
	other.State.ActedThisStreet = true

	require.NoError(t, ApplyAction(gs, shortStack, PlayerAction{Type: AllInAction}))
	require.Equal(t, 15, shortStack.State.CurrentBet)
	require.Equal(t, 0, shortStack.State.Stack)
	require.Equal(t, AllIn, shortStack.State.State)
	require.Equal(t, 100, gs.CurrentBet, "current_bet must not move for a short all-in call")
	require.Equal(t, 100, gs.LastRaiseSize)
	require.True(t, raiser.State.ActedThisStreet)
	require.True(t, other.State.ActedThisStreet)
}

func TestApplyActionShortAllInRaiseDoesNotReopen(t *testing.T) {
	// Spec scenario 3: an all-in raise smaller than the required
	// minimum raise increment advances current_bet but does not clear
	// the acted flag on players who already acted.
	raiser := newTestPlayer("raiser", 0, 1000)
	shortStack := newTestPlayer("short", 1, 115)
	other := newTestPlayer("other", 2, 1000)
	gs := &GameState{
		Players:       []*Player{raiser, shortStack, other},
		CurrentBet:    100,
		LastRaiseSize: 100,
	}
	raiser.State.CurrentBet = 100
	raiser.State.ActedThisStreet = true
	other.State.CurrentBet = 100
	other.State.ActedThisStreet = true

	// shortStack owes 100 to call and has 115: the extra 15 is a raise
	// of only 15, below last_raise_size 100, but still legal all-in.
	require.NoError(t, ApplyAction(gs, shortStack, PlayerAction{Type: AllInAction}))
	require.Equal(t, 115, shortStack.State.CurrentBet)
	require.Equal(t, 115, gs.CurrentBet)
	require.Equal(t, 100, gs.LastRaiseSize, "non-reopening all-in must not change last_raise_size")
	require.True(t, raiser.State.ActedThisStreet, "non-reopening all-in must not clear other players' acted flags")
	require.True(t, other.State.ActedThisStreet)
}

func TestApplyActionLegalAllInRaiseReopens(t *testing.T) {
	// Spec scenario 4: an all-in raise that meets or exceeds the
	// required minimum raise increment reopens the round for everyone
	// else still active.
	raiser := newTestPlayer("raiser", 0, 1000)
	allin := newTestPlayer("allin", 1, 250)
	other := newTestPlayer("other", 2, 1000)
	gs := &GameState{
		Players:       []*Player{raiser, allin, other},
		CurrentBet:    100,
		LastRaiseSize: 100,
	}
	raiser.State.CurrentBet = 100
	raiser.State.ActedThisStreet = true
	other.State.CurrentBet = 100
	other.State.ActedThisStreet = true

	require.NoError(t, ApplyAction(gs, allin, PlayerAction{Type: AllInAction}))
	require.Equal(t, 250, gs.CurrentBet)
	require.Equal(t, 150, gs.LastRaiseSize)
	require.False(t, raiser.State.ActedThisStreet, "legal all-in raise must reopen the round")
	require.False(t, other.State.ActedThisStreet)
	require.True(t, allin.State.ActedThisStreet)
}

func TestApplyActionRaiseBelowMinimumRejected(t *testing.T) {
	// Spec scenario 2: a non-all-in raise must be at least last_raise_size.
	raiser := newTestPlayer("raiser", 0, 1000)
	gs := &GameState{
		Players:       []*Player{raiser},
		CurrentBet:    100,
		LastRaiseSize: 100,
	}
	err := ApplyAction(gs, raiser, PlayerAction{Type: Raise, Amount: 150}) // raise-by 150 -> raise_size 50
	require.Error(t, err)
}

func TestIsBettingRoundCompleteRequiresAllActedAndMatched(t *testing.T) {
	p1 := newTestPlayer("p1", 0, 1000)
	p2 := newTestPlayer("p2", 1, 1000)
	gs := &GameState{Players: []*Player{p1, p2}, CurrentBet: 20}

	require.False(t, IsBettingRoundComplete(gs))

	p1.State.ActedThisStreet = true
	p1.State.CurrentBet = 20
	require.False(t, IsBettingRoundComplete(gs), "p2 hasn't matched or acted yet")

	p2.State.ActedThisStreet = true
	p2.State.CurrentBet = 20
	require.True(t, IsBettingRoundComplete(gs))
}

func TestIsBettingRoundCompleteWhenOnlyOneRemains(t *testing.T) {
	p1 := newTestPlayer("p1", 0, 1000)
	p2 := newTestPlayer("p2", 1, 1000)
	p2.State.State = Folded
	gs := &GameState{Players: []*Player{p1, p2}}
	require.True(t, IsBettingRoundComplete(gs))
}
