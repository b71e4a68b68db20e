package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeatPlayerFirstFreeSeat(t *testing.T) {
	gs := &GameState{Players: make([]*Player, 3)}
	p := newTestPlayer("p1", -1, 100)

	require.NoError(t, SeatPlayer(gs, p, -1))
	require.Equal(t, 0, p.State.Seat)
	require.Same(t, p, gs.Players[0])
}

func TestSeatPlayerRejectsOccupiedSeat(t *testing.T) {
	gs := &GameState{Players: make([]*Player, 2)}
	require.NoError(t, SeatPlayer(gs, newTestPlayer("p1", -1, 100), 0))
	err := SeatPlayer(gs, newTestPlayer("p2", -1, 100), 0)
	require.Error(t, err)
}

func TestSeatPlayerRejectsFullTable(t *testing.T) {
	gs := &GameState{Players: make([]*Player, 1)}
	require.NoError(t, SeatPlayer(gs, newTestPlayer("p1", -1, 100), -1))
	err := SeatPlayer(gs, newTestPlayer("p2", -1, 100), -1)
	require.Error(t, err)
}

func TestRemovePlayerClearsButtonIfHeld(t *testing.T) {
	gs := &GameState{Players: make([]*Player, 2), ButtonSeat: 0}
	p := newTestPlayer("p1", -1, 100)
	require.NoError(t, SeatPlayer(gs, p, 0))

	require.NoError(t, RemovePlayer(gs, "p1"))
	require.Equal(t, -1, gs.ButtonSeat)
	require.Equal(t, -1, p.State.Seat)
}

func TestNextOccupiedSeatWrapsAndSkipsEmptyOrInactive(t *testing.T) {
	p0 := newTestPlayer("p0", 0, 100)
	p2 := newTestPlayer("p2", 2, 100)
	p2.State.State = Folded
	gs := &GameState{Players: []*Player{p0, nil, p2}}

	require.Equal(t, 2, NextOccupiedSeat(gs, 0, false))
	require.Equal(t, 0, NextOccupiedSeat(gs, 2, false))
	require.Equal(t, 0, NextOccupiedSeat(gs, 0, true), "seat 2 is folded, activeOnly must skip it and wrap back to seat 0")
}

func TestMoveButtonInitializesThenRotates(t *testing.T) {
	p0 := newTestPlayer("p0", 0, 100)
	p1 := newTestPlayer("p1", 1, 100)
	gs := &GameState{Players: []*Player{p0, p1}, ButtonSeat: -1}

	MoveButton(gs)
	require.Equal(t, 0, gs.ButtonSeat)

	MoveButton(gs)
	require.Equal(t, 1, gs.ButtonSeat)

	MoveButton(gs)
	require.Equal(t, 0, gs.ButtonSeat)
}
