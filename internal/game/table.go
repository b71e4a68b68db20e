package game

import "fmt"

// SeatPlayer seats p at index, or at the first free seat if index < 0.
// It errors if the requested seat is occupied or out of range, or if
// the table has no free seats.
func SeatPlayer(gs *GameState, p *Player, index int) error {
	if index >= 0 {
		if index >= len(gs.Players) {
			return fmt.Errorf("game: seat %d out of range (capacity %d)", index, len(gs.Players))
		}
		if gs.Players[index] != nil {
			return fmt.Errorf("game: seat %d is occupied", index)
		}
		gs.Players[index] = p
		p.State.Seat = index
		return nil
	}
	for i, occ := range gs.Players {
		if occ == nil {
			gs.Players[i] = p
			p.State.Seat = i
			return nil
		}
	}
	return fmt.Errorf("game: table is full")
}

// RemovePlayer clears the seat occupied by the player with the given
// ID, if any, and clears that player's seat field.
func RemovePlayer(gs *GameState, id string) error {
	for i, p := range gs.Players {
		if p != nil && p.ID == id {
			gs.Players[i] = nil
			p.State.Seat = -1
			if gs.ButtonSeat == i {
				gs.ButtonSeat = -1
			}
			return nil
		}
	}
	return fmt.Errorf("game: no player with id %q seated", id)
}

// SeatedCount reports how many seats are occupied.
func SeatedCount(gs *GameState) int {
	n := 0
	for _, p := range gs.Players {
		if p != nil {
			n++
		}
	}
	return n
}

// NextOccupiedSeat returns the next occupied seat strictly after
// from, wrapping around the ring. If activeOnly is true, it skips
// seats whose occupant is not ACTIVE. Returns -1 if none found.
func NextOccupiedSeat(gs *GameState, from int, activeOnly bool) int {
	n := len(gs.Players)
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		p := gs.Players[idx]
		if p == nil {
			continue
		}
		if activeOnly && p.State.State != Active {
			continue
		}
		return idx
	}
	return -1
}

// MoveButton advances the button to the next occupied seat, wrapping,
// initializing to the first occupied seat if unset.
func MoveButton(gs *GameState) {
	if gs.ButtonSeat < 0 {
		gs.ButtonSeat = NextOccupiedSeat(gs, -1, false)
		return
	}
	gs.ButtonSeat = NextOccupiedSeat(gs, gs.ButtonSeat, false)
}

// PlayerAt returns the player seated at index, or nil.
func (gs *GameState) PlayerAt(index int) *Player {
	if index < 0 || index >= len(gs.Players) {
		return nil
	}
	return gs.Players[index]
}
