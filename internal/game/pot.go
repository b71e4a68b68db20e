package game

import (
	"sort"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/evaluator"
)

// Pot is one contested pile of chips: an amount and the seats eligible
// to win it. Side pots arise when two or more players are all-in for
// different total-contributed amounts.
type Pot struct {
	Amount   int
	Eligible []int // seat indices
}

// BuildPots stratifies total_contributed amounts across all players
// into one or more pots: a main pot plus one side pot per distinct
// all-in level below the largest contribution. Folded players' chips
// count toward the pots, but folded players are never eligible. Every
// chip committed this hand ends up in exactly one pot.
func BuildPots(players []*Player) []Pot {
	// Distinct contribution levels among players still in the hand,
	// ascending, capped at each all-in player's own total.
	var levels []int
	seen := map[int]bool{}
	for _, p := range players {
		if p == nil || !p.InHand() {
			continue
		}
		if p.State.State == AllIn && p.State.TotalContributed > 0 && !seen[p.State.TotalContributed] {
			seen[p.State.TotalContributed] = true
			levels = append(levels, p.State.TotalContributed)
		}
	}
	sort.Ints(levels)

	var pots []Pot
	prevLevel := 0
	for _, level := range levels {
		pot := Pot{}
		for _, p := range players {
			if p == nil {
				continue
			}
			contribution := p.State.TotalContributed - prevLevel
			if contribution <= 0 {
				continue
			}
			if contribution > level-prevLevel {
				contribution = level - prevLevel
			}
			pot.Amount += contribution
			if p.InHand() && p.State.TotalContributed >= level {
				pot.Eligible = append(pot.Eligible, p.State.Seat)
			}
		}
		if pot.Amount > 0 {
			pots = append(pots, pot)
		}
		prevLevel = level
	}

	// Remainder pot: contributions above the highest all-in level,
	// contested by everyone still in hand who isn't capped there.
	finalPot := Pot{}
	for _, p := range players {
		if p == nil {
			continue
		}
		contribution := p.State.TotalContributed - prevLevel
		if contribution <= 0 {
			continue
		}
		finalPot.Amount += contribution
		if p.InHand() {
			finalPot.Eligible = append(finalPot.Eligible, p.State.Seat)
		}
	}
	if finalPot.Amount > 0 {
		pots = append(pots, finalPot)
	}

	return pots
}

// AwardShowdown resolves every pot against each eligible player's best
// 7-card score (2 hole + community), distributing odd chips one per
// winner in seat order starting left of the button, and returns the
// total amount each seat won.
func AwardShowdown(players []*Player, community []deck.Card, buttonSeat int) map[int]int {
	byseat := make(map[int]*Player, len(players))
	for _, p := range players {
		if p != nil {
			byseat[p.State.Seat] = p
		}
	}

	winnings := map[int]int{}
	for _, pot := range BuildPots(players) {
		if len(pot.Eligible) == 0 {
			continue
		}
		if len(pot.Eligible) == 1 {
			winnings[pot.Eligible[0]] += pot.Amount
			continue
		}
		best := evaluator.Score(0)
		bestSeats := map[int]bool{}
		for _, seat := range pot.Eligible {
			p := byseat[seat]
			hand := append(append([]deck.Card{}, p.State.Holding...), community...)
			score := evaluator.Evaluate(hand)
			switch {
			case score > best:
				best = score
				bestSeats = map[int]bool{seat: true}
			case score == best:
				bestSeats[seat] = true
			}
		}
		winners := seatsOrderedFromButton(bestSeats, buttonSeat, len(players))
		share := pot.Amount / len(winners)
		remainder := pot.Amount % len(winners)
		for i, seat := range winners {
			amt := share
			if i < remainder {
				amt++
			}
			winnings[seat] += amt
		}
	}
	return winnings
}

// seatsOrderedFromButton returns the seats in set, ordered starting
// from the seat immediately left of the button and wrapping around a
// ring of the given size.
func seatsOrderedFromButton(set map[int]bool, buttonSeat, ringSize int) []int {
	var seats []int
	for s := range set {
		seats = append(seats, s)
	}
	sort.Slice(seats, func(i, j int) bool {
		return relativeSeat(seats[i], buttonSeat, ringSize) < relativeSeat(seats[j], buttonSeat, ringSize)
	})
	return seats
}

func relativeSeat(seat, buttonSeat, ringSize int) int {
	rel := seat - (buttonSeat + 1)
	if rel < 0 {
		rel += ringSize
	}
	return rel
}
