// Package deck implements a standard 52-card deck with explicit RNG
// injection, so shuffling and dealing are reproducible from a seed.
package deck

import (
	"fmt"
	"math/rand"
)

// Deck is a mutable sequence of undealt cards. The zero value is not
// usable; construct with NewDeck.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck builds a fresh, unshuffled 52-card deck using rng for all
// future shuffling and dealing. rng must not be nil: a deck never
// falls back to a time-seeded or package-global source, so that two
// decks built from the same seed deal identical sequences.
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("deck: NewDeck requires a non-nil rng")
	}
	d := &Deck{rng: rng}
	d.Reset()
	return d
}

// Reset restores the deck to a full, unshuffled 52 cards.
func (d *Deck) Reset() {
	d.cards = d.cards[:0]
	for s := Spades; s <= Clubs; s++ {
		for r := Two; r <= Ace; r++ {
			d.cards = append(d.cards, NewCard(s, r))
		}
	}
}

// Shuffle randomizes the order of the remaining cards in place using
// a Fisher-Yates shuffle driven by the deck's injected RNG.
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal removes and returns the top card. It returns an error if the
// deck is empty.
func (d *Deck) Deal() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, fmt.Errorf("deck: deal from empty deck")
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return c, nil
}

// DealN removes and returns the top n cards. n must be positive and no
// greater than the number of cards remaining; either condition being
// violated is an error, not a silent truncation or no-op.
func (d *Deck) DealN(n int) ([]Card, error) {
	if n <= 0 {
		return nil, fmt.Errorf("deck: DealN requires n > 0, got %d", n)
	}
	if n > len(d.cards) {
		return nil, fmt.Errorf("deck: DealN(%d) exceeds %d remaining cards", n, len(d.cards))
	}
	out := make([]Card, n)
	copy(out, d.cards[len(d.cards)-n:])
	d.cards = d.cards[:len(d.cards)-n]
	return out, nil
}

// RemoveCards removes specific cards from the deck, e.g. to deal a
// predetermined hand in a test. It errors if any card is not present.
func (d *Deck) RemoveCards(cards []Card) error {
	for _, target := range cards {
		idx := -1
		for i, c := range d.cards {
			if c == target {
				idx = i
				break
			}
		}
		if idx == -1 {
			return fmt.Errorf("deck: card %s not present", target)
		}
		d.cards = append(d.cards[:idx], d.cards[idx+1:]...)
	}
	return nil
}

// MissingCards returns the cards of the standard 52-card universe that
// are not currently in the deck (already dealt, burned, or removed).
func (d *Deck) MissingCards() []Card {
	present := make(map[Card]bool, len(d.cards))
	for _, c := range d.cards {
		present[c] = true
	}
	var missing []Card
	for s := Spades; s <= Clubs; s++ {
		for r := Two; r <= Ace; r++ {
			c := NewCard(s, r)
			if !present[c] {
				missing = append(missing, c)
			}
		}
	}
	return missing
}

// CardsRemaining reports how many cards are left to deal.
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// IsEmpty reports whether the deck has no cards left.
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Peek returns the top n cards without removing them. n is clamped to
// the number of cards remaining.
func (d *Deck) Peek(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	out := make([]Card, n)
	for i := 0; i < n; i++ {
		out[i] = d.cards[len(d.cards)-1-i]
	}
	return out
}
