package deck

import (
	"math/rand"
	"testing"
)

func TestNewDeck(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(42)))

	if d.CardsRemaining() != 52 {
		t.Errorf("expected 52 cards, got %d", d.CardsRemaining())
	}
	if d.IsEmpty() {
		t.Error("new deck should not be empty")
	}
}

func TestDeckDeal(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(42)))
	initial := d.CardsRemaining()

	card, err := d.Deal()
	if err != nil {
		t.Fatalf("Deal() error: %v", err)
	}
	if d.CardsRemaining() != initial-1 {
		t.Errorf("expected %d cards remaining, got %d", initial-1, d.CardsRemaining())
	}
	if card.Suit < Spades || card.Suit > Clubs {
		t.Error("invalid suit dealt")
	}
	if card.Rank < Two || card.Rank > Ace {
		t.Error("invalid rank dealt")
	}
}

func TestDeckDealAll(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(42)))

	for i := 0; i < 52; i++ {
		if _, err := d.Deal(); err != nil {
			t.Fatalf("deal %d failed: %v", i+1, err)
		}
	}
	if !d.IsEmpty() {
		t.Error("deck should be empty after dealing all cards")
	}
	if _, err := d.Deal(); err == nil {
		t.Error("Deal() on empty deck should error")
	}
}

func TestDeckShuffleDeterministic(t *testing.T) {
	d1 := NewDeck(rand.New(rand.NewSource(7)))
	d1.Shuffle()
	d2 := NewDeck(rand.New(rand.NewSource(7)))
	d2.Shuffle()

	c1, _ := d1.DealN(5)
	c2, _ := d2.DealN(5)
	for i := range c1 {
		if c1[i] != c2[i] {
			t.Fatalf("same-seed decks diverged at card %d: %v vs %v", i, c1[i], c2[i])
		}
	}
}

func TestDeckReset(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(42)))
	if _, err := d.DealN(10); err != nil {
		t.Fatal(err)
	}
	if d.CardsRemaining() != 42 {
		t.Errorf("expected 42 cards, got %d", d.CardsRemaining())
	}
	d.Reset()
	if d.CardsRemaining() != 52 {
		t.Errorf("expected 52 cards after reset, got %d", d.CardsRemaining())
	}
}

func TestDeckDealN(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(42)))

	cards, err := d.DealN(5)
	if err != nil {
		t.Fatalf("DealN(5) error: %v", err)
	}
	if len(cards) != 5 {
		t.Errorf("expected 5 cards, got %d", len(cards))
	}
	if d.CardsRemaining() != 47 {
		t.Errorf("expected 47 cards remaining, got %d", d.CardsRemaining())
	}

	if _, err := d.DealN(100); err == nil {
		t.Error("DealN beyond remaining cards should error")
	}
	if _, err := d.DealN(0); err == nil {
		t.Error("DealN(0) should error")
	}
	if _, err := d.DealN(-1); err == nil {
		t.Error("DealN(-1) should error")
	}
}

func TestDeckRemoveCards(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(42)))
	target := NewCard(Spades, Ace)

	if err := d.RemoveCards([]Card{target}); err != nil {
		t.Fatalf("RemoveCards error: %v", err)
	}
	if d.CardsRemaining() != 51 {
		t.Errorf("expected 51 cards remaining, got %d", d.CardsRemaining())
	}
	if err := d.RemoveCards([]Card{target}); err == nil {
		t.Error("removing an already-removed card should error")
	}
}

func TestDeckMissingCards(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(42)))
	if len(d.MissingCards()) != 0 {
		t.Error("a full deck should have no missing cards")
	}

	dealt, err := d.DealN(5)
	if err != nil {
		t.Fatal(err)
	}
	missing := d.MissingCards()
	if len(missing) != 5 {
		t.Fatalf("expected 5 missing cards, got %d", len(missing))
	}
	for _, c := range dealt {
		found := false
		for _, m := range missing {
			if m == c {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("dealt card %s not reported as missing", c)
		}
	}
}

func TestCardString(t *testing.T) {
	card := NewCard(Spades, Ace)
	if got, want := card.String(), "A♠"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
