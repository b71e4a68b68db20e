package evaluator

import (
	"testing"

	"github.com/lox/holdem-engine/internal/deck"
)

func allCards() []deck.Card {
	cards := make([]deck.Card, 0, 52)
	for s := deck.Spades; s <= deck.Clubs; s++ {
		for r := deck.Two; r <= deck.Ace; r++ {
			cards = append(cards, deck.NewCard(s, r))
		}
	}
	return cards
}

// TestClassSeparationExhaustive is the testable property from spec.md
// §4.1 and §8: across all C(52,5) five-card hands, every class's score
// range is strictly below the next class's, with no overlap.
func TestClassSeparationExhaustive(t *testing.T) {
	cards := allCards()
	var maxOf [RoyalFlush + 1]Score
	var minOf [RoyalFlush + 1]Score
	var seen [RoyalFlush + 1]bool

	hand := make([]deck.Card, 5)
	for a := 0; a < 52; a++ {
		hand[0] = cards[a]
		for b := a + 1; b < 52; b++ {
			hand[1] = cards[b]
			for c := b + 1; c < 52; c++ {
				hand[2] = cards[c]
				for d := c + 1; d < 52; d++ {
					hand[3] = cards[d]
					for e := d + 1; e < 52; e++ {
						hand[4] = cards[e]
						s := evaluate5(hand)
						cls := s.Class()
						if !seen[cls] || s > maxOf[cls] {
							maxOf[cls] = s
						}
						if !seen[cls] || s < minOf[cls] {
							minOf[cls] = s
						}
						seen[cls] = true
					}
				}
			}
		}
	}

	for cls := HighCard; cls < RoyalFlush; cls++ {
		if !seen[cls] || !seen[cls+1] {
			continue
		}
		if maxOf[cls] >= minOf[cls+1] {
			t.Fatalf("class %s max score %d overlaps class %s min score %d", cls, maxOf[cls], cls+1, minOf[cls+1])
		}
	}
}

func TestEvaluateSevenPicksBest(t *testing.T) {
	// The board has four hearts; the 2h in the hole completes a flush,
	// which must beat the pair of twos the hole cards otherwise make.
	hole := deck.MustParseCards("2h2c")
	board := deck.MustParseCards("AhKhQhJh9c")
	got := Evaluate(append(append([]deck.Card{}, hole...), board...))
	if got.Class() != Flush {
		t.Fatalf("expected Flush, got %s", got.Class())
	}
}

func TestRoyalFlushIsHighestClass(t *testing.T) {
	hand := deck.MustParseCards("AsKsQsJsTs")
	s := evaluate5(hand)
	if s.Class() != RoyalFlush {
		t.Fatalf("expected RoyalFlush, got %s", s.Class())
	}
}

func TestWheelStraightIsFiveHigh(t *testing.T) {
	wheel := deck.MustParseCards("Ac2d3h4s5c")
	six := deck.MustParseCards("2c3d4h5s6c")

	wheelScore := evaluate5(wheel)
	sixScore := evaluate5(six)

	if wheelScore.Class() != Straight || sixScore.Class() != Straight {
		t.Fatalf("expected both hands to be straights, got %s and %s", wheelScore.Class(), sixScore.Class())
	}
	if wheelScore >= sixScore {
		t.Fatalf("wheel (5-high) should score below a 6-high straight: wheel=%d six-high=%d", wheelScore, sixScore)
	}
}

func TestFlushBeatsStraight(t *testing.T) {
	straight := deck.MustParseCards("9h8c7d6s5c")
	flush := deck.MustParseCards("2h4h7hJh9h")

	if evaluate5(straight) >= evaluate5(flush) {
		t.Fatalf("straight should score below flush")
	}
}

func TestEvaluateSymmetricUnderCardOrder(t *testing.T) {
	hand := deck.MustParseCards("Ah2h3h4h5h")
	reordered := []deck.Card{hand[4], hand[2], hand[0], hand[3], hand[1]}

	if evaluate5(hand) != evaluate5(reordered) {
		t.Fatalf("score must be invariant under card-order permutation")
	}
}

func TestEvaluatePanicsBelowFiveCards(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for fewer than 5 cards")
		}
	}()
	Evaluate(deck.MustParseCards("AhKh"))
}
