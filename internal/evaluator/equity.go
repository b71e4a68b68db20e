package evaluator

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-engine/internal/deck"
)

// parallelThreshold is the sample count at or above which EstimateEquity
// fans work out across workers instead of running sequentially; below
// it the goroutine/channel overhead isn't worth paying.
const parallelThreshold = 500

// EquityResult reports the fraction of simulated outcomes a hand wins
// outright or ties, against numOpponents random opponent hands.
type EquityResult struct {
	Win   float64
	Tie   float64
	Lose  float64
	Trials int
}

// EstimateEquity runs a seeded Monte Carlo simulation of hole against
// numOpponents random opponents, completing board to 5 cards on each
// trial, and returns the fraction of trials hole wins or ties. The
// same seed and sample count produce the same result on a given
// machine; from parallelThreshold samples up, trials are split across
// runtime.NumCPU() workers, so the result also depends on the CPU count.
func EstimateEquity(hole, board []deck.Card, numOpponents, samples int, rng *rand.Rand) (EquityResult, error) {
	if len(hole) != 2 {
		return EquityResult{}, fmt.Errorf("evaluator: hole must have exactly 2 cards, got %d", len(hole))
	}
	if numOpponents < 1 {
		return EquityResult{}, fmt.Errorf("evaluator: numOpponents must be >= 1, got %d", numOpponents)
	}
	if len(board) > 5 {
		return EquityResult{}, fmt.Errorf("evaluator: board must have at most 5 cards, got %d", len(board))
	}
	if samples < 1 {
		return EquityResult{}, fmt.Errorf("evaluator: samples must be >= 1, got %d", samples)
	}

	dead := make(map[deck.Card]bool, len(hole)+len(board))
	for _, c := range hole {
		dead[c] = true
	}
	for _, c := range board {
		dead[c] = true
	}
	remaining := make([]deck.Card, 0, 52-len(dead))
	for s := deck.Spades; s <= deck.Clubs; s++ {
		for r := deck.Two; r <= deck.Ace; r++ {
			c := deck.NewCard(s, r)
			if !dead[c] {
				remaining = append(remaining, c)
			}
		}
	}
	needed := 2*numOpponents + (5 - len(board))
	if needed > len(remaining) {
		return EquityResult{}, fmt.Errorf("evaluator: not enough cards left for %d opponents", numOpponents)
	}

	if samples < parallelThreshold {
		return runEquityTrials(hole, board, remaining, numOpponents, samples, rng)
	}
	return estimateEquityParallel(hole, board, remaining, numOpponents, samples, rng)
}

func estimateEquityParallel(hole, board, remaining []deck.Card, numOpponents, samples int, rng *rand.Rand) (EquityResult, error) {
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > samples {
		workers = samples
	}

	base := samples / workers
	extra := samples % workers

	var g errgroup.Group
	results := make([]EquityResult, workers)
	for w := 0; w < workers; w++ {
		w := w
		n := base
		if w < extra {
			n++
		}
		if n == 0 {
			continue
		}
		// Each worker gets its own deterministic, seed-derived source
		// so the aggregate stays reproducible regardless of goroutine
		// scheduling order.
		workerSeed := rng.Int63()
		g.Go(func() error {
			workerRNG := rand.New(rand.NewSource(workerSeed))
			res, err := runEquityTrials(hole, board, remaining, numOpponents, n, workerRNG)
			if err != nil {
				return err
			}
			results[w] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return EquityResult{}, err
	}

	var total EquityResult
	var wins, ties, trials int
	for _, r := range results {
		wins += int(math.Round(r.Win * float64(r.Trials)))
		ties += int(math.Round(r.Tie * float64(r.Trials)))
		trials += r.Trials
	}
	if trials == 0 {
		return total, fmt.Errorf("evaluator: no trials completed")
	}
	total.Trials = trials
	total.Win = float64(wins) / float64(trials)
	total.Tie = float64(ties) / float64(trials)
	total.Lose = 1 - total.Win - total.Tie
	return total, nil
}

func runEquityTrials(hole, board, remaining []deck.Card, numOpponents, samples int, rng *rand.Rand) (EquityResult, error) {
	pool := make([]deck.Card, len(remaining))
	copy(pool, remaining)

	var wins, ties int
	boardNeeded := 5 - len(board)
	draw := make([]deck.Card, len(pool))

	for i := 0; i < samples; i++ {
		copy(draw, pool)
		rng.Shuffle(len(draw), func(a, b int) { draw[a], draw[b] = draw[b], draw[a] })

		fullBoard := make([]deck.Card, 0, 5)
		fullBoard = append(fullBoard, board...)
		fullBoard = append(fullBoard, draw[:boardNeeded]...)

		heroCards := append(append([]deck.Card{}, hole...), fullBoard...)
		heroScore := Evaluate(heroCards)

		cursor := boardNeeded
		best := heroScore
		tiedWithHero := false
		for o := 0; o < numOpponents; o++ {
			oppHole := draw[cursor : cursor+2]
			cursor += 2
			oppCards := append(append([]deck.Card{}, oppHole...), fullBoard...)
			oppScore := Evaluate(oppCards)
			if oppScore > best {
				best = oppScore
				tiedWithHero = false
			} else if oppScore == best && best == heroScore {
				tiedWithHero = true
			}
		}

		switch {
		case best == heroScore && !tiedWithHero:
			wins++
		case best == heroScore && tiedWithHero:
			ties++
		}
	}

	return EquityResult{
		Win:    float64(wins) / float64(samples),
		Tie:    float64(ties) / float64(samples),
		Lose:   1 - float64(wins)/float64(samples) - float64(ties)/float64(samples),
		Trials: samples,
	}, nil
}
