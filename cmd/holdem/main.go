// Command holdem runs a headless demo of the engine: a fixed-size
// table of reference agents plays hands until one agent remains or the
// configured hand limit is reached, logging every transition and
// printing a styled summary line after each showdown.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/agents"
	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/evaluator"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/randutil"
)

// CLI is the kong flag schema for the demo harness. It is ambient
// tooling around the engine, not part of its public surface (spec.md
// §1, §6) — the engine itself has no notion of a CLI.
type CLI struct {
	Seats      int    `short:"s" help:"Number of seats at the table" default:"6"`
	SmallBlind int    `help:"Small blind amount" default:"10"`
	BigBlind   int    `help:"Big blind amount" default:"20"`
	Stack      int    `help:"Starting stack per player" default:"1000"`
	Hands      int    `help:"Number of hands to play before stopping" default:"20"`
	Seed       int64  `help:"Seed for the game's random number generator" default:"1"`
	LogLevel   string `help:"Log level" enum:"debug,info,warn,error" default:"info"`
}

var (
	winnerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	potStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func main() {
	var cli CLI
	kong.Parse(&cli)

	level, err := log.ParseLevel(cli.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid log level:", err)
		os.Exit(1)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           level,
	})

	if err := run(cli, logger); err != nil {
		logger.Fatal("demo run failed", "error", err)
	}
}

func run(cli CLI, logger *log.Logger) error {
	g, err := game.NewGame(game.Config{
		MaxSeats:    cli.Seats,
		SmallBlind:  cli.SmallBlind,
		BigBlind:    cli.BigBlind,
		MinPlayers:  2,
		MaxPlayers:  cli.Seats,
		MaxHands:    cli.Hands,
		FirstButton: -1,
		RNG:         randutil.New(cli.Seed),
	}, logger)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	agentRNG := randutil.New(cli.Seed + 1)
	for i := 0; i < cli.Seats; i++ {
		p := &game.Player{
			ID:    fmt.Sprintf("p%d", i),
			Name:  fmt.Sprintf("seat-%d", i),
			Agent: demoAgent(i, agentRNG),
		}
		p.State.Stack = cli.Stack
		if err := g.AddPlayer(p); err != nil {
			return fmt.Errorf("seating player %d: %w", i, err)
		}
	}

	g.Subscribe(game.EventShowdown, func(evt game.Event) {
		printShowdownSummary(g, evt, logger)
	})
	g.Subscribe(game.EventGameEnded, func(evt game.Event) {
		view := g.State()
		logger.Info("game over", "hands_played", view.HandNumber)
	})

	return g.Start()
}

// demoAgent cycles through the four reference implementations so the
// demo exercises all of them instead of running one archetype at every
// seat: fold-happy, call-station, uniformly random, and equity-driven.
func demoAgent(seat int, rng *rand.Rand) game.Agent {
	switch seat % 4 {
	case 0:
		return agents.FoldAgent{}
	case 1:
		return agents.CallAgent{}
	case 2:
		return agents.NewRandomAgent(rng)
	default:
		return agents.NewEquityAgent(fmt.Sprintf("p%d", seat), rng)
	}
}

func printShowdownSummary(g *game.Game, evt game.Event, logger *log.Logger) {
	winnings, _ := evt.Payload["winnings"].(map[int]int)
	if len(winnings) == 0 {
		return
	}

	view := g.State()
	bySeat := make(map[int]game.PlayerView, len(view.Players))
	for _, p := range view.Players {
		bySeat[p.Seat] = p
	}

	for seat, amount := range winnings {
		p, ok := bySeat[seat]
		if !ok || amount == 0 {
			continue
		}
		class := handClassFor(p, view)
		line := fmt.Sprintf("%s  %s wins %s%s",
			dimStyle.Render(fmt.Sprintf("hand %d", view.HandNumber)),
			winnerStyle.Render(p.Name),
			potStyle.Render(fmt.Sprintf("%d", amount)),
			classSuffix(class),
		)
		fmt.Println(line)
		logger.Debug("showdown payout", "hand", view.HandNumber, "seat", seat, "amount", amount, "class", class)
	}
}

// handClassFor reports the winner's best hand class, or "" if their
// hole cards or the board are incomplete (a pot won uncontested
// before the river is awarded without evaluation).
func handClassFor(p game.PlayerView, view game.GameView) string {
	if len(p.Holding) != 2 || len(view.Community) != 5 {
		return ""
	}
	hand := append(append([]deck.Card{}, p.Holding...), view.Community...)
	return evaluator.Evaluate(hand).Class().String()
}

func classSuffix(class string) string {
	if class == "" {
		return ""
	}
	return dimStyle.Render(fmt.Sprintf(" (%s)", class))
}
