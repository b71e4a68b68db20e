package game

import "github.com/lox/holdem-engine/internal/deck"

// GameState is the aggregate data model described in the data model
// section: players by seat, the shared deck and board, and all
// betting-round bookkeeping. It holds no behavior beyond the pure
// table/betting/pot functions operating on it (table.go, betting.go,
// pot.go) — the engine loop itself lives in Game (game.go).
type GameState struct {
	Players            []*Player // fixed size, index = seat, nil if empty
	ButtonSeat         int       // -1 if unset
	CurrentPlayerIndex int

	Deck      *deck.Deck
	Community []deck.Card

	Pot           int
	CurrentBet    int
	MinBet        int // the big blind
	LastRaiseSize int

	SmallBlind int
	BigBlind   int
	HandNumber int

	Stage  GameStateType
	Street Street

	MinPlayers int
	MaxPlayers int
	MaxHands   int
}

// GameView is the read-only snapshot handed to agents and event
// observers. The engine never hides information: hole cards are
// visible on every seated player, matching the "no partial
// information hiding" non-goal.
type GameView struct {
	Players            []PlayerView
	ButtonSeat         int
	CurrentPlayerIndex int
	Community          []deck.Card
	Pot                int
	CurrentBet         int
	MinBet             int
	LastRaiseSize      int
	SmallBlind         int
	BigBlind           int
	HandNumber         int
	Stage              GameStateType
	Street             Street
}

// PlayerView is the read-only projection of one seat.
type PlayerView struct {
	Seat             int
	ID               string
	Name             string
	Stack            int
	Holding          []deck.Card
	CurrentBet       int
	TotalContributed int
	State            StateType
}

func viewOf(gs *GameState) GameView {
	v := GameView{
		ButtonSeat:         gs.ButtonSeat,
		CurrentPlayerIndex: gs.CurrentPlayerIndex,
		Community:          append([]deck.Card{}, gs.Community...),
		Pot:                gs.Pot,
		CurrentBet:         gs.CurrentBet,
		MinBet:             gs.MinBet,
		LastRaiseSize:      gs.LastRaiseSize,
		SmallBlind:         gs.SmallBlind,
		BigBlind:           gs.BigBlind,
		HandNumber:         gs.HandNumber,
		Stage:              gs.Stage,
		Street:             gs.Street,
	}
	for _, p := range gs.Players {
		if p == nil {
			continue
		}
		v.Players = append(v.Players, PlayerView{
			Seat:             p.State.Seat,
			ID:               p.ID,
			Name:             p.Name,
			Stack:            p.State.Stack,
			Holding:          append([]deck.Card{}, p.State.Holding...),
			CurrentBet:       p.State.CurrentBet,
			TotalContributed: p.State.TotalContributed,
			State:            p.State.State,
		})
	}
	return v
}
