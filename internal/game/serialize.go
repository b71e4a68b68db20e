package game

import (
	"fmt"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/randutil"
)

// Dump renders gs to a structured map round-trippable through
// LoadGameState, per spec.md §6: every field named in spec.md §3,
// including hole cards — the engine never hides information.
func (gs *GameState) Dump() map[string]any {
	players := make([]map[string]any, 0, len(gs.Players))
	for _, p := range gs.Players {
		if p == nil {
			players = append(players, nil)
			continue
		}
		players = append(players, map[string]any{
			"id":                p.ID,
			"name":              p.Name,
			"seat":              p.State.Seat,
			"stack":             p.State.Stack,
			"holding":           dumpCards(p.State.Holding),
			"current_bet":       p.State.CurrentBet,
			"total_contributed": p.State.TotalContributed,
			"acted_this_street": p.State.ActedThisStreet,
			"state":             p.State.State.String(),
		})
	}

	return map[string]any{
		"players":               players,
		"button_seat":           gs.ButtonSeat,
		"current_player_index":  gs.CurrentPlayerIndex,
		"community":             dumpCards(gs.Community),
		"pot":                   gs.Pot,
		"current_bet":           gs.CurrentBet,
		"min_bet":               gs.MinBet,
		"last_raise_size":       gs.LastRaiseSize,
		"small_blind":           gs.SmallBlind,
		"big_blind":             gs.BigBlind,
		"hand_number":           gs.HandNumber,
		"stage":                 gs.Stage.String(),
		"street":                gs.Street.String(),
		"min_players":           gs.MinPlayers,
		"max_players":           gs.MaxPlayers,
		"max_hands":             gs.MaxHands,
	}
}

func dumpCards(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Code()
	}
	return out
}

// LoadGameState reconstructs a GameState from the shape Dump
// produces. Reconstructed players carry no Agent — a caller round
// tripping a live game must reattach agents by ID after loading.
// The deck is rebuilt fresh (deterministically seeded) since the
// dumped shape never includes undealt cards; only the dealt hole
// cards and community cards round-trip, which is what the
// evaluate(load(dump(state))) == evaluate(state) property in spec.md
// §8 exercises.
func LoadGameState(data map[string]any) (*GameState, error) {
	rawPlayers, _ := data["players"].([]map[string]any)
	players := make([]*Player, len(rawPlayers))
	for i, rp := range rawPlayers {
		if rp == nil {
			continue
		}
		holding, err := loadCards(rp["holding"])
		if err != nil {
			return nil, fmt.Errorf("game: loading player %d holding: %w", i, err)
		}
		state, err := parseStateType(fmt.Sprint(rp["state"]))
		if err != nil {
			return nil, err
		}
		players[i] = &Player{
			ID:   fmt.Sprint(rp["id"]),
			Name: fmt.Sprint(rp["name"]),
			State: PlayerState{
				Seat:             toInt(rp["seat"]),
				Stack:            toInt(rp["stack"]),
				Holding:          holding,
				CurrentBet:       toInt(rp["current_bet"]),
				TotalContributed: toInt(rp["total_contributed"]),
				ActedThisStreet:  toBool(rp["acted_this_street"]),
				State:            state,
			},
		}
	}

	community, err := loadCards(data["community"])
	if err != nil {
		return nil, fmt.Errorf("game: loading community cards: %w", err)
	}
	stage, err := parseGameStateType(fmt.Sprint(data["stage"]))
	if err != nil {
		return nil, err
	}
	street, err := parseStreet(fmt.Sprint(data["street"]))
	if err != nil {
		return nil, err
	}

	return &GameState{
		Players:            players,
		ButtonSeat:         toInt(data["button_seat"]),
		CurrentPlayerIndex: toInt(data["current_player_index"]),
		Deck:               deck.NewDeck(randutil.New(0)),
		Community:          community,
		Pot:                toInt(data["pot"]),
		CurrentBet:         toInt(data["current_bet"]),
		MinBet:             toInt(data["min_bet"]),
		LastRaiseSize:      toInt(data["last_raise_size"]),
		SmallBlind:         toInt(data["small_blind"]),
		BigBlind:           toInt(data["big_blind"]),
		HandNumber:         toInt(data["hand_number"]),
		Stage:              stage,
		Street:             street,
		MinPlayers:         toInt(data["min_players"]),
		MaxPlayers:         toInt(data["max_players"]),
		MaxHands:           toInt(data["max_hands"]),
	}, nil
}

func loadCards(v any) ([]deck.Card, error) {
	raw, _ := v.([]string)
	if raw == nil {
		return nil, nil
	}
	cards := make([]deck.Card, len(raw))
	for i, s := range raw {
		c, err := deck.ParseCards(s)
		if err != nil || len(c) != 1 {
			return nil, fmt.Errorf("game: invalid card %q", s)
		}
		cards[i] = c[0]
	}
	return cards, nil
}

func toInt(v any) int {
	n, _ := v.(int)
	return n
}

func toBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func parseStateType(s string) (StateType, error) {
	switch s {
	case "ACTIVE":
		return Active, nil
	case "FOLDED":
		return Folded, nil
	case "ALL_IN":
		return AllIn, nil
	default:
		return 0, fmt.Errorf("game: invalid player state %q", s)
	}
}

func parseGameStateType(s string) (GameStateType, error) {
	for _, v := range []GameStateType{
		WaitingForPlayers, Ready, Started, Dealing, StagePreFlop, StageFlop,
		StageTurn, StageRiver, StageShowdown, HandComplete, GameOver,
	} {
		if v.String() == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("game: invalid stage %q", s)
}

func parseStreet(s string) (Street, error) {
	for _, v := range []Street{PreFlop, Flop, Turn, River, ShowdownStreet} {
		if v.String() == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("game: invalid street %q", s)
}
