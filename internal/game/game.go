package game

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/gameid"
)

// DefaultMaxSeats is the table size NewGame uses when Config.MaxSeats
// is zero.
const DefaultMaxSeats = 9

// Config configures a Game for its entire lifetime (spec.md §6
// create_game). RNG is required: every shuffle, button draw, and event
// ID this game produces is derived from it, so a given seed reproduces
// a given run (spec.md §5).
type Config struct {
	MaxSeats    int // 0 means DefaultMaxSeats
	SmallBlind  int
	BigBlind    int
	MinPlayers  int
	MaxPlayers  int
	MaxHands    int
	FirstButton int // seat index, or -1 to choose via RNG at the first hand
	StrictMode  bool
	RNG         *rand.Rand
}

func (c Config) validate() error {
	if c.RNG == nil {
		return fmt.Errorf("game: Config.RNG is required")
	}
	if c.MaxSeats <= 0 {
		return fmt.Errorf("game: MaxSeats must be positive, got %d", c.MaxSeats)
	}
	if c.SmallBlind <= 0 || c.BigBlind <= 0 {
		return fmt.Errorf("game: blinds must be positive, got small=%d big=%d", c.SmallBlind, c.BigBlind)
	}
	if c.SmallBlind > c.BigBlind {
		return fmt.Errorf("game: small blind %d exceeds big blind %d", c.SmallBlind, c.BigBlind)
	}
	if c.MinPlayers < 2 {
		return fmt.Errorf("game: MinPlayers must be at least 2, got %d", c.MinPlayers)
	}
	if c.MaxPlayers < c.MinPlayers || c.MaxPlayers > c.MaxSeats {
		return fmt.Errorf("game: MaxPlayers %d must be between MinPlayers %d and MaxSeats %d", c.MaxPlayers, c.MinPlayers, c.MaxSeats)
	}
	if c.MaxHands <= 0 {
		return fmt.Errorf("game: MaxHands must be positive, got %d", c.MaxHands)
	}
	if c.FirstButton >= c.MaxSeats {
		return fmt.Errorf("game: FirstButton %d out of range for %d seats", c.FirstButton, c.MaxSeats)
	}
	return nil
}

// Game is the event-queue dispatcher and hand-lifecycle state machine
// described in spec.md §2, §4.4 and §4.6. It owns the transition-tag
// queue; subscribers and agents only ever observe Events derived from
// running a tag, never the queue itself (spec.md §9 "Event queue
// ownership").
type Game struct {
	cfg    Config
	state  *GameState
	queue  []TransitionTag
	bus    *EventBus
	logger *log.Logger
	idgen  *gameid.Generator
}

// NewGame constructs a Game ready to accept players. Stage starts at
// WaitingForPlayers; no hand runs until enough players are seated and
// Start is called.
func NewGame(cfg Config, logger *log.Logger) (*Game, error) {
	if cfg.MaxSeats == 0 {
		cfg.MaxSeats = DefaultMaxSeats
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	gs := &GameState{
		Players:    make([]*Player, cfg.MaxSeats),
		ButtonSeat: -1,
		Deck:       deck.NewDeck(cfg.RNG),
		MinBet:     cfg.BigBlind,
		SmallBlind: cfg.SmallBlind,
		BigBlind:   cfg.BigBlind,
		Stage:      WaitingForPlayers,
		Street:     PreFlop,
		MinPlayers: cfg.MinPlayers,
		MaxPlayers: cfg.MaxPlayers,
		MaxHands:   cfg.MaxHands,
	}

	g := &Game{
		cfg:    cfg,
		state:  gs,
		logger: logger,
		idgen:  gameid.NewGenerator(cfg.RNG),
	}
	g.bus = NewEventBus(func(evtType EventType, r any) {
		g.logger.Warnf("game: handler for %s panicked: %v", evtType, r)
	})
	return g, nil
}

// AddPlayer seats p at the first free seat. It errors per spec.md §7's
// configuration-error taxonomy if the table is full. Stage toggles to
// Ready once enough players are seated (spec.md §9 supplemented
// player-joined/left gating), and back to WaitingForPlayers if it
// drops below MinPlayers again.
func (g *Game) AddPlayer(p *Player) error {
	if g.state.Stage != WaitingForPlayers && g.state.Stage != Ready {
		return fmt.Errorf("game: cannot add players once a hand is underway (stage %s)", g.state.Stage)
	}
	if err := SeatPlayer(g.state, p, -1); err != nil {
		return err
	}
	g.refreshWaitingStage()
	g.publish(EventPlayerJoined, Event{PlayerID: p.ID})
	return nil
}

// RemovePlayer clears the seat held by the player with the given ID.
// It errors if a hand is currently in progress (spec.md §7
// "removing during a hand").
func (g *Game) RemovePlayer(id string) error {
	if g.state.Stage != WaitingForPlayers && g.state.Stage != Ready &&
		g.state.Stage != HandComplete && g.state.Stage != GameOver {
		return fmt.Errorf("game: cannot remove players mid-hand (stage %s)", g.state.Stage)
	}
	if err := RemovePlayer(g.state, id); err != nil {
		return err
	}
	g.refreshWaitingStage()
	g.publish(EventPlayerLeft, Event{PlayerID: id})
	return nil
}

func (g *Game) refreshWaitingStage() {
	if g.state.Stage != WaitingForPlayers && g.state.Stage != Ready {
		return
	}
	if SeatedCount(g.state) >= g.cfg.MinPlayers {
		g.state.Stage = Ready
	} else {
		g.state.Stage = WaitingForPlayers
	}
}

// Subscribe registers handler for evtType, returning a token usable
// with Unsubscribe.
func (g *Game) Subscribe(evtType EventType, handler EventHandler) SubscriptionToken {
	return g.bus.Subscribe(evtType, handler)
}

// Unsubscribe removes a previously registered handler.
func (g *Game) Unsubscribe(tok SubscriptionToken) {
	g.bus.Unsubscribe(tok)
}

// HasEvents reports whether any transition tag is still queued.
func (g *Game) HasEvents() bool {
	return len(g.queue) > 0
}

// State returns a read-only snapshot of the game.
func (g *Game) State() GameView {
	return viewOf(g.state)
}

// View is an alias for State used by the Agent/EventObserver hooks,
// which are implemented in terms of the same read-only snapshot.
func (g *Game) View() GameView {
	return viewOf(g.state)
}

// Start enqueues GAME_STARTED and drains the queue until it is empty
// (GAME_OVER reached) or a fatal error occurs.
func (g *Game) Start() error {
	if g.state.Stage != Ready && g.state.Stage != WaitingForPlayers {
		return fmt.Errorf("game: Start called from stage %s", g.state.Stage)
	}
	if SeatedCount(g.state) < g.cfg.MinPlayers {
		return fmt.Errorf("game: not enough players to start (have %d, need %d)", SeatedCount(g.state), g.cfg.MinPlayers)
	}
	g.enqueue(TagGameStarted)
	for g.HasEvents() {
		if _, err := g.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step pops and executes one transition tag. It returns false if the
// queue was already empty.
func (g *Game) Step() (bool, error) {
	if len(g.queue) == 0 {
		return false, nil
	}
	tag := g.queue[0]
	g.queue = g.queue[1:]
	g.logger.Debug("game: executing transition", "tag", tag)
	if err := g.run(tag); err != nil {
		return true, err
	}
	return true, nil
}

func (g *Game) enqueue(tags ...TransitionTag) {
	g.queue = append(g.queue, tags...)
}

func (g *Game) publish(t EventType, evt Event) {
	evt.ID = g.idgen.Generate()
	evt.Type = t
	evt.HandNumber = g.state.HandNumber
	evt.Street = g.state.Street
	evt.Pot = g.state.Pot
	evt.CurrentBet = g.state.CurrentBet
	g.bus.Publish(evt)
	for _, p := range g.state.Players {
		if p != nil {
			g.callOnEvent(p, evt)
		}
	}
}

func (g *Game) run(tag TransitionTag) error {
	switch tag {
	case TagGameStarted:
		return g.onGameStarted()
	case TagHandStarted:
		return g.onHandStarted()
	case TagDealHoleCards:
		return g.onDealHoleCards()
	case TagPostBlinds:
		return g.onPostBlinds()
	case TagPlayerAction:
		return g.onPlayerAction()
	case TagBettingRoundCompleted:
		return g.onBettingRoundCompleted()
	case TagDealFlop:
		return g.onDealStreet(Flop, StageFlop, EventDealFlop, 3)
	case TagDealTurn:
		return g.onDealStreet(Turn, StageTurn, EventDealTurn, 1)
	case TagDealRiver:
		return g.onDealStreet(River, StageRiver, EventDealRiver, 1)
	case TagShowdown:
		return g.onShowdown()
	case TagHandEnded:
		return g.onHandEnded()
	case TagGameEnded:
		return g.onGameEnded()
	default:
		return fmt.Errorf("game: unknown transition tag %v", tag)
	}
}

func (g *Game) onGameStarted() error {
	if SeatedCount(g.state) < g.cfg.MinPlayers {
		return fmt.Errorf("game: not enough players seated to start")
	}
	g.state.Stage = Started
	g.publish(EventGameStarted, Event{})
	g.enqueue(TagHandStarted)
	return nil
}

func (g *Game) onHandStarted() error {
	if SeatedCount(g.state) < g.cfg.MinPlayers || g.state.HandNumber >= g.cfg.MaxHands {
		g.enqueue(TagGameEnded)
		return nil
	}

	g.state.HandNumber++
	g.initButton()
	for _, p := range g.state.Players {
		if p != nil {
			p.resetForHand()
		}
	}
	g.state.Community = nil
	g.state.Pot = 0
	g.state.CurrentBet = 0
	g.state.LastRaiseSize = g.state.BigBlind
	g.state.Street = PreFlop
	g.state.Deck.Reset()
	g.state.Deck.Shuffle()
	g.state.Stage = Dealing

	g.publish(EventHandStarted, Event{})
	g.enqueue(TagDealHoleCards)
	return nil
}

// initButton sets the button for the first hand (an explicit seat if
// configured, otherwise a seeded random occupied seat; spec.md §9
// "First-button selection") and rotates it on every later hand.
func (g *Game) initButton() {
	if g.state.ButtonSeat >= 0 {
		MoveButton(g.state)
		return
	}
	if g.cfg.FirstButton >= 0 && g.state.PlayerAt(g.cfg.FirstButton) != nil {
		g.state.ButtonSeat = g.cfg.FirstButton
		return
	}
	var occupied []int
	for i, p := range g.state.Players {
		if p != nil {
			occupied = append(occupied, i)
		}
	}
	g.state.ButtonSeat = occupied[g.cfg.RNG.Intn(len(occupied))]
}

func (g *Game) onDealHoleCards() error {
	for _, p := range g.state.Players {
		if p == nil {
			continue
		}
		cards, err := g.state.Deck.DealN(2)
		if err != nil {
			return fmt.Errorf("game: dealing hole cards: %w", err)
		}
		p.State.Holding = cards
	}
	g.state.Stage = StagePreFlop
	g.publish(EventDealHoleCards, Event{})
	g.enqueue(TagPostBlinds)
	return nil
}

func (g *Game) onPostBlinds() error {
	gs := g.state
	var sbSeat, bbSeat int
	if SeatedCount(gs) == 2 {
		sbSeat = gs.ButtonSeat
		bbSeat = NextOccupiedSeat(gs, sbSeat, false)
	} else {
		sbSeat = NextOccupiedSeat(gs, gs.ButtonSeat, false)
		bbSeat = NextOccupiedSeat(gs, sbSeat, false)
	}

	postBlind(gs, gs.PlayerAt(sbSeat), gs.SmallBlind)
	postBlind(gs, gs.PlayerAt(bbSeat), gs.BigBlind)
	gs.CurrentBet = gs.BigBlind
	gs.LastRaiseSize = gs.BigBlind

	var firstToAct int
	if SeatedCount(gs) == 2 {
		firstToAct = sbSeat
	} else {
		firstToAct = NextOccupiedSeat(gs, bbSeat, false)
	}
	gs.CurrentPlayerIndex = firstToAct

	g.publish(EventPostBlinds, Event{})

	if IsBettingRoundComplete(gs) {
		g.enqueue(TagBettingRoundCompleted)
	} else {
		g.enqueue(TagPlayerAction)
	}
	return nil
}

// postBlind commits min(amount, stack) chips from p without going
// through ApplyAction's CALL/BET validation (blinds are forced, not a
// voluntary action).
func postBlind(gs *GameState, p *Player, amount int) {
	if p == nil {
		return
	}
	commitChips(gs, p, min(amount, p.State.Stack))
}

// firstSeatToAct scans forward from (and including) from for the next
// ACTIVE player who still owes this street an action: either they
// haven't acted yet, or a short all-in raise advanced gs.CurrentBet
// without reopening the round, leaving their own CurrentBet unmatched
// (spec.md §4.3 scenario 3). Matching IsBettingRoundComplete's own
// predicate here is required — that function, not just ActedThisStreet,
// is what decides whether the round is really done. Returns -1 if none.
func firstSeatToAct(gs *GameState, from int) int {
	n := len(gs.Players)
	for i := 0; i < n; i++ {
		idx := (from + i) % n
		p := gs.Players[idx]
		if p == nil || p.State.State != Active {
			continue
		}
		if !p.State.ActedThisStreet || p.State.CurrentBet != gs.CurrentBet {
			return idx
		}
	}
	return -1
}

func (g *Game) onPlayerAction() error {
	gs := g.state
	seat := firstSeatToAct(gs, gs.CurrentPlayerIndex)
	if seat == -1 {
		g.enqueue(TagBettingRoundCompleted)
		return nil
	}
	p := gs.PlayerAt(seat)
	gs.CurrentPlayerIndex = seat

	valid := ValidActions(gs, p)
	toCall := gs.CurrentBet - p.State.CurrentBet
	if toCall < 0 {
		toCall = 0
	}
	action := g.decide(p, valid, toCall+gs.LastRaiseSize, toCall, gs.MinBet)
	action.PlayerID = p.ID

	if err := ApplyAction(gs, p, action); err != nil {
		if g.cfg.StrictMode {
			return fmt.Errorf("game: invalid action from player %s: %w", p.ID, err)
		}
		g.logger.Warnf("game: invalid action from player %s (%v), substituting FOLD", p.ID, err)
		action = PlayerAction{PlayerID: p.ID, Type: Fold}
		if err := ApplyAction(gs, p, action); err != nil {
			return fmt.Errorf("game: fallback FOLD rejected for player %s: %w", p.ID, err)
		}
	}

	g.publish(EventPlayerActionTaken, Event{PlayerID: p.ID, Action: &action})

	if IsBettingRoundComplete(gs) {
		g.enqueue(TagBettingRoundCompleted)
	} else {
		gs.CurrentPlayerIndex = (seat + 1) % len(gs.Players)
		g.enqueue(TagPlayerAction)
	}
	return nil
}

// decide calls the player's Agent, absorbing any panic as a FOLD
// (spec.md §7 treats a buggy agent the same whether it returns an
// invalid action or blows up making one).
func (g *Game) decide(p *Player, valid []ValidAction, minRaiseIncrement, callAmount, minBetAmount int) (action PlayerAction) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Warnf("game: player %s DecideAction panicked: %v, substituting FOLD", p.ID, r)
			action = PlayerAction{PlayerID: p.ID, Type: Fold}
		}
	}()
	return p.Agent.DecideAction(g.View(), valid, minRaiseIncrement, callAmount, minBetAmount)
}

func (g *Game) onBettingRoundCompleted() error {
	g.publish(EventBettingRoundCompleted, Event{})

	inHand := 0
	for _, p := range g.state.Players {
		if p != nil && p.InHand() {
			inHand++
		}
	}
	if inHand <= 1 {
		g.enqueue(TagShowdown)
		return nil
	}

	switch g.state.Street {
	case PreFlop:
		g.enqueue(TagDealFlop)
	case Flop:
		g.enqueue(TagDealTurn)
	case Turn:
		g.enqueue(TagDealRiver)
	case River:
		g.enqueue(TagShowdown)
	default:
		return fmt.Errorf("game: betting round completed on unexpected street %s", g.state.Street)
	}
	return nil
}

func (g *Game) onDealStreet(street Street, stage GameStateType, evtType EventType, n int) error {
	gs := g.state
	if _, err := gs.Deck.Deal(); err != nil { // burn
		return fmt.Errorf("game: burning card: %w", err)
	}
	cards, err := gs.Deck.DealN(n)
	if err != nil {
		return fmt.Errorf("game: dealing %s: %w", street, err)
	}
	gs.Community = append(gs.Community, cards...)

	for _, p := range gs.Players {
		if p != nil {
			p.resetForStreet()
		}
	}
	gs.CurrentBet = 0
	gs.LastRaiseSize = 0
	gs.Street = street
	gs.Stage = stage

	firstToAct := NextOccupiedSeat(gs, gs.ButtonSeat, true)
	if firstToAct == -1 {
		firstToAct = gs.ButtonSeat
	}
	gs.CurrentPlayerIndex = firstToAct

	g.publish(evtType, Event{})
	g.enqueue(TagPlayerAction)
	return nil
}

func (g *Game) onShowdown() error {
	gs := g.state
	gs.Stage = StageShowdown
	gs.Street = ShowdownStreet

	winnings := AwardShowdown(gs.Players, gs.Community, gs.ButtonSeat)
	for seat, amount := range winnings {
		if p := gs.PlayerAt(seat); p != nil {
			p.State.Stack += amount
		}
	}
	gs.Pot = 0

	payload := map[string]any{"winnings": winnings}
	g.publish(EventShowdown, Event{Payload: payload})
	g.enqueue(TagHandEnded)
	return nil
}

func (g *Game) onHandEnded() error {
	gs := g.state

	// Eliminate busted players. ButtonSeat may now reference a seat
	// that was just vacated (if the button player busted); that's fine
	// between hands — NextOccupiedSeat only uses it as a scan origin,
	// and initButton's MoveButton call at the next HAND_STARTED finds
	// the next occupied seat regardless, restoring the seat-legality
	// invariant before any player is asked to act.
	for i, p := range gs.Players {
		if p == nil || p.State.Stack > 0 {
			continue
		}
		gs.Players[i] = nil
		p.State.Seat = -1
		g.publish(EventPlayerEliminated, Event{PlayerID: p.ID})
	}

	gs.Stage = HandComplete
	g.publish(EventHandEnded, Event{})

	if SeatedCount(gs) < g.cfg.MinPlayers || gs.HandNumber >= g.cfg.MaxHands {
		g.enqueue(TagGameEnded)
	} else {
		g.enqueue(TagHandStarted)
	}
	return nil
}

func (g *Game) onGameEnded() error {
	g.state.Stage = GameOver
	g.publish(EventGameEnded, Event{})
	return nil
}
