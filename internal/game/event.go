package game

// EventType is a closed tagged union of observation events emitted to
// subscribers and player hooks. These are distinct from the engine's
// internal transition tags (see tag.go): events are immutable
// snapshots handed to the outside world, never consumed to drive
// further state transitions.
type EventType int

const (
	EventGameStarted EventType = iota
	EventHandStarted
	EventDealHoleCards
	EventPostBlinds
	EventPlayerActionTaken
	EventDealFlop
	EventDealTurn
	EventDealRiver
	EventBettingRoundCompleted
	EventShowdown
	EventHandEnded
	EventGameEnded
	EventPlayerJoined
	EventPlayerLeft
	EventPlayerEliminated
)

func (t EventType) String() string {
	switch t {
	case EventGameStarted:
		return "GAME_STARTED"
	case EventHandStarted:
		return "HAND_STARTED"
	case EventDealHoleCards:
		return "DEAL_HOLE_CARDS"
	case EventPostBlinds:
		return "POST_BLINDS"
	case EventPlayerActionTaken:
		return "PLAYER_ACTION_TAKEN"
	case EventDealFlop:
		return "DEAL_FLOP"
	case EventDealTurn:
		return "DEAL_TURN"
	case EventDealRiver:
		return "DEAL_RIVER"
	case EventBettingRoundCompleted:
		return "BETTING_ROUND_COMPLETED"
	case EventShowdown:
		return "SHOWDOWN"
	case EventHandEnded:
		return "HAND_ENDED"
	case EventGameEnded:
		return "GAME_ENDED"
	case EventPlayerJoined:
		return "PLAYER_JOINED"
	case EventPlayerLeft:
		return "PLAYER_LEFT"
	case EventPlayerEliminated:
		return "PLAYER_ELIMINATED"
	default:
		return "UNKNOWN"
	}
}

// Event is an immutable observation handed to subscribers and to
// player OnEvent hooks. Handlers that need to track state across
// events must keep their own copy; the engine never mutates an Event
// after publishing it.
type Event struct {
	ID         string
	Type       EventType
	HandNumber int
	Street     Street
	PlayerID   string // optional, "" if not applicable
	Action     *PlayerAction
	Pot        int
	CurrentBet int
	Payload    map[string]any
}

// EventHandler receives published events.
type EventHandler func(Event)

// SubscriptionToken identifies a registered handler for Unsubscribe.
type SubscriptionToken int

type subscription struct {
	token   SubscriptionToken
	evtType EventType
	handler EventHandler
}

// EventBus delivers events to handlers registered for a given
// EventType, in registration order, absorbing and logging any panic a
// handler raises so one misbehaving subscriber never aborts dispatch.
type EventBus struct {
	subs   []subscription
	nextID SubscriptionToken
	onPanic func(evtType EventType, r any)
}

// NewEventBus constructs an EventBus. onPanic, if non-nil, is called
// with any value recovered from a handler panic (for logging); a nil
// onPanic silently absorbs them.
func NewEventBus(onPanic func(EventType, any)) *EventBus {
	return &EventBus{onPanic: onPanic}
}

// Subscribe registers handler for evtType and returns a token that can
// later be passed to Unsubscribe.
func (b *EventBus) Subscribe(evtType EventType, handler EventHandler) SubscriptionToken {
	b.nextID++
	tok := b.nextID
	b.subs = append(b.subs, subscription{token: tok, evtType: evtType, handler: handler})
	return tok
}

// Unsubscribe removes a previously registered handler. It is a no-op
// if the token is unknown (already unsubscribed, or never valid).
func (b *EventBus) Unsubscribe(tok SubscriptionToken) {
	for i, s := range b.subs {
		if s.token == tok {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers evt to every handler registered for evt.Type, in
// registration order. A handler panic is recovered, reported via
// onPanic, and does not prevent remaining handlers from running.
func (b *EventBus) Publish(evt Event) {
	for _, s := range b.subs {
		if s.evtType != evt.Type {
			continue
		}
		b.dispatch(s, evt)
	}
}

func (b *EventBus) dispatch(s subscription, evt Event) {
	defer func() {
		if r := recover(); r != nil && b.onPanic != nil {
			b.onPanic(evt.Type, r)
		}
	}()
	s.handler(evt)
}
