package room

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"pigdice/internal/engine"
)

var ErrInvalidSeat = errors.New("invalid seat")
var ErrSeatTaken = errors.New("seat already taken")

type Msg interface{ isRoomMsg() }

type Join struct {
	ClientID string
	Seat     int
	Outbox   chan Snapshot // where this client wants to receive snapshots
	Reply    chan error    // nil on success; must be buffered
}

func (Join) isRoomMsg() {}

type Leave struct{ ClientID string }

func (Leave) isRoomMsg() {}

// FromClient carries an action from a seated client. The acting seat is
// resolved from the client id registered at join time, never from the
// payload.
type FromClient struct {
	ClientID string
	Action   engine.Action
}

func (FromClient) isRoomMsg() {}

type Shutdown struct{}

func (Shutdown) isRoomMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isRoomMsg() {}

type Snapshot struct {
	Version int
	State   engine.State
}

// View reflects internal state for tests without data races.
type View struct {
	Version     int
	NumClients  int
	Seats       [2]string
	NextStarter int
	State       engine.State
}

// Room owns one game session. All mutation happens on its loop goroutine;
// callers talk to it exclusively through the inbox.
type Room struct {
	inbox       chan Msg
	state       engine.State
	version     int
	seats       [2]string // client id per seat, "" when free
	nextStarter int
	clients     map[string]chan Snapshot
	dice        engine.Dice
	log         *zap.Logger
	ctx         context.Context
	cancel      context.CancelFunc
}

func New(parent context.Context, initial engine.State, dice engine.Dice, log *zap.Logger) *Room {
	ctx, cancel := context.WithCancel(parent)

	r := &Room{
		inbox:   make(chan Msg, 64),
		state:   initial,
		clients: make(map[string]chan Snapshot),
		dice:    dice,
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}

	go r.loop()
	return r
}

func (r *Room) Inbox() chan<- Msg { return r.inbox }

func (r *Room) loop() {
	for {
		select {
		case <-r.ctx.Done():
			r.shutdown()
			return

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Join:
				r.handleJoin(msg)

			case Leave:
				r.handleLeave(msg)

			case FromClient:
				r.handleAction(msg)

			case GetState:
				msg.Reply <- View{
					Version:     r.version,
					NumClients:  len(r.clients),
					Seats:       r.seats,
					NextStarter: r.nextStarter,
					State:       r.state,
				}

			case Shutdown:
				r.shutdown()
				return
			}
		}
	}
}

func (r *Room) handleJoin(msg Join) {
	if msg.Seat != 0 && msg.Seat != 1 {
		msg.Reply <- ErrInvalidSeat
		return
	}
	if held := r.seats[msg.Seat]; held != "" && held != msg.ClientID {
		msg.Reply <- ErrSeatTaken
		return
	}

	// Re-joining one's own seat is a no-op assignment, so reconnects
	// never duplicate a seat.
	r.seats[msg.Seat] = msg.ClientID
	r.clients[msg.ClientID] = msg.Outbox
	msg.Reply <- nil
	r.log.Info("seat joined", zap.Int("seat", msg.Seat), zap.String("client", msg.ClientID))

	if r.bothSeatsTaken() && r.state.Phase == engine.PhaseLobby {
		r.apply(engine.Action{Type: engine.ActReset, Starter: r.nextStarter})
	}
	r.broadcast()
}

func (r *Room) handleLeave(msg Leave) {
	if ch, ok := r.clients[msg.ClientID]; ok {
		// The room is the channel's only sender, so the departing
		// client's writer can be told no more snapshots are coming.
		close(ch)
		delete(r.clients, msg.ClientID)
	}

	released := false
	for seat, held := range r.seats {
		if held == msg.ClientID {
			r.seats[seat] = ""
			released = true
		}
	}
	if !released {
		return
	}

	// Any departure pauses the match until both seats refill. Scores
	// survive; unbanked points do not.
	next := r.state
	next.Phase = engine.PhaseLobby
	next.TurnPoints = 0
	r.state = next
	r.version++
	r.log.Info("seat released", zap.String("client", msg.ClientID))
	r.broadcast()
}

func (r *Room) handleAction(msg FromClient) {
	seat, seated := r.seatOf(msg.ClientID)
	if !seated {
		return
	}

	// Either player may request a new game, whatever the phase or turn.
	if msg.Action.Type == engine.ActReset {
		if r.bothSeatsTaken() {
			r.nextStarter = 1 - r.nextStarter
			r.apply(engine.Action{Type: engine.ActReset, Starter: r.nextStarter})
		} else {
			// Never start a game only one player can play.
			next := engine.NewState(r.state.Target)
			next.Players = r.state.Players
			r.state = next
			r.version++
		}
		r.broadcast()
		return
	}

	// Stale or unauthorized actions are dropped without a broadcast;
	// clients send speculatively and expect no noise back.
	if r.state.Phase != engine.PhasePlaying || seat != r.state.CurrentTurn {
		return
	}

	events, next := engine.Apply(r.state, msg.Action, r.dice)
	if len(events) == 0 {
		// Unrecognized action kind.
		return
	}
	r.state = next
	r.version++
	r.logEvents(events)
	r.broadcast()
}

// apply runs an always-legal transition and records it.
func (r *Room) apply(act engine.Action) {
	events, next := engine.Apply(r.state, act, r.dice)
	r.state = next
	r.version++
	r.logEvents(events)
}

func (r *Room) seatOf(clientID string) (int, bool) {
	for seat, held := range r.seats {
		if held != "" && held == clientID {
			return seat, true
		}
	}
	return 0, false
}

func (r *Room) bothSeatsTaken() bool {
	return r.seats[0] != "" && r.seats[1] != ""
}

func (r *Room) logEvents(events []engine.Event) {
	for _, ev := range events {
		r.log.Debug("event",
			zap.String("type", string(ev.Type)),
			zap.Int("seat", ev.Seat),
			zap.Int("value", ev.Value),
		)
	}
}

func (r *Room) broadcast() {
	snap := Snapshot{Version: r.version, State: r.state}
	for id, ch := range r.clients {
		select {
		case ch <- snap:
			// ok
		default:
			// Client is slow/full - drop them rather than block the room.
			close(ch)
			delete(r.clients, id)
		}
	}
}

func (r *Room) shutdown() {
	for id, ch := range r.clients {
		close(ch) // Tell client no more snapshots
		delete(r.clients, id)
	}
	r.cancel()
}
