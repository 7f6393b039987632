package hub

import (
	"context"

	"go.uber.org/zap"

	"pigdice/internal/engine"
	"pigdice/internal/room"
)

type HubMsg interface{ isHubMsg() }

// EnsureRoom fetches the room for an id, creating it on first use. Creation
// is lazy so joining an unseen room id just works.
type EnsureRoom struct {
	ID    string
	Reply chan *room.Room
}

type GetRoom struct {
	ID    string
	Reply chan *room.Room
}

type ShutdownHub struct{}

func (EnsureRoom) isHubMsg()  {}
func (GetRoom) isHubMsg()     {}
func (ShutdownHub) isHubMsg() {}

// Hub is the process-wide room registry. Rooms are never evicted; they live
// for the process lifetime.
type Hub struct {
	inbox  chan HubMsg
	rooms  map[string]*room.Room
	target int
	dice   engine.Dice
	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func New(parent context.Context, target int, dice engine.Dice, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:  make(chan HubMsg, 64),
		rooms:  make(map[string]*room.Room),
		target: target,
		dice:   dice,
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case EnsureRoom:
				if rm := h.rooms[msg.ID]; rm != nil {
					msg.Reply <- rm
					break
				}
				rm := room.New(h.ctx, engine.NewState(h.target), h.dice,
					h.log.With(zap.String("room", msg.ID)))
				h.rooms[msg.ID] = rm
				h.log.Info("room created", zap.String("room", msg.ID))
				msg.Reply <- rm

			case GetRoom:
				msg.Reply <- h.rooms[msg.ID] // May be nil

			case ShutdownHub:
				for _, rm := range h.rooms {
					rm.Inbox() <- room.Shutdown{}
				}
				clear(h.rooms)
				h.cancel()
			}
		}
	}
}
