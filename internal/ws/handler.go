package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"pigdice/internal/engine"
	"pigdice/internal/hub"
	"pigdice/internal/room"
	"pigdice/internal/types"
)

func Handler(h *hub.Hub, originPatterns []string, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := r.URL.Query().Get("room")
		if roomID == "" {
			http.Error(w, "missing room", http.StatusBadRequest)
			return
		}
		seat, err := strconv.Atoi(r.URL.Query().Get("seat"))
		if err != nil {
			http.Error(w, "missing seat", http.StatusBadRequest)
			return
		}

		// First join to an unseen id creates the room.
		reply := make(chan *room.Room, 1)
		h.Inbox() <- hub.EnsureRoom{ID: roomID, Reply: reply}
		rm := <-reply

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan room.Snapshot, 8)
		clientID := uuid.NewString()

		joinErr := make(chan error, 1)
		rm.Inbox() <- room.Join{ClientID: clientID, Seat: seat, Outbox: out, Reply: joinErr}
		if err := <-joinErr; err != nil {
			// Seat failures are the one thing reported back to the caller.
			writeMsg(r.Context(), conn, types.ServerMessage{Type: "errorMsg", Error: err.Error()})
			return
		}
		defer func() { rm.Inbox() <- room.Leave{ClientID: clientID} }()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for snap := range out {
				writeMsg(writeCtx, conn, types.ServerMessage{Type: "state", Version: snap.Version, State: &snap.State})
			}
		}()

		// Reader loop. No read deadline: turns can take as long as a
		// player wants to think.
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				// Treat clean close/going-away as normal:
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				// Otherwise, just exit (room.Leave in defer):
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				log.Debug("dropping malformed frame", zap.String("client", clientID))
				continue
			}

			// Unknown action kinds pass through; the room and the state
			// machine treat them as no-ops.
			rm.Inbox() <- room.FromClient{
				ClientID: clientID,
				Action:   engine.Action{Type: engine.ActionType(cm.Type)},
			}
		}
	}
}

func writeMsg(ctx context.Context, conn *websocket.Conn, msg types.ServerMessage) {
	payload, _ := json.Marshal(msg)
	wctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	_ = conn.Write(wctx, websocket.MessageText, payload)
	cancel()
}
