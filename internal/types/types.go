// Package types holds the JSON frames exchanged over a game WebSocket.
//
// Client -> Server: action frames only. Room id and seat arrive on the
// /ws query string at join time, encoded by the shareable invite link.
//
// Server -> Client: either a full-state snapshot ("state") after every
// accepted transition, or a human-readable "errorMsg" sent only to the
// offending connection when a seat assignment fails.
package types

import "pigdice/internal/engine"

type ClientMessage struct {
	Type string `json:"type"` // "ROLL" | "HOLD" | "RESET"
}

type ServerMessage struct {
	Type    string        `json:"type"` // "state" | "errorMsg"
	Version int           `json:"version,omitempty"`
	State   *engine.State `json:"state,omitempty"`
	Error   string        `json:"error,omitempty"`
}
