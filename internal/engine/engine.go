package engine

type Phase string

const (
	PhaseLobby   Phase = "LOBBY"
	PhasePlaying Phase = "PLAYING"
	PhaseWin     Phase = "WIN"
)

type ActionType string

const (
	ActRoll  ActionType = "ROLL"
	ActHold  ActionType = "HOLD"
	ActReset ActionType = "RESET"
)

type Action struct {
	Type    ActionType
	Starter int // RESET only: seat that takes the first turn
}

type Player struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// State is the full per-room game state. It is replaced wholesale on every
// accepted transition, never mutated in place.
type State struct {
	Players     [2]Player `json:"players"`
	CurrentTurn int       `json:"current_turn"`
	TurnPoints  int       `json:"turnPoints"`
	Target      int       `json:"target"`
	LastRoll    int       `json:"lastRoll"`
	Phase       Phase     `json:"phase"`
}

type EventType string

const (
	EvtRolled     EventType = "Rolled"
	EvtBusted     EventType = "Busted"
	EvtHeld       EventType = "Held"
	EvtTurnPassed EventType = "TurnPassed"
	EvtGameWon    EventType = "GameWon"
	EvtGameReset  EventType = "GameReset"
)

type Event struct {
	Type  EventType
	Seat  int
	Value int
}

// Apply is the state transition function. It is total: an action that is not
// legal in the current phase, or whose kind is unrecognized, returns the
// state unchanged with no events. Dice is the only source of nondeterminism.
func Apply(s State, act Action, dice Dice) ([]Event, State) {
	if s.Phase != PhasePlaying && act.Type != ActReset {
		return nil, s
	}

	other := 1 - s.CurrentTurn

	switch act.Type {
	case ActReset:
		// Names and target survive a reset; scores do not.
		next := NewState(s.Target)
		next.Players[0].Name = s.Players[0].Name
		next.Players[1].Name = s.Players[1].Name
		next.CurrentTurn = act.Starter
		next.Phase = PhasePlaying
		return []Event{{Type: EvtGameReset, Seat: act.Starter}}, next

	case ActRoll:
		roll := dice.Roll()
		next := s
		next.LastRoll = roll
		if roll == 1 {
			next.TurnPoints = 0
			next.CurrentTurn = other
			return []Event{
				{Type: EvtBusted, Seat: s.CurrentTurn},
				{Type: EvtTurnPassed, Seat: other},
			}, next
		}
		next.TurnPoints = s.TurnPoints + roll
		return []Event{{Type: EvtRolled, Seat: s.CurrentTurn, Value: roll}}, next

	case ActHold:
		cur := s.CurrentTurn
		next := s
		next.Players[cur].Score = s.Players[cur].Score + s.TurnPoints
		next.TurnPoints = 0
		events := []Event{{Type: EvtHeld, Seat: cur, Value: next.Players[cur].Score}}
		if next.Players[cur].Score >= s.Target {
			// Turn stays on the winner so observers can identify them.
			next.Phase = PhaseWin
			return append(events, Event{Type: EvtGameWon, Seat: cur}), next
		}
		next.CurrentTurn = other
		return append(events, Event{Type: EvtTurnPassed, Seat: other}), next

	default:
		return nil, s
	}
}
