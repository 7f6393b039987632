package engine

const DefaultTarget = 50

// NewState returns a fresh lobby state for a room with the given winning
// target. Player names default until clients rename them.
func NewState(target int) State {
	return State{
		Players:  [2]Player{{Name: "P1"}, {Name: "P2"}},
		Target:   target,
		LastRoll: 1,
		Phase:    PhaseLobby,
	}
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}
