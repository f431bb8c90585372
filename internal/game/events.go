package game

// EventType names a core notification. The first six are the audio signals.
type EventType string

const (
	EventCollect       EventType = "collect"
	EventPowerUp       EventType = "powerup"
	EventEnemyDefeated EventType = "enemy-defeated"
	EventDie           EventType = "die"
	EventWin           EventType = "win"
	EventLose          EventType = "lose"

	EventScoreChanged     EventType = "score_changed"
	EventLivesChanged     EventType = "lives_changed"
	EventPowerModeChanged EventType = "power_mode_changed"
	EventRoundEnded       EventType = "round_ended"
)

// IsSignal reports whether the event is a discrete audio cue.
func (t EventType) IsSignal() bool {
	switch t {
	case EventCollect, EventPowerUp, EventEnemyDefeated, EventDie, EventWin, EventLose:
		return true
	default:
		return false
	}
}

// Event is emitted by Round.Step. Value carries score or lives; Flag carries
// the power mode state or, for round_ended, whether the round was won.
type Event struct {
	Type  EventType `json:"type"`
	Value int       `json:"value,omitempty"`
	Flag  bool      `json:"flag,omitempty"`
}

// Listener consumes core events. Implementations must not mutate the round and
// are free to drop events.
type Listener interface {
	HandleEvent(e Event)
}

// Dispatch forwards events to every listener in order.
func Dispatch(events []Event, listeners ...Listener) {
	for _, e := range events {
		for _, l := range listeners {
			if l != nil {
				l.HandleEvent(e)
			}
		}
	}
}
