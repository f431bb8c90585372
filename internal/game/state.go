package game

import "encoding/json"

type RoundState int

const (
	StatePlaying RoundState = iota
	StateWon
	StateLost
)

func (s RoundState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes RoundState as a string.
func (s RoundState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON deserializes RoundState from a string.
func (s *RoundState) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "won":
		*s = StateWon
	case "lost":
		*s = StateLost
	default:
		*s = StatePlaying
	}
	return nil
}

// IsTerminal reports whether the round has ended.
func (s RoundState) IsTerminal() bool {
	return s == StateWon || s == StateLost
}

// PowerMode is the temporary state in which pursuers scatter and can be defeated.
type PowerMode struct {
	Active         bool `json:"active"`
	RemainingTicks int  `json:"remaining_ticks"`
}

// Activate (re)starts the countdown at PowerModeTicks.
func (p *PowerMode) Activate() {
	p.Active = true
	p.RemainingTicks = PowerModeTicks
}

// Decay counts down one tick and reports whether power mode just ended.
func (p *PowerMode) Decay() bool {
	if !p.Active {
		return false
	}
	p.RemainingTicks--
	if p.RemainingTicks <= 0 {
		p.Active = false
		p.RemainingTicks = 0
		return true
	}
	return false
}
