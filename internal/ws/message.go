package ws

import "encoding/json"

// Message is the JSON envelope for every frame in both directions.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Client -> server: lobby
const (
	TypeCreateRoom = "create_room"
	TypeJoinRoom   = "join_room"
	TypeLeaveRoom  = "leave_room"
)

// Client -> server: round control
const (
	TypeSetHeading  = "set_heading"
	TypeSwipe       = "swipe"
	TypeRestart     = "restart"
	TypeLeaderboard = "leaderboard"
)

// Server -> client
const (
	TypeRoomInfo   = "room_info"
	TypeRoundStart = "round_start"
	TypeGameState  = "game_state"
	TypeGameEvent  = "game_event"
	TypeRoundOver  = "round_over"
	TypeError      = "error"
)

// ErrorMessage is the payload of TypeError.
type ErrorMessage struct {
	Message string `json:"message"`
}

// NewErrorMessage creates a Message with an error payload.
func NewErrorMessage(msg string) Message {
	data, _ := json.Marshal(ErrorMessage{Message: msg})
	return Message{Type: TypeError, Data: data}
}

// NewMessage creates a Message with a typed payload.
func NewMessage(msgType string, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msgType, Data: data}, nil
}
