package handler

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/ugaemi/mazechase/internal/game"
	"github.com/ugaemi/mazechase/internal/input"
	"github.com/ugaemi/mazechase/internal/room"
	"github.com/ugaemi/mazechase/internal/ws"
)

// GameplayHandler handles steering and round control.
type GameplayHandler struct {
	router *Router
}

// NewGameplayHandler creates a new gameplay handler.
func NewGameplayHandler(router *Router) *GameplayHandler {
	return &GameplayHandler{router: router}
}

type setHeadingRequest struct {
	Direction string `json:"direction"` // up, down, left, right
}

// HandleSetHeading steers the player.
func (h *GameplayHandler) HandleSetHeading(client *ws.Client, msg ws.Message) {
	var req setHeadingRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid heading data"))
		return
	}
	v, ok := game.ParseDirection(req.Direction)
	if !ok {
		client.SendMessage(ws.NewErrorMessage("invalid direction: " + req.Direction))
		return
	}
	h.steer(client, v)
}

type swipeRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// HandleSwipe steers the player from a touch gesture. Taps are ignored.
func (h *GameplayHandler) HandleSwipe(client *ws.Client, msg ws.Message) {
	var req swipeRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid swipe data"))
		return
	}
	v, ok := input.FromSwipe(req.DX, req.DY)
	if !ok {
		return
	}
	h.steer(client, v)
}

func (h *GameplayHandler) steer(client *ws.Client, v game.Vector) {
	r := h.router.RoomFor(client.ID)
	if r == nil {
		client.SendMessage(ws.NewErrorMessage("not in a room"))
		return
	}
	if err := r.SetHeading(client.ID, v); err != nil {
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		return
	}
	slog.Debug("heading set", "client", client.ID, "room", r.Code, "heading", v.String())
}

// HandleRestart starts a new round after the previous one ended.
func (h *GameplayHandler) HandleRestart(client *ws.Client, _ ws.Message) {
	r := h.router.RoomFor(client.ID)
	if r == nil {
		client.SendMessage(ws.NewErrorMessage("not in a room"))
		return
	}
	if err := r.Restart(client.ID); err != nil {
		if !errors.Is(err, room.ErrNotOwner) && !errors.Is(err, room.ErrRoundInProgress) {
			slog.Error("restart failed", "room", r.Code, "error", err)
		}
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		return
	}
	slog.Info("round restarted", "room", r.Code)
}
