package handler

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/ugaemi/mazechase/internal/room"
	"github.com/ugaemi/mazechase/internal/ws"
)

// LobbyHandler handles room creation and membership.
type LobbyHandler struct {
	rm     *room.Manager
	router *Router
}

// NewLobbyHandler creates a new lobby handler.
func NewLobbyHandler(rm *room.Manager, router *Router) *LobbyHandler {
	return &LobbyHandler{
		rm:     rm,
		router: router,
	}
}

type createRoomRequest struct {
	Nickname string `json:"nickname"`
}

// HandleCreateRoom creates a room owned by the client and starts its round.
func (h *LobbyHandler) HandleCreateRoom(client *ws.Client, msg ws.Message) {
	var req createRoomRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || strings.TrimSpace(req.Nickname) == "" {
		client.SendMessage(ws.NewErrorMessage("nickname is required"))
		return
	}
	if h.router.RoomFor(client.ID) != nil {
		client.SendMessage(ws.NewErrorMessage("already in a room"))
		return
	}

	r := h.rm.CreateRoom(client, req.Nickname)
	h.router.RegisterClient(client.ID, r.Code)

	info, _ := ws.NewMessage(ws.TypeRoomInfo, r.Info())
	client.SendMessage(info)
	r.StartRound()

	slog.Info("client created room", "client", client.ID, "nickname", r.Nickname, "room", r.Code)
}

type joinRoomRequest struct {
	Code string `json:"code"`
}

// HandleJoinRoom adds the client to an existing room as a spectator.
func (h *LobbyHandler) HandleJoinRoom(client *ws.Client, msg ws.Message) {
	var req joinRoomRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Code == "" {
		client.SendMessage(ws.NewErrorMessage("code is required"))
		return
	}
	if h.router.RoomFor(client.ID) != nil {
		client.SendMessage(ws.NewErrorMessage("already in a room"))
		return
	}

	r := h.rm.GetRoom(strings.ToUpper(strings.TrimSpace(req.Code)))
	if r == nil {
		client.SendMessage(ws.NewErrorMessage("room not found"))
		return
	}

	if err := r.AddSpectator(client); err != nil {
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		return
	}
	h.router.RegisterClient(client.ID, r.Code)

	start, _ := ws.NewMessage(ws.TypeRoundStart, r.RoundStart())
	r.SendToClient(client.ID, start)
	h.broadcastRoomInfo(r)

	slog.Info("spectator joined room", "client", client.ID, "room", r.Code)
}

// HandleLeaveRoom handles a client leaving its room.
func (h *LobbyHandler) HandleLeaveRoom(client *ws.Client, _ ws.Message) {
	h.removeClient(client)
}

// HandleDisconnect handles client disconnection.
func (h *LobbyHandler) HandleDisconnect(client *ws.Client) {
	h.removeClient(client)
}

// removeClient takes the client out of its room. When the owner leaves the
// round is over for everyone and the room closes.
func (h *LobbyHandler) removeClient(client *ws.Client) {
	r := h.router.RoomFor(client.ID)
	h.router.UnregisterClient(client.ID)
	if r == nil {
		return
	}

	if r.RemoveClient(client.ID) {
		r.BroadcastMessage(ws.NewErrorMessage("room closed: owner left"))
		h.rm.RemoveRoom(r.Code)
		slog.Info("owner left, room closed", "client", client.ID, "room", r.Code)
		return
	}

	h.broadcastRoomInfo(r)
	slog.Info("spectator left", "client", client.ID, "room", r.Code)
}

func (h *LobbyHandler) broadcastRoomInfo(r *room.Room) {
	resp, _ := ws.NewMessage(ws.TypeRoomInfo, r.Info())
	r.BroadcastMessage(resp)
}
