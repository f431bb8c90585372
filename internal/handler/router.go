package handler

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/ugaemi/mazechase/internal/room"
	"github.com/ugaemi/mazechase/internal/store"
	"github.com/ugaemi/mazechase/internal/ws"
)

// Router dispatches incoming messages to the appropriate handler.
type Router struct {
	lobby       *LobbyHandler
	gameplay    *GameplayHandler
	leaderboard *LeaderboardHandler

	rm *room.Manager

	// roomMap tracks client ID -> room code, shared across handlers.
	roomMap map[string]string
	mu      sync.RWMutex
}

// NewRouter creates a new message router.
func NewRouter(rm *room.Manager, results store.ResultStore, leaderboardSize int) *Router {
	r := &Router{
		rm:      rm,
		roomMap: make(map[string]string),
	}
	r.lobby = NewLobbyHandler(rm, r)
	r.gameplay = NewGameplayHandler(r)
	r.leaderboard = NewLeaderboardHandler(results, leaderboardSize)
	return r
}

// Leaderboard returns the leaderboard handler, which also serves HTTP.
func (r *Router) Leaderboard() *LeaderboardHandler {
	return r.leaderboard
}

// RegisterClient maps a client ID to a room code.
func (r *Router) RegisterClient(clientID, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roomMap[clientID] = code
}

// UnregisterClient removes a client's room mapping.
func (r *Router) UnregisterClient(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.roomMap, clientID)
}

// GetRoomCode returns the room code for a client, or empty string if not found.
func (r *Router) GetRoomCode(clientID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.roomMap[clientID]
}

// RoomFor returns the live room a client belongs to. Stale mappings to rooms
// that were closed are dropped.
func (r *Router) RoomFor(clientID string) *room.Room {
	code := r.GetRoomCode(clientID)
	if code == "" {
		return nil
	}
	rm := r.rm.GetRoom(code)
	if rm == nil || !rm.HasClient(clientID) {
		r.UnregisterClient(clientID)
		return nil
	}
	return rm
}

// HandleMessage parses and routes an incoming client message.
func (r *Router) HandleMessage(cm *ws.ClientMessage) {
	var msg ws.Message
	if err := json.Unmarshal(cm.Data, &msg); err != nil {
		slog.Warn("invalid message format", "client", cm.Client.ID, "error", err)
		cm.Client.SendMessage(ws.NewErrorMessage("invalid message format"))
		return
	}

	switch msg.Type {
	// Lobby messages
	case ws.TypeCreateRoom:
		r.lobby.HandleCreateRoom(cm.Client, msg)
	case ws.TypeJoinRoom:
		r.lobby.HandleJoinRoom(cm.Client, msg)
	case ws.TypeLeaveRoom:
		r.lobby.HandleLeaveRoom(cm.Client, msg)

	// Round control
	case ws.TypeSetHeading:
		r.gameplay.HandleSetHeading(cm.Client, msg)
	case ws.TypeSwipe:
		r.gameplay.HandleSwipe(cm.Client, msg)
	case ws.TypeRestart:
		r.gameplay.HandleRestart(cm.Client, msg)

	case ws.TypeLeaderboard:
		r.leaderboard.HandleLeaderboard(cm.Client, msg)

	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", cm.Client.ID)
		cm.Client.SendMessage(ws.NewErrorMessage("unknown message type: " + msg.Type))
	}
}

// HandleDisconnect handles client disconnection.
func (r *Router) HandleDisconnect(client *ws.Client) {
	r.lobby.HandleDisconnect(client)
}
