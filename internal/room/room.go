package room

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ugaemi/mazechase/internal/game"
	"github.com/ugaemi/mazechase/internal/record"
	"github.com/ugaemi/mazechase/internal/store"
	"github.com/ugaemi/mazechase/internal/ws"
)

// MaxSpectators is the number of watchers a room accepts besides its owner.
const MaxSpectators = 8

const saveTimeout = 5 * time.Second

var (
	ErrNotOwner        = errors.New("only the room owner can do that")
	ErrRoundInProgress = errors.New("round still in progress")
	ErrRoomFull        = errors.New("room is full")
)

// Room hosts one single-player round. The owner steers; spectators only
// receive the broadcast state.
type Room struct {
	Code     string `json:"code"`
	OwnerID  string `json:"owner_id"`
	Nickname string `json:"nickname"`

	// Client mapping: client ID -> ws client, owner included
	clients map[string]*ws.Client

	round   *game.Round
	results store.ResultStore

	// Tick loop control
	stopCh   chan struct{}
	running  bool
	interval time.Duration

	mu sync.RWMutex
}

// NewRoom creates a room whose round runs on maze. results may be nil.
func NewRoom(code string, owner *ws.Client, nickname string, maze *game.Maze, seed int64, results store.ResultStore) *Room {
	return &Room{
		Code:     code,
		OwnerID:  owner.ID,
		Nickname: record.NormalizeNickname(nickname),
		clients:  map[string]*ws.Client{owner.ID: owner},
		round:    game.NewRound(maze, seed),
		results:  results,
		interval: game.TickInterval,
	}
}

// AddSpectator lets a client watch the round.
func (r *Room) AddSpectator(client *ws.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.clients) > MaxSpectators {
		return ErrRoomFull
	}
	r.clients[client.ID] = client
	return nil
}

// RemoveClient drops a client and reports whether it was the owner.
func (r *Room) RemoveClient(clientID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.clients, clientID)
	return clientID == r.OwnerID
}

// HasClient reports whether the client is in the room.
func (r *Room) HasClient(clientID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.clients[clientID]
	return ok
}

// IsOwner reports whether clientID owns the room.
func (r *Room) IsOwner(clientID string) bool {
	return clientID == r.OwnerID
}

// ClientCount returns the number of connected clients, owner included.
func (r *Room) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// IsRunning reports whether the tick loop is active.
func (r *Room) IsRunning() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.running
}

// BroadcastMessage sends a message to every client in the room.
func (r *Room) BroadcastMessage(msg ws.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, client := range r.clients {
		client.SendMessage(msg)
	}
}

// SendToClient sends a message to one client.
func (r *Room) SendToClient(clientID string, msg ws.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if client, ok := r.clients[clientID]; ok {
		client.SendMessage(msg)
	}
}

// Info describes the room for room_info messages.
func (r *Room) Info() InfoMessage {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return InfoMessage{
		Code:       r.Code,
		OwnerID:    r.OwnerID,
		Nickname:   r.Nickname,
		Spectators: len(r.clients) - 1,
		Running:    r.running,
	}
}

// Snapshot returns a copy of the current round state.
func (r *Room) Snapshot() game.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.round.Snapshot()
}

// RoundStart describes the current round for a client that joins mid-round.
func (r *Room) RoundStart() RoundStartMessage {
	return newRoundStartMessage(r.Snapshot())
}

// SetHeading forwards the owner's requested heading to the round.
func (r *Room) SetHeading(clientID string, v game.Vector) error {
	if !r.IsOwner(clientID) {
		return ErrNotOwner
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.round.SetPlayerHeading(v)
}

// StartRound resets the round, broadcasts round_start and starts ticking.
func (r *Room) StartRound() {
	r.mu.Lock()
	r.stopLocked()
	r.round.Init()
	r.stopCh = make(chan struct{})
	r.running = true
	stop := r.stopCh
	snap := r.round.Snapshot()
	r.mu.Unlock()

	msg, _ := ws.NewMessage(ws.TypeRoundStart, newRoundStartMessage(snap))
	r.BroadcastMessage(msg)

	slog.Info("round started", "room", r.Code, "nickname", r.Nickname)
	go r.loop(stop)
}

// Restart starts a new round once the previous one has ended.
func (r *Room) Restart(clientID string) error {
	if !r.IsOwner(clientID) {
		return ErrNotOwner
	}
	if r.IsRunning() {
		return ErrRoundInProgress
	}
	r.StartRound()
	return nil
}

// Stop halts the tick loop without recording a result.
func (r *Room) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

// stopLocked closes stopCh once. Caller must hold r.mu.
func (r *Room) stopLocked() {
	if !r.running {
		return
	}
	r.running = false
	select {
	case <-r.stopCh:
	default:
		close(r.stopCh)
	}
}

// loop drives tick at the room interval until stop closes or the round ends.
func (r *Room) loop(stop chan struct{}) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if done := r.tick(stop); done {
				return
			}
		}
	}
}

// tick advances the round once and broadcasts the outcome. It returns true
// when the loop must stop.
func (r *Room) tick(stop chan struct{}) bool {
	r.mu.Lock()
	select {
	case <-stop:
		r.mu.Unlock()
		return true
	default:
	}
	events, err := r.round.Step()
	if err != nil {
		r.stopLocked()
		tick := r.round.Tick
		r.mu.Unlock()

		slog.Error("round aborted", "room", r.Code, "tick", tick, "error", err)
		r.BroadcastMessage(ws.NewErrorMessage("round aborted: " + err.Error()))
		return true
	}
	snap := r.round.Snapshot()
	ended := snap.State.IsTerminal()
	if ended {
		r.stopLocked()
	}
	r.mu.Unlock()

	for _, e := range events {
		msg, _ := ws.NewMessage(ws.TypeGameEvent, GameEventMessage{Event: e})
		r.BroadcastMessage(msg)
	}
	msg, _ := ws.NewMessage(ws.TypeGameState, GameStateMessage{Snapshot: snap})
	r.BroadcastMessage(msg)

	if ended {
		r.finish(snap)
	}
	return ended
}

// finish announces the result and records it. Store failures are logged only.
func (r *Room) finish(snap game.Snapshot) {
	won := snap.State == game.StateWon
	msg, _ := ws.NewMessage(ws.TypeRoundOver, RoundOverMessage{
		Won:   won,
		Score: snap.Score,
		Ticks: snap.Tick,
	})
	r.BroadcastMessage(msg)
	slog.Info("round ended", "room", r.Code, "won", won, "score", snap.Score, "ticks", snap.Tick)

	if r.results == nil {
		return
	}
	result := record.NewResult(r.Nickname, snap.Score, won, snap.Tick)
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := r.results.Save(ctx, result); err != nil {
		slog.Error("failed to save result", "room", r.Code, "error", err)
	}
}

// InfoMessage is the room_info payload.
type InfoMessage struct {
	Code       string `json:"code"`
	OwnerID    string `json:"owner_id"`
	Nickname   string `json:"nickname"`
	Spectators int    `json:"spectators"`
	Running    bool   `json:"running"`
}

// RoundStartMessage is the round_start payload. Maze uses one character per
// cell: '#' wall, '.' open, '=' pen.
type RoundStartMessage struct {
	Maze     string        `json:"maze"`
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Snapshot game.Snapshot `json:"snapshot"`
}

func newRoundStartMessage(snap game.Snapshot) RoundStartMessage {
	return RoundStartMessage{
		Maze:     snap.Maze.String(),
		Width:    snap.Maze.Width(),
		Height:   snap.Maze.Height(),
		Snapshot: snap,
	}
}

// GameStateMessage is the per-tick game_state payload.
type GameStateMessage struct {
	Snapshot game.Snapshot `json:"snapshot"`
}

// GameEventMessage carries one core event.
type GameEventMessage struct {
	Event game.Event `json:"event"`
}

// RoundOverMessage is the round_over payload.
type RoundOverMessage struct {
	Won   bool `json:"won"`
	Score int  `json:"score"`
	Ticks int  `json:"ticks"`
}
