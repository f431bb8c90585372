package room

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ugaemi/mazechase/internal/game"
	"github.com/ugaemi/mazechase/internal/store"
	"github.com/ugaemi/mazechase/internal/ws"
)

// Manager manages all active rooms.
type Manager struct {
	rooms   map[string]*Room // code -> room
	maze    *game.Maze
	results store.ResultStore
	seed    int64
	codes   *codeGenerator
	mu      sync.RWMutex
}

// NewManager creates a room manager. Every room plays on maze and records
// finished rounds in results. A zero seed derives each room's seed from the
// clock.
func NewManager(maze *game.Maze, results store.ResultStore, seed int64) *Manager {
	return &Manager{
		rooms:   make(map[string]*Room),
		maze:    maze,
		results: results,
		seed:    seed,
		codes:   newCodeGenerator(seed),
	}
}

// CreateRoom creates a room owned by owner and returns it. The round is not
// started.
func (m *Manager) CreateRoom(owner *ws.Client, nickname string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()

	code := m.codes.Next(func(code string) bool {
		_, ok := m.rooms[code]
		return ok
	})
	seed := m.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	room := NewRoom(code, owner, nickname, m.maze, seed, m.results)
	m.rooms[code] = room

	slog.Info("room created", "code", code, "owner", owner.ID)
	return room
}

// GetRoom returns a room by its code.
func (m *Manager) GetRoom(code string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[code]
}

// RemoveRoom stops and removes a room by its code.
func (m *Manager) RemoveRoom(code string) {
	m.mu.Lock()
	room, ok := m.rooms[code]
	delete(m.rooms, code)
	m.mu.Unlock()

	if ok {
		room.Stop()
		slog.Info("room removed", "code", code)
	}
}

// RoomCount returns the number of active rooms.
func (m *Manager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// StopAll halts every room's tick loop.
func (m *Manager) StopAll() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, room := range m.rooms {
		room.Stop()
	}
}
