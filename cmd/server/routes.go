package main

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"

	"github.com/ugaemi/mazechase/internal/handler"
	"github.com/ugaemi/mazechase/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Server owns the HTTP routes.
type Server struct {
	router      *way.Router
	hub         *ws.Hub
	leaderboard *handler.LeaderboardHandler
}

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", "/health", handleHealth)
	s.router.HandleFunc("GET", "/ws", s.handleWebSocket)
	s.router.Handle("GET", "/leaderboard", s.leaderboard)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	client := ws.NewClient(s.hub, conn)
	s.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
