package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ugaemi/mazechase/internal/record"
	"github.com/ugaemi/mazechase/internal/store"
	"github.com/ugaemi/mazechase/internal/ws"
)

const (
	maxLeaderboardSize = 100
	queryTimeout       = 5 * time.Second
)

// LeaderboardHandler serves the best finished rounds over websocket and HTTP.
type LeaderboardHandler struct {
	results     store.ResultStore
	defaultSize int
}

// NewLeaderboardHandler creates a leaderboard handler. size is the number of
// results returned when a request does not ask for a limit.
func NewLeaderboardHandler(results store.ResultStore, size int) *LeaderboardHandler {
	return &LeaderboardHandler{
		results:     results,
		defaultSize: clampLimit(size, 10),
	}
}

type leaderboardRequest struct {
	Limit int `json:"limit"`
}

// LeaderboardResponse is the leaderboard payload.
type LeaderboardResponse struct {
	Results []*record.Result `json:"results"`
}

// HandleLeaderboard answers a leaderboard message.
func (h *LeaderboardHandler) HandleLeaderboard(client *ws.Client, msg ws.Message) {
	var req leaderboardRequest
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			client.SendMessage(ws.NewErrorMessage("invalid leaderboard request"))
			return
		}
	}

	results, err := h.top(context.Background(), req.Limit)
	if err != nil {
		slog.Error("leaderboard query failed", "client", client.ID, "error", err)
		client.SendMessage(ws.NewErrorMessage("leaderboard unavailable"))
		return
	}

	resp, _ := ws.NewMessage(ws.TypeLeaderboard, LeaderboardResponse{Results: results})
	client.SendMessage(resp)
}

// ServeHTTP answers GET /leaderboard?limit=N.
func (h *LeaderboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "limit must be an integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	results, err := h.top(r.Context(), limit)
	if err != nil {
		slog.Error("leaderboard query failed", "error", err)
		http.Error(w, "leaderboard unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(LeaderboardResponse{Results: results}); err != nil {
		slog.Debug("leaderboard response write failed", "error", err)
	}
}

func (h *LeaderboardHandler) top(ctx context.Context, limit int) ([]*record.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return h.results.Top(ctx, clampLimit(limit, h.defaultSize))
}

// clampLimit maps non-positive limits to fallback and caps the rest.
func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		limit = fallback
	}
	return min(limit, maxLeaderboardSize)
}
