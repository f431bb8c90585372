// Package record holds finished-round results.
package record

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxNicknameLength is the longest nickname kept, in runes.
	MaxNicknameLength = 16
	// DefaultNickname replaces blank nicknames.
	DefaultNickname = "player"
)

// Result is one finished round.
type Result struct {
	ID         string    `json:"id"`
	Nickname   string    `json:"nickname"`
	Score      int       `json:"score"`
	Won        bool      `json:"won"`
	Ticks      int       `json:"ticks"`
	FinishedAt time.Time `json:"finished_at"`
}

// NewResult creates a result stamped with a new ID and the current time.
func NewResult(nickname string, score int, won bool, ticks int) *Result {
	return &Result{
		ID:         uuid.New().String(),
		Nickname:   NormalizeNickname(nickname),
		Score:      score,
		Won:        won,
		Ticks:      ticks,
		FinishedAt: time.Now().UTC(),
	}
}

// NormalizeNickname trims whitespace, truncates to MaxNicknameLength runes and
// falls back to DefaultNickname when nothing is left.
func NormalizeNickname(nickname string) string {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return DefaultNickname
	}
	if r := []rune(nickname); len(r) > MaxNicknameLength {
		nickname = strings.TrimSpace(string(r[:MaxNicknameLength]))
	}
	return nickname
}

// Less orders results for a leaderboard: higher score first, then wins, then
// fewer ticks, then earlier finish.
func Less(a, b *Result) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Won != b.Won {
		return a.Won
	}
	if a.Ticks != b.Ticks {
		return a.Ticks < b.Ticks
	}
	return a.FinishedAt.Before(b.FinishedAt)
}
