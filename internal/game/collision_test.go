package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playingRound returns a round past its startup grace and spawn protection.
func playingRound(t *testing.T) *Round {
	t.Helper()
	r := NewRound(DefaultMaze(), 1)
	r.graceTicks = 0
	r.Tick = InvulnerableTicks + 10
	return r
}

func eventTypes(events []Event) []EventType {
	types := make([]EventType, 0, len(events))
	for _, e := range events {
		types = append(types, e.Type)
	}
	return types
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		x1, y1   float64
		x2, y2   float64
		expected float64
	}{
		{"same point", 0, 0, 0, 0, 0},
		{"horizontal", 0, 0, 3, 0, 3},
		{"vertical", 0, 0, 0, 4, 4},
		{"diagonal 3-4-5", 0, 0, 3, 4, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Distance(tt.x1, tt.y1, tt.x2, tt.y2)
			assert.InDelta(t, tt.expected, result, 0.001)
		})
	}
}

func TestCollectToken(t *testing.T) {
	r := playingRound(t)
	before := r.Tokens.Size()
	require.True(t, r.Tokens.Has(PlayerSpawn), "spawn cell should start with a token")

	events := r.resolveCollisions()

	assert.Equal(t, before-1, r.Tokens.Size())
	assert.False(t, r.Tokens.Has(PlayerSpawn))
	assert.Equal(t, TokenPoints, r.Score)
	assert.Equal(t, []EventType{EventCollect, EventScoreChanged}, eventTypes(events))
	assert.Equal(t, TokenPoints, events[1].Value)

	t.Run("already visited cell", func(t *testing.T) {
		events := r.resolveCollisions()
		assert.Empty(t, events)
		assert.Equal(t, before-1, r.Tokens.Size())
		assert.Equal(t, TokenPoints, r.Score)
	})
}

func TestCollectPowerZone(t *testing.T) {
	r := playingRound(t)
	zone := PowerZoneCells[0]
	r.Player.Position = zone

	events := r.resolveCollisions()

	assert.True(t, r.Power.Active)
	assert.Equal(t, PowerModeTicks, r.Power.RemainingTicks)
	assert.Equal(t, 600, r.Power.RemainingTicks)
	assert.False(t, r.PowerZones.Has(zone))
	assert.Equal(t, 3, r.PowerZones.Size())
	assert.Equal(t, []EventType{EventPowerUp, EventPowerModeChanged}, eventTypes(events))
	assert.True(t, events[1].Flag)
	assert.Equal(t, 0, r.Score, "power zones carry no token")

	t.Run("idempotent per cell", func(t *testing.T) {
		r.Power.RemainingTicks = 42
		events := r.resolveCollisions()
		assert.Empty(t, events)
		assert.Equal(t, 42, r.Power.RemainingTicks)
		assert.Equal(t, 3, r.PowerZones.Size())
	})

	t.Run("second zone refreshes without toggling", func(t *testing.T) {
		r.Player.Position = PowerZoneCells[1]
		events := r.resolveCollisions()
		assert.Equal(t, []EventType{EventPowerUp}, eventTypes(events))
		assert.Equal(t, PowerModeTicks, r.Power.RemainingTicks)
	})
}

func TestPursuerContact_LosesLifeAndResets(t *testing.T) {
	r := playingRound(t)
	r.Player.InvulnerableUntilTick = 0
	r.Player.Heading = Left
	r.Pursuers[0].Position = r.Player.Position
	r.Pursuers[1].Position = Cell{X: 1, Y: 1}
	r.Pursuers[1].Heading = Down

	tokens := r.Tokens.Size()
	zones := r.PowerZones.Size()

	events := r.resolvePursuerContacts(nil)

	assert.Equal(t, 2, r.Lives)
	assert.Equal(t, StatePlaying, r.State)
	assert.Equal(t, []EventType{EventDie, EventLivesChanged}, eventTypes(events))
	assert.Equal(t, 2, events[1].Value)

	assert.Equal(t, PlayerSpawn, r.Player.Position)
	assert.Equal(t, Zero, r.Player.Heading)
	assert.True(t, r.Player.IsInvulnerable(r.Tick), "respawned player regains protection")
	for _, p := range r.Pursuers {
		assert.Equal(t, p.Spawn(), p.Position, "pursuer %s should be back at spawn", p.Name)
	}
	assert.Equal(t, Right, r.Pursuers[0].Heading)
	assert.Equal(t, Left, r.Pursuers[1].Heading)

	assert.Equal(t, tokens, r.Tokens.Size(), "tokens are not reset on death")
	assert.Equal(t, zones, r.PowerZones.Size(), "power zones are not reset on death")
}

func TestPursuerContact_InvulnerablePlayer(t *testing.T) {
	r := NewRound(DefaultMaze(), 1)
	r.graceTicks = 0
	r.Pursuers[0].Position = r.Player.Position

	events := r.resolvePursuerContacts(nil)

	assert.Empty(t, events)
	assert.Equal(t, StartingLives, r.Lives)
}

func TestPursuerContact_LastLifeLosesRound(t *testing.T) {
	r := playingRound(t)
	r.Lives = 1
	r.Player.InvulnerableUntilTick = 0
	r.Pursuers[2].Position = r.Player.Position

	events := r.resolvePursuerContacts(nil)

	assert.Equal(t, 0, r.Lives)
	assert.Equal(t, StateLost, r.State)
	assert.Equal(t, []EventType{EventDie, EventLivesChanged, EventLose, EventRoundEnded}, eventTypes(events))
	assert.False(t, events[3].Flag)
}

func TestPursuerContact_PowerModeDefeats(t *testing.T) {
	r := playingRound(t)
	r.Power.Activate()
	r.Player.Position = Cell{X: 4, Y: 4}
	r.Pursuers[1].Position = r.Player.Position
	r.Pursuers[1].Heading = Up
	r.Pursuers[3].Position = r.Player.Position

	events := r.resolvePursuerContacts(nil)

	assert.Equal(t, 2*PursuerPoints, r.Score)
	assert.Equal(t, StartingLives, r.Lives)
	assert.Equal(t, r.Pursuers[1].Spawn(), r.Pursuers[1].Position)
	assert.Equal(t, Left, r.Pursuers[1].Heading)
	assert.Equal(t, r.Pursuers[3].Spawn(), r.Pursuers[3].Position)
	assert.Len(t, r.Pursuers, 4, "defeated pursuers stay in play")
	assert.Equal(t, []EventType{
		EventEnemyDefeated, EventScoreChanged,
		EventEnemyDefeated, EventScoreChanged,
	}, eventTypes(events))
}

func TestCheckWin(t *testing.T) {
	t.Run("last token wins", func(t *testing.T) {
		r := playingRound(t)
		for _, c := range r.Snapshot().Tokens {
			if c != PlayerSpawn {
				r.Tokens.Remove(c)
			}
		}

		events := r.resolveCollisions()

		assert.Equal(t, StateWon, r.State)
		assert.Equal(t, 0, r.Tokens.Size())
		assert.Equal(t, []EventType{EventCollect, EventScoreChanged, EventWin, EventRoundEnded}, eventTypes(events))
		assert.True(t, events[3].Flag)
	})

	t.Run("loss takes precedence", func(t *testing.T) {
		r := playingRound(t)
		for _, c := range r.Snapshot().Tokens {
			r.Tokens.Remove(c)
		}
		r.Lives = 1
		r.Player.InvulnerableUntilTick = 0
		r.Pursuers[0].Position = r.Player.Position

		events := r.resolveCollisions()

		assert.Equal(t, StateLost, r.State)
		assert.NotContains(t, eventTypes(events), EventWin)
	})
}
