package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-moonstrike/pkg/entity"
	"github.com/opd-ai/go-moonstrike/pkg/physics"
)

type frameRecorder struct {
	calls  []string
	status entity.Status
}

func (r *frameRecorder) RenderAircraft(*entity.Aircraft)     { r.calls = append(r.calls, "aircraft") }
func (r *frameRecorder) RenderDrone(*entity.Drone)           { r.calls = append(r.calls, "drone") }
func (r *frameRecorder) RenderMissile(*entity.Missile)       { r.calls = append(r.calls, "missile") }
func (r *frameRecorder) RenderCheckpoint(*entity.Checkpoint) { r.calls = append(r.calls, "checkpoint") }
func (r *frameRecorder) RenderAsteroid(*entity.Asteroid)     { r.calls = append(r.calls, "asteroid") }
func (r *frameRecorder) Clear()                              { r.calls = append(r.calls, "clear") }
func (r *frameRecorder) Present()                            { r.calls = append(r.calls, "present") }

func (r *frameRecorder) RenderStatus(s entity.Status) {
	r.calls = append(r.calls, "status")
	r.status = s
}

func TestGetGameState_Snapshot(t *testing.T) {
	game := newTestGame(t)
	addMissile(game, entity.OwnerDrone, physics.Point3{X: 16})

	state := game.GetGameState()

	assert.Equal(t, game.SessionID, state.SessionID)
	assert.Equal(t, game.Aircraft.Position, state.Aircraft.Position)
	assert.Equal(t, 3, state.Aircraft.Life)
	assert.Equal(t, 3, state.Aircraft.MaxLife)
	assert.Len(t, state.Drones, len(game.Drones))
	assert.Len(t, state.Checkpoints, len(game.Checkpoints))
	assert.Len(t, state.Asteroids, len(game.Asteroids))
	require.Len(t, state.Missiles, 1)
	assert.Equal(t, entity.OwnerDrone, state.Missiles[0].Owner)
	assert.False(t, state.GameOver)

	// Mutating the snapshot leaves the game alone
	before := game.Drones[0].Position
	state.Drones[0].Position = physics.Point3{}
	state.Drones = state.Drones[:0]
	assert.Equal(t, before, game.Drones[0].Position)
	assert.Len(t, game.Drones, 5)
}

func TestGame_DrawOrder(t *testing.T) {
	game := newTestGame(t)
	clearField(game)
	addDrone(game, physics.Point3{X: 16}, 0)
	addMissile(game, entity.OwnerAircraft, physics.Point3{Y: 16})
	addAsteroid(game, physics.Point3{X: -16})

	r := &frameRecorder{}
	game.Draw(r)

	assert.Equal(t, []string{
		"clear", "checkpoint", "asteroid", "drone", "missile", "aircraft", "status", "present",
	}, r.calls)
	assert.Equal(t, 1, r.status.CheckpointsLeft)
	assert.Equal(t, 3, r.status.Life)
	assert.Equal(t, "none", r.status.Outcome)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "none", OutcomeNone.String())
	assert.Equal(t, "defeat", OutcomeDefeat.String())
	assert.Equal(t, "victory", OutcomeVictory.String())
}
