// pkg/render/engo/renderer_test.go
package engo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-moonstrike/pkg/entity"
	"github.com/opd-ai/go-moonstrike/pkg/physics"
)

func newTestRenderer() (*EngoRenderer, *fakeShapes) {
	shapes := &fakeShapes{}
	return NewEngoRenderer(shapes, physics.Shell{Radius: 16}, 800, 400), shapes
}

func TestEngoRenderer_TracksEntitiesAcrossFrames(t *testing.T) {
	r, shapes := newTestRenderer()
	checkpoint := entity.NewCheckpoint(entity.GenerateID(), physics.Point3{X: 16})
	drone := entity.NewDrone(entity.GenerateID(), physics.Point3{X: -16}, physics.Direction3{Z: 1}, entity.DroneStats{Speed: 2}, 0)

	r.Clear()
	r.RenderCheckpoint(checkpoint)
	r.RenderDrone(drone)
	r.Present()

	assert.Len(t, shapes.added, 2)
	assert.Empty(t, shapes.removed)
	assert.Equal(t, 2, r.Tracked())
	droneShape := r.entities[drone.ID]
	require.NotNil(t, droneShape)

	r.Clear()
	r.RenderCheckpoint(checkpoint)
	r.Present()

	assert.Len(t, shapes.added, 2, "existing shapes are reused")
	assert.Equal(t, []uint64{droneShape.ID()}, shapes.removed)
	assert.Equal(t, 1, r.Tracked())
}

func TestEngoRenderer_PlacesAircraftOnMap(t *testing.T) {
	r, _ := newTestRenderer()
	aircraft := entity.NewAircraft(entity.GenerateID(), physics.Point3{Z: 16}, physics.Direction3{X: 1},
		entity.AircraftStats{MaxLife: 3, DamageFlash: 0.5})

	r.Clear()
	r.RenderAircraft(aircraft)

	s := r.entities[aircraft.ID]
	require.NotNil(t, s)
	assert.InDelta(t, 400-minShapeSize/2, s.Position.X, 1e-3)
	assert.InDelta(t, 200-minShapeSize/2, s.Position.Y, 1e-3)
	assert.InDelta(t, minShapeSize, s.Width, 1e-3)
	assert.InDelta(t, 90, s.Rotation, 1e-2)
	assert.Equal(t, colorAircraft, s.Color)

	aircraft.TakeDamage(1)
	r.RenderAircraft(aircraft)
	assert.Equal(t, colorAircraftDamaged, s.Color)
}

func TestEngoRenderer_ScalesLandmarksWithShell(t *testing.T) {
	r, _ := newTestRenderer()
	checkpoint := entity.NewCheckpoint(entity.GenerateID(), physics.Point3{Z: 16})

	r.RenderCheckpoint(checkpoint)

	s := r.entities[checkpoint.ID]
	require.NotNil(t, s)
	// 3 world units of diameter at 800px per 2π·16 units
	assert.InDelta(t, 23.873, s.Width, 1e-2)
}

func TestEngoRenderer_MissileColourByOwner(t *testing.T) {
	r, _ := newTestRenderer()
	shell := physics.Shell{Radius: 16}
	launcher := entity.Launcher{Speed: 10, Lifetime: 2.5}
	mine := launcher.Fire(shell, entity.OwnerAircraft, physics.Point3{Z: 16}, physics.Direction3{X: 1})
	theirs := launcher.Fire(shell, entity.OwnerDrone, physics.Point3{Z: 16}, physics.Direction3{Y: 1})

	r.RenderMissile(mine)
	r.RenderMissile(theirs)

	assert.Equal(t, colorAircraftMissile, r.entities[mine.ID].Color)
	assert.Equal(t, colorDroneMissile, r.entities[theirs.ID].Color)
}

func TestEngoRenderer_StatusOverlay(t *testing.T) {
	r, shapes := newTestRenderer()

	r.RenderStatus(entity.Status{Life: 2, MaxLife: 3, CheckpointsLeft: 2, Outcome: "none"})

	assert.Len(t, shapes.added, 7)
	assert.Equal(t, colorLifeFull, r.hud["life-1"].Color)
	assert.Equal(t, colorLifeEmpty, r.hud["life-2"].Color)
	assert.False(t, r.hud["checkpoint-1"].Hidden)
	assert.True(t, r.hud["banner"].Hidden)
	assert.True(t, r.hud["flash"].Hidden)

	r.RenderStatus(entity.Status{Life: 2, MaxLife: 3, CheckpointsLeft: 1, Damaged: true, Outcome: "none"})
	assert.True(t, r.hud["checkpoint-1"].Hidden)
	assert.False(t, r.hud["flash"].Hidden)

	r.RenderStatus(entity.Status{Life: 2, MaxLife: 3, GameOver: true, Outcome: "victory"})
	assert.False(t, r.hud["banner"].Hidden)
	assert.Equal(t, colorVictory, r.hud["banner"].Color)
	assert.True(t, r.hud["checkpoint-0"].Hidden)
	assert.Len(t, shapes.added, 7, "overlay shapes are reused")
	assert.Equal(t, 2, r.Status().Life)
}
