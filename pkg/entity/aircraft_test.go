package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-moonstrike/pkg/physics"
)

const tolerance = 1e-4

func testShell() physics.Shell {
	return physics.Shell{Radius: 16}
}

func testAircraftStats() AircraftStats {
	return AircraftStats{
		MaxLife:      3,
		Speed:        4,
		TurnRate:     2,
		FireCooldown: 0.25,
		DamageFlash:  0.5,
	}
}

func newTestAircraft() *Aircraft {
	return NewAircraft(GenerateID(), physics.Point3{Z: 16}, physics.Direction3{X: 1}, testAircraftStats())
}

func TestNewAircraft(t *testing.T) {
	a := newTestAircraft()

	assert.True(t, a.Active)
	assert.Equal(t, 3, a.Life)
	assert.Equal(t, a.Position, a.PrevPosition)
	assert.False(t, a.Damaged())
	assert.True(t, a.ReadyToFire())
}

func TestAircraft_UpdateKeepsShellInvariants(t *testing.T) {
	shell := testShell()
	a := newTestAircraft()

	for i := 0; i < 400; i++ {
		a.Update(shell, 1.0/60, Controls{Forward: true, TurnLeft: i%3 == 0})

		require.InDelta(t, 16.0, a.Position.Distance(shell.Center), tolerance, "tick %d", i)
		require.InDelta(t, 0.0, a.Forward.Dot(shell.Up(a.Position)), tolerance, "tick %d", i)
	}
}

func TestAircraft_UpdateRecordsPreviousPosition(t *testing.T) {
	shell := testShell()
	a := newTestAircraft()
	start := a.Position

	a.Update(shell, 0.1, Controls{Forward: true})

	assert.Equal(t, start, a.PrevPosition)
	assert.Greater(t, a.Position.X, 0.0, "forward thrust moves toward +X")
	assert.InDelta(t, 0.4, shell.ArcDistance(start, a.Position), tolerance)

	ray, length, ok := a.Trajectory()
	require.True(t, ok)
	assert.InDelta(t, a.Position.Distance(start), length, tolerance)
	assert.InDelta(t, 1.0, ray.Direction.Length(), tolerance)
}

func TestAircraft_TrajectoryWhenStationary(t *testing.T) {
	a := newTestAircraft()
	a.Update(testShell(), 0.1, Controls{TurnLeft: true})

	_, _, ok := a.Trajectory()
	assert.False(t, ok)
}

func TestAircraft_TurnDirection(t *testing.T) {
	shell := testShell()

	left := newTestAircraft()
	left.Update(shell, 0.1, Controls{TurnLeft: true})
	assert.Greater(t, left.Forward.Y, 0.0, "left turn at +Z heading +X swings toward +Y")

	right := newTestAircraft()
	right.Update(shell, 0.1, Controls{TurnRight: true})
	assert.Less(t, right.Forward.Y, 0.0)

	both := newTestAircraft()
	both.Update(shell, 0.1, Controls{TurnLeft: true, TurnRight: true})
	assert.InDelta(t, 1.0, both.Forward.X, tolerance)
}

func TestAircraft_DamageAndRepair(t *testing.T) {
	a := newTestAircraft()

	tests := []struct {
		name     string
		apply    func() bool
		wantLife int
		wantDead bool
	}{
		{"first_hit", func() bool { return a.TakeDamage(1) }, 2, false},
		{"repair_one", func() bool { a.Repair(1); return false }, 3, false},
		{"repair_capped", func() bool { a.Repair(5); return false }, 3, false},
		{"heavy_hit_clamps", func() bool { return a.TakeDamage(10) }, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dead := tt.apply()
			assert.Equal(t, tt.wantLife, a.Life)
			assert.Equal(t, tt.wantDead, dead)
		})
	}
}

func TestAircraft_RepairReturnsRestored(t *testing.T) {
	a := newTestAircraft()
	assert.Equal(t, 0, a.Repair(1))

	a.TakeDamage(2)
	assert.Equal(t, 2, a.Repair(3))
	assert.Equal(t, 3, a.Life)
}

func TestAircraft_Timers(t *testing.T) {
	a := newTestAircraft()

	a.TakeDamage(1)
	a.MarkFired()
	assert.True(t, a.Damaged())
	assert.False(t, a.ReadyToFire())

	a.TickTimers(0.3)
	assert.True(t, a.Damaged())
	assert.True(t, a.ReadyToFire())

	a.TickTimers(0.3)
	assert.False(t, a.Damaged())
	assert.Equal(t, 0.0, a.DamageTimer)
}
