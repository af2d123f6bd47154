package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-moonstrike/pkg/physics"
)

func TestDrone_PursueClosesOnTarget(t *testing.T) {
	shell := testShell()
	stats := DroneStats{Speed: 2, MaxTurnRate: 1.5}
	// Heading away from a target behind it
	d := NewDrone(GenerateID(), physics.Point3{Z: 16}, physics.Direction3{X: -1}, stats, 0)
	target := shell.Snap(physics.Point3{X: 5, Z: 15})

	startGap := shell.ArcDistance(d.Position, target)
	for i := 0; i < 300; i++ {
		d.Pursue(shell, target, 1.0/30)
		require.InDelta(t, 16.0, d.Position.Distance(shell.Center), tolerance, "tick %d", i)
		require.InDelta(t, 0.0, d.Forward.Dot(shell.Up(d.Position)), tolerance, "tick %d", i)
	}

	assert.Less(t, shell.ArcDistance(d.Position, target), startGap)
}

func TestDrone_PursueTurnIsCapped(t *testing.T) {
	shell := testShell()
	stats := DroneStats{Speed: 0, MaxTurnRate: 1}
	d := NewDrone(GenerateID(), physics.Point3{Z: 16}, physics.Direction3{X: 1}, stats, 0)
	before := d.Forward

	d.Pursue(shell, shell.Snap(physics.Point3{Y: 5, Z: 15}), 0.1)

	assert.InDelta(t, 0.1, before.AngleTo(d.Forward), tolerance)
}

func TestDrone_Reload(t *testing.T) {
	d := NewDrone(GenerateID(), physics.Point3{Z: 16}, physics.Direction3{X: 1}, DroneStats{}, 2.5)

	assert.False(t, d.Reload(0.4, 3))
	assert.True(t, d.Reload(0.2, 3))
	assert.Equal(t, 0.0, d.FireTimer)
	assert.False(t, d.Reload(0.2, 3))
}

func TestDrone_Collider(t *testing.T) {
	d := NewDrone(GenerateID(), physics.Point3{Z: 16}, physics.Direction3{X: 1}, DroneStats{}, 0)

	c := d.Collider()
	assert.Equal(t, d.Position, c.Center)
	assert.Equal(t, DroneColliderRadius, c.Radius)
}
