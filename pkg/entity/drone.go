// pkg/entity/drone.go
package entity

import (
	"github.com/opd-ai/go-moonstrike/pkg/physics"
)

// DroneStats contains the tuning values shared by all drones
type DroneStats struct {
	Speed       float64 // arc length per second
	MaxTurnRate float64 // radians per second
}

// Drone is an enemy that pursues the aircraft over the shell
type Drone struct {
	OrbitalBody
	Stats     DroneStats
	FireTimer float64
	// RedirectTimer is randomized at spawn. Pursuit does not read it.
	RedirectTimer float64
}

// NewDrone creates a drone; fireTimer seeds the drone's own fire accumulator
func NewDrone(id ID, position physics.Point3, forward physics.Direction3, stats DroneStats, fireTimer float64) *Drone {
	return &Drone{
		OrbitalBody: OrbitalBody{
			BaseEntity: BaseEntity{
				ID:       id,
				Position: position,
				Active:   true,
			},
			Forward: forward,
		},
		Stats:     stats,
		FireTimer: fireTimer,
	}
}

// Pursue turns toward target at no more than the drone's turn rate and then
// advances along the updated heading.
func (d *Drone) Pursue(shell physics.Shell, target physics.Point3, deltaTime float64) {
	desired := shell.Tangent(d.Position, target.Sub(d.Position))
	d.Forward = physics.SteerToward(d.Forward, desired, shell.Up(d.Position), d.Stats.MaxTurnRate*deltaTime)
	d.Move(shell, d.Stats.Speed*deltaTime)
}

// Reload accumulates time toward the next shot and reports whether the
// drone should fire now. The accumulator resets when it fires.
func (d *Drone) Reload(deltaTime, interval float64) bool {
	d.FireTimer += deltaTime
	if d.FireTimer > interval {
		d.FireTimer = 0
		return true
	}
	return false
}

// Collider returns the drone's bounding sphere at its current position
func (d *Drone) Collider() physics.BoundingSphere {
	return physics.BoundingSphere{Center: d.Position, Radius: DroneColliderRadius}
}
