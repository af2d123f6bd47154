// pkg/entity/aircraft.go
package entity

import (
	"github.com/opd-ai/go-moonstrike/pkg/physics"
)

// movedEpsilon is the minimum per-tick travel that counts as movement
const movedEpsilon = 1e-6

// AircraftStats contains the tuning values for the player's aircraft
type AircraftStats struct {
	MaxLife      int
	Speed        float64 // arc length per second
	TurnRate     float64 // radians per second
	FireCooldown float64 // seconds
	DamageFlash  float64 // seconds
}

// Controls is the per-tick steering input for the aircraft
type Controls struct {
	Forward   bool
	Backward  bool
	TurnLeft  bool
	TurnRight bool
}

// Aircraft is the player-driven craft orbiting the moon
type Aircraft struct {
	OrbitalBody
	Stats        AircraftStats
	PrevPosition physics.Point3
	Life         int
	DamageTimer  float64
	FireCooldown float64
}

// NewAircraft creates an aircraft at full life
func NewAircraft(id ID, position physics.Point3, forward physics.Direction3, stats AircraftStats) *Aircraft {
	return &Aircraft{
		OrbitalBody: OrbitalBody{
			BaseEntity: BaseEntity{
				ID:       id,
				Position: position,
				Active:   true,
			},
			Forward: forward,
		},
		Stats:        stats,
		PrevPosition: position,
		Life:         stats.MaxLife,
	}
}

// Update handles the aircraft's movement for a single game tick.
// Turning and thrust may both apply in the same tick.
func (a *Aircraft) Update(shell physics.Shell, deltaTime float64, controls Controls) {
	a.PrevPosition = a.Position

	if controls.TurnLeft {
		a.Turn(shell, a.Stats.TurnRate*deltaTime)
	}
	if controls.TurnRight {
		a.Turn(shell, -a.Stats.TurnRate*deltaTime)
	}

	if controls.Forward {
		a.Move(shell, a.Stats.Speed*deltaTime)
	}
	if controls.Backward {
		a.Move(shell, -a.Stats.Speed*deltaTime)
	}

	a.TickTimers(deltaTime)
}

// TickTimers counts down the damage flash and the weapon cooldown
func (a *Aircraft) TickTimers(deltaTime float64) {
	if a.DamageTimer > 0 {
		a.DamageTimer -= deltaTime
		if a.DamageTimer < 0 {
			a.DamageTimer = 0
		}
	}
	if a.FireCooldown > 0 {
		a.FireCooldown -= deltaTime
		if a.FireCooldown < 0 {
			a.FireCooldown = 0
		}
	}
}

// Collider returns the aircraft's bounding sphere at its current position
func (a *Aircraft) Collider() physics.BoundingSphere {
	return physics.BoundingSphere{Center: a.Position, Radius: AircraftColliderRadius}
}

// Trajectory returns the segment travelled this tick as a ray plus its length.
// ok is false when the aircraft did not move.
func (a *Aircraft) Trajectory() (ray physics.Ray, length float64, ok bool) {
	travel := a.Position.Sub(a.PrevPosition)
	length = travel.Length()
	if length <= movedEpsilon {
		return physics.Ray{}, 0, false
	}
	return physics.Ray{Origin: a.PrevPosition, Direction: travel.Scale(1 / length)}, length, true
}

// TakeDamage removes life points and starts the damage flash.
// Returns true if the aircraft is out of life.
func (a *Aircraft) TakeDamage(amount int) bool {
	a.Life -= amount
	if a.Life < 0 {
		a.Life = 0
	}
	a.DamageTimer = a.Stats.DamageFlash
	return a.Life <= 0
}

// Repair restores up to amount life points without exceeding MaxLife
// and returns how many were restored.
func (a *Aircraft) Repair(amount int) int {
	room := a.Stats.MaxLife - a.Life
	if amount > room {
		amount = room
	}
	if amount < 0 {
		return 0
	}
	a.Life += amount
	return amount
}

// Damaged reports whether the damage flash is running
func (a *Aircraft) Damaged() bool {
	return a.DamageTimer > 0
}

// ReadyToFire reports whether the weapon cooldown has elapsed
func (a *Aircraft) ReadyToFire() bool {
	return a.FireCooldown <= 0
}

// MarkFired starts the weapon cooldown
func (a *Aircraft) MarkFired() {
	a.FireCooldown = a.Stats.FireCooldown
}
