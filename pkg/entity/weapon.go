// pkg/entity/weapon.go
package entity

import (
	"github.com/opd-ai/go-moonstrike/pkg/physics"
)

// Owner tags who fired a missile
type Owner int

const (
	OwnerAircraft Owner = iota
	OwnerDrone
)

func (o Owner) String() string {
	switch o {
	case OwnerAircraft:
		return "aircraft"
	case OwnerDrone:
		return "drone"
	default:
		return "unknown"
	}
}

// Launcher creates missiles. Aircraft and drones each hold one.
type Launcher struct {
	Speed    float64
	Lifetime float64
	Offset   float64 // distance ahead of the shooter where missiles appear
}

// Fire launches a missile along heading, starting Offset ahead of from
func (l Launcher) Fire(shell physics.Shell, owner Owner, from physics.Point3, heading physics.Direction3) *Missile {
	muzzle, forward := shell.Move(from, heading, l.Offset)
	return l.newMissile(owner, muzzle, forward)
}

// FireAt launches a missile from Offset ahead of the shooter, aimed
// tangentially at target. A degenerate aim keeps the shooter's heading.
func (l Launcher) FireAt(shell physics.Shell, owner Owner, from physics.Point3, heading physics.Direction3, target physics.Point3) *Missile {
	muzzle, forward := shell.Move(from, heading, l.Offset)
	if aim := shell.Tangent(muzzle, target.Sub(muzzle)); !aim.IsZero(1e-9) {
		forward = aim
	}
	return l.newMissile(owner, muzzle, forward)
}

func (l Launcher) newMissile(owner Owner, position physics.Point3, forward physics.Direction3) *Missile {
	return &Missile{
		OrbitalBody: OrbitalBody{
			BaseEntity: BaseEntity{
				ID:       GenerateID(),
				Position: position,
				Active:   true,
			},
			Forward: forward,
		},
		Owner:    owner,
		Speed:    l.Speed,
		Lifetime: l.Lifetime,
	}
}

// Missile is an unguided projectile travelling along the shell
type Missile struct {
	OrbitalBody
	Owner    Owner
	Speed    float64
	Lifetime float64 // seconds remaining
}

// Update burns lifetime first and deactivates an expired missile before it
// moves; a live missile then advances along its heading.
func (m *Missile) Update(shell physics.Shell, deltaTime float64) {
	m.Lifetime -= deltaTime
	if m.Lifetime <= 0 {
		m.Active = false
		return
	}
	m.Move(shell, m.Speed*deltaTime)
}

// Collider returns the missile's bounding sphere at its current position
func (m *Missile) Collider() physics.BoundingSphere {
	return physics.BoundingSphere{Center: m.Position, Radius: MissileColliderRadius}
}
