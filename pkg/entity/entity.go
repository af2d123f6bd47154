// pkg/entity/entity.go
package entity

import (
	"sync/atomic"

	"github.com/opd-ai/go-moonstrike/pkg/physics"
)

// Collider dimensions, fixed per entity kind
const (
	AircraftColliderRadius   = 0.3
	DroneColliderRadius      = AircraftColliderRadius
	CheckpointColliderRadius = 1.5
	MissileColliderRadius    = 0.1
	AsteroidCylinderRadius   = 0.5
	AsteroidCylinderHeight   = 1.0
)

// ID is a unique identifier for an entity
type ID uint64

// Entity is the base interface for all game objects
type Entity interface {
	GetID() ID
	GetPosition() physics.Point3
	Render(r Renderer)
}

// BaseEntity contains common functionality for all entities
type BaseEntity struct {
	ID       ID
	Position physics.Point3
	Active   bool
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// GetPosition returns the entity's position
func (e *BaseEntity) GetPosition() physics.Point3 {
	return e.Position
}

// OrbitalBody is an entity that travels over the shell with a tangent heading
type OrbitalBody struct {
	BaseEntity
	Forward physics.Direction3
}

// Move advances the body along its heading by an arc length of distance
func (b *OrbitalBody) Move(shell physics.Shell, distance float64) {
	b.Position, b.Forward = shell.Move(b.Position, b.Forward, distance)
}

// Turn rotates the heading about the local up axis; positive turns left
func (b *OrbitalBody) Turn(shell physics.Shell, angle float64) {
	b.Forward = shell.Turn(b.Position, b.Forward, angle)
}

// Implement the Entity.Render() method in each entity type:
func (a *Aircraft) Render(r Renderer) {
	r.RenderAircraft(a)
}

func (d *Drone) Render(r Renderer) {
	r.RenderDrone(d)
}

func (m *Missile) Render(r Renderer) {
	r.RenderMissile(m)
}

func (c *Checkpoint) Render(r Renderer) {
	r.RenderCheckpoint(c)
}

func (a *Asteroid) Render(r Renderer) {
	r.RenderAsteroid(a)
}

var nextID atomic.Uint64

// GenerateID generates a unique ID for entities. Safe for concurrent sessions.
func GenerateID() ID {
	return ID(nextID.Add(1))
}
