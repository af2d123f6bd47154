// pkg/entity/landmark.go
package entity

import (
	"github.com/opd-ai/go-moonstrike/pkg/physics"
)

// Checkpoint is a collectable marker on the shell. Flying through one
// restores a life point.
type Checkpoint struct {
	BaseEntity
}

// NewCheckpoint creates a checkpoint
func NewCheckpoint(id ID, position physics.Point3) *Checkpoint {
	return &Checkpoint{
		BaseEntity: BaseEntity{
			ID:       id,
			Position: position,
			Active:   true,
		},
	}
}

// Collider returns the checkpoint's bounding sphere
func (c *Checkpoint) Collider() physics.BoundingSphere {
	return physics.BoundingSphere{Center: c.Position, Radius: CheckpointColliderRadius}
}

// Asteroid is a static obstacle. For collisions it is a world-vertical
// cylinder centred on its position.
type Asteroid struct {
	BaseEntity
}

// NewAsteroid creates an asteroid
func NewAsteroid(id ID, position physics.Point3) *Asteroid {
	return &Asteroid{
		BaseEntity: BaseEntity{
			ID:       id,
			Position: position,
			Active:   true,
		},
	}
}

// Collider returns the asteroid's bounding cylinder
func (a *Asteroid) Collider() physics.BoundingCylinder {
	return physics.BoundingCylinder{
		Center: a.Position,
		Radius: AsteroidCylinderRadius,
		Height: AsteroidCylinderHeight,
	}
}
