package engine

import (
	"context"
	"fmt"

	"github.com/opd-ai/go-moonstrike/pkg/config"
	"github.com/opd-ai/go-moonstrike/pkg/entity"
	"github.com/opd-ai/go-moonstrike/pkg/event"
	"github.com/opd-ai/go-moonstrike/pkg/physics"
)

// DamagePolicy decides how many life points a collision phase may take
type DamagePolicy int

const (
	// DamagePerHit charges one life point for every qualifying hit
	DamagePerHit DamagePolicy = iota
	// DamageOncePerPhase charges at most one life point per phase per tick
	DamageOncePerPhase
)

// ParseDamagePolicy maps a config name to a DamagePolicy
func ParseDamagePolicy(name string) (DamagePolicy, error) {
	switch name {
	case config.DamagePerHit:
		return DamagePerHit, nil
	case config.DamageOncePerPhase:
		return DamageOncePerPhase, nil
	default:
		return 0, fmt.Errorf("%w: unknown damage policy %q", config.ErrInvalidConfig, name)
	}
}

func (p DamagePolicy) String() string {
	if p == DamageOncePerPhase {
		return config.DamageOncePerPhase
	}
	return config.DamagePerHit
}

// CollisionReport counts what one ResolveCollisions pass did
type CollisionReport struct {
	DronesRammed         int // phase 1
	CheckpointsCollected int // phase 2
	LifeRestored         int // phase 2
	AsteroidsRammed      int // phase 3
	MissilesSpent        int // phase 4
	DronesShot           int // phase 4
	AsteroidsShot        int // phase 4
	AircraftHits         int // phase 4
	DamageTaken          int // all phases
}

// phaseDamage applies one policy across the hits of a single phase
type phaseDamage struct {
	policy  DamagePolicy
	charged bool
}

// ResolveCollisions runs the four collision phases in order. Entities removed
// by one phase are gone before the next phase looks at its collections.
func (g *Game) ResolveCollisions() CollisionReport {
	var report CollisionReport

	// The aircraft does not move during resolution, so one sphere serves
	// every phase.
	aircraftSphere := g.Aircraft.Collider()

	g.resolveDroneContacts(aircraftSphere, &report)
	g.resolveCheckpoints(&report)
	g.resolveAsteroidContacts(aircraftSphere, &report)
	g.resolveMissiles(aircraftSphere, &report)

	return report
}

// resolveDroneContacts removes every drone touching the aircraft
func (g *Game) resolveDroneContacts(aircraftSphere physics.BoundingSphere, report *CollisionReport) {
	damage := phaseDamage{policy: g.DroneContactDamage}

	for i := len(g.Drones) - 1; i >= 0; i-- {
		drone := g.Drones[i]
		if !physics.SphereVsSphere(aircraftSphere, drone.Collider()) {
			continue
		}

		g.Drones = removeAt(g.Drones, i)
		report.DronesRammed++
		g.publishDestroyed(event.DroneDestroyed, drone.ID, event.CauseContact)

		if g.applyDamage(&damage, event.CauseContact) {
			report.DamageTaken++
		}
	}
}

// resolveCheckpoints collects checkpoints crossed by this tick's flight
// segment. Nothing is collected when the aircraft did not move.
func (g *Game) resolveCheckpoints(report *CollisionReport) {
	ray, length, moved := g.Aircraft.Trajectory()
	if !moved {
		return
	}

	for i := len(g.Checkpoints) - 1; i >= 0; i-- {
		checkpoint := g.Checkpoints[i]
		if hit, _ := physics.SegmentVsSphere(ray, length, checkpoint.Collider()); !hit {
			continue
		}

		g.Checkpoints = removeAt(g.Checkpoints, i)
		g.Collected++
		report.CheckpointsCollected++
		report.LifeRestored += g.Aircraft.Repair(1)

		g.logger.Debug(context.Background(), "checkpoint collected",
			"checkpoint_id", checkpoint.ID,
			"remaining", len(g.Checkpoints),
			"life", g.Aircraft.Life,
		)
		g.EventBus.Publish(event.NewEntityEvent(event.CheckpointCollected, g, uint64(checkpoint.ID), event.CauseCollect))
	}
}

// resolveAsteroidContacts removes every asteroid the aircraft touches
func (g *Game) resolveAsteroidContacts(aircraftSphere physics.BoundingSphere, report *CollisionReport) {
	damage := phaseDamage{policy: g.AsteroidContactDamage}

	for i := len(g.Asteroids) - 1; i >= 0; i-- {
		asteroid := g.Asteroids[i]
		if !physics.CylinderVsSphere(asteroid.Collider(), aircraftSphere) {
			continue
		}

		g.Asteroids = removeAt(g.Asteroids, i)
		report.AsteroidsRammed++
		g.publishDestroyed(event.AsteroidDestroyed, asteroid.ID, event.CauseContact)

		if g.applyDamage(&damage, event.CauseContact) {
			report.DamageTaken++
		}
	}
}

// resolveMissiles tests each missile against its owner's enemies and against
// every asteroid. A missile that hit anything is spent.
func (g *Game) resolveMissiles(aircraftSphere physics.BoundingSphere, report *CollisionReport) {
	damage := phaseDamage{policy: g.MissileDamage}

	for i := len(g.Missiles) - 1; i >= 0; i-- {
		missile := g.Missiles[i]
		if !missile.Active {
			continue
		}
		sphere := missile.Collider()
		hit := false

		switch missile.Owner {
		case entity.OwnerAircraft:
			if g.missileHitsDrone(sphere) {
				report.DronesShot++
				hit = true
			}
		case entity.OwnerDrone:
			if physics.SphereVsSphere(sphere, aircraftSphere) {
				report.AircraftHits++
				hit = true
				if g.applyDamage(&damage, event.CauseMissile) {
					report.DamageTaken++
				}
			}
		}

		if g.missileHitsAsteroid(sphere) {
			report.AsteroidsShot++
			hit = true
		}

		if hit {
			missile.Active = false
			g.Missiles = removeAt(g.Missiles, i)
			report.MissilesSpent++
		}
	}
}

// missileHitsDrone removes the first drone overlapping sphere
func (g *Game) missileHitsDrone(sphere physics.BoundingSphere) bool {
	for j, drone := range g.Drones {
		if physics.SphereVsSphere(sphere, drone.Collider()) {
			g.Drones = removeAt(g.Drones, j)
			g.publishDestroyed(event.DroneDestroyed, drone.ID, event.CauseMissile)
			return true
		}
	}
	return false
}

// missileHitsAsteroid removes the first asteroid overlapping sphere
func (g *Game) missileHitsAsteroid(sphere physics.BoundingSphere) bool {
	for j, asteroid := range g.Asteroids {
		if physics.CylinderVsSphere(asteroid.Collider(), sphere) {
			g.Asteroids = removeAt(g.Asteroids, j)
			g.publishDestroyed(event.AsteroidDestroyed, asteroid.ID, event.CauseMissile)
			return true
		}
	}
	return false
}

// applyDamage charges one life point unless the game is already over or the
// phase policy has used up its allowance. Returns whether damage was applied.
func (g *Game) applyDamage(damage *phaseDamage, cause event.Cause) bool {
	if g.GameOver {
		return false
	}
	if damage.policy == DamageOncePerPhase && damage.charged {
		return false
	}
	damage.charged = true

	g.Aircraft.TakeDamage(1)
	g.logger.Debug(context.Background(), "aircraft damaged",
		"cause", string(cause),
		"life", g.Aircraft.Life,
	)
	g.EventBus.Publish(event.NewDamageEvent(g, 1, g.Aircraft.Life, cause))
	return true
}

func (g *Game) publishDestroyed(eventType event.Type, id entity.ID, cause event.Cause) {
	g.logger.Debug(context.Background(), string(eventType),
		"entity_id", id,
		"cause", string(cause),
	)
	g.EventBus.Publish(event.NewEntityEvent(eventType, g, uint64(id), cause))
}
