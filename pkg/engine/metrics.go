package engine

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/opd-ai/go-moonstrike/pkg/engine"

// gameMetrics holds the session counters. They report to the global meter
// provider, which is a no-op unless the host installs one.
type gameMetrics struct {
	dronesDestroyed      metric.Int64Counter
	asteroidsDestroyed   metric.Int64Counter
	checkpointsCollected metric.Int64Counter
	aircraftDamage       metric.Int64Counter
	missilesFired        metric.Int64Counter
	sessionsEnded        metric.Int64Counter
}

func newGameMetrics() (*gameMetrics, error) {
	m := otel.Meter(instrumentationName)
	gm := &gameMetrics{}

	counters := []struct {
		target *metric.Int64Counter
		name   string
		desc   string
	}{
		{&gm.dronesDestroyed, "moonstrike.drones.destroyed", "Drones destroyed by contact or missile"},
		{&gm.asteroidsDestroyed, "moonstrike.asteroids.destroyed", "Asteroids destroyed by contact or missile"},
		{&gm.checkpointsCollected, "moonstrike.checkpoints.collected", "Checkpoints collected"},
		{&gm.aircraftDamage, "moonstrike.aircraft.damage", "Life points lost by the aircraft"},
		{&gm.missilesFired, "moonstrike.missiles.fired", "Missiles launched"},
		{&gm.sessionsEnded, "moonstrike.sessions.ended", "Sessions that reached a terminal state"},
	}

	for _, c := range counters {
		counter, err := m.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, fmt.Errorf("creating %s counter: %w", c.name, err)
		}
		*c.target = counter
	}

	return gm, nil
}

// recordCollisions adds one tick's collision consequences
func (gm *gameMetrics) recordCollisions(r CollisionReport) {
	ctx := context.Background()
	if n := r.DronesRammed + r.DronesShot; n > 0 {
		gm.dronesDestroyed.Add(ctx, int64(n))
	}
	if n := r.AsteroidsRammed + r.AsteroidsShot; n > 0 {
		gm.asteroidsDestroyed.Add(ctx, int64(n))
	}
	if r.CheckpointsCollected > 0 {
		gm.checkpointsCollected.Add(ctx, int64(r.CheckpointsCollected))
	}
	if r.DamageTaken > 0 {
		gm.aircraftDamage.Add(ctx, int64(r.DamageTaken))
	}
}

func (gm *gameMetrics) recordMissileFired(owner string) {
	gm.missilesFired.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("owner", owner)))
}

func (gm *gameMetrics) recordSessionEnded(outcome Outcome) {
	gm.sessionsEnded.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("outcome", outcome.String())))
}
