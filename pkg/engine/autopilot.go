package engine

import (
	"math"

	"github.com/opd-ai/go-moonstrike/pkg/physics"
)

// Autopilot tuning
const (
	autopilotAlignThreshold = math.Pi / 36 // 5 degrees of slack before turning
	autopilotFireCone       = 0.97         // cosine of the firing half-angle
)

// Autopilot flies the aircraft for headless runs: full thrust, steer toward
// the nearest checkpoint and fire at any drone inside the nose cone and in
// missile range.
func (g *Game) Autopilot() InputState {
	input := InputState{Forward: true}
	a := g.Aircraft
	up := g.Shell.Up(a.Position)

	if target, ok := g.nearestCheckpoint(); ok {
		desired := g.Shell.Tangent(a.Position, target.Sub(a.Position))
		if !desired.IsZero(1e-9) && a.Forward.AngleTo(desired) > autopilotAlignThreshold {
			if a.Forward.Cross(desired).Dot(up) > 0 {
				input.TurnLeft = true
			} else {
				input.TurnRight = true
			}
		}
	}

	missileRange := g.Config.Missiles.Speed * g.Config.Missiles.Lifetime
	for _, d := range g.Drones {
		if g.Shell.ArcDistance(a.Position, d.Position) > missileRange {
			continue
		}
		toDrone := g.Shell.Tangent(a.Position, d.Position.Sub(a.Position))
		if a.Forward.Dot(toDrone) >= autopilotFireCone {
			input.Fire = true
			break
		}
	}

	return input
}

func (g *Game) nearestCheckpoint() (physics.Point3, bool) {
	best := math.Inf(1)
	var target physics.Point3
	for _, c := range g.Checkpoints {
		if d := g.Shell.ArcDistance(g.Aircraft.Position, c.Position); d < best {
			best = d
			target = c.Position
		}
	}
	return target, len(g.Checkpoints) > 0
}
