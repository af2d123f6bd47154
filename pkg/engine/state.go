package engine

import (
	"github.com/opd-ai/go-moonstrike/pkg/entity"
	"github.com/opd-ai/go-moonstrike/pkg/physics"
)

// GameState represents a snapshot of the game state
type GameState struct {
	SessionID   string
	Tick        uint64
	Aircraft    AircraftState
	Drones      []BodyState
	Missiles    []MissileState
	Checkpoints []LandmarkState
	Asteroids   []LandmarkState
	Collected   int
	GameOver    bool
	Outcome     Outcome
}

// AircraftState represents a snapshot of the aircraft
type AircraftState struct {
	ID       entity.ID
	Position physics.Point3
	Forward  physics.Direction3
	Life     int
	MaxLife  int
	Damaged  bool
}

// BodyState represents a snapshot of a moving entity
type BodyState struct {
	ID       entity.ID
	Position physics.Point3
	Forward  physics.Direction3
}

// MissileState represents a snapshot of a missile
type MissileState struct {
	BodyState
	Owner    entity.Owner
	Lifetime float64
}

// LandmarkState represents a snapshot of a checkpoint or asteroid
type LandmarkState struct {
	ID       entity.ID
	Position physics.Point3
}

// GetGameState returns a copy of the current state. The copy shares nothing
// with the live simulation.
func (g *Game) GetGameState() *GameState {
	a := g.Aircraft
	state := &GameState{
		SessionID: g.SessionID,
		Tick:      g.CurrentTick,
		Aircraft: AircraftState{
			ID:       a.ID,
			Position: a.Position,
			Forward:  a.Forward,
			Life:     a.Life,
			MaxLife:  a.Stats.MaxLife,
			Damaged:  a.Damaged(),
		},
		Drones:      make([]BodyState, 0, len(g.Drones)),
		Missiles:    make([]MissileState, 0, len(g.Missiles)),
		Checkpoints: make([]LandmarkState, 0, len(g.Checkpoints)),
		Asteroids:   make([]LandmarkState, 0, len(g.Asteroids)),
		Collected:   g.Collected,
		GameOver:    g.GameOver,
		Outcome:     g.Outcome,
	}

	for _, d := range g.Drones {
		state.Drones = append(state.Drones, BodyState{ID: d.ID, Position: d.Position, Forward: d.Forward})
	}
	for _, m := range g.Missiles {
		state.Missiles = append(state.Missiles, MissileState{
			BodyState: BodyState{ID: m.ID, Position: m.Position, Forward: m.Forward},
			Owner:     m.Owner,
			Lifetime:  m.Lifetime,
		})
	}
	for _, c := range g.Checkpoints {
		state.Checkpoints = append(state.Checkpoints, LandmarkState{ID: c.ID, Position: c.Position})
	}
	for _, ast := range g.Asteroids {
		state.Asteroids = append(state.Asteroids, LandmarkState{ID: ast.ID, Position: ast.Position})
	}

	return state
}

// Status returns the HUD summary
func (g *Game) Status() entity.Status {
	return entity.Status{
		Life:            g.Aircraft.Life,
		MaxLife:         g.Aircraft.Stats.MaxLife,
		CheckpointsLeft: len(g.Checkpoints),
		Collected:       g.Collected,
		GameOver:        g.GameOver,
		Outcome:         g.Outcome.String(),
		Damaged:         g.Aircraft.Damaged(),
	}
}

// Draw renders one frame: landmarks first, then drones and missiles, the
// aircraft on top and finally the status line.
func (g *Game) Draw(r entity.Renderer) {
	r.Clear()

	for _, c := range g.Checkpoints {
		c.Render(r)
	}
	for _, ast := range g.Asteroids {
		ast.Render(r)
	}
	for _, d := range g.Drones {
		d.Render(r)
	}
	for _, m := range g.Missiles {
		m.Render(r)
	}
	g.Aircraft.Render(r)

	r.RenderStatus(g.Status())
	r.Present()
}
