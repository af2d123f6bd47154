// pkg/engine/game.go
package engine

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/opd-ai/go-moonstrike/pkg/config"
	"github.com/opd-ai/go-moonstrike/pkg/entity"
	"github.com/opd-ai/go-moonstrike/pkg/event"
	"github.com/opd-ai/go-moonstrike/pkg/logging"
	"github.com/opd-ai/go-moonstrike/pkg/physics"
)

// Outcome tells how a session ended
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeDefeat
	OutcomeVictory
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDefeat:
		return "defeat"
	case OutcomeVictory:
		return "victory"
	default:
		return "none"
	}
}

// InputState is the player's input for one tick
type InputState struct {
	Forward   bool
	Backward  bool
	TurnLeft  bool
	TurnRight bool
	Fire      bool
}

// DroneFireMode selects how drone reload timers are kept
type DroneFireMode int

const (
	// FireIndependent gives every drone its own reload timer
	FireIndependent DroneFireMode = iota
	// FireShared keeps one timer; when it elapses every drone fires once
	FireShared
)

// ParseDroneFireMode maps a config name to a DroneFireMode
func ParseDroneFireMode(name string) (DroneFireMode, error) {
	switch name {
	case config.FireIndependent:
		return FireIndependent, nil
	case config.FireShared:
		return FireShared, nil
	default:
		return 0, fmt.Errorf("%w: unknown drone fire mode %q", config.ErrInvalidConfig, name)
	}
}

// droneRedirectWindow bounds the random re-direction timer given to each drone
const droneRedirectWindow = 2.0

// Game is the whole simulation state of one session. It is driven from a
// single goroutine; nothing in it is safe for concurrent use.
type Game struct {
	Config      *config.GameConfig
	Shell       physics.Shell
	Aircraft    *entity.Aircraft
	Drones      []*entity.Drone
	Missiles    []*entity.Missile
	Checkpoints []*entity.Checkpoint
	Asteroids   []*entity.Asteroid

	GameOver    bool
	Outcome     Outcome
	CurrentTick uint64
	Collected   int

	SessionID string
	EventBus  *event.Bus

	// Per-phase damage policies
	DroneContactDamage    DamagePolicy
	AsteroidContactDamage DamagePolicy
	MissileDamage         DamagePolicy
	DroneFireMode         DroneFireMode

	aircraftLauncher entity.Launcher
	droneLauncher    entity.Launcher
	droneFireTimer   float64 // used by FireShared only

	spawnPosition physics.Point3
	spawnForward  physics.Direction3

	rng     *rand.Rand
	logger  *logging.Logger
	metrics *gameMetrics
}

// NewGame creates a session from cfg and spawns its entities. A nil logger
// discards log output.
func NewGame(cfg *config.GameConfig, logger *logging.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	droneDamage, err := ParseDamagePolicy(cfg.Rules.DroneContactDamage)
	if err != nil {
		return nil, err
	}
	asteroidDamage, err := ParseDamagePolicy(cfg.Rules.AsteroidContactDamage)
	if err != nil {
		return nil, err
	}
	missileDamage, err := ParseDamagePolicy(cfg.Rules.MissileDamage)
	if err != nil {
		return nil, err
	}
	fireMode, err := ParseDroneFireMode(cfg.Rules.DroneFireMode)
	if err != nil {
		return nil, err
	}

	gm, err := newGameMetrics()
	if err != nil {
		return nil, logging.WrapError(err, "failed to initialise metrics")
	}

	seed := cfg.SeedValue()
	center := physics.Point3{X: cfg.World.Center.X, Y: cfg.World.Center.Y, Z: cfg.World.Center.Z}
	sessionID := logging.NewID()

	game := &Game{
		Config:                cfg,
		Shell:                 physics.Shell{Center: center, Radius: cfg.World.Radius},
		SessionID:             sessionID,
		EventBus:              event.NewEventBus(),
		DroneContactDamage:    droneDamage,
		AsteroidContactDamage: asteroidDamage,
		MissileDamage:         missileDamage,
		DroneFireMode:         fireMode,
		aircraftLauncher: entity.Launcher{
			Speed:    cfg.Missiles.Speed,
			Lifetime: cfg.Missiles.Lifetime,
			Offset:   cfg.Aircraft.FireOffset,
		},
		droneLauncher: entity.Launcher{
			Speed:    cfg.Missiles.Speed,
			Lifetime: cfg.Missiles.Lifetime,
			Offset:   cfg.Drones.FireOffset,
		},
		spawnPosition: center.Add(physics.Direction3{Z: cfg.World.Radius}),
		spawnForward:  physics.Direction3{X: 1},
		rng:           rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		logger:        logger.WithSession(sessionID),
		metrics:       gm,
	}

	game.populate()
	return game, nil
}

// Start announces the session. Call it after subscribing to the event bus.
func (g *Game) Start() {
	g.logger.Info(context.Background(), "session started",
		"drones", len(g.Drones),
		"checkpoints", len(g.Checkpoints),
		"asteroids", len(g.Asteroids),
	)
	g.EventBus.Publish(event.NewSessionEvent(event.SessionStarted, g, g.SessionID, g.Outcome.String(), g.CurrentTick))
}

// populate places the aircraft at its spawn point and scatters everything else
func (g *Game) populate() {
	stats := entity.AircraftStats{
		MaxLife:      g.Config.Aircraft.MaxLife,
		Speed:        g.Config.Aircraft.Speed,
		TurnRate:     g.Config.Aircraft.TurnRate,
		FireCooldown: g.Config.Aircraft.FireCooldown,
		DamageFlash:  g.Config.Aircraft.DamageFlash,
	}
	g.Aircraft = entity.NewAircraft(entity.GenerateID(), g.spawnPosition, g.spawnForward, stats)

	g.Missiles = nil
	g.droneFireTimer = 0

	droneStats := entity.DroneStats{
		Speed:       g.Config.Drones.Speed,
		MaxTurnRate: g.Config.Drones.MaxTurnRate,
	}
	g.Drones = make([]*entity.Drone, 0, g.Config.Drones.Count)
	for i := 0; i < g.Config.Drones.Count; i++ {
		pos := g.randomSpawnPoint()
		fireTimer := 0.0
		if g.DroneFireMode == FireIndependent {
			// Stagger the first volley
			fireTimer = g.rng.Float64() * g.Config.Drones.FireInterval
		}
		drone := entity.NewDrone(entity.GenerateID(), pos, g.randomHeading(pos), droneStats, fireTimer)
		drone.RedirectTimer = g.rng.Float64() * droneRedirectWindow
		g.Drones = append(g.Drones, drone)
	}

	g.Checkpoints = make([]*entity.Checkpoint, 0, g.Config.Checkpoints.Count)
	for i := 0; i < g.Config.Checkpoints.Count; i++ {
		g.Checkpoints = append(g.Checkpoints, entity.NewCheckpoint(entity.GenerateID(), g.randomSpawnPoint()))
	}

	g.Asteroids = make([]*entity.Asteroid, 0, g.Config.Asteroids.Count)
	for i := 0; i < g.Config.Asteroids.Count; i++ {
		g.Asteroids = append(g.Asteroids, entity.NewAsteroid(entity.GenerateID(), g.randomSpawnPoint()))
	}
}

// Reset restarts the session in place: full life, a fresh layout and no
// terminal state.
func (g *Game) Reset() {
	g.populate()
	g.GameOver = false
	g.Outcome = OutcomeNone
	g.CurrentTick = 0
	g.Collected = 0

	g.logger.Info(context.Background(), "session reset")
	g.EventBus.Publish(event.NewSessionEvent(event.SessionReset, g, g.SessionID, g.Outcome.String(), g.CurrentTick))
}

// Advance runs one tick using wall-clock timestamps in seconds. The step is
// clamped to [0, Rules.MaxDeltaTime].
func (g *Game) Advance(prevTime, nowTime float64, input InputState) {
	g.Update(g.clampDelta(nowTime-prevTime), input)
}

func (g *Game) clampDelta(deltaTime float64) float64 {
	if deltaTime < 0 {
		return 0
	}
	if deltaTime > g.Config.Rules.MaxDeltaTime {
		return g.Config.Rules.MaxDeltaTime
	}
	return deltaTime
}

// Update advances the game state by one tick of deltaTime seconds. Once the
// game is over only the damage flash keeps counting down.
func (g *Game) Update(deltaTime float64, input InputState) {
	if g.GameOver {
		g.Aircraft.TickTimers(deltaTime)
		return
	}

	g.updateAircraft(deltaTime, input)
	g.updateDrones(deltaTime)
	g.updateMissiles(deltaTime)

	report := g.ResolveCollisions()
	g.metrics.recordCollisions(report)

	g.CheckTerminal()
	g.CurrentTick++
}

// updateAircraft applies player input to the aircraft
func (g *Game) updateAircraft(deltaTime float64, input InputState) {
	g.Aircraft.Update(g.Shell, deltaTime, entity.Controls{
		Forward:   input.Forward,
		Backward:  input.Backward,
		TurnLeft:  input.TurnLeft,
		TurnRight: input.TurnRight,
	})

	if input.Fire && g.Aircraft.ReadyToFire() {
		missile := g.aircraftLauncher.Fire(g.Shell, entity.OwnerAircraft, g.Aircraft.Position, g.Aircraft.Forward)
		g.Aircraft.MarkFired()
		g.addMissile(missile)
	}
}

// updateDrones steers every drone toward the aircraft and handles reloading
func (g *Game) updateDrones(deltaTime float64) {
	interval := g.Config.Drones.FireInterval

	volley := false
	if g.DroneFireMode == FireShared {
		g.droneFireTimer += deltaTime
		if g.droneFireTimer > interval {
			g.droneFireTimer = 0
			volley = true
		}
	}

	target := g.Aircraft.Position
	for _, drone := range g.Drones {
		drone.Pursue(g.Shell, target, deltaTime)

		fire := volley
		if g.DroneFireMode == FireIndependent {
			fire = drone.Reload(deltaTime, interval)
		}
		if fire {
			g.addMissile(g.droneLauncher.FireAt(g.Shell, entity.OwnerDrone, drone.Position, drone.Forward, target))
		}
	}
}

// updateMissiles expires spent missiles and moves the rest
func (g *Game) updateMissiles(deltaTime float64) {
	for i := len(g.Missiles) - 1; i >= 0; i-- {
		missile := g.Missiles[i]
		missile.Update(g.Shell, deltaTime)
		if missile.Active {
			continue
		}

		g.Missiles = removeAt(g.Missiles, i)
		g.EventBus.Publish(event.NewMissileEvent(event.MissileExpired, g, uint64(missile.ID), missile.Owner.String()))
	}
}

func (g *Game) addMissile(missile *entity.Missile) {
	g.Missiles = append(g.Missiles, missile)
	g.metrics.recordMissileFired(missile.Owner.String())
	g.EventBus.Publish(event.NewMissileEvent(event.MissileFired, g, uint64(missile.ID), missile.Owner.String()))
}

// CheckTerminal latches the game-over state. Defeat wins over victory when
// both hold in the same tick.
func (g *Game) CheckTerminal() bool {
	if g.GameOver {
		return true
	}

	switch {
	case g.Aircraft.Life <= 0:
		g.Outcome = OutcomeDefeat
	case len(g.Checkpoints) == 0:
		g.Outcome = OutcomeVictory
	default:
		return false
	}
	g.GameOver = true

	g.logger.Info(context.Background(), "game over",
		"outcome", g.Outcome.String(),
		"tick", g.CurrentTick,
		"collected", g.Collected,
		"life", g.Aircraft.Life,
	)
	g.metrics.recordSessionEnded(g.Outcome)
	g.EventBus.Publish(event.NewSessionEvent(event.GameOver, g, g.SessionID, g.Outcome.String(), g.CurrentTick))
	return true
}

// DamageFlashing reports whether the HUD should show the hit cue
func (g *Game) DamageFlashing() bool {
	return g.Aircraft.Damaged()
}

// randomSpawnPoint returns a uniformly distributed shell point outside the
// spawn clearance. After a bounded number of rejections the last candidate
// is used.
func (g *Game) randomSpawnPoint() physics.Point3 {
	const maxAttempts = 64

	var p physics.Point3
	for attempt := 0; attempt < maxAttempts; attempt++ {
		dir := g.randomUnit()
		p = g.Shell.Center.Add(dir.Scale(g.Shell.Radius))
		if g.Shell.ArcDistance(p, g.spawnPosition) >= g.Config.Spawn.Clearance {
			return p
		}
	}
	return p
}

// randomHeading returns a random unit direction tangent to the shell at p
func (g *Game) randomHeading(p physics.Point3) physics.Direction3 {
	for {
		if heading := g.Shell.Tangent(p, g.randomUnit()); !heading.IsZero(1e-6) {
			return heading
		}
	}
}

// randomUnit samples a uniformly distributed unit direction
func (g *Game) randomUnit() physics.Direction3 {
	for {
		d := physics.Direction3{X: g.rng.NormFloat64(), Y: g.rng.NormFloat64(), Z: g.rng.NormFloat64()}
		if d.LengthSquared() > 1e-12 {
			return d.Normalize()
		}
	}
}

// removeAt drops s[i] by moving the last element into its slot. Scanning
// back to front keeps the indices still to be visited valid.
func removeAt[T any](s []T, i int) []T {
	last := len(s) - 1
	s[i] = s[last]
	var zero T
	s[last] = zero
	return s[:last]
}
