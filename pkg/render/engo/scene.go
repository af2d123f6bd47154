// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-moonstrike/pkg/engine"
	"github.com/opd-ai/go-moonstrike/pkg/event"
	"github.com/opd-ai/go-moonstrike/pkg/logging"
)

// GameScene represents the main game scene in Engo
type GameScene struct {
	world  *ecs.World
	game   *engine.Game
	logger *logging.Logger

	renderer   *EngoRenderer
	input      *InputSystem
	simulation *SimulationSystem
}

// NewGameScene creates a new game scene driving game
func NewGameScene(game *engine.Game, logger *logging.Logger) *GameScene {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &GameScene{
		game:   game,
		logger: logger,
		world:  &ecs.World{},
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *GameScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	if world, ok := u.(*ecs.World); ok {
		scene.world = world
	}
	common.SetBackground(color.Black)

	renderSystem := &common.RenderSystem{}
	scene.world.AddSystem(renderSystem)

	scene.renderer = NewEngoRenderer(renderSystem, scene.game.Shell, engo.GameWidth(), engo.GameHeight())

	SetupInputBindings()
	scene.input = NewInputSystem(EngoButtons)
	scene.world.AddSystem(scene.input)

	scene.simulation = NewSimulationSystem(scene.game, scene.input, scene.renderer)
	scene.world.AddSystem(scene.simulation)

	scene.subscribeToEvents()
	scene.game.Start()
}

// subscribeToEvents logs session milestones
func (scene *GameScene) subscribeToEvents() {
	scene.game.EventBus.Subscribe(event.GameOver, func(e event.Event) {
		if se, ok := e.(*event.SessionEvent); ok {
			scene.logger.Info(context.Background(), "Session over, press R to restart",
				"outcome", se.Outcome,
				"tick", se.Tick,
			)
		}
	})
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *GameScene) Exit() {
	scene.logger.Info(context.Background(), "Leaving game scene",
		"session_id", scene.game.SessionID,
		"collected", scene.game.Collected,
	)
}

// SimulationSystem steps the game once per engo frame and redraws it
type SimulationSystem struct {
	game     *engine.Game
	input    *InputSystem
	renderer *EngoRenderer
	clock    float64
}

// NewSimulationSystem creates a system advancing game with input's controls
func NewSimulationSystem(game *engine.Game, input *InputSystem, renderer *EngoRenderer) *SimulationSystem {
	return &SimulationSystem{
		game:     game,
		input:    input,
		renderer: renderer,
	}
}

// Remove satisfies the ecs.System interface
func (s *SimulationSystem) Remove(basic ecs.BasicEntity) {}

// Update advances the simulation by dt seconds
func (s *SimulationSystem) Update(dt float32) {
	if s.input.TakeReset() {
		s.game.Reset()
	}

	prev := s.clock
	s.clock += float64(dt)
	s.game.Advance(prev, s.clock, s.input.State())
	s.game.Draw(s.renderer)
}
