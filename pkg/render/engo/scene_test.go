// pkg/render/engo/scene_test.go
package engo

import (
	"testing"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-moonstrike/pkg/config"
	"github.com/opd-ai/go-moonstrike/pkg/engine"
)

// fakeShapes records what the renderer hands to the render system
type fakeShapes struct {
	added   []*ecs.BasicEntity
	removed []uint64
}

func (f *fakeShapes) Add(basic *ecs.BasicEntity, _ *common.RenderComponent, _ *common.SpaceComponent) {
	f.added = append(f.added, basic)
}

func (f *fakeShapes) Remove(basic ecs.BasicEntity) {
	f.removed = append(f.removed, basic.ID())
}

type stubButton struct {
	down        bool
	justPressed bool
}

func (b stubButton) Down() bool        { return b.down }
func (b stubButton) JustPressed() bool { return b.justPressed }

type stubButtons map[string]stubButton

func (s stubButtons) source(name string) Button {
	return s[name]
}

func newSceneGame(t *testing.T) *engine.Game {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = "scene-test"
	game, err := engine.NewGame(cfg, nil)
	require.NoError(t, err)
	return game
}

func TestNewGameScene(t *testing.T) {
	game := newSceneGame(t)

	scene := NewGameScene(game, nil)

	require.NotNil(t, scene)
	assert.Same(t, game, scene.game)
	assert.NotNil(t, scene.world)
	assert.NotNil(t, scene.logger)
	assert.Equal(t, "GameScene", scene.Type())
}

func TestSimulationSystem_StepsAndDraws(t *testing.T) {
	game := newSceneGame(t)
	shapes := &fakeShapes{}
	renderer := NewEngoRenderer(shapes, game.Shell, 800, 400)
	buttons := stubButtons{ButtonThrust: {down: true}}
	input := NewInputSystem(buttons.source)
	sim := NewSimulationSystem(game, input, renderer)

	start := game.Aircraft.Position
	input.Update(0.05)
	sim.Update(0.05)

	assert.Equal(t, uint64(1), game.CurrentTick)
	assert.NotEqual(t, start, game.Aircraft.Position)

	want := 1 + len(game.Drones) + len(game.Missiles) + len(game.Checkpoints) + len(game.Asteroids)
	assert.Equal(t, want, renderer.Tracked())
	assert.Equal(t, 3, renderer.Status().Life)
}

func TestSimulationSystem_ClampsLongFrames(t *testing.T) {
	game := newSceneGame(t)
	input := NewInputSystem(stubButtons{}.source)
	sim := NewSimulationSystem(game, input, NewEngoRenderer(&fakeShapes{}, game.Shell, 800, 400))

	input.Update(5)
	sim.Update(5)

	assert.InDelta(t, 5.0, sim.clock, 1e-6)
	assert.Equal(t, uint64(1), game.CurrentTick)
}

func TestSimulationSystem_ResetRestartsSession(t *testing.T) {
	game := newSceneGame(t)
	buttons := stubButtons{}
	input := NewInputSystem(buttons.source)
	sim := NewSimulationSystem(game, input, NewEngoRenderer(&fakeShapes{}, game.Shell, 800, 400))

	game.GameOver = true
	game.Outcome = engine.OutcomeDefeat
	game.Aircraft.Life = 0

	input.Update(0.05)
	sim.Update(0.05)
	assert.True(t, game.GameOver, "no reset without the key")
	assert.Equal(t, uint64(0), game.CurrentTick)

	buttons[ButtonReset] = stubButton{justPressed: true}
	input.Update(0.05)
	sim.Update(0.05)

	assert.False(t, game.GameOver)
	assert.Equal(t, engine.OutcomeNone, game.Outcome)
	assert.Equal(t, 3, game.Aircraft.Life)
	assert.Equal(t, uint64(1), game.CurrentTick)
}
