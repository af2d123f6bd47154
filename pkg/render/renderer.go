// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-moonstrike/pkg/entity"
	"github.com/opd-ai/go-moonstrike/pkg/logging"
)

// NullRenderer is a headless implementation of entity.Renderer. It draws
// nothing and traces each call at debug level.
type NullRenderer struct {
	logger *logging.Logger
	frames int
}

// NewNullRenderer creates a new NullRenderer that logs through logger.
// A nil logger discards everything.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &NullRenderer{logger: logger}
}

// Frames returns how many frames have been presented
func (d *NullRenderer) Frames() int {
	return d.frames
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called", "frame", d.frames)
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.logger.Debug(context.Background(), "Present called", "frame", d.frames)
	d.frames++
}

// RenderAircraft implements entity.Renderer.
func (d *NullRenderer) RenderAircraft(aircraft *entity.Aircraft) {
	ctx := context.Background()
	if aircraft == nil {
		d.logger.Debug(ctx, "RenderAircraft called with nil aircraft")
		return
	}
	d.logger.Debug(ctx, "RenderAircraft called",
		"aircraft_id", aircraft.ID,
		"life", aircraft.Life,
	)
}

// RenderDrone implements entity.Renderer.
func (d *NullRenderer) RenderDrone(drone *entity.Drone) {
	ctx := context.Background()
	if drone == nil {
		d.logger.Debug(ctx, "RenderDrone called with nil drone")
		return
	}
	d.logger.Debug(ctx, "RenderDrone called", "drone_id", drone.ID)
}

// RenderMissile implements entity.Renderer.
func (d *NullRenderer) RenderMissile(missile *entity.Missile) {
	ctx := context.Background()
	if missile == nil {
		d.logger.Debug(ctx, "RenderMissile called with nil missile")
		return
	}
	d.logger.Debug(ctx, "RenderMissile called",
		"missile_id", missile.ID,
		"owner", missile.Owner.String(),
	)
}

// RenderCheckpoint implements entity.Renderer.
func (d *NullRenderer) RenderCheckpoint(checkpoint *entity.Checkpoint) {
	ctx := context.Background()
	if checkpoint == nil {
		d.logger.Debug(ctx, "RenderCheckpoint called with nil checkpoint")
		return
	}
	d.logger.Debug(ctx, "RenderCheckpoint called", "checkpoint_id", checkpoint.ID)
}

// RenderAsteroid implements entity.Renderer.
func (d *NullRenderer) RenderAsteroid(asteroid *entity.Asteroid) {
	ctx := context.Background()
	if asteroid == nil {
		d.logger.Debug(ctx, "RenderAsteroid called with nil asteroid")
		return
	}
	d.logger.Debug(ctx, "RenderAsteroid called", "asteroid_id", asteroid.ID)
}

// RenderStatus implements entity.Renderer.
func (d *NullRenderer) RenderStatus(status entity.Status) {
	d.logger.Debug(context.Background(), "RenderStatus called",
		"life", status.Life,
		"checkpoints_left", status.CheckpointsLeft,
		"game_over", status.GameOver,
		"outcome", status.Outcome,
	)
}
