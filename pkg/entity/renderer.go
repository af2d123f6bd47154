package entity

// Status is the HUD-level summary handed to renderers once per frame
type Status struct {
	Life            int
	MaxLife         int
	CheckpointsLeft int
	Collected       int
	GameOver        bool
	Outcome         string
	Damaged         bool
}

// Renderer handles rendering game entities
type Renderer interface {
	RenderAircraft(aircraft *Aircraft)
	RenderDrone(drone *Drone)
	RenderMissile(missile *Missile)
	RenderCheckpoint(checkpoint *Checkpoint)
	RenderAsteroid(asteroid *Asteroid)
	RenderStatus(status Status)
	Clear()
	Present()
}
