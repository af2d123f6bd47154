// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-moonstrike/pkg/entity"
	"github.com/opd-ai/go-moonstrike/pkg/physics"
	"github.com/opd-ai/go-moonstrike/pkg/render"
)

// Layer order, lowest drawn first
const (
	zLandmark = 1
	zDrone    = 2
	zMissile  = 3
	zAircraft = 4
	zHUD      = 10
)

// minShapeSize keeps tiny colliders visible on the map
const minShapeSize = 6

var (
	colorAircraft        = color.RGBA{255, 255, 255, 255}
	colorAircraftDamaged = color.RGBA{255, 64, 64, 255}
	colorDrone           = color.RGBA{220, 40, 40, 255}
	colorAircraftMissile = color.RGBA{255, 230, 0, 255}
	colorDroneMissile    = color.RGBA{255, 0, 200, 255}
	colorCheckpoint      = color.RGBA{0, 220, 90, 255}
	colorAsteroid        = color.RGBA{140, 140, 140, 255}
)

// ShapeSystem is the subset of common.RenderSystem the renderer drives
type ShapeSystem interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

type shape struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent

	seen bool
}

// EngoRenderer implements entity.Renderer by keeping one engo shape per
// game entity, laid out on an equirectangular map of the shell.
type EngoRenderer struct {
	shapes     ShapeSystem
	projection render.Projection
	width      float32
	height     float32
	pxPerUnit  float32

	entities map[entity.ID]*shape
	hud      map[string]*shape
	status   entity.Status
}

// NewEngoRenderer creates a renderer drawing a width x height map of shell
func NewEngoRenderer(shapes ShapeSystem, shell physics.Shell, width, height float32) *EngoRenderer {
	return &EngoRenderer{
		shapes:     shapes,
		projection: render.Projection{Shell: shell},
		width:      width,
		height:     height,
		pxPerUnit:  width / float32(2*math.Pi*shell.Radius),
		entities:   make(map[entity.ID]*shape),
		hud:        make(map[string]*shape),
	}
}

// Clear implements entity.Renderer. Shapes not drawn again before Present
// are dropped.
func (r *EngoRenderer) Clear() {
	for _, s := range r.entities {
		s.seen = false
	}
}

// Present implements entity.Renderer
func (r *EngoRenderer) Present() {
	for id, s := range r.entities {
		if !s.seen {
			r.shapes.Remove(s.BasicEntity)
			delete(r.entities, id)
		}
	}
}

// RenderAircraft implements entity.Renderer
func (r *EngoRenderer) RenderAircraft(aircraft *entity.Aircraft) {
	c := colorAircraft
	if aircraft.Damaged() {
		c = colorAircraftDamaged
	}
	s := r.place(aircraft.ID, aircraft.Position, entity.AircraftColliderRadius*2, zAircraft, c,
		func() common.Drawable { return common.Triangle{} })
	if dx, dy, ok := r.projection.Heading(aircraft.Position, aircraft.Forward); ok {
		s.Rotation = float32(math.Atan2(dx, -dy) * 180 / math.Pi)
	}
}

// RenderDrone implements entity.Renderer
func (r *EngoRenderer) RenderDrone(drone *entity.Drone) {
	r.place(drone.ID, drone.Position, entity.DroneColliderRadius*2, zDrone, colorDrone, newCircle)
}

// RenderMissile implements entity.Renderer
func (r *EngoRenderer) RenderMissile(missile *entity.Missile) {
	c := colorAircraftMissile
	if missile.Owner == entity.OwnerDrone {
		c = colorDroneMissile
	}
	r.place(missile.ID, missile.Position, entity.MissileColliderRadius*2, zMissile, c, newCircle)
}

// RenderCheckpoint implements entity.Renderer
func (r *EngoRenderer) RenderCheckpoint(checkpoint *entity.Checkpoint) {
	r.place(checkpoint.ID, checkpoint.Position, entity.CheckpointColliderRadius*2, zLandmark, colorCheckpoint,
		func() common.Drawable { return common.Circle{BorderWidth: 2, BorderColor: colorCheckpoint} })
}

// RenderAsteroid implements entity.Renderer
func (r *EngoRenderer) RenderAsteroid(asteroid *entity.Asteroid) {
	r.place(asteroid.ID, asteroid.Position, entity.AsteroidCylinderRadius*2, zLandmark, colorAsteroid,
		func() common.Drawable { return common.Rectangle{} })
}

func newCircle() common.Drawable {
	return common.Circle{}
}

// place positions the shape for id, creating it on first sight. size is in
// world units.
func (r *EngoRenderer) place(id entity.ID, pos physics.Point3, size float64, z float32, c color.Color, drawable func() common.Drawable) *shape {
	s, ok := r.entities[id]
	if !ok {
		s = &shape{BasicEntity: ecs.NewBasic()}
		s.RenderComponent = common.RenderComponent{
			Drawable: drawable(),
			Scale:    engo.Point{X: 1, Y: 1},
		}
		s.RenderComponent.SetZIndex(z)
		r.entities[id] = s
		r.shapes.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}

	px := float32(size) * r.pxPerUnit
	if px < minShapeSize {
		px = minShapeSize
	}
	x, y := r.ToScreen(pos)

	s.Color = c
	s.Width = px
	s.Height = px
	s.Position = engo.Point{X: x - px/2, Y: y - px/2}
	s.seen = true
	return s
}

// ToScreen maps a shell point to window pixels
func (r *EngoRenderer) ToScreen(pos physics.Point3) (float32, float32) {
	u, v := r.projection.ToPlane(pos)
	return float32(u) * r.width, float32(v) * r.height
}

// Tracked returns how many entity shapes are live
func (r *EngoRenderer) Tracked() int {
	return len(r.entities)
}
