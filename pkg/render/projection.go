package render

import (
	"math"

	"github.com/opd-ai/go-moonstrike/pkg/physics"
)

// Projection maps points on the flight shell to a flat map using an
// equirectangular layout: longitude = atan2(x, z) runs left to right and
// latitude = asin(y/r) runs top to bottom.
type Projection struct {
	Shell physics.Shell
}

// ToPlane returns normalised map coordinates in [0,1]x[0,1]. (0,0) is the
// top-left corner, longitude -π and latitude +π/2.
func (p Projection) ToPlane(pos physics.Point3) (u, v float64) {
	rel := pos.Sub(p.Shell.Center)
	r := rel.Length()
	if r == 0 {
		return 0.5, 0.5
	}

	lon := math.Atan2(rel.X, rel.Z)
	lat := math.Asin(physics.Clamp(rel.Y/r, -1, 1))

	u = (lon + math.Pi) / (2 * math.Pi)
	v = (math.Pi/2 - lat) / math.Pi
	return physics.Clamp(u, 0, 1), physics.Clamp(v, 0, 1)
}

// ToGrid maps pos onto a width x height cell grid
func (p Projection) ToGrid(pos physics.Point3, width, height int) (int, int) {
	u, v := p.ToPlane(pos)
	x := int(u * float64(width))
	y := int(v * float64(height))
	if x >= width {
		x = width - 1
	}
	if y >= height {
		y = height - 1
	}
	return x, y
}

// Heading returns the on-map direction of forward at pos as a unit (dx, dy)
// pair in plane coordinates. dy grows downward. It reports false if the
// heading does not show up on the map, such as at a pole.
func (p Projection) Heading(pos physics.Point3, forward physics.Direction3) (dx, dy float64, ok bool) {
	const probe = 0.25

	u0, v0 := p.ToPlane(pos)
	u1, v1 := p.ToPlane(pos.Add(forward.Scale(probe)))

	dx = u1 - u0
	// Crossing the seam at longitude ±π
	if dx > 0.5 {
		dx -= 1
	} else if dx < -0.5 {
		dx += 1
	}
	// u spans 2π while v spans π
	dx *= 2
	dy = v1 - v0

	l := math.Hypot(dx, dy)
	if l < 1e-9 {
		return 0, 0, false
	}
	return dx / l, dy / l, true
}

// HeadingGlyph picks an arrow for the aircraft's on-map heading
func (p Projection) HeadingGlyph(pos physics.Point3, forward physics.Direction3) rune {
	dx, dy, ok := p.Heading(pos, forward)
	if !ok {
		return '@'
	}
	if math.Abs(dx) >= math.Abs(dy) {
		if dx > 0 {
			return '>'
		}
		return '<'
	}
	if dy > 0 {
		return 'v'
	}
	return '^'
}
