// pkg/physics/orbit.go
package physics

import "math"

// degenerateEpsilon is the length below which a direction is treated as zero.
const degenerateEpsilon = 1e-9

// Shell is the fixed-radius sphere every orbiting entity is glued to
type Shell struct {
	Center Point3
	Radius float64
}

// TangentialProject removes the component of direction along outwardNormal
// and re-normalizes the remainder.
func TangentialProject(direction, outwardNormal Direction3) Direction3 {
	return direction.Sub(outwardNormal.Scale(direction.Dot(outwardNormal))).Normalize()
}

// AdvanceOnShell rotates position about rotationAxis (through shellCenter)
// by angle and rescales the result to shellRadius.
func AdvanceOnShell(position Point3, rotationAxis Direction3, angle float64, shellCenter Point3, shellRadius float64) Point3 {
	rel := position.Sub(shellCenter).RotateAround(rotationAxis, angle)
	return shellCenter.Add(rel.Normalize().Scale(shellRadius))
}

// Up returns the outward normal of the shell at p
func (s Shell) Up(p Point3) Direction3 {
	return p.Sub(s.Center).Normalize()
}

// Right returns normalize(up × forward), the tangent axis that position
// rotates about when moving along forward.
func (s Shell) Right(p Point3, forward Direction3) Direction3 {
	return s.Up(p).Cross(forward).Normalize()
}

// Snap moves p radially onto the shell
func (s Shell) Snap(p Point3) Point3 {
	return s.Center.Add(p.Sub(s.Center).Normalize().Scale(s.Radius))
}

// Tangent projects forward onto the tangent plane at p
func (s Shell) Tangent(p Point3, forward Direction3) Direction3 {
	return TangentialProject(forward, s.Up(p))
}

// Move advances along forward by an arc length of distance (negative moves
// backwards) and returns the new position together with the heading carried
// along the same rotation.
func (s Shell) Move(position Point3, forward Direction3, distance float64) (Point3, Direction3) {
	right := s.Right(position, forward)
	angle := distance / s.Radius

	next := AdvanceOnShell(position, right, angle, s.Center, s.Radius)
	heading := forward.RotateAround(right, angle)
	return next, s.Tangent(next, heading)
}

// Turn rotates forward about the local up axis. Positive angles turn left.
func (s Shell) Turn(position Point3, forward Direction3, angle float64) Direction3 {
	up := s.Up(position)
	return TangentialProject(forward.RotateAround(up, angle), up)
}

// ArcDistance returns the great-circle distance between two shell points
func (s Shell) ArcDistance(a, b Point3) float64 {
	return s.Up(a).AngleTo(s.Up(b)) * s.Radius
}

// SteerToward rotates forward toward desired by at most maxTurn radians.
// Both directions must be tangent at the point whose outward normal is up.
// A degenerate desired direction leaves forward unchanged.
func SteerToward(forward, desired, up Direction3, maxTurn float64) Direction3 {
	if desired.IsZero(degenerateEpsilon) {
		return forward
	}

	angle := forward.AngleTo(desired)
	if angle <= degenerateEpsilon {
		return forward
	}
	turn := math.Min(angle, maxTurn)

	axis := forward.Cross(desired)
	if axis.IsZero(degenerateEpsilon) {
		// Antiparallel: any rotation about up closes the gap
		axis = up
	}
	return TangentialProject(forward.RotateAround(axis.Normalize(), turn), up)
}
