// pkg/physics/vector.go
package physics

import "math"

// Point3 is a location in world space.
type Point3 struct {
	X float64
	Y float64
	Z float64
}

// Direction3 is a free vector in world space. It never carries a position.
type Direction3 struct {
	X float64
	Y float64
	Z float64
}

// Sub returns the direction pointing from other to p
func (p Point3) Sub(other Point3) Direction3 {
	return Direction3{
		X: p.X - other.X,
		Y: p.Y - other.Y,
		Z: p.Z - other.Z,
	}
}

// Add translates the point by a direction
func (p Point3) Add(d Direction3) Point3 {
	return Point3{
		X: p.X + d.X,
		Y: p.Y + d.Y,
		Z: p.Z + d.Z,
	}
}

// DistanceSquared returns the squared Euclidean distance between two points
func (p Point3) DistanceSquared(other Point3) float64 {
	return p.Sub(other).LengthSquared()
}

// Distance returns the Euclidean distance between two points
func (p Point3) Distance(other Point3) float64 {
	return math.Sqrt(p.DistanceSquared(other))
}

// Add returns the sum of two directions
func (d Direction3) Add(other Direction3) Direction3 {
	return Direction3{
		X: d.X + other.X,
		Y: d.Y + other.Y,
		Z: d.Z + other.Z,
	}
}

// Sub returns the difference between two directions
func (d Direction3) Sub(other Direction3) Direction3 {
	return Direction3{
		X: d.X - other.X,
		Y: d.Y - other.Y,
		Z: d.Z - other.Z,
	}
}

// Scale multiplies the direction by a scalar value
func (d Direction3) Scale(factor float64) Direction3 {
	return Direction3{
		X: d.X * factor,
		Y: d.Y * factor,
		Z: d.Z * factor,
	}
}

// Dot returns the dot product of two directions
func (d Direction3) Dot(other Direction3) float64 {
	return d.X*other.X + d.Y*other.Y + d.Z*other.Z
}

// Cross returns the cross product d × other
func (d Direction3) Cross(other Direction3) Direction3 {
	return Direction3{
		X: d.Y*other.Z - d.Z*other.Y,
		Y: d.Z*other.X - d.X*other.Z,
		Z: d.X*other.Y - d.Y*other.X,
	}
}

// LengthSquared returns magnitude squared (optimization for comparisons)
func (d Direction3) LengthSquared() float64 {
	return d.X*d.X + d.Y*d.Y + d.Z*d.Z
}

// Length returns the magnitude of the direction
func (d Direction3) Length() float64 {
	return math.Sqrt(d.LengthSquared())
}

// Normalize returns a unit vector in the same direction.
// A zero-length input yields the zero direction.
func (d Direction3) Normalize() Direction3 {
	length := d.Length()
	if length == 0 {
		return Direction3{}
	}
	return d.Scale(1 / length)
}

// IsZero reports whether the direction is shorter than eps
func (d Direction3) IsZero(eps float64) bool {
	return d.LengthSquared() <= eps*eps
}

// RotateAround rotates d by angle radians about the unit axis (Rodrigues).
// Positive angles turn counter-clockwise when looking down the axis.
func (d Direction3) RotateAround(axis Direction3, angle float64) Direction3 {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return d.Scale(cos).
		Add(axis.Cross(d).Scale(sin)).
		Add(axis.Scale(axis.Dot(d) * (1 - cos)))
}

// AngleTo returns the unsigned angle between two unit directions.
// The cosine is clamped so floating-point overshoot cannot produce NaN.
func (d Direction3) AngleTo(other Direction3) float64 {
	return math.Acos(Clamp(d.Dot(other), -1, 1))
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
